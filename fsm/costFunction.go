package fsm

import "elevatorbank/types"

const NOT_ELIGIBLE = -1

/*
 * Cost of handing a hall call to an elevator: the number of floors between them.
 * Only elevators that are idle or already travelling in the call's direction
 * may take it, everything else is NOT_ELIGIBLE.
 */
func DispatchCost(status types.Status, floor int, dirn types.Dirn) int {
	if !status.Running {
		return NOT_ELIGIBLE
	}

	if status.Dirn != types.D_Idle && status.Dirn != dirn {
		return NOT_ELIGIBLE
	}

	distance := status.Floor - floor
	if distance < 0 {
		distance = -distance
	}

	return distance
}
