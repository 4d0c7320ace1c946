package fsm

import (
	"elevatorbank/requests"
	"elevatorbank/types"
)

/*
 * Floors the elevator will stop at, in order, if no new request arrives.
 * Runs Next on a deep copy of the table, the table itself is left untouched.
 */
func PlanRoute(table *requests.Table, floor int, dirn types.Dirn) ([]int, error) {
	simTable, err := table.Clone()
	if err != nil {
		return nil, err
	}

	route := []int{}

	/*
	 * Upper bound on decisions, a request is reached after at most two direction changes
	 */
	maxSteps := 3 * (simTable.NumFloors + 1) * types.NUM_BUTTONS

	for step := 0; simTable.Any() && step < maxSteps; step++ {
		fsmOutput := Next(simTable, floor, dirn)
		dirn = fsmOutput.ElevDirn

		if !fsmOutput.Move {
			continue
		}

		floor = fsmOutput.TargetFloor
		for btn, clearOrder := range fsmOutput.ClearOrders {
			if clearOrder {
				simTable.Clear(types.ButtonType(btn), floor)
			}
		}

		if len(route) == 0 || route[len(route)-1] != floor {
			route = append(route, floor)
		}
	}

	return route, nil
}
