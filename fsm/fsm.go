package fsm

import (
	"elevatorbank/requests"
	"elevatorbank/types"
)

/*
 * Decides the next stop of an elevator standing on floor with direction dirn.
 * Pure function, the caller applies the output under its own lock.
 */
func Next(table *requests.Table, floor int, dirn types.Dirn) types.FsmOutput {
	switch dirn {
	case types.D_Up:
		return OnScanUp(table, floor)
	case types.D_Down:
		return OnScanDown(table, floor)
	default:
		return OnIdle(table, floor)
	}
}

func OnIdle(table *requests.Table, floor int) types.FsmOutput {
	closestUp := table.Nearest(floor, types.D_Up, types.BT_Cab, types.BT_HallUp)
	closestDown := table.Nearest(floor, types.D_Down, types.BT_Cab, types.BT_HallDown)

	switch {
	case closestUp != -1 && closestDown != -1:
		if closestUp-floor <= floor-closestDown {
			return moveTo(closestUp, types.D_Up, types.BT_Cab, types.BT_HallUp)
		}
		return moveTo(closestDown, types.D_Down, types.BT_Cab, types.BT_HallDown)

	case closestUp != -1:
		return moveTo(closestUp, types.D_Up, types.BT_Cab, types.BT_HallUp)

	case closestDown != -1:
		return moveTo(closestDown, types.D_Down, types.BT_Cab, types.BT_HallDown)
	}

	/*
	 * Only calls for the opposite direction remain: hall-down above or hall-up below.
	 * Commit towards the nearest one without moving, the scan picks it up as a turning point.
	 */
	downAbove := table.Nearest(floor+1, types.D_Up, types.BT_HallDown)
	upBelow := table.Nearest(floor-1, types.D_Down, types.BT_HallUp)

	switch {
	case downAbove != -1 && upBelow != -1:
		if downAbove-floor <= floor-upBelow {
			return types.FsmOutput{ElevDirn: types.D_Up}
		}
		return types.FsmOutput{ElevDirn: types.D_Down}

	case downAbove != -1:
		return types.FsmOutput{ElevDirn: types.D_Up}

	case upBelow != -1:
		return types.FsmOutput{ElevDirn: types.D_Down}

	default:
		return types.FsmOutput{ElevDirn: types.D_Idle}
	}
}

func OnScanUp(table *requests.Table, floor int) types.FsmOutput {
	if output, ok := serveHere(table, floor, types.D_Up, types.BT_HallUp); ok {
		return output
	}

	/*
	 * Cab calls above come first, then up calls above
	 */
	if next := table.Nearest(floor+1, types.D_Up, types.BT_Cab); next != -1 {
		return moveTo(next, types.D_Up, types.BT_Cab)
	}

	if next := table.Nearest(floor+1, types.D_Up, types.BT_HallUp); next != -1 {
		return moveTo(next, types.D_Up, types.BT_HallUp)
	}

	/*
	 * Turning point: the highest down call above
	 */
	turn := table.Farthest(floor, types.D_Up, types.BT_HallDown)
	if turn != -1 {
		return moveTo(turn, types.D_Down, types.BT_HallDown)
	}

	/*
	 * Nothing above, reverse even if nothing is pending below either
	 */
	return types.FsmOutput{ElevDirn: types.D_Down}
}

func OnScanDown(table *requests.Table, floor int) types.FsmOutput {
	if output, ok := serveHere(table, floor, types.D_Down, types.BT_HallDown); ok {
		return output
	}

	if next := table.Nearest(floor-1, types.D_Down, types.BT_Cab); next != -1 {
		return moveTo(next, types.D_Down, types.BT_Cab)
	}

	if next := table.Nearest(floor-1, types.D_Down, types.BT_HallDown); next != -1 {
		return moveTo(next, types.D_Down, types.BT_HallDown)
	}

	/*
	 * Turning point: the lowest up call below
	 */
	turn := table.Farthest(floor, types.D_Down, types.BT_HallUp)
	if turn != -1 {
		return moveTo(turn, types.D_Up, types.BT_HallUp)
	}

	return types.FsmOutput{ElevDirn: types.D_Up}
}

/*
 * A cab call, or a hall call in the travel direction, on the floor the elevator
 * already stands on is served without moving.
 */
func serveHere(table *requests.Table, floor int, dirn types.Dirn, hallBtn types.ButtonType) (types.FsmOutput, bool) {
	if !table.Has(types.BT_Cab, floor) && !table.Has(hallBtn, floor) {
		return types.FsmOutput{}, false
	}
	return moveTo(floor, dirn, triggeringButton(table, floor, hallBtn)), true
}

/*
 * Cab calls take priority over hall calls on the same floor
 */
func triggeringButton(table *requests.Table, floor int, hallBtn types.ButtonType) types.ButtonType {
	if table.Has(types.BT_Cab, floor) {
		return types.BT_Cab
	}
	return hallBtn
}

func moveTo(floor int, dirn types.Dirn, clear ...types.ButtonType) types.FsmOutput {
	output := types.FsmOutput{
		ElevDirn:    dirn,
		Move:        true,
		TargetFloor: floor,
	}
	for _, btn := range clear {
		output.ClearOrders[btn] = true
	}
	return output
}
