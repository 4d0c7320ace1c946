package requests

import (
	"elevatorbank/types"

	"github.com/tiendc/go-deepcopy"
)

/*
 * Pending requests of one elevator, indexed [floor][button].
 * Floor 0 is never used, valid floors are 1..NumFloors.
 */
type Table struct {
	NumFloors int
	Requests  [][types.NUM_BUTTONS]bool
}

func NewTable(numFloors int) *Table {
	return &Table{
		NumFloors: numFloors,
		Requests:  make([][types.NUM_BUTTONS]bool, numFloors+1),
	}
}

func (t *Table) Set(btn types.ButtonType, floor int) {
	t.Requests[floor][btn] = true
}

func (t *Table) Clear(btn types.ButtonType, floor int) {
	t.Requests[floor][btn] = false
}

func (t *Table) Has(btn types.ButtonType, floor int) bool {
	if floor < 0 || floor > t.NumFloors {
		return false
	}
	return t.Requests[floor][btn]
}

func (t *Table) Any() bool {
	for floor := range t.Requests {
		if t.RequestsHere(floor) {
			return true
		}
	}
	return false
}

func (t *Table) RequestsAbove(floor int) bool {
	for f := floor + 1; f <= t.NumFloors; f++ {
		if t.RequestsHere(f) {
			return true
		}
	}
	return false
}

func (t *Table) RequestsBelow(floor int) bool {
	for f := 1; f < floor && f <= t.NumFloors; f++ {
		if t.RequestsHere(f) {
			return true
		}
	}
	return false
}

func (t *Table) RequestsHere(floor int) bool {
	for btn := 0; btn < types.NUM_BUTTONS; btn++ {
		if t.Requests[floor][btn] {
			return true
		}
	}
	return false
}

/*
 * Floors are scanned starting at "from" (inclusive) moving one floor at a time in dirn.
 * Returns the first floor where any of btns is set, or -1.
 */
func (t *Table) Nearest(from int, dirn types.Dirn, btns ...types.ButtonType) int {
	if dirn == types.D_Idle {
		return -1
	}
	for f := from; f >= 1 && f <= t.NumFloors; f += int(dirn) {
		if t.hasAny(f, btns) {
			return f
		}
	}
	return -1
}

/*
 * Scans from the far end of the shaft back towards "to" (exclusive).
 * Returns the first floor where any of btns is set, or -1.
 */
func (t *Table) Farthest(to int, dirn types.Dirn, btns ...types.ButtonType) int {
	switch dirn {
	case types.D_Up:
		for f := t.NumFloors; f > to; f-- {
			if t.hasAny(f, btns) {
				return f
			}
		}
	case types.D_Down:
		for f := 1; f < to; f++ {
			if t.hasAny(f, btns) {
				return f
			}
		}
	}
	return -1
}

func (t *Table) hasAny(floor int, btns []types.ButtonType) bool {
	for _, btn := range btns {
		if t.Requests[floor][btn] {
			return true
		}
	}
	return false
}

func (t *Table) Pending(btn types.ButtonType) []int {
	floors := []int{}
	for floor := 1; floor <= t.NumFloors; floor++ {
		if t.Requests[floor][btn] {
			floors = append(floors, floor)
		}
	}
	return floors
}

func (t *Table) Clone() (*Table, error) {
	clone := new(Table)
	err := deepcopy.Copy(clone, t)
	if err != nil {
		return nil, err
	}
	return clone, nil
}
