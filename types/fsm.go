package types

type ElevBehaviour int

const (
	EB_Idle ElevBehaviour = iota
	EB_ScanUp
	EB_ScanDown
)

func (eb ElevBehaviour) String() string {
	switch eb {
	case EB_Idle:
		return "IDLE"
	case EB_ScanUp:
		return "SCAN_UP"
	case EB_ScanDown:
		return "SCAN_DOWN"
	default:
		return "UNDEFINED"
	}
}

func BehaviourOf(dirn Dirn) ElevBehaviour {
	switch dirn {
	case D_Up:
		return EB_ScanUp
	case D_Down:
		return EB_ScanDown
	default:
		return EB_Idle
	}
}

/*
 * Result of one scheduling decision.
 * When Move is false the elevator stays on its floor and only ElevDirn applies.
 */
type FsmOutput struct {
	ElevDirn    Dirn
	Move        bool
	TargetFloor int
	ClearOrders [NUM_BUTTONS]bool
}
