package types

import (
	"fmt"
	"strings"
	"time"
)

type Dirn int

const (
	D_Down Dirn = -1
	D_Idle Dirn = 0
	D_Up   Dirn = 1
)

func (d Dirn) String() string {
	switch d {
	case D_Up:
		return "UP"
	case D_Down:
		return "DOWN"
	case D_Idle:
		return "IDLE"
	default:
		return "UNDEFINED"
	}
}

/*
 * Only meaningful for D_Up and D_Down, D_Idle has no opposite
 */
func (d Dirn) Opposite() Dirn {
	switch d {
	case D_Up:
		return D_Down
	case D_Down:
		return D_Up
	default:
		return D_Idle
	}
}

func (d Dirn) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Dirn) UnmarshalText(text []byte) error {
	dirn, err := ParseDirn(string(text))
	if err != nil {
		return err
	}
	*d = dirn
	return nil
}

func ParseDirn(s string) (Dirn, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "UP", "U":
		return D_Up, nil
	case "DOWN", "D":
		return D_Down, nil
	case "IDLE":
		return D_Idle, nil
	default:
		return D_Idle, fmt.Errorf("unknown direction %q", s)
	}
}

type ButtonType int

const (
	BT_HallUp ButtonType = iota
	BT_HallDown
	BT_Cab
)

const NUM_BUTTONS = 3

func (b ButtonType) String() string {
	switch b {
	case BT_HallUp:
		return "hall-up"
	case BT_HallDown:
		return "hall-down"
	case BT_Cab:
		return "cab"
	default:
		return "undefined"
	}
}

type ElevConfig struct {
	ID          int
	NumFloors   int
	TravelDelay time.Duration
}

/*
 * Snapshot of one elevator taken under its lock
 */
type Status struct {
	ID       int   `json:"id"`
	Floor    int   `json:"floor"`
	Dirn     Dirn  `json:"direction"`
	Running  bool  `json:"running"`
	HallUp   []int `json:"hallUp"`
	HallDown []int `json:"hallDown"`
	Cab      []int `json:"cab"`
}

func (s Status) String() string {
	return fmt.Sprintf("elevator %d: floor %d, direction %s", s.ID, s.Floor, s.Dirn)
}
