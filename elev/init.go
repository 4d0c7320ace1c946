package elev

import (
	"fmt"
	"sync"
	"time"

	"elevatorbank/requests"
	"elevatorbank/types"
)

func InitConfig(id int, numFloors int, travelDelay time.Duration) (*types.ElevConfig, error) {
	if numFloors < 2 {
		return nil, fmt.Errorf("%w: need at least 2 floors, got %d", ErrInvalidConfig, numFloors)
	}

	if travelDelay < 0 {
		return nil, fmt.Errorf("%w: negative travel delay %v", ErrInvalidConfig, travelDelay)
	}

	elevConfig := types.ElevConfig{
		ID:          id,
		NumFloors:   numFloors,
		TravelDelay: travelDelay,
	}

	return &elevConfig, nil
}

/*
 * Creates the elevator on floor 1, idle, and starts its worker goroutine
 */
func New(elevConfig *types.ElevConfig) (*Elevator, error) {
	return start(elevConfig, nil)
}

func start(elevConfig *types.ElevConfig, onArrival func(floor int)) (*Elevator, error) {
	if elevConfig == nil {
		return nil, fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}

	_, err := InitConfig(elevConfig.ID, elevConfig.NumFloors, elevConfig.TravelDelay)
	if err != nil {
		return nil, err
	}

	e := &Elevator{
		config:  *elevConfig,
		table:   requests.NewTable(elevConfig.NumFloors),
		floor:   1,
		dirn:    types.D_Idle,
		running: true,

		onArrival: onArrival,
	}
	e.wake = sync.NewCond(&e.mu)

	e.waitGroup.Add(1)
	go e.run()

	Log.Info().
		Int("elevator", e.config.ID).
		Int("floors", e.config.NumFloors).
		Dur("travelDelay", e.config.TravelDelay).
		Msg("Elevator started")

	return e, nil
}

func (e *Elevator) ID() int {
	return e.config.ID
}

func (e *Elevator) NumFloors() int {
	return e.config.NumFloors
}
