package elev

import (
	"fmt"

	"elevatorbank/fsm"
	"elevatorbank/types"
)

func (e *Elevator) RequestUp(floor int) error {
	return e.request(types.BT_HallUp, floor)
}

func (e *Elevator) RequestDown(floor int) error {
	return e.request(types.BT_HallDown, floor)
}

func (e *Elevator) RequestFloor(floor int) error {
	return e.request(types.BT_Cab, floor)
}

/*
 * Validates before touching any state, a rejected request neither mutates
 * the table nor wakes the worker.
 */
func (e *Elevator) request(btn types.ButtonType, floor int) error {
	if floor < 1 || floor >= e.config.NumFloors {
		Log.Warn().
			Int("elevator", e.config.ID).
			Int("floor", floor).
			Stringer("button", btn).
			Msg("Rejected request for invalid floor")
		return fmt.Errorf("%w: %d (valid floors are 1 to %d)", ErrInvalidFloor, floor, e.config.NumFloors-1)
	}

	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return fmt.Errorf("elevator %d: %w", e.config.ID, ErrShutdown)
	}
	e.table.Set(btn, floor)
	e.mu.Unlock()

	e.wake.Signal()

	Log.Info().
		Int("elevator", e.config.ID).
		Int("floor", floor).
		Stringer("button", btn).
		Msg("Request received")

	return nil
}

func (e *Elevator) Status() types.Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	return types.Status{
		ID:       e.config.ID,
		Floor:    e.floor,
		Dirn:     e.dirn,
		Running:  e.running,
		HallUp:   e.table.Pending(types.BT_HallUp),
		HallDown: e.table.Pending(types.BT_HallDown),
		Cab:      e.table.Pending(types.BT_Cab),
	}
}

/*
 * Stops the worker and waits for it to exit. A move in progress finishes
 * its delay first. Safe to call more than once.
 */
func (e *Elevator) Shutdown() {
	e.shutdownOnce.Do(func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()

		e.wake.Broadcast()

		Log.Info().Int("elevator", e.config.ID).Msg("Elevator shutting down")
	})

	e.waitGroup.Wait()
}

/*
 * Planned stops from the current state, see fsm.PlanRoute
 */
func (e *Elevator) Route() ([]int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return fsm.PlanRoute(e.table, e.floor, e.dirn)
}
