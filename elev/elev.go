package elev

import (
	"time"

	"elevatorbank/fsm"
	"elevatorbank/logger"
	"elevatorbank/types"
)

var Log = logger.GetLogger()

/*
 * Worker loop: one scheduling decision per iteration.
 * Suspends on e.wake while nothing is pending, sleeps the travel delay
 * outside the lock after every move.
 */
func (e *Elevator) run() {
	defer e.waitGroup.Done()

	for {
		e.mu.Lock()

		for e.running && !e.table.Any() {
			if e.dirn != types.D_Idle {
				Log.Debug().Int("elevator", e.config.ID).Int("floor", e.floor).Msg("No pending requests, going idle")
			}
			e.dirn = types.D_Idle
			e.wake.Wait()
		}

		if !e.running {
			e.mu.Unlock()
			Log.Info().Int("elevator", e.config.ID).Msg("Elevator worker stopped")
			return
		}

		fsmOutput := fsm.Next(e.table, e.floor, e.dirn)
		moved := e.setState(fsmOutput)

		e.mu.Unlock()

		if moved && e.config.TravelDelay > 0 {
			time.Sleep(e.config.TravelDelay)
		}
	}
}

/*
 * Applies an fsm decision. Must hold e.mu. Returns true if the car moved (or
 * stopped in place to serve a call).
 */
func (e *Elevator) setState(fsmOutput types.FsmOutput) bool {
	oldDirn := e.dirn
	e.dirn = fsmOutput.ElevDirn

	if oldDirn != e.dirn {
		Log.Debug().
			Int("elevator", e.config.ID).
			Int("floor", e.floor).
			Str("from", types.BehaviourOf(oldDirn).String()).
			Str("to", types.BehaviourOf(e.dirn).String()).
			Msg("Direction changed")
	}

	if !fsmOutput.Move {
		return false
	}

	oldFloor := e.floor
	e.floor = fsmOutput.TargetFloor

	/*
	 * Clear served requests
	 */
	for btn, clearOrder := range fsmOutput.ClearOrders {
		if clearOrder {
			e.table.Clear(types.ButtonType(btn), e.floor)
		}
	}

	Log.Info().
		Int("elevator", e.config.ID).
		Int("from", oldFloor).
		Int("to", e.floor).
		Stringer("dirn", e.dirn).
		Msg("Elevator arrived")

	if e.onArrival != nil {
		e.onArrival(e.floor)
	}

	return true
}
