package fleet

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"elevatorbank/elev"
	"elevatorbank/fsm"
	"elevatorbank/logger"
	"elevatorbank/types"
)

var Log = logger.GetLogger()

var (
	ErrNoEligibleElevator = errors.New("no eligible elevator")
	ErrInvalidDirection   = errors.New("hall calls must be UP or DOWN")
	ErrUnknownElevator    = errors.New("unknown elevator")
)

/*
 * What the dispatcher needs from an elevator, *elev.Elevator satisfies it
 */
type Car interface {
	RequestUp(floor int) error
	RequestDown(floor int) error
	RequestFloor(floor int) error
	Status() types.Status
	Route() ([]int, error)
	Shutdown()
}

/*
 * Fixed set of elevators, the index in cars is the elevator id
 */
type Fleet struct {
	numFloors int
	cars      []Car
}

func New(numElevators int, numFloors int, travelDelay time.Duration) (*Fleet, error) {
	if numElevators < 1 {
		return nil, fmt.Errorf("%w: need at least one elevator, got %d", elev.ErrInvalidConfig, numElevators)
	}

	cars := make([]Car, 0, numElevators)

	for id := 0; id < numElevators; id++ {
		elevConfig, err := elev.InitConfig(id, numFloors, travelDelay)
		if err == nil {
			var e *elev.Elevator
			e, err = elev.New(elevConfig)
			if err == nil {
				cars = append(cars, e)
				continue
			}
		}

		/*
		 * Do not leave the already started workers behind
		 */
		NewWithCars(numFloors, cars...).Shutdown()
		return nil, err
	}

	return NewWithCars(numFloors, cars...), nil
}

func NewWithCars(numFloors int, cars ...Car) *Fleet {
	return &Fleet{
		numFloors: numFloors,
		cars:      cars,
	}
}

func (f *Fleet) Size() int {
	return len(f.cars)
}

func (f *Fleet) NumFloors() int {
	return f.numFloors
}

/*
 * Hands a hall call to the closest elevator that is idle or already heading
 * the requested way. Ties go to the lowest id. The decision uses a snapshot of
 * each elevator and may race with their workers, dispatch is best effort.
 */
func (f *Fleet) AssignRequest(floor int, dirn types.Dirn) (int, error) {
	if dirn != types.D_Up && dirn != types.D_Down {
		return -1, fmt.Errorf("%w: got %v", ErrInvalidDirection, dirn)
	}

	if floor < 1 || floor >= f.numFloors {
		return -1, fmt.Errorf("%w: %d (valid floors are 1 to %d)", elev.ErrInvalidFloor, floor, f.numFloors-1)
	}

	bestElevator := -1
	minDistance := 0

	for id, car := range f.cars {
		distance := fsm.DispatchCost(car.Status(), floor, dirn)

		if distance == fsm.NOT_ELIGIBLE {
			continue
		}

		if bestElevator == -1 || distance < minDistance {
			bestElevator = id
			minDistance = distance
		}
	}

	if bestElevator == -1 {
		Log.Warn().Int("floor", floor).Stringer("dirn", dirn).Msg("No eligible elevator, call dropped")
		return -1, fmt.Errorf("%w for %v call at floor %d", ErrNoEligibleElevator, dirn, floor)
	}

	var err error
	if dirn == types.D_Up {
		err = f.cars[bestElevator].RequestUp(floor)
	} else {
		err = f.cars[bestElevator].RequestDown(floor)
	}

	if err != nil {
		return -1, err
	}

	Log.Info().
		Int("elevator", bestElevator).
		Int("floor", floor).
		Stringer("dirn", dirn).
		Int("distance", minDistance).
		Msg("Call dispatched")

	return bestElevator, nil
}

func (f *Fleet) RequestFloor(id int, floor int) error {
	car, err := f.car(id)
	if err != nil {
		return err
	}
	return car.RequestFloor(floor)
}

func (f *Fleet) Status(id int) (types.Status, error) {
	car, err := f.car(id)
	if err != nil {
		return types.Status{}, err
	}
	return car.Status(), nil
}

func (f *Fleet) Route(id int) ([]int, error) {
	car, err := f.car(id)
	if err != nil {
		return nil, err
	}
	return car.Route()
}

func (f *Fleet) Statuses() []types.Status {
	statuses := make([]types.Status, len(f.cars))
	for id, car := range f.cars {
		statuses[id] = car.Status()
	}
	return statuses
}

/*
 * Shuts every elevator down and waits for all workers to exit
 */
func (f *Fleet) Shutdown() {
	var waitGroup sync.WaitGroup

	for _, car := range f.cars {
		waitGroup.Add(1)
		go func(car Car) {
			defer waitGroup.Done()
			car.Shutdown()
		}(car)
	}

	waitGroup.Wait()
	Log.Info().Int("elevators", len(f.cars)).Msg("Fleet shut down")
}

func (f *Fleet) car(id int) (Car, error) {
	if id < 0 || id >= len(f.cars) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownElevator, id)
	}
	return f.cars[id], nil
}
