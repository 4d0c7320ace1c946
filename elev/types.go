package elev

import (
	"errors"
	"sync"

	"elevatorbank/requests"
	"elevatorbank/types"
)

var (
	ErrInvalidFloor  = errors.New("invalid floor")
	ErrInvalidConfig = errors.New("invalid elevator config")
	ErrShutdown      = errors.New("elevator is shut down")
)

/*
 * One elevator: the request table, floor and direction are guarded by mu.
 * Façade calls only add requests, the worker goroutine alone moves the car.
 */
type Elevator struct {
	config types.ElevConfig

	mu      sync.Mutex
	wake    *sync.Cond
	table   *requests.Table
	floor   int
	dirn    types.Dirn
	running bool

	onArrival func(floor int)

	waitGroup    sync.WaitGroup
	shutdownOnce sync.Once
}
