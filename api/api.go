package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"elevatorbank/elev"
	"elevatorbank/fleet"
	"elevatorbank/logger"
	"elevatorbank/types"

	"github.com/labstack/echo/v4"
)

const SHUTDOWN_TIMEOUT = 5 * time.Second

var Log = logger.GetLogger()

/*
 * The part of the fleet the HTTP surface talks to
 */
type Dispatcher interface {
	AssignRequest(floor int, dirn types.Dirn) (int, error)
	RequestFloor(id int, floor int) error
	Status(id int) (types.Status, error)
	Route(id int) ([]int, error)
	Statuses() []types.Status
}

type Server struct {
	addr       string
	dispatcher Dispatcher
	echo       *echo.Echo
}

type hallCall struct {
	Floor     int        `json:"floor"`
	Direction types.Dirn `json:"direction"`
}

type route struct {
	Elevator int   `json:"elevator"`
	Stops    []int `json:"stops"`
}

type cabCall struct {
	Floor int `json:"floor"`
}

type assignment struct {
	Elevator  int        `json:"elevator"`
	Floor     int        `json:"floor"`
	Direction types.Dirn `json:"direction"`
}

func NewServer(addr string, dispatcher Dispatcher) *Server {
	s := &Server{
		addr:       addr,
		dispatcher: dispatcher,
		echo:       echo.New(),
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true

	/*
	 * curl http://localhost:8080/elevators
 * curl http://localhost:8080/elevators/0/route
	 * curl -X POST -H "Content-type: application/json" -d '{"floor":4,"direction":"UP"}' http://localhost:8080/calls
	 * curl -X POST -H "Content-type: application/json" -d '{"floor":7}' http://localhost:8080/elevators/0/floors
	 */
	s.echo.GET("/elevators", s.getElevators)
	s.echo.GET("/elevators/:id", s.getElevator)
	s.echo.GET("/elevators/:id/route", s.getRoute)
	s.echo.POST("/calls", s.postCall)
	s.echo.POST("/elevators/:id/floors", s.postFloor)

	return s
}

/*
 * Serves until ctx is cancelled, then shuts the HTTP server down gracefully
 */
func (s *Server) Start(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(2)

	go func() {
		defer wg.Done()

		Log.Info().Str("addr", s.addr).Msg("HTTP server started")
		err := s.echo.Start(s.addr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			Log.Error().Err(err).Str("addr", s.addr).Msg("HTTP server failed")
		}
	}()

	go func() {
		defer wg.Done()
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
		defer cancel()

		err := s.echo.Shutdown(shutdownCtx)
		if err != nil {
			Log.Error().Err(err).Msg("HTTP server shutdown failed")
			return
		}
		Log.Info().Msg("HTTP server stopped")
	}()
}

func (s *Server) getElevators(c echo.Context) error {
	return c.JSON(http.StatusOK, s.dispatcher.Statuses())
}

func (s *Server) getElevator(c echo.Context) error {
	id, err := getParam(c, "id")
	if err != nil {
		return errorResponse(c, err)
	}

	status, err := s.dispatcher.Status(id)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, status)
}

func (s *Server) getRoute(c echo.Context) error {
	id, err := getParam(c, "id")
	if err != nil {
		return errorResponse(c, err)
	}

	stops, err := s.dispatcher.Route(id)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, route{Elevator: id, Stops: stops})
}

func (s *Server) postCall(c echo.Context) error {
	var call hallCall
	if err := c.Bind(&call); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"message": "malformed call"})
	}

	id, err := s.dispatcher.AssignRequest(call.Floor, call.Direction)
	if err != nil {
		Log.Info().Err(err).Int("floor", call.Floor).Stringer("dirn", call.Direction).Msg("POST call rejected")
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, assignment{
		Elevator:  id,
		Floor:     call.Floor,
		Direction: call.Direction,
	})
}

func (s *Server) postFloor(c echo.Context) error {
	id, err := getParam(c, "id")
	if err != nil {
		return errorResponse(c, err)
	}

	var call cabCall
	if err := c.Bind(&call); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"message": "malformed cab call"})
	}

	err = s.dispatcher.RequestFloor(id, call.Floor)
	if err != nil {
		Log.Info().Err(err).Int("elevator", id).Int("floor", call.Floor).Msg("POST floor rejected")
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, assignment{
		Elevator:  id,
		Floor:     call.Floor,
		Direction: types.D_Idle,
	})
}

func getParam(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return -1, fleet.ErrUnknownElevator
	}
	return id, nil
}

func errorResponse(c echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, elev.ErrInvalidFloor), errors.Is(err, fleet.ErrInvalidDirection):
		code = http.StatusBadRequest
	case errors.Is(err, fleet.ErrUnknownElevator):
		code = http.StatusNotFound
	case errors.Is(err, fleet.ErrNoEligibleElevator):
		code = http.StatusConflict
	case errors.Is(err, elev.ErrShutdown):
		code = http.StatusServiceUnavailable
	}

	return c.JSON(code, map[string]interface{}{"message": err.Error()})
}
