package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"elevatorbank/elev"
	"elevatorbank/fleet"
	"elevatorbank/logger"
	"elevatorbank/types"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func init() {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)
}

type fakeDispatcher struct {
	statuses  []types.Status
	assignErr error
	assigned  []hallCall
	cabCalls  map[int][]int
}

func newFakeDispatcher() *fakeDispatcher {
	return &fakeDispatcher{
		statuses: []types.Status{
			{ID: 0, Floor: 1, Dirn: types.D_Idle, Running: true, HallUp: []int{}, HallDown: []int{}, Cab: []int{}},
			{ID: 1, Floor: 6, Dirn: types.D_Down, Running: true, HallUp: []int{}, HallDown: []int{3}, Cab: []int{2}},
		},
		cabCalls: map[int][]int{},
	}
}

func (f *fakeDispatcher) AssignRequest(floor int, dirn types.Dirn) (int, error) {
	if dirn != types.D_Up && dirn != types.D_Down {
		return -1, fleet.ErrInvalidDirection
	}
	if floor < 1 || floor >= 10 {
		return -1, fmt.Errorf("%w: %d", elev.ErrInvalidFloor, floor)
	}
	if f.assignErr != nil {
		return -1, f.assignErr
	}
	f.assigned = append(f.assigned, hallCall{Floor: floor, Direction: dirn})
	return 1, nil
}

func (f *fakeDispatcher) RequestFloor(id int, floor int) error {
	if id < 0 || id >= len(f.statuses) {
		return fleet.ErrUnknownElevator
	}
	if !f.statuses[id].Running {
		return elev.ErrShutdown
	}
	if floor < 1 || floor >= 10 {
		return elev.ErrInvalidFloor
	}
	f.cabCalls[id] = append(f.cabCalls[id], floor)
	return nil
}

func (f *fakeDispatcher) Status(id int) (types.Status, error) {
	if id < 0 || id >= len(f.statuses) {
		return types.Status{}, fleet.ErrUnknownElevator
	}
	return f.statuses[id], nil
}

func (f *fakeDispatcher) Route(id int) ([]int, error) {
	if id < 0 || id >= len(f.statuses) {
		return nil, fleet.ErrUnknownElevator
	}
	return f.statuses[id].Cab, nil
}

func (f *fakeDispatcher) Statuses() []types.Status {
	return f.statuses
}

func serve(t *testing.T, s *Server, method string, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func TestGetElevators(t *testing.T) {
	s := NewServer(":0", newFakeDispatcher())

	rec := serve(t, s, http.MethodGet, "/elevators", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var statuses []types.Status
	if err := json.Unmarshal(rec.Body.Bytes(), &statuses); err != nil {
		t.Fatalf("Bad body %s: %v", rec.Body.String(), err)
	}
	if len(statuses) != 2 || statuses[1].Dirn != types.D_Down || statuses[1].Cab[0] != 2 {
		t.Errorf("Unexpected statuses %+v", statuses)
	}
}

func TestGetElevator(t *testing.T) {
	s := NewServer(":0", newFakeDispatcher())

	rec := serve(t, s, http.MethodGet, "/elevators/1", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"floor":6`) {
		t.Errorf("Expected elevator 1 on floor 6, got %d %s", rec.Code, rec.Body.String())
	}

	for _, path := range []string{"/elevators/5", "/elevators/-1", "/elevators/abc"} {
		if rec := serve(t, s, http.MethodGet, path, ""); rec.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", path, rec.Code)
		}
	}
}

func TestGetRoute(t *testing.T) {
	s := NewServer(":0", newFakeDispatcher())

	rec := serve(t, s, http.MethodGet, "/elevators/1/route", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var result route
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("Bad body %s: %v", rec.Body.String(), err)
	}
	if result.Elevator != 1 || len(result.Stops) != 1 || result.Stops[0] != 2 {
		t.Errorf("Unexpected route %+v", result)
	}

	if rec := serve(t, s, http.MethodGet, "/elevators/7/route", ""); rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown elevator, got %d", rec.Code)
	}
}

func TestPostCall(t *testing.T) {
	dispatcher := newFakeDispatcher()
	s := NewServer(":0", dispatcher)

	rec := serve(t, s, http.MethodPost, "/calls", `{"floor":4,"direction":"UP"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d %s", rec.Code, rec.Body.String())
	}

	var result assignment
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("Bad body %s: %v", rec.Body.String(), err)
	}
	if result.Elevator != 1 || result.Floor != 4 || result.Direction != types.D_Up {
		t.Errorf("Unexpected assignment %+v", result)
	}
	if len(dispatcher.assigned) != 1 || dispatcher.assigned[0].Direction != types.D_Up {
		t.Errorf("Expected one UP call to be dispatched, got %+v", dispatcher.assigned)
	}
}

func TestPostCallErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		assignErr error
		expected  int
	}{
		{"invalid floor", `{"floor":0,"direction":"DOWN"}`, nil, http.StatusBadRequest},
		{"idle direction", `{"floor":3,"direction":"IDLE"}`, nil, http.StatusBadRequest},
		{"unknown direction", `{"floor":3,"direction":"SIDEWAYS"}`, nil, http.StatusBadRequest},
		{"malformed body", `{"floor":`, nil, http.StatusBadRequest},
		{"no eligible elevator", `{"floor":3,"direction":"UP"}`, fleet.ErrNoEligibleElevator, http.StatusConflict},
		{"shut down", `{"floor":3,"direction":"UP"}`, elev.ErrShutdown, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dispatcher := newFakeDispatcher()
			dispatcher.assignErr = tt.assignErr
			s := NewServer(":0", dispatcher)

			rec := serve(t, s, http.MethodPost, "/calls", tt.body)
			if rec.Code != tt.expected {
				t.Errorf("Expected %d, got %d %s", tt.expected, rec.Code, rec.Body.String())
			}
			if len(dispatcher.assigned) != 0 {
				t.Errorf("Expected no dispatched calls, got %+v", dispatcher.assigned)
			}
		})
	}
}

func TestPostFloor(t *testing.T) {
	dispatcher := newFakeDispatcher()
	s := NewServer(":0", dispatcher)

	rec := serve(t, s, http.MethodPost, "/elevators/0/floors", `{"floor":7}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	if calls := dispatcher.cabCalls[0]; len(calls) != 1 || calls[0] != 7 {
		t.Errorf("Expected cab call to 7, got %v", calls)
	}

	if rec := serve(t, s, http.MethodPost, "/elevators/0/floors", `{"floor":10}`); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid floor, got %d", rec.Code)
	}
	if rec := serve(t, s, http.MethodPost, "/elevators/9/floors", `{"floor":3}`); rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown elevator, got %d", rec.Code)
	}

	dispatcher.statuses[1].Running = false
	if rec := serve(t, s, http.MethodPost, "/elevators/1/floors", `{"floor":3}`); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 after shutdown, got %d", rec.Code)
	}
}

func TestServerAgainstRealFleet(t *testing.T) {
	f, err := fleet.New(2, 10, 0)
	if err != nil {
		t.Fatalf("fleet.New failed: %v", err)
	}
	s := NewServer(":0", f)

	rec := serve(t, s, http.MethodPost, "/calls", `{"floor":5,"direction":"DOWN"}`)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"elevator":0`) {
		t.Errorf("Expected elevator 0 to take the call, got %d %s", rec.Code, rec.Body.String())
	}

	f.Shutdown()

	if rec := serve(t, s, http.MethodPost, "/elevators/1/floors", `{"floor":3}`); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 after shutdown, got %d", rec.Code)
	}
	if rec := serve(t, s, http.MethodPost, "/calls", `{"floor":3,"direction":"UP"}`); rec.Code != http.StatusConflict {
		t.Errorf("Expected 409 once every elevator has stopped, got %d", rec.Code)
	}
}
