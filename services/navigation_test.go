package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"wayfinder-backend/algorithms"
	"wayfinder-backend/models"
)

func corridorFloor() models.FloorPlan {
	return models.FloorPlan{
		ID:         "corridor",
		Width:      12,
		Height:     10,
		Walls:      []models.Segment{models.VSeg(8, 1, 6)},
		TrunkPaths: []models.Segment{models.HSeg(5, 2, 6)},
		Rooms: []models.RoomRegion{
			{ID: "west", X1: 1, Y1: 1, X2: 7, Y2: 8},
			{ID: "east", X1: 9, Y1: 1, X2: 10, Y2: 8},
		},
	}
}

func newTestService(t *testing.T, broadcast func(models.WebSocketMessage)) *NavigationService {
	t.Helper()
	registry := NewFloorRegistry()
	if _, err := registry.Register(corridorFloor(), FloorSourceBuiltin); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return NewNavigationService(registry, broadcast)
}

func coord(x, y int) *models.Coordinate {
	return &models.Coordinate{X: x, Y: y}
}

func TestNavigateRouteBetween(t *testing.T) {
	var (
		mu       sync.Mutex
		messages []models.WebSocketMessage
	)
	svc := newTestService(t, func(m models.WebSocketMessage) {
		mu.Lock()
		messages = append(messages, m)
		mu.Unlock()
	})

	result, err := svc.Navigate(models.NavigateRequest{
		FloorID: "corridor",
		From:    models.Coordinate{X: 4, Y: 2},
		To:      coord(10, 2),
	})
	if err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if !result.Found() {
		t.Fatal("expected a route")
	}
	if result.SessionID == "" {
		t.Error("session id not assigned")
	}
	if result.Junction == nil || *result.Junction != (models.Coordinate{X: 4, Y: 5}) {
		t.Errorf("junction = %v, want (4,5)", result.Junction)
	}
	if len(result.Rooms) != 2 || result.Rooms[0] != "west" || result.Rooms[1] != "east" {
		t.Errorf("rooms = %v, want [west east]", result.Rooms)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(messages) != 1 || messages[0].Type != models.MessageTypeRouteUpdate {
		t.Fatalf("broadcast = %+v, want one route_update", messages)
	}
	data := messages[0].Data.(models.RouteData)
	if len(data.Points) != len(result.Route) {
		t.Errorf("broadcast points = %d, want %d", len(data.Points), len(result.Route))
	}
}

func TestNavigateFailureKeepsCurrentRoute(t *testing.T) {
	var last models.WebSocketMessage
	svc := newTestService(t, func(m models.WebSocketMessage) { last = m })

	first, err := svc.Navigate(models.NavigateRequest{
		SessionID: "s1",
		FloorID:   "corridor",
		From:      models.Coordinate{X: 4, Y: 2},
	})
	if err != nil || !first.Found() {
		t.Fatalf("first request failed: %v", err)
	}

	failed, err := svc.Navigate(models.NavigateRequest{
		SessionID: "s1",
		FloorID:   "corridor",
		From:      models.Coordinate{X: 4, Y: 2},
		To:        coord(8, 3),
	})
	if err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if failed.Found() {
		t.Fatal("route into a wall should not be found")
	}
	if last.Type != models.MessageTypeRouteFailed {
		t.Errorf("last broadcast = %q, want route_failed", last.Type)
	}

	current, err := svc.CurrentRoute("s1")
	if err != nil {
		t.Fatalf("CurrentRoute: %v", err)
	}
	if current.Operation != OperationRouteToTrunk || len(current.Route) != len(first.Route) {
		t.Errorf("current = %s/%d cells, want route_to_trunk/%d", current.Operation, len(current.Route), len(first.Route))
	}
}

func TestNavigateUnknownFloor(t *testing.T) {
	svc := newTestService(t, nil)
	_, err := svc.Navigate(models.NavigateRequest{FloorID: "missing"})
	if !errors.Is(err, ErrFloorNotFound) {
		t.Errorf("err = %v, want ErrFloorNotFound", err)
	}
}

func TestCurrentRouteUnknownSession(t *testing.T) {
	svc := newTestService(t, nil)
	if _, err := svc.CurrentRoute("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestNavigateFloorSwitchResetsSession(t *testing.T) {
	svc := newTestService(t, nil)
	if _, err := svc.Registry().Register(algorithms.DefaultFloorPlan(), FloorSourceBuiltin); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Navigate(models.NavigateRequest{SessionID: "s", FloorID: "corridor", From: models.Coordinate{X: 4, Y: 2}}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Navigate(models.NavigateRequest{SessionID: "s", FloorID: algorithms.DefaultFloorID, From: models.Coordinate{X: 20, Y: 25}, To: coord(0, 0)}); err != nil {
		t.Fatal(err)
	}

	current, err := svc.CurrentRoute("s")
	if err != nil {
		t.Fatal(err)
	}
	if current.FloorID != algorithms.DefaultFloorID {
		t.Errorf("floor = %q, want default", current.FloorID)
	}
	if current.Route != nil {
		t.Errorf("route = %v, want nil after switching floors", current.Route)
	}
}

func TestNearestTrunkPointService(t *testing.T) {
	svc := newTestService(t, nil)
	p, ok, err := svc.NearestTrunkPoint("corridor", models.Coordinate{X: 9, Y: 9})
	if err != nil || !ok {
		t.Fatalf("NearestTrunkPoint: %v %v", ok, err)
	}
	if p != (models.Coordinate{X: 6, Y: 5}) {
		t.Errorf("nearest = %v, want (6,5)", p)
	}
}

func TestPruneSessions(t *testing.T) {
	svc := newTestService(t, nil)
	for _, id := range []string{"a", "b"} {
		if _, err := svc.Navigate(models.NavigateRequest{SessionID: id, FloorID: "corridor", From: models.Coordinate{X: 2, Y: 2}}); err != nil {
			t.Fatal(err)
		}
	}
	if n := svc.PruneSessions(time.Hour); n != 0 {
		t.Errorf("pruned %d fresh sessions", n)
	}
	if n := svc.PruneSessions(-time.Second); n != 2 {
		t.Errorf("pruned %d sessions, want 2", n)
	}
	if ids := svc.SessionIDs(); len(ids) != 0 {
		t.Errorf("sessions left: %v", ids)
	}
}

func TestNavigateConcurrentSessions(t *testing.T) {
	svc := newTestService(t, nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := svc.Navigate(models.NavigateRequest{
				FloorID: "corridor",
				From:    models.Coordinate{X: 2, Y: 2},
				To:      coord(10, 8),
			})
			if err != nil || !res.Found() {
				t.Errorf("concurrent navigate failed: %v", err)
			}
		}()
	}
	wg.Wait()
	if n := len(svc.SessionIDs()); n != 8 {
		t.Errorf("sessions = %d, want 8", n)
	}
}
