package services

import (
	"testing"

	"wayfinder-backend/algorithms"
	"wayfinder-backend/models"
)

func TestRoomIndexMatchesGridTags(t *testing.T) {
	plan := algorithms.DefaultFloorPlan()
	grid := algorithms.NewGridFromPlan(plan)
	idx := NewRoomIndex(plan.Rooms)

	for y := 0; y < grid.Height(); y += 3 {
		for x := 0; x < grid.Width(); x += 3 {
			p := models.Coordinate{X: x, Y: y}
			want, wantOK := grid.RoomAt(p)
			got, ok := idx.RoomAt(p)
			if ok != wantOK || got.ID != want {
				t.Fatalf("RoomAt(%v) = %q,%v; grid says %q,%v", p, got.ID, ok, want, wantOK)
			}
		}
	}
}

func TestRoomIndexOverlapLaterWins(t *testing.T) {
	idx := NewRoomIndex([]models.RoomRegion{
		{ID: "hall", X1: 0, Y1: 0, X2: 9, Y2: 9},
		{ID: "closet", X1: 7, Y1: 7, X2: 3, Y2: 3},
	})
	if r, _ := idx.RoomAt(models.Coordinate{X: 5, Y: 5}); r.ID != "closet" {
		t.Errorf("RoomAt(5,5) = %q, want closet", r.ID)
	}
	if r, _ := idx.RoomAt(models.Coordinate{X: 1, Y: 1}); r.ID != "hall" {
		t.Errorf("RoomAt(1,1) = %q, want hall", r.ID)
	}
	if _, ok := idx.RoomAt(models.Coordinate{X: 10, Y: 10}); ok {
		t.Error("RoomAt(10,10) found a room outside every region")
	}
}

func TestRoomIndexLookupAndView(t *testing.T) {
	idx := NewRoomIndex(algorithms.DefaultFloorPlan().Rooms)

	dining, ok := idx.Lookup("dining")
	if !ok {
		t.Fatal("dining not found")
	}
	if dining.Center() != (models.Coordinate{X: 22, Y: 22}) {
		t.Errorf("dining center = %v", dining.Center())
	}

	view := idx.RoomsInView(0, 0, 30, 30)
	ids := map[string]bool{}
	for _, r := range view {
		ids[r.ID] = true
	}
	if !ids["dining"] {
		t.Errorf("RoomsInView missing dining: %v", view)
	}
	if ids["study"] {
		t.Errorf("RoomsInView includes study: %v", view)
	}
}

func TestRoomsAlong(t *testing.T) {
	idx := NewRoomIndex([]models.RoomRegion{
		{ID: "a", X1: 0, Y1: 0, X2: 1, Y2: 3},
		{ID: "b", X1: 3, Y1: 0, X2: 5, Y2: 3},
	})
	route := models.Route{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}, {X: 4, Y: 1}}
	got := idx.RoomsAlong(route)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("RoomsAlong = %v, want [a b]", got)
	}
}
