package algorithms

import (
	"testing"

	"wayfinder-backend/models"
)

func c(x, y int) models.Coordinate { return models.Coordinate{X: x, Y: y} }

func TestNewGridPanicsOnInvalidSize(t *testing.T) {
	for _, size := range [][2]int{{0, 5}, {5, 0}, {-1, 3}, {MaxGridDimension + 1, 5}, {5, MaxGridDimension + 1}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NewGrid(%d, %d) did not panic", size[0], size[1])
				}
			}()
			NewGrid(size[0], size[1])
		}()
	}
}

func TestCellAtBounds(t *testing.T) {
	g := NewGrid(4, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			cell, ok := g.CellAt(c(x, y))
			if !ok {
				t.Fatalf("CellAt(%d,%d) absent inside bounds", x, y)
			}
			if !cell.Walkable || cell.OnTrunkPath || cell.HasRoom() {
				t.Errorf("CellAt(%d,%d) = %+v, want default cell", x, y, cell)
			}
		}
	}

	outside := []models.Coordinate{c(-1, 0), c(0, -1), c(4, 0), c(0, 3), c(100, 100)}
	for _, p := range outside {
		if _, ok := g.CellAt(p); ok {
			t.Errorf("CellAt(%v) present outside bounds", p)
		}
		if g.IsWalkable(p) {
			t.Errorf("IsWalkable(%v) = true outside bounds", p)
		}
		if g.IsOnTrunkPath(p) {
			t.Errorf("IsOnTrunkPath(%v) = true outside bounds", p)
		}
		if n := g.Neighbors(p); len(n) != 0 {
			t.Errorf("Neighbors(%v) = %v outside bounds", p, n)
		}
	}
}

func TestBuildFloorPlanPerimeter(t *testing.T) {
	g := NewGridFromPlan(models.FloorPlan{Width: 6, Height: 5})
	for y := 0; y < 5; y++ {
		for x := 0; x < 6; x++ {
			border := x == 0 || y == 0 || x == 5 || y == 4
			if got := g.IsWalkable(c(x, y)); got == border {
				t.Errorf("IsWalkable(%d,%d) = %v, border=%v", x, y, got, border)
			}
		}
	}
}

func TestBuildFloorPlanTaggingKeepsWalkability(t *testing.T) {
	plan := models.FloorPlan{
		Width:      10,
		Height:     10,
		Walls:      []models.Segment{models.VSeg(5, 1, 8)},
		TrunkPaths: []models.Segment{models.HSeg(4, 1, 8)},
		Rooms:      []models.RoomRegion{{ID: "hall", X1: 3, Y1: 3, X2: 6, Y2: 6}},
	}
	g := NewGridFromPlan(plan)

	wallOnTrunk, _ := g.CellAt(c(5, 4))
	if wallOnTrunk.Walkable {
		t.Error("trunk tagging made a wall cell walkable")
	}
	if !wallOnTrunk.OnTrunkPath {
		t.Error("trunk tag missing on wall cell")
	}
	if wallOnTrunk.RoomID != "hall" {
		t.Errorf("room tag = %q, want hall", wallOnTrunk.RoomID)
	}

	roomCell, _ := g.CellAt(c(3, 3))
	if !roomCell.Walkable || roomCell.OnTrunkPath {
		t.Errorf("room cell = %+v, want walkable and off trunk", roomCell)
	}
	if room, ok := g.RoomAt(c(6, 6)); !ok || room != "hall" {
		t.Errorf("RoomAt(6,6) = %q,%v", room, ok)
	}
	if _, ok := g.RoomAt(c(7, 7)); ok {
		t.Error("RoomAt(7,7) tagged outside region")
	}
}

func TestBuildFloorPlanResets(t *testing.T) {
	g := NewGridFromPlan(models.FloorPlan{
		Width:  8,
		Height: 8,
		Walls:  []models.Segment{models.HSeg(3, 1, 6)},
	})
	g.BuildFloorPlan(models.FloorPlan{Width: 8, Height: 8})
	if !g.IsWalkable(c(3, 3)) {
		t.Error("rebuild kept a wall from the previous plan")
	}
}

func TestBuildFloorPlanSkipsOutOfBoundsSegments(t *testing.T) {
	g := NewGridFromPlan(models.FloorPlan{
		Width:  5,
		Height: 5,
		Walls:  []models.Segment{models.VSeg(2, 3, 10), models.HSeg(-3, 0, 4)},
		Rooms:  []models.RoomRegion{{ID: "big", X1: -5, Y1: -5, X2: 50, Y2: 50}},
	})
	if g.IsWalkable(c(2, 3)) {
		t.Error("in-bounds part of wall not applied")
	}
	if room, _ := g.RoomAt(c(2, 2)); room != "big" {
		t.Errorf("RoomAt(2,2) = %q, want big", room)
	}
}

func TestBuildFloorPlanHugeExtents(t *testing.T) {
	g := NewGridFromPlan(models.FloorPlan{
		Width:      6,
		Height:     6,
		Walls:      []models.Segment{models.HSeg(2, -1_000_000_000_000, 1_000_000_000_000)},
		TrunkPaths: []models.Segment{models.VSeg(4, 1_000_000_000, 3)},
		Rooms:      []models.RoomRegion{{ID: "all", X1: -1 << 40, Y1: -1 << 40, X2: 1 << 40, Y2: 1 << 40}},
	})
	for x := 0; x < 6; x++ {
		if g.IsWalkable(c(x, 2)) {
			t.Errorf("IsWalkable(%d,2) = true, want wall", x)
		}
	}
	if !g.IsOnTrunkPath(c(4, 3)) || !g.IsOnTrunkPath(c(4, 5)) || g.IsOnTrunkPath(c(4, 2)) {
		t.Error("clipped trunk segment applied incorrectly")
	}
	if room, _ := g.RoomAt(c(5, 5)); room != "all" {
		t.Errorf("RoomAt(5,5) = %q, want all", room)
	}
}

func TestBuildFloorPlanSegmentOutsideGrid(t *testing.T) {
	g := NewGridFromPlan(models.FloorPlan{
		Width:      5,
		Height:     5,
		TrunkPaths: []models.Segment{models.HSeg(9, 0, 4), models.VSeg(-2, 0, 4)},
	})
	if cells := g.TrunkPathCells(); len(cells) != 0 {
		t.Errorf("TrunkPathCells = %v, want none", cells)
	}
}

func TestBuildFloorPlanReversedSegment(t *testing.T) {
	g := NewGridFromPlan(models.FloorPlan{
		Width:      10,
		Height:     5,
		TrunkPaths: []models.Segment{{X1: 7, Y1: 2, X2: 2, Y2: 2}},
	})
	for x := 2; x <= 7; x++ {
		if !g.IsOnTrunkPath(c(x, 2)) {
			t.Errorf("IsOnTrunkPath(%d,2) = false", x)
		}
	}
}

func TestTrunkPathCellsRowMajor(t *testing.T) {
	g := NewGridFromPlan(models.FloorPlan{
		Width:      8,
		Height:     8,
		TrunkPaths: []models.Segment{models.VSeg(5, 1, 3), models.HSeg(2, 1, 3)},
	})
	want := []models.Coordinate{c(5, 1), c(1, 2), c(2, 2), c(3, 2), c(5, 2), c(5, 3)}
	got := g.TrunkPathCells()
	if len(got) != len(want) {
		t.Fatalf("TrunkPathCells() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("TrunkPathCells()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNeighborsOrder(t *testing.T) {
	g := NewGrid(5, 5)
	got := g.Neighbors(c(2, 2))
	want := []models.Coordinate{
		c(2, 1), c(3, 2), c(2, 3), c(1, 2),
		c(3, 1), c(3, 3), c(1, 3), c(1, 1),
	}
	if len(got) != len(want) {
		t.Fatalf("Neighbors = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Neighbors[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNeighborsSkipBlockedAndOutside(t *testing.T) {
	g := NewGridFromPlan(models.FloorPlan{
		Width:  6,
		Height: 6,
		Walls:  []models.Segment{models.HSeg(2, 1, 1)},
	})
	got := g.Neighbors(c(1, 1))
	want := []models.Coordinate{c(2, 1), c(2, 2)}
	if len(got) != len(want) {
		t.Fatalf("Neighbors(1,1) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Neighbors(1,1)[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDefaultFloorPlan(t *testing.T) {
	g := NewGridFromPlan(DefaultFloorPlan())
	if g.Width() != 120 || g.Height() != 100 {
		t.Fatalf("size = %dx%d, want 120x100", g.Width(), g.Height())
	}
	for x := 0; x < g.Width(); x++ {
		if g.IsWalkable(c(x, 0)) || g.IsWalkable(c(x, g.Height()-1)) {
			t.Fatalf("perimeter cell walkable at column %d", x)
		}
	}
	if g.IsWalkable(c(30, 70)) {
		t.Error("garage wall missing")
	}
	if !g.IsOnTrunkPath(c(38, 40)) {
		t.Error("living room corridor not on trunk path")
	}
	if room, _ := g.RoomAt(c(20, 25)); room != "dining" {
		t.Errorf("RoomAt(20,25) = %q, want dining", room)
	}
	if len(g.TrunkPathCells()) == 0 {
		t.Error("no trunk path cells")
	}
}

func TestRows(t *testing.T) {
	g := NewGridFromPlan(models.FloorPlan{
		Width:      4,
		Height:     3,
		TrunkPaths: []models.Segment{models.HSeg(1, 1, 1)},
	})
	want := []string{"####", "#=.#", "####"}
	got := g.Rows()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Rows()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
