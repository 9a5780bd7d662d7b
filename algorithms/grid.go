package algorithms

import (
	"fmt"

	"wayfinder-backend/models"
)

// Grid is a fixed-size cell array for one floor.
// It is mutated only by BuildFloorPlan; afterwards it is safe for concurrent reads.
type Grid struct {
	width  int
	height int
	cells  []models.Cell // row-major: index = y*width + x
}

// N, E, S, W, NE, SE, SW, NW. Y grows downward, so north is y-1.
var neighborOffsets = [8]models.Coordinate{
	{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0},
	{X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: -1},
}

// MaxGridDimension bounds both grid dimensions.
const MaxGridDimension = 1024

// NewGrid creates a fully walkable grid. Dimensions outside 1..MaxGridDimension are a programmer error.
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 || width > MaxGridDimension || height > MaxGridDimension {
		panic(fmt.Sprintf("algorithms: invalid grid size %dx%d", width, height))
	}
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]models.Cell, width*height),
	}
	g.reset()
	return g
}

// NewGridFromPlan creates a grid sized to the plan and builds it.
func NewGridFromPlan(plan models.FloorPlan) *Grid {
	g := NewGrid(plan.Width, plan.Height)
	g.BuildFloorPlan(plan)
	return g
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// InBounds reports whether c addresses a cell of the grid.
func (g *Grid) InBounds(c models.Coordinate) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < g.width && c.Y < g.height
}

func (g *Grid) index(c models.Coordinate) int {
	return c.Y*g.width + c.X
}

func (g *Grid) reset() {
	for i := range g.cells {
		g.cells[i] = models.NewCell()
	}
}

// BuildFloorPlan resets the grid and applies, in order: perimeter walls,
// interior walls, trunk-path segments and room regions. Later steps never
// touch walkability, so the order only matters for walls.
func (g *Grid) BuildFloorPlan(plan models.FloorPlan) {
	g.reset()
	g.addPerimeter()
	for _, wall := range plan.Walls {
		for _, c := range g.clip(wall) {
			g.update(c, func(cell *models.Cell) { cell.Walkable = false })
		}
	}
	for _, seg := range plan.TrunkPaths {
		for _, c := range g.clip(seg) {
			g.update(c, func(cell *models.Cell) { cell.OnTrunkPath = true })
		}
	}
	for _, room := range plan.Rooms {
		g.fillRoom(room)
	}
}

func (g *Grid) addPerimeter() {
	for x := 0; x < g.width; x++ {
		g.cells[g.index(models.Coordinate{X: x, Y: 0})].Walkable = false
		g.cells[g.index(models.Coordinate{X: x, Y: g.height - 1})].Walkable = false
	}
	for y := 0; y < g.height; y++ {
		g.cells[g.index(models.Coordinate{X: 0, Y: y})].Walkable = false
		g.cells[g.index(models.Coordinate{X: g.width - 1, Y: y})].Walkable = false
	}
}

// clip returns the in-bounds cells of seg without enumerating the rest.
func (g *Grid) clip(seg models.Segment) []models.Coordinate {
	clipped, ok := seg.ClipTo(g.width, g.height)
	if !ok {
		return nil
	}
	return clipped.Cells()
}

func (g *Grid) fillRoom(room models.RoomRegion) {
	r, ok := room.ClipTo(g.width, g.height)
	if !ok {
		return
	}
	for y := r.Y1; y <= r.Y2; y++ {
		for x := r.X1; x <= r.X2; x++ {
			g.update(models.Coordinate{X: x, Y: y}, func(cell *models.Cell) { cell.RoomID = r.ID })
		}
	}
}

// update applies fn to an in-bounds cell; out-of-bounds coordinates are skipped.
func (g *Grid) update(c models.Coordinate, fn func(*models.Cell)) {
	if !g.InBounds(c) {
		return
	}
	fn(&g.cells[g.index(c)])
}

// CellAt returns the cell at c, or false when c is out of bounds.
func (g *Grid) CellAt(c models.Coordinate) (models.Cell, bool) {
	if !g.InBounds(c) {
		return models.Cell{}, false
	}
	return g.cells[g.index(c)], true
}

func (g *Grid) IsWalkable(c models.Coordinate) bool {
	cell, ok := g.CellAt(c)
	return ok && cell.Walkable
}

func (g *Grid) IsOnTrunkPath(c models.Coordinate) bool {
	cell, ok := g.CellAt(c)
	return ok && cell.OnTrunkPath
}

// RoomAt returns the room tag of c.
func (g *Grid) RoomAt(c models.Coordinate) (string, bool) {
	cell, ok := g.CellAt(c)
	if !ok || !cell.HasRoom() {
		return "", false
	}
	return cell.RoomID, true
}

// TrunkPathCells lists every trunk-path cell in row-major order (y, then x).
// Nearest-trunk tie-breaks depend on this order.
func (g *Grid) TrunkPathCells() []models.Coordinate {
	var out []models.Coordinate
	for i, cell := range g.cells {
		if cell.OnTrunkPath {
			out = append(out, models.Coordinate{X: i % g.width, Y: i / g.width})
		}
	}
	return out
}

// Neighbors returns the in-bounds walkable cells around c in N, E, S, W, NE, SE, SW, NW order.
// An out-of-bounds c has no neighbors.
func (g *Grid) Neighbors(c models.Coordinate) []models.Coordinate {
	if !g.InBounds(c) {
		return nil
	}
	out := make([]models.Coordinate, 0, len(neighborOffsets))
	for _, d := range neighborOffsets {
		n := models.Coordinate{X: c.X + d.X, Y: c.Y + d.Y}
		if g.IsWalkable(n) {
			out = append(out, n)
		}
	}
	return out
}

// Rows renders the grid as one string per row using models.Cell.Code.
func (g *Grid) Rows() []string {
	rows := make([]string, g.height)
	buf := make([]byte, g.width)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			buf[x] = g.cells[y*g.width+x].Code()
		}
		rows[y] = string(buf)
	}
	return rows
}
