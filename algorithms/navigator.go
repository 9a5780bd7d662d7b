package algorithms

import (
	"wayfinder-backend/models"
)

// Navigator composes two pathfinder legs: current position to the nearest
// trunk-path cell, then trunk to destination. It remembers the last
// successful route; a failed request leaves it in place.
//
// A Navigator is not safe for concurrent use.
type Navigator struct {
	grid         *Grid
	pathfinder   Pathfinder
	currentRoute models.Route
}

func NewNavigator(grid *Grid, pathfinder Pathfinder) *Navigator {
	if pathfinder == nil {
		pathfinder = NewAStar(grid)
	}
	return &Navigator{grid: grid, pathfinder: pathfinder}
}

// NearestTrunkPoint returns the trunk cell closest to from. Ties go to the
// first cell in row-major order.
func (n *Navigator) NearestTrunkPoint(from models.Coordinate) (models.Coordinate, bool) {
	var (
		best     models.Coordinate
		bestDist float64
		found    bool
	)
	for _, c := range n.grid.TrunkPathCells() {
		d := from.DistanceTo(c)
		if !found || d < bestDist {
			best, bestDist, found = c, d, true
		}
	}
	return best, found
}

// RouteToTrunk routes from to its nearest trunk point.
func (n *Navigator) RouteToTrunk(from models.Coordinate) models.Route {
	route := n.routeToTrunk(from)
	if route != nil {
		n.currentRoute = route.Clone()
	}
	return route
}

func (n *Navigator) routeToTrunk(from models.Coordinate) models.Route {
	target, ok := n.NearestTrunkPoint(from)
	if !ok {
		return nil
	}
	return n.pathfinder.FindPath(from, target)
}

// RouteBetween routes from → nearest trunk point → to. The junction cell
// appears once. Either leg failing yields nil.
func (n *Navigator) RouteBetween(from, to models.Coordinate) models.Route {
	first := n.routeToTrunk(from)
	if first == nil {
		return nil
	}
	junction, _ := first.Last()
	second := n.pathfinder.FindPath(junction, to)
	if second == nil {
		return nil
	}

	route := make(models.Route, 0, len(first)+len(second)-1)
	route = append(route, first...)
	route = append(route, second[1:]...)
	n.currentRoute = route.Clone()
	return route
}

// CurrentRoute returns a copy of the last successful route, or nil.
func (n *Navigator) CurrentRoute() models.Route {
	return n.currentRoute.Clone()
}
