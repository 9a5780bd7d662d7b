package algorithms

import (
	"container/heap"
	"math"

	"github.com/zyedidia/generic/mapset"

	"wayfinder-backend/models"
)

// Pathfinder computes a walkable route between two cells, or nil when none exists.
type Pathfinder interface {
	FindPath(start, goal models.Coordinate) models.Route
}

// AStar is the grid-bound A* pathfinder.
type AStar struct {
	grid *Grid
}

func NewAStar(grid *Grid) *AStar {
	return &AStar{grid: grid}
}

func (a *AStar) FindPath(start, goal models.Coordinate) models.Route {
	return FindPath(a.grid, start, goal)
}

// searchNode is per-search scratch state. f is derived from g and h.
type searchNode struct {
	g         float64
	h         float64
	parent    models.Coordinate
	hasParent bool
}

func (n *searchNode) f() float64 { return n.g + n.h }

// frontierEntry is one open-set entry. The same coordinate may be queued
// more than once; the closed set discards the stale copies.
type frontierEntry struct {
	pos models.Coordinate
	f   float64
	seq int
}

type frontier []frontierEntry

func (q frontier) Len() int { return len(q) }

func (q frontier) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].seq < q[j].seq
}

func (q frontier) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *frontier) Push(x interface{}) {
	*q = append(*q, x.(frontierEntry))
}

func (q *frontier) Pop() interface{} {
	old := *q
	n := len(old)
	entry := old[n-1]
	*q = old[:n-1]
	return entry
}

func heuristic(a, b models.Coordinate) float64 {
	return a.DistanceTo(b)
}

// FindPath runs A* on g with octile step costs and a Euclidean heuristic.
// Frontier ties go to the entry queued first, so results are deterministic.
// Both endpoints must be walkable; a blocked or out-of-bounds endpoint has no route.
func FindPath(g *Grid, start, goal models.Coordinate) models.Route {
	if !g.IsWalkable(start) || !g.IsWalkable(goal) {
		return nil
	}
	if start == goal {
		return models.Route{start}
	}

	nodes := make(map[models.Coordinate]*searchNode)
	closed := mapset.New[models.Coordinate]()
	open := &frontier{}
	seq := 0

	push := func(pos models.Coordinate, n *searchNode) {
		heap.Push(open, frontierEntry{pos: pos, f: n.f(), seq: seq})
		seq++
	}

	startNode := &searchNode{g: 0, h: heuristic(start, goal)}
	nodes[start] = startNode
	push(start, startNode)

	for open.Len() > 0 {
		entry := heap.Pop(open).(frontierEntry)
		if closed.Has(entry.pos) {
			continue
		}
		if entry.pos == goal {
			return reconstructRoute(nodes, goal)
		}
		closed.Put(entry.pos)
		current := nodes[entry.pos]

		for _, next := range g.Neighbors(entry.pos) {
			if closed.Has(next) {
				continue
			}
			tentativeG := current.g + models.StepCost(entry.pos, next)

			node, ok := nodes[next]
			if !ok {
				node = &searchNode{g: math.Inf(1), h: heuristic(next, goal)}
				nodes[next] = node
			}
			if tentativeG < node.g {
				node.g = tentativeG
				node.parent = entry.pos
				node.hasParent = true
				push(next, node)
			}
		}
	}
	return nil
}

func reconstructRoute(nodes map[models.Coordinate]*searchNode, goal models.Coordinate) models.Route {
	var route models.Route
	pos := goal
	for {
		route = append(route, pos)
		n := nodes[pos]
		if !n.hasParent {
			break
		}
		pos = n.parent
	}
	for i, j := 0, len(route)-1; i < j; i, j = i+1, j-1 {
		route[i], route[j] = route[j], route[i]
	}
	return route
}
