// Package simulate implements the pathfinding benchmark producer: a
// square grid world with static walls and hidden dynamic obstacles, an
// A* planner, an incremental D* Lite replanner, and a batch runner that
// sweeps map configurations and emits one benchmark record per run.
package simulate

import (
	"math/rand"
)

// Position is a cell coordinate on the grid.
type Position struct {
	X, Y int
}

// Cell is the static content of one grid cell.
type Cell uint8

const (
	CellEmpty Cell = iota
	CellWall
	CellObstacle
)

// Grid is a square world. Walls are known to the agent up front;
// obstacles are placed after planning and only become known once
// observed.
type Grid struct {
	Size  int
	Cells [][]Cell
	Start Position
	Goal  Position
}

// NewGrid builds a size x size grid with the start in the lower-left
// quadrant, the goal in the upper-right quadrant and up to numWalls
// walls placed at random empty cells. Wall placement gives up after a
// bounded number of attempts so dense configurations terminate.
func NewGrid(size, numWalls int, rng *rand.Rand) *Grid {
	cells := make([][]Cell, size)
	for i := range cells {
		cells[i] = make([]Cell, size)
	}

	start := Position{X: rng.Intn(size / 2), Y: rng.Intn(size / 2)}
	goal := Position{X: size/2 + rng.Intn(size-size/2), Y: size/2 + rng.Intn(size-size/2)}

	placed := 0
	for attempts := 0; placed < numWalls && attempts < numWalls*3; attempts++ {
		p := Position{X: rng.Intn(size), Y: rng.Intn(size)}
		if p != start && p != goal && cells[p.X][p.Y] == CellEmpty {
			cells[p.X][p.Y] = CellWall
			placed++
		}
	}

	return &Grid{Size: size, Cells: cells, Start: start, Goal: goal}
}

// PlaceObstacles scatters up to n obstacles on empty cells, avoiding
// the start and goal. Obstacles are invisible to the planner until the
// agent observes them.
func (g *Grid) PlaceObstacles(n int, rng *rand.Rand) int {
	placed := 0
	for attempts := 0; placed < n && attempts < n*3; attempts++ {
		p := Position{X: rng.Intn(g.Size), Y: rng.Intn(g.Size)}
		if p != g.Start && p != g.Goal && g.Cells[p.X][p.Y] == CellEmpty {
			g.Cells[p.X][p.Y] = CellObstacle
			placed++
		}
	}
	return placed
}

// InBounds reports whether p lies on the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.Size && p.Y >= 0 && p.Y < g.Size
}

// Neighbors returns the 4-connected neighbors of p that are on the grid
// and not walls. Obstacles are not filtered here; the planners treat
// known obstacles as blocked via their cost functions.
func (g *Grid) Neighbors(p Position) []Position {
	deltas := [4]Position{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	neighbors := make([]Position, 0, 4)
	for _, d := range deltas {
		n := Position{X: p.X + d.X, Y: p.Y + d.Y}
		if g.InBounds(n) && g.Cells[n.X][n.Y] != CellWall {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// manhattan is the heuristic shared by both planners.
func manhattan(a, b Position) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
