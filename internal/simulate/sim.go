package simulate

import (
	"fmt"
	"math/rand"
	"time"
)

// fieldOfView is the half-width of the square window the agent scans
// for obstacles on each step.
const fieldOfView = 10

// maxStuckAttempts bounds how many cycles the agent waits in place when
// no path exists before the run is declared a failure.
const maxStuckAttempts = 5

// RunConfig describes one simulation run.
type RunConfig struct {
	GridSize     int
	NumWalls     int
	NumObstacles int
	Algorithm    string
	Seed         int64
}

// Result is one benchmark record as emitted to the results sink.
type Result struct {
	SimulationID          int
	Algorithm             string
	GridSize              int
	NumWalls              int
	NumObstacles          int
	Success               bool
	TotalMoves            int
	OptimalPathLength     int
	RouteEfficiency       float64
	ExecutionTimeMs       int64
	AStarCalls            int
	DStarCalls            int
	AverageObserveTimeNs  int64
	AverageFindPathTimeNs int64
	TotalPathfindingCalls int
}

// FailedResult returns the record written when a run could not be set
// up, so sweeps keep a row per attempted configuration.
func FailedResult(cfg RunConfig, simID int, elapsed time.Duration) Result {
	return Result{
		SimulationID:    simID,
		Algorithm:       cfg.Algorithm,
		GridSize:        cfg.GridSize,
		NumWalls:        cfg.NumWalls,
		NumObstacles:    cfg.NumObstacles,
		ExecutionTimeMs: elapsed.Milliseconds(),
	}
}

func newPlanner(algorithm string) (Planner, error) {
	switch algorithm {
	case "a_star":
		return NewAStar(), nil
	case "d_star_lite":
		return NewDStarLite(), nil
	default:
		return nil, fmt.Errorf("unknown algorithm %q", algorithm)
	}
}

// agent walks a planned path and remembers every obstacle it has seen.
type agent struct {
	pos     Position
	known   map[Position]bool
	path    []Position
	pathIdx int
}

func (a *agent) observe(g *Grid) {
	for x := a.pos.X - fieldOfView; x <= a.pos.X+fieldOfView; x++ {
		for y := a.pos.Y - fieldOfView; y <= a.pos.Y+fieldOfView; y++ {
			p := Position{X: x, Y: y}
			if g.InBounds(p) && g.Cells[x][y] == CellObstacle {
				a.known[p] = true
			}
		}
	}
}

func (a *agent) setPath(path []Position) {
	a.path = path
	a.pathIdx = 0
}

// pathBlocked reports whether any remaining step crosses a known
// obstacle, which forces a replan.
func (a *agent) pathBlocked() bool {
	for i := a.pathIdx + 1; i < len(a.path); i++ {
		if a.known[a.path[i]] {
			return true
		}
	}
	return false
}

func (a *agent) nextStep() (Position, bool) {
	if a.pathIdx+1 >= len(a.path) {
		return Position{}, false
	}
	return a.path[a.pathIdx+1], true
}

func (a *agent) moveTo(p Position) {
	a.pos = p
	a.pathIdx++
}

// Run executes one simulation: build the world, plan on walls alone,
// scatter hidden obstacles, then walk the agent to the goal replanning
// whenever an observed obstacle blocks the remaining path.
func Run(cfg RunConfig, simID int) (Result, error) {
	if cfg.GridSize < 2 {
		return Result{}, fmt.Errorf("grid size %d too small", cfg.GridSize)
	}
	planner, err := newPlanner(cfg.Algorithm)
	if err != nil {
		return Result{}, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	grid := NewGrid(cfg.GridSize, cfg.NumWalls, rng)

	// Optimal baseline comes from a fresh A* over walls only, before
	// any obstacle exists.
	baseline := NewAStar().FindPath(grid, grid.Start, grid.Goal, nil)
	if baseline == nil {
		return Result{}, fmt.Errorf("no path from %v to %v with %d walls", grid.Start, grid.Goal, cfg.NumWalls)
	}
	optimal := len(baseline) - 1

	grid.PlaceObstacles(cfg.NumObstacles, rng)

	started := time.Now()
	a := &agent{pos: grid.Start, known: map[Position]bool{}}

	var observeTimes, findTimes []time.Duration
	timedFindPath := func() []Position {
		t0 := time.Now()
		path := planner.FindPath(grid, a.pos, grid.Goal, a.known)
		findTimes = append(findTimes, time.Since(t0))
		return path
	}

	totalMoves := 0
	stuck := 0
	maxIterations := cfg.GridSize * cfg.GridSize * 4

	if initial := timedFindPath(); initial != nil {
		a.setPath(initial)

		for iterations := 0; a.pos != grid.Goal && iterations < maxIterations; iterations++ {
			t0 := time.Now()
			a.observe(grid)
			observeTimes = append(observeTimes, time.Since(t0))

			if a.pathBlocked() {
				if path := timedFindPath(); path != nil {
					a.setPath(path)
					stuck = 0
				} else {
					stuck++
					totalMoves++ // waiting still costs a move
					if stuck > maxStuckAttempts {
						break
					}
				}
			}

			if stuck == 0 {
				next, ok := a.nextStep()
				if !ok {
					break
				}
				a.moveTo(next)
				totalMoves++
			}
		}
	}

	elapsed := time.Since(started)
	success := a.pos == grid.Goal

	res := Result{
		SimulationID:          simID,
		Algorithm:             cfg.Algorithm,
		GridSize:              cfg.GridSize,
		NumWalls:              cfg.NumWalls,
		NumObstacles:          cfg.NumObstacles,
		Success:               success,
		TotalMoves:            totalMoves,
		OptimalPathLength:     optimal,
		RouteEfficiency:       float64(totalMoves) / float64(optimal),
		ExecutionTimeMs:       elapsed.Milliseconds(),
		AverageObserveTimeNs:  averageNs(observeTimes),
		AverageFindPathTimeNs: averageNs(findTimes),
		TotalPathfindingCalls: len(findTimes),
	}
	switch cfg.Algorithm {
	case "a_star":
		res.AStarCalls = planner.Calls()
	case "d_star_lite":
		res.DStarCalls = planner.Calls()
	}
	return res, nil
}

func averageNs(ds []time.Duration) int64 {
	if len(ds) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range ds {
		total += d
	}
	return total.Nanoseconds() / int64(len(ds))
}
