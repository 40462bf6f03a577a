package simulate

import (
	"container/heap"
	"math"
)

// DStarLite is the incremental replanning search. It keeps the key
// modifier and last start position across calls so repeated replans
// from a moving agent stay consistent, and recomputes vertex costs
// backwards from the goal on each invocation.
type DStarLite struct {
	callCount   int
	initialized bool
	start       Position
	goal        Position
	last        Position
	km          int
}

func NewDStarLite() *DStarLite { return &DStarLite{} }

func (d *DStarLite) Name() string { return "d_star_lite" }

// Calls returns how many times FindPath has run.
func (d *DStarLite) Calls() int { return d.callCount }

const costInf = math.MaxInt32

type dstarKey struct {
	k1, k2 int
}

func (k dstarKey) less(o dstarKey) bool {
	if k.k1 != o.k1 {
		return k.k1 < o.k1
	}
	return k.k2 < o.k2
}

type dstarEntry struct {
	key  dstarKey
	pos  Position
	hash uint64
}

type dstarQueue []dstarEntry

func (q dstarQueue) Len() int           { return len(q) }
func (q dstarQueue) Less(i, j int) bool { return q[i].key.less(q[j].key) }
func (q dstarQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *dstarQueue) Push(x any)        { *q = append(*q, x.(dstarEntry)) }
func (q *dstarQueue) Pop() any {
	old := *q
	e := old[len(old)-1]
	*q = old[:len(old)-1]
	return e
}

type cellData struct {
	g, rhs int
}

// FindPath computes a path from start to goal, repairing its estimate
// of the cost surface rather than searching from scratch. Returns nil
// when no path exists under the known obstacles.
func (d *DStarLite) FindPath(g *Grid, start, goal Position, obstacles map[Position]bool) []Position {
	d.callCount++

	if !d.initialized || d.goal != goal {
		d.start = start
		d.goal = goal
		d.last = start
		d.km = 0
		d.initialized = true
	} else if d.start != start {
		d.km += manhattan(d.last, start)
		d.start = start
		d.last = start
	}

	open := &dstarQueue{}
	heap.Init(open)
	cells := map[Position]cellData{}
	queueHash := map[Position]uint64{}
	var hashCounter uint64

	getG := func(p Position) int {
		if c, ok := cells[p]; ok {
			return c.g
		}
		return costInf
	}
	getRHS := func(p Position) int {
		if p == goal {
			return 0
		}
		if c, ok := cells[p]; ok {
			return c.rhs
		}
		return costInf
	}
	setG := func(p Position, v int) {
		c := cells[p]
		if _, ok := cells[p]; !ok {
			c = cellData{g: costInf, rhs: costInf}
		}
		c.g = v
		cells[p] = c
	}
	setRHS := func(p Position, v int) {
		c := cells[p]
		if _, ok := cells[p]; !ok {
			c = cellData{g: costInf, rhs: costInf}
		}
		c.rhs = v
		cells[p] = c
	}
	cost := func(_, to Position) int {
		if !g.InBounds(to) || g.Cells[to.X][to.Y] == CellWall || obstacles[to] {
			return costInf
		}
		return 1
	}
	calcKey := func(p Position) dstarKey {
		minVal := getG(p)
		if rhs := getRHS(p); rhs < minVal {
			minVal = rhs
		}
		if minVal == costInf {
			return dstarKey{costInf, costInf}
		}
		return dstarKey{minVal + manhattan(p, start) + d.km, minVal}
	}
	insert := func(p Position) {
		hashCounter++
		queueHash[p] = hashCounter
		heap.Push(open, dstarEntry{key: calcKey(p), pos: p, hash: hashCounter})
	}
	recomputeRHS := func(p Position) {
		if p == goal {
			return
		}
		minRHS := costInf
		for _, succ := range g.Neighbors(p) {
			if c, gs := cost(p, succ), getG(succ); c != costInf && gs != costInf && c+gs < minRHS {
				minRHS = c + gs
			}
		}
		setRHS(p, minRHS)
		delete(queueHash, p)
		if getG(p) != getRHS(p) {
			insert(p)
		}
	}

	setRHS(goal, 0)
	insert(goal)

	maxIterations := 80000
	for iterations := 0; open.Len() > 0 && iterations < maxIterations; iterations++ {
		startKey := calcKey(start)
		top := (*open)[0]
		if !top.key.less(startKey) && getRHS(start) == getG(start) && getG(start) != costInf {
			break
		}

		// Lazy deletion: skip entries superseded by a reinsert.
		u := heap.Pop(open).(dstarEntry)
		if h, ok := queueHash[u.pos]; !ok || h != u.hash {
			continue
		}
		delete(queueHash, u.pos)

		if newKey := calcKey(u.pos); u.key.less(newKey) {
			insert(u.pos)
		} else if getG(u.pos) > getRHS(u.pos) {
			setG(u.pos, getRHS(u.pos))
			for _, pred := range g.Neighbors(u.pos) {
				recomputeRHS(pred)
			}
		} else {
			setG(u.pos, costInf)
			recomputeRHS(u.pos)
			for _, pred := range g.Neighbors(u.pos) {
				recomputeRHS(pred)
			}
		}
	}

	if getG(start) == costInf {
		return nil
	}

	// Greedy descent along the cost surface.
	path := []Position{start}
	current := start
	for current != goal {
		best := Position{}
		bestCost := costInf
		found := false
		for _, next := range g.Neighbors(current) {
			c := cost(current, next)
			gn := getG(next)
			if c == costInf || gn == costInf {
				continue
			}
			if c+gn < bestCost {
				bestCost = c + gn
				best = next
				found = true
			}
		}
		if !found {
			return nil
		}
		path = append(path, best)
		current = best
		if len(path) > g.Size*g.Size {
			return nil
		}
	}
	return path
}
