package simulate

import (
	"container/heap"
)

// Planner finds a path on the grid from start to goal, treating walls
// and the supplied known obstacles as blocked. A nil result means no
// path exists under current knowledge.
type Planner interface {
	Name() string
	FindPath(g *Grid, start, goal Position, obstacles map[Position]bool) []Position
	Calls() int
}

// AStar plans from scratch on every call using A* with a Manhattan
// heuristic and unit move cost.
type AStar struct {
	calls int
}

func NewAStar() *AStar { return &AStar{} }

func (a *AStar) Name() string { return "a_star" }

// Calls returns how many times FindPath has run.
func (a *AStar) Calls() int { return a.calls }

type astarNode struct {
	pos     Position
	f, g    int
	heapIdx int
}

type astarQueue []*astarNode

func (q astarQueue) Len() int { return len(q) }
func (q astarQueue) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].g > q[j].g // prefer deeper nodes on ties
}
func (q astarQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].heapIdx = i
	q[j].heapIdx = j
}
func (q *astarQueue) Push(x any) {
	n := x.(*astarNode)
	n.heapIdx = len(*q)
	*q = append(*q, n)
}
func (q *astarQueue) Pop() any {
	old := *q
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*q = old[:len(old)-1]
	return n
}

// FindPath returns the shortest path from start to goal including both
// endpoints, or nil when the goal is unreachable given the known
// obstacles.
func (a *AStar) FindPath(g *Grid, start, goal Position, obstacles map[Position]bool) []Position {
	a.calls++

	open := &astarQueue{}
	heap.Init(open)
	nodes := map[Position]*astarNode{}
	cameFrom := map[Position]Position{}
	closed := map[Position]bool{}

	startNode := &astarNode{pos: start, g: 0, f: manhattan(start, goal)}
	nodes[start] = startNode
	heap.Push(open, startNode)

	for open.Len() > 0 {
		current := heap.Pop(open).(*astarNode)
		if current.pos == goal {
			return reconstruct(cameFrom, goal)
		}
		closed[current.pos] = true

		for _, next := range g.Neighbors(current.pos) {
			if closed[next] || obstacles[next] {
				continue
			}
			tentative := current.g + 1
			node, seen := nodes[next]
			if seen && tentative >= node.g {
				continue
			}
			cameFrom[next] = current.pos
			if !seen {
				node = &astarNode{pos: next}
				nodes[next] = node
			}
			node.g = tentative
			node.f = tentative + manhattan(next, goal)
			if seen {
				heap.Fix(open, node.heapIdx)
			} else {
				heap.Push(open, node)
			}
		}
	}
	return nil
}

func reconstruct(cameFrom map[Position]Position, goal Position) []Position {
	path := []Position{goal}
	current := goal
	for {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		path = append(path, prev)
		current = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
