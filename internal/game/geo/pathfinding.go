package geo

import (
	"container/heap"

	"github.com/udisondev/labyrinth/internal/model"
)

// FindPath finds a 4-directional path from start to goal using A*.
// Returns the cell sequence from start to goal inclusive, or nil if the
// goal cannot be reached. The start cell is entered regardless of its
// passability; the goal must be passable.
//
// Every cell is expanded at most once, so the search is bounded by the
// grid size even when the goal is enclosed.
func FindPath(g *Grid, start, goal model.Point) []model.Point {
	if !g.Contains(start) || !g.Passable(goal) {
		return nil
	}
	if start == goal {
		return []model.Point{start}
	}

	result := astar(g, start, goal)
	if result == nil {
		return nil
	}

	path := make([]model.Point, 0, result.gCost+1)
	for n := result; n != nil; n = n.parent {
		path = append(path, n.pos)
	}

	// Reverse (A* builds path backward)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// pathNode represents a node in the A* search graph.
type pathNode struct {
	pos    model.Point
	parent *pathNode
	gCost  int32 // Actual cost from start
	fCost  int32 // gCost + heuristic
	seq    int   // insertion order, breaks fCost ties
	index  int   // heap index
}

// cardinals lists neighbour offsets in a fixed order so the search is
// deterministic.
var cardinals = [4]model.Direction{model.DirUp, model.DirRight, model.DirDown, model.DirLeft}

// astar implements the A* algorithm on grid cells.
func astar(g *Grid, start, goal model.Point) *pathNode {
	seq := 0
	root := &pathNode{pos: start, fCost: start.Manhattan(goal), seq: seq}

	openList := &nodeHeap{}
	heap.Init(openList)
	heap.Push(openList, root)

	best := make(map[model.Point]int32, g.CellCount())
	best[start] = 0
	closed := make(map[model.Point]struct{}, g.CellCount())

	for openList.Len() > 0 {
		current := heap.Pop(openList).(*pathNode)

		if current.pos == goal {
			return current
		}
		if _, done := closed[current.pos]; done {
			continue
		}
		closed[current.pos] = struct{}{}

		for _, dir := range cardinals {
			next := current.pos.Step(dir)
			if !g.Passable(next) {
				continue
			}
			if _, done := closed[next]; done {
				continue
			}
			gCost := current.gCost + 1
			if known, ok := best[next]; ok && known <= gCost {
				continue
			}
			best[next] = gCost

			seq++
			heap.Push(openList, &pathNode{
				pos:    next,
				parent: current,
				gCost:  gCost,
				fCost:  gCost + next.Manhattan(goal),
				seq:    seq,
			})
		}
	}

	return nil
}

// nodeHeap implements container/heap for the A* open list
// (min-heap by fCost, then by insertion order).
type nodeHeap []*pathNode

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].fCost != h[j].fCost {
		return h[i].fCost < h[j].fCost
	}
	return h[i].seq < h[j].seq
}

func (h nodeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *nodeHeap) Push(x any) {
	n := x.(*pathNode)
	n.index = len(*h)
	*h = append(*h, n)
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil // GC
	node.index = -1
	*h = old[:n-1]
	return node
}
