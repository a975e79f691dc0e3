package navgraph

import (
	"container/heap"
)

// searchNode is a node in the A* open set.
type searchNode struct {
	id     NodeID
	g      float64 // Cost from start to this node
	h      float64 // Heuristic cost from this node to goal
	f      float64 // Total cost (g + h)
	parent *searchNode
	index  int // Index in the heap
}

// openSet implements heap.Interface ordered by f, then h, then node id.
type openSet []*searchNode

func (pq openSet) Len() int { return len(pq) }

func (pq openSet) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.id < b.id
}

func (pq openSet) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *openSet) Push(x any) {
	n := x.(*searchNode)
	n.index = len(*pq)
	*pq = append(*pq, n)
}

func (pq *openSet) Pop() any {
	old := *pq
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*pq = old[0 : n-1]
	return node
}

// FindPath returns the cheapest route from one position to another, both endpoints included.
// It returns false when either endpoint has no live node or the goal is unreachable.
func FindPath(g *Graph, from, to Position) ([]Position, bool) {
	startID, ok := g.Lookup(from)
	if !ok {
		return nil, false
	}
	goalID, ok := g.Lookup(to)
	if !ok {
		return nil, false
	}

	open := &openSet{}
	start := &searchNode{id: startID, h: from.CostTo(to)}
	start.f = start.h
	heap.Push(open, start)

	inOpen := map[NodeID]*searchNode{startID: start}
	closed := make(map[NodeID]bool)

	for open.Len() > 0 {
		current := heap.Pop(open).(*searchNode)
		delete(inOpen, current.id)

		if current.id == goalID {
			return reconstruct(g, current), true
		}
		closed[current.id] = true

		for _, edge := range g.Neighbors(current.id) {
			if closed[edge.To] {
				continue
			}

			tentativeG := current.g + edge.Cost
			neighbor, exists := inOpen[edge.To]
			if !exists {
				neighbor = &searchNode{
					id:     edge.To,
					g:      tentativeG,
					h:      g.Position(edge.To).CostTo(to),
					parent: current,
				}
				neighbor.f = neighbor.g + neighbor.h
				heap.Push(open, neighbor)
				inOpen[edge.To] = neighbor
			} else if tentativeG < neighbor.g {
				neighbor.g = tentativeG
				neighbor.f = neighbor.g + neighbor.h
				neighbor.parent = current
				heap.Fix(open, neighbor.index)
			}
		}
	}

	return nil, false
}

// FindPathRelative resolves region-local offsets against origin and delegates to FindPath.
func FindPathRelative(g *Graph, origin, from, to Position) ([]Position, bool) {
	return FindPath(g, origin.Add(from), origin.Add(to))
}

// reconstruct walks parent links back to the start and returns the route in start-to-goal order.
func reconstruct(g *Graph, goal *searchNode) []Position {
	depth := 0
	for n := goal; n != nil; n = n.parent {
		depth++
	}
	path := make([]Position, depth)
	for n := goal; n != nil; n = n.parent {
		depth--
		path[depth] = g.Position(n.id)
	}
	return path
}

// PathCost sums the Euclidean length of every step of a path.
func PathCost(path []Position) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += path[i-1].CostTo(path[i])
	}
	return total
}
