package navgraph

import (
	"fmt"
	"iter"

	"github.com/google/uuid"
)

// NodeID is a stable handle to a node within the Graph that issued it.
type NodeID int

// Edge is a directed, weighted link to another node.
type Edge struct {
	To   NodeID  `json:"to"`   // Handle of the destination node
	Cost float64 `json:"cost"` // Euclidean distance
}

// node is one arena slot.
type node struct {
	pos    Position
	edges  []Edge
	pruned bool
}

// Graph owns the nodes and edges of exactly one bake. Handles stay valid after pruning; pruned
// handles simply report as absent.
type Graph struct {
	// BakeID changes on every bake so consumers can tell a rebaked graph apart.
	BakeID uuid.UUID

	nodes []node
	index map[Position]NodeID
	live  int
}

// NewGraph creates an empty graph with a fresh bake id.
func NewGraph() *Graph {
	return &Graph{
		BakeID: uuid.New(),
		index:  make(map[Position]NodeID),
	}
}

// AddNode inserts a node at p and returns its handle. Uniqueness of p is the caller's concern;
// a later node at the same position shadows the earlier one in Lookup.
func (g *Graph) AddNode(p Position) NodeID {
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, node{pos: p})
	g.index[p] = id
	g.live++
	return id
}

// AddDirectedEdge appends an outgoing edge on from. Both handles must be live nodes of g.
func (g *Graph) AddDirectedEdge(from, to NodeID, cost float64) {
	g.mustHave(from)
	g.mustHave(to)
	g.nodes[from].edges = append(g.nodes[from].edges, Edge{To: to, Cost: cost})
}

// PruneIsolatedNodes removes every node without outgoing edges, along with any edges pointing
// at them, and returns how many nodes were removed. It is a single pass: a node left without
// edges by the second step stays.
func (g *Graph) PruneIsolatedNodes() int {
	removed := 0
	for i := range g.nodes {
		n := &g.nodes[i]
		if n.pruned || len(n.edges) > 0 {
			continue
		}
		n.pruned = true
		if g.index[n.pos] == NodeID(i) {
			delete(g.index, n.pos)
		}
		removed++
	}
	if removed == 0 {
		return 0
	}
	g.live -= removed

	for i := range g.nodes {
		n := &g.nodes[i]
		if n.pruned {
			continue
		}
		kept := n.edges[:0]
		for _, e := range n.edges {
			if !g.nodes[e.To].pruned {
				kept = append(kept, e)
			}
		}
		n.edges = kept
	}
	return removed
}

// Lookup returns the live node at p.
func (g *Graph) Lookup(p Position) (NodeID, bool) {
	if g == nil {
		return 0, false
	}
	id, ok := g.index[p]
	return id, ok
}

// Has reports whether id is a live node of g.
func (g *Graph) Has(id NodeID) bool {
	return g != nil && id >= 0 && int(id) < len(g.nodes) && !g.nodes[id].pruned
}

// Position returns the lattice position of a node.
func (g *Graph) Position(id NodeID) Position {
	g.mustHave(id)
	return g.nodes[id].pos
}

// Neighbors returns the outgoing edges of a node. The slice must not be modified.
func (g *Graph) Neighbors(id NodeID) []Edge {
	g.mustHave(id)
	return g.nodes[id].edges
}

// Nodes iterates over live nodes in insertion order.
func (g *Graph) Nodes() iter.Seq2[NodeID, Position] {
	return func(yield func(NodeID, Position) bool) {
		if g == nil {
			return
		}
		for i, n := range g.nodes {
			if n.pruned {
				continue
			}
			if !yield(NodeID(i), n.pos) {
				return
			}
		}
	}
}

// NodeCount returns the number of live nodes.
func (g *Graph) NodeCount() int {
	if g == nil {
		return 0
	}
	return g.live
}

// EdgeCount returns the number of directed edges between live nodes.
func (g *Graph) EdgeCount() int {
	count := 0
	for id := range g.Nodes() {
		count += len(g.nodes[id].edges)
	}
	return count
}

func (g *Graph) mustHave(id NodeID) {
	if !g.Has(id) {
		panic(fmt.Sprintf("navgraph: node %d is not a live node of this graph", id))
	}
}
