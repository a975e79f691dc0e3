package navgraph

import (
	"log"
	"time"

	"github.com/paulmach/orb"

	"tile-navigation/obstacle"
)

// ObstacleTester decides whether a disc can sweep between two points. *obstacle.World implements it.
type ObstacleTester interface {
	IsClear(from, to orb.Point, radius float64, filter obstacle.Filter) bool
}

// ClearTester is an ObstacleTester with no obstacles at all.
type ClearTester struct{}

// IsClear always reports a free sweep.
func (ClearTester) IsClear(orb.Point, orb.Point, float64, obstacle.Filter) bool { return true }

// Builder bakes navigation graphs for regions.
type Builder struct {
	Radius float64         // Agent clearance used for every sweep
	Filter obstacle.Filter // Layers that do not block
	Tester ObstacleTester  // nil means no obstacles
	Logger *log.Logger     // nil silences build logging
}

// BuildStats summarises one bake.
type BuildStats struct {
	Nodes    int           `json:"nodes"`
	Edges    int           `json:"edges"`
	Rejected int           `json:"rejected"`
	Pruned   int           `json:"pruned"`
	Elapsed  time.Duration `json:"elapsed"`
}

// Bake builds a graph for region with the default layer filter.
func Bake(region Region, radius float64, tester ObstacleTester) *Graph {
	b := Builder{Radius: radius, Filter: obstacle.DefaultFilter(), Tester: tester}
	g, _ := b.Build(region)
	return g
}

// Build samples every lattice point of region, links each node to its 8 neighbours where the
// sweep is clear, then prunes nodes that ended up without outgoing edges.
func (b Builder) Build(region Region) (*Graph, BuildStats) {
	startTime := time.Now()
	tester := b.Tester
	if tester == nil {
		tester = ClearTester{}
	}

	g := NewGraph()
	if !region.Empty() {
		lo, hi := region.Min(), region.Max()
		for x := lo.X; x <= hi.X; x++ {
			for y := lo.Y; y <= hi.Y; y++ {
				g.AddNode(Position{X: x, Y: y})
			}
		}
	}
	sampled := g.NodeCount()

	var stats BuildStats
	for id, pos := range g.Nodes() {
		for _, dir := range Directions {
			target := pos.Add(dir)
			neighbor, ok := g.Lookup(target)
			if !ok {
				continue
			}
			if !tester.IsClear(pos.Point(), target.Point(), b.Radius, b.Filter) {
				stats.Rejected++
				continue
			}
			g.AddDirectedEdge(id, neighbor, pos.CostTo(target))
		}
	}

	stats.Pruned = g.PruneIsolatedNodes()
	stats.Nodes = g.NodeCount()
	stats.Edges = g.EdgeCount()
	stats.Elapsed = time.Since(startTime)

	if b.Logger != nil {
		b.Logger.Printf("🗺️  Baked region %v±%d: %d sampled, %d kept, %d edges (%d rejected, %d pruned) in %s\n",
			region.Center, region.HalfWidth, sampled, stats.Nodes, stats.Edges, stats.Rejected, stats.Pruned,
			stats.Elapsed.Round(time.Microsecond))
	}
	return g, stats
}
