package navgraph

import (
	"bytes"
	"log"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tile-navigation/obstacle"
)

// pointTester blocks every sweep that starts or ends on a blocked lattice point.
type pointTester struct {
	blocked map[Position]bool
}

func (p pointTester) IsClear(from, to orb.Point, _ float64, _ obstacle.Filter) bool {
	return !p.blocked[toPos(from)] && !p.blocked[toPos(to)]
}

// oneWayTester blocks sweeps leaving a single point.
type oneWayTester struct {
	source Position
}

func (o oneWayTester) IsClear(from, _ orb.Point, _ float64, _ obstacle.Filter) bool {
	return toPos(from) != o.source
}

func toPos(p orb.Point) Position {
	return Pos(int(p.X()), int(p.Y()))
}

func mustWorld(t *testing.T, obstacles ...obstacle.Obstacle) *obstacle.World {
	t.Helper()
	w, err := obstacle.NewWorld(obstacles...)
	require.NoError(t, err)
	return w
}

func TestBakeObstacleFreeRegionKeepsEveryNode(t *testing.T) {
	region := NewRegion(0, 0, DefaultTileWidth)
	g := Bake(region, 0.25, ClearTester{})

	n := region.Side()
	assert.Equal(t, n*n, g.NodeCount())

	// Directed edges: cardinal pairs and diagonal pairs, each in both directions.
	cardinal := 2 * 2 * n * (n - 1)
	diagonal := 2 * 2 * (n - 1) * (n - 1)
	assert.Equal(t, cardinal+diagonal, g.EdgeCount())

	for p := range regionPoints(region) {
		_, ok := g.Lookup(p)
		assert.True(t, ok, "missing node %v", p)
	}
}

func TestBakeBoundaryNodesAreNotWrapped(t *testing.T) {
	region := Region{Center: Pos(5, 5), HalfWidth: 2}
	g := Bake(region, 0, ClearTester{})

	corner, ok := g.Lookup(region.Min())
	require.True(t, ok)
	assert.Len(t, g.Neighbors(corner), 3)

	edge, ok := g.Lookup(Pos(5, region.Max().Y))
	require.True(t, ok)
	assert.Len(t, g.Neighbors(edge), 5)

	centre, ok := g.Lookup(region.Center)
	require.True(t, ok)
	assert.Len(t, g.Neighbors(centre), 8)

	for id, pos := range g.Nodes() {
		for _, e := range g.Neighbors(id) {
			to := g.Position(e.To)
			assert.True(t, region.Contains(to), "edge %v -> %v leaves the region", pos, to)
			assert.InDelta(t, pos.CostTo(to), e.Cost, 1e-12)
		}
	}
}

func TestBakeDegenerateRegions(t *testing.T) {
	single := Bake(Region{Center: Pos(3, 3), HalfWidth: 0}, 0, ClearTester{})
	assert.Zero(t, single.NodeCount(), "a lone node has no neighbours and is pruned")

	empty := Bake(Region{HalfWidth: -1}, 0, ClearTester{})
	assert.Zero(t, empty.NodeCount())
	_, ok := FindPath(empty, Pos(0, 0), Pos(0, 0))
	assert.False(t, ok)
}

func TestBakePrunesEnclosedNode(t *testing.T) {
	region := Region{Center: Pos(0, 0), HalfWidth: 2}
	enclosed := Pos(1, 1)
	g := Bake(region, 0, pointTester{blocked: map[Position]bool{enclosed: true}})

	_, ok := g.Lookup(enclosed)
	assert.False(t, ok)
	assert.Equal(t, region.Side()*region.Side()-1, g.NodeCount())

	for id := range g.Nodes() {
		for _, e := range g.Neighbors(id) {
			assert.NotEqual(t, enclosed, g.Position(e.To))
		}
	}

	_, ok = FindPath(g, Pos(-2, -2), enclosed)
	assert.False(t, ok)

	path, ok := FindPath(g, Pos(0, 0), Pos(2, 2))
	require.True(t, ok)
	assert.NotContains(t, path, enclosed)
}

func TestBakeValidatesEachDirectionIndependently(t *testing.T) {
	region := Region{Center: Pos(0, 0), HalfWidth: 1}
	g := Bake(region, 0, oneWayTester{source: Pos(0, 0)})

	// The centre cannot leave, so it is pruned, and edges into it are dropped with it.
	_, ok := g.Lookup(Pos(0, 0))
	assert.False(t, ok)
	assert.Equal(t, 8, g.NodeCount())
}

func TestBakeIsIdempotent(t *testing.T) {
	world := mustWorld(t,
		obstacle.Obstacle{ID: "rock", Shape: obstacle.Box(1.5, -0.5, 2.5, 3.5)},
		obstacle.Obstacle{ID: "pond", Shape: obstacle.Box(-4, -4, -2.6, -2.6)},
	)
	region := NewRegion(0, 0, 11)

	first := Snapshot(Bake(region, 0.3, world))
	second := Snapshot(Bake(region, 0.3, world))

	assert.NotEqual(t, first.BakeID, second.BakeID)
	first.BakeID, second.BakeID = "", ""
	assert.Equal(t, first, second)
}

func TestBakeAgainstWorldBlocksStaticGeometryOnly(t *testing.T) {
	region := Region{Center: Pos(0, 0), HalfWidth: 3}
	wall := obstacle.Box(-0.5, -3.5, 0.5, 3.5) // splits the region in two

	static := Bake(region, 0.1, mustWorld(t, obstacle.Obstacle{ID: "wall", Shape: wall}))
	_, ok := FindPath(static, Pos(-2, 0), Pos(2, 0))
	assert.False(t, ok)

	actor := Bake(region, 0.1, mustWorld(t, obstacle.Obstacle{ID: "rat", Layer: obstacle.Rat, Shape: wall}))
	_, ok = FindPath(actor, Pos(-2, 0), Pos(2, 0))
	assert.True(t, ok)
}

func TestBuilderLogsStats(t *testing.T) {
	var buf bytes.Buffer
	b := Builder{
		Radius: 0,
		Filter: obstacle.DefaultFilter(),
		Tester: pointTester{blocked: map[Position]bool{Pos(0, 0): true}},
		Logger: log.New(&buf, "", 0),
	}

	g, stats := b.Build(Region{Center: Pos(0, 0), HalfWidth: 1})
	assert.Equal(t, 8, stats.Nodes)
	assert.Equal(t, 1, stats.Pruned)
	assert.Equal(t, g.EdgeCount(), stats.Edges)
	assert.Equal(t, 16, stats.Rejected) // 8 out of the centre, 8 into it
	assert.Contains(t, buf.String(), "9 sampled, 8 kept")
}

// regionPoints iterates over every lattice point of r.
func regionPoints(r Region) func(func(Position) bool) {
	return func(yield func(Position) bool) {
		lo, hi := r.Min(), r.Max()
		for x := lo.X; x <= hi.X; x++ {
			for y := lo.Y; y <= hi.Y; y++ {
				if !yield(Pos(x, y)) {
					return
				}
			}
		}
	}
}
