package navgraph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"tile-navigation/obstacle"
)

func TestFindPathPrefersDiagonals(t *testing.T) {
	g := Bake(Region{Center: Pos(0, 0), HalfWidth: 1}, 0, ClearTester{})

	route, ok := FindPath(g, Pos(-1, -1), Pos(1, 1))
	require.True(t, ok)
	assert.Equal(t, []Position{Pos(-1, -1), Pos(0, 0), Pos(1, 1)}, route)
	assert.InDelta(t, 2*math.Sqrt2, PathCost(route), 1e-9)
}

func TestFindPathSameEndpoint(t *testing.T) {
	g := Bake(Region{Center: Pos(0, 0), HalfWidth: 1}, 0, ClearTester{})

	route, ok := FindPath(g, Pos(1, 0), Pos(1, 0))
	require.True(t, ok)
	assert.Equal(t, []Position{Pos(1, 0)}, route)
}

func TestFindPathOutsideRegion(t *testing.T) {
	g := Bake(Region{Center: Pos(0, 0), HalfWidth: 2}, 0, ClearTester{})

	_, ok := FindPath(g, Pos(0, 0), Pos(3, 0))
	assert.False(t, ok)
	_, ok = FindPath(g, Pos(-30, 4), Pos(0, 0))
	assert.False(t, ok)
	_, ok = FindPath(nil, Pos(0, 0), Pos(1, 0))
	assert.False(t, ok)
}

func TestFindPathExhaustsWhenSeparated(t *testing.T) {
	g := NewGraph()
	a := g.AddNode(Pos(0, 0))
	b := g.AddNode(Pos(1, 0))
	c := g.AddNode(Pos(5, 0))
	d := g.AddNode(Pos(6, 0))
	g.AddDirectedEdge(a, b, 1)
	g.AddDirectedEdge(b, a, 1)
	g.AddDirectedEdge(c, d, 1)
	g.AddDirectedEdge(d, c, 1)

	route, ok := FindPath(g, Pos(0, 0), Pos(6, 0))
	assert.False(t, ok)
	assert.Nil(t, route)
}

func TestFindPathRespectsEdgeDirection(t *testing.T) {
	g := NewGraph()
	a := g.AddNode(Pos(0, 0))
	b := g.AddNode(Pos(1, 0))
	g.AddDirectedEdge(a, b, 1)
	g.AddDirectedEdge(b, b, 0)

	_, ok := FindPath(g, Pos(0, 0), Pos(1, 0))
	assert.True(t, ok)
	_, ok = FindPath(g, Pos(1, 0), Pos(0, 0))
	assert.False(t, ok)
}

func TestFindPathAroundWallGap(t *testing.T) {
	region := Region{Center: Pos(0, 0), HalfWidth: 4}
	world := mustWorld(t,
		obstacle.Obstacle{ID: "upper", Shape: obstacle.Box(-0.4, -1.5, 0.4, 4.5)},
		obstacle.Obstacle{ID: "lower", Shape: obstacle.Box(-0.4, -4.5, 0.4, -2.5)},
	)
	g := Bake(region, 0.2, world)

	route, ok := FindPath(g, Pos(-3, 3), Pos(3, 3))
	require.True(t, ok)
	assert.Contains(t, route, Pos(0, -2), "only the gap at y=-2 crosses the wall")
	assert.Equal(t, Pos(-3, 3), route[0])
	assert.Equal(t, Pos(3, 3), route[len(route)-1])

	for i := 1; i < len(route); i++ {
		_, ok := g.Lookup(route[i])
		assert.True(t, ok)
		assert.LessOrEqual(t, route[i-1].CostTo(route[i]), math.Sqrt2+1e-9, "steps are lattice neighbours")
	}
}

func TestFindPathRelativeMatchesAbsolute(t *testing.T) {
	world := mustWorld(t, obstacle.Obstacle{ID: "rock", Shape: obstacle.Box(10.5, 20.5, 12.5, 21.5)})

	for _, origin := range []Position{Pos(0, 0), Pos(11, 21), Pos(-7, 3)} {
		g := Bake(Region{Center: origin, HalfWidth: 3}, 0.25, world)
		for _, pair := range [][2]Position{
			{Pos(-3, -3), Pos(3, 3)},
			{Pos(0, 0), Pos(2, -1)},
			{Pos(-3, 0), Pos(9, 0)},
		} {
			rel, relOK := FindPathRelative(g, origin, pair[0], pair[1])
			abs, absOK := FindPath(g, origin.Add(pair[0]), origin.Add(pair[1]))
			assert.Equal(t, absOK, relOK)
			assert.Equal(t, abs, rel)
		}
	}
}

func TestFindPathIsDeterministic(t *testing.T) {
	g := Bake(Region{Center: Pos(0, 0), HalfWidth: 5}, 0, ClearTester{})

	first, ok := FindPath(g, Pos(-5, -5), Pos(5, 0))
	require.True(t, ok)
	for i := 0; i < 10; i++ {
		again, _ := FindPath(g, Pos(-5, -5), Pos(5, 0))
		assert.Equal(t, first, again)
	}
}

func TestFindPathIsOptimal(t *testing.T) {
	region := NewRegion(0, 0, DefaultTileWidth)
	rocks := obstacle.Scatter(7, region.Bound(), 1, 0.5, obstacle.Default)
	world := mustWorld(t, rocks...)
	g := Bake(region, 0.2, world)
	require.NotZero(t, g.NodeCount())

	var live []Position
	for _, p := range g.Nodes() {
		live = append(live, p)
	}

	oracle := shortestFrom(g)
	step := len(live)/12 + 1
	for i := 0; i < len(live); i += step {
		for j := len(live) - 1; j >= 0; j -= step {
			from, to := live[i], live[j]
			want := oracle(from, to)

			route, ok := FindPath(g, from, to)
			if math.IsInf(want, 1) {
				assert.False(t, ok, "%v -> %v should be unreachable", from, to)
				continue
			}
			require.True(t, ok, "%v -> %v should be reachable", from, to)
			assert.InDelta(t, want, routeWeight(t, g, route), 1e-9, "%v -> %v", from, to)
		}
	}
}

// shortestFrom returns a Dijkstra oracle over the same edges.
func shortestFrom(g *Graph) func(from, to Position) float64 {
	wg := simple.NewWeightedDirectedGraph(0, math.Inf(1))
	for id := range g.Nodes() {
		wg.AddNode(simple.Node(id))
	}
	for id := range g.Nodes() {
		for _, e := range g.Neighbors(id) {
			wg.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(id), T: simple.Node(e.To), W: e.Cost})
		}
	}
	return func(from, to Position) float64 {
		s, _ := g.Lookup(from)
		d, _ := g.Lookup(to)
		return path.DijkstraFrom(simple.Node(s), wg).WeightTo(int64(d))
	}
}

// routeWeight sums graph edge weights along route, failing if a step is not an edge.
func routeWeight(t *testing.T, g *Graph, route []Position) float64 {
	t.Helper()
	total := 0.0
	for i := 1; i < len(route); i++ {
		from, _ := g.Lookup(route[i-1])
		to, _ := g.Lookup(route[i])
		found := false
		for _, e := range g.Neighbors(from) {
			if e.To == to {
				total += e.Cost
				found = true
				break
			}
		}
		require.True(t, found, "no edge %v -> %v", route[i-1], route[i])
	}
	return total
}
