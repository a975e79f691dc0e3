package navgraph

import (
	"log"
	"slices"
	"sync"

	"tile-navigation/obstacle"
)

// TileNavigator owns the live navigation graph of one tile. Bake swaps in a new graph
// atomically; queries against the previous graph finish before the swap.
type TileNavigator struct {
	Name   string
	Region Region

	builder Builder

	mu        sync.RWMutex
	graph     *Graph
	stats     BuildStats
	debugPath []Position
}

// NewTileNavigator creates a navigator for region. Nothing is baked until Bake is called.
func NewTileNavigator(name string, region Region, radius float64, tester ObstacleTester, filter obstacle.Filter) *TileNavigator {
	return &TileNavigator{
		Name:   name,
		Region: region,
		builder: Builder{
			Radius: radius,
			Filter: filter,
			Tester: tester,
		},
	}
}

// SetLogger routes bake logging. A nil logger silences it.
func (t *TileNavigator) SetLogger(l *log.Logger) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.builder.Logger = l
}

// Bake rebuilds the graph from the current obstacle layout and replaces the previous one.
func (t *TileNavigator) Bake() (*Graph, BuildStats) {
	t.mu.Lock()
	defer t.mu.Unlock()

	g, stats := t.builder.Build(t.Region)
	t.graph = g
	t.stats = stats
	t.debugPath = nil
	return g, stats
}

// Graph returns the live graph, or nil before the first bake.
func (t *TileNavigator) Graph() *Graph {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.graph
}

// Stats returns the statistics of the last bake.
func (t *TileNavigator) Stats() BuildStats {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.stats
}

// Origin is the tile anchor that relative queries are offset from.
func (t *TileNavigator) Origin() Position {
	return t.Region.Center
}

// FindPath queries the live graph in world lattice coordinates.
func (t *TileNavigator) FindPath(from, to Position) ([]Position, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return FindPath(t.graph, from, to)
}

// FindPathRelative queries the live graph in tile-local coordinates.
func (t *TileNavigator) FindPathRelative(from, to Position) ([]Position, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return FindPathRelative(t.graph, t.Region.Center, from, to)
}

// SetDebugPath computes a relative path and keeps it for an overlay. It reports whether one exists.
func (t *TileNavigator) SetDebugPath(from, to Position) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	path, ok := FindPathRelative(t.graph, t.Region.Center, from, to)
	t.debugPath = path
	if !ok {
		log.Printf("⚠️  Tile %s: debug positions %v -> %v do not have a valid path\n", t.Name, from, to)
	}
	return ok
}

// DebugPath returns a copy of the last debug path.
func (t *TileNavigator) DebugPath() []Position {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.debugPath)
}

// OnDebugPath reports whether p lies on the last debug path.
func (t *TileNavigator) OnDebugPath(p Position) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Contains(t.debugPath, p)
}
