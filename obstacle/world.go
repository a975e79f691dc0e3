package obstacle

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dhconnelly/rtreego"
	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// ErrUnknownObstacle is returned when an obstacle id is not in the world.
var ErrUnknownObstacle = errors.New("unknown obstacle")

// minExtent keeps rtree rectangles non-degenerate for axis-aligned shapes.
const minExtent = 1e-9

// Obstacle is a polygon of static geometry tagged with a layer.
type Obstacle struct {
	ID       string      `json:"id"`
	Layer    Layer       `json:"layer"`
	Shape    orb.Polygon `json:"shape"`
	Disabled bool        `json:"disabled,omitempty"`
}

// entry wraps an obstacle for R-tree storage.
type entry struct {
	obstacle Obstacle
	rect     rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *entry) Bounds() rtreego.Rect {
	return e.rect
}

// World holds the static obstacles a tile is baked against. It is safe for concurrent use.
type World struct {
	mu      sync.RWMutex
	tree    *rtreego.Rtree
	entries map[string]*entry
	order   []string
}

// NewWorld creates a world holding the given obstacles.
func NewWorld(obstacles ...Obstacle) (*World, error) {
	w := &World{
		tree:    rtreego.NewTree(2, 25, 50), // 2D, min 25, max 50 entries per node
		entries: make(map[string]*entry, len(obstacles)),
	}
	for _, o := range obstacles {
		if _, err := w.Add(o); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Add inserts an obstacle and returns its id. An empty id is replaced by a generated one.
func (w *World) Add(o Obstacle) (string, error) {
	if len(o.Shape) == 0 || len(o.Shape[0]) < 3 {
		return "", fmt.Errorf("obstacle %q: polygon needs at least 3 vertices", o.ID)
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Layer == "" {
		o.Layer = Default
	}

	rect, err := toRect(o.Shape.Bound())
	if err != nil {
		return "", fmt.Errorf("obstacle %q: %w", o.ID, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.entries[o.ID]; exists {
		return "", fmt.Errorf("obstacle %q already exists", o.ID)
	}
	e := &entry{obstacle: o, rect: rect}
	w.tree.Insert(e)
	w.entries[o.ID] = e
	w.order = append(w.order, o.ID)
	return o.ID, nil
}

// Remove deletes an obstacle from the world.
func (w *World) Remove(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := w.entries[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownObstacle, id)
	}
	w.tree.Delete(e)
	delete(w.entries, id)
	for i, oid := range w.order {
		if oid == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	return nil
}

// SetEnabled switches an obstacle on or off. Disabled obstacles never block, like melted ice.
func (w *World) SetEnabled(id string, enabled bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := w.entries[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownObstacle, id)
	}
	e.obstacle.Disabled = !enabled
	return nil
}

// Obstacles returns a copy of every obstacle in insertion order.
func (w *World) Obstacles() []Obstacle {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]Obstacle, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.entries[id].obstacle)
	}
	return out
}

// Len returns the number of obstacles.
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.entries)
}

// IsClear reports whether a disc of radius swept from one point to another touches no enabled
// obstacle on a layer the filter blocks.
func (w *World) IsClear(from, to orb.Point, radius float64, filter Filter) bool {
	sweep := segment{a: from, b: to}
	rect, err := toRect(sweep.bound().Pad(radius + minExtent))
	if err != nil {
		return false
	}

	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, item := range w.tree.SearchIntersect(rect) {
		e := item.(*entry)
		if e.obstacle.Disabled || !filter.Blocks(e.obstacle.Layer) {
			continue
		}
		if sweepHits(sweep, radius, e.obstacle.Shape) {
			return false
		}
	}
	return true
}

// toRect converts an orb bound to an rtreego rectangle.
func toRect(b orb.Bound) (rtreego.Rect, error) {
	return rtreego.NewRect(
		rtreego.Point{b.Min.X(), b.Min.Y()},
		[]float64{max(b.Max.X()-b.Min.X(), minExtent), max(b.Max.Y()-b.Min.Y(), minExtent)},
	)
}
