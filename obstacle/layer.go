package obstacle

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// Layer tags an obstacle with a collision category.
type Layer string

const (
	Default       Layer = "Default"
	IgnoreRaycast Layer = "Ignore Raycast"
	SlideableArea Layer = "SlideableArea"
	Player        Layer = "Player"
	Rat           Layer = "Rat"
)

// Filter is the set of layers a sweep passes through. The zero Filter is blocked by every layer.
type Filter struct {
	ignore mapset.Set[Layer]
}

// NewFilter returns a filter that ignores the given layers and is blocked by everything else.
func NewFilter(ignored ...Layer) Filter {
	f := Filter{ignore: mapset.New[Layer]()}
	for _, l := range ignored {
		f.ignore.Put(l)
	}
	return f
}

// DefaultFilter ignores raycast-ignored geometry, traversable area markers and dynamic actors,
// so only static geometry blocks.
func DefaultFilter() Filter {
	return NewFilter(IgnoreRaycast, SlideableArea, Player, Rat)
}

// Blocks reports whether obstacles on layer l stop a sweep.
func (f Filter) Blocks(l Layer) bool {
	return !f.ignore.Has(l)
}

// Ignored returns the ignored layers in sorted order.
func (f Filter) Ignored() []Layer {
	layers := make([]Layer, 0, f.ignore.Size())
	f.ignore.Each(func(l Layer) {
		layers = append(layers, l)
	})
	sort.Slice(layers, func(i, j int) bool { return layers[i] < layers[j] })
	return layers
}
