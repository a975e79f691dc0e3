package obstacle

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareDropsContainedObstacles(t *testing.T) {
	obstacles := []Obstacle{
		{ID: "pebble", Shape: Box(1, 1, 2, 2)},
		{ID: "boulder", Shape: Box(0, 0, 5, 5)},
		{ID: "rat", Layer: Rat, Shape: Box(1, 1, 2, 2)},
		{ID: "far", Shape: Box(10, 10, 11, 11)},
	}
	for i := range obstacles {
		if obstacles[i].Layer == "" {
			obstacles[i].Layer = Default
		}
	}

	prepared := Prepare(obstacles, 0)

	var ids []string
	for _, o := range prepared {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []string{"boulder", "rat", "far"}, ids)
	assert.Len(t, obstacles, 4, "input slice is left alone")
}

func TestPrepareSimplifiesOutlines(t *testing.T) {
	// Square with a nearly collinear vertex on each side.
	ring := orb.Ring{
		{0, 0}, {5, 0.01}, {10, 0},
		{10.01, 5}, {10, 10},
		{5, 10.01}, {0, 10},
		{-0.01, 5}, {0, 0},
	}
	prepared := Prepare([]Obstacle{{ID: "square", Layer: Default, Shape: orb.Polygon{ring}}}, 0.1)

	require.Len(t, prepared, 1)
	assert.Len(t, prepared[0].Shape[0], 5)
	assert.Len(t, ring, 9, "original outline is not mutated")
}

func TestPrepareKeepsTinyPolygons(t *testing.T) {
	tri := orb.Polygon{{{0, 0}, {1, 0}, {0, 1}, {0, 0}}}
	prepared := Prepare([]Obstacle{{ID: "tri", Layer: Default, Shape: tri}}, 10)

	require.Len(t, prepared, 1)
	assert.Equal(t, tri, prepared[0].Shape)
}
