package obstacle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultFilter(t *testing.T) {
	f := DefaultFilter()

	assert.True(t, f.Blocks(Default))
	assert.True(t, f.Blocks(Layer("Water")))
	for _, l := range []Layer{IgnoreRaycast, SlideableArea, Player, Rat} {
		assert.False(t, f.Blocks(l), "%s should not block", l)
	}
	assert.Equal(t, []Layer{IgnoreRaycast, Player, Rat, SlideableArea}, f.Ignored())
}

func TestZeroFilterBlocksEverything(t *testing.T) {
	var f Filter
	assert.True(t, f.Blocks(Rat))
	assert.Empty(t, f.Ignored())
}
