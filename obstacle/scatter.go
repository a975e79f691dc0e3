package obstacle

import (
	"fmt"
	"math"

	"github.com/ojrac/opensimplex-go"
	"github.com/paulmach/orb"
)

// noiseScale stretches the noise so neighbouring cells correlate into clumps.
const noiseScale = 0.15

// Scatter fills bound with square rocks of side cell wherever the noise value at the cell centre
// exceeds threshold. The same seed always yields the same field.
func Scatter(seed int64, bound orb.Bound, cell, threshold float64, layer Layer) []Obstacle {
	if cell <= 0 {
		return nil
	}

	noise := opensimplex.New(seed)
	cols := int(math.Floor((bound.Max.X() - bound.Min.X()) / cell))
	rows := int(math.Floor((bound.Max.Y() - bound.Min.Y()) / cell))

	var rocks []Obstacle
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			x := bound.Min.X() + float64(cx)*cell
			y := bound.Min.Y() + float64(cy)*cell
			centre := orb.Point{x + cell/2, y + cell/2}
			if noise.Eval2(centre.X()*noiseScale, centre.Y()*noiseScale) <= threshold {
				continue
			}
			rocks = append(rocks, Obstacle{
				ID:    fmt.Sprintf("rock-%d@%g,%g", seed, x, y),
				Layer: layer,
				Shape: Box(x, y, x+cell, y+cell),
			})
		}
	}
	return rocks
}
