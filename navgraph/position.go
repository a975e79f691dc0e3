package navgraph

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Position is an integer lattice coordinate.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pos is a convenience constructor for Position.
func Pos(x, y int) Position { return Position{X: x, Y: y} }

// Add returns the component-wise sum of two positions.
func (p Position) Add(other Position) Position {
	return Position{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the component-wise difference of two positions.
func (p Position) Sub(other Position) Position {
	return Position{X: p.X - other.X, Y: p.Y - other.Y}
}

// CostTo is the Euclidean distance between two positions. It is both the edge weight and the
// search heuristic.
func (p Position) CostTo(other Position) float64 {
	return math.Hypot(float64(other.X-p.X), float64(other.Y-p.Y))
}

// Point converts the position to world coordinates.
func (p Position) Point() orb.Point {
	return orb.Point{float64(p.X), float64(p.Y)}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Directions lists the 8 grid offsets probed for every node, cardinals first.
var Directions = [8]Position{
	{0, 1}, {-1, 0}, {0, -1}, {1, 0},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}
