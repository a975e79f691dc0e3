package navgraph

import "github.com/paulmach/orb"

// DefaultTileWidth is the side length of a standard tile in lattice units.
const DefaultTileWidth = 17

// Region is the square sampling bound of one tile.
type Region struct {
	Center    Position `json:"center"`
	HalfWidth int      `json:"halfWidth"`
}

// NewRegion derives a region from a tile's world anchor and width. The anchor is truncated toward
// zero and the half-width is width/2, so an odd width covers exactly width lattice points per side.
func NewRegion(anchorX, anchorY float64, width int) Region {
	return Region{
		Center:    Position{X: int(anchorX), Y: int(anchorY)},
		HalfWidth: width / 2,
	}
}

// Min is the inclusive lower corner.
func (r Region) Min() Position {
	return Position{X: r.Center.X - r.HalfWidth, Y: r.Center.Y - r.HalfWidth}
}

// Max is the inclusive upper corner.
func (r Region) Max() Position {
	return Position{X: r.Center.X + r.HalfWidth, Y: r.Center.Y + r.HalfWidth}
}

// Empty reports whether the region samples no points.
func (r Region) Empty() bool {
	return r.HalfWidth < 0
}

// Side is the number of lattice points along one side.
func (r Region) Side() int {
	if r.Empty() {
		return 0
	}
	return 2*r.HalfWidth + 1
}

// Contains reports whether p lies inside the inclusive bounds.
func (r Region) Contains(p Position) bool {
	lo, hi := r.Min(), r.Max()
	return !r.Empty() && p.X >= lo.X && p.X <= hi.X && p.Y >= lo.Y && p.Y <= hi.Y
}

// Bound returns the region in world coordinates.
func (r Region) Bound() orb.Bound {
	return orb.Bound{Min: r.Min().Point(), Max: r.Max().Point()}
}
