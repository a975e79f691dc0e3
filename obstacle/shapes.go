package obstacle

import "github.com/paulmach/orb"

// Box returns a closed axis-aligned rectangle.
func Box(minX, minY, maxX, maxY float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{minX, minY},
		{maxX, minY},
		{maxX, maxY},
		{minX, maxY},
		{minX, minY},
	}}
}
