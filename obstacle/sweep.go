package obstacle

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// segment is a line segment between two points.
type segment struct {
	a, b orb.Point
}

// bound is the axis-aligned box covering the segment.
func (s segment) bound() orb.Bound {
	return orb.Bound{Min: s.a, Max: s.a}.Extend(s.b)
}

// sweepHits reports whether a disc of the given radius moved along s touches poly.
// Starting or ending inside the polygon counts as a hit. Clearance of exactly radius does not.
func sweepHits(s segment, radius float64, poly orb.Polygon) bool {
	if len(poly) == 0 || len(poly[0]) < 3 {
		return false
	}

	if planar.PolygonContains(poly, s.a) || planar.PolygonContains(poly, s.b) {
		return true
	}

	for _, ring := range poly {
		n := len(ring)
		for i := 0; i < n; i++ {
			edge := segment{a: ring[i], b: ring[(i+1)%n]}
			if segmentsIntersect(s, edge) {
				return true
			}
			if segmentDistance(s, edge) < radius {
				return true
			}
		}
	}

	return false
}

// segmentDistance is the shortest distance between two non-intersecting segments.
func segmentDistance(s1, s2 segment) float64 {
	return math.Min(
		math.Min(planar.DistanceFromSegment(s2.a, s2.b, s1.a), planar.DistanceFromSegment(s2.a, s2.b, s1.b)),
		math.Min(planar.DistanceFromSegment(s1.a, s1.b, s2.a), planar.DistanceFromSegment(s1.a, s1.b, s2.b)),
	)
}

// segmentsIntersect checks if two segments cross or touch.
func segmentsIntersect(s1, s2 segment) bool {
	p1, p2 := s1.a, s1.b
	p3, p4 := s2.a, s2.b

	d1 := direction(p3, p4, p1)
	d2 := direction(p3, p4, p2)
	d3 := direction(p1, p2, p3)
	d4 := direction(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	// Collinear cases
	if d1 == 0 && onSegment(p3, p4, p1) {
		return true
	}
	if d2 == 0 && onSegment(p3, p4, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, p3) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, p4) {
		return true
	}

	return false
}

// direction is the cross product giving the orientation of p3 relative to p1->p2.
func direction(p1, p2, p3 orb.Point) float64 {
	return (p3.X()-p1.X())*(p2.Y()-p1.Y()) - (p2.X()-p1.X())*(p3.Y()-p1.Y())
}

// onSegment checks if q lies within the bounding box of segment pr.
func onSegment(p, r, q orb.Point) bool {
	return q.X() <= math.Max(p.X(), r.X()) && q.X() >= math.Min(p.X(), r.X()) &&
		q.Y() <= math.Max(p.Y(), r.Y()) && q.Y() >= math.Min(p.Y(), r.Y())
}
