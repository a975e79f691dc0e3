package obstacle

import (
	"log"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/simplify"
)

// Prepare simplifies obstacle outlines with Douglas-Peucker and drops obstacles that lie entirely
// inside another obstacle of the same layer. An epsilon of zero skips simplification.
func Prepare(obstacles []Obstacle, epsilon float64) []Obstacle {
	out := make([]Obstacle, len(obstacles))
	copy(out, obstacles)

	if epsilon > 0 {
		for i := range out {
			out[i].Shape = simplifyPolygon(out[i].Shape, epsilon)
		}
	}

	filtered := removeContained(out)
	if removed := len(out) - len(filtered); removed > 0 {
		log.Printf("   Obstacles after removing contained: %d (removed %d)\n", len(filtered), removed)
	}
	return filtered
}

// simplifyPolygon reduces outline complexity, keeping the original when a ring would collapse.
func simplifyPolygon(poly orb.Polygon, epsilon float64) orb.Polygon {
	if len(poly) == 0 || len(poly[0]) <= 4 {
		return poly
	}

	simplified, _ := simplify.DouglasPeucker(epsilon).Simplify(poly.Clone()).(orb.Polygon)
	if len(simplified) == 0 || len(simplified[0]) < 4 {
		return poly
	}
	return simplified
}

// removeContained removes obstacles fully contained within another obstacle on the same layer.
func removeContained(obstacles []Obstacle) []Obstacle {
	if len(obstacles) <= 1 {
		return obstacles
	}

	contained := make([]bool, len(obstacles))
	for i := range obstacles {
		if contained[i] {
			continue
		}
		for j := range obstacles {
			if i == j || contained[j] || obstacles[i].Layer != obstacles[j].Layer {
				continue
			}
			if isContainedIn(obstacles[i].Shape, obstacles[j].Shape) {
				contained[i] = true
				break
			}
			if isContainedIn(obstacles[j].Shape, obstacles[i].Shape) {
				contained[j] = true
			}
		}
	}

	result := make([]Obstacle, 0, len(obstacles))
	for i, o := range obstacles {
		if !contained[i] {
			result = append(result, o)
		}
	}
	return result
}

// isContainedIn checks if polygon a lies fully within polygon b.
func isContainedIn(a, b orb.Polygon) bool {
	if len(a) == 0 || len(b) == 0 || len(a[0]) == 0 {
		return false
	}

	ab, bb := a.Bound(), b.Bound()
	if !bb.Contains(ab.Min) || !bb.Contains(ab.Max) {
		return false
	}

	for _, v := range a[0] {
		if !planar.PolygonContains(b, v) {
			return false
		}
	}
	return true
}
