package vector

import "github.com/OpenTraceLab/OpenTraceView/pkg/kicad/geom"

// Triangulate converts a simple polygon into triangles by ear clipping.
// Polygons with fewer than three points produce no triangles. Three
// points bypass the clipping loop entirely. The winding order of the
// input does not matter.
//
// This is the O(n^2) textbook algorithm; board outlines and zone fills
// have modest vertex counts, so the simple version wins over an indexed
// spatial structure.
func Triangulate(points []geom.Vec2) [][3]geom.Vec2 {
	if len(points) < 3 {
		return nil
	}
	if len(points) == 3 {
		return [][3]geom.Vec2{{points[0], points[1], points[2]}}
	}

	// Work on an index list so clipped ears are cheap to remove.
	idx := make([]int, 0, len(points))
	for i := range points {
		idx = append(idx, i)
	}

	// Ear tests below assume counter-clockwise winding.
	if signedArea(points) < 0 {
		for i, j := 0, len(idx)-1; i < j; i, j = i+1, j-1 {
			idx[i], idx[j] = idx[j], idx[i]
		}
	}

	var out [][3]geom.Vec2
	guard := 0
	for len(idx) > 3 {
		clipped := false
		n := len(idx)
		for i := 0; i < n; i++ {
			prev := points[idx[(i+n-1)%n]]
			cur := points[idx[i]]
			next := points[idx[(i+1)%n]]

			if !isEar(prev, cur, next, points, idx, i) {
				continue
			}

			out = append(out, [3]geom.Vec2{prev, cur, next})
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}

		// Degenerate input (self-intersections, repeated points) can
		// leave no clippable ear; bail out instead of spinning.
		if !clipped {
			guard++
			if guard > 1 {
				return out
			}
			// One retry with the first vertex dropped often recovers
			// from a single duplicated point.
			idx = idx[1:]
		}
	}

	if len(idx) == 3 {
		out = append(out, [3]geom.Vec2{points[idx[0]], points[idx[1]], points[idx[2]]})
	}
	return out
}

// isEar reports whether the corner prev-cur-next is convex and contains
// no other polygon vertex.
func isEar(prev, cur, next geom.Vec2, points []geom.Vec2, idx []int, i int) bool {
	// Reflex corners cannot be ears (CCW winding assumed).
	if cross3(prev, cur, next) <= 0 {
		return false
	}

	n := len(idx)
	for j := 0; j < n; j++ {
		if j == i || j == (i+n-1)%n || j == (i+1)%n {
			continue
		}
		if pointInTriangle(points[idx[j]], prev, cur, next) {
			return false
		}
	}
	return true
}

// cross3 returns the z-component of (b-a) x (c-a).
func cross3(a, b, c geom.Vec2) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// pointInTriangle reports whether p lies strictly inside triangle abc.
func pointInTriangle(p, a, b, c geom.Vec2) bool {
	d1 := cross3(a, b, p)
	d2 := cross3(b, c, p)
	d3 := cross3(c, a, p)

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

// signedArea returns the signed area of the polygon; positive means
// counter-clockwise winding.
func signedArea(points []geom.Vec2) float64 {
	area := 0.0
	n := len(points)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += points[i].X*points[j].Y - points[j].X*points[i].Y
	}
	return area / 2.0
}
