// Package geom provides the 2D math used by the rendering pipeline:
// vectors, affine transforms, angles, arcs, and bounding boxes.
// Coordinates are in mm in the KiCad coordinate system (Y increases
// downward on screen for schematics, parsers handle unit conversion).
package geom

import "math"

// Vec2 represents a 2D point or displacement vector.
// Operations return new values; Vec2 is a plain value type.
type Vec2 struct {
	X float64
	Y float64
}

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{X: v.X - w.X, Y: v.Y - w.Y}
}

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Div returns the vector divided by a scalar.
func (v Vec2) Div(s float64) Vec2 {
	return Vec2{X: v.X / s, Y: v.Y / s}
}

// Neg returns the negation of the vector.
func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// Dot returns the dot product of two vectors.
func (v Vec2) Dot(w Vec2) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Cross returns the scalar 2D cross product (z-component of the 3D cross).
func (v Vec2) Cross(w Vec2) float64 {
	return v.X*w.Y - v.Y*w.X
}

// Magnitude returns the length of the vector.
func (v Vec2) Magnitude() float64 {
	return math.Hypot(v.X, v.Y)
}

// MagnitudeSq returns the squared length, avoiding the sqrt when only
// comparisons are needed.
func (v Vec2) MagnitudeSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns a unit vector in the same direction.
// The zero vector normalizes to itself.
func (v Vec2) Normalize() Vec2 {
	m := v.Magnitude()
	if m == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / m, Y: v.Y / m}
}

// Rotate returns the vector rotated by the given angle.
func (v Vec2) Rotate(a Angle) Vec2 {
	cos := math.Cos(a.Radians())
	sin := math.Sin(a.Radians())
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Perp returns the vector rotated 90 degrees counter-clockwise.
func (v Vec2) Perp() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// Angle returns the direction of the vector.
func (v Vec2) Angle() Angle {
	return Radians(math.Atan2(v.Y, v.X))
}

// Lerp performs linear interpolation between two vectors.
func (v Vec2) Lerp(w Vec2, t float64) Vec2 {
	return Vec2{
		X: v.X + (w.X-v.X)*t,
		Y: v.Y + (w.Y-v.Y)*t,
	}
}

// Equal reports whether two vectors are exactly equal.
func (v Vec2) Equal(w Vec2) bool {
	return v.X == w.X && v.Y == w.Y
}

// SegmentIntersect returns the intersection point of segments a1-a2 and
// b1-b2. The second return value is false when the segments are parallel
// or do not cross within their extents.
func SegmentIntersect(a1, a2, b1, b2 Vec2) (Vec2, bool) {
	ra := a2.Sub(a1)
	rb := b2.Sub(b1)

	denom := ra.Cross(rb)
	if denom == 0 {
		return Vec2{}, false
	}

	qp := b1.Sub(a1)
	t := qp.Cross(rb) / denom
	u := qp.Cross(ra) / denom

	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Vec2{}, false
	}

	return a1.Add(ra.Mul(t)), true
}
