package geom

import (
	"errors"
	"math"
)

// ErrSingularMatrix is returned by Inverse when the matrix has no inverse.
var ErrSingularMatrix = errors.New("geom: matrix is not invertible")

// Matrix3 is a 3x3 transform matrix in row-major order:
//
//	| 0 1 2 |
//	| 3 4 5 |
//	| 6 7 8 |
//
// For affine transforms the last row is (0, 0, 1). Matrix3 is a value
// type; copies are independent.
type Matrix3 [9]float64

// Identity returns the identity matrix.
func Identity() Matrix3 {
	return Matrix3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Translation returns a matrix translating by (x, y).
func Translation(x, y float64) Matrix3 {
	return Matrix3{
		1, 0, x,
		0, 1, y,
		0, 0, 1,
	}
}

// Scaling returns a matrix scaling by (x, y).
func Scaling(x, y float64) Matrix3 {
	return Matrix3{
		x, 0, 0,
		0, y, 0,
		0, 0, 1,
	}
}

// Rotation returns a matrix rotating by the given angle.
func Rotation(a Angle) Matrix3 {
	cos := a.Cos()
	sin := a.Sin()
	return Matrix3{
		cos, -sin, 0,
		sin, cos, 0,
		0, 0, 1,
	}
}

// Mul returns m * other, i.e. the transform that applies other first and
// m second.
func (m Matrix3) Mul(o Matrix3) Matrix3 {
	var r Matrix3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			r[row*3+col] = m[row*3+0]*o[0*3+col] +
				m[row*3+1]*o[1*3+col] +
				m[row*3+2]*o[2*3+col]
		}
	}
	return r
}

// Translate composes a translation onto m.
func (m Matrix3) Translate(x, y float64) Matrix3 {
	return m.Mul(Translation(x, y))
}

// Rotate composes a rotation onto m.
func (m Matrix3) Rotate(a Angle) Matrix3 {
	return m.Mul(Rotation(a))
}

// Scale composes a scale onto m.
func (m Matrix3) Scale(x, y float64) Matrix3 {
	return m.Mul(Scaling(x, y))
}

// Transform applies the matrix to a point.
func (m Matrix3) Transform(v Vec2) Vec2 {
	return Vec2{
		X: m[0]*v.X + m[1]*v.Y + m[2],
		Y: m[3]*v.X + m[4]*v.Y + m[5],
	}
}

// TransformAll applies the matrix to every point, returning a new slice.
func (m Matrix3) TransformAll(pts []Vec2) []Vec2 {
	out := make([]Vec2, len(pts))
	for i, p := range pts {
		out[i] = m.Transform(p)
	}
	return out
}

// Determinant returns the determinant of the matrix.
func (m Matrix3) Determinant() float64 {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

// Inverse returns the inverse matrix, or ErrSingularMatrix when the
// determinant is zero (or numerically indistinguishable from it).
func (m Matrix3) Inverse() (Matrix3, error) {
	det := m.Determinant()
	if math.Abs(det) < 1e-14 {
		return Matrix3{}, ErrSingularMatrix
	}
	inv := 1.0 / det
	return Matrix3{
		(m[4]*m[8] - m[5]*m[7]) * inv,
		(m[2]*m[7] - m[1]*m[8]) * inv,
		(m[1]*m[5] - m[2]*m[4]) * inv,
		(m[5]*m[6] - m[3]*m[8]) * inv,
		(m[0]*m[8] - m[2]*m[6]) * inv,
		(m[2]*m[3] - m[0]*m[5]) * inv,
		(m[3]*m[7] - m[4]*m[6]) * inv,
		(m[1]*m[6] - m[0]*m[7]) * inv,
		(m[0]*m[4] - m[1]*m[3]) * inv,
	}, nil
}

// IsIdentity reports whether m is exactly the identity matrix.
func (m Matrix3) IsIdentity() bool {
	return m == Identity()
}

// AbsoluteScale returns the average absolute scale factor of the matrix,
// useful for converting widths through a transform.
func (m Matrix3) AbsoluteScale() float64 {
	sx := math.Hypot(m[0], m[3])
	sy := math.Hypot(m[1], m[4])
	return (sx + sy) / 2.0
}
