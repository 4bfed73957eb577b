package geom

import "math"

// Angle represents a rotation. Internally stored in radians, but KiCad
// files express angles in degrees, so comparisons and normalization are
// done in degrees. Rounding to two decimal places in degrees absorbs the
// float noise that accumulates over repeated radian round-trips.
type Angle struct {
	rad float64
}

// Radians constructs an Angle from radians.
func Radians(rad float64) Angle {
	return Angle{rad: rad}
}

// Degrees constructs an Angle from degrees.
func Degrees(deg float64) Angle {
	return Angle{rad: deg * math.Pi / 180.0}
}

// Radians returns the angle in radians.
func (a Angle) Radians() float64 {
	return a.rad
}

// Degrees returns the angle in degrees, rounded to two decimal places.
func (a Angle) Degrees() float64 {
	return round2(a.rad * 180.0 / math.Pi)
}

// Normalize wraps the angle into [0°, 360°).
func (a Angle) Normalize() Angle {
	deg := math.Mod(a.Degrees(), 360.0)
	if deg < 0 {
		deg += 360.0
	}
	return Degrees(deg)
}

// Add returns the sum of two angles.
func (a Angle) Add(b Angle) Angle {
	return Angle{rad: a.rad + b.rad}
}

// Sub returns the difference of two angles.
func (a Angle) Sub(b Angle) Angle {
	return Angle{rad: a.rad - b.rad}
}

// Neg returns the negated angle.
func (a Angle) Neg() Angle {
	return Angle{rad: -a.rad}
}

// Equal reports whether two angles match to two decimal places in degrees.
func (a Angle) Equal(b Angle) bool {
	return a.Degrees() == b.Degrees()
}

// Sin returns the sine of the angle.
func (a Angle) Sin() float64 { return math.Sin(a.rad) }

// Cos returns the cosine of the angle.
func (a Angle) Cos() float64 { return math.Cos(a.rad) }

func round2(v float64) float64 {
	return math.Round(v*100.0) / 100.0
}
