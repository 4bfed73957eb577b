package geom

import (
	"fmt"
	"math"
)

// arcStep is the angular sampling step used when converting arcs to
// polylines. Matches KiCad's default segmentation closely enough for
// display purposes.
const arcStep = math.Pi / 32.0

// Arc is a circular arc swept counter-clockwise from StartAngle to
// EndAngle. StartAngle <= EndAngle is an invariant maintained by the
// constructors; ToPolyline enforces it.
type Arc struct {
	Center     Vec2
	Radius     float64
	StartAngle Angle
	EndAngle   Angle
	Width      float64
}

// ArcFromThreePoints reconstructs the arc passing through start, mid and
// end, in that winding order. KiCad files describe arcs this way; the
// center must be recovered from the chord geometry, which is numerically
// delicate when the chords are near-parallel or near-axis-aligned.
func ArcFromThreePoints(start, mid, end Vec2, width float64) Arc {
	center := arcCenter(start, mid, end)
	radius := start.Sub(center).Magnitude()

	a1 := start.Sub(center).Angle().Normalize()
	a2 := mid.Sub(center).Angle().Normalize()
	a3 := end.Sub(center).Angle().Normalize()

	// Sweep counter-clockwise from a1. If the midpoint is not passed on
	// the way to a3 the arc actually runs clockwise, so describe it as
	// the equivalent counter-clockwise arc from a3 to a1.
	d2 := ccwDelta(a1, a2)
	d3 := ccwDelta(a1, a3)

	var startAngle, endAngle Angle
	if d2 <= d3 {
		startAngle = a1
		endAngle = Degrees(a1.Degrees() + d3)
	} else {
		startAngle = a3
		endAngle = Degrees(a3.Degrees() + ccwDelta(a3, a1))
	}

	return Arc{
		Center:     center,
		Radius:     radius,
		StartAngle: startAngle,
		EndAngle:   endAngle,
		Width:      width,
	}
}

// ccwDelta returns the counter-clockwise sweep in degrees from a to b,
// in [0, 360).
func ccwDelta(a, b Angle) float64 {
	d := math.Mod(b.Degrees()-a.Degrees(), 360.0)
	if d < 0 {
		d += 360.0
	}
	return d
}

// arcCenter recovers the circle center from three circumference points.
// Ported from KiCad's CalcArcCenter: the perpendicular-bisector slopes of
// the two chords locate the center, with three safeguards:
//
//  1. when one chord is horizontal and the other vertical the bisectors
//     are axis-aligned and the center is the straight midpoint of
//     start and end;
//  2. zero slope differences (colinear or degenerate chords) are
//     perturbed by machine epsilon instead of dividing by zero;
//  3. the result is snapped to the nearest 100 or 10 units when the
//     propagated numerical uncertainty covers the gap, mirroring KiCad's
//     deliberate snapping that avoids hairline artifacts on round
//     coordinates.
func arcCenter(start, mid, end Vec2) Vec2 {
	yDelta21 := mid.Y - start.Y
	xDelta21 := mid.X - start.X
	yDelta32 := end.Y - mid.Y
	xDelta32 := end.X - mid.X

	// Perpendicular configuration: one chord horizontal, one vertical.
	// The center lies on the straight line between start and end.
	if (xDelta21 == 0 && yDelta32 == 0) || (yDelta21 == 0 && xDelta32 == 0) {
		return Vec2{
			X: (start.X + end.X) / 2.0,
			Y: (start.Y + end.Y) / 2.0,
		}
	}

	eps := math.Nextafter(1, 2) - 1

	if xDelta21 == 0 {
		xDelta21 = eps
	}
	if xDelta32 == 0 {
		xDelta32 = -eps
	}

	aSlope := yDelta21 / xDelta21
	bSlope := yDelta32 / xDelta32

	// First-order slope uncertainties. KiCad assumes half an integer
	// unit of noise per coordinate; file coordinates are nanometers and
	// ours are mm, so the half-unit is half a nanometer in mm.
	const halfUnit = 0.5 * 1e-6
	daSlope := math.Abs(aSlope) * math.Hypot(halfUnit/yDelta21, halfUnit/xDelta21)
	dbSlope := math.Abs(bSlope) * math.Hypot(halfUnit/yDelta32, halfUnit/xDelta32)

	if aSlope == bSlope {
		if start.Equal(end) {
			// Full circle: center is halfway between the midpoint and
			// either end point.
			return Vec2{
				X: (start.X + mid.X) / 2.0,
				Y: (start.Y + mid.Y) / 2.0,
			}
		}
		// Colinear points put the center at infinity; offset the slopes
		// minimally and accept the tiny center error.
		aSlope += eps
		bSlope -= eps
	}
	if aSlope == 0 {
		aSlope = eps
	}

	cx := (aSlope*bSlope*(start.Y-end.Y) +
		bSlope*(start.X+mid.X) -
		aSlope*(mid.X+end.X)) / (2.0 * (bSlope - aSlope))
	cy := ((start.X+mid.X)/2.0-cx)/aSlope + (start.Y+mid.Y)/2.0

	// Propagate the slope uncertainties into the center coordinates.
	dfda := math.Abs((bSlope*(start.Y-end.Y)-(mid.X+end.X))/(2.0*(bSlope-aSlope))) +
		math.Abs(cx/(bSlope-aSlope))
	dfdb := math.Abs((aSlope*(start.Y-end.Y)+(start.X+mid.X))/(2.0*(bSlope-aSlope))) +
		math.Abs(cx/(bSlope-aSlope))
	dcx := dfda*daSlope + dfdb*dbSlope
	dcy := math.Abs(((start.X+mid.X)/2.0-cx)/(aSlope*aSlope))*daSlope + dcx/math.Abs(aSlope)

	// Snap to round file coordinates (multiples of 100 or 10 nanometers)
	// when the uncertainty covers the gap.
	const unit = 1e-6
	r100x := math.Floor((cx+50.0*unit)/(100.0*unit)) * (100.0 * unit)
	r100y := math.Floor((cy+50.0*unit)/(100.0*unit)) * (100.0 * unit)
	r10x := math.Floor((cx+5.0*unit)/(10.0*unit)) * (10.0 * unit)
	r10y := math.Floor((cy+5.0*unit)/(10.0*unit)) * (10.0 * unit)

	switch {
	case math.Abs(r100x-cx) < dcx && math.Abs(r100y-cy) < dcy:
		cx, cy = r100x, r100y
	case math.Abs(r10x-cx) < dcx && math.Abs(r10y-cy) < dcy:
		cx, cy = r10x, r10y
	}

	return Vec2{X: cx, Y: cy}
}

// ToPolyline samples the arc into a point list at a fixed angular step.
// Callers must normalize the arc first: a start angle past the end angle
// is a programming error and panics.
func (a Arc) ToPolyline() []Vec2 {
	start := a.StartAngle.Degrees()
	end := a.EndAngle.Degrees()
	if start > end {
		panic(fmt.Sprintf("geom: arc start angle %v exceeds end angle %v", start, end))
	}

	stepDeg := arcStep * 180.0 / math.Pi
	var pts []Vec2
	for deg := start; deg < end; deg += stepDeg {
		pts = append(pts, a.pointAt(Degrees(deg)))
	}
	pts = append(pts, a.pointAt(a.EndAngle))
	return pts
}

// BBox returns the bounding box of the arc's stroked outline.
func (a Arc) BBox() BBox {
	return BBoxFromPoints(a.ToPolyline()).Grow(a.Width / 2.0)
}

func (a Arc) pointAt(angle Angle) Vec2 {
	return Vec2{
		X: a.Center.X + a.Radius*angle.Cos(),
		Y: a.Center.Y + a.Radius*angle.Sin(),
	}
}
