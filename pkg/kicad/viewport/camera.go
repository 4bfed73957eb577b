// Package viewport owns the view-side state of a document window: the
// camera transform, the coalescing redraw scheduler, and the
// generation-guarded document loader.
package viewport

import (
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/geom"
)

// Zoom limits in pixels per millimeter.
const (
	MinZoom = 0.1
	MaxZoom = 1000.0
)

// Camera maps document coordinates (mm) to screen pixels. PCB files
// have Y increasing upward so board cameras set InvertY.
type Camera struct {
	Center geom.Vec2
	Zoom   float64

	Width  int
	Height int

	Flip           bool
	Rotation       geom.Angle
	RotationCenter geom.Vec2
	InvertY        bool
}

// NewCamera creates a camera at a default 10 px/mm zoom.
func NewCamera(width, height int) *Camera {
	return &Camera{
		Zoom:   10.0,
		Width:  width,
		Height: height,
	}
}

// Matrix returns the full document-to-screen transform. Committed
// render layers redraw under this matrix; geometry is never
// re-tesselated on camera changes.
func (c *Camera) Matrix() geom.Matrix3 {
	m := geom.Identity()
	if c.InvertY {
		m = geom.Translation(0, float64(c.Height)).Mul(geom.Scaling(1, -1))
	}
	m = m.Mul(geom.Translation(float64(c.Width)/2, float64(c.Height)/2)).
		Mul(geom.Scaling(c.Zoom, c.Zoom)).
		Mul(geom.Translation(-c.Center.X, -c.Center.Y)).
		Mul(c.viewTransform())
	return m
}

// viewTransform is the rotate/flip component about the rotation center.
func (c *Camera) viewTransform() geom.Matrix3 {
	m := geom.Translation(c.RotationCenter.X, c.RotationCenter.Y)
	if c.Flip {
		m = m.Mul(geom.Scaling(-1, 1))
	}
	m = m.Mul(geom.Rotation(c.Rotation))
	return m.Mul(geom.Translation(-c.RotationCenter.X, -c.RotationCenter.Y))
}

// WorldToScreen converts document coordinates to pixels.
func (c *Camera) WorldToScreen(p geom.Vec2) geom.Vec2 {
	return c.Matrix().Transform(p)
}

// ScreenToWorld converts pixels to document coordinates.
func (c *Camera) ScreenToWorld(p geom.Vec2) geom.Vec2 {
	inv, err := c.Matrix().Inverse()
	if err != nil {
		return geom.Vec2{}
	}
	return inv.Transform(p)
}

// Pan moves the view by a screen-pixel delta.
func (c *Camera) Pan(dx, dy float64) {
	c.Center.X -= dx / c.Zoom
	if c.InvertY {
		c.Center.Y += dy / c.Zoom
	} else {
		c.Center.Y -= dy / c.Zoom
	}
}

// ZoomAt scales the view about a screen point, keeping the document
// point under the cursor stationary. factor > 1 zooms in.
func (c *Camera) ZoomAt(screen geom.Vec2, factor float64) {
	before := c.ScreenToWorld(screen)

	c.Zoom *= factor
	if c.Zoom < MinZoom {
		c.Zoom = MinZoom
	}
	if c.Zoom > MaxZoom {
		c.Zoom = MaxZoom
	}

	after := c.ScreenToWorld(screen)
	c.Center = c.Center.Add(before.Sub(after))
}

// Fit centers the view on the bbox and picks the zoom that shows it
// with a 10% margin. Invalid boxes are ignored.
func (c *Camera) Fit(bb geom.BBox) {
	if !bb.Valid() || bb.W <= 0 || bb.H <= 0 {
		return
	}
	c.Center = bb.Center()
	c.RotationCenter = c.Center

	zoomX := float64(c.Width) * 0.9 / bb.W
	zoomY := float64(c.Height) * 0.9 / bb.H
	if zoomX < zoomY {
		c.Zoom = zoomX
	} else {
		c.Zoom = zoomY
	}
}

// Resize updates the screen dimensions.
func (c *Camera) Resize(width, height int) {
	c.Width = width
	c.Height = height
}

// ToggleFlip mirrors the view about the rotation center.
func (c *Camera) ToggleFlip() {
	c.Flip = !c.Flip
}

// Rotate adds to the view rotation.
func (c *Camera) Rotate(a geom.Angle) {
	c.Rotation = c.Rotation.Add(a).Normalize()
}

// VisibleBounds returns the document-space box covering the screen,
// conservative under rotation.
func (c *Camera) VisibleBounds() geom.BBox {
	w, h := float64(c.Width), float64(c.Height)
	corners := []geom.Vec2{
		c.ScreenToWorld(geom.Vec2{}),
		c.ScreenToWorld(geom.Vec2{X: w}),
		c.ScreenToWorld(geom.Vec2{Y: h}),
		c.ScreenToWorld(geom.Vec2{X: w, Y: h}),
	}
	return geom.BBoxFromPoints(corners)
}
