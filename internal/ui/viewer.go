// Package ui hosts the interactive Gio window shell shared by the otv
// viewer commands. The shell owns the camera, the redraw scheduler and
// the document loader; the per-document painters and layer slots come
// in through a Scene.
package ui

import (
	"fmt"
	"image/color"
	"os"

	"gioui.org/app"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	gpaint "gioui.org/op/paint"
	"gioui.org/unit"

	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/geom"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/graphics"
	giogfx "github.com/OpenTraceLab/OpenTraceView/pkg/kicad/graphics/gio"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/logging"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/paint"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/view"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/viewport"
)

// Scene bundles one loaded document with the layer slots and painter
// dispatch built for it.
type Scene struct {
	Doc     paint.Document
	Layers  *view.LayerSet
	Painter *paint.DocumentPainter
	Bounds  geom.BBox
}

// Config describes a viewer window before it opens.
type Config struct {
	Title      string
	Background color.NRGBA
	Highlight  color.NRGBA
	// InvertY selects board-style coordinates (Y up). Schematics use
	// screen-like coordinates and leave it false.
	InvertY bool
	// Load builds a Scene. It runs on a background goroutine and is
	// called again when the user reloads.
	Load func() (*Scene, error)
	// Describe receives the item under a click, if any. Optional.
	Describe func(hit view.Hit) string
}

// Viewer is an interactive document window with pan, zoom-at-cursor,
// rotation, flip and click hit-testing.
type Viewer struct {
	cfg    Config
	window *app.Window

	camera   *viewport.Camera
	renderer *giogfx.Renderer
	loader   viewport.Loader[*Scene]
	sched    *viewport.Scheduler

	scene   *Scene
	overlay graphics.RenderLayer

	isDragging     bool
	dragStartPos   geom.Vec2
	lastPointerPos geom.Vec2
	dragged        bool
}

// New prepares a viewer. The window opens when Run is called.
func New(cfg Config) *Viewer {
	return &Viewer{
		cfg:      cfg,
		camera:   viewport.NewCamera(1200, 800),
		renderer: giogfx.NewRenderer(),
	}
}

// Run opens the window and blocks until it closes. It must run on the
// main goroutine together with app.Main.
func Run(cfg Config) error {
	v := New(cfg)
	errc := make(chan error, 1)
	go func() {
		w := new(app.Window)
		w.Option(app.Title(cfg.Title))
		w.Option(app.Size(unit.Dp(1200), unit.Dp(800)))
		errc <- v.loop(w)
	}()
	go func() {
		err := <-errc
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Exit(0)
	}()
	app.Main()
	return nil
}

func (v *Viewer) loop(w *app.Window) error {
	v.window = w
	v.camera.InvertY = v.cfg.InvertY
	v.sched = viewport.NewScheduler(w.Invalidate)
	v.reload()

	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			if v.scene != nil {
				v.scene.Layers.Dispose()
			}
			return e.Err

		case app.FrameEvent:
			ops.Reset()
			gtx := layout.Context{
				Ops:         &ops,
				Constraints: layout.Exact(e.Size),
				Metric:      e.Metric,
				Now:         e.Now,
				Source:      e.Source,
			}

			v.camera.Resize(e.Size.X, e.Size.Y)
			v.sched.Consume()
			v.adoptScene()
			v.handleInput(gtx)

			gpaint.Fill(&ops, v.cfg.Background)
			v.renderScene(&ops)

			e.Frame(&ops)
		}
	}
}

// reload kicks off a background parse. A stale completion is dropped
// by the loader's generation guard.
func (v *Viewer) reload() {
	gen := v.loader.Begin()
	go func() {
		scene, err := v.cfg.Load()
		if err != nil {
			logging.Logger().Error("load failed", "error", err)
			return
		}
		if v.loader.Complete(gen, scene) {
			v.sched.Request()
		}
	}()
}

// adoptScene swaps in the most recent completed load, paints the
// document into its layer slots and fits the camera.
func (v *Viewer) adoptScene() {
	cur, ok := v.loader.Current()
	if !ok || cur == v.scene {
		return
	}
	if v.scene != nil {
		v.scene.Layers.Dispose()
	}
	v.clearSelection()
	v.scene = cur
	v.scene.Painter.PaintDocument(v.renderer, v.scene.Doc, v.scene.Layers)
	if v.scene.Bounds.Valid() {
		v.camera.Fit(v.scene.Bounds)
	}
}

func (v *Viewer) renderScene(ops *op.Ops) {
	if v.scene == nil {
		return
	}
	v.renderer.BeginFrame(ops)
	defer v.renderer.EndFrame()

	m := v.camera.Matrix()
	for layer := range v.scene.Layers.InDisplayOrder() {
		vl := layer.(*view.ViewLayer)
		if !vl.IsVisible() {
			continue
		}
		if g := vl.Graphics(); g != nil {
			g.Render(m)
		}
	}
	if v.overlay != nil {
		v.overlay.Render(m)
	}
}

func (v *Viewer) handleInput(gtx layout.Context) {
	for {
		ev, ok := gtx.Event(key.Filter{Name: "F"})
		if !ok {
			break
		}
		if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
			if v.scene != nil && v.scene.Bounds.Valid() {
				v.camera.Fit(v.scene.Bounds)
				v.sched.Request()
			}
		}
	}

	for {
		ev, ok := gtx.Event(key.Filter{Name: "R"})
		if !ok {
			break
		}
		if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
			v.camera.Rotate(geom.Degrees(90))
			v.sched.Request()
		}
	}

	for {
		ev, ok := gtx.Event(key.Filter{Name: "M"})
		if !ok {
			break
		}
		if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
			v.camera.ToggleFlip()
			v.sched.Request()
		}
	}

	for {
		ev, ok := gtx.Event(key.Filter{Name: "L", Required: key.ModShortcut})
		if !ok {
			break
		}
		if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
			v.reload()
		}
	}

	for {
		ev, ok := gtx.Event(key.Filter{Name: "Q"})
		if !ok {
			break
		}
		if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
			os.Exit(0)
		}
	}

	for {
		ev, ok := gtx.Event(key.Filter{Name: key.NameEscape})
		if !ok {
			break
		}
		if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
			os.Exit(0)
		}
	}

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Kinds: pointer.Press | pointer.Drag | pointer.Release | pointer.Scroll,
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		pos := geom.Vec2{X: float64(pe.Position.X), Y: float64(pe.Position.Y)}

		switch pe.Kind {
		case pointer.Press:
			if pe.Buttons == pointer.ButtonPrimary {
				v.isDragging = true
				v.dragged = false
				v.dragStartPos = pos
				v.lastPointerPos = pos
			}

		case pointer.Drag:
			if v.isDragging && pe.Buttons == pointer.ButtonPrimary {
				dx := pos.X - v.lastPointerPos.X
				dy := pos.Y - v.lastPointerPos.Y
				v.camera.Pan(dx, dy)
				v.lastPointerPos = pos
				if pos.Sub(v.dragStartPos).Magnitude() > 3 {
					v.dragged = true
				}
				v.sched.Request()
			}

		case pointer.Release:
			if v.isDragging && !v.dragged {
				v.selectAt(pos)
			}
			v.isDragging = false

		case pointer.Scroll:
			factor := 1.0 + float64(pe.Scroll.Y)*0.1
			v.camera.ZoomAt(pos, factor)
			v.sched.Request()
		}
	}
}

// selectAt hit-tests the click position against the painted layers and
// marks the frontmost match.
func (v *Viewer) selectAt(screen geom.Vec2) {
	if v.scene == nil {
		return
	}
	world := v.camera.ScreenToWorld(screen)
	hit, ok := v.scene.Layers.QueryPoint(world)
	if !ok {
		v.clearSelection()
		v.sched.Request()
		return
	}
	if v.cfg.Describe != nil {
		if s := v.cfg.Describe(hit); s != "" {
			fmt.Println(s)
		}
	}
	v.setSelection(hit.BBox)
	v.sched.Request()
}

func (v *Viewer) setSelection(bb geom.BBox) {
	v.clearSelection()
	pad := (bb.W + bb.H) * 0.05
	if pad == 0 {
		pad = 0.5
	}
	bb = bb.Grow(pad)
	v.renderer.StartLayer("selection")
	v.renderer.Line(graphics.Polyline{
		Points: []geom.Vec2{
			{X: bb.X, Y: bb.Y},
			{X: bb.X2(), Y: bb.Y},
			{X: bb.X2(), Y: bb.Y2()},
			{X: bb.X, Y: bb.Y2()},
			{X: bb.X, Y: bb.Y},
		},
		Width: pad * 0.4,
		Color: v.cfg.Highlight,
	})
	v.overlay = v.renderer.EndLayer()
}

func (v *Viewer) clearSelection() {
	if v.overlay != nil {
		v.overlay.Dispose()
		v.overlay = nil
	}
}
