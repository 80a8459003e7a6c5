// Package canvas provides the interactive scene canvas with pan, zoom, and
// vertex dragging.
package canvas

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"clipview/internal/app"
	"clipview/internal/clip"
	"clipview/internal/viewport"
	"clipview/pkg/colorutil"
	"clipview/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

const (
	zoomStep = 1.25
	// grabRadius is the pick distance for vertices, in logical screen units.
	grabRadius = 8
)

var background = color.RGBA{R: 24, G: 26, B: 31, A: 255}

// ClipCanvas displays the scene and routes all pointer, touch, and wheel
// input through the gesture router. Drags move subject vertices or the clip
// window; pans and zooms adjust the view transform.
type ClipCanvas struct {
	widget.BaseWidget

	state   *app.State
	surface *viewport.Surface
	router  *viewport.Router
	raster  *fynecanvas.Raster

	showGrid bool

	// inDraw suppresses redraw requests issued while the raster callback is
	// already producing a frame (the surface resize inside draw would
	// otherwise re-enter Refresh).
	inDraw bool

	// Live touch contacts. The event API reports positions without contact
	// identifiers, so IDs are synthesized on touch-down and lifts are matched
	// to the nearest live contact.
	contacts    []viewport.Contact
	nextTouchID int

	onCoordinate func(wx, wy float64)
	onViewChange func()
}

var (
	_ fyne.Widget       = (*ClipCanvas)(nil)
	_ fyne.Draggable    = (*ClipCanvas)(nil)
	_ fyne.Scrollable   = (*ClipCanvas)(nil)
	_ desktop.Mouseable = (*ClipCanvas)(nil)
	_ desktop.Hoverable = (*ClipCanvas)(nil)
	_ mobile.Touchable  = (*ClipCanvas)(nil)
)

// NewClipCanvas creates the canvas for the given application state.
func NewClipCanvas(st *app.State) *ClipCanvas {
	c := &ClipCanvas{
		state:    st,
		surface:  viewport.NewSurface(),
		showGrid: true,
	}
	c.router = viewport.NewRouter(c.surface.Transform, viewport.Callbacks{
		BeginDrag: c.beginDrag,
		MoveDrag: func(wx, wy float64) {
			st.MoveDrag(geometry.Point2D{X: wx, Y: wy})
		},
		EndDrag: st.EndDrag,
		HoverMove: func(wx, wy float64) {
			if c.onCoordinate != nil {
				c.onCoordinate(wx, wy)
			}
		},
		RedrawNeeded: c.requestRedraw,
	})
	c.surface.RedrawNeeded = c.requestRedraw

	c.raster = fynecanvas.NewRaster(c.draw)
	c.raster.ScaleMode = fynecanvas.ImageScalePixels
	c.ExtendBaseWidget(c)
	return c
}

// OnCoordinate registers the hover callback fed with world coordinates, for
// the status bar readout.
func (c *ClipCanvas) OnCoordinate(fn func(wx, wy float64)) {
	c.onCoordinate = fn
}

// OnViewChange registers a callback fired whenever the view transform
// changes, for the zoom readout.
func (c *ClipCanvas) OnViewChange(fn func()) {
	c.onViewChange = fn
}

// Zoom returns the current view scale.
func (c *ClipCanvas) Zoom() float64 {
	return c.surface.Transform.Scale
}

// SetShowGrid toggles the background grid.
func (c *ClipCanvas) SetShowGrid(show bool) {
	c.showGrid = show
	c.Refresh()
}

// ShowGrid reports whether the grid is drawn.
func (c *ClipCanvas) ShowGrid() bool {
	return c.showGrid
}

// ZoomIn zooms toward the viewport center.
func (c *ClipCanvas) ZoomIn() {
	cx, cy := c.viewCenter()
	c.router.ZoomAt(cx, cy, zoomStep)
}

// ZoomOut zooms away from the viewport center.
func (c *ClipCanvas) ZoomOut() {
	cx, cy := c.viewCenter()
	c.router.ZoomAt(cx, cy, 1/zoomStep)
}

// ActualSize resets the scale to 1:1, keeping the viewport center fixed.
func (c *ClipCanvas) ActualSize() {
	if s := c.surface.Transform.Scale; s > 0 {
		cx, cy := c.viewCenter()
		c.router.ZoomAt(cx, cy, 1/s)
	}
}

// FitToContent frames all subjects and the clip window.
func (c *ClipCanvas) FitToContent() {
	b := c.state.ContentBounds()
	c.surface.FitBounds(b.X, b.Y, b.X+b.Width, b.Y+b.Height, viewport.DefaultFitPadding)
	c.viewChanged()
}

func (c *ClipCanvas) viewCenter() (float64, float64) {
	m := c.surface.Metrics()
	return m.LogicalWidth / 2, m.LogicalHeight / 2
}

func (c *ClipCanvas) beginDrag(wx, wy float64) {
	tolerance := float64(grabRadius)
	if s := c.surface.Transform.Scale; s > 0 {
		tolerance = grabRadius / s
	}
	c.state.BeginDrag(geometry.Point2D{X: wx, Y: wy}, tolerance)
}

func (c *ClipCanvas) requestRedraw() {
	if c.inDraw {
		return
	}
	c.raster.Refresh()
	c.viewChanged()
}

func (c *ClipCanvas) viewChanged() {
	if c.onViewChange != nil {
		c.onViewChange()
	}
}

// MouseDown implements desktop.Mouseable. Ctrl turns a primary-button press
// into a pan.
func (c *ClipCanvas) MouseDown(ev *desktop.MouseEvent) {
	btn := viewport.ButtonPrimary
	switch ev.Button {
	case desktop.MouseButtonSecondary:
		btn = viewport.ButtonSecondary
	case desktop.MouseButtonTertiary:
		btn = viewport.ButtonMiddle
	}
	panModifier := ev.Modifier&fyne.KeyModifierControl != 0
	c.router.PointerDown(float64(ev.Position.X), float64(ev.Position.Y), btn, panModifier)
}

// MouseUp implements desktop.Mouseable.
func (c *ClipCanvas) MouseUp(*desktop.MouseEvent) {
	c.router.PointerUp()
}

// MouseIn implements desktop.Hoverable.
func (c *ClipCanvas) MouseIn(*desktop.MouseEvent) {}

// MouseMoved implements desktop.Hoverable.
func (c *ClipCanvas) MouseMoved(ev *desktop.MouseEvent) {
	c.router.PointerMove(float64(ev.Position.X), float64(ev.Position.Y))
}

// MouseOut implements desktop.Hoverable. Leaving the canvas ends any
// gesture in progress.
func (c *ClipCanvas) MouseOut() {
	c.router.PointerLeave()
}

// Dragged implements fyne.Draggable. On desktop it carries button-held mouse
// movement; with live touch contacts it carries finger movement instead.
func (c *ClipCanvas) Dragged(ev *fyne.DragEvent) {
	x := float64(ev.Position.X)
	y := float64(ev.Position.Y)
	if len(c.contacts) > 0 {
		// Attribute the move to the contact nearest the pre-move position.
		i := c.nearestContact(x-float64(ev.Dragged.DX), y-float64(ev.Dragged.DY))
		if i >= 0 {
			c.contacts[i].X, c.contacts[i].Y = x, y
			c.router.Touch(c.contacts)
		}
		return
	}
	c.router.PointerMove(x, y)
}

// DragEnd implements fyne.Draggable. Gesture resolution happens on the
// button or touch release events.
func (c *ClipCanvas) DragEnd() {}

// Scrolled implements fyne.Scrollable; the wheel zooms at the cursor.
func (c *ClipCanvas) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY == 0 {
		return
	}
	factor := zoomStep
	if ev.Scrolled.DY < 0 {
		factor = 1 / zoomStep
	}
	c.router.ZoomAt(float64(ev.Position.X), float64(ev.Position.Y), factor)
}

// TouchDown implements mobile.Touchable.
func (c *ClipCanvas) TouchDown(ev *mobile.TouchEvent) {
	c.nextTouchID++
	c.contacts = append(c.contacts, viewport.Contact{
		ID: c.nextTouchID,
		X:  float64(ev.Position.X),
		Y:  float64(ev.Position.Y),
	})
	c.router.Touch(c.contacts)
}

// TouchUp implements mobile.Touchable.
func (c *ClipCanvas) TouchUp(ev *mobile.TouchEvent) {
	if i := c.nearestContact(float64(ev.Position.X), float64(ev.Position.Y)); i >= 0 {
		c.contacts = append(c.contacts[:i], c.contacts[i+1:]...)
	}
	c.router.Touch(c.contacts)
}

// TouchCancel implements mobile.Touchable.
func (c *ClipCanvas) TouchCancel(*mobile.TouchEvent) {
	c.contacts = nil
	c.router.TouchCancel()
}

func (c *ClipCanvas) nearestContact(x, y float64) int {
	best := -1
	bestDist := math.Inf(1)
	for i, ct := range c.contacts {
		if d := math.Hypot(ct.X-x, ct.Y-y); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func (c *ClipCanvas) deviceScale() float64 {
	if a := fyne.CurrentApp(); a != nil {
		if cv := a.Driver().CanvasForObject(c); cv != nil {
			if s := cv.Scale(); s > 0 {
				return float64(s)
			}
		}
	}
	return 1
}

// draw renders one frame at the raster's pixel size.
func (c *ClipCanvas) draw(w, h int) image.Image {
	dpr := c.deviceScale()
	c.inDraw = true
	c.surface.Resize(float64(w)/dpr, float64(h)/dpr, dpr)
	c.inDraw = false

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = background.R
		img.Pix[i+1] = background.G
		img.Pix[i+2] = background.B
		img.Pix[i+3] = background.A
	}

	// The transform holds logical units; rendering happens in backing pixels.
	lt := c.surface.Transform
	t := &viewport.Transform{
		OffsetX: lt.OffsetX * dpr,
		OffsetY: lt.OffsetY * dpr,
		Scale:   lt.Scale * dpr,
	}

	if c.showGrid {
		viewport.DrawGrid(img, t, colorutil.Grid, colorutil.Axis)
	}

	scene := c.state.Scene()
	for _, subject := range scene.Subjects {
		viewport.DrawPath(img, t, subject, viewport.Style{
			Fill:         colorutil.Dim(colorutil.Subject, 40),
			Stroke:       colorutil.Subject,
			LineWidth:    2,
			Closed:       true,
			ShowVertices: true,
			VertexRadius: 4,
			VertexColor:  colorutil.Vertex,
		})
	}

	viewport.DrawRect(img, t, scene.Window, viewport.Style{
		Stroke:    colorutil.Window,
		LineWidth: 2,
		LineDash:  []float64{6, 4},
	})

	for _, path := range c.state.Result() {
		viewport.DrawPath(img, t, path, viewport.Style{
			Fill:      colorutil.Dim(colorutil.Result, 90),
			Stroke:    colorutil.Result,
			LineWidth: 2,
			Closed:    true,
		})
		label := fmt.Sprintf("%.0f", math.Abs(clip.Area(path)))
		viewport.DrawText(img, t, geometry.Centroid(path), label, colorutil.White)
	}

	return img
}

// Refresh redraws the canvas.
func (c *ClipCanvas) Refresh() {
	c.raster.Refresh()
	c.BaseWidget.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (c *ClipCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &clipCanvasRenderer{canvas: c}
}

type clipCanvasRenderer struct {
	canvas *ClipCanvas
}

func (r *clipCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.raster.Resize(size)
}

func (r *clipCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(200, 200)
}

func (r *clipCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *clipCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.raster}
}

func (r *clipCanvasRenderer) Destroy() {}
