package viewport

import (
	"math"
	"sort"
)

// GestureState identifies the active gesture mode. Exactly one mode is
// active at a time.
type GestureState int

const (
	// Idle means no gesture is in progress.
	Idle GestureState = iota
	// Dragging is a single-pointer consumer-owned drag (e.g. moving a vertex).
	Dragging
	// Panning is a mouse pan (secondary/middle button, or primary + modifier).
	Panning
	// TouchDragging is a single-finger consumer-owned drag.
	TouchDragging
	// TouchPanning is a two-finger combined pan and pinch-zoom.
	TouchPanning
)

func (s GestureState) String() string {
	switch s {
	case Dragging:
		return "Dragging"
	case Panning:
		return "Panning"
	case TouchDragging:
		return "TouchDragging"
	case TouchPanning:
		return "TouchPanning"
	default:
		return "Idle"
	}
}

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

// Contact is one active touch point. IDs are stable for the lifetime of the
// contact; coordinates are in logical screen units.
type Contact struct {
	ID int
	X  float64
	Y  float64
}

// Callbacks are the optional consumer-supplied handlers. All coordinates
// passed to drag and hover callbacks are world-space.
type Callbacks struct {
	BeginDrag    func(wx, wy float64)
	MoveDrag     func(wx, wy float64)
	EndDrag      func()
	HoverMove    func(wx, wy float64)
	RedrawNeeded func()
}

// Router turns normalized pointer and touch input into transform updates and
// world-space drag callbacks. Mouse buttons and touch contact sets feed the
// same state machine; transitions are deterministic functions of the current
// state and the incoming event.
type Router struct {
	transform *Transform
	cb        Callbacks

	state GestureState

	// Pan anchor: pointer position and transform offset at pan start.
	panStartX, panStartY   float64
	panOffsetX, panOffsetY float64

	// Pinch baseline: previous frame's midpoint and inter-finger distance.
	// Updated every frame so long gestures do not accumulate error against
	// a stale gesture-start anchor.
	lastMidX, lastMidY float64
	lastDist           float64

	// dragActive tracks whether BeginDrag has fired without a matching
	// EndDrag yet. EndDrag fires exactly once per active drag.
	dragActive bool
}

// NewRouter creates a gesture router driving the given transform.
func NewRouter(t *Transform, cb Callbacks) *Router {
	return &Router{transform: t, cb: cb}
}

// State returns the current gesture mode.
func (r *Router) State() GestureState {
	return r.state
}

// DragCapable reports whether any drag callback is registered. It governs
// the capture policy for single-finger touch: without a drag consumer,
// single-finger input is left to the platform (native scrolling); with one,
// it is fully captured. Two-finger touch is always captured.
func (r *Router) DragCapable() bool {
	return r.cb.BeginDrag != nil || r.cb.MoveDrag != nil || r.cb.EndDrag != nil
}

// PointerDown handles a mouse button press. panModifier marks the
// platform's pan modifier (e.g. Ctrl) held with the primary button.
func (r *Router) PointerDown(sx, sy float64, btn Button, panModifier bool) {
	// A press arriving mid-gesture means an up event was lost; resolve the
	// old gesture before starting a new one.
	r.resolve()

	if btn == ButtonSecondary || btn == ButtonMiddle || panModifier {
		r.state = Panning
		r.panStartX, r.panStartY = sx, sy
		r.panOffsetX, r.panOffsetY = r.transform.OffsetX, r.transform.OffsetY
		return
	}

	r.state = Dragging
	r.beginDrag(sx, sy)
}

// PointerMove handles mouse movement. Outside a gesture it feeds the hover
// callback with world coordinates.
func (r *Router) PointerMove(sx, sy float64) {
	switch r.state {
	case Panning:
		r.transform.OffsetX = r.panOffsetX + (sx - r.panStartX)
		r.transform.OffsetY = r.panOffsetY + (sy - r.panStartY)
		r.requestRedraw()
	case Dragging:
		r.moveDrag(sx, sy)
	case Idle:
		if r.cb.HoverMove != nil {
			wx, wy := r.transform.ScreenToWorld(sx, sy)
			r.cb.HoverMove(wx, wy)
		}
	}
}

// PointerUp handles a mouse button release.
func (r *Router) PointerUp() {
	r.resolve()
}

// PointerLeave handles the pointer leaving the surface; an in-progress
// gesture ends as if released.
func (r *Router) PointerLeave() {
	r.resolve()
}

// ZoomAt applies a zoom step toward the given screen position (mouse wheel).
func (r *Router) ZoomAt(sx, sy, factor float64) {
	r.transform.ZoomAt(sx, sy, factor)
	r.requestRedraw()
}

// Touch handles any change to the live contact set: starts, moves, and
// lifts all arrive as the current set of contacts. Transitions are driven
// by the contact count, so a contact disappearing without a matching lift
// event still resolves to a valid state.
func (r *Router) Touch(contacts []Contact) {
	cs := append([]Contact(nil), contacts...)
	sort.Slice(cs, func(i, j int) bool { return cs[i].ID < cs[j].ID })

	switch r.state {
	case Idle:
		r.touchFromIdle(cs)
	case TouchDragging:
		switch {
		case len(cs) >= 2:
			// End the drag before escalating so no drag callback fires
			// after control moves to pan/zoom, then re-baseline from the
			// current contacts so the view does not jump.
			r.endDrag()
			r.enterTouchPanning(cs)
		case len(cs) == 1:
			r.moveDrag(cs[0].X, cs[0].Y)
		default:
			r.endDrag()
			r.state = Idle
		}
	case TouchPanning:
		if len(cs) >= 2 {
			r.pinchUpdate(cs)
		} else {
			// Partial or full lift ends the gesture; the next touch-start
			// begins fresh from Idle.
			r.state = Idle
		}
	case Dragging, Panning:
		// Touch arriving during a mouse gesture means the modalities raced;
		// finish the mouse gesture first.
		r.resolve()
		r.touchFromIdle(cs)
	}
}

// TouchCancel handles a platform touch cancellation. Any active drag is
// resolved with its EndDrag callback; the router never stays stuck in a
// gesture mode.
func (r *Router) TouchCancel() {
	r.resolve()
}

func (r *Router) touchFromIdle(cs []Contact) {
	switch {
	case len(cs) >= 2:
		r.enterTouchPanning(cs)
	case len(cs) == 1 && r.DragCapable():
		r.state = TouchDragging
		r.beginDrag(cs[0].X, cs[0].Y)
	}
	// A single contact without a drag consumer stays uncaptured.
}

func (r *Router) enterTouchPanning(cs []Contact) {
	r.state = TouchPanning
	r.lastMidX, r.lastMidY, r.lastDist = pinchBaseline(cs)
}

// pinchUpdate applies one frame of two-finger pan and pinch-zoom using the
// previous frame's midpoint and distance as the baseline, then advances the
// baseline. Incremental updates avoid the compounding error of anchoring a
// long gesture to its starting geometry.
func (r *Router) pinchUpdate(cs []Contact) {
	midX, midY, dist := pinchBaseline(cs)

	r.transform.PanBy(midX-r.lastMidX, midY-r.lastMidY)
	if r.lastDist > 0 && dist > 0 {
		r.transform.ZoomAt(midX, midY, dist/r.lastDist)
	}

	r.lastMidX, r.lastMidY, r.lastDist = midX, midY, dist
	r.requestRedraw()
}

func pinchBaseline(cs []Contact) (midX, midY, dist float64) {
	a, b := cs[0], cs[1]
	midX = (a.X + b.X) / 2
	midY = (a.Y + b.Y) / 2
	dx, dy := b.X-a.X, b.Y-a.Y
	return midX, midY, math.Hypot(dx, dy)
}

// resolve returns the router to Idle, firing EndDrag if a drag is active.
func (r *Router) resolve() {
	if r.state == Idle {
		return
	}
	r.endDrag()
	r.state = Idle
}

func (r *Router) beginDrag(sx, sy float64) {
	r.dragActive = true
	if r.cb.BeginDrag != nil {
		wx, wy := r.transform.ScreenToWorld(sx, sy)
		r.cb.BeginDrag(wx, wy)
	}
	r.requestRedraw()
}

func (r *Router) moveDrag(sx, sy float64) {
	if r.cb.MoveDrag != nil {
		wx, wy := r.transform.ScreenToWorld(sx, sy)
		r.cb.MoveDrag(wx, wy)
	}
	r.requestRedraw()
}

func (r *Router) endDrag() {
	if !r.dragActive {
		return
	}
	r.dragActive = false
	if r.cb.EndDrag != nil {
		r.cb.EndDrag()
	}
	r.requestRedraw()
}

func (r *Router) requestRedraw() {
	if r.cb.RedrawNeeded != nil {
		r.cb.RedrawNeeded()
	}
}
