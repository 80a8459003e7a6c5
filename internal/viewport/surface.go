package viewport

// SurfaceMetrics describes the drawing surface: the logical layout size, the
// device pixel ratio, and the derived backing-store resolution.
type SurfaceMetrics struct {
	PixelWidth       int
	PixelHeight      int
	LogicalWidth     float64
	LogicalHeight    float64
	DevicePixelRatio float64
}

// fitRequest remembers the last world-space bounds the caller asked to keep
// visible, so a later resize can re-frame the same content instead of
// preserving a now-stale scale/offset.
type fitRequest struct {
	left, top, right, bottom float64
	padding                  float64
}

// DefaultFitPadding is the padding applied by FitBounds when callers use the
// convenience wrapper without an explicit padding.
const DefaultFitPadding = 40

// Surface owns the transform and the surface metrics for one viewport
// instance.
type Surface struct {
	Transform *Transform
	metrics   SurfaceMetrics
	fit       *fitRequest

	// RedrawNeeded, when set, is invoked after any operation that changes
	// what should appear on screen. Multiple mutations between frames may
	// legitimately collapse into a single redraw.
	RedrawNeeded func()
}

// NewSurface returns a surface with an identity transform and no metrics.
func NewSurface() *Surface {
	return &Surface{Transform: NewTransform()}
}

// Metrics returns the current surface metrics.
func (s *Surface) Metrics() SurfaceMetrics {
	return s.metrics
}

// Resize records a new logical size and device pixel ratio, recomputing the
// backing-store resolution. Drawing remains specified in logical units; the
// host applies the pixel-ratio scale when allocating the backing buffer.
// Resize is idempotent: with unchanged inputs it changes nothing and does not
// request a redraw. If a fit request is remembered, the same bounds are
// re-fit so framing survives layout changes; otherwise the transform is left
// as-is.
func (s *Surface) Resize(logicalWidth, logicalHeight, devicePixelRatio float64) {
	m := SurfaceMetrics{
		LogicalWidth:     logicalWidth,
		LogicalHeight:    logicalHeight,
		DevicePixelRatio: devicePixelRatio,
		PixelWidth:       int(logicalWidth*devicePixelRatio + 0.5),
		PixelHeight:      int(logicalHeight*devicePixelRatio + 0.5),
	}
	if m == s.metrics {
		return
	}
	s.metrics = m

	if s.fit != nil {
		f := *s.fit
		s.FitBounds(f.left, f.top, f.right, f.bottom, f.padding)
		return
	}
	s.requestRedraw()
}

// FitBounds computes the transform that shows the given world-space
// rectangle centered in the viewport with the given padding (logical units).
// The scale is uniform, min(availW/worldW, availH/worldH), so aspect ratio
// is never distorted. Degenerate input — empty bounds or a container that
// has not been laid out yet — leaves the transform unchanged. The bounds are
// remembered and re-applied on resize.
func (s *Surface) FitBounds(left, top, right, bottom, padding float64) {
	s.fit = &fitRequest{left: left, top: top, right: right, bottom: bottom, padding: padding}

	worldW := right - left
	worldH := bottom - top
	availW := s.metrics.LogicalWidth - 2*padding
	availH := s.metrics.LogicalHeight - 2*padding
	if worldW <= 0 || worldH <= 0 || availW <= 0 || availH <= 0 {
		return
	}

	scale := availW / worldW
	if h := availH / worldH; h < scale {
		scale = h
	}

	t := s.Transform
	t.Scale = scale
	t.OffsetX = s.metrics.LogicalWidth/2 - (left+worldW/2)*scale
	t.OffsetY = s.metrics.LogicalHeight/2 - (top+worldH/2)*scale
	s.requestRedraw()
}

func (s *Surface) requestRedraw() {
	if s.RedrawNeeded != nil {
		s.RedrawNeeded()
	}
}
