// Package viewport provides the world/screen coordinate transform, surface
// management, gesture handling, and drawing primitives for an interactive
// pan/zoom canvas.
package viewport

// Transform maps world coordinates onto the drawing surface using a uniform
// scale and a screen-space offset:
//
//	screen = world*Scale + Offset
//
// The inverse conversion is derived from the same two values, so the pair of
// conversions is exact by construction. Scale is always positive: it starts
// at 1 and only ever changes multiplicatively (ZoomAt) or by being recomputed
// from positive extents (FitBounds).
type Transform struct {
	OffsetX float64
	OffsetY float64
	Scale   float64
}

// NewTransform returns the identity transform (scale 1, no offset).
func NewTransform() *Transform {
	return &Transform{Scale: 1}
}

// WorldToScreen converts a world-space point to screen coordinates.
func (t *Transform) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return wx*t.Scale + t.OffsetX, wy*t.Scale + t.OffsetY
}

// ScreenToWorld converts a screen-space point to world coordinates.
func (t *Transform) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	return (sx - t.OffsetX) / t.Scale, (sy - t.OffsetY) / t.Scale
}

// ZoomAt multiplies the scale by factor while keeping the world point under
// the given screen position fixed on screen. Solving
// screenToWorld(sx, sy) == screenToWorld'(sx, sy) for the new offset gives
//
//	offset' = s - (s - offset) * (scale'/scale)
//
// which holds exactly for any sequence of zoom calls.
func (t *Transform) ZoomAt(sx, sy, factor float64) {
	t.OffsetX = sx - (sx-t.OffsetX)*factor
	t.OffsetY = sy - (sy-t.OffsetY)*factor
	t.Scale *= factor
}

// PanBy shifts the view by a screen-space delta. Offsets are unbounded.
func (t *Transform) PanBy(dx, dy float64) {
	t.OffsetX += dx
	t.OffsetY += dy
}
