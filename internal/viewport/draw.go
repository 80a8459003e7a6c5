package viewport

import (
	"image"
	"image/color"
	"math"

	"clipview/pkg/geometry"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Style configures the drawing primitives. Zero values mean "not set": a nil
// Fill skips filling, a nil Stroke skips the outline, Alpha 0 is treated as
// fully opaque, LineWidth 0 as one pixel.
type Style struct {
	Fill         color.Color
	Stroke       color.Color
	LineWidth    float64
	LineDash     []float64
	Alpha        float64
	ShowVertices bool
	VertexRadius float64
	VertexColor  color.Color
	Closed       bool
}

func (s Style) alpha() float64 {
	if s.Alpha <= 0 || s.Alpha > 1 {
		return 1
	}
	return s.Alpha
}

func (s Style) lineWidth() int {
	if s.LineWidth < 1 {
		return 1
	}
	return int(s.LineWidth + 0.5)
}

// Grid spacing is chosen so that lines land between these on-screen bounds
// regardless of zoom level.
const (
	gridMinPixels = 30
	gridMaxPixels = 300
)

// GridStep returns the world-space grid spacing for the given scale: the
// smallest step on the 1/2/5 ladder whose on-screen spacing is at least
// gridMinPixels. Successive ladder steps grow by at most 2.5x, so the
// resulting spacing also stays under gridMaxPixels.
func GridStep(scale float64) float64 {
	if scale <= 0 || math.IsInf(scale, 0) || math.IsNaN(scale) {
		return 1
	}
	exp := math.Floor(math.Log10(gridMinPixels / scale))
	step := math.Pow(10, exp)
	for _, m := range []float64{1, 2, 5, 10, 20, 50} {
		if step*m*scale >= gridMinPixels {
			return step * m
		}
	}
	return step * 100
}

// DrawGrid draws grid lines over the whole surface at the spacing chosen by
// GridStep, with the world axes in the axis color.
func DrawGrid(dst *image.RGBA, t *Transform, stroke, axis color.Color) {
	b := dst.Bounds()
	step := GridStep(t.Scale)

	left, top := t.ScreenToWorld(float64(b.Min.X), float64(b.Min.Y))
	right, bottom := t.ScreenToWorld(float64(b.Max.X), float64(b.Max.Y))

	for wx := math.Floor(left/step) * step; wx <= right; wx += step {
		sx, _ := t.WorldToScreen(wx, 0)
		col, width := stroke, 1
		if wx == 0 {
			col, width = axis, 2
		}
		drawSegment(dst, int(sx), b.Min.Y, int(sx), b.Max.Y, col, width, nil, 1)
	}
	for wy := math.Floor(top/step) * step; wy <= bottom; wy += step {
		_, sy := t.WorldToScreen(0, wy)
		col, width := stroke, 1
		if wy == 0 {
			col, width = axis, 2
		}
		drawSegment(dst, b.Min.X, int(sy), b.Max.X, int(sy), col, width, nil, 1)
	}
}

// DrawPath draws a world-space polyline. With style.Closed the last point
// connects back to the first and a set Fill is painted; open paths share the
// same stroking logic without the closing segment.
func DrawPath(dst *image.RGBA, t *Transform, pts []geometry.Point2D, style Style) {
	if len(pts) < 2 {
		return
	}

	screen := make([]geometry.Point2D, len(pts))
	for i, p := range pts {
		sx, sy := t.WorldToScreen(p.X, p.Y)
		screen[i] = geometry.Point2D{X: sx, Y: sy}
	}

	alpha := style.alpha()
	if style.Closed && style.Fill != nil {
		fillPolygon(dst, screen, style.Fill, alpha)
	}

	if style.Stroke != nil {
		width := style.lineWidth()
		n := len(screen)
		last := n - 1
		if style.Closed {
			last = n
		}
		for i := 0; i < last; i++ {
			a := screen[i]
			b := screen[(i+1)%n]
			drawSegment(dst, int(a.X), int(a.Y), int(b.X), int(b.Y), style.Stroke, width, style.LineDash, alpha)
		}
	}

	if style.ShowVertices {
		col := style.VertexColor
		if col == nil {
			col = style.Stroke
		}
		radius := style.VertexRadius
		if radius <= 0 {
			radius = 4
		}
		for _, p := range screen {
			fillCircle(dst, p.X, p.Y, radius, col, alpha)
		}
	}
}

// DrawRect draws a world-space rectangle as a closed path.
func DrawRect(dst *image.RGBA, t *Transform, r geometry.Rect, style Style) {
	style.Closed = true
	DrawPath(dst, t, []geometry.Point2D{
		{X: r.X, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y + r.Height},
		{X: r.X, Y: r.Y + r.Height},
	}, style)
}

// DrawPoint draws a filled marker at a world-space point. The radius is in
// screen pixels so markers keep their size across zoom levels.
func DrawPoint(dst *image.RGBA, t *Transform, p geometry.Point2D, radius float64, col color.Color) {
	sx, sy := t.WorldToScreen(p.X, p.Y)
	fillCircle(dst, sx, sy, radius, col, 1)
}

// DrawText draws a label anchored at a world-space point.
func DrawText(dst *image.RGBA, t *Transform, p geometry.Point2D, text string, col color.Color) {
	sx, sy := t.WorldToScreen(p.X, p.Y)
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(sx), int(sy)),
	}
	d.DrawString(text)
}

// drawSegment draws a line between two screen points using Bresenham's
// algorithm with a square pen. Dash gating tracks the distance walked along
// the line: diagonal steps count sqrt(2), straight steps 1.
func drawSegment(dst *image.RGBA, x1, y1, x2, y2 int, col color.Color, thickness int, dash []float64, alpha float64) {
	r, g, b, a := premul(col, alpha)
	if a == 0 {
		return
	}

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	errAcc := dx - dy

	var walked float64
	for {
		if dashOn(dash, walked) {
			drawPen(dst, x1, y1, thickness, r, g, b, a)
		}

		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * errAcc
		stepX, stepY := false, false
		if e2 > -dy {
			errAcc -= dy
			x1 += sx
			stepX = true
		}
		if e2 < dx {
			errAcc += dx
			y1 += sy
			stepY = true
		}
		if stepX && stepY {
			walked += math.Sqrt2
		} else {
			walked++
		}
	}
}

// dashOn reports whether the given distance along a stroke falls in an "on"
// segment of the dash pattern. An empty pattern is solid.
func dashOn(dash []float64, walked float64) bool {
	if len(dash) == 0 {
		return true
	}
	var total float64
	for _, d := range dash {
		total += d
	}
	if total <= 0 {
		return true
	}
	pos := math.Mod(walked, total)
	for i, d := range dash {
		if pos < d {
			return i%2 == 0
		}
		pos -= d
	}
	return true
}

// drawPen stamps a square pen of the given thickness centered on (x, y).
func drawPen(dst *image.RGBA, x, y, thickness int, r, g, b uint8, a float64) {
	half := thickness / 2
	for ty := -half; ty <= half; ty++ {
		for tx := -half; tx <= half; tx++ {
			blendPixel(dst, x+tx, y+ty, r, g, b, a)
		}
	}
}

// fillPolygon fills a screen-space polygon using an even-odd scanline sweep.
func fillPolygon(dst *image.RGBA, pts []geometry.Point2D, col color.Color, alpha float64) {
	if len(pts) < 3 {
		return
	}
	r, g, b, a := premul(col, alpha)
	if a == 0 {
		return
	}

	bounds := dst.Bounds()
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	n := len(pts)
	for y := int(minY); y <= int(maxY); y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		fy := float64(y)

		var xs []float64
		for i := 0; i < n; i++ {
			p1 := pts[i]
			p2 := pts[(i+1)%n]
			if (p1.Y <= fy && p2.Y > fy) || (p2.Y <= fy && p1.Y > fy) {
				frac := (fy - p1.Y) / (p2.Y - p1.Y)
				xs = append(xs, p1.X+frac*(p2.X-p1.X))
			}
		}
		sortFloats(xs)

		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(xs[i]); x <= int(xs[i+1]); x++ {
				blendPixel(dst, x, y, r, g, b, a)
			}
		}
	}
}

// fillCircle fills a screen-space disc centered at (cx, cy).
func fillCircle(dst *image.RGBA, cx, cy, radius float64, col color.Color, alpha float64) {
	r, g, b, a := premul(col, alpha)
	if a == 0 {
		return
	}
	r2 := radius * radius
	for y := int(cy - radius); y <= int(cy+radius+1); y++ {
		for x := int(cx - radius); x <= int(cx+radius+1); x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			if dx*dx+dy*dy <= r2 {
				blendPixel(dst, x, y, r, g, b, a)
			}
		}
	}
}

// premul extracts 8-bit channels from a color and folds the style alpha into
// the color's own alpha, returning the effective blend factor.
func premul(col color.Color, alpha float64) (r, g, b uint8, a float64) {
	if col == nil {
		return 0, 0, 0, 0
	}
	c := color.RGBAModel.Convert(col).(color.RGBA)
	return c.R, c.G, c.B, float64(c.A) / 255 * alpha
}

// blendPixel alpha-blends a color into the destination, bounds-checked.
func blendPixel(dst *image.RGBA, x, y int, r, g, b uint8, a float64) {
	bounds := dst.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return
	}
	if a >= 0.999 {
		dst.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		return
	}
	existing := dst.RGBAAt(x, y)
	inv := 1 - a
	dst.SetRGBA(x, y, color.RGBA{
		R: uint8(float64(r)*a + float64(existing.R)*inv),
		G: uint8(float64(g)*a + float64(existing.G)*inv),
		B: uint8(float64(b)*a + float64(existing.B)*inv),
		A: 255,
	})
}

func sortFloats(xs []float64) {
	for i := 0; i < len(xs)-1; i++ {
		for j := i + 1; j < len(xs); j++ {
			if xs[j] < xs[i] {
				xs[i], xs[j] = xs[j], xs[i]
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
