package viewport

import (
	"image"
	"image/color"
	"math"
	"testing"

	"clipview/pkg/geometry"
)

func TestGridStepLadder(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
		want  float64
	}{
		{"unit scale", 1, 50},
		{"zoomed in 10x", 10, 5},
		{"zoomed in 100x", 100, 0.5},
		{"zoomed out 10x", 0.1, 500},
		{"zoomed out 100x", 0.01, 5000},
		{"exactly at band edge", 30, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GridStep(tt.scale)
			if math.Abs(got-tt.want) > tt.want*1e-9 {
				t.Errorf("GridStep(%v) = %v, want %v", tt.scale, got, tt.want)
			}
		})
	}
}

func TestGridStepStaysInBand(t *testing.T) {
	// Sweep scale across eight orders of magnitude; the on-screen spacing
	// must stay inside the target band throughout.
	for scale := 1e-4; scale < 1e4; scale *= 1.07 {
		step := GridStep(scale)
		px := step * scale
		if px < gridMinPixels || px > gridMaxPixels {
			t.Fatalf("scale %v: spacing %v px outside [%v, %v]",
				scale, px, gridMinPixels, gridMaxPixels)
		}
		// 1/2/5 ladder: mantissa must be one of those values.
		mant := step / math.Pow(10, math.Floor(math.Log10(step)))
		if math.Abs(mant-1) > 1e-6 && math.Abs(mant-2) > 1e-6 && math.Abs(mant-5) > 1e-6 {
			t.Fatalf("scale %v: step %v has mantissa %v, not on 1/2/5 ladder", scale, step, mant)
		}
	}
}

func TestDashOn(t *testing.T) {
	dash := []float64{4, 2}
	tests := []struct {
		walked float64
		want   bool
	}{
		{0, true},
		{3.9, true},
		{4.5, false},
		{5.9, false},
		{6.0, true},
		{9.5, true},
		{10.5, false},
	}
	for _, tt := range tests {
		if got := dashOn(dash, tt.walked); got != tt.want {
			t.Errorf("dashOn(%v, %v) = %v, want %v", dash, tt.walked, got, tt.want)
		}
	}
	if !dashOn(nil, 123) {
		t.Error("empty pattern must be solid")
	}
}

func newCanvas(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return img
}

func TestDrawPathClosedFills(t *testing.T) {
	img := newCanvas(100, 100)
	red := color.RGBA{R: 255, A: 255}
	square := []geometry.Point2D{{X: 20, Y: 20}, {X: 80, Y: 20}, {X: 80, Y: 80}, {X: 20, Y: 80}}

	DrawPath(img, NewTransform(), square, Style{Fill: red, Closed: true})

	if got := img.RGBAAt(50, 50); got.R != 255 || got.G != 0 {
		t.Errorf("interior pixel = %v, want red", got)
	}
	if got := img.RGBAAt(5, 5); got.R != 0 {
		t.Errorf("exterior pixel = %v, want untouched", got)
	}
}

func TestDrawPathOpenDoesNotFill(t *testing.T) {
	img := newCanvas(100, 100)
	red := color.RGBA{R: 255, A: 255}
	square := []geometry.Point2D{{X: 20, Y: 20}, {X: 80, Y: 20}, {X: 80, Y: 80}, {X: 20, Y: 80}}

	DrawPath(img, NewTransform(), square, Style{Fill: red, Stroke: red})

	if got := img.RGBAAt(50, 50); got.R != 0 {
		t.Errorf("interior pixel = %v, open path must not fill", got)
	}
	// The closing edge from (20,80) back to (20,20) must be absent.
	if got := img.RGBAAt(20, 50); got.R != 0 {
		t.Errorf("closing edge drawn on open path: %v", got)
	}
	// But the top edge is stroked.
	if got := img.RGBAAt(50, 20); got.R != 255 {
		t.Errorf("top edge missing: %v", got)
	}
}

func TestDrawPathUsesTransform(t *testing.T) {
	img := newCanvas(100, 100)
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	tr := &Transform{OffsetX: 50, OffsetY: 50, Scale: 10}

	// World segment (0,0)-(4,0) lands at screen (50,50)-(90,50).
	DrawPath(img, tr, []geometry.Point2D{{X: 0, Y: 0}, {X: 4, Y: 0}}, Style{Stroke: white})

	if got := img.RGBAAt(70, 50); got.R != 255 {
		t.Errorf("transformed segment missing at (70,50): %v", got)
	}
	if got := img.RGBAAt(70, 60); got.R != 0 {
		t.Errorf("stray pixel at (70,60): %v", got)
	}
}

func TestDrawRectVertices(t *testing.T) {
	img := newCanvas(100, 100)
	stroke := color.RGBA{B: 255, A: 255}
	vert := color.RGBA{G: 255, A: 255}

	DrawRect(img, NewTransform(), geometry.Rect{X: 10, Y: 10, Width: 50, Height: 50}, Style{
		Stroke:       stroke,
		ShowVertices: true,
		VertexRadius: 3,
		VertexColor:  vert,
	})

	if got := img.RGBAAt(10, 10); got.G != 255 {
		t.Errorf("corner vertex marker missing: %v", got)
	}
	if got := img.RGBAAt(35, 10); got.B != 255 {
		t.Errorf("top edge missing: %v", got)
	}
}

func TestDrawPointAlphaBlend(t *testing.T) {
	img := newCanvas(20, 20)
	// Half-transparent white over black should land mid-gray.
	DrawPath(img, NewTransform(), []geometry.Point2D{{X: 2, Y: 10}, {X: 18, Y: 10}}, Style{
		Stroke: color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Alpha:  0.5,
	})

	got := img.RGBAAt(10, 10)
	if got.R < 100 || got.R > 155 {
		t.Errorf("blended pixel = %v, want mid-gray", got)
	}
}
