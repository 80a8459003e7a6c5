package clip

import (
	"math"
	"testing"

	"clipview/pkg/geometry"
)

func TestEncodeDecodePaths(t *testing.T) {
	paths := [][]geometry.Point2D{
		{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}},
		{{X: -5, Y: 7}, {X: 3, Y: -2}},
	}

	buf := EncodePaths(paths)
	want := []float64{3, 0, 0, 100, 0, 100, 100, 2, -5, 7, 3, -2}
	if len(buf) != len(want) {
		t.Fatalf("buffer length = %d, want %d", len(buf), len(want))
	}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}

	back := DecodePaths(buf)
	if len(back) != 2 || len(back[0]) != 3 || len(back[1]) != 2 {
		t.Fatalf("decoded shape = %v", back)
	}
	if back[0][1] != paths[0][1] || back[1][0] != paths[1][0] {
		t.Errorf("decoded points differ: %v", back)
	}
}

func TestEncodeTruncatesToInteger(t *testing.T) {
	buf := EncodePath([]geometry.Point2D{{X: 10.9, Y: -3.7}})
	if buf[0] != 10 || buf[1] != -3 {
		t.Errorf("encoded = %v, want truncation toward zero (10, -3)", buf)
	}
}

func TestDecodeTruncatedBuffer(t *testing.T) {
	// Count claims three points but only two fit; the decoder must take
	// what is there instead of reading past the end.
	buf := []float64{3, 1, 2, 3, 4}
	paths := DecodePaths(buf)
	if len(paths) != 1 || len(paths[0]) != 2 {
		t.Fatalf("decoded %v from truncated buffer", paths)
	}
}

func TestRectClipperInside(t *testing.T) {
	rc := RectClipper{Left: 0, Top: 0, Right: 100, Bottom: 100}
	square := [][]geometry.Point2D{{{X: 10, Y: 10}, {X: 90, Y: 10}, {X: 90, Y: 90}, {X: 10, Y: 90}}}

	out := DecodePaths(rc.Clip(EncodePaths(square)))
	if len(out) != 1 {
		t.Fatalf("got %d paths, want 1", len(out))
	}
	if math.Abs(math.Abs(Area(out[0]))-6400) > 1e-9 {
		t.Errorf("area = %v, want 6400", Area(out[0]))
	}
}

func TestRectClipperStraddling(t *testing.T) {
	rc := RectClipper{Left: 0, Top: 0, Right: 100, Bottom: 100}
	// Square half inside: x from -50 to 50.
	square := [][]geometry.Point2D{{{X: -50, Y: 20}, {X: 50, Y: 20}, {X: 50, Y: 80}, {X: -50, Y: 80}}}

	out := DecodePaths(rc.Clip(EncodePaths(square)))
	if len(out) != 1 {
		t.Fatalf("got %d paths, want 1", len(out))
	}
	if math.Abs(math.Abs(Area(out[0]))-3000) > 1e-9 {
		t.Errorf("clipped area = %v, want 3000 (50x60)", math.Abs(Area(out[0])))
	}
	for _, p := range out[0] {
		if p.X < 0 || p.X > 100 || p.Y < 0 || p.Y > 100 {
			t.Errorf("point %v outside clip window", p)
		}
	}
}

func TestRectClipperOutside(t *testing.T) {
	rc := RectClipper{Left: 0, Top: 0, Right: 100, Bottom: 100}
	square := [][]geometry.Point2D{{{X: 200, Y: 200}, {X: 300, Y: 200}, {X: 300, Y: 300}, {X: 200, Y: 300}}}

	out := DecodePaths(rc.Clip(EncodePaths(square)))
	if len(out) != 0 {
		t.Errorf("fully-outside subject produced %v", out)
	}
}

func TestRectClipperIsAnEngine(t *testing.T) {
	var e Engine = RectClipper{Left: 0, Top: 0, Right: 10, Bottom: 10}

	tri := EncodePaths([][]geometry.Point2D{{{X: 2, Y: 2}, {X: 8, Y: 2}, {X: 5, Y: 8}}})
	if got := e.BooleanOp(Intersection, EvenOdd, tri, nil); len(got) == 0 {
		t.Error("intersection with contained subject returned nothing")
	}
	if got := e.BooleanOp(Union, EvenOdd, tri, nil); got != nil {
		t.Errorf("unsupported op returned %v, want nil", got)
	}
}

func TestStarGeometry(t *testing.T) {
	star := Star(0, 0, 100, 40, 5)
	if len(star) != 10 {
		t.Fatalf("5-point star has %d vertices, want 10", len(star))
	}
	// First vertex is the top outer point.
	if math.Abs(star[0].X) > 1e-9 || math.Abs(star[0].Y+100) > 1e-9 {
		t.Errorf("first vertex = %v, want (0, -100)", star[0])
	}
	// Outer and inner radii alternate.
	for i, p := range star {
		r := math.Hypot(p.X, p.Y)
		want := 100.0
		if i%2 == 1 {
			want = 40
		}
		if math.Abs(r-want) > 1e-9 {
			t.Errorf("vertex %d radius = %v, want %v", i, r, want)
		}
	}
}

func TestEllipseGeometry(t *testing.T) {
	e := Ellipse(10, 20, 50, 30, 64)
	if len(e) != 64 {
		t.Fatalf("got %d vertices, want 64", len(e))
	}
	for i, p := range e {
		dx := (p.X - 10) / 50
		dy := (p.Y - 20) / 30
		if math.Abs(dx*dx+dy*dy-1) > 1e-9 {
			t.Errorf("vertex %d = %v not on ellipse", i, p)
		}
	}

	if def := Ellipse(0, 0, 100, 100, 0); len(def) < 3 {
		t.Errorf("auto steps produced %d vertices", len(def))
	}
	if Ellipse(0, 0, 0, 10, 8) != nil {
		t.Error("degenerate radius must return nil")
	}
}

func TestAreaSign(t *testing.T) {
	cw := []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	if a := Area(cw); a <= 0 {
		t.Errorf("y-down clockwise area = %v, want positive", a)
	}
	ccw := []geometry.Point2D{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}}
	if a := Area(ccw); a >= 0 {
		t.Errorf("y-down counter-clockwise area = %v, want negative", a)
	}
	if Area(cw[:2]) != 0 {
		t.Error("degenerate path area must be 0")
	}
}
