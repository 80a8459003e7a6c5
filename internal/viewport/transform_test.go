package viewport

import (
	"math"
	"math/rand"
	"testing"
)

const epsilon = 1e-9

func TestWorldToScreen(t *testing.T) {
	tests := []struct {
		name   string
		tr     Transform
		wx, wy float64
		sx, sy float64
	}{
		{"identity", Transform{Scale: 1}, 10, 20, 10, 20},
		{"scale only", Transform{Scale: 2}, 10, 20, 20, 40},
		{"offset only", Transform{OffsetX: 5, OffsetY: -5, Scale: 1}, 10, 20, 15, 15},
		{"scale and offset", Transform{OffsetX: 100, OffsetY: 50, Scale: 0.5}, 10, 20, 105, 60},
		{"negative world", Transform{OffsetX: 100, OffsetY: 100, Scale: 2}, -50, -50, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sx, sy := tt.tr.WorldToScreen(tt.wx, tt.wy)
			if math.Abs(sx-tt.sx) > epsilon || math.Abs(sy-tt.sy) > epsilon {
				t.Errorf("WorldToScreen(%v, %v) = (%v, %v), want (%v, %v)",
					tt.wx, tt.wy, sx, sy, tt.sx, tt.sy)
			}
		})
	}
}

func TestScreenToWorldInverse(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tr := NewTransform()

	// The inverse property must survive arbitrary pan/zoom histories.
	for i := 0; i < 200; i++ {
		switch rng.Intn(3) {
		case 0:
			tr.PanBy(rng.Float64()*400-200, rng.Float64()*400-200)
		case 1:
			tr.ZoomAt(rng.Float64()*800, rng.Float64()*600, 0.5+rng.Float64()*1.5)
		case 2:
			tr.ZoomAt(rng.Float64()*800, rng.Float64()*600, 1/(0.5+rng.Float64()*1.5))
		}

		wx := rng.Float64()*2000 - 1000
		wy := rng.Float64()*2000 - 1000
		sx, sy := tr.WorldToScreen(wx, wy)
		gx, gy := tr.ScreenToWorld(sx, sy)
		if math.Abs(gx-wx) > 1e-6 || math.Abs(gy-wy) > 1e-6 {
			t.Fatalf("step %d: round trip of (%v, %v) = (%v, %v), scale=%v",
				i, wx, wy, gx, gy, tr.Scale)
		}
	}
}

func TestZoomAtAnchorInvariance(t *testing.T) {
	tests := []struct {
		name   string
		sx, sy float64
		factor float64
	}{
		{"zoom in at origin", 0, 0, 2},
		{"zoom out at origin", 0, 0, 0.5},
		{"zoom in off center", 320, 240, 1.25},
		{"zoom out off center", 320, 240, 0.8},
		{"tiny factor", 100, 100, 1.0001},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &Transform{OffsetX: 17, OffsetY: -42, Scale: 1.5}
			wx, wy := tr.ScreenToWorld(tt.sx, tt.sy)

			tr.ZoomAt(tt.sx, tt.sy, tt.factor)

			sx, sy := tr.WorldToScreen(wx, wy)
			if math.Abs(sx-tt.sx) > 1e-9 || math.Abs(sy-tt.sy) > 1e-9 {
				t.Errorf("anchor moved: (%v, %v) -> (%v, %v)", tt.sx, tt.sy, sx, sy)
			}
		})
	}
}

func TestZoomAtSequence(t *testing.T) {
	// Repeated zooms at the same point must keep the anchor fixed exactly,
	// not just per step.
	tr := NewTransform()
	wx, wy := tr.ScreenToWorld(150, 100)

	for i := 0; i < 50; i++ {
		tr.ZoomAt(150, 100, 1.1)
	}
	for i := 0; i < 50; i++ {
		tr.ZoomAt(150, 100, 1/1.1)
	}

	sx, sy := tr.WorldToScreen(wx, wy)
	if math.Abs(sx-150) > 1e-6 || math.Abs(sy-100) > 1e-6 {
		t.Errorf("anchor drifted to (%v, %v) after zoom sequence", sx, sy)
	}
	if math.Abs(tr.Scale-1) > 1e-9 {
		t.Errorf("scale = %v after symmetric zoom sequence, want 1", tr.Scale)
	}
}

func TestPanBy(t *testing.T) {
	tr := &Transform{OffsetX: 10, OffsetY: 20, Scale: 3}
	tr.PanBy(-15, 5)
	if tr.OffsetX != -5 || tr.OffsetY != 25 {
		t.Errorf("offset = (%v, %v), want (-5, 25)", tr.OffsetX, tr.OffsetY)
	}
	if tr.Scale != 3 {
		t.Errorf("pan changed scale to %v", tr.Scale)
	}
}
