package clip

import (
	"gonum.org/v1/gonum/spatial/r2"

	"clipview/pkg/geometry"
)

// RectClipper clips subject paths against an axis-aligned rectangle. It is
// the built-in analogue of the engine's rect_clip fast path and satisfies
// Engine for Intersection against a rectangular clip.
type RectClipper struct {
	Left, Top, Right, Bottom float64
}

// BooleanOp implements Engine. Only Intersection is supported; the clips
// buffer is ignored because the clip shape is the clipper's own rectangle.
func (rc RectClipper) BooleanOp(op ClipType, rule FillRule, subjects, clips []float64) []float64 {
	_ = rule
	if op != Intersection {
		return nil
	}
	return rc.Clip(subjects)
}

// Clip clips every path in the subjects buffer, dropping results that
// collapse below three points.
func (rc RectClipper) Clip(subjects []float64) []float64 {
	var out [][]geometry.Point2D
	for _, path := range DecodePaths(subjects) {
		clipped := rc.clipPath(path)
		if len(clipped) >= 3 {
			out = append(out, clipped)
		}
	}
	return EncodePaths(out)
}

// clipPath runs Sutherland-Hodgman against the four window edges in turn.
func (rc RectClipper) clipPath(path []geometry.Point2D) []geometry.Point2D {
	edges := []struct {
		inside    func(p r2.Vec) bool
		intersect func(a, b r2.Vec) r2.Vec
	}{
		{
			inside:    func(p r2.Vec) bool { return p.X >= rc.Left },
			intersect: func(a, b r2.Vec) r2.Vec { return lerpAtX(a, b, rc.Left) },
		},
		{
			inside:    func(p r2.Vec) bool { return p.X <= rc.Right },
			intersect: func(a, b r2.Vec) r2.Vec { return lerpAtX(a, b, rc.Right) },
		},
		{
			inside:    func(p r2.Vec) bool { return p.Y >= rc.Top },
			intersect: func(a, b r2.Vec) r2.Vec { return lerpAtY(a, b, rc.Top) },
		},
		{
			inside:    func(p r2.Vec) bool { return p.Y <= rc.Bottom },
			intersect: func(a, b r2.Vec) r2.Vec { return lerpAtY(a, b, rc.Bottom) },
		},
	}

	poly := make([]r2.Vec, len(path))
	for i, p := range path {
		poly[i] = r2.Vec{X: p.X, Y: p.Y}
	}

	for _, e := range edges {
		if len(poly) == 0 {
			break
		}
		var next []r2.Vec
		prev := poly[len(poly)-1]
		prevIn := e.inside(prev)
		for _, cur := range poly {
			curIn := e.inside(cur)
			if curIn != prevIn {
				next = append(next, e.intersect(prev, cur))
			}
			if curIn {
				next = append(next, cur)
			}
			prev, prevIn = cur, curIn
		}
		poly = next
	}

	out := make([]geometry.Point2D, len(poly))
	for i, v := range poly {
		out[i] = geometry.Point2D{X: v.X, Y: v.Y}
	}
	return out
}

// lerpAtX returns the point on segment a-b with the given x coordinate.
func lerpAtX(a, b r2.Vec, x float64) r2.Vec {
	t := (x - a.X) / (b.X - a.X)
	return r2.Add(a, r2.Scale(t, r2.Sub(b, a)))
}

// lerpAtY returns the point on segment a-b with the given y coordinate.
func lerpAtY(a, b r2.Vec, y float64) r2.Vec {
	t := (y - a.Y) / (b.Y - a.Y)
	return r2.Add(a, r2.Scale(t, r2.Sub(b, a)))
}

// Area returns the signed shoelace area of a path: positive for clockwise
// winding in the y-down screen convention.
func Area(path []geometry.Point2D) float64 {
	if len(path) < 3 {
		return 0
	}
	var sum float64
	prev := path[len(path)-1]
	for _, cur := range path {
		sum += (prev.Y + cur.Y) * (prev.X - cur.X)
		prev = cur
	}
	return sum / 2
}
