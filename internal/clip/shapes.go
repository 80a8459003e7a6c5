package clip

import (
	"math"

	"clipview/pkg/geometry"
)

// Star builds an n-pointed star: alternating outer and inner vertices, first
// outer point straight up from the center.
func Star(cx, cy, outerR, innerR float64, points int) []geometry.Point2D {
	if points < 3 {
		points = 3
	}
	path := make([]geometry.Point2D, 0, points*2)
	n := float64(points)
	for i := 0; i < points; i++ {
		angleOuter := float64(i)*2*math.Pi/n - math.Pi/2
		angleInner := angleOuter + math.Pi/n
		path = append(path,
			geometry.Point2D{X: cx + outerR*math.Cos(angleOuter), Y: cy + outerR*math.Sin(angleOuter)},
			geometry.Point2D{X: cx + innerR*math.Cos(angleInner), Y: cy + innerR*math.Sin(angleInner)},
		)
	}
	return path
}

// Ellipse approximates an ellipse with the given number of segments. With
// steps below 3 a default is derived from the mean radius, matching the
// engine's rule for auto-chosen resolution.
func Ellipse(cx, cy, rx, ry float64, steps int) []geometry.Point2D {
	if rx <= 0 || ry <= 0 {
		return nil
	}
	if steps < 3 {
		steps = int(math.Ceil(math.Pi * math.Sqrt((rx+ry)/2)))
		if steps < 3 {
			steps = 3
		}
	}

	delta := 2 * math.Pi / float64(steps)
	sinD, cosD := math.Sincos(delta)

	// Rotate a unit direction incrementally instead of calling Sincos per
	// vertex.
	dx, dy := 1.0, 0.0
	path := make([]geometry.Point2D, 0, steps)
	for i := 0; i < steps; i++ {
		path = append(path, geometry.Point2D{X: cx + rx*dx, Y: cy + ry*dy})
		dx, dy = dx*cosD-dy*sinD, dx*sinD+dy*cosD
	}
	return path
}
