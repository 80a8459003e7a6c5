// Package colorutil provides the shared scene palette for the clip viewer.
package colorutil

import "image/color"

// Common scene colors used throughout the application.
var (
	Black   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Grid    = color.RGBA{R: 52, G: 56, B: 64, A: 255}
	Axis    = color.RGBA{R: 90, G: 96, B: 110, A: 255}
	Subject = color.RGBA{R: 77, G: 144, B: 254, A: 255}
	Window  = color.RGBA{R: 255, G: 171, B: 64, A: 255}
	Result  = color.RGBA{R: 105, G: 240, B: 174, A: 255}
	Vertex  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Hover   = color.RGBA{R: 255, G: 82, B: 82, A: 255}
)

// Dim returns the color with its alpha replaced, for translucent fills.
func Dim(c color.RGBA, alpha uint8) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}
