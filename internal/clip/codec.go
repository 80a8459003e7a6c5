// Package clip is the numeric boundary to the polygon clipping engine. Paths
// cross the boundary as flat float64 buffers and coordinates are truncated to
// integers on encode, mirroring the engine's 64-bit integer coordinate space.
package clip

import (
	"math"

	"clipview/pkg/geometry"
)

// Paths buffers are encoded as [n, x0, y0, x1, y1, ..., n, x0, y0, ...]:
// each path is its point count followed by that many coordinate pairs.

// EncodePaths flattens paths into a boundary buffer.
func EncodePaths(paths [][]geometry.Point2D) []float64 {
	total := 0
	for _, p := range paths {
		total += 1 + len(p)*2
	}
	buf := make([]float64, 0, total)
	for _, p := range paths {
		buf = append(buf, float64(len(p)))
		for _, pt := range p {
			buf = append(buf, math.Trunc(pt.X), math.Trunc(pt.Y))
		}
	}
	return buf
}

// DecodePaths parses a boundary buffer back into paths. A truncated buffer
// yields as many whole points as are present, like the engine's decoder.
func DecodePaths(buf []float64) [][]geometry.Point2D {
	var paths [][]geometry.Point2D
	i := 0
	for i < len(buf) {
		n := int(buf[i])
		i++
		path := make([]geometry.Point2D, 0, n)
		for j := 0; j < n; j++ {
			if i+1 >= len(buf) {
				break
			}
			path = append(path, geometry.Point2D{X: buf[i], Y: buf[i+1]})
			i += 2
		}
		paths = append(paths, path)
	}
	return paths
}

// EncodePath flattens a single path as bare coordinate pairs (no count
// prefix), the boundary form used for pattern arguments.
func EncodePath(path []geometry.Point2D) []float64 {
	buf := make([]float64, 0, len(path)*2)
	for _, pt := range path {
		buf = append(buf, math.Trunc(pt.X), math.Trunc(pt.Y))
	}
	return buf
}

// DecodePath parses bare coordinate pairs into a single path.
func DecodePath(buf []float64) []geometry.Point2D {
	path := make([]geometry.Point2D, 0, len(buf)/2)
	for i := 0; i+1 < len(buf); i += 2 {
		path = append(path, geometry.Point2D{X: buf[i], Y: buf[i+1]})
	}
	return path
}
