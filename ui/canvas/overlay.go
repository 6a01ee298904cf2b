// Package canvas snap marker rendering.
package canvas

import (
	"image"
	"image/color"

	"dxf-sketcher/internal/snap"
	"dxf-sketcher/pkg/geometry"
)

// SnapMarker is the visual indicator drawn at the active snap point.
type SnapMarker struct {
	Point   geometry.Point2D // World coordinates
	Feature snap.FeatureType
}

var markerColor = color.RGBA{R: 0x3C, G: 0xDC, B: 0x64, A: 0xFF}

// markerSize is the half-extent of the marker glyph in screen pixels.
const markerSize = 6

// drawSnapMarker draws the classic per-feature snap glyph: square for
// endpoints, triangle for midpoints, circle for centers, diamond for
// quadrants, X for intersections, and a circled cross for the rest.
func drawSnapMarker(output *image.RGBA, x, y int, feature snap.FeatureType) {
	s := markerSize
	switch feature {
	case snap.Endpoint, snap.Node:
		drawLine(output, x-s, y-s, x+s, y-s, markerColor, 2)
		drawLine(output, x+s, y-s, x+s, y+s, markerColor, 2)
		drawLine(output, x+s, y+s, x-s, y+s, markerColor, 2)
		drawLine(output, x-s, y+s, x-s, y-s, markerColor, 2)
	case snap.Midpoint:
		drawLine(output, x, y-s, x+s, y+s, markerColor, 2)
		drawLine(output, x+s, y+s, x-s, y+s, markerColor, 2)
		drawLine(output, x-s, y+s, x, y-s, markerColor, 2)
	case snap.Center, snap.Insertion:
		drawMarkerCircle(output, x, y, s)
	case snap.Quadrant:
		drawLine(output, x, y-s, x+s, y, markerColor, 2)
		drawLine(output, x+s, y, x, y+s, markerColor, 2)
		drawLine(output, x, y+s, x-s, y, markerColor, 2)
		drawLine(output, x-s, y, x, y-s, markerColor, 2)
	case snap.Intersection:
		drawLine(output, x-s, y-s, x+s, y+s, markerColor, 2)
		drawLine(output, x-s, y+s, x+s, y-s, markerColor, 2)
	default:
		drawMarkerCircle(output, x, y, s)
		drawLine(output, x-s, y, x+s, y, markerColor, 1)
		drawLine(output, x, y-s, x, y+s, markerColor, 1)
	}
}

// drawMarkerCircle draws a one-pixel circle outline via the midpoint
// algorithm.
func drawMarkerCircle(output *image.RGBA, cx, cy, r int) {
	bounds := output.Bounds()
	set := func(x, y int) {
		if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
			output.SetRGBA(x, y, markerColor)
		}
	}

	x, y := r, 0
	err := 1 - r
	for x >= y {
		set(cx+x, cy+y)
		set(cx-x, cy+y)
		set(cx+x, cy-y)
		set(cx-x, cy-y)
		set(cx+y, cy+x)
		set(cx-y, cy+x)
		set(cx+y, cy-x)
		set(cx-y, cy-x)
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}
