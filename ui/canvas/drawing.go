// Package canvas drawing primitives.
package canvas

import (
	"image"
	"image/color"
	"math"

	"dxf-sketcher/internal/entity"
	"dxf-sketcher/pkg/geometry"
)

var (
	backgroundColor = color.RGBA{R: 0x16, G: 0x1A, B: 0x1E, A: 0xFF}
	gridColor       = color.RGBA{R: 0x24, G: 0x2A, B: 0x30, A: 0xFF}
	axisColor       = color.RGBA{R: 0x38, G: 0x42, B: 0x4C, A: 0xFF}
	selectedColor   = color.RGBA{R: 0xFF, G: 0xB3, B: 0x00, A: 0xFF}
	pendingColor    = color.RGBA{R: 0x6A, G: 0x9E, B: 0xD4, A: 0xFF}
)

// gridSpacing is the world-unit spacing of the background grid.
const gridSpacing = 10.0

// fillBackground paints the drafting background.
func fillBackground(output *image.RGBA) {
	bounds := output.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			output.SetRGBA(x, y, backgroundColor)
		}
	}
}

// drawGrid draws grid lines at fixed world spacing plus the world axes.
func (sc *SketchCanvas) drawGrid(output *image.RGBA, w, h int) {
	step := gridSpacing * sc.zoom
	for step < 8 {
		step *= 10 // Coarsen the grid when zoomed far out
	}

	// Vertical lines
	startX := math.Mod(-sc.pan.X*sc.zoom, step)
	if startX < 0 {
		startX += step
	}
	for x := startX; x < float64(w); x += step {
		for y := 0; y < h; y++ {
			output.SetRGBA(int(x), y, gridColor)
		}
	}

	// Horizontal lines
	startY := math.Mod(-sc.pan.Y*sc.zoom, step)
	if startY < 0 {
		startY += step
	}
	for y := startY; y < float64(h); y += step {
		for x := 0; x < w; x++ {
			output.SetRGBA(x, int(y), gridColor)
		}
	}

	// World axes
	ax, ay := sc.WorldToScreen(geometry.Point2D{})
	if ax >= 0 && ax < float64(w) {
		for y := 0; y < h; y++ {
			output.SetRGBA(int(ax), y, axisColor)
		}
	}
	if ay >= 0 && ay < float64(h) {
		for x := 0; x < w; x++ {
			output.SetRGBA(x, int(ay), axisColor)
		}
	}
}

// drawEntity renders one entity in screen space.
func (sc *SketchCanvas) drawEntity(output *image.RGBA, e entity.Entity, col color.RGBA) {
	switch e.Type {
	case entity.TypeLine, entity.TypePolyline:
		for _, seg := range e.Segments() {
			x1, y1 := sc.WorldToScreen(seg.A)
			x2, y2 := sc.WorldToScreen(seg.B)
			drawLine(output, int(x1), int(y1), int(x2), int(y2), col, 1)
		}
	case entity.TypeCircle:
		sc.drawArcOutline(output, e, 0, 2*math.Pi, col)
	case entity.TypeArc:
		sweep := e.EndAngle - e.StartAngle
		for sweep <= 0 {
			sweep += 2 * math.Pi
		}
		sc.drawArcOutline(output, e, e.StartAngle, sweep, col)
	}
}

// drawArcOutline renders a circular arc by stepping the angle finely
// enough that adjacent samples are at most a pixel apart.
func (sc *SketchCanvas) drawArcOutline(output *image.RGBA, e entity.Entity, start, sweep float64, col color.RGBA) {
	screenRadius := e.Radius * sc.zoom
	steps := int(screenRadius * sweep)
	if steps < 16 {
		steps = 16
	}
	if steps > 4096 {
		steps = 4096
	}

	px, py := 0, 0
	for i := 0; i <= steps; i++ {
		angle := start + sweep*float64(i)/float64(steps)
		x, y := sc.WorldToScreen(geometry.PointOnCircle(e.Center, e.Radius, angle))
		if i > 0 {
			drawLine(output, px, py, int(x), int(y), col, 1)
		}
		px, py = int(x), int(y)
	}
}

// drawLine draws a Bresenham line with the given thickness.
func drawLine(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, thickness int) {
	bounds := output.Bounds()
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx + dy

	x, y := x1, y1
	for {
		for tx := 0; tx < thickness; tx++ {
			for ty := 0; ty < thickness; ty++ {
				px, py := x+tx, y+ty
				if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
					output.SetRGBA(px, py, col)
				}
			}
		}
		if x == x2 && y == y2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			if x == x2 {
				return
			}
			err += dy
			x += sx
		}
		if e2 <= dx {
			if y == y2 {
				return
			}
			err += dx
			y += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
