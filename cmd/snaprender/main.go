// Command snaprender rasterizes a sketch file to PNG, marking the snap
// points a cursor sweep would find. Useful for eyeballing snap coverage
// without the GUI.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"dxf-sketcher/internal/entity"
	"dxf-sketcher/internal/sketch"
	"dxf-sketcher/internal/snap"
	"dxf-sketcher/pkg/geometry"

	"golang.org/x/image/vector"
)

var (
	backgroundColor = color.RGBA{R: 0x16, G: 0x1A, B: 0x1E, A: 0xFF}
	entityColor     = color.RGBA{R: 0xD8, G: 0xDE, B: 0xE4, A: 0xFF}
	snapColor       = color.RGBA{R: 0x3C, G: 0xDC, B: 0x64, A: 0xFF}
)

func main() {
	sketchPath := flag.String("sketch", "", "Path to a .sketch file")
	outPath := flag.String("out", "snap.png", "Output PNG path")
	width := flag.Int("width", 1024, "Output width in pixels")
	height := flag.Int("height", 768, "Output height in pixels")
	sweep := flag.Int("sweep", 64, "Cursor sweep grid resolution per axis")
	flag.Parse()

	if *sketchPath == "" {
		fmt.Println("Usage: snaprender -sketch <path> [-out snap.png] [-width 1024] [-height 768]")
		os.Exit(1)
	}

	file, err := sketch.Load(*sketchPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load sketch: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %q: %d entities\n", file.Name, len(file.Entities))

	settings := snap.DefaultSettings()
	if file.SnapSettings != nil {
		settings = *file.SnapSettings
	}
	snapper := snap.New(settings)
	snapper.Initialize(file.Entities)

	view := newViewport(file.Entities, *width, *height)
	out := image.NewRGBA(image.Rect(0, 0, *width, *height))
	fill(out, backgroundColor)

	// Entities first, snap hits on top.
	canvas := newVectorCanvas(out)
	for _, e := range file.Entities {
		if !e.Visible || !e.Valid() {
			continue
		}
		canvas.strokeEntity(view, e, entityColor)
	}

	// Sweep a cursor grid across the drawing and mark every distinct
	// snap point that answers.
	ctx := &snap.Context{Entities: file.Entities, ZoomScale: view.zoom}
	found := make(map[geometry.Point2D]snap.FeatureType)
	for gy := 0; gy < *sweep; gy++ {
		for gx := 0; gx < *sweep; gx++ {
			cursor := view.toWorld(
				float64(gx)*float64(*width)/float64(*sweep),
				float64(gy)*float64(*height)/float64(*sweep),
			)
			if c, ok := snapper.FindSnapPoint(cursor, ctx); ok {
				found[c.Point] = c.Feature
			}
		}
	}
	fmt.Printf("Snap sweep found %d distinct snap points\n", len(found))

	for p := range found {
		x, y := view.toScreen(p)
		canvas.fillSquare(x, y, 3, snapColor)
	}

	f, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()
	if err := png.Encode(f, out); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode PNG: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *outPath)
}

// viewport maps world coordinates onto the output image.
type viewport struct {
	origin geometry.Point2D
	zoom   float64
}

func newViewport(entities []entity.Entity, w, h int) *viewport {
	var bounds geometry.Rect
	first := true
	for _, e := range entities {
		if !e.Valid() {
			continue
		}
		if first {
			bounds = e.Bounds()
			first = false
		} else {
			bounds = bounds.Union(e.Bounds())
		}
	}
	if first || bounds.Width <= 0 || bounds.Height <= 0 {
		return &viewport{zoom: 1}
	}

	bounds = bounds.Expanded(math.Max(bounds.Width, bounds.Height) * 0.05)
	zoomX := float64(w) / bounds.Width
	zoomY := float64(h) / bounds.Height
	zoom := math.Min(zoomX, zoomY)
	return &viewport{origin: geometry.Point2D{X: bounds.X, Y: bounds.Y}, zoom: zoom}
}

func (v *viewport) toScreen(p geometry.Point2D) (float64, float64) {
	return (p.X - v.origin.X) * v.zoom, (p.Y - v.origin.Y) * v.zoom
}

func (v *viewport) toWorld(x, y float64) geometry.Point2D {
	return geometry.Point2D{X: x/v.zoom + v.origin.X, Y: y/v.zoom + v.origin.Y}
}

func fill(img *image.RGBA, col color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, col)
		}
	}
}

// vectorCanvas strokes geometry into an RGBA image using the rasterizer,
// one filled path per shape.
type vectorCanvas struct {
	dst *image.RGBA
}

func newVectorCanvas(dst *image.RGBA) *vectorCanvas {
	return &vectorCanvas{dst: dst}
}

// strokeEntity draws an entity outline with a fixed 1.5 px stroke.
func (vc *vectorCanvas) strokeEntity(view *viewport, e entity.Entity, col color.RGBA) {
	const strokeHalf = 0.75

	switch e.Type {
	case entity.TypeLine, entity.TypePolyline:
		for _, seg := range e.Segments() {
			x1, y1 := view.toScreen(seg.A)
			x2, y2 := view.toScreen(seg.B)
			vc.strokeSegment(x1, y1, x2, y2, strokeHalf, col)
		}
	case entity.TypeCircle, entity.TypeArc:
		start, sweep := 0.0, 2*math.Pi
		if e.Type == entity.TypeArc {
			start = e.StartAngle
			sweep = e.EndAngle - e.StartAngle
			for sweep <= 0 {
				sweep += 2 * math.Pi
			}
		}
		steps := int(math.Max(24, e.Radius*view.zoom*sweep/2))
		px, py := 0.0, 0.0
		for i := 0; i <= steps; i++ {
			angle := start + sweep*float64(i)/float64(steps)
			x, y := view.toScreen(geometry.PointOnCircle(e.Center, e.Radius, angle))
			if i > 0 {
				vc.strokeSegment(px, py, x, y, strokeHalf, col)
			}
			px, py = x, y
		}
	}
}

// strokeSegment fills the quad spanning a segment widened by half.
func (vc *vectorCanvas) strokeSegment(x1, y1, x2, y2, half float64, col color.RGBA) {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	// Perpendicular offset.
	ox := -dy / length * half
	oy := dx / length * half

	r := vector.NewRasterizer(vc.dst.Bounds().Dx(), vc.dst.Bounds().Dy())
	r.MoveTo(float32(x1+ox), float32(y1+oy))
	r.LineTo(float32(x2+ox), float32(y2+oy))
	r.LineTo(float32(x2-ox), float32(y2-oy))
	r.LineTo(float32(x1-ox), float32(y1-oy))
	r.ClosePath()
	r.Draw(vc.dst, vc.dst.Bounds(), image.NewUniform(col), image.Point{})
}

// fillSquare fills an axis-aligned square marker centered on the point.
func (vc *vectorCanvas) fillSquare(x, y, half float64, col color.RGBA) {
	r := vector.NewRasterizer(vc.dst.Bounds().Dx(), vc.dst.Bounds().Dy())
	r.MoveTo(float32(x-half), float32(y-half))
	r.LineTo(float32(x+half), float32(y-half))
	r.LineTo(float32(x+half), float32(y+half))
	r.LineTo(float32(x-half), float32(y+half))
	r.ClosePath()
	r.Draw(vc.dst, vc.dst.Bounds(), image.NewUniform(col), image.Point{})
}
