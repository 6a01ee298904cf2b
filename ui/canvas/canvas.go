// Package canvas provides the sketch drawing canvas with pan, zoom, and
// cursor tracking.
package canvas

import (
	"image"

	"dxf-sketcher/internal/entity"
	"dxf-sketcher/pkg/colorutil"
	"dxf-sketcher/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const (
	minZoom  = 0.05
	maxZoom  = 50.0
	zoomStep = 1.25
)

// SketchCanvas renders the entity drawing and reports cursor movement in
// world coordinates so the caller can run snap queries against it.
type SketchCanvas struct {
	widget.BaseWidget

	// Drawing content
	entities   []entity.Entity
	layerIndex map[string]int
	selectedID entity.ID

	// View state: screenX = (worldX - panX) * zoom.
	raster *fynecanvas.Raster
	zoom   float64
	pan    geometry.Point2D

	// Snap feedback
	marker *SnapMarker

	// Rubber band for the in-progress drawing operation.
	pendingFrom *geometry.Point2D
	pendingTo   geometry.Point2D

	// Interaction state
	panning   bool
	lastDragX float32
	lastDragY float32

	content *interactiveContent

	// Callbacks
	onZoomChange func(zoom float64)
	onCursorMove func(world geometry.Point2D)
	onLeftClick  func(world geometry.Point2D)
	onRightClick func(world geometry.Point2D)
}

// NewSketchCanvas creates an empty canvas at 1:1 zoom.
func NewSketchCanvas() *SketchCanvas {
	sc := &SketchCanvas{
		zoom: 1.0,
		pan:  geometry.Point2D{X: -40, Y: -40},
	}

	sc.raster = fynecanvas.NewRaster(sc.draw)
	sc.raster.ScaleMode = fynecanvas.ImageScalePixels
	sc.content = newInteractiveContent(sc, sc.raster)

	sc.ExtendBaseWidget(sc)
	return sc
}

// Container returns the canvas object for embedding in layouts.
func (sc *SketchCanvas) Container() fyne.CanvasObject {
	return sc.content
}

// SetEntities replaces the drawing content. Layers are assigned colors in
// first-use order so an entity keeps its tint across refreshes.
func (sc *SketchCanvas) SetEntities(entities []entity.Entity) {
	sc.entities = entities
	sc.layerIndex = make(map[string]int)
	for _, e := range entities {
		if _, ok := sc.layerIndex[e.Layer]; !ok {
			sc.layerIndex[e.Layer] = len(sc.layerIndex)
		}
	}
	sc.Refresh()
}

// SetSelected highlights one entity ("" clears the highlight).
func (sc *SketchCanvas) SetSelected(id entity.ID) {
	sc.selectedID = id
	sc.Refresh()
}

// SetSnapMarker shows the snap marker, or clears it when nil.
func (sc *SketchCanvas) SetSnapMarker(marker *SnapMarker) {
	sc.marker = marker
	sc.Refresh()
}

// SetPending shows the rubber-band segment of an in-progress drawing
// operation. Pass nil to clear it.
func (sc *SketchCanvas) SetPending(from *geometry.Point2D, to geometry.Point2D) {
	sc.pendingFrom = from
	sc.pendingTo = to
	sc.Refresh()
}

// Zoom returns the current zoom level in screen pixels per world unit.
func (sc *SketchCanvas) Zoom() float64 {
	return sc.zoom
}

// SetZoom sets the zoom level, clamped to the supported range.
func (sc *SketchCanvas) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	sc.zoom = zoom
	sc.Refresh()

	if sc.onZoomChange != nil {
		sc.onZoomChange(zoom)
	}
}

// ZoomIn increases the zoom level.
func (sc *SketchCanvas) ZoomIn() {
	sc.SetZoom(sc.zoom * zoomStep)
}

// ZoomOut decreases the zoom level.
func (sc *SketchCanvas) ZoomOut() {
	sc.SetZoom(sc.zoom / zoomStep)
}

// CenterOn pans the view so the given world point sits at the viewport
// center.
func (sc *SketchCanvas) CenterOn(world geometry.Point2D) {
	size := sc.content.Size()
	sc.pan = geometry.Point2D{
		X: world.X - float64(size.Width)/2/sc.zoom,
		Y: world.Y - float64(size.Height)/2/sc.zoom,
	}
	sc.Refresh()
}

// FitToEntities adjusts zoom and pan so the whole drawing is visible.
func (sc *SketchCanvas) FitToEntities() {
	var bounds geometry.Rect
	first := true
	for _, e := range sc.entities {
		if !e.Visible || !e.Valid() {
			continue
		}
		if first {
			bounds = e.Bounds()
			first = false
		} else {
			bounds = bounds.Union(e.Bounds())
		}
	}
	if first {
		return
	}

	size := sc.content.Size()
	if size.Width <= 0 || size.Height <= 0 || bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}

	zoomX := float64(size.Width) / bounds.Width
	zoomY := float64(size.Height) / bounds.Height
	zoom := zoomX
	if zoomY < zoomX {
		zoom = zoomY
	}
	sc.SetZoom(zoom * 0.9) // Leave a small margin
	sc.CenterOn(bounds.Center())
}

// OnZoomChange sets a callback for zoom changes.
func (sc *SketchCanvas) OnZoomChange(callback func(zoom float64)) {
	sc.onZoomChange = callback
}

// OnCursorMove sets a callback for pointer movement. Coordinates are in
// world space.
func (sc *SketchCanvas) OnCursorMove(callback func(world geometry.Point2D)) {
	sc.onCursorMove = callback
}

// OnLeftClick sets a callback for left clicks in world coordinates.
func (sc *SketchCanvas) OnLeftClick(callback func(world geometry.Point2D)) {
	sc.onLeftClick = callback
}

// OnRightClick sets a callback for right clicks in world coordinates.
func (sc *SketchCanvas) OnRightClick(callback func(world geometry.Point2D)) {
	sc.onRightClick = callback
}

// WorldToScreen converts world coordinates to canvas pixels.
func (sc *SketchCanvas) WorldToScreen(world geometry.Point2D) (float64, float64) {
	return (world.X - sc.pan.X) * sc.zoom, (world.Y - sc.pan.Y) * sc.zoom
}

// ScreenToWorld converts canvas pixels to world coordinates.
func (sc *SketchCanvas) ScreenToWorld(x, y float64) geometry.Point2D {
	return geometry.Point2D{
		X: x/sc.zoom + sc.pan.X,
		Y: y/sc.zoom + sc.pan.Y,
	}
}

// Refresh redraws the canvas.
func (sc *SketchCanvas) Refresh() {
	sc.raster.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (sc *SketchCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(sc.content)
}

// interactiveContent wraps the raster to receive mouse events.
type interactiveContent struct {
	widget.BaseWidget
	canvas *SketchCanvas
	raster *fynecanvas.Raster
}

var _ desktop.Hoverable = (*interactiveContent)(nil)
var _ fyne.Draggable = (*interactiveContent)(nil)
var _ fyne.Tappable = (*interactiveContent)(nil)
var _ fyne.SecondaryTappable = (*interactiveContent)(nil)
var _ fyne.Scrollable = (*interactiveContent)(nil)

func newInteractiveContent(sc *SketchCanvas, raster *fynecanvas.Raster) *interactiveContent {
	ic := &interactiveContent{canvas: sc, raster: raster}
	ic.ExtendBaseWidget(ic)
	return ic
}

func (ic *interactiveContent) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(ic.raster)
}

func (ic *interactiveContent) MouseIn(ev *desktop.MouseEvent) {
	ic.reportCursor(ev.Position)
}

func (ic *interactiveContent) MouseMoved(ev *desktop.MouseEvent) {
	ic.reportCursor(ev.Position)
}

func (ic *interactiveContent) MouseOut() {}

func (ic *interactiveContent) reportCursor(pos fyne.Position) {
	if ic.canvas.onCursorMove == nil {
		return
	}
	world := ic.canvas.ScreenToWorld(float64(pos.X), float64(pos.Y))
	ic.canvas.onCursorMove(world)
}

// Dragged pans the view.
func (ic *interactiveContent) Dragged(ev *fyne.DragEvent) {
	sc := ic.canvas
	if !sc.panning {
		sc.panning = true
	} else {
		dx := float64(ev.Position.X-sc.lastDragX) / sc.zoom
		dy := float64(ev.Position.Y-sc.lastDragY) / sc.zoom
		sc.pan.X -= dx
		sc.pan.Y -= dy
		sc.Refresh()
	}
	sc.lastDragX = ev.Position.X
	sc.lastDragY = ev.Position.Y
}

func (ic *interactiveContent) DragEnd() {
	ic.canvas.panning = false
}

// Scrolled zooms around the viewport, wheel up to zoom in.
func (ic *interactiveContent) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		ic.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		ic.canvas.ZoomOut()
	}
}

// Tapped reports left clicks in world coordinates.
func (ic *interactiveContent) Tapped(ev *fyne.PointEvent) {
	if ic.canvas.onLeftClick == nil {
		return
	}
	size := ic.Size()
	if ev.Position.X < 0 || ev.Position.Y < 0 ||
		ev.Position.X > size.Width || ev.Position.Y > size.Height {
		return
	}
	ic.canvas.onLeftClick(ic.canvas.ScreenToWorld(float64(ev.Position.X), float64(ev.Position.Y)))
}

// TappedSecondary reports right clicks in world coordinates.
func (ic *interactiveContent) TappedSecondary(ev *fyne.PointEvent) {
	if ic.canvas.onRightClick == nil {
		return
	}
	ic.canvas.onRightClick(ic.canvas.ScreenToWorld(float64(ev.Position.X), float64(ev.Position.Y)))
}

// draw is the raster drawing function.
func (sc *SketchCanvas) draw(w, h int) image.Image {
	output := image.NewRGBA(image.Rect(0, 0, w, h))
	fillBackground(output)
	sc.drawGrid(output, w, h)

	for _, e := range sc.entities {
		if !e.Visible || !e.Valid() {
			continue
		}
		col := colorutil.LayerColor(sc.layerIndex[e.Layer])
		if e.ID == sc.selectedID {
			col = selectedColor
		}
		sc.drawEntity(output, e, col)
	}

	if sc.pendingFrom != nil {
		x1, y1 := sc.WorldToScreen(*sc.pendingFrom)
		x2, y2 := sc.WorldToScreen(sc.pendingTo)
		drawLine(output, int(x1), int(y1), int(x2), int(y2), pendingColor, 1)
	}

	if sc.marker != nil {
		x, y := sc.WorldToScreen(sc.marker.Point)
		drawSnapMarker(output, int(x), int(y), sc.marker.Feature)
	}

	return output
}
