package mainwindow

import (
	"fmt"
	"math"

	"dxf-sketcher/internal/entity"
	"dxf-sketcher/internal/snap"
	"dxf-sketcher/pkg/geometry"
	"dxf-sketcher/ui/canvas"
)

type toolKind int

const (
	toolSelect toolKind = iota
	toolLine
	toolPolyline
	toolCircle
	toolArc
)

var toolNames = map[toolKind]string{
	toolSelect:   "Select",
	toolLine:     "Line",
	toolPolyline: "Polyline",
	toolCircle:   "Circle",
	toolArc:      "Arc",
}

// toolController runs the drawing tools: it turns cursor movement into
// snap queries and clicks into entities, feeding snapped points into the
// geometry being placed.
type toolController struct {
	mw   *MainWindow
	tool toolKind

	// points are the clicks already placed for the pending entity.
	points []geometry.Point2D

	// lastSnap is the candidate under the cursor, used when the next
	// click lands.
	lastSnap  *snap.Candidate
	lastWorld geometry.Point2D

	seq int
}

func newToolController(mw *MainWindow) *toolController {
	return &toolController{mw: mw}
}

func (tc *toolController) setTool(tool toolKind) {
	tc.cancel()
	tc.tool = tool
	tc.mw.updateStatus(toolNames[tool] + " tool")
}

// cancel aborts the in-progress drawing operation.
func (tc *toolController) cancel() {
	tc.points = nil
	tc.lastSnap = nil
	tc.mw.canvas.SetSnapMarker(nil)
	tc.mw.canvas.SetPending(nil, geometry.Point2D{})
}

// cursorMoved runs a snap query for the new cursor position and updates
// the marker, the rubber band and the status bar.
func (tc *toolController) cursorMoved(world geometry.Point2D) {
	tc.lastWorld = world
	ctx := tc.queryContext()

	candidate, found := tc.mw.state.Snapper().FindSnapPoint(world, ctx)
	effective := world
	if found {
		tc.lastSnap = &candidate
		effective = candidate.Point
		tc.mw.canvas.SetSnapMarker(&canvas.SnapMarker{Point: candidate.Point, Feature: candidate.Feature})
		tc.mw.updateStatus(fmt.Sprintf("%s  (%.2f, %.2f)", candidate.Description, candidate.Point.X, candidate.Point.Y))
	} else {
		tc.lastSnap = nil
		tc.mw.canvas.SetSnapMarker(nil)
		tc.mw.updateStatus(fmt.Sprintf("(%.2f, %.2f)", world.X, world.Y))
	}

	if len(tc.points) > 0 {
		last := tc.points[len(tc.points)-1]
		tc.mw.canvas.SetPending(&last, effective)
	}
}

// queryContext builds the snap context for the current tool state. Once
// a first point is placed it becomes the reference for the directional
// snap types.
func (tc *toolController) queryContext() *snap.Context {
	ctx := &snap.Context{
		Entities:  tc.mw.state.Entities(),
		ZoomScale: tc.mw.canvas.Zoom(),
	}
	if len(tc.points) > 0 {
		ctx.Reference = &snap.Reference{Point: tc.points[len(tc.points)-1]}
	}
	return ctx
}

// leftClick places a point, preferring the snapped position.
func (tc *toolController) leftClick(world geometry.Point2D) {
	point := world
	if tc.lastSnap != nil {
		point = tc.lastSnap.Point
	}

	switch tc.tool {
	case toolSelect:
		tc.selectAt(world)
	case toolLine:
		tc.points = append(tc.points, point)
		if len(tc.points) == 2 {
			tc.addEntity(entity.NewLine(tc.nextID("line"), tc.points[0], tc.points[1]))
			tc.cancel()
		}
	case toolPolyline:
		tc.points = append(tc.points, point)
	case toolCircle:
		tc.points = append(tc.points, point)
		if len(tc.points) == 2 {
			radius := tc.points[0].Distance(tc.points[1])
			tc.addEntity(entity.NewCircle(tc.nextID("circle"), tc.points[0], radius))
			tc.cancel()
		}
	case toolArc:
		tc.points = append(tc.points, point)
		if len(tc.points) == 3 {
			center := tc.points[0]
			radius := center.Distance(tc.points[1])
			start := math.Atan2(tc.points[1].Y-center.Y, tc.points[1].X-center.X)
			end := math.Atan2(tc.points[2].Y-center.Y, tc.points[2].X-center.X)
			tc.addEntity(entity.NewArc(tc.nextID("arc"), center, radius, start, end))
			tc.cancel()
		}
	}
}

// rightClick finishes a polyline or cancels the pending operation.
func (tc *toolController) rightClick(world geometry.Point2D) {
	if tc.tool == toolPolyline && len(tc.points) >= 2 {
		vertices := make([]geometry.Point2D, len(tc.points))
		copy(vertices, tc.points)
		tc.addEntity(entity.NewPolyline(tc.nextID("pline"), vertices, false))
	}
	tc.cancel()
}

func (tc *toolController) addEntity(e entity.Entity) {
	if err := tc.mw.state.AddEntity(e); err != nil {
		tc.mw.updateStatus("Could not add entity: " + err.Error())
		return
	}
	tc.mw.updateStatus(fmt.Sprintf("Added %s %s", e.Type, e.ID))
}

// selectAt picks the entity whose outline is closest to the click,
// within the snap tolerance.
func (tc *toolController) selectAt(world geometry.Point2D) {
	tolerance := tc.mw.state.Snapper().Settings().PixelTolerance / tc.mw.canvas.Zoom()

	bestID := entity.ID("")
	bestDist := math.Inf(1)
	for _, e := range tc.mw.state.Entities() {
		if !e.Visible || !e.Valid() {
			continue
		}
		p, ok := e.ClosestPoint(world)
		if !ok {
			continue
		}
		if d := world.Distance(p); d <= tolerance && d < bestDist {
			bestDist = d
			bestID = e.ID
		}
	}
	tc.mw.state.Select(bestID)
}

// nextID generates a unique entity id with the given prefix.
func (tc *toolController) nextID(prefix string) entity.ID {
	for {
		tc.seq++
		id := entity.ID(fmt.Sprintf("%s-%d", prefix, tc.seq))
		if _, exists := tc.mw.state.Entity(id); !exists {
			return id
		}
	}
}
