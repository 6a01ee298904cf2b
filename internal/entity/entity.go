// Package entity defines the drawable scene entities the snapping engine
// operates on. Entities are plain values; the scene owns them and the
// engine only reads them for the duration of a query.
package entity

import (
	"math"

	"dxf-sketcher/pkg/geometry"
)

// ID uniquely identifies an entity within a scene. The empty string means
// "no entity".
type ID string

// Type identifies the geometric kind of an entity.
type Type string

const (
	TypeLine     Type = "line"
	TypePolyline Type = "polyline"
	TypeCircle   Type = "circle"
	TypeArc      Type = "arc"
)

// Entity is a single drawn object. Only the geometry fields matching Type
// are meaningful; the rest stay at their zero values.
type Entity struct {
	ID      ID     `json:"id"`
	Type    Type   `json:"type"`
	Layer   string `json:"layer,omitempty"`
	Visible bool   `json:"visible"`

	// Line geometry.
	Start geometry.Point2D `json:"start"`
	End   geometry.Point2D `json:"end"`

	// Polyline geometry.
	Vertices []geometry.Point2D `json:"vertices,omitempty"`
	Closed   bool               `json:"closed,omitempty"`

	// Circle and arc geometry. Angles are radians, counter-clockwise;
	// an arc sweeps counter-clockwise from StartAngle to EndAngle.
	Center     geometry.Point2D `json:"center"`
	Radius     float64          `json:"radius,omitempty"`
	StartAngle float64          `json:"start_angle,omitempty"`
	EndAngle   float64          `json:"end_angle,omitempty"`
}

// NewLine creates a visible line entity.
func NewLine(id ID, start, end geometry.Point2D) Entity {
	return Entity{ID: id, Type: TypeLine, Visible: true, Start: start, End: end}
}

// NewPolyline creates a visible polyline entity.
func NewPolyline(id ID, vertices []geometry.Point2D, closed bool) Entity {
	return Entity{ID: id, Type: TypePolyline, Visible: true, Vertices: vertices, Closed: closed}
}

// NewCircle creates a visible circle entity.
func NewCircle(id ID, center geometry.Point2D, radius float64) Entity {
	return Entity{ID: id, Type: TypeCircle, Visible: true, Center: center, Radius: radius}
}

// NewArc creates a visible arc entity sweeping counter-clockwise from
// startAngle to endAngle.
func NewArc(id ID, center geometry.Point2D, radius, startAngle, endAngle float64) Entity {
	return Entity{
		ID: id, Type: TypeArc, Visible: true,
		Center: center, Radius: radius,
		StartAngle: startAngle, EndAngle: endAngle,
	}
}

// Valid reports whether the entity carries usable geometry for its type.
// Invalid entities are skipped during feature extraction, never treated as
// errors.
func (e Entity) Valid() bool {
	switch e.Type {
	case TypeLine:
		return true
	case TypePolyline:
		return len(e.Vertices) >= 2
	case TypeCircle, TypeArc:
		return e.Radius >= geometry.Epsilon
	default:
		return false
	}
}

// Segment is a straight piece of an entity's outline.
type Segment struct {
	A, B geometry.Point2D
}

// Segments returns the straight segments making up the entity. Circles and
// arcs have none.
func (e Entity) Segments() []Segment {
	switch e.Type {
	case TypeLine:
		return []Segment{{A: e.Start, B: e.End}}
	case TypePolyline:
		if len(e.Vertices) < 2 {
			return nil
		}
		segs := make([]Segment, 0, len(e.Vertices))
		for i := 0; i < len(e.Vertices)-1; i++ {
			segs = append(segs, Segment{A: e.Vertices[i], B: e.Vertices[i+1]})
		}
		if e.Closed {
			segs = append(segs, Segment{A: e.Vertices[len(e.Vertices)-1], B: e.Vertices[0]})
		}
		return segs
	default:
		return nil
	}
}

// ArcStart returns the start point of an arc entity.
func (e Entity) ArcStart() geometry.Point2D {
	return geometry.PointOnCircle(e.Center, e.Radius, e.StartAngle)
}

// ArcEnd returns the end point of an arc entity.
func (e Entity) ArcEnd() geometry.Point2D {
	return geometry.PointOnCircle(e.Center, e.Radius, e.EndAngle)
}

// Bounds returns the axis-aligned bounding box of the entity geometry.
// Arcs use the full-circle box, which is conservative but cheap.
func (e Entity) Bounds() geometry.Rect {
	switch e.Type {
	case TypeLine:
		return geometry.BoundingBox([]geometry.Point2D{e.Start, e.End})
	case TypePolyline:
		return geometry.BoundingBox(e.Vertices)
	case TypeCircle, TypeArc:
		return geometry.Rect{
			X:      e.Center.X - e.Radius,
			Y:      e.Center.Y - e.Radius,
			Width:  2 * e.Radius,
			Height: 2 * e.Radius,
		}
	default:
		return geometry.Rect{}
	}
}

// ClosestPoint returns the point on the entity outline closest to p.
// Returns false for invalid geometry.
func (e Entity) ClosestPoint(p geometry.Point2D) (geometry.Point2D, bool) {
	if !e.Valid() {
		return geometry.Point2D{}, false
	}

	switch e.Type {
	case TypeLine, TypePolyline:
		best := geometry.Point2D{}
		bestDist := math.Inf(1)
		for _, seg := range e.Segments() {
			c := geometry.SegmentClosestPoint(p, seg.A, seg.B)
			if d := c.Distance(p); d < bestDist {
				bestDist = d
				best = c
			}
		}
		if math.IsInf(bestDist, 1) {
			return geometry.Point2D{}, false
		}
		return best, true

	case TypeCircle:
		return geometry.CircleClosestPoint(p, e.Center, e.Radius), true

	case TypeArc:
		angle := math.Atan2(p.Y-e.Center.Y, p.X-e.Center.X)
		if geometry.AngleOnArc(angle, e.StartAngle, e.EndAngle) {
			return geometry.CircleClosestPoint(p, e.Center, e.Radius), true
		}
		// Off the sweep: the nearest of the two arc ends wins.
		start, end := e.ArcStart(), e.ArcEnd()
		if p.Distance(start) <= p.Distance(end) {
			return start, true
		}
		return end, true

	default:
		return geometry.Point2D{}, false
	}
}
