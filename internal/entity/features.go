package entity

import (
	"dxf-sketcher/pkg/geometry"
)

// Feature-point extraction for the index-backed snap engines. Each helper
// returns nil for entity types that have no such feature, and skips invalid
// geometry.

// Endpoints returns the end feature points: line ends, the first and last
// vertex of an open polyline, and arc ends. Circles and closed polylines
// have no endpoints.
func (e Entity) Endpoints() []geometry.Point2D {
	if !e.Valid() {
		return nil
	}

	switch e.Type {
	case TypeLine:
		return []geometry.Point2D{e.Start, e.End}
	case TypePolyline:
		if e.Closed {
			return nil
		}
		return []geometry.Point2D{e.Vertices[0], e.Vertices[len(e.Vertices)-1]}
	case TypeArc:
		return []geometry.Point2D{e.ArcStart(), e.ArcEnd()}
	default:
		return nil
	}
}

// Midpoints returns the midway feature points: line midpoint, per-segment
// polyline midpoints, and the arc's mid-sweep point.
func (e Entity) Midpoints() []geometry.Point2D {
	if !e.Valid() {
		return nil
	}

	switch e.Type {
	case TypeLine:
		return []geometry.Point2D{geometry.Midpoint(e.Start, e.End)}
	case TypePolyline:
		segs := e.Segments()
		mids := make([]geometry.Point2D, len(segs))
		for i, seg := range segs {
			mids[i] = geometry.Midpoint(seg.A, seg.B)
		}
		return mids
	case TypeArc:
		mid := geometry.ArcMidAngle(e.StartAngle, e.EndAngle)
		return []geometry.Point2D{geometry.PointOnCircle(e.Center, e.Radius, mid)}
	default:
		return nil
	}
}

// Nodes returns every polyline vertex. Other entity types carry no nodes.
func (e Entity) Nodes() []geometry.Point2D {
	if e.Type != TypePolyline || !e.Valid() {
		return nil
	}
	nodes := make([]geometry.Point2D, len(e.Vertices))
	copy(nodes, e.Vertices)
	return nodes
}

// InsertionPoint returns the entity's origin: line start, first polyline
// vertex, or circle/arc center.
func (e Entity) InsertionPoint() (geometry.Point2D, bool) {
	if !e.Valid() {
		return geometry.Point2D{}, false
	}

	switch e.Type {
	case TypeLine:
		return e.Start, true
	case TypePolyline:
		return e.Vertices[0], true
	case TypeCircle, TypeArc:
		return e.Center, true
	default:
		return geometry.Point2D{}, false
	}
}
