package snap

import (
	"dxf-sketcher/internal/entity"
	"dxf-sketcher/pkg/geometry"
)

// Candidate is a feature point found near the cursor. Distance is always
// the world-space Euclidean distance from the query cursor to Point, never
// screen-space.
type Candidate struct {
	Point       geometry.Point2D
	Feature     FeatureType
	Description string
	Distance    float64
	Priority    int
	EntityID    entity.ID // empty for candidates not owned by one entity
}

// newCandidate fills the derived fields (distance, priority, description)
// for a feature point relative to the query cursor.
func newCandidate(ft FeatureType, point, cursor geometry.Point2D, id entity.ID) Candidate {
	return Candidate{
		Point:       point,
		Feature:     ft,
		Description: ft.String(),
		Distance:    point.Distance(cursor),
		Priority:    ft.Priority(),
		EntityID:    id,
	}
}

// betterThan reports whether c should be preferred over other: lower
// priority wins, then smaller distance. Equal candidates compare false, so
// a strict-improvement scan preserves registration order on full ties.
func (c Candidate) betterThan(other Candidate) bool {
	if c.Priority != other.Priority {
		return c.Priority < other.Priority
	}
	return c.Distance < other.Distance
}
