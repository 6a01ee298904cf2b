package snap

import (
	"dxf-sketcher/internal/entity"
	"dxf-sketcher/pkg/geometry"
)

// perpendicularEngine snaps to the point on an entity where a segment from
// the reference point would meet it at a right angle. Without a reference
// (no drawing operation in progress) it emits nothing.
type perpendicularEngine struct {
	entities []entity.Entity
	stats    EngineStats
}

// NewPerpendicularEngine snaps to perpendicular feet from the drawing
// reference point.
func NewPerpendicularEngine() Engine {
	return &perpendicularEngine{}
}

func (pe *perpendicularEngine) Feature() FeatureType {
	return Perpendicular
}

func (pe *perpendicularEngine) Initialize(entities []entity.Entity) {
	pe.entities = make([]entity.Entity, len(entities))
	copy(pe.entities, entities)
	pe.stats = EngineStats{IndexedPoints: len(pe.entities)}
}

func (pe *perpendicularEngine) FindCandidates(cursor geometry.Point2D, ctx *Context) []Candidate {
	pe.stats.Queries++
	if ctx.Reference == nil {
		return nil
	}
	ref := ctx.Reference.Point
	radius := ctx.WorldRadius(Perpendicular)

	var candidates []Candidate
	for _, e := range pe.entities {
		if !ctx.usable(e) {
			continue
		}

		for _, seg := range e.Segments() {
			foot := geometry.PerpendicularFoot(ref, seg.A, seg.B)
			t, ok := geometry.SegmentParam(foot, seg.A, seg.B)
			if !ok || t < 0 || t > 1 {
				continue // the right angle would land off the segment
			}
			if cursor.Distance(foot) <= radius {
				candidates = append(candidates, newCandidate(Perpendicular, foot, cursor, e.ID))
			}
		}

		if e.Type == entity.TypeCircle || e.Type == entity.TypeArc {
			// A segment from ref meets the perimeter at a right angle where
			// the center-to-ref line crosses it.
			for _, p := range perpendicularOnCurve(e, ref) {
				if cursor.Distance(p) <= radius {
					candidates = append(candidates, newCandidate(Perpendicular, p, cursor, e.ID))
				}
			}
		}
	}

	candidates = capCandidates(candidates, ctx.Settings)
	pe.stats.Candidates += len(candidates)
	return candidates
}

func (pe *perpendicularEngine) Dispose() {
	pe.entities = nil
	pe.stats = EngineStats{}
}

func (pe *perpendicularEngine) Stats() EngineStats {
	return pe.stats
}

// perpendicularOnCurve returns the near and far perimeter points on the
// line through the curve center and the reference point.
func perpendicularOnCurve(e entity.Entity, ref geometry.Point2D) []geometry.Point2D {
	dir := ref.Sub(e.Center)
	if dir.Magnitude() < geometry.Epsilon {
		return nil // reference at the center: every direction is perpendicular
	}
	unit := dir.Normalized()

	var points []geometry.Point2D
	for _, p := range []geometry.Point2D{
		e.Center.Add(unit.Scale(e.Radius)),
		e.Center.Sub(unit.Scale(e.Radius)),
	} {
		if onCurve(e, p) {
			points = append(points, p)
		}
	}
	return points
}
