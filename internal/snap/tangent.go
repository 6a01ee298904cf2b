package snap

import (
	"dxf-sketcher/internal/entity"
	"dxf-sketcher/pkg/geometry"
)

// tangentEngine snaps to the points where a segment from the reference
// point would touch a circle or arc tangentially. Emits nothing without a
// reference.
type tangentEngine struct {
	entities []entity.Entity
	stats    EngineStats
}

// NewTangentEngine snaps to tangent points on circles and arcs from the
// drawing reference point.
func NewTangentEngine() Engine {
	return &tangentEngine{}
}

func (te *tangentEngine) Feature() FeatureType {
	return Tangent
}

func (te *tangentEngine) Initialize(entities []entity.Entity) {
	te.entities = te.entities[:0]
	for _, e := range entities {
		if e.Type == entity.TypeCircle || e.Type == entity.TypeArc {
			te.entities = append(te.entities, e)
		}
	}
	te.stats = EngineStats{IndexedPoints: len(te.entities)}
}

func (te *tangentEngine) FindCandidates(cursor geometry.Point2D, ctx *Context) []Candidate {
	te.stats.Queries++
	if ctx.Reference == nil {
		return nil
	}
	ref := ctx.Reference.Point
	radius := ctx.WorldRadius(Tangent)

	var candidates []Candidate
	for _, e := range te.entities {
		if !ctx.usable(e) {
			continue
		}

		p1, p2, ok := geometry.TangentPoints(ref, e.Center, e.Radius)
		if !ok {
			continue // reference inside the circle: no tangent exists
		}
		for _, p := range []geometry.Point2D{p1, p2} {
			if !onCurve(e, p) {
				continue
			}
			if cursor.Distance(p) <= radius {
				candidates = append(candidates, newCandidate(Tangent, p, cursor, e.ID))
			}
		}
	}

	candidates = capCandidates(candidates, ctx.Settings)
	te.stats.Candidates += len(candidates)
	return candidates
}

func (te *tangentEngine) Dispose() {
	te.entities = nil
	te.stats = EngineStats{}
}

func (te *tangentEngine) Stats() EngineStats {
	return te.stats
}
