package snap

import (
	"dxf-sketcher/internal/entity"
	"dxf-sketcher/pkg/geometry"
)

// nearestEngine is the last-resort fallback: at most one candidate, the
// single closest outline point across the whole snapshot. Unlike the near
// engine it never returns more than one result.
type nearestEngine struct {
	entities []entity.Entity
	stats    EngineStats
}

// NewNearestEngine snaps to the globally closest outline point.
func NewNearestEngine() Engine {
	return &nearestEngine{}
}

func (ne *nearestEngine) Feature() FeatureType {
	return Nearest
}

func (ne *nearestEngine) Initialize(entities []entity.Entity) {
	ne.entities = make([]entity.Entity, len(entities))
	copy(ne.entities, entities)
	ne.stats = EngineStats{IndexedPoints: len(ne.entities)}
}

func (ne *nearestEngine) FindCandidates(cursor geometry.Point2D, ctx *Context) []Candidate {
	ne.stats.Queries++
	radius := ctx.WorldRadius(Nearest)

	var best Candidate
	found := false
	for _, e := range ne.entities {
		if !ctx.usable(e) {
			continue
		}
		p, ok := e.ClosestPoint(cursor)
		if !ok {
			continue
		}
		c := newCandidate(Nearest, p, cursor, e.ID)
		if c.Distance > radius {
			continue
		}
		if !found || c.Distance < best.Distance {
			best = c
			found = true
		}
	}

	if !found {
		return nil
	}
	ne.stats.Candidates++
	return []Candidate{best}
}

func (ne *nearestEngine) Dispose() {
	ne.entities = nil
	ne.stats = EngineStats{}
}

func (ne *nearestEngine) Stats() EngineStats {
	return ne.stats
}
