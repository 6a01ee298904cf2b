package snap

import (
	"dxf-sketcher/internal/entity"
	"dxf-sketcher/pkg/geometry"
)

// centerEngine snaps to circle and arc centers. Circles are typically few
// relative to lines, so a direct scan beats maintaining an index.
type centerEngine struct {
	entities []entity.Entity
	stats    EngineStats
}

// NewCenterEngine snaps to circle and arc centers.
func NewCenterEngine() Engine {
	return &centerEngine{}
}

func (ce *centerEngine) Feature() FeatureType {
	return Center
}

func (ce *centerEngine) Initialize(entities []entity.Entity) {
	// Keep only the curved entities; everything else can never contribute.
	ce.entities = ce.entities[:0]
	for _, e := range entities {
		if e.Type == entity.TypeCircle || e.Type == entity.TypeArc {
			ce.entities = append(ce.entities, e)
		}
	}
	ce.stats = EngineStats{IndexedPoints: len(ce.entities)}
}

func (ce *centerEngine) FindCandidates(cursor geometry.Point2D, ctx *Context) []Candidate {
	ce.stats.Queries++
	radius := ctx.WorldRadius(Center)

	var candidates []Candidate
	for _, e := range ce.entities {
		if !ctx.usable(e) {
			continue
		}
		if cursor.Distance(e.Center) <= radius {
			candidates = append(candidates, newCandidate(Center, e.Center, cursor, e.ID))
		}
	}

	candidates = capCandidates(candidates, ctx.Settings)
	ce.stats.Candidates += len(candidates)
	return candidates
}

func (ce *centerEngine) Dispose() {
	ce.entities = nil
	ce.stats = EngineStats{}
}

func (ce *centerEngine) Stats() EngineStats {
	return ce.stats
}
