package snap

import (
	"dxf-sketcher/internal/entity"
	"dxf-sketcher/pkg/geometry"
)

// nearEngine is the broad fallback: one candidate per entity whose closest
// outline point lies within tolerance of the cursor.
type nearEngine struct {
	entities []entity.Entity
	stats    EngineStats
}

// NewNearEngine snaps to the closest point on any nearby entity outline.
func NewNearEngine() Engine {
	return &nearEngine{}
}

func (ne *nearEngine) Feature() FeatureType {
	return Near
}

func (ne *nearEngine) Initialize(entities []entity.Entity) {
	ne.entities = make([]entity.Entity, len(entities))
	copy(ne.entities, entities)
	ne.stats = EngineStats{IndexedPoints: len(ne.entities)}
}

func (ne *nearEngine) FindCandidates(cursor geometry.Point2D, ctx *Context) []Candidate {
	ne.stats.Queries++
	radius := ctx.WorldRadius(Near)

	var candidates []Candidate
	for _, e := range ne.entities {
		if !ctx.usable(e) {
			continue
		}
		p, ok := e.ClosestPoint(cursor)
		if !ok {
			continue
		}
		if cursor.Distance(p) <= radius {
			candidates = append(candidates, newCandidate(Near, p, cursor, e.ID))
		}
	}

	candidates = capCandidates(candidates, ctx.Settings)
	ne.stats.Candidates += len(candidates)
	return candidates
}

func (ne *nearEngine) Dispose() {
	ne.entities = nil
	ne.stats = EngineStats{}
}

func (ne *nearEngine) Stats() EngineStats {
	return ne.stats
}
