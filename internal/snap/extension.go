package snap

import (
	"dxf-sketcher/internal/entity"
	"dxf-sketcher/pkg/geometry"
)

// extensionEngine snaps onto the imaginary prolongation of a straight
// segment beyond its endpoints. Active only while a drawing operation
// supplies a reference point.
type extensionEngine struct {
	entities []entity.Entity
	stats    EngineStats
}

// NewExtensionEngine snaps to segment extensions beyond their endpoints.
func NewExtensionEngine() Engine {
	return &extensionEngine{}
}

func (ee *extensionEngine) Feature() FeatureType {
	return Extension
}

func (ee *extensionEngine) Initialize(entities []entity.Entity) {
	ee.entities = ee.entities[:0]
	for _, e := range entities {
		if e.Type == entity.TypeLine || e.Type == entity.TypePolyline {
			ee.entities = append(ee.entities, e)
		}
	}
	ee.stats = EngineStats{IndexedPoints: len(ee.entities)}
}

func (ee *extensionEngine) FindCandidates(cursor geometry.Point2D, ctx *Context) []Candidate {
	ee.stats.Queries++
	if ctx.Reference == nil {
		return nil
	}
	radius := ctx.WorldRadius(Extension)

	var candidates []Candidate
	for _, e := range ee.entities {
		if !ctx.usable(e) {
			continue
		}
		for _, seg := range e.Segments() {
			foot := geometry.PerpendicularFoot(cursor, seg.A, seg.B)
			t, ok := geometry.SegmentParam(foot, seg.A, seg.B)
			if !ok || (t >= 0 && t <= 1) {
				continue // on the segment proper; that's Near's territory
			}
			if cursor.Distance(foot) <= radius {
				candidates = append(candidates, newCandidate(Extension, foot, cursor, e.ID))
			}
		}
	}

	candidates = capCandidates(candidates, ctx.Settings)
	ee.stats.Candidates += len(candidates)
	return candidates
}

func (ee *extensionEngine) Dispose() {
	ee.entities = nil
	ee.stats = EngineStats{}
}

func (ee *extensionEngine) Stats() EngineStats {
	return ee.stats
}
