package snap

import (
	"dxf-sketcher/internal/entity"
	"dxf-sketcher/pkg/geometry"
)

// parallelEngine snaps the cursor onto the line through the reference
// point that runs parallel to an existing straight entity. Emits nothing
// without a reference.
type parallelEngine struct {
	// directions are the unit directions of the straight entities in the
	// snapshot, precomputed once per snapshot change.
	directions []parallelDirection
	stats      EngineStats
}

type parallelDirection struct {
	dir      geometry.Point2D
	entityID entity.ID
	visible  bool
}

// NewParallelEngine snaps parallel to existing lines and polylines.
func NewParallelEngine() Engine {
	return &parallelEngine{}
}

func (pe *parallelEngine) Feature() FeatureType {
	return Parallel
}

func (pe *parallelEngine) Initialize(entities []entity.Entity) {
	pe.directions = pe.directions[:0]
	for _, e := range entities {
		if !e.Valid() {
			continue
		}
		switch e.Type {
		case entity.TypeLine:
			dir := e.End.Sub(e.Start).Normalized()
			if dir != (geometry.Point2D{}) {
				pe.directions = append(pe.directions, parallelDirection{dir: dir, entityID: e.ID, visible: e.Visible})
			}
		case entity.TypePolyline:
			// A polyline contributes its dominant least-squares direction:
			// "parallel to a polyline" means parallel to its overall run,
			// not to each jittery segment.
			if _, dir, err := geometry.FitLine(e.Vertices); err == nil {
				pe.directions = append(pe.directions, parallelDirection{dir: dir, entityID: e.ID, visible: e.Visible})
			}
		}
	}
	pe.stats = EngineStats{IndexedPoints: len(pe.directions)}
}

func (pe *parallelEngine) FindCandidates(cursor geometry.Point2D, ctx *Context) []Candidate {
	pe.stats.Queries++
	if ctx.Reference == nil {
		return nil
	}
	ref := ctx.Reference.Point
	radius := ctx.WorldRadius(Parallel)

	var candidates []Candidate
	for _, d := range pe.directions {
		if !d.visible || (d.entityID == ctx.ExcludeID && d.entityID != "") {
			continue
		}

		// Project the cursor onto the parallel line through the reference.
		foot := geometry.PerpendicularFoot(cursor, ref, ref.Add(d.dir))
		if foot.Distance(ref) < geometry.Epsilon {
			continue // cursor over the reference itself: direction undefined
		}
		if cursor.Distance(foot) <= radius {
			candidates = append(candidates, newCandidate(Parallel, foot, cursor, d.entityID))
		}
	}

	candidates = capCandidates(candidates, ctx.Settings)
	pe.stats.Candidates += len(candidates)
	return candidates
}

func (pe *parallelEngine) Dispose() {
	pe.directions = nil
	pe.stats = EngineStats{}
}

func (pe *parallelEngine) Stats() EngineStats {
	return pe.stats
}
