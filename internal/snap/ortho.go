package snap

import (
	"dxf-sketcher/internal/entity"
	"dxf-sketcher/pkg/geometry"
)

// orthoEngine constrains the cursor to a horizontal or vertical line
// through the reference point. It needs no entities at all, only the
// reference.
type orthoEngine struct {
	stats EngineStats
}

// NewOrthoEngine snaps to axis-aligned directions from the drawing
// reference point.
func NewOrthoEngine() Engine {
	return &orthoEngine{}
}

func (oe *orthoEngine) Feature() FeatureType {
	return Ortho
}

func (oe *orthoEngine) Initialize(entities []entity.Entity) {
	oe.stats = EngineStats{}
}

func (oe *orthoEngine) FindCandidates(cursor geometry.Point2D, ctx *Context) []Candidate {
	oe.stats.Queries++
	if ctx.Reference == nil {
		return nil
	}
	ref := ctx.Reference.Point
	radius := ctx.WorldRadius(Ortho)

	// Horizontal and vertical projections of the cursor through the
	// reference point.
	var candidates []Candidate
	for _, p := range []geometry.Point2D{
		{X: cursor.X, Y: ref.Y},
		{X: ref.X, Y: cursor.Y},
	} {
		if p.Distance(ref) < geometry.Epsilon {
			continue // cursor on top of the reference: no direction yet
		}
		if cursor.Distance(p) <= radius {
			candidates = append(candidates, newCandidate(Ortho, p, cursor, ""))
		}
	}

	candidates = capCandidates(candidates, ctx.Settings)
	oe.stats.Candidates += len(candidates)
	return candidates
}

func (oe *orthoEngine) Dispose() {
	oe.stats = EngineStats{}
}

func (oe *orthoEngine) Stats() EngineStats {
	return oe.stats
}
