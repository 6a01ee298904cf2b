package snap

import (
	"math"

	"dxf-sketcher/internal/entity"
	"dxf-sketcher/pkg/geometry"
)

// quadrantAngles are the four cardinal directions, counter-clockwise from
// the positive X axis.
var quadrantAngles = [4]float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2}

// quadrantEngine snaps to the axis-aligned cardinal points of circles and
// arcs. Direct scan, same as the center engine.
type quadrantEngine struct {
	entities []entity.Entity
	stats    EngineStats
}

// NewQuadrantEngine snaps to the cardinal points of circles and arcs.
func NewQuadrantEngine() Engine {
	return &quadrantEngine{}
}

func (qe *quadrantEngine) Feature() FeatureType {
	return Quadrant
}

func (qe *quadrantEngine) Initialize(entities []entity.Entity) {
	qe.entities = qe.entities[:0]
	for _, e := range entities {
		if e.Type == entity.TypeCircle || e.Type == entity.TypeArc {
			qe.entities = append(qe.entities, e)
		}
	}
	qe.stats = EngineStats{IndexedPoints: len(qe.entities) * len(quadrantAngles)}
}

func (qe *quadrantEngine) FindCandidates(cursor geometry.Point2D, ctx *Context) []Candidate {
	qe.stats.Queries++
	radius := ctx.WorldRadius(Quadrant)

	var candidates []Candidate
	for _, e := range qe.entities {
		if !ctx.usable(e) {
			continue
		}
		for _, angle := range quadrantAngles {
			if e.Type == entity.TypeArc && !geometry.AngleOnArc(angle, e.StartAngle, e.EndAngle) {
				continue
			}
			p := geometry.PointOnCircle(e.Center, e.Radius, angle)
			if cursor.Distance(p) <= radius {
				candidates = append(candidates, newCandidate(Quadrant, p, cursor, e.ID))
			}
		}
	}

	candidates = capCandidates(candidates, ctx.Settings)
	qe.stats.Candidates += len(candidates)
	return candidates
}

func (qe *quadrantEngine) Dispose() {
	qe.entities = nil
	qe.stats = EngineStats{}
}

func (qe *quadrantEngine) Stats() EngineStats {
	return qe.stats
}
