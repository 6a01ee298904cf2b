package snap

import (
	"dxf-sketcher/internal/entity"
	"dxf-sketcher/pkg/geometry"
)

// coarseFilterFactor widens the fine snap tolerance into the radius used
// to pre-select entities whose bounds are near the cursor. Pairs are only
// formed among that subset, which bounds the quadratic cost.
const coarseFilterFactor = 20.0

// intersectionEngine snaps to the crossing points of entity outlines:
// segment x segment, segment x circle/arc and circle x circle. Computing
// every pairwise intersection up front would be O(n²) on snapshot change
// and wasted work, so intersections are computed lazily per query against
// a spatially filtered subset.
type intersectionEngine struct {
	entities []entity.Entity
	stats    EngineStats
}

// NewIntersectionEngine snaps to crossing points of entity pairs.
func NewIntersectionEngine() Engine {
	return &intersectionEngine{}
}

func (xe *intersectionEngine) Feature() FeatureType {
	return Intersection
}

func (xe *intersectionEngine) Initialize(entities []entity.Entity) {
	xe.entities = make([]entity.Entity, len(entities))
	copy(xe.entities, entities)
	xe.stats = EngineStats{IndexedPoints: len(xe.entities)}
}

func (xe *intersectionEngine) FindCandidates(cursor geometry.Point2D, ctx *Context) []Candidate {
	xe.stats.Queries++
	fine := ctx.WorldRadius(Intersection)
	coarse := fine * coarseFilterFactor

	// Coarse spatial filter on entity bounds.
	var nearby []entity.Entity
	for _, e := range xe.entities {
		if !ctx.usable(e) {
			continue
		}
		if e.Bounds().DistanceTo(cursor) <= coarse {
			nearby = append(nearby, e)
		}
	}

	var candidates []Candidate
	for i := 0; i < len(nearby); i++ {
		for j := i + 1; j < len(nearby); j++ {
			for _, p := range intersectPair(nearby[i], nearby[j]) {
				if cursor.Distance(p) <= fine {
					// An intersection belongs to two entities, so it is
					// attributed to neither.
					candidates = append(candidates, newCandidate(Intersection, p, cursor, ""))
				}
			}
		}
	}

	candidates = capCandidates(candidates, ctx.Settings)
	xe.stats.Candidates += len(candidates)
	return candidates
}

func (xe *intersectionEngine) Dispose() {
	xe.entities = nil
	xe.stats = EngineStats{}
}

func (xe *intersectionEngine) Stats() EngineStats {
	return xe.stats
}

// intersectPair computes the exact crossing points of two entities.
func intersectPair(a, b entity.Entity) []geometry.Point2D {
	aCurved := a.Type == entity.TypeCircle || a.Type == entity.TypeArc
	bCurved := b.Type == entity.TypeCircle || b.Type == entity.TypeArc

	switch {
	case !aCurved && !bCurved:
		var points []geometry.Point2D
		for _, sa := range a.Segments() {
			for _, sb := range b.Segments() {
				if p, ok := geometry.SegmentIntersection(sa.A, sa.B, sb.A, sb.B); ok {
					points = append(points, p)
				}
			}
		}
		return points

	case aCurved && bCurved:
		var points []geometry.Point2D
		for _, p := range geometry.CircleCircleIntersections(a.Center, a.Radius, b.Center, b.Radius) {
			if onCurve(a, p) && onCurve(b, p) {
				points = append(points, p)
			}
		}
		return points

	case aCurved:
		return segmentsCurveIntersections(b, a)

	default:
		return segmentsCurveIntersections(a, b)
	}
}

// segmentsCurveIntersections crosses the straight entity's segments with
// the curved entity's perimeter.
func segmentsCurveIntersections(straight, curved entity.Entity) []geometry.Point2D {
	var points []geometry.Point2D
	for _, seg := range straight.Segments() {
		for _, p := range geometry.SegmentCircleIntersections(seg.A, seg.B, curved.Center, curved.Radius) {
			if onCurve(curved, p) {
				points = append(points, p)
			}
		}
	}
	return points
}

// onCurve reports whether a perimeter point lies on the entity's actual
// sweep (always true for full circles).
func onCurve(e entity.Entity, p geometry.Point2D) bool {
	if e.Type != entity.TypeArc {
		return true
	}
	angle := angleAround(e.Center, p)
	return geometry.AngleOnArc(angle, e.StartAngle, e.EndAngle)
}
