package snap

import (
	"math"

	"dxf-sketcher/internal/entity"
	"dxf-sketcher/pkg/geometry"
)

// Engine finds snap candidates for exactly one feature type.
//
// Initialize is called once per entity-snapshot change, never per cursor
// move; FindCandidates runs on every pointer-move event and must stay
// cheap. Dispose releases any per-engine state; a disposed engine may be
// re-initialized later.
type Engine interface {
	Feature() FeatureType
	Initialize(entities []entity.Entity)
	FindCandidates(cursor geometry.Point2D, ctx *Context) []Candidate
	Dispose()
	Stats() EngineStats
}

// EngineStats are diagnostic counters exposed for tuning and tests.
type EngineStats struct {
	IndexedPoints int `json:"indexed_points"`
	Queries       int `json:"queries"`
	Candidates    int `json:"candidates"`
}

// angleAround returns the angle of p as seen from center, in radians
// counter-clockwise from the positive X axis.
func angleAround(center, p geometry.Point2D) float64 {
	return math.Atan2(p.Y-center.Y, p.X-center.X)
}

// capCandidates truncates a candidate list to the settings'
// MaxCandidates. A performance cap, not a correctness cap: candidates are
// produced nearest-first wherever ordering matters.
func capCandidates(candidates []Candidate, s *Settings) []Candidate {
	if s.MaxCandidates > 0 && len(candidates) > s.MaxCandidates {
		return candidates[:s.MaxCandidates]
	}
	return candidates
}
