package snap

import (
	"dxf-sketcher/internal/entity"
	"dxf-sketcher/pkg/geometry"
)

// Snapper is the orchestrator: it queries the enabled engines in priority
// order and selects the single best snap point for a cursor position.
//
// All methods are synchronous call-and-return and must be used from one
// goroutine; FindSnapPoint is designed to run once per pointer-move event
// well inside a frame budget.
type Snapper struct {
	registry *Registry
	settings Settings
}

// New creates a Snapper with all engines constructed. Call Initialize
// before the first query.
func New(settings Settings) *Snapper {
	return &Snapper{
		registry: NewRegistry(&settings),
		settings: settings,
	}
}

// Initialize (re)builds every enabled engine against the entity snapshot.
// Call it whenever the scene signals that the snapshot changed.
func (s *Snapper) Initialize(entities []entity.Entity) {
	s.registry.InitializeAll(entities)
}

// ToggleFeature enables or disables one feature type at runtime.
func (s *Snapper) ToggleFeature(ft FeatureType, enabled bool, entities []entity.Entity) {
	s.settings.Enabled[ft] = enabled
	s.registry.Toggle(ft, enabled, entities)
}

// Settings returns the live settings. Tolerance edits take effect on the
// next query; enablement must go through ToggleFeature.
func (s *Snapper) Settings() *Settings {
	return &s.settings
}

// Dispose tears down all engines. The Snapper can be re-initialized
// afterwards; engine state is always cheaply reconstructible from the
// entity snapshot.
func (s *Snapper) Dispose() {
	s.registry.DisposeAll()
}

// Stats returns per-engine diagnostic counters for the enabled types.
func (s *Snapper) Stats() map[FeatureType]EngineStats {
	return s.registry.Stats()
}

// FindSnapPoint returns the best snap candidate for the cursor position,
// or false when no engine produced one.
//
// Engines run in fixed priority order. A candidate closer than the
// confident threshold short-circuits the remaining, lower-priority
// engines. Otherwise all candidates are accumulated and the winner is the
// lowest priority value, ties broken by smallest distance, further ties by
// registration order. The result is fully deterministic for identical
// inputs.
func (s *Snapper) FindSnapPoint(cursor geometry.Point2D, ctx *Context) (Candidate, bool) {
	if ctx == nil {
		ctx = &Context{}
	}
	if ctx.Settings == nil {
		ctx.Settings = &s.settings
	}
	confident := ctx.ConfidentRadius()

	var best Candidate
	found := false
	for _, ft := range AllFeatureTypes() {
		if !s.registry.IsEnabled(ft) || !ctx.Settings.IsEnabled(ft) {
			continue
		}

		candidates := s.registry.Engine(ft).FindCandidates(cursor, ctx)

		var engineBest Candidate
		engineFound := false
		for _, c := range candidates {
			if !engineFound || c.betterThan(engineBest) {
				engineBest = c
				engineFound = true
			}
		}
		if !engineFound {
			continue
		}

		if engineBest.Distance <= confident {
			// Exact hit: skip the remaining, lower-priority engines.
			return engineBest, true
		}
		if !found || engineBest.betterThan(best) {
			best = engineBest
			found = true
		}
	}

	return best, found
}
