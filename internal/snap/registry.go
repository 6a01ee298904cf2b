package snap

import (
	"log"

	"dxf-sketcher/internal/entity"
)

// Registry owns one engine instance per feature type, constructed eagerly
// at startup and dispatched through an enum-indexed array rather than a
// map lookup on the hot path.
type Registry struct {
	engines [numFeatureTypes]Engine
	enabled [numFeatureTypes]bool
}

// NewRegistry constructs all engines and enables the types the settings
// enable. Engines are not initialized until entities arrive.
func NewRegistry(settings *Settings) *Registry {
	r := &Registry{}
	r.engines = [numFeatureTypes]Engine{
		Endpoint:      NewEndpointEngine(),
		Node:          NewNodeEngine(),
		Midpoint:      NewMidpointEngine(),
		Center:        NewCenterEngine(),
		Quadrant:      NewQuadrantEngine(),
		Insertion:     NewInsertionEngine(),
		Intersection:  NewIntersectionEngine(),
		Perpendicular: NewPerpendicularEngine(),
		Tangent:       NewTangentEngine(),
		Parallel:      NewParallelEngine(),
		Extension:     NewExtensionEngine(),
		Ortho:         NewOrthoEngine(),
		Near:          NewNearEngine(),
		Nearest:       NewNearestEngine(),
	}
	for _, ft := range AllFeatureTypes() {
		r.enabled[ft] = settings.IsEnabled(ft)
	}
	return r
}

// Engine returns the engine for the feature type, or nil for an invalid
// type.
func (r *Registry) Engine(ft FeatureType) Engine {
	if ft < 0 || ft >= numFeatureTypes {
		return nil
	}
	return r.engines[ft]
}

// IsEnabled reports whether the feature type's engine is active.
func (r *Registry) IsEnabled(ft FeatureType) bool {
	if ft < 0 || ft >= numFeatureTypes {
		return false
	}
	return r.enabled[ft]
}

// Toggle enables or disables one feature type at runtime, initializing or
// disposing its engine. Toggling to the current state is a no-op.
func (r *Registry) Toggle(ft FeatureType, enabled bool, entities []entity.Entity) {
	if ft < 0 || ft >= numFeatureTypes || r.enabled[ft] == enabled {
		return
	}
	r.enabled[ft] = enabled
	if enabled {
		r.engines[ft].Initialize(entities)
	} else {
		r.engines[ft].Dispose()
	}
	log.Printf("snap: %s engine %s", ft, map[bool]string{true: "enabled", false: "disabled"}[enabled])
}

// InitializeAll re-initializes every enabled engine against a new entity
// snapshot. Called on snapshot change, never per cursor move.
func (r *Registry) InitializeAll(entities []entity.Entity) {
	for _, ft := range AllFeatureTypes() {
		if r.enabled[ft] {
			r.engines[ft].Initialize(entities)
		}
	}
}

// DisposeAll disposes every enabled engine, e.g. on scene teardown.
func (r *Registry) DisposeAll() {
	for _, ft := range AllFeatureTypes() {
		if r.enabled[ft] {
			r.engines[ft].Dispose()
		}
	}
}

// Stats returns the diagnostic counters of every enabled engine.
func (r *Registry) Stats() map[FeatureType]EngineStats {
	stats := make(map[FeatureType]EngineStats)
	for _, ft := range AllFeatureTypes() {
		if r.enabled[ft] {
			stats[ft] = r.engines[ft].Stats()
		}
	}
	return stats
}
