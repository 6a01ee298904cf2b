package snap

import (
	"log"

	"dxf-sketcher/internal/entity"
	"dxf-sketcher/internal/spatial"
	"dxf-sketcher/pkg/geometry"
)

// indexedEngine is the shared implementation for the feature types whose
// candidates are fixed points extracted once per snapshot: Endpoint, Node,
// Midpoint and Insertion. Initialize buckets the extracted points into a
// dedicated grid; FindCandidates is a single radius query against it.
type indexedEngine struct {
	feature FeatureType
	extract func(e entity.Entity) []geometry.Point2D
	index   *spatial.Grid
	stats   EngineStats
}

func newIndexedEngine(ft FeatureType, extract func(e entity.Entity) []geometry.Point2D) *indexedEngine {
	return &indexedEngine{feature: ft, extract: extract}
}

// NewEndpointEngine snaps to line ends, open-polyline ends and arc ends.
func NewEndpointEngine() Engine {
	return newIndexedEngine(Endpoint, func(e entity.Entity) []geometry.Point2D {
		return e.Endpoints()
	})
}

// NewNodeEngine snaps to polyline vertices.
func NewNodeEngine() Engine {
	return newIndexedEngine(Node, func(e entity.Entity) []geometry.Point2D {
		return e.Nodes()
	})
}

// NewMidpointEngine snaps to segment midpoints and arc mid-sweep points.
func NewMidpointEngine() Engine {
	return newIndexedEngine(Midpoint, func(e entity.Entity) []geometry.Point2D {
		return e.Midpoints()
	})
}

// NewInsertionEngine snaps to entity origins.
func NewInsertionEngine() Engine {
	return newIndexedEngine(Insertion, func(e entity.Entity) []geometry.Point2D {
		p, ok := e.InsertionPoint()
		if !ok {
			return nil
		}
		return []geometry.Point2D{p}
	})
}

func (ie *indexedEngine) Feature() FeatureType {
	return ie.feature
}

func (ie *indexedEngine) Initialize(entities []entity.Entity) {
	ie.index = spatial.NewGrid(0)
	skipped := 0
	for _, e := range entities {
		if !e.Visible {
			continue
		}
		if !e.Valid() {
			skipped++
			continue
		}
		for _, p := range ie.extract(e) {
			ie.index.Insert(spatial.Tagged{Point: p, EntityID: e.ID, Label: ie.feature.String()})
		}
	}
	if skipped > 0 {
		log.Printf("snap: %s: skipped %d entities with invalid geometry", ie.feature, skipped)
	}
	ie.stats = EngineStats{IndexedPoints: ie.index.Len()}
}

func (ie *indexedEngine) FindCandidates(cursor geometry.Point2D, ctx *Context) []Candidate {
	ie.stats.Queries++
	if ie.index == nil {
		return nil
	}

	var candidates []Candidate
	for _, m := range ie.index.Query(cursor, ctx.WorldRadius(ie.feature)) {
		if m.EntityID == ctx.ExcludeID && m.EntityID != "" {
			continue
		}
		candidates = append(candidates, newCandidate(ie.feature, m.Point, cursor, m.EntityID))
	}

	candidates = capCandidates(candidates, ctx.Settings)
	ie.stats.Candidates += len(candidates)
	return candidates
}

func (ie *indexedEngine) Dispose() {
	ie.index = nil
	ie.stats = EngineStats{}
}

func (ie *indexedEngine) Stats() EngineStats {
	return ie.stats
}
