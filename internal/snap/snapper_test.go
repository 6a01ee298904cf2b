package snap

import (
	"math"
	"testing"

	"dxf-sketcher/internal/entity"
	"dxf-sketcher/pkg/geometry"
)

func newTestSnapper(entities []entity.Entity, settings Settings) *Snapper {
	s := New(settings)
	s.Initialize(entities)
	return s
}

func TestFindSnapPointScenarios(t *testing.T) {
	tests := []struct {
		name      string
		entities  []entity.Entity
		settings  func() Settings
		cursor    geometry.Point2D
		excludeID entity.ID
		wantFound bool
		wantFeat  FeatureType
		wantPoint geometry.Point2D
	}{
		{
			name:     "endpoint wins near a line end",
			entities: []entity.Entity{entity.NewLine("l1", pt(0, 0), pt(10, 0))},
			settings: func() Settings {
				s := DefaultSettings()
				s.PixelTolerance = 1
				return s
			},
			cursor:    pt(0.2, 0.3),
			wantFound: true,
			wantFeat:  Endpoint,
			wantPoint: pt(0, 0),
		},
		{
			name:      "midpoint in the middle of a line",
			entities:  []entity.Entity{entity.NewLine("l1", pt(0, 0), pt(10, 0))},
			settings:  DefaultSettings,
			cursor:    pt(5, 0.05),
			wantFound: true,
			wantFeat:  Midpoint,
			wantPoint: pt(5, 0),
		},
		{
			name:      "quadrant on a circle rim",
			entities:  []entity.Entity{entity.NewCircle("c1", pt(0, 0), 5)},
			settings:  DefaultSettings,
			cursor:    pt(5, 0.1),
			wantFound: true,
			wantFeat:  Quadrant,
			wantPoint: pt(5, 0),
		},
		{
			name: "intersection of two crossing lines",
			entities: []entity.Entity{
				entity.NewLine("a", pt(1, 1), pt(7, 7)),
				entity.NewLine("b", pt(0, 6), pt(4, 2)),
			},
			settings: func() Settings {
				s := DefaultSettings()
				s.PixelTolerance = 0.2
				return s
			},
			cursor:    pt(3.05, 2.98),
			wantFound: true,
			wantFeat:  Intersection,
			wantPoint: pt(3, 3),
		},
		{
			name:      "excluded entity yields nothing",
			entities:  []entity.Entity{entity.NewLine("l1", pt(0, 0), pt(10, 0))},
			settings:  DefaultSettings,
			cursor:    pt(0, 0),
			excludeID: "l1",
			wantFound: false,
		},
		{
			name:      "empty scene yields nothing",
			entities:  nil,
			settings:  DefaultSettings,
			cursor:    pt(0, 0),
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSnapper(tt.entities, tt.settings())
			ctx := &Context{
				Entities:  tt.entities,
				ExcludeID: tt.excludeID,
				ZoomScale: 1,
			}

			got, found := s.FindSnapPoint(tt.cursor, ctx)
			if found != tt.wantFound {
				t.Fatalf("found = %v, want %v (candidate %+v)", found, tt.wantFound, got)
			}
			if !found {
				return
			}
			if got.Feature != tt.wantFeat {
				t.Errorf("Feature = %v, want %v", got.Feature, tt.wantFeat)
			}
			if got.Point.Distance(tt.wantPoint) > 1e-6 {
				t.Errorf("Point = %v, want %v", got.Point, tt.wantPoint)
			}
			if want := tt.cursor.Distance(tt.wantPoint); math.Abs(got.Distance-want) > 1e-9 {
				t.Errorf("Distance = %v, want %v", got.Distance, want)
			}
		})
	}
}

func TestFindSnapPointPriorityBreaksDistanceTie(t *testing.T) {
	// Endpoint at (0,0) and circle center at (0,6) are both 3 world units
	// away from the cursor. Neither is inside the confident radius, so the
	// winner must come from accumulation: the endpoint, because its
	// feature ranks higher.
	entities := []entity.Entity{
		entity.NewLine("l", pt(0, 0), pt(10, 0)),
		entity.NewCircle("c", pt(0, 6), 10),
	}
	s := newTestSnapper(entities, DefaultSettings())
	ctx := &Context{Entities: entities, ZoomScale: 1}

	got, found := s.FindSnapPoint(pt(0, 3), ctx)
	if !found {
		t.Fatal("no snap point found")
	}
	if got.Feature != Endpoint || got.Point != pt(0, 0) {
		t.Errorf("got %v at %v, want endpoint at (0,0)", got.Feature, got.Point)
	}
}

func TestFindSnapPointRegistrationOrderBreaksFullTie(t *testing.T) {
	// Two endpoints of the same feature type, exactly equidistant from the
	// cursor. The entity registered first must win, every time.
	entities := []entity.Entity{
		entity.NewLine("a", pt(0, 0), pt(0, -10)),
		entity.NewLine("b", pt(6, 0), pt(6, -10)),
	}
	s := newTestSnapper(entities, DefaultSettings())
	ctx := &Context{Entities: entities, ZoomScale: 1}

	for i := 0; i < 10; i++ {
		got, found := s.FindSnapPoint(pt(3, 0), ctx)
		if !found {
			t.Fatal("no snap point found")
		}
		if got.EntityID != "a" || got.Point != pt(0, 0) {
			t.Fatalf("run %d: got entity %v at %v, want a at (0,0)", i, got.EntityID, got.Point)
		}
	}
}

func TestFindSnapPointZoomScalesTolerance(t *testing.T) {
	// 1.5 world units off the endpoint with a 1 px tolerance: a miss at
	// 1:1 zoom, a hit when zoomed out to 0.5 (world radius doubles).
	entities := []entity.Entity{entity.NewLine("l", pt(0, 0), pt(10, 0))}
	settings := DefaultSettings()
	settings.PixelTolerance = 1
	s := newTestSnapper(entities, settings)
	cursor := pt(0, 1.5)

	if _, found := s.FindSnapPoint(cursor, &Context{Entities: entities, ZoomScale: 1}); found {
		t.Error("found a snap point at zoom 1, want none")
	}

	got, found := s.FindSnapPoint(cursor, &Context{Entities: entities, ZoomScale: 0.5})
	if !found {
		t.Fatal("no snap point at zoom 0.5, want endpoint")
	}
	if got.Feature != Endpoint || got.Point != pt(0, 0) {
		t.Errorf("got %v at %v, want endpoint at (0,0)", got.Feature, got.Point)
	}
}

func TestFindSnapPointIgnoresInvisible(t *testing.T) {
	line := entity.NewLine("l", pt(0, 0), pt(10, 0))
	line.Visible = false
	entities := []entity.Entity{line}
	s := newTestSnapper(entities, DefaultSettings())

	if got, found := s.FindSnapPoint(pt(0, 0), &Context{Entities: entities, ZoomScale: 1}); found {
		t.Errorf("got %+v from an invisible entity, want none", got)
	}
}

func TestToggleFeature(t *testing.T) {
	entities := []entity.Entity{entity.NewLine("l", pt(0, 0), pt(10, 0))}
	settings := DefaultSettings()
	for _, ft := range AllFeatureTypes() {
		settings.Enabled[ft] = ft == Endpoint
	}
	s := newTestSnapper(entities, settings)
	ctx := &Context{Entities: entities, ZoomScale: 1}

	if _, found := s.FindSnapPoint(pt(0, 0.1), ctx); !found {
		t.Fatal("no endpoint snap before toggle")
	}

	s.ToggleFeature(Endpoint, false, entities)
	if got, found := s.FindSnapPoint(pt(0, 0.1), ctx); found {
		t.Fatalf("got %+v after disabling the last engine, want none", got)
	}

	s.ToggleFeature(Endpoint, true, entities)
	if _, found := s.FindSnapPoint(pt(0, 0.1), ctx); !found {
		t.Fatal("no endpoint snap after re-enabling")
	}
}

func TestNearFallback(t *testing.T) {
	entities := []entity.Entity{entity.NewLine("l", pt(0, 0), pt(10, 0))}
	settings := DefaultSettings()
	for _, ft := range AllFeatureTypes() {
		settings.Enabled[ft] = ft == Near
	}
	s := newTestSnapper(entities, settings)

	got, found := s.FindSnapPoint(pt(4, 1), &Context{Entities: entities, ZoomScale: 1})
	if !found {
		t.Fatal("no near snap found")
	}
	if got.Feature != Near || got.Point.Distance(pt(4, 0)) > 1e-9 {
		t.Errorf("got %v at %v, want near at (4,0)", got.Feature, got.Point)
	}
}

func TestNearestFallback(t *testing.T) {
	entities := []entity.Entity{
		entity.NewLine("l1", pt(0, 0), pt(10, 0)),
		entity.NewLine("l2", pt(0, 3), pt(10, 3)),
	}
	settings := DefaultSettings()
	for _, ft := range AllFeatureTypes() {
		settings.Enabled[ft] = ft == Nearest
	}
	s := newTestSnapper(entities, settings)

	got, found := s.FindSnapPoint(pt(4, 1), &Context{Entities: entities, ZoomScale: 1})
	if !found {
		t.Fatal("no nearest snap found")
	}
	if got.Feature != Nearest || got.EntityID != "l1" {
		t.Errorf("got %v on %v, want nearest on l1", got.Feature, got.EntityID)
	}
}

func TestFindSnapPointNilContext(t *testing.T) {
	s := newTestSnapper(nil, DefaultSettings())
	if got, found := s.FindSnapPoint(pt(0, 0), nil); found {
		t.Errorf("got %+v from nil context, want none", got)
	}
}

func TestSnapperStats(t *testing.T) {
	entities := []entity.Entity{
		entity.NewLine("l", pt(0, 0), pt(10, 0)),
		entity.NewCircle("c", pt(50, 50), 5),
	}
	s := newTestSnapper(entities, DefaultSettings())
	ctx := &Context{Entities: entities, ZoomScale: 1}
	s.FindSnapPoint(pt(0, 0.1), ctx)

	stats := s.Stats()
	ep, ok := stats[Endpoint]
	if !ok {
		t.Fatal("no stats for the endpoint engine")
	}
	if ep.IndexedPoints != 2 {
		t.Errorf("IndexedPoints = %d, want 2 line ends", ep.IndexedPoints)
	}
	if ep.Queries != 1 {
		t.Errorf("Queries = %d, want 1", ep.Queries)
	}
	if _, ok := stats[Near]; ok {
		t.Error("stats reported for the disabled near engine")
	}
}

func TestDisposeAndReinitialize(t *testing.T) {
	entities := []entity.Entity{entity.NewLine("l", pt(0, 0), pt(10, 0))}
	s := newTestSnapper(entities, DefaultSettings())
	ctx := &Context{Entities: entities, ZoomScale: 1}

	s.Dispose()
	if got, found := s.FindSnapPoint(pt(0, 0.1), ctx); found {
		t.Fatalf("got %+v after Dispose, want none", got)
	}

	s.Initialize(entities)
	if _, found := s.FindSnapPoint(pt(0, 0.1), ctx); !found {
		t.Fatal("no snap after re-initialization")
	}
}
