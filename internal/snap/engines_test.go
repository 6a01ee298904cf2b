package snap

import (
	"fmt"
	"math"
	"testing"

	"dxf-sketcher/internal/entity"
	"dxf-sketcher/pkg/geometry"
)

func pt(x, y float64) geometry.Point2D { return geometry.Point2D{X: x, Y: y} }

// testContext builds a query context at 1:1 zoom so pixel tolerances equal
// world tolerances.
func testContext(entities []entity.Entity, settings *Settings) *Context {
	return &Context{
		Entities:  entities,
		ZoomScale: 1,
		Settings:  settings,
	}
}

func allEnabledSettings() Settings {
	s := DefaultSettings()
	for _, ft := range AllFeatureTypes() {
		s.Enabled[ft] = true
	}
	return s
}

func initEngine(e Engine, entities []entity.Entity) Engine {
	e.Initialize(entities)
	return e
}

func TestEndpointEngine(t *testing.T) {
	entities := []entity.Entity{
		entity.NewLine("l1", pt(0, 0), pt(10, 0)),
		entity.NewCircle("c1", pt(50, 50), 5),
	}
	settings := allEnabledSettings()
	settings.PixelTolerance = 1
	ctx := testContext(entities, &settings)
	eng := initEngine(NewEndpointEngine(), entities)

	got := eng.FindCandidates(pt(0.2, 0.3), ctx)
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	c := got[0]
	if c.Point != pt(0, 0) || c.Feature != Endpoint || c.EntityID != "l1" {
		t.Errorf("candidate = %+v", c)
	}
	if math.Abs(c.Distance-math.Sqrt(0.2*0.2+0.3*0.3)) > 1e-9 {
		t.Errorf("Distance = %v, want ≈0.36", c.Distance)
	}
}

func TestEndpointEngineSkipsInvalidGeometry(t *testing.T) {
	entities := []entity.Entity{
		entity.NewCircle("bad", pt(0, 0), 0), // zero radius
		entity.NewLine("ok", pt(0, 0), pt(1, 0)),
	}
	settings := allEnabledSettings()
	ctx := testContext(entities, &settings)
	eng := initEngine(NewEndpointEngine(), entities)

	got := eng.FindCandidates(pt(0, 0), ctx)
	for _, c := range got {
		if c.EntityID == "bad" {
			t.Errorf("candidate from invalid entity: %+v", c)
		}
	}
	if len(got) == 0 {
		t.Error("valid entity produced no candidates")
	}
}

func TestNodeEngine(t *testing.T) {
	entities := []entity.Entity{
		entity.NewPolyline("p1", []geometry.Point2D{pt(0, 0), pt(5, 0), pt(5, 5)}, false),
		entity.NewLine("l1", pt(100, 0), pt(110, 0)),
	}
	settings := allEnabledSettings()
	settings.PixelTolerance = 1
	ctx := testContext(entities, &settings)
	eng := initEngine(NewNodeEngine(), entities)

	got := eng.FindCandidates(pt(5.1, 0.1), ctx)
	if len(got) != 1 || got[0].Point != pt(5, 0) {
		t.Fatalf("candidates = %+v, want single node at (5,0)", got)
	}
}

func TestMidpointEngine(t *testing.T) {
	entities := []entity.Entity{entity.NewLine("l1", pt(0, 0), pt(10, 0))}
	settings := allEnabledSettings()
	ctx := testContext(entities, &settings)
	eng := initEngine(NewMidpointEngine(), entities)

	got := eng.FindCandidates(pt(5, 0.05), ctx)
	if len(got) != 1 || got[0].Point != pt(5, 0) || got[0].Feature != Midpoint {
		t.Fatalf("candidates = %+v, want midpoint (5,0)", got)
	}
}

func TestInsertionEngine(t *testing.T) {
	entities := []entity.Entity{
		entity.NewCircle("c1", pt(3, 3), 20),
		entity.NewPolyline("p1", []geometry.Point2D{pt(-40, 0), pt(-90, 1)}, false),
	}
	settings := allEnabledSettings()
	ctx := testContext(entities, &settings)
	eng := initEngine(NewInsertionEngine(), entities)

	got := eng.FindCandidates(pt(3.2, 3.1), ctx)
	if len(got) != 1 || got[0].EntityID != "c1" || got[0].Point != pt(3, 3) {
		t.Fatalf("candidates = %+v, want circle center insertion", got)
	}
}

func TestCenterEngine(t *testing.T) {
	entities := []entity.Entity{
		entity.NewCircle("c1", pt(0, 0), 5),
		entity.NewArc("a1", pt(20, 0), 3, 0, math.Pi),
		entity.NewLine("l1", pt(0, 0), pt(1, 1)), // lines have no center
	}
	settings := allEnabledSettings()
	ctx := testContext(entities, &settings)
	eng := initEngine(NewCenterEngine(), entities)

	got := eng.FindCandidates(pt(0.5, 0.5), ctx)
	if len(got) != 1 || got[0].EntityID != "c1" || got[0].Feature != Center {
		t.Fatalf("candidates = %+v, want circle center", got)
	}
}

func TestQuadrantEngineExactness(t *testing.T) {
	// A circle must yield exactly 4 quadrant points, each at distance r
	// from the center and axis-aligned.
	center := pt(2, 3)
	r := 5.0
	entities := []entity.Entity{entity.NewCircle("c1", center, r)}
	settings := allEnabledSettings()
	settings.PixelTolerance = 100 // catch all four from the center
	ctx := testContext(entities, &settings)
	eng := initEngine(NewQuadrantEngine(), entities)

	got := eng.FindCandidates(center, ctx)
	if len(got) != 4 {
		t.Fatalf("got %d quadrant candidates, want 4", len(got))
	}
	for _, c := range got {
		if d := c.Point.Distance(center); math.Abs(d-r) > 1e-9 {
			t.Errorf("quadrant point %v at distance %v from center, want %v", c.Point, d, r)
		}
		dx := math.Abs(c.Point.X - center.X)
		dy := math.Abs(c.Point.Y - center.Y)
		if dx > 1e-9 && dy > 1e-9 {
			t.Errorf("quadrant point %v is not axis-aligned with center %v", c.Point, center)
		}
	}
}

func TestQuadrantEngineArcSweep(t *testing.T) {
	// Quarter arc from 0 to π/2 exposes only the two cardinal points on
	// its sweep.
	entities := []entity.Entity{entity.NewArc("a1", pt(0, 0), 5, 0, math.Pi/2)}
	settings := allEnabledSettings()
	settings.PixelTolerance = 100
	ctx := testContext(entities, &settings)
	eng := initEngine(NewQuadrantEngine(), entities)

	got := eng.FindCandidates(pt(0, 0), ctx)
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2 (east and north)", len(got))
	}
}

func TestIntersectionEngine(t *testing.T) {
	tests := []struct {
		name     string
		entities []entity.Entity
		cursor   geometry.Point2D
		want     geometry.Point2D
	}{
		{
			"segment x segment",
			[]entity.Entity{
				entity.NewLine("a", pt(1, 1), pt(7, 7)),
				entity.NewLine("b", pt(0, 6), pt(4, 2)),
			},
			pt(3.05, 2.98),
			pt(3, 3),
		},
		{
			"segment x circle",
			[]entity.Entity{
				entity.NewLine("a", pt(-10, 0), pt(10, 0)),
				entity.NewCircle("c", pt(0, 0), 5),
			},
			pt(5.1, 0.1),
			pt(5, 0),
		},
		{
			"circle x circle",
			[]entity.Entity{
				entity.NewCircle("c1", pt(0, 0), 5),
				entity.NewCircle("c2", pt(6, 0), 5),
			},
			pt(3, 4.05),
			pt(3, 4),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := allEnabledSettings()
			ctx := testContext(tt.entities, &settings)
			eng := initEngine(NewIntersectionEngine(), tt.entities)

			got := eng.FindCandidates(tt.cursor, ctx)
			if len(got) == 0 {
				t.Fatal("no intersection candidates")
			}
			best := got[0]
			for _, c := range got[1:] {
				if c.Distance < best.Distance {
					best = c
				}
			}
			if best.Point.Distance(tt.want) > 1e-6 {
				t.Errorf("best intersection = %v, want %v", best.Point, tt.want)
			}
			if best.EntityID != "" {
				t.Errorf("intersection EntityID = %q, want empty", best.EntityID)
			}
		})
	}
}

func TestIntersectionEngineRespectsArcSweep(t *testing.T) {
	// The horizontal line crosses the full circle at (±5, 0), but the arc
	// only covers the upper half plus its endpoints.
	entities := []entity.Entity{
		entity.NewLine("l", pt(-10, 0), pt(10, 0)),
		entity.NewArc("a", pt(0, 0), 5, math.Pi/4, 3*math.Pi/4),
	}
	settings := allEnabledSettings()
	ctx := testContext(entities, &settings)
	eng := initEngine(NewIntersectionEngine(), entities)

	if got := eng.FindCandidates(pt(5, 0), ctx); len(got) != 0 {
		t.Errorf("candidates = %+v, want none (crossing is off the arc sweep)", got)
	}
}

func TestContextEnginesNeedReference(t *testing.T) {
	entities := []entity.Entity{
		entity.NewLine("l", pt(0, 0), pt(10, 0)),
		entity.NewCircle("c", pt(0, 20), 5),
	}
	settings := allEnabledSettings()
	ctx := testContext(entities, &settings)

	engines := []Engine{
		NewTangentEngine(),
		NewPerpendicularEngine(),
		NewParallelEngine(),
		NewExtensionEngine(),
		NewOrthoEngine(),
	}
	for _, eng := range engines {
		eng.Initialize(entities)
		if got := eng.FindCandidates(pt(1, 1), ctx); got != nil {
			t.Errorf("%s: candidates without reference = %+v, want none", eng.Feature(), got)
		}
	}
}

func TestTangentEngine(t *testing.T) {
	entities := []entity.Entity{entity.NewCircle("c", pt(0, 0), 5)}
	settings := allEnabledSettings()
	ctx := testContext(entities, &settings)
	ctx.Reference = &Reference{Point: pt(10, 0)}
	eng := initEngine(NewTangentEngine(), entities)

	// Tangent points from (10,0) to the circle are at x = r²/d = 2.5.
	wantY := math.Sqrt(25 - 2.5*2.5)
	got := eng.FindCandidates(pt(2.5, wantY-0.1), ctx)
	if len(got) == 0 {
		t.Fatal("no tangent candidates")
	}
	best := got[0]
	for _, c := range got[1:] {
		if c.Distance < best.Distance {
			best = c
		}
	}
	if best.Point.Distance(pt(2.5, wantY)) > 1e-6 {
		t.Errorf("tangent point = %v, want (2.5, %v)", best.Point, wantY)
	}
}

func TestTangentEngineReferenceInside(t *testing.T) {
	entities := []entity.Entity{entity.NewCircle("c", pt(0, 0), 5)}
	settings := allEnabledSettings()
	ctx := testContext(entities, &settings)
	ctx.Reference = &Reference{Point: pt(1, 0)} // inside: no tangent
	eng := initEngine(NewTangentEngine(), entities)

	if got := eng.FindCandidates(pt(5, 0), ctx); len(got) != 0 {
		t.Errorf("candidates = %+v, want none for interior reference", got)
	}
}

func TestPerpendicularEngine(t *testing.T) {
	entities := []entity.Entity{entity.NewLine("l", pt(0, 0), pt(10, 0))}
	settings := allEnabledSettings()
	ctx := testContext(entities, &settings)
	ctx.Reference = &Reference{Point: pt(3, 5)}
	eng := initEngine(NewPerpendicularEngine(), entities)

	got := eng.FindCandidates(pt(3.1, 0.2), ctx)
	if len(got) != 1 || got[0].Point.Distance(pt(3, 0)) > 1e-9 {
		t.Fatalf("candidates = %+v, want foot at (3,0)", got)
	}
}

func TestPerpendicularEngineFootOffSegment(t *testing.T) {
	entities := []entity.Entity{entity.NewLine("l", pt(0, 0), pt(10, 0))}
	settings := allEnabledSettings()
	ctx := testContext(entities, &settings)
	ctx.Reference = &Reference{Point: pt(15, 5)} // foot at (15,0), off segment
	eng := initEngine(NewPerpendicularEngine(), entities)

	if got := eng.FindCandidates(pt(15, 0), ctx); len(got) != 0 {
		t.Errorf("candidates = %+v, want none (foot beyond segment)", got)
	}
}

func TestParallelEngine(t *testing.T) {
	entities := []entity.Entity{entity.NewLine("l", pt(0, 0), pt(10, 0))}
	settings := allEnabledSettings()
	ctx := testContext(entities, &settings)
	ctx.Reference = &Reference{Point: pt(0, 5)}
	eng := initEngine(NewParallelEngine(), entities)

	got := eng.FindCandidates(pt(4, 5.1), ctx)
	if len(got) != 1 || got[0].Point.Distance(pt(4, 5)) > 1e-9 {
		t.Fatalf("candidates = %+v, want projection (4,5)", got)
	}
}

func TestParallelEnginePolylineDominantDirection(t *testing.T) {
	// A polyline running roughly along +X with vertex jitter contributes a
	// single near-horizontal direction.
	entities := []entity.Entity{
		entity.NewPolyline("p", []geometry.Point2D{pt(0, 0.02), pt(3, -0.01), pt(6, 0.01), pt(9, 0)}, false),
	}
	settings := allEnabledSettings()
	ctx := testContext(entities, &settings)
	ctx.Reference = &Reference{Point: pt(0, 5)}
	eng := initEngine(NewParallelEngine(), entities)

	got := eng.FindCandidates(pt(4, 5.05), ctx)
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	if math.Abs(got[0].Point.Y-5) > 0.1 {
		t.Errorf("projection = %v, want ≈(4,5)", got[0].Point)
	}
}

func TestExtensionEngine(t *testing.T) {
	entities := []entity.Entity{entity.NewLine("l", pt(0, 0), pt(10, 0))}
	settings := allEnabledSettings()
	ctx := testContext(entities, &settings)
	ctx.Reference = &Reference{Point: pt(0, 0)}
	eng := initEngine(NewExtensionEngine(), entities)

	t.Run("beyond end", func(t *testing.T) {
		got := eng.FindCandidates(pt(12, 0.1), ctx)
		if len(got) != 1 || got[0].Point.Distance(pt(12, 0)) > 1e-9 {
			t.Fatalf("candidates = %+v, want extension (12,0)", got)
		}
	})

	t.Run("on segment proper emits nothing", func(t *testing.T) {
		if got := eng.FindCandidates(pt(5, 0.1), ctx); len(got) != 0 {
			t.Errorf("candidates = %+v, want none on the segment itself", got)
		}
	})
}

func TestOrthoEngine(t *testing.T) {
	settings := allEnabledSettings()
	ctx := testContext(nil, &settings)
	ctx.Reference = &Reference{Point: pt(0, 0)}
	eng := initEngine(NewOrthoEngine(), nil)

	got := eng.FindCandidates(pt(5, 0.3), ctx)
	if len(got) == 0 {
		t.Fatal("no ortho candidates")
	}
	best := got[0]
	for _, c := range got[1:] {
		if c.Distance < best.Distance {
			best = c
		}
	}
	if best.Point.Distance(pt(5, 0)) > 1e-9 {
		t.Errorf("best ortho point = %v, want (5,0)", best.Point)
	}
}

func TestNearEngine(t *testing.T) {
	entities := []entity.Entity{
		entity.NewLine("l", pt(0, 0), pt(10, 0)),
		entity.NewCircle("c", pt(0, 20), 5),
	}
	settings := allEnabledSettings()
	ctx := testContext(entities, &settings)
	eng := initEngine(NewNearEngine(), entities)

	got := eng.FindCandidates(pt(4, 1), ctx)
	if len(got) != 1 || got[0].Point.Distance(pt(4, 0)) > 1e-9 {
		t.Fatalf("candidates = %+v, want closest point (4,0)", got)
	}
}

func TestNearestEngineSingleResult(t *testing.T) {
	entities := []entity.Entity{
		entity.NewLine("l1", pt(0, 0), pt(10, 0)),
		entity.NewLine("l2", pt(0, 1), pt(10, 1)),
		entity.NewLine("l3", pt(0, 2), pt(10, 2)),
	}
	settings := allEnabledSettings()
	ctx := testContext(entities, &settings)
	eng := initEngine(NewNearestEngine(), entities)

	got := eng.FindCandidates(pt(5, 0.1), ctx)
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want exactly 1", len(got))
	}
	if got[0].EntityID != "l1" {
		t.Errorf("nearest entity = %v, want l1", got[0].EntityID)
	}
}

func TestMaxCandidatesCap(t *testing.T) {
	// Many endpoints inside the radius; the per-engine cap must bound the
	// result count.
	var entities []entity.Entity
	for i := 0; i < 20; i++ {
		id := entity.ID(fmt.Sprintf("l%d", i))
		entities = append(entities, entity.NewLine(id, pt(float64(i)*0.01, 0), pt(float64(i)*0.01, 1)))
	}
	settings := allEnabledSettings()
	settings.MaxCandidates = 3
	ctx := testContext(entities, &settings)
	eng := initEngine(NewEndpointEngine(), entities)

	got := eng.FindCandidates(pt(0, 0), ctx)
	if len(got) > 3 {
		t.Errorf("got %d candidates, want at most 3", len(got))
	}
}

func TestToleranceBoundProperty(t *testing.T) {
	entities := []entity.Entity{
		entity.NewLine("l", pt(0, 0), pt(10, 0)),
		entity.NewCircle("c", pt(5, 5), 3),
		entity.NewArc("a", pt(-5, -5), 2, 0, math.Pi),
		entity.NewPolyline("p", []geometry.Point2D{pt(0, 10), pt(5, 12), pt(10, 10)}, false),
	}
	settings := allEnabledSettings()
	ctx := testContext(entities, &settings)
	ctx.Reference = &Reference{Point: pt(1, 1)}

	cursors := []geometry.Point2D{
		pt(0, 0), pt(5, 0.2), pt(5, 8), pt(-5, -3), pt(2, 11), pt(7.5, 4),
	}

	reg := NewRegistry(&settings)
	reg.InitializeAll(entities)
	for _, ft := range AllFeatureTypes() {
		for _, cursor := range cursors {
			for _, c := range reg.Engine(ft).FindCandidates(cursor, ctx) {
				radius := ctx.WorldRadius(ft)
				if c.Distance > radius+1e-9 {
					t.Errorf("%s: candidate distance %v exceeds world radius %v", ft, c.Distance, radius)
				}
				if got := c.Point.Distance(cursor); math.Abs(got-c.Distance) > 1e-9 {
					t.Errorf("%s: Distance field %v does not match world distance %v", ft, c.Distance, got)
				}
			}
		}
	}
}
