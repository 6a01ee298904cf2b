package entity

import (
	"math"
	"testing"

	"dxf-sketcher/pkg/geometry"
)

func pt(x, y float64) geometry.Point2D { return geometry.Point2D{X: x, Y: y} }

func near(a, b geometry.Point2D) bool {
	return a.Distance(b) < 1e-9
}

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		e    Entity
		want bool
	}{
		{"line", NewLine("l1", pt(0, 0), pt(1, 0)), true},
		{"polyline", NewPolyline("p1", []geometry.Point2D{pt(0, 0), pt(1, 1)}, false), true},
		{"polyline one vertex", NewPolyline("p2", []geometry.Point2D{pt(0, 0)}, false), false},
		{"circle", NewCircle("c1", pt(0, 0), 5), true},
		{"zero radius circle", NewCircle("c2", pt(0, 0), 0), false},
		{"arc", NewArc("a1", pt(0, 0), 5, 0, math.Pi), true},
		{"unknown type", Entity{ID: "x", Type: "spline"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.e.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSegments(t *testing.T) {
	tests := []struct {
		name string
		e    Entity
		want int
	}{
		{"line", NewLine("l", pt(0, 0), pt(1, 0)), 1},
		{"open polyline", NewPolyline("p", []geometry.Point2D{pt(0, 0), pt(1, 0), pt(1, 1)}, false), 2},
		{"closed polyline", NewPolyline("p", []geometry.Point2D{pt(0, 0), pt(1, 0), pt(1, 1)}, true), 3},
		{"circle", NewCircle("c", pt(0, 0), 5), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(tt.e.Segments()); got != tt.want {
				t.Errorf("len(Segments()) = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEndpoints(t *testing.T) {
	t.Run("line", func(t *testing.T) {
		e := NewLine("l", pt(0, 0), pt(10, 0))
		got := e.Endpoints()
		if len(got) != 2 || !near(got[0], pt(0, 0)) || !near(got[1], pt(10, 0)) {
			t.Errorf("Endpoints() = %v", got)
		}
	})

	t.Run("closed polyline has none", func(t *testing.T) {
		e := NewPolyline("p", []geometry.Point2D{pt(0, 0), pt(1, 0), pt(1, 1)}, true)
		if got := e.Endpoints(); got != nil {
			t.Errorf("Endpoints() = %v, want nil", got)
		}
	})

	t.Run("arc", func(t *testing.T) {
		e := NewArc("a", pt(0, 0), 5, 0, math.Pi/2)
		got := e.Endpoints()
		if len(got) != 2 || !near(got[0], pt(5, 0)) || !near(got[1], pt(0, 5)) {
			t.Errorf("Endpoints() = %v", got)
		}
	})

	t.Run("circle has none", func(t *testing.T) {
		if got := NewCircle("c", pt(0, 0), 5).Endpoints(); got != nil {
			t.Errorf("Endpoints() = %v, want nil", got)
		}
	})
}

func TestMidpoints(t *testing.T) {
	t.Run("line", func(t *testing.T) {
		got := NewLine("l", pt(0, 0), pt(10, 0)).Midpoints()
		if len(got) != 1 || !near(got[0], pt(5, 0)) {
			t.Errorf("Midpoints() = %v, want [(5,0)]", got)
		}
	})

	t.Run("polyline per segment", func(t *testing.T) {
		e := NewPolyline("p", []geometry.Point2D{pt(0, 0), pt(2, 0), pt(2, 2)}, false)
		got := e.Midpoints()
		if len(got) != 2 || !near(got[0], pt(1, 0)) || !near(got[1], pt(2, 1)) {
			t.Errorf("Midpoints() = %v", got)
		}
	})

	t.Run("arc mid-sweep", func(t *testing.T) {
		e := NewArc("a", pt(0, 0), 5, 0, math.Pi)
		got := e.Midpoints()
		if len(got) != 1 || !near(got[0], pt(0, 5)) {
			t.Errorf("Midpoints() = %v, want [(0,5)]", got)
		}
	})
}

func TestNodes(t *testing.T) {
	e := NewPolyline("p", []geometry.Point2D{pt(0, 0), pt(1, 0), pt(1, 1)}, false)
	if got := e.Nodes(); len(got) != 3 {
		t.Errorf("Nodes() = %v, want 3 vertices", got)
	}
	if got := NewLine("l", pt(0, 0), pt(1, 0)).Nodes(); got != nil {
		t.Errorf("line Nodes() = %v, want nil", got)
	}
}

func TestInsertionPoint(t *testing.T) {
	tests := []struct {
		name string
		e    Entity
		want geometry.Point2D
	}{
		{"line start", NewLine("l", pt(3, 4), pt(9, 9)), pt(3, 4)},
		{"polyline first vertex", NewPolyline("p", []geometry.Point2D{pt(1, 2), pt(3, 4)}, false), pt(1, 2)},
		{"circle center", NewCircle("c", pt(7, 8), 2), pt(7, 8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.e.InsertionPoint()
			if !ok || !near(got, tt.want) {
				t.Errorf("InsertionPoint() = %v, %v, want %v, true", got, ok, tt.want)
			}
		})
	}
}

func TestClosestPoint(t *testing.T) {
	tests := []struct {
		name string
		e    Entity
		p    geometry.Point2D
		want geometry.Point2D
	}{
		{"line projection", NewLine("l", pt(0, 0), pt(10, 0)), pt(4, 3), pt(4, 0)},
		{"line clamped", NewLine("l", pt(0, 0), pt(10, 0)), pt(14, 3), pt(10, 0)},
		{"circle perimeter", NewCircle("c", pt(0, 0), 5), pt(10, 0), pt(5, 0)},
		{"arc on sweep", NewArc("a", pt(0, 0), 5, 0, math.Pi), pt(0, 9), pt(0, 5)},
		{"arc off sweep clamps to end", NewArc("a", pt(0, 0), 5, 0, math.Pi/2), pt(-5, -0.5), pt(0, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.e.ClosestPoint(tt.p)
			if !ok {
				t.Fatal("ClosestPoint() ok = false, want true")
			}
			if !near(got, tt.want) {
				t.Errorf("ClosestPoint(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}

	t.Run("invalid entity", func(t *testing.T) {
		if _, ok := NewCircle("c", pt(0, 0), 0).ClosestPoint(pt(1, 1)); ok {
			t.Error("ClosestPoint() ok = true for invalid entity, want false")
		}
	})
}

func TestBounds(t *testing.T) {
	e := NewCircle("c", pt(2, 3), 4)
	want := geometry.Rect{X: -2, Y: -1, Width: 8, Height: 8}
	if got := e.Bounds(); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
}
