// Package spatial provides a uniform grid index for "points near this
// location" queries. The grid only prunes; every query does an exact
// distance check per bucketed point.
package spatial

import (
	"math"
	"sort"

	"dxf-sketcher/internal/entity"
	"dxf-sketcher/pkg/geometry"
)

// DefaultCellSize is sized at roughly 10x the largest expected snap
// tolerance so a query disc touches only a handful of cells.
const DefaultCellSize = 10.0

// Tagged is a feature point bucketed in the grid, tagged with its source
// entity and a human-readable sub-type label.
type Tagged struct {
	Point    geometry.Point2D
	EntityID entity.ID
	Label    string
}

// Match is a query result: a tagged point plus its exact distance to the
// query center.
type Match struct {
	Tagged
	Distance float64
}

// cellKey is the integer-quantized grid coordinate. Quantizing avoids the
// float hashing and equality pitfalls of raw coordinates.
type cellKey struct {
	X, Y int
}

// Grid is a uniform-cell spatial index. Build once per entity snapshot,
// query many times per cursor stream. Not safe for concurrent mutation.
type Grid struct {
	cellSize float64
	cells    map[cellKey][]Tagged
	count    int
}

// NewGrid creates an empty grid. A non-positive cellSize falls back to
// DefaultCellSize.
func NewGrid(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &Grid{
		cellSize: cellSize,
		cells:    make(map[cellKey][]Tagged),
	}
}

func (g *Grid) keyFor(p geometry.Point2D) cellKey {
	return cellKey{
		X: int(math.Floor(p.X / g.cellSize)),
		Y: int(math.Floor(p.Y / g.cellSize)),
	}
}

// Insert buckets a tagged feature point.
func (g *Grid) Insert(t Tagged) {
	key := g.keyFor(t.Point)
	g.cells[key] = append(g.cells[key], t)
	g.count++
}

// Len returns the number of indexed points.
func (g *Grid) Len() int {
	return g.count
}

// Reset discards all indexed points, keeping the cell size.
func (g *Grid) Reset() {
	g.cells = make(map[cellKey][]Tagged)
	g.count = 0
}

// Query collects every indexed point within radius of center, sorted by
// distance ascending. Ties keep insertion order (sort is stable), which
// keeps results deterministic.
func (g *Grid) Query(center geometry.Point2D, radius float64) []Match {
	if radius < 0 || g.count == 0 {
		return nil
	}

	reach := int(math.Ceil(radius / g.cellSize))
	origin := g.keyFor(center)

	var matches []Match
	for dy := -reach; dy <= reach; dy++ {
		for dx := -reach; dx <= reach; dx++ {
			bucket := g.cells[cellKey{X: origin.X + dx, Y: origin.Y + dy}]
			for _, t := range bucket {
				d := t.Point.Distance(center)
				if d <= radius {
					matches = append(matches, Match{Tagged: t, Distance: d})
				}
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})
	return matches
}
