// Command snapbench measures snap query latency against a generated
// drawing and prints a latency summary.
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"time"

	"dxf-sketcher/internal/entity"
	"dxf-sketcher/internal/snap"
	"dxf-sketcher/pkg/geometry"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func main() {
	entityCount := flag.Int("entities", 5000, "Number of entities to generate")
	queryCount := flag.Int("queries", 10000, "Number of snap queries to run")
	extent := flag.Float64("extent", 1000, "World-space extent of the generated drawing")
	zoom := flag.Float64("zoom", 1.0, "Zoom scale for the queries")
	seed := flag.Int64("seed", 1, "Random seed")
	fallbacks := flag.Bool("fallbacks", false, "Enable the near and nearest fallback snaps")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	entities := generateScene(rng, *entityCount, *extent)

	settings := snap.DefaultSettings()
	if *fallbacks {
		settings.Enabled[snap.Near] = true
		settings.Enabled[snap.Nearest] = true
	}

	snapper := snap.New(settings)

	start := time.Now()
	snapper.Initialize(entities)
	initTime := time.Since(start)
	fmt.Printf("Indexed %d entities in %v\n", len(entities), initTime)

	ctx := &snap.Context{Entities: entities, ZoomScale: *zoom}

	latencies := make([]float64, 0, *queryCount)
	hits := make(map[snap.FeatureType]int)
	misses := 0

	for i := 0; i < *queryCount; i++ {
		cursor := geometry.Point2D{
			X: rng.Float64() * *extent,
			Y: rng.Float64() * *extent,
		}

		qStart := time.Now()
		candidate, found := snapper.FindSnapPoint(cursor, ctx)
		latencies = append(latencies, float64(time.Since(qStart).Microseconds()))

		if found {
			hits[candidate.Feature]++
		} else {
			misses++
		}
	}

	sort.Float64s(latencies)
	fmt.Printf("\n%d queries at zoom %.2f:\n", *queryCount, *zoom)
	fmt.Printf("  mean   %8.1f µs\n", stat.Mean(latencies, nil))
	fmt.Printf("  stddev %8.1f µs\n", math.Sqrt(stat.Variance(latencies, nil)))
	fmt.Printf("  p50    %8.1f µs\n", stat.Quantile(0.50, stat.Empirical, latencies, nil))
	fmt.Printf("  p95    %8.1f µs\n", stat.Quantile(0.95, stat.Empirical, latencies, nil))
	fmt.Printf("  p99    %8.1f µs\n", stat.Quantile(0.99, stat.Empirical, latencies, nil))
	fmt.Printf("  max    %8.1f µs\n", floats.Max(latencies))

	fmt.Printf("\nHits by feature type:\n")
	for _, ft := range snap.AllFeatureTypes() {
		if hits[ft] > 0 {
			fmt.Printf("  %-13s %6d\n", ft, hits[ft])
		}
	}
	fmt.Printf("  %-13s %6d\n", "none", misses)

	fmt.Printf("\nEngine counters:\n")
	stats := snapper.Stats()
	for _, ft := range snap.AllFeatureTypes() {
		s, ok := stats[ft]
		if !ok {
			continue
		}
		fmt.Printf("  %-13s %8d points %8d queries %8d candidates\n",
			ft, s.IndexedPoints, s.Queries, s.Candidates)
	}

	if misses == *queryCount {
		fmt.Fprintln(os.Stderr, "warning: every query missed; increase -entities or tolerance")
	}
}

// generateScene builds a mixed drawing of lines, polylines, circles and
// arcs spread over the extent.
func generateScene(rng *rand.Rand, count int, extent float64) []entity.Entity {
	entities := make([]entity.Entity, 0, count)
	for i := 0; i < count; i++ {
		id := entity.ID(fmt.Sprintf("e%d", i))
		origin := geometry.Point2D{X: rng.Float64() * extent, Y: rng.Float64() * extent}

		switch i % 4 {
		case 0:
			end := origin.Add(geometry.Point2D{X: rng.Float64()*40 - 20, Y: rng.Float64()*40 - 20})
			entities = append(entities, entity.NewLine(id, origin, end))
		case 1:
			vertices := []geometry.Point2D{origin}
			for v := 0; v < 3; v++ {
				prev := vertices[len(vertices)-1]
				vertices = append(vertices, prev.Add(geometry.Point2D{
					X: rng.Float64()*20 - 10,
					Y: rng.Float64()*20 - 10,
				}))
			}
			entities = append(entities, entity.NewPolyline(id, vertices, rng.Intn(2) == 0))
		case 2:
			entities = append(entities, entity.NewCircle(id, origin, 1+rng.Float64()*15))
		default:
			start := rng.Float64() * 2 * math.Pi
			sweep := 0.5 + rng.Float64()*4
			entities = append(entities, entity.NewArc(id, origin, 1+rng.Float64()*15, start, start+sweep))
		}
	}
	return entities
}
