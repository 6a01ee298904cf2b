// Package snap implements the CAD snapping engine: per-feature-type
// engines, their registry, and the orchestrator that picks the single best
// snap point for a cursor position.
package snap

// FeatureType identifies one kind of snappable geometric feature. The
// declaration order is the fixed priority order: precise features first,
// broad fallbacks last.
type FeatureType int

const (
	Endpoint FeatureType = iota
	Node
	Midpoint
	Center
	Quadrant
	Insertion
	Intersection
	Perpendicular
	Tangent
	Parallel
	Extension
	Ortho
	Near
	Nearest

	numFeatureTypes
)

// AllFeatureTypes lists every feature type in priority order.
func AllFeatureTypes() []FeatureType {
	types := make([]FeatureType, numFeatureTypes)
	for i := range types {
		types[i] = FeatureType(i)
	}
	return types
}

var featureNames = [numFeatureTypes]string{
	"Endpoint",
	"Node",
	"Midpoint",
	"Center",
	"Quadrant",
	"Insertion",
	"Intersection",
	"Perpendicular",
	"Tangent",
	"Parallel",
	"Extension",
	"Ortho",
	"Near",
	"Nearest",
}

// String returns the display name of the feature type.
func (ft FeatureType) String() string {
	if ft < 0 || ft >= numFeatureTypes {
		return "Unknown"
	}
	return featureNames[ft]
}

// Priority returns the selection priority of candidates of this type.
// Lower values win.
func (ft FeatureType) Priority() int {
	return (int(ft) + 1) * 10
}
