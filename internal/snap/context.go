package snap

import (
	"dxf-sketcher/internal/entity"
	"dxf-sketcher/pkg/geometry"
)

// Reference carries the in-progress drawing state needed by the
// context-dependent engines (Tangent, Perpendicular, Parallel, Extension,
// Ortho): typically the already-placed first point of the segment being
// drawn.
type Reference struct {
	Point geometry.Point2D
}

// Context carries everything a single snap query needs. Entities are a
// read-only snapshot owned by the caller.
type Context struct {
	Entities  []entity.Entity
	ExcludeID entity.ID // entity being drawn/edited; never snapped to
	ZoomScale float64   // screen pixels per world unit
	Settings  *Settings
	Reference *Reference // nil when no drawing operation is in progress
}

// zoom returns a safe zoom scale; a missing or non-positive scale is
// treated as 1:1.
func (c *Context) zoom() float64 {
	if c.ZoomScale <= 0 {
		return 1
	}
	return c.ZoomScale
}

// WorldRadius converts the feature type's pixel tolerance into world units
// at the current zoom. Computed per call so that zooming out widens the
// world-space catch radius while the on-screen radius stays constant.
func (c *Context) WorldRadius(ft FeatureType) float64 {
	return c.Settings.PixelToleranceFor(ft) / c.zoom()
}

// ConfidentRadius is the world-space early-exit threshold for this query.
func (c *Context) ConfidentRadius() float64 {
	return ConfidentPixels / c.zoom()
}

// usable reports whether the entity may contribute candidates to this
// query at all.
func (c *Context) usable(e entity.Entity) bool {
	return e.Visible && e.ID != c.ExcludeID && e.Valid()
}
