package snap

// Default tolerances, in screen pixels. Pixel tolerances are converted to
// world units per query so the visual catch radius stays constant across
// zoom levels.
const (
	DefaultPixelTolerance = 10.0
	DefaultMaxCandidates  = 16

	// ConfidentPixels is the absolute screen-space distance below which a
	// candidate is accepted immediately, skipping all lower-priority
	// engines. Deliberately much tighter than any full tolerance.
	ConfidentPixels = 2.0
)

// Settings describes which feature types are enabled and their tolerances.
// The zero value is unusable; start from DefaultSettings.
type Settings struct {
	Enabled               map[FeatureType]bool    `json:"enabled"`
	PixelTolerance        float64                 `json:"pixel_tolerance"`
	PerTypePixelTolerance map[FeatureType]float64 `json:"per_type_pixel_tolerance,omitempty"`
	MaxCandidates         int                     `json:"max_candidates"`
}

// DefaultSettings enables every feature type except the broad fallbacks,
// mirroring the usual CAD out-of-box configuration.
func DefaultSettings() Settings {
	enabled := make(map[FeatureType]bool, numFeatureTypes)
	for _, ft := range AllFeatureTypes() {
		enabled[ft] = true
	}
	enabled[Near] = false
	enabled[Nearest] = false

	return Settings{
		Enabled:               enabled,
		PixelTolerance:        DefaultPixelTolerance,
		PerTypePixelTolerance: make(map[FeatureType]float64),
		MaxCandidates:         DefaultMaxCandidates,
	}
}

// IsEnabled reports whether the feature type is currently enabled.
func (s *Settings) IsEnabled(ft FeatureType) bool {
	return s.Enabled[ft]
}

// PixelToleranceFor returns the per-type pixel tolerance, falling back to
// the global tolerance when no override exists.
func (s *Settings) PixelToleranceFor(ft FeatureType) float64 {
	if tol, ok := s.PerTypePixelTolerance[ft]; ok && tol > 0 {
		return tol
	}
	return s.PixelTolerance
}

// Clone returns a deep copy, so UI edits never race a query in flight.
func (s *Settings) Clone() Settings {
	out := *s
	out.Enabled = make(map[FeatureType]bool, len(s.Enabled))
	for k, v := range s.Enabled {
		out.Enabled[k] = v
	}
	out.PerTypePixelTolerance = make(map[FeatureType]float64, len(s.PerTypePixelTolerance))
	for k, v := range s.PerTypePixelTolerance {
		out.PerTypePixelTolerance[k] = v
	}
	return out
}
