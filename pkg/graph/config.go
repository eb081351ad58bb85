package graph

// BuildConfig configures Build's grid resolution and coverage preprocessing.
type BuildConfig struct {
	// GridSide is the side length S of both the node grid and the tower
	// grid; each has S*S cells.
	GridSide int

	// CoverageBaseRadiusMeters is added to each edge's own length to get
	// the tower lookup radius for that edge: towers farther than
	// CoverageBaseRadiusMeters + edge length from the edge's source can
	// never intersect it, since a tower's range is bounded by the lookup
	// radius convention the builder uses.
	CoverageBaseRadiusMeters float64
}

// DefaultBuildConfig returns the configuration used when callers have no
// reason to tune grid resolution or coverage lookup radius.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		GridSide:                 100,
		CoverageBaseRadiusMeters: 15_000,
	}
}
