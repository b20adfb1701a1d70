package cache

// LayoutKeyOpts captures the layout options that affect computed
// positions. Two graphs with the same hash and the same opts share a
// cache entry.
type LayoutKeyOpts struct {
	HorizontalSpacing float64
	VerticalSpacing   float64
	StartX            float64
	StartY            float64
}

// ArtifactKeyOpts captures the render options that affect artifact
// bytes.
type ArtifactKeyOpts struct {
	Format   string
	Style    string
	Detailed bool
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// LayoutKey generates a key for computed layout positions.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for rendered artifacts.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates keys of the form prefix:sha256(parts).
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
