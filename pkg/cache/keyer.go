package cache

// ArtifactKeyOpts lists the render settings an artifact depends on.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	TileSize  int     `json:"tile_size,omitempty"`
	Scale     float64 `json:"scale,omitempty"`
	GridLines bool    `json:"grid_lines,omitempty"`
	FullGrid  bool    `json:"full_grid,omitempty"`
}

// Keyer generates cache keys.
type Keyer interface {
	// ArtifactKey returns the key for one rendered output of a script.
	ArtifactKey(scriptHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer derives keys from content hashes.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey hashes the script hash together with opts.
func (DefaultKeyer) ArtifactKey(scriptHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", scriptHash, opts)
}

var _ Keyer = DefaultKeyer{}

type scopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer prefixes every key from inner (the default keyer when nil),
// so two users of one cache directory never share entries. The preview
// server scopes its artifacts with "serve:".
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return scopedKeyer{inner: inner, prefix: prefix}
}

func (k scopedKeyer) ArtifactKey(scriptHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(scriptHash, opts)
}
