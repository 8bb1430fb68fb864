package cache

// ArtifactKeyOpts lists everything besides the graph that changes an
// exported artifact.
type ArtifactKeyOpts struct {
	Kind       string `json:"kind"`
	GroupLevel int    `json:"group_level"`
	Detector   string `json:"detector"`
	// Layout holds the layout options. Any JSON-encodable value works; it
	// only feeds the hash.
	Layout any `json:"layout"`
}

// Keyer generates cache keys.
type Keyer interface {
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the key components.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<sha256>" over the graph hash and opts.
func (DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}
