package cache

// Keyer generates cache keys.
type Keyer interface {
	// RunKey identifies the snapshot produced by running script against scene.
	RunKey(sceneHash, scriptHash string, opts RunKeyOpts) string
	// ArtifactKey identifies a rendered form of a snapshot.
	ArtifactKey(snapshotHash string, opts ArtifactKeyOpts) string
}

// RunKeyOpts holds inputs besides the scene and script that change a run.
type RunKeyOpts struct {
	SceneFormat string `json:"scene_format"`
	// Version invalidates entries written by other builds.
	Version string `json:"version"`
}

// ArtifactKeyOpts holds rendering inputs.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale"`
	Labels bool    `json:"labels"`
	Edges  bool    `json:"edges"`
}

// DefaultKeyer builds keys of the form "type:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) RunKey(sceneHash, scriptHash string, opts RunKeyOpts) string {
	return hashKey(KeyTypeRun, sceneHash, scriptHash, opts)
}

func (DefaultKeyer) ArtifactKey(snapshotHash string, opts ArtifactKeyOpts) string {
	return hashKey(KeyTypeArtifact, snapshotHash, opts)
}
