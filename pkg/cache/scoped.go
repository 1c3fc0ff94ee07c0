package cache

// ScopedKeyer wraps a Keyer with a prefix so several projects can share one
// Redis or MongoDB backend.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "project:editor:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// RunKey generates a prefixed key for run snapshots.
func (k *ScopedKeyer) RunKey(sceneHash, scriptHash string, opts RunKeyOpts) string {
	return k.prefix + k.inner.RunKey(sceneHash, scriptHash, opts)
}

// ArtifactKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) ArtifactKey(snapshotHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(snapshotHash, opts)
}
