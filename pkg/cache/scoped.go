package cache

// ScopedKeyer namespaces all keys produced by an inner keyer. Multiple
// deployments can then share one backend without key collisions.
type ScopedKeyer struct {
	scope string
	inner Keyer
}

// NewScopedKeyer wraps inner so every key is prefixed with scope.
func NewScopedKeyer(scope string, inner Keyer) Keyer {
	return &ScopedKeyer{scope: scope, inner: inner}
}

func (k *ScopedKeyer) SolveKey(problemHash string) string {
	return k.scope + ":" + k.inner.SolveKey(problemHash)
}

func (k *ScopedKeyer) LayoutKey(allocationHash string, opts LayoutKeyOpts) string {
	return k.scope + ":" + k.inner.LayoutKey(allocationHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.scope + ":" + k.inner.ArtifactKey(layoutHash, opts)
}
