package cache

// ScopedKeyer wraps a Keyer with a prefix so several tenants or deployments
// can share one backend without seeing each other's entries.
//
//	shared := NewScopedKeyer(NewDefaultKeyer(), "learnpath:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key of inner.
// A nil inner uses [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// PathKey implements [Keyer].
func (k *ScopedKeyer) PathKey(digest string) string {
	return k.prefix + k.inner.PathKey(digest)
}

// CyclesKey implements [Keyer].
func (k *ScopedKeyer) CyclesKey(digest string) string {
	return k.prefix + k.inner.CyclesKey(digest)
}
