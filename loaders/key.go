// Package loaders resolves verification key blobs by circuit name, from the
// filesystem or any custom source, with optional in-memory caching. Keys are
// the raw fixed-layout blobs; parsing stays with the verifier.
package loaders

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/noirverify/go-ultrahonk/cache"
)

// ErrKeyNotFound is returned when no key exists under the requested name.
var ErrKeyNotFound = errors.New("verification key not found")

// VerificationKeyLoader loads verification key bytes for a named circuit.
type VerificationKeyLoader interface {
	Load(name string) ([]byte, error)
}

// FSKeyLoader reads keys from a directory, one <name>.vk file per circuit.
type FSKeyLoader struct {
	Dir string
}

func (m FSKeyLoader) Load(name string) ([]byte, error) {
	b, err := os.ReadFile(fmt.Sprintf("%s/%s.vk", m.Dir, name))
	if os.IsNotExist(err) {
		return nil, errors.Wrap(ErrKeyNotFound, name)
	}
	return b, err
}

// CachedKeyLoader decorates another loader with an in-memory cache. Keys are
// immutable, so the TTL only bounds memory held for circuits that stopped
// being queried.
type CachedKeyLoader struct {
	inner VerificationKeyLoader
	cache cache.ICache[[]byte]
}

type cachedKeyLoaderConfig struct {
	size int64
	ttl  time.Duration
}

// CachedKeyLoaderOption customizes cache behavior.
type CachedKeyLoaderOption func(*cachedKeyLoaderConfig)

// WithCacheSize bounds the number of cached keys.
func WithCacheSize(size int64) CachedKeyLoaderOption {
	return func(c *cachedKeyLoaderConfig) {
		c.size = size
	}
}

// WithCacheTTL sets how long a loaded key stays cached.
func WithCacheTTL(ttl time.Duration) CachedKeyLoaderOption {
	return func(c *cachedKeyLoaderConfig) {
		c.ttl = ttl
	}
}

// NewCachedKeyLoader wraps loader with an in-memory cache.
func NewCachedKeyLoader(loader VerificationKeyLoader, opts ...CachedKeyLoaderOption) *CachedKeyLoader {
	cfg := cachedKeyLoaderConfig{size: 64, ttl: time.Hour}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &CachedKeyLoader{
		inner: loader,
		cache: cache.NewInMemoryCache[[]byte](cfg.size, cfg.ttl),
	}
}

func (l *CachedKeyLoader) Load(name string) ([]byte, error) {
	if b, ok := l.cache.Get(name); ok {
		return b, nil
	}
	b, err := l.inner.Load(name)
	if err != nil {
		return nil, err
	}
	l.cache.Set(name, b)
	return b, nil
}
