// Package embedder carries embedder decorators shared by the concrete
// implementations in the subpackages.
package embedder

import (
	"context"
	"fmt"

	"github.com/dgraph-io/ristretto"

	"github.com/maltai/maltai-go/memory"
)

// Cached wraps an Embedder with a ristretto cache so repeated texts
// (the fixed retrieval queries, re-embedded values) skip inference.
type Cached struct {
	inner memory.Embedder
	cache *ristretto.Cache
}

// NewCached creates a caching decorator around inner. maxBytes bounds
// the approximate memory spent on cached vectors; 0 selects 64 MiB.
func NewCached(inner memory.Embedder, maxBytes int64) (*Cached, error) {
	if maxBytes <= 0 {
		maxBytes = 64 << 20
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 100_000,
		MaxCost:     maxBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create embedding cache: %w", err)
	}
	return &Cached{inner: inner, cache: cache}, nil
}

// Embed returns the cached vector when available, otherwise delegates
// to the wrapped embedder and stores the result.
func (c *Cached) Embed(ctx context.Context, text string) ([]float32, error) {
	if v, ok := c.cache.Get(text); ok {
		if vec, ok := v.([]float32); ok {
			return vec, nil
		}
	}
	vec, err := c.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	c.cache.Set(text, vec, int64(4*len(vec)))
	return vec, nil
}

// Dimensions returns the wrapped embedder's vector size.
func (c *Cached) Dimensions() int {
	return c.inner.Dimensions()
}

// Close releases the cache.
func (c *Cached) Close() {
	c.cache.Close()
}
