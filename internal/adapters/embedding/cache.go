package embedding

import (
	"context"
	"errors"
	"sync"

	"github.com/mailtriage/mailtriage/internal/nlp"
)

// CachedProvider memoizes the vectors of another provider. Keyword tiers are
// small and email vocabulary repeats heavily, so remote providers hit the
// cache almost immediately. Negative lookups are cached too.
type CachedProvider struct {
	inner   nlp.EmbeddingProvider
	mu      sync.RWMutex
	vectors map[string][]float32
	misses  map[string]struct{}
}

// NewCachedProvider wraps a provider with an in-memory vector cache
func NewCachedProvider(inner nlp.EmbeddingProvider) *CachedProvider {
	return &CachedProvider{
		inner:   inner,
		vectors: make(map[string][]float32),
		misses:  make(map[string]struct{}),
	}
}

// Embed returns a cached vector or delegates to the wrapped provider
func (p *CachedProvider) Embed(ctx context.Context, word string) ([]float32, error) {
	p.mu.RLock()
	if vec, ok := p.vectors[word]; ok {
		p.mu.RUnlock()
		return vec, nil
	}
	if _, ok := p.misses[word]; ok {
		p.mu.RUnlock()
		return nil, nlp.ErrNoVector
	}
	p.mu.RUnlock()

	vec, err := p.inner.Embed(ctx, word)
	if err != nil {
		if errors.Is(err, nlp.ErrNoVector) {
			p.mu.Lock()
			p.misses[word] = struct{}{}
			p.mu.Unlock()
		}
		// Transient errors are not cached
		return nil, err
	}

	p.mu.Lock()
	p.vectors[word] = vec
	p.mu.Unlock()
	return vec, nil
}

// Name identifies the wrapped provider in logs
func (p *CachedProvider) Name() string {
	return p.inner.Name()
}

// Close releases the wrapped provider's resources if it holds any
func (p *CachedProvider) Close() error {
	if closer, ok := p.inner.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
