package memory

import (
	"context"
	"sync"

	"github.com/ragscholar/scholar-cli/internal/core/domain"
	"github.com/ragscholar/scholar-cli/internal/core/ports/driven"
)

// Ensure TranscriptCache implements the interface.
var _ driven.TranscriptCache = (*TranscriptCache)(nil)

// TranscriptCache is an in-memory implementation of driven.TranscriptCache.
type TranscriptCache struct {
	mu      sync.RWMutex
	entries map[cacheKey]domain.Transcript
}

type cacheKey struct {
	scope driven.TranscriptScope
	key   string
}

// NewTranscriptCache creates a new in-memory transcript cache.
func NewTranscriptCache() *TranscriptCache {
	return &TranscriptCache{
		entries: make(map[cacheKey]domain.Transcript),
	}
}

// Put stores the transcript for a key, replacing any prior entry.
func (c *TranscriptCache) Put(_ context.Context, scope driven.TranscriptScope, key string, t domain.Transcript) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey{scope, key}] = t.Clone()
	return nil
}

// Get retrieves the cached transcript for a key. A miss is an empty
// transcript, not an error.
func (c *TranscriptCache) Get(_ context.Context, scope driven.TranscriptScope, key string) (domain.Transcript, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[cacheKey{scope, key}].Clone(), nil
}

// Delete removes the cache entry for a key.
func (c *TranscriptCache) Delete(_ context.Context, scope driven.TranscriptScope, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, cacheKey{scope, key})
	return nil
}
