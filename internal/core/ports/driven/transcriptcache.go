package driven

import (
	"context"

	"github.com/ragscholar/scholar-cli/internal/core/domain"
)

// TranscriptScope distinguishes the two cache keyspaces.
type TranscriptScope string

// Transcript cache scopes.
const (
	// ScopeSession caches by session id for fast session switching.
	ScopeSession TranscriptScope = "session"

	// ScopeClass caches each class's active conversation for restore
	// when the user switches classes.
	ScopeClass TranscriptScope = "class"
)

// TranscriptCache persists message transcripts keyed by session or
// class id. Entries are written on every message append and read on
// switch; a cache miss is returned as an empty transcript, never an
// error.
type TranscriptCache interface {
	// Put stores the transcript for a key, replacing any prior entry.
	Put(ctx context.Context, scope TranscriptScope, key string, t domain.Transcript) error

	// Get retrieves the cached transcript for a key. Returns an empty
	// transcript if none is cached.
	Get(ctx context.Context, scope TranscriptScope, key string) (domain.Transcript, error)

	// Delete removes the cache entry for a key.
	Delete(ctx context.Context, scope TranscriptScope, key string) error
}
