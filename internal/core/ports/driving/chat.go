package driving

import (
	"context"

	"github.com/ragscholar/scholar-cli/internal/core/domain"
)

// ChatService owns the session registry and the message pipeline: the
// active transcript, lazy session creation, per-session caching and
// the provisional/persisted lifecycle.
type ChatService interface {
	// Restore loads the last active session and its cached transcript
	// from the local store. Called once at startup.
	Restore(ctx context.Context) error

	// RefreshSessions re-fetches the session list from the backend.
	RefreshSessions(ctx context.Context) error

	// Sessions returns the known session list. The active session's
	// MessageCount reflects the live transcript, not the server count.
	Sessions() []domain.Session

	// ActiveSession returns the session the transcript belongs to,
	// nil when no conversation has been started.
	ActiveSession() *domain.Session

	// Transcript returns a snapshot of the active transcript.
	Transcript() domain.Transcript

	// NewChat starts a fresh provisional conversation, caching the
	// outgoing transcript for later restore. At most one provisional
	// session exists; an existing one is replaced, never duplicated.
	// Switching away from an empty persisted session deletes it.
	NewChat(ctx context.Context) error

	// SwitchSession makes a listed session active, restoring its
	// transcript from cache or from the backend on a cache miss.
	SwitchSession(ctx context.Context, id string) error

	// SwitchClass rebinds the conversation context to a new class:
	// the outgoing class's transcript is cached, the incoming class's
	// cached transcript (or empty) becomes active, and the session
	// binding is cleared so the next send starts a fresh session.
	SwitchClass(ctx context.Context, outgoingClassID, incomingClassID string) error

	// Send dispatches one user message. Creates the backend session
	// lazily on the first message, appends the user turn and the
	// assistant reply (or a synthetic error turn) to the transcript
	// and caches, then refreshes the session list asynchronously.
	// Sends are serialised: a second call while one is outstanding
	// returns domain.ErrSendInFlight.
	Send(ctx context.Context, query string) (*domain.Message, error)

	// RenameSession changes a persisted session's display name.
	RenameSession(ctx context.Context, id, name string) error

	// DeleteSession removes a session server-side and purges its
	// cached transcript.
	DeleteSession(ctx context.Context, id string) error

	// DeleteSessionsForClass removes every session tagged with the
	// class id. Used by the class-delete cascade.
	DeleteSessionsForClass(ctx context.Context, classID string) error
}
