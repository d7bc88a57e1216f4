package driven

import (
	"context"
	"io"

	"github.com/ragscholar/scholar-cli/internal/core/domain"
)

// BackendClient is the RAG Scholar backend API boundary.
// It is a pure I/O collaborator: no caching, no local state. Adapters
// map transport failures onto domain sentinels (domain.ErrNotFound,
// domain.ErrBackendUnavailable) before returning.
type BackendClient interface {
	// Health checks backend reachability.
	Health(ctx context.Context) error

	// ListDocuments returns all uploaded documents.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// UploadDocument uploads a file and returns the stored document
	// with its server-assigned id.
	UploadDocument(ctx context.Context, filename string, content io.Reader) (*domain.Document, error)

	// DeleteDocument removes an uploaded document.
	DeleteDocument(ctx context.Context, id string) error

	// AssignDocument tags a document with a class id.
	AssignDocument(ctx context.Context, documentID, classID string) error

	// UnassignDocument removes a class tag from a document.
	UnassignDocument(ctx context.Context, documentID, classID string) error

	// TransferDocuments moves documents into a class's retrieval index.
	TransferDocuments(ctx context.Context, classID string, documentIDs []string) error

	// ReindexClass rebuilds a class's retrieval collection.
	ReindexClass(ctx context.Context, classID string) error

	// ListSessions returns all persisted chat sessions.
	ListSessions(ctx context.Context) ([]domain.Session, error)

	// CreateSession creates a session bound to a class context and
	// returns it with the server-issued id.
	CreateSession(ctx context.Context, name, classID, className string) (*domain.Session, error)

	// RenameSession changes a session's display name.
	RenameSession(ctx context.Context, id, name string) error

	// DeleteSession removes a persisted session.
	DeleteSession(ctx context.Context, id string) error

	// GetSessionMessages fetches the stored transcript for a session.
	GetSessionMessages(ctx context.Context, id string) (domain.Transcript, error)

	// SendChat sends one question and returns the assistant's reply.
	// No client-side timeout is applied; the backend bounds its own
	// latency.
	SendChat(ctx context.Context, req domain.ChatRequest) (*domain.ChatReply, error)

	// GetProfile fetches the user profile including achievements.
	GetProfile(ctx context.Context) (*domain.Profile, error)
}
