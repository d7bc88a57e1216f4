package driving

import (
	"context"
	"io"

	"github.com/ragscholar/scholar-cli/internal/core/domain"
)

// DocumentService manages the document registry, mirrored wholesale
// from the backend after every mutating operation.
type DocumentService interface {
	// Refresh replaces the in-memory list from the backend. On failure
	// the list is emptied rather than left stale.
	Refresh(ctx context.Context) error

	// List returns the current in-memory document list.
	List() []domain.Document

	// Get returns a document from the in-memory list by id.
	Get(id string) (*domain.Document, error)

	// Upload sends a file to the backend, refreshes the list, and
	// auto-assigns the new document to the active class if one is
	// selected.
	Upload(ctx context.Context, filename string, content io.Reader) (*domain.Document, error)

	// UploadPath uploads a file from the local filesystem.
	UploadPath(ctx context.Context, path string) (*domain.Document, error)

	// Delete removes a document from the backend, refreshes the list,
	// and removes the id from every class's document list.
	Delete(ctx context.Context, id string) error

	// Assign adds a class tag to a document. Idempotent.
	Assign(ctx context.Context, documentID, classID string) error

	// Unassign removes a class tag from a document. Idempotent.
	Unassign(ctx context.Context, documentID, classID string) error

	// InFlight reports whether an assignment change is outstanding for
	// the document, so UIs can disable just that document's controls.
	InFlight(documentID string) bool
}
