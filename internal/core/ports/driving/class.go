package driving

import (
	"context"

	"github.com/ragscholar/scholar-cli/internal/core/domain"
)

// ClassService manages the class registry: user-defined topical
// groupings of documents and chat sessions.
type ClassService interface {
	// Load restores the registry from the local store and the active
	// selection from the KV store. Called once at startup.
	Load(ctx context.Context) error

	// List returns all classes.
	List(ctx context.Context) ([]domain.Class, error)

	// Get retrieves a class by ID.
	Get(ctx context.Context, id string) (*domain.Class, error)

	// Active returns the currently selected class, nil if none.
	Active() *domain.Class

	// Create adds a new class with a client-generated id, optionally
	// assigning initial documents, and makes it the active selection.
	// A failed initial document transfer does not fail the create; the
	// returned report carries the per-document outcomes.
	Create(ctx context.Context, name string, subject domain.Subject, description string, initialDocumentIDs []string) (*domain.Class, *domain.AssignmentReport, error)

	// Edit updates name, subject and description in place. No-op if
	// the id is unknown.
	Edit(ctx context.Context, id, name string, subject domain.Subject, description string) error

	// Delete removes a class, cascading to its server-side sessions
	// and cached transcript. Documents are never deleted, only their
	// association with the class.
	Delete(ctx context.Context, id string) error

	// Select makes a class the active selection, swapping the active
	// transcript through the per-class cache and clearing the session
	// binding. Passing an empty id clears the selection.
	Select(ctx context.Context, id string) error

	// AssignDocuments converges the class's document set to exactly
	// documentIDs, attempting each change independently and reporting
	// failures rather than dropping them.
	AssignDocuments(ctx context.Context, classID string, documentIDs []string) (*domain.AssignmentReport, error)

	// Reindex rebuilds the class's retrieval collection server-side.
	Reindex(ctx context.Context, classID string) error
}
