package driven

import (
	"context"

	"github.com/ragscholar/scholar-cli/internal/core/domain"
)

// ClassStore persists the class registry mirror.
// The store is a restore aid, not a source of truth for anything that
// also exists server-side.
type ClassStore interface {
	// Save stores or updates a class.
	Save(ctx context.Context, class domain.Class) error

	// Get retrieves a class by ID.
	Get(ctx context.Context, id string) (*domain.Class, error)

	// Delete removes a class.
	Delete(ctx context.Context, id string) error

	// List returns all classes ordered by creation time.
	List(ctx context.Context) ([]domain.Class, error)
}
