package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ragscholar/scholar-cli/internal/core/domain"
	"github.com/ragscholar/scholar-cli/internal/core/ports/driven"
)

// Ensure ClassStore implements the interface.
var _ driven.ClassStore = (*ClassStore)(nil)

// ClassStore is an in-memory implementation of driven.ClassStore.
type ClassStore struct {
	mu      sync.RWMutex
	classes map[string]domain.Class
}

// NewClassStore creates a new in-memory class store.
func NewClassStore() *ClassStore {
	return &ClassStore{
		classes: make(map[string]domain.Class),
	}
}

// Save stores or updates a class.
func (s *ClassStore) Save(_ context.Context, class domain.Class) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.classes[class.ID] = class
	return nil
}

// Get retrieves a class by ID.
func (s *ClassStore) Get(_ context.Context, id string) (*domain.Class, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	class, ok := s.classes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &class, nil
}

// Delete removes a class.
func (s *ClassStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.classes, id)
	return nil
}

// List returns all classes ordered by creation time.
func (s *ClassStore) List(_ context.Context) ([]domain.Class, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Class, 0, len(s.classes))
	for _, class := range s.classes {
		result = append(result, class)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}
