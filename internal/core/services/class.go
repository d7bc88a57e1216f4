package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ragscholar/scholar-cli/internal/core/domain"
	"github.com/ragscholar/scholar-cli/internal/core/ports/driven"
	"github.com/ragscholar/scholar-cli/internal/core/ports/driving"
	"github.com/ragscholar/scholar-cli/internal/logger"
)

// Ensure ClassService implements the interface.
var _ driving.ClassService = (*ClassService)(nil)

// ClassService manages the class registry. Classes are a client-side
// concept: the store is the source of truth for the registry itself,
// while document membership is reconciled against the backend.
type ClassService struct {
	backend driven.BackendClient
	store   driven.ClassStore
	cache   driven.TranscriptCache
	kv      driven.KVStore

	chat driving.ChatService

	mu       sync.RWMutex
	activeID string
}

// NewClassService creates a new class service.
func NewClassService(
	backend driven.BackendClient,
	store driven.ClassStore,
	cache driven.TranscriptCache,
	kv driven.KVStore,
) *ClassService {
	return &ClassService{
		backend: backend,
		store:   store,
		cache:   cache,
		kv:      kv,
	}
}

// SetChatService sets the chat service used to swap conversation
// context on class selection. Set after construction to break the
// class/chat dependency cycle.
func (s *ClassService) SetChatService(chat driving.ChatService) {
	s.chat = chat
}

// Load restores the active class selection from the KV store.
// An active id pointing at a deleted class is silently discarded.
func (s *ClassService) Load(ctx context.Context) error {
	id, err := s.kv.Get(ctx, driven.KeyActiveClassID)
	if err != nil {
		return fmt.Errorf("loading active class: %w", err)
	}
	if id == "" {
		return nil
	}

	if _, err := s.store.Get(ctx, id); err != nil {
		logger.Warn("stored active class %s no longer exists, clearing", id)
		_ = s.kv.Delete(ctx, driven.KeyActiveClassID)
		return nil
	}

	s.mu.Lock()
	s.activeID = id
	s.mu.Unlock()
	return nil
}

// List returns all classes ordered by creation time.
func (s *ClassService) List(ctx context.Context) ([]domain.Class, error) {
	return s.store.List(ctx)
}

// Get retrieves a class by ID.
func (s *ClassService) Get(ctx context.Context, id string) (*domain.Class, error) {
	return s.store.Get(ctx, id)
}

// Active returns the currently selected class, nil if none.
func (s *ClassService) Active() *domain.Class {
	s.mu.RLock()
	id := s.activeID
	s.mu.RUnlock()
	if id == "" {
		return nil
	}

	class, err := s.store.Get(context.Background(), id)
	if err != nil {
		return nil
	}
	return class
}

// Create adds a new class and makes it the active selection. Initial
// document assignment is attempted per document and soft-fails into
// the returned report; the class itself is always created.
func (s *ClassService) Create(ctx context.Context, name string, subject domain.Subject, description string, initialDocumentIDs []string) (*domain.Class, *domain.AssignmentReport, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil, fmt.Errorf("%w: class name must not be empty", domain.ErrInvalidInput)
	}
	if !subject.IsValid() {
		return nil, nil, fmt.Errorf("%w: unknown subject %q", domain.ErrInvalidInput, subject)
	}

	class := domain.NewClass(uuid.NewString(), name, subject, description)
	if err := s.store.Save(ctx, *class); err != nil {
		return nil, nil, fmt.Errorf("saving class: %w", err)
	}

	report := s.applyChanges(ctx, class, initialDocumentIDs, nil)
	if err := s.store.Save(ctx, *class); err != nil {
		return nil, nil, fmt.Errorf("saving class: %w", err)
	}

	if err := s.Select(ctx, class.ID); err != nil {
		logger.Warn("selecting new class %s: %v", class.ID, err)
	}
	return class, report, nil
}

// Edit updates name, subject and description in place. Editing an
// unknown id is a no-op.
func (s *ClassService) Edit(ctx context.Context, id, name string, subject domain.Subject, description string) error {
	class, err := s.store.Get(ctx, id)
	if err != nil {
		return nil
	}
	if name = strings.TrimSpace(name); name != "" {
		class.Name = name
	}
	if subject != "" {
		if !subject.IsValid() {
			return fmt.Errorf("%w: unknown subject %q", domain.ErrInvalidInput, subject)
		}
		class.Subject = subject
	}
	class.Description = description
	return s.store.Save(ctx, *class)
}

// Delete removes a class, cascading to its server-side sessions and
// its cached transcript. Documents are never deleted, only their
// association with the class. If the deleted class was active, the
// first remaining class is selected.
func (s *ClassService) Delete(ctx context.Context, id string) error {
	if _, err := s.store.Get(ctx, id); err != nil {
		return err
	}

	if s.chat != nil {
		if err := s.chat.DeleteSessionsForClass(ctx, id); err != nil {
			logger.Warn("deleting sessions for class %s: %v", id, err)
		}
	}
	if err := s.cache.Delete(ctx, driven.ScopeClass, id); err != nil {
		logger.Warn("purging class transcript %s: %v", id, err)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting class: %w", err)
	}

	s.mu.RLock()
	wasActive := s.activeID == id
	s.mu.RUnlock()
	if !wasActive {
		return nil
	}

	remaining, err := s.store.List(ctx)
	if err != nil || len(remaining) == 0 {
		return s.Select(ctx, "")
	}
	return s.Select(ctx, remaining[0].ID)
}

// Select makes a class the active selection. The outgoing class's
// transcript is cached and the incoming class's cached conversation
// restored through the chat service. Passing an empty id clears the
// selection.
func (s *ClassService) Select(ctx context.Context, id string) error {
	if id != "" {
		if _, err := s.store.Get(ctx, id); err != nil {
			return err
		}
	}

	s.mu.Lock()
	outgoing := s.activeID
	s.activeID = id
	s.mu.Unlock()

	if s.chat != nil && outgoing != id {
		if err := s.chat.SwitchClass(ctx, outgoing, id); err != nil {
			logger.Warn("switching chat context to class %s: %v", id, err)
		}
	}

	if id == "" {
		return s.kv.Delete(ctx, driven.KeyActiveClassID)
	}
	return s.kv.Put(ctx, driven.KeyActiveClassID, id)
}

// AssignDocuments converges the class's document set to exactly
// documentIDs. Each change is attempted independently; failures are
// collected in the report and only successful changes are applied to
// the registry.
func (s *ClassService) AssignDocuments(ctx context.Context, classID string, documentIDs []string) (*domain.AssignmentReport, error) {
	class, err := s.store.Get(ctx, classID)
	if err != nil {
		return nil, err
	}

	target := make(map[string]bool, len(documentIDs))
	for _, id := range documentIDs {
		target[id] = true
	}

	var toAdd, toRemove []string
	for id := range target {
		if !class.HasDocument(id) {
			toAdd = append(toAdd, id)
		}
	}
	for _, id := range class.Documents {
		if !target[id] {
			toRemove = append(toRemove, id)
		}
	}

	report := s.applyChanges(ctx, class, toAdd, toRemove)
	if err := s.store.Save(ctx, *class); err != nil {
		return report, fmt.Errorf("saving class: %w", err)
	}
	return report, nil
}

// applyChanges attempts each assignment change against the backend,
// mutating the class only for changes that succeeded.
func (s *ClassService) applyChanges(ctx context.Context, class *domain.Class, toAdd, toRemove []string) *domain.AssignmentReport {
	report := &domain.AssignmentReport{}

	for _, docID := range toAdd {
		if err := s.backend.AssignDocument(ctx, docID, class.ID); err != nil {
			report.Failures = append(report.Failures, domain.AssignmentFailure{
				DocumentID: docID, Op: "add", Err: err,
			})
			continue
		}
		class.AddDocument(docID)
		report.Added = append(report.Added, docID)
	}

	for _, docID := range toRemove {
		if err := s.backend.UnassignDocument(ctx, docID, class.ID); err != nil {
			report.Failures = append(report.Failures, domain.AssignmentFailure{
				DocumentID: docID, Op: "remove", Err: err,
			})
			continue
		}
		class.RemoveDocument(docID)
		report.Removed = append(report.Removed, docID)
	}

	// Rebuild the class's retrieval index only when membership changed.
	if len(report.Added) > 0 || len(report.Removed) > 0 {
		if err := s.backend.TransferDocuments(ctx, class.ID, class.Documents); err != nil {
			logger.Warn("transferring documents for class %s: %v", class.ID, err)
			report.Failures = append(report.Failures, domain.AssignmentFailure{
				DocumentID: strings.Join(class.Documents, ","), Op: "transfer", Err: err,
			})
		}
	}

	return report
}

// Reindex rebuilds the class's retrieval collection server-side.
func (s *ClassService) Reindex(ctx context.Context, classID string) error {
	if _, err := s.store.Get(ctx, classID); err != nil {
		return err
	}
	if err := s.backend.ReindexClass(ctx, classID); err != nil {
		return fmt.Errorf("reindexing class %s: %w", classID, err)
	}
	return nil
}
