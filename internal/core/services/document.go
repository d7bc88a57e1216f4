package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/ragscholar/scholar-cli/internal/core/domain"
	"github.com/ragscholar/scholar-cli/internal/core/ports/driven"
	"github.com/ragscholar/scholar-cli/internal/core/ports/driving"
	"github.com/ragscholar/scholar-cli/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages the document registry. The backend owns the
// documents; the in-memory list is a mirror replaced wholesale after
// every mutating operation, never patched blindly.
type DocumentService struct {
	backend driven.BackendClient
	classes driven.ClassStore

	classService driving.ClassService

	mu       sync.RWMutex
	docs     []domain.Document
	inflight map[string]bool
}

// NewDocumentService creates a new document service.
func NewDocumentService(backend driven.BackendClient, classes driven.ClassStore) *DocumentService {
	return &DocumentService{
		backend:  backend,
		classes:  classes,
		inflight: make(map[string]bool),
	}
}

// SetClassService sets the class service used to resolve the active
// class for upload auto-assignment. Set after construction to break
// the class/document dependency cycle.
func (s *DocumentService) SetClassService(classService driving.ClassService) {
	s.classService = classService
}

// Refresh replaces the in-memory list from the backend. On failure the
// list is emptied rather than left stale.
func (s *DocumentService) Refresh(ctx context.Context) error {
	docs, err := s.backend.ListDocuments(ctx)

	s.mu.Lock()
	s.docs = docs
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("refreshing documents: %w", err)
	}
	return nil
}

// List returns the current in-memory document list.
func (s *DocumentService) List() []domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Document, len(s.docs))
	copy(out, s.docs)
	return out
}

// Get returns a document from the in-memory list by id.
func (s *DocumentService) Get(id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.docs {
		if s.docs[i].ID == id {
			doc := s.docs[i]
			return &doc, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Upload sends a file to the backend and refreshes the list. If a
// class is active the new document is auto-assigned to it; an
// assignment failure does not fail the upload.
func (s *DocumentService) Upload(ctx context.Context, filename string, content io.Reader) (*domain.Document, error) {
	doc, err := s.backend.UploadDocument(ctx, filename, content)
	if err != nil {
		return nil, err
	}

	if err := s.Refresh(ctx); err != nil {
		logger.Warn("refresh after upload: %v", err)
	}

	if s.classService != nil {
		if active := s.classService.Active(); active != nil {
			if err := s.Assign(ctx, doc.ID, active.ID); err != nil {
				logger.Warn("auto-assigning %s to class %s: %v", doc.ID, active.ID, err)
			}
		}
	}

	return doc, nil
}

// UploadPath uploads a file from the local filesystem.
func (s *DocumentService) UploadPath(ctx context.Context, path string) (*domain.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return s.Upload(ctx, filepath.Base(path), f)
}

// Delete removes a document from the backend, refreshes the list and
// removes the id from every class that referenced it.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	if err := s.backend.DeleteDocument(ctx, id); err != nil {
		return fmt.Errorf("deleting document %s: %w", id, err)
	}

	if err := s.Refresh(ctx); err != nil {
		logger.Warn("refresh after delete: %v", err)
	}

	// Cascade: a deleted document must not linger in any class.
	classes, err := s.classes.List(ctx)
	if err != nil {
		return fmt.Errorf("listing classes for cascade: %w", err)
	}
	for i := range classes {
		if !classes[i].HasDocument(id) {
			continue
		}
		classes[i].RemoveDocument(id)
		if err := s.classes.Save(ctx, classes[i]); err != nil {
			logger.Warn("removing %s from class %s: %v", id, classes[i].ID, err)
		}
	}
	return nil
}

// Assign adds a class tag to a document. Assigning an already-assigned
// pair is a no-op. On backend failure the list is reloaded so local
// state never drifts from the server.
func (s *DocumentService) Assign(ctx context.Context, documentID, classID string) error {
	doc, err := s.Get(documentID)
	if err != nil {
		return err
	}
	class, err := s.classes.Get(ctx, classID)
	if err != nil {
		return err
	}
	if doc.AssignedTo(classID) && class.HasDocument(documentID) {
		return nil
	}

	s.setInflight(documentID, true)
	defer s.setInflight(documentID, false)

	if err := s.backend.AssignDocument(ctx, documentID, classID); err != nil {
		if rerr := s.Refresh(ctx); rerr != nil {
			logger.Warn("reload after failed assign: %v", rerr)
		}
		return fmt.Errorf("assigning document %s: %w", documentID, err)
	}

	s.patchAssignment(documentID, classID, true)
	class.AddDocument(documentID)
	return s.classes.Save(ctx, *class)
}

// Unassign removes a class tag from a document. Unassigning an absent
// pair is a no-op.
func (s *DocumentService) Unassign(ctx context.Context, documentID, classID string) error {
	doc, err := s.Get(documentID)
	if err != nil {
		return err
	}
	class, err := s.classes.Get(ctx, classID)
	if err != nil {
		return err
	}
	if !doc.AssignedTo(classID) && !class.HasDocument(documentID) {
		return nil
	}

	s.setInflight(documentID, true)
	defer s.setInflight(documentID, false)

	if err := s.backend.UnassignDocument(ctx, documentID, classID); err != nil {
		if rerr := s.Refresh(ctx); rerr != nil {
			logger.Warn("reload after failed unassign: %v", rerr)
		}
		return fmt.Errorf("unassigning document %s: %w", documentID, err)
	}

	s.patchAssignment(documentID, classID, false)
	class.RemoveDocument(documentID)
	return s.classes.Save(ctx, *class)
}

// InFlight reports whether an assignment change is outstanding for the
// document. UIs use this to disable just that document's controls.
func (s *DocumentService) InFlight(documentID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inflight[documentID]
}

func (s *DocumentService) setInflight(documentID string, v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v {
		s.inflight[documentID] = true
	} else {
		delete(s.inflight, documentID)
	}
}

// patchAssignment updates the mirrored document's class list after a
// confirmed backend change.
func (s *DocumentService) patchAssignment(documentID, classID string, assigned bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.docs {
		if s.docs[i].ID != documentID {
			continue
		}
		if assigned {
			s.docs[i].AddClass(classID)
		} else {
			s.docs[i].RemoveClass(classID)
		}
		return
	}
}
