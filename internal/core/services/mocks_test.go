package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ragscholar/scholar-cli/internal/core/domain"
)

// fakeBackend is a stateful in-memory stand-in for the RAG Scholar
// backend. Error fields inject failures per operation; counters let
// tests assert how often the backend was hit.
type fakeBackend struct {
	mu sync.Mutex

	documents []domain.Document
	sessions  []domain.Session
	profile   *domain.Profile

	chatAnswer    string
	chatCitations []domain.Citation

	// chatSessionID, when set, is echoed in replies instead of the
	// request's session id.
	chatSessionID string

	healthErr        error
	listDocsErr      error
	uploadErr        error
	deleteDocErr     error
	assignErr        error
	unassignErr      error
	transferErr      error
	reindexErr       error
	listSessionsErr  error
	createSessionErr error
	renameErr        error
	deleteSessionErr error
	messagesErr      error
	chatErr          error
	profileErr       error

	assignCalls        int
	unassignCalls      int
	transferCalls      int
	createSessionCalls int
	deleteSessionCalls int
	chatCalls          int

	// chatGate, when set, blocks SendChat until the channel closes.
	chatGate chan struct{}

	deletedSessions []string
	transcripts     map[string]domain.Transcript
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		chatAnswer:  "Here is what I found.",
		transcripts: make(map[string]domain.Transcript),
	}
}

// snapshotSessions returns a copy of the backend's session list.
func (f *fakeBackend) snapshotSessions() []domain.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Session, len(f.sessions))
	copy(out, f.sessions)
	return out
}

// count reads a call counter under the lock. Background refreshes may
// still be running when a test asserts.
func (f *fakeBackend) count(c *int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *c
}

func (f *fakeBackend) Health(_ context.Context) error {
	return f.healthErr
}

func (f *fakeBackend) ListDocuments(_ context.Context) ([]domain.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listDocsErr != nil {
		return nil, f.listDocsErr
	}
	out := make([]domain.Document, len(f.documents))
	copy(out, f.documents)
	return out, nil
}

func (f *fakeBackend) UploadDocument(_ context.Context, filename string, content io.Reader) (*domain.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	data, _ := io.ReadAll(content)
	doc := domain.Document{
		ID:         uuid.NewString(),
		Filename:   filename,
		Size:       int64(len(data)),
		UploadedAt: time.Now(),
	}
	f.documents = append(f.documents, doc)
	return &doc, nil
}

func (f *fakeBackend) DeleteDocument(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteDocErr != nil {
		return f.deleteDocErr
	}
	for i := range f.documents {
		if f.documents[i].ID == id {
			f.documents = append(f.documents[:i], f.documents[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeBackend) AssignDocument(_ context.Context, documentID, classID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assignCalls++
	if f.assignErr != nil {
		return f.assignErr
	}
	for i := range f.documents {
		if f.documents[i].ID == documentID {
			f.documents[i].AddClass(classID)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeBackend) UnassignDocument(_ context.Context, documentID, classID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unassignCalls++
	if f.unassignErr != nil {
		return f.unassignErr
	}
	for i := range f.documents {
		if f.documents[i].ID == documentID {
			f.documents[i].RemoveClass(classID)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeBackend) TransferDocuments(_ context.Context, _ string, _ []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transferCalls++
	return f.transferErr
}

func (f *fakeBackend) ReindexClass(_ context.Context, _ string) error {
	return f.reindexErr
}

func (f *fakeBackend) ListSessions(_ context.Context) ([]domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listSessionsErr != nil {
		return nil, f.listSessionsErr
	}
	out := make([]domain.Session, len(f.sessions))
	copy(out, f.sessions)
	return out, nil
}

func (f *fakeBackend) CreateSession(_ context.Context, name, classID, className string) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createSessionCalls++
	if f.createSessionErr != nil {
		return nil, f.createSessionErr
	}
	session := domain.Session{
		ID:        fmt.Sprintf("sess-%d", f.createSessionCalls),
		Name:      name,
		ClassID:   classID,
		ClassName: className,
		State:     domain.SessionPersisted,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.sessions = append(f.sessions, session)
	return &session, nil
}

func (f *fakeBackend) RenameSession(_ context.Context, id, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.renameErr != nil {
		return f.renameErr
	}
	for i := range f.sessions {
		if f.sessions[i].ID == id {
			f.sessions[i].Name = name
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeBackend) DeleteSession(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteSessionCalls++
	if f.deleteSessionErr != nil {
		return f.deleteSessionErr
	}
	f.deletedSessions = append(f.deletedSessions, id)
	for i := range f.sessions {
		if f.sessions[i].ID == id {
			f.sessions = append(f.sessions[:i], f.sessions[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeBackend) GetSessionMessages(_ context.Context, id string) (domain.Transcript, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.messagesErr != nil {
		return nil, f.messagesErr
	}
	return f.transcripts[id].Clone(), nil
}

func (f *fakeBackend) SendChat(_ context.Context, req domain.ChatRequest) (*domain.ChatReply, error) {
	if f.chatGate != nil {
		<-f.chatGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chatCalls++
	if f.chatErr != nil {
		return nil, f.chatErr
	}
	sessionID := req.SessionID
	if f.chatSessionID != "" {
		sessionID = f.chatSessionID
	}
	return &domain.ChatReply{
		Answer:    f.chatAnswer,
		Citations: f.chatCitations,
		SessionID: sessionID,
	}, nil
}

func (f *fakeBackend) GetProfile(_ context.Context) (*domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	if f.profile == nil {
		return &domain.Profile{}, nil
	}
	profile := *f.profile
	return &profile, nil
}
