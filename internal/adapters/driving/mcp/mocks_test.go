package mcp

import (
	"context"
	"io"

	"github.com/ragscholar/scholar-cli/internal/core/domain"
)

// mockChatService is a mock implementation of driving.ChatService.
type mockChatService struct {
	sessions   []domain.Session
	active     *domain.Session
	transcript domain.Transcript
	reply      *domain.Message
	err        error

	newChats  int
	sentQuery string
}

func (m *mockChatService) Restore(_ context.Context) error {
	return m.err
}

func (m *mockChatService) RefreshSessions(_ context.Context) error {
	return m.err
}

func (m *mockChatService) Sessions() []domain.Session {
	return m.sessions
}

func (m *mockChatService) ActiveSession() *domain.Session {
	return m.active
}

func (m *mockChatService) Transcript() domain.Transcript {
	return m.transcript
}

func (m *mockChatService) NewChat(_ context.Context) error {
	m.newChats++
	return m.err
}

func (m *mockChatService) SwitchSession(_ context.Context, _ string) error {
	return m.err
}

func (m *mockChatService) SwitchClass(_ context.Context, _, _ string) error {
	return m.err
}

func (m *mockChatService) Send(_ context.Context, query string) (*domain.Message, error) {
	m.sentQuery = query
	if m.err != nil {
		return nil, m.err
	}
	return m.reply, nil
}

func (m *mockChatService) RenameSession(_ context.Context, _, _ string) error {
	return m.err
}

func (m *mockChatService) DeleteSession(_ context.Context, _ string) error {
	return m.err
}

func (m *mockChatService) DeleteSessionsForClass(_ context.Context, _ string) error {
	return m.err
}

// mockClassService is a mock implementation of driving.ClassService.
type mockClassService struct {
	classes []domain.Class
	class   *domain.Class
	active  *domain.Class
	report  *domain.AssignmentReport
	err     error

	selected string
}

func (m *mockClassService) Load(_ context.Context) error {
	return m.err
}

func (m *mockClassService) List(_ context.Context) ([]domain.Class, error) {
	return m.classes, m.err
}

func (m *mockClassService) Get(_ context.Context, _ string) (*domain.Class, error) {
	return m.class, m.err
}

func (m *mockClassService) Active() *domain.Class {
	return m.active
}

func (m *mockClassService) Create(
	_ context.Context,
	_ string,
	_ domain.Subject,
	_ string,
	_ []string,
) (*domain.Class, *domain.AssignmentReport, error) {
	return m.class, m.report, m.err
}

func (m *mockClassService) Edit(_ context.Context, _, _ string, _ domain.Subject, _ string) error {
	return m.err
}

func (m *mockClassService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockClassService) Select(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.selected = id
	return nil
}

func (m *mockClassService) AssignDocuments(_ context.Context, _ string, _ []string) (*domain.AssignmentReport, error) {
	return m.report, m.err
}

func (m *mockClassService) Reindex(_ context.Context, _ string) error {
	return m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents []domain.Document
	document  *domain.Document
	err       error

	refreshes int
}

func (m *mockDocumentService) Refresh(_ context.Context) error {
	m.refreshes++
	return m.err
}

func (m *mockDocumentService) List() []domain.Document {
	return m.documents
}

func (m *mockDocumentService) Get(id string) (*domain.Document, error) {
	for i := range m.documents {
		if m.documents[i].ID == id {
			return &m.documents[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockDocumentService) Upload(_ context.Context, _ string, _ io.Reader) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) UploadPath(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockDocumentService) Assign(_ context.Context, _, _ string) error {
	return m.err
}

func (m *mockDocumentService) Unassign(_ context.Context, _, _ string) error {
	return m.err
}

func (m *mockDocumentService) InFlight(_ string) bool {
	return false
}
