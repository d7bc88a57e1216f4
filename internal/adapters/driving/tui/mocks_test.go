package tui

import (
	"context"

	"github.com/ragscholar/scholar-cli/internal/core/domain"
)

// MockChatService is a mock implementation of driving.ChatService.
type MockChatService struct {
	RestoreFunc                func(ctx context.Context) error
	RefreshSessionsFunc        func(ctx context.Context) error
	SessionsFunc               func() []domain.Session
	ActiveSessionFunc          func() *domain.Session
	TranscriptFunc             func() domain.Transcript
	NewChatFunc                func(ctx context.Context) error
	SwitchSessionFunc          func(ctx context.Context, id string) error
	SwitchClassFunc            func(ctx context.Context, outgoingClassID, incomingClassID string) error
	SendFunc                   func(ctx context.Context, query string) (*domain.Message, error)
	RenameSessionFunc          func(ctx context.Context, id, name string) error
	DeleteSessionFunc          func(ctx context.Context, id string) error
	DeleteSessionsForClassFunc func(ctx context.Context, classID string) error
}

func (m *MockChatService) Restore(ctx context.Context) error {
	if m.RestoreFunc != nil {
		return m.RestoreFunc(ctx)
	}
	return nil
}

func (m *MockChatService) RefreshSessions(ctx context.Context) error {
	if m.RefreshSessionsFunc != nil {
		return m.RefreshSessionsFunc(ctx)
	}
	return nil
}

func (m *MockChatService) Sessions() []domain.Session {
	if m.SessionsFunc != nil {
		return m.SessionsFunc()
	}
	return nil
}

func (m *MockChatService) ActiveSession() *domain.Session {
	if m.ActiveSessionFunc != nil {
		return m.ActiveSessionFunc()
	}
	return nil
}

func (m *MockChatService) Transcript() domain.Transcript {
	if m.TranscriptFunc != nil {
		return m.TranscriptFunc()
	}
	return nil
}

func (m *MockChatService) NewChat(ctx context.Context) error {
	if m.NewChatFunc != nil {
		return m.NewChatFunc(ctx)
	}
	return nil
}

func (m *MockChatService) SwitchSession(ctx context.Context, id string) error {
	if m.SwitchSessionFunc != nil {
		return m.SwitchSessionFunc(ctx, id)
	}
	return nil
}

func (m *MockChatService) SwitchClass(ctx context.Context, outgoingClassID, incomingClassID string) error {
	if m.SwitchClassFunc != nil {
		return m.SwitchClassFunc(ctx, outgoingClassID, incomingClassID)
	}
	return nil
}

func (m *MockChatService) Send(ctx context.Context, query string) (*domain.Message, error) {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, query)
	}
	return nil, nil
}

func (m *MockChatService) RenameSession(ctx context.Context, id, name string) error {
	if m.RenameSessionFunc != nil {
		return m.RenameSessionFunc(ctx, id, name)
	}
	return nil
}

func (m *MockChatService) DeleteSession(ctx context.Context, id string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, id)
	}
	return nil
}

func (m *MockChatService) DeleteSessionsForClass(ctx context.Context, classID string) error {
	if m.DeleteSessionsForClassFunc != nil {
		return m.DeleteSessionsForClassFunc(ctx, classID)
	}
	return nil
}

// MockClassService is a mock implementation of driving.ClassService.
type MockClassService struct {
	LoadFunc            func(ctx context.Context) error
	ListFunc            func(ctx context.Context) ([]domain.Class, error)
	GetFunc             func(ctx context.Context, id string) (*domain.Class, error)
	ActiveFunc          func() *domain.Class
	CreateFunc          func(ctx context.Context, name string, subject domain.Subject, description string, initialDocumentIDs []string) (*domain.Class, *domain.AssignmentReport, error)
	EditFunc            func(ctx context.Context, id, name string, subject domain.Subject, description string) error
	DeleteFunc          func(ctx context.Context, id string) error
	SelectFunc          func(ctx context.Context, id string) error
	AssignDocumentsFunc func(ctx context.Context, classID string, documentIDs []string) (*domain.AssignmentReport, error)
	ReindexFunc         func(ctx context.Context, classID string) error
}

func (m *MockClassService) Load(ctx context.Context) error {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	return nil
}

func (m *MockClassService) List(ctx context.Context) ([]domain.Class, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockClassService) Get(ctx context.Context, id string) (*domain.Class, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockClassService) Active() *domain.Class {
	if m.ActiveFunc != nil {
		return m.ActiveFunc()
	}
	return nil
}

func (m *MockClassService) Create(ctx context.Context, name string, subject domain.Subject, description string, initialDocumentIDs []string) (*domain.Class, *domain.AssignmentReport, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, name, subject, description, initialDocumentIDs)
	}
	return nil, nil, nil
}

func (m *MockClassService) Edit(ctx context.Context, id, name string, subject domain.Subject, description string) error {
	if m.EditFunc != nil {
		return m.EditFunc(ctx, id, name, subject, description)
	}
	return nil
}

func (m *MockClassService) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockClassService) Select(ctx context.Context, id string) error {
	if m.SelectFunc != nil {
		return m.SelectFunc(ctx, id)
	}
	return nil
}

func (m *MockClassService) AssignDocuments(ctx context.Context, classID string, documentIDs []string) (*domain.AssignmentReport, error) {
	if m.AssignDocumentsFunc != nil {
		return m.AssignDocumentsFunc(ctx, classID, documentIDs)
	}
	return nil, nil
}

func (m *MockClassService) Reindex(ctx context.Context, classID string) error {
	if m.ReindexFunc != nil {
		return m.ReindexFunc(ctx, classID)
	}
	return nil
}
