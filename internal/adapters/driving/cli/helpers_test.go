package cli

import (
	"context"
	"io"
	"time"

	"github.com/ragscholar/scholar-cli/internal/core/domain"
	"github.com/ragscholar/scholar-cli/internal/core/ports/driving"
)

// MockStatusService implements driving.StatusService.
type MockStatusService struct {
	CheckFunc func(ctx context.Context) (*driving.StatusReport, error)
}

func (m *MockStatusService) Check(ctx context.Context) (*driving.StatusReport, error) {
	if m.CheckFunc != nil {
		return m.CheckFunc(ctx)
	}
	return &driving.StatusReport{BackendReachable: true}, nil
}

// MockClassService implements driving.ClassService.
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
	return nil, domain.ErrNotFound
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
	return &domain.Class{ID: "cls-new", Name: name, Subject: subject}, &domain.AssignmentReport{}, nil
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
	return &domain.AssignmentReport{}, nil
}

func (m *MockClassService) Reindex(ctx context.Context, classID string) error {
	if m.ReindexFunc != nil {
		return m.ReindexFunc(ctx, classID)
	}
	return nil
}

// MockDocumentService implements driving.DocumentService.
type MockDocumentService struct {
	RefreshFunc    func(ctx context.Context) error
	ListFunc       func() []domain.Document
	GetFunc        func(id string) (*domain.Document, error)
	UploadFunc     func(ctx context.Context, filename string, content io.Reader) (*domain.Document, error)
	UploadPathFunc func(ctx context.Context, path string) (*domain.Document, error)
	DeleteFunc     func(ctx context.Context, id string) error
	AssignFunc     func(ctx context.Context, documentID, classID string) error
	UnassignFunc   func(ctx context.Context, documentID, classID string) error
	InFlightFunc   func(documentID string) bool
}

func (m *MockDocumentService) Refresh(ctx context.Context) error {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx)
	}
	return nil
}

func (m *MockDocumentService) List() []domain.Document {
	if m.ListFunc != nil {
		return m.ListFunc()
	}
	return nil
}

func (m *MockDocumentService) Get(id string) (*domain.Document, error) {
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return nil, domain.ErrNotFound
}

func (m *MockDocumentService) Upload(ctx context.Context, filename string, content io.Reader) (*domain.Document, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, filename, content)
	}
	return &domain.Document{ID: "doc-new", Filename: filename}, nil
}

func (m *MockDocumentService) UploadPath(ctx context.Context, path string) (*domain.Document, error) {
	if m.UploadPathFunc != nil {
		return m.UploadPathFunc(ctx, path)
	}
	return &domain.Document{ID: "doc-new", Filename: path}, nil
}

func (m *MockDocumentService) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockDocumentService) Assign(ctx context.Context, documentID, classID string) error {
	if m.AssignFunc != nil {
		return m.AssignFunc(ctx, documentID, classID)
	}
	return nil
}

func (m *MockDocumentService) Unassign(ctx context.Context, documentID, classID string) error {
	if m.UnassignFunc != nil {
		return m.UnassignFunc(ctx, documentID, classID)
	}
	return nil
}

func (m *MockDocumentService) InFlight(documentID string) bool {
	if m.InFlightFunc != nil {
		return m.InFlightFunc(documentID)
	}
	return false
}

// MockChatService implements driving.ChatService.
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
	return &domain.Message{Role: domain.RoleAssistant, Content: "Answer"}, nil
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

// MockAchievementService implements driving.AchievementService.
type MockAchievementService struct {
	RefreshFunc func(ctx context.Context) ([]domain.Achievement, error)
	ProfileFunc func() *domain.Profile
	PendingFunc func() []domain.Achievement
	DismissFunc func(id string)
}

func (m *MockAchievementService) Refresh(ctx context.Context) ([]domain.Achievement, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx)
	}
	return nil, nil
}

func (m *MockAchievementService) Profile() *domain.Profile {
	if m.ProfileFunc != nil {
		return m.ProfileFunc()
	}
	return &domain.Profile{}
}

func (m *MockAchievementService) Pending() []domain.Achievement {
	if m.PendingFunc != nil {
		return m.PendingFunc()
	}
	return nil
}

func (m *MockAchievementService) Dismiss(id string) {
	if m.DismissFunc != nil {
		m.DismissFunc(id)
	}
}

// MockPoller implements driving.Poller.
type MockPoller struct {
	StartFunc func(ctx context.Context) error
	StopFunc  func() error

	onUnlock func(domain.Achievement)
}

func (m *MockPoller) SetOnUnlock(fn func(domain.Achievement)) {
	m.onUnlock = fn
}

func (m *MockPoller) Start(ctx context.Context) error {
	if m.StartFunc != nil {
		return m.StartFunc(ctx)
	}
	return nil
}

func (m *MockPoller) Stop() error {
	if m.StopFunc != nil {
		return m.StopFunc()
	}
	return nil
}

// testClasses is the class fixture used by setupTestServices.
func testClasses() []domain.Class {
	return []domain.Class{
		{
			ID:          "cls-1",
			Name:        "Biology 101",
			Subject:     domain.SubjectScience,
			Description: "Intro biology",
			Documents:   []string{"doc-1", "doc-2"},
		},
		{
			ID:      "cls-2",
			Name:    "World History",
			Subject: domain.SubjectHistory,
		},
	}
}

// testDocuments is the document fixture used by setupTestServices.
func testDocuments() []domain.Document {
	return []domain.Document{
		{ID: "doc-1", Filename: "notes.pdf", Size: 2048, ChunkCount: 12, AssignedClasses: []string{"cls-1"}},
		{ID: "doc-2", Filename: "slides.pdf", Size: 4096, ChunkCount: 30},
	}
}

// testSessions is the session fixture used by setupTestServices.
func testSessions() []domain.Session {
	return []domain.Session{
		{ID: "ses-1", Name: "Photosynthesis", MessageCount: 4, ClassID: "cls-1", ClassName: "Biology 101", State: domain.SessionPersisted},
		{ID: "ses-2", Name: "Cell division", MessageCount: 2, State: domain.SessionPersisted},
	}
}

// setupTestServices wires mock services with populated fixtures into
// the command tree and returns a cleanup function restoring the
// previous wiring.
func setupTestServices() func() {
	oldStatus := statusService
	oldClass := classService
	oldDocument := documentService
	oldChat := chatService
	oldAchievements := achievementService
	oldPoller := achievementPoller

	unlockedAt := time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)
	classes := testClasses()
	active := classes[0]
	sessions := testSessions()

	SetServices(Services{
		Status: &MockStatusService{
			CheckFunc: func(_ context.Context) (*driving.StatusReport, error) {
				return &driving.StatusReport{
					BackendReachable: true,
					Classes:          2,
					Documents:        2,
					Sessions:         2,
				}, nil
			},
		},
		Class: &MockClassService{
			ListFunc: func(_ context.Context) ([]domain.Class, error) {
				return classes, nil
			},
			ActiveFunc: func() *domain.Class { return &active },
		},
		Document: &MockDocumentService{
			ListFunc: testDocuments,
		},
		Chat: &MockChatService{
			SessionsFunc: func() []domain.Session { return sessions },
			ActiveSessionFunc: func() *domain.Session {
				return &sessions[0]
			},
			TranscriptFunc: func() domain.Transcript {
				return domain.Transcript{
					{Role: domain.RoleUser, Content: "What is osmosis?"},
					{
						Role:    domain.RoleAssistant,
						Content: "Osmosis is the movement of water across a membrane.",
						Citations: []domain.Citation{
							{Source: "notes.pdf", Preview: "water moves across the membrane", Score: 0.9},
						},
					},
				}
			},
			SendFunc: func(_ context.Context, query string) (*domain.Message, error) {
				return &domain.Message{
					Role:    domain.RoleAssistant,
					Content: "Osmosis is the movement of water across a membrane.",
					Citations: []domain.Citation{
						{Source: "notes.pdf", Preview: "water moves across the membrane", Score: 0.9},
					},
				}, nil
			},
		},
		Achievements: &MockAchievementService{
			ProfileFunc: func() *domain.Profile {
				return &domain.Profile{
					UserID:      "user-1",
					DisplayName: "Sam",
					Points:      120,
					Streak:      5,
					Achievements: []domain.Achievement{
						{ID: "ach-1", Name: "First Question", Description: "Ask your first question", Points: 10, UnlockedAt: &unlockedAt},
						{ID: "ach-2", Name: "Bookworm", Description: "Upload ten documents", Points: 50},
					},
				}
			},
		},
		Poller: &MockPoller{},
	})

	return func() {
		statusService = oldStatus
		classService = oldClass
		documentService = oldDocument
		chatService = oldChat
		achievementService = oldAchievements
		achievementPoller = oldPoller
	}
}
