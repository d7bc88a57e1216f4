package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ragscholar/scholar-cli/internal/core/domain"
)

// wireSession is a session as the backend represents it. The backend
// has no notion of provisional sessions; everything it returns is
// persisted by definition.
type wireSession struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	MessageCount int       `json:"message_count"`
	ClassID      string    `json:"class_id"`
	ClassName    string    `json:"class_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// toDomain converts a wire session into the domain representation.
func (w wireSession) toDomain() domain.Session {
	return domain.Session{
		ID:           w.ID,
		Name:         w.Name,
		MessageCount: w.MessageCount,
		ClassID:      w.ClassID,
		ClassName:    w.ClassName,
		State:        domain.SessionPersisted,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
}

// sessionsResponse is the backend's session list envelope.
type sessionsResponse struct {
	Sessions []wireSession `json:"sessions"`
}

// ListSessions returns all persisted chat sessions.
func (c *Client) ListSessions(ctx context.Context) ([]domain.Session, error) {
	var out sessionsResponse
	if err := c.getJSON(ctx, "/sessions", &out); err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	sessions := make([]domain.Session, 0, len(out.Sessions))
	for _, w := range out.Sessions {
		sessions = append(sessions, w.toDomain())
	}
	return sessions, nil
}

// createSessionRequest is the body for session creation.
type createSessionRequest struct {
	Name      string `json:"name"`
	ClassID   string `json:"class_id,omitempty"`
	ClassName string `json:"class_name,omitempty"`
}

// CreateSession creates a session bound to a class context.
func (c *Client) CreateSession(ctx context.Context, name, classID, className string) (*domain.Session, error) {
	body := createSessionRequest{Name: name, ClassID: classID, ClassName: className}
	var w wireSession
	if err := c.doJSON(ctx, http.MethodPost, "/sessions", body, &w); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	s := w.toDomain()
	return &s, nil
}

// renameSessionRequest is the body for a session rename.
type renameSessionRequest struct {
	Name string `json:"name"`
}

// RenameSession changes a session's display name.
func (c *Client) RenameSession(ctx context.Context, id, name string) error {
	path := "/sessions/" + url.PathEscape(id)
	if err := c.doJSON(ctx, http.MethodPatch, path, renameSessionRequest{Name: name}, nil); err != nil {
		return fmt.Errorf("renaming session %s: %w", id, err)
	}
	return nil
}

// DeleteSession removes a persisted session.
func (c *Client) DeleteSession(ctx context.Context, id string) error {
	path := "/sessions/" + url.PathEscape(id)
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("deleting session %s: %w", id, err)
	}
	return nil
}

// messagesResponse is the backend's transcript envelope.
type messagesResponse struct {
	Messages []domain.Message `json:"messages"`
}

// GetSessionMessages fetches the stored transcript for a session.
func (c *Client) GetSessionMessages(ctx context.Context, id string) (domain.Transcript, error) {
	var out messagesResponse
	path := "/sessions/" + url.PathEscape(id) + "/messages"
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, fmt.Errorf("fetching messages for session %s: %w", id, err)
	}
	return domain.Transcript(out.Messages), nil
}
