package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ragscholar/scholar-cli/internal/core/domain"
	"github.com/ragscholar/scholar-cli/internal/logger"
)

// chatRequest is the wire form of a chat turn.
type chatRequest struct {
	Query          string   `json:"query"`
	SessionID      string   `json:"session_id"`
	ClassID        string   `json:"class_id,omitempty"`
	DocumentIDs    []string `json:"document_ids,omitempty"`
	ProfileContext string   `json:"profile_context,omitempty"`
}

// chatResponse is the backend's answer to a chat turn.
type chatResponse struct {
	Answer    string            `json:"answer"`
	Citations []domain.Citation `json:"citations"`
	SessionID string            `json:"session_id"`
}

// SendChat sends one question and returns the assistant's reply.
// Unlike every other call, chat uses the unbounded HTTP client: a
// retrieval-augmented answer can legitimately take minutes, and the
// backend enforces its own deadline.
func (c *Client) SendChat(ctx context.Context, req domain.ChatRequest) (*domain.ChatReply, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body := chatRequest{
		Query:          req.Query,
		SessionID:      req.SessionID,
		ClassID:        req.ClassID,
		DocumentIDs:    req.DocumentIDs,
		ProfileContext: req.ProfileContext,
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshalling chat request: %w", err)
	}

	httpReq, err := c.newRequest(ctx, http.MethodPost, "/chat", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	logger.Debug("sending chat turn for session %s", req.SessionID)
	resp, err := c.chatHTTP.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}

	var out chatResponse
	if err := decodeResponse(resp, &out); err != nil {
		return nil, fmt.Errorf("sending chat: %w", err)
	}
	return &domain.ChatReply{
		Answer:    out.Answer,
		Citations: out.Citations,
		SessionID: out.SessionID,
	}, nil
}
