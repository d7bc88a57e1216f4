package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question        string `json:"question" jsonschema:"the question to ask about the study material"`
	ClassID         string `json:"class_id,omitempty" jsonschema:"id of a class to scope the question to"`
	NewConversation bool   `json:"new_conversation,omitempty" jsonschema:"start a fresh conversation instead of continuing the current one"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer    string           `json:"answer"`
	Citations []CitationOutput `json:"citations,omitempty"`
	SessionID string           `json:"session_id,omitempty"`
}

// CitationOutput represents a single source citation.
type CitationOutput struct {
	Source  string  `json:"source"`
	Preview string  `json:"preview,omitempty"`
	Score   float64 `json:"score,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Ask a question about the uploaded study material",
	}, s.handleAsk)
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	if input.ClassID != "" {
		if s.ports.Class == nil {
			return nil, AskOutput{}, fmt.Errorf("class selection is not available")
		}
		if err := s.ports.Class.Select(ctx, input.ClassID); err != nil {
			return nil, AskOutput{}, fmt.Errorf("selecting class: %w", err)
		}
	}

	if input.NewConversation {
		if err := s.ports.Chat.NewChat(ctx); err != nil {
			return nil, AskOutput{}, fmt.Errorf("starting conversation: %w", err)
		}
	}

	reply, err := s.ports.Chat.Send(ctx, input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:    reply.Content,
		Citations: make([]CitationOutput, len(reply.Citations)),
	}

	for i := range reply.Citations {
		output.Citations[i] = CitationOutput{
			Source:  reply.Citations[i].Source,
			Preview: reply.Citations[i].Preview,
			Score:   reply.Citations[i].Score,
		}
	}

	if session := s.ports.Chat.ActiveSession(); session != nil {
		output.SessionID = session.ID
	}

	return nil, output, nil
}
