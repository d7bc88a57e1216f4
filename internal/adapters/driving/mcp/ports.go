package mcp

import (
	"github.com/ragscholar/scholar-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chat runs the question pipeline.
	Chat driving.ChatService

	// Class manages the class registry.
	Class driving.ClassService

	// Document manages the document registry.
	Document driving.DocumentService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	// Class and Document are optional; the matching resources degrade
	// to empty or not-found when absent.
	return nil
}
