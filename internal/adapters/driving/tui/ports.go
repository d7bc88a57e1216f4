// Package tui provides an interactive terminal user interface for Scholar.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/ragscholar/scholar-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chat runs the conversation pipeline and session registry.
	Chat driving.ChatService

	// Class manages the class registry and active selection.
	Class driving.ClassService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(chat driving.ChatService, class driving.ClassService) *Ports {
	return &Ports{
		Chat:  chat,
		Class: class,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	if p.Class == nil {
		return ErrMissingClassService
	}
	return nil
}
