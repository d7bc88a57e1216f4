// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/ragscholar/scholar-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewChat is the conversation view.
	ViewChat
	// ViewSessions is the session management view.
	ViewSessions
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewChat:
		return "chat"
	case ViewSessions:
		return "sessions"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// SendCompleted carries the assistant reply back to the model. On
// failure the transcript still holds a synthetic assistant turn, so
// the view re-renders either way.
type SendCompleted struct {
	Reply *domain.Message
	Err   error
}

// NewChatStarted signals a fresh conversation was started.
type NewChatStarted struct {
	Err error
}

// SessionsLoaded carries the session list from the service.
type SessionsLoaded struct {
	Sessions []domain.Session
	Err      error
}

// SessionSwitched signals a session became active.
type SessionSwitched struct {
	ID  string
	Err error
}

// SessionRemoved signals a session was deleted.
type SessionRemoved struct {
	ID  string
	Err error
}

// ClassesLoaded carries the class list for the class picker.
type ClassesLoaded struct {
	Classes []domain.Class
	Err     error
}

// ClassSelected signals a class became the active selection.
type ClassSelected struct {
	Class domain.Class
	Err   error
}
