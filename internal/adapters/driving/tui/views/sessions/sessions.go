// Package sessions provides the session management view for the TUI.
package sessions

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ragscholar/scholar-cli/internal/adapters/driving/tui/messages"
	"github.com/ragscholar/scholar-cli/internal/adapters/driving/tui/styles"
	"github.com/ragscholar/scholar-cli/internal/core/domain"
	"github.com/ragscholar/scholar-cli/internal/core/ports/driving"
)

// View is the session management view.
type View struct {
	styles      *styles.Styles
	chatService driving.ChatService

	sessions []domain.Session
	selected int
	width    int
	height   int
	ready    bool
	err      error
	loading  bool
}

// NewView creates a new sessions view.
func NewView(s *styles.Styles, chatService driving.ChatService) *View {
	return &View{
		styles:      s,
		chatService: chatService,
		sessions:    []domain.Session{},
	}
}

// Init initialises the view and loads sessions.
func (v *View) Init() tea.Cmd {
	return v.loadSessions()
}

// loadSessions returns a command that refreshes the session list.
func (v *View) loadSessions() tea.Cmd {
	return func() tea.Msg {
		if v.chatService == nil {
			return messages.SessionsLoaded{Err: fmt.Errorf("chat service not available")}
		}

		ctx := context.Background()
		if err := v.chatService.RefreshSessions(ctx); err != nil {
			return messages.SessionsLoaded{Err: err}
		}
		return messages.SessionsLoaded{Sessions: v.chatService.Sessions()}
	}
}

// Update handles messages for the sessions view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SessionsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.sessions = msg.Sessions
			v.err = nil
			if v.selected >= len(v.sessions) {
				v.selected = 0
			}
		}
		return v, nil

	case messages.SessionRemoved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		// Reload sessions after removal
		return v, v.loadSessions()
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.sessions)-1 {
			v.selected++
		}
	case "enter":
		// Switch to the selected session and return to the chat
		if len(v.sessions) > 0 && v.selected < len(v.sessions) {
			return v, v.switchSession(v.sessions[v.selected].ID)
		}
	case "n":
		// Start a fresh conversation
		return v, v.newChat()
	case "d", "delete", "backspace":
		if len(v.sessions) > 0 && v.selected < len(v.sessions) {
			return v, v.deleteSession(v.sessions[v.selected].ID)
		}
	case "r":
		v.loading = true
		return v, v.loadSessions()
	}

	return v, nil
}

// switchSession returns a command that makes a session active.
func (v *View) switchSession(id string) tea.Cmd {
	return func() tea.Msg {
		if v.chatService == nil {
			return messages.SessionSwitched{ID: id, Err: fmt.Errorf("chat service not available")}
		}
		err := v.chatService.SwitchSession(context.Background(), id)
		return messages.SessionSwitched{ID: id, Err: err}
	}
}

// newChat returns a command that starts a fresh conversation.
func (v *View) newChat() tea.Cmd {
	return func() tea.Msg {
		if v.chatService == nil {
			return messages.NewChatStarted{Err: fmt.Errorf("chat service not available")}
		}
		return messages.NewChatStarted{Err: v.chatService.NewChat(context.Background())}
	}
}

// deleteSession returns a command that deletes a session.
func (v *View) deleteSession(id string) tea.Cmd {
	return func() tea.Msg {
		if v.chatService == nil {
			return messages.SessionRemoved{ID: id, Err: fmt.Errorf("chat service not available")}
		}
		err := v.chatService.DeleteSession(context.Background(), id)
		return messages.SessionRemoved{ID: id, Err: err}
	}
}

// View renders the sessions view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Sessions"))
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading sessions..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if len(v.sessions) == 0 {
		b.WriteString(v.styles.Muted.Render("No sessions yet. Ask a question to start one."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	for i := range v.sessions {
		line := v.renderSession(i, &v.sessions[i])
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderSession renders a single session line.
func (v *View) renderSession(index int, session *domain.Session) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	active := " "
	if v.chatService != nil {
		if current := v.chatService.ActiveSession(); current != nil && current.ID == session.ID {
			active = "*"
		}
	}

	name := session.Name
	if name == "" {
		name = session.ID
	}

	detail := fmt.Sprintf("%d messages", session.MessageCount)
	if session.ClassName != "" {
		detail = fmt.Sprintf("%s, %s", detail, session.ClassName)
	}

	// Truncate name if needed
	maxNameLen := v.width - len(detail) - 12
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen-3] + "..."
	}

	var line string
	if index == v.selected {
		line = v.styles.Selected.Render(fmt.Sprintf("%s%s %s (%s)", indicator, active, name, detail))
	} else {
		line = v.styles.Normal.Render(indicator+active+" "+name) +
			v.styles.Muted.Render(fmt.Sprintf(" (%s)", detail))
	}

	return line
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[enter] open  [n] new chat  [d] delete  [r] reload  [esc] back  [q] quit")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Sessions returns the current session list.
func (v *View) Sessions() []domain.Session {
	return v.sessions
}

// SelectedIndex returns the currently selected session index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
