// Package chat provides the conversation view component for the TUI.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ragscholar/scholar-cli/internal/adapters/driving/tui/components/input"
	"github.com/ragscholar/scholar-cli/internal/adapters/driving/tui/components/status"
	"github.com/ragscholar/scholar-cli/internal/adapters/driving/tui/keymap"
	"github.com/ragscholar/scholar-cli/internal/adapters/driving/tui/messages"
	"github.com/ragscholar/scholar-cli/internal/adapters/driving/tui/styles"
	"github.com/ragscholar/scholar-cli/internal/core/domain"
	"github.com/ragscholar/scholar-cli/internal/core/ports/driving"
)

// chromeHeight is the vertical space taken by the title, input and
// status bar around the transcript viewport.
const chromeHeight = 6

// View is the conversation view: a transcript viewport above a
// question input and a status bar.
type View struct {
	styles       *styles.Styles
	chatService  driving.ChatService
	classService driving.ClassService

	input    *input.ChatInput
	viewport viewport.Model
	status   *status.Bar

	// picker state for the class selector overlay
	picker    bool
	classes   []domain.Class
	pickerIdx int

	sending bool
	width   int
	height  int
	ready   bool
	err     error
}

// NewView creates a new chat view.
func NewView(
	s *styles.Styles,
	chatService driving.ChatService,
	classService driving.ClassService,
) *View {
	vp := viewport.New(80, 18)

	return &View{
		styles:       s,
		chatService:  chatService,
		classService: classService,
		input:        input.NewChatInput(s),
		viewport:     vp,
		status:       status.NewBar(s, keymap.DefaultKeyMap()),
	}
}

// Init initialises the view and focuses the input.
func (v *View) Init() tea.Cmd {
	v.Refresh()
	return v.input.Init()
}

// Refresh re-renders the transcript and context from the services.
func (v *View) Refresh() {
	v.syncTranscript()
	v.syncContext()
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		v.viewport.Width = msg.Width
		v.viewport.Height = max(msg.Height-chromeHeight, 3)
		v.input.SetWidth(msg.Width)
		v.status.SetWidth(msg.Width)
		v.syncTranscript()
		return v, nil

	case tea.KeyMsg:
		if v.picker {
			return v.handlePickerKey(msg)
		}
		return v.handleKeyMsg(msg)

	case messages.SendCompleted:
		v.sending = false
		if msg.Err != nil {
			v.err = msg.Err
			v.status.SetState(status.StateError)
			v.status.SetMessage(msg.Err.Error())
		} else {
			v.err = nil
			v.status.SetState(status.StateReady)
			v.status.SetMessage("")
		}
		// The transcript carries the reply, or a synthetic turn on
		// failure, so re-render either way.
		v.syncTranscript()
		v.syncContext()
		v.viewport.GotoBottom()
		return v, nil

	case messages.NewChatStarted:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.err = nil
			v.status.SetState(status.StateReady)
			v.status.SetMessage("")
		}
		v.Refresh()
		return v, nil

	case messages.SessionSwitched:
		if msg.Err != nil {
			v.err = msg.Err
		}
		v.Refresh()
		return v, nil

	case messages.ClassesLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.picker = true
		v.classes = msg.Classes
		v.pickerIdx = 0
		return v, nil

	case messages.ClassSelected:
		v.picker = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.Refresh()
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.status.SetState(status.StateError)
		v.status.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg handles key presses outside the class picker.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case "ctrl+n":
		return v, v.newChat()

	case "ctrl+l":
		return v, v.loadClasses()

	case "ctrl+s":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewSessions}
		}

	case "enter":
		query := strings.TrimSpace(v.input.Value())
		if query == "" || v.sending {
			return v, nil
		}
		v.sending = true
		v.status.SetState(status.StateThinking)
		v.input.Reset()
		return v, v.send(query)

	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handlePickerKey handles key presses while the class picker is open.
func (v *View) handlePickerKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.pickerIdx > 0 {
			v.pickerIdx--
		}
	case "down", "j":
		if v.pickerIdx < len(v.classes)-1 {
			v.pickerIdx++
		}
	case "enter":
		if len(v.classes) > 0 && v.pickerIdx < len(v.classes) {
			return v, v.selectClass(v.classes[v.pickerIdx])
		}
		v.picker = false
	case "esc":
		v.picker = false
	}
	return v, nil
}

// send returns a command that dispatches the question through the
// chat pipeline.
func (v *View) send(query string) tea.Cmd {
	return func() tea.Msg {
		if v.chatService == nil {
			return messages.SendCompleted{Err: fmt.Errorf("chat service not available")}
		}
		reply, err := v.chatService.Send(context.Background(), query)
		return messages.SendCompleted{Reply: reply, Err: err}
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

// loadClasses returns a command that loads classes for the picker.
func (v *View) loadClasses() tea.Cmd {
	return func() tea.Msg {
		if v.classService == nil {
			return messages.ClassesLoaded{Err: fmt.Errorf("class service not available")}
		}
		classes, err := v.classService.List(context.Background())
		return messages.ClassesLoaded{Classes: classes, Err: err}
	}
}

// selectClass returns a command that makes a class the active selection.
func (v *View) selectClass(class domain.Class) tea.Cmd {
	return func() tea.Msg {
		if v.classService == nil {
			return messages.ClassSelected{Class: class, Err: fmt.Errorf("class service not available")}
		}
		err := v.classService.Select(context.Background(), class.ID)
		return messages.ClassSelected{Class: class, Err: err}
	}
}

// syncTranscript renders the active transcript into the viewport.
func (v *View) syncTranscript() {
	if v.chatService == nil {
		v.viewport.SetContent(v.styles.Muted.Render("Chat is not available."))
		return
	}

	transcript := v.chatService.Transcript()
	if transcript.Empty() {
		v.viewport.SetContent(v.styles.Muted.Render("Ask a question to get started."))
		return
	}

	var b strings.Builder
	for i := range transcript {
		msg := &transcript[i]
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(v.renderMessage(msg))
	}
	v.viewport.SetContent(b.String())
}

// renderMessage renders a single transcript turn with its citations.
func (v *View) renderMessage(msg *domain.Message) string {
	var b strings.Builder

	if msg.Role == domain.RoleUser {
		b.WriteString(v.styles.UserLabel.Render("You"))
	} else {
		b.WriteString(v.styles.AssistantLabel.Render("Scholar"))
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Normal.Render(msg.Content))
	b.WriteString("\n")

	for i := range msg.Citations {
		cite := fmt.Sprintf("  (%d) %s: %s", i+1, msg.Citations[i].Source, msg.Citations[i].Preview)
		b.WriteString(v.styles.Muted.Render(cite))
		b.WriteString("\n")
	}

	return b.String()
}

// syncContext updates the status bar from the active class and session.
func (v *View) syncContext() {
	if v.classService != nil {
		if class := v.classService.Active(); class != nil {
			v.status.SetClass(class.Name)
		} else {
			v.status.SetClass("")
		}
	}
	if v.chatService != nil {
		if session := v.chatService.ActiveSession(); session != nil {
			v.status.SetSession(session.Name)
		} else {
			v.status.SetSession("")
		}
	}
}

// View renders the chat view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Chat"))
	b.WriteString("\n\n")

	if v.picker {
		b.WriteString(v.renderPicker())
		return b.String()
	}

	b.WriteString(v.viewport.View())
	b.WriteString("\n")
	b.WriteString(v.input.View())
	b.WriteString("\n")
	b.WriteString(v.status.View())

	return b.String()
}

// renderPicker renders the class selector overlay.
func (v *View) renderPicker() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Select a class"))
	b.WriteString("\n\n")

	if len(v.classes) == 0 {
		b.WriteString(v.styles.Muted.Render("No classes yet."))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[esc] cancel"))
		return b.String()
	}

	for i := range v.classes {
		indicator := "  "
		if i == v.pickerIdx {
			indicator = "> "
		}
		line := fmt.Sprintf("%s%s (%s)", indicator, v.classes[i].Name, v.classes[i].Subject)
		if i == v.pickerIdx {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] navigate  [enter] select  [esc] cancel"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.viewport.Width = width
	v.viewport.Height = max(height-chromeHeight, 3)
	v.input.SetWidth(width)
	v.status.SetWidth(width)
}

// Sending reports whether a question is outstanding.
func (v *View) Sending() bool {
	return v.sending
}

// PickerOpen reports whether the class picker is showing.
func (v *View) PickerOpen() bool {
	return v.picker
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
