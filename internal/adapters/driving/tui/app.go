package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ragscholar/scholar-cli/internal/adapters/driving/tui/messages"
	"github.com/ragscholar/scholar-cli/internal/adapters/driving/tui/styles"
	"github.com/ragscholar/scholar-cli/internal/adapters/driving/tui/views/chat"
	"github.com/ragscholar/scholar-cli/internal/adapters/driving/tui/views/menu"
	"github.com/ragscholar/scholar-cli/internal/adapters/driving/tui/views/sessions"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// menuView is the main navigation menu.
	menuView *menu.View

	// chatView is the conversation view component.
	chatView *chat.View

	// sessionsView is the session management view component.
	sessionsView *sessions.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	a := &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		menuView:     menu.NewView(s),
		chatView:     chat.NewView(s, ports.Chat, ports.Class),
		sessionsView: sessions.NewView(s, ports.Chat),
		currentView:  messages.ViewMenu, // Start with menu
	}
	a.refreshMenuSummary()
	return a, nil
}

// refreshMenuSummary pushes the active class and session count into
// the menu so the landing view reflects the current study context.
func (a *App) refreshMenuSummary() {
	className := ""
	if class := a.ports.Class.Active(); class != nil {
		className = class.Name
	}
	a.menuView.SetSummary(className, len(a.ports.Chat.Sessions()))
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("scholar - Study Assistant"),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.chatView.SetDimensions(msg.Width, msg.Height)
		a.sessionsView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.handleKeyMsg(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		// Initialise views when switching to them
		switch msg.View {
		case messages.ViewChat:
			return a, a.chatView.Init()
		case messages.ViewSessions:
			return a, a.sessionsView.Init()
		case messages.ViewMenu:
			a.refreshMenuSummary()
		case messages.ViewHelp:
			// No special initialisation
		}
		return a, nil

	case messages.SendCompleted, messages.ClassesLoaded, messages.ClassSelected:
		a.chatView, cmd = a.chatView.Update(msg)
		return a, cmd

	case messages.NewChatStarted:
		// A new conversation always lands in the chat view.
		if msg.Err == nil {
			a.currentView = messages.ViewChat
		} else {
			a.err = msg.Err
		}
		a.chatView, cmd = a.chatView.Update(msg)
		return a, cmd

	case messages.SessionSwitched:
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.currentView = messages.ViewChat
		a.chatView, cmd = a.chatView.Update(msg)
		return a, cmd

	case messages.SessionsLoaded, messages.SessionRemoved:
		a.sessionsView, cmd = a.sessionsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewChat {
			a.chatView, cmd = a.chatView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to the active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewChat:
		a.chatView, cmd = a.chatView.Update(msg)
	case messages.ViewSessions:
		a.sessionsView, cmd = a.sessionsView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// handleKeyMsg routes key presses to the active view.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
		return a, cmd

	case messages.ViewChat:
		a.chatView, cmd = a.chatView.Update(msg)
		a.err = a.chatView.Err()
		return a, cmd

	case messages.ViewSessions:
		// Esc from sessions goes to menu
		if msg.Type == tea.KeyEsc {
			a.currentView = messages.ViewMenu
			a.refreshMenuSummary()
			return a, nil
		}
		if msg.String() == "q" {
			return a, tea.Quit
		}
		a.sessionsView, cmd = a.sessionsView.Update(msg)
		return a, cmd

	case messages.ViewHelp:
		// Esc from help goes to menu
		if msg.Type == tea.KeyEsc {
			a.currentView = messages.ViewMenu
			a.refreshMenuSummary()
			return a, nil
		}
		return a, nil
	}

	return a, nil
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewChat:
		return a.chatView.View()
	case messages.ViewSessions:
		return a.sessionsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Chat:
  (type)      Enter a question
  enter       Send
  ctrl+n      New conversation
  ctrl+l      Pick a class
  ctrl+s      Sessions
  esc         Back to Menu

Sessions:
  j/k, ↑/↓    Navigate sessions
  enter       Open session
  n           New conversation
  d           Delete session

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.chatView.SetDimensions(width, height)
	a.sessionsView.SetDimensions(width, height)
}
