package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragscholar/scholar-cli/internal/core/domain"
)

func TestAskCmd_Use(t *testing.T) {
	assert.Equal(t, "ask [question]", askCmd.Use)
}

func TestAskCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestAskCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "What is osmosis?"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Osmosis is the movement of water across a membrane.")
	assert.Contains(t, buf.String(), "Sources:")
	assert.Contains(t, buf.String(), "(1) notes.pdf: water moves across the membrane")
	assert.Contains(t, buf.String(), "Session: Photosynthesis (ses-1)")
}

func TestAskCmd_NewConversation(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	newChats := 0
	base := chatService.(*MockChatService)
	base.NewChatFunc = func(_ context.Context) error {
		newChats++
		return nil
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "--new", "What is mitosis?"})
	defer func() {
		rootCmd.SetArgs(nil)
		askNew = false
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, 1, newChats)
}

func TestAskCmd_ContinuesSession(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	var switched string
	base := chatService.(*MockChatService)
	base.SwitchSessionFunc = func(_ context.Context, id string) error {
		switched = id
		return nil
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "--session", "ses-2", "Follow-up question"})
	defer func() {
		rootCmd.SetArgs(nil)
		askSessionID = ""
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "ses-2", switched)
}

func TestAskCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "--json", "What is osmosis?"})
	defer func() {
		rootCmd.SetArgs(nil)
		askJSON = false
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"content": "Osmosis is the movement of water across a membrane."`)
	assert.Contains(t, buf.String(), `"source": "notes.pdf"`)
}

func TestAskCmd_SendFails_PrintsSyntheticReply(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	chatService = &MockChatService{
		SendFunc: func(_ context.Context, _ string) (*domain.Message, error) {
			reply := &domain.Message{
				Role:    domain.RoleAssistant,
				Content: "Sorry, the assistant is unreachable right now.",
			}
			return reply, domain.ErrBackendUnavailable
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask", "What is osmosis?"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
	assert.Contains(t, buf.String(), "Sorry, the assistant is unreachable right now.")
}

func TestAskCmd_ErrorsWithoutService(t *testing.T) {
	oldChatService := chatService
	chatService = nil
	defer func() { chatService = oldChatService }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask", "question"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestAskCmd_SessionRefreshFails(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	chatService = &MockChatService{
		RefreshSessionsFunc: func(_ context.Context) error {
			return errors.New("backend unavailable")
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask", "--session", "ses-1", "question"})
	defer func() {
		rootCmd.SetArgs(nil)
		askSessionID = ""
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching sessions")
}
