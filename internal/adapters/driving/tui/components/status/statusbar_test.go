package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragscholar/scholar-cli/internal/adapters/driving/tui/keymap"
	"github.com/ragscholar/scholar-cli/internal/adapters/driving/tui/styles"
)

func newTestBar() *Bar {
	return NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())
}

func TestNewBar(t *testing.T) {
	bar := newTestBar()

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, 80, bar.Width())
}

func TestNewBar_NilDefaults(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotPanics(t, func() { _ = bar.View() })
}

func TestBar_View(t *testing.T) {
	t.Run("ready with no context", func(t *testing.T) {
		bar := newTestBar()

		assert.Contains(t, bar.View(), "Ready")
	})

	t.Run("ready with class and session", func(t *testing.T) {
		bar := newTestBar()
		bar.SetWidth(120)
		bar.SetClass("Biology 101")
		bar.SetSession("Photosynthesis")

		view := bar.View()
		assert.Contains(t, view, "Biology 101 / Photosynthesis")
	})

	t.Run("thinking", func(t *testing.T) {
		bar := newTestBar()
		bar.SetState(StateThinking)

		assert.Contains(t, bar.View(), "Thinking...")
	})

	t.Run("error with message", func(t *testing.T) {
		bar := newTestBar()
		bar.SetState(StateError)
		bar.SetMessage("request timed out")

		assert.Contains(t, bar.View(), "Error: request timed out")
	})

	t.Run("error without message", func(t *testing.T) {
		bar := newTestBar()
		bar.SetState(StateError)

		assert.Contains(t, bar.View(), "Error")
	})
}

func TestBar_Hints(t *testing.T) {
	t.Run("ready shows chat bindings", func(t *testing.T) {
		bar := newTestBar()
		bar.SetWidth(200)

		view := bar.View()
		assert.Contains(t, view, "enter: send")
		assert.Contains(t, view, "ctrl+n: new chat")
	})

	t.Run("error shows short bindings", func(t *testing.T) {
		bar := newTestBar()
		bar.SetWidth(200)
		bar.SetState(StateError)

		view := bar.View()
		assert.Contains(t, view, "q: quit")
		assert.NotContains(t, view, "ctrl+n: new chat")
	})
}

func TestBar_Clear(t *testing.T) {
	bar := newTestBar()
	bar.SetState(StateError)
	bar.SetMessage("boom")
	bar.SetClass("Chemistry")
	bar.SetSession("Stoichiometry")

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
	assert.Empty(t, bar.Class())
	assert.Empty(t, bar.Session())
}
