package commands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/diogo/supportchat/internal/errors"
	"github.com/diogo/supportchat/internal/models"
)

func TestChatCmd_RequiresTerminal(t *testing.T) {
	tests := []struct {
		name      string
		stdinTTY  bool
		stdoutTTY bool
	}{
		{"piped stdin", false, true},
		{"redirected stdout", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t)
			e.stdinTTY = tt.stdinTTY
			e.stdoutTTY = tt.stdoutTTY

			_, _, err := e.run("chat", "42")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "interactive terminal")
			assert.Zero(t, e.tui.calls)
		})
	}
}

func TestChatCmd_OpensView(t *testing.T) {
	e := newTestEnv(t)
	e.stdoutTTY = true
	e.client.Conversation = &models.Conversation{ID: 42, CustomerName: "Jane Doe", Status: "active"}

	_, stderr, err := e.run("chat", "42")
	require.NoError(t, err)

	require.Equal(t, 1, e.tui.calls)
	assert.Equal(t, int64(42), e.tui.id)
	require.NotNil(t, e.tui.conv)
	assert.Equal(t, "Jane Doe", e.tui.conv.CustomerName)
	assert.Same(t, e.client, e.tui.client)
	assert.NotNil(t, e.tui.opts.Logger)
	assert.NotNil(t, e.tui.opts.Clipboard)
	assert.Equal(t, "dark", e.tui.opts.Markdown.Style)
	assert.Contains(t, stderr, "Conversation with Jane Doe")
	assert.True(t, e.client.CloseCalled, "client should be closed when the view exits")
}

func TestChatCmd_SnapshotFailureFallsBack(t *testing.T) {
	e := newTestEnv(t)
	e.stdoutTTY = true
	e.client.ConversationErr = apierrors.NewNetworkError("get conversation", errors.New("connection refused"))

	_, _, err := e.run("chat", "42")
	require.NoError(t, err)
	require.Equal(t, 1, e.tui.calls)
	assert.Nil(t, e.tui.conv, "header falls back to its defaults")
}

func TestChatCmd_ViewError(t *testing.T) {
	e := newTestEnv(t)
	e.stdoutTTY = true
	e.tui.err = errors.New("could not open a new TTY")

	_, _, err := e.run("chat", "42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not open a new TTY")
}

func TestChatCmd_Args(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing id", []string{"chat"}},
		{"extra args", []string{"chat", "1", "2"}},
		{"invalid id", []string{"chat", "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t)
			e.stdoutTTY = true
			_, _, err := e.run(tt.args...)
			assert.Error(t, err)
			assert.Zero(t, e.tui.calls)
		})
	}
}
