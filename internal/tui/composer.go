package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/lipgloss"
)

const (
	inputPlaceholder = "Type your message..."
	inputHeight      = 3
	inputCharLimit   = 4000
)

// newComposer creates the message input. Enter is handled by the view to
// send; alt+enter and ctrl+j insert a newline instead.
func newComposer() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = inputPlaceholder
	ta.CharLimit = inputCharLimit
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.SetHeight(inputHeight)
	ta.KeyMap.InsertNewline = key.NewBinding(
		key.WithKeys("alt+enter", "ctrl+j"),
		key.WithHelp("alt+enter", "newline"),
	)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle
	ta.BlurredStyle.Base = inputDisabledStyle
	return ta
}

// canSend reports whether the send action is enabled
func canSend(text string, sending bool) bool {
	return !sending && strings.TrimSpace(text) != ""
}

// renderSendButton draws the send affordance for the current state
func renderSendButton(text string, sending bool) string {
	switch {
	case sending:
		return sendButtonBusyStyle.Render("Sending…")
	case canSend(text, sending):
		return sendButtonStyle.Render("Send ⏎")
	default:
		return sendButtonOffStyle.Render("Send ⏎")
	}
}
