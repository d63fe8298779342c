// Package typing provides the "AI is typing" signal shown after a customer
// message is accepted.
package typing

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/diogo/supportchat/internal/models"
)

// StoppedMsg closes one typing window for a conversation
type StoppedMsg struct {
	ConversationID int64
	StartedAt      time.Time
	At             time.Time
}

// Source opens a typing window after a successful send. The returned
// command delivers a StoppedMsg when the window closes.
type Source interface {
	Start(conversationID int64) tea.Cmd
}

// SourceFunc adapts a function to Source
type SourceFunc func(conversationID int64) tea.Cmd

// Start implements Source
func (f SourceFunc) Start(conversationID int64) tea.Cmd {
	return f(conversationID)
}

// TimerSource closes each window after a fixed delay
type TimerSource struct {
	Delay time.Duration
	now   func() time.Time
}

// NewTimerSource returns a source using the standard typing window
func NewTimerSource() TimerSource {
	return TimerSource{Delay: models.TypingWindow}
}

// Start implements Source
func (s TimerSource) Start(conversationID int64) tea.Cmd {
	delay := s.Delay
	if delay <= 0 {
		delay = models.TypingWindow
	}
	now := s.now
	if now == nil {
		now = time.Now
	}
	started := now()
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return StoppedMsg{ConversationID: conversationID, StartedAt: started, At: t}
	})
}
