package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/diogo/supportchat/internal/api"
	"github.com/diogo/supportchat/internal/models"
)

// RunChat mounts the chat view in the alternate screen until the user quits.
// Requests still in flight when the view closes are canceled and their
// results dropped.
func RunChat(ctx context.Context, client api.SupportClientInterface, conversationID int64, conv *models.Conversation, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := NewChatModel(ctx, client, conversationID, conv, opts)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		// Interrupted by the caller's context
		return nil
	}
	return err
}
