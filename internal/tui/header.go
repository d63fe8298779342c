package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/supportchat/internal/models"
)

// renderHeader shows the customer identity and conversation status.
// A nil conversation renders the fallbacks.
func renderHeader(conv *models.Conversation, width int) string {
	identity := lipgloss.JoinVertical(
		lipgloss.Left,
		customerNameStyle.Render(conv.DisplayName()),
		contactStyle.Render(conv.Contact()),
	)
	left := lipgloss.JoinHorizontal(lipgloss.Top, headerAvatarStyle.Render("◉"), identity)
	badge := statusBadgeStyle.Render("● " + conv.StatusLabel())

	inner := width - headerStyle.GetHorizontalFrameSize()
	gap := inner - lipgloss.Width(left) - lipgloss.Width(badge)
	if gap < 1 {
		gap = 1
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, lipgloss.NewStyle().Width(gap).Render(""), badge)

	return headerStyle.Width(max(width-headerStyle.GetHorizontalBorderSize(), 0)).Render(row)
}
