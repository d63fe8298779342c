package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/supportchat/internal/toast"
)

// renderToasts draws one line per visible toast, newest first
func renderToasts(toasts []toast.Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}

	lines := make([]string, 0, len(toasts))
	for i, t := range toasts {
		icon, color := "ℹ", colorAccent
		switch t.Severity {
		case toast.SeverityDestructive:
			icon, color = "✗", colorError
		case toast.SeveritySuccess:
			icon, color = "✓", colorSuccess
		}

		parts := []string{toastTitleStyle.Foreground(color).Render(icon + " " + t.Title)}
		if t.Description != "" {
			parts = append(parts, toastBodyStyle.Render(t.Description))
		}
		if i == 0 {
			parts = append(parts, toastDismissStyle.Render("(esc to dismiss)"))
		}
		line := strings.Join(parts, "  ")
		lines = append(lines, lipgloss.NewStyle().MaxWidth(width).Render(line))
	}
	return strings.Join(lines, "\n")
}
