// Package tui provides the terminal chat view for a support conversation.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/supportchat/internal/errors"
	"github.com/diogo/supportchat/internal/render"
)

// Color variables (updated from theme)
var (
	colorSurface lipgloss.Color
	colorBorder  lipgloss.Color

	colorCustomer lipgloss.Color
	colorAI       lipgloss.Color
	colorAccent   lipgloss.Color
	colorSuccess  lipgloss.Color
	colorWarning  lipgloss.Color
	colorError    lipgloss.Color

	colorText     lipgloss.Color
	colorTextDim  lipgloss.Color
	colorTextMute lipgloss.Color
)

// Style variables (rebuilt when theme changes)
var (
	// Header panel
	headerStyle       lipgloss.Style
	customerNameStyle lipgloss.Style
	contactStyle      lipgloss.Style
	statusBadgeStyle  lipgloss.Style
	headerAvatarStyle lipgloss.Style

	// Message list
	customerAvatarStyle lipgloss.Style
	customerBubbleStyle lipgloss.Style
	aiAvatarStyle       lipgloss.Style
	aiBubbleStyle       lipgloss.Style
	captionStyle        lipgloss.Style
	typingDotsStyle     lipgloss.Style
	emptyThreadStyle    lipgloss.Style

	// Composer
	inputPanelStyle     lipgloss.Style
	inputDisabledStyle  lipgloss.Style
	sendButtonStyle     lipgloss.Style
	sendButtonOffStyle  lipgloss.Style
	sendButtonBusyStyle lipgloss.Style

	// Loading/spinner style
	loadingStyle lipgloss.Style

	// Status bar
	statusBarStyle  lipgloss.Style
	statusKeyStyle  lipgloss.Style
	statusDescStyle lipgloss.Style

	// Errors and toasts
	errorStyle        lipgloss.Style
	errorPanelStyle   lipgloss.Style
	hintStyle         lipgloss.Style
	toastTitleStyle   lipgloss.Style
	toastBodyStyle    lipgloss.Style
	toastDismissStyle lipgloss.Style
)

func init() {
	UpdateTheme()
}

// UpdateTheme refreshes all styles based on the current theme
func UpdateTheme() {
	theme := render.CurrentTheme()

	colorSurface = theme.Surface
	colorBorder = theme.Border
	colorCustomer = theme.Customer
	colorAI = theme.AI
	colorAccent = theme.Accent
	colorSuccess = theme.Success
	colorWarning = theme.Warning
	colorError = theme.Error
	colorText = theme.Text
	colorTextDim = theme.TextDim
	colorTextMute = theme.TextMute

	rebuildStyles()
}

// rebuildStyles creates all lipgloss styles with current color values
func rebuildStyles() {
	headerStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	customerNameStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Bold(true)

	contactStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	statusBadgeStyle = lipgloss.NewStyle().
		Foreground(colorSuccess).
		Background(colorSurface).
		Padding(0, 1)

	headerAvatarStyle = lipgloss.NewStyle().
		Foreground(colorCustomer).
		Bold(true).
		MarginRight(1)

	customerAvatarStyle = lipgloss.NewStyle().
		Foreground(colorCustomer).
		Bold(true).
		MarginRight(1)

	customerBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorCustomer).
		Foreground(colorText).
		Padding(0, 1)

	aiAvatarStyle = lipgloss.NewStyle().
		Foreground(colorAI).
		Bold(true).
		MarginLeft(1)

	aiBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorAI).
		Foreground(colorText).
		Padding(0, 1)

	captionStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	typingDotsStyle = lipgloss.NewStyle().
		Foreground(colorAI)

	emptyThreadStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		Italic(true)

	inputPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	inputDisabledStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	sendButtonStyle = lipgloss.NewStyle().
		Foreground(colorSurface).
		Background(colorCustomer).
		Bold(true).
		Padding(0, 1)

	sendButtonOffStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		Background(colorSurface).
		Padding(0, 1)

	sendButtonBusyStyle = lipgloss.NewStyle().
		Foreground(colorWarning).
		Background(colorSurface).
		Padding(0, 1)

	loadingStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	statusBarStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	statusKeyStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Bold(true)

	statusDescStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	errorStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true)

	errorPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorError).
		Padding(0, 1)

	hintStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		Italic(true)

	toastTitleStyle = lipgloss.NewStyle().
		Bold(true)

	toastBodyStyle = lipgloss.NewStyle().
		Foreground(colorText)

	toastDismissStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		Italic(true)
}

// FormatError returns a styled error message with additional context
// taken from the typed API errors.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	errStyle := lipgloss.NewStyle().Foreground(colorError)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errStyle.Render(fmt.Sprintf("✗ %v", err)))

	if status := errors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}

	if endpoint := errors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}

	if hint := errorHint(err); hint != "" {
		sb.WriteString(dimStyle.Render("\n  Hint: " + hint))
	}

	return sb.String()
}

func errorHint(err error) string {
	switch {
	case errors.IsAuthError(err):
		return "Run 'supportchat login --browser chrome' to import your dashboard session"
	case errors.IsNotFound(err):
		return "Check the conversation ID"
	case errors.IsTimeoutError(err):
		return "Request timed out. Try again or raise timeout_seconds"
	case errors.IsNetworkError(err):
		return "Check that the support API server is reachable (api_base_url)"
	case errors.IsParseError(err):
		return "The server answered with an unexpected payload"
	}
	return ""
}

// PrintError prints a styled error message to w.
func PrintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(w, FormatError(err))
}
