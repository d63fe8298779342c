package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the color scheme of the chat view
type Theme struct {
	Name        string
	Description string

	Surface lipgloss.Color
	Border  lipgloss.Color

	// Customer colors customer bubbles and the composer
	Customer lipgloss.Color
	// AI colors assistant bubbles, the avatar and the typing indicator
	AI      lipgloss.Color
	Accent  lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
}

// Built-in themes
var (
	TokyoNightTheme = Theme{
		Name:        "tokyonight",
		Description: "Tokyo Night - Dark theme with blue accents",

		Surface: lipgloss.Color("#24283b"),
		Border:  lipgloss.Color("#414868"),

		Customer: lipgloss.Color("#9ece6a"),
		AI:       lipgloss.Color("#7aa2f7"),
		Accent:   lipgloss.Color("#bb9af7"),
		Success:  lipgloss.Color("#9ece6a"),
		Warning:  lipgloss.Color("#e0af68"),
		Error:    lipgloss.Color("#f7768e"),

		Text:     lipgloss.Color("#c0caf5"),
		TextDim:  lipgloss.Color("#565f89"),
		TextMute: lipgloss.Color("#3b4261"),
	}

	CatppuccinMochaTheme = Theme{
		Name:        "catppuccin",
		Description: "Catppuccin Mocha - Warm dark theme with pastel colors",

		Surface: lipgloss.Color("#313244"),
		Border:  lipgloss.Color("#45475a"),

		Customer: lipgloss.Color("#a6e3a1"), // Green
		AI:       lipgloss.Color("#89b4fa"), // Blue
		Accent:   lipgloss.Color("#cba6f7"), // Mauve
		Success:  lipgloss.Color("#a6e3a1"),
		Warning:  lipgloss.Color("#f9e2af"), // Yellow
		Error:    lipgloss.Color("#f38ba8"), // Red

		Text:     lipgloss.Color("#cdd6f4"),
		TextDim:  lipgloss.Color("#6c7086"),
		TextMute: lipgloss.Color("#45475a"),
	}

	NordTheme = Theme{
		Name:        "nord",
		Description: "Nord - Arctic-inspired theme with cool tones",

		Surface: lipgloss.Color("#3b4252"),
		Border:  lipgloss.Color("#4c566a"),

		Customer: lipgloss.Color("#a3be8c"), // Aurora green
		AI:       lipgloss.Color("#88c0d0"), // Frost
		Accent:   lipgloss.Color("#b48ead"), // Aurora purple
		Success:  lipgloss.Color("#a3be8c"),
		Warning:  lipgloss.Color("#ebcb8b"),
		Error:    lipgloss.Color("#bf616a"),

		Text:     lipgloss.Color("#eceff4"),
		TextDim:  lipgloss.Color("#7b88a1"),
		TextMute: lipgloss.Color("#4c566a"),
	}

	DraculaTheme = Theme{
		Name:        "dracula",
		Description: "Dracula - Dark theme with vibrant colors",

		Surface: lipgloss.Color("#44475a"),
		Border:  lipgloss.Color("#6272a4"),

		Customer: lipgloss.Color("#50fa7b"), // Green
		AI:       lipgloss.Color("#8be9fd"), // Cyan
		Accent:   lipgloss.Color("#ff79c6"), // Pink
		Success:  lipgloss.Color("#50fa7b"),
		Warning:  lipgloss.Color("#f1fa8c"),
		Error:    lipgloss.Color("#ff5555"),

		Text:     lipgloss.Color("#f8f8f2"),
		TextDim:  lipgloss.Color("#6272a4"),
		TextMute: lipgloss.Color("#44475a"),
	}
)

var currentTheme = TokyoNightTheme

// CurrentTheme returns the active theme
func CurrentTheme() Theme {
	return currentTheme
}

// SetTheme activates a theme by name. Unknown names leave it unchanged.
func SetTheme(name string) bool {
	theme, ok := ThemeByName(name)
	if ok {
		currentTheme = theme
	}
	return ok
}

// ThemeByName looks up a built-in theme, case-insensitively
func ThemeByName(name string) (Theme, bool) {
	for _, theme := range AvailableThemes() {
		if strings.EqualFold(theme.Name, strings.TrimSpace(name)) {
			return theme, true
		}
	}
	return Theme{}, false
}

// AvailableThemes returns all built-in themes
func AvailableThemes() []Theme {
	return []Theme{
		TokyoNightTheme,
		CatppuccinMochaTheme,
		NordTheme,
		DraculaTheme,
	}
}

// ThemeNames returns the built-in theme names
func ThemeNames() []string {
	themes := AvailableThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
