package render

import "strings"

// Glamour style names accepted in configuration
const (
	StyleDark       = "dark"
	StyleLight      = "light"
	StyleTokyoNight = "tokyo-night"
	StyleDracula    = "dracula"
	StyleNoTTY      = "notty"
	StyleASCII      = "ascii"
)

// styleAliases maps TUI theme names to the closest glamour style
var styleAliases = map[string]string{
	"tokyonight": StyleTokyoNight,
	"catppuccin": StyleDark,
	"nord":       StyleDark,
	"plain":      StyleNoTTY,
}

// ResolveStyle normalizes a configured style. Unknown names are returned
// unchanged so they can be loaded as style file paths.
func ResolveStyle(style string) string {
	style = strings.TrimSpace(style)
	if style == "" {
		return StyleDark
	}
	if alias, ok := styleAliases[strings.ToLower(style)]; ok {
		return alias
	}
	return style
}

// StyleNames returns the built-in style names for display
func StyleNames() []string {
	return []string{StyleDark, StyleLight, StyleTokyoNight, StyleDracula, StyleNoTTY, StyleASCII}
}
