package render

import "testing"

func TestResolveStyle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", StyleDark},
		{"  ", StyleDark},
		{"tokyonight", StyleTokyoNight},
		{"TokyoNight", StyleTokyoNight},
		{"catppuccin", StyleDark},
		{"plain", StyleNoTTY},
		{"light", "light"},
		{"/home/me/style.json", "/home/me/style.json"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ResolveStyle(tt.in); got != tt.want {
				t.Errorf("ResolveStyle(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStyleNames(t *testing.T) {
	for _, name := range StyleNames() {
		if _, err := renderMarkdown("x", DefaultOptions().WithStyle(name)); err != nil {
			t.Errorf("style %q failed to render: %v", name, err)
		}
	}
}
