package tui

import (
	"errors"
	"strings"
	"testing"

	apierrors "github.com/diogo/supportchat/internal/errors"
	"github.com/diogo/supportchat/internal/render"
)

func TestFormatError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains []string
	}{
		{
			name:     "not found",
			err:      apierrors.NewAPIError(404, "/api/conversations/9", "Not Found"),
			contains: []string{"HTTP Status: 404", "Endpoint: /api/conversations/9", "Check the conversation ID"},
		},
		{
			name:     "auth",
			err:      apierrors.NewAuthError("session expired"),
			contains: []string{"supportchat login"},
		},
		{
			name:     "network",
			err:      apierrors.NewNetworkError("list messages", errors.New("connection refused")),
			contains: []string{"connection refused", "api_base_url"},
		},
		{
			name:     "timeout",
			err:      apierrors.NewTimeoutError("send message"),
			contains: []string{"timed out"},
		},
		{
			name:     "plain",
			err:      errors.New("something odd"),
			contains: []string{"✗ something odd"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := FormatError(tt.err)
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("FormatError() missing %q:\n%s", want, out)
				}
			}
		})
	}

	if FormatError(nil) != "" {
		t.Error("FormatError(nil) should be empty")
	}
}

func TestUpdateTheme(t *testing.T) {
	defer func() {
		render.SetTheme("tokyonight")
		UpdateTheme()
	}()

	render.SetTheme("dracula")
	UpdateTheme()

	if colorAI != render.DraculaTheme.AI {
		t.Errorf("colorAI = %v, want %v", colorAI, render.DraculaTheme.AI)
	}
	if colorError != render.DraculaTheme.Error {
		t.Errorf("colorError = %v, want %v", colorError, render.DraculaTheme.Error)
	}
}
