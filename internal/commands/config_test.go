package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diogo/supportchat/internal/config"
)

func TestConfigCmd_Path(t *testing.T) {
	e := newTestEnv(t)

	out, _, err := e.run("config", "path")
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".supportchat", "config.json"), strings.TrimSpace(out))
}

func TestConfigCmd_ShowEffective(t *testing.T) {
	e := newTestEnv(t)

	out, _, err := e.run("--api-url", "http://10.0.0.5:8080", "config", "show")
	require.NoError(t, err)

	var shown config.Config
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, "http://10.0.0.5:8080", shown.APIBaseURL)
	assert.Equal(t, config.DefaultConfig().TimeoutSeconds, shown.TimeoutSeconds)
}

func TestConfigCmd_Set(t *testing.T) {
	e := newTestEnv(t)

	out, _, err := e.run("config", "set", "api_base_url", "https://support.example.com/")
	require.NoError(t, err)
	assert.Contains(t, out, "api_base_url = https://support.example.com/")

	saved, err := config.LoadConfigFile()
	require.NoError(t, err)
	assert.Equal(t, "https://support.example.com", saved.APIBaseURL)
}

func TestConfigCmd_SetDoesNotPersistEnv(t *testing.T) {
	e := newTestEnv(t)
	t.Setenv(config.EnvAPIURL, "http://env-only:1")

	_, _, err := e.run("config", "set", "timeout_seconds", "45")
	require.NoError(t, err)

	saved, err := config.LoadConfigFile()
	require.NoError(t, err)
	assert.Equal(t, 45, saved.TimeoutSeconds)
	assert.Equal(t, config.DefaultConfig().APIBaseURL, saved.APIBaseURL)
}

func TestConfigCmd_SetErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown key", []string{"config", "set", "model", "x"}, "unknown config key"},
		{"bad value", []string{"config", "set", "timeout_seconds", "soon"}, "positive integer"},
		{"unknown theme", []string{"config", "set", "tui_theme", "solarized"}, "unknown theme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t)
			_, _, err := e.run(tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			path, _ := config.GetConfigPath()
			_, statErr := os.Stat(path)
			assert.True(t, os.IsNotExist(statErr), "nothing should be saved")
		})
	}
}

func TestConfigCmd_SetTheme(t *testing.T) {
	e := newTestEnv(t)

	_, _, err := e.run("config", "set", "tui_theme", "nord")
	require.NoError(t, err)

	saved, err := config.LoadConfigFile()
	require.NoError(t, err)
	assert.Equal(t, "nord", saved.TUITheme)
}

func TestConfigCmd_Themes(t *testing.T) {
	e := newTestEnv(t)

	out, _, err := e.run("config", "themes")
	require.NoError(t, err)
	for _, name := range []string{"tokyonight", "catppuccin", "nord", "dracula"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "* tokyonight")
}
