// Package config handles configuration and session cookie management for supportchat.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Environment variables that override config file values
const (
	EnvAPIURL = "SUPPORTCHAT_API_URL"
	EnvProxy  = "SUPPORTCHAT_PROXY"
)

// MarkdownConfig configures markdown rendering of assistant replies
type MarkdownConfig struct {
	Style            string `json:"style"`             // "dark", "light", "notty" or path to JSON theme
	EnableEmoji      bool   `json:"enable_emoji"`      // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines"` // Preserve original line breaks
}

// Config represents the user configuration
type Config struct {
	// APIBaseURL is the scheme and host of the support API server.
	APIBaseURL string `json:"api_base_url"`
	// TimeoutSeconds bounds every API request.
	TimeoutSeconds int `json:"timeout_seconds"`
	// SessionCookieName is the dashboard session cookie forwarded to the API.
	SessionCookieName string `json:"session_cookie_name"`
	// Proxy is an explicit proxy URL. Empty means use the environment.
	Proxy string `json:"proxy,omitempty"`
	// Verbose lowers the log level to debug.
	Verbose         bool           `json:"verbose"`
	LogFile         string         `json:"log_file,omitempty"`
	CopyToClipboard bool           `json:"copy_to_clipboard"`
	TUITheme        string         `json:"tui_theme,omitempty"`
	Markdown        MarkdownConfig `json:"markdown,omitempty"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		APIBaseURL:        "http://localhost:5000",
		TimeoutSeconds:    30,
		SessionCookieName: "connect.sid",
		Verbose:           false,
		CopyToClipboard:   false,
		TUITheme:          "tokyonight",
		Markdown:          DefaultMarkdownConfig(),
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".supportchat"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	// 0o700: the directory holds session cookies
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetSessionPath returns the path to the saved session cookies
func GetSessionPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "session.json"), nil
}

// GetLogPath returns the log file path from config, falling back to the
// config directory.
func GetLogPath(cfg Config) (string, error) {
	if cfg.LogFile != "" {
		return cfg.LogFile, nil
	}
	configDir, err := EnsureConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "supportchat.log"), nil
}

// LoadConfig loads the configuration from disk and applies environment overrides
func LoadConfig() (Config, error) {
	cfg, err := LoadConfigFile()
	applyEnv(&cfg)
	return cfg, err
}

// LoadConfigFile loads the configuration from disk without environment
// overrides. A missing file yields the defaults.
func LoadConfigFile() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(EnvProxy); v != "" {
		cfg.Proxy = v
	}
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// setters maps settable keys to their parsers
var setters = map[string]func(*Config, string) error{
	"api_base_url": func(c *Config, v string) error {
		if !strings.HasPrefix(v, "http://") && !strings.HasPrefix(v, "https://") {
			return fmt.Errorf("api_base_url must start with http:// or https://")
		}
		c.APIBaseURL = strings.TrimRight(v, "/")
		return nil
	},
	"timeout_seconds": func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("timeout_seconds must be a positive integer")
		}
		c.TimeoutSeconds = n
		return nil
	},
	"session_cookie_name": func(c *Config, v string) error {
		if v == "" {
			return fmt.Errorf("session_cookie_name cannot be empty")
		}
		c.SessionCookieName = v
		return nil
	},
	"proxy":     func(c *Config, v string) error { c.Proxy = v; return nil },
	"log_file":  func(c *Config, v string) error { c.LogFile = v; return nil },
	"tui_theme": func(c *Config, v string) error { c.TUITheme = v; return nil },
	"verbose": func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("verbose must be true or false")
		}
		c.Verbose = b
		return nil
	},
	"copy_to_clipboard": func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("copy_to_clipboard must be true or false")
		}
		c.CopyToClipboard = b
		return nil
	},
	"markdown.style": func(c *Config, v string) error { c.Markdown.Style = v; return nil },
}

// Set updates a single key on cfg
func (c *Config) Set(key, value string) error {
	setter, ok := setters[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(SettableKeys(), ", "))
	}
	return setter(c, value)
}

// SettableKeys returns the keys accepted by Set, sorted
func SettableKeys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
