package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Session holds the dashboard cookies forwarded with API requests
type Session struct {
	mu      sync.RWMutex
	cookies map[string]string
}

// NewSession creates a session from name/value pairs
func NewSession(cookies map[string]string) *Session {
	s := &Session{cookies: make(map[string]string, len(cookies))}
	for k, v := range cookies {
		s.cookies[k] = v
	}
	return s
}

// Get returns a cookie value in a thread-safe manner
func (s *Session) Get(name string) string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cookies[name]
}

// Set updates a cookie value in a thread-safe manner
func (s *Session) Set(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cookies == nil {
		s.cookies = make(map[string]string)
	}
	s.cookies[name] = value
}

// Replace swaps all cookies atomically
func (s *Session) Replace(cookies map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cookies = make(map[string]string, len(cookies))
	for k, v := range cookies {
		s.cookies[k] = v
	}
}

// Snapshot returns a copy of the cookies (for serialization or HTTP requests)
func (s *Session) Snapshot() map[string]string {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.cookies))
	for k, v := range s.cookies {
		out[k] = v
	}
	return out
}

// CookieListItem represents a cookie in browser export format
type CookieListItem struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// LoadSession loads the saved session cookies.
// A missing file yields an empty session, not an error: local API servers
// usually do not require authentication.
func LoadSession() (*Session, error) {
	sessionPath, err := GetSessionPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(sessionPath)
	if err != nil {
		if os.IsNotExist(err) {
			return NewSession(nil), nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	return parseSession(data)
}

// parseSession parses cookies from JSON data.
// Supports both list format [{name, value}] and dict format {name: value}
func parseSession(data []byte) (*Session, error) {
	var dictFormat map[string]string
	if err := json.Unmarshal(data, &dictFormat); err == nil {
		return NewSession(dictFormat), nil
	}

	var listFormat []CookieListItem
	if err := json.Unmarshal(data, &listFormat); err == nil {
		cookies := make(map[string]string, len(listFormat))
		for _, item := range listFormat {
			if item.Name == "" {
				continue
			}
			cookies[item.Name] = item.Value
		}
		return NewSession(cookies), nil
	}

	return nil, fmt.Errorf("invalid session format: expected list [{name, value}] or dict {name: value}")
}

// SaveSession saves the session cookies to disk in list format
func SaveSession(s *Session) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	snapshot := s.Snapshot()
	names := make([]string, 0, len(snapshot))
	for name := range snapshot {
		names = append(names, name)
	}
	sort.Strings(names)

	listFormat := make([]CookieListItem, 0, len(names))
	for _, name := range names {
		listFormat = append(listFormat, CookieListItem{Name: name, Value: snapshot[name]})
	}

	data, err := json.MarshalIndent(listFormat, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	// Owner read/write only
	if err := os.WriteFile(filepath.Join(configDir, "session.json"), data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// ImportSession imports session cookies from a browser export file
func ImportSession(sourcePath string) error {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("source file not found: %s", sourcePath)
		}
		return fmt.Errorf("could not read file: %w", err)
	}

	session, err := parseSession(data)
	if err != nil {
		return err
	}

	return SaveSession(session)
}

// ValidateSession checks that the session carries the named cookie
func ValidateSession(s *Session, cookieName string) error {
	if s == nil {
		return fmt.Errorf("session is nil")
	}
	if s.Get(cookieName) == "" {
		return fmt.Errorf("missing required cookie: %s", cookieName)
	}
	return nil
}
