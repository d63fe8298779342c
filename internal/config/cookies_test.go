package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseSession_DictFormat(t *testing.T) {
	s, err := parseSession([]byte(`{"connect.sid": "s%3Aabc", "theme": "dark"}`))
	if err != nil {
		t.Fatalf("parseSession() error = %v", err)
	}
	if s.Get("connect.sid") != "s%3Aabc" {
		t.Errorf("connect.sid = %s", s.Get("connect.sid"))
	}
	if s.Get("theme") != "dark" {
		t.Errorf("theme = %s", s.Get("theme"))
	}
}

func TestParseSession_ListFormat(t *testing.T) {
	data := `[{"name": "connect.sid", "value": "abc"}, {"name": "", "value": "skip"}]`
	s, err := parseSession([]byte(data))
	if err != nil {
		t.Fatalf("parseSession() error = %v", err)
	}
	if s.Get("connect.sid") != "abc" {
		t.Errorf("connect.sid = %s", s.Get("connect.sid"))
	}
	if len(s.Snapshot()) != 1 {
		t.Errorf("expected unnamed cookie to be skipped, got %v", s.Snapshot())
	}
}

func TestParseSession_InvalidJSON(t *testing.T) {
	if _, err := parseSession([]byte(`not json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
	if _, err := parseSession([]byte(`42`)); err == nil {
		t.Error("expected error for neither format")
	}
}

func TestLoadSession_FileNotExists(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	s, err := LoadSession()
	if err != nil {
		t.Fatalf("LoadSession() error = %v", err)
	}
	if len(s.Snapshot()) != 0 {
		t.Errorf("expected empty session, got %v", s.Snapshot())
	}
}

func TestSaveAndLoadSession(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := SaveSession(NewSession(map[string]string{"connect.sid": "xyz"})); err != nil {
		t.Fatalf("SaveSession() error = %v", err)
	}

	path, _ := GetSessionPath()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("session file mode = %v, want 0600", info.Mode().Perm())
	}

	s, err := LoadSession()
	if err != nil {
		t.Fatalf("LoadSession() error = %v", err)
	}
	if s.Get("connect.sid") != "xyz" {
		t.Errorf("connect.sid = %s", s.Get("connect.sid"))
	}
}

func TestImportSession(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := ImportSession(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing source")
	}

	src := filepath.Join(t.TempDir(), "cookies.json")
	if err := os.WriteFile(src, []byte(`[{"name":"connect.sid","value":"imported"}]`), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := ImportSession(src); err != nil {
		t.Fatalf("ImportSession() error = %v", err)
	}

	s, _ := LoadSession()
	if s.Get("connect.sid") != "imported" {
		t.Errorf("connect.sid = %s", s.Get("connect.sid"))
	}
}

func TestValidateSession(t *testing.T) {
	if err := ValidateSession(nil, "connect.sid"); err == nil {
		t.Error("expected error for nil session")
	}
	if err := ValidateSession(NewSession(nil), "connect.sid"); err == nil {
		t.Error("expected error for missing cookie")
	}
	if err := ValidateSession(NewSession(map[string]string{"connect.sid": "v"}), "connect.sid"); err != nil {
		t.Errorf("ValidateSession() error = %v", err)
	}
}

func TestSession_ReplaceAndSnapshot(t *testing.T) {
	s := NewSession(map[string]string{"a": "1"})
	snap := s.Snapshot()
	snap["a"] = "mutated"
	if s.Get("a") != "1" {
		t.Error("Snapshot should return a copy")
	}

	s.Replace(map[string]string{"b": "2"})
	if s.Get("a") != "" || s.Get("b") != "2" {
		t.Errorf("Replace() result = %v", s.Snapshot())
	}

	s.Set("c", "3")
	if s.Get("c") != "3" {
		t.Error("Set() did not apply")
	}

	var nilSession *Session
	if nilSession.Get("a") != "" || nilSession.Snapshot() != nil {
		t.Error("nil session should be empty")
	}
}
