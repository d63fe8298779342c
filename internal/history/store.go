// Package history keeps the list of recently opened support conversations.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/diogo/supportchat/internal/config"
	"github.com/diogo/supportchat/internal/models"
)

// MaxEntries caps the recent list; the oldest non-favorite entries go first
const MaxEntries = 50

// Entry is one recently opened conversation
type Entry struct {
	ID           int64     `json:"id"`
	CustomerName string    `json:"customer_name,omitempty"`
	Status       string    `json:"status,omitempty"`
	OpenedAt     time.Time `json:"opened_at"`
	Favorite     bool      `json:"favorite,omitempty"`
}

// Label returns the customer name or a generic label
func (e Entry) Label() string {
	if e.CustomerName != "" {
		return e.CustomerName
	}
	return fmt.Sprintf("Conversation %d", e.ID)
}

// Store persists recent conversations in a single JSON file
type Store struct {
	path string
	mu   sync.RWMutex
	now  func() time.Time
}

// NewStore creates a store in baseDir
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	return &Store{
		path: filepath.Join(baseDir, "recent.json"),
		now:  time.Now,
	}, nil
}

// Record moves a conversation to the top of the list. conv may be nil when
// the snapshot could not be loaded; known details are then kept.
func (s *Store) Record(conversationID int64, conv *models.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}

	entry := Entry{ID: conversationID}
	for i, e := range entries {
		if e.ID == conversationID {
			entry = e
			entries = append(entries[:i], entries[i+1:]...)
			break
		}
	}
	if conv != nil {
		if conv.CustomerName != "" {
			entry.CustomerName = conv.CustomerName
		}
		if conv.Status != "" {
			entry.Status = conv.Status
		}
	}
	entry.OpenedAt = s.now()

	entries = append([]Entry{entry}, entries...)
	return s.save(trim(entries))
}

// List returns entries, most recently opened first
func (s *Store) List() ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	sortEntries(entries)
	return entries, nil
}

// Get returns the entry for a conversation
func (s *Store) Get(conversationID int64) (Entry, error) {
	entries, err := s.List()
	if err != nil {
		return Entry{}, err
	}
	for _, e := range entries {
		if e.ID == conversationID {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("conversation not in history: %d", conversationID)
}

// Remove drops a conversation from the list
func (s *Store) Remove(conversationID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	for i, e := range entries {
		if e.ID == conversationID {
			return s.save(append(entries[:i], entries[i+1:]...))
		}
	}
	return fmt.Errorf("conversation not in history: %d", conversationID)
}

// ToggleFavorite flips the favorite flag and returns the new value.
// Favorites are never trimmed.
func (s *Store) ToggleFavorite(conversationID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return false, err
	}
	for i := range entries {
		if entries[i].ID == conversationID {
			entries[i].Favorite = !entries[i].Favorite
			return entries[i].Favorite, s.save(entries)
		}
	}
	return false, fmt.Errorf("conversation not in history: %d", conversationID)
}

// Clear removes every entry
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func (s *Store) load() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		// A corrupted file is treated as empty and rewritten on next save
		return []Entry{}, nil
	}
	return entries, nil
}

func (s *Store) save(entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}

// sortEntries orders by OpenedAt descending
func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].OpenedAt.After(entries[j].OpenedAt)
	})
}

// trim drops the oldest non-favorite entries beyond MaxEntries
func trim(entries []Entry) []Entry {
	if len(entries) <= MaxEntries {
		return entries
	}
	sortEntries(entries)
	kept := make([]Entry, 0, MaxEntries)
	excess := len(entries) - MaxEntries
	for i := len(entries) - 1; i >= 0; i-- {
		if excess > 0 && !entries[i].Favorite {
			excess--
			continue
		}
		kept = append(kept, entries[i])
	}
	// kept was built oldest first
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	return kept
}

// DefaultStore creates a store in the supportchat config directory
func DefaultStore() (*Store, error) {
	dir, err := config.GetConfigDir()
	if err != nil {
		return nil, err
	}
	return NewStore(dir)
}
