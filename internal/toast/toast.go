// Package toast implements transient, dismissible notifications for the chat view.
package toast

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// Severity is the visual weight of a toast
type Severity int

const (
	// SeverityInfo is a neutral notification
	SeverityInfo Severity = iota
	// SeveritySuccess confirms a completed action
	SeveritySuccess
	// SeverityDestructive reports a failed action
	SeverityDestructive
)

// String returns the severity name
func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityDestructive:
		return "destructive"
	default:
		return "info"
	}
}

// Auto-dismiss durations
const (
	DefaultDuration     = 4 * time.Second
	DestructiveDuration = 8 * time.Second
)

// MaxVisible is the number of toasts kept at once
const MaxVisible = 5

// TickInterval is how often expired toasts are pruned
const TickInterval = 250 * time.Millisecond

// Toast is a single notification
type Toast struct {
	ID          string
	Title       string
	Description string
	Severity    Severity
	CreatedAt   time.Time
	Duration    time.Duration
}

// Expired reports whether the toast should be hidden at now
func (t Toast) Expired(now time.Time) bool {
	return t.Duration > 0 && now.Sub(t.CreatedAt) >= t.Duration
}

// Manager holds the visible toasts, newest first.
type Manager struct {
	mu     sync.Mutex
	toasts []Toast
	max    int
	now    func() time.Time
}

// NewManager creates an empty manager
func NewManager() *Manager {
	return &Manager{
		max: MaxVisible,
		now: time.Now,
	}
}

// SetClock replaces the time source (used by tests)
func (m *Manager) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Show adds a toast and returns its ID. Destructive toasts stay up longer.
func (m *Manager) Show(title, description string, severity Severity) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := Toast{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Severity:    severity,
		CreatedAt:   m.now(),
		Duration:    DefaultDuration,
	}
	if severity == SeverityDestructive {
		t.Duration = DestructiveDuration
	}

	m.toasts = append([]Toast{t}, m.toasts...)
	if len(m.toasts) > m.max {
		m.toasts = m.toasts[:m.max]
	}
	return t.ID
}

// Error shows a destructive toast
func (m *Manager) Error(title, description string) string {
	return m.Show(title, description, SeverityDestructive)
}

// Success shows a success toast
func (m *Manager) Success(title, description string) string {
	return m.Show(title, description, SeveritySuccess)
}

// Dismiss removes a toast by ID. Returns false if it was not visible.
func (m *Manager) Dismiss(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, t := range m.toasts {
		if t.ID == id {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
			return true
		}
	}
	return false
}

// DismissNewest removes the most recent toast
func (m *Manager) DismissNewest() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.toasts) == 0 {
		return false
	}
	m.toasts = m.toasts[1:]
	return true
}

// Prune drops expired toasts and returns how many remain
func (m *Manager) Prune() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	active := m.toasts[:0]
	for _, t := range m.toasts {
		if !t.Expired(now) {
			active = append(active, t)
		}
	}
	m.toasts = active
	return len(m.toasts)
}

// Visible returns a copy of the current toasts, newest first
func (m *Manager) Visible() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Toast, len(m.toasts))
	copy(out, m.toasts)
	return out
}

// Len returns the number of visible toasts
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.toasts)
}

// TickMsg asks the view to prune expired toasts
type TickMsg struct {
	Time time.Time
}

// TickCmd schedules the next prune
func TickCmd() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}
