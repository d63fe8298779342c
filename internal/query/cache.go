// Package query provides a small keyed cache for server state: fetch and
// cache by key, expose loading/error/data states, invalidate by key.
package query

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Key identifies a cached query, e.g. Key{"/api/conversations", 42, "messages"}
type Key []any

// String returns the canonical form used for lookups
func (k Key) String() string {
	parts := make([]string, len(k))
	for i, part := range k {
		parts[i] = fmt.Sprint(part)
	}
	return strings.Join(parts, "/")
}

// State is a snapshot of one query
type State[T any] struct {
	Data      T
	HasData   bool
	Err       error
	Fetching  bool
	Stale     bool
	UpdatedAt time.Time
}

// Loading reports whether the query has no data yet and is either waiting
// for its first fetch or retrying after an error.
func (s State[T]) Loading() bool {
	return !s.HasData && (s.Err == nil || s.Fetching)
}

// Ticket ties a fetch result to the generation it was started in
type Ticket struct {
	key        string
	generation uint64
}

// Key returns the canonical key of the ticket
func (t Ticket) Key() string { return t.key }

type entry[T any] struct {
	state      State[T]
	generation uint64
}

// Cache stores query states by key. It is safe for concurrent use.
//
// Invalidate bumps the key's generation; results of fetches started before
// the invalidation are discarded by Complete so that a slow, older response
// never overwrites a newer one.
type Cache[T any] struct {
	mu      sync.Mutex
	entries map[string]*entry[T]
	now     func() time.Time
}

// New creates an empty cache
func New[T any]() *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]*entry[T]),
		now:     time.Now,
	}
}

func (c *Cache[T]) entryLocked(key string) *entry[T] {
	e, ok := c.entries[key]
	if !ok {
		e = &entry[T]{}
		c.entries[key] = e
	}
	return e
}

// Get returns the current state of key
func (c *Cache[T]) Get(key Key) State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key.String()]; ok {
		return e.state
	}
	return State[T]{}
}

// Begin marks key as fetching and returns the ticket to complete it with
func (c *Cache[T]) Begin(key Key) Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := key.String()
	e := c.entryLocked(k)
	e.state.Fetching = true
	return Ticket{key: k, generation: e.generation}
}

// Complete stores a fetch result. It returns false, leaving the state
// untouched, when the key was invalidated after the ticket was issued.
// A failed fetch keeps previously cached data.
func (c *Cache[T]) Complete(t Ticket, data T, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entryLocked(t.key)
	if e.generation != t.generation {
		return false
	}

	e.state.Fetching = false
	if err != nil {
		e.state.Err = err
		return true
	}
	e.state.Data = data
	e.state.HasData = true
	e.state.Err = nil
	e.state.Stale = false
	e.state.UpdatedAt = c.now()
	return true
}

// Invalidate marks key stale and discards in-flight fetches for it.
// Cached data stays readable until the next fetch replaces it.
func (c *Cache[T]) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entryLocked(key.String())
	e.generation++
	e.state.Stale = true
	e.state.Fetching = false
}
