package history

import (
	"fmt"
	"strconv"
	"strings"
)

// Resolver resolves user-friendly references to conversation IDs
type Resolver struct {
	store *Store
}

// NewResolver creates a new reference resolver
func NewResolver(store *Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve converts a reference to a conversation ID
//
// Supported references:
//   - "42" - conversation ID, used as is
//   - "@last" - most recently opened conversation
//   - "@first" - oldest conversation in the list
//   - "@1", "@2", "@3" - by position in the recent list (1-based)
//   - "jane" - customer name substring (error if several match)
func (r *Resolver) Resolve(ref string) (int64, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return 0, fmt.Errorf("empty reference")
	}

	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		if id <= 0 {
			return 0, fmt.Errorf("conversation ID must be positive")
		}
		return id, nil
	}

	entries, err := r.store.List()
	if err != nil {
		return 0, fmt.Errorf("failed to list recent conversations: %w", err)
	}
	if len(entries) == 0 {
		return 0, fmt.Errorf("no recent conversations")
	}

	switch strings.ToLower(ref) {
	case "@last":
		return entries[0].ID, nil
	case "@first":
		return entries[len(entries)-1].ID, nil
	}

	if strings.HasPrefix(ref, "@") {
		index, err := strconv.Atoi(ref[1:])
		if err != nil {
			return 0, fmt.Errorf("unknown alias %q", ref)
		}
		if index < 1 || index > len(entries) {
			return 0, fmt.Errorf("index %d out of range (1-%d)", index, len(entries))
		}
		return entries[index-1].ID, nil
	}

	refLower := strings.ToLower(ref)
	var matches []Entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.CustomerName), refLower) {
			matches = append(matches, e)
		}
	}

	switch len(matches) {
	case 0:
		return 0, fmt.Errorf("no recent conversation matching '%s'", ref)
	case 1:
		return matches[0].ID, nil
	default:
		var labels []string
		for _, m := range matches {
			labels = append(labels, fmt.Sprintf("%d (%s)", m.ID, m.CustomerName))
		}
		return 0, fmt.Errorf("multiple conversations match '%s': %s. Use the ID or be more specific",
			ref, strings.Join(labels, ", "))
	}
}

// ListAliases returns information about supported references
func ListAliases() string {
	return `Conversation references:
  42             Conversation ID
  @last          Most recently opened conversation
  @first         Oldest conversation in the recent list
  @1, @2, @3     By position in the recent list
  "jane"         Search by customer name`
}
