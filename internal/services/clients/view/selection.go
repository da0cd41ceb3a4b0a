package view

import (
	"sort"
	"sync"

	"clientele/internal/services/clients/domain"
)

// Selection is the set of client ids marked for a pending bulk action.
// Membership is independent of the current view; an id may stay selected
// after a filter change hides it. Pure in-memory set work, never fails
type Selection struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

// NewSelection returns an empty selection
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// SelectAll replaces the selection with exactly the ids in view when checked,
// or empties it when unchecked. Replacing rather than unioning means switching
// filters and re-selecting never drags stale ids along
func (s *Selection) SelectAll(checked bool, view []domain.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[string]struct{}, len(view))
	if !checked {
		return
	}
	for _, c := range view {
		s.ids[c.ID] = struct{}{}
	}
}

// SelectOne adds or removes a single id; idempotent either way
func (s *Selection) SelectOne(id string, checked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if checked {
		s.ids[id] = struct{}{}
		return
	}
	delete(s.ids, id)
}

// Clear empties the selection unconditionally
func (s *Selection) Clear() {
	s.mu.Lock()
	s.ids = make(map[string]struct{})
	s.mu.Unlock()
}

// Has reports whether id is selected
func (s *Selection) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

// Len returns the selection size
func (s *Selection) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// IDs returns the selected ids sorted for deterministic batches
func (s *Selection) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
