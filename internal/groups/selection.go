// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package groups holds the in-memory group selection shared by the list
// and detail views. Nothing here is persisted.
package groups

import (
	"errors"
	"sync"

	"github.com/jeranaias/studysync-tui/internal/model"
)

// ErrNoProvider is the panic value for a Selection used without NewSelection.
var ErrNoProvider = errors.New("groups: selection used outside its provider")

// Selection is the current group, if any.
type Selection struct {
	mu      sync.RWMutex
	current *model.GroupSummary
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{}
}

// Current returns the selected group.
func (s *Selection) Current() (model.GroupSummary, bool) {
	if s == nil {
		panic(ErrNoProvider)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return model.GroupSummary{}, false
	}
	return *s.current, true
}

// SetCurrent replaces the selection. Nil clears it.
func (s *Selection) SetCurrent(g *model.GroupSummary) {
	if s == nil {
		panic(ErrNoProvider)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if g == nil {
		s.current = nil
		return
	}
	cp := *g
	s.current = &cp
}

// Clear is SetCurrent(nil).
func (s *Selection) Clear() {
	s.SetCurrent(nil)
}

// MatchesRoute reports whether the current group has the given id.
func (s *Selection) MatchesRoute(id int64) bool {
	g, ok := s.Current()
	return ok && g.ID == id
}
