// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package groups

import (
	"errors"
	"testing"

	"github.com/jeranaias/studysync-tui/internal/model"
)

func TestSelection_StartsEmpty(t *testing.T) {
	s := NewSelection()
	if _, ok := s.Current(); ok {
		t.Error("new selection should be empty")
	}
	if s.MatchesRoute(0) {
		t.Error("empty selection should match no route")
	}
}

func TestSelection_SetAndClear(t *testing.T) {
	s := NewSelection()
	g := &model.GroupSummary{ID: 7, Name: "Stats"}
	s.SetCurrent(g)

	// The store keeps its own copy.
	g.Name = "changed"

	got, ok := s.Current()
	if !ok || got.ID != 7 || got.Name != "Stats" {
		t.Errorf("Current() = %+v, %v", got, ok)
	}
	if !s.MatchesRoute(7) || s.MatchesRoute(8) {
		t.Error("MatchesRoute mismatch")
	}

	s.SetCurrent(&model.GroupSummary{ID: 8})
	if got, _ := s.Current(); got.ID != 8 {
		t.Errorf("SetCurrent did not replace: %+v", got)
	}

	s.Clear()
	if _, ok := s.Current(); ok {
		t.Error("Clear did not clear")
	}
}

func TestSelection_NilPanics(t *testing.T) {
	var s *Selection
	defer func() {
		err, ok := recover().(error)
		if !ok || !errors.Is(err, ErrNoProvider) {
			t.Errorf("recovered %v, want ErrNoProvider", err)
		}
	}()
	s.Current()
}
