// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "testing"

func TestIdentity_Authenticated(t *testing.T) {
	if (Identity{}).Authenticated() {
		t.Error("zero Identity should not be authenticated")
	}
	if !(Identity{Username: "alice", Token: "t"}).Authenticated() {
		t.Error("Identity with username should be authenticated")
	}
}

func TestGroupSummary_Path(t *testing.T) {
	g := GroupSummary{ID: 42, Name: "Biology 101"}
	if got := g.Path(); got != "/group/42" {
		t.Errorf("Path() = %q, want /group/42", got)
	}
}

func TestGroupSummary_Matches(t *testing.T) {
	g := GroupSummary{Name: "Biology 101", University: "TU Munich"}

	tests := []struct {
		query string
		want  bool
	}{
		{"bio", true},
		{"MUNICH", true},
		{"chemistry", false},
		{"", true},
	}
	for _, tt := range tests {
		if got := g.Matches(tt.query); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}
