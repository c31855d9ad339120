// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strconv"
	"strings"
)

// Field caps for group creation.
const (
	MaxGroupNameLen   = 50
	MaxUniversityLen  = 50
	MaxDescriptionLen = 300
)

// GroupSummary is a study group as returned by list and search calls.
type GroupSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	University  string `json:"university"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// Path returns the detail route for the group.
func (g GroupSummary) Path() string {
	return GroupPath(g.ID)
}

// GroupPath returns the detail route for a group id.
func GroupPath(id int64) string {
	return "/group/" + strconv.FormatInt(id, 10)
}

// Matches reports whether the group name or university contains query,
// ignoring case. Used to filter cached lists locally.
func (g GroupSummary) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(g.Name), q) ||
		strings.Contains(strings.ToLower(g.University), q)
}

// CreateGroupForm is the create-group form input.
type CreateGroupForm struct {
	Name        string
	University  string
	Description string
	// ImagePath is an optional local image. Empty means the default image.
	ImagePath string
}

// AssistantAnswer is an AI bot reply.
type AssistantAnswer struct {
	Answer  string
	Sources []SourceRef
}

// SourceRef points at a passage the answer was grounded on.
type SourceRef struct {
	Source  string
	Page    int
	Excerpt string
}
