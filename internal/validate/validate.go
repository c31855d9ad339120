// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package validate holds the client-side form rules. Validation errors are
// field scoped and never reach the network.
package validate

import (
	"sort"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/studysync-tui/internal/model"
	"github.com/jeranaias/studysync-tui/internal/util"
)

// Form field names.
const (
	FieldUsername        = "username"
	FieldUniversity      = "university"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldName            = "name"
	FieldDescription     = "description"
	FieldQuery           = "query"
	FieldImage           = "image"
)

// Messages shown inline next to fields.
const (
	MsgUsernameRequired   = "User name is required"
	MsgUsernameTooShort   = "Name must be at least 2 characters"
	MsgPasswordRequired   = "Password is required"
	MsgPasswordTooShort   = "Password must be at least 6 characters"
	MsgPasswordNoLower    = "Password must contain at least one lowercase letter"
	MsgPasswordNoDigit    = "Password must contain at least one number"
	MsgConfirmRequired    = "Please confirm your password"
	MsgPasswordsDiffer    = "Passwords do not match"
	MsgGroupNameRequired  = "Group name is required"
	MsgUniversityRequired = "University is required"
	MsgQueryRequired      = "Please enter a group name or university"
)

// MinPasswordLen is the shortest accepted password.
const MinPasswordLen = 6

// MinUsernameLen is the shortest accepted username (after trimming).
const MinUsernameLen = 2

// FieldErrors maps a field name to its message. A nil or empty map means
// the form is valid.
type FieldErrors map[string]string

// Error implements error so a FieldErrors can be returned where an error is
// expected. Fields are listed in name order.
func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return strings.Join(parts, "; ")
}

// OK reports whether there are no errors.
func (e FieldErrors) OK() bool {
	return len(e) == 0
}

// =============================================================================
// PASSWORDS
// =============================================================================

// IsValidPassword reports whether p has at least six characters, a lowercase
// letter and a digit.
func IsValidPassword(p string) bool {
	return PasswordProblem(p) == ""
}

// PasswordProblem returns the first rule p breaks, or "" if it is valid.
// Only a-z and 0-9 satisfy the letter and digit rules. Length is counted in
// UTF-16 code units, as a browser form counts it.
func PasswordProblem(p string) string {
	if formLen(p) < MinPasswordLen {
		return MsgPasswordTooShort
	}
	if !strings.ContainsFunc(p, isASCIILower) {
		return MsgPasswordNoLower
	}
	if !strings.ContainsFunc(p, isASCIIDigit) {
		return MsgPasswordNoDigit
	}
	return ""
}

// formLen is the length of s in UTF-16 code units.
func formLen(s string) int {
	return len(utf16.Encode([]rune(s)))
}

func isASCIILower(r rune) bool { return r >= 'a' && r <= 'z' }

func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }

// =============================================================================
// FORMS
// =============================================================================

// Register checks the registration form. University is optional.
func Register(c model.RegisterCredentials) FieldErrors {
	errs := FieldErrors{}

	name := strings.TrimSpace(c.Username)
	switch {
	case name == "":
		errs[FieldUsername] = MsgUsernameRequired
	case formLen(name) < MinUsernameLen:
		errs[FieldUsername] = MsgUsernameTooShort
	}

	if c.Password == "" {
		errs[FieldPassword] = MsgPasswordRequired
	} else if msg := PasswordProblem(c.Password); msg != "" {
		errs[FieldPassword] = msg
	}

	switch {
	case c.ConfirmPassword == "":
		errs[FieldConfirmPassword] = MsgConfirmRequired
	case c.ConfirmPassword != c.Password:
		errs[FieldConfirmPassword] = MsgPasswordsDiffer
	}

	return errs
}

// CreateGroup checks the create-group form and returns it with every field
// trimmed and capped at its maximum length.
func CreateGroup(f model.CreateGroupForm) (model.CreateGroupForm, FieldErrors) {
	errs := FieldErrors{}

	f.Name = util.TruncateRunes(strings.TrimSpace(f.Name), model.MaxGroupNameLen)
	f.University = util.TruncateRunes(strings.TrimSpace(f.University), model.MaxUniversityLen)
	f.Description = util.TruncateRunes(strings.TrimSpace(f.Description), model.MaxDescriptionLen)
	f.ImagePath = strings.TrimSpace(f.ImagePath)

	if f.Name == "" {
		errs[FieldName] = MsgGroupNameRequired
	}
	if f.University == "" {
		errs[FieldUniversity] = MsgUniversityRequired
	}
	return f, errs
}

// SearchQuery trims and NFC-normalizes a search query. An empty result is a
// validation error.
func SearchQuery(q string) (string, FieldErrors) {
	q = norm.NFC.String(strings.TrimSpace(q))
	if q == "" {
		return "", FieldErrors{FieldQuery: MsgQueryRequired}
	}
	return q, nil
}
