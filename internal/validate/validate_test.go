// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package validate

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jeranaias/studysync-tui/internal/model"
)

// =============================================================================
// PASSWORD RULE
// =============================================================================

func TestIsValidPassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"123456", false},  // no lowercase
		{"abcdef", false},  // no digit
		{"abc123", true},   // minimal valid
		{"ab1", false},     // too short
		{"ABC123", false},  // uppercase only
		{"Pass123", true},  // mixed case
		{"äbc123", true},   // ASCII lowercase present
		{"éééééé1", false}, // accented letters are not a-z
		{"abcdef٣", false}, // Arabic-Indic digit is not 0-9
		{"ÄBC123", false},  // no a-z at all
		{"😀😀😀a1", true},  // 8 UTF-16 units
		{"😀😀1", false},   // 5 UTF-16 units, no lowercase
		{"😀a1", false},    // 4 UTF-16 units
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidPassword(tt.password); got != tt.want {
			t.Errorf("IsValidPassword(%q) = %v, want %v", tt.password, got, tt.want)
		}
	}
}

func TestIsValidPassword_MatchesDefinition(t *testing.T) {
	// Exhaustive over a small alphabet: the rule must equal
	// len >= 6 && has lowercase && has digit.
	alphabet := []string{"a", "B", "1", "_"}
	var gen func(prefix string, depth int)
	gen = func(p string, depth int) {
		want := len(p) >= 6 && strings.ContainsAny(p, "a") && strings.ContainsAny(p, "1")
		if got := IsValidPassword(p); got != want {
			t.Fatalf("IsValidPassword(%q) = %v, want %v", p, got, want)
		}
		if depth == 0 {
			return
		}
		for _, c := range alphabet {
			gen(p+c, depth-1)
		}
	}
	gen("", 7)
}

func TestPasswordProblem_Order(t *testing.T) {
	if got := PasswordProblem("ABC"); got != MsgPasswordTooShort {
		t.Errorf("short password problem = %q", got)
	}
	if got := PasswordProblem("ABCDEF1"); got != MsgPasswordNoLower {
		t.Errorf("no-lowercase problem = %q", got)
	}
	if got := PasswordProblem("abcdefg"); got != MsgPasswordNoDigit {
		t.Errorf("no-digit problem = %q", got)
	}
}

// =============================================================================
// REGISTER FORM
// =============================================================================

func TestRegister_AllEmpty(t *testing.T) {
	got := Register(model.RegisterCredentials{})
	want := FieldErrors{
		FieldUsername:        MsgUsernameRequired,
		FieldPassword:        MsgPasswordRequired,
		FieldConfirmPassword: MsgConfirmRequired,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Register(empty) mismatch (-want +got):\n%s", diff)
	}
}

func TestRegister_PasswordsDiffer(t *testing.T) {
	got := Register(model.RegisterCredentials{
		Username:        "alice",
		Password:        "Pass123",
		ConfirmPassword: "Different123",
	})
	want := FieldErrors{FieldConfirmPassword: MsgPasswordsDiffer}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Register mismatch (-want +got):\n%s", diff)
	}
}

func TestRegister_Cases(t *testing.T) {
	tests := []struct {
		name  string
		creds model.RegisterCredentials
		field string
		msg   string
	}{
		{"short name", model.RegisterCredentials{Username: " a ", Password: "abc123", ConfirmPassword: "abc123"}, FieldUsername, MsgUsernameTooShort},
		{"whitespace name", model.RegisterCredentials{Username: "   ", Password: "abc123", ConfirmPassword: "abc123"}, FieldUsername, MsgUsernameRequired},
		{"short password", model.RegisterCredentials{Username: "al", Password: "a1", ConfirmPassword: "a1"}, FieldPassword, MsgPasswordTooShort},
		{"no lowercase", model.RegisterCredentials{Username: "al", Password: "ABC123", ConfirmPassword: "ABC123"}, FieldPassword, MsgPasswordNoLower},
		{"no digit", model.RegisterCredentials{Username: "al", Password: "abcdef", ConfirmPassword: "abcdef"}, FieldPassword, MsgPasswordNoDigit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Register(tt.creds)
			if errs[tt.field] != tt.msg {
				t.Errorf("errs[%s] = %q, want %q (all: %v)", tt.field, errs[tt.field], tt.msg, errs)
			}
			if len(errs) != 1 {
				t.Errorf("got %d errors, want 1: %v", len(errs), errs)
			}
		})
	}
}

func TestRegister_Valid(t *testing.T) {
	errs := Register(model.RegisterCredentials{
		Username:        "alice",
		University:      "TUM",
		Password:        "abc123",
		ConfirmPassword: "abc123",
	})
	if !errs.OK() {
		t.Errorf("valid form produced errors: %v", errs)
	}
}

// =============================================================================
// GROUP FORMS
// =============================================================================

func TestCreateGroup_Required(t *testing.T) {
	_, errs := CreateGroup(model.CreateGroupForm{Description: "only a description"})
	want := FieldErrors{
		FieldName:       MsgGroupNameRequired,
		FieldUniversity: MsgUniversityRequired,
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Errorf("CreateGroup mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateGroup_CapsLengths(t *testing.T) {
	form, errs := CreateGroup(model.CreateGroupForm{
		Name:        strings.Repeat("n", 80),
		University:  "  TUM  ",
		Description: strings.Repeat("d", 400),
	})
	if !errs.OK() {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(form.Name) != model.MaxGroupNameLen {
		t.Errorf("name length = %d, want %d", len(form.Name), model.MaxGroupNameLen)
	}
	if form.University != "TUM" {
		t.Errorf("university = %q, want trimmed", form.University)
	}
	if len(form.Description) != model.MaxDescriptionLen {
		t.Errorf("description length = %d, want %d", len(form.Description), model.MaxDescriptionLen)
	}
}

func TestSearchQuery(t *testing.T) {
	if _, errs := SearchQuery("   "); errs[FieldQuery] != MsgQueryRequired {
		t.Errorf("empty query errors = %v", errs)
	}

	// "e" + combining acute normalizes to a single precomposed rune.
	q, errs := SearchQuery(" Cafe\u0301 ")
	if !errs.OK() {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if q != "Caf\u00e9" {
		t.Errorf("SearchQuery = %q, want NFC form", q)
	}
}

func TestFieldErrors_Error(t *testing.T) {
	errs := FieldErrors{FieldPassword: "b", FieldConfirmPassword: "a"}
	if got := errs.Error(); got != "confirmPassword: a; password: b" {
		t.Errorf("Error() = %q", got)
	}
}
