// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markdown

import (
	"strings"
	"testing"
)

func TestRender_PlainStyleKeepsText(t *testing.T) {
	r := New(StyleNone)
	out := r.Render("# Linear Algebra\n\nWe meet **weekly**.", 60)
	for _, want := range []string{"Linear Algebra", "weekly"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered output missing %q:\n%s", want, out)
		}
	}
}

func TestRender_CachesPerWidth(t *testing.T) {
	r := New(StyleNone)
	r.Render("a", 40)
	r.Render("b", 40)
	r.Render("c", 60)
	if len(r.renderers) != 2 {
		t.Errorf("cached renderers = %d, want 2", len(r.renderers))
	}
}

func TestRender_MinimumWidth(t *testing.T) {
	r := New(StyleNone)
	r.Render("x", 5)
	if _, ok := r.renderers[20]; !ok {
		t.Error("narrow widths should clamp to 20")
	}
}
