// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markdown renders group descriptions and assistant answers for
// the terminal with glamour.
package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Style names accepted by New.
const (
	StyleDark  = "dark"
	StyleLight = "light"
	StyleAuto  = "auto"
	StyleNone  = "notty"
)

// Renderer caches one glamour renderer per wrap width.
type Renderer struct {
	style string

	mu        sync.Mutex
	renderers map[int]*glamour.TermRenderer
}

// New creates a renderer. "auto" queries the terminal, so the TUI passes an
// explicit style once it owns the screen.
func New(style string) *Renderer {
	if style == "" {
		style = StyleAuto
	}
	return &Renderer{style: style, renderers: make(map[int]*glamour.TermRenderer)}
}

// ForTheme picks the style matching a dark or light background.
func ForTheme(isDark bool) *Renderer {
	if isDark {
		return New(StyleDark)
	}
	return New(StyleLight)
}

func (r *Renderer) renderer(width int) (*glamour.TermRenderer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tr, ok := r.renderers[width]; ok {
		return tr, nil
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if r.style == StyleAuto {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(r.style))
	}
	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}
	r.renderers[width] = tr
	return tr, nil
}

// Render renders md wrapped at width. On any failure the source text is
// returned unchanged.
func (r *Renderer) Render(md string, width int) string {
	if width < 20 {
		width = 20
	}
	tr, err := r.renderer(width)
	if err != nil {
		return md
	}
	out, err := tr.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
