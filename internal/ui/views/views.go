// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package views implements the routed StudySync screens: home (group list,
// create, find), group detail, login and register.
//
// Every network call runs in a tea.Cmd and reports back with a message that
// embeds router.Response, so a response arriving after the view was
// unmounted is dropped by the router.
package views

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/studysync-tui/internal/ui/router"
)

// Factories returns the view constructor for every route.
func Factories() map[string]router.Factory {
	return map[string]router.Factory{
		router.RouteHome:     NewHome,
		router.RouteGroup:    NewDetail,
		router.RouteLogin:    NewLogin,
		router.RouteRegister: NewRegister,
	}
}

// size is embedded by views for SetSize.
type size struct {
	width, height int
}

func (s *size) SetSize(width, height int) {
	s.width, s.height = width, height
}

// formWidth caps form inputs at a comfortable width.
func (s *size) formWidth() int {
	w := s.width - 8
	if w > 60 {
		w = 60
	}
	if w < 20 {
		w = 20
	}
	return w
}

// page renders a titled page body.
func page(ctx *router.Context, title string, parts ...string) string {
	theme := ctx.Theme
	body := append([]string{theme.Title.Render(title)}, parts...)
	return theme.Page.Render(lipgloss.JoinVertical(lipgloss.Left, body...))
}
