// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import tea "github.com/charmbracelet/bubbletea"

// NavigateMsg asks the router to mount the view for Path.
type NavigateMsg struct {
	Path string
}

// Navigate returns a command that navigates to path.
func Navigate(path string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Path: path} }
}

// Scoped is implemented by response messages that belong to one mount.
// The router drops them once that mount is gone.
type Scoped interface {
	MountID() string
}

// Response is embedded in view response messages.
type Response struct {
	Mount string
}

// MountID implements Scoped.
func (r Response) MountID() string { return r.Mount }

// IdentityChangedMsg is delivered to the mounted view after the session
// identity changed (login, logout or an external reload).
type IdentityChangedMsg struct{}

// Mount describes one mounting of a view.
type Mount struct {
	// ID is unique per mount, even for the same path.
	ID     string
	Path   string
	Route  string
	Params map[string]string
}

// Respond returns the Response to embed in messages for this mount.
func (m Mount) Respond() Response {
	return Response{Mount: m.ID}
}
