// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// Identity is the client's record of the authenticated user.
// The zero value means logged out.
type Identity struct {
	Username string
	Token    string
}

// Authenticated reports whether a user is logged in.
func (i Identity) Authenticated() bool {
	return i.Username != ""
}

// LoginCredentials is the login form input.
type LoginCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterCredentials is the registration form input.
type RegisterCredentials struct {
	Username        string
	University      string
	Password        string
	ConfirmPassword string
}
