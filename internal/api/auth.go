// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jeranaias/studysync-tui/internal/model"
)

type loginResponse struct {
	Token string `json:"token"`
}

type registerRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	University string `json:"university"`
}

type registerResponse struct {
	Message string `json:"message"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, creds model.LoginCredentials) (string, error) {
	var resp loginResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		url:    c.endpoint(c.loginPath),
		body:   creds,
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if resp.Token == "" {
		return "", fmt.Errorf("login: %w: no token in response", ErrMalformedResponse)
	}
	return resp.Token, nil
}

// Register creates an account. It returns the server message, which may be
// empty. A collision with an existing username matches ErrUsernameTaken.
func (c *Client) Register(ctx context.Context, creds model.RegisterCredentials) (string, error) {
	var resp registerResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		url:    c.endpoint(c.registerPath),
		body: registerRequest{
			Username:   creds.Username,
			Password:   creds.Password,
			University: creds.University,
		},
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("register: %w", err)
	}
	return resp.Message, nil
}
