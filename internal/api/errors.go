// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUsernameTaken is matched by registration failures whose message is
	// UsernameTakenMessage.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrUnauthorized is matched by 401 and 403 responses.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is matched by 404 responses.
	ErrNotFound = errors.New("not found")

	// ErrTransport wraps network failures (no response at all).
	ErrTransport = errors.New("transport error")

	// ErrMalformedResponse wraps bodies that could not be decoded.
	ErrMalformedResponse = errors.New("malformed response")
)

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.Status)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
}

// Unwrap maps the response onto the package sentinels.
func (e *APIError) Unwrap() error {
	switch {
	case e.Message == UsernameTakenMessage:
		return ErrUsernameTaken
	case e.Status == http.StatusUnauthorized, e.Status == http.StatusForbidden:
		return ErrUnauthorized
	case e.Status == http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

// errorBody is the failure shape: {message} or {error}.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func newAPIError(status int, body []byte) *APIError {
	e := &APIError{Status: status}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Message != "" {
			e.Message = eb.Message
		} else {
			e.Message = eb.Error
		}
	} else if text := strings.TrimSpace(string(body)); text != "" && len(text) < 200 {
		e.Message = text
	}
	return e
}

// Message extracts the server message from err, or "" when err is not an
// *APIError.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}
