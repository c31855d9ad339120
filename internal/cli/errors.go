// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/jeranaias/studysync-tui/internal/api"
	"github.com/jeranaias/studysync-tui/internal/config"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrNotLoggedIn is returned by commands that need a session.
var ErrNotLoggedIn = errors.New("not logged in (run: studysync login)")

// UsageError reports a malformed command line.
type UsageError struct {
	Command string
	Message string
}

func (e *UsageError) Error() string {
	if e.Command == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s (see: studysync help)", e.Command, e.Message)
}

// reportedError marks an error whose details were already printed, so
// DisplayError stays quiet.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return &reportedError{err: err}
}

// =============================================================================
// ERROR DISPLAY
// =============================================================================

// DisplayError prints err as "Error: ..." in the error style.
func DisplayError(w io.Writer, err error) {
	if err == nil {
		return
	}
	var done *reportedError
	if errors.As(err, &done) {
		return
	}
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), describe(err))
}

// describe turns wrapped errors into a sentence for the user.
func describe(err error) string {
	var verrs config.ValidateErrors
	switch {
	case errors.Is(err, api.ErrTransport):
		return "cannot reach the StudySync server: " + err.Error()
	case errors.Is(err, api.ErrUnauthorized):
		return "the server rejected the session; log in again (studysync login)"
	case errors.Is(err, api.ErrAssistantDisabled):
		return "no assistant URL configured (set api.assistant_url)"
	case errors.As(err, &verrs):
		return "invalid configuration: " + verrs.Error()
	}
	if msg := api.Message(err); msg != "" {
		return msg
	}
	return err.Error()
}
