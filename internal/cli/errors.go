// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jeranaias/jiyuu-tui/internal/config"
	"github.com/jeranaias/jiyuu-tui/internal/engine"
	"github.com/jeranaias/jiyuu-tui/internal/ollama"
	"github.com/jeranaias/jiyuu-tui/internal/session"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitUsageError   = 2
	ExitConfigError  = 3
	ExitLoadError    = 4
	ExitNetworkError = 5
	ExitInterrupted  = 130 // 128 + SIGINT
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// UsageError is a malformed command line.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

// CommandError wraps a failure with the command that hit it.
type CommandError struct {
	Command string
	Action  string
	Err     error
}

func (e *CommandError) Error() string {
	if e.Action != "" {
		return fmt.Sprintf("%s %s: %v", e.Command, e.Action, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExitCode maps err to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usage *UsageError
	var invalid config.ValidateErrors
	var tty *TTYRequiredError
	var clientErr *ollama.ClientError
	switch {
	case errors.As(err, &usage), errors.As(err, &tty):
		return ExitUsageError
	case errors.As(err, &invalid):
		return ExitConfigError
	case ollama.IsCancelled(err), errors.Is(err, engine.ErrInterrupted), errors.Is(err, context.Canceled):
		return ExitInterrupted
	case ollama.IsNotRunning(err), ollama.IsTimeout(err),
		errors.As(err, &clientErr) && clientErr.Type == ollama.ErrTypeConnection:
		return ExitNetworkError
	case session.IsLoadError(err):
		return ExitLoadError
	default:
		return ExitGeneralError
	}
}

// DisplayError prints err in the CLI's error style. Usage errors get a
// pointer to the help text.
func DisplayError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "%s %v\n", ErrorStyle.Render("[ERROR]"), err)

	var usage *UsageError
	if errors.As(err, &usage) {
		fmt.Fprintln(w, DimStyle.Render("Run 'jiyuu help' for usage."))
	}
}
