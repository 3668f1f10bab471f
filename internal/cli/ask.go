// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jeranaias/jiyuu-tui/internal/session"
	"github.com/jeranaias/jiyuu-tui/internal/ui/components"
)

// maxStdinQuery bounds a question piped on stdin.
const maxStdinQuery = 1 << 20

// AskOptions configures a one-shot question.
type AskOptions struct {
	// Render formats the reply as markdown for a terminal.
	Render bool

	// MarkdownStyle is a glamour style name; empty picks one for the
	// terminal background.
	MarkdownStyle string

	Width int
}

// RunAsk loads the model, asks query without streaming, and writes the
// reply to out.
func RunAsk(ctx context.Context, ctrl *session.Controller, query string, out io.Writer, opts AskOptions) error {
	if strings.TrimSpace(query) == "" {
		return &UsageError{Message: "ask needs a question (jiyuu ask \"...\" or pipe it on stdin)"}
	}

	if err := ctrl.Initialize(ctx); err != nil && !errors.Is(err, session.ErrAlreadyStarted) {
		return err
	}
	if err := ctrl.AwaitLoad(ctx); err != nil {
		return &CommandError{Command: "ask", Action: "load", Err: err}
	}

	reply, err := ctrl.Complete(ctx, query)
	if err != nil {
		return &CommandError{Command: "ask", Err: err}
	}

	if opts.Render {
		width := opts.Width
		if width <= 0 {
			width = TerminalWidth()
		}
		reply = components.NewMarkdown(opts.MarkdownStyle).Render(reply, width)
	}
	_, err = fmt.Fprintln(out, strings.TrimRight(reply, "\n"))
	return err
}

// ReadQuery returns the question from args, falling back to stdin when it
// is not a terminal.
func ReadQuery(args Args, stdin io.Reader, stdinIsTTY bool) (string, error) {
	if args.Query != "" || stdinIsTTY || stdin == nil {
		return args.Query, nil
	}
	data, err := io.ReadAll(io.LimitReader(stdin, maxStdinQuery))
	if err != nil {
		return "", fmt.Errorf("reading question from stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
