// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/jiyuu-tui/internal/engine/enginetest"
	"github.com/jeranaias/jiyuu-tui/internal/session"
)

// scriptedInput replays lines and then reports EOF.
type scriptedInput struct {
	lines    []string
	next     int
	history  []string
	closed   bool
	onPrompt func(n int)
}

func (s *scriptedInput) Prompt(string) (string, error) {
	if s.onPrompt != nil {
		s.onPrompt(s.next)
	}
	if s.next >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.next]
	s.next++
	return line, nil
}

func (s *scriptedInput) AppendHistory(item string) {
	s.history = append(s.history, item)
}

func (s *scriptedInput) Close() error {
	s.closed = true
	return nil
}

type replHarness struct {
	repl   *REPL
	ctrl   *session.Controller
	in     *scriptedInput
	out    *bytes.Buffer
	sig    chan os.Signal
	copied []string
}

func newREPLHarness(t *testing.T, loader *enginetest.Loader, lines ...string) *replHarness {
	t.Helper()
	h := &replHarness{
		ctrl: newTestController(t, loader),
		in:   &scriptedInput{lines: lines},
		out:  &bytes.Buffer{},
		sig:  make(chan os.Signal, 1),
	}
	h.repl = NewREPL(REPLOptions{
		Controller: h.ctrl,
		Input:      h.in,
		Out:        h.out,
		Locale:     "en",
		Width:      80,
		Interrupts: h.sig,
		Clipboard: func(s string) error {
			h.copied = append(h.copied, s)
			return nil
		},
	})
	return h
}

func (h *replHarness) run(t *testing.T) string {
	t.Helper()
	require.NoError(t, h.repl.Run(context.Background()))
	return h.out.String()
}

func TestREPL_StreamsReply(t *testing.T) {
	sess := enginetest.NewSession(enginetest.Script{Chunks: []string{"He", "llo"}})
	h := newREPLHarness(t, &enginetest.Loader{Session: sess}, "hi", "")

	out := h.run(t)
	assert.Contains(t, out, "test-model")
	assert.Contains(t, out, "Go!")
	assert.Contains(t, out, "Hello\n")
	assert.Equal(t, []string{"hi"}, h.in.history)
	assert.True(t, h.in.closed)

	turns := h.ctrl.Snapshot().Conversation
	require.Len(t, turns, 2)
	assert.Equal(t, "Hello", turns[1].Content)
}

func TestREPL_GenerationFailure(t *testing.T) {
	sess := enginetest.NewSession(enginetest.Script{Chunks: []string{"par"}, Err: errors.New("engine crashed")})
	h := newREPLHarness(t, &enginetest.Loader{Session: sess}, "hi")

	out := h.run(t)
	assert.Contains(t, out, "There was an error generating the response")
	last, _ := h.ctrl.Snapshot().LastTurn()
	assert.True(t, last.Errored)
}

func TestREPL_InterruptStopsReply(t *testing.T) {
	sess := enginetest.NewSession(enginetest.Script{Chunks: []string{"partial"}, Hang: true})
	h := newREPLHarness(t, &enginetest.Loader{Session: sess}, "tell me everything")

	go func() {
		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			if last, ok := h.ctrl.Snapshot().LastTurn(); ok && last.Content == "partial" {
				h.sig <- os.Interrupt
				return
			}
			time.Sleep(5 * time.Millisecond)
		}
	}()

	out := h.run(t)
	assert.Contains(t, out, "partial")
	assert.Contains(t, out, "[stopped]")
	assert.Equal(t, 1, sess.Interrupts())

	last, _ := h.ctrl.Snapshot().LastTurn()
	assert.Equal(t, "partial", last.Content)
	assert.False(t, last.Errored)
}

func TestREPL_Clear(t *testing.T) {
	sess := enginetest.NewSession(enginetest.Script{Chunks: []string{"ok"}})
	h := newREPLHarness(t, &enginetest.Loader{Session: sess}, "hi", "/clear")

	out := h.run(t)
	assert.Contains(t, out, "Conversation cleared.")
	assert.Empty(t, h.ctrl.Snapshot().Conversation)
	assert.Equal(t, 1, sess.Resets())
}

func TestREPL_ReloadAfterFailure(t *testing.T) {
	loader := &enginetest.Loader{Err: errors.New("out of memory")}
	h := newREPLHarness(t, loader, "/reload")
	h.in.onPrompt = func(n int) {
		if n == 0 {
			loader.Err = nil
		}
	}

	out := h.run(t)
	assert.Contains(t, out, "An error occurred while loading the model.")
	assert.Contains(t, out, "out of memory")
	assert.Contains(t, out, "Type /reload")
	assert.Contains(t, out, "Go!")
	assert.Equal(t, 2, loader.Calls())
	assert.True(t, h.ctrl.Snapshot().IsReady())
}

func TestREPL_ReloadWhenReady(t *testing.T) {
	loader := &enginetest.Loader{}
	h := newREPLHarness(t, loader, "/reload")

	out := h.run(t)
	assert.Contains(t, out, "Nothing to reload.")
	assert.Equal(t, 1, loader.Calls())
}

func TestREPL_MessageWhileFailed(t *testing.T) {
	h := newREPLHarness(t, &enginetest.Loader{Err: errors.New("boom")}, "hello")

	out := h.run(t)
	assert.Contains(t, out, "The model is not loaded.")
	turns := h.ctrl.Snapshot().Conversation
	require.Len(t, turns, 1)
	assert.True(t, turns[0].IsUser())
}

func TestREPL_Lang(t *testing.T) {
	sess := enginetest.NewSession(enginetest.Script{Err: errors.New("fail")})
	h := newREPLHarness(t, &enginetest.Loader{Session: sess}, "/lang es", "/lang", "hola")

	out := h.run(t)
	assert.Contains(t, out, "Español")
	assert.Contains(t, out, "* es")
	assert.Contains(t, out, "Hubo un error al generar la respuesta")
}

func TestREPL_Copy(t *testing.T) {
	reply := "Run:\n```sh\nls -la\n```\n"
	sess := enginetest.NewSession(enginetest.Script{Chunks: []string{reply}})
	h := newREPLHarness(t, &enginetest.Loader{Session: sess}, "/copy", "how do I list files", "/copy")

	out := h.run(t)
	assert.Contains(t, out, "No code block to copy")
	assert.Contains(t, out, "Copied!")
	assert.Equal(t, []string{"ls -la"}, h.copied)
}

func TestREPL_Commands(t *testing.T) {
	h := newREPLHarness(t, &enginetest.Loader{}, "/help", "/frob", "/quit", "never read")

	out := h.run(t)
	assert.Contains(t, out, "/reload")
	assert.Contains(t, out, "unknown command /frob")
	assert.Equal(t, 3, h.in.next)
}

func TestREPL_ExitWord(t *testing.T) {
	h := newREPLHarness(t, &enginetest.Loader{}, "exit", "never read")
	h.run(t)
	assert.Equal(t, 1, h.in.next)
}

type abortingInput struct{ scriptedInput }

func (a *abortingInput) Prompt(string) (string, error) {
	return "", liner.ErrPromptAborted
}

func TestREPL_CtrlCAtPromptExits(t *testing.T) {
	h := newREPLHarness(t, &enginetest.Loader{})
	in := &abortingInput{}
	h.repl.in = in

	require.NoError(t, h.repl.Run(context.Background()))
	assert.True(t, in.closed)
}
