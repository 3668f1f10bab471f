// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package engine defines the capability contract between the chat session
// controller and whatever inference engine actually runs the model.
package engine

import (
	"context"
	"errors"
	"time"
)

// =============================================================================
// MESSAGES
// =============================================================================

// Role constants for Message.Role.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of conversation context sent to the engine.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chunk is an incremental fragment of assistant output.
type Chunk struct {
	Delta string
}

// Progress reports how far engine construction has come.
type Progress struct {
	// Fraction complete in [0,1]. Engines may report it out of order.
	Fraction float64
	// Text is a human-readable status line.
	Text string
	// Elapsed is the time since loading started.
	Elapsed time.Duration
}

// ProgressFunc receives load progress. It may be called many times and
// from any goroutine.
type ProgressFunc func(Progress)

// =============================================================================
// CAPABILITIES
// =============================================================================

// Loader constructs a ready-to-use Session for a model.
type Loader interface {
	// Load blocks until the model is usable or loading fails. onProgress
	// may be nil.
	Load(ctx context.Context, modelID string, onProgress ProgressFunc) (Session, error)
}

// Session is a live handle to one loaded model.
type Session interface {
	// CompleteStream starts a streamed completion over the given turns.
	CompleteStream(ctx context.Context, messages []Message) (Stream, error)

	// Complete runs a completion and returns the whole response.
	Complete(ctx context.Context, messages []Message) (string, error)

	// Interrupt asks the engine to stop the current generation. It must not
	// block; acknowledgement arrives, if at all, as an error from Recv.
	Interrupt()

	// ResetContext clears any conversational state held by the engine.
	ResetContext(ctx context.Context) error
}

// Stream delivers chunks of a streamed completion in order.
type Stream interface {
	// Recv returns the next chunk. It returns io.EOF once the completion
	// is exhausted and any other error if generation failed.
	Recv() (Chunk, error)

	// Close releases the stream. Safe to call more than once.
	Close() error
}

// ErrInterrupted is returned by Recv when the stream was stopped through
// Session.Interrupt.
var ErrInterrupted = errors.New("generation interrupted")

