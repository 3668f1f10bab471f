// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"github.com/jeranaias/jiyuu-tui/internal/engine"
	"github.com/jeranaias/jiyuu-tui/internal/model"
)

// Snapshot is the observable state of a Controller at one point in time.
// It shares nothing with the controller and is safe to keep.
type Snapshot struct {
	// Seq increases by one with every published snapshot.
	Seq uint64

	State State

	// LoadProgress is the latest progress report. Nil unless Loading.
	LoadProgress *engine.Progress

	// LoadError is the localized load failure message. Empty unless Failed.
	LoadError string

	// Failure carries the cause behind LoadError.
	Failure *Error

	// ShowReady is true briefly after the engine becomes ready.
	ShowReady bool

	Conversation []model.Turn
}

// IsReady reports whether the engine accepts a new request.
func (s Snapshot) IsReady() bool { return s.State == StateReady }

// IsGenerating reports whether a completion is streaming.
func (s Snapshot) IsGenerating() bool { return s.State == StateGenerating }

// IsLoading reports whether the engine is being constructed.
func (s Snapshot) IsLoading() bool { return s.State == StateLoading }

// IsFailed reports whether loading failed.
func (s Snapshot) IsFailed() bool { return s.State == StateFailed }

// LastTurn returns the newest turn of the conversation.
func (s Snapshot) LastTurn() (model.Turn, bool) {
	if len(s.Conversation) == 0 {
		return model.Turn{}, false
	}
	return s.Conversation[len(s.Conversation)-1], true
}

// Observer receives every snapshot in the order the changes happened.
//
// Observers run while the controller is locked: they must return quickly
// and must not call back into the Controller.
type Observer func(Snapshot)

// Coalesce returns an Observer that keeps only the newest snapshot in ch,
// replacing an unread one. ch must have a buffer of one. This lets a
// consumer that renders at its own pace skip intermediate states.
func Coalesce(ch chan Snapshot) Observer {
	return func(s Snapshot) {
		select {
		case ch <- s:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}
