// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"
	"fmt"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorKind categorizes controller failures.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindLoad: the engine could not be constructed. Terminal until Reload.
	KindLoad
	// KindGeneration: a completion failed after it was requested.
	KindGeneration
	// KindCancellationRace: the engine reported something after the
	// generation was cancelled. Reconciled silently.
	KindCancellationRace
)

// String returns the string representation of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindLoad:
		return "load"
	case KindGeneration:
		return "generation"
	case KindCancellationRace:
		return "cancellation_race"
	default:
		return "unknown"
	}
}

// Error is a controller failure. Message is what the user is shown; Cause
// is what the engine reported.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Sentinel errors returned by Controller methods.
var (
	ErrEmptyInput     = errors.New("input is empty")
	ErrBusy           = errors.New("a response is already being generated")
	ErrNotGenerating  = errors.New("no response is being generated")
	ErrNotFailed      = errors.New("engine has not failed")
	ErrNotReady       = errors.New("engine is not ready")
	ErrAlreadyStarted = errors.New("engine already initialized")
)

// IsLoadError returns true if err is a load failure.
func IsLoadError(err error) bool {
	return isKind(err, KindLoad)
}

// IsGenerationError returns true if err is a generation failure.
func IsGenerationError(err error) bool {
	return isKind(err, KindGeneration)
}

func isKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
