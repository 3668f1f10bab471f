// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

// State is the lifecycle of the engine behind a Controller.
type State int

const (
	// StateUnloaded means no engine exists yet.
	StateUnloaded State = iota
	// StateLoading means the engine is being constructed.
	StateLoading
	// StateReady means the engine is idle and accepts requests.
	StateReady
	// StateGenerating means a completion is streaming.
	StateGenerating
	// StateFailed means loading failed. Only Reload leaves this state.
	StateFailed
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "Unloaded"
	case StateLoading:
		return "Loading"
	case StateReady:
		return "Ready"
	case StateGenerating:
		return "Generating"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}
