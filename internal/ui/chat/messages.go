// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/jiyuu-tui/internal/config"
	"github.com/jeranaias/jiyuu-tui/internal/session"
)

// =============================================================================
// MESSAGES
// =============================================================================

// SnapshotMsg carries the newest controller state.
type SnapshotMsg struct {
	Snapshot session.Snapshot
}

// ConfigChangedMsg carries a configuration reloaded from disk.
type ConfigChangedMsg struct {
	Config *config.Config
}

// toastExpiredMsg clears the toast it was scheduled for.
type toastExpiredMsg struct {
	seq int
}

// errMsg reports a failed command.
type errMsg struct {
	err error
}

// =============================================================================
// COMMANDS
// =============================================================================

// waitForSnapshot blocks until the controller publishes again.
func waitForSnapshot(ch <-chan session.Snapshot) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return SnapshotMsg{Snapshot: s}
	}
}

// waitForConfig blocks until the config watcher reports a change.
func waitForConfig(ch <-chan *config.Config) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return ConfigChangedMsg{Config: cfg}
	}
}
