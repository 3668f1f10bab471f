// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversation turns.
package model

import (
	"strings"

	"github.com/jeranaias/jiyuu-tui/internal/engine"
)

// entry is a turn plus the buffer its streamed content grows in.
type entry struct {
	turn Turn
	// PERFORMANCE: strings.Builder avoids quadratic allocations while streaming
	buf *strings.Builder
}

func (e *entry) snapshot() Turn {
	t := e.turn
	if e.buf != nil && !t.Errored {
		t.Content = e.buf.String()
	}
	return t
}

// =============================================================================
// LOG TYPE
// =============================================================================

// Log is the ordered conversation. Insertion order is chronological order.
type Log struct {
	entries []*entry
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{}
}

// AppendUser appends an immutable user turn and returns it.
func (l *Log) AppendUser(content string) Turn {
	e := &entry{turn: newTurn(RoleUser, content)}
	l.entries = append(l.entries, e)
	return e.turn
}

// AppendAssistant appends an empty assistant turn that can grow through
// AppendDelta and returns it.
func (l *Log) AppendAssistant() Turn {
	e := &entry{turn: newTurn(RoleAssistant, ""), buf: &strings.Builder{}}
	l.entries = append(l.entries, e)
	return e.turn
}

// lastAssistant returns the last entry if it is the assistant turn id.
func (l *Log) lastAssistant(id string) *entry {
	if len(l.entries) == 0 {
		return nil
	}
	e := l.entries[len(l.entries)-1]
	if e.turn.ID != id || e.turn.Role != RoleAssistant || e.buf == nil {
		return nil
	}
	return e
}

// AppendDelta grows the assistant turn id by delta. It only succeeds while
// that turn is still the last one in the log; otherwise the delta is
// dropped and false is returned.
func (l *Log) AppendDelta(id, delta string) bool {
	e := l.lastAssistant(id)
	if e == nil || e.turn.Errored {
		return false
	}
	e.buf.WriteString(delta)
	return true
}

// MarkErrored flags the assistant turn id as failed and replaces its
// content with notice. Like AppendDelta it only touches the last turn.
func (l *Log) MarkErrored(id, notice string) bool {
	e := l.lastAssistant(id)
	if e == nil {
		return false
	}
	e.turn.Errored = true
	e.turn.Content = notice
	e.buf.Reset()
	return true
}

// Last returns the last turn.
func (l *Log) Last() (Turn, bool) {
	if len(l.entries) == 0 {
		return Turn{}, false
	}
	return l.entries[len(l.entries)-1].snapshot(), true
}

// Len returns the number of turns.
func (l *Log) Len() int {
	return len(l.entries)
}

// IsEmpty returns true if the log has no turns.
func (l *Log) IsEmpty() bool {
	return len(l.entries) == 0
}

// Clear removes every turn.
func (l *Log) Clear() {
	l.entries = nil
}

// Turns returns a copy of the conversation.
func (l *Log) Turns() []Turn {
	out := make([]Turn, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.snapshot()
	}
	return out
}

// Messages converts the log into engine request context, optionally led by
// a system prompt. Errored turns are skipped: their content is a notice for
// the reader, not something the model said.
func (l *Log) Messages(systemPrompt string) []engine.Message {
	msgs := make([]engine.Message, 0, len(l.entries)+1)
	if systemPrompt != "" {
		msgs = append(msgs, engine.Message{Role: engine.RoleSystem, Content: systemPrompt})
	}
	for _, e := range l.entries {
		t := e.snapshot()
		if t.Errored {
			continue
		}
		msgs = append(msgs, engine.Message{Role: t.Role.String(), Content: t.Content})
	}
	return msgs
}
