// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// =============================================================================
// MARKDOWN RENDERER
// =============================================================================

// Markdown renders prose through glamour. Building a renderer is slow, so
// one is kept per wrap width. Safe for concurrent use; renders are
// serialized.
type Markdown struct {
	style string

	mu        sync.Mutex
	renderers map[int]*glamour.TermRenderer
}

// NewMarkdown creates a renderer. An empty style picks one from the
// terminal background; "notty" gives plain output.
func NewMarkdown(style string) *Markdown {
	return &Markdown{
		style:     style,
		renderers: make(map[int]*glamour.TermRenderer),
	}
}

// Render renders text wrapped at width. Rendering problems fall back to
// the raw text.
func (m *Markdown) Render(text string, width int) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.rendererLocked(width)
	if r == nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

func (m *Markdown) rendererLocked(width int) *glamour.TermRenderer {
	if width < 20 {
		width = 20
	}
	if r, ok := m.renderers[width]; ok {
		return r
	}

	styleOpt := glamour.WithAutoStyle()
	if m.style != "" {
		styleOpt = glamour.WithStandardStyle(m.style)
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return nil
	}
	m.renderers[width] = r
	return r
}
