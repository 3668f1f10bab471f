// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/jiyuu-tui/internal/ui/styles"
	"github.com/jeranaias/jiyuu-tui/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Status is the coarse state shown on the left of the bar.
type Status int

const (
	StatusLoading Status = iota
	StatusReady
	StatusGenerating
	StatusFailed
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "Loading"
	case StatusReady:
		return "Ready"
	case StatusGenerating:
		return "Generating"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

func (s Status) indicator() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Ready
	case StatusGenerating:
		return styles.StatusIndicators.Generating
	case StatusFailed:
		return styles.StatusIndicators.Failed
	default:
		return styles.StatusIndicators.Loading
	}
}

func (s Status) style(theme *styles.Theme) lipgloss.Style {
	switch s {
	case StatusReady:
		return theme.StatusReady
	case StatusGenerating:
		return theme.StatusGenerating
	case StatusFailed:
		return theme.StatusFailed
	default:
		return theme.StatusLoading
	}
}

// Hint is one key hint, e.g. {"esc", "stop"}.
type Hint struct {
	Key  string
	Desc string
}

// StatusBar is the single bottom line.
type StatusBar struct {
	Status Status
	Model  string
	Hints  []Hint
	// Toast replaces the hints while set.
	Toast string
}

// Render draws the bar exactly width columns wide. Hints are dropped from
// the end until everything fits.
func (s StatusBar) Render(theme *styles.Theme, width int) string {
	inner := width - theme.StatusBar.GetHorizontalFrameSize()
	if inner <= 0 {
		return ""
	}

	left := s.Status.style(theme).Render(s.Status.indicator() + " " + s.Status.String())
	if s.Model != "" {
		left += "  " + theme.HeaderModel.Render(s.Model)
	}

	var right string
	if s.Toast != "" {
		right = theme.Toast.Render(s.Toast)
	} else {
		hints := s.Hints
		for {
			right = renderHints(theme, hints)
			if len(hints) == 0 || lipgloss.Width(left)+1+lipgloss.Width(right) <= inner {
				break
			}
			hints = hints[:len(hints)-1]
		}
	}

	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		plain := util.TruncateWidth(s.Status.indicator()+" "+s.Status.String()+"  "+s.Model, inner)
		return theme.StatusBar.Width(width).Render(util.PadWidth(plain, inner))
	}
	return theme.StatusBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func renderHints(theme *styles.Theme, hints []Hint) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = theme.ShortcutKey.Render(h.Key) + " " + theme.ShortcutDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}
