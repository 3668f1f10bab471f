// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/jiyuu-tui/internal/engine"
	"github.com/jeranaias/jiyuu-tui/internal/ui/styles"
)

// =============================================================================
// LOAD PANEL
// =============================================================================

// LoadPanel shows model load progress: a status line, a bar, and the time
// spent so far.
type LoadPanel struct {
	bar progress.Model
}

// NewLoadPanel creates a load panel.
func NewLoadPanel() LoadPanel {
	return LoadPanel{
		bar: progress.New(progress.WithDefaultGradient()),
	}
}

// View renders p. status is the already localized status line and
// spinner the current spinner frame.
func (lp LoadPanel) View(theme *styles.Theme, p engine.Progress, status, spinner string, width int) string {
	inner := min(width-theme.LoadPanel.GetHorizontalFrameSize(), 72)
	if inner < 10 {
		inner = 10
	}
	lp.bar.Width = inner

	lines := []string{
		theme.Spinner.Render(spinner) + " " + theme.LoadText.Render(status),
		lp.bar.ViewAs(clampFraction(p.Fraction)),
	}
	if p.Elapsed > 0 {
		lines = append(lines, theme.LoadElapsed.Render(FormatElapsed(p.Elapsed)))
	}
	panel := theme.LoadPanel.Width(inner + theme.LoadPanel.GetHorizontalPadding()).Render(strings.Join(lines, "\n"))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, panel)
}

// FormatElapsed renders a load duration as "42s" or "3m07s".
func FormatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
}

func clampFraction(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}

// =============================================================================
// READY AND FAILURE BANNERS
// =============================================================================

// RenderReady renders the short-lived ready signal, centered.
func RenderReady(theme *styles.Theme, text string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.ReadyBanner.Render(text))
}

// RenderFailure renders the load failure banner with its reload hint.
func RenderFailure(theme *styles.Theme, message, hint string, width int) string {
	inner := min(width-theme.FailureBox.GetHorizontalFrameSize(), 72)
	box := theme.FailureBox.Width(max(inner, 10)).Render(styles.StatusIndicators.Failed + " " + message)
	out := lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
	if hint != "" {
		out += "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.FailureHint.Render(hint))
	}
	return out
}
