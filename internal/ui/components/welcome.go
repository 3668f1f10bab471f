// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/jiyuu-tui/internal/ui/styles"
)

// =============================================================================
// WELCOME BANNER
// =============================================================================

// Welcome is the banner shown until the input is first used.
type Welcome struct {
	Title   string
	Version string
	Model   string
	Message string
	// Tips are short lines such as "Enter send".
	Tips []string
}

// Render centers the banner in width columns.
func (w Welcome) Render(theme *styles.Theme, width int) string {
	title := theme.WelcomeTitle.Render(w.Title)
	if w.Version != "" {
		title += " " + theme.WelcomeText.Render(w.Version)
	}

	lines := []string{title}
	if w.Model != "" {
		lines = append(lines, theme.HeaderModel.Render(w.Model))
	}
	lines = append(lines, "", theme.WelcomeText.Render(w.Message))
	if len(w.Tips) > 0 {
		lines = append(lines, "", theme.ShortcutDesc.Render(strings.Join(w.Tips, "  ·  ")))
	}

	inner := min(width-theme.WelcomeBox.GetHorizontalFrameSize(), 64)
	box := theme.WelcomeBox.Width(max(inner, 10)).Render(strings.Join(lines, "\n"))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}

// =============================================================================
// INFO PANEL
// =============================================================================

// InfoRow is one label/value pair in the info panel.
type InfoRow struct {
	Label string
	Value string
}

// InfoPanel lists facts about the session and the key bindings.
type InfoPanel struct {
	Title string
	Rows  []InfoRow
	// Help is a pre-rendered key binding table.
	Help string
}

// Render centers the panel in width columns.
func (p InfoPanel) Render(theme *styles.Theme, width int) string {
	var b strings.Builder
	b.WriteString(theme.InfoTitle.Render(p.Title))
	b.WriteString("\n")
	for _, row := range p.Rows {
		b.WriteString(theme.InfoLabel.Render(row.Label))
		b.WriteString(theme.InfoValue.Render(row.Value))
		b.WriteString("\n")
	}
	if p.Help != "" {
		b.WriteString("\n")
		b.WriteString(p.Help)
	}

	inner := min(width-theme.InfoPanel.GetHorizontalFrameSize(), 72)
	panel := theme.InfoPanel.Width(max(inner, 10)).Render(strings.TrimRight(b.String(), "\n"))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, panel)
}
