// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/jiyuu-tui/internal/model"
	"github.com/jeranaias/jiyuu-tui/internal/ui/styles"
)

// =============================================================================
// TURN RENDERING
// =============================================================================

// TurnView is a turn plus how it should be drawn.
type TurnView struct {
	Turn model.Turn
	// Label heads assistant turns, usually the model name.
	Label string
	// Streaming marks the assistant turn still receiving text.
	Streaming bool
	// CopyHint is placed on the code blocks of this turn.
	CopyHint string
}

// RenderTurn draws one turn at the given total width. User turns are
// right-aligned bubbles; assistant turns sit on the left with prose run
// through markdown and fenced code highlighted. Errored turns use the
// error color and are shown verbatim.
func RenderTurn(theme *styles.Theme, md *Markdown, tv TurnView, width int) string {
	bubbleWidth := styles.BubbleWidthFor(width)
	turn := tv.Turn

	if turn.IsUser() {
		inner := bubbleWidth - theme.UserBubble.GetHorizontalFrameSize()
		body := lipgloss.NewStyle().Width(min(inner, lipgloss.Width(turn.Content))).Render(turn.Content)
		bubble := theme.UserBubble.Render(body)
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble)
	}

	label := tv.Label
	if label == "" {
		label = turn.Role.DisplayName()
	}
	header := theme.RoleLabel.Render(label)

	if turn.Errored {
		inner := bubbleWidth - theme.ErrorBubble.GetHorizontalFrameSize()
		body := lipgloss.NewStyle().Width(inner).Render(turn.Content)
		return header + "\n" + theme.ErrorBubble.Render(body)
	}

	inner := bubbleWidth - theme.AssistantBubble.GetHorizontalFrameSize()
	body := renderAssistantBody(theme, md, turn.Content, inner, tv.CopyHint)
	if tv.Streaming {
		body += theme.Cursor.Render(styles.TypingCursor)
	}
	return header + "\n" + theme.AssistantBubble.Render(body)
}

func renderAssistantBody(theme *styles.Theme, md *Markdown, content string, width int, copyHint string) string {
	var parts []string
	for _, seg := range SplitFences(content) {
		if seg.Code {
			cb := NewCodeBlock(seg.Language, seg.Text)
			cb.MaxWidth = width
			cb.CopyHint = copyHint
			parts = append(parts, cb.Render(theme))
			continue
		}
		if strings.TrimSpace(seg.Text) == "" {
			continue
		}
		parts = append(parts, md.Render(seg.Text, width))
	}
	return strings.Join(parts, "\n")
}

// RenderConversation draws every turn, separated by blank lines.
func RenderConversation(theme *styles.Theme, md *Markdown, views []TurnView, width int) string {
	rendered := make([]string, 0, len(views))
	for _, tv := range views {
		rendered = append(rendered, RenderTurn(theme, md, tv, width))
	}
	return strings.Join(rendered, "\n\n")
}
