// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/jiyuu-tui/internal/engine"
	"github.com/jeranaias/jiyuu-tui/internal/i18n"
	"github.com/jeranaias/jiyuu-tui/internal/session"
	"github.com/jeranaias/jiyuu-tui/internal/ui/components"
)

// View implements tea.Model.
func (m *Model) View() string {
	if !m.sized {
		return ""
	}

	body := m.viewport.View()
	if m.showInfo {
		body = lipgloss.Place(m.width, m.viewport.Height, lipgloss.Center, lipgloss.Center, m.infoPanel())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header(),
		body,
		m.inputView(),
		m.statusBar(),
	)
}

func (m *Model) header() string {
	left := m.theme.HeaderBrand.Render("jiyuu")
	if m.version != "" {
		left += " " + m.theme.HeaderModel.Render(m.version)
	}
	right := m.theme.HeaderModel.Render(m.ctrl.ModelID())
	gap := max(m.width-m.theme.Header.GetHorizontalFrameSize()-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return m.theme.Header.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m *Model) inputView() string {
	style := m.theme.InputContainer
	if m.snap.IsGenerating() {
		style = m.theme.InputDisabled
	}
	return style.Width(m.width - style.GetHorizontalBorderSize()).Render(m.input.View())
}

func (m *Model) statusBar() string {
	bar := components.StatusBar{
		Model: m.ctrl.ModelID(),
		Toast: m.toast,
	}
	switch m.snap.State {
	case session.StateReady:
		bar.Status = components.StatusReady
		bar.Hints = []components.Hint{{Key: "enter", Desc: "send"}, {Key: "ctrl+l", Desc: "clear"}, {Key: "ctrl+y", Desc: "copy"}, {Key: "f1", Desc: "info"}}
	case session.StateGenerating:
		bar.Status = components.StatusGenerating
		bar.Model = m.spinner.View() + " " + bar.Model
		bar.Hints = []components.Hint{{Key: "esc", Desc: "stop"}, {Key: "ctrl+l", Desc: "clear"}}
	case session.StateFailed:
		bar.Status = components.StatusFailed
		bar.Hints = []components.Hint{{Key: "ctrl+r", Desc: "reload"}, {Key: "ctrl+c", Desc: "quit"}}
	default:
		bar.Status = components.StatusLoading
		bar.Hints = []components.Hint{{Key: "f1", Desc: "info"}, {Key: "ctrl+c", Desc: "quit"}}
	}
	return bar.Render(m.theme, m.width)
}

func (m *Model) infoPanel() string {
	loc := m.tr.Locale()
	panel := components.InfoPanel{
		Title: "jiyuu",
		Rows: []components.InfoRow{
			{Label: "Model", Value: m.ctrl.ModelID()},
			{Label: "State", Value: m.snap.State.String()},
			{Label: "Turns", Value: strconv.Itoa(len(m.snap.Conversation))},
			{Label: "Language", Value: loc.Name},
			{Label: "About", Value: m.tr.T(i18n.KeyWelcome)},
		},
		Help: m.help.FullHelpView(m.keys.FullHelp()),
	}
	if m.version != "" {
		panel.Rows = append(panel.Rows, components.InfoRow{Label: "Version", Value: m.version})
	}
	return panel.Render(m.theme, m.width)
}

// =============================================================================
// CONVERSATION CONTENT
// =============================================================================

// contentWidth is the width turns are laid out in.
func (m *Model) contentWidth() int {
	w := m.width
	if m.wordWrap > 0 && m.wordWrap < w {
		w = m.wordWrap
	}
	return max(w, 20)
}

// refreshContent rebuilds the viewport text from the current snapshot.
func (m *Model) refreshContent() {
	if !m.sized {
		return
	}
	width := m.contentWidth()
	var blocks []string

	if m.welcome && len(m.snap.Conversation) == 0 {
		blocks = append(blocks, components.Welcome{
			Title:   "jiyuu",
			Version: m.version,
			Model:   m.ctrl.ModelID(),
			Message: m.tr.T(i18n.KeyWelcome),
			Tips:    []string{"enter send", "alt+enter newline", "f1 info"},
		}.Render(m.theme, width))
	}

	switch {
	case m.snap.IsLoading():
		p := engine.Progress{}
		if m.snap.LoadProgress != nil {
			p = *m.snap.LoadProgress
		}
		status := m.tr.T(i18n.KeyStatus, p.Text)
		blocks = append(blocks, m.loadPanel.View(m.theme, p, status, m.spinner.View(), width))
	case m.snap.IsFailed():
		blocks = append(blocks, components.RenderFailure(m.theme, m.snap.LoadError, m.tr.T(i18n.KeyReloadHint), width))
	case m.snap.ShowReady:
		blocks = append(blocks, components.RenderReady(m.theme, m.tr.T(i18n.KeyReady), width))
	}

	if conv := m.renderConversation(width); conv != "" {
		blocks = append(blocks, conv)
	}
	m.viewport.SetContent(strings.Join(blocks, "\n\n"))
}

func (m *Model) renderConversation(width int) string {
	turns := m.snap.Conversation
	if len(turns) == 0 {
		return ""
	}
	lastAssistant := -1
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].IsAssistant() {
			lastAssistant = i
			break
		}
	}

	rendered := make([]string, len(turns))
	for i, turn := range turns {
		tv := components.TurnView{
			Turn:      turn,
			Label:     m.ctrl.ModelID(),
			Streaming: m.snap.IsGenerating() && i == len(turns)-1 && turn.IsAssistant(),
		}
		if i == lastAssistant {
			tv.CopyHint = "ctrl+y " + m.tr.T(i18n.KeyCopyCode)
		}
		rendered[i] = m.cache.render(m, tv, width)
	}
	return strings.Join(rendered, "\n\n")
}

// =============================================================================
// RENDER CACHE
// =============================================================================

// renderCache keeps rendered turns so a streaming reply only re-renders
// itself.
type renderCache struct {
	entries map[string]cacheEntry
}

type cacheEntry struct {
	view  components.TurnView
	width int
	out   string
}

func newRenderCache() *renderCache {
	return &renderCache{entries: make(map[string]cacheEntry)}
}

func (c *renderCache) render(m *Model, tv components.TurnView, width int) string {
	if e, ok := c.entries[tv.Turn.ID]; ok && e.width == width && e.view == tv {
		return e.out
	}
	out := components.RenderTurn(m.theme, m.md, tv, width)
	if len(c.entries) > 512 {
		c.reset()
	}
	c.entries[tv.Turn.ID] = cacheEntry{view: tv, width: width, out: out}
	return out
}

func (c *renderCache) reset() {
	c.entries = make(map[string]cacheEntry)
}
