// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/jiyuu-tui/internal/config"
	"github.com/jeranaias/jiyuu-tui/internal/i18n"
	"github.com/jeranaias/jiyuu-tui/internal/logging"
	"github.com/jeranaias/jiyuu-tui/internal/session"
	"github.com/jeranaias/jiyuu-tui/internal/ui/components"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case SnapshotMsg:
		m.applySnapshot(msg.Snapshot)
		return m, waitForSnapshot(m.snapCh)

	case ConfigChangedMsg:
		m.applyConfig(msg.Config)
		return m, waitForConfig(m.changes)

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil

	case errMsg:
		m.logger.Warn("command failed", zap.Error(msg.err))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.snap.IsLoading() {
			m.refreshContent()
		}
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		return m, m.submit()

	case key.Matches(msg, m.keys.Newline):
		m.input.InsertString("\n")
		m.welcome = false
		return m, nil

	case key.Matches(msg, m.keys.Stop):
		if m.snap.IsGenerating() {
			if err := m.ctrl.Cancel(); err != nil && !errors.Is(err, session.ErrNotGenerating) {
				m.logger.Warn("cancel failed", zap.Error(err))
			}
			return m, nil
		}
		m.showInfo = false
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.showInfo = false
		return m, m.clear()

	case key.Matches(msg, m.keys.Reload):
		if m.snap.IsFailed() {
			if err := m.ctrl.Reload(m.ctx); err != nil {
				m.logger.Warn("reload failed", zap.Error(err))
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyLastCode()

	case key.Matches(msg, m.keys.Info) && (msg.String() == "f1" || m.input.Value() == ""):
		m.showInfo = !m.showInfo
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != "" {
		m.welcome = false
	}
	return m, cmd
}

// submit sends the input. Blank input does nothing. A submission while a
// reply streams is refused and the text stays in the input.
func (m *Model) submit() tea.Cmd {
	text := m.input.Value()
	if strings.TrimSpace(text) == "" {
		return nil
	}
	switch err := m.ctrl.Submit(text); {
	case err == nil:
		m.input.Reset()
		m.welcome = false
		m.showInfo = false
	case errors.Is(err, session.ErrBusy):
		m.logger.Debug("submit while generating ignored")
	default:
		m.logger.Warn("submit failed", zap.Error(err))
	}
	return nil
}

// clear runs off the UI goroutine because the engine reset may block.
func (m *Model) clear() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		ctrl.ClearConversation(ctx)
		return nil
	}
}

func (m *Model) copyLastCode() tea.Cmd {
	code, ok := m.lastCodeBlock()
	if !ok {
		return m.showToast(m.tr.T(i18n.KeyNothingToCopy))
	}
	if err := m.copyText(code); err != nil {
		m.logger.Warn("clipboard write failed", zap.Error(err))
		return m.showToast(err.Error())
	}
	return m.showToast(m.tr.T(i18n.KeyCopied))
}

// lastCodeBlock finds the last code block of the newest assistant turn.
func (m *Model) lastCodeBlock() (string, bool) {
	turns := m.snap.Conversation
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].IsAssistant() {
			if turns[i].Errored {
				return "", false
			}
			return components.LastCodeBlock(turns[i].Content)
		}
	}
	return "", false
}

func (m *Model) showToast(text string) tea.Cmd {
	m.toastSeq++
	seq := m.toastSeq
	m.toast = text
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

// =============================================================================
// STATE UPDATES
// =============================================================================

func (m *Model) applySnapshot(s session.Snapshot) {
	// Mailbox delivery can only skip forward, never reorder.
	if s.Seq < m.snap.Seq {
		return
	}
	m.snap = s
	m.refreshContent()
	m.viewport.GotoBottom()
}

func (m *Model) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	if locale := i18n.Detect(cfg.UI.Locale); locale != m.locale {
		m.logger.Info("locale changed", zap.String("locale", locale))
		m.locale = locale
		m.tr = i18n.New(locale)
		m.input.Placeholder = m.tr.T(i18n.KeyPlaceholder)
		m.ctrl.SetLocale(locale)
	}
	if m.logLevel != nil {
		if level, err := logging.ParseLevel(cfg.Logging.Level); err == nil {
			m.logLevel.SetLevel(level)
		}
	}
	if cfg.UI.WordWrap != m.wordWrap {
		m.wordWrap = cfg.UI.WordWrap
		m.cache.reset()
		m.refreshContent()
	}
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.sized = true
	m.theme.SetSize(width, height)
	m.help.Width = width
	m.input.SetWidth(max(width-m.theme.InputContainer.GetHorizontalFrameSize(), 10))
	m.viewport.Width = width
	m.viewport.Height = max(height-m.chromeHeight(), 1)
	m.cache.reset()
	m.refreshContent()
	m.viewport.GotoBottom()
}

// chromeHeight is everything that is not the viewport: header, input box,
// status bar.
func (m *Model) chromeHeight() int {
	return 1 + m.input.Height() + m.theme.InputContainer.GetVerticalFrameSize() + 1
}
