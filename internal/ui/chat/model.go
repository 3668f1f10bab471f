// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/jiyuu-tui/internal/config"
	"github.com/jeranaias/jiyuu-tui/internal/i18n"
	"github.com/jeranaias/jiyuu-tui/internal/session"
	"github.com/jeranaias/jiyuu-tui/internal/ui/components"
	"github.com/jeranaias/jiyuu-tui/internal/ui/styles"
)

// toastDuration is how long "Copied!" and friends stay up.
const toastDuration = 2 * time.Second

// Options configures a Model.
type Options struct {
	Controller *session.Controller
	Theme      *styles.Theme

	// Locale is the configured locale; empty detects from the environment.
	Locale  string
	Version string

	// WordWrap caps the conversation width. Zero means the terminal width.
	WordWrap int

	// MarkdownStyle is a glamour style name; empty picks from the terminal.
	MarkdownStyle string

	// ConfigChanges delivers configuration reloaded from disk. Nil
	// disables live reload.
	ConfigChanges <-chan *config.Config

	// LogLevel, when set, follows logging.level on config reload.
	LogLevel *zap.AtomicLevel

	// Clipboard writes text to the system clipboard. Defaults to
	// atotto/clipboard.
	Clipboard func(string) error

	Logger *zap.Logger
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	ctrl        *session.Controller
	snapCh      chan session.Snapshot
	unsubscribe func()
	snap        session.Snapshot

	// Styling
	theme     *styles.Theme
	md        *components.Markdown
	loadPanel components.LoadPanel
	tr        *i18n.Translator
	locale    string
	cache     *renderCache

	// Widgets
	keys     KeyMap
	help     help.Model
	input    textarea.Model
	viewport viewport.Model
	spinner  spinner.Model

	// Dimensions
	width    int
	height   int
	wordWrap int
	sized    bool

	// Overlays
	welcome  bool
	showInfo bool
	toast    string
	toastSeq int

	version   string
	changes   <-chan *config.Config
	logLevel  *zap.AtomicLevel
	copyText  func(string) error
	logger    *zap.Logger
	ctx       context.Context
	cancelCtx context.CancelFunc
}

// New creates a chat model bound to opts.Controller. The controller is
// initialized by Init; call Close once the program has exited.
func New(opts Options) *Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	copyText := opts.Clipboard
	if copyText == nil {
		copyText = clipboard.WriteAll
	}

	locale := i18n.Detect(opts.Locale)
	tr := i18n.New(locale)

	ta := textarea.New()
	ta.Placeholder = tr.T(i18n.KeyPlaceholder)
	ta.ShowLineNumbers = false
	ta.Prompt = "› "
	ta.CharLimit = 0
	ta.SetHeight(3)
	// Enter sends; newlines come from Alt+Enter.
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{Frames: styles.LineSpinner.Frames, FPS: styles.LineSpinner.Duration()}
	sp.Style = theme.Spinner

	ctx, cancel := context.WithCancel(context.Background())

	m := &Model{
		ctrl:      opts.Controller,
		snapCh:    make(chan session.Snapshot, 1),
		theme:     theme,
		md:        components.NewMarkdown(opts.MarkdownStyle),
		loadPanel: components.NewLoadPanel(),
		tr:        tr,
		locale:    locale,
		cache:     newRenderCache(),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		input:     ta,
		viewport:  viewport.New(80, 20),
		spinner:   sp,
		wordWrap:  opts.WordWrap,
		welcome:   true,
		version:   opts.Version,
		changes:   opts.ConfigChanges,
		logLevel:  opts.LogLevel,
		copyText:  copyText,
		logger:    logger.Named("tui"),
		ctx:       ctx,
		cancelCtx: cancel,
	}
	m.ctrl.SetLocale(locale)
	m.snap = m.ctrl.Snapshot()
	m.unsubscribe = m.ctrl.Subscribe(session.Coalesce(m.snapCh))
	return m
}

// Init starts loading the model and the background listeners.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
		m.initialize(),
		waitForSnapshot(m.snapCh),
		waitForConfig(m.changes),
	)
}

func (m *Model) initialize() tea.Cmd {
	ctx := m.ctx
	ctrl := m.ctrl
	return func() tea.Msg {
		if err := ctrl.Initialize(ctx); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

// Close detaches from the controller and stops in-flight work.
func (m *Model) Close() {
	m.unsubscribe()
	m.cancelCtx()
	m.ctrl.Close()
}

// Snapshot returns the state the view last drew.
func (m *Model) Snapshot() session.Snapshot {
	return m.snap
}

// Locale returns the locale strings are currently shown in.
func (m *Model) Locale() i18n.Locale {
	return m.tr.Locale()
}
