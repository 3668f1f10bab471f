// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/peterh/liner"
	"go.uber.org/zap"

	"github.com/jeranaias/jiyuu-tui/internal/config"
	"github.com/jeranaias/jiyuu-tui/internal/i18n"
	"github.com/jeranaias/jiyuu-tui/internal/model"
	"github.com/jeranaias/jiyuu-tui/internal/session"
	"github.com/jeranaias/jiyuu-tui/internal/ui/components"
	"github.com/jeranaias/jiyuu-tui/internal/util"
)

const replPrompt = "jiyuu> "

// =============================================================================
// INPUT HISTORY
// =============================================================================

// LineReader is the part of a line editor the REPL needs.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

// historyLiner is a liner.State that persists its history on Close.
type historyLiner struct {
	*liner.State
	path string
}

// NewLineReader returns a liner-backed reader. History is loaded from
// path and written back on Close; an empty path keeps none.
func NewLineReader(path string) LineReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	if path != "" {
		if f, err := os.Open(path); err == nil {
			_, _ = line.ReadHistory(f)
			f.Close()
		}
	}
	return &historyLiner{State: line, path: path}
}

func (h *historyLiner) Close() error {
	if h.path != "" {
		var buf bytes.Buffer
		if _, err := h.State.WriteHistory(&buf); err == nil {
			_ = util.AtomicWriteFile(h.path, buf.Bytes(), 0600)
		}
	}
	return h.State.Close()
}

// DefaultHistoryPath returns ~/.jiyuu/chat_history, or "" if the home
// directory is unknown.
func DefaultHistoryPath() string {
	dir, err := config.ConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "chat_history")
}

// =============================================================================
// REPL
// =============================================================================

// REPLOptions configures a REPL.
type REPLOptions struct {
	Controller *session.Controller

	// Input defaults to a liner reader with history at DefaultHistoryPath.
	Input LineReader

	// Out defaults to os.Stdout.
	Out io.Writer

	Locale string

	// Width bounds diagnostic lines (default: TerminalWidth).
	Width int

	// Clipboard defaults to the system clipboard.
	Clipboard func(string) error

	// Interrupts stops the streaming reply. Nil subscribes to os.Interrupt.
	Interrupts <-chan os.Signal

	Logger *zap.Logger
}

// REPL is the line-oriented chat front end.
type REPL struct {
	ctrl        *session.Controller
	in          LineReader
	out         io.Writer
	tr          *i18n.Translator
	width       int
	clip        func(string) error
	interrupts  <-chan os.Signal
	stopSignals func()
	snaps       chan session.Snapshot
	unsubscribe func()
	logger      *zap.Logger
}

// NewREPL creates a REPL over opts.Controller and subscribes to it.
func NewREPL(opts REPLOptions) *REPL {
	r := &REPL{
		ctrl:        opts.Controller,
		in:          opts.Input,
		out:         opts.Out,
		width:       opts.Width,
		clip:        opts.Clipboard,
		interrupts:  opts.Interrupts,
		stopSignals: func() {},
		snaps:       make(chan session.Snapshot, 1),
		logger:      opts.Logger,
	}
	if r.in == nil {
		r.in = NewLineReader(DefaultHistoryPath())
	}
	if r.out == nil {
		r.out = os.Stdout
	}
	if r.width <= 0 {
		r.width = TerminalWidth()
	}
	if r.clip == nil {
		r.clip = clipboard.WriteAll
	}
	if r.interrupts == nil {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		r.interrupts = sig
		r.stopSignals = func() { signal.Stop(sig) }
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	r.logger = r.logger.Named("repl")

	locale := i18n.Detect(opts.Locale)
	r.tr = i18n.New(locale)
	r.ctrl.SetLocale(locale)
	r.unsubscribe = r.ctrl.Subscribe(session.Coalesce(r.snaps))
	return r
}

// Run loads the model and reads lines until /quit, Ctrl+D, or Ctrl+C at
// the prompt.
func (r *REPL) Run(ctx context.Context) error {
	defer r.close()

	r.printWelcome()
	if err := r.ctrl.Initialize(ctx); err != nil && !errors.Is(err, session.ErrAlreadyStarted) {
		return err
	}
	r.awaitLoad(ctx)

	for {
		line, err := r.in.Prompt(replPrompt)
		if err != nil {
			fmt.Fprintln(r.out)
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r.in.AppendHistory(line)

		if strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit") {
			return nil
		}
		if strings.HasPrefix(line, "/") {
			if quit := r.command(ctx, line); quit {
				return nil
			}
			continue
		}
		r.send(ctx, line)

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (r *REPL) close() {
	r.unsubscribe()
	r.stopSignals()
	if err := r.in.Close(); err != nil {
		r.logger.Debug("closing line reader", zap.Error(err))
	}
}

func (r *REPL) printWelcome() {
	fmt.Fprintf(r.out, "%s %s\n", TitleStyle.Render("jiyuu"), DimStyle.Render(r.ctrl.ModelID()))
	fmt.Fprintln(r.out, r.tr.T(i18n.KeyWelcome))
	fmt.Fprintln(r.out, DimStyle.Render("Type /help for commands. Ctrl+C stops a reply, Ctrl+D quits."))
	fmt.Fprintln(r.out)
}

// =============================================================================
// LOADING
// =============================================================================

// awaitLoad prints progress until the engine leaves the Loading state.
func (r *REPL) awaitLoad(ctx context.Context) {
	snap := r.ctrl.Snapshot()
	lastStage, lastBucket := "", -1
	for snap.IsLoading() {
		if p := snap.LoadProgress; p != nil {
			stage, _, _ := strings.Cut(p.Text, ":")
			bucket := int(p.Fraction * 10)
			if stage != lastStage || bucket != lastBucket {
				fmt.Fprintf(r.out, "%s %s\n",
					DimStyle.Render(fmt.Sprintf("%3d%%", int(p.Fraction*100))),
					r.tr.T(i18n.KeyStatus, p.Text))
				lastStage, lastBucket = stage, bucket
			}
		}
		select {
		case s := <-r.snaps:
			if s.Seq >= snap.Seq {
				snap = s
			}
		case <-ctx.Done():
			return
		}
	}

	switch {
	case snap.IsFailed():
		fmt.Fprintln(r.out, ErrorStyle.Render(snap.LoadError))
		if snap.Failure != nil && snap.Failure.Cause != nil {
			cause := util.FirstLine(snap.Failure.Cause.Error())
			fmt.Fprintln(r.out, DimStyle.Render(util.TruncateWidth(cause, r.width-2)))
		}
		fmt.Fprintln(r.out, DimStyle.Render("Type /reload to try again."))
	case snap.IsReady():
		fmt.Fprintln(r.out, SuccessStyle.Render(r.tr.T(i18n.KeyReady)))
	}
}

// =============================================================================
// MESSAGES
// =============================================================================

func (r *REPL) send(ctx context.Context, text string) {
	if r.ctrl.Snapshot().IsLoading() {
		r.awaitLoad(ctx)
	}

	r.drainInterrupts()
	if err := r.ctrl.Submit(text); err != nil {
		fmt.Fprintf(r.out, "%s %v\n", ErrorStyle.Render("[ERROR]"), err)
		return
	}
	if !r.ctrl.Snapshot().IsGenerating() {
		// Not ready: the turn is recorded and will be part of the context
		// once a model is loaded.
		fmt.Fprintln(r.out, DimStyle.Render("The model is not loaded. Type /reload to try again."))
		return
	}
	r.streamReply(ctx)
}

// replyPrinter writes the new part of one assistant turn.
type replyPrinter struct {
	out     io.Writer
	id      string
	printed int
	failed  bool
}

func (p *replyPrinter) update(turns []model.Turn) {
	if p.failed {
		return
	}
	for _, t := range turns {
		if t.ID != p.id {
			continue
		}
		if t.Errored {
			if p.printed > 0 {
				fmt.Fprintln(p.out)
			}
			fmt.Fprint(p.out, ErrorStyle.Render(t.Content))
			p.failed = true
			return
		}
		if len(t.Content) > p.printed {
			fmt.Fprint(p.out, t.Content[p.printed:])
			p.printed = len(t.Content)
		}
		return
	}
}

// streamReply prints the reply being generated until it completes or is
// stopped with Ctrl+C.
func (r *REPL) streamReply(ctx context.Context) {
	snap := r.ctrl.Snapshot()
	last, ok := snap.LastTurn()
	if !ok || !last.IsAssistant() {
		return
	}
	printer := &replyPrinter{out: r.out, id: last.ID}
	stopped := false

	for {
		printer.update(snap.Conversation)
		if !snap.IsGenerating() {
			break
		}
		select {
		case s := <-r.snaps:
			if s.Seq >= snap.Seq {
				snap = s
			}
		case <-r.interrupts:
			if err := r.ctrl.Cancel(); err == nil {
				stopped = true
			}
			snap = r.ctrl.Snapshot()
		case <-ctx.Done():
			_ = r.ctrl.Cancel()
			snap = r.ctrl.Snapshot()
		}
	}

	fmt.Fprintln(r.out)
	if stopped {
		fmt.Fprintln(r.out, WarningStyle.Render("[stopped]"))
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) drainInterrupts() {
	for {
		select {
		case <-r.interrupts:
		default:
			return
		}
	}
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// command runs a slash command and reports whether the REPL should exit.
func (r *REPL) command(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "/quit", "/q", "/exit":
		return true

	case "/help", "/h", "/?":
		r.printHelp()

	case "/clear", "/c":
		r.ctrl.ClearConversation(ctx)
		fmt.Fprintln(r.out, SuccessStyle.Render("Conversation cleared."))

	case "/reload", "/r":
		if err := r.ctrl.Reload(ctx); err != nil {
			if errors.Is(err, session.ErrNotFailed) {
				fmt.Fprintln(r.out, DimStyle.Render("Nothing to reload."))
				return false
			}
			fmt.Fprintf(r.out, "%s %v\n", ErrorStyle.Render("[ERROR]"), err)
			return false
		}
		r.awaitLoad(ctx)

	case "/lang":
		r.lang(args)

	case "/copy":
		r.copyCode()

	default:
		fmt.Fprintf(r.out, "%s unknown command %s (try /help)\n", ErrorStyle.Render("[ERROR]"), fields[0])
	}
	return false
}

func (r *REPL) printHelp() {
	cmds := []struct{ name, desc string }{
		{"/clear", "Start a new conversation"},
		{"/reload", "Load the model again after a failure"},
		{"/lang [code]", "Show or switch the language"},
		{"/copy", "Copy the last code block"},
		{"/quit", "Exit"},
	}
	for _, c := range cmds {
		fmt.Fprintf(r.out, "  %s %s\n", CommandStyle.Render(util.PadWidth(c.name, 14)), c.desc)
	}
}

func (r *REPL) lang(args []string) {
	if len(args) == 0 {
		current := r.tr.Locale()
		for _, l := range i18n.Locales {
			marker := "  "
			if l.Tag == current.Tag {
				marker = "* "
			}
			fmt.Fprintf(r.out, "%s%s %s\n", marker, util.PadWidth(l.Tag.String(), 6), l.Name)
		}
		return
	}
	r.tr = i18n.New(args[0])
	r.ctrl.SetLocale(args[0])
	fmt.Fprintln(r.out, SuccessStyle.Render(r.tr.Locale().Name))
}

func (r *REPL) copyCode() {
	turns := r.ctrl.Snapshot().Conversation
	for i := len(turns) - 1; i >= 0; i-- {
		if !turns[i].IsAssistant() {
			continue
		}
		if code, ok := components.LastCodeBlock(turns[i].Content); ok && !turns[i].Errored {
			if err := r.clip(code); err != nil {
				fmt.Fprintf(r.out, "%s %v\n", ErrorStyle.Render("[ERROR]"), err)
				return
			}
			fmt.Fprintln(r.out, SuccessStyle.Render(r.tr.T(i18n.KeyCopied)))
			return
		}
		break
	}
	fmt.Fprintln(r.out, DimStyle.Render(r.tr.T(i18n.KeyNothingToCopy)))
}
