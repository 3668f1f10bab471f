// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/jiyuu-tui/internal/engine"
	"github.com/jeranaias/jiyuu-tui/internal/i18n"
	"github.com/jeranaias/jiyuu-tui/internal/model"
)

// DefaultReadySignalDelay is how long ShowReady stays set after loading.
const DefaultReadySignalDelay = time.Second

// Config holds configuration for a Controller.
type Config struct {
	// ModelID names the model the Loader should construct.
	ModelID string

	// SystemPrompt leads every engine request. It is never shown as a turn.
	SystemPrompt string

	// ReadySignalDelay overrides DefaultReadySignalDelay when positive.
	ReadySignalDelay time.Duration

	// Locale selects the language of user-facing notices.
	Locale string

	// Logger receives diagnostics. Nil means no logging.
	Logger *zap.Logger
}

// generation is one in-flight completion.
type generation struct {
	turnID    string
	cancel    context.CancelFunc
	cancelled bool

	// after is closed once the context reset that preceded this
	// generation has finished. Nil when none was pending.
	after <-chan struct{}
}

type subscriber struct {
	id int
	fn Observer
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller orchestrates model loading and chat turns. All methods are
// safe for concurrent use.
type Controller struct {
	loader engine.Loader
	cfg    Config
	logger *zap.Logger

	mu         sync.Mutex
	tr         *i18n.Translator
	state      State
	progress   *engine.Progress
	loadErr    *Error
	showReady  bool
	readyTimer *time.Timer
	log        *model.Log
	sess       engine.Session
	gen        *generation
	loadCancel context.CancelFunc

	// resetDone is closed when the latest ResetContext has returned.
	resetDone chan struct{}

	// epoch invalidates work started before the last teardown.
	epoch uint64
	seq   uint64

	subs   []subscriber
	nextID int

	wg sync.WaitGroup
}

// New creates a Controller in the Unloaded state.
func New(loader engine.Loader, cfg Config) *Controller {
	if cfg.ReadySignalDelay <= 0 {
		cfg.ReadySignalDelay = DefaultReadySignalDelay
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		loader: loader,
		cfg:    cfg,
		logger: logger,
		tr:     i18n.New(cfg.Locale),
		log:    model.NewLog(),
	}
}

// Subscribe registers fn for every future snapshot and returns a function
// that removes it.
func (c *Controller) Subscribe(fn Observer) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := c.nextID
	c.subs = append(c.subs, subscriber{id: id, fn: fn})
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// SetLocale switches the language of notices produced from now on.
func (c *Controller) SetLocale(locale string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tr = i18n.New(locale)
	c.publishLocked()
}

// ModelID returns the model this controller loads.
func (c *Controller) ModelID() string {
	return c.cfg.ModelID
}

// Wait blocks until the load and generation goroutines have returned. The
// ready signal timer is not waited for; it is stopped by Close and ignores
// firings from an earlier load.
func (c *Controller) Wait() {
	c.wg.Wait()
}

func (c *Controller) snapshotLocked() Snapshot {
	s := Snapshot{
		Seq:          c.seq,
		State:        c.state,
		ShowReady:    c.showReady,
		Conversation: c.log.Turns(),
	}
	if c.progress != nil {
		p := *c.progress
		s.LoadProgress = &p
	}
	if c.loadErr != nil {
		e := *c.loadErr
		e.Message = c.tr.T(i18n.KeyLoadFailed)
		s.Failure = &e
		s.LoadError = e.Message
	}
	return s
}

func (c *Controller) publishLocked() {
	c.seq++
	if len(c.subs) == 0 {
		return
	}
	s := c.snapshotLocked()
	for _, sub := range c.subs {
		sub.fn(s)
	}
}

// =============================================================================
// LOADING
// =============================================================================

// Initialize starts constructing the engine in the background and returns
// immediately. Progress, success, and failure are reported through
// snapshots. It may only be called once per load; use Reload after a
// failure.
func (c *Controller) Initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateUnloaded {
		return ErrAlreadyStarted
	}
	c.startLocked(ctx)
	return nil
}

func (c *Controller) startLocked(ctx context.Context) {
	loadCtx, cancel := context.WithCancel(ctx)
	c.loadCancel = cancel
	c.state = StateLoading
	c.progress = nil
	c.loadErr = nil
	epoch := c.epoch

	c.logger.Info("loading model", zap.String("model", c.cfg.ModelID))
	c.publishLocked()

	c.wg.Add(1)
	go c.load(loadCtx, epoch)
}

func (c *Controller) load(ctx context.Context, epoch uint64) {
	defer c.wg.Done()
	start := time.Now()

	sess, err := c.loader.Load(ctx, c.cfg.ModelID, func(p engine.Progress) {
		c.onProgress(epoch, p)
	})

	c.mu.Lock()
	defer c.mu.Unlock()

	if epoch != c.epoch {
		// Torn down while loading.
		if sess != nil {
			sess.Interrupt()
		}
		return
	}

	c.progress = nil
	if err != nil {
		c.state = StateFailed
		c.loadErr = &Error{Kind: KindLoad, Message: c.tr.T(i18n.KeyLoadFailed), Cause: err}
		c.logger.Error("model load failed",
			zap.String("model", c.cfg.ModelID),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		c.publishLocked()
		return
	}

	c.sess = sess
	c.state = StateReady
	c.showReady = true
	c.logger.Info("model ready",
		zap.String("model", c.cfg.ModelID),
		zap.Duration("elapsed", time.Since(start)))
	c.publishLocked()

	c.readyTimer = time.AfterFunc(c.cfg.ReadySignalDelay, func() {
		c.hideReady(epoch)
	})
}

// AwaitLoad blocks until the engine leaves the Loading state. It returns
// the load failure, if any, and ErrNotReady when nothing is loading.
func (c *Controller) AwaitLoad(ctx context.Context) error {
	done := make(chan Snapshot, 1)
	unsubscribe := c.Subscribe(func(s Snapshot) {
		if s.State != StateLoading {
			select {
			case done <- s:
			default:
			}
		}
	})
	defer unsubscribe()

	s := c.Snapshot()
	if s.State == StateLoading {
		select {
		case s = <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	switch s.State {
	case StateFailed:
		return s.Failure
	case StateUnloaded:
		return ErrNotReady
	}
	return nil
}

func (c *Controller) onProgress(epoch uint64, p engine.Progress) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch || c.state != StateLoading {
		return
	}
	c.progress = &p
	c.logger.Debug("load progress",
		zap.Float64("fraction", p.Fraction),
		zap.String("text", p.Text))
	c.publishLocked()
}

func (c *Controller) hideReady(epoch uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch || !c.showReady {
		return
	}
	c.showReady = false
	c.publishLocked()
}

// Reload discards the failed engine and the conversation and loads the
// model again, exactly like a fresh start. It is only valid after a load
// failure.
func (c *Controller) Reload(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateFailed {
		return ErrNotFailed
	}
	c.logger.Info("reloading after failure")
	c.teardownLocked()
	c.startLocked(ctx)
	return nil
}

// Close stops background work. The controller is Unloaded afterwards and
// may be initialized again.
func (c *Controller) Close() {
	c.mu.Lock()
	sess := c.sess
	busy := c.gen != nil
	c.teardownLocked()
	c.publishLocked()
	c.mu.Unlock()

	if sess != nil && busy {
		sess.Interrupt()
	}
}

func (c *Controller) teardownLocked() {
	c.epoch++
	if c.loadCancel != nil {
		c.loadCancel()
		c.loadCancel = nil
	}
	if c.readyTimer != nil {
		c.readyTimer.Stop()
		c.readyTimer = nil
	}
	if c.gen != nil {
		c.gen.cancelled = true
		c.gen.cancel()
		c.gen = nil
	}
	c.sess = nil
	c.resetDone = nil
	c.state = StateUnloaded
	c.progress = nil
	c.loadErr = nil
	c.showReady = false
	c.log.Clear()
}

// =============================================================================
// CHAT TURNS
// =============================================================================

// Submit sends text as the next user turn and streams the reply.
//
// Blank input is rejected with ErrEmptyInput and a submission during
// generation with ErrBusy; neither touches the log. When the engine is not
// ready the user turn is recorded and nothing else happens.
func (c *Controller) Submit(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyInput
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateGenerating {
		return ErrBusy
	}

	c.log.AppendUser(text)
	if c.state != StateReady {
		c.logger.Debug("message recorded before engine ready", zap.Stringer("state", c.state))
		c.publishLocked()
		return nil
	}

	msgs := c.log.Messages(c.cfg.SystemPrompt)
	turn := c.log.AppendAssistant()

	ctx, cancel := context.WithCancel(context.Background())
	g := &generation{turnID: turn.ID, cancel: cancel, after: c.resetDone}
	c.gen = g
	c.state = StateGenerating
	c.publishLocked()

	c.wg.Add(1)
	go c.generate(ctx, c.sess, g, msgs)
	return nil
}

func (c *Controller) generate(ctx context.Context, sess engine.Session, g *generation, msgs []engine.Message) {
	defer c.wg.Done()
	defer g.cancel()

	if err := awaitReset(ctx, g.after); err != nil {
		c.finish(g, err)
		return
	}

	stream, err := sess.CompleteStream(ctx, msgs)
	if err != nil {
		c.finish(g, err)
		return
	}
	defer stream.Close()

	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			c.finish(g, nil)
			return
		}
		if err != nil {
			c.finish(g, err)
			return
		}
		c.appendChunk(g, chunk.Delta)
	}
}

// awaitReset holds a request back until a pending context reset is done,
// so that the reset cannot interrupt work submitted after it.
func awaitReset(ctx context.Context, after <-chan struct{}) error {
	if after == nil {
		return nil
	}
	select {
	case <-after:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Controller) appendChunk(g *generation, delta string) {
	if delta == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.log.AppendDelta(g.turnID, delta) {
		c.logger.Debug("discarded late chunk", zap.Error(&Error{
			Kind:    KindCancellationRace,
			Message: "turn is no longer the latest",
		}))
		return
	}
	c.publishLocked()
}

func (c *Controller) finish(g *generation, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := c.gen == g
	if current {
		c.gen = nil
	}

	switch {
	case g.cancelled:
		if err != nil {
			c.logger.Debug("generation ended after cancel", zap.Error(&Error{
				Kind:    KindCancellationRace,
				Message: "engine reported after cancellation",
				Cause:   err,
			}))
		}
		return

	case err != nil:
		notice := c.tr.T(i18n.KeyGenerationFailed)
		c.logger.Warn("generation failed", zap.Error(&Error{
			Kind:    KindGeneration,
			Message: notice,
			Cause:   err,
		}))
		c.log.MarkErrored(g.turnID, notice)
	}

	if current && c.state == StateGenerating {
		c.state = StateReady
	}
	c.publishLocked()
}

// Cancel stops the streaming reply. The partial reply stays in the log and
// the controller is Ready again immediately.
func (c *Controller) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateGenerating {
		return ErrNotGenerating
	}
	c.stopGenerationLocked()
	c.logger.Info("generation cancelled")
	c.publishLocked()
	return nil
}

// stopGenerationLocked cancels the current generation's context, which
// also stops a request that has not reached the engine yet, and interrupts
// the engine. Interrupt runs under the lock so it lands before any later
// Submit can start a request.
func (c *Controller) stopGenerationLocked() {
	c.gen.cancelled = true
	c.gen.cancel()
	c.gen = nil
	c.state = StateReady
	c.sess.Interrupt()
}

// ClearConversation empties the log, stopping any generation first. The
// engine is asked to drop its own context; a failure there is logged and
// otherwise ignored.
func (c *Controller) ClearConversation(ctx context.Context) {
	c.mu.Lock()
	if c.state == StateGenerating {
		c.stopGenerationLocked()
	}
	if !c.log.IsEmpty() {
		c.logger.Debug("conversation cleared", zap.Int("turns", c.log.Len()))
	}
	c.log.Clear()
	sess := c.sess
	var prev, done chan struct{}
	if sess != nil {
		prev, done = c.resetDone, make(chan struct{})
		c.resetDone = done
	}
	c.publishLocked()
	c.mu.Unlock()

	if sess == nil {
		return
	}
	err := sess.ResetContext(ctx)
	if prev != nil {
		<-prev
	}
	close(done)

	c.mu.Lock()
	if c.resetDone == done {
		c.resetDone = nil
	}
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("engine context reset failed", zap.Error(err))
	}
}

// Complete sends text as the next user turn and waits for the whole reply
// without streaming. The same rules as Submit apply, except that an engine
// that is not ready is an error. A failed completion is recorded as an
// errored turn and returned as a generation Error.
func (c *Controller) Complete(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyInput
	}

	c.mu.Lock()
	switch c.state {
	case StateGenerating:
		c.mu.Unlock()
		return "", ErrBusy
	case StateReady:
	default:
		c.mu.Unlock()
		return "", ErrNotReady
	}

	c.log.AppendUser(text)
	msgs := c.log.Messages(c.cfg.SystemPrompt)
	turn := c.log.AppendAssistant()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g := &generation{turnID: turn.ID, cancel: cancel, after: c.resetDone}
	c.gen = g
	c.state = StateGenerating
	sess := c.sess
	c.publishLocked()
	c.mu.Unlock()

	reply, err := "", awaitReset(ctx, g.after)
	if err == nil {
		reply, err = sess.Complete(ctx, msgs)
	}
	if err == nil {
		c.mu.Lock()
		c.log.AppendDelta(g.turnID, reply)
		c.mu.Unlock()
	}
	c.finish(g, err)

	c.mu.Lock()
	cancelled, notice := g.cancelled, c.tr.T(i18n.KeyGenerationFailed)
	c.mu.Unlock()

	switch {
	case err == nil:
		return reply, nil
	case cancelled:
		return "", engine.ErrInterrupted
	default:
		return "", &Error{Kind: KindGeneration, Message: notice, Cause: err}
	}
}
