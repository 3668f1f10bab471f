// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/jeranaias/jiyuu-tui/internal/engine"
)

// Compile-time interface guards.
var (
	_ engine.Loader  = (*Loader)(nil)
	_ engine.Session = (*Session)(nil)
	_ engine.Stream  = (*Stream)(nil)
)

// Progress stages. Pulling covers most of the bar because it dominates
// first-run load time.
const (
	pullShare = 0.9
	warmStart = 0.95
)

// =============================================================================
// LOADER
// =============================================================================

// LoaderConfig controls how a model is prepared.
type LoaderConfig struct {
	// AutoStart runs `ollama serve` when the server is not reachable.
	AutoStart bool

	// AutoPull downloads the model when it is not installed.
	AutoPull bool

	// ProgressInterval is the minimum gap between pull progress reports
	// (default: 100ms). Stage changes are always reported.
	ProgressInterval time.Duration
}

// Loader prepares models on an Ollama server.
type Loader struct {
	client *Client
	cfg    LoaderConfig
	logger *zap.Logger
}

// NewLoader creates a Loader that uses client.
func NewLoader(client *Client, cfg LoaderConfig, logger *zap.Logger) *Loader {
	if cfg.ProgressInterval <= 0 {
		cfg.ProgressInterval = 100 * time.Millisecond
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{client: client, cfg: cfg, logger: logger}
}

// Load makes sure the server is up, the model is installed, and the model
// is resident in memory, then returns a session for it.
func (l *Loader) Load(ctx context.Context, modelID string, onProgress engine.ProgressFunc) (engine.Session, error) {
	report := newProgressReporter(onProgress, l.cfg.ProgressInterval)

	report.stage(0, "Connecting to Ollama...")
	if err := l.client.CheckRunning(ctx); err != nil {
		if !l.cfg.AutoStart || !IsNotRunning(err) {
			return nil, err
		}
		report.stage(0, "Starting Ollama service...")
		if err := l.client.EnsureRunning(ctx); err != nil {
			return nil, err
		}
	}

	installed, err := l.client.HasModel(ctx, modelID)
	if err != nil {
		return nil, err
	}
	if !installed {
		if !l.cfg.AutoPull {
			return nil, &ClientError{
				Type:    ErrTypeModelNotFound,
				Message: fmt.Sprintf("model %s is not installed (run: ollama pull %s)", modelID, modelID),
			}
		}
		l.logger.Info("pulling model", zap.String("model", modelID))
		report.stage(0, "Fetching "+modelID+"...")
		err := l.client.Pull(ctx, modelID, func(p PullProgress) {
			report.update(p.Fraction()*pullShare, pullText(modelID, p))
		})
		if err != nil {
			return nil, err
		}
	}

	report.stage(warmStart, "Loading "+modelID+" into memory...")
	if err := l.client.Warm(ctx, modelID); err != nil {
		return nil, err
	}
	report.stage(1, "Ready")

	return newSession(l.client, modelID, l.logger), nil
}

func pullText(modelID string, p PullProgress) string {
	if p.Total > 0 {
		return fmt.Sprintf("Fetching %s: %s (%d%%)", modelID, p.Status, int(p.Fraction()*100))
	}
	return fmt.Sprintf("Fetching %s: %s", modelID, p.Status)
}

// progressReporter throttles progress callbacks. Pull streams report every
// few kilobytes, far more often than anyone can read.
type progressReporter struct {
	fn      engine.ProgressFunc
	start   time.Time
	limiter *rate.Limiter
}

func newProgressReporter(fn engine.ProgressFunc, interval time.Duration) *progressReporter {
	return &progressReporter{
		fn:      fn,
		start:   time.Now(),
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// stage always reports.
func (r *progressReporter) stage(fraction float64, text string) {
	if r.fn == nil {
		return
	}
	r.fn(engine.Progress{Fraction: fraction, Text: text, Elapsed: time.Since(r.start)})
}

// update reports only if the rate allows it.
func (r *progressReporter) update(fraction float64, text string) {
	if r.fn == nil || !r.limiter.Allow() {
		return
	}
	r.fn(engine.Progress{Fraction: fraction, Text: text, Elapsed: time.Since(r.start)})
}

// =============================================================================
// SESSION
// =============================================================================

// Session is a loaded model on an Ollama server.
type Session struct {
	client   *Client
	model    string
	logger   *zap.Logger
	inflight *requestSet
}

func newSession(client *Client, model string, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		client:   client,
		model:    model,
		logger:   logger,
		inflight: newRequestSet(),
	}
}

// CompleteStream implements engine.Session.
func (s *Session) CompleteStream(ctx context.Context, messages []engine.Message) (engine.Stream, error) {
	reqCtx, id := s.inflight.begin(ctx)
	reader, err := s.client.ChatStream(reqCtx, s.model, FromEngine(messages))
	if err != nil {
		if s.inflight.end(id) {
			return nil, engine.ErrInterrupted
		}
		return nil, err
	}
	return &Stream{session: s, id: id, reader: reader}, nil
}

// Complete implements engine.Session.
func (s *Session) Complete(ctx context.Context, messages []engine.Message) (string, error) {
	reqCtx, id := s.inflight.begin(ctx)
	resp, err := s.client.Chat(reqCtx, s.model, FromEngine(messages))
	interrupted := s.inflight.end(id)
	if err != nil {
		if interrupted {
			return "", engine.ErrInterrupted
		}
		return "", err
	}
	s.logger.Debug("completion finished",
		zap.Int("tokens", resp.EvalCount),
		zap.Float64("tokens_per_second", resp.TokensPerSecond()))
	return resp.Message.Content, nil
}

// Interrupt cancels every in-flight request of the session.
func (s *Session) Interrupt() {
	s.inflight.interruptAll()
}

// ResetContext implements engine.Session. /api/chat keeps no history on
// the server, so there is nothing to drop. In-flight requests are left
// alone; they may belong to a message sent after the reset was asked for.
func (s *Session) ResetContext(ctx context.Context) error {
	return ctx.Err()
}

// =============================================================================
// STREAM
// =============================================================================

// Stream is one streamed chat completion.
type Stream struct {
	session *Session
	id      uint64
	reader  *StreamReader
	once    sync.Once
}

// Recv implements engine.Stream.
func (st *Stream) Recv() (engine.Chunk, error) {
	chunk, err := st.reader.Next()
	if errors.Is(err, io.EOF) {
		st.session.logger.Debug("stream finished",
			zap.String("model", st.reader.Model()),
			zap.String("stats", st.reader.Stats().Format()))
		return engine.Chunk{}, io.EOF
	}
	if err != nil {
		if st.session.inflight.interrupted(st.id) {
			return engine.Chunk{}, engine.ErrInterrupted
		}
		return engine.Chunk{}, err
	}
	return engine.Chunk{Delta: chunk.Content}, nil
}

// Close implements engine.Stream.
func (st *Stream) Close() error {
	var err error
	st.once.Do(func() {
		err = st.reader.Close()
		st.session.inflight.end(st.id)
	})
	return err
}

// =============================================================================
// IN-FLIGHT REQUESTS
// =============================================================================

// requestSet tracks cancel functions of in-flight requests so Interrupt
// can stop them from any goroutine.
type requestSet struct {
	mu      sync.Mutex
	next    uint64
	cancels map[uint64]context.CancelFunc
	stopped map[uint64]bool
}

func newRequestSet() *requestSet {
	return &requestSet{
		cancels: make(map[uint64]context.CancelFunc),
		stopped: make(map[uint64]bool),
	}
}

func (r *requestSet) begin(parent context.Context) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(parent)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.cancels[r.next] = cancel
	return ctx, r.next
}

// end releases a request and reports whether it was interrupted.
func (r *requestSet) end(id uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cancel, ok := r.cancels[id]; ok {
		cancel()
		delete(r.cancels, id)
	}
	was := r.stopped[id]
	delete(r.stopped, id)
	return was
}

func (r *requestSet) interrupted(id uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopped[id]
}

func (r *requestSet) interruptAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, cancel := range r.cancels {
		r.stopped[id] = true
		cancel()
	}
}
