// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package enginetest provides a deterministic in-memory engine for tests.
//
// A Loader emits scripted progress events and then either fails or hands
// out a Session. Each CompleteStream call on the Session consumes the next
// Script, which decides what the stream yields and how it ends.
package enginetest

import (
	"context"
	"io"
	"sync"

	"github.com/jeranaias/jiyuu-tui/internal/engine"
)

// Compile-time interface guards.
var (
	_ engine.Loader  = (*Loader)(nil)
	_ engine.Session = (*Session)(nil)
	_ engine.Stream  = (*Stream)(nil)
)

// =============================================================================
// LOADER
// =============================================================================

// Loader is a scripted engine.Loader.
type Loader struct {
	// Progress events delivered, in order, before Load returns.
	Progress []engine.Progress

	// Err makes Load fail after the progress events.
	Err error

	// Session is returned on success. A fresh one is created when nil.
	Session *Session

	// Gate, when non-nil, holds Load until it is closed or ctx is done.
	Gate chan struct{}

	mu       sync.Mutex
	calls    int
	modelIDs []string
}

// Load implements engine.Loader.
func (l *Loader) Load(ctx context.Context, modelID string, onProgress engine.ProgressFunc) (engine.Session, error) {
	l.mu.Lock()
	l.calls++
	l.modelIDs = append(l.modelIDs, modelID)
	if l.Session == nil {
		l.Session = NewSession()
	}
	sess := l.Session
	l.mu.Unlock()

	for _, p := range l.Progress {
		if onProgress != nil {
			onProgress(p)
		}
	}

	if l.Gate != nil {
		select {
		case <-l.Gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if l.Err != nil {
		return nil, l.Err
	}
	return sess, nil
}

// Calls reports how many times Load ran.
func (l *Loader) Calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

// ModelIDs returns the model identifiers Load was called with.
func (l *Loader) ModelIDs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.modelIDs...)
}

// =============================================================================
// SCRIPTS
// =============================================================================

// Script describes one streamed completion.
type Script struct {
	// SetupErr fails CompleteStream itself.
	SetupErr error

	// Chunks are yielded in order.
	Chunks []string

	// Err ends the stream after Chunks. Nil means io.EOF.
	Err error

	// Hang keeps the stream open after Chunks until it is interrupted or
	// driven manually through Push and End.
	Hang bool

	// IgnoreInterrupt keeps a hanging stream open after Interrupt or
	// cancellation of its context, so tests can deliver chunks that race a
	// cancellation.
	IgnoreInterrupt bool
}

// =============================================================================
// SESSION
// =============================================================================

// Session is a scripted engine.Session.
type Session struct {
	// CompleteText and CompleteErr answer Complete.
	CompleteText string
	CompleteErr  error

	// ResetErr is returned by ResetContext.
	ResetErr error

	// OpenGate, when non-nil, holds CompleteStream until it is closed or
	// ctx is done, like a request still on its way to the engine.
	OpenGate chan struct{}

	// ResetGate, when non-nil, holds ResetContext until it is closed.
	ResetGate chan struct{}

	// ResetInterrupts makes ResetContext interrupt every open stream, as
	// an engine that drops in-flight work on reset would.
	ResetInterrupts bool

	mu         sync.Mutex
	aborted    int
	scripts    []Script
	streams    []*Stream
	requests   [][]engine.Message
	interrupts int
	resets     int
}

// NewSession creates a session that plays the given scripts in order.
// Once the scripts run out every stream completes immediately and empty.
func NewSession(scripts ...Script) *Session {
	return &Session{scripts: scripts}
}

// Enqueue appends scripts for later CompleteStream calls.
func (s *Session) Enqueue(scripts ...Script) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scripts = append(s.scripts, scripts...)
}

// CompleteStream implements engine.Session.
func (s *Session) CompleteStream(ctx context.Context, messages []engine.Message) (engine.Stream, error) {
	if s.OpenGate != nil {
		select {
		case <-s.OpenGate:
		case <-ctx.Done():
		}
	}
	if err := ctx.Err(); err != nil {
		s.mu.Lock()
		s.aborted++
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	s.requests = append(s.requests, append([]engine.Message(nil), messages...))
	var sc Script
	if len(s.scripts) > 0 {
		sc = s.scripts[0]
		s.scripts = s.scripts[1:]
	}
	if sc.SetupErr != nil {
		s.mu.Unlock()
		return nil, sc.SetupErr
	}

	st := newStream(ctx, sc)
	s.streams = append(s.streams, st)
	s.mu.Unlock()
	return st, nil
}

// Complete implements engine.Session.
func (s *Session) Complete(ctx context.Context, messages []engine.Message) (string, error) {
	s.mu.Lock()
	s.requests = append(s.requests, append([]engine.Message(nil), messages...))
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.CompleteText, s.CompleteErr
}

// Interrupt implements engine.Session.
func (s *Session) Interrupt() {
	s.mu.Lock()
	s.interrupts++
	streams := append([]*Stream(nil), s.streams...)
	s.mu.Unlock()

	for _, st := range streams {
		st.interrupt()
	}
}

// ResetContext implements engine.Session.
func (s *Session) ResetContext(ctx context.Context) error {
	s.mu.Lock()
	s.resets++
	s.mu.Unlock()

	if s.ResetGate != nil {
		select {
		case <-s.ResetGate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if s.ResetInterrupts {
		for _, st := range s.Streams() {
			st.interrupt()
		}
	}
	return s.ResetErr
}

// Requests returns a copy of every message list the session received.
func (s *Session) Requests() [][]engine.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]engine.Message(nil), s.requests...)
}

// Streams returns the streams opened so far.
func (s *Session) Streams() []*Stream {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Stream(nil), s.streams...)
}

// LastStream returns the most recently opened stream, or nil.
func (s *Session) LastStream() *Stream {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.streams) == 0 {
		return nil
	}
	return s.streams[len(s.streams)-1]
}

// Interrupts reports how many times Interrupt was called.
func (s *Session) Interrupts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interrupts
}

// Aborted reports how many CompleteStream calls gave up because their
// context was done before the stream opened.
func (s *Session) Aborted() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aborted
}

// Resets reports how many times ResetContext was called.
func (s *Session) Resets() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resets
}

// =============================================================================
// STREAM
// =============================================================================

type event struct {
	delta string
	err   error
}

// Stream is a scripted engine.Stream.
type Stream struct {
	ctx    context.Context
	events chan event
	stop   chan struct{}
	hold   bool // ignore interrupts

	stopOnce  sync.Once
	closeOnce sync.Once
	closed    chan struct{}
}

func newStream(ctx context.Context, sc Script) *Stream {
	st := &Stream{
		ctx:    ctx,
		events: make(chan event, len(sc.Chunks)+64),
		stop:   make(chan struct{}),
		closed: make(chan struct{}),
		hold:   sc.IgnoreInterrupt,
	}
	for _, c := range sc.Chunks {
		st.events <- event{delta: c}
	}
	if !sc.Hang {
		end := sc.Err
		if end == nil {
			end = io.EOF
		}
		st.events <- event{err: end}
	}
	return st
}

// Recv implements engine.Stream.
func (st *Stream) Recv() (engine.Chunk, error) {
	// Buffered events win over a pending interrupt so that chunks already
	// produced are never lost.
	select {
	case ev := <-st.events:
		return ev.chunk()
	default:
	}

	stop, done := st.stop, st.ctx.Done()
	if st.hold {
		stop, done = nil, nil
	}
	select {
	case ev := <-st.events:
		return ev.chunk()
	case <-stop:
		return engine.Chunk{}, engine.ErrInterrupted
	case <-done:
		return engine.Chunk{}, st.ctx.Err()
	case <-st.closed:
		return engine.Chunk{}, io.ErrClosedPipe
	}
}

func (ev event) chunk() (engine.Chunk, error) {
	if ev.err != nil {
		return engine.Chunk{}, ev.err
	}
	return engine.Chunk{Delta: ev.delta}, nil
}

// Close implements engine.Stream.
func (st *Stream) Close() error {
	st.closeOnce.Do(func() { close(st.closed) })
	return nil
}

// Push delivers another chunk on a hanging stream.
func (st *Stream) Push(delta string) {
	st.events <- event{delta: delta}
}

// End terminates a hanging stream with err, or io.EOF when err is nil.
func (st *Stream) End(err error) {
	if err == nil {
		err = io.EOF
	}
	st.events <- event{err: err}
}

// Interrupted reports whether Interrupt reached this stream.
func (st *Stream) Interrupted() bool {
	select {
	case <-st.stop:
		return true
	default:
		return false
	}
}

// IsClosed reports whether Close was called.
func (st *Stream) IsClosed() bool {
	select {
	case <-st.closed:
		return true
	default:
		return false
	}
}

func (st *Stream) interrupt() {
	st.stopOnce.Do(func() { close(st.stop) })
}
