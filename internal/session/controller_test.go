// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jeranaias/jiyuu-tui/internal/engine"
	"github.com/jeranaias/jiyuu-tui/internal/engine/enginetest"
	"github.com/jeranaias/jiyuu-tui/internal/model"
)

const (
	generationNotice = "⚠️ There was an error generating the response. Please try again."
	loadNotice       = "An error occurred while loading the model. Please reload."
)

// =============================================================================
// HELPERS
// =============================================================================

type recorder struct {
	mu    sync.Mutex
	snaps []Snapshot
}

func (r *recorder) observe(s Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, s)
}

func (r *recorder) all() []Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Snapshot(nil), r.snaps...)
}

func newController(t *testing.T, loader engine.Loader, mutate ...func(*Config)) (*Controller, *recorder) {
	t.Helper()
	cfg := Config{
		ModelID:          "test-model",
		ReadySignalDelay: time.Hour,
	}
	for _, m := range mutate {
		m(&cfg)
	}
	c := New(loader, cfg)
	rec := &recorder{}
	c.Subscribe(rec.observe)
	t.Cleanup(func() {
		c.Close()
		c.Wait()
	})
	return c, rec
}

// readyController returns a controller whose engine has finished loading.
func readyController(t *testing.T, sess *enginetest.Session, mutate ...func(*Config)) (*Controller, *recorder) {
	t.Helper()
	c, rec := newController(t, &enginetest.Loader{Session: sess}, mutate...)
	require.NoError(t, c.Initialize(context.Background()))
	c.Wait()
	require.Equal(t, StateReady, c.Snapshot().State)
	return c, rec
}

func waitFor(t *testing.T, c *Controller, cond func(Snapshot) bool) {
	t.Helper()
	require.Eventually(t, func() bool { return cond(c.Snapshot()) },
		time.Second, 5*time.Millisecond)
}

func lastContent(s Snapshot) string {
	turn, _ := s.LastTurn()
	return turn.Content
}

// =============================================================================
// LOADING
// =============================================================================

func TestController_LoadSuccess(t *testing.T) {
	loader := &enginetest.Loader{
		Progress: []engine.Progress{
			{Fraction: 0.5, Text: "fetching"},
			{Fraction: 0.2, Text: "retrying"},
			{Fraction: 1, Text: "done"},
		},
	}
	c, rec := newController(t, loader, func(cfg *Config) {
		cfg.ReadySignalDelay = 20 * time.Millisecond
	})

	require.NoError(t, c.Initialize(context.Background()))
	c.Wait()

	snaps := rec.all()
	require.GreaterOrEqual(t, len(snaps), 5)

	assert.Equal(t, StateLoading, snaps[0].State)
	assert.Nil(t, snaps[0].LoadProgress)

	// Every report is published as is, without assuming monotonicity.
	var fractions []float64
	for _, s := range snaps[1:4] {
		require.Equal(t, StateLoading, s.State)
		require.NotNil(t, s.LoadProgress)
		fractions = append(fractions, s.LoadProgress.Fraction)
	}
	assert.Equal(t, []float64{0.5, 0.2, 1}, fractions)

	ready := snaps[4]
	assert.True(t, ready.IsReady())
	assert.Nil(t, ready.LoadProgress)
	assert.True(t, ready.ShowReady)
	assert.Empty(t, ready.LoadError)

	waitFor(t, c, func(s Snapshot) bool { return !s.ShowReady })
	assert.True(t, c.Snapshot().IsReady())
	assert.Equal(t, []string{"test-model"}, loader.ModelIDs())
}

func TestController_WaitDoesNotHoldReadySignal(t *testing.T) {
	c, _ := newController(t, &enginetest.Loader{})
	require.NoError(t, c.Initialize(context.Background()))

	done := make(chan struct{})
	go func() {
		c.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait blocked on the ready signal timer")
	}
	assert.True(t, c.Snapshot().ShowReady, "the signal is still up after Wait")
}

func TestController_LoadFailure(t *testing.T) {
	loader := &enginetest.Loader{
		Progress: []engine.Progress{{Fraction: 0.3, Text: "fetching"}},
		Err:      errors.New("out of memory"),
	}
	c, _ := newController(t, loader)

	require.NoError(t, c.Initialize(context.Background()))
	c.Wait()

	s := c.Snapshot()
	assert.True(t, s.IsFailed())
	assert.Nil(t, s.LoadProgress)
	assert.Equal(t, loadNotice, s.LoadError)
	require.NotNil(t, s.Failure)
	assert.True(t, IsLoadError(s.Failure))
	assert.EqualError(t, errors.Unwrap(s.Failure), "out of memory")

	// A message typed after the failure is recorded but never sent.
	require.NoError(t, c.Submit("hello?"))
	s = c.Snapshot()
	require.Len(t, s.Conversation, 1)
	assert.Equal(t, model.RoleUser, s.Conversation[0].Role)
	assert.Equal(t, StateFailed, s.State)
	assert.Empty(t, loader.Session.Requests())
}

func TestController_SubmitWhileLoading(t *testing.T) {
	loader := &enginetest.Loader{Gate: make(chan struct{})}
	c, _ := newController(t, loader)
	require.NoError(t, c.Initialize(context.Background()))

	require.NoError(t, c.Submit("early"))
	s := c.Snapshot()
	assert.True(t, s.IsLoading())
	require.Len(t, s.Conversation, 1)
	assert.Equal(t, "early", s.Conversation[0].Content)

	close(loader.Gate)
	c.Wait()
	assert.True(t, c.Snapshot().IsReady())
	assert.Empty(t, loader.Session.Requests())
}

func TestController_StalledLoadStaysLoading(t *testing.T) {
	loader := &enginetest.Loader{Gate: make(chan struct{})}
	c, _ := newController(t, loader)
	require.NoError(t, c.Initialize(context.Background()))

	time.Sleep(20 * time.Millisecond)
	assert.True(t, c.Snapshot().IsLoading())

	c.Close()
	c.Wait()
	assert.Equal(t, StateUnloaded, c.Snapshot().State)
}

func TestController_InitializeTwice(t *testing.T) {
	c, _ := readyController(t, enginetest.NewSession())
	assert.ErrorIs(t, c.Initialize(context.Background()), ErrAlreadyStarted)
}

func TestController_Reload(t *testing.T) {
	loader := &enginetest.Loader{Err: errors.New("boom")}
	c, _ := newController(t, loader)

	require.NoError(t, c.Initialize(context.Background()))
	c.Wait()
	require.NoError(t, c.Submit("lost"))
	require.True(t, c.Snapshot().IsFailed())

	loader.Err = nil
	require.NoError(t, c.Reload(context.Background()))
	c.Wait()

	s := c.Snapshot()
	assert.True(t, s.IsReady())
	assert.Empty(t, s.Conversation, "reload starts over")
	assert.Empty(t, s.LoadError)
	assert.Nil(t, s.Failure)
	assert.Equal(t, 2, loader.Calls())

	assert.ErrorIs(t, c.Reload(context.Background()), ErrNotFailed)
}

func TestController_AwaitLoad(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		loader := &enginetest.Loader{Gate: make(chan struct{})}
		c, _ := newController(t, loader)
		require.NoError(t, c.Initialize(context.Background()))
		go close(loader.Gate)
		assert.NoError(t, c.AwaitLoad(context.Background()))
	})

	t.Run("failure", func(t *testing.T) {
		c, _ := newController(t, &enginetest.Loader{Err: errors.New("no gpu")})
		require.NoError(t, c.Initialize(context.Background()))
		err := c.AwaitLoad(context.Background())
		assert.True(t, IsLoadError(err))
	})

	t.Run("not started", func(t *testing.T) {
		c, _ := newController(t, &enginetest.Loader{})
		assert.ErrorIs(t, c.AwaitLoad(context.Background()), ErrNotReady)
	})
}

// =============================================================================
// STREAMING
// =============================================================================

func TestController_StreamingAccumulation(t *testing.T) {
	sess := enginetest.NewSession(enginetest.Script{Chunks: []string{"He", "llo"}})
	c, rec := readyController(t, sess)

	require.NoError(t, c.Submit("Hi"))
	c.Wait()

	s := c.Snapshot()
	assert.True(t, s.IsReady())
	require.Len(t, s.Conversation, 2)
	assert.Equal(t, "Hi", s.Conversation[0].Content)
	assert.Equal(t, "Hello", s.Conversation[1].Content)
	assert.False(t, s.Conversation[1].Errored)

	type step struct {
		state   State
		content string
	}
	var steps []step
	for _, snap := range rec.all() {
		if len(snap.Conversation) == 2 {
			steps = append(steps, step{snap.State, lastContent(snap)})
		}
	}
	assert.Equal(t, []step{
		{StateGenerating, ""},
		{StateGenerating, "He"},
		{StateGenerating, "Hello"},
		{StateReady, "Hello"},
	}, steps)

	reqs := sess.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, []engine.Message{{Role: engine.RoleUser, Content: "Hi"}}, reqs[0])
}

func TestController_SnapshotsAreOrdered(t *testing.T) {
	sess := enginetest.NewSession(enginetest.Script{Chunks: []string{"a", "b", "c"}})
	c, rec := readyController(t, sess)

	require.NoError(t, c.Submit("go"))
	c.Wait()

	snaps := rec.all()
	for i := 1; i < len(snaps); i++ {
		assert.Equal(t, snaps[i-1].Seq+1, snaps[i].Seq)
	}
}

func TestController_SystemPromptLeadsRequests(t *testing.T) {
	sess := enginetest.NewSession()
	c, _ := readyController(t, sess, func(cfg *Config) {
		cfg.SystemPrompt = "Be brief."
	})

	require.NoError(t, c.Submit("Hi"))
	c.Wait()

	reqs := sess.Requests()
	require.Len(t, reqs, 1)
	require.Len(t, reqs[0], 2)
	assert.Equal(t, engine.Message{Role: engine.RoleSystem, Content: "Be brief."}, reqs[0][0])
	assert.Len(t, c.Snapshot().Conversation, 2, "system prompt is not a turn")
}

func TestController_GenerationFailure(t *testing.T) {
	tests := []struct {
		name   string
		script enginetest.Script
	}{
		{"mid-stream", enginetest.Script{Chunks: []string{"par"}, Err: errors.New("device lost")}},
		{"setup", enginetest.Script{SetupErr: errors.New("refused")}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sess := enginetest.NewSession(tc.script, enginetest.Script{Chunks: []string{"ok"}})
			c, _ := readyController(t, sess)

			require.NoError(t, c.Submit("Hi"))
			c.Wait()

			s := c.Snapshot()
			assert.True(t, s.IsReady())
			require.Len(t, s.Conversation, 2)
			failed := s.Conversation[1]
			assert.True(t, failed.Errored)
			assert.Equal(t, generationNotice, failed.Content)

			// The controller keeps working and the failed turn stays out of
			// the engine context.
			require.NoError(t, c.Submit("again"))
			c.Wait()
			s = c.Snapshot()
			require.Len(t, s.Conversation, 4)
			assert.Equal(t, "ok", s.Conversation[3].Content)

			reqs := sess.Requests()
			require.Len(t, reqs, 2)
			assert.Equal(t, []engine.Message{
				{Role: engine.RoleUser, Content: "Hi"},
				{Role: engine.RoleUser, Content: "again"},
			}, reqs[1])
		})
	}
}

func TestController_LocalizedGenerationNotice(t *testing.T) {
	sess := enginetest.NewSession(enginetest.Script{Err: errors.New("boom")})
	c, _ := readyController(t, sess, func(cfg *Config) { cfg.Locale = "es" })

	require.NoError(t, c.Submit("Hola"))
	c.Wait()

	assert.Equal(t,
		"⚠️ Hubo un error al generar la respuesta. Por favor, inténtalo de nuevo.",
		lastContent(c.Snapshot()))
}

// =============================================================================
// CANCELLATION
// =============================================================================

func TestController_Cancel(t *testing.T) {
	sess := enginetest.NewSession(enginetest.Script{Chunks: []string{"par"}, Hang: true})
	c, _ := readyController(t, sess)

	require.NoError(t, c.Submit("Tell me a story"))
	waitFor(t, c, func(s Snapshot) bool { return lastContent(s) == "par" })

	require.NoError(t, c.Cancel())
	assert.True(t, c.Snapshot().IsReady(), "ready immediately, without waiting on the engine")

	c.Wait()
	s := c.Snapshot()
	assert.True(t, s.IsReady())
	turn, _ := s.LastTurn()
	assert.Equal(t, "par", turn.Content)
	assert.False(t, turn.Errored)
	assert.Equal(t, 1, sess.Interrupts())
	assert.True(t, sess.LastStream().IsClosed())

	assert.ErrorIs(t, c.Cancel(), ErrNotGenerating)
}

func TestController_CancelWhenIdle(t *testing.T) {
	c, _ := newController(t, &enginetest.Loader{})
	assert.ErrorIs(t, c.Cancel(), ErrNotGenerating)
}

func TestController_LateChunkAfterCancel(t *testing.T) {
	sess := enginetest.NewSession(enginetest.Script{Hang: true, IgnoreInterrupt: true})
	c, _ := readyController(t, sess)

	require.NoError(t, c.Submit("Hi"))
	waitFor(t, c, func(Snapshot) bool { return sess.LastStream() != nil })
	require.NoError(t, c.Cancel())

	st := sess.LastStream()
	st.Push("late")
	st.End(nil)
	c.Wait()

	s := c.Snapshot()
	assert.True(t, s.IsReady())
	assert.Equal(t, "late", lastContent(s), "the turn is still last, so the chunk lands")
}

func TestController_LateChunkAfterNewerExchange(t *testing.T) {
	sess := enginetest.NewSession(
		enginetest.Script{Hang: true, IgnoreInterrupt: true},
		enginetest.Script{Chunks: []string{"fresh"}},
	)
	c, _ := readyController(t, sess)

	require.NoError(t, c.Submit("first"))
	waitFor(t, c, func(Snapshot) bool { return sess.LastStream() != nil })
	old := sess.LastStream()
	require.NoError(t, c.Cancel())

	require.NoError(t, c.Submit("second"))
	waitFor(t, c, func(s Snapshot) bool { return s.IsReady() && lastContent(s) == "fresh" })

	old.Push("stale")
	old.End(nil)
	c.Wait()

	s := c.Snapshot()
	require.Len(t, s.Conversation, 4)
	assert.Equal(t, "", s.Conversation[1].Content)
	assert.Equal(t, "fresh", s.Conversation[3].Content)
}

func TestController_CancelBeforeStreamOpens(t *testing.T) {
	sess := enginetest.NewSession(enginetest.Script{Chunks: []string{"still ", "generating"}})
	sess.OpenGate = make(chan struct{})
	c, _ := readyController(t, sess)

	require.NoError(t, c.Submit("Hi"))
	require.NoError(t, c.Cancel())
	close(sess.OpenGate)
	c.Wait()

	s := c.Snapshot()
	assert.True(t, s.IsReady())
	turn, _ := s.LastTurn()
	assert.Equal(t, "", turn.Content, "a cancelled request never streams")
	assert.False(t, turn.Errored)
	assert.Empty(t, sess.Streams())
	assert.Equal(t, 1, sess.Aborted())
}

func TestController_SubmitAfterCancelBeforeStreamOpens(t *testing.T) {
	sess := enginetest.NewSession(enginetest.Script{Chunks: []string{"fresh"}})
	sess.OpenGate = make(chan struct{})
	c, _ := readyController(t, sess)

	require.NoError(t, c.Submit("first"))
	require.NoError(t, c.Cancel())
	require.NoError(t, c.Submit("second"))
	close(sess.OpenGate)
	c.Wait()

	s := c.Snapshot()
	require.Len(t, s.Conversation, 4)
	assert.Equal(t, "", s.Conversation[1].Content)
	assert.Equal(t, "fresh", s.Conversation[3].Content)
	assert.Len(t, sess.Streams(), 1, "only the second request reaches the engine")
}

// =============================================================================
// CLEARING
// =============================================================================

func TestController_ClearEmptyLog(t *testing.T) {
	sess := enginetest.NewSession()
	c, _ := readyController(t, sess)

	c.ClearConversation(context.Background())

	s := c.Snapshot()
	assert.Empty(t, s.Conversation)
	assert.True(t, s.IsReady())
	assert.Equal(t, 1, sess.Resets())
}

func TestController_ClearBeforeLoad(t *testing.T) {
	c, _ := newController(t, &enginetest.Loader{})
	c.ClearConversation(context.Background())
	assert.Equal(t, StateUnloaded, c.Snapshot().State)
}

func TestController_ClearDuringGeneration(t *testing.T) {
	sess := enginetest.NewSession(enginetest.Script{Hang: true, IgnoreInterrupt: true})
	c, _ := readyController(t, sess)

	require.NoError(t, c.Submit("Hi"))
	waitFor(t, c, func(Snapshot) bool { return sess.LastStream() != nil })

	c.ClearConversation(context.Background())
	s := c.Snapshot()
	assert.True(t, s.IsReady())
	assert.Empty(t, s.Conversation)
	assert.Equal(t, 1, sess.Interrupts())

	st := sess.LastStream()
	st.Push("late")
	st.End(errors.New("aborted"))
	c.Wait()

	s = c.Snapshot()
	assert.Empty(t, s.Conversation, "late chunk after clear is discarded")
	assert.True(t, s.IsReady())
}

func TestController_ClearBeforeStreamOpens(t *testing.T) {
	sess := enginetest.NewSession(enginetest.Script{Chunks: []string{"late"}})
	sess.OpenGate = make(chan struct{})
	c, _ := readyController(t, sess)

	require.NoError(t, c.Submit("Hi"))
	c.ClearConversation(context.Background())
	close(sess.OpenGate)
	c.Wait()

	s := c.Snapshot()
	assert.True(t, s.IsReady())
	assert.Empty(t, s.Conversation)
	assert.Empty(t, sess.Streams())
}

func TestController_SubmitDuringSlowReset(t *testing.T) {
	sess := enginetest.NewSession(enginetest.Script{Chunks: []string{"after ", "clear"}})
	sess.ResetGate = make(chan struct{})
	sess.ResetInterrupts = true
	c, _ := readyController(t, sess)

	cleared := make(chan struct{})
	go func() {
		defer close(cleared)
		c.ClearConversation(context.Background())
	}()
	require.Eventually(t, func() bool { return sess.Resets() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, c.Submit("after clear"))
	assert.True(t, c.Snapshot().IsGenerating())
	assert.Empty(t, sess.Streams(), "request waits for the reset")

	close(sess.ResetGate)
	<-cleared
	c.Wait()

	s := c.Snapshot()
	require.Len(t, s.Conversation, 2)
	turn, _ := s.LastTurn()
	assert.Equal(t, "after clear", turn.Content)
	assert.False(t, turn.Errored)
	assert.True(t, s.IsReady())
}

func TestController_CancelWhileWaitingForReset(t *testing.T) {
	sess := enginetest.NewSession()
	sess.ResetGate = make(chan struct{})
	c, _ := readyController(t, sess)

	cleared := make(chan struct{})
	go func() {
		defer close(cleared)
		c.ClearConversation(context.Background())
	}()
	require.Eventually(t, func() bool { return sess.Resets() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, c.Submit("Hi"))
	require.NoError(t, c.Cancel())
	c.Wait()
	assert.True(t, c.Snapshot().IsReady(), "cancel does not wait for the reset")
	assert.Empty(t, sess.Requests())

	close(sess.ResetGate)
	<-cleared
}

func TestController_ClearResetFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sess := enginetest.NewSession()
	sess.ResetErr = errors.New("engine busy")
	c, _ := readyController(t, sess, func(cfg *Config) {
		cfg.Logger = zap.New(core)
	})
	require.NoError(t, c.Submit("Hi"))
	c.Wait()

	c.ClearConversation(context.Background())

	assert.Empty(t, c.Snapshot().Conversation)
	entries := logs.FilterMessage("engine context reset failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
}

// =============================================================================
// INPUT RULES
// =============================================================================

func TestController_EmptyInputRejected(t *testing.T) {
	sess := enginetest.NewSession()
	c, _ := readyController(t, sess)

	for _, in := range []string{"", "   ", "\n\t "} {
		assert.ErrorIs(t, c.Submit(in), ErrEmptyInput)
	}
	assert.Empty(t, c.Snapshot().Conversation)
	assert.Empty(t, sess.Requests())
}

func TestController_SingleFlight(t *testing.T) {
	sess := enginetest.NewSession(enginetest.Script{Hang: true})
	c, _ := readyController(t, sess)

	require.NoError(t, c.Submit("first"))
	assert.ErrorIs(t, c.Submit("second"), ErrBusy)

	s := c.Snapshot()
	assert.True(t, s.IsGenerating())
	assert.Len(t, s.Conversation, 2)

	waitFor(t, c, func(Snapshot) bool { return sess.LastStream() != nil })
	sess.LastStream().End(nil)
	c.Wait()

	assert.Len(t, sess.Requests(), 1)
	assert.True(t, c.Snapshot().IsReady())
}

// =============================================================================
// NON-STREAMING
// =============================================================================

func TestController_Complete(t *testing.T) {
	sess := enginetest.NewSession()
	sess.CompleteText = "Paris."
	c, _ := readyController(t, sess)

	reply, err := c.Complete(context.Background(), "Capital of France?")
	require.NoError(t, err)
	assert.Equal(t, "Paris.", reply)

	s := c.Snapshot()
	assert.True(t, s.IsReady())
	require.Len(t, s.Conversation, 2)
	assert.Equal(t, "Paris.", s.Conversation[1].Content)
}

func TestController_CompleteFailure(t *testing.T) {
	sess := enginetest.NewSession()
	sess.CompleteErr = errors.New("boom")
	c, _ := readyController(t, sess)

	_, err := c.Complete(context.Background(), "Hi")
	assert.True(t, IsGenerationError(err))
	assert.True(t, lastTurnErrored(c.Snapshot()))

	_, err = c.Complete(context.Background(), " ")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestController_CompleteNotReady(t *testing.T) {
	c, _ := newController(t, &enginetest.Loader{})
	_, err := c.Complete(context.Background(), "Hi")
	assert.ErrorIs(t, err, ErrNotReady)
	assert.Empty(t, c.Snapshot().Conversation)
}

func lastTurnErrored(s Snapshot) bool {
	turn, ok := s.LastTurn()
	return ok && turn.Errored
}

// =============================================================================
// OBSERVERS
// =============================================================================

func TestCoalesce_KeepsNewest(t *testing.T) {
	ch := make(chan Snapshot, 1)
	obs := Coalesce(ch)

	obs(Snapshot{Seq: 1})
	obs(Snapshot{Seq: 2})
	obs(Snapshot{Seq: 3})

	assert.Equal(t, uint64(3), (<-ch).Seq)
	select {
	case s := <-ch:
		t.Fatalf("unexpected extra snapshot %d", s.Seq)
	default:
	}
}

func TestController_Unsubscribe(t *testing.T) {
	c := New(&enginetest.Loader{}, Config{ReadySignalDelay: time.Hour})
	t.Cleanup(func() { c.Close(); c.Wait() })

	var n int
	var mu sync.Mutex
	unsubscribe := c.Subscribe(func(Snapshot) {
		mu.Lock()
		n++
		mu.Unlock()
	})
	c.SetLocale("fr")
	unsubscribe()
	c.SetLocale("de")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, n)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "Generating", StateGenerating.String())
	assert.Equal(t, "Unknown", State(42).String())
}
