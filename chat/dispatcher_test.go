// ABOUTME: Tests for the dual-mode dispatcher
// ABOUTME: Local answers, remote failure isolation, retries, and the busy guard
package chat

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/harperreed/inscrm/assistant"
	"github.com/harperreed/inscrm/llm"
	"github.com/harperreed/inscrm/models"
	"github.com/harperreed/inscrm/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeCompleter answers from a list of results, one per call.
type fakeCompleter struct {
	mu      sync.Mutex
	calls   int
	results []error
	reply   string
	last    llm.Request
	block   bool
}

func (f *fakeCompleter) Complete(ctx context.Context, req llm.Request) (string, error) {
	f.mu.Lock()
	n := f.calls
	f.calls++
	f.last = req
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if n < len(f.results) && f.results[n] != nil {
		return "", f.results[n]
	}
	return f.reply, nil
}

func (f *fakeCompleter) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestDispatcher(mode Mode, completer llm.Completer) *Dispatcher {
	s := store.NewSeeded(refTime)
	local := &LocalStrategy{
		Router: assistant.NewRouter(s, assistant.WithClock(fixedClock)),
	}
	remote := &RemoteStrategy{
		Completer: completer,
		Store:     s,
		Model:     "test-model",
		Timeout:   50 * time.Millisecond,
		Retries:   DefaultRetries,
		Now:       fixedClock,
	}
	return NewDispatcher(newSession(mode, fixedClock), local, remote, zap.NewNop())
}

func TestSendLocal(t *testing.T) {
	d := newTestDispatcher(ModeLocal, nil)

	reply, err := d.Send(context.Background(), "How many clients do we have?")
	require.NoError(t, err)
	assert.Equal(t, models.SenderBot, reply.Sender)
	assert.Contains(t, reply.Content, "You have 11 clients: 9 active, 1 inactive, 1 pending.")

	msgs := d.Session().Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, models.SenderBot, msgs[0].Sender)
	assert.Equal(t, models.SenderUser, msgs[1].Sender)
	assert.Equal(t, "How many clients do we have?", msgs[1].Content)
	assert.Equal(t, reply.ID, msgs[2].ID)
	assert.False(t, d.Session().Processing())
}

func TestSendAppendsOnePairPerMessage(t *testing.T) {
	d := newTestDispatcher(ModeLocal, nil)
	ctx := context.Background()

	for _, q := range []string{"help", "Any overdue tasks?", "What's the weather like?"} {
		_, err := d.Send(ctx, q)
		require.NoError(t, err)
	}

	msgs := d.Session().Messages()
	require.Len(t, msgs, 7)
	for i := 1; i < len(msgs); i += 2 {
		assert.Equal(t, models.SenderUser, msgs[i].Sender)
		assert.Equal(t, models.SenderBot, msgs[i+1].Sender)
	}
	assert.Equal(t, assistant.FallbackText, msgs[6].Content)

	d.Session().Clear()
	assert.Equal(t, 1, d.Session().Len())
}

func TestSendRejectsEmpty(t *testing.T) {
	d := newTestDispatcher(ModeLocal, nil)

	_, err := d.Send(context.Background(), "   ")
	assert.True(t, errors.Is(err, ErrEmpty))
	assert.Equal(t, 1, d.Session().Len())
}

// gateStrategy blocks until release is closed.
type gateStrategy struct {
	started chan struct{}
	release chan struct{}
}

func (g *gateStrategy) Answer(ctx context.Context, text string, _ []models.ChatMessage) (string, error) {
	close(g.started)
	<-g.release
	return "done", nil
}

func TestSendRejectsWhileProcessing(t *testing.T) {
	gate := &gateStrategy{started: make(chan struct{}), release: make(chan struct{})}
	d := NewDispatcher(newSession(ModeLocal, fixedClock), gate, nil, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := d.Send(context.Background(), "first")
		assert.NoError(t, err)
	}()

	<-gate.started
	assert.True(t, d.Session().Processing())

	_, err := d.Send(context.Background(), "second")
	assert.True(t, errors.Is(err, ErrBusy))

	close(gate.release)
	wg.Wait()

	msgs := d.Session().Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "first", msgs[1].Content)
	assert.Equal(t, "done", msgs[2].Content)
	assert.False(t, d.Session().Processing())
}

func TestRemoteFailureBecomesApology(t *testing.T) {
	boom := errors.New("connection refused")
	fake := &fakeCompleter{results: []error{boom, boom}}
	d := newTestDispatcher(ModeRemote, fake)

	reply, err := d.Send(context.Background(), "What should I pitch to Jamal Haija?")
	require.NoError(t, err)
	assert.Equal(t, ApologyText, reply.Content)
	assert.Equal(t, 2, fake.Calls())

	msgs := d.Session().Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, ApologyText, msgs[2].Content)
	assert.False(t, d.Session().Processing())
}

func TestRemoteRetrySucceeds(t *testing.T) {
	fake := &fakeCompleter{results: []error{errors.New("502")}, reply: "Jamal has two active policies."}
	d := newTestDispatcher(ModeRemote, fake)

	reply, err := d.Send(context.Background(), "Tell me about Jamal Haija")
	require.NoError(t, err)
	assert.Equal(t, "Jamal has two active policies.", reply.Content)
	assert.Equal(t, 2, fake.Calls())
}

func TestRemoteAuthFailureIsNotRetried(t *testing.T) {
	fake := &fakeCompleter{results: []error{llm.ErrAuthFailed}}
	d := newTestDispatcher(ModeRemote, fake)

	reply, err := d.Send(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, ApologyText, reply.Content)
	assert.Equal(t, 1, fake.Calls())
}

func TestRemoteTimeout(t *testing.T) {
	fake := &fakeCompleter{block: true}
	d := newTestDispatcher(ModeRemote, fake)

	start := time.Now()
	reply, err := d.Send(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, ApologyText, reply.Content)
	assert.Equal(t, 2, fake.Calls())
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestRemoteWithoutCompleter(t *testing.T) {
	d := newTestDispatcher(ModeRemote, nil)

	reply, err := d.Send(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, ApologyText, reply.Content)
}

func TestLocalDelayHonoursCancellation(t *testing.T) {
	s := store.NewSeeded(refTime)
	local := &LocalStrategy{Router: assistant.NewRouter(s), Delay: time.Hour}
	d := NewDispatcher(newSession(ModeLocal, fixedClock), local, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	reply, err := d.Send(ctx, "help")
	require.NoError(t, err)
	assert.NotEmpty(t, reply.Content)
	assert.NotEqual(t, ApologyText, reply.Content)
	assert.False(t, d.Session().Processing())
}

type panicStrategy struct{ calls atomic.Int32 }

func (p *panicStrategy) Answer(context.Context, string, []models.ChatMessage) (string, error) {
	p.calls.Add(1)
	panic("boom")
}

func TestStrategyPanicStillAppendsReply(t *testing.T) {
	p := &panicStrategy{}
	d := NewDispatcher(newSession(ModeRemote, fixedClock), nil, p, nil)

	reply, err := d.Send(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, ApologyText, reply.Content)
	assert.Equal(t, int32(1), p.calls.Load())
	assert.False(t, d.Session().Processing())
}
