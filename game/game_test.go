package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/zephyrtronium/twentyfour"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type event struct {
	kind     string
	round    *Round
	msg      Message
	elapsed  time.Duration
	solution string
}

type fakeFrontend struct {
	events chan event
}

func newFakeFrontend() *fakeFrontend {
	return &fakeFrontend{events: make(chan event, 16)}
}

func (f *fakeFrontend) Prompt(ctx context.Context, r *Round) error {
	f.events <- event{kind: "prompt", round: r}
	return nil
}

func (f *fakeFrontend) Solved(ctx context.Context, r *Round, m Message, elapsed time.Duration) error {
	f.events <- event{kind: "solved", round: r, msg: m, elapsed: elapsed}
	return nil
}

func (f *fakeFrontend) Quit(ctx context.Context, r *Round, m Message) error {
	f.events <- event{kind: "quit", round: r, msg: m}
	return nil
}

func (f *fakeFrontend) Expired(ctx context.Context, r *Round, solution string) error {
	f.events <- event{kind: "expired", round: r, solution: solution}
	return nil
}

func (f *fakeFrontend) next(t *testing.T) event {
	t.Helper()
	select {
	case ev := <-f.events:
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("no frontend event")
		return event{}
	}
}

type runResult struct {
	sum Summary
	err error
}

func startGame(ctx context.Context, g *Game, channel string, msgs <-chan Message, fe Frontend) <-chan runResult {
	done := make(chan runResult, 1)
	go func() {
		sum, err := g.Run(ctx, channel, msgs, fe)
		done <- runResult{sum, err}
	}()
	return done
}

func waitResult(t *testing.T, done <-chan runResult) runResult {
	t.Helper()
	select {
	case r := <-done:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("game did not end")
		return runResult{}
	}
}

func pairCorpus(t *testing.T) *Corpus {
	t.Helper()
	c, err := NewCorpus([][]int64{{6, 4}})
	require.NoError(t, err)
	return c
}

func TestRunSolveThenQuit(t *testing.T) {
	g := New(pairCorpus(t), Config{Timeout: time.Minute}, zaptest.NewLogger(t))
	msgs := make(chan Message)
	fe := newFakeFrontend()
	done := startGame(context.Background(), g, "general", msgs, fe)

	ev := fe.next(t)
	require.Equal(t, "prompt", ev.kind)
	assert.ElementsMatch(t, []int64{6, 4}, ev.round.Numbers)
	assert.EqualValues(t, 24, ev.round.Target)
	assert.NotEmpty(t, ev.round.ID)
	assert.True(t, g.Running("general"))

	msgs <- Message{Channel: "random", Author: "eve", Content: "6*4"}
	msgs <- Message{Channel: "general", Author: "bob", Content: "hello"}
	msgs <- Message{Channel: "general", Author: "bob", Content: "6+4"}
	msgs <- Message{Channel: "general", Author: "bob", Content: "6*4*1"}
	msgs <- Message{Channel: "general", Author: "alice", Content: " 6 4 * "}

	ev = fe.next(t)
	require.Equal(t, "solved", ev.kind)
	assert.Equal(t, "alice", ev.msg.Author)
	assert.GreaterOrEqual(t, ev.elapsed, time.Duration(0))

	ev = fe.next(t)
	require.Equal(t, "prompt", ev.kind)
	msgs <- Message{Channel: "general", Author: "carol", Content: "QUIT"}
	ev = fe.next(t)
	require.Equal(t, "quit", ev.kind)
	assert.Equal(t, "carol", ev.msg.Author)

	r := waitResult(t, done)
	require.NoError(t, r.err)
	assert.Equal(t, Summary{Rounds: 2, Solved: 1, End: EndQuit}, r.sum)
	assert.False(t, g.Running("general"))
}

func TestRunTimeout(t *testing.T) {
	g := New(pairCorpus(t), Config{Timeout: 20 * time.Millisecond}, zaptest.NewLogger(t))
	msgs := make(chan Message)
	fe := newFakeFrontend()
	done := startGame(context.Background(), g, "general", msgs, fe)

	ev := fe.next(t)
	require.Equal(t, "prompt", ev.kind)
	ev = fe.next(t)
	require.Equal(t, "expired", ev.kind)
	assert.True(t, twentyfour.IsCandidateMatch(ev.solution, []int64{6, 4}, 24), "bad solution %q", ev.solution)

	r := waitResult(t, done)
	require.NoError(t, r.err)
	assert.Equal(t, Summary{Rounds: 1, Solved: 0, End: EndTimeout}, r.sum)
}

func TestRunOnePerChannel(t *testing.T) {
	g := New(pairCorpus(t), Config{Timeout: time.Minute}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	msgs := make(chan Message)
	fe := newFakeFrontend()
	done := startGame(ctx, g, "general", msgs, fe)
	require.Equal(t, "prompt", fe.next(t).kind)

	_, err := g.Run(ctx, "general", msgs, newFakeFrontend())
	require.ErrorIs(t, err, ErrGameRunning)

	cancel()
	r := waitResult(t, done)
	require.ErrorIs(t, r.err, context.Canceled)
	assert.Equal(t, EndCanceled, r.sum.End)
	assert.False(t, g.Running("general"))
}

func TestRunClosed(t *testing.T) {
	g := New(pairCorpus(t), Config{}, nil)
	msgs := make(chan Message)
	fe := newFakeFrontend()
	done := startGame(context.Background(), g, "general", msgs, fe)
	require.Equal(t, "prompt", fe.next(t).kind)
	close(msgs)
	r := waitResult(t, done)
	require.NoError(t, r.err)
	assert.Equal(t, EndClosed, r.sum.End)
}

func TestRunEmptyCorpus(t *testing.T) {
	g := New(nil, Config{}, nil)
	_, err := g.Run(context.Background(), "general", nil, newFakeFrontend())
	require.ErrorIs(t, err, ErrEmptyCorpus)
	assert.False(t, g.Running("general"))
}

func TestRunCustomQuitWords(t *testing.T) {
	g := New(pairCorpus(t), Config{QuitWords: []string{"bye"}}, nil)
	msgs := make(chan Message)
	fe := newFakeFrontend()
	done := startGame(context.Background(), g, "general", msgs, fe)
	require.Equal(t, "prompt", fe.next(t).kind)
	msgs <- Message{Channel: "general", Content: "quit"}
	msgs <- Message{Channel: "general", Content: "Bye"}
	require.Equal(t, "quit", fe.next(t).kind)
	r := waitResult(t, done)
	require.NoError(t, r.err)
	assert.Equal(t, Summary{Rounds: 1, End: EndQuit}, r.sum)
}

func TestRoundString(t *testing.T) {
	r := Round{Numbers: []int64{1, 12, 3, 4}}
	assert.Equal(t, "1, 12, 3, 4", r.String())
}

func TestEndString(t *testing.T) {
	assert.Equal(t, "quit", EndQuit.String())
	assert.Equal(t, "timeout", EndTimeout.String())
	assert.Equal(t, "End(9)", End(9).String())
}

func TestRegistry(t *testing.T) {
	var r Registry
	require.NoError(t, r.Acquire("b"))
	require.NoError(t, r.Acquire("a"))
	require.ErrorIs(t, r.Acquire("a"), ErrGameRunning)
	assert.Equal(t, []string{"a", "b"}, r.Channels())
	r.Release("a")
	assert.False(t, r.Running("a"))
	assert.True(t, r.Running("b"))
	require.NoError(t, r.Acquire("a"))
}
