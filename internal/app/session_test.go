package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trends-desk/internal/command"
	"trends-desk/pkg/trends"
)

type call struct {
	action command.Action
	query  trends.Query
}

// blockingRunner records each call and holds it until release is closed.
type blockingRunner struct {
	calls   chan call
	release chan struct{}
	panics  bool
}

func newBlockingRunner() *blockingRunner {
	return &blockingRunner{
		calls:   make(chan call, 4),
		release: make(chan struct{}),
	}
}

func (r *blockingRunner) Run(ctx context.Context, action command.Action, q trends.Query) error {
	r.calls <- call{action: action, query: q}
	<-r.release
	if r.panics {
		panic("boom")
	}
	return nil
}

func newTestSession(t *testing.T, runner Runner) *Session {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)
	w := a.NewWindow("")
	return NewSession(a, w, runner)
}

func TestSession_WindowLayout(t *testing.T) {
	s := newTestSession(t, newBlockingRunner())

	assert.Equal(t, MainWindowTitle, s.window.Title())
	require.Len(t, s.buttons, len(command.Actions()))
	for _, action := range command.Actions() {
		assert.Equal(t, action.Label(), s.buttons[action].Text)
	}
}

func TestSession_TapRunsActionWithParsedInput(t *testing.T) {
	runner := newBlockingRunner()
	s := newTestSession(t, runner)

	s.keywords.SetText("cats, dogs")
	s.timeframe.SetText("")
	test.Tap(s.buttons[command.ActionInterestOverTime])

	var got call
	select {
	case got = <-runner.calls:
	case <-time.After(time.Second):
		t.Fatal("action was not run")
	}
	assert.Equal(t, command.ActionInterestOverTime, got.action)
	assert.Equal(t, []string{"cats", " dogs"}, got.query.Keywords())
	assert.Equal(t, trends.DefaultTimeframe, got.query.Timeframe())

	close(runner.release)
	assert.Eventually(t, func() bool {
		if s.Busy() {
			return false
		}
		for _, btn := range s.buttons {
			if btn.Disabled() {
				return false
			}
		}
		return true
	}, time.Second, 10*time.Millisecond)
}

func TestSession_ButtonsDisabledWhileBusy(t *testing.T) {
	runner := newBlockingRunner()
	s := newTestSession(t, runner)

	test.Tap(s.buttons[command.ActionSuggestions])
	<-runner.calls

	assert.True(t, s.Busy())
	for _, btn := range s.buttons {
		assert.True(t, btn.Disabled())
	}

	// a second action is ignored while the first is in flight
	s.trigger(command.ActionTrendingSearches)
	select {
	case c := <-runner.calls:
		t.Fatalf("unexpected second call %v", c.action)
	case <-time.After(50 * time.Millisecond):
	}

	close(runner.release)
	assert.Eventually(t, func() bool { return !s.Busy() }, time.Second, 10*time.Millisecond)
	require.NoError(t, s.Stop())
}

func TestSession_PanicInActionRecovers(t *testing.T) {
	runner := newBlockingRunner()
	runner.panics = true
	s := newTestSession(t, runner)

	test.Tap(s.buttons[command.ActionRelatedTopics])
	<-runner.calls
	close(runner.release)

	assert.Eventually(t, func() bool { return !s.Busy() }, time.Second, 10*time.Millisecond)
}

func TestSession_StopCancelsContext(t *testing.T) {
	s := newTestSession(t, newBlockingRunner())
	require.NoError(t, s.Stop())
	assert.True(t, errors.Is(s.ctx.Err(), context.Canceled))
}

func TestRateLimitMessage(t *testing.T) {
	assert.Equal(t, "Rate limit exceeded. Waiting for 60 seconds.", RateLimitMessage(60*time.Second))
	assert.Equal(t, "Rate limit exceeded. Waiting for 5 seconds.", RateLimitMessage(5*time.Second))
}

func TestDialogNotifier(t *testing.T) {
	a := test.NewApp()
	t.Cleanup(a.Quit)
	w := a.NewWindow("")

	n := NewNotifier(w)
	assert.NotPanics(t, func() {
		n.RateLimited(time.Minute)
		n.Failed(errors.New("no data"))
	})
}
