package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyhall/infras/metrics"
)

func TestWatcher_StateMachine(t *testing.T) {
	m := metrics.New("test")

	entered := make(chan struct{})
	release := make(chan struct{})

	w := newWatcher("venue-1", 10*time.Millisecond, func(context.Context) {
		entered <- struct{}{}
		<-release
	}, m)

	var unsubscribed bool

	assert.Equal(t, WatchIdle, w.State())

	w.start(func(venueID string, onChange func()) func() {
		assert.Equal(t, "venue-1", venueID)

		return func() { unsubscribed = true }
	})

	assert.Equal(t, WatchSubscribed, w.State())
	assert.InDelta(t, 1, testutil.ToFloat64(m.ActiveWatchers), 0)

	w.notify()

	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("refresh never started")
	}

	assert.Equal(t, WatchRefreshing, w.State())

	release <- struct{}{}

	require.Eventually(t, func() bool { return w.State() == WatchSubscribed }, time.Second, 5*time.Millisecond)

	w.stop()
	w.stop()

	assert.True(t, unsubscribed)
	assert.Equal(t, WatchUnsubscribed, w.State())
	assert.InDelta(t, 0, testutil.ToFloat64(m.ActiveWatchers), 0)
}

func TestWatcher_StopInterruptsRefresh(t *testing.T) {
	entered := make(chan struct{})

	w := newWatcher("venue-1", time.Millisecond, func(ctx context.Context) {
		close(entered)
		<-ctx.Done()
	}, metrics.New("test"))

	w.start(func(string, func()) func() { return func() {} })
	w.notify()

	<-entered

	done := make(chan struct{})

	go func() {
		w.stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stop blocked on a running refresh")
	}
}
