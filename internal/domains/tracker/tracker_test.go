package tracker_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"studyhall/config"
	"studyhall/infras/metrics"
	otelMocks "studyhall/infras/otel/mocks"
	"studyhall/internal/domains/availability"
	availabilityMocks "studyhall/internal/domains/availability/mocks"
	eventMocks "studyhall/internal/domains/booking/event/mocks"
	"studyhall/internal/domains/reconciler"
	reconcilerMocks "studyhall/internal/domains/reconciler/mocks"
	"studyhall/internal/domains/tracker"
	cacheMocks "studyhall/shared/cache/mocks"
	"studyhall/shared/failure"
)

const (
	venueID  = "venue-1"
	debounce = 40 * time.Millisecond
)

type fixture struct {
	tracker      tracker.Tracker
	reconciler   *reconcilerMocks.MockReconciler
	availability *availabilityMocks.MockService
	notifier     *eventMocks.MockNotifier
	cache        *cacheMocks.MockRedisCache
	metrics      *metrics.Metrics

	mu           sync.Mutex
	onChange     func()
	unsubscribed atomic.Bool
}

// newFixture wires a tracker over mocks. Options run before the default cache
// expectations so they can claim specific calls first.
func newFixture(t *testing.T, opts ...func(*fixture)) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		reconciler:   reconcilerMocks.NewMockReconciler(ctrl),
		availability: availabilityMocks.NewMockService(ctrl),
		notifier:     eventMocks.NewMockNotifier(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
		metrics:      metrics.New("test"),
	}

	cfg := &config.Config{}
	cfg.Availability.DebounceMillis = int(debounce / time.Millisecond)
	cfg.Availability.SnapshotTTLSeconds = 60
	cfg.Availability.RefreshTimeoutSec = 5

	for _, opt := range opts {
		opt(f)
	}

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.notifier.EXPECT().Subscribe(venueID, gomock.Any()).
		DoAndReturn(func(_ string, onChange func()) func() {
			f.mu.Lock()
			f.onChange = onChange
			f.mu.Unlock()

			return func() { f.unsubscribed.Store(true) }
		}).AnyTimes()

	f.tracker = tracker.New(f.reconciler, f.availability, f.notifier, f.cache, cfg, otelMocks.NewOtel(), f.metrics)
	t.Cleanup(f.tracker.Close)

	return f
}

func (f *fixture) change() {
	f.mu.Lock()
	onChange := f.onChange
	f.mu.Unlock()

	onChange()
}

func TestTracker_LoadReconcilesAndDerives(t *testing.T) {
	f := newFixture(t)

	f.reconciler.EXPECT().Reconcile(gomock.Any(), venueID).Return(mapped(), nil)
	f.availability.EXPECT().Derive(gomock.Any(), venueID, reconciler.Mapping{"cabin-1": "uuid-1"}).
		Return(derivation(availability.StatusAvailable), nil)

	snapshot, err := f.tracker.Load(context.Background(), venueID)

	require.NoError(t, err)
	assert.Equal(t, tracker.StateReady, snapshot.State)
	assert.Equal(t, availability.StatusAvailable, snapshot.Availability["cabin-1"].Status)

	state, ok := f.tracker.Watching(venueID)
	require.True(t, ok)
	assert.Equal(t, tracker.WatchSubscribed, state)

	again, err := f.tracker.Load(context.Background(), venueID)
	require.NoError(t, err)
	assert.Equal(t, snapshot.Generation, again.Generation)
}

func TestTracker_BurstOfChangesRefreshesOnce(t *testing.T) {
	f := newFixture(t)

	var derives atomic.Int32

	refreshed := make(chan struct{}, 4)

	f.reconciler.EXPECT().Reconcile(gomock.Any(), venueID).Return(mapped(), nil).Times(1)
	f.availability.EXPECT().Derive(gomock.Any(), venueID, gomock.Any()).
		DoAndReturn(func(context.Context, string, reconciler.Mapping) (availability.Derivation, error) {
			if derives.Add(1) > 1 {
				refreshed <- struct{}{}

				return derivation(availability.StatusOccupied), nil
			}

			return derivation(availability.StatusAvailable), nil
		}).AnyTimes()

	_, err := f.tracker.Load(context.Background(), venueID)
	require.NoError(t, err)

	for range 5 {
		f.change()
		time.Sleep(debounce / 10)
	}

	select {
	case <-refreshed:
	case <-time.After(2 * time.Second):
		t.Fatal("no refresh after booking changes")
	}

	time.Sleep(3 * debounce)

	assert.Equal(t, int32(2), derives.Load())
	assert.GreaterOrEqual(t, testutil.ToFloat64(f.metrics.DebounceCoalesced), float64(1))

	snapshot, err := f.tracker.Snapshot(context.Background(), venueID)
	require.NoError(t, err)
	assert.Equal(t, availability.StatusOccupied, snapshot.Availability["cabin-1"].Status)
}

func TestTracker_ForcedRefreshReconciles(t *testing.T) {
	f := newFixture(t)

	f.reconciler.EXPECT().Reconcile(gomock.Any(), venueID).Return(mapped(), nil).Times(2)
	f.availability.EXPECT().Derive(gomock.Any(), venueID, gomock.Any()).
		Return(derivation(availability.StatusAvailable), nil).Times(3)

	_, err := f.tracker.Load(context.Background(), venueID)
	require.NoError(t, err)

	_, err = f.tracker.Refresh(context.Background(), venueID, false)
	require.NoError(t, err)

	_, err = f.tracker.Refresh(context.Background(), venueID, true)
	require.NoError(t, err)
}

func TestTracker_FailedRefreshKeepsPreviousEntries(t *testing.T) {
	f := newFixture(t)

	f.reconciler.EXPECT().Reconcile(gomock.Any(), venueID).Return(mapped(), nil)
	gomock.InOrder(
		f.availability.EXPECT().Derive(gomock.Any(), venueID, gomock.Any()).Return(derivation(availability.StatusOccupied), nil),
		f.availability.EXPECT().Derive(gomock.Any(), venueID, gomock.Any()).Return(availability.Derivation{}, errors.New("db down")),
	)

	_, err := f.tracker.Load(context.Background(), venueID)
	require.NoError(t, err)

	snapshot, err := f.tracker.Refresh(context.Background(), venueID, false)

	require.Error(t, err)
	assert.Equal(t, tracker.StateError, snapshot.State)
	assert.Equal(t, availability.StatusOccupied, snapshot.Availability["cabin-1"].Status)
	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.AvailabilityRefreshes.WithLabelValues(metrics.TriggerManual, metrics.ResultError)), 0)
}

func TestTracker_FailedReconcileLeavesMappingUnknown(t *testing.T) {
	f := newFixture(t)

	gomock.InOrder(
		f.reconciler.EXPECT().Reconcile(gomock.Any(), venueID).Return(reconciler.Result{Mapping: reconciler.Mapping{}}, errors.New("bucket gone")),
		f.reconciler.EXPECT().Reconcile(gomock.Any(), venueID).Return(mapped(), nil),
	)
	f.availability.EXPECT().Derive(gomock.Any(), venueID, gomock.Any()).Return(derivation(availability.StatusAvailable), nil)

	snapshot, err := f.tracker.Load(context.Background(), venueID)

	require.Error(t, err)
	assert.Equal(t, tracker.StateError, snapshot.State)
	assert.False(t, snapshot.HasMapping())

	snapshot, err = f.tracker.Refresh(context.Background(), venueID, false)

	require.NoError(t, err)
	assert.Equal(t, tracker.StateReady, snapshot.State)
}

func TestTracker_ForgetUnsubscribes(t *testing.T) {
	f := newFixture(t)

	f.reconciler.EXPECT().Reconcile(gomock.Any(), venueID).Return(mapped(), nil)
	f.availability.EXPECT().Derive(gomock.Any(), venueID, gomock.Any()).Return(derivation(availability.StatusAvailable), nil)
	f.cache.EXPECT().Get(gomock.Any(), "availability:snapshot:"+venueID, gomock.Any()).Return(errors.New("miss"))

	_, err := f.tracker.Load(context.Background(), venueID)
	require.NoError(t, err)

	f.tracker.Forget(context.Background(), venueID)

	assert.True(t, f.unsubscribed.Load())

	_, ok := f.tracker.Watching(venueID)
	assert.False(t, ok)

	_, err = f.tracker.Snapshot(context.Background(), venueID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestTracker_SnapshotFromMirror(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), "availability:snapshot:"+venueID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value any) error {
			snapshot, _ := value.(*tracker.Snapshot)
			snapshot.VenueID = venueID
			snapshot.State = tracker.StateReady

			return nil
		})

	snapshot, err := f.tracker.Snapshot(context.Background(), venueID)

	require.NoError(t, err)
	assert.Equal(t, tracker.StateReady, snapshot.State)
}

func TestTracker_LayoutChangeRebuildsMapping(t *testing.T) {
	f := newFixture(t)

	rebuilt := make(chan struct{})

	gomock.InOrder(
		f.reconciler.EXPECT().Reconcile(gomock.Any(), venueID).Return(mapped(), nil),
		f.reconciler.EXPECT().Reconcile(gomock.Any(), venueID).
			DoAndReturn(func(context.Context, string) (reconciler.Result, error) {
				close(rebuilt)

				return reconciler.Result{Mapping: reconciler.Mapping{"cabin-1": "uuid-2"}}, nil
			}),
	)
	f.availability.EXPECT().Derive(gomock.Any(), venueID, gomock.Any()).Return(derivation(availability.StatusAvailable), nil).Times(2)

	_, err := f.tracker.Load(context.Background(), venueID)
	require.NoError(t, err)

	f.tracker.LayoutChanged(context.Background(), venueID)

	select {
	case <-rebuilt:
	case <-time.After(2 * time.Second):
		t.Fatal("mapping was not rebuilt")
	}

	require.Eventually(t, func() bool {
		return testutil.ToFloat64(f.metrics.AvailabilityRefreshes.WithLabelValues(metrics.TriggerLayout, metrics.ResultSuccess)) == 1
	}, 2*time.Second, 10*time.Millisecond)

	snapshot, err := f.tracker.Snapshot(context.Background(), venueID)
	require.NoError(t, err)
	assert.Equal(t, "uuid-2", snapshot.Mapping["cabin-1"])
}

func TestTracker_LayoutChangeOfUntrackedVenue(t *testing.T) {
	f := newFixture(t)

	f.tracker.LayoutChanged(context.Background(), "venue-2")

	_, ok := f.tracker.Watching("venue-2")
	assert.False(t, ok)
}

func TestTracker_LoadAfterClose(t *testing.T) {
	f := newFixture(t)

	f.tracker.Close()

	_, err := f.tracker.Load(context.Background(), venueID)

	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, failure.GetCode(err))
}

func TestTracker_ForcedRefreshSurvivesConcurrentChange(t *testing.T) {
	f := newFixture(t)

	rebuilt := reconciler.Result{Mapping: reconciler.Mapping{"cabin-1": "uuid-NEW"}}
	blocked := make(chan struct{})
	release := make(chan struct{})

	gomock.InOrder(
		f.reconciler.EXPECT().Reconcile(gomock.Any(), venueID).Return(mapped(), nil),
		f.reconciler.EXPECT().Reconcile(gomock.Any(), venueID).
			DoAndReturn(func(context.Context, string) (reconciler.Result, error) {
				close(blocked)
				<-release

				return rebuilt, nil
			}),
		f.reconciler.EXPECT().Reconcile(gomock.Any(), venueID).Return(rebuilt, nil),
	)
	f.availability.EXPECT().Derive(gomock.Any(), venueID, gomock.Any()).Return(derivation(availability.StatusAvailable), nil).AnyTimes()

	_, err := f.tracker.Load(context.Background(), venueID)
	require.NoError(t, err)

	type outcome struct {
		snapshot tracker.Snapshot
		err      error
	}

	forced := make(chan outcome, 1)

	go func() {
		snapshot, err := f.tracker.Refresh(context.Background(), venueID, true)
		forced <- outcome{snapshot: snapshot, err: err}
	}()

	<-blocked

	snapshot, err := f.tracker.Refresh(context.Background(), venueID, false)
	require.NoError(t, err)
	assert.Equal(t, "uuid-NEW", snapshot.Mapping["cabin-1"])

	close(release)

	select {
	case res := <-forced:
		require.NoError(t, res.err)
		assert.Equal(t, "uuid-NEW", res.snapshot.Mapping["cabin-1"])
		assert.Equal(t, tracker.StateReady, res.snapshot.State)
	case <-time.After(2 * time.Second):
		t.Fatal("forced refresh did not return")
	}
}

func TestTracker_ForcedRefreshRetriesAfterNewerRunFails(t *testing.T) {
	f := newFixture(t)

	blocked := make(chan struct{})
	release := make(chan struct{})

	gomock.InOrder(
		f.reconciler.EXPECT().Reconcile(gomock.Any(), venueID).Return(mapped(), nil),
		f.reconciler.EXPECT().Reconcile(gomock.Any(), venueID).
			DoAndReturn(func(context.Context, string) (reconciler.Result, error) {
				close(blocked)
				<-release

				return mapped(), nil
			}),
		f.reconciler.EXPECT().Reconcile(gomock.Any(), venueID).Return(reconciler.Result{}, errors.New("bucket gone")),
		f.reconciler.EXPECT().Reconcile(gomock.Any(), venueID).Return(mapped(), nil),
	)
	f.availability.EXPECT().Derive(gomock.Any(), venueID, gomock.Any()).Return(derivation(availability.StatusAvailable), nil).AnyTimes()

	_, err := f.tracker.Load(context.Background(), venueID)
	require.NoError(t, err)

	forced := make(chan error, 1)

	go func() {
		_, err := f.tracker.Refresh(context.Background(), venueID, true)
		forced <- err
	}()

	<-blocked

	_, err = f.tracker.Refresh(context.Background(), venueID, false)
	require.Error(t, err)

	close(release)

	select {
	case err := <-forced:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("forced refresh did not return")
	}

	snapshot, err := f.tracker.Snapshot(context.Background(), venueID)
	require.NoError(t, err)
	assert.Equal(t, tracker.StateReady, snapshot.State)
}

func TestTracker_MirrorIsRemovedAfterForget(t *testing.T) {
	key := "availability:snapshot:" + venueID
	saving := make(chan struct{})
	release := make(chan struct{})

	var deletes atomic.Int32

	f := newFixture(t, func(f *fixture) {
		f.cache.EXPECT().Save(gomock.Any(), key, gomock.Any(), 60).
			DoAndReturn(func(context.Context, string, any, int) error {
				close(saving)
				<-release

				return nil
			})
		f.cache.EXPECT().Delete(gomock.Any(), key).
			DoAndReturn(func(context.Context, string) error {
				deletes.Add(1)

				return nil
			}).AnyTimes()
	})

	f.reconciler.EXPECT().Reconcile(gomock.Any(), venueID).Return(mapped(), nil)
	f.availability.EXPECT().Derive(gomock.Any(), venueID, gomock.Any()).Return(derivation(availability.StatusAvailable), nil)

	_, err := f.tracker.Load(context.Background(), venueID)
	require.NoError(t, err)

	<-saving
	f.tracker.Forget(context.Background(), venueID)
	assert.Equal(t, int32(1), deletes.Load())

	close(release)

	require.Eventually(t, func() bool {
		return deletes.Load() == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestTracker_CloseCancelsDetachedRefresh(t *testing.T) {
	f := newFixture(t)

	started := make(chan struct{})
	cancelled := make(chan error, 1)

	gomock.InOrder(
		f.reconciler.EXPECT().Reconcile(gomock.Any(), venueID).Return(mapped(), nil),
		f.reconciler.EXPECT().Reconcile(gomock.Any(), venueID).
			DoAndReturn(func(ctx context.Context, _ string) (reconciler.Result, error) {
				close(started)
				<-ctx.Done()
				cancelled <- ctx.Err()

				return reconciler.Result{}, ctx.Err()
			}),
	)
	f.availability.EXPECT().Derive(gomock.Any(), venueID, gomock.Any()).Return(derivation(availability.StatusAvailable), nil)

	_, err := f.tracker.Load(context.Background(), venueID)
	require.NoError(t, err)

	f.tracker.LayoutChanged(context.Background(), venueID)

	<-started
	f.tracker.Close()

	select {
	case err := <-cancelled:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("refresh kept running after close")
	}
}
