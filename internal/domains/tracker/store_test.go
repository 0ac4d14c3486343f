package tracker_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyhall/infras/metrics"
	"studyhall/internal/domains/availability"
	"studyhall/internal/domains/reconciler"
	"studyhall/internal/domains/tracker"
)

func derivation(status availability.Status) availability.Derivation {
	return availability.Derivation{
		Entries: map[string]availability.Entry{
			"cabin-1": {LogicalID: "cabin-1", PhysicalID: "uuid-1", Status: status},
		},
		Unmapped: []availability.UnmappedCabin{},
	}
}

func mapped() reconciler.Result {
	return reconciler.Result{Mapping: reconciler.Mapping{"cabin-1": "uuid-1"}}
}

func TestStore_DiscardsOlderGeneration(t *testing.T) {
	m := metrics.New("test")
	store := tracker.NewStore(m)

	first, _, cancelFirst := store.Dispatch(context.Background(), venueID)
	defer cancelFirst()

	second, _, cancelSecond := store.Dispatch(context.Background(), venueID)
	defer cancelSecond()

	assert.Greater(t, second, first)

	assert.True(t, store.CommitMapping(venueID, second, mapped()))
	assert.True(t, store.CommitAvailability(venueID, second, derivation(availability.StatusOccupied)))

	assert.False(t, store.CommitAvailability(venueID, first, derivation(availability.StatusAvailable)))
	assert.False(t, store.Fail(venueID, first, errors.New("late")))

	snapshot, ok := store.Get(venueID)
	require.True(t, ok)
	assert.Equal(t, tracker.StateReady, snapshot.State)
	assert.Equal(t, availability.StatusOccupied, snapshot.Availability["cabin-1"].Status)
	assert.Equal(t, second, snapshot.Generation)
	assert.InDelta(t, 2, testutil.ToFloat64(m.StaleCommits), 0)
}

func TestStore_DispatchCancelsPrevious(t *testing.T) {
	store := tracker.NewStore(metrics.New("test"))

	_, firstCtx, cancelFirst := store.Dispatch(context.Background(), venueID)
	defer cancelFirst()

	_, secondCtx, cancelSecond := store.Dispatch(context.Background(), venueID)
	defer cancelSecond()

	require.ErrorIs(t, firstCtx.Err(), context.Canceled)
	assert.NoError(t, secondCtx.Err())
}

func TestStore_FailureKeepsEntries(t *testing.T) {
	store := tracker.NewStore(metrics.New("test"))

	generation, _, cancel := store.Dispatch(context.Background(), venueID)
	require.True(t, store.CommitMapping(venueID, generation, mapped()))
	require.True(t, store.CommitAvailability(venueID, generation, derivation(availability.StatusOccupied)))
	cancel()

	generation, _, cancel = store.Dispatch(context.Background(), venueID)
	defer cancel()

	snapshot, _ := store.Get(venueID)
	assert.Equal(t, tracker.StateReady, snapshot.State)

	require.True(t, store.Fail(venueID, generation, errors.New("db down")))

	snapshot, _ = store.Get(venueID)
	assert.Equal(t, tracker.StateError, snapshot.State)
	assert.Equal(t, "db down", snapshot.Error)
	assert.Equal(t, availability.StatusOccupied, snapshot.Availability["cabin-1"].Status)
	assert.True(t, snapshot.HasMapping())
}

func TestStore_States(t *testing.T) {
	store := tracker.NewStore(metrics.New("test"))

	generation, _, cancel := store.Dispatch(context.Background(), venueID)
	defer cancel()

	snapshot, _ := store.Get(venueID)
	assert.Equal(t, tracker.StateLoading, snapshot.State)
	assert.False(t, snapshot.HasMapping())

	require.True(t, store.CommitMapping(venueID, generation, reconciler.Result{}))
	require.True(t, store.CommitAvailability(venueID, generation, availability.Derivation{}))

	snapshot, _ = store.Get(venueID)
	assert.Equal(t, tracker.StateEmpty, snapshot.State)
	assert.True(t, snapshot.HasMapping())
	assert.NotNil(t, snapshot.Availability)
}

func TestStore_InvalidateDropsMappingAndInFlightWork(t *testing.T) {
	store := tracker.NewStore(metrics.New("test"))

	generation, _, cancel := store.Dispatch(context.Background(), venueID)
	require.True(t, store.CommitMapping(venueID, generation, mapped()))
	require.True(t, store.CommitAvailability(venueID, generation, derivation(availability.StatusAvailable)))
	cancel()

	generation, ctx, cancel := store.Dispatch(context.Background(), venueID)
	defer cancel()

	store.Invalidate(venueID)

	require.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.False(t, store.CommitMapping(venueID, generation, mapped()))

	snapshot, _ := store.Get(venueID)
	assert.False(t, snapshot.HasMapping())
	assert.Contains(t, snapshot.Availability, "cabin-1")
}

func TestStore_GetReturnsCopy(t *testing.T) {
	store := tracker.NewStore(metrics.New("test"))

	generation, _, cancel := store.Dispatch(context.Background(), venueID)
	defer cancel()

	require.True(t, store.CommitMapping(venueID, generation, mapped()))

	snapshot, _ := store.Get(venueID)
	snapshot.Mapping["cabin-9"] = "uuid-9"

	again, _ := store.Get(venueID)
	assert.NotContains(t, again.Mapping, "cabin-9")
}

func TestStore_Delete(t *testing.T) {
	store := tracker.NewStore(metrics.New("test"))

	_, ctx, cancel := store.Dispatch(context.Background(), venueID)
	defer cancel()

	store.Delete(venueID)

	_, ok := store.Get(venueID)
	assert.False(t, ok)
	require.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestStore_ReconcileRequestOutlivesCancelledRun(t *testing.T) {
	store := tracker.NewStore(metrics.New("test"))

	store.RequestReconcile(venueID)

	forced, _, cancelForced := store.Dispatch(context.Background(), venueID)
	defer cancelForced()

	change, _, cancelChange := store.Dispatch(context.Background(), venueID)
	defer cancelChange()

	assert.False(t, store.CommitMapping(venueID, forced, mapped()))
	assert.True(t, store.ReconcilePending(venueID))

	require.True(t, store.CommitMapping(venueID, change, mapped()))
	assert.False(t, store.ReconcilePending(venueID))
}

func TestStore_Settled(t *testing.T) {
	store := tracker.NewStore(metrics.New("test"))

	assert.True(t, isClosed(store.Settled(venueID)))

	first, _, cancelFirst := store.Dispatch(context.Background(), venueID)
	defer cancelFirst()

	waiting := store.Settled(venueID)
	assert.False(t, isClosed(waiting))

	second, _, cancelSecond := store.Dispatch(context.Background(), venueID)
	defer cancelSecond()

	assert.True(t, isClosed(waiting))
	assert.False(t, isClosed(store.Settled(venueID)))

	assert.False(t, store.Fail(venueID, first, errors.New("late")))
	assert.False(t, isClosed(store.Settled(venueID)))

	require.True(t, store.CommitMapping(venueID, second, mapped()))
	require.True(t, store.CommitAvailability(venueID, second, derivation(availability.StatusAvailable)))
	assert.True(t, isClosed(store.Settled(venueID)))
}

func TestStore_CancelAll(t *testing.T) {
	store := tracker.NewStore(metrics.New("test"))

	_, inFlight, cancel := store.Dispatch(context.Background(), venueID)
	defer cancel()

	store.CancelAll()
	store.CancelAll()

	require.ErrorIs(t, inFlight.Err(), context.Canceled)
	assert.True(t, isClosed(store.Done()))

	_, later, cancelLater := store.Dispatch(context.Background(), "venue-2")
	defer cancelLater()

	require.ErrorIs(t, later.Err(), context.Canceled)
}

func TestStore_Latest(t *testing.T) {
	store := tracker.NewStore(metrics.New("test"))

	_, ok := store.Latest(venueID)
	assert.False(t, ok)

	generation, _, cancel := store.Dispatch(context.Background(), venueID)
	defer cancel()

	store.Invalidate(venueID)

	latest, ok := store.Latest(venueID)
	require.True(t, ok)
	assert.Greater(t, latest, generation)
}

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}
