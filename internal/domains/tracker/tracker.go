package tracker

//go:generate go run go.uber.org/mock/mockgen -source=./tracker.go -destination=./mocks/tracker_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"studyhall/config"
	"studyhall/infras/metrics"
	"studyhall/infras/otel"
	"studyhall/internal/domains/availability"
	"studyhall/internal/domains/booking/event"
	"studyhall/internal/domains/reconciler"
	"studyhall/shared"
	"studyhall/shared/cache"
	"studyhall/shared/constant"
	"studyhall/shared/failure"
	"studyhall/shared/logger"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const (
	cacheSnapshot = "availability:snapshot"

	defaultDebounce       = 500 * time.Millisecond
	defaultRefreshTimeout = 15 * time.Second
)

var (
	errSuperseded = errors.New("superseded by a newer refresh")
	errClosed     = errors.New("availability tracking is shutting down")
)

type Tracker interface {
	// Load starts tracking a venue: it subscribes to booking changes and, unless a
	// usable snapshot exists, reconciles and derives availability.
	Load(ctx context.Context, venueID string) (Snapshot, error)
	// Refresh derives availability again. With force the mapping is rebuilt first.
	Refresh(ctx context.Context, venueID string, force bool) (Snapshot, error)
	Snapshot(ctx context.Context, venueID string) (Snapshot, error)
	Invalidate(ctx context.Context, venueID string)
	// Forget stops watching the venue and drops its state.
	Forget(ctx context.Context, venueID string)
	LayoutChanged(ctx context.Context, venueID string)
	Watching(venueID string) (WatchState, bool)
	Close()
}

type trackerImpl struct {
	reconciler   reconciler.Reconciler
	availability availability.Service
	notifier     event.Notifier
	store        *Store
	cache        cache.RedisCache
	cfg          *config.Config
	otel         otel.Otel
	metrics      *metrics.Metrics

	flight singleflight.Group

	mu       sync.Mutex
	watchers map[string]*watcher
	closed   bool
}

func New(
	reconciler reconciler.Reconciler,
	availability availability.Service,
	notifier event.Notifier,
	cache cache.RedisCache,
	cfg *config.Config,
	otel otel.Otel,
	metrics *metrics.Metrics,
) Tracker {
	return &trackerImpl{
		reconciler:   reconciler,
		availability: availability,
		notifier:     notifier,
		store:        NewStore(metrics),
		cache:        cache,
		cfg:          cfg,
		otel:         otel,
		metrics:      metrics,
		watchers:     make(map[string]*watcher),
	}
}

func (t *trackerImpl) Load(ctx context.Context, venueID string) (snapshot Snapshot, err error) {
	ctx, scope := t.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".tracker.Load")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute(constant.OtelVenueAttributeKey, venueID)

	if err = t.watch(venueID); err != nil {
		return snapshot, err
	}

	current, ok := t.store.Get(venueID)
	if ok && current.HasMapping() && (current.State == StateReady || current.State == StateEmpty) {
		return current, nil
	}

	return t.refresh(ctx, venueID, true, metrics.TriggerLoad)
}

func (t *trackerImpl) Refresh(ctx context.Context, venueID string, force bool) (snapshot Snapshot, err error) {
	ctx, scope := t.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".tracker.Refresh")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttributes(map[string]any{
		constant.OtelVenueAttributeKey: venueID,
		"force":                        force,
	})

	return t.refresh(ctx, venueID, force, metrics.TriggerManual)
}

func (t *trackerImpl) Snapshot(ctx context.Context, venueID string) (snapshot Snapshot, err error) {
	ctx, scope := t.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".tracker.Snapshot")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if current, ok := t.store.Get(venueID); ok {
		return current, nil
	}

	if err = t.cache.Get(ctx, shared.BuildCacheKey(cacheSnapshot, venueID), &snapshot); err == nil {
		return snapshot, nil
	}

	return snapshot, failure.NotFound("venue is not tracked") // nolint:wrapcheck
}

func (t *trackerImpl) Invalidate(ctx context.Context, venueID string) {
	t.store.Invalidate(venueID)
	t.evict(ctx, venueID)
}

func (t *trackerImpl) Forget(ctx context.Context, venueID string) {
	t.mu.Lock()
	w, ok := t.watchers[venueID]
	delete(t.watchers, venueID)
	t.mu.Unlock()

	if ok {
		w.stop()
	}

	t.store.Delete(venueID)
	t.evict(ctx, venueID)
}

// LayoutChanged rebuilds the mapping of a tracked venue in the background.
func (t *trackerImpl) LayoutChanged(ctx context.Context, venueID string) {
	t.Invalidate(ctx, venueID)

	if _, ok := t.Watching(venueID); !ok {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if _, err := t.refresh(c, venueID, true, metrics.TriggerLayout); err != nil {
			log.Error().Err(err).Str("venue_id", venueID).Msg("failed to refresh after layout change")
		}
	}()
}

func (t *trackerImpl) Watching(venueID string) (WatchState, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	w, ok := t.watchers[venueID]
	if !ok {
		return WatchUnsubscribed, false
	}

	return w.State(), true
}

func (t *trackerImpl) Close() {
	t.mu.Lock()
	watchers := t.watchers
	t.watchers = make(map[string]*watcher)
	t.closed = true
	t.mu.Unlock()

	for _, w := range watchers {
		w.stop()
	}

	t.store.CancelAll()
}

func (t *trackerImpl) watch(venueID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return failure.Unavailable("availability tracking is shutting down") // nolint:wrapcheck
	}

	if _, ok := t.watchers[venueID]; ok {
		return nil
	}

	w := newWatcher(venueID, t.debounce(), func(ctx context.Context) {
		if _, err := t.refresh(ctx, venueID, false, metrics.TriggerChange); err != nil {
			log.Error().Err(err).Str("venue_id", venueID).Msg("failed to refresh after booking change")
		}
	}, t.metrics)

	w.start(t.notifier.Subscribe)
	t.watchers[venueID] = w

	return nil
}

// refresh coalesces concurrent calls per venue and mode. The pipeline runs
// detached from the caller so a shared result is not cut short by one caller.
func (t *trackerImpl) refresh(ctx context.Context, venueID string, force bool, trigger string) (Snapshot, error) {
	key := venueID + ":derive"
	if force {
		key = venueID + ":reconcile"
	}

	result := t.flight.DoChan(key, func() (any, error) {
		return t.run(context.WithoutCancel(ctx), venueID, force, trigger)
	})

	select {
	case <-ctx.Done():
		return Snapshot{}, fmt.Errorf("refresh of venue %s: %w", venueID, ctx.Err())
	case res := <-result:
		snapshot, _ := res.Val.(Snapshot)

		return snapshot, res.Err
	}
}

// run retries until its own generation settles, or hands back the outcome of
// the run that superseded it. A forced run keeps going while the rebuild it
// asked for has not been committed.
func (t *trackerImpl) run(ctx context.Context, venueID string, force bool, trigger string) (Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, t.refreshTimeout())
	defer cancel()

	if force {
		t.store.RequestReconcile(venueID)
	}

	for {
		snapshot, err := t.attempt(ctx, venueID, trigger)
		if !errors.Is(err, errSuperseded) {
			return snapshot, err
		}

		if err = t.awaitSettled(ctx, venueID); err != nil {
			return snapshot, fmt.Errorf("refresh of venue %s: %w", venueID, err)
		}

		if !force || !t.store.ReconcilePending(venueID) {
			return t.settled(venueID)
		}
	}
}

func (t *trackerImpl) attempt(ctx context.Context, venueID, trigger string) (Snapshot, error) {
	generation, ctx, cancel := t.store.Dispatch(ctx, venueID)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return t.fail(venueID, generation, trigger, err)
	}

	log := logger.ForVenue(venueID)

	current, _ := t.store.Get(venueID)
	mapping := current.Mapping

	if t.store.ReconcilePending(venueID) || !current.HasMapping() {
		result, err := t.reconciler.Reconcile(ctx, venueID)
		if err != nil {
			return t.fail(venueID, generation, trigger, err)
		}

		if !t.store.CommitMapping(venueID, generation, result) {
			return t.stale(trigger)
		}

		mapping = result.Mapping
	}

	derivation, err := t.availability.Derive(ctx, venueID, mapping)
	if err != nil {
		return t.fail(venueID, generation, trigger, err)
	}

	if !t.store.CommitAvailability(venueID, generation, derivation) {
		return t.stale(trigger)
	}

	t.metrics.AvailabilityRefreshes.WithLabelValues(trigger, metrics.ResultSuccess).Inc()

	snapshot, _ := t.store.Get(venueID)

	log.Debug().
		Str("trigger", trigger).
		Uint64("generation", generation).
		Int("entries", len(snapshot.Availability)).
		Msg("availability refreshed")

	t.mirror(ctx, snapshot)

	return snapshot, nil
}

func (t *trackerImpl) fail(venueID string, generation uint64, trigger string, err error) (Snapshot, error) {
	if !t.store.Fail(venueID, generation, err) {
		return t.stale(trigger)
	}

	t.metrics.AvailabilityRefreshes.WithLabelValues(trigger, metrics.ResultError).Inc()

	log := logger.ForVenue(venueID)
	log.Error().Err(err).Str("trigger", trigger).Msg("availability refresh failed, keeping previous entries")

	snapshot, _ := t.store.Get(venueID)

	return snapshot, fmt.Errorf("failed to refresh availability: %w", err)
}

func (t *trackerImpl) stale(trigger string) (Snapshot, error) {
	t.metrics.AvailabilityRefreshes.WithLabelValues(trigger, metrics.ResultStale).Inc()

	return Snapshot{}, errSuperseded
}

// awaitSettled blocks until no run of the venue is in flight.
func (t *trackerImpl) awaitSettled(ctx context.Context, venueID string) error {
	for {
		settled := t.store.Settled(venueID)

		select {
		case <-settled:
			return nil
		default:
		}

		select {
		case <-settled:
		case <-ctx.Done():
			return ctx.Err() //nolint:wrapcheck
		case <-t.store.Done():
			return errClosed
		}
	}
}

// settled reports the outcome committed by whichever run finished last.
func (t *trackerImpl) settled(venueID string) (Snapshot, error) {
	snapshot, ok := t.store.Get(venueID)
	if !ok {
		return snapshot, failure.NotFound("venue is not tracked") // nolint:wrapcheck
	}

	if snapshot.State == StateError {
		return snapshot, fmt.Errorf("failed to refresh availability: %s", snapshot.Error)
	}

	return snapshot, nil
}

// mirror copies the snapshot to Redis. If the venue moved on while saving, the
// copy is removed again so an evict cannot be undone by a late save.
func (t *trackerImpl) mirror(ctx context.Context, snapshot Snapshot) {
	ttl := t.cfg.Availability.SnapshotTTLSeconds
	if ttl <= 0 {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)
		key := shared.BuildCacheKey(cacheSnapshot, snapshot.VenueID)

		if err := t.cache.Save(c, key, snapshot, ttl); err != nil {
			log.Error().Err(err).Msg("failed to mirror availability snapshot")

			return
		}

		if latest, ok := t.store.Latest(snapshot.VenueID); !ok || latest != snapshot.Generation {
			t.evict(c, snapshot.VenueID)
		}
	}()
}

func (t *trackerImpl) evict(ctx context.Context, venueID string) {
	if err := t.cache.Delete(context.WithoutCancel(ctx), shared.BuildCacheKey(cacheSnapshot, venueID)); err != nil {
		log.Error().Err(err).Str("venue_id", venueID).Msg("failed to evict availability snapshot")
	}
}

func (t *trackerImpl) debounce() time.Duration {
	if t.cfg.Availability.DebounceMillis <= 0 {
		return defaultDebounce
	}

	return time.Duration(t.cfg.Availability.DebounceMillis) * time.Millisecond
}

func (t *trackerImpl) refreshTimeout() time.Duration {
	if t.cfg.Availability.RefreshTimeoutSec <= 0 {
		return defaultRefreshTimeout
	}

	return time.Duration(t.cfg.Availability.RefreshTimeoutSec) * time.Second
}
