package tracker

import (
	"context"
	"maps"
	"studyhall/infras/metrics"
	"studyhall/internal/domains/availability"
	"studyhall/internal/domains/reconciler"
	"studyhall/shared/timezone"
	"sync"
	"time"
)

type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateEmpty   State = "empty"
	StateError   State = "error"
)

type CabinRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Snapshot is the last committed view of a venue.
type Snapshot struct {
	VenueID          string                        `json:"venue_id"`
	State            State                         `json:"state"`
	Mapping          reconciler.Mapping            `json:"mapping"`
	Availability     map[string]availability.Entry `json:"availability"`
	Summary          availability.Summary          `json:"summary"`
	UnmappedLogical  []CabinRef                    `json:"unmapped_logical"`
	UnmappedPhysical []CabinRef                    `json:"unmapped_physical"`
	Error            string                        `json:"error,omitempty"`
	Generation       uint64                        `json:"generation"`
	MappedAt         time.Time                     `json:"mapped_at,omitzero"`
	RefreshedAt      time.Time                     `json:"refreshed_at,omitzero"`
}

// HasMapping is false until a reconciliation commits, and again after Invalidate.
func (s Snapshot) HasMapping() bool {
	return s.Mapping != nil
}

func (s Snapshot) clone() Snapshot {
	s.Mapping = maps.Clone(s.Mapping)
	s.Availability = maps.Clone(s.Availability)
	s.UnmappedLogical = append([]CabinRef(nil), s.UnmappedLogical...)
	s.UnmappedPhysical = append([]CabinRef(nil), s.UnmappedPhysical...)

	return s
}

type venueState struct {
	snapshot Snapshot
	latest   uint64
	cancel   context.CancelFunc
	// settled is closed once the latest generation commits, fails or is dropped.
	settled chan struct{}
	// reconcilePending survives cancellation and is cleared only by a committed mapping.
	reconcilePending bool
}

// Store keeps one snapshot per venue. Every refresh dispatches a generation and
// only the latest dispatched generation may commit.
type Store struct {
	mu      sync.Mutex
	venues  map[string]*venueState
	metrics *metrics.Metrics
	closed  bool
	done    chan struct{}
}

func NewStore(metrics *metrics.Metrics) *Store {
	return &Store{
		venues:  make(map[string]*venueState),
		metrics: metrics,
		done:    make(chan struct{}),
	}
}

func (s *Store) Get(venueID string) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	venue, ok := s.venues[venueID]
	if !ok {
		return Snapshot{}, false
	}

	return venue.snapshot.clone(), true
}

// Dispatch starts a new generation for the venue and cancels the one in flight.
// The returned cancel must be called when the caller is done.
func (s *Store) Dispatch(ctx context.Context, venueID string) (uint64, context.Context, context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	venue := s.venue(venueID)

	if venue.cancel != nil {
		venue.cancel()
	}

	settle(venue)

	venue.latest++
	venue.settled = make(chan struct{})

	ctx, cancel := context.WithCancel(ctx)
	venue.cancel = cancel

	if s.closed {
		cancel()
	}

	if venue.snapshot.Availability == nil {
		venue.snapshot.State = StateLoading
	}

	return venue.latest, ctx, cancel
}

func (s *Store) CommitMapping(venueID string, generation uint64, result reconciler.Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	venue, ok := s.current(venueID, generation)
	if !ok {
		return false
	}

	venue.snapshot.Mapping = maps.Clone(result.Mapping)
	if venue.snapshot.Mapping == nil {
		venue.snapshot.Mapping = reconciler.Mapping{}
	}

	venue.snapshot.UnmappedLogical = make([]CabinRef, len(result.UnmappedLogical))
	for i, cabin := range result.UnmappedLogical {
		venue.snapshot.UnmappedLogical[i] = CabinRef{ID: cabin.ID, Name: cabin.Name}
	}

	venue.snapshot.UnmappedPhysical = make([]CabinRef, len(result.UnmappedPhysical))
	for i, cabin := range result.UnmappedPhysical {
		venue.snapshot.UnmappedPhysical[i] = CabinRef{ID: cabin.ID, Name: cabin.CabinName}
	}

	venue.snapshot.Generation = generation
	venue.snapshot.MappedAt = timezone.Now()
	venue.reconcilePending = false

	return true
}

func (s *Store) CommitAvailability(venueID string, generation uint64, derivation availability.Derivation) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	venue, ok := s.current(venueID, generation)
	if !ok {
		return false
	}

	venue.snapshot.Availability = maps.Clone(derivation.Entries)
	if venue.snapshot.Availability == nil {
		venue.snapshot.Availability = map[string]availability.Entry{}
	}

	venue.snapshot.Summary = derivation.Summary
	venue.snapshot.Error = ""
	venue.snapshot.Generation = generation
	venue.snapshot.RefreshedAt = timezone.Now()

	venue.snapshot.State = StateReady
	if len(derivation.Entries) == 0 {
		venue.snapshot.State = StateEmpty
	}

	settle(venue)

	return true
}

// Fail records err and keeps whatever availability was committed before.
func (s *Store) Fail(venueID string, generation uint64, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	venue, ok := s.current(venueID, generation)
	if !ok {
		return false
	}

	venue.snapshot.State = StateError
	venue.snapshot.Error = err.Error()
	venue.snapshot.Generation = generation

	settle(venue)

	return true
}

// Invalidate drops the mapping so the next refresh reconciles again. Work in
// flight is cancelled and can no longer commit.
func (s *Store) Invalidate(venueID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	venue, ok := s.venues[venueID]
	if !ok {
		return
	}

	if venue.cancel != nil {
		venue.cancel()
		venue.cancel = nil
	}

	settle(venue)

	venue.latest++
	venue.snapshot.Mapping = nil
	venue.snapshot.MappedAt = time.Time{}
}

func (s *Store) Delete(venueID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	venue, ok := s.venues[venueID]
	if !ok {
		return
	}

	if venue.cancel != nil {
		venue.cancel()
	}

	settle(venue)
	delete(s.venues, venueID)
}

// RequestReconcile marks the venue so that the next run rebuilds its mapping,
// even if the run that asked for it is superseded.
func (s *Store) RequestReconcile(venueID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.venue(venueID).reconcilePending = true
}

func (s *Store) ReconcilePending(venueID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	venue, ok := s.venues[venueID]

	return ok && venue.reconcilePending
}

// Latest is the newest generation dispatched for the venue.
func (s *Store) Latest(venueID string) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	venue, ok := s.venues[venueID]
	if !ok {
		return 0, false
	}

	return venue.latest, true
}

// Settled is closed when no run of the venue is in flight, or when a newer one
// replaces it; callers re-check after it fires.
func (s *Store) Settled(venueID string) <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	if venue, ok := s.venues[venueID]; ok && venue.settled != nil {
		return venue.settled
	}

	ready := make(chan struct{})
	close(ready)

	return ready
}

// CancelAll stops every run in flight. Later dispatches start out cancelled.
func (s *Store) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.closed = true
	close(s.done)

	for _, venue := range s.venues {
		if venue.cancel != nil {
			venue.cancel()
		}
	}
}

// Done is closed by CancelAll.
func (s *Store) Done() <-chan struct{} {
	return s.done
}

func settle(venue *venueState) {
	if venue.settled != nil {
		close(venue.settled)
		venue.settled = nil
	}
}

func (s *Store) venue(venueID string) *venueState {
	venue, ok := s.venues[venueID]
	if !ok {
		venue = &venueState{snapshot: Snapshot{VenueID: venueID, State: StateLoading}}
		s.venues[venueID] = venue
	}

	return venue
}

func (s *Store) current(venueID string, generation uint64) (*venueState, bool) {
	venue, ok := s.venues[venueID]
	if !ok || generation != venue.latest {
		s.metrics.StaleCommits.Inc()

		return nil, false
	}

	return venue, true
}
