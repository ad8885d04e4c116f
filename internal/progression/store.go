package progression

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Recorder receives store activity for metrics. Implementations must be
// safe for concurrent use.
type Recorder interface {
	EventApplied(category Category)
	EventDuplicate()
	EventRejected()
	XP(total int)
}

// Store is the single authoritative owner of a progression State. Writers
// serialize on a mutex; readers only ever see whole snapshots.
type Store struct {
	mu    sync.Mutex
	state State

	logger   zerolog.Logger
	clock    func() time.Time
	recorder Recorder

	subMu  sync.Mutex
	subs   map[int]func(State)
	nextID int
	closed bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store's logger. The default discards output.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock overrides the time source used for timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) { s.clock = clock }
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Store) { s.recorder = r }
}

// NewStore creates a store owning a copy of initial. Build initial with
// NewState so the seed XP is recorded.
func NewStore(initial State, opts ...Option) *Store {
	s := &Store{
		state:  initial.Clone(),
		logger: zerolog.Nop(),
		clock:  time.Now,
		subs:   make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.state.ActionHistory == nil {
		s.state.ActionHistory = make(map[string]AppliedEvent)
	}
	refreshLevel(&s.state)
	if s.recorder != nil {
		s.recorder.XP(s.state.XP)
	}
	return s
}

// ErrClosed is returned by Apply after Close.
var ErrClosed = errors.New("progression store closed")

// Apply folds one event into the store and returns the resulting snapshot.
// Duplicates are absorbed without error.
func (s *Store) Apply(e Event) (State, error) {
	snap, _, err := s.ApplyOutcome(e)
	return snap, err
}

// ApplyOutcome is Apply that also reports what the event changed.
func (s *Store) ApplyOutcome(e Event) (State, Outcome, error) {
	s.mu.Lock()
	if s.isClosed() {
		snap := s.state.Clone()
		s.mu.Unlock()
		return snap, Outcome{EventID: e.ID}, ErrClosed
	}

	next, out, err := Apply(s.state, e, s.clock())
	if err != nil {
		snap := s.state.Clone()
		s.mu.Unlock()
		s.logger.Warn().Err(err).Str("event_id", e.ID).Msg("rejected contribution event")
		if s.recorder != nil {
			s.recorder.EventRejected()
		}
		return snap, out, err
	}

	if out.Duplicate {
		snap := s.state.Clone()
		s.mu.Unlock()
		s.logger.Info().Str("event_id", e.ID).Msg("duplicate contribution event ignored")
		if s.recorder != nil {
			s.recorder.EventDuplicate()
		}
		return snap, out, nil
	}

	s.state = next
	snap := next.Clone()
	if s.recorder != nil {
		// Under the lock so the gauge never goes backwards.
		s.recorder.XP(snap.XP)
	}
	s.mu.Unlock()

	s.logApplied(e, out, snap)
	if s.recorder != nil {
		s.recorder.EventApplied(e.Category)
	}
	s.notify(snap)
	return snap, out, nil
}

// ApplyAll applies events in order. It does not stop at failures; the
// returned slice holds one entry per event (nil on success).
func (s *Store) ApplyAll(events []Event) (State, []error) {
	errs := make([]error, len(events))
	for i, e := range events {
		_, errs[i] = s.Apply(e)
	}
	return s.Snapshot(), errs
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe registers fn to receive every new snapshot after an event is
// applied. Duplicates and rejections do not notify. With concurrent writers
// snapshots may arrive out of order; State.Revision increases with every
// applied event so fn can skip stale ones. The returned function removes
// the subscription.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	if s.closed {
		return func() {}
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// Close drops all subscribers. Once Close returns no further event is
// committed: later Apply calls fail with ErrClosed. Snapshot keeps working.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.closed = true
	s.subs = make(map[int]func(State))
}

func (s *Store) isClosed() bool {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	return s.closed
}

func (s *Store) notify(snap State) {
	s.subMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap.Clone())
	}
}

func (s *Store) logApplied(e Event, out Outcome, snap State) {
	s.logger.Debug().
		Str("event_id", e.ID).
		Str("category", string(e.Category)).
		Int("xp_gained", out.XPGained).
		Int("xp", snap.XP).
		Str("level", string(snap.Level)).
		Msg("applied contribution event")

	if out.LevelUp {
		s.logger.Info().
			Str("event_id", e.ID).
			Str("from", string(out.PreviousLevel)).
			Str("to", string(out.Level)).
			Int("xp", snap.XP).
			Msg("level up")
	}
	if out.BadgeAwarded != "" {
		s.logger.Info().Str("event_id", e.ID).Str("badge", out.BadgeAwarded).Msg("badge awarded")
	}
}
