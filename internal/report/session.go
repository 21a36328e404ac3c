package report

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/FLFTraining/TLC-Dashboard/internal/dataset"
)

var (
	// ErrNotReady is returned by operations that need a loaded dataset.
	ErrNotReady = errors.New("report session is not ready")
	// ErrAlreadyLoaded is returned when Load is called twice.
	ErrAlreadyLoaded = errors.New("report session already loaded")
)

// State is the lifecycle state of a Session.
type State int

const (
	StateLoading State = iota
	StateReady
)

// String returns the state name.
func (s State) String() string {
	if s == StateReady {
		return "ready"
	}
	return "loading"
}

// Snapshot is the filtered row set and the views computed from it. A
// snapshot is never modified after it is published.
type Snapshot struct {
	// Generation increases by one with every recomputation.
	Generation int       `json:"generation"`
	Criteria   Criteria  `json:"criteria"`
	ComputedAt time.Time `json:"computed_at"`

	Rows  []dataset.Record `json:"-"`
	Views Views            `json:"views"`
}

// Session holds the full dataset of one report run and the active filtered
// snapshot. ApplyFilter and Reset are its only mutators.
type Session struct {
	id  uuid.UUID
	agg Aggregator
	log zerolog.Logger
	now func() time.Time

	mu      sync.RWMutex
	state   State
	full    []dataset.Record
	current *Snapshot
}

// Option configures a Session.
type Option func(*Session)

// WithAggregator sets the aggregator used for every recomputation.
func WithAggregator(a Aggregator) Option {
	return func(s *Session) {
		s.agg = a
	}
}

// WithLogger sets the logger. Sessions log nothing by default.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// WithClock overrides the time source stamped on snapshots.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// NewSession creates a session in the Loading state.
func NewSession(opts ...Option) *Session {
	s := &Session{
		id:  uuid.New(),
		agg: NewAggregator(),
		log: zerolog.Nop(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With().Str("session", s.id.String()).Logger()
	return s
}

// ID returns the session identifier used in log lines.
func (s *Session) ID() string {
	return s.id.String()
}

// State returns the lifecycle state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Load stores the full dataset and publishes the unfiltered snapshot. The
// records are copied; the session's dataset never changes afterwards.
func (s *Session) Load(records []dataset.Record) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateReady {
		return nil, ErrAlreadyLoaded
	}
	s.full = cloneRecords(records)
	s.state = StateReady
	s.log.Info().Int("rows", len(s.full)).Msg("dataset loaded")

	return s.publish(Criteria{}), nil
}

// ApplyFilter replaces the snapshot with one computed from the full dataset
// narrowed by c. Criteria are never combined with the previous filter.
func (s *Session) ApplyFilter(c Criteria) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReady {
		return nil, ErrNotReady
	}
	return s.publish(c), nil
}

// Reset replaces the snapshot with the unfiltered one.
func (s *Session) Reset() (*Snapshot, error) {
	return s.ApplyFilter(Criteria{})
}

// Snapshot returns the current snapshot.
func (s *Session) Snapshot() (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != StateReady {
		return nil, ErrNotReady
	}
	return s.current, nil
}

// Full returns a deep copy of the full dataset.
func (s *Session) Full() []dataset.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRecords(s.full)
}

// Departments returns the department choices of the full dataset.
func (s *Session) Departments() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return DepartmentNames(s.full)
}

// cloneRecords deep-copies records so no score pointer is shared.
func cloneRecords(records []dataset.Record) []dataset.Record {
	out := make([]dataset.Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}

// publish computes and installs a new snapshot. Callers hold s.mu.
func (s *Session) publish(c Criteria) *Snapshot {
	start := time.Now()

	var rows []dataset.Record
	if c.IsZero() {
		rows = cloneRecords(s.full)
	} else {
		rows = cloneRecords(Filter(s.full, c))
	}

	generation := 1
	if s.current != nil {
		generation = s.current.Generation + 1
	}

	snap := &Snapshot{
		Generation: generation,
		Criteria:   c,
		ComputedAt: s.now(),
		Rows:       rows,
		Views:      s.agg.Aggregate(rows),
	}
	s.current = snap

	s.log.Debug().
		Int("generation", generation).
		Str("criteria", c.String()).
		Int("rows", len(s.full)).
		Int("visible", len(rows)).
		Dur("took", time.Since(start)).
		Msg("views recomputed")

	return snap
}
