package audit

import (
	"log/slog"
	"sync"
	"time"

	dErrors "custos/pkg/domain-errors"
	"custos/pkg/platform/audit/metrics"
)

// AppendParams carries everything needed to commit one audit event. The
// snapshots are arbitrary serializable values; the log fingerprints them
// and discards the originals.
type AppendParams struct {
	Type           EventType
	Actor          Actor
	Related        EntityRef
	SnapshotBefore any
	SnapshotAfter  any
	Notes          string
}

// Log is the append-only, hash-chained audit log. It is the single
// authority over event ordering and chain continuity for the process that
// owns it.
//
// Appends are serialized by an internal mutex: the chain link depends on
// reading the previous event's AfterHash and atomically appending the next
// event, so a read-then-append race would let two events chain from the
// same predecessor and silently fork the history.
type Log struct {
	mu     sync.Mutex
	events []Event
	nextID int64

	now     func() time.Time
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures a Log.
type Option func(*Log)

// WithClock overrides the timestamp source. Tests use this to make event
// timestamps deterministic.
func WithClock(now func() time.Time) Option {
	return func(l *Log) {
		l.now = now
	}
}

// WithLogger attaches a structured logger for append diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Log) {
		l.logger = logger
	}
}

// WithMetrics attaches prometheus metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Log) {
		l.metrics = m
	}
}

// New constructs an empty audit log.
func New(opts ...Option) *Log {
	l := &Log{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Append fingerprints both snapshots and commits a new event.
//
// When a prior event exists, BeforeHash is overridden to equal the previous
// event's AfterHash rather than the hash of the caller-supplied before
// snapshot. This is the mechanism that makes the log tamper-evident: every
// event's BeforeHash is provably "whatever followed last time", independent
// of what the caller claims.
//
// Append is never a no-op and never deduplicates: committing the same
// logical event twice produces two distinct entries whose chain still
// verifies.
func (l *Log) Append(params AppendParams) (Event, error) {
	if params.Type == "" {
		return Event{}, dErrors.New(dErrors.CodeValidation, "event_type is required")
	}
	if !params.Actor.Kind.IsValid() {
		return Event{}, dErrors.Newf(dErrors.CodeValidation, "invalid actor kind %q", params.Actor.Kind)
	}

	// Fingerprinting is pure, so it happens outside the lock; the chain
	// override below happens under it.
	beforeHash, err := Fingerprint(params.SnapshotBefore)
	if err != nil {
		return Event{}, err
	}
	afterHash, err := Fingerprint(params.SnapshotAfter)
	if err != nil {
		return Event{}, err
	}

	l.mu.Lock()
	if n := len(l.events); n > 0 {
		beforeHash = l.events[n-1].AfterHash
	}
	l.nextID++
	event := Event{
		ID:         l.nextID,
		Type:       params.Type,
		Actor:      params.Actor,
		Related:    params.Related,
		BeforeHash: beforeHash,
		AfterHash:  afterHash,
		Timestamp:  l.now(),
		Notes:      params.Notes,
	}
	l.events = append(l.events, event)
	l.mu.Unlock()

	if l.metrics != nil {
		l.metrics.IncAppended(string(event.Type))
	}
	if l.logger != nil {
		l.logger.Debug("audit event committed",
			"event_id", event.ID,
			"event_type", event.Type,
			"related_kind", event.Related.Kind,
			"related_id", event.Related.ID,
		)
	}

	return event, nil
}

// Events returns a defensive copy of the full ordered event sequence.
func (l *Log) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Event(nil), l.events...)
}

// EventsByType returns the events with the given type, in commit order.
func (l *Log) EventsByType(t EventType) []Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	var matched []Event
	for _, e := range l.events {
		if e.Type == t {
			matched = append(matched, e)
		}
	}
	return matched
}

// EventsByRelated returns the events referencing the given entity, in
// commit order.
func (l *Log) EventsByRelated(kind, id string) []Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	var matched []Event
	for _, e := range l.events {
		if e.Related.Kind == kind && e.Related.ID == id {
			matched = append(matched, e)
		}
	}
	return matched
}

// VerifyChain reports whether every adjacent pair of events links
// correctly: the later event's BeforeHash must equal the earlier event's
// AfterHash. An empty log is trivially valid.
func (l *Log) VerifyChain() bool {
	l.mu.Lock()
	ok := true
	for i := 1; i < len(l.events); i++ {
		if l.events[i].BeforeHash != l.events[i-1].AfterHash {
			ok = false
			break
		}
	}
	l.mu.Unlock()

	if l.metrics != nil {
		l.metrics.ObserveVerification(ok)
	}
	return ok
}

// Len returns the number of committed events.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}
