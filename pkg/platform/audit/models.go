// Package audit implements the tamper-evident system of record: a
// hash-chained, append-only sequence of governance events plus the
// fingerprint function that anchors each event to entity snapshots.
//
// The log is an explicit instance handed to whichever component needs to
// append or query; there is no ambient process-wide singleton, so the
// single-writer discipline is enforceable and testable in isolation.
package audit

import (
	"time"
)

// EventType tags an audit event with the governance action it records.
// The type is a free-form tag; the constants below cover every mutation
// the kernel itself commits.
type EventType string

const (
	EventReportCreated  EventType = "report_created"
	EventFrameCreated   EventType = "frame_created"
	EventFrameSubmitted EventType = "frame_submitted"
	EventFrameApproved  EventType = "frame_approved"
	EventFrameRejected  EventType = "frame_rejected"
	EventFrameRevoked   EventType = "frame_revoked"
)

// ActorKind classifies who (or what) performed the recorded action.
type ActorKind string

const (
	ActorHuman  ActorKind = "human"
	ActorSystem ActorKind = "system"
	ActorModel  ActorKind = "model"
)

// IsValid checks if the actor kind is one of the supported enum values.
func (k ActorKind) IsValid() bool {
	switch k {
	case ActorHuman, ActorSystem, ActorModel:
		return true
	}
	return false
}

// String returns the string representation.
func (k ActorKind) String() string {
	return string(k)
}

// Actor identifies who performed the recorded action. ID is optional: a
// system actor may have no individual identifier.
type Actor struct {
	Kind ActorKind `json:"kind"`
	ID   string    `json:"id,omitempty"`
}

// EntityRef points at the governance entity an event concerns.
type EntityRef struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

// Event is one immutable record in the audit log.
//
// Invariants:
//   - ID is assigned monotonically by the log and never reused
//   - BeforeHash of every event after the first equals the AfterHash of
//     its predecessor (the hash-chain link)
//   - events are never mutated or deleted after commit; the append-only
//     property is load-bearing for the tamper-evidence guarantee
type Event struct {
	ID         int64     `json:"id"`
	Type       EventType `json:"event_type"`
	Actor      Actor     `json:"actor"`
	Related    EntityRef `json:"related"`
	BeforeHash string    `json:"before_hash"`
	AfterHash  string    `json:"after_hash"`
	Timestamp  time.Time `json:"timestamp"`
	Notes      string    `json:"notes,omitempty"`
}
