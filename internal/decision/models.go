// Package decision implements the governance decision kernel: the
// confidence rubric, the binding action-class policy, the decision-frame
// lifecycle state machine, its validators, and the whole-frame governance
// checks.
//
// Every transition returns a new Frame value; the kernel never mutates a
// frame in place. Historical frame values therefore stay stable for audit
// purposes without any locking.
package decision

import (
	"time"

	"custos/internal/evidence"
	"custos/pkg/domain"
	dErrors "custos/pkg/domain-errors"
)

// Status is the lifecycle state of a decision frame.
//
// Graph: draft → pending_review → approved | rejected; approved → revoked.
// rejected and revoked are terminal.
type Status string

const (
	StatusDraft         Status = "draft"
	StatusPendingReview Status = "pending_review"
	StatusApproved      Status = "approved"
	StatusRejected      Status = "rejected"
	StatusRevoked       Status = "revoked"
)

var validStatuses = map[Status]bool{
	StatusDraft:         true,
	StatusPendingReview: true,
	StatusApproved:      true,
	StatusRejected:      true,
	StatusRevoked:       true,
}

// ParseStatus constructs a Status from external input.
func ParseStatus(s string) (Status, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "status cannot be empty")
	}
	st := Status(s)
	if !st.IsValid() {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "invalid status %q", s)
	}
	return st, nil
}

// IsValid checks if the status is one of the supported enum values.
func (s Status) IsValid() bool {
	return validStatuses[s]
}

// IsTerminalHumanAction reports whether the status was reached by a
// terminal human action and therefore requires an approver stamp.
func (s Status) IsTerminalHumanAction() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusRevoked
}

// String returns the string representation.
func (s Status) String() string {
	return string(s)
}

// RiskLevel is the coarse risk band derived from the confidence score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// IsValid checks if the risk level is one of the supported enum values.
func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// String returns the string representation.
func (r RiskLevel) String() string {
	return string(r)
}

// Impact is the caller-declared blast radius of the proposed action.
type Impact string

const (
	ImpactLow    Impact = "low"
	ImpactMedium Impact = "medium"
	ImpactHigh   Impact = "high"
)

// IsValid checks if the impact is one of the supported enum values.
func (i Impact) IsValid() bool {
	switch i {
	case ImpactLow, ImpactMedium, ImpactHigh:
		return true
	}
	return false
}

// String returns the string representation.
func (i Impact) String() string {
	return string(i)
}

// ActionClass is the binding governance class of a decision frame.
// A is log-only territory, B needs a single approval, C needs the full
// multi-gate route.
type ActionClass string

const (
	ClassA ActionClass = "A"
	ClassB ActionClass = "B"
	ClassC ActionClass = "C"
)

// IsValid checks if the action class is one of the supported enum values.
func (c ActionClass) IsValid() bool {
	switch c {
	case ClassA, ClassB, ClassC:
		return true
	}
	return false
}

// String returns the string representation.
func (c ActionClass) String() string {
	return string(c)
}

// ApprovalRoute is the mandated approval path for an action class.
type ApprovalRoute string

const (
	RouteLogAndLearn    ApprovalRoute = "log_and_learn"
	RouteSingleApproval ApprovalRoute = "single_approval"
	RouteMultiGate      ApprovalRoute = "multi_gate"
)

// IsValid checks if the approval route is one of the supported enum values.
func (r ApprovalRoute) IsValid() bool {
	switch r {
	case RouteLogAndLearn, RouteSingleApproval, RouteMultiGate:
		return true
	}
	return false
}

// String returns the string representation.
func (r ApprovalRoute) String() string {
	return string(r)
}

// ApprovalState tracks where a frame sits on its approval route.
type ApprovalState string

const (
	ApprovalLogOnly           ApprovalState = "log_only"
	ApprovalDrafted           ApprovalState = "drafted"
	ApprovalAwaitingSingle    ApprovalState = "awaiting_single_approval"
	ApprovalAwaitingMultiGate ApprovalState = "awaiting_multi_gate"
	ApprovalApproved          ApprovalState = "approved"
	ApprovalBlocked           ApprovalState = "blocked"
	ApprovalRejected          ApprovalState = "rejected"
)

var validApprovalStates = map[ApprovalState]bool{
	ApprovalLogOnly:           true,
	ApprovalDrafted:           true,
	ApprovalAwaitingSingle:    true,
	ApprovalAwaitingMultiGate: true,
	ApprovalApproved:          true,
	ApprovalBlocked:           true,
	ApprovalRejected:          true,
}

// IsValid checks if the approval state is one of the supported enum values.
func (s ApprovalState) IsValid() bool {
	return validApprovalStates[s]
}

// String returns the string representation.
func (s ApprovalState) String() string {
	return string(s)
}

// Frame is a decision frame: a proposed action bound to its evidence, its
// governance classification, and its approval lifecycle.
//
// Invariants:
//   - ApprovalRequired is always true; a frame that claims otherwise fails
//     validation and the no-silent-execution check
//   - a frame with status approved, rejected, or revoked carries both
//     ApproverID and ApprovalTimestamp
//   - frames are created in draft by NewFrame and only change through the
//     lifecycle transition functions, each of which returns a new value
type Frame struct {
	ID                domain.FrameID          `json:"id"`
	Objective         string                  `json:"objective"`
	Recommendation    string                  `json:"recommendation"`
	EvidenceReportID  domain.EvidenceReportID `json:"evidence_report_id"`
	Tier              evidence.Tier           `json:"evidence_tier"`
	ConfidenceScore   int                     `json:"confidence_score"`
	Risk              RiskLevel               `json:"risk_level"`
	AllowedActions    []string                `json:"allowed_actions"`
	BlockedActions    []string                `json:"blocked_actions"`
	Class             ActionClass             `json:"action_class"`
	Route             ApprovalRoute           `json:"approval_route"`
	ApprovalState     ApprovalState           `json:"approval_state"`
	ApprovalRequired  bool                    `json:"approval_required"`
	Status            Status                  `json:"status"`
	ApproverID        *domain.ActorID         `json:"approver_id,omitempty"`
	ApprovalTimestamp *time.Time              `json:"approval_timestamp,omitempty"`
	CreatedAt         time.Time               `json:"created_at"`
}

// clone returns a value copy of the frame with its own backing slices, so
// a transition can never alias the input frame's action lists.
func (f Frame) clone() Frame {
	next := f
	next.AllowedActions = append([]string(nil), f.AllowedActions...)
	next.BlockedActions = append([]string(nil), f.BlockedActions...)
	if f.ApproverID != nil {
		approver := *f.ApproverID
		next.ApproverID = &approver
	}
	if f.ApprovalTimestamp != nil {
		ts := *f.ApprovalTimestamp
		next.ApprovalTimestamp = &ts
	}
	return next
}
