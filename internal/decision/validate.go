package decision

import (
	"fmt"

	dErrors "custos/pkg/domain-errors"
)

// Result is the outcome of a structural validation pass. Shape and range
// problems are reported here, never as a returned Go error; only the
// lifecycle transition functions fail with errors, and only for illegal
// transitions.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// statusTransitions is the single source of truth for the lifecycle graph.
// Any edge not listed here is illegal, including self-loops.
var statusTransitions = map[Status][]Status{
	StatusDraft:         {StatusPendingReview},
	StatusPendingReview: {StatusApproved, StatusRejected},
	StatusApproved:      {StatusRevoked},
	StatusRejected:      {},
	StatusRevoked:       {},
}

// CanTransition reports whether the lifecycle graph permits from → to.
func CanTransition(from, to Status) bool {
	for _, legal := range statusTransitions[from] {
		if legal == to {
			return true
		}
	}
	return false
}

// ValidateStatusTransition returns a coded error carrying the illegal edge
// when the lifecycle graph forbids from → to.
func ValidateStatusTransition(from, to Status) error {
	if !CanTransition(from, to) {
		return dErrors.Newf(dErrors.CodeInvariantViolation,
			"illegal status transition %s → %s", from, to)
	}
	return nil
}

// ValidateFrame runs every structural check for a decision frame and
// reports all failures at once.
func ValidateFrame(frame Frame) Result {
	var errs []string

	if frame.ID.IsNil() {
		errs = append(errs, "id is required")
	}
	if frame.Objective == "" {
		errs = append(errs, "objective is required")
	}
	if frame.Recommendation == "" {
		errs = append(errs, "recommendation is required")
	}
	if frame.EvidenceReportID.IsNil() {
		errs = append(errs, "evidence_report_id is required")
	}
	if !frame.Tier.IsValid() {
		errs = append(errs, fmt.Sprintf("evidence_tier must be one of tier_1, tier_2, tier_3; got %q", frame.Tier))
	}
	if frame.ConfidenceScore < 0 || frame.ConfidenceScore > 100 {
		errs = append(errs, fmt.Sprintf("confidence_score must be in [0,100], got %d", frame.ConfidenceScore))
	}
	if !frame.Risk.IsValid() {
		errs = append(errs, fmt.Sprintf("risk_level must be one of low, medium, high; got %q", frame.Risk))
	}
	if frame.AllowedActions == nil {
		errs = append(errs, "allowed_actions must be a list")
	}
	if frame.BlockedActions == nil {
		errs = append(errs, "blocked_actions must be a list")
	}
	if !frame.Class.IsValid() {
		errs = append(errs, fmt.Sprintf("action_class must be one of A, B, C; got %q", frame.Class))
	}
	if !frame.Route.IsValid() {
		errs = append(errs, fmt.Sprintf("approval_route %q is not valid", frame.Route))
	}
	if !frame.ApprovalState.IsValid() {
		errs = append(errs, fmt.Sprintf("approval_state %q is not valid", frame.ApprovalState))
	}
	if !frame.ApprovalRequired {
		errs = append(errs, "approval_required must be true")
	}
	if !frame.Status.IsValid() {
		errs = append(errs, fmt.Sprintf("status %q is not valid", frame.Status))
	}
	if frame.Status == StatusApproved {
		if frame.ApproverID == nil || frame.ApproverID.IsEmpty() {
			errs = append(errs, "approved frame requires approver_id")
		}
		if frame.ApprovalTimestamp == nil || frame.ApprovalTimestamp.IsZero() {
			errs = append(errs, "approved frame requires approval_timestamp")
		}
	}
	if frame.CreatedAt.IsZero() {
		errs = append(errs, "created_at is required")
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}
