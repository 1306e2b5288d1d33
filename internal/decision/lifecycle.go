package decision

import (
	"strings"
	"time"

	"custos/internal/evidence"
	"custos/pkg/domain"
	dErrors "custos/pkg/domain-errors"
)

// FrameSpec carries the caller-supplied fields for a new decision frame.
//
// Reversible is a caller responsibility: the kernel never defaults it to
// true, because the irreversibility escalation in Classify is only as good
// as the value threaded in here. Impact may be left empty, in which case it
// is derived from the risk level of the confidence score.
type FrameSpec struct {
	EvidenceReportID domain.EvidenceReportID
	ConfidenceScore  int
	Tier             evidence.Tier
	Objective        string
	Recommendation   string
	Reversible       bool
	Impact           Impact
}

// NewFrame validates the spec, derives risk level, allowed/blocked actions,
// and the binding classification, and constructs a frame in draft status.
// ApprovalRequired is always true.
//
// Errors: CodeValidation when a field fails its shape or range check.
func NewFrame(spec FrameSpec, now time.Time) (Frame, error) {
	if spec.EvidenceReportID.IsNil() {
		return Frame{}, dErrors.New(dErrors.CodeValidation, "evidence_report_id is required")
	}
	if strings.TrimSpace(spec.Objective) == "" {
		return Frame{}, dErrors.New(dErrors.CodeValidation, "objective is required")
	}
	if strings.TrimSpace(spec.Recommendation) == "" {
		return Frame{}, dErrors.New(dErrors.CodeValidation, "recommendation is required")
	}
	if spec.ConfidenceScore < 0 || spec.ConfidenceScore > 100 {
		return Frame{}, dErrors.Newf(dErrors.CodeValidation,
			"confidence_score must be in [0,100], got %d", spec.ConfidenceScore)
	}
	if !spec.Tier.IsValid() {
		return Frame{}, dErrors.Newf(dErrors.CodeValidation, "invalid evidence_tier %q", spec.Tier)
	}

	risk := RiskFor(spec.ConfidenceScore)

	impact := spec.Impact
	if impact == "" {
		impact = Impact(risk)
	}
	if !impact.IsValid() {
		return Frame{}, dErrors.Newf(dErrors.CodeValidation, "invalid impact %q", spec.Impact)
	}

	rubric := RubricFor(spec.ConfidenceScore)
	classification := Classify(spec.ConfidenceScore, spec.Tier, spec.Reversible, impact)

	return Frame{
		ID:               domain.NewFrameID(),
		Objective:        spec.Objective,
		Recommendation:   spec.Recommendation,
		EvidenceReportID: spec.EvidenceReportID,
		Tier:             spec.Tier,
		ConfidenceScore:  spec.ConfidenceScore,
		Risk:             risk,
		AllowedActions:   rubric.Allowed,
		BlockedActions:   rubric.Blocked,
		Class:            classification.Class,
		Route:            classification.Route,
		ApprovalState:    classification.State,
		ApprovalRequired: true,
		Status:           StatusDraft,
		CreatedAt:        now,
	}, nil
}

// SubmitForReview moves a draft frame into pending_review and re-derives
// its approval state. Legal only from draft.
//
// Errors: CodeInvariantViolation on an illegal transition; these are
// programmer errors, not recoverable business conditions.
func SubmitForReview(frame Frame) (Frame, error) {
	if err := ValidateStatusTransition(frame.Status, StatusPendingReview); err != nil {
		return Frame{}, err
	}

	next := frame.clone()
	next.Status = StatusPendingReview
	next.ApprovalState = AdvanceApprovalState(next.Class, next.Status)
	return next, nil
}

// Approve records a human approval. Legal only from pending_review; stamps
// the approver and the approval instant.
func Approve(frame Frame, approver domain.ActorID, now time.Time) (Frame, error) {
	return resolveReview(frame, StatusApproved, approver, now)
}

// Reject records a human rejection. Legal only from pending_review; the
// rejection is stamped with the same accountability as an approval.
func Reject(frame Frame, approver domain.ActorID, now time.Time) (Frame, error) {
	return resolveReview(frame, StatusRejected, approver, now)
}

// Revoke withdraws a previously granted approval. Legal only from
// approved. A revocation is a new terminal event: the approver and
// timestamp are re-stamped, never deleted.
func Revoke(frame Frame, approver domain.ActorID, now time.Time) (Frame, error) {
	if approver.IsEmpty() {
		return Frame{}, dErrors.New(dErrors.CodeValidation, "approver_id is required")
	}
	if err := ValidateStatusTransition(frame.Status, StatusRevoked); err != nil {
		return Frame{}, err
	}

	next := frame.clone()
	next.Status = StatusRevoked
	next.ApprovalState = ApprovalBlocked
	next.ApproverID = &approver
	ts := now
	next.ApprovalTimestamp = &ts
	return next, nil
}

// resolveReview applies the shared approve/reject mechanics.
func resolveReview(frame Frame, to Status, approver domain.ActorID, now time.Time) (Frame, error) {
	if approver.IsEmpty() {
		return Frame{}, dErrors.New(dErrors.CodeValidation, "approver_id is required")
	}
	if err := ValidateStatusTransition(frame.Status, to); err != nil {
		return Frame{}, err
	}

	next := frame.clone()
	next.Status = to
	next.ApprovalState = AdvanceApprovalState(next.Class, to)
	next.ApproverID = &approver
	ts := now
	next.ApprovalTimestamp = &ts
	return next, nil
}
