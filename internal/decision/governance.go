package decision

import (
	"fmt"
	"slices"
)

// Governance checks compose the validators and policies into whole-frame
// compliance checks. Failures are reported as a violations list, never as
// errors: the caller (an approval UI, the governance service) decides
// whether to block the action.

// CheckApprovalRequirements verifies that every terminally-actioned frame
// carries its accountability stamp. Rejection and revocation are held to
// the same standard as approval.
func CheckApprovalRequirements(frame Frame) []string {
	if !frame.Status.IsTerminalHumanAction() {
		return nil
	}

	var violations []string
	if frame.ApproverID == nil || frame.ApproverID.IsEmpty() {
		violations = append(violations, fmt.Sprintf("status %s requires approver_id", frame.Status))
	}
	if frame.ApprovalTimestamp == nil || frame.ApprovalTimestamp.IsZero() {
		violations = append(violations, fmt.Sprintf("status %s requires approval_timestamp", frame.Status))
	}
	return violations
}

// CheckEvidenceRequirements verifies the frame is backed by evidence and
// clears the hard confidence floor, independently of the classification the
// frame currently carries.
func CheckEvidenceRequirements(frame Frame) []string {
	var violations []string
	if frame.EvidenceReportID.IsNil() {
		violations = append(violations, "evidence_report_id is required")
	}
	if frame.ConfidenceScore < 50 {
		violations = append(violations,
			fmt.Sprintf("confidence_score %d is below the evidence floor of 50", frame.ConfidenceScore))
	}
	return violations
}

// EnforceNoSilentExecution is the execution-time gate. It fails when
// approval_required is not literally true, and it fails for any frame that
// still blocks execute_without_approval while sitting in draft or
// pending_review: executing such a frame now would be silent execution, so
// the attempt is flagged even if nothing else detects it.
func EnforceNoSilentExecution(frame Frame) []string {
	var violations []string
	if !frame.ApprovalRequired {
		violations = append(violations, "approval_required must be true")
	}
	if frame.Status == StatusDraft || frame.Status == StatusPendingReview {
		if slices.Contains(frame.BlockedActions, OpExecuteWithoutApproval) {
			violations = append(violations,
				fmt.Sprintf("execution is blocked while status is %s: approval has not been granted", frame.Status))
		}
	}
	return violations
}

// RunAllGovernanceChecks concatenates the violations from every check.
// The frame passes only when the union is empty.
func RunAllGovernanceChecks(frame Frame) Result {
	var violations []string
	violations = append(violations, CheckApprovalRequirements(frame)...)
	violations = append(violations, CheckEvidenceRequirements(frame)...)
	violations = append(violations, EnforceNoSilentExecution(frame)...)

	return Result{Valid: len(violations) == 0, Errors: violations}
}
