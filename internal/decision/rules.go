package decision

import "custos/internal/evidence"

// Operation names exposed through allowed/blocked action lists. External
// callers pattern-match on these literal strings; treat them as part of the
// wire surface.
const (
	OpDraftChange            = "draft_change"
	OpProposeAction          = "propose_action"
	OpStageRollout           = "stage_rollout"
	OpExecuteWithApproval    = "execute_with_approval"
	OpExecute                = "execute"
	OpAutoExecute            = "auto_execute"
	OpExecuteWithoutApproval = "execute_without_approval"
)

// RubricLevel is the coarse band the confidence rubric assigns to a score.
type RubricLevel string

const (
	RubricBlocked            RubricLevel = "blocked"
	RubricApprovalRequired   RubricLevel = "approval_required"
	RubricAutomationEligible RubricLevel = "automation_eligible"
)

// Rubric is the display-oriented outcome of the confidence rubric: the
// band plus the operation names a UI may offer or must grey out.
type Rubric struct {
	Level   RubricLevel `json:"level"`
	Allowed []string    `json:"allowed_actions"`
	Blocked []string    `json:"blocked_actions"`
}

// RubricFor maps a 0-100 confidence score to its rubric band. Buckets are
// non-overlapping and cover the whole range:
//
//	< 50    blocked: no actions permitted at all
//	50-69   approval required, reversible actions only
//	70-89   approval required, reversible actions plus staged rollout
//	90-100  automation eligible; automation still demands explicit
//	        enablement, so execute_without_approval stays blocked
func RubricFor(score int) Rubric {
	switch {
	case score < 50:
		return Rubric{
			Level:   RubricBlocked,
			Allowed: []string{},
			Blocked: []string{OpDraftChange, OpProposeAction, OpExecute, OpAutoExecute, OpExecuteWithoutApproval},
		}
	case score < 70:
		return Rubric{
			Level:   RubricApprovalRequired,
			Allowed: []string{OpDraftChange, OpProposeAction},
			Blocked: []string{OpExecute, OpAutoExecute, OpExecuteWithoutApproval},
		}
	case score < 90:
		return Rubric{
			Level:   RubricApprovalRequired,
			Allowed: []string{OpDraftChange, OpProposeAction, OpStageRollout},
			Blocked: []string{OpAutoExecute, OpExecuteWithoutApproval},
		}
	default:
		return Rubric{
			Level:   RubricAutomationEligible,
			Allowed: []string{OpDraftChange, OpProposeAction, OpStageRollout, OpExecuteWithApproval},
			Blocked: []string{OpExecuteWithoutApproval},
		}
	}
}

// RiskFor derives the coarse risk level from a confidence score.
func RiskFor(score int) RiskLevel {
	switch {
	case score >= 80:
		return RiskLow
	case score >= 60:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// Classification is the binding outcome of the action-class policy.
type Classification struct {
	Class ActionClass   `json:"action_class"`
	Route ApprovalRoute `json:"approval_route"`
	State ApprovalState `json:"approval_state"`
}

// Classify is the governance decision function. Rules are evaluated in
// strict order, first match wins:
//
//  1. confidence below 50 blocks outright; the hard confidence floor
//     dominates everything else
//  2. tier_1 evidence with low impact and a reversible action is
//     log-and-learn territory
//  3. high impact, irreversibility, or tier_3 evidence escalates to the
//     strictest gate regardless of confidence
//  4. everything else takes the single-approval route
func Classify(confidence int, tier evidence.Tier, reversible bool, impact Impact) Classification {
	if confidence < 50 {
		return Classification{Class: ClassA, Route: RouteLogAndLearn, State: ApprovalBlocked}
	}
	if tier == evidence.Tier1 && impact == ImpactLow && reversible {
		return Classification{Class: ClassA, Route: RouteLogAndLearn, State: ApprovalLogOnly}
	}
	if impact == ImpactHigh || !reversible || tier == evidence.Tier3 {
		return Classification{Class: ClassC, Route: RouteMultiGate, State: ApprovalDrafted}
	}
	return Classification{Class: ClassB, Route: RouteSingleApproval, State: ApprovalDrafted}
}

// AdvanceApprovalState re-derives the approval state when a frame's
// lifecycle status changes.
func AdvanceApprovalState(class ActionClass, status Status) ApprovalState {
	switch status {
	case StatusApproved:
		return ApprovalApproved
	case StatusRejected:
		return ApprovalRejected
	case StatusRevoked:
		return ApprovalBlocked
	case StatusPendingReview:
		switch class {
		case ClassA:
			return ApprovalLogOnly
		case ClassC:
			return ApprovalAwaitingMultiGate
		default:
			return ApprovalAwaitingSingle
		}
	default:
		return ApprovalDrafted
	}
}
