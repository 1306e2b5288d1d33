package decision

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"custos/internal/decision/metrics"
	"custos/internal/decision/ports"
	"custos/internal/evidence"
	"custos/pkg/domain"
	dErrors "custos/pkg/domain-errors"
	"custos/pkg/platform/audit"
	"custos/pkg/platform/sentinel"
)

// entity kinds used in audit event references.
const (
	entityKindFrame  = "decision_frame"
	entityKindReport = "evidence_report"
)

// Service orchestrates the kernel's pure functions around the audit log:
// every state change it commits is recorded as a hash-chained audit event.
// The service holds no frame state; frames are values owned by the caller.
type Service struct {
	recorder ports.AuditRecorder
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics attaches prometheus metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithClock overrides the timestamp source for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New constructs the governance service.
func New(recorder ports.AuditRecorder, opts ...Option) (*Service, error) {
	if recorder == nil {
		return nil, fmt.Errorf("audit recorder is required")
	}

	svc := &Service{
		recorder: recorder,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// RecordReport commits the creation of an evidence report to the audit log.
// Reports themselves are immutable values; only their creation is a
// governance-relevant mutation.
func (s *Service) RecordReport(ctx context.Context, report evidence.Report, actor audit.Actor) (audit.Event, error) {
	if result := evidence.ValidateReport(report); !result.Valid {
		return audit.Event{}, dErrors.Newf(dErrors.CodeValidation,
			"refusing to record invalid report: %v", result.Errors)
	}

	event, err := s.recorder.Append(audit.AppendParams{
		Type:           audit.EventReportCreated,
		Actor:          actor,
		Related:        audit.EntityRef{Kind: entityKindReport, ID: report.ID.String()},
		SnapshotBefore: nil,
		SnapshotAfter:  report,
		Notes:          fmt.Sprintf("score=%d tier=%s items=%d", report.ConfidenceScore, report.Tier, len(report.Items)),
	})
	if err != nil {
		return audit.Event{}, err
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "evidence report recorded",
			"report_id", report.ID,
			"confidence_score", report.ConfidenceScore,
			"evidence_tier", report.Tier,
		)
	}
	return event, nil
}

// CreateFrame builds a draft decision frame from the spec and commits its
// creation to the audit log.
func (s *Service) CreateFrame(ctx context.Context, spec FrameSpec, actor audit.Actor) (Frame, error) {
	frame, err := NewFrame(spec, s.now())
	if err != nil {
		return Frame{}, err
	}

	if _, err := s.recorder.Append(audit.AppendParams{
		Type:           audit.EventFrameCreated,
		Actor:          actor,
		Related:        audit.EntityRef{Kind: entityKindFrame, ID: frame.ID.String()},
		SnapshotBefore: nil,
		SnapshotAfter:  frame,
		Notes:          fmt.Sprintf("class=%s route=%s", frame.Class, frame.Route),
	}); err != nil {
		return Frame{}, err
	}

	if s.metrics != nil {
		s.metrics.IncFrameCreated(frame.Class.String())
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "decision frame created",
			"frame_id", frame.ID,
			"action_class", frame.Class,
			"approval_route", frame.Route,
			"risk_level", frame.Risk,
		)
	}
	return frame, nil
}

// SubmitForReview moves a draft frame to pending_review and audits the
// transition.
func (s *Service) SubmitForReview(ctx context.Context, frame Frame, actor audit.Actor) (Frame, error) {
	next, err := SubmitForReview(frame)
	if err != nil {
		return Frame{}, err
	}
	return s.commitTransition(ctx, audit.EventFrameSubmitted, frame, next, actor, "submitted for review")
}

// Approve records a human approval and audits the transition. Governance
// violations on the resulting frame are logged and counted, not swallowed;
// the gate itself is the caller's responsibility via GovernanceReport.
func (s *Service) Approve(ctx context.Context, frame Frame, approver domain.ActorID, actor audit.Actor) (Frame, error) {
	next, err := Approve(frame, approver, s.now())
	if err != nil {
		return Frame{}, err
	}
	return s.commitTransition(ctx, audit.EventFrameApproved, frame, next, actor,
		fmt.Sprintf("approved by %s", approver))
}

// Reject records a human rejection and audits the transition.
func (s *Service) Reject(ctx context.Context, frame Frame, approver domain.ActorID, actor audit.Actor) (Frame, error) {
	next, err := Reject(frame, approver, s.now())
	if err != nil {
		return Frame{}, err
	}
	return s.commitTransition(ctx, audit.EventFrameRejected, frame, next, actor,
		fmt.Sprintf("rejected by %s", approver))
}

// Revoke withdraws a granted approval and audits the transition.
func (s *Service) Revoke(ctx context.Context, frame Frame, approver domain.ActorID, actor audit.Actor) (Frame, error) {
	next, err := Revoke(frame, approver, s.now())
	if err != nil {
		return Frame{}, err
	}
	return s.commitTransition(ctx, audit.EventFrameRevoked, frame, next, actor,
		fmt.Sprintf("revoked by %s", approver))
}

// GovernanceReport runs the whole-frame compliance checks and records any
// violations in the module metrics.
func (s *Service) GovernanceReport(ctx context.Context, frame Frame) Result {
	result := RunAllGovernanceChecks(frame)
	if !result.Valid {
		if s.metrics != nil {
			s.metrics.AddGovernanceViolations(len(result.Errors))
		}
		if s.logger != nil {
			s.logger.WarnContext(ctx, "governance check violations",
				"frame_id", frame.ID,
				"violations", result.Errors,
			)
		}
	}
	return result
}

// VerifyAudit checks hash-chain continuity of the underlying log.
//
// Errors: wraps sentinel.ErrChainBroken with CodeInternal when any adjacent
// pair of events fails to link.
func (s *Service) VerifyAudit() error {
	if !s.recorder.VerifyChain() {
		return dErrors.Wrap(sentinel.ErrChainBroken, dErrors.CodeInternal, "audit log failed verification")
	}
	return nil
}

// commitTransition audits a completed lifecycle transition with before and
// after snapshots of the frame.
func (s *Service) commitTransition(ctx context.Context, eventType audit.EventType, before, after Frame, actor audit.Actor, note string) (Frame, error) {
	if _, err := s.recorder.Append(audit.AppendParams{
		Type:           eventType,
		Actor:          actor,
		Related:        audit.EntityRef{Kind: entityKindFrame, ID: after.ID.String()},
		SnapshotBefore: before,
		SnapshotAfter:  after,
		Notes:          note,
	}); err != nil {
		return Frame{}, err
	}

	if s.metrics != nil {
		s.metrics.IncTransition(after.Status.String())
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "decision frame transitioned",
			"frame_id", after.ID,
			"from", before.Status,
			"to", after.Status,
			"approval_state", after.ApprovalState,
		)
	}
	return after, nil
}
