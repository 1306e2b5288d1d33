//go:generate mockgen -source=ports/ports.go -destination=mocks/mocks.go -package=mocks AuditRecorder

package decision

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"custos/internal/decision/mocks"
	"custos/internal/evidence"
	"custos/pkg/domain"
	dErrors "custos/pkg/domain-errors"
	"custos/pkg/platform/audit"
	"custos/pkg/platform/sentinel"
)

type ServiceSuite struct {
	suite.Suite

	ctrl     *gomock.Controller
	recorder *mocks.MockAuditRecorder
	svc      *Service

	ctx   context.Context
	clock time.Time
	actor audit.Actor
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.recorder = mocks.NewMockAuditRecorder(s.ctrl)
	s.ctx = context.Background()
	s.clock = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.actor = audit.Actor{Kind: audit.ActorSystem, ID: "governance-kernel"}

	svc, err := New(s.recorder,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithClock(func() time.Time { return s.clock }),
	)
	s.Require().NoError(err)
	s.svc = svc
}

func (s *ServiceSuite) validSpec() FrameSpec {
	return FrameSpec{
		EvidenceReportID: domain.NewEvidenceReportID(),
		ConfidenceScore:  74,
		Tier:             evidence.Tier2,
		Objective:        "migrate the billing exporter",
		Recommendation:   "roll out behind a flag",
		Reversible:       true,
		Impact:           ImpactMedium,
	}
}

func (s *ServiceSuite) validReport() evidence.Report {
	now := time.Date(2026, 2, 28, 9, 0, 0, 0, time.UTC)
	items := make([]evidence.Item, 0, 2)
	for _, weight := range []float64{0.9, 0.85} {
		item, err := evidence.NewItem(evidence.ItemSpec{
			Type:             evidence.ItemTypeSystemObservation,
			Source:           evidence.Source{Kind: "repo", Reference: "bench/results.json"},
			Excerpt:          "p99 latency stayed under budget",
			ConfidenceWeight: weight,
			Verified:         true,
		}, now)
		s.Require().NoError(err)
		items = append(items, item)
	}

	report, err := evidence.NewReport(evidence.ReportSpec{
		Items:           items,
		CoverageSummary: "benchmarks on both target platforms",
	}, now)
	s.Require().NoError(err)
	return report
}

// ====== construction ======

func (s *ServiceSuite) TestNew() {
	s.Run("nil recorder is rejected", func() {
		svc, err := New(nil)
		s.Nil(svc)
		s.ErrorContains(err, "audit recorder is required")
	})

	s.Run("recorder alone is enough", func() {
		svc, err := New(s.recorder)
		s.NoError(err)
		s.NotNil(svc)
	})
}

// ====== RecordReport ======

func (s *ServiceSuite) TestRecordReport() {
	s.Run("valid report is appended with its snapshot", func() {
		report := s.validReport()
		var captured audit.AppendParams

		s.recorder.EXPECT().Append(gomock.Any()).DoAndReturn(
			func(params audit.AppendParams) (audit.Event, error) {
				captured = params
				return audit.Event{ID: 1, Type: params.Type}, nil
			})

		event, err := s.svc.RecordReport(s.ctx, report, s.actor)
		s.Require().NoError(err)

		s.Equal(audit.EventReportCreated, event.Type)
		s.Equal("evidence_report", captured.Related.Kind)
		s.Equal(report.ID.String(), captured.Related.ID)
		s.Nil(captured.SnapshotBefore)
		s.Equal("score=95 tier=tier_2 items=2", captured.Notes)
	})

	s.Run("invalid report is refused before any append", func() {
		report := s.validReport()
		report.ConfidenceScore = 12 // no longer matches the items

		_, err := s.svc.RecordReport(s.ctx, report, s.actor)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

// ====== CreateFrame ======

func (s *ServiceSuite) TestCreateFrame() {
	s.Run("frame creation is audited with class and route", func() {
		var captured audit.AppendParams
		s.recorder.EXPECT().Append(gomock.Any()).DoAndReturn(
			func(params audit.AppendParams) (audit.Event, error) {
				captured = params
				return audit.Event{ID: 1, Type: params.Type}, nil
			})

		frame, err := s.svc.CreateFrame(s.ctx, s.validSpec(), s.actor)
		s.Require().NoError(err)

		s.Equal(StatusDraft, frame.Status)
		s.Equal(s.clock, frame.CreatedAt)
		s.Equal(audit.EventFrameCreated, captured.Type)
		s.Equal("decision_frame", captured.Related.Kind)
		s.Equal(frame.ID.String(), captured.Related.ID)
		s.Equal("class=B route=single_approval", captured.Notes)
	})

	s.Run("invalid spec never reaches the recorder", func() {
		spec := s.validSpec()
		spec.Objective = "  "

		_, err := s.svc.CreateFrame(s.ctx, spec, s.actor)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("append failure aborts the creation", func() {
		s.recorder.EXPECT().Append(gomock.Any()).Return(audit.Event{}, errors.New("log closed"))

		_, err := s.svc.CreateFrame(s.ctx, s.validSpec(), s.actor)
		s.ErrorContains(err, "log closed")
	})
}

// ====== lifecycle transitions ======

func (s *ServiceSuite) TestTransitions() {
	draft, err := NewFrame(s.validSpec(), s.clock)
	s.Require().NoError(err)

	s.Run("submit then approve append the matching event types", func() {
		var types []audit.EventType
		s.recorder.EXPECT().Append(gomock.Any()).DoAndReturn(
			func(params audit.AppendParams) (audit.Event, error) {
				types = append(types, params.Type)
				return audit.Event{Type: params.Type}, nil
			}).Times(2)

		pending, err := s.svc.SubmitForReview(s.ctx, draft, s.actor)
		s.Require().NoError(err)
		approved, err := s.svc.Approve(s.ctx, pending, "u1", s.actor)
		s.Require().NoError(err)

		s.Equal([]audit.EventType{audit.EventFrameSubmitted, audit.EventFrameApproved}, types)
		s.Equal(StatusApproved, approved.Status)
		s.Require().NotNil(approved.ApproverID)
		s.Equal("u1", approved.ApproverID.String())
		s.Require().NotNil(approved.ApprovalTimestamp)
		s.Equal(s.clock, *approved.ApprovalTimestamp)
	})

	s.Run("reject appends frame_rejected with both snapshots", func() {
		pendingOnly, err := SubmitForReview(draft)
		s.Require().NoError(err)

		var captured audit.AppendParams
		s.recorder.EXPECT().Append(gomock.Any()).DoAndReturn(
			func(params audit.AppendParams) (audit.Event, error) {
				captured = params
				return audit.Event{Type: params.Type}, nil
			})

		rejected, err := s.svc.Reject(s.ctx, pendingOnly, "u2", s.actor)
		s.Require().NoError(err)

		s.Equal(StatusRejected, rejected.Status)
		s.Equal(audit.EventFrameRejected, captured.Type)
		s.NotNil(captured.SnapshotBefore)
		s.NotNil(captured.SnapshotAfter)
		s.Equal("rejected by u2", captured.Notes)
	})

	s.Run("revoke appends frame_revoked", func() {
		pendingOnly, err := SubmitForReview(draft)
		s.Require().NoError(err)
		approvedOnly, err := Approve(pendingOnly, "u1", s.clock)
		s.Require().NoError(err)

		s.recorder.EXPECT().Append(gomock.Any()).DoAndReturn(
			func(params audit.AppendParams) (audit.Event, error) {
				s.Equal(audit.EventFrameRevoked, params.Type)
				return audit.Event{Type: params.Type}, nil
			})

		revoked, err := s.svc.Revoke(s.ctx, approvedOnly, "u3", s.actor)
		s.Require().NoError(err)
		s.Equal(StatusRevoked, revoked.Status)
	})

	s.Run("illegal transition is rejected before any append", func() {
		_, err := s.svc.Approve(s.ctx, draft, "u1", s.actor)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("append failure aborts the transition", func() {
		s.recorder.EXPECT().Append(gomock.Any()).Return(audit.Event{}, errors.New("log closed"))

		_, err := s.svc.SubmitForReview(s.ctx, draft, s.actor)
		s.ErrorContains(err, "log closed")
	})
}

// ====== governance and verification ======

func (s *ServiceSuite) TestGovernanceReport() {
	draft, err := NewFrame(s.validSpec(), s.clock)
	s.Require().NoError(err)

	s.Run("draft frame reports the execution gate", func() {
		result := s.svc.GovernanceReport(s.ctx, draft)
		s.False(result.Valid)
	})

	s.Run("approved frame passes", func() {
		pending, err := SubmitForReview(draft)
		s.Require().NoError(err)
		approved, err := Approve(pending, "u1", s.clock)
		s.Require().NoError(err)

		result := s.svc.GovernanceReport(s.ctx, approved)
		s.True(result.Valid)
		s.Empty(result.Errors)
	})
}

func (s *ServiceSuite) TestVerifyAudit() {
	s.Run("intact chain", func() {
		s.recorder.EXPECT().VerifyChain().Return(true)
		s.NoError(s.svc.VerifyAudit())
	})

	s.Run("broken chain", func() {
		s.recorder.EXPECT().VerifyChain().Return(false)

		err := s.svc.VerifyAudit()
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
		s.True(errors.Is(err, sentinel.ErrChainBroken))
	})
}

// TestServiceWithRealLog drives a full approval flow against the in-memory
// log and verifies the resulting chain end to end.
func TestServiceWithRealLog(t *testing.T) {
	log := audit.New()

	svc, err := New(log,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithClock(func() time.Time { return time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC) }),
	)
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	actor := audit.Actor{Kind: audit.ActorHuman, ID: "u1"}

	frame, err := svc.CreateFrame(ctx, FrameSpec{
		EvidenceReportID: domain.NewEvidenceReportID(),
		ConfidenceScore:  88,
		Tier:             evidence.Tier2,
		Objective:        "decommission the legacy queue",
		Recommendation:   "drain, then remove",
		Reversible:       true,
		Impact:           ImpactMedium,
	}, actor)
	if err != nil {
		t.Fatal(err)
	}

	pending, err := svc.SubmitForReview(ctx, frame, actor)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Approve(ctx, pending, "u1", actor); err != nil {
		t.Fatal(err)
	}

	if got := log.Len(); got != 3 {
		t.Fatalf("expected 3 audit events, got %d", got)
	}
	if err := svc.VerifyAudit(); err != nil {
		t.Fatalf("chain verification failed: %v", err)
	}
}
