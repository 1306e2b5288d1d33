package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"custos/internal/decision"
	decisionmetrics "custos/internal/decision/metrics"
	"custos/internal/evidence"
	"custos/internal/platform/config"
	"custos/internal/platform/logger"
	"custos/pkg/domain"
	"custos/pkg/platform/audit"
	auditmetrics "custos/pkg/platform/audit/metrics"
)

// main wires the governance kernel end to end and drives a handful of
// concurrent decision flows through it: evidence → report → frame →
// review → approval, every step committed to the hash-chained audit log.
// Business logic lives in the internal packages; this binary only wires
// and narrates.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	auditLog := audit.New(
		audit.WithLogger(log),
		audit.WithMetrics(auditmetrics.New()),
	)

	svc, err := decision.New(auditLog,
		decision.WithLogger(log),
		decision.WithMetrics(decisionmetrics.New()),
	)
	if err != nil {
		log.Error("service construction failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	g, ctx := errgroup.WithContext(ctx)

	// Concurrent flows exercise the log's single-writer discipline: the
	// appends interleave, but the chain must still verify.
	for i := 0; i < cfg.DemoFlows; i++ {
		flow := i
		g.Go(func() error {
			return runFlow(ctx, svc, flow)
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("governance flow failed", "error", err)
		os.Exit(1)
	}

	if err := svc.VerifyAudit(); err != nil {
		log.Error("audit verification failed", "error", err)
		os.Exit(1)
	}

	log.Info("all flows complete",
		"flows", cfg.DemoFlows,
		"audit_events", auditLog.Len(),
		"chain_verified", true,
	)
}

// runFlow walks one decision through the full governance lifecycle.
func runFlow(ctx context.Context, svc *decision.Service, flow int) error {
	now := time.Now()

	items := make([]evidence.Item, 0, 3)
	for j, spec := range []evidence.ItemSpec{
		{
			Type:             evidence.ItemTypeDocument,
			Source:           evidence.Source{Kind: "runbook", Reference: fmt.Sprintf("RB-%d-001", flow)},
			Excerpt:          "change window approved by operations",
			ConfidenceWeight: 0.9,
			Verified:         true,
		},
		{
			Type:             evidence.ItemTypeSystemObservation,
			Source:           evidence.Source{Kind: "monitor", Reference: fmt.Sprintf("alert-%d", flow)},
			Excerpt:          "error rate stable for 24h",
			ConfidenceWeight: 0.85,
			Verified:         true,
		},
		{
			Type:             evidence.ItemTypeUserInput,
			Source:           evidence.Source{Kind: "ticket", Reference: fmt.Sprintf("OPS-%d", 4000+flow)},
			Excerpt:          "operator reports capacity headroom",
			ConfidenceWeight: 0.8,
			Verified:         false,
		},
	} {
		item, err := evidence.NewItem(spec, now)
		if err != nil {
			return fmt.Errorf("flow %d item %d: %w", flow, j, err)
		}
		items = append(items, item)
	}

	report, err := evidence.NewReport(evidence.ReportSpec{
		Items:           items,
		CoverageSummary: "deployment readiness for the proposed rollout",
		Limitations:     []string{"no load test on the new node pool"},
		Assumptions:     []string{"traffic pattern matches last week"},
	}, now)
	if err != nil {
		return fmt.Errorf("flow %d report: %w", flow, err)
	}

	system := audit.Actor{Kind: audit.ActorSystem, ID: "custos-demo"}
	if _, err := svc.RecordReport(ctx, report, system); err != nil {
		return fmt.Errorf("flow %d record report: %w", flow, err)
	}

	frame, err := svc.CreateFrame(ctx, decision.FrameSpec{
		EvidenceReportID: report.ID,
		ConfidenceScore:  report.ConfidenceScore,
		Tier:             report.Tier,
		Objective:        fmt.Sprintf("roll out build %d to the canary pool", 1400+flow),
		Recommendation:   "proceed with a staged rollout behind the feature flag",
		Reversible:       true,
		Impact:           decision.ImpactMedium,
	}, system)
	if err != nil {
		return fmt.Errorf("flow %d create frame: %w", flow, err)
	}

	frame, err = svc.SubmitForReview(ctx, frame, system)
	if err != nil {
		return fmt.Errorf("flow %d submit: %w", flow, err)
	}

	approver := domain.ActorID(fmt.Sprintf("operator-%d", flow))
	human := audit.Actor{Kind: audit.ActorHuman, ID: approver.String()}
	frame, err = svc.Approve(ctx, frame, approver, human)
	if err != nil {
		return fmt.Errorf("flow %d approve: %w", flow, err)
	}

	if result := svc.GovernanceReport(ctx, frame); !result.Valid {
		return fmt.Errorf("flow %d governance violations: %v", flow, result.Errors)
	}
	return nil
}
