package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/observability/metrics"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/observability/tracing"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/service/schedule"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/service/timing"
)

// Service reconciles the plan store against the live platform queue.
// Audit is strictly read-only; every mutation goes through an explicit
// repair operation so drift is never fixed behind the caller's back.
type Service struct {
	plans        domain.PlanRepository
	platform     domain.NotificationPlatform
	scheduler    *schedule.Service
	timing       *timing.Service
	recorder     domain.AuditResultRecorder
	auditMetrics *metrics.AuditMetrics
	now          func() time.Time
}

func NewService(
	plans domain.PlanRepository,
	platform domain.NotificationPlatform,
	scheduler *schedule.Service,
	timingService *timing.Service,
	recorder domain.AuditResultRecorder,
	auditMetrics *metrics.AuditMetrics,
) *Service {
	return &Service{
		plans:        plans,
		platform:     platform,
		scheduler:    scheduler,
		timing:       timingService,
		recorder:     recorder,
		auditMetrics: auditMetrics,
		now:          time.Now,
	}
}

// Audit builds the three-way diff between plan-referenced handles and the
// live queue: orphaned (live but unreferenced), missing (referenced but not
// live), and duplicated (more live handles than the frequency justifies).
// It never mutates either side.
func (s *Service) Audit(ctx context.Context, runID string) (*domain.AuditReport, error) {
	ctx, span := tracing.StartAuditSpan(ctx, runID)
	defer span.End()

	start := s.now()

	plans, err := s.plans.GetAll(ctx)
	if err != nil {
		tracing.RecordAuditResult(span, 0, 0, 0, 0, 0, err)
		return nil, fmt.Errorf("failed to load plans: %w", err)
	}

	live, err := s.listLive(ctx)
	if err != nil {
		tracing.RecordAuditResult(span, 0, 0, 0, len(plans), 0, err)
		return nil, fmt.Errorf("failed to list scheduled notifications: %w", err)
	}

	report := s.diff(plans, live)

	if s.auditMetrics != nil {
		s.auditMetrics.RecordDrift(ctx, "orphaned", len(report.Orphaned))
		s.auditMetrics.RecordDrift(ctx, "missing", len(report.Missing))
		s.auditMetrics.RecordDrift(ctx, "duplicated", len(report.Duplicated))
		s.auditMetrics.RecordAuditDuration(ctx, time.Since(start))
	}
	tracing.RecordAuditResult(span,
		len(report.Orphaned), len(report.Missing), len(report.Duplicated),
		report.TotalPlans, report.TotalLive, nil,
	)

	s.record(ctx, runID, operationAudit, report, 0, 0)

	slog.InfoContext(ctx, "audit completed",
		slog.String("run_id", runID),
		slog.Int("total_plans", report.TotalPlans),
		slog.Int("total_live", report.TotalLive),
		slog.Int("orphaned", len(report.Orphaned)),
		slog.Int("missing", len(report.Missing)),
		slog.Int("duplicated", len(report.Duplicated)),
	)

	return report, nil
}

func (s *Service) listLive(ctx context.Context) ([]domain.ScheduledNotification, error) {
	ctx, span := tracing.StartPlatformCallSpan(ctx, "list_scheduled")
	defer span.End()

	return s.platform.ListScheduled(ctx)
}

func (s *Service) diff(plans []*domain.Plan, live []domain.ScheduledNotification) *domain.AuditReport {
	report := domain.NewAuditReport(len(plans), len(live))

	liveSet := make(map[string]struct{}, len(live))
	for _, n := range live {
		liveSet[n.HandleID] = struct{}{}
	}

	referenced := make(map[string]struct{})
	for _, plan := range plans {
		seen := make(map[string]struct{}, len(plan.NotificationHandles))
		liveCount := 0
		duplicateIDs := false

		for _, handleID := range plan.NotificationHandles {
			referenced[handleID] = struct{}{}
			if _, dup := seen[handleID]; dup {
				duplicateIDs = true
			}
			seen[handleID] = struct{}{}

			if _, ok := liveSet[handleID]; ok {
				liveCount++
				report.TrackedCount++
			} else {
				report.Missing = append(report.Missing, domain.MissingHandle{
					PlanID:   plan.ID,
					HandleID: handleID,
				})
			}
		}

		expected := plan.ExpectedHandleCount()
		if duplicateIDs || liveCount > expected {
			report.Duplicated = append(report.Duplicated, domain.DuplicateFinding{
				PlanID:        plan.ID,
				HandleIDs:     append([]string(nil), plan.NotificationHandles...),
				ExpectedCount: expected,
				LiveCount:     liveCount,
			})
		}
	}

	for _, n := range live {
		if _, ok := referenced[n.HandleID]; !ok {
			report.Orphaned = append(report.Orphaned, n.HandleID)
		}
	}

	return report
}

// CleanupOrphaned cancels every live trigger no plan references. Items are
// cancelled independently; a failing cancel is counted, not fatal.
func (s *Service) CleanupOrphaned(ctx context.Context, runID string) (*CleanupResult, error) {
	ctx, span := tracing.StartRepairSpan(ctx, runID, operationCleanup)
	defer span.End()

	start := s.now()

	report, err := s.Audit(ctx, runID)
	if err != nil {
		tracing.RecordRepairResult(span, 0, 0, err)
		return nil, err
	}

	cancelled := s.scheduler.Cancel(ctx, report.Orphaned)
	result := &CleanupResult{
		CancelledCount: cancelled.CancelledCount,
		FailedCount:    cancelled.FailedCount,
	}

	if s.auditMetrics != nil {
		s.auditMetrics.RecordRepair(ctx, operationCleanup, result.CancelledCount)
		s.auditMetrics.RecordRepairDuration(ctx, operationCleanup, time.Since(start))
	}
	tracing.RecordRepairResult(span, result.CancelledCount, result.FailedCount, nil)
	s.record(ctx, runID, operationCleanup, report, result.CancelledCount, result.FailedCount)

	slog.InfoContext(ctx, "orphan cleanup completed",
		slog.String("run_id", runID),
		slog.Int("cancelled", result.CancelledCount),
		slog.Int("failed", result.FailedCount),
	)

	return result, nil
}

// RepairMissing rebuilds the trigger set for every plan that references at
// least one dead handle. Surviving handles are cancelled first so the plan
// never holds a mixed old/new set, then the plan is rescheduled in full and
// its handle list overwritten with the fresh result.
func (s *Service) RepairMissing(ctx context.Context, runID string) (*RepairResult, error) {
	ctx, span := tracing.StartRepairSpan(ctx, runID, operationRepair)
	defer span.End()

	start := s.now()

	report, err := s.Audit(ctx, runID)
	if err != nil {
		tracing.RecordRepairResult(span, 0, 0, err)
		return nil, err
	}

	affected := make(map[string]struct{}, len(report.Missing))
	for _, m := range report.Missing {
		affected[m.PlanID] = struct{}{}
	}

	result := &RepairResult{}
	for planID := range affected {
		if err := s.reschedulePlan(ctx, planID); err != nil {
			slog.WarnContext(ctx, "failed to repair plan",
				slog.String("run_id", runID),
				slog.String("plan_id", planID),
				slog.String("error", err.Error()),
			)
			result.FailedCount++
			continue
		}
		result.RepairedCount++
	}

	if s.auditMetrics != nil {
		s.auditMetrics.RecordRepair(ctx, operationRepair, result.RepairedCount)
		s.auditMetrics.RecordRepairDuration(ctx, operationRepair, time.Since(start))
	}
	tracing.RecordRepairResult(span, result.RepairedCount, result.FailedCount, nil)
	s.record(ctx, runID, operationRepair, report, result.RepairedCount, result.FailedCount)

	slog.InfoContext(ctx, "missing-handle repair completed",
		slog.String("run_id", runID),
		slog.Int("repaired", result.RepairedCount),
		slog.Int("failed", result.FailedCount),
	)

	return result, nil
}

// reschedulePlan re-reads the freshest plan state, cancels whatever handles
// it still holds, schedules a full new set, and persists the overwrite.
func (s *Service) reschedulePlan(ctx context.Context, planID string) error {
	plan, err := s.plans.Get(ctx, planID)
	if err != nil {
		return fmt.Errorf("failed to load plan: %w", err)
	}

	s.scheduler.Cancel(ctx, plan.NotificationHandles)

	adj, err := s.timing.AdjustForPlan(ctx, plan)
	if err != nil {
		return err
	}

	handles, err := s.scheduler.Schedule(ctx, plan, adj.Time)
	if err != nil {
		return err
	}

	plan.SetHandles(handles)
	if err := s.plans.Upsert(ctx, plan); err != nil {
		return fmt.Errorf("failed to persist repaired plan: %w", err)
	}
	return nil
}

// ResetSystem wipes the entire platform queue and reschedules every stored
// plan from scratch. This is the recovery of last resort: it discards all
// handle bookkeeping and rebuilds it.
func (s *Service) ResetSystem(ctx context.Context, runID string) (*ResetResult, error) {
	ctx, span := tracing.StartRepairSpan(ctx, runID, operationReset)
	defer span.End()

	start := s.now()

	plans, err := s.plans.GetAll(ctx)
	if err != nil {
		tracing.RecordRepairResult(span, 0, 0, err)
		return nil, fmt.Errorf("failed to load plans: %w", err)
	}

	if err := s.scheduler.CancelAll(ctx); err != nil {
		tracing.RecordRepairResult(span, 0, 0, err)
		return nil, err
	}

	result := &ResetResult{}
	for _, plan := range plans {
		adj, err := s.timing.AdjustForPlan(ctx, plan)
		if err != nil {
			slog.WarnContext(ctx, "failed to adjust plan during reset",
				slog.String("run_id", runID),
				slog.String("plan_id", plan.ID),
				slog.String("error", err.Error()),
			)
			result.FailedCount++
			continue
		}

		handles, err := s.scheduler.Schedule(ctx, plan, adj.Time)
		if err != nil {
			slog.WarnContext(ctx, "failed to reschedule plan during reset",
				slog.String("run_id", runID),
				slog.String("plan_id", plan.ID),
				slog.String("error", err.Error()),
			)
			result.FailedCount++
			continue
		}

		plan.SetHandles(handles)
		result.RescheduledCount++
		result.HandlesCreatedCount += len(handles)
	}

	if err := s.plans.SaveAll(ctx, plans); err != nil {
		tracing.RecordRepairResult(span, result.RescheduledCount, result.FailedCount, err)
		return nil, fmt.Errorf("failed to persist reset plans: %w", err)
	}

	if s.auditMetrics != nil {
		s.auditMetrics.RecordRepair(ctx, operationReset, result.RescheduledCount)
		s.auditMetrics.RecordRepairDuration(ctx, operationReset, time.Since(start))
	}
	tracing.RecordRepairResult(span, result.RescheduledCount, result.FailedCount, nil)
	s.recordReset(ctx, runID, len(plans), result)

	slog.InfoContext(ctx, "system reset completed",
		slog.String("run_id", runID),
		slog.Int("rescheduled", result.RescheduledCount),
		slog.Int("handles_created", result.HandlesCreatedCount),
		slog.Int("failed", result.FailedCount),
	)

	return result, nil
}

func (s *Service) record(ctx context.Context, runID, operation string, report *domain.AuditReport, repaired, failed int) {
	if s.recorder == nil {
		return
	}

	rec := domain.AuditResultRecord{
		RunID:           runID,
		Operation:       operation,
		At:              s.now(),
		TotalPlans:      report.TotalPlans,
		TotalLive:       report.TotalLive,
		OrphanedCount:   len(report.Orphaned),
		MissingCount:    len(report.Missing),
		DuplicatedCount: len(report.Duplicated),
		RepairedCount:   repaired,
		FailedCount:     failed,
	}
	if err := s.recorder.RecordAuditResults(ctx, []domain.AuditResultRecord{rec}); err != nil {
		slog.WarnContext(ctx, "failed to record audit result",
			slog.String("run_id", runID),
			slog.String("operation", operation),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Service) recordReset(ctx context.Context, runID string, totalPlans int, result *ResetResult) {
	if s.recorder == nil {
		return
	}

	rec := domain.AuditResultRecord{
		RunID:         runID,
		Operation:     operationReset,
		At:            s.now(),
		TotalPlans:    totalPlans,
		RepairedCount: result.RescheduledCount,
		FailedCount:   result.FailedCount,
	}
	if err := s.recorder.RecordAuditResults(ctx, []domain.AuditResultRecord{rec}); err != nil {
		slog.WarnContext(ctx, "failed to record audit result",
			slog.String("run_id", runID),
			slog.String("operation", operationReset),
			slog.String("error", err.Error()),
		)
	}
}
