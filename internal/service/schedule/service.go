package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/observability/metrics"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/service/trigger"
)

// Service translates plans into live platform triggers and exposes
// cancel-by-handle. It is the only component that writes to the platform
// queue on behalf of a plan.
type Service struct {
	platform         domain.NotificationPlatform
	calculator       *trigger.Calculator
	schedulerMetrics *metrics.SchedulerMetrics
	now              func() time.Time
}

func NewService(
	platform domain.NotificationPlatform,
	calculator *trigger.Calculator,
	schedulerMetrics *metrics.SchedulerMetrics,
) *Service {
	return &Service{
		platform:         platform,
		calculator:       calculator,
		schedulerMetrics: schedulerMetrics,
		now:              time.Now,
	}
}

// Schedule registers the plan's triggers and returns the handles that were
// actually created. Without notification permission it returns an empty
// list and no error: callers treat zero handles as "scheduling unavailable".
// A partial failure returns the successful subset.
func (s *Service) Schedule(ctx context.Context, plan *domain.Plan, at domain.TimeOfDay) ([]string, error) {
	start := time.Now()

	state, err := s.platform.PermissionState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check notification permission: %w", err)
	}
	if !state.Granted() {
		slog.InfoContext(ctx, "notification permission not granted, skipping scheduling",
			slog.String("plan_id", plan.ID),
			slog.String("permission", state.String()),
		)
		return []string{}, nil
	}

	rules := s.calculator.Rules(plan, at, s.now())
	content := domain.NotificationContent{
		PlanID: plan.ID,
		Title:  "Time for your vitamins",
		Body:   plan.Label,
	}

	handles := make([]string, 0, len(rules))
	failedCount := 0

	for _, rule := range rules {
		handleID, err := s.platform.ScheduleTrigger(ctx, content, rule)
		if err != nil {
			slog.WarnContext(ctx, "failed to schedule trigger",
				slog.String("plan_id", plan.ID),
				slog.String("trigger_type", string(rule.Type)),
				slog.String("error", err.Error()),
			)
			failedCount++
			continue
		}
		handles = append(handles, handleID)
	}

	if s.schedulerMetrics != nil {
		s.schedulerMetrics.RecordScheduled(ctx, plan.Frequency.String(), len(handles))
		s.schedulerMetrics.RecordPartialFailure(ctx, "schedule", failedCount)
		s.schedulerMetrics.RecordScheduleDuration(ctx, time.Since(start))
	}

	slog.InfoContext(ctx, "plan scheduled",
		slog.String("plan_id", plan.ID),
		slog.String("frequency", plan.Frequency.String()),
		slog.Int("handle_count", len(handles)),
		slog.Int("failed_count", failedCount),
	)

	return handles, nil
}

// Cancel cancels each handle independently. Cancelling a handle that no
// longer exists counts as success; one failing item never halts the loop.
func (s *Service) Cancel(ctx context.Context, handleIDs []string) CancelResult {
	result := CancelResult{}

	for _, handleID := range handleIDs {
		if err := s.platform.CancelTrigger(ctx, handleID); err != nil {
			slog.WarnContext(ctx, "failed to cancel trigger",
				slog.String("handle_id", handleID),
				slog.String("error", err.Error()),
			)
			result.FailedCount++
			continue
		}
		result.CancelledCount++
	}

	if s.schedulerMetrics != nil {
		s.schedulerMetrics.RecordCancelled(ctx, result.CancelledCount)
		s.schedulerMetrics.RecordPartialFailure(ctx, "cancel", result.FailedCount)
	}

	return result
}

// CancelAll wipes every live trigger in the platform queue, including
// triggers owned by other plans. Reserved for full system reset.
func (s *Service) CancelAll(ctx context.Context) error {
	if err := s.platform.CancelAllTriggers(ctx); err != nil {
		return fmt.Errorf("failed to cancel all triggers: %w", err)
	}

	slog.InfoContext(ctx, "all platform triggers cancelled")
	return nil
}
