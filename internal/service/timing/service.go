package timing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/observability/metrics"
)

// Service owns behavior-profile persistence around the Adjuster. Profiles
// are created lazily on the first recorded response and survive until an
// explicit user reset.
type Service struct {
	adjuster         *Adjuster
	profiles         domain.ProfileRepository
	schedulerMetrics *metrics.SchedulerMetrics
	now              func() time.Time
}

func NewService(adjuster *Adjuster, profiles domain.ProfileRepository, schedulerMetrics *metrics.SchedulerMetrics) *Service {
	return &Service{
		adjuster:         adjuster,
		profiles:         profiles,
		schedulerMetrics: schedulerMetrics,
		now:              time.Now,
	}
}

// AdjustForPlan loads the plan's profile (if any) and runs the pipeline.
// A missing profile is the normal state for new plans.
func (s *Service) AdjustForPlan(ctx context.Context, plan *domain.Plan) (Adjustment, error) {
	profile, err := s.profiles.Get(ctx, plan.ID)
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return Adjustment{Time: plan.ReminderTime}, fmt.Errorf("failed to load behavior profile: %w", err)
	}

	adj := s.adjuster.Adjust(plan.ReminderTime, plan.Category, profile)

	if adj.Adapted {
		if s.schedulerMetrics != nil {
			for _, stage := range adj.Stages {
				s.schedulerMetrics.RecordTimingAdjusted(ctx, stage)
			}
		}
		slog.InfoContext(ctx, "reminder time adjusted",
			slog.String("plan_id", plan.ID),
			slog.String("base_time", plan.ReminderTime.String()),
			slog.String("effective_time", adj.Time.String()),
			slog.Any("reasons", adj.Reasons),
		)
	}

	return adj, nil
}

// RecordResponse folds one reminder response into the plan's profile,
// creating it on first use.
func (s *Service) RecordResponse(ctx context.Context, planID string, status domain.ResponseStatus, at time.Time) (*domain.BehaviorProfile, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidResponse
	}
	if at.IsZero() {
		at = s.now()
	}

	profile, err := s.profiles.Get(ctx, planID)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			return nil, fmt.Errorf("failed to load behavior profile: %w", err)
		}
		profile = domain.NewBehaviorProfile(planID)
	}

	profile.RecordResponse(status, at)

	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save behavior profile: %w", err)
	}

	slog.DebugContext(ctx, "response recorded",
		slog.String("plan_id", planID),
		slog.String("status", status.String()),
		slog.Int("data_points", profile.DataPoints),
		slog.Int("consecutive_misses", profile.ConsecutiveMisses),
	)

	return profile, nil
}

// ResetProfile discards the plan's accumulated history.
func (s *Service) ResetProfile(ctx context.Context, planID string) error {
	if err := s.profiles.Delete(ctx, planID); err != nil {
		return fmt.Errorf("failed to reset behavior profile: %w", err)
	}

	slog.InfoContext(ctx, "behavior profile reset",
		slog.String("plan_id", planID),
	)
	return nil
}
