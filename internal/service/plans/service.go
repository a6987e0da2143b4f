package plans

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/service/schedule"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/service/timing"
)

// Service owns the plan lifecycle: every create, edit, and delete goes
// through here so the stored handle list and the live trigger set move
// together. Ordering invariant on edit: old triggers are cancelled to
// completion before any new trigger is registered.
type Service struct {
	plans     domain.PlanRepository
	scheduler *schedule.Service
	timing    *timing.Service
}

func NewService(
	plansRepo domain.PlanRepository,
	scheduler *schedule.Service,
	timingService *timing.Service,
) *Service {
	return &Service{
		plans:     plansRepo,
		scheduler: scheduler,
		timing:    timingService,
	}
}

// Create validates the input, schedules the plan's triggers at the adjusted
// time, and persists the plan with whatever handles scheduling produced.
// A plan created without notification permission persists with zero handles.
func (s *Service) Create(ctx context.Context, input CreateInput) (*PlanResult, error) {
	plan := domain.NewPlan(input.Label, input.Category, input.Frequency, input.CustomDays, input.ReminderTime, input.EndDate)
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	result, err := s.scheduleAndPersist(ctx, plan)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "plan created",
		slog.String("plan_id", plan.ID),
		slog.String("frequency", plan.Frequency.String()),
		slog.Int("handle_count", len(plan.NotificationHandles)),
	)

	return result, nil
}

// Update replaces the plan's fields wholesale and rebuilds its trigger set.
// The assembled plan is validated before the platform is touched, so a
// malformed edit leaves the existing triggers intact. The previous handles
// are then cancelled before the new set is scheduled, so a handle never
// belongs to two plan versions at once.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*PlanResult, error) {
	plan, err := s.plans.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	previousHandles := plan.NotificationHandles

	plan.Label = input.Label
	plan.Category = input.Category
	plan.Frequency = input.Frequency
	plan.CustomDays = domain.SortedWeekdays(input.CustomDays)
	plan.ReminderTime = input.ReminderTime
	plan.EndDate = input.EndDate
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	cancelled := s.scheduler.Cancel(ctx, previousHandles)
	if cancelled.FailedCount > 0 {
		slog.WarnContext(ctx, "some previous triggers failed to cancel during update",
			slog.String("plan_id", id),
			slog.Int("failed_count", cancelled.FailedCount),
		)
	}

	result, err := s.scheduleAndPersist(ctx, plan)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "plan updated",
		slog.String("plan_id", plan.ID),
		slog.Int("handle_count", len(plan.NotificationHandles)),
	)

	return result, nil
}

// Delete cancels the plan's triggers, removes its behavior profile, and
// drops the plan from the store. Cancel failures are logged but never block
// removal: a handle that cannot be cancelled is orphan drift the auditor
// will find.
func (s *Service) Delete(ctx context.Context, id string) error {
	plan, err := s.plans.Get(ctx, id)
	if err != nil {
		return err
	}

	cancelled := s.scheduler.Cancel(ctx, plan.NotificationHandles)
	if cancelled.FailedCount > 0 {
		slog.WarnContext(ctx, "some triggers failed to cancel during delete",
			slog.String("plan_id", id),
			slog.Int("failed_count", cancelled.FailedCount),
		)
	}

	if err := s.timing.ResetProfile(ctx, id); err != nil {
		slog.WarnContext(ctx, "failed to delete behavior profile",
			slog.String("plan_id", id),
			slog.String("error", err.Error()),
		)
	}

	if err := s.plans.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}

	slog.InfoContext(ctx, "plan deleted",
		slog.String("plan_id", id),
	)

	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Plan, error) {
	return s.plans.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*domain.Plan, error) {
	return s.plans.GetAll(ctx)
}

func (s *Service) scheduleAndPersist(ctx context.Context, plan *domain.Plan) (*PlanResult, error) {
	adj, err := s.timing.AdjustForPlan(ctx, plan)
	if err != nil {
		return nil, err
	}

	handles, err := s.scheduler.Schedule(ctx, plan, adj.Time)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule plan: %w", err)
	}
	plan.SetHandles(handles)

	if err := s.plans.Upsert(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to persist plan: %w", err)
	}

	return &PlanResult{
		Plan:          plan,
		EffectiveTime: adj.Time,
		TimingAdapted: adj.Adapted,
		TimingReasons: adj.Reasons,
	}, nil
}
