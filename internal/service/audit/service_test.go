package audit

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/config"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/service/schedule"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/service/timing"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/service/trigger"
)

type testEnv struct {
	plans    *domain.MockPlanRepository
	profiles *domain.MockProfileRepository
	platform *domain.MockNotificationPlatform
	svc      *Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)

	plans := domain.NewMockPlanRepository(ctrl)
	profiles := domain.NewMockProfileRepository(ctrl)
	platform := domain.NewMockNotificationPlatform(ctrl)

	scheduler := schedule.NewService(platform, trigger.NewCalculator(0), nil)
	adjuster := timing.NewAdjuster(&config.TimingConfig{
		MinDataPoints: 7,
		ScoreMargin:   1.5,
		ScoreFloor:    2.0,
	}, nil)
	timingService := timing.NewService(adjuster, profiles, nil)

	return &testEnv{
		plans:    plans,
		profiles: profiles,
		platform: platform,
		svc:      NewService(plans, platform, scheduler, timingService, nil, nil),
	}
}

func livePlan(id string, handles ...string) *domain.Plan {
	return &domain.Plan{
		ID:                  id,
		Label:               "Vitamin D",
		Frequency:           domain.FrequencyDaily,
		ReminderTime:        domain.TimeOfDay{Hour: 8, Minute: 0},
		NotificationHandles: handles,
	}
}

func scheduled(handleID, planID string) domain.ScheduledNotification {
	return domain.ScheduledNotification{
		HandleID: handleID,
		Content:  domain.NotificationContent{PlanID: planID},
	}
}

func TestAudit_DetectsOrphanedAndMissing(t *testing.T) {
	env := newTestEnv(t)

	// Plan A references h1 and h2; the queue holds h1 and the unreferenced h3.
	env.plans.EXPECT().GetAll(gomock.Any()).Return([]*domain.Plan{
		livePlan("plan-a", "h1", "h2"),
	}, nil)
	env.platform.EXPECT().ListScheduled(gomock.Any()).Return([]domain.ScheduledNotification{
		scheduled("h1", "plan-a"),
		scheduled("h3", ""),
	}, nil)

	report, err := env.svc.Audit(context.Background(), "run-1")
	if err != nil {
		t.Fatalf("Audit() error = %v", err)
	}

	if len(report.Orphaned) != 1 || report.Orphaned[0] != "h3" {
		t.Errorf("Orphaned = %v, want [h3]", report.Orphaned)
	}
	if len(report.Missing) != 1 || report.Missing[0].HandleID != "h2" || report.Missing[0].PlanID != "plan-a" {
		t.Errorf("Missing = %v, want [{plan-a h2}]", report.Missing)
	}
	if report.TrackedCount != 1 {
		t.Errorf("TrackedCount = %d, want 1", report.TrackedCount)
	}
	if report.TotalPlans != 1 || report.TotalLive != 2 {
		t.Errorf("totals = %d plans / %d live, want 1/2", report.TotalPlans, report.TotalLive)
	}
	if !report.HasIssues() {
		t.Error("HasIssues() = false, want true")
	}
}

func TestAudit_HealthySystem(t *testing.T) {
	env := newTestEnv(t)

	env.plans.EXPECT().GetAll(gomock.Any()).Return([]*domain.Plan{
		livePlan("plan-a", "h1"),
	}, nil)
	env.platform.EXPECT().ListScheduled(gomock.Any()).Return([]domain.ScheduledNotification{
		scheduled("h1", "plan-a"),
	}, nil)

	report, err := env.svc.Audit(context.Background(), "run-1")
	if err != nil {
		t.Fatalf("Audit() error = %v", err)
	}
	if report.HasIssues() {
		t.Errorf("HasIssues() = true for healthy system: %s", report.Summary())
	}
	if len(report.Duplicated) != 0 {
		t.Errorf("Duplicated = %v, want empty", report.Duplicated)
	}
}

func TestAudit_FrequencyAwareDuplicates(t *testing.T) {
	env := newTestEnv(t)

	// A daily plan justifies one handle; two live handles are excess even
	// though both are referenced.
	env.plans.EXPECT().GetAll(gomock.Any()).Return([]*domain.Plan{
		livePlan("plan-a", "h1", "h2"),
	}, nil)
	env.platform.EXPECT().ListScheduled(gomock.Any()).Return([]domain.ScheduledNotification{
		scheduled("h1", "plan-a"),
		scheduled("h2", "plan-a"),
	}, nil)

	report, err := env.svc.Audit(context.Background(), "run-1")
	if err != nil {
		t.Fatalf("Audit() error = %v", err)
	}

	if len(report.Duplicated) != 1 {
		t.Fatalf("Duplicated = %v, want one finding", report.Duplicated)
	}
	d := report.Duplicated[0]
	if d.PlanID != "plan-a" || d.ExpectedCount != 1 || d.LiveCount != 2 {
		t.Errorf("finding = %+v, want plan-a expected=1 live=2", d)
	}
	// Duplicates alone do not flip the health flag.
	if report.HasIssues() {
		t.Error("HasIssues() = true, want false for duplicates only")
	}
}

func TestAudit_LiteralDuplicateIDs(t *testing.T) {
	env := newTestEnv(t)

	weekly := livePlan("plan-a", "h1", "h1")
	weekly.Frequency = domain.FrequencyWeekly

	env.plans.EXPECT().GetAll(gomock.Any()).Return([]*domain.Plan{weekly}, nil)
	env.platform.EXPECT().ListScheduled(gomock.Any()).Return([]domain.ScheduledNotification{
		scheduled("h1", "plan-a"),
	}, nil)

	report, err := env.svc.Audit(context.Background(), "run-1")
	if err != nil {
		t.Fatalf("Audit() error = %v", err)
	}
	if len(report.Duplicated) != 1 {
		t.Errorf("Duplicated = %v, want one finding for repeated ID", report.Duplicated)
	}
}

func TestCleanupOrphaned_CancelsOnlyOrphans(t *testing.T) {
	env := newTestEnv(t)

	env.plans.EXPECT().GetAll(gomock.Any()).Return([]*domain.Plan{
		livePlan("plan-a", "h1"),
	}, nil)
	env.platform.EXPECT().ListScheduled(gomock.Any()).Return([]domain.ScheduledNotification{
		scheduled("h1", "plan-a"),
		scheduled("h3", ""),
		scheduled("h4", ""),
	}, nil)
	env.platform.EXPECT().CancelTrigger(gomock.Any(), "h3").Return(nil)
	env.platform.EXPECT().CancelTrigger(gomock.Any(), "h4").Return(errors.New("timeout"))

	result, err := env.svc.CleanupOrphaned(context.Background(), "run-1")
	if err != nil {
		t.Fatalf("CleanupOrphaned() error = %v", err)
	}
	if result.CancelledCount != 1 {
		t.Errorf("CancelledCount = %d, want 1", result.CancelledCount)
	}
	if result.FailedCount != 1 {
		t.Errorf("FailedCount = %d, want 1", result.FailedCount)
	}
}

func TestRepairMissing_ReschedulesAffectedPlan(t *testing.T) {
	env := newTestEnv(t)

	plan := livePlan("plan-a", "h1", "h2")

	env.plans.EXPECT().GetAll(gomock.Any()).Return([]*domain.Plan{plan}, nil)
	env.platform.EXPECT().ListScheduled(gomock.Any()).Return([]domain.ScheduledNotification{
		scheduled("h1", "plan-a"),
	}, nil)

	// Freshest state re-read before rebuild.
	env.plans.EXPECT().Get(gomock.Any(), "plan-a").Return(plan, nil)

	// Survivors cancelled before the new set is scheduled.
	env.platform.EXPECT().CancelTrigger(gomock.Any(), "h1").Return(nil)
	env.platform.EXPECT().CancelTrigger(gomock.Any(), "h2").Return(nil)

	env.profiles.EXPECT().Get(gomock.Any(), "plan-a").Return(nil, domain.ErrProfileNotFound)
	env.platform.EXPECT().PermissionState(gomock.Any()).Return(domain.PermissionGranted, nil)
	env.platform.EXPECT().
		ScheduleTrigger(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("h-new", nil)

	env.plans.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *domain.Plan) error {
			if len(p.NotificationHandles) != 1 || p.NotificationHandles[0] != "h-new" {
				t.Errorf("persisted handles = %v, want [h-new]", p.NotificationHandles)
			}
			return nil
		})

	result, err := env.svc.RepairMissing(context.Background(), "run-1")
	if err != nil {
		t.Fatalf("RepairMissing() error = %v", err)
	}
	if result.RepairedCount != 1 || result.FailedCount != 0 {
		t.Errorf("result = %+v, want one repaired plan", result)
	}
}

func TestRepairMissing_NothingToRepair(t *testing.T) {
	env := newTestEnv(t)

	env.plans.EXPECT().GetAll(gomock.Any()).Return([]*domain.Plan{
		livePlan("plan-a", "h1"),
	}, nil)
	env.platform.EXPECT().ListScheduled(gomock.Any()).Return([]domain.ScheduledNotification{
		scheduled("h1", "plan-a"),
	}, nil)

	result, err := env.svc.RepairMissing(context.Background(), "run-1")
	if err != nil {
		t.Fatalf("RepairMissing() error = %v", err)
	}
	if result.RepairedCount != 0 || result.FailedCount != 0 {
		t.Errorf("result = %+v, want zero counts", result)
	}
}

func TestResetSystem_RebuildsEveryPlan(t *testing.T) {
	env := newTestEnv(t)

	planA := livePlan("plan-a", "h1")
	planB := livePlan("plan-b", "h2")

	env.plans.EXPECT().GetAll(gomock.Any()).Return([]*domain.Plan{planA, planB}, nil)
	env.platform.EXPECT().CancelAllTriggers(gomock.Any()).Return(nil)

	env.profiles.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, domain.ErrProfileNotFound).Times(2)
	env.platform.EXPECT().PermissionState(gomock.Any()).Return(domain.PermissionGranted, nil).Times(2)

	calls := 0
	env.platform.EXPECT().
		ScheduleTrigger(gomock.Any(), gomock.Any(), gomock.Any()).
		Times(2).
		DoAndReturn(func(_ context.Context, _ domain.NotificationContent, _ domain.TriggerRule) (string, error) {
			calls++
			if calls == 1 {
				return "new-a", nil
			}
			return "new-b", nil
		})

	env.plans.EXPECT().
		SaveAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, saved []*domain.Plan) error {
			if len(saved) != 2 {
				t.Fatalf("SaveAll got %d plans, want 2", len(saved))
			}
			for _, p := range saved {
				if len(p.NotificationHandles) != 1 {
					t.Errorf("plan %s handles = %v, want one fresh handle", p.ID, p.NotificationHandles)
				}
			}
			return nil
		})

	result, err := env.svc.ResetSystem(context.Background(), "run-1")
	if err != nil {
		t.Fatalf("ResetSystem() error = %v", err)
	}
	if result.RescheduledCount != 2 || result.HandlesCreatedCount != 2 || result.FailedCount != 0 {
		t.Errorf("result = %+v, want two rescheduled plans with one handle each", result)
	}
}

func TestResetSystem_CancelAllFailureAborts(t *testing.T) {
	env := newTestEnv(t)

	env.plans.EXPECT().GetAll(gomock.Any()).Return([]*domain.Plan{livePlan("plan-a", "h1")}, nil)
	env.platform.EXPECT().CancelAllTriggers(gomock.Any()).Return(errors.New("platform down"))

	if _, err := env.svc.ResetSystem(context.Background(), "run-1"); err == nil {
		t.Fatal("ResetSystem() error = nil, want error when wipe fails")
	}
}
