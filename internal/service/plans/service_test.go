package plans

import (
	"context"
	"errors"
	"testing"
	"time"

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

	plansRepo := domain.NewMockPlanRepository(ctrl)
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
		plans:    plansRepo,
		profiles: profiles,
		platform: platform,
		svc:      NewService(plansRepo, scheduler, timingService),
	}
}

func TestCreate_SchedulesAndPersists(t *testing.T) {
	env := newTestEnv(t)

	env.profiles.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, domain.ErrProfileNotFound)
	env.platform.EXPECT().PermissionState(gomock.Any()).Return(domain.PermissionGranted, nil)
	env.platform.EXPECT().
		ScheduleTrigger(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("handle-1", nil)
	env.plans.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *domain.Plan) error {
			if len(p.NotificationHandles) != 1 || p.NotificationHandles[0] != "handle-1" {
				t.Errorf("persisted handles = %v, want [handle-1]", p.NotificationHandles)
			}
			return nil
		})

	result, err := env.svc.Create(context.Background(), CreateInput{
		Label:        "Vitamin D",
		Frequency:    domain.FrequencyDaily,
		ReminderTime: domain.TimeOfDay{Hour: 8, Minute: 0},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if result.Plan.ID == "" {
		t.Error("expected generated plan ID")
	}
	if result.EffectiveTime.Hour != 8 {
		t.Errorf("EffectiveTime = %s, want 08:00", result.EffectiveTime)
	}
}

func TestCreate_ValidationRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Create(context.Background(), CreateInput{
		Frequency:    domain.FrequencyDaily,
		ReminderTime: domain.TimeOfDay{Hour: 8, Minute: 0},
	})
	if !errors.Is(err, domain.ErrEmptyLabel) {
		t.Fatalf("Create() error = %v, want ErrEmptyLabel", err)
	}
}

func TestCreate_WithoutPermissionPersistsZeroHandles(t *testing.T) {
	env := newTestEnv(t)

	env.profiles.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, domain.ErrProfileNotFound)
	env.platform.EXPECT().PermissionState(gomock.Any()).Return(domain.PermissionDenied, nil)
	env.plans.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *domain.Plan) error {
			if len(p.NotificationHandles) != 0 {
				t.Errorf("persisted handles = %v, want none without permission", p.NotificationHandles)
			}
			return nil
		})

	result, err := env.svc.Create(context.Background(), CreateInput{
		Label:        "Vitamin D",
		Frequency:    domain.FrequencyDaily,
		ReminderTime: domain.TimeOfDay{Hour: 8, Minute: 0},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(result.Plan.NotificationHandles) != 0 {
		t.Errorf("handles = %v, want none", result.Plan.NotificationHandles)
	}
}

func TestUpdate_CancelsBeforeScheduling(t *testing.T) {
	env := newTestEnv(t)

	existing := &domain.Plan{
		ID:                  "plan-1",
		Label:               "Vitamin D",
		Frequency:           domain.FrequencyDaily,
		ReminderTime:        domain.TimeOfDay{Hour: 8, Minute: 0},
		NotificationHandles: []string{"old-1"},
	}

	env.plans.EXPECT().Get(gomock.Any(), "plan-1").Return(existing, nil)
	env.profiles.EXPECT().Get(gomock.Any(), "plan-1").Return(nil, domain.ErrProfileNotFound)

	// Old handles must be cancelled to completion before any new trigger
	// is registered.
	gomock.InOrder(
		env.platform.EXPECT().CancelTrigger(gomock.Any(), "old-1").Return(nil),
		env.platform.EXPECT().PermissionState(gomock.Any()).Return(domain.PermissionGranted, nil),
		env.platform.EXPECT().
			ScheduleTrigger(gomock.Any(), gomock.Any(), gomock.Any()).
			Return("new-1", nil),
	)

	env.plans.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *domain.Plan) error {
			if p.Label != "Vitamin D3" {
				t.Errorf("persisted label = %q, want updated label", p.Label)
			}
			if len(p.NotificationHandles) != 1 || p.NotificationHandles[0] != "new-1" {
				t.Errorf("persisted handles = %v, want [new-1]", p.NotificationHandles)
			}
			return nil
		})

	result, err := env.svc.Update(context.Background(), "plan-1", UpdateInput{
		Label:        "Vitamin D3",
		Frequency:    domain.FrequencyDaily,
		ReminderTime: domain.TimeOfDay{Hour: 9, Minute: 0},
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if result.Plan.ReminderTime.Hour != 9 {
		t.Errorf("ReminderTime = %s, want 09:00", result.Plan.ReminderTime)
	}
}

func TestUpdate_InvalidInputLeavesTriggersIntact(t *testing.T) {
	env := newTestEnv(t)

	existing := &domain.Plan{
		ID:                  "plan-1",
		Label:               "Vitamin D",
		Frequency:           domain.FrequencyDaily,
		ReminderTime:        domain.TimeOfDay{Hour: 8, Minute: 0},
		NotificationHandles: []string{"old-1"},
	}

	// No platform expectations: a rejected edit must not cancel or
	// reschedule anything.
	env.plans.EXPECT().Get(gomock.Any(), "plan-1").Return(existing, nil).Times(2)

	_, err := env.svc.Update(context.Background(), "plan-1", UpdateInput{
		Frequency:    domain.FrequencyDaily,
		ReminderTime: domain.TimeOfDay{Hour: 9, Minute: 0},
	})
	if !errors.Is(err, domain.ErrEmptyLabel) {
		t.Fatalf("Update() error = %v, want ErrEmptyLabel", err)
	}

	_, err = env.svc.Update(context.Background(), "plan-1", UpdateInput{
		Label:        "Vitamin D",
		Frequency:    domain.FrequencyCustom,
		ReminderTime: domain.TimeOfDay{Hour: 9, Minute: 0},
	})
	if !errors.Is(err, domain.ErrEmptyCustomDays) {
		t.Fatalf("Update() error = %v, want ErrEmptyCustomDays", err)
	}
}

func TestUpdate_PlanNotFound(t *testing.T) {
	env := newTestEnv(t)

	env.plans.EXPECT().Get(gomock.Any(), "missing").Return(nil, domain.ErrPlanNotFound)

	_, err := env.svc.Update(context.Background(), "missing", UpdateInput{
		Label:        "Vitamin D",
		Frequency:    domain.FrequencyDaily,
		ReminderTime: domain.TimeOfDay{Hour: 8, Minute: 0},
	})
	if !errors.Is(err, domain.ErrPlanNotFound) {
		t.Fatalf("Update() error = %v, want ErrPlanNotFound", err)
	}
}

func TestDelete_CancelsTriggersAndProfile(t *testing.T) {
	env := newTestEnv(t)

	existing := &domain.Plan{
		ID:                  "plan-1",
		Label:               "Iron",
		Frequency:           domain.FrequencyCustom,
		CustomDays:          []time.Weekday{time.Monday, time.Friday},
		ReminderTime:        domain.TimeOfDay{Hour: 8, Minute: 0},
		NotificationHandles: []string{"h1", "h2"},
	}

	env.plans.EXPECT().Get(gomock.Any(), "plan-1").Return(existing, nil)
	env.platform.EXPECT().CancelTrigger(gomock.Any(), "h1").Return(nil)
	env.platform.EXPECT().CancelTrigger(gomock.Any(), "h2").Return(nil)
	env.profiles.EXPECT().Delete(gomock.Any(), "plan-1").Return(nil)
	env.plans.EXPECT().Delete(gomock.Any(), "plan-1").Return(nil)

	if err := env.svc.Delete(context.Background(), "plan-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
}

func TestDelete_CancelFailureDoesNotBlockRemoval(t *testing.T) {
	env := newTestEnv(t)

	existing := &domain.Plan{
		ID:                  "plan-1",
		Label:               "Iron",
		Frequency:           domain.FrequencyDaily,
		ReminderTime:        domain.TimeOfDay{Hour: 8, Minute: 0},
		NotificationHandles: []string{"h1"},
	}

	env.plans.EXPECT().Get(gomock.Any(), "plan-1").Return(existing, nil)
	env.platform.EXPECT().CancelTrigger(gomock.Any(), "h1").Return(errors.New("timeout"))
	env.profiles.EXPECT().Delete(gomock.Any(), "plan-1").Return(nil)
	env.plans.EXPECT().Delete(gomock.Any(), "plan-1").Return(nil)

	if err := env.svc.Delete(context.Background(), "plan-1"); err != nil {
		t.Fatalf("Delete() error = %v, want nil despite cancel failure", err)
	}
}
