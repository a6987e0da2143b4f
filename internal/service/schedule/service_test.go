package schedule

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/service/trigger"
)

func newTestService(platform domain.NotificationPlatform) *Service {
	return NewService(platform, trigger.NewCalculator(0), nil)
}

func dailyPlan() *domain.Plan {
	return &domain.Plan{
		ID:           "plan-1",
		Label:        "Vitamin D",
		Frequency:    domain.FrequencyDaily,
		ReminderTime: domain.TimeOfDay{Hour: 8, Minute: 0},
	}
}

func TestSchedule_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	platform := domain.NewMockNotificationPlatform(ctrl)
	platform.EXPECT().PermissionState(gomock.Any()).Return(domain.PermissionGranted, nil)
	platform.EXPECT().
		ScheduleTrigger(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, content domain.NotificationContent, rule domain.TriggerRule) (string, error) {
			if content.PlanID != "plan-1" {
				t.Errorf("content.PlanID = %q, want plan-1", content.PlanID)
			}
			if content.Body != "Vitamin D" {
				t.Errorf("content.Body = %q, want plan label", content.Body)
			}
			if rule.Repeat != domain.RepeatDaily {
				t.Errorf("rule.Repeat = %s, want daily", rule.Repeat)
			}
			return "handle-1", nil
		})

	svc := newTestService(platform)
	handles, err := svc.Schedule(context.Background(), dailyPlan(), domain.TimeOfDay{Hour: 8, Minute: 0})
	if err != nil {
		t.Fatalf("Schedule() error = %v", err)
	}
	if len(handles) != 1 || handles[0] != "handle-1" {
		t.Errorf("handles = %v, want [handle-1]", handles)
	}
}

func TestSchedule_PermissionDeniedReturnsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	platform := domain.NewMockNotificationPlatform(ctrl)
	platform.EXPECT().PermissionState(gomock.Any()).Return(domain.PermissionDenied, nil)
	// No ScheduleTrigger calls expected.

	svc := newTestService(platform)
	handles, err := svc.Schedule(context.Background(), dailyPlan(), domain.TimeOfDay{Hour: 8, Minute: 0})
	if err != nil {
		t.Fatalf("Schedule() error = %v, want nil on denied permission", err)
	}
	if handles == nil {
		t.Fatal("handles = nil, want empty slice")
	}
	if len(handles) != 0 {
		t.Errorf("handles = %v, want empty", handles)
	}
}

func TestSchedule_PartialFailureReturnsSubset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	plan := &domain.Plan{
		ID:           "plan-1",
		Label:        "Iron",
		Frequency:    domain.FrequencyCustom,
		CustomDays:   []time.Weekday{time.Monday, time.Wednesday, time.Friday},
		ReminderTime: domain.TimeOfDay{Hour: 8, Minute: 0},
	}

	platform := domain.NewMockNotificationPlatform(ctrl)
	platform.EXPECT().PermissionState(gomock.Any()).Return(domain.PermissionGranted, nil)

	calls := 0
	platform.EXPECT().
		ScheduleTrigger(gomock.Any(), gomock.Any(), gomock.Any()).
		Times(3).
		DoAndReturn(func(_ context.Context, _ domain.NotificationContent, _ domain.TriggerRule) (string, error) {
			calls++
			if calls == 2 {
				return "", errors.New("platform unavailable")
			}
			return fmt.Sprintf("handle-%d", calls), nil
		})

	svc := newTestService(platform)
	handles, err := svc.Schedule(context.Background(), plan, domain.TimeOfDay{Hour: 8, Minute: 0})
	if err != nil {
		t.Fatalf("Schedule() error = %v, want nil on partial failure", err)
	}
	if len(handles) != 2 {
		t.Errorf("got %d handles, want 2 survivors", len(handles))
	}
}

func TestSchedule_PermissionCheckError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	platform := domain.NewMockNotificationPlatform(ctrl)
	platform.EXPECT().PermissionState(gomock.Any()).Return(domain.PermissionState(""), errors.New("network down"))

	svc := newTestService(platform)
	if _, err := svc.Schedule(context.Background(), dailyPlan(), domain.TimeOfDay{Hour: 8, Minute: 0}); err == nil {
		t.Fatal("Schedule() error = nil, want error when permission check fails")
	}
}

func TestCancel_IsolatesFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	platform := domain.NewMockNotificationPlatform(ctrl)
	platform.EXPECT().CancelTrigger(gomock.Any(), "h1").Return(nil)
	platform.EXPECT().CancelTrigger(gomock.Any(), "h2").Return(errors.New("timeout"))
	platform.EXPECT().CancelTrigger(gomock.Any(), "h3").Return(nil)

	svc := newTestService(platform)
	result := svc.Cancel(context.Background(), []string{"h1", "h2", "h3"})

	if result.CancelledCount != 2 {
		t.Errorf("CancelledCount = %d, want 2", result.CancelledCount)
	}
	if result.FailedCount != 1 {
		t.Errorf("FailedCount = %d, want 1", result.FailedCount)
	}
}

func TestCancel_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	platform := domain.NewMockNotificationPlatform(ctrl)

	svc := newTestService(platform)
	result := svc.Cancel(context.Background(), nil)

	if result.CancelledCount != 0 || result.FailedCount != 0 {
		t.Errorf("result = %+v, want zero counts", result)
	}
}

func TestCancelAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	platform := domain.NewMockNotificationPlatform(ctrl)
	platform.EXPECT().CancelAllTriggers(gomock.Any()).Return(nil)

	svc := newTestService(platform)
	if err := svc.CancelAll(context.Background()); err != nil {
		t.Fatalf("CancelAll() error = %v", err)
	}
}
