package domain

import "context"

//go:generate mockgen -source=platform.go -destination=platform_mock.go -package=domain

// NotificationPlatform is the external notify-platform contract. Cancel is
// idempotent: cancelling a handle that no longer exists is not an error.
// CancelAll wipes every live trigger regardless of ownership and is reserved
// for full system resets.
type NotificationPlatform interface {
	ScheduleTrigger(ctx context.Context, content NotificationContent, rule TriggerRule) (string, error)
	CancelTrigger(ctx context.Context, handleID string) error
	CancelAllTriggers(ctx context.Context) error
	ListScheduled(ctx context.Context) ([]ScheduledNotification, error)
	PermissionState(ctx context.Context) (PermissionState, error)
	RequestPermission(ctx context.Context) (PermissionState, error)
}
