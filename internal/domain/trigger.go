package domain

import (
	"time"
)

// TriggerType distinguishes repeating calendar triggers from one-shot
// absolute-date triggers.
type TriggerType string

const (
	TriggerCalendar TriggerType = "calendar"
	TriggerDate     TriggerType = "date"
)

// RepeatInterval is the repeat cadence of a calendar trigger.
type RepeatInterval string

const (
	RepeatDaily  RepeatInterval = "daily"
	RepeatWeekly RepeatInterval = "weekly"
)

// TriggerRule is the firing rule handed to the notify platform.
// Calendar rules carry hour/minute (and weekday for weekly repeats);
// date rules carry an absolute fire time.
type TriggerRule struct {
	Type    TriggerType    `json:"type"`
	Hour    int            `json:"hour"`
	Minute  int            `json:"minute"`
	Repeat  RepeatInterval `json:"repeat,omitempty"`
	Weekday time.Weekday   `json:"weekday,omitempty"`
	FireAt  time.Time      `json:"fire_at,omitempty"`
}

func NewDailyRule(t TimeOfDay) TriggerRule {
	return TriggerRule{
		Type:   TriggerCalendar,
		Hour:   t.Hour,
		Minute: t.Minute,
		Repeat: RepeatDaily,
	}
}

func NewWeeklyRule(t TimeOfDay, weekday time.Weekday) TriggerRule {
	return TriggerRule{
		Type:    TriggerCalendar,
		Hour:    t.Hour,
		Minute:  t.Minute,
		Repeat:  RepeatWeekly,
		Weekday: weekday,
	}
}

func NewDateRule(fireAt time.Time) TriggerRule {
	return TriggerRule{
		Type:   TriggerDate,
		FireAt: fireAt,
	}
}

func (r TriggerRule) IsRepeating() bool {
	return r.Type == TriggerCalendar
}

// NotificationContent is the payload attached to a trigger. PlanID ties a
// live platform entry back to its owning plan during audit.
type NotificationContent struct {
	PlanID string `json:"plan_id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// ScheduledNotification is one live entry in the platform queue.
type ScheduledNotification struct {
	HandleID string              `json:"handle_id"`
	Content  NotificationContent `json:"content"`
	Rule     TriggerRule         `json:"rule"`
}

// PermissionState mirrors the platform's notification permission.
type PermissionState string

const (
	PermissionGranted      PermissionState = "granted"
	PermissionDenied       PermissionState = "denied"
	PermissionUndetermined PermissionState = "undetermined"
)

func (s PermissionState) String() string {
	return string(s)
}

func (s PermissionState) Granted() bool {
	return s == PermissionGranted
}
