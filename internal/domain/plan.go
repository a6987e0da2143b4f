package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Frequency represents how often a plan's reminder fires.
type Frequency string

const (
	FrequencyDaily         Frequency = "daily"
	FrequencyEveryOtherDay Frequency = "every_other_day"
	FrequencyWeekly        Frequency = "weekly"
	FrequencyCustom        Frequency = "custom"
)

// EveryOtherDayOccurrences is the bounded forward window of one-shot triggers
// pre-generated for an every-other-day plan. The platform has no native
// "every N days" repeat, so the batch is extended through repair operations
// rather than refreshed automatically.
const EveryOtherDayOccurrences = 7

func (f Frequency) String() string {
	return string(f)
}

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyEveryOtherDay, FrequencyWeekly, FrequencyCustom:
		return true
	}
	return false
}

// TimeOfDay is a wall-clock reminder time, interpreted in device-local time
// at fire time. No timezone conversion is performed anywhere.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 && t.Minute >= 0 && t.Minute <= 59
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On anchors the time-of-day to the calendar date of ref.
func (t TimeOfDay) On(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month(), ref.Day(), t.Hour, t.Minute, 0, 0, ref.Location())
}

// Plan is a user's persisted reminder configuration.
type Plan struct {
	ID                  string         `json:"id"`
	Label               string         `json:"label"`
	Category            string         `json:"category,omitempty"`
	Frequency           Frequency      `json:"frequency"`
	CustomDays          []time.Weekday `json:"custom_days,omitempty"`
	ReminderTime        TimeOfDay      `json:"reminder_time"`
	EndDate             *time.Time     `json:"end_date,omitempty"`
	NotificationHandles []string       `json:"notification_handles"`
	CreatedDate         time.Time      `json:"created_date"`
}

// SortedWeekdays returns a sorted copy of days. Custom-day lists are kept
// sorted so the generated trigger order is deterministic.
func SortedWeekdays(days []time.Weekday) []time.Weekday {
	sorted := make([]time.Weekday, len(days))
	copy(sorted, days)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted
}

func NewPlan(label, category string, frequency Frequency, customDays []time.Weekday, reminderTime TimeOfDay, endDate *time.Time) *Plan {
	return &Plan{
		ID:                  uuid.NewString(),
		Label:               label,
		Category:            category,
		Frequency:           frequency,
		CustomDays:          SortedWeekdays(customDays),
		ReminderTime:        reminderTime,
		EndDate:             endDate,
		NotificationHandles: make([]string, 0),
		CreatedDate:         time.Now(),
	}
}

func (p *Plan) Validate() error {
	if p.Label == "" {
		return ErrEmptyLabel
	}
	if !p.Frequency.Valid() {
		return ErrInvalidFrequency
	}
	if !p.ReminderTime.Valid() {
		return ErrInvalidReminderTime
	}
	if p.Frequency == FrequencyCustom && len(p.CustomDays) == 0 {
		return ErrEmptyCustomDays
	}
	for _, d := range p.CustomDays {
		if d < time.Sunday || d > time.Saturday {
			return ErrInvalidCustomDay
		}
	}
	return nil
}

// ExpectedHandleCount is the number of live handles the plan's frequency rule
// justifies. Anything beyond it counts as excess during audit.
func (p *Plan) ExpectedHandleCount() int {
	switch p.Frequency {
	case FrequencyDaily, FrequencyWeekly:
		return 1
	case FrequencyCustom:
		return len(p.CustomDays)
	case FrequencyEveryOtherDay:
		return EveryOtherDayOccurrences
	}
	return 0
}

// Expired reports whether the plan's end date has passed as of ref.
// End-date expiry is best effort: repeating platform triggers keep firing
// past this date until an explicit repair or reset cancels them.
func (p *Plan) Expired(ref time.Time) bool {
	if p.EndDate == nil {
		return false
	}
	y, m, d := p.EndDate.Date()
	endOfDay := time.Date(y, m, d, 23, 59, 59, 0, ref.Location())
	return ref.After(endOfDay)
}

// SetHandles replaces the plan's handle list with a fresh copy.
func (p *Plan) SetHandles(handles []string) {
	p.NotificationHandles = make([]string, len(handles))
	copy(p.NotificationHandles, handles)
}
