package plans

import (
	"time"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
)

// CreateInput carries the user-provided fields of a new plan.
type CreateInput struct {
	Label        string
	Category     string
	Frequency    domain.Frequency
	CustomDays   []time.Weekday
	ReminderTime domain.TimeOfDay
	EndDate      *time.Time
}

// UpdateInput is a full replacement of the plan's user-provided fields.
// Partial updates are not supported; the caller sends the complete plan.
type UpdateInput struct {
	Label        string
	Category     string
	Frequency    domain.Frequency
	CustomDays   []time.Weekday
	ReminderTime domain.TimeOfDay
	EndDate      *time.Time
}

// PlanResult pairs a persisted plan with the timing decision that produced
// its current trigger set.
type PlanResult struct {
	Plan          *domain.Plan
	EffectiveTime domain.TimeOfDay
	TimingAdapted bool
	TimingReasons []string
}
