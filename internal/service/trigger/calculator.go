package trigger

import (
	"time"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
)

// Calculator expands a plan's frequency rule into concrete platform trigger
// rules. All computation is on local wall-clock time; the platform fires
// calendar triggers in device-local time.
type Calculator struct {
	occurrences int
}

func NewCalculator(occurrences int) *Calculator {
	if occurrences <= 0 {
		occurrences = domain.EveryOtherDayOccurrences
	}
	return &Calculator{
		occurrences: occurrences,
	}
}

// Rules computes the trigger rules for plan at the given time-of-day.
// now anchors the bounded every-other-day batch and the weekly weekday.
func (c *Calculator) Rules(plan *domain.Plan, at domain.TimeOfDay, now time.Time) []domain.TriggerRule {
	switch plan.Frequency {
	case domain.FrequencyDaily:
		return []domain.TriggerRule{domain.NewDailyRule(at)}

	case domain.FrequencyWeekly:
		return []domain.TriggerRule{domain.NewWeeklyRule(at, now.Weekday())}

	case domain.FrequencyCustom:
		rules := make([]domain.TriggerRule, 0, len(plan.CustomDays))
		for _, day := range plan.CustomDays {
			rules = append(rules, domain.NewWeeklyRule(at, day))
		}
		return rules

	case domain.FrequencyEveryOtherDay:
		return c.everyOtherDayRules(plan, at, now)
	}

	return nil
}

// everyOtherDayRules pre-generates a bounded batch of one-shot triggers.
// The platform has no "every N days" repeat, so coverage ends when the batch
// runs out; repair operations regenerate it. Occurrences past the plan's end
// date are never generated.
func (c *Calculator) everyOtherDayRules(plan *domain.Plan, at domain.TimeOfDay, now time.Time) []domain.TriggerRule {
	first := at.On(now)
	if !first.After(now) {
		first = first.AddDate(0, 0, 1)
	}

	rules := make([]domain.TriggerRule, 0, c.occurrences)
	fireAt := first
	for i := 0; i < c.occurrences; i++ {
		if plan.Expired(fireAt) {
			break
		}
		rules = append(rules, domain.NewDateRule(fireAt))
		fireAt = fireAt.AddDate(0, 0, 2)
	}

	return rules
}
