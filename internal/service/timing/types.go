package timing

import (
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
)

// Adjustment is the outcome of the smart-timing pipeline. Reasons holds one
// human-readable entry per stage that moved the time, in stage order.
type Adjustment struct {
	Time    domain.TimeOfDay `json:"time"`
	Adapted bool             `json:"adapted"`
	Reasons []string         `json:"reasons,omitempty"`
	Stages  []string         `json:"-"`
}

// PreferenceWindow is a user-declared daypart during which reminders are
// welcome. EndHour is exclusive.
type PreferenceWindow struct {
	Name      string `json:"name"`
	StartHour int    `json:"start_hour"`
	EndHour   int    `json:"end_hour"`
}

func (w PreferenceWindow) Contains(hour int) bool {
	return hour >= w.StartHour && hour < w.EndHour
}

// DefaultPreferenceWindows are the morning/afternoon/evening dayparts used
// when the user has not declared their own.
func DefaultPreferenceWindows() []PreferenceWindow {
	return []PreferenceWindow{
		{Name: "morning", StartHour: 7, EndHour: 12},
		{Name: "afternoon", StartHour: 12, EndHour: 18},
		{Name: "evening", StartHour: 18, EndHour: 22},
	}
}
