package handler

import (
	"time"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
)

type timeOfDayPayload struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

type planRequest struct {
	Label        string           `json:"label"`
	Category     string           `json:"category"`
	Frequency    string           `json:"frequency"`
	CustomDays   []int            `json:"custom_days"`
	ReminderTime timeOfDayPayload `json:"reminder_time"`
	EndDate      *time.Time       `json:"end_date"`
}

func (r *planRequest) customWeekdays() []time.Weekday {
	days := make([]time.Weekday, 0, len(r.CustomDays))
	for _, d := range r.CustomDays {
		days = append(days, time.Weekday(d))
	}
	return days
}

type planResponse struct {
	ID                  string            `json:"id"`
	Label               string            `json:"label"`
	Category            string            `json:"category,omitempty"`
	Frequency           string            `json:"frequency"`
	CustomDays          []int             `json:"custom_days,omitempty"`
	ReminderTime        timeOfDayPayload  `json:"reminder_time"`
	EffectiveTime       *timeOfDayPayload `json:"effective_time,omitempty"`
	TimingAdapted       bool              `json:"timing_adapted"`
	TimingReasons       []string          `json:"timing_reasons,omitempty"`
	EndDate             *time.Time        `json:"end_date,omitempty"`
	NotificationHandles []string          `json:"notification_handles"`
	CreatedDate         time.Time         `json:"created_date"`
}

func newPlanResponse(plan *domain.Plan) planResponse {
	days := make([]int, 0, len(plan.CustomDays))
	for _, d := range plan.CustomDays {
		days = append(days, int(d))
	}

	return planResponse{
		ID:         plan.ID,
		Label:      plan.Label,
		Category:   plan.Category,
		Frequency:  plan.Frequency.String(),
		CustomDays: days,
		ReminderTime: timeOfDayPayload{
			Hour:   plan.ReminderTime.Hour,
			Minute: plan.ReminderTime.Minute,
		},
		EndDate:             plan.EndDate,
		NotificationHandles: plan.NotificationHandles,
		CreatedDate:         plan.CreatedDate,
	}
}

type responseRequest struct {
	Status string     `json:"status"`
	At     *time.Time `json:"at"`
}

type profileResponse struct {
	PlanID            string    `json:"plan_id"`
	DataPoints        int       `json:"data_points"`
	ConsecutiveMisses int       `json:"consecutive_misses"`
	BestHour          int       `json:"best_hour"`
	BestHourScore     float64   `json:"best_hour_score"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
