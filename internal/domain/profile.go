package domain

import (
	"time"
)

// ResponseStatus is how the user reacted to a fired reminder.
type ResponseStatus string

const (
	ResponseTaken   ResponseStatus = "taken"
	ResponseSnoozed ResponseStatus = "snoozed"
	ResponseIgnored ResponseStatus = "ignored"
)

func (s ResponseStatus) String() string {
	return string(s)
}

func (s ResponseStatus) Valid() bool {
	switch s {
	case ResponseTaken, ResponseSnoozed, ResponseIgnored:
		return true
	}
	return false
}

const (
	responseScoreTaken  = 1.0
	responseScoreMissed = -0.5
	scoreDecayFactor    = 0.98
)

// QuietWindow is a user-declared window of hours during which adjusted
// reminder times should not land. EndHour is inclusive; windows may wrap
// past midnight (e.g. 22 to 6).
type QuietWindow struct {
	StartHour int `json:"start_hour"`
	EndHour   int `json:"end_hour"`
}

func (w QuietWindow) Contains(hour int) bool {
	if w.StartHour <= w.EndHour {
		return hour >= w.StartHour && hour <= w.EndHour
	}
	return hour >= w.StartHour || hour <= w.EndHour
}

// BehaviorProfile accumulates per-hour and per-weekday response scores for
// one plan. Created lazily on the first learning-enabled interaction and
// kept until an explicit user reset.
type BehaviorProfile struct {
	PlanID            string          `json:"plan_id"`
	HourScores        [24]float64     `json:"hour_scores"`
	WeekdayScores     [7]float64      `json:"weekday_scores"`
	DataPoints        int             `json:"data_points"`
	ConsecutiveMisses int             `json:"consecutive_misses"`
	QuietWindows      []QuietWindow   `json:"quiet_windows,omitempty"`
	LastResponse      *ResponseStatus `json:"last_response,omitempty"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func NewBehaviorProfile(planID string) *BehaviorProfile {
	return &BehaviorProfile{
		PlanID:    planID,
		UpdatedAt: time.Now(),
	}
}

// RecordResponse folds one reminder response into the accumulators.
// Older observations decay so a recent streak outweighs stale history.
func (p *BehaviorProfile) RecordResponse(status ResponseStatus, at time.Time) {
	for i := range p.HourScores {
		p.HourScores[i] *= scoreDecayFactor
	}
	for i := range p.WeekdayScores {
		p.WeekdayScores[i] *= scoreDecayFactor
	}

	delta := responseScoreMissed
	if status == ResponseTaken {
		delta = responseScoreTaken
	}

	p.HourScores[at.Hour()] += delta
	p.WeekdayScores[int(at.Weekday())] += delta
	p.DataPoints++

	if status == ResponseTaken {
		p.ConsecutiveMisses = 0
	} else {
		p.ConsecutiveMisses++
	}

	s := status
	p.LastResponse = &s
	p.UpdatedAt = at
}

// BestHour returns the hour with the highest accumulated score.
func (p *BehaviorProfile) BestHour() (int, float64) {
	bestHour := 0
	bestScore := p.HourScores[0]
	for h := 1; h < len(p.HourScores); h++ {
		if p.HourScores[h] > bestScore {
			bestHour = h
			bestScore = p.HourScores[h]
		}
	}
	return bestHour, bestScore
}

func (p *BehaviorProfile) ScoreAt(hour int) float64 {
	if hour < 0 || hour > 23 {
		return 0
	}
	return p.HourScores[hour]
}

func (p *BehaviorProfile) InQuietHours(hour int) (QuietWindow, bool) {
	for _, w := range p.QuietWindows {
		if w.Contains(hour) {
			return w, true
		}
	}
	return QuietWindow{}, false
}
