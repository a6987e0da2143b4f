package timing

import (
	"fmt"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/config"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
)

// Adjuster runs the four-stage adjusted-time pipeline: category science
// first, then personalization, then comfort and quiet hours last. Stages are
// strictly ordered and each consumes the previous stage's output; the
// ordering is a product decision, not an implementation detail.
type Adjuster struct {
	minDataPoints     int
	scoreMargin       float64
	scoreFloor        float64
	preferenceWindows []PreferenceWindow
}

func NewAdjuster(cfg *config.TimingConfig, windows []PreferenceWindow) *Adjuster {
	if len(windows) == 0 {
		windows = DefaultPreferenceWindows()
	}
	return &Adjuster{
		minDataPoints:     cfg.MinDataPoints,
		scoreMargin:       cfg.ScoreMargin,
		scoreFloor:        cfg.ScoreFloor,
		preferenceWindows: windows,
	}
}

// Adjust computes the effective reminder time for a plan. profile may be
// nil, in which case the behavioral and quiet-hours stages are no-ops.
func (a *Adjuster) Adjust(base domain.TimeOfDay, category string, profile *domain.BehaviorProfile) Adjustment {
	adj := Adjustment{Time: base}

	a.applyCategoryNudge(&adj, category)
	a.applyBehavioralNudge(&adj, profile)
	a.applyPreferenceWindowNudge(&adj)
	a.applyQuietHoursNudge(&adj, profile)

	return adj
}

// applyCategoryNudge snaps to the recommendation-table candidate closest to
// the user's chosen hour.
func (a *Adjuster) applyCategoryNudge(adj *Adjustment, category string) {
	candidates := RecommendedHours(category)
	if len(candidates) == 0 {
		return
	}

	current := adj.Time.Hour
	best := candidates[0]
	for _, h := range candidates[1:] {
		if absInt(h-current) < absInt(best-current) {
			best = h
		}
	}

	if best == current {
		return
	}

	a.move(adj, domain.TimeOfDay{Hour: best, Minute: adj.Time.Minute}, "category",
		fmt.Sprintf("%s is best taken around %02d:00", category, best))
}

// applyBehavioralNudge adopts the profile's best-responding hour, but only
// past the data-point threshold and only when that hour beats the current
// one by both the multiplicative margin and the absolute floor. The double
// condition keeps a single lucky data point from moving the reminder.
func (a *Adjuster) applyBehavioralNudge(adj *Adjustment, profile *domain.BehaviorProfile) {
	if profile == nil || profile.DataPoints < a.minDataPoints {
		return
	}

	bestHour, bestScore := profile.BestHour()
	if bestHour == adj.Time.Hour {
		return
	}

	currentScore := profile.ScoreAt(adj.Time.Hour)
	if bestScore < a.scoreFloor {
		return
	}
	if currentScore > 0 && bestScore < currentScore*a.scoreMargin {
		return
	}

	a.move(adj, domain.TimeOfDay{Hour: bestHour, Minute: adj.Time.Minute}, "behavioral",
		fmt.Sprintf("you respond best around %02d:00", bestHour))
}

// applyPreferenceWindowNudge snaps a time that landed outside every declared
// daypart to the start of the window whose start hour is numerically
// closest.
func (a *Adjuster) applyPreferenceWindowNudge(adj *Adjustment) {
	for _, w := range a.preferenceWindows {
		if w.Contains(adj.Time.Hour) {
			return
		}
	}

	current := adj.Time.Hour
	best := a.preferenceWindows[0]
	for _, w := range a.preferenceWindows[1:] {
		if absInt(w.StartHour-current) < absInt(best.StartHour-current) {
			best = w
		}
	}

	a.move(adj, domain.TimeOfDay{Hour: best.StartHour, Minute: adj.Time.Minute}, "preference_window",
		fmt.Sprintf("moved into your %s window", best.Name))
}

// applyQuietHoursNudge shifts a time landing inside a quiet window to one
// hour past that window's end.
func (a *Adjuster) applyQuietHoursNudge(adj *Adjustment, profile *domain.BehaviorProfile) {
	if profile == nil {
		return
	}

	window, inside := profile.InQuietHours(adj.Time.Hour)
	if !inside {
		return
	}

	target := (window.EndHour + 1) % 24
	a.move(adj, domain.TimeOfDay{Hour: target, Minute: adj.Time.Minute}, "quiet_hours",
		fmt.Sprintf("shifted past quiet hours ending at %02d:00", window.EndHour))
}

func (a *Adjuster) move(adj *Adjustment, to domain.TimeOfDay, stage, reason string) {
	from := adj.Time
	adj.Time = to
	adj.Adapted = true
	adj.Reasons = append(adj.Reasons, fmt.Sprintf("%s (%s -> %s)", reason, from, to))
	adj.Stages = append(adj.Stages, stage)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
