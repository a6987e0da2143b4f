package config

import (
	"os"
	"strconv"
)

const (
	timingMinDataPointsEnv = "TIMING_MIN_DATA_POINTS"
	timingScoreMarginEnv   = "TIMING_SCORE_MARGIN"
	timingScoreFloorEnv    = "TIMING_SCORE_FLOOR"

	defaultTimingMinDataPoints = 7
	defaultTimingScoreMargin   = 1.5
	defaultTimingScoreFloor    = 2.0
)

// TimingConfig tunes the behavioral stage of the smart-timing pipeline.
// MinDataPoints gates the stage entirely; ScoreMargin and ScoreFloor form
// the double condition that keeps single-observation noise from moving the
// reminder.
type TimingConfig struct {
	MinDataPoints int
	ScoreMargin   float64
	ScoreFloor    float64
}

func LoadTimingConfig() *TimingConfig {
	minPoints := defaultTimingMinDataPoints
	if v := os.Getenv(timingMinDataPointsEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			minPoints = parsed
		}
	}

	margin := defaultTimingScoreMargin
	if v := os.Getenv(timingScoreMarginEnv); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 1 {
			margin = parsed
		}
	}

	floor := defaultTimingScoreFloor
	if v := os.Getenv(timingScoreFloorEnv); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			floor = parsed
		}
	}

	return &TimingConfig{
		MinDataPoints: minPoints,
		ScoreMargin:   margin,
		ScoreFloor:    floor,
	}
}
