package domain

import "errors"

var (
	ErrPlanNotFound        = errors.New("plan not found")
	ErrProfileNotFound     = errors.New("behavior profile not found")
	ErrEmptyLabel          = errors.New("plan label is required")
	ErrInvalidFrequency    = errors.New("invalid frequency")
	ErrInvalidReminderTime = errors.New("invalid reminder time")
	ErrEmptyCustomDays     = errors.New("custom frequency requires at least one day")
	ErrInvalidCustomDay    = errors.New("invalid custom day")
	ErrInvalidResponse     = errors.New("invalid response status")
)
