package repository

import "errors"

var (
	ErrInvalidPlanData    = errors.New("invalid plan data")
	ErrInvalidProfileData = errors.New("invalid profile data")
)
