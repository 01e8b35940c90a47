package service

import "errors"

var (
	ErrUnknownHall     = errors.New("unknown dining hall")
	ErrMealNotFound    = errors.New("meal not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidProfile  = errors.New("invalid profile")
	ErrInvalidToken    = errors.New("invalid token")
	ErrInvalidDate     = errors.New("invalid date, expected YYYY-MM-DD")
	ErrUpstream        = errors.New("menu upstream error")
	ErrPhotosDisabled  = errors.New("photo storage is not configured")
	ErrNoMeals         = errors.New("at least one meal name is required")
	ErrInvalidFeedback = errors.New("invalid feedback")
	ErrInvalidMeal     = errors.New("invalid meal")
)
