// Package services defines the business logic of the prediction engine:
// weekly prediction generation, actual-mood recording, cross-user comparison
// aggregation, and recommendation feedback scoring. This file centralizes the
// service-level error values so that they can be consistently returned by
// service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the handler
// layer.
package services

import "errors"

var (
	// ErrInvalidWeekStart is returned when a target week-start date does not
	// fall on a Monday. Prediction records are keyed by Monday-anchored
	// weeks, so any other day cannot address a record.
	ErrInvalidWeekStart = errors.New("week start date must be a Monday")

	// ErrInvalidRating is returned when a feedback rating is outside [1,5].
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrRecommendationNotFound indicates that the recommendation being
	// rated does not exist.
	ErrRecommendationNotFound = errors.New("recommendation not found")

	// ErrFeedbackNotFound indicates that the user has not submitted feedback
	// for the requested recommendation yet.
	ErrFeedbackNotFound = errors.New("feedback not found")
)
