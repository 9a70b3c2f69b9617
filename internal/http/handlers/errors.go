// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes the symbolic error code constants that are mapped to
// HTTP responses (via the `fail()` helper in this package). The codes give
// clients a stable, machine-readable error taxonomy alongside the
// human-readable messages.
//
// Conventions:
//   - Codes are lowercase, snake_case.
//   - Generic codes (bad_request, not_found, conflict, ...) mirror common
//     HTTP status semantics.
//   - Domain-specific codes (generate_failed, record_failed, ...) are
//     reserved for business operations whose failure a status alone cannot
//     convey.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "not_found",
//	  "message": "recommendation not found"
//	}
package handlers

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"

	// Domain-specific:
	ErrCodeGenerateFailed   = "generate_failed"
	ErrCodeRecordFailed     = "record_failed"
	ErrCodeCompareFailed    = "compare_failed"
	ErrCodeListFailed       = "list_failed"
	ErrCodeFeedbackFailed   = "feedback_failed"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
