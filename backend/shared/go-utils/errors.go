// backend/shared/go-utils/errors.go
package utils

import "errors"

// Domain-level errors the service layer returns; controllers map them to
// status codes with errors.Is.
var (
	ErrReminderNotFound = errors.New("reminder_not_found")
	ErrEventNotFound    = errors.New("event_not_found")

	// For optimistic-lock contention
	ErrRowVersionConflict = errors.New("row_version_conflict")

	// SendGrid and other outbound calls
	ErrExternalServiceFailure = errors.New("external_service_failure")
)
