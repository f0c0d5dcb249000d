package utils

import "errors"

// Sentinel errors for calendar generation. Callers use errors.Is.
var (
	ErrUnknownFrequency   = errors.New("unknown_recurrence_frequency")
	ErrInvalidChargeRange = errors.New("invalid_charge_range")
)
