package domain

import (
	"errors"
	"fmt"
)

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors carry no infrastructure dependency.

var (
	// Lookup errors
	ErrClientNotFound    = errors.New("client not found")
	ErrCaregiverNotFound = errors.New("caregiver not found")
	ErrEventNotFound     = errors.New("service event not found")

	// Posting errors
	ErrPostingFailed = errors.New("posting transaction failed")
)

// ValidationError reports a rejected input together with the offending
// field so the caller can re-prompt. Always recoverable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is one of the lookup sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrClientNotFound) ||
		errors.Is(err, ErrCaregiverNotFound) ||
		errors.Is(err, ErrEventNotFound)
}
