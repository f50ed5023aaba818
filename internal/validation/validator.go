package validation

import (
	"strings"
	"time"
)

// Validator provides common validation utilities
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidTimestampMs checks if a millisecond timestamp is positive
func (v *Validator) IsValidTimestampMs(ts int64) bool {
	return ts > 0
}

// IsValidSessionRange checks the temporal invariant for a session: a zero end
// marks an active session, otherwise the end must be strictly after the start.
func (v *Validator) IsValidSessionRange(start, end int64) bool {
	if end == 0 {
		return start > 0
	}
	return start > 0 && start < end
}

// IsValidWindow checks that a query window is well-formed
func (v *Validator) IsValidWindow(start, end int64) bool {
	return start >= 0 && end >= start
}

// IsReasonableTimestamp checks that a millisecond timestamp is within sane
// bounds (not before the epoch, not more than a year in the future).
func (v *Validator) IsReasonableTimestamp(ts int64) bool {
	if ts <= 0 {
		return false
	}
	oneYearFromNow := time.Now().AddDate(1, 0, 0).UnixMilli()
	return ts <= oneYearFromNow
}
