package validation

import (
	"timeclock/internal/domain"
)

// SessionValidator validates session records and lifecycle inputs
type SessionValidator struct {
	validator *Validator
}

// NewSessionValidator creates a new SessionValidator instance
func NewSessionValidator() *SessionValidator {
	return &SessionValidator{
		validator: NewValidator(),
	}
}

// ValidateSession checks a session record's invariants
func (sv *SessionValidator) ValidateSession(s domain.Session) error {
	ve := NewValidationError()

	if !sv.validator.IsNonEmptyString(s.ID) {
		ve.AddRequiredError("id")
	}
	if !sv.validator.IsValidTimestampMs(s.Start) {
		ve.AddInvalidValueError("start", s.Start, "start timestamp must be positive")
	}
	if !sv.validator.IsValidSessionRange(s.Start, s.End) {
		ve.AddInvalidRangeError("end", s.End, "end must be 0 for active sessions or after start")
	}
	if !sv.validator.IsNonEmptyString(s.EmployeeID) {
		ve.AddRequiredError("employeeId")
	}

	if ve.HasErrors() {
		return ve
	}
	return nil
}

// ValidateClockIn checks clock-in request inputs
func (sv *SessionValidator) ValidateClockIn(employeeID string, timestampMs int64) error {
	ve := NewValidationError()

	if !sv.validator.IsNonEmptyString(employeeID) {
		ve.AddRequiredError("employeeId")
	}
	if !sv.validator.IsValidTimestampMs(timestampMs) {
		ve.AddInvalidValueError("timestamp", timestampMs, "timestamp must be positive")
	} else if !sv.validator.IsReasonableTimestamp(timestampMs) {
		ve.AddInvalidRangeError("timestamp", timestampMs, "timestamp is too far in the future")
	}

	if ve.HasErrors() {
		return ve
	}
	return nil
}

// ValidateClockOut checks clock-out request inputs
func (sv *SessionValidator) ValidateClockOut(employeeID string, timestampMs int64) error {
	// Same field rules as clock-in; the start-before-end check needs the
	// active session and lives in the lifecycle manager.
	return sv.ValidateClockIn(employeeID, timestampMs)
}

// ValidateWindow checks an analytics query window
func (sv *SessionValidator) ValidateWindow(start, end int64) error {
	ve := NewValidationError()

	if !sv.validator.IsValidWindow(start, end) {
		ve.AddInvalidRangeError("window", start, "window start must be >= 0 and not after window end")
	}

	if ve.HasErrors() {
		return ve
	}
	return nil
}
