package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session represents a single clock-in/clock-out work session.
// Temporal fields are Unix timestamps in milliseconds. End is 0 while the
// session is still active. Enrichment fields are snapshotted once at clock-in
// and never track later edits to the source employee/project/task records.
type Session struct {
	ID string `json:"id"`

	Start int64 `json:"start"`
	End   int64 `json:"end"`

	Timezone       string `json:"timezone,omitempty"`
	TimezoneOffset int64  `json:"timezoneOffset,omitempty"`

	EmployeeID string `json:"employeeId,omitempty"`
	TeamID     string `json:"teamId,omitempty"`
	ProjectID  string `json:"projectId,omitempty"`
	TaskID     string `json:"taskId,omitempty"`
	ShiftID    string `json:"shiftId,omitempty"`

	// Enrichment snapshot, frozen at clock-in.
	Name             string  `json:"name,omitempty"`
	User             string  `json:"user,omitempty"`
	OrganizationID   string  `json:"organizationId,omitempty"`
	SharedSettingsID string  `json:"sharedSettingsId,omitempty"`
	Billable         bool    `json:"billable"`
	BillRate         float64 `json:"billRate,omitempty"`
	OvertimeBillRate float64 `json:"overtimeBillRate,omitempty"`
	PayRate          float64 `json:"payRate,omitempty"`
	OvertimePayRate  float64 `json:"overtimePayRate,omitempty"`
	TaskStatus       string  `json:"taskStatus,omitempty"`
	TaskPriority     string  `json:"taskPriority,omitempty"`
	Computer         string  `json:"computer,omitempty"`
	Os               string  `json:"os,omitempty"`
	OsVersion        string  `json:"osVersion,omitempty"`
	HwID             string  `json:"hwid,omitempty"`

	CreatedAt int64 `json:"createdAt,omitempty"`
	UpdatedAt int64 `json:"updatedAt,omitempty"`
}

// NewActiveSession creates a new active session (End = 0) starting at the
// given millisecond timestamp.
func NewActiveSession(start int64, employeeID, projectID, taskID, teamID, timezone string) Session {
	return Session{
		ID:         uuid.NewString(),
		Start:      start,
		End:        0,
		EmployeeID: employeeID,
		ProjectID:  projectID,
		TaskID:     taskID,
		TeamID:     teamID,
		Timezone:   timezone,
		CreatedAt:  time.Now().UnixMilli(),
	}
}

// IsActive returns true if the session has not been clocked out yet.
func (s Session) IsActive() bool {
	return s.End == 0
}

// DurationMs returns the closed duration in milliseconds, or 0 for an
// active session.
func (s Session) DurationMs() int64 {
	if s.IsActive() {
		return 0
	}
	return s.End - s.Start
}

// CurrentDurationMs returns the duration in milliseconds, extrapolating an
// active session to the supplied "now".
func (s Session) CurrentDurationMs(now int64) int64 {
	if s.IsActive() {
		return now - s.Start
	}
	return s.End - s.Start
}

// ClockOut closes the session at the given millisecond timestamp. The end
// timestamp only ever transitions from 0 to a positive value; closing an
// already-closed session or closing before the start is rejected.
func (s *Session) ClockOut(end int64) error {
	if !s.IsActive() {
		return errAlreadyCompleted
	}
	if end <= s.Start {
		return errEndBeforeStart
	}
	s.End = end
	s.UpdatedAt = time.Now().UnixMilli()
	return nil
}

// IsValid checks the session's temporal invariants.
func (s Session) IsValid() bool {
	if s.Start <= 0 {
		return false
	}
	if s.End != 0 && s.End <= s.Start {
		return false
	}
	return true
}
