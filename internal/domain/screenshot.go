package domain

import (
	"time"

	"github.com/google/uuid"
)

// Screenshot records a best-effort capture taken during a work session. Only
// the artifact metadata lives here; the artifact itself is referenced by Link.
type Screenshot struct {
	ID                string  `json:"id"`
	Type              string  `json:"type,omitempty"`
	Timestamp         int64   `json:"timestamp"`
	EmployeeID        string  `json:"employeeId,omitempty"`
	ProjectID         string  `json:"projectId,omitempty"`
	TaskID            string  `json:"taskId,omitempty"`
	OrganizationID    string  `json:"organizationId,omitempty"`
	App               string  `json:"app,omitempty"`
	Title             string  `json:"title,omitempty"`
	Link              string  `json:"link,omitempty"`
	ProductivityScore float64 `json:"productivity,omitempty"`
}

// NewScheduledScreenshot creates screenshot metadata for a capture taken as
// part of the clock-in/clock-out flow.
func NewScheduledScreenshot(employeeID, projectID, taskID, organizationID string) Screenshot {
	return Screenshot{
		ID:             uuid.NewString(),
		Type:           "scheduled",
		Timestamp:      time.Now().UnixMilli(),
		EmployeeID:     employeeID,
		ProjectID:      projectID,
		TaskID:         taskID,
		OrganizationID: organizationID,
	}
}
