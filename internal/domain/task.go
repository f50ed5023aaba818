package domain

// Task represents a unit of work within a project. Each project is expected
// to have exactly one task with Default set; it is the catch-all target for
// time logged without an explicit task selection.
type Task struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	ProjectID      string   `json:"projectId"`
	Status         string   `json:"status,omitempty"`
	Priority       string   `json:"priority,omitempty"`
	Billable       bool     `json:"billable"`
	Default        bool     `json:"default,omitempty"`
	Description    string   `json:"description,omitempty"`
	Employees      []string `json:"employees,omitempty"`
	Teams          []string `json:"teams,omitempty"`
	CreatorID      string   `json:"creatorId,omitempty"`
	OrganizationID string   `json:"organizationId,omitempty"`
	CreatedAt      int64    `json:"createdAt,omitempty"`
}

// IsDefaultFor returns true if this task is the default task of the given
// project.
func (t Task) IsDefaultFor(projectID string) bool {
	return t.Default && t.ProjectID == projectID
}
