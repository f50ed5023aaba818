package domain

// Employee represents a member of the organization who can clock in and out.
// Deactivated is 0 for active employees and non-zero once the employee has
// been deactivated.
type Employee struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	TeamID           string   `json:"teamId,omitempty"`
	SharedSettingsID string   `json:"sharedSettingsId,omitempty"`
	AccountID        string   `json:"accountId,omitempty"`
	Identifier       string   `json:"identifier,omitempty"`
	Type             string   `json:"type,omitempty"`
	OrganizationID   string   `json:"organizationId,omitempty"`
	Projects         []string `json:"projects,omitempty"`
	Deactivated      int64    `json:"deactivated"`
	Invited          int64    `json:"invited,omitempty"`
	CreatedAt        int64    `json:"createdAt,omitempty"`
}

// IsActive returns true if the employee has not been deactivated.
func (e Employee) IsActive() bool {
	return e.Deactivated == 0
}

// HasProject returns true if the employee is assigned to the given project.
func (e Employee) HasProject(projectID string) bool {
	for _, id := range e.Projects {
		if id == projectID {
			return true
		}
	}
	return false
}
