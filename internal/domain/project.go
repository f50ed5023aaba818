package domain

// Payroll holds the billing and pay rates configured for a project. It is a
// value object: sessions copy it at clock-in, so a rate change never
// retroactively changes a running session.
type Payroll struct {
	BillRate         float64 `json:"billRate"`
	OvertimeBillRate float64 `json:"overtimeBillRate"`
	PayRate          float64 `json:"payRate,omitempty"`
	OvertimePayRate  float64 `json:"overtimePayRate,omitempty"`
}

// Project represents a project employees log time against.
type Project struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Archived       bool     `json:"archived"`
	Billable       bool     `json:"billable"`
	Statuses       []string `json:"statuses,omitempty"`
	Priorities     []string `json:"priorities,omitempty"`
	Payroll        Payroll  `json:"payroll"`
	Employees      []string `json:"employees,omitempty"`
	Teams          []string `json:"teams,omitempty"`
	CreatorID      string   `json:"creatorId,omitempty"`
	OrganizationID string   `json:"organizationId,omitempty"`
	CreatedAt      int64    `json:"createdAt,omitempty"`
}

// IsActive returns true if the project is not archived.
func (p Project) IsActive() bool {
	return !p.Archived
}

// HasEmployee returns true if the employee is assigned to the project.
func (p Project) HasEmployee(employeeID string) bool {
	for _, id := range p.Employees {
		if id == employeeID {
			return true
		}
	}
	return false
}
