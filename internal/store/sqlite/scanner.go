package sqlite

import (
	"timeclock/internal/domain"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanEmployee scans a single employee from a database row
func ScanEmployee(scanner Scanner) (domain.Employee, error) {
	var e domain.Employee
	var projects string

	err := scanner.Scan(
		&e.ID,
		&e.Name,
		&e.Email,
		&e.TeamID,
		&e.SharedSettingsID,
		&e.AccountID,
		&e.Identifier,
		&e.Type,
		&e.OrganizationID,
		&projects,
		&e.Deactivated,
		&e.Invited,
		&e.CreatedAt,
	)
	if err != nil {
		return domain.Employee{}, err
	}

	if e.Projects, err = DecodeStringList(projects); err != nil {
		return domain.Employee{}, err
	}
	return e, nil
}

// ScanEmployees scans multiple employees from database rows
func ScanEmployees(rows Rows) ([]domain.Employee, error) {
	var employees []domain.Employee
	for rows.Next() {
		e, err := ScanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// ScanProject scans a single project from a database row
func ScanProject(scanner Scanner) (domain.Project, error) {
	var p domain.Project
	var statuses, priorities, employees, teams string

	err := scanner.Scan(
		&p.ID,
		&p.Name,
		&p.Archived,
		&p.Billable,
		&statuses,
		&priorities,
		&p.Payroll.BillRate,
		&p.Payroll.OvertimeBillRate,
		&p.Payroll.PayRate,
		&p.Payroll.OvertimePayRate,
		&employees,
		&teams,
		&p.CreatorID,
		&p.OrganizationID,
		&p.CreatedAt,
	)
	if err != nil {
		return domain.Project{}, err
	}

	if p.Statuses, err = DecodeStringList(statuses); err != nil {
		return domain.Project{}, err
	}
	if p.Priorities, err = DecodeStringList(priorities); err != nil {
		return domain.Project{}, err
	}
	if p.Employees, err = DecodeStringList(employees); err != nil {
		return domain.Project{}, err
	}
	if p.Teams, err = DecodeStringList(teams); err != nil {
		return domain.Project{}, err
	}
	return p, nil
}

// ScanProjects scans multiple projects from database rows
func ScanProjects(rows Rows) ([]domain.Project, error) {
	var projects []domain.Project
	for rows.Next() {
		p, err := ScanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// ScanTask scans a single task from a database row
func ScanTask(scanner Scanner) (domain.Task, error) {
	var t domain.Task
	var employees, teams string

	err := scanner.Scan(
		&t.ID,
		&t.Name,
		&t.ProjectID,
		&t.Status,
		&t.Priority,
		&t.Billable,
		&t.Default,
		&t.Description,
		&employees,
		&teams,
		&t.CreatorID,
		&t.OrganizationID,
		&t.CreatedAt,
	)
	if err != nil {
		return domain.Task{}, err
	}

	if t.Employees, err = DecodeStringList(employees); err != nil {
		return domain.Task{}, err
	}
	if t.Teams, err = DecodeStringList(teams); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

// ScanTasks scans multiple tasks from database rows
func ScanTasks(rows Rows) ([]domain.Task, error) {
	var tasks []domain.Task
	for rows.Next() {
		t, err := ScanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// ScanSession scans a single session from a database row
func ScanSession(scanner Scanner) (domain.Session, error) {
	var s domain.Session

	err := scanner.Scan(
		&s.ID,
		&s.Start,
		&s.End,
		&s.Timezone,
		&s.TimezoneOffset,
		&s.EmployeeID,
		&s.TeamID,
		&s.ProjectID,
		&s.TaskID,
		&s.ShiftID,
		&s.Name,
		&s.User,
		&s.OrganizationID,
		&s.SharedSettingsID,
		&s.Billable,
		&s.BillRate,
		&s.OvertimeBillRate,
		&s.PayRate,
		&s.OvertimePayRate,
		&s.TaskStatus,
		&s.TaskPriority,
		&s.Computer,
		&s.Os,
		&s.OsVersion,
		&s.HwID,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return domain.Session{}, err
	}
	return s, nil
}

// ScanSessions scans multiple sessions from database rows
func ScanSessions(rows Rows) ([]domain.Session, error) {
	var sessions []domain.Session
	for rows.Next() {
		s, err := ScanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// ScanScreenshot scans a single screenshot from a database row
func ScanScreenshot(scanner Scanner) (domain.Screenshot, error) {
	var s domain.Screenshot

	err := scanner.Scan(
		&s.ID,
		&s.Type,
		&s.Timestamp,
		&s.EmployeeID,
		&s.ProjectID,
		&s.TaskID,
		&s.OrganizationID,
		&s.App,
		&s.Title,
		&s.Link,
		&s.ProductivityScore,
	)
	if err != nil {
		return domain.Screenshot{}, err
	}
	return s, nil
}

// ScanScreenshots scans multiple screenshots from database rows
func ScanScreenshots(rows Rows) ([]domain.Screenshot, error) {
	var screenshots []domain.Screenshot
	for rows.Next() {
		s, err := ScanScreenshot(rows)
		if err != nil {
			return nil, err
		}
		screenshots = append(screenshots, s)
	}
	return screenshots, rows.Err()
}
