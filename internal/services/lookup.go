package services

import (
	"timeclock/internal/domain"
)

// Snapshot lookup helpers shared by the tracker and directory services. All
// of them operate on whole-collection reads from the store.

func findEmployee(employees []domain.Employee, id string) *domain.Employee {
	for i := range employees {
		if employees[i].ID == id {
			return &employees[i]
		}
	}
	return nil
}

func findProject(projects []domain.Project, id string) *domain.Project {
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i]
		}
	}
	return nil
}

func findTask(tasks []domain.Task, id string) *domain.Task {
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i]
		}
	}
	return nil
}

// employeeProjects returns the projects the employee is a member of, in the
// order the store returned them.
func employeeProjects(projects []domain.Project, employeeID string) []domain.Project {
	var assigned []domain.Project
	for _, p := range projects {
		if p.HasEmployee(employeeID) {
			assigned = append(assigned, p)
		}
	}
	return assigned
}

// findDefaultTask returns the project's default task, or nil if the project
// has none.
func findDefaultTask(tasks []domain.Task, projectID string) *domain.Task {
	for i := range tasks {
		if tasks[i].IsDefaultFor(projectID) {
			return &tasks[i]
		}
	}
	return nil
}

// findActiveSessionIndex returns the index of the employee's active session,
// or -1 when the employee is not clocked in. The lifecycle invariant
// guarantees at most one match.
func findActiveSessionIndex(sessions []domain.Session, employeeID string) int {
	for i := range sessions {
		if sessions[i].EmployeeID == employeeID && sessions[i].IsActive() {
			return i
		}
	}
	return -1
}
