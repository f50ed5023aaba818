package services

import (
	"context"
	"sort"

	"timeclock/internal/domain"
	"timeclock/internal/errors"
	"timeclock/internal/store"
	"timeclock/internal/sysinfo"
)

// directoryServiceImpl implements the DirectoryService interface
type directoryServiceImpl struct {
	store  store.Store
	system sysinfo.Collector
}

// NewDirectoryService creates a new DirectoryService instance
func NewDirectoryService(st store.Store, system sysinfo.Collector) DirectoryService {
	return &directoryServiceImpl{
		store:  st,
		system: system,
	}
}

// GetEmployee returns the employee with the given ID.
func (d *directoryServiceImpl) GetEmployee(ctx context.Context, employeeID string) (*domain.Employee, error) {
	employees, err := d.store.LoadEmployees(ctx)
	if err != nil {
		return nil, err
	}
	employee := findEmployee(employees, employeeID)
	if employee == nil {
		return nil, errors.NewNotFoundError("employee", employeeID)
	}
	return employee, nil
}

// ListActiveEmployees returns all employees that are not deactivated.
func (d *directoryServiceImpl) ListActiveEmployees(ctx context.Context) ([]domain.Employee, error) {
	employees, err := d.store.LoadEmployees(ctx)
	if err != nil {
		return nil, err
	}
	var active []domain.Employee
	for _, e := range employees {
		if e.IsActive() {
			active = append(active, e)
		}
	}
	return active, nil
}

// ListActiveProjects returns all projects that are not archived.
func (d *directoryServiceImpl) ListActiveProjects(ctx context.Context) ([]domain.Project, error) {
	projects, err := d.store.LoadProjects(ctx)
	if err != nil {
		return nil, err
	}
	var active []domain.Project
	for _, p := range projects {
		if p.IsActive() {
			active = append(active, p)
		}
	}
	return active, nil
}

// GetEmployeeProjects returns the projects the employee is assigned to, in
// store order.
func (d *directoryServiceImpl) GetEmployeeProjects(ctx context.Context, employeeID string) ([]domain.Project, error) {
	projects, err := d.store.LoadProjects(ctx)
	if err != nil {
		return nil, err
	}
	return employeeProjects(projects, employeeID), nil
}

// ListSessions returns every session sorted by start descending.
func (d *directoryServiceImpl) ListSessions(ctx context.Context) ([]domain.Session, error) {
	snap, err := d.store.LoadSessions(ctx)
	if err != nil {
		return nil, err
	}

	sessions := make([]domain.Session, len(snap.Sessions))
	copy(sessions, snap.Sessions)
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Start > sessions[j].Start
	})
	return sessions, nil
}

// SystemInfo returns best-effort host descriptors.
func (d *directoryServiceImpl) SystemInfo(ctx context.Context) (*sysinfo.Info, error) {
	return d.system.Collect(ctx)
}
