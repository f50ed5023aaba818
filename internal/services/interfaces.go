package services

import (
	"context"
	"time"

	"timeclock/internal/domain"
	"timeclock/internal/sysinfo"
)

// Window is a mandatory [start, end] query range in epoch milliseconds.
type Window struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// Filters narrows analytics queries. Empty fields impose no constraint;
// supplied fields must match the session exactly.
type Filters struct {
	EmployeeID string `json:"employeeId,omitempty"`
	TeamID     string `json:"teamId,omitempty"`
	ProjectID  string `json:"projectId,omitempty"`
	TaskID     string `json:"taskId,omitempty"`
	ShiftID    string `json:"shiftId,omitempty"`
	Timezone   string `json:"timezone,omitempty"`
}

// ProjectSummary is the per-project time/cost/income rollup returned by
// ProjectTimeSummary.
type ProjectSummary struct {
	ProjectID string  `json:"projectId"`
	TimeMs    int64   `json:"time"`
	Costs     float64 `json:"costs"`
	Income    float64 `json:"income"`
}

// TrackerService owns the session lifecycle: clock-in, clock-out and the
// one-active-session-per-employee invariant. A zero `at` time means "now".
type TrackerService interface {
	ClockIn(ctx context.Context, employeeID, projectID, taskID string, at time.Time) (*domain.Session, error)
	ClockOut(ctx context.Context, employeeID string, at time.Time) (*domain.Session, error)

	// GetActiveSession returns the employee's active session, or nil when
	// the employee is not clocked in.
	GetActiveSession(ctx context.Context, employeeID string) (*domain.Session, error)
}

// AnalyticsService is the stateless query engine over the session list.
type AnalyticsService interface {
	// WindowQuery returns sessions overlapping the window and matching the
	// filters, most recent first.
	WindowQuery(ctx context.Context, window Window, filters Filters) ([]domain.Session, error)

	// ProjectTimeSummary aggregates window-clipped time, costs and income
	// per project, ordered by project ID.
	ProjectTimeSummary(ctx context.Context, window Window, filters Filters) ([]ProjectSummary, error)
}

// DirectoryService answers the read-side entity queries.
type DirectoryService interface {
	GetEmployee(ctx context.Context, employeeID string) (*domain.Employee, error)
	ListActiveEmployees(ctx context.Context) ([]domain.Employee, error)
	ListActiveProjects(ctx context.Context) ([]domain.Project, error)
	GetEmployeeProjects(ctx context.Context, employeeID string) ([]domain.Project, error)

	// ListSessions returns every session, most recent first.
	ListSessions(ctx context.Context) ([]domain.Session, error)

	// SystemInfo returns best-effort host descriptors.
	SystemInfo(ctx context.Context) (*sysinfo.Info, error)
}

// ServiceContainer bundles the services for wiring into the caller surface.
type ServiceContainer struct {
	Tracker   TrackerService
	Analytics AnalyticsService
	Directory DirectoryService
}
