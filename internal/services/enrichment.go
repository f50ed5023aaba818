package services

import (
	"context"
	"strings"
	"time"

	"timeclock/internal/domain"
	"timeclock/internal/logging"
	"timeclock/internal/sysinfo"
)

// Enricher snapshots employee, project, task and host attributes onto a
// freshly created session. The snapshot is taken once at clock-in; it never
// tracks later edits to the source records.
type Enricher struct {
	system sysinfo.Collector
}

// NewEnricher creates an Enricher using the given system-info collector.
func NewEnricher(system sysinfo.Collector) *Enricher {
	return &Enricher{system: system}
}

// Enrich copies the resolved entities' attributes onto the session. Host
// descriptor lookups are best-effort; on failure the session keeps empty
// descriptor fields and the clock-in proceeds.
func (e *Enricher) Enrich(ctx context.Context, s *domain.Session, employee domain.Employee, project domain.Project, task domain.Task) {
	s.Name = employee.Name
	s.User = usernameFromEmail(employee.Email, employee.ID)
	s.OrganizationID = employee.OrganizationID
	s.SharedSettingsID = employee.SharedSettingsID

	s.Billable = project.Billable
	s.BillRate = project.Payroll.BillRate
	s.OvertimeBillRate = project.Payroll.OvertimeBillRate
	s.PayRate = project.Payroll.PayRate
	s.OvertimePayRate = project.Payroll.OvertimePayRate

	s.TaskStatus = task.Status
	s.TaskPriority = task.Priority

	s.TimezoneOffset = timezoneOffsetMs(s.Timezone, s.Start)

	if e.system == nil {
		return
	}
	info, err := e.system.Collect(ctx)
	if err != nil {
		logging.Debugf("system info lookup failed: %v\n", err)
		return
	}
	s.Computer = info.Hostname
	s.Os = info.OS
	s.OsVersion = info.OSVersion
	s.HwID = info.MACAddress
}

// usernameFromEmail derives a username from the local part of the email
// address, falling back to the employee ID when no usable email is present.
func usernameFromEmail(email, employeeID string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return employeeID
	}
	return email[:at]
}

// timezoneOffsetMs computes the UTC offset in milliseconds for the named
// timezone at the session's start instant. Unknown or empty names resolve to
// offset 0.
func timezoneOffsetMs(name string, startMs int64) int64 {
	if name == "" {
		return 0
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		logging.Debugf("unknown timezone %q: %v\n", name, err)
		return 0
	}
	_, offsetSec := time.UnixMilli(startMs).In(loc).Zone()
	return int64(offsetSec) * 1000
}
