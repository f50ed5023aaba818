package services

import (
	"context"
	"sort"
	"time"

	"timeclock/internal/domain"
	"timeclock/internal/errors"
	"timeclock/internal/store"
	"timeclock/internal/validation"
)

const msPerHour = 3_600_000

// analyticsServiceImpl implements the AnalyticsService interface. It is
// read-only: every query works on one consistent snapshot of the session
// collection.
type analyticsServiceImpl struct {
	store            store.Store
	sessionValidator *validation.SessionValidator
	now              func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService instance
func NewAnalyticsService(st store.Store) AnalyticsService {
	return newAnalyticsService(st, time.Now)
}

func newAnalyticsService(st store.Store, now func() time.Time) *analyticsServiceImpl {
	return &analyticsServiceImpl{
		store:            st,
		sessionValidator: validation.NewSessionValidator(),
		now:              now,
	}
}

// WindowQuery returns full session records overlapping the window and
// matching the filters, sorted by start descending.
func (a *analyticsServiceImpl) WindowQuery(ctx context.Context, window Window, filters Filters) ([]domain.Session, error) {
	if err := a.sessionValidator.ValidateWindow(window.Start, window.End); err != nil {
		return nil, errors.NewValidationError(err.Error(), err)
	}

	snap, err := a.store.LoadSessions(ctx)
	if err != nil {
		return nil, err
	}

	var matched []domain.Session
	for _, s := range snap.Sessions {
		if overlapsWindow(s, window) && matchesFilters(s, filters) {
			matched = append(matched, s)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Start > matched[j].Start
	})

	return matched, nil
}

// ProjectTimeSummary aggregates the window-clipped time, costs and income of
// matching sessions per project, sorted by project ID ascending. Active
// sessions are extrapolated to "now" and then clamped to the window.
func (a *analyticsServiceImpl) ProjectTimeSummary(ctx context.Context, window Window, filters Filters) ([]ProjectSummary, error) {
	if err := a.sessionValidator.ValidateWindow(window.Start, window.End); err != nil {
		return nil, errors.NewValidationError(err.Error(), err)
	}

	snap, err := a.store.LoadSessions(ctx)
	if err != nil {
		return nil, err
	}

	nowMs := a.now().UnixMilli()
	byProject := make(map[string]*ProjectSummary)

	for _, s := range snap.Sessions {
		if s.ProjectID == "" {
			continue
		}
		if !overlapsWindow(s, window) || !matchesFilters(s, filters) {
			continue
		}

		clippedStart := maxInt64(s.Start, window.Start)
		effectiveEnd := s.End
		if s.IsActive() {
			effectiveEnd = minInt64(nowMs, window.End)
		}
		clippedEnd := minInt64(effectiveEnd, window.End)
		if clippedEnd <= clippedStart {
			continue
		}

		summary, ok := byProject[s.ProjectID]
		if !ok {
			summary = &ProjectSummary{ProjectID: s.ProjectID}
			byProject[s.ProjectID] = summary
		}

		durationMs := clippedEnd - clippedStart
		hours := float64(durationMs) / msPerHour

		summary.TimeMs += durationMs
		if s.Billable && s.BillRate > 0 {
			summary.Income += hours * s.BillRate
		}
		if s.PayRate > 0 {
			summary.Costs += hours * s.PayRate
		}
	}

	summaries := make([]ProjectSummary, 0, len(byProject))
	for _, summary := range byProject {
		summaries = append(summaries, *summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].ProjectID < summaries[j].ProjectID
	})

	return summaries, nil
}

// overlapsWindow reports whether the session's effective interval intersects
// the window. An active session has zero effective width for this test; its
// extrapolation to "now" only applies to duration computation.
func overlapsWindow(s domain.Session, window Window) bool {
	effectiveEnd := s.End
	if s.IsActive() {
		effectiveEnd = s.Start
	}
	return s.Start <= window.End && effectiveEnd >= window.Start
}

// matchesFilters reports whether the session matches every supplied filter
// exactly. Absent filters impose no constraint.
func matchesFilters(s domain.Session, f Filters) bool {
	if f.EmployeeID != "" && s.EmployeeID != f.EmployeeID {
		return false
	}
	if f.TeamID != "" && s.TeamID != f.TeamID {
		return false
	}
	if f.ProjectID != "" && s.ProjectID != f.ProjectID {
		return false
	}
	if f.TaskID != "" && s.TaskID != f.TaskID {
		return false
	}
	if f.ShiftID != "" && s.ShiftID != f.ShiftID {
		return false
	}
	if f.Timezone != "" && s.Timezone != f.Timezone {
		return false
	}
	return true
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
