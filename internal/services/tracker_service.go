package services

import (
	"context"
	"sync"
	"time"

	"timeclock/internal/domain"
	"timeclock/internal/errors"
	"timeclock/internal/logging"
	"timeclock/internal/screenshot"
	"timeclock/internal/store"
	"timeclock/internal/validation"
)

// maxSaveAttempts bounds the retry loop around the load-check-mutate-save
// cycle when a save loses against a concurrent writer for another employee.
const maxSaveAttempts = 3

// captureTimeout bounds the fire-and-forget screenshot capture.
const captureTimeout = 10 * time.Second

// trackerServiceImpl implements the TrackerService interface
type trackerServiceImpl struct {
	store            store.Store
	capturer         screenshot.Capturer
	enricher         *Enricher
	sessionValidator *validation.SessionValidator
	now              func() time.Time

	// locks serializes lifecycle mutations per employee, closing the
	// time-of-check/time-of-use race between the active-session check and
	// the session write.
	locks *keyedMutex

	// screenshotMu guards the load-append-save cycle on the screenshot
	// collection.
	screenshotMu sync.Mutex

	// wg tracks in-flight capture goroutines so tests can wait for them.
	wg sync.WaitGroup
}

// NewTrackerService creates a new TrackerService instance
func NewTrackerService(st store.Store, capturer screenshot.Capturer, enricher *Enricher) TrackerService {
	return newTrackerService(st, capturer, enricher, time.Now)
}

func newTrackerService(st store.Store, capturer screenshot.Capturer, enricher *Enricher, now func() time.Time) *trackerServiceImpl {
	return &trackerServiceImpl{
		store:            st,
		capturer:         capturer,
		enricher:         enricher,
		sessionValidator: validation.NewSessionValidator(),
		now:              now,
		locks:            newKeyedMutex(),
	}
}

// ClockIn starts a new work session for the employee. Project and task may be
// empty; they resolve to the employee's first assigned project and the
// project's default task. A zero `at` means the current UTC time.
func (t *trackerServiceImpl) ClockIn(ctx context.Context, employeeID, projectID, taskID string, at time.Time) (*domain.Session, error) {
	if at.IsZero() {
		at = t.now().UTC()
	}
	startMs := at.UnixMilli()

	if err := t.sessionValidator.ValidateClockIn(employeeID, startMs); err != nil {
		return nil, errors.NewValidationError(err.Error(), err)
	}

	employees, err := t.store.LoadEmployees(ctx)
	if err != nil {
		return nil, err
	}
	employee := findEmployee(employees, employeeID)
	if employee == nil {
		return nil, errors.NewNotFoundError("employee", employeeID)
	}
	if !employee.IsActive() {
		return nil, errors.NewInvalidStateError("employee is not active").
			WithContext("employee_id", employeeID)
	}

	unlock := t.locks.lock(employeeID)
	defer unlock()

	// The lock serializes this employee's lifecycle mutations, so the
	// active-session check holds until the save below.
	snap, err := t.store.LoadSessions(ctx)
	if err != nil {
		return nil, err
	}
	if findActiveSessionIndex(snap.Sessions, employeeID) >= 0 {
		return nil, errors.NewConflictError("employee already clocked in").
			WithContext("employee_id", employeeID)
	}

	projects, err := t.store.LoadProjects(ctx)
	if err != nil {
		return nil, err
	}

	if projectID == "" {
		assigned := employeeProjects(projects, employeeID)
		if len(assigned) == 0 {
			return nil, errors.NewInvalidStateError("employee not assigned to any projects").
				WithContext("employee_id", employeeID)
		}
		projectID = assigned[0].ID
	}

	project := findProject(projects, projectID)
	if project == nil {
		return nil, errors.NewNotFoundError("project", projectID)
	}
	if !project.HasEmployee(employeeID) {
		return nil, errors.NewInvalidStateError("employee not assigned to this project").
			WithContext("employee_id", employeeID).
			WithContext("project_id", projectID)
	}

	tasks, err := t.store.LoadTasks(ctx)
	if err != nil {
		return nil, err
	}

	var task *domain.Task
	if taskID == "" {
		task = findDefaultTask(tasks, projectID)
		if task == nil {
			return nil, errors.NewInvalidStateError("no default task found for project").
				WithContext("project_id", projectID)
		}
	} else {
		task = findTask(tasks, taskID)
		if task == nil {
			return nil, errors.NewNotFoundError("task", taskID)
		}
	}

	session := domain.NewActiveSession(startMs, employeeID, project.ID, task.ID, employee.TeamID, "UTC")
	t.enricher.Enrich(ctx, &session, *employee, *project, *task)

	if err := t.sessionValidator.ValidateSession(session); err != nil {
		return nil, errors.NewValidationError(err.Error(), err)
	}

	for attempt := 1; ; attempt++ {
		snap.Sessions = append(snap.Sessions, session)
		err = t.store.SaveSessions(ctx, snap)
		if err == nil {
			break
		}
		if !errors.IsErrorType(err, errors.ErrorTypeConflict) || attempt >= maxSaveAttempts {
			return nil, err
		}

		// Another employee's write moved the collection version; reload
		// and try again. The per-employee lock rules out a competing
		// active session for this employee.
		snap, err = t.store.LoadSessions(ctx)
		if err != nil {
			return nil, err
		}
	}

	t.captureAsync(employeeID, session.ProjectID, session.TaskID, session.OrganizationID)

	return &session, nil
}

// ClockOut closes the employee's active session. A zero `at` means the
// current UTC time; the timestamp must be after the session's start.
func (t *trackerServiceImpl) ClockOut(ctx context.Context, employeeID string, at time.Time) (*domain.Session, error) {
	if at.IsZero() {
		at = t.now().UTC()
	}
	endMs := at.UnixMilli()

	if err := t.sessionValidator.ValidateClockOut(employeeID, endMs); err != nil {
		return nil, errors.NewValidationError(err.Error(), err)
	}

	unlock := t.locks.lock(employeeID)
	defer unlock()

	var closed domain.Session
	for attempt := 1; ; attempt++ {
		snap, err := t.store.LoadSessions(ctx)
		if err != nil {
			return nil, err
		}

		idx := findActiveSessionIndex(snap.Sessions, employeeID)
		if idx < 0 {
			return nil, errors.NewInvalidStateError("employee not currently clocked in").
				WithContext("employee_id", employeeID)
		}

		session := snap.Sessions[idx]
		if endMs <= session.Start {
			return nil, errors.NewInvalidStateError("clock-out time must be after clock-in time").
				WithContext("start", session.Start).
				WithContext("end", endMs)
		}
		if err := session.ClockOut(endMs); err != nil {
			return nil, errors.NewInvalidStateError(err.Error())
		}
		snap.Sessions[idx] = session

		err = t.store.SaveSessions(ctx, snap)
		if err == nil {
			closed = session
			break
		}
		if !errors.IsErrorType(err, errors.ErrorTypeConflict) || attempt >= maxSaveAttempts {
			return nil, err
		}
	}

	t.captureAsync(employeeID, closed.ProjectID, closed.TaskID, closed.OrganizationID)

	return &closed, nil
}

// GetActiveSession returns the employee's active session, or nil when the
// employee is not clocked in.
func (t *trackerServiceImpl) GetActiveSession(ctx context.Context, employeeID string) (*domain.Session, error) {
	snap, err := t.store.LoadSessions(ctx)
	if err != nil {
		return nil, err
	}

	idx := findActiveSessionIndex(snap.Sessions, employeeID)
	if idx < 0 {
		return nil, nil
	}
	session := snap.Sessions[idx]
	return &session, nil
}

// captureAsync fires a best-effort screenshot capture. Failures are logged
// and never fail the lifecycle operation that triggered the capture.
func (t *trackerServiceImpl) captureAsync(employeeID, projectID, taskID, organizationID string) {
	if t.capturer == nil {
		return
	}

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), captureTimeout)
		defer cancel()

		shot, err := t.capturer.Capture(ctx, employeeID, projectID, taskID)
		if err != nil {
			logging.Debugf("screenshot capture failed: %v\n", err)
			return
		}
		if shot == nil {
			return
		}
		shot.OrganizationID = organizationID

		t.screenshotMu.Lock()
		defer t.screenshotMu.Unlock()

		screenshots, err := t.store.LoadScreenshots(ctx)
		if err != nil {
			logging.Debugf("load screenshots failed: %v\n", err)
			return
		}
		screenshots = append(screenshots, *shot)
		if err := t.store.SaveScreenshots(ctx, screenshots); err != nil {
			logging.Debugf("save screenshots failed: %v\n", err)
		}
	}()
}

// waitForCaptures blocks until in-flight capture goroutines finish.
func (t *trackerServiceImpl) waitForCaptures() {
	t.wg.Wait()
}

// keyedMutex hands out one mutex per key.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the mutex for the key and returns its unlock function.
func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
