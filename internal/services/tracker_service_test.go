package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeclock/internal/domain"
	"timeclock/internal/errors"
	"timeclock/internal/store"
	"timeclock/internal/store/jsonstore"
	"timeclock/internal/sysinfo"
	"timeclock/internal/validation"
)

// fixedNowMs is the reference clock used across the service tests.
const fixedNowMs = int64(1_700_000_000_000)

func fixedNow() time.Time {
	return time.UnixMilli(fixedNowMs)
}

// stubCollector is a deterministic sysinfo.Collector for tests.
type stubCollector struct {
	info *sysinfo.Info
	err  error
}

func (s stubCollector) Collect(ctx context.Context) (*sysinfo.Info, error) {
	return s.info, s.err
}

// stubCapturer records capture calls and returns fixed metadata.
type stubCapturer struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (c *stubCapturer) Capture(ctx context.Context, employeeID, projectID, taskID string) (*domain.Screenshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	shot := domain.NewScheduledScreenshot(employeeID, projectID, taskID, "")
	return &shot, nil
}

func (c *stubCapturer) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func testEnricher() *Enricher {
	return NewEnricher(stubCollector{info: &sysinfo.Info{
		Hostname:   "workstation-1",
		OS:         "linux 6.1",
		OSVersion:  "6.1",
		MACAddress: "aa:bb:cc:dd:ee:ff",
	}})
}

// setupSeededStore creates a JSON store populated with a small directory of
// employees, projects and tasks.
func setupSeededStore(t *testing.T) store.Store {
	st, err := jsonstore.New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	require.NoError(t, st.SeedEmployees(ctx, []domain.Employee{
		{ID: "emp_1", Name: "Alice Doe", Email: "alice@example.com", TeamID: "team_1", OrganizationID: "org_1", Projects: []string{"proj_1", "proj_2"}},
		{ID: "emp_2", Name: "Bob Roe", Email: "bob@example.com", TeamID: "team_1", Projects: []string{"proj_1"}},
		{ID: "emp_3", Name: "Carol Poe", Email: "carol@example.com", Deactivated: 1_600_000_000_000},
		{ID: "emp_4", Name: "Dave Moe", Email: "dave@example.com"},
	}))
	require.NoError(t, st.SeedProjects(ctx, []domain.Project{
		{
			ID: "proj_1", Name: "Website", Billable: true,
			Payroll:   domain.Payroll{BillRate: 50, OvertimeBillRate: 75, PayRate: 30, OvertimePayRate: 45},
			Employees: []string{"emp_1", "emp_2"},
		},
		{
			ID: "proj_2", Name: "Internal Tools", Billable: false,
			Employees: []string{"emp_1"},
		},
		{
			ID: "proj_3", Name: "No Default Task", Billable: true,
			Employees: []string{"emp_1"},
		},
	}))
	require.NoError(t, st.SeedTasks(ctx, []domain.Task{
		{ID: "task_1", Name: "General", ProjectID: "proj_1", Status: "To do", Priority: "low", Default: true},
		{ID: "task_2", Name: "Code review", ProjectID: "proj_1", Status: "To do", Priority: "high"},
		{ID: "task_3", Name: "General", ProjectID: "proj_2", Default: true},
	}))

	return st
}

func setupTracker(t *testing.T) (*trackerServiceImpl, store.Store, *stubCapturer) {
	st := setupSeededStore(t)
	capturer := &stubCapturer{}
	service := newTrackerService(st, capturer, testEnricher(), fixedNow)
	return service, st, capturer
}

func TestTrackerService_ClockIn(t *testing.T) {
	t.Run("should clock in with explicit project and task", func(t *testing.T) {
		// Arrange
		service, _, _ := setupTracker(t)
		ctx := context.Background()

		// Act
		session, err := service.ClockIn(ctx, "emp_1", "proj_1", "task_2", time.Time{})

		// Assert
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.NotEmpty(t, session.ID)
		assert.Equal(t, fixedNowMs, session.Start)
		assert.True(t, session.IsActive())
		assert.Equal(t, "emp_1", session.EmployeeID)
		assert.Equal(t, "proj_1", session.ProjectID)
		assert.Equal(t, "task_2", session.TaskID)
		assert.Equal(t, "team_1", session.TeamID)
		assert.Equal(t, "UTC", session.Timezone)
	})

	t.Run("should snapshot enrichment fields at clock-in", func(t *testing.T) {
		service, _, _ := setupTracker(t)

		session, err := service.ClockIn(context.Background(), "emp_1", "proj_1", "task_2", time.Time{})

		require.NoError(t, err)
		assert.Equal(t, "Alice Doe", session.Name)
		assert.Equal(t, "alice", session.User)
		assert.Equal(t, "org_1", session.OrganizationID)
		assert.True(t, session.Billable)
		assert.Equal(t, 50.0, session.BillRate)
		assert.Equal(t, 75.0, session.OvertimeBillRate)
		assert.Equal(t, 30.0, session.PayRate)
		assert.Equal(t, 45.0, session.OvertimePayRate)
		assert.Equal(t, "To do", session.TaskStatus)
		assert.Equal(t, "high", session.TaskPriority)
		assert.Equal(t, "workstation-1", session.Computer)
		assert.Equal(t, "linux 6.1", session.Os)
		assert.Equal(t, "aa:bb:cc:dd:ee:ff", session.HwID)
	})

	t.Run("should resolve default project and task when omitted", func(t *testing.T) {
		service, _, _ := setupTracker(t)

		session, err := service.ClockIn(context.Background(), "emp_2", "", "", time.Time{})

		require.NoError(t, err)
		assert.Equal(t, "proj_1", session.ProjectID)
		assert.Equal(t, "task_1", session.TaskID)
	})

	t.Run("should use supplied timestamp", func(t *testing.T) {
		service, _, _ := setupTracker(t)
		at := time.UnixMilli(1_690_000_000_000)

		session, err := service.ClockIn(context.Background(), "emp_1", "proj_1", "task_1", at)

		require.NoError(t, err)
		assert.Equal(t, int64(1_690_000_000_000), session.Start)
	})

	t.Run("should persist the new session", func(t *testing.T) {
		service, st, _ := setupTracker(t)
		ctx := context.Background()

		_, err := service.ClockIn(ctx, "emp_1", "proj_1", "task_1", time.Time{})
		require.NoError(t, err)

		snap, err := st.LoadSessions(ctx)
		require.NoError(t, err)
		require.Len(t, snap.Sessions, 1)
		assert.True(t, snap.Sessions[0].IsActive())
	})

	t.Run("should reject clock-in while already clocked in", func(t *testing.T) {
		// Arrange
		service, _, _ := setupTracker(t)
		ctx := context.Background()
		_, err := service.ClockIn(ctx, "emp_1", "proj_1", "task_1", time.Time{})
		require.NoError(t, err)

		// Act
		session, err := service.ClockIn(ctx, "emp_1", "proj_2", "task_3", time.Time{})

		// Assert
		require.Error(t, err)
		assert.Nil(t, session)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeConflict))
		assert.Contains(t, err.Error(), "employee already clocked in")
	})

	tests := []struct {
		name          string
		employeeID    string
		projectID     string
		taskID        string
		expectedType  errors.ErrorType
		expectedInMsg string
	}{
		{
			name:          "should reject unknown employee",
			employeeID:    "emp_999",
			expectedType:  errors.ErrorTypeNotFound,
			expectedInMsg: "employee not found",
		},
		{
			name:          "should reject deactivated employee",
			employeeID:    "emp_3",
			expectedType:  errors.ErrorTypeInvalidState,
			expectedInMsg: "employee is not active",
		},
		{
			name:          "should reject employee without projects",
			employeeID:    "emp_4",
			expectedType:  errors.ErrorTypeInvalidState,
			expectedInMsg: "employee not assigned to any projects",
		},
		{
			name:          "should reject project the employee is not assigned to",
			employeeID:    "emp_2",
			projectID:     "proj_2",
			expectedType:  errors.ErrorTypeInvalidState,
			expectedInMsg: "employee not assigned to this project",
		},
		{
			name:          "should reject unknown project",
			employeeID:    "emp_1",
			projectID:     "proj_999",
			expectedType:  errors.ErrorTypeNotFound,
			expectedInMsg: "project not found",
		},
		{
			name:          "should reject unknown task",
			employeeID:    "emp_1",
			projectID:     "proj_1",
			taskID:        "task_999",
			expectedType:  errors.ErrorTypeNotFound,
			expectedInMsg: "task not found",
		},
		{
			name:          "should reject project without a default task",
			employeeID:    "emp_1",
			projectID:     "proj_3",
			expectedType:  errors.ErrorTypeInvalidState,
			expectedInMsg: "no default task found for project",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			service, st, _ := setupTracker(t)
			ctx := context.Background()

			// Act
			session, err := service.ClockIn(ctx, tt.employeeID, tt.projectID, tt.taskID, time.Time{})

			// Assert
			require.Error(t, err)
			assert.Nil(t, session)
			assert.True(t, errors.IsErrorType(err, tt.expectedType))
			assert.Contains(t, err.Error(), tt.expectedInMsg)

			snap, err := st.LoadSessions(ctx)
			require.NoError(t, err)
			assert.Empty(t, snap.Sessions)
		})
	}

	t.Run("should reject empty employee ID with validation error", func(t *testing.T) {
		service, _, _ := setupTracker(t)

		session, err := service.ClockIn(context.Background(), "", "proj_1", "task_1", time.Time{})

		require.Error(t, err)
		assert.Nil(t, session)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
	})
}

func TestTrackerService_ClockOut(t *testing.T) {
	t.Run("should close the active session", func(t *testing.T) {
		// Arrange
		service, st, _ := setupTracker(t)
		ctx := context.Background()
		started, err := service.ClockIn(ctx, "emp_1", "proj_1", "task_1", time.UnixMilli(fixedNowMs-3_600_000))
		require.NoError(t, err)

		// Act
		closed, err := service.ClockOut(ctx, "emp_1", time.Time{})

		// Assert
		require.NoError(t, err)
		require.NotNil(t, closed)
		assert.Equal(t, started.ID, closed.ID)
		assert.Equal(t, fixedNowMs, closed.End)
		assert.False(t, closed.IsActive())
		assert.Equal(t, int64(3_600_000), closed.DurationMs())

		snap, err := st.LoadSessions(ctx)
		require.NoError(t, err)
		require.Len(t, snap.Sessions, 1)
		assert.False(t, snap.Sessions[0].IsActive())
	})

	t.Run("should reject clock-out when not clocked in", func(t *testing.T) {
		service, _, _ := setupTracker(t)

		closed, err := service.ClockOut(context.Background(), "emp_1", time.Time{})

		require.Error(t, err)
		assert.Nil(t, closed)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidState))
		assert.Contains(t, err.Error(), "employee not currently clocked in")
	})

	t.Run("should reject a second clock-out", func(t *testing.T) {
		// Arrange
		service, _, _ := setupTracker(t)
		ctx := context.Background()
		_, err := service.ClockIn(ctx, "emp_1", "proj_1", "task_1", time.UnixMilli(fixedNowMs-1000))
		require.NoError(t, err)
		_, err = service.ClockOut(ctx, "emp_1", time.Time{})
		require.NoError(t, err)

		// Act
		closed, err := service.ClockOut(ctx, "emp_1", time.Time{})

		// Assert
		require.Error(t, err)
		assert.Nil(t, closed)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidState))
	})

	t.Run("should reject clock-out at or before clock-in time", func(t *testing.T) {
		service, st, _ := setupTracker(t)
		ctx := context.Background()
		_, err := service.ClockIn(ctx, "emp_1", "proj_1", "task_1", time.UnixMilli(fixedNowMs))
		require.NoError(t, err)

		closed, err := service.ClockOut(ctx, "emp_1", time.UnixMilli(fixedNowMs-1000))

		require.Error(t, err)
		assert.Nil(t, closed)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidState))
		assert.Contains(t, err.Error(), "clock-out time must be after clock-in time")

		// The session stays active and untouched.
		snap, err := st.LoadSessions(ctx)
		require.NoError(t, err)
		require.Len(t, snap.Sessions, 1)
		assert.True(t, snap.Sessions[0].IsActive())
	})

	t.Run("should allow a new session after clocking out", func(t *testing.T) {
		service, st, _ := setupTracker(t)
		ctx := context.Background()

		_, err := service.ClockIn(ctx, "emp_1", "proj_1", "task_1", time.UnixMilli(fixedNowMs-2000))
		require.NoError(t, err)
		_, err = service.ClockOut(ctx, "emp_1", time.UnixMilli(fixedNowMs-1000))
		require.NoError(t, err)

		_, err = service.ClockIn(ctx, "emp_1", "proj_1", "task_1", time.Time{})
		require.NoError(t, err)

		snap, err := st.LoadSessions(ctx)
		require.NoError(t, err)
		assert.Len(t, snap.Sessions, 2)
	})
}

func TestTrackerService_GetActiveSession(t *testing.T) {
	t.Run("should return nil when not clocked in", func(t *testing.T) {
		service, _, _ := setupTracker(t)

		session, err := service.GetActiveSession(context.Background(), "emp_1")

		require.NoError(t, err)
		assert.Nil(t, session)
	})

	t.Run("should return the active session", func(t *testing.T) {
		service, _, _ := setupTracker(t)
		ctx := context.Background()
		started, err := service.ClockIn(ctx, "emp_1", "proj_1", "task_1", time.Time{})
		require.NoError(t, err)

		session, err := service.GetActiveSession(ctx, "emp_1")

		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, started.ID, session.ID)
	})

	t.Run("should return nil after clock-out", func(t *testing.T) {
		service, _, _ := setupTracker(t)
		ctx := context.Background()
		_, err := service.ClockIn(ctx, "emp_1", "proj_1", "task_1", time.UnixMilli(fixedNowMs-1000))
		require.NoError(t, err)
		_, err = service.ClockOut(ctx, "emp_1", time.Time{})
		require.NoError(t, err)

		session, err := service.GetActiveSession(ctx, "emp_1")

		require.NoError(t, err)
		assert.Nil(t, session)
	})
}

func TestTrackerService_Screenshots(t *testing.T) {
	t.Run("should record capture metadata on clock-in and clock-out", func(t *testing.T) {
		// Arrange
		service, st, capturer := setupTracker(t)
		ctx := context.Background()

		// Act
		_, err := service.ClockIn(ctx, "emp_1", "proj_1", "task_1", time.UnixMilli(fixedNowMs-1000))
		require.NoError(t, err)
		_, err = service.ClockOut(ctx, "emp_1", time.Time{})
		require.NoError(t, err)
		service.waitForCaptures()

		// Assert
		assert.Equal(t, 2, capturer.callCount())
		shots, err := st.LoadScreenshots(ctx)
		require.NoError(t, err)
		require.Len(t, shots, 2)
		assert.Equal(t, "emp_1", shots[0].EmployeeID)
		assert.Equal(t, "proj_1", shots[0].ProjectID)
	})

	t.Run("should not fail the lifecycle operation when capture fails", func(t *testing.T) {
		st := setupSeededStore(t)
		capturer := &stubCapturer{err: context.DeadlineExceeded}
		service := newTrackerService(st, capturer, testEnricher(), fixedNow)
		ctx := context.Background()

		session, err := service.ClockIn(ctx, "emp_1", "proj_1", "task_1", time.Time{})
		service.waitForCaptures()

		require.NoError(t, err)
		require.NotNil(t, session)
		shots, err := st.LoadScreenshots(ctx)
		require.NoError(t, err)
		assert.Empty(t, shots)
	})

	t.Run("should tolerate a nil capturer", func(t *testing.T) {
		st := setupSeededStore(t)
		service := newTrackerService(st, nil, testEnricher(), fixedNow)

		_, err := service.ClockIn(context.Background(), "emp_1", "proj_1", "task_1", time.Time{})

		require.NoError(t, err)
	})
}

func TestTrackerService_ConcurrentClockIn(t *testing.T) {
	t.Run("should admit exactly one session per employee under concurrency", func(t *testing.T) {
		// Arrange
		service, st, _ := setupTracker(t)
		ctx := context.Background()
		const goroutines = 8

		var wg sync.WaitGroup
		results := make([]error, goroutines)

		// Act
		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, results[i] = service.ClockIn(ctx, "emp_1", "proj_1", "task_1", time.Time{})
			}(i)
		}
		wg.Wait()
		service.waitForCaptures()

		// Assert
		succeeded := 0
		for _, err := range results {
			if err == nil {
				succeeded++
			} else {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeConflict))
			}
		}
		assert.Equal(t, 1, succeeded)

		snap, err := st.LoadSessions(ctx)
		require.NoError(t, err)
		active := 0
		for _, s := range snap.Sessions {
			if s.EmployeeID == "emp_1" && s.IsActive() {
				active++
			}
		}
		assert.Equal(t, 1, active)
	})

	t.Run("should admit concurrent clock-ins for different employees", func(t *testing.T) {
		service, st, _ := setupTracker(t)
		ctx := context.Background()

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i, employeeID := range []string{"emp_1", "emp_2"} {
			wg.Add(1)
			go func(i int, employeeID string) {
				defer wg.Done()
				_, errs[i] = service.ClockIn(ctx, employeeID, "proj_1", "task_1", time.Time{})
			}(i, employeeID)
		}
		wg.Wait()
		service.waitForCaptures()

		require.NoError(t, errs[0])
		require.NoError(t, errs[1])

		snap, err := st.LoadSessions(ctx)
		require.NoError(t, err)
		assert.Len(t, snap.Sessions, 2)
	})
}

func TestTrackerService_InputValidation(t *testing.T) {
	tests := []struct {
		name       string
		employeeID string
		at         time.Time
	}{
		{
			name:       "should reject whitespace employee ID",
			employeeID: "   ",
		},
		{
			name:       "should reject timestamp far in the future",
			employeeID: "emp_1",
			at:         time.Now().AddDate(2, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := setupTracker(t)

			_, clockInErr := service.ClockIn(context.Background(), tt.employeeID, "proj_1", "task_1", tt.at)
			_, clockOutErr := service.ClockOut(context.Background(), tt.employeeID, tt.at)

			assert.True(t, errors.IsErrorType(clockInErr, errors.ErrorTypeValidation))
			assert.True(t, errors.IsErrorType(clockOutErr, errors.ErrorTypeValidation))
		})
	}
}

// Guard against the validator accepting sessions the lifecycle would produce.
func TestTrackerService_ProducesValidSessions(t *testing.T) {
	service, _, _ := setupTracker(t)
	validator := validation.NewSessionValidator()

	session, err := service.ClockIn(context.Background(), "emp_1", "proj_1", "task_1", time.Time{})
	require.NoError(t, err)

	assert.NoError(t, validator.ValidateSession(*session))
}
