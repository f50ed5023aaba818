package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewActiveSession(t *testing.T) {
	t.Run("should create active session with generated ID", func(t *testing.T) {
		// Act
		session := NewActiveSession(1000, "emp_1", "proj_1", "task_1", "team_1", "UTC")

		// Assert
		assert.NotEmpty(t, session.ID)
		assert.Equal(t, int64(1000), session.Start)
		assert.Equal(t, int64(0), session.End)
		assert.Equal(t, "emp_1", session.EmployeeID)
		assert.Equal(t, "proj_1", session.ProjectID)
		assert.Equal(t, "task_1", session.TaskID)
		assert.Equal(t, "team_1", session.TeamID)
		assert.Equal(t, "UTC", session.Timezone)
		assert.True(t, session.IsActive())
		assert.Greater(t, session.CreatedAt, int64(0))
	})

	t.Run("should generate unique IDs", func(t *testing.T) {
		a := NewActiveSession(1000, "emp_1", "proj_1", "task_1", "team_1", "UTC")
		b := NewActiveSession(1000, "emp_1", "proj_1", "task_1", "team_1", "UTC")

		assert.NotEqual(t, a.ID, b.ID)
	})
}

func TestSession_IsActive(t *testing.T) {
	tests := []struct {
		name     string
		end      int64
		expected bool
	}{
		{
			name:     "should be active when end is zero",
			end:      0,
			expected: true,
		},
		{
			name:     "should be closed when end is set",
			end:      2000,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := Session{Start: 1000, End: tt.end}

			assert.Equal(t, tt.expected, session.IsActive())
		})
	}
}

func TestSession_ClockOut(t *testing.T) {
	tests := []struct {
		name          string
		start         int64
		end           int64
		clockOutAt    int64
		expectedError error
	}{
		{
			name:       "should close active session",
			start:      1000,
			end:        0,
			clockOutAt: 5000,
		},
		{
			name:          "should reject closing an already closed session",
			start:         1000,
			end:           2000,
			clockOutAt:    5000,
			expectedError: errAlreadyCompleted,
		},
		{
			name:          "should reject end before start",
			start:         5000,
			end:           0,
			clockOutAt:    1000,
			expectedError: errEndBeforeStart,
		},
		{
			name:          "should reject end equal to start",
			start:         5000,
			end:           0,
			clockOutAt:    5000,
			expectedError: errEndBeforeStart,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			session := Session{ID: "s1", Start: tt.start, End: tt.end, EmployeeID: "emp_1"}

			// Act
			err := session.ClockOut(tt.clockOutAt)

			// Assert
			if tt.expectedError != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Equal(t, tt.end, session.End)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.clockOutAt, session.End)
				assert.False(t, session.IsActive())
				assert.Greater(t, session.UpdatedAt, int64(0))
			}
		})
	}
}

func TestSession_Durations(t *testing.T) {
	t.Run("should return zero closed duration for active session", func(t *testing.T) {
		session := Session{Start: 1000, End: 0}

		assert.Equal(t, int64(0), session.DurationMs())
	})

	t.Run("should return end minus start for closed session", func(t *testing.T) {
		session := Session{Start: 1000, End: 4500}

		assert.Equal(t, int64(3500), session.DurationMs())
	})

	t.Run("should extrapolate active session to now", func(t *testing.T) {
		session := Session{Start: 1000, End: 0}

		assert.Equal(t, int64(9000), session.CurrentDurationMs(10000))
	})

	t.Run("should ignore now for closed session", func(t *testing.T) {
		session := Session{Start: 1000, End: 4500}

		assert.Equal(t, int64(3500), session.CurrentDurationMs(999999))
	})
}

func TestSession_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		start    int64
		end      int64
		expected bool
	}{
		{name: "should accept active session", start: 1000, end: 0, expected: true},
		{name: "should accept closed session", start: 1000, end: 2000, expected: true},
		{name: "should reject zero start", start: 0, end: 0, expected: false},
		{name: "should reject negative start", start: -5, end: 0, expected: false},
		{name: "should reject end before start", start: 2000, end: 1000, expected: false},
		{name: "should reject end equal to start", start: 2000, end: 2000, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := Session{Start: tt.start, End: tt.end}

			assert.Equal(t, tt.expected, session.IsValid())
		})
	}
}

func TestEmployee_IsActive(t *testing.T) {
	t.Run("should be active when deactivated is zero", func(t *testing.T) {
		assert.True(t, Employee{ID: "emp_1"}.IsActive())
	})

	t.Run("should be inactive when deactivated is set", func(t *testing.T) {
		assert.False(t, Employee{ID: "emp_1", Deactivated: 1700000000000}.IsActive())
	})
}

func TestProject_HasEmployee(t *testing.T) {
	project := Project{ID: "proj_1", Employees: []string{"emp_1", "emp_2"}}

	assert.True(t, project.HasEmployee("emp_1"))
	assert.False(t, project.HasEmployee("emp_3"))
}

func TestTask_IsDefaultFor(t *testing.T) {
	tests := []struct {
		name      string
		task      Task
		projectID string
		expected  bool
	}{
		{
			name:      "should match default task of the project",
			task:      Task{ID: "task_1", ProjectID: "proj_1", Default: true},
			projectID: "proj_1",
			expected:  true,
		},
		{
			name:      "should not match default task of another project",
			task:      Task{ID: "task_1", ProjectID: "proj_2", Default: true},
			projectID: "proj_1",
			expected:  false,
		},
		{
			name:      "should not match non-default task regardless of name",
			task:      Task{ID: "task_1", Name: "Default Task", ProjectID: "proj_1", Default: false},
			projectID: "proj_1",
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.task.IsDefaultFor(tt.projectID))
		})
	}
}
