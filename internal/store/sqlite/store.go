// Package sqlite implements the entity store on a SQLite database. Loads are
// full-table snapshot reads; SaveSessions replaces the whole collection in one
// transaction guarded by a collection version row.
package sqlite

import (
	"context"
	"database/sql"

	"timeclock/internal/domain"
	"timeclock/internal/errors"
	"timeclock/internal/store"
	"timeclock/internal/store/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Store implements store.Store backed by SQLite.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStorageError("open database", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("run migrations", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// LoadEmployees loads the employee collection.
func (s *Store) LoadEmployees(ctx context.Context) ([]domain.Employee, error) {
	query := `
	SELECT id, name, email, team_id, shared_settings_id, account_id, identifier,
	       type, organization_id, projects, deactivated, invited, created_at
	FROM employees
	ORDER BY id ASC`

	return QueryMultiple(ctx, s.db, query, ScanEmployees, "employees")
}

// LoadProjects loads the project collection.
func (s *Store) LoadProjects(ctx context.Context) ([]domain.Project, error) {
	query := `
	SELECT id, name, archived, billable, statuses, priorities,
	       bill_rate, overtime_bill_rate, pay_rate, overtime_pay_rate,
	       employees, teams, creator_id, organization_id, created_at
	FROM projects
	ORDER BY id ASC`

	return QueryMultiple(ctx, s.db, query, ScanProjects, "projects")
}

// LoadTasks loads the task collection.
func (s *Store) LoadTasks(ctx context.Context) ([]domain.Task, error) {
	query := `
	SELECT id, name, project_id, status, priority, billable, is_default,
	       description, employees, teams, creator_id, organization_id, created_at
	FROM tasks
	ORDER BY id ASC`

	return QueryMultiple(ctx, s.db, query, ScanTasks, "tasks")
}

// LoadSessions returns a versioned snapshot of the session collection.
func (s *Store) LoadSessions(ctx context.Context) (store.SessionSnapshot, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.SessionSnapshot{}, HandleStorageError("begin snapshot read", err)
	}
	defer tx.Rollback()

	version, err := readSessionVersion(ctx, tx)
	if err != nil {
		return store.SessionSnapshot{}, err
	}

	rows, err := tx.QueryContext(ctx, `
	SELECT id, start_time, end_time, timezone, timezone_offset,
	       employee_id, team_id, project_id, task_id, shift_id,
	       name, user, organization_id, shared_settings_id,
	       billable, bill_rate, overtime_bill_rate, pay_rate, overtime_pay_rate,
	       task_status, task_priority, computer, os, os_version, hwid,
	       created_at, updated_at
	FROM sessions
	ORDER BY start_time ASC`)
	if err != nil {
		return store.SessionSnapshot{}, HandleStorageError("query sessions", err)
	}
	defer rows.Close()

	sessions, err := ScanSessions(rows)
	if err != nil {
		return store.SessionSnapshot{}, HandleStorageError("scan sessions", err)
	}

	return store.SessionSnapshot{Sessions: sessions, Version: version}, nil
}

// SaveSessions replaces the session collection in a single transaction. The
// write is rejected with a conflict error when the snapshot was taken from an
// older collection state.
func (s *Store) SaveSessions(ctx context.Context, snap store.SessionSnapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleStorageError("begin session save", err)
	}
	defer tx.Rollback()

	version, err := readSessionVersion(ctx, tx)
	if err != nil {
		return err
	}
	if version != snap.Version {
		return errors.NewConflictError("session collection was modified concurrently").
			WithContext("expected_version", snap.Version).
			WithContext("actual_version", version)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return HandleStorageError("clear sessions", err)
	}

	insert := `
	INSERT INTO sessions (
		id, start_time, end_time, timezone, timezone_offset,
		employee_id, team_id, project_id, task_id, shift_id,
		name, user, organization_id, shared_settings_id,
		billable, bill_rate, overtime_bill_rate, pay_rate, overtime_pay_rate,
		task_status, task_priority, computer, os, os_version, hwid,
		created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for _, sess := range snap.Sessions {
		_, err := tx.ExecContext(ctx, insert,
			sess.ID, sess.Start, sess.End, sess.Timezone, sess.TimezoneOffset,
			sess.EmployeeID, sess.TeamID, sess.ProjectID, sess.TaskID, sess.ShiftID,
			sess.Name, sess.User, sess.OrganizationID, sess.SharedSettingsID,
			BoolToInt(sess.Billable), sess.BillRate, sess.OvertimeBillRate, sess.PayRate, sess.OvertimePayRate,
			sess.TaskStatus, sess.TaskPriority, sess.Computer, sess.Os, sess.OsVersion, sess.HwID,
			sess.CreatedAt, sess.UpdatedAt,
		)
		if err != nil {
			return HandleStorageError("insert session", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE collection_versions SET version = version + 1 WHERE name = 'sessions'`); err != nil {
		return HandleStorageError("bump session version", err)
	}

	if err := tx.Commit(); err != nil {
		return HandleStorageError("commit session save", err)
	}
	return nil
}

// LoadScreenshots loads the screenshot metadata collection.
func (s *Store) LoadScreenshots(ctx context.Context) ([]domain.Screenshot, error) {
	query := `
	SELECT id, type, timestamp, employee_id, project_id, task_id,
	       organization_id, app, title, link, productivity
	FROM screenshots
	ORDER BY timestamp ASC`

	return QueryMultiple(ctx, s.db, query, ScanScreenshots, "screenshots")
}

// SaveScreenshots replaces the screenshot metadata collection.
func (s *Store) SaveScreenshots(ctx context.Context, screenshots []domain.Screenshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleStorageError("begin screenshot save", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM screenshots`); err != nil {
		return HandleStorageError("clear screenshots", err)
	}

	insert := `
	INSERT INTO screenshots (
		id, type, timestamp, employee_id, project_id, task_id,
		organization_id, app, title, link, productivity
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for _, shot := range screenshots {
		_, err := tx.ExecContext(ctx, insert,
			shot.ID, shot.Type, shot.Timestamp, shot.EmployeeID, shot.ProjectID,
			shot.TaskID, shot.OrganizationID, shot.App, shot.Title, shot.Link,
			shot.ProductivityScore,
		)
		if err != nil {
			return HandleStorageError("insert screenshot", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return HandleStorageError("commit screenshot save", err)
	}
	return nil
}

// SeedEmployees replaces the employee collection.
func (s *Store) SeedEmployees(ctx context.Context, employees []domain.Employee) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleStorageError("begin employee seed", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM employees`); err != nil {
		return HandleStorageError("clear employees", err)
	}

	insert := `
	INSERT INTO employees (
		id, name, email, team_id, shared_settings_id, account_id, identifier,
		type, organization_id, projects, deactivated, invited, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for _, e := range employees {
		projects, err := EncodeStringList(e.Projects)
		if err != nil {
			return HandleStorageError("encode employee projects", err)
		}
		_, err = tx.ExecContext(ctx, insert,
			e.ID, e.Name, e.Email, e.TeamID, e.SharedSettingsID, e.AccountID,
			e.Identifier, e.Type, e.OrganizationID, projects, e.Deactivated,
			e.Invited, e.CreatedAt,
		)
		if err != nil {
			return HandleStorageError("insert employee", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return HandleStorageError("commit employee seed", err)
	}
	return nil
}

// SeedProjects replaces the project collection.
func (s *Store) SeedProjects(ctx context.Context, projects []domain.Project) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleStorageError("begin project seed", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM projects`); err != nil {
		return HandleStorageError("clear projects", err)
	}

	insert := `
	INSERT INTO projects (
		id, name, archived, billable, statuses, priorities,
		bill_rate, overtime_bill_rate, pay_rate, overtime_pay_rate,
		employees, teams, creator_id, organization_id, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for _, p := range projects {
		statuses, err := EncodeStringList(p.Statuses)
		if err != nil {
			return HandleStorageError("encode project statuses", err)
		}
		priorities, err := EncodeStringList(p.Priorities)
		if err != nil {
			return HandleStorageError("encode project priorities", err)
		}
		members, err := EncodeStringList(p.Employees)
		if err != nil {
			return HandleStorageError("encode project employees", err)
		}
		teams, err := EncodeStringList(p.Teams)
		if err != nil {
			return HandleStorageError("encode project teams", err)
		}
		_, err = tx.ExecContext(ctx, insert,
			p.ID, p.Name, BoolToInt(p.Archived), BoolToInt(p.Billable), statuses, priorities,
			p.Payroll.BillRate, p.Payroll.OvertimeBillRate, p.Payroll.PayRate, p.Payroll.OvertimePayRate,
			members, teams, p.CreatorID, p.OrganizationID, p.CreatedAt,
		)
		if err != nil {
			return HandleStorageError("insert project", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return HandleStorageError("commit project seed", err)
	}
	return nil
}

// SeedTasks replaces the task collection.
func (s *Store) SeedTasks(ctx context.Context, tasks []domain.Task) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleStorageError("begin task seed", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return HandleStorageError("clear tasks", err)
	}

	insert := `
	INSERT INTO tasks (
		id, name, project_id, status, priority, billable, is_default,
		description, employees, teams, creator_id, organization_id, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for _, t := range tasks {
		members, err := EncodeStringList(t.Employees)
		if err != nil {
			return HandleStorageError("encode task employees", err)
		}
		teams, err := EncodeStringList(t.Teams)
		if err != nil {
			return HandleStorageError("encode task teams", err)
		}
		_, err = tx.ExecContext(ctx, insert,
			t.ID, t.Name, t.ProjectID, t.Status, t.Priority, BoolToInt(t.Billable),
			BoolToInt(t.Default), t.Description, members, teams, t.CreatorID,
			t.OrganizationID, t.CreatedAt,
		)
		if err != nil {
			return HandleStorageError("insert task", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return HandleStorageError("commit task seed", err)
	}
	return nil
}

func readSessionVersion(ctx context.Context, tx *sql.Tx) (int64, error) {
	var version int64
	err := tx.QueryRowContext(ctx,
		`SELECT version FROM collection_versions WHERE name = 'sessions'`).Scan(&version)
	if err != nil {
		return 0, HandleStorageError("read session version", err)
	}
	return version, nil
}
