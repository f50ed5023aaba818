// Package jsonstore persists each entity collection as a JSON file in a data
// directory. A missing file reads as an empty collection; saves replace the
// whole file atomically via a temp-file rename.
package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"timeclock/internal/domain"
	"timeclock/internal/errors"
	"timeclock/internal/store"
)

const (
	employeesFile   = "employees.json"
	projectsFile    = "projects.json"
	tasksFile       = "tasks.json"
	sessionsFile    = "sessions.json"
	screenshotsFile = "screenshots.json"
)

// Store implements store.Store on top of JSON files.
type Store struct {
	dir string

	// mu serializes session reads and writes so a snapshot is always
	// consistent with the version counter.
	mu      sync.Mutex
	version int64
}

// New creates a JSON file store rooted at dir, creating the directory if
// needed.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.NewValidationError("data directory must not be empty", nil)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.NewStorageError("create data directory", err)
	}
	return &Store{dir: dir}, nil
}

// Close implements store.Store; the JSON store holds no open resources.
func (s *Store) Close() error {
	return nil
}

// LoadEmployees loads the employee collection.
func (s *Store) LoadEmployees(ctx context.Context) ([]domain.Employee, error) {
	var employees []domain.Employee
	if err := s.readCollection(ctx, employeesFile, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

// LoadProjects loads the project collection.
func (s *Store) LoadProjects(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	if err := s.readCollection(ctx, projectsFile, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// LoadTasks loads the task collection.
func (s *Store) LoadTasks(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := s.readCollection(ctx, tasksFile, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// LoadSessions returns a versioned snapshot of the session collection.
func (s *Store) LoadSessions(ctx context.Context) (store.SessionSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sessions []domain.Session
	if err := s.readCollection(ctx, sessionsFile, &sessions); err != nil {
		return store.SessionSnapshot{}, err
	}
	return store.SessionSnapshot{Sessions: sessions, Version: s.version}, nil
}

// SaveSessions replaces the session collection. The write is rejected with a
// conflict error when the snapshot was taken from an older collection state.
func (s *Store) SaveSessions(ctx context.Context, snap store.SessionSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap.Version != s.version {
		return errors.NewConflictError("session collection was modified concurrently").
			WithContext("expected_version", snap.Version).
			WithContext("actual_version", s.version)
	}
	if err := s.writeCollection(ctx, sessionsFile, snap.Sessions); err != nil {
		return err
	}
	s.version++
	return nil
}

// LoadScreenshots loads the screenshot metadata collection.
func (s *Store) LoadScreenshots(ctx context.Context) ([]domain.Screenshot, error) {
	var screenshots []domain.Screenshot
	if err := s.readCollection(ctx, screenshotsFile, &screenshots); err != nil {
		return nil, err
	}
	return screenshots, nil
}

// SaveScreenshots replaces the screenshot metadata collection.
func (s *Store) SaveScreenshots(ctx context.Context, screenshots []domain.Screenshot) error {
	return s.writeCollection(ctx, screenshotsFile, screenshots)
}

// SeedEmployees replaces the employee collection.
func (s *Store) SeedEmployees(ctx context.Context, employees []domain.Employee) error {
	return s.writeCollection(ctx, employeesFile, employees)
}

// SeedProjects replaces the project collection.
func (s *Store) SeedProjects(ctx context.Context, projects []domain.Project) error {
	return s.writeCollection(ctx, projectsFile, projects)
}

// SeedTasks replaces the task collection.
func (s *Store) SeedTasks(ctx context.Context, tasks []domain.Task) error {
	return s.writeCollection(ctx, tasksFile, tasks)
}

// readCollection decodes the named collection file into target. A missing
// file leaves target as the empty collection.
func (s *Store) readCollection(ctx context.Context, filename string, target interface{}) error {
	if err := ctx.Err(); err != nil {
		return errors.NewStorageError("read "+filename, err)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.NewStorageError("read "+filename, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return errors.NewStorageError("decode "+filename, err)
	}
	return nil
}

// writeCollection encodes the collection and atomically replaces the named
// file.
func (s *Store) writeCollection(ctx context.Context, filename string, collection interface{}) error {
	if err := ctx.Err(); err != nil {
		return errors.NewStorageError("write "+filename, err)
	}

	data, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		return errors.NewStorageError("encode "+filename, err)
	}

	path := filepath.Join(s.dir, filename)
	tmp, err := os.CreateTemp(s.dir, filename+".tmp-*")
	if err != nil {
		return errors.NewStorageError("create temp file", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.NewStorageError("write "+filename, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.NewStorageError("close temp file", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.NewStorageError(fmt.Sprintf("replace %s", filename), err)
	}
	return nil
}
