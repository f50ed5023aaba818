// Package store defines the entity-store contract consumed by the session
// lifecycle manager and the analytics aggregator. Collections are read and
// replaced whole; there is no partial-update API.
package store

import (
	"context"

	"timeclock/internal/domain"
)

// SessionSnapshot is a consistent view of the session collection. Version
// identifies the collection state the snapshot was read from; SaveSessions
// rejects writes based on a stale version so the load-check-mutate-save cycle
// can be retried instead of silently losing a concurrent update.
type SessionSnapshot struct {
	Sessions []domain.Session
	Version  int64
}

// Store is the whole-collection load/replace persistence contract.
type Store interface {
	LoadEmployees(ctx context.Context) ([]domain.Employee, error)
	LoadProjects(ctx context.Context) ([]domain.Project, error)
	LoadTasks(ctx context.Context) ([]domain.Task, error)

	// LoadSessions returns a versioned snapshot of the session collection.
	LoadSessions(ctx context.Context) (SessionSnapshot, error)

	// SaveSessions replaces the session collection with the snapshot's
	// sessions. It fails with a conflict error when the snapshot's version no
	// longer matches the stored collection.
	SaveSessions(ctx context.Context, snap SessionSnapshot) error

	LoadScreenshots(ctx context.Context) ([]domain.Screenshot, error)
	SaveScreenshots(ctx context.Context, screenshots []domain.Screenshot) error

	Close() error
}

// Seeder is implemented by stores that can replace the read-only entity
// collections, used by the seed command and by tests.
type Seeder interface {
	SeedEmployees(ctx context.Context, employees []domain.Employee) error
	SeedProjects(ctx context.Context, projects []domain.Project) error
	SeedTasks(ctx context.Context, tasks []domain.Task) error
}
