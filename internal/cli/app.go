package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"timeclock/internal/config"
	"timeclock/internal/services"
	"timeclock/internal/store"
)

// App represents the main CLI application
type App struct {
	services *services.ServiceContainer
	config   *config.Config
	seeder   store.Seeder
	out      io.Writer
	errors   *ErrorHandler
}

// NewApp creates a new CLI application instance with dependency injection.
// seeder may be nil when the active store backend cannot be seeded.
func NewApp(container *services.ServiceContainer, cfg *config.Config, seeder store.Seeder) *App {
	return &App{
		services: container,
		config:   cfg,
		seeder:   seeder,
		out:      os.Stdout,
		errors:   NewErrorHandler(),
	}
}

// printJSON writes a record as indented JSON
func (a *App) printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	fmt.Fprintln(a.out, string(data))
	return nil
}

// parseTimestamp parses an optional timestamp argument. Accepts RFC3339 or
// epoch milliseconds; an empty value returns the zero time (meaning "now").
func parseTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	var ms int64
	if _, err := fmt.Sscanf(value, "%d", &ms); err == nil && ms > 0 {
		return time.UnixMilli(ms), nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q: expected RFC3339 or epoch milliseconds", value)
}
