package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"timeclock/internal/domain"
)

// SeedCommand imports entity collections from JSON files into the active
// store backend. Missing files are skipped.
type SeedCommand struct {
	app *App
}

// NewSeedCommand creates a new seed command handler
func NewSeedCommand(app *App) *SeedCommand {
	return &SeedCommand{app: app}
}

// Execute runs the seed command against the given source directory
func (c *SeedCommand) Execute(ctx context.Context, dir string) error {
	if c.app.seeder == nil {
		return fmt.Errorf("the active store backend does not support seeding")
	}

	var employees []domain.Employee
	if ok, err := readSeedFile(filepath.Join(dir, "employees.json"), &employees); err != nil {
		return err
	} else if ok {
		if err := c.app.seeder.SeedEmployees(ctx, employees); err != nil {
			return c.app.errors.Handle("seed employees", err)
		}
		fmt.Fprintf(c.app.out, "Seeded %d employees\n", len(employees))
	}

	var projects []domain.Project
	if ok, err := readSeedFile(filepath.Join(dir, "projects.json"), &projects); err != nil {
		return err
	} else if ok {
		if err := c.app.seeder.SeedProjects(ctx, projects); err != nil {
			return c.app.errors.Handle("seed projects", err)
		}
		fmt.Fprintf(c.app.out, "Seeded %d projects\n", len(projects))
	}

	var tasks []domain.Task
	if ok, err := readSeedFile(filepath.Join(dir, "tasks.json"), &tasks); err != nil {
		return err
	} else if ok {
		if err := c.app.seeder.SeedTasks(ctx, tasks); err != nil {
			return c.app.errors.Handle("seed tasks", err)
		}
		fmt.Fprintf(c.app.out, "Seeded %d tasks\n", len(tasks))
	}

	return nil
}

// readSeedFile decodes a seed file into target, reporting whether the file
// was present.
func readSeedFile(path string, target interface{}) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read seed file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return false, fmt.Errorf("decode seed file %s: %w", path, err)
	}
	return true, nil
}
