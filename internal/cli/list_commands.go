package cli

import (
	"context"
	"fmt"
)

// EmployeesCommand handles the employees command
type EmployeesCommand struct {
	app *App
}

// NewEmployeesCommand creates a new employees command handler
func NewEmployeesCommand(app *App) *EmployeesCommand {
	return &EmployeesCommand{app: app}
}

// Execute runs the employees command
func (c *EmployeesCommand) Execute(ctx context.Context) error {
	employees, err := c.app.services.Directory.ListActiveEmployees(ctx)
	if err != nil {
		return c.app.errors.Handle("list employees", err)
	}
	for _, e := range employees {
		fmt.Fprintf(c.app.out, "%s\t%s\t%d projects\n", e.ID, e.Name, len(e.Projects))
	}
	return nil
}

// ProjectsCommand handles the projects command
type ProjectsCommand struct {
	app *App
}

// NewProjectsCommand creates a new projects command handler
func NewProjectsCommand(app *App) *ProjectsCommand {
	return &ProjectsCommand{app: app}
}

// Execute runs the projects command. With an employee ID it lists that
// employee's assigned projects, otherwise all active projects.
func (c *ProjectsCommand) Execute(ctx context.Context, employeeID string) error {
	if employeeID != "" {
		projects, err := c.app.services.Directory.GetEmployeeProjects(ctx, employeeID)
		if err != nil {
			return c.app.errors.Handle("list employee projects", err)
		}
		for _, p := range projects {
			fmt.Fprintf(c.app.out, "%s\t%s\n", p.ID, p.Name)
		}
		return nil
	}

	projects, err := c.app.services.Directory.ListActiveProjects(ctx)
	if err != nil {
		return c.app.errors.Handle("list projects", err)
	}
	for _, p := range projects {
		fmt.Fprintf(c.app.out, "%s\t%s\tbillable=%t\n", p.ID, p.Name, p.Billable)
	}
	return nil
}

// SystemInfoCommand handles the system-info command
type SystemInfoCommand struct {
	app *App
}

// NewSystemInfoCommand creates a new system-info command handler
func NewSystemInfoCommand(app *App) *SystemInfoCommand {
	return &SystemInfoCommand{app: app}
}

// Execute runs the system-info command
func (c *SystemInfoCommand) Execute(ctx context.Context) error {
	info, err := c.app.services.Directory.SystemInfo(ctx)
	if err != nil {
		return c.app.errors.Handle("collect system info", err)
	}
	return c.app.printJSON(info)
}
