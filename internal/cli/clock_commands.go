package cli

import (
	"context"
	"fmt"
)

// ClockInCommand handles the clock-in command
type ClockInCommand struct {
	app *App
}

// NewClockInCommand creates a new clock-in command handler
func NewClockInCommand(app *App) *ClockInCommand {
	return &ClockInCommand{app: app}
}

// Execute runs the clock-in command
func (c *ClockInCommand) Execute(ctx context.Context, employeeID, projectID, taskID, at string) error {
	timestamp, err := parseTimestamp(at)
	if err != nil {
		return err
	}

	session, err := c.app.services.Tracker.ClockIn(ctx, employeeID, projectID, taskID, timestamp)
	if err != nil {
		return c.app.errors.Handle("clock in", err)
	}

	fmt.Fprintf(c.app.out, "Clocked in %s on project %s\n", session.EmployeeID, session.ProjectID)
	return c.app.printJSON(session)
}

// ClockOutCommand handles the clock-out command
type ClockOutCommand struct {
	app *App
}

// NewClockOutCommand creates a new clock-out command handler
func NewClockOutCommand(app *App) *ClockOutCommand {
	return &ClockOutCommand{app: app}
}

// Execute runs the clock-out command
func (c *ClockOutCommand) Execute(ctx context.Context, employeeID, at string) error {
	timestamp, err := parseTimestamp(at)
	if err != nil {
		return err
	}

	session, err := c.app.services.Tracker.ClockOut(ctx, employeeID, timestamp)
	if err != nil {
		return c.app.errors.Handle("clock out", err)
	}

	fmt.Fprintf(c.app.out, "Clocked out %s after %dms\n", session.EmployeeID, session.DurationMs())
	return c.app.printJSON(session)
}

// ActiveCommand handles the active command
type ActiveCommand struct {
	app *App
}

// NewActiveCommand creates a new active command handler
func NewActiveCommand(app *App) *ActiveCommand {
	return &ActiveCommand{app: app}
}

// Execute runs the active command
func (c *ActiveCommand) Execute(ctx context.Context, employeeID string) error {
	session, err := c.app.services.Tracker.GetActiveSession(ctx, employeeID)
	if err != nil {
		return c.app.errors.Handle("look up active session", err)
	}
	if session == nil {
		fmt.Fprintf(c.app.out, "%s is not clocked in\n", employeeID)
		return nil
	}
	return c.app.printJSON(session)
}
