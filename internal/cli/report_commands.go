package cli

import (
	"context"
	"fmt"
	"strconv"

	"timeclock/internal/services"
)

// SessionsCommand handles the sessions command (windowed detail query)
type SessionsCommand struct {
	app *App
}

// NewSessionsCommand creates a new sessions command handler
func NewSessionsCommand(app *App) *SessionsCommand {
	return &SessionsCommand{app: app}
}

// Execute runs the sessions command
func (c *SessionsCommand) Execute(ctx context.Context, window services.Window, filters services.Filters) error {
	sessions, err := c.app.services.Analytics.WindowQuery(ctx, window, filters)
	if err != nil {
		return c.app.errors.Handle("query sessions", err)
	}
	if len(sessions) == 0 {
		fmt.Fprintln(c.app.out, "No sessions in window")
		return nil
	}
	return c.app.printJSON(sessions)
}

// SummaryCommand handles the summary command (per-project rollup)
type SummaryCommand struct {
	app *App
}

// NewSummaryCommand creates a new summary command handler
func NewSummaryCommand(app *App) *SummaryCommand {
	return &SummaryCommand{app: app}
}

// Execute runs the summary command
func (c *SummaryCommand) Execute(ctx context.Context, window services.Window, filters services.Filters) error {
	summaries, err := c.app.services.Analytics.ProjectTimeSummary(ctx, window, filters)
	if err != nil {
		return c.app.errors.Handle("summarize project time", err)
	}
	if len(summaries) == 0 {
		fmt.Fprintln(c.app.out, "No project time in window")
		return nil
	}

	for _, s := range summaries {
		fmt.Fprintf(c.app.out, "%s: time=%dms costs=%.2f income=%.2f\n",
			s.ProjectID, s.TimeMs, s.Costs, s.Income)
	}
	return nil
}

// parseWindowBound parses a window bound given as epoch milliseconds.
func parseWindowBound(name, value string) (int64, error) {
	ms, err := strconv.ParseInt(value, 10, 64)
	if err != nil || ms < 0 {
		return 0, fmt.Errorf("invalid %s %q: expected non-negative epoch milliseconds", name, value)
	}
	return ms, nil
}
