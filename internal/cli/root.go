package cli

import (
	"context"

	"github.com/spf13/cobra"

	"timeclock/internal/services"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd *cobra.Command
	app *App
}

// NewRootCommand creates the root cobra command with all subcommands
func NewRootCommand(app *App) *RootCommand {
	root := &RootCommand{app: app}

	root.cmd = &cobra.Command{
		Use:   "timeclock",
		Short: "Employee clock-in/clock-out tracking with billing analytics",
		Long: `Timeclock tracks employee work sessions and derives billing and
productivity analytics from the session log.

EXAMPLES:
  timeclock clock-in -e emp_1                    # Clock in on the default project/task
  timeclock clock-in -e emp_1 -p proj_2          # Clock in on a specific project
  timeclock clock-out -e emp_1                   # Clock out
  timeclock active -e emp_1                      # Show the active session, if any
  timeclock sessions --from 0 --to 1700000000000 # Sessions overlapping a window
  timeclock summary --from 0 --to 1700000000000  # Per-project time/costs/income
  timeclock employees                            # List active employees
  timeclock projects -e emp_1                    # List an employee's projects
  timeclock system-info                          # Host descriptors
  timeclock seed --from-dir ./mock-db            # Import entity collections

CONFIGURATION:
  TC_STORE_BACKEND      Store backend: json or sqlite (default: json)
  TC_DATA_DIR           Data directory (default: ~/.timeclock)
  TC_SQLITE_FILENAME    SQLite database filename (default: timeclock.db)
  TC_SCREENSHOT_ENABLED Capture screenshots on clock-in/out (default: true)
  TC_SCREENSHOT_DIR     Screenshot artifact directory
  TC_APP_TIMEOUT        Application timeout (default: 60s)
  TC_DEBUG              Enable debug logging when set`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	var employeeID, projectID, taskID, at string

	clockInCmd := &cobra.Command{
		Use:   "clock-in",
		Short: "Clock an employee in",
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewClockInCommand(r.app).Execute(cmd.Context(), employeeID, projectID, taskID, at)
		},
	}
	clockInCmd.Flags().StringVarP(&employeeID, "employee", "e", "", "employee ID (required)")
	clockInCmd.Flags().StringVarP(&projectID, "project", "p", "", "project ID (defaults to first assigned project)")
	clockInCmd.Flags().StringVarP(&taskID, "task", "t", "", "task ID (defaults to the project's default task)")
	clockInCmd.Flags().StringVar(&at, "at", "", "timestamp, RFC3339 or epoch ms (defaults to now)")
	clockInCmd.MarkFlagRequired("employee")

	var outEmployeeID, outAt string
	clockOutCmd := &cobra.Command{
		Use:   "clock-out",
		Short: "Clock an employee out",
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewClockOutCommand(r.app).Execute(cmd.Context(), outEmployeeID, outAt)
		},
	}
	clockOutCmd.Flags().StringVarP(&outEmployeeID, "employee", "e", "", "employee ID (required)")
	clockOutCmd.Flags().StringVar(&outAt, "at", "", "timestamp, RFC3339 or epoch ms (defaults to now)")
	clockOutCmd.MarkFlagRequired("employee")

	var activeEmployeeID string
	activeCmd := &cobra.Command{
		Use:   "active",
		Short: "Show an employee's active session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewActiveCommand(r.app).Execute(cmd.Context(), activeEmployeeID)
		},
	}
	activeCmd.Flags().StringVarP(&activeEmployeeID, "employee", "e", "", "employee ID (required)")
	activeCmd.MarkFlagRequired("employee")

	sessionsCmd := r.newWindowedCommand("sessions", "List sessions overlapping a time window",
		func(ctx context.Context, window services.Window, filters services.Filters) error {
			return NewSessionsCommand(r.app).Execute(ctx, window, filters)
		})

	summaryCmd := r.newWindowedCommand("summary", "Per-project time, costs and income for a time window",
		func(ctx context.Context, window services.Window, filters services.Filters) error {
			return NewSummaryCommand(r.app).Execute(ctx, window, filters)
		})

	employeesCmd := &cobra.Command{
		Use:   "employees",
		Short: "List active employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewEmployeesCommand(r.app).Execute(cmd.Context())
		},
	}

	var projectsEmployeeID string
	projectsCmd := &cobra.Command{
		Use:   "projects",
		Short: "List active projects, or an employee's assigned projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewProjectsCommand(r.app).Execute(cmd.Context(), projectsEmployeeID)
		},
	}
	projectsCmd.Flags().StringVarP(&projectsEmployeeID, "employee", "e", "", "employee ID")

	systemInfoCmd := &cobra.Command{
		Use:   "system-info",
		Short: "Show host descriptors",
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewSystemInfoCommand(r.app).Execute(cmd.Context())
		},
	}

	var seedDir string
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Import entity collections from JSON files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewSeedCommand(r.app).Execute(cmd.Context(), seedDir)
		},
	}
	seedCmd.Flags().StringVar(&seedDir, "from-dir", "", "directory with employees.json/projects.json/tasks.json (required)")
	seedCmd.MarkFlagRequired("from-dir")

	r.cmd.AddCommand(clockInCmd, clockOutCmd, activeCmd, sessionsCmd, summaryCmd,
		employeesCmd, projectsCmd, systemInfoCmd, seedCmd)
}

// newWindowedCommand builds a command taking the mandatory window bounds and
// the optional analytics filters.
func (r *RootCommand) newWindowedCommand(use, short string, run func(context.Context, services.Window, services.Filters) error) *cobra.Command {
	var from, to string
	var filters services.Filters

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseWindowBound("--from", from)
			if err != nil {
				return err
			}
			end, err := parseWindowBound("--to", to)
			if err != nil {
				return err
			}
			return run(cmd.Context(), services.Window{Start: start, End: end}, filters)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "window start, epoch ms (required)")
	cmd.Flags().StringVar(&to, "to", "", "window end, epoch ms (required)")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")

	cmd.Flags().StringVarP(&filters.EmployeeID, "employee", "e", "", "filter by employee ID")
	cmd.Flags().StringVar(&filters.TeamID, "team", "", "filter by team ID")
	cmd.Flags().StringVarP(&filters.ProjectID, "project", "p", "", "filter by project ID")
	cmd.Flags().StringVarP(&filters.TaskID, "task", "t", "", "filter by task ID")
	cmd.Flags().StringVar(&filters.ShiftID, "shift", "", "filter by shift ID")
	cmd.Flags().StringVar(&filters.Timezone, "timezone", "", "filter by timezone")

	return cmd
}
