package main

import (
	"context"
	"fmt"
	"os"

	"timeclock/internal/cli"
	"timeclock/internal/config"
	"timeclock/internal/screenshot"
	"timeclock/internal/services"
	"timeclock/internal/store"
	"timeclock/internal/sysinfo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	st, err := config.CreateStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	capturer, err := newCapturer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating screenshot capturer: %v\n", err)
		os.Exit(1)
	}

	system := sysinfo.NewCollector()
	enricher := services.NewEnricher(system)

	container := &services.ServiceContainer{
		Tracker:   services.NewTrackerService(st, capturer, enricher),
		Analytics: services.NewAnalyticsService(st),
		Directory: services.NewDirectoryService(st, system),
	}

	seeder, _ := st.(store.Seeder)
	app := cli.NewApp(container, cfg, seeder)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Application.Timeout)
	defer cancel()

	if err := cli.NewRootCommand(app).Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newCapturer builds the capture collaborator from configuration. Capture is
// best-effort metadata collection, so a disabled configuration gets a no-op.
func newCapturer(cfg *config.Config) (screenshot.Capturer, error) {
	if !cfg.Screenshot.Enabled {
		return screenshot.NopCapturer{}, nil
	}
	return screenshot.NewFileCapturer(cfg.Screenshot.Dir, "")
}
