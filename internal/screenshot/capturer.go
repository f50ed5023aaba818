// Package screenshot models the capture collaborator used during clock-in and
// clock-out. Captures are best-effort: the lifecycle manager fires them and
// swallows failures.
package screenshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"timeclock/internal/domain"
)

// Default metadata recorded on captures taken by the lifecycle flow.
const (
	defaultApp               = "timeclock"
	defaultTitle             = "Work Session Screenshot"
	defaultProductivityScore = 0.8
)

// Capturer produces screenshot artifacts for a work session.
type Capturer interface {
	Capture(ctx context.Context, employeeID, projectID, taskID string) (*domain.Screenshot, error)
}

// FileCapturer records capture artifacts under a directory. The artifact
// content is a placeholder; the metadata is what the analytics side consumes.
type FileCapturer struct {
	dir            string
	organizationID string
}

// NewFileCapturer creates a FileCapturer writing artifacts into dir.
func NewFileCapturer(dir, organizationID string) (*FileCapturer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create screenshot directory: %w", err)
	}
	return &FileCapturer{dir: dir, organizationID: organizationID}, nil
}

// Capture writes an artifact file and returns its metadata.
func (c *FileCapturer) Capture(ctx context.Context, employeeID, projectID, taskID string) (*domain.Screenshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	shot := domain.NewScheduledScreenshot(employeeID, projectID, taskID, c.organizationID)
	shot.App = defaultApp
	shot.Title = defaultTitle
	shot.ProductivityScore = defaultProductivityScore

	filename := fmt.Sprintf("%s_%s_%d.png", employeeID, projectID, time.Now().UnixMilli())
	path := filepath.Join(c.dir, filename)
	if err := os.WriteFile(path, []byte{}, 0o644); err != nil {
		return nil, fmt.Errorf("write screenshot artifact: %w", err)
	}
	shot.Link = path

	return &shot, nil
}

// NopCapturer discards capture requests; used when capture is disabled.
type NopCapturer struct{}

// Capture returns no artifact.
func (NopCapturer) Capture(ctx context.Context, employeeID, projectID, taskID string) (*domain.Screenshot, error) {
	return nil, nil
}
