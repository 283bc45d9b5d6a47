package delivery

import (
	"context"
	"fmt"
	"os"

	"farewatch-service/internal/domain/entity"
	"farewatch-service/internal/domain/repository"
	"farewatch-service/pkg/logger"
)

// FileSink writes the rendered report to a file on disk.
type FileSink struct {
	path   string
	logger logger.Logger
}

// NewFileSink creates a sink writing to the given path.
func NewFileSink(path string, logger logger.Logger) *FileSink {
	return &FileSink{
		path:   path,
		logger: logger,
	}
}

var _ repository.ReportSink = (*FileSink)(nil)

// Name identifies the sink in logs.
func (s *FileSink) Name() string {
	return "file"
}

// Deliver writes the HTML body to the configured path.
func (s *FileSink) Deliver(ctx context.Context, report *entity.RunReport, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write report file: %w", err)
	}
	s.logger.Info("Report written", "path", s.path, "trips", len(report.Trips))
	return nil
}
