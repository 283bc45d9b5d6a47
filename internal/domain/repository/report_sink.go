package repository

import (
	"context"

	"farewatch-service/internal/domain/entity"
)

// ReportSink delivers a rendered report somewhere: a file on disk, a mailbox.
// Sinks fail independently; one sink's error never blocks another.
type ReportSink interface {
	// Name identifies the sink in logs.
	Name() string

	// Deliver hands over the run report and its rendered HTML body.
	Deliver(ctx context.Context, report *entity.RunReport, html string) error
}
