package repository

import (
	"context"
	"time"

	"farewatch-service/internal/domain/entity"
)

// DateRange bounds the calendar window a scrape searches. Zero values leave
// the corresponding end unbounded.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// FlightScraper is the port the pipeline calls to obtain fresh observations.
type FlightScraper interface {
	// Fetch gathers round-trip price observations for every origin and
	// destination pair. An empty destination list means all destinations the
	// source offers. A failed pair must not abort the rest: implementations
	// log the failure and keep the partial result. The returned error is
	// non-nil only when nothing could be fetched at all.
	Fetch(ctx context.Context, origins []string, destinations []string, window DateRange) ([]entity.Observation, error)
}
