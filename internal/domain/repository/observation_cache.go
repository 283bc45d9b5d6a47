package repository

import (
	"context"

	"farewatch-service/internal/domain/entity"
)

// ObservationCache persists the full observation set of the most recent
// successful scrape so later runs can skip the network entirely.
type ObservationCache interface {
	// Save replaces the cached set wholesale. The write is all-or-nothing:
	// a failure leaves the previously cached set untouched.
	Save(ctx context.Context, observations []entity.Observation) error

	// Load returns the cached set in saved order. Returns
	// entity.ErrNoCachedData when no prior save exists or the set is empty.
	Load(ctx context.Context) ([]entity.Observation, error)
}
