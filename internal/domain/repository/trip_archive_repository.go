package repository

import (
	"context"

	"farewatch-service/internal/domain/entity"
)

// TripArchiveRepository records reported trips across runs for price history.
type TripArchiveRepository interface {
	// Upsert creates the record for a trip key or updates its price fields.
	Upsert(ctx context.Context, record *entity.TripRecord) error

	// FindByTripKey returns the record for a key, or an error when none exists.
	FindByTripKey(ctx context.Context, tripKey string) (*entity.TripRecord, error)
}
