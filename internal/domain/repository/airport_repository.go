package repository

import (
	"context"

	"farewatch-service/internal/domain/entity"
)

// AirportRepository resolves IATA codes to airport reference data.
type AirportRepository interface {
	GetByIATA(ctx context.Context, code string) (*entity.Airport, error)
}
