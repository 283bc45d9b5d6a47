package usecase

import (
	"fmt"

	"farewatch-service/internal/domain/entity"
)

// TripFilter qualifies raw observations into trip candidates. An observation
// that fails any predicate is silently dropped: not qualifying is the normal
// outcome for most scraped rows, never an error.
type TripFilter interface {
	Qualify(o entity.Observation) (entity.TripCandidate, bool)
}

// FilterForMode selects the policy variant for the run's mode.
func FilterForMode(cfg SearchConfig) (TripFilter, error) {
	switch cfg.Mode {
	case entity.ModeWeekend:
		return NewWeekendFilter(cfg), nil
	case entity.ModeDuration:
		return NewDurationFilter(cfg), nil
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", entity.ErrInvalidConfig, cfg.Mode)
	}
}
