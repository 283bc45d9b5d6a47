package usecase

import (
	"time"

	"farewatch-service/internal/domain/entity"
)

// DurationFilter qualifies trips whose length in calendar days falls inside
// a chosen window, optionally bounded by a travel date range.
type DurationFilter struct {
	priceLimit float64
	minDays    int
	maxDays    int
	startDate  *time.Time
	endDate    *time.Time
}

// NewDurationFilter builds the duration policy from the run configuration.
func NewDurationFilter(cfg SearchConfig) *DurationFilter {
	return &DurationFilter{
		priceLimit: cfg.PriceLimit,
		minDays:    cfg.MinDays,
		maxDays:    cfg.MaxDays,
		startDate:  cfg.StartDate,
		endDate:    cfg.EndDate,
	}
}

// Qualify applies the length, date-window and price predicates.
func (f *DurationFilter) Qualify(o entity.Observation) (entity.TripCandidate, bool) {
	days := o.TripDays()
	if days < f.minDays || days > f.maxDays {
		return entity.TripCandidate{}, false
	}
	if f.startDate != nil && o.Departure.Before(*f.startDate) {
		return entity.TripCandidate{}, false
	}
	if f.endDate != nil && o.Return.After(endOfDay(*f.endDate)) {
		return entity.TripCandidate{}, false
	}
	if o.Price > f.priceLimit {
		return entity.TripCandidate{}, false
	}
	return entity.NewTripCandidate(o), true
}

// endOfDay widens an inclusive end date to cover return flights landing at
// any clock time that day.
func endOfDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, d.Location())
}
