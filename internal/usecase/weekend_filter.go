package usecase

import (
	"time"

	"farewatch-service/internal/domain/entity"
)

// WeekendFilter qualifies short weekend getaways: leave Friday or Saturday
// early enough, come back Sunday through Tuesday, stay long enough, and stay
// under the price limit.
type WeekendFilter struct {
	priceLimit   float64
	minLength    time.Duration
	maxStartHour int
}

var (
	weekendStartDays  = map[time.Weekday]bool{time.Friday: true, time.Saturday: true}
	weekendReturnDays = map[time.Weekday]bool{time.Sunday: true, time.Monday: true, time.Tuesday: true}
)

// NewWeekendFilter builds the weekend policy from the run configuration.
func NewWeekendFilter(cfg SearchConfig) *WeekendFilter {
	return &WeekendFilter{
		priceLimit:   cfg.PriceLimit,
		minLength:    time.Duration(cfg.MinHours) * time.Hour,
		maxStartHour: cfg.MaxStartHour,
	}
}

// Qualify applies all four weekend predicates. Every one must hold.
func (f *WeekendFilter) Qualify(o entity.Observation) (entity.TripCandidate, bool) {
	if !weekendStartDays[o.Departure.Weekday()] {
		return entity.TripCandidate{}, false
	}
	if o.Departure.Hour() > f.maxStartHour {
		return entity.TripCandidate{}, false
	}
	if !weekendReturnDays[o.Return.Weekday()] {
		return entity.TripCandidate{}, false
	}
	if o.TripLength() < f.minLength {
		return entity.TripCandidate{}, false
	}
	if o.Price > f.priceLimit {
		return entity.TripCandidate{}, false
	}
	return entity.NewTripCandidate(o), true
}
