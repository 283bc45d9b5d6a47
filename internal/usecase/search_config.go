package usecase

import (
	"fmt"
	"time"

	"farewatch-service/internal/domain/entity"
	"farewatch-service/internal/domain/repository"
)

// SearchConfig is the immutable per-run configuration. The CLI builds one
// value up front; every pipeline component reads from it and nothing mutates
// it after validation.
type SearchConfig struct {
	Mode         entity.TripMode
	Origins      []string
	Destinations []string // empty means all destinations the source offers
	Scrape       bool
	PriceLimit   float64 // PLN, round-trip total

	// Weekend mode
	MinHours     int // minimum round-trip span in hours
	MaxStartHour int // latest acceptable departure hour, inclusive

	// Duration mode
	MinDays   int
	MaxDays   int
	StartDate *time.Time // optional travel window, inclusive
	EndDate   *time.Time

	// Scrape window handed to the flight scraper
	Window repository.DateRange
}

// Validate rejects a broken configuration before any scraping or filtering
// begins. All failures wrap entity.ErrInvalidConfig.
func (c SearchConfig) Validate() error {
	if c.Mode != entity.ModeWeekend && c.Mode != entity.ModeDuration {
		return fmt.Errorf("%w: unknown mode %q", entity.ErrInvalidConfig, c.Mode)
	}
	if len(c.Origins) == 0 {
		return fmt.Errorf("%w: at least one origin airport is required", entity.ErrInvalidConfig)
	}
	for _, iata := range c.Origins {
		if len(iata) != 3 {
			return fmt.Errorf("%w: origin %q is not a 3-letter IATA code", entity.ErrInvalidConfig, iata)
		}
	}
	if c.PriceLimit <= 0 {
		return fmt.Errorf("%w: price limit must be positive, got %.2f", entity.ErrInvalidConfig, c.PriceLimit)
	}

	switch c.Mode {
	case entity.ModeWeekend:
		if c.MinHours <= 0 {
			return fmt.Errorf("%w: min hours must be positive, got %d", entity.ErrInvalidConfig, c.MinHours)
		}
		if c.MaxStartHour < 0 || c.MaxStartHour > 23 {
			return fmt.Errorf("%w: max start hour must be between 0 and 23, got %d", entity.ErrInvalidConfig, c.MaxStartHour)
		}
	case entity.ModeDuration:
		if c.MinDays < 1 {
			return fmt.Errorf("%w: min days must be at least 1, got %d", entity.ErrInvalidConfig, c.MinDays)
		}
		if c.MinDays > c.MaxDays {
			return fmt.Errorf("%w: min days %d exceeds max days %d", entity.ErrInvalidConfig, c.MinDays, c.MaxDays)
		}
		if c.StartDate != nil && c.EndDate != nil && c.StartDate.After(*c.EndDate) {
			return fmt.Errorf("%w: start date %s is after end date %s", entity.ErrInvalidConfig,
				c.StartDate.Format("2006-01-02"), c.EndDate.Format("2006-01-02"))
		}
	}
	return nil
}
