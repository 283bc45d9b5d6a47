package entity

import (
	"fmt"
	"time"
)

// Observation is one scraped round-trip price quote for a route. The
// departure and return timestamps carry a clock time only when the source
// exposed one; a date-only quote has the clock set to midnight.
type Observation struct {
	Origin      string    `json:"origin" bson:"origin"`
	Destination string    `json:"destination" bson:"destination"`
	Departure   time.Time `json:"departure" bson:"departure"`
	Return      time.Time `json:"return" bson:"return"`
	Price       float64   `json:"price" bson:"price"` // PLN
}

// Validate checks the structural invariants of an observation.
func (o Observation) Validate() error {
	if len(o.Origin) != 3 || len(o.Destination) != 3 {
		return fmt.Errorf("observation %s-%s: IATA codes must be 3 letters", o.Origin, o.Destination)
	}
	if !o.Return.After(o.Departure) {
		return fmt.Errorf("observation %s-%s: return %s is not after departure %s",
			o.Origin, o.Destination, o.Return.Format(time.RFC3339), o.Departure.Format(time.RFC3339))
	}
	return nil
}

// TripLength returns the total round-trip span.
func (o Observation) TripLength() time.Duration {
	return o.Return.Sub(o.Departure)
}

// TripDays returns the trip length in calendar days, ignoring clock times.
func (o Observation) TripDays() int {
	dep := dateOnly(o.Departure)
	ret := dateOnly(o.Return)
	return int(ret.Sub(dep).Hours() / 24)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
