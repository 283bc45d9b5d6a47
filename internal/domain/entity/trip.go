package entity

import (
	"fmt"
	"time"
)

// TripMode selects which qualification policy a run applies.
type TripMode string

const (
	ModeWeekend  TripMode = "weekend"
	ModeDuration TripMode = "duration"
)

// TripKey identifies a calendar trip: route plus departure and return dates,
// clock times ignored. Repeated scraping passes quote the same calendar trip
// at slightly different times, so dedup collapses on this key.
type TripKey struct {
	Origin        string
	Destination   string
	DepartureDate string // 2006-01-02
	ReturnDate    string // 2006-01-02
}

// String renders the key in the origin:dest:dep:ret form used for storage.
func (k TripKey) String() string {
	return fmt.Sprintf("%s:%s:%s:%s", k.Origin, k.Destination, k.DepartureDate, k.ReturnDate)
}

// TripCandidate is an observation that satisfied the active policy's
// predicates. Enrichment later attaches scheduled clock times from the
// timetables; both stay nil when no timetable entry matched.
type TripCandidate struct {
	Observation
	Length        time.Duration
	DepartureTime *ClockTime
	ArrivalTime   *ClockTime
}

// NewTripCandidate builds a candidate from a qualifying observation.
func NewTripCandidate(o Observation) TripCandidate {
	return TripCandidate{
		Observation: o,
		Length:      o.TripLength(),
	}
}

// Key returns the dedup key of the candidate.
func (c TripCandidate) Key() TripKey {
	return TripKey{
		Origin:        c.Origin,
		Destination:   c.Destination,
		DepartureDate: c.Departure.Format("2006-01-02"),
		ReturnDate:    c.Return.Format("2006-01-02"),
	}
}
