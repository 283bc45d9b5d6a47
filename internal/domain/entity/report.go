package entity

import (
	"time"
)

// RunReport is the output of one pipeline run: the ranked trip candidates
// plus the metadata delivery sinks need to describe the run.
type RunReport struct {
	Mode         TripMode
	Origins      []string
	PriceLimit   float64
	FromCache    bool
	GeneratedAt  time.Time
	Observations int
	Trips        []TripCandidate
}

// Lowest returns the cheapest trip of the run, or nil for an empty run.
// Trips are already ranked, so this is the head of the list.
func (r *RunReport) Lowest() *TripCandidate {
	if len(r.Trips) == 0 {
		return nil
	}
	return &r.Trips[0]
}
