package entity

import (
	"errors"
	"fmt"
)

// ErrNoCachedData is returned by a cache-reuse run when no prior scrape left
// observations behind. There is no silent fallback to scraping.
var ErrNoCachedData = errors.New("no cached observations available, run with --scrape first")

// ErrInvalidConfig marks configuration rejected before any scraping or
// filtering begins. Wrap it with the offending detail.
var ErrInvalidConfig = errors.New("invalid configuration")

// TimetableUnavailableError reports a missing or malformed timetable file for
// one airport. Non-fatal: that airport's candidates stay unenriched.
type TimetableUnavailableError struct {
	Airport string
	Err     error
}

func (e *TimetableUnavailableError) Error() string {
	return fmt.Sprintf("timetable unavailable for %s: %v", e.Airport, e.Err)
}

func (e *TimetableUnavailableError) Unwrap() error {
	return e.Err
}

// ScrapeFailureError reports a failed fetch for one origin/destination pair.
// The pipeline logs it and keeps the observations gathered for other pairs.
type ScrapeFailureError struct {
	Origin      string
	Destination string
	Err         error
}

func (e *ScrapeFailureError) Error() string {
	return fmt.Sprintf("scrape failed for %s-%s: %v", e.Origin, e.Destination, e.Err)
}

func (e *ScrapeFailureError) Unwrap() error {
	return e.Err
}
