package entity

import (
	"fmt"
	"time"
)

// Direction tells whether a timetable entry describes flights arriving at or
// departing from the home airport.
type Direction string

const (
	DirectionArrival   Direction = "arrivals"
	DirectionDeparture Direction = "departures"
)

// ClockTime is a time of day without a date, as printed in airport timetables.
type ClockTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// ParseClockTime parses a "15:04" string.
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return ClockTime{}, fmt.Errorf("parse clock time %q: %w", s, err)
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// String formats the clock time as "15:04".
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// On combines the clock time with a calendar date.
func (c ClockTime) On(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour, c.Minute, 0, 0, d.Location())
}

// Season is the validity date range of a timetable entry, inclusive on both
// ends. Timetable files publish these per seasonal schedule period.
type Season struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether the date falls inside the season.
func (s Season) Contains(d time.Time) bool {
	day := dateOnly(d)
	return !day.Before(dateOnly(s.Start)) && !day.After(dateOnly(s.End))
}

// TimetableEntry is one scheduled flight fact for a route at a home airport.
// Weekdays must be non-empty; Season is nil for entries valid year-round.
type TimetableEntry struct {
	Airport     string
	Direction   Direction
	Counterpart string
	Scheduled   ClockTime
	Landing     ClockTime
	Weekdays    []time.Weekday
	Season      *Season
}

// FliesOn reports whether the entry covers the given weekday.
func (e TimetableEntry) FliesOn(day time.Weekday) bool {
	for _, wd := range e.Weekdays {
		if wd == day {
			return true
		}
	}
	return false
}

// Matches reports whether the entry is valid on the given date: the weekday
// is covered and the date falls inside the season, if one is set.
func (e TimetableEntry) Matches(d time.Time) bool {
	if !e.FliesOn(d.Weekday()) {
		return false
	}
	return e.Season == nil || e.Season.Contains(d)
}
