package repository

import (
	"time"

	"farewatch-service/internal/domain/entity"
)

// TimetableRepository looks up static scheduled-flight facts loaded from
// per-airport timetable files.
type TimetableRepository interface {
	// Find returns the timetable entry for the route valid on the given
	// date, or nil when the airport has no timetable data or no entry
	// matches. When both a season-restricted and a season-free entry cover
	// the date, the season-restricted one wins; the season-free entry is
	// the fallback.
	Find(airport string, direction entity.Direction, counterpart string, on time.Time) *entity.TimetableEntry

	// Airports lists the airports that loaded successfully.
	Airports() []string
}
