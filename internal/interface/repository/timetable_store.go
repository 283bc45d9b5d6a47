package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"farewatch-service/internal/domain/entity"
	"farewatch-service/internal/domain/repository"
	"farewatch-service/pkg/logger"
)

// SeasonPrecedence decides which entry wins when both a season-restricted
// and a season-free entry cover the same date. Timetable data is often
// incomplete or overlapping, so the tie-break has to be deterministic and
// stated up front.
type SeasonPrecedence int

const (
	// PreferSeasonal picks a season-matching entry first and falls back to
	// entries without a season restriction. This is the default.
	PreferSeasonal SeasonPrecedence = iota
	// PreferFileOrder picks the first matching entry in file order.
	PreferFileOrder
)

// TimetableStore loads per-airport timetable JSON files into an in-memory
// lookup. Files are named <IATA>_timetable.json and hold two keyed
// collections, arrivals and departures, each a map from counterpart IATA to
// a list of schedule entries.
type TimetableStore struct {
	entries    map[string]map[entity.Direction]map[string][]entity.TimetableEntry
	precedence SeasonPrecedence
	logger     logger.Logger
}

// timetableFile mirrors the on-disk JSON layout.
type timetableFile map[string]map[string][]timetableRow

type timetableRow struct {
	StartTime   string        `json:"start_time"`
	LandingTime string        `json:"landing_time"`
	Weekdays    []interface{} `json:"weekdays"`
	StartDate   string        `json:"start_date"`
	EndDate     string        `json:"end_date"`
}

// NewTimetableStore loads the timetables of the given airports from dir.
// A missing or malformed file is reported as a TimetableUnavailableError for
// that airport and does not fail the store: candidates from that airport
// simply never get enriched.
func NewTimetableStore(dir string, airports []string, precedence SeasonPrecedence, logger logger.Logger) (*TimetableStore, []error) {
	store := &TimetableStore{
		entries:    make(map[string]map[entity.Direction]map[string][]entity.TimetableEntry),
		precedence: precedence,
		logger:     logger,
	}

	var loadErrors []error
	for _, iata := range airports {
		path := filepath.Join(dir, fmt.Sprintf("%s_timetable.json", iata))
		byDirection, err := loadTimetableFile(path, iata)
		if err != nil {
			loadErrors = append(loadErrors, &entity.TimetableUnavailableError{Airport: iata, Err: err})
			logger.Warn("Timetable unavailable", "airport", iata, "error", err)
			continue
		}
		store.entries[iata] = byDirection
		logger.Info("Timetable loaded", "airport", iata, "path", path)
	}
	return store, loadErrors
}

// Find returns the timetable entry for the route valid on the given date.
func (s *TimetableStore) Find(airport string, direction entity.Direction, counterpart string, on time.Time) *entity.TimetableEntry {
	byDirection, ok := s.entries[airport]
	if !ok {
		return nil
	}
	routes, ok := byDirection[direction]
	if !ok {
		return nil
	}

	var fallback *entity.TimetableEntry
	for i := range routes[counterpart] {
		e := &routes[counterpart][i]
		if !e.FliesOn(on.Weekday()) {
			continue
		}
		if e.Season != nil {
			if e.Season.Contains(on) {
				return e
			}
			continue
		}
		if s.precedence == PreferFileOrder {
			return e
		}
		if fallback == nil {
			fallback = e
		}
	}
	return fallback
}

// Airports lists the airports that loaded successfully, sorted.
func (s *TimetableStore) Airports() []string {
	codes := make([]string, 0, len(s.entries))
	for iata := range s.entries {
		codes = append(codes, iata)
	}
	sort.Strings(codes)
	return codes
}

var _ repository.TimetableRepository = (*TimetableStore)(nil)

func loadTimetableFile(path, iata string) (map[entity.Direction]map[string][]entity.TimetableEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file timetableFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode timetable: %w", err)
	}

	byDirection := make(map[entity.Direction]map[string][]entity.TimetableEntry)
	for directionName, routes := range file {
		direction := entity.Direction(directionName)
		if direction != entity.DirectionArrival && direction != entity.DirectionDeparture {
			return nil, fmt.Errorf("unknown timetable section %q", directionName)
		}
		parsed := make(map[string][]entity.TimetableEntry, len(routes))
		for counterpart, rows := range routes {
			for _, row := range rows {
				e, err := parseTimetableRow(row, iata, direction, counterpart)
				if err != nil {
					return nil, err
				}
				parsed[counterpart] = append(parsed[counterpart], e)
			}
		}
		byDirection[direction] = parsed
	}
	return byDirection, nil
}

func parseTimetableRow(row timetableRow, iata string, direction entity.Direction, counterpart string) (entity.TimetableEntry, error) {
	scheduled, err := parseTimetableTime(row.StartTime)
	if err != nil {
		return entity.TimetableEntry{}, fmt.Errorf("route %s: %w", counterpart, err)
	}
	landing, err := parseTimetableTime(row.LandingTime)
	if err != nil {
		return entity.TimetableEntry{}, fmt.Errorf("route %s: %w", counterpart, err)
	}
	weekdays, err := parseWeekdays(row.Weekdays)
	if err != nil {
		return entity.TimetableEntry{}, fmt.Errorf("route %s: %w", counterpart, err)
	}

	entry := entity.TimetableEntry{
		Airport:     iata,
		Direction:   direction,
		Counterpart: counterpart,
		Scheduled:   scheduled,
		Landing:     landing,
		Weekdays:    weekdays,
	}

	// Rows without a validity period are season-free, valid year-round.
	if row.StartDate != "" || row.EndDate != "" {
		start, err := parseTimetableDate(row.StartDate)
		if err != nil {
			return entity.TimetableEntry{}, fmt.Errorf("route %s: %w", counterpart, err)
		}
		end, err := parseTimetableDate(row.EndDate)
		if err != nil {
			return entity.TimetableEntry{}, fmt.Errorf("route %s: %w", counterpart, err)
		}
		entry.Season = &entity.Season{Start: start, End: end}
	}
	return entry, nil
}

// timetableDateFormats are the date layouts seen across airport timetable
// exports.
var timetableDateFormats = []string{"2006-01-02", "2006/01/02", "02.01.2006"}

func parseTimetableDate(s string) (time.Time, error) {
	for _, layout := range timetableDateFormats {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("date %q matches none of %v", s, timetableDateFormats)
}

func parseTimetableTime(s string) (entity.ClockTime, error) {
	// Some timetable rows come without a time; the source leaves the cell
	// blank for late-night positioning flights.
	if s == "" {
		s = "23:59"
	}
	return entity.ParseClockTime(s)
}

// weekdayTokens maps the weekday spellings found in Polish airport timetable
// exports, plus plain 1-7 numbering with Monday as 1.
var weekdayTokens = map[string]time.Weekday{
	"PN": time.Monday, "Pn": time.Monday,
	"WT": time.Tuesday, "Wt": time.Tuesday,
	"ŚR": time.Wednesday, "Śr": time.Wednesday,
	"CZ": time.Thursday, "Cz": time.Thursday,
	"PT": time.Friday, "Pt": time.Friday,
	"SB": time.Saturday, "So": time.Saturday,
	"NDZ": time.Sunday, "Nd": time.Sunday,
}

var weekdayNumbers = [8]time.Weekday{
	0, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

func parseWeekdays(raw []interface{}) ([]time.Weekday, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("weekday set is empty")
	}
	weekdays := make([]time.Weekday, 0, len(raw))
	for _, token := range raw {
		switch v := token.(type) {
		case string:
			wd, ok := weekdayTokens[v]
			if !ok {
				return nil, fmt.Errorf("unknown weekday token %q", v)
			}
			weekdays = append(weekdays, wd)
		case float64:
			n := int(v)
			if n < 1 || n > 7 {
				return nil, fmt.Errorf("weekday number %d out of range 1-7", n)
			}
			weekdays = append(weekdays, weekdayNumbers[n])
		default:
			return nil, fmt.Errorf("weekday token %v has unsupported type %T", token, token)
		}
	}
	return weekdays, nil
}
