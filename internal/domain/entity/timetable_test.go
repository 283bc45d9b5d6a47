package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockTime(t *testing.T) {
	c, err := ParseClockTime("09:35")
	require.NoError(t, err)
	assert.Equal(t, ClockTime{Hour: 9, Minute: 35}, c)
	assert.Equal(t, "09:35", c.String())

	c, err = ParseClockTime("23:59")
	require.NoError(t, err)
	assert.Equal(t, "23:59", c.String())

	for _, bad := range []string{"", "9:5", "24:00", "12:60", "noon"} {
		_, err := ParseClockTime(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestClockTimeOn(t *testing.T) {
	c := ClockTime{Hour: 9, Minute: 35}
	day := time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 6, 5, 9, 35, 0, 0, time.UTC), c.On(day))
}

func TestSeasonContains(t *testing.T) {
	season := Season{
		Start: time.Date(2026, 3, 29, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 10, 24, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, season.Contains(time.Date(2026, 6, 5, 12, 0, 0, 0, time.UTC)))
	// Both ends are inclusive, any clock time that day counts.
	assert.True(t, season.Contains(time.Date(2026, 3, 29, 0, 0, 0, 0, time.UTC)))
	assert.True(t, season.Contains(time.Date(2026, 10, 24, 23, 59, 0, 0, time.UTC)))
	assert.False(t, season.Contains(time.Date(2026, 3, 28, 23, 59, 0, 0, time.UTC)))
	assert.False(t, season.Contains(time.Date(2026, 10, 25, 0, 0, 0, 0, time.UTC)))
}

func TestTimetableEntryMatches(t *testing.T) {
	entry := TimetableEntry{
		Airport:     "WRO",
		Direction:   DirectionDeparture,
		Counterpart: "BCN",
		Weekdays:    []time.Weekday{time.Friday, time.Saturday},
		Season: &Season{
			Start: time.Date(2026, 3, 29, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 10, 24, 0, 0, 0, 0, time.UTC),
		},
	}

	// 2026-06-05 is a Friday inside the season.
	assert.True(t, entry.Matches(time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC)))
	// Right weekday, outside the season.
	assert.False(t, entry.Matches(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)))
	// Inside the season, wrong weekday.
	assert.False(t, entry.Matches(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)))

	seasonFree := entry
	seasonFree.Season = nil
	assert.True(t, seasonFree.Matches(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)))
}

func TestTripKey(t *testing.T) {
	c := NewTripCandidate(Observation{
		Origin:      "WRO",
		Destination: "BCN",
		Departure:   time.Date(2026, 6, 5, 9, 15, 0, 0, time.UTC),
		Return:      time.Date(2026, 6, 8, 20, 45, 0, 0, time.UTC),
		Price:       300,
	})

	key := c.Key()
	assert.Equal(t, "WRO:BCN:2026-06-05:2026-06-08", key.String())

	// Clock times do not change the key.
	shifted := c
	shifted.Departure = shifted.Departure.Add(3 * time.Hour)
	assert.Equal(t, key, shifted.Key())
}
