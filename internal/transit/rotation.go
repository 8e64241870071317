package transit

import (
	"errors"
	"time"

	"expressway_portal/internal/models"
)

// DurationUnit is the unit of a rotation block's per-trip duration.
type DurationUnit string

const (
	DurationUnitMinutes DurationUnit = "minutes"
	DurationUnitHours   DurationUnit = "hours"
)

var (
	ErrNonPositiveInterval = errors.New("interval must be a positive number of minutes")
	ErrNonPositiveDuration = errors.New("duration must be positive")
	ErrInvalidDurationUnit = errors.New("duration unit must be minutes or hours")
)

// ExpandTimeTable unrolls a compact recurrence description into concrete
// runs: starting at startTime and stepping by interval minutes, it emits a
// {departure, departure+duration} pair for every departure up to and
// including endTime.
//
// The comparison is time-of-day only, so a range whose end clock time is
// before its start yields no entries; ranges crossing midnight are not
// supported.
func ExpandTimeTable(startTime, endTime time.Time, interval, duration int, unit DurationUnit) ([]models.TimeTableEntry, error) {
	if interval <= 0 {
		return nil, ErrNonPositiveInterval
	}
	if duration <= 0 {
		return nil, ErrNonPositiveDuration
	}

	var tripLength time.Duration
	switch unit {
	case DurationUnitMinutes:
		tripLength = time.Duration(duration) * time.Minute
	case DurationUnitHours:
		tripLength = time.Duration(duration) * time.Hour
	default:
		return nil, ErrInvalidDurationUnit
	}

	var entries []models.TimeTableEntry
	cursor := startTime
	for TimeOnlyCompare(cursor, endTime) <= 0 {
		arrival := cursor.Add(tripLength)
		entries = append(entries, models.TimeTableEntry{
			Seq:           len(entries),
			DepartureTime: cursor,
			ArrivalTime:   &arrival,
		})

		cursor = cursor.Add(time.Duration(interval) * time.Minute)
	}
	return entries, nil
}
