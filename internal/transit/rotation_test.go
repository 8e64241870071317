package transit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clock(hour, minute int) time.Time {
	return time.Date(2023, time.January, 1, hour, minute, 0, 0, time.UTC)
}

func TestExpandTimeTableCountAndArrivals(t *testing.T) {
	entries, err := ExpandTimeTable(clock(8, 0), clock(9, 0), 20, 30, DurationUnitMinutes)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	departures := []time.Time{clock(8, 0), clock(8, 20), clock(8, 40), clock(9, 0)}
	for i, entry := range entries {
		assert.Equal(t, i, entry.Seq)
		assert.Equal(t, departures[i], entry.DepartureTime)
		require.NotNil(t, entry.ArrivalTime)
		assert.Equal(t, departures[i].Add(30*time.Minute), *entry.ArrivalTime)
	}
}

func TestExpandTimeTableEndBoundaryInclusive(t *testing.T) {
	entries, err := ExpandTimeTable(clock(8, 0), clock(8, 50), 20, 30, DurationUnitMinutes)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, clock(8, 40), entries[2].DepartureTime)
}

func TestExpandTimeTableHourDuration(t *testing.T) {
	entries, err := ExpandTimeTable(clock(6, 30), clock(6, 30), 15, 2, DurationUnitHours)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, clock(8, 30), *entries[0].ArrivalTime)
}

func TestExpandTimeTableReversedRangeYieldsNothing(t *testing.T) {
	entries, err := ExpandTimeTable(clock(9, 0), clock(8, 0), 20, 30, DurationUnitMinutes)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExpandTimeTableRejectsNonPositiveInterval(t *testing.T) {
	_, err := ExpandTimeTable(clock(8, 0), clock(9, 0), 0, 30, DurationUnitMinutes)
	assert.ErrorIs(t, err, ErrNonPositiveInterval)

	_, err = ExpandTimeTable(clock(8, 0), clock(9, 0), -10, 30, DurationUnitMinutes)
	assert.ErrorIs(t, err, ErrNonPositiveInterval)
}

func TestExpandTimeTableRejectsNonPositiveDuration(t *testing.T) {
	_, err := ExpandTimeTable(clock(8, 0), clock(9, 0), 20, 0, DurationUnitMinutes)
	assert.ErrorIs(t, err, ErrNonPositiveDuration)
}

func TestExpandTimeTableRejectsUnknownUnit(t *testing.T) {
	_, err := ExpandTimeTable(clock(8, 0), clock(9, 0), 20, 30, DurationUnit("days"))
	assert.ErrorIs(t, err, ErrInvalidDurationUnit)
}
