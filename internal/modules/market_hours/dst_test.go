package market_hours

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utc(year int, month time.Month, day, hour, minute int) int64 {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC).Unix()
}

func TestDaylightSavingBounds(t *testing.T) {
	tests := []struct {
		year  int
		start int64
		end   int64
	}{
		{2023, utc(2023, time.March, 12, 7, 0), utc(2023, time.November, 5, 6, 0)},
		{2024, utc(2024, time.March, 10, 7, 0), utc(2024, time.November, 3, 6, 0)},
		{2025, utc(2025, time.March, 9, 7, 0), utc(2025, time.November, 2, 6, 0)},
	}

	for _, tt := range tests {
		start, end, err := DaylightSavingBounds(tt.year)
		require.NoError(t, err)
		assert.Equal(t, tt.start, start, "start %d", tt.year)
		assert.Equal(t, tt.end, end, "end %d", tt.year)
	}
}

func TestIsDaylightSaving(t *testing.T) {
	tests := []struct {
		name     string
		ts       int64
		expected bool
	}{
		{"2023-03-12 08:00 EDT", utc(2023, time.March, 12, 12, 0), true},
		{"2023-11-05 07:00 EST", utc(2023, time.November, 5, 12, 0), false},
		{"midsummer", utc(2023, time.June, 1, 18, 0), true},
		{"midwinter", utc(2023, time.December, 1, 12, 0), false},
		{"new year", utc(2024, time.January, 1, 0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst, err := IsDaylightSaving(tt.ts)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, dst)
		})
	}
}

func TestToLocal_OffsetAroundTransitions(t *testing.T) {
	for _, year := range []int{1990, 2007, 2023, 2024, 2038, 2100} {
		start, end, err := DaylightSavingBounds(year)
		require.NoError(t, err)

		cases := []struct {
			ts     int64
			offset int
		}{
			{start - 1, StandardOffsetHours},
			{start, DaylightOffsetHours},
			{start + 1, DaylightOffsetHours},
			{end - 1, DaylightOffsetHours},
			{end, StandardOffsetHours},
			{end + 1, StandardOffsetHours},
		}
		for _, c := range cases {
			local, err := ToLocal(c.ts)
			require.NoError(t, err)
			assert.Equal(t, c.offset, local.Offset, "year %d ts %d", year, c.ts)
		}

		// Both transitions happen at 2:00 AM local wall clock
		before, err := ToLocal(start - 1)
		require.NoError(t, err)
		assert.Equal(t, 1, before.Hour)
		assert.Equal(t, 59, before.Minute)
		after, err := ToLocal(start)
		require.NoError(t, err)
		assert.Equal(t, 3, after.Hour)

		lastDaylight, err := ToLocal(end - 1)
		require.NoError(t, err)
		assert.Equal(t, 1, lastDaylight.Hour)
		firstStandard, err := ToLocal(end)
		require.NoError(t, err)
		assert.Equal(t, 1, firstStandard.Hour)
		assert.Equal(t, 0, firstStandard.Minute)
	}
}

func TestToLocal_Fields(t *testing.T) {
	local, err := ToLocal(utc(2023, time.June, 1, 12, 0))
	require.NoError(t, err)
	assert.Equal(t, 8, local.Hour)
	assert.Equal(t, "EDT", local.Zone())

	local, err = ToLocal(utc(2023, time.December, 1, 12, 0))
	require.NoError(t, err)
	assert.Equal(t, 7, local.Hour)
	assert.Equal(t, "EST", local.Zone())

	// Fields come from local time, not UTC: 2024-01-01 03:00 UTC is still New Year's Eve
	local, err = ToLocal(utc(2024, time.January, 1, 3, 0))
	require.NoError(t, err)
	assert.Equal(t, 2023, local.Year)
	assert.Equal(t, time.December, local.Month)
	assert.Equal(t, 31, local.Day)
	assert.Equal(t, 22, local.Hour)
	assert.Equal(t, time.Sunday, local.Weekday)
}

func TestToLocal_OutOfRange(t *testing.T) {
	for _, ts := range []int64{math.MaxInt64, math.MinInt64, maxTimestamp + 1, minTimestamp - 1} {
		_, err := ToLocal(ts)
		assert.ErrorIs(t, err, ErrTimestampConversion)

		_, err = IsDaylightSaving(ts)
		assert.ErrorIs(t, err, ErrTimestampConversion)
	}

	_, err := ToLocal(maxTimestamp)
	assert.NoError(t, err)
	_, err = ToLocal(minTimestamp)
	assert.NoError(t, err)
}

func TestFromLocal(t *testing.T) {
	ts, err := FromLocal(2023, time.June, 1, 14, 0)
	require.NoError(t, err)
	assert.Equal(t, utc(2023, time.June, 1, 18, 0), ts)

	ts, err = FromLocal(2023, time.December, 25, 14, 0)
	require.NoError(t, err)
	assert.Equal(t, utc(2023, time.December, 25, 19, 0), ts)

	// Repeated hour on the fall transition resolves to the daylight reading
	ts, err = FromLocal(2023, time.November, 5, 1, 30)
	require.NoError(t, err)
	assert.Equal(t, utc(2023, time.November, 5, 5, 30), ts)

	// Skipped hour on the spring transition
	_, err = FromLocal(2023, time.March, 12, 2, 30)
	assert.ErrorIs(t, err, ErrTimestampConversion)
}
