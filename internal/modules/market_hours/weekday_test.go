package market_hours

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindNthWeekdayInMonth(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		month    time.Month
		weekday  time.Weekday
		n        int
		expected int
	}{
		{"4th Thursday in November 2023", 2023, time.November, time.Thursday, 4, 23},
		{"3rd Monday in January 2023", 2023, time.January, time.Monday, 3, 16},
		{"1st Monday in January 2024", 2024, time.January, time.Monday, 1, 1},
		{"3rd Monday in January 2024", 2024, time.January, time.Monday, 3, 15},
		{"1st Monday in September 2024", 2024, time.September, time.Monday, 1, 2},
		{"4th Thursday in November 2024", 2024, time.November, time.Thursday, 4, 28},
		{"3rd Monday in February 2025", 2025, time.February, time.Monday, 3, 17},
		{"2nd Sunday in March 2023", 2023, time.March, time.Sunday, 2, 12},
		{"1st Sunday in November 2023", 2023, time.November, time.Sunday, 1, 5},
		{"5th Tuesday in October 2023", 2023, time.October, time.Tuesday, 5, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, err := FindNthWeekdayInMonth(tt.year, tt.month, tt.weekday, tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, day)
			assert.Equal(t, tt.weekday, time.Date(tt.year, tt.month, day, 0, 0, 0, 0, time.UTC).Weekday())
		})
	}
}

func TestFindNthWeekdayInMonth_NoOccurrence(t *testing.T) {
	// February 2023 has four Mondays
	day, err := FindNthWeekdayInMonth(2023, time.February, time.Monday, 5)
	require.Error(t, err)
	assert.Equal(t, 0, day)
	assert.True(t, errors.Is(err, ErrConfigurationDefect))

	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, CodeConfigurationDefect, code)

	_, err = FindNthWeekdayInMonth(2023, time.March, time.Sunday, 0)
	assert.ErrorIs(t, err, ErrConfigurationDefect)
}

func TestFindLastWeekdayInMonth(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		month    time.Month
		weekday  time.Weekday
		expected int
	}{
		{"Last Monday in May 2023", 2023, time.May, time.Monday, 29},
		{"Last Monday in May 2024", 2024, time.May, time.Monday, 27},
		{"Last Monday in May 2025", 2025, time.May, time.Monday, 26},
		{"Last Friday in December 2024", 2024, time.December, time.Friday, 27},
		{"Last Thursday in February 2024", 2024, time.February, time.Thursday, 29},
		{"Last Sunday in April 2023", 2023, time.April, time.Sunday, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, err := FindLastWeekdayInMonth(tt.year, tt.month, tt.weekday)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, day)
		})
	}
}

func TestFindLastWeekdayInMonth_InvalidMonth(t *testing.T) {
	_, err := FindLastWeekdayInMonth(2023, time.Month(13), time.Monday)
	assert.ErrorIs(t, err, ErrConfigurationDefect)
}

func TestHolidayTable_ResolvesEveryYear(t *testing.T) {
	for year := 1583; year <= 3000; year++ {
		_, err := CalculateUSHolidays(year)
		require.NoError(t, err, "year %d", year)
	}
}
