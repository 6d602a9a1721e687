package market_hours

import (
	"fmt"
	"time"
)

// US daylight saving runs from 2:00 AM local on the 2nd Sunday of March to
// 2:00 AM local on the 1st Sunday of November. Each boundary is expressed in
// UTC under the offset in effect just before it: 02:00 EST = 07:00 UTC and
// 02:00 EDT = 06:00 UTC.
const (
	dstStartHourUTC = 7
	dstEndHourUTC   = 6
)

// DaylightSavingBounds returns the UTC instants [start, end) of daylight
// saving time for year.
func DaylightSavingBounds(year int) (start, end int64, err error) {
	startDay, err := FindNthWeekdayInMonth(year, time.March, time.Sunday, 2)
	if err != nil {
		return 0, 0, fmt.Errorf("dst start for %d: %w", year, err)
	}
	endDay, err := FindNthWeekdayInMonth(year, time.November, time.Sunday, 1)
	if err != nil {
		return 0, 0, fmt.Errorf("dst end for %d: %w", year, err)
	}

	start = time.Date(year, time.March, startDay, dstStartHourUTC, 0, 0, 0, time.UTC).Unix()
	end = time.Date(year, time.November, endDay, dstEndHourUTC, 0, 0, 0, time.UTC).Unix()
	return start, end, nil
}

// IsDaylightSaving reports whether ts (seconds since the UTC epoch) falls in
// the daylight saving interval of its UTC year.
func IsDaylightSaving(ts int64) (bool, error) {
	if err := checkRepresentable(ts); err != nil {
		return false, err
	}
	year := time.Unix(ts, 0).UTC().Year()
	start, end, err := DaylightSavingBounds(year)
	if err != nil {
		return false, err
	}
	return ts >= start && ts < end, nil
}
