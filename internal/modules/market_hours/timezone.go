package market_hours

import (
	"fmt"
	"time"
)

// Representable calendar range. Instants outside it do not map to a single
// valid calendar moment and are rejected as conversion failures.
const (
	MinYear = -262144
	MaxYear = 262143
)

var (
	minTimestamp = time.Date(MinYear, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	maxTimestamp = time.Date(MaxYear, time.December, 31, 23, 59, 59, 0, time.UTC).Unix()
)

func checkRepresentable(ts int64) error {
	if ts < minTimestamp || ts > maxTimestamp {
		return newError(CodeTimestampConversion, "convert timestamp",
			fmt.Errorf("%d is outside the representable range [%d, %d]", ts, minTimestamp, maxTimestamp))
	}
	return nil
}

// ToLocal converts a UTC instant to Eastern wall-clock time, choosing EDT or
// EST by IsDaylightSaving. All fields are read from the offset-applied value.
func ToLocal(ts int64) (LocalTime, error) {
	if err := checkRepresentable(ts); err != nil {
		return LocalTime{}, err
	}

	dst, err := IsDaylightSaving(ts)
	if err != nil {
		return LocalTime{}, err
	}

	offset := StandardOffsetHours
	name := "EST"
	if dst {
		offset = DaylightOffsetHours
		name = "EDT"
	}

	t := time.Unix(ts, 0).In(time.FixedZone(name, offset*3600))
	return LocalTime{
		Year:    t.Year(),
		Month:   t.Month(),
		Day:     t.Day(),
		Hour:    t.Hour(),
		Minute:  t.Minute(),
		Second:  t.Second(),
		Weekday: t.Weekday(),
		Offset:  offset,
	}, nil
}

// FromLocal returns the instant at which Eastern wall-clock time reads the
// given date and time. When the reading occurs twice (the fall transition)
// the daylight reading wins; a reading skipped by the spring transition is a
// conversion error.
func FromLocal(year int, month time.Month, day, hour, minute int) (int64, error) {
	for _, offset := range []int{DaylightOffsetHours, StandardOffsetHours} {
		candidate := time.Date(year, month, day, hour, minute, 0, 0, time.FixedZone("", offset*3600)).Unix()
		local, err := ToLocal(candidate)
		if err != nil {
			return 0, err
		}
		if local.Offset == offset && local.Year == year && local.Month == month &&
			local.Day == day && local.Hour == hour && local.Minute == minute {
			return candidate, nil
		}
	}
	return 0, newError(CodeTimestampConversion, "convert local time",
		fmt.Errorf("%04d-%02d-%02d %02d:%02d does not exist in Eastern time", year, int(month), day, hour, minute))
}
