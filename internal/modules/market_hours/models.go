package market_hours

import (
	"fmt"
	"time"
)

// Eastern time offsets in hours
const (
	DaylightOffsetHours = -4 // EDT
	StandardOffsetHours = -5 // EST
)

// TradingHours represents regular trading hours
type TradingHours struct {
	OpenHour    int // Hour (0-23)
	OpenMinute  int // Minute (0-59)
	CloseHour   int // Hour (0-23)
	CloseMinute int // Minute (0-59)
}

// NYSEHours is the regular session, [09:30, 16:00) Eastern.
var NYSEHours = TradingHours{
	OpenHour:    9,
	OpenMinute:  30,
	CloseHour:   16,
	CloseMinute: 0,
}

// LocalTime is an Eastern wall-clock reading of an instant.
// It is a value type and is recomputed for every call.
type LocalTime struct {
	Year    int
	Month   time.Month
	Day     int
	Hour    int
	Minute  int
	Second  int
	Weekday time.Weekday
	Offset  int // hours east of UTC, -4 or -5
}

// Zone returns the abbreviation for the offset in effect
func (l LocalTime) Zone() string {
	if l.Offset == DaylightOffsetHours {
		return "EDT"
	}
	return "EST"
}

// Time returns the local reading as a time.Time in a fixed zone
func (l LocalTime) Time() time.Time {
	loc := time.FixedZone(l.Zone(), l.Offset*3600)
	return time.Date(l.Year, l.Month, l.Day, l.Hour, l.Minute, l.Second, 0, loc)
}

// SameDate reports whether l falls on the given month/day
func (l LocalTime) SameDate(month time.Month, day int) bool {
	return l.Month == month && l.Day == day
}

func (l LocalTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d %s",
		l.Year, int(l.Month), l.Day, l.Hour, l.Minute, l.Second, l.Zone())
}

// Status reasons
const (
	ReasonOpen       = "open"
	ReasonWeekend    = "weekend"
	ReasonHoliday    = "holiday"
	ReasonBeforeOpen = "before_open"
	ReasonAfterClose = "after_close"
)

// MarketStatus represents the status of the market at an instant
type MarketStatus struct {
	Open      bool   `json:"open" msgpack:"open"`
	Exchange  string `json:"exchange" msgpack:"exchange"`
	Timezone  string `json:"timezone" msgpack:"timezone"`
	Timestamp int64  `json:"timestamp" msgpack:"timestamp"`
	LocalTime string `json:"local_time" msgpack:"local_time"`
	Reason    string `json:"reason" msgpack:"reason"`
	Holiday   string `json:"holiday,omitempty" msgpack:"holiday,omitempty"`
	ClosesAt  string `json:"closes_at,omitempty" msgpack:"closes_at,omitempty"`   // Time when market closes (if open)
	OpensAt   string `json:"opens_at,omitempty" msgpack:"opens_at,omitempty"`     // Time when market opens (if closed)
	OpensDate string `json:"opens_date,omitempty" msgpack:"opens_date,omitempty"` // Date when market opens (if closed and opens another day)
	NextOpen  int64  `json:"next_open,omitempty" msgpack:"next_open,omitempty"`   // Instant of the next open (if closed)
}

// HolidayDate is a resolved holiday for a given year
type HolidayDate struct {
	Name  string `json:"name" msgpack:"name"`
	Date  string `json:"date" msgpack:"date"` // YYYY-MM-DD
	Month int    `json:"month" msgpack:"month"`
	Day   int    `json:"day" msgpack:"day"`
}
