package market_hours

import (
	"fmt"
	"time"
)

// CalculateEaster calculates Gregorian Easter Sunday for a given year.
// Meeus/Jones/Butcher computus, valid for years >= 1583.
func CalculateEaster(year int) time.Time {
	// Golden Number (position in 19-year Metonic cycle)
	a := year % 19

	// Century
	b := year / 100
	c := year % 100

	// Corrections
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451

	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// CalculateGoodFriday calculates Good Friday (two days before Easter Sunday)
func CalculateGoodFriday(year int) time.Time {
	return CalculateEaster(year).AddDate(0, 0, -2)
}

// HolidayRule resolves to a single month/day in a given year.
// The set of implementations is closed.
type HolidayRule interface {
	Resolve(year int) (time.Month, int, error)
	isHolidayRule()
}

// FixedDate is a holiday on the same month/day every year
type FixedDate struct {
	Month time.Month
	Day   int
}

// NthWeekday is the nth occurrence of a weekday in a month (N in 1..5)
type NthWeekday struct {
	Month   time.Month
	Weekday time.Weekday
	N       int
}

// LastWeekday is the last occurrence of a weekday in a month
type LastWeekday struct {
	Month   time.Month
	Weekday time.Weekday
}

// EasterOffset is a holiday relative to Gregorian Easter Sunday
type EasterOffset struct {
	Days int // negative = before, positive = after
}

// Resolve implements HolidayRule
func (r FixedDate) Resolve(int) (time.Month, int, error) {
	return r.Month, r.Day, nil
}

// Resolve implements HolidayRule
func (r NthWeekday) Resolve(year int) (time.Month, int, error) {
	day, err := FindNthWeekdayInMonth(year, r.Month, r.Weekday, r.N)
	if err != nil {
		return 0, 0, err
	}
	return r.Month, day, nil
}

// Resolve implements HolidayRule
func (r LastWeekday) Resolve(year int) (time.Month, int, error) {
	day, err := FindLastWeekdayInMonth(year, r.Month, r.Weekday)
	if err != nil {
		return 0, 0, err
	}
	return r.Month, day, nil
}

// Resolve implements HolidayRule
func (r EasterOffset) Resolve(year int) (time.Month, int, error) {
	date := CalculateEaster(year).AddDate(0, 0, r.Days)
	return date.Month(), date.Day(), nil
}

func (FixedDate) isHolidayRule()    {}
func (NthWeekday) isHolidayRule()   {}
func (LastWeekday) isHolidayRule()  {}
func (EasterOffset) isHolidayRule() {}

// Holiday is a named rule
type Holiday struct {
	Name string
	Rule HolidayRule
}

// NYSEHolidays is the holiday table. Dates are not shifted for weekends.
var NYSEHolidays = []Holiday{
	{Name: "New Year's Day", Rule: FixedDate{Month: time.January, Day: 1}},
	{Name: "Juneteenth", Rule: FixedDate{Month: time.June, Day: 19}},
	{Name: "Independence Day", Rule: FixedDate{Month: time.July, Day: 4}},
	{Name: "Christmas", Rule: FixedDate{Month: time.December, Day: 25}},
	{Name: "Martin Luther King Jr. Day", Rule: NthWeekday{Month: time.January, Weekday: time.Monday, N: 3}},
	{Name: "Washington's Birthday", Rule: NthWeekday{Month: time.February, Weekday: time.Monday, N: 3}},
	{Name: "Labor Day", Rule: NthWeekday{Month: time.September, Weekday: time.Monday, N: 1}},
	{Name: "Thanksgiving", Rule: NthWeekday{Month: time.November, Weekday: time.Thursday, N: 4}},
	{Name: "Memorial Day", Rule: LastWeekday{Month: time.May, Weekday: time.Monday}},
	{Name: "Good Friday", Rule: EasterOffset{Days: -2}},
}

// matchHoliday returns the first holiday in table falling on local's date.
func matchHoliday(table []Holiday, local LocalTime) (*Holiday, error) {
	for i := range table {
		h := &table[i]
		// Floating rules can only match inside their own month
		switch r := h.Rule.(type) {
		case NthWeekday:
			if r.Month != local.Month || r.Weekday != local.Weekday {
				continue
			}
		case LastWeekday:
			if r.Month != local.Month || r.Weekday != local.Weekday {
				continue
			}
		}

		month, day, err := h.Rule.Resolve(local.Year)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", h.Name, err)
		}
		if local.SameDate(month, day) {
			return h, nil
		}
	}
	return nil, nil
}

// IsHoliday reports whether local's date is an NYSE holiday
func IsHoliday(local LocalTime) (bool, error) {
	h, err := matchHoliday(NYSEHolidays, local)
	if err != nil {
		return false, err
	}
	return h != nil, nil
}

// resolveHolidays returns the table resolved for year, in table order.
func resolveHolidays(table []Holiday, year int) ([]HolidayDate, error) {
	holidays := make([]HolidayDate, 0, len(table))
	for _, h := range table {
		month, day, err := h.Rule.Resolve(year)
		if err != nil {
			return nil, fmt.Errorf("resolve %s for %d: %w", h.Name, year, err)
		}
		holidays = append(holidays, HolidayDate{
			Name:  h.Name,
			Date:  time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			Month: int(month),
			Day:   day,
		})
	}
	return holidays, nil
}

// CalculateUSHolidays resolves the NYSE holiday table for a given year
func CalculateUSHolidays(year int) ([]HolidayDate, error) {
	return resolveHolidays(NYSEHolidays, year)
}
