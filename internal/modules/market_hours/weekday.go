package market_hours

import (
	"fmt"
	"time"
)

// FindNthWeekdayInMonth returns the day of month of the nth occurrence of
// weekday in the given month (n: 1 = first, 2 = second, ...).
// A missing occurrence is a configuration defect, not an input error.
func FindNthWeekdayInMonth(year int, month time.Month, weekday time.Weekday, n int) (int, error) {
	count := 0
	for day := 1; day <= 31; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		if date.Month() != month {
			break // No more days in the month
		}
		if date.Weekday() == weekday {
			count++
			if count == n {
				return day, nil
			}
		}
	}
	return 0, newError(CodeConfigurationDefect, "find nth weekday",
		fmt.Errorf("no occurrence %d of %s in %s %d", n, weekday, month, year))
}

// FindLastWeekdayInMonth returns the day of month of the last occurrence of
// weekday in the given month.
func FindLastWeekdayInMonth(year int, month time.Month, weekday time.Weekday) (int, error) {
	for day := 31; day >= 1; day-- {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		if date.Month() != month {
			continue // Rolled into the next month
		}
		if date.Weekday() == weekday {
			return day, nil
		}
	}
	return 0, newError(CodeConfigurationDefect, "find last weekday",
		fmt.Errorf("no %s in %s %d", weekday, month, year))
}
