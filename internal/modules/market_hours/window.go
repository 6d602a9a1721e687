package market_hours

import "time"

// InTradingWindow reports whether local is inside the regular session:
// Monday to Friday, [09:30, 16:00) Eastern.
func InTradingWindow(local LocalTime) bool {
	isWeekday := local.Weekday != time.Saturday && local.Weekday != time.Sunday
	isAfterOpen := local.Hour > NYSEHours.OpenHour ||
		(local.Hour == NYSEHours.OpenHour && local.Minute >= NYSEHours.OpenMinute)
	isBeforeClose := local.Hour < NYSEHours.CloseHour

	return isWeekday && isAfterOpen && isBeforeClose
}

// IsMarketOpen reports whether the market is open at ts (seconds since the
// UTC epoch). The error is a timestamp-conversion error for instants outside
// the representable range, or a configuration defect if the holiday table is
// inconsistent.
func IsMarketOpen(ts int64) (bool, error) {
	local, err := ToLocal(ts)
	if err != nil {
		return false, err
	}
	if !InTradingWindow(local) {
		return false, nil
	}
	holiday, err := IsHoliday(local)
	if err != nil {
		return false, err
	}
	return !holiday, nil
}
