package market_hours

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// ExchangeCode is the only calendar modelled here
const ExchangeCode = "XNYS"

// maxLookaheadDays bounds the next-session search. The longest NYSE closure
// under this table is a four-day weekend.
const maxLookaheadDays = 14

// MarketHoursService provides market hours checking functionality.
// It holds no mutable state and is safe for concurrent use.
type MarketHoursService struct {
	holidays []Holiday
	log      zerolog.Logger
}

// NewMarketHoursService creates a new market hours service
func NewMarketHoursService(log zerolog.Logger) *MarketHoursService {
	return &MarketHoursService{
		holidays: NYSEHolidays,
		log:      log.With().Str("service", "market_hours").Logger(),
	}
}

// IsMarketOpen checks if the market is open for trading at ts
func (s *MarketHoursService) IsMarketOpen(ts int64) (bool, error) {
	local, err := ToLocal(ts)
	if err != nil {
		return false, err
	}
	if !InTradingWindow(local) {
		return false, nil
	}
	h, err := matchHoliday(s.holidays, local)
	if err != nil {
		s.log.Error().Err(err).Int64("timestamp", ts).Msg("Holiday table defect")
		return false, err
	}
	return h == nil, nil
}

// IsMarketOpenAt is IsMarketOpen for a time.Time
func (s *MarketHoursService) IsMarketOpenAt(t time.Time) (bool, error) {
	return s.IsMarketOpen(t.Unix())
}

// Holidays returns the named holidays for year
func (s *MarketHoursService) Holidays(year int) ([]HolidayDate, error) {
	return resolveHolidays(s.holidays, year)
}

// GetMarketStatus returns detailed status for the market at ts
func (s *MarketHoursService) GetMarketStatus(ts int64) (*MarketStatus, error) {
	local, err := ToLocal(ts)
	if err != nil {
		return nil, err
	}

	status := &MarketStatus{
		Exchange:  ExchangeCode,
		Timezone:  local.Zone(),
		Timestamp: ts,
		LocalTime: local.Time().Format(time.RFC3339),
	}

	h, err := matchHoliday(s.holidays, local)
	if err != nil {
		return nil, err
	}
	if h != nil {
		status.Holiday = h.Name
	}

	switch {
	case local.Weekday == time.Saturday || local.Weekday == time.Sunday:
		status.Reason = ReasonWeekend
	case h != nil:
		status.Reason = ReasonHoliday
	case InTradingWindow(local):
		status.Open = true
		status.Reason = ReasonOpen
	case local.Hour >= NYSEHours.CloseHour:
		status.Reason = ReasonAfterClose
	default:
		status.Reason = ReasonBeforeOpen
	}

	if status.Open {
		status.ClosesAt = fmt.Sprintf("%02d:%02d", NYSEHours.CloseHour, NYSEHours.CloseMinute)
		return status, nil
	}

	nextOpen, err := s.findNextTradingSession(local)
	if err != nil {
		return nil, err
	}
	if nextOpen != nil {
		status.NextOpen = nextOpen.Unix()
		status.OpensAt = nextOpen.Format("15:04")
		if nextOpen.Day() != local.Day || nextOpen.Month() != local.Month {
			status.OpensDate = nextOpen.Format("2006-01-02")
		}
	}

	return status, nil
}

// findNextTradingSession finds the next session open at or after local.
// Returns nil if none is found within the lookahead.
func (s *MarketHoursService) findNextTradingSession(local LocalTime) (*time.Time, error) {
	day := time.Date(local.Year, local.Month, local.Day, 0, 0, 0, 0, time.UTC)
	for i := 0; i < maxLookaheadDays; i++ {
		d := day.AddDate(0, 0, i)
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		if i == 0 && (local.Hour > NYSEHours.OpenHour ||
			(local.Hour == NYSEHours.OpenHour && local.Minute >= NYSEHours.OpenMinute)) {
			// Today's open has passed
			continue
		}

		ts, err := FromLocal(d.Year(), d.Month(), d.Day(), NYSEHours.OpenHour, NYSEHours.OpenMinute)
		if err != nil {
			return nil, err
		}
		open, err := ToLocal(ts)
		if err != nil {
			return nil, err
		}
		h, err := matchHoliday(s.holidays, open)
		if err != nil {
			return nil, err
		}
		if h != nil {
			continue
		}

		t := open.Time()
		return &t, nil
	}
	return nil, nil
}
