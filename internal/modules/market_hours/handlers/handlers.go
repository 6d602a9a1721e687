// Package handlers provides HTTP handlers for market hours operations.
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/aristath/marketgate/internal/modules/market_hours"
	"github.com/aristath/marketgate/internal/utils"
	"github.com/rs/zerolog"
)

// Handler handles market hours HTTP requests
type Handler struct {
	service *market_hours.MarketHoursService
	now     func() time.Time
	log     zerolog.Logger
}

// NewHandler creates a new market hours handler
func NewHandler(
	service *market_hours.MarketHoursService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		service: service,
		now:     time.Now,
		log:     log.With().Str("handler", "market_hours").Logger(),
	}
}

// HandleGetStatus handles GET /api/market-hours/status
// Returns the market status at ?ts= (seconds since epoch) or now
func (h *Handler) HandleGetStatus(w http.ResponseWriter, r *http.Request) {
	ts, ok := h.timestampParam(w, r, false)
	if !ok {
		return
	}

	status, err := h.service.GetMarketStatus(ts)
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	utils.WriteData(w, r, http.StatusOK, status, h.log)
}

// HandleGetOpen handles GET /api/market-hours/open?ts=
// Returns the bare open/closed decision for an instant
func (h *Handler) HandleGetOpen(w http.ResponseWriter, r *http.Request) {
	ts, ok := h.timestampParam(w, r, true)
	if !ok {
		return
	}

	open, err := h.service.IsMarketOpen(ts)
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	utils.WriteData(w, r, http.StatusOK, map[string]interface{}{
		"exchange":  market_hours.ExchangeCode,
		"timestamp": ts,
		"open":      open,
	}, h.log)
}

// HandleGetHolidays handles GET /api/market-hours/holidays
// Returns the holidays of ?year=, defaulting to the current year
func (h *Handler) HandleGetHolidays(w http.ResponseWriter, r *http.Request) {
	year := h.now().Year()
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil || parsed < market_hours.MinYear || parsed > market_hours.MaxYear {
			utils.WriteError(w, r, http.StatusBadRequest, utils.ErrorBody{Message: "year must be an integer in range"}, h.log)
			return
		}
		year = parsed
	}

	holidays, err := h.service.Holidays(year)
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	utils.WriteData(w, r, http.StatusOK, map[string]interface{}{
		"exchange": market_hours.ExchangeCode,
		"year":     year,
		"holidays": holidays,
	}, h.log)
}

// timestampParam reads ?ts=. When absent it defaults to now unless required.
func (h *Handler) timestampParam(w http.ResponseWriter, r *http.Request, required bool) (int64, bool) {
	raw := r.URL.Query().Get("ts")
	if raw == "" {
		if required {
			utils.WriteError(w, r, http.StatusBadRequest, utils.ErrorBody{Message: "ts parameter is required"}, h.log)
			return 0, false
		}
		return h.now().Unix(), true
	}

	ts, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		utils.WriteError(w, r, http.StatusBadRequest, utils.ErrorBody{Message: "ts must be an integer"}, h.log)
		return 0, false
	}
	return ts, true
}

// writeEngineError maps coded engine errors to HTTP statuses
func (h *Handler) writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	body := utils.ErrorBody{Message: err.Error()}
	if code, ok := market_hours.CodeOf(err); ok {
		body.Code = uint32(code)
		body.Kind = code.String()
	}

	status := http.StatusInternalServerError
	if errors.Is(err, market_hours.ErrTimestampConversion) {
		status = http.StatusUnprocessableEntity
	} else {
		h.log.Error().Err(err).Msg("Market hours evaluation failed")
	}
	utils.WriteError(w, r, status, body, h.log)
}
