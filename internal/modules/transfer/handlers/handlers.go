// Package handlers provides HTTP handlers for transfer authorization.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aristath/marketgate/internal/modules/market_hours"
	"github.com/aristath/marketgate/internal/modules/transfer"
	"github.com/aristath/marketgate/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 16

// Handler handles transfer HTTP requests
type Handler struct {
	gate *transfer.Gate
	log  zerolog.Logger
}

// NewHandler creates a new transfer handler
func NewHandler(gate *transfer.Gate, log zerolog.Logger) *Handler {
	return &Handler{
		gate: gate,
		log:  log.With().Str("handler", "transfer").Logger(),
	}
}

// RegisterRoutes registers all transfer routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/transfers", func(r chi.Router) {
		r.Post("/authorize", h.HandleAuthorize)
	})
}

// HandleAuthorize handles POST /api/transfers/authorize
// Business hours and allow-list denials are normal outcomes and return 200
// with allowed=false. Malformed timestamps return 422.
func (h *Handler) HandleAuthorize(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(w, r)
	if err != nil {
		utils.WriteError(w, r, http.StatusBadRequest, utils.ErrorBody{Message: "invalid request body"}, h.log)
		return
	}

	decision, err := h.gate.Authorize(r.Context(), req)
	switch {
	case err == nil:
		utils.WriteData(w, r, http.StatusOK, decision, h.log)
	case errors.Is(err, transfer.ErrInvalidRequest):
		utils.WriteError(w, r, http.StatusBadRequest, utils.ErrorBody{Message: err.Error()}, h.log)
	case errors.Is(err, market_hours.ErrOutsideBusinessHours), errors.Is(err, market_hours.ErrAssetNotAllowed):
		utils.WriteData(w, r, http.StatusOK, decision, h.log)
	case errors.Is(err, market_hours.ErrTimestampConversion):
		utils.WriteError(w, r, http.StatusUnprocessableEntity, errorBody(err), h.log)
	default:
		h.log.Error().Err(err).Msg("Transfer authorization failed")
		utils.WriteError(w, r, http.StatusInternalServerError, errorBody(err), h.log)
	}
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (transfer.Request, error) {
	var req transfer.Request
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if r.Header.Get("Content-Type") == utils.ContentTypeMsgpack {
		err := msgpack.NewDecoder(body).Decode(&req)
		return req, err
	}
	err := json.NewDecoder(body).Decode(&req)
	return req, err
}

func errorBody(err error) utils.ErrorBody {
	body := utils.ErrorBody{Message: err.Error()}
	if code, ok := market_hours.CodeOf(err); ok {
		body.Code = uint32(code)
		body.Kind = code.String()
	}
	return body
}
