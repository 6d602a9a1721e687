package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/aristath/marketgate/internal/events"
	"github.com/aristath/marketgate/internal/metrics"
	"github.com/aristath/marketgate/internal/utils"
	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
)

// streamedTypes are forwarded when the client sends no ?types= filter
var streamedTypes = []events.EventType{
	events.ErrorOccurred,
	events.MarketsStatusChanged,
	events.SystemStatusChanged,
	events.TransferAuthorized,
	events.TransferRejected,
}

const (
	clientBuffer = 64
	writeTimeout = 5 * time.Second
)

// EventsWSHandler streams bus events to websocket clients as JSON text frames
type EventsWSHandler struct {
	bus     *events.Bus
	metrics *metrics.Metrics
	log     zerolog.Logger
}

// NewEventsWSHandler creates the handler. m may be nil.
func NewEventsWSHandler(bus *events.Bus, m *metrics.Metrics, log zerolog.Logger) *EventsWSHandler {
	return &EventsWSHandler{
		bus:     bus,
		metrics: m,
		log:     log.With().Str("component", "events_ws").Logger(),
	}
}

// ServeHTTP handles GET /api/events/ws
func (h *EventsWSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	types := parseTypes(r.URL.Query().Get("types"))

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("Websocket upgrade failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream closed")

	if h.metrics != nil {
		h.metrics.WSClientConnected()
		defer h.metrics.WSClientDisconnected()
	}

	// Client messages are ignored; CloseRead cancels ctx when the peer goes away
	ctx := conn.CloseRead(r.Context())

	eventChan := make(chan *events.Event, clientBuffer)
	var subs []events.SubscriptionID
	for _, t := range types {
		subs = append(subs, h.bus.Subscribe(t, func(event *events.Event) {
			select {
			case eventChan <- event:
			default:
				h.log.Warn().Str("event_type", string(event.Type)).Msg("Dropping event for slow client")
			}
		}))
	}
	defer func() {
		for _, id := range subs {
			h.bus.Unsubscribe(id)
		}
	}()

	h.log.Info().Int("types", len(types)).Msg("Event stream client connected")

	hello := &events.Event{
		Type:      "CONNECTED",
		Timestamp: time.Now(),
		Module:    "events_ws",
	}
	if err := h.write(ctx, conn, hello); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			h.log.Info().Msg("Event stream client disconnected")
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case event := <-eventChan:
			if err := h.write(ctx, conn, event); err != nil {
				h.log.Debug().Err(err).Msg("Event stream write failed")
				return
			}
		}
	}
}

func (h *EventsWSHandler) write(ctx context.Context, conn *websocket.Conn, event *events.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(writeCtx, websocket.MessageText, data)
}

func parseTypes(filter string) []events.EventType {
	if filter == "" {
		return streamedTypes
	}
	var types []events.EventType
	for _, t := range utils.ParseCSV(filter) {
		types = append(types, events.EventType(t))
	}
	return types
}
