package scheduler

import (
	"github.com/aristath/marketgate/internal/events"
	"github.com/aristath/marketgate/internal/modules/market_hours"
)

// MarketStatusProvider defines the market hours operations jobs depend on
type MarketStatusProvider interface {
	GetMarketStatus(ts int64) (*market_hours.MarketStatus, error)
}

// EventManagerInterface defines the contract for event emission
type EventManagerInterface interface {
	EmitTyped(module string, data events.EventData)
	EmitError(module string, err error, context map[string]interface{})
}
