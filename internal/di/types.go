package di

import (
	"github.com/aristath/marketgate/internal/events"
	"github.com/aristath/marketgate/internal/metrics"
	"github.com/aristath/marketgate/internal/modules/market_hours"
	"github.com/aristath/marketgate/internal/modules/transfer"
	"github.com/aristath/marketgate/internal/scheduler"
)

// Container holds all wired dependencies
type Container struct {
	// Events
	EventBus     *events.Bus
	EventManager *events.Manager

	// Instrumentation
	Metrics *metrics.Metrics

	// Services
	MarketHoursService *market_hours.MarketHoursService
	AssetGuard         *transfer.AssetGuard
	TransferGate       *transfer.Gate

	// Background work
	Scheduler *scheduler.Scheduler
}

// JobInstances holds job references for manual triggering
type JobInstances struct {
	MarketStatus *scheduler.MarketStatusJob
}
