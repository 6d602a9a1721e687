package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/aristath/marketgate/internal/events"
	"github.com/aristath/marketgate/internal/metrics"
	"github.com/aristath/marketgate/internal/modules/market_hours"
	"github.com/aristath/marketgate/internal/utils"
	"github.com/rs/zerolog"
)

const marketStatusModule = "status_monitor"

// MarketStatusJob evaluates the market and emits MARKETS_STATUS_CHANGED
// whenever the open flag differs from the previous run. The first run
// always emits so subscribers learn the initial state.
type MarketStatusJob struct {
	market  MarketStatusProvider
	events  EventManagerInterface
	metrics *metrics.Metrics
	now     func() time.Time
	log     zerolog.Logger

	mu   sync.Mutex
	last *market_hours.MarketStatus
}

// NewMarketStatusJob creates the job. eventManager and m may be nil.
func NewMarketStatusJob(
	market MarketStatusProvider,
	eventManager EventManagerInterface,
	m *metrics.Metrics,
	log zerolog.Logger,
) *MarketStatusJob {
	return &MarketStatusJob{
		market:  market,
		events:  eventManager,
		metrics: m,
		now:     time.Now,
		log:     log.With().Str("job", "market_status").Logger(),
	}
}

// Name returns the job name
func (j *MarketStatusJob) Name() string {
	return "market_status"
}

// Run evaluates the market once
func (j *MarketStatusJob) Run() error {
	defer utils.OperationTimer("market_status", j.log)()

	now := j.now()
	status, err := j.market.GetMarketStatus(now.Unix())
	if err != nil {
		if j.events != nil {
			j.events.EmitError(marketStatusModule, err, map[string]interface{}{
				"job":       j.Name(),
				"timestamp": now.Unix(),
			})
		}
		return fmt.Errorf("market status check failed: %w", err)
	}

	if j.metrics != nil {
		j.metrics.SetMarketOpen(status.Open)
	}

	j.mu.Lock()
	previous := j.last
	j.last = status
	j.mu.Unlock()

	if previous != nil && previous.Open == status.Open {
		return nil
	}

	if previous != nil {
		j.log.Info().
			Bool("open", status.Open).
			Str("reason", status.Reason).
			Msg("Market status changed")
		if j.metrics != nil {
			j.metrics.RecordStatusChange()
		}
	}

	if j.events != nil {
		j.events.EmitTyped(marketStatusModule, changedData(status, now))
	}
	return nil
}

// LastStatus returns the status from the most recent successful run
func (j *MarketStatusJob) LastStatus() *market_hours.MarketStatus {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.last
}

func changedData(status *market_hours.MarketStatus, now time.Time) *events.MarketsStatusChangedData {
	state := "closed"
	openCount, closedCount := 0, 1
	if status.Open {
		state = "open"
		openCount, closedCount = 1, 0
	}
	updated := now.UTC().Format(time.RFC3339)

	return &events.MarketsStatusChangedData{
		Markets: map[string]events.MarketStatusData{
			status.Exchange: {
				Code:      status.Exchange,
				Status:    state,
				Reason:    status.Reason,
				Holiday:   status.Holiday,
				LocalTime: status.LocalTime,
				UpdatedAt: updated,
			},
		},
		OpenCount:   openCount,
		ClosedCount: closedCount,
		LastUpdated: updated,
	}
}
