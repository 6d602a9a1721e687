// Package transfer authorizes transfers against the market calendar.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aristath/marketgate/internal/events"
	"github.com/aristath/marketgate/internal/metrics"
	"github.com/aristath/marketgate/internal/modules/market_hours"
	"github.com/aristath/marketgate/internal/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrInvalidRequest is returned for requests that cannot be evaluated at all
var ErrInvalidRequest = errors.New("invalid transfer request")

// Clock supplies the current time when a request carries no timestamp
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

// Now returns time.Now()
func (SystemClock) Now() time.Time { return time.Now() }

// MarketChecker is the part of the market hours service the gate needs
type MarketChecker interface {
	IsMarketOpen(ts int64) (bool, error)
}

// Request is a transfer awaiting authorization
type Request struct {
	Asset     string `json:"asset" msgpack:"asset"`
	Timestamp *int64 `json:"timestamp,omitempty" msgpack:"timestamp,omitempty"`
}

// Decision is the outcome of Authorize
type Decision struct {
	ID        string `json:"id" msgpack:"id"`
	Asset     string `json:"asset" msgpack:"asset"`
	Allowed   bool   `json:"allowed" msgpack:"allowed"`
	Code      uint32 `json:"code,omitempty" msgpack:"code,omitempty"`
	Kind      string `json:"kind,omitempty" msgpack:"kind,omitempty"`
	Reason    string `json:"reason,omitempty" msgpack:"reason,omitempty"`
	Timestamp int64  `json:"timestamp" msgpack:"timestamp"`
	CheckedAt string `json:"checked_at" msgpack:"checked_at"`
}

// Gate runs the authorization layers for a transfer
type Gate struct {
	guard   *AssetGuard
	market  MarketChecker
	clock   Clock
	events  *events.Manager
	metrics *metrics.Metrics
	log     zerolog.Logger
}

// NewGate creates a gate. eventManager and m may be nil.
func NewGate(
	guard *AssetGuard,
	market MarketChecker,
	clock Clock,
	eventManager *events.Manager,
	m *metrics.Metrics,
	log zerolog.Logger,
) *Gate {
	if guard == nil {
		guard = NewAssetGuard()
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Gate{
		guard:   guard,
		market:  market,
		clock:   clock,
		events:  eventManager,
		metrics: m,
		log:     log.With().Str("service", "transfer_gate").Logger(),
	}
}

// Authorize evaluates req. On rejection the returned Decision describes the
// outcome and the error carries the matching market_hours code; callers
// should use errors.Is against the market_hours sentinels.
func (g *Gate) Authorize(ctx context.Context, req Request) (*Decision, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if utils.NormalizeAsset(req.Asset) == "" {
		return nil, fmt.Errorf("%w: asset is required", ErrInvalidRequest)
	}

	timer := utils.NewTimer("transfer_authorize", g.log)

	ts := g.clock.Now().Unix()
	if req.Timestamp != nil {
		ts = *req.Timestamp
	}

	decision := &Decision{
		ID:        uuid.New().String(),
		Asset:     utils.NormalizeAsset(req.Asset),
		Timestamp: ts,
		CheckedAt: g.clock.Now().UTC().Format(time.RFC3339),
	}

	err := g.evaluate(decision.Asset, ts)
	if err != nil {
		code, _ := market_hours.CodeOf(err)
		decision.Code = uint32(code)
		decision.Kind = code.String()
		decision.Reason = err.Error()
	} else {
		decision.Allowed = true
	}

	g.record(decision, timer.Stop())
	return decision, err
}

// evaluate runs the layers in order and returns the first failure
func (g *Gate) evaluate(asset string, ts int64) error {
	// Layer 1: asset allow-list
	if !g.guard.Allows(asset) {
		return market_hours.NewError(market_hours.CodeAssetNotAllowed, "authorize",
			fmt.Errorf("asset %s", asset))
	}

	// Layer 2: market hours
	open, err := g.market.IsMarketOpen(ts)
	if err != nil {
		if _, ok := market_hours.CodeOf(err); ok {
			return err
		}
		return market_hours.NewError(market_hours.CodeTimestampConversion, "authorize", err)
	}
	if !open {
		return market_hours.NewError(market_hours.CodeOutsideBusinessHours, "authorize", nil)
	}
	return nil
}

func (g *Gate) record(d *Decision, elapsed time.Duration) {
	logEvent := g.log.Info()
	if !d.Allowed {
		logEvent = g.log.Warn().Uint32("code", d.Code).Str("kind", d.Kind)
	}
	logEvent.
		Str("decision_id", d.ID).
		Str("asset", d.Asset).
		Int64("timestamp", d.Timestamp).
		Bool("allowed", d.Allowed).
		Msg("Transfer decision")

	if g.metrics != nil {
		outcome := "allowed"
		if !d.Allowed {
			outcome = d.Kind
		}
		g.metrics.RecordDecision(outcome, elapsed.Seconds())
	}

	if g.events != nil {
		g.events.EmitTyped("transfer", &events.TransferDecisionData{
			DecisionID: d.ID,
			Asset:      d.Asset,
			Allowed:    d.Allowed,
			Code:       d.Code,
			Reason:     d.Reason,
			Timestamp:  d.Timestamp,
		})
	}
}
