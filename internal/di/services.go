package di

import (
	"fmt"

	"github.com/aristath/marketgate/internal/config"
	"github.com/aristath/marketgate/internal/events"
	"github.com/aristath/marketgate/internal/metrics"
	"github.com/aristath/marketgate/internal/modules/market_hours"
	"github.com/aristath/marketgate/internal/modules/transfer"
	"github.com/rs/zerolog"
)

// InitializeServices creates the services and stores them in a new container
func InitializeServices(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	container := &Container{}

	container.EventBus = events.NewBus()
	container.EventManager = events.NewManager(container.EventBus, log)
	container.Metrics = metrics.New(metrics.DefaultConfig())

	container.MarketHoursService = market_hours.NewMarketHoursService(log)

	assets := cfg.AllowedAssets
	if cfg.AssetAllowlistFile != "" {
		fromFile, err := transfer.LoadAllowList(cfg.AssetAllowlistFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load asset allow-list: %w", err)
		}
		assets = append(append([]string{}, assets...), fromFile...)
	}
	container.AssetGuard = transfer.NewAssetGuard(assets)

	container.TransferGate = transfer.NewGate(
		container.AssetGuard,
		container.MarketHoursService,
		transfer.SystemClock{},
		container.EventManager,
		container.Metrics,
		log,
	)

	log.Info().
		Int("allowed_assets", len(container.AssetGuard.Assets())).
		Msg("Services initialized")

	return container, nil
}
