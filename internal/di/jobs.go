package di

import (
	"fmt"

	"github.com/aristath/marketgate/internal/config"
	"github.com/aristath/marketgate/internal/scheduler"
	"github.com/rs/zerolog"
)

// RegisterJobs creates the scheduler and registers background jobs on it
func RegisterJobs(container *Container, cfg *config.Config, log zerolog.Logger) (*JobInstances, error) {
	container.Scheduler = scheduler.New(log)

	marketStatus := scheduler.NewMarketStatusJob(
		container.MarketHoursService,
		container.EventManager,
		container.Metrics,
		log,
	)
	if err := container.Scheduler.AddJob(cfg.StatusSchedule, marketStatus); err != nil {
		return nil, fmt.Errorf("failed to register market status job: %w", err)
	}

	return &JobInstances{MarketStatus: marketStatus}, nil
}
