package server

import (
	"net/http"
	"runtime"
	"time"

	"github.com/aristath/marketgate/internal/di"
	"github.com/aristath/marketgate/internal/modules/market_hours"
	"github.com/aristath/marketgate/internal/modules/transfer"
	"github.com/aristath/marketgate/internal/utils"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemStatusResponse is the body of GET /api/system/status
type SystemStatusResponse struct {
	Status        string                     `json:"status" msgpack:"status"`
	UptimeSeconds int64                      `json:"uptime_seconds" msgpack:"uptime_seconds"`
	Goroutines    int                        `json:"goroutines" msgpack:"goroutines"`
	CPUPercent    float64                    `json:"cpu_percent" msgpack:"cpu_percent"`
	MemoryPercent float64                    `json:"memory_percent" msgpack:"memory_percent"`
	AllowedAssets []string                   `json:"allowed_assets" msgpack:"allowed_assets"`
	Market        *market_hours.MarketStatus `json:"market,omitempty" msgpack:"market,omitempty"`
}

// SystemHandlers serves process and monitor status
type SystemHandlers struct {
	guard     *transfer.AssetGuard
	jobs      *di.JobInstances
	startedAt time.Time
	log       zerolog.Logger
}

// NewSystemHandlers creates system handlers. jobs may be nil.
func NewSystemHandlers(log zerolog.Logger, guard *transfer.AssetGuard, jobs *di.JobInstances) *SystemHandlers {
	return &SystemHandlers{
		guard:     guard,
		jobs:      jobs,
		startedAt: time.Now(),
		log:       log.With().Str("handler", "system").Logger(),
	}
}

// HandleSystemStatus handles GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	cpuPercent, memPercent := h.getSystemStats()

	response := SystemStatusResponse{
		Status:        "healthy",
		UptimeSeconds: int64(time.Since(h.startedAt).Seconds()),
		Goroutines:    runtime.NumGoroutine(),
		CPUPercent:    cpuPercent,
		MemoryPercent: memPercent,
		AllowedAssets: []string{},
	}
	if h.guard != nil {
		response.AllowedAssets = h.guard.Assets()
	}
	if h.jobs != nil && h.jobs.MarketStatus != nil {
		response.Market = h.jobs.MarketStatus.LastStatus()
	}

	utils.WriteData(w, r, http.StatusOK, response, h.log)
}

// HandleTriggerMarketStatus handles POST /api/system/jobs/market-status
// Runs the market status job immediately
func (h *SystemHandlers) HandleTriggerMarketStatus(w http.ResponseWriter, r *http.Request) {
	if h.jobs == nil || h.jobs.MarketStatus == nil {
		utils.WriteError(w, r, http.StatusServiceUnavailable, utils.ErrorBody{Message: "market status job not registered"}, h.log)
		return
	}

	if err := h.jobs.MarketStatus.Run(); err != nil {
		h.log.Error().Err(err).Msg("Manual market status run failed")
		utils.WriteError(w, r, http.StatusInternalServerError, utils.ErrorBody{Message: err.Error()}, h.log)
		return
	}

	utils.WriteData(w, r, http.StatusOK, h.jobs.MarketStatus.LastStatus(), h.log)
}

// getSystemStats calculates CPU and RAM usage percentages
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	// Short sampling window keeps the endpoint responsive
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}
