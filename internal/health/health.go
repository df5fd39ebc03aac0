package health

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"stock-backend/internal/cache"
	"stock-backend/internal/repositories"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusDisabled  = "disabled"
)

type HealthChecker struct {
	store   repositories.Pinger
	cache   *cache.Cache
	driver  string
	started time.Time
}

type HealthStatus struct {
	Status   string          `json:"status"`
	Database ComponentHealth `json:"database"`
}

type ComponentHealth struct {
	Status       string `json:"status"`
	Driver       string `json:"driver,omitempty"`
	ResponseTime int64  `json:"response_time_ms"`
}

// DetailedStatus adds cache state and host resource usage
type DetailedStatus struct {
	HealthStatus
	Cache      ComponentHealth `json:"cache"`
	Host       HostStats       `json:"host"`
	Uptime     string          `json:"uptime"`
	Goroutines int             `json:"goroutines"`
}

type HostStats struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsed    string  `json:"memory_used"`
	MemoryTotal   string  `json:"memory_total"`
	DiskPercent   float64 `json:"disk_percent"`
	DiskUsed      string  `json:"disk_used"`
	DiskTotal     string  `json:"disk_total"`
}

func NewHealthChecker(store repositories.Pinger, c *cache.Cache, driver string) *HealthChecker {
	return &HealthChecker{store: store, cache: c, driver: driver, started: time.Now()}
}

// CheckBasic reports healthy when the store answers a ping. The cache is
// optional and never makes the service unhealthy.
func (h *HealthChecker) CheckBasic(ctx context.Context) HealthStatus {
	dbHealth := h.checkDatabase(ctx)

	status := StatusHealthy
	if dbHealth.Status != StatusHealthy {
		status = StatusUnhealthy
	}

	return HealthStatus{
		Status:   status,
		Database: dbHealth,
	}
}

func (h *HealthChecker) CheckDetailed(ctx context.Context) DetailedStatus {
	return DetailedStatus{
		HealthStatus: h.CheckBasic(ctx),
		Cache:        h.checkCache(ctx),
		Host:         hostStats(),
		Uptime:       time.Since(h.started).Round(time.Second).String(),
		Goroutines:   runtime.NumGoroutine(),
	}
}

func (h *HealthChecker) checkDatabase(ctx context.Context) ComponentHealth {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.store.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	status := StatusHealthy
	if err != nil {
		status = StatusUnhealthy
	}
	return ComponentHealth{Status: status, Driver: h.driver, ResponseTime: responseTime}
}

func (h *HealthChecker) checkCache(ctx context.Context) ComponentHealth {
	if !h.cache.Enabled() {
		return ComponentHealth{Status: StatusDisabled}
	}

	start := time.Now()
	ok := h.cache.IsHealthy(ctx)
	responseTime := time.Since(start).Milliseconds()

	status := StatusHealthy
	if !ok {
		status = StatusUnhealthy
	}
	return ComponentHealth{Status: status, Driver: "redis", ResponseTime: responseTime}
}

// hostStats samples the machine the process runs on. Unavailable readings
// are reported as zero.
func hostStats() HostStats {
	var stats HostStats

	// interval 0 compares against the previous call and does not block
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}
	if memStats, err := mem.VirtualMemory(); err == nil {
		stats.MemoryPercent = memStats.UsedPercent
		stats.MemoryUsed = formatBytes(memStats.Used)
		stats.MemoryTotal = formatBytes(memStats.Total)
	}
	if diskStats, err := disk.Usage("/"); err == nil {
		stats.DiskPercent = diskStats.UsedPercent
		stats.DiskUsed = formatBytes(diskStats.Used)
		stats.DiskTotal = formatBytes(diskStats.Total)
	}
	return stats
}

func formatBytes(bytes uint64) string {
	gb := float64(bytes) / (1024 * 1024 * 1024)
	if gb < 1 {
		mb := float64(bytes) / (1024 * 1024)
		return fmt.Sprintf("%.1f MB", mb)
	}
	return fmt.Sprintf("%.1f GB", gb)
}
