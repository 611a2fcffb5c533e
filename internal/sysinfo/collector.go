// Package sysinfo samples the host and assembles one Snapshot per call.
//
// A collection blocks for the configured CPU observation window (one second
// by default), so callers should not expect low latency. Nothing is cached:
// every call re-reads every source.
package sysinfo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"sysinfo-server/internal/cost"
	"sysinfo-server/internal/gpu"
	"sysinfo-server/pkg/config"
	"sysinfo-server/pkg/types"
	"sysinfo-server/pkg/units"
)

const uptimeLayout = "2006-01-02 15:04:05"

var ErrDiskPathNotFound = errors.New("disk path does not exist")

// CollectionError is returned when a required source could not be read.
// GPU failures never produce one.
type CollectionError struct {
	Err error
}

func (e *CollectionError) Error() string {
	return e.Err.Error()
}

func (e *CollectionError) Unwrap() error {
	return e.Err
}

type Collector struct {
	cfg  config.CollectorConfig
	host HostSampler
	gpu  gpu.Provider
	log  *slog.Logger
}

func NewCollector(cfg config.CollectorConfig, host HostSampler, provider gpu.Provider, log *slog.Logger) *Collector {
	return &Collector{
		cfg:  cfg,
		host: host,
		gpu:  provider,
		log:  log,
	}
}

// NewFromConfig wires the operating system sampler and the configured GPU backend.
func NewFromConfig(cfg config.CollectorConfig, log *slog.Logger) *Collector {
	var provider gpu.Provider
	switch cfg.GPUBackend {
	case config.GPUBackendNVML:
		provider = gpu.NewNVMLProvider(cfg.GPUQueryTimeout)
	default:
		provider = gpu.NewSMIProvider(cfg.NvidiaSMIPath, cfg.GPUQueryTimeout)
	}
	return NewCollector(cfg, OSHost{}, provider, log)
}

// Collect samples every source. The GPU query runs alongside the CPU window;
// any other source failing aborts the collection with a *CollectionError.
func (c *Collector) Collect(ctx context.Context) (*types.Snapshot, error) {
	start := time.Now()
	snap := &types.Snapshot{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pct, err := c.host.CPUPercent(gctx, c.cfg.CPUSampleWindow)
		if err != nil {
			return fmt.Errorf("failed to sample cpu: %w", err)
		}
		snap.CPUUsagePercent = pct
		return nil
	})
	g.Go(func() error {
		snap.GPUs = gpu.Query(gctx, c.gpu, c.log)
		return nil
	})
	g.Go(func() error {
		pct, err := c.host.MemoryPercent(gctx)
		if err != nil {
			return fmt.Errorf("failed to read memory: %w", err)
		}
		snap.MemoryUsagePercent = pct
		return nil
	})
	g.Go(func() error {
		summary, err := c.diskSummary(gctx)
		if err != nil {
			return err
		}
		snap.DiskSummary = summary
		return nil
	})
	g.Go(func() error {
		counters, err := c.host.NetIO(gctx)
		if err != nil {
			return fmt.Errorf("failed to read network counters: %w", err)
		}
		snap.NetworkStatus = fmt.Sprintf("Bytes sent: %s, Bytes received: %s",
			units.FormatSize(counters.BytesSent), units.FormatSize(counters.BytesRecv))
		return nil
	})
	g.Go(func() error {
		boot, err := c.host.BootTime(gctx)
		if err != nil {
			return fmt.Errorf("failed to read boot time: %w", err)
		}
		snap.Uptime = boot.Format(uptimeLayout)
		return nil
	})

	if err := g.Wait(); err != nil {
		c.log.Error("system info collection failed", "error", err)
		return nil, &CollectionError{Err: err}
	}

	snap.TotalPowerWatts, snap.TotalPowerLimit = gpu.TotalPower(snap.GPUs)
	estimate := cost.EstimateCost(snap.TotalPowerWatts, c.cfg.CostPerKWhCents)
	snap.CostCentsPerHour = estimate.CentsPerHour
	snap.CostDollarsPerMonth = estimate.DollarsPerMonth

	c.log.Debug("system info collected",
		"gpus", len(snap.GPUs),
		"total_power_watts", snap.TotalPowerWatts,
		"duration", time.Since(start))
	return snap, nil
}

func (c *Collector) diskSummary(ctx context.Context) (string, error) {
	if _, err := os.Stat(c.cfg.DiskPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrDiskPathNotFound, c.cfg.DiskPath)
		}
		return "", fmt.Errorf("failed to stat disk path %s: %w", c.cfg.DiskPath, err)
	}

	usage, err := c.host.DiskUsage(ctx, c.cfg.DiskPath)
	if err != nil {
		return "", fmt.Errorf("failed to read disk usage for %s: %w", c.cfg.DiskPath, err)
	}
	return fmt.Sprintf("Total: %s, Used: %s, Free: %s",
		units.FormatSize(usage.Total), units.FormatSize(usage.Used), units.FormatSize(usage.Free)), nil
}
