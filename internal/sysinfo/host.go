package sysinfo

import (
	"context"
	"errors"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	psnet "github.com/shirou/gopsutil/v4/net"
)

type DiskUsage struct {
	Total uint64
	Used  uint64
	Free  uint64
}

type NetIO struct {
	BytesSent uint64
	BytesRecv uint64
}

// HostSampler reads operating system counters.
type HostSampler interface {
	// CPUPercent blocks for window and returns the average utilization over it.
	CPUPercent(ctx context.Context, window time.Duration) (float64, error)
	MemoryPercent(ctx context.Context) (float64, error)
	DiskUsage(ctx context.Context, path string) (DiskUsage, error)
	NetIO(ctx context.Context) (NetIO, error)
	BootTime(ctx context.Context) (time.Time, error)
}

// OSHost implements HostSampler with gopsutil.
type OSHost struct{}

func (OSHost) CPUPercent(ctx context.Context, window time.Duration) (float64, error) {
	percents, err := cpu.PercentWithContext(ctx, window, false)
	if err != nil {
		return 0, err
	}
	if len(percents) == 0 {
		return 0, errors.New("no cpu samples")
	}
	return percents[0], nil
}

func (OSHost) MemoryPercent(ctx context.Context) (float64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return vm.UsedPercent, nil
}

func (OSHost) DiskUsage(ctx context.Context, path string) (DiskUsage, error) {
	usage, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return DiskUsage{}, err
	}
	return DiskUsage{Total: usage.Total, Used: usage.Used, Free: usage.Free}, nil
}

func (OSHost) NetIO(ctx context.Context) (NetIO, error) {
	counters, err := psnet.IOCountersWithContext(ctx, false)
	if err != nil {
		return NetIO{}, err
	}
	if len(counters) == 0 {
		return NetIO{}, errors.New("no network counters")
	}
	return NetIO{BytesSent: counters[0].BytesSent, BytesRecv: counters[0].BytesRecv}, nil
}

func (OSHost) BootTime(ctx context.Context) (time.Time, error) {
	secs, err := host.BootTimeWithContext(ctx)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(secs), 0), nil
}

var _ HostSampler = OSHost{}
