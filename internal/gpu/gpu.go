// Package gpu reads per-device utilization, memory and power figures and
// substitutes a fixed placeholder set whenever the devices cannot be queried.
package gpu

import (
	"context"
	"errors"
	"log/slog"

	"sysinfo-server/pkg/types"
	"sysinfo-server/pkg/units"
)

var (
	ErrNoDevices    = errors.New("gpu query returned no devices")
	ErrMalformedRow = errors.New("malformed gpu query row")
)

// Device holds one device's counters in the units the query tool reports.
type Device struct {
	UtilizationPercent float64
	MemoryUsedMiB      float64
	MemoryTotalMiB     float64
	PowerDrawWatts     float64
	PowerLimitWatts    float64
}

// Provider abstracts the device query so the collector can run without GPUs.
type Provider interface {
	// Name identifies the backend in logs.
	Name() string
	// Devices returns every device in enumeration order.
	Devices(ctx context.Context) ([]Device, error)
}

const (
	fallbackDeviceCount   = 2
	fallbackMemoryTotalGB = 24
)

// Fallback returns the placeholder readings used when no device data is available.
func Fallback() []types.GPUReading {
	readings := make([]types.GPUReading, fallbackDeviceCount)
	for i := range readings {
		readings[i] = types.GPUReading{Index: i + 1, MemoryTotalGB: fallbackMemoryTotalGB}
	}
	return readings
}

// Readings converts raw devices into display readings numbered from 1.
func Readings(devices []Device) []types.GPUReading {
	readings := make([]types.GPUReading, 0, len(devices))
	for i, d := range devices {
		var memPercent float64
		if d.MemoryTotalMiB > 0 {
			memPercent = d.MemoryUsedMiB / d.MemoryTotalMiB * 100
		}
		readings = append(readings, types.GPUReading{
			Index:              i + 1,
			UtilizationPercent: d.UtilizationPercent,
			MemoryUsedGB:       units.Round(units.MiBToGB(d.MemoryUsedMiB), 1),
			MemoryTotalGB:      units.Round(units.MiBToGB(d.MemoryTotalMiB), 1),
			MemoryPercent:      units.Round(memPercent, 1),
			PowerDrawWatts:     d.PowerDrawWatts,
			PowerLimitWatts:    d.PowerLimitWatts,
		})
	}
	return readings
}

// Query asks p for devices and never fails: any error, or an empty device
// list, is logged and replaced by Fallback.
func Query(ctx context.Context, p Provider, log *slog.Logger) []types.GPUReading {
	devices, err := p.Devices(ctx)
	if err == nil && len(devices) == 0 {
		err = ErrNoDevices
	}
	if err != nil {
		log.Warn("gpu query failed, using fallback readings", "backend", p.Name(), "error", err)
		return Fallback()
	}

	log.Debug("gpu query completed", "backend", p.Name(), "devices", len(devices))
	return Readings(devices)
}

// TotalPower sums draw and limit across readings.
func TotalPower(readings []types.GPUReading) (draw, limit float64) {
	for _, r := range readings {
		draw += r.PowerDrawWatts
		limit += r.PowerLimitWatts
	}
	return draw, limit
}
