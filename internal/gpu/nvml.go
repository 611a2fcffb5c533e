//go:build !nonvml

package gpu

import (
	"fmt"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// readNVML initializes and shuts down the library on every call so no
// handle outlives a request.
func readNVML() (devices []Device, err error) {
	if ret := nvml.Init(); ret != nvml.SUCCESS {
		return nil, fmt.Errorf("NVML init failed: %v", nvml.ErrorString(ret))
	}
	defer func() {
		if ret := nvml.Shutdown(); ret != nvml.SUCCESS && err == nil {
			err = fmt.Errorf("NVML shutdown failed: %v", nvml.ErrorString(ret))
		}
	}()

	count, ret := nvml.DeviceGetCount()
	if ret != nvml.SUCCESS {
		return nil, fmt.Errorf("failed to get device count: %v", nvml.ErrorString(ret))
	}

	devices = make([]Device, 0, count)
	for i := 0; i < count; i++ {
		device, ret := nvml.DeviceGetHandleByIndex(i)
		if ret != nvml.SUCCESS {
			return nil, fmt.Errorf("failed to get device %d: %v", i, nvml.ErrorString(ret))
		}

		util, ret := device.GetUtilizationRates()
		if ret != nvml.SUCCESS {
			return nil, fmt.Errorf("device %d utilization: %v", i, nvml.ErrorString(ret))
		}
		mem, ret := device.GetMemoryInfo()
		if ret != nvml.SUCCESS {
			return nil, fmt.Errorf("device %d memory: %v", i, nvml.ErrorString(ret))
		}
		// Power sensors are optional; missing readings count as zero.
		powerMilli, _ := device.GetPowerUsage()
		limitMilli, _ := device.GetEnforcedPowerLimit()

		devices = append(devices, Device{
			UtilizationPercent: float64(util.Gpu),
			MemoryUsedMiB:      float64(mem.Used) / (1024 * 1024),
			MemoryTotalMiB:     float64(mem.Total) / (1024 * 1024),
			PowerDrawWatts:     float64(powerMilli) / 1000,
			PowerLimitWatts:    float64(limitMilli) / 1000,
		})
	}
	return devices, nil
}
