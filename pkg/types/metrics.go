package types

import (
	"encoding/json"
	"strconv"

	"sysinfo-server/pkg/units"
)

// GPUReading is one device as reported by the device query, in display units.
type GPUReading struct {
	Index              int
	UtilizationPercent float64
	MemoryUsedGB       float64
	MemoryTotalGB      float64
	MemoryPercent      float64
	PowerDrawWatts     float64
	PowerLimitWatts    float64
}

type gpuJSON struct {
	Usage         string `json:"usage"`
	MemoryUsed    string `json:"memoryUsed"`
	MemoryTotal   string `json:"memoryTotal"`
	MemoryPercent string `json:"memoryPercent"`
	PowerDraw     string `json:"powerDraw"`
	PowerLimit    string `json:"powerLimit"`
}

func (g GPUReading) MarshalJSON() ([]byte, error) {
	return json.Marshal(gpuJSON{
		Usage:         units.Text(g.UtilizationPercent, 1),
		MemoryUsed:    units.Text(g.MemoryUsedGB, 1),
		MemoryTotal:   units.Text(g.MemoryTotalGB, 1),
		MemoryPercent: units.Text(g.MemoryPercent, 1),
		PowerDraw:     units.Text(g.PowerDrawWatts, 1),
		PowerLimit:    units.Text(g.PowerLimitWatts, 1),
	})
}

// Snapshot is the state of the machine at the time of one request.
type Snapshot struct {
	CPUUsagePercent     float64
	MemoryUsagePercent  float64
	DiskSummary         string
	NetworkStatus       string
	Uptime              string
	GPUs                []GPUReading
	TotalPowerWatts     float64
	TotalPowerLimit     float64
	CostCentsPerHour    float64
	CostDollarsPerMonth float64
}

// MarshalJSON flattens the GPU list into gpu1..gpuN keys next to the scalar fields.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	doc := map[string]any{
		"cpuUsage":                        units.Round(s.CPUUsagePercent, 1),
		"memoryUsage":                     units.Round(s.MemoryUsagePercent, 1),
		"diskSpace":                       s.DiskSummary,
		"networkStatus":                   s.NetworkStatus,
		"uptime":                          s.Uptime,
		"totalPower":                      units.Text(s.TotalPowerWatts, 1),
		"totalPowerLimit":                 units.Text(s.TotalPowerLimit, 1),
		"totalPowerCostInCentsPerHour":    units.Text(s.CostCentsPerHour, 2),
		"totalPowerCostInDollarsPerMonth": units.Text(s.CostDollarsPerMonth, 2),
	}
	for i, gpu := range s.GPUs {
		doc["gpu"+strconv.Itoa(i+1)] = gpu
	}
	return json.Marshal(doc)
}

// ErrorDocument is the body returned when a snapshot could not be collected.
type ErrorDocument struct {
	Error string `json:"error"`
}
