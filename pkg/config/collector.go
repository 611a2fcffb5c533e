package config

import (
	"runtime"
	"time"
)

const (
	GPUBackendSMI  = "smi"
	GPUBackendNVML = "nvml"
)

type CollectorConfig struct {
	DiskPath        string        `yaml:"disk_path" validate:"required"`
	CostPerKWhCents float64       `yaml:"cost_per_kwh_cents" validate:"gte=0"`
	CPUSampleWindow time.Duration `yaml:"cpu_sample_window" validate:"min=1ms,max=1m"`
	GPUQueryTimeout time.Duration `yaml:"gpu_query_timeout" validate:"min=1ms,max=1m"`
	GPUBackend      string        `yaml:"gpu_backend" validate:"oneof=smi nvml"`
	NvidiaSMIPath   string        `yaml:"nvidia_smi_path" validate:"required"`
}

func defaultCollectorConfig() CollectorConfig {
	return CollectorConfig{
		DiskPath:        defaultDiskPath(),
		CostPerKWhCents: 13,
		CPUSampleWindow: time.Second,
		GPUQueryTimeout: 3 * time.Second,
		GPUBackend:      GPUBackendSMI,
		NvidiaSMIPath:   "nvidia-smi",
	}
}

func defaultDiskPath() string {
	if runtime.GOOS == "windows" {
		return `C:\`
	}
	return "/"
}

func (c *CollectorConfig) applyEnv() error {
	setString(&c.DiskPath, "DISK_PATH")
	setString(&c.GPUBackend, "GPU_BACKEND")
	setString(&c.NvidiaSMIPath, "NVIDIA_SMI_PATH")

	if err := setFloat(&c.CostPerKWhCents, "COST_PER_KWH_CENTS"); err != nil {
		return err
	}
	if err := setDuration(&c.CPUSampleWindow, "CPU_SAMPLE_WINDOW"); err != nil {
		return err
	}
	return setDuration(&c.GPUQueryTimeout, "GPU_QUERY_TIMEOUT")
}
