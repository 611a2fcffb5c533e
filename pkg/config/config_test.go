package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address())
	assert.True(t, cfg.Server.ErrorStatusOK)
	assert.Equal(t, 13.0, cfg.Collector.CostPerKWhCents)
	assert.Equal(t, time.Second, cfg.Collector.CPUSampleWindow)
	assert.Equal(t, 3*time.Second, cfg.Collector.GPUQueryTimeout)
	assert.Equal(t, GPUBackendSMI, cfg.Collector.GPUBackend)
	assert.Equal(t, defaultDiskPath(), cfg.Collector.DiskPath)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9090")
	t.Setenv("DISK_PATH", "/data")
	t.Setenv("COST_PER_KWH_CENTS", "21.5")
	t.Setenv("CPU_SAMPLE_WINDOW", "250ms")
	t.Setenv("GPU_QUERY_TIMEOUT", "5s")
	t.Setenv("GPU_BACKEND", "nvml")
	t.Setenv("ERROR_STATUS_OK", "false")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Address())
	assert.False(t, cfg.Server.ErrorStatusOK)
	assert.Equal(t, "json", cfg.Server.LogFormat)
	assert.Equal(t, "/data", cfg.Collector.DiskPath)
	assert.Equal(t, 21.5, cfg.Collector.CostPerKWhCents)
	assert.Equal(t, 250*time.Millisecond, cfg.Collector.CPUSampleWindow)
	assert.Equal(t, 5*time.Second, cfg.Collector.GPUQueryTimeout)
	assert.Equal(t, GPUBackendNVML, cfg.Collector.GPUBackend)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 8181
collector:
  disk_path: /srv
  cost_per_kwh_cents: 30
  gpu_query_timeout: 2s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv(configPathEnv, path)
	t.Setenv("PORT", "8282")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8282, cfg.Server.Port, "environment wins over file")
	assert.Equal(t, "/srv", cfg.Collector.DiskPath)
	assert.Equal(t, 30.0, cfg.Collector.CostPerKWhCents)
	assert.Equal(t, 2*time.Second, cfg.Collector.GPUQueryTimeout)
	assert.Equal(t, time.Second, cfg.Collector.CPUSampleWindow, "unset keys keep defaults")
}

func TestLoad_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"collector": {"gpu_backend": "nvml"}}`), 0o600))
	t.Setenv(configPathEnv, path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, GPUBackendNVML, cfg.Collector.GPUBackend)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad port", map[string]string{"PORT": "http"}},
		{"port out of range", map[string]string{"PORT": "70000"}},
		{"bad duration", map[string]string{"CPU_SAMPLE_WINDOW": "soon"}},
		{"zero window", map[string]string{"CPU_SAMPLE_WINDOW": "0s"}},
		{"negative rate", map[string]string{"COST_PER_KWH_CENTS": "-1"}},
		{"unknown backend", map[string]string{"GPU_BACKEND": "rocm"}},
		{"bad bool", map[string]string{"ERROR_STATUS_OK": "maybe"}},
		{"missing file", map[string]string{configPathEnv: "/nonexistent/config.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
