package gpu

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNVMLProvider_Devices(t *testing.T) {
	p := NewNVMLProvider(time.Second)
	p.read = func() ([]Device, error) {
		return []Device{{UtilizationPercent: 12, MemoryTotalMiB: 8192}}, nil
	}

	devices, err := p.Devices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Device{{UtilizationPercent: 12, MemoryTotalMiB: 8192}}, devices)
}

func TestNVMLProvider_Error(t *testing.T) {
	p := NewNVMLProvider(time.Second)
	p.read = func() ([]Device, error) {
		return nil, errors.New("NVML init failed: Driver Not Loaded")
	}

	_, err := p.Devices(context.Background())
	assert.EqualError(t, err, "NVML init failed: Driver Not Loaded")
	assertFallback(t, Query(context.Background(), p, discardLogger()))
}

func TestNVMLProvider_TimeoutOnHungCall(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	p := NewNVMLProvider(50 * time.Millisecond)
	p.read = func() ([]Device, error) {
		<-release
		return nil, nil
	}

	start := time.Now()
	_, err := p.Devices(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)

	assertFallback(t, Query(context.Background(), p, discardLogger()))
}
