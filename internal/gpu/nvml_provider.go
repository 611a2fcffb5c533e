package gpu

import (
	"context"
	"fmt"
	"time"
)

// NVMLProvider reads devices through the NVML library instead of spawning
// nvidia-smi. NVML calls cannot be interrupted, so they run on their own
// goroutine and the provider gives up on them once the timeout expires.
type NVMLProvider struct {
	timeout time.Duration
	read    func() ([]Device, error)
}

func NewNVMLProvider(timeout time.Duration) *NVMLProvider {
	return &NVMLProvider{
		timeout: timeout,
		read:    readNVML,
	}
}

func (p *NVMLProvider) Name() string {
	return "nvml"
}

func (p *NVMLProvider) Devices(ctx context.Context) ([]Device, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	type result struct {
		devices []Device
		err     error
	}
	done := make(chan result, 1)
	go func() {
		devices, err := p.read()
		done <- result{devices: devices, err: err}
	}()

	select {
	case res := <-done:
		return res.devices, res.err
	case <-ctx.Done():
		return nil, fmt.Errorf("nvml query timed out after %v: %w", p.timeout, ctx.Err())
	}
}

var _ Provider = (*NVMLProvider)(nil)
