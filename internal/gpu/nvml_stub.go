//go:build nonvml

package gpu

import "errors"

// readNVML stub used when building without NVIDIA libraries.
func readNVML() ([]Device, error) {
	return nil, errors.New("NVML not available (built with nonvml tag)")
}
