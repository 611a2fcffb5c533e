package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQueryOutput(t *testing.T) {
	out := []byte("45, 12000, 24576, 250.55, 350.00\n3, 512, 24576, 20.10, 350.00\n\n7, 0, 8192, [N/A], [N/A]\n")

	devices, err := ParseQueryOutput(out)
	require.NoError(t, err)
	require.Len(t, devices, 3)

	assert.Equal(t, Device{
		UtilizationPercent: 45,
		MemoryUsedMiB:      12000,
		MemoryTotalMiB:     24576,
		PowerDrawWatts:     250.55,
		PowerLimitWatts:    350,
	}, devices[0])
	assert.Equal(t, 3.0, devices[1].UtilizationPercent)
	assert.Equal(t, 20.1, devices[1].PowerDrawWatts)
	assert.Equal(t, 0.0, devices[2].PowerDrawWatts)
	assert.Equal(t, 0.0, devices[2].PowerLimitWatts)
}

func TestParseQueryOutput_Errors(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		wantErr error
	}{
		{"empty", "", ErrNoDevices},
		{"whitespace only", "\n  \n", ErrNoDevices},
		{"too few fields", "45, 12000, 24576, 250.55\n", ErrMalformedRow},
		{"too many fields", "45, 12000, 24576, 250.55, 350, 70\n", ErrMalformedRow},
		{"non numeric", "45, lots, 24576, 250.55, 350\n", ErrMalformedRow},
		{"nan", "NaN, 1, 2, 3, 4\n", ErrMalformedRow},
		{"error banner", "NVIDIA-SMI has failed because it couldn't communicate with the NVIDIA driver.\n", ErrMalformedRow},
		{"one bad row spoils all", "45, 12000, 24576, 250.55, 350\n1, 2\n", ErrMalformedRow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			devices, err := ParseQueryOutput([]byte(tt.output))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, devices)
		})
	}
}
