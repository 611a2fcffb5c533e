package gpu

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// queryFields is the column order requested from nvidia-smi.
var queryFields = []string{
	"utilization.gpu",
	"memory.used",
	"memory.total",
	"power.draw",
	"power.limit",
}

// Tokens nvidia-smi prints for sensors a device does not expose.
var unavailableTokens = map[string]bool{
	"N/A":             true,
	"[N/A]":           true,
	"[Not Supported]": true,
}

// ParseQueryOutput parses csv,noheader,nounits output: one row per device,
// five numeric columns in queryFields order. Blank lines are ignored; any
// other malformed row fails the whole parse.
func ParseQueryOutput(out []byte) ([]Device, error) {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	devices := make([]Device, 0, len(lines))

	for n, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		device, err := parseRow(line)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+1, err)
		}
		devices = append(devices, device)
	}

	if len(devices) == 0 {
		return nil, ErrNoDevices
	}
	return devices, nil
}

func parseRow(line string) (Device, error) {
	fields := strings.Split(line, ",")
	if len(fields) != len(queryFields) {
		return Device{}, fmt.Errorf("%w: expected %d fields, got %d: %q", ErrMalformedRow, len(queryFields), len(fields), line)
	}

	values := make([]float64, len(fields))
	for i, field := range fields {
		v, err := parseValue(field)
		if err != nil {
			return Device{}, fmt.Errorf("%w: %s: %v", ErrMalformedRow, queryFields[i], err)
		}
		values[i] = v
	}

	return Device{
		UtilizationPercent: values[0],
		MemoryUsedMiB:      values[1],
		MemoryTotalMiB:     values[2],
		PowerDrawWatts:     values[3],
		PowerLimitWatts:    values[4],
	}, nil
}

func parseValue(field string) (float64, error) {
	field = strings.TrimSpace(field)
	if unavailableTokens[field] {
		return 0, nil
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid number %q", field)
	}
	return v, nil
}
