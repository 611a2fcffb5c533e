package units

import (
	"fmt"
	"math"
	"strconv"
)

var sizePrefixes = []string{"", "K", "M", "G", "T", "P"}

// FormatSize renders a byte count with a binary prefix, e.g. 1536 -> "1.50KB".
// Values at or above 1024^5 keep the "P" prefix; there is no larger unit.
func FormatSize(bytes uint64) string {
	value := float64(bytes)
	for i, prefix := range sizePrefixes {
		if value < 1024 || i == len(sizePrefixes)-1 {
			return fmt.Sprintf("%.2f%sB", value, prefix)
		}
		value /= 1024
	}
	return ""
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Text renders v rounded to places decimals without trailing zeros.
func Text(v float64, places int) string {
	return strconv.FormatFloat(Round(v, places), 'f', -1, 64)
}

// MiBToGB converts mebibytes to gigabytes the way the dashboard expects (MiB / 1024).
func MiBToGB(mib float64) float64 {
	return mib / 1024
}
