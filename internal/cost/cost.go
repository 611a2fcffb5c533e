// Package cost turns aggregate power draw into an electricity bill estimate.
package cost

const (
	hoursPerDay  = 24
	daysPerMonth = 30
)

// DefaultCentsPerKWh is used when no rate is configured.
const DefaultCentsPerKWh = 13.0

type Estimate struct {
	CentsPerHour    float64
	DollarsPerMonth float64
}

// EstimateCost assumes the machine draws totalWatts around the clock for a
// 30-day month; actual uptime is not taken into account.
func EstimateCost(totalWatts, centsPerKWh float64) Estimate {
	centsPerHour := (totalWatts / 1000) * centsPerKWh
	return Estimate{
		CentsPerHour:    centsPerHour,
		DollarsPerMonth: centsPerHour * hoursPerDay * daysPerMonth / 100,
	}
}
