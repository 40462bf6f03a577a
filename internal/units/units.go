// Package units provides shared constants and conversions for timing units
package units

// Unit constants
const (
	NS = "ns"
	US = "us"
	MS = "ms"
	S  = "s"
)

// ValidUnits contains all valid timing unit values
var ValidUnits = []string{NS, US, MS, S}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "ns, us, ms, s"
}

// NanosToMillis converts a nanosecond measurement to milliseconds.
// Benchmark records store per-call pathfinding times in ns.
func NanosToMillis(ns float64) float64 {
	return ns / 1e6
}

// MillisToSeconds converts a millisecond measurement to seconds.
func MillisToSeconds(ms float64) float64 {
	return ms / 1e3
}

// ConvertMillis converts a millisecond measurement to the target units.
// Benchmark records store execution times in ms.
func ConvertMillis(ms float64, targetUnits string) float64 {
	switch targetUnits {
	case NS:
		return ms * 1e6
	case US:
		return ms * 1e3
	case S:
		return ms / 1e3
	case MS:
		return ms
	default:
		return ms // default to ms if unknown unit
	}
}
