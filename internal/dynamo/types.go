package dynamo

import "math"

// Clamp01 clamps v into [0, 1]. NaN clamps to 0.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// IsFinite reports whether every value is neither NaN nor Inf.
func IsFinite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// CheckDt validates a tick duration. Zero is allowed.
func CheckDt(op string, dt float64) error {
	if math.IsNaN(dt) || math.IsInf(dt, 0) {
		return InvalidArgument(op, "dt", dt, "must be finite")
	}
	if dt < 0 {
		return InvalidArgument(op, "dt", dt, "must be >= 0")
	}
	return nil
}
