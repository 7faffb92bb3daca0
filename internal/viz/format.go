package viz

import (
	"fmt"
	"math"
	"time"
)

// Formatter turns a clamped progress value into the label shown after the
// bar.
type Formatter func(progress float64) string

// Percentage renders " 65%" style labels padded to a fixed width.
func Percentage(p float64) string {
	return fmt.Sprintf("%3.0f%%", p*100)
}

// Fraction renders "done/total".
func Fraction(total int) Formatter {
	return func(p float64) string {
		done := int(math.Floor(p*float64(total) + 1e-9))
		return fmt.Sprintf("%d/%d", done, total)
	}
}

// TimeRemaining estimates the time left from the elapsed time so far,
// assuming constant speed.
func TimeRemaining(elapsed time.Duration) Formatter {
	return func(p float64) string {
		if p < 0.01 {
			return "estimating..."
		}
		secs := elapsed.Seconds()
		remaining := secs/p - secs
		switch {
		case remaining < 60:
			return fmt.Sprintf("~%.0fs", remaining)
		case remaining < 3600:
			return fmt.Sprintf("~%.1fm", remaining/60)
		default:
			return fmt.Sprintf("~%.1fh", remaining/3600)
		}
	}
}

// Engineering renders progress in scientific notation.
func Engineering(p float64) string {
	if p >= 0.999 {
		return "100%"
	}
	return fmt.Sprintf("%.2e", p)
}
