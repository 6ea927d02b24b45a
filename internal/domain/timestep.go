package domain

import (
	"fmt"
	"time"
)

const (
	secondsPerDay = 86400.0
	hoursPerDay   = 24.0

	// Advisory thresholds on the elapsed interval, in hours.
	moderateTimestepHours = 2.0
	largeTimestepHours    = 4.0
)

// CheckTimestep classifies the interval between two consecutive simulation
// calls and returns the elapsed time in days. The warning is advisory only
// and empty when the interval is unremarkable; the elapsed value is always
// returned, whichever class fired, so the caller can still drive the
// integrator. Classes are mutually exclusive and evaluated top-down:
// duplicate, non-monotonic, large (> 4 h), moderate (> 2 h).
func CheckTimestep(current, previous time.Time) (string, float64) {
	elapsedDays := current.Sub(previous).Seconds() / secondsPerDay
	elapsedHours := elapsedDays * hoursPerDay

	switch {
	case elapsedDays == 0:
		return "duplicate timestep detected, skipping temperature update", elapsedDays
	case elapsedDays < 0:
		return fmt.Sprintf("negative timestep detected (%.4f days), timestamps are not monotonically increasing", elapsedDays), elapsedDays
	case elapsedHours > largeTimestepHours:
		return fmt.Sprintf("Large timestep detected (%.2f hours), consider resetting temperatures to midpoint of air and dewpoint", elapsedHours), elapsedDays
	case elapsedHours > moderateTimestepHours:
		return fmt.Sprintf("Timestep greater than 2 hours (%.2f hours), potential accuracy issues", elapsedHours), elapsedDays
	default:
		return "", elapsedDays
	}
}
