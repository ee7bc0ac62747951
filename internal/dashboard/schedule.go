package dashboard

import "time"

// NextAligned returns the next multiple of interval after now, measured on
// the wall clock. Poll ticks are scheduled against this boundary instead
// of with repeated relative delays, so tiles created at different moments
// stay in phase with each other and with external consumers expecting
// round-second sampling, and nothing drifts.
func NextAligned(now time.Time, interval time.Duration) time.Time {
	return now.Truncate(interval).Add(interval)
}
