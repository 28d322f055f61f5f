package breaker

import "time"

// Counts holds threshold breaker statistics.
//
// Counts is returned by the Counts() method and embedded in Metrics.
//
// Thread-safe: Counts is a snapshot taken under the breaker lock.
type Counts struct {
	// Observations is the number of observations that were classified.
	// Observations ignored while an auto-clear timer is pending are not counted.
	Observations uint64

	// TotalViolations is the cumulative number of violating observations.
	TotalViolations uint64

	// ConsecutiveViolations is the current violation streak (consecutive mode only).
	ConsecutiveViolations int

	// ConsecutiveClears is the current non-violation streak while broken.
	ConsecutiveClears int

	// Trips is the number of Closed → Open transitions.
	Trips uint64

	// Clears is the number of Open → Closed transitions.
	Clears uint64
}

// recordViolation updates counters for a violating observation.
func (b *ThresholdBreaker) recordViolation() {
	b.counts.Observations++
	b.counts.TotalViolations++
	b.counts.ConsecutiveClears = 0
	if !b.windowed() {
		b.counts.ConsecutiveViolations++
	}
}

// recordNonViolation updates counters for a non-violating observation and
// reports whether the clear streak has reached the threshold.
func (b *ThresholdBreaker) recordNonViolation() (readyToClear bool) {
	b.counts.Observations++

	switch {
	case b.broken && b.clearAfter <= 0:
		b.counts.ConsecutiveClears++
		b.counts.ConsecutiveViolations = 0
		if b.counts.ConsecutiveClears >= b.threshold {
			b.counts.ConsecutiveClears = 0
			return true
		}
	case !b.windowed() && !b.broken:
		// A non-violation breaks the streak.
		b.counts.ConsecutiveViolations = 0
	}
	return false
}

// violations returns the current violation count for the active mode.
func (b *ThresholdBreaker) violations() int {
	if b.windowed() {
		return b.window.len()
	}
	return b.counts.ConsecutiveViolations
}

// liveViolations counts the violations that would survive a prune at now.
// Read paths use it so a window that stopped receiving observations does not
// report stale entries.
func (b *ThresholdBreaker) liveViolations(now time.Time) int {
	if b.windowed() {
		return b.window.live(now)
	}
	return b.counts.ConsecutiveViolations
}

// clearViolations empties the accounting for the active mode.
func (b *ThresholdBreaker) clearViolations() {
	if b.windowed() {
		b.window.reset()
		return
	}
	b.counts.ConsecutiveViolations = 0
}
