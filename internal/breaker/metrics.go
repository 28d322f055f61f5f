package breaker

import "time"

// Metrics provides observability into threshold breaker behavior.
// It includes current state, counts and timestamps.
type Metrics struct {
	// State is the current breaker state.
	State State

	// Violations is the current violation count for the active mode. In
	// windowed mode entries older than Duration are excluded.
	Violations int

	// Counts contains observation, violation and transition statistics.
	Counts Counts

	// ViolationRate is TotalViolations / Observations.
	// Returns 0 if nothing has been observed.
	// Range: [0.0, 1.0]
	ViolationRate float64

	// StateChangedAt is the timestamp of the last transition, or of
	// construction if none has happened yet.
	StateChangedAt time.Time

	// BrokenAt is when the breaker last tripped. Zero while closed.
	BrokenAt time.Time
}

// Metrics returns a snapshot of current breaker metrics.
func (b *ThresholdBreaker) Metrics() Metrics {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.metricsLocked(b.clock.Now())
}

func (b *ThresholdBreaker) metricsLocked(now time.Time) Metrics {
	state := StateClosed
	if b.broken {
		state = StateOpen
	}

	var rate float64
	if b.counts.Observations > 0 {
		rate = float64(b.counts.TotalViolations) / float64(b.counts.Observations)
	}

	return Metrics{
		State:          state,
		Violations:     b.liveViolations(now),
		Counts:         b.counts,
		ViolationRate:  rate,
		StateChangedAt: b.stateChangedAt,
		BrokenAt:       b.brokenAt,
	}
}
