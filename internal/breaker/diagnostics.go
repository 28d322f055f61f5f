package breaker

import "time"

// Diagnostics provides troubleshooting information about the breaker's
// current state, configuration, and predicted behavior.
//
// Use Cases:
//   - Incident response: see how close a breaker is to tripping
//   - Dashboards: display configuration and countdowns next to state
//   - Alerting: warn before the next violation trips the breaker (WillTripNext)
//
// Example:
//
//	diag := breaker.Diagnostics()
//	if diag.WillTripNext {
//	    log.Warn("next violation trips", "breaker", diag.Name)
//	}
//	if diag.State == StateOpen && diag.ClearAfter > 0 {
//	    log.Info("auto-clear pending", "in", diag.TimeUntilClear)
//	}
type Diagnostics struct {
	// Name is the breaker identifier from Settings.Name.
	Name string

	// State is the current breaker state.
	State State

	// Metrics is the same snapshot returned by Metrics().
	Metrics Metrics

	// --- Configuration ---

	Threshold   int
	Duration    time.Duration
	ClearAfter  time.Duration
	Operator    Operator
	Boundary    Value
	HasBoundary bool
	Property    string

	// Windowed is true when violations are counted in a sliding window.
	Windowed bool

	// --- Predictive Diagnostics ---

	// WillTripNext predicts whether a violation observed now would trip the
	// breaker. In windowed mode entries that would be pruned now are excluded.
	// Always false while open.
	WillTripNext bool

	// TimeUntilClear is the time left before the auto-clear timer fires.
	// Only meaningful when open with ClearAfter > 0; zero otherwise.
	TimeUntilClear time.Duration

	// ClearsUntilClose is the number of non-violations still needed to clear.
	// Only meaningful when open with ClearAfter == 0; zero otherwise.
	ClearsUntilClose int
}

// Diagnostics returns a consistent snapshot of state, configuration and
// predictions, taken under the breaker lock.
func (b *ThresholdBreaker) Diagnostics() Diagnostics {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.clock.Now()
	metrics := b.metricsLocked(now)

	d := Diagnostics{
		Name:    b.name,
		State:   metrics.State,
		Metrics: metrics,

		// Configuration
		Threshold:   b.threshold,
		Duration:    b.duration,
		ClearAfter:  b.clearAfter,
		Operator:    b.operator,
		Boundary:    b.boundary,
		HasBoundary: b.hasBoundary,
		Property:    b.property,
		Windowed:    b.windowed(),
	}

	if !b.broken {
		d.WillTripNext = b.liveViolations(now)+1 >= b.threshold
		return d
	}

	if b.clearAfter > 0 {
		if remaining := b.brokenAt.Add(b.clearAfter).Sub(now); remaining > 0 {
			d.TimeUntilClear = remaining
		}
		return d
	}

	d.ClearsUntilClose = max(b.threshold-b.counts.ConsecutiveClears, 1)
	return d
}
