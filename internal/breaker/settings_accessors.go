package breaker

import "time"

// Read-only accessors. Configuration is immutable, so only the state
// accessors take the lock.

// Name returns the breaker name from Settings.Name.
func (b *ThresholdBreaker) Name() string {
	return b.name
}

// Threshold returns the number of violations required to trip.
func (b *ThresholdBreaker) Threshold() int {
	return b.threshold
}

// Duration returns the sliding window size; zero means consecutive mode.
func (b *ThresholdBreaker) Duration() time.Duration {
	return b.duration
}

// ClearAfter returns the auto-clear delay; zero means observation-driven clearing.
func (b *ThresholdBreaker) ClearAfter() time.Duration {
	return b.clearAfter
}

// Operator returns the configured comparison operator.
func (b *ThresholdBreaker) Operator() Operator {
	return b.operator
}

// Boundary returns the configured boundary and whether one was supplied.
func (b *ThresholdBreaker) Boundary() (Value, bool) {
	return b.boundary, b.hasBoundary
}

// Property returns the default field key used by Observe.
func (b *ThresholdBreaker) Property() string {
	return b.property
}

// IsBroken reports whether the breaker is open.
func (b *ThresholdBreaker) IsBroken() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.broken
}

// State returns StateOpen when broken, StateClosed otherwise.
func (b *ThresholdBreaker) State() State {
	if b.IsBroken() {
		return StateOpen
	}
	return StateClosed
}

// Violations returns the current violation count: the live window entries in
// windowed mode, the streak length in consecutive mode.
//
// Entries older than Duration are excluded but not removed; the next Observe
// prunes them.
func (b *ThresholdBreaker) Violations() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.liveViolations(b.clock.Now())
}

// Counts returns a snapshot of the breaker statistics.
func (b *ThresholdBreaker) Counts() Counts {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.counts
}

// Window returns a copy of the stored violation timestamps, oldest first,
// including entries not yet pruned. It is nil in consecutive mode.
func (b *ThresholdBreaker) Window() []time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.windowed() {
		return nil
	}
	return b.window.snapshot()
}
