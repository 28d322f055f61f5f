//go:build debug

package breaker

import "fmt"

// validateInvariants checks internal consistency of the breaker for debugging.
//
// Validation checks:
//   - Window is sorted ascending
//   - Consecutive mode holds no window; windowed mode keeps no streak
//   - brokenAt is set iff the breaker is open
//   - Queued transitions always have a goroutine delivering them
//   - Transition counts: Trips - Clears is 1 while open, 0 while closed
//
// Returns nil if all invariants hold, or an error describing the first violation found.
func (b *ThresholdBreaker) validateInvariants() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.windowed() {
		ts := b.window.timestamps
		for i := 1; i < len(ts); i++ {
			if ts[i].Before(ts[i-1]) {
				return fmt.Errorf("window out of order at %d: %v before %v", i, ts[i], ts[i-1])
			}
		}
		if b.counts.ConsecutiveViolations != 0 {
			return fmt.Errorf("windowed mode: ConsecutiveViolations=%d, want 0", b.counts.ConsecutiveViolations)
		}
	} else if b.window != nil {
		return fmt.Errorf("consecutive mode: window allocated")
	}

	if b.broken == b.brokenAt.IsZero() {
		return fmt.Errorf("inconsistent: broken=%v but brokenAt=%v", b.broken, b.brokenAt)
	}

	if !b.dispatching && len(b.pending) > 0 {
		return fmt.Errorf("%d transitions queued with no dispatcher", len(b.pending))
	}

	open := b.counts.Trips - b.counts.Clears
	if (b.broken && open != 1) || (!b.broken && open != 0) {
		return fmt.Errorf("transition mismatch: Trips=%d Clears=%d broken=%v",
			b.counts.Trips, b.counts.Clears, b.broken)
	}

	return nil
}
