package breaker

import (
	"time"

	"go.uber.org/zap"
)

const (
	clearReasonTimer        = "timer"
	clearReasonObservations = "observations"
)

// transition describes a state change to announce once the lock is released.
type transition struct {
	from    State
	to      State
	payload Value
}

// tripLocked transitions from Closed to Open. Caller holds b.mu.
func (b *ThresholdBreaker) tripLocked(now time.Time, payload Value) transition {
	violations := b.violations()

	b.broken = true
	b.brokenAt = now
	b.stateChangedAt = now
	b.counts.Trips++
	b.counts.ConsecutiveClears = 0

	// Clear accounting so the next cycle starts fresh
	b.clearViolations()

	// Arm the one-shot auto-clear. Observe short-circuits while it is pending,
	// so nothing else touches the breaker until it fires.
	if b.clearAfter > 0 {
		b.clock.AfterFunc(b.clearAfter, b.autoClear)
	}

	b.logger.Info("threshold breaker tripped",
		zap.Int("violations", violations),
		zap.Int("threshold", b.threshold),
		zap.Stringer("payload", payload),
		zap.Duration("clear_after", b.clearAfter))

	return transition{from: StateClosed, to: StateOpen, payload: payload}
}

// clearLocked transitions from Open to Closed. Caller holds b.mu.
func (b *ThresholdBreaker) clearLocked(now time.Time, reason string) transition {
	b.broken = false
	b.brokenAt = time.Time{}
	b.stateChangedAt = now
	b.counts.Clears++

	b.logger.Info("threshold breaker cleared", zap.String("reason", reason))

	return transition{from: StateOpen, to: StateClosed}
}

// autoClear runs on the timer goroutine ClearAfter after a trip.
func (b *ThresholdBreaker) autoClear() {
	b.mu.Lock()
	if !b.broken {
		b.mu.Unlock()
		return
	}
	b.pending = append(b.pending, b.clearLocked(b.clock.Now(), clearReasonTimer))
	b.mu.Unlock()

	b.dispatch()
}

// dispatch delivers queued transitions in order. If another goroutine is
// already delivering, it returns at once and that goroutine picks up what was
// queued, so a listener that calls Observe does not block on itself.
func (b *ThresholdBreaker) dispatch() {
	b.mu.Lock()
	if b.dispatching {
		b.mu.Unlock()
		return
	}
	b.dispatching = true

	for len(b.pending) > 0 {
		tr := b.pending[0]
		b.pending[0] = transition{}
		b.pending = b.pending[1:]
		b.mu.Unlock()

		b.emit(tr)

		b.mu.Lock()
	}
	b.pending = nil
	b.dispatching = false
	b.mu.Unlock()
}

// emit announces a transition: OnStateChange first, then the break or clear
// listeners in registration order. Must be called without b.mu held.
func (b *ThresholdBreaker) emit(tr transition) {
	safeCallOnStateChange(b.logger, b.name, b.onStateChange, tr.from, tr.to)

	switch tr.to {
	case StateOpen:
		b.listeners.notifyBreak(b.logger, tr.payload)
	case StateClosed:
		b.listeners.notifyClear(b.logger)
	}
}
