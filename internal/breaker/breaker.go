package breaker

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// ThresholdBreaker trips when enough observations violate a boundary.
//
// Every observation is classified as a violation or not: with a Boundary the
// Operator decides, without one any truthy comparand is a violation. Violations
// are counted either in a sliding window of Duration (windowed mode) or as an
// unbroken streak (consecutive mode, Duration == 0). Reaching Threshold trips
// the breaker (Closed → Open) and emits break. It clears (Open → Closed) and
// emits clear either when the ClearAfter timer fires or, with ClearAfter == 0,
// after Threshold consecutive non-violations.
//
// Architecture:
//
// A single mutex guards the window, the counters and the broken flag. Observe
// and the auto-clear callback both take it, so they are serialized. Each
// transition is queued under the mutex and delivered after it is released.
// Only one goroutine delivers at a time, so listeners see transitions in the
// order they happened: a break is always delivered before the clear that
// follows it, even when the auto-clear timer fires during break delivery.
//
// Do not construct ThresholdBreaker directly; use New().
//
// Example Usage:
//
//	b, err := tripwire.New(tripwire.Settings{
//	    Name:      "http-5xx",
//	    Threshold: 5,
//	    Duration:  10 * time.Second,
//	    Boundary:  tripwire.ValuePtr(tripwire.Int(499)),
//	    Operator:  tripwire.OperatorGreaterThan,
//	    Property:  "status",
//	})
//	if err != nil {
//	    return err
//	}
//	b.OnBreak(func(payload tripwire.Value) { alert("5xx storm", payload) })
//	b.Observe(tripwire.ValueOf(map[string]any{"status": resp.StatusCode}))
type ThresholdBreaker struct {
	name string

	// Settings (immutable - set once at creation)
	threshold     int
	duration      time.Duration
	clearAfter    time.Duration
	boundary      Value
	hasBoundary   bool
	operator      Operator
	property      string
	onStateChange func(string, State, State)
	clock         clockwork.Clock
	logger        *zap.Logger

	listeners listeners

	mu             sync.Mutex
	window         *violationWindow
	counts         Counts
	broken         bool
	brokenAt       time.Time
	stateChangedAt time.Time

	// Transitions awaiting delivery, oldest first. Guarded by mu.
	pending     []transition
	dispatching bool
}

// New creates a threshold breaker with the given settings.
//
// Settings and Defaults:
//
//	Threshold:  Default 1 if not set
//	Duration:   Default 0 (consecutive mode)
//	ClearAfter: Default 0 (observation-driven clearing)
//	Boundary:   Default nil (truthy comparands are violations)
//	Operator:   Required iff Boundary is set
//	Clock:      Default real clock
//	Logger:     Default zap.NewNop()
//
// Returns a *ConfigurationError if Boundary is set without an Operator or if
// Operator is out of range.
func New(settings Settings) (*ThresholdBreaker, error) {
	if !settings.Operator.valid() {
		return nil, newConfigurationError("operator", "unknown operator %d", settings.Operator)
	}
	if settings.Boundary != nil && settings.Operator == OperatorNone {
		return nil, newConfigurationError("operator",
			"an operator (=, <, >) must be specified to compare values against boundary %s",
			settings.Boundary)
	}

	b := &ThresholdBreaker{
		name:          settings.Name,
		threshold:     settings.Threshold,
		duration:      settings.Duration,
		clearAfter:    settings.ClearAfter,
		operator:      settings.Operator,
		property:      settings.Property,
		onStateChange: settings.OnStateChange,
		clock:         settings.Clock,
		logger:        settings.Logger,
	}

	if settings.Boundary != nil {
		b.boundary = *settings.Boundary
		b.hasBoundary = true
	}

	// Apply defaults
	if b.threshold == 0 {
		b.threshold = 1
	}

	if b.clock == nil {
		b.clock = clockwork.NewRealClock()
	}

	if b.logger == nil {
		b.logger = zap.NewNop()
	}
	b.logger = b.logger.Named("tripwire").With(zap.String("breaker", b.name))

	if b.windowed() {
		b.window = newViolationWindow(b.duration)
	}

	b.stateChangedAt = b.clock.Now()

	return b, nil
}

// MustNew is like New but panics on a configuration error.
func MustNew(settings Settings) *ThresholdBreaker {
	b, err := New(settings)
	if err != nil {
		panic(err)
	}
	return b
}

// Observe classifies v using the configured Property as the field key.
func (b *ThresholdBreaker) Observe(v Value) {
	b.ObserveField(v, b.property)
}

// ObserveAny converts x with ValueOf and observes it. An optional key
// overrides the configured Property.
func (b *ThresholdBreaker) ObserveAny(x any, key ...string) {
	k := b.property
	if len(key) > 0 {
		k = key[0]
	}
	b.ObserveField(ValueOf(x), k)
}

// ObserveField classifies v, updates the accounting and performs at most one
// state transition.
//
// If v is a record holding key, that field is compared against the boundary;
// otherwise v itself is. While an auto-clear timer is pending the call is a
// no-op.
//
// Behavior by State:
//
//   - Closed: violations are counted; reaching Threshold trips the breaker
//     with v as the break payload
//   - Open, ClearAfter > 0: ignored until the timer clears the breaker
//   - Open, ClearAfter == 0: Threshold consecutive non-violations clear it;
//     any violation restarts the clear streak
//
// Thread-safe: Can be called concurrently with itself and with the timer.
func (b *ThresholdBreaker) ObserveField(v Value, key string) {
	b.mu.Lock()
	if tr, changed := b.observeLocked(v, key); changed {
		b.pending = append(b.pending, tr)
	}
	b.mu.Unlock()

	b.dispatch()
}

func (b *ThresholdBreaker) observeLocked(v Value, key string) (transition, bool) {
	if b.broken && b.clearAfter > 0 {
		return transition{}, false
	}

	c := comparand(v, key)
	now := b.clock.Now()

	if b.windowed() {
		b.window.prune(now)
	}

	if b.isViolation(c) {
		b.recordViolation()
		if b.windowed() {
			b.window.record(now)
		}
		b.logger.Debug("violation observed",
			zap.Stringer("value", c),
			zap.Int("violations", b.violations()),
			zap.Int("threshold", b.threshold))

		if !b.broken && b.violations() >= b.threshold {
			return b.tripLocked(now, v), true
		}
		return transition{}, false
	}

	if b.recordNonViolation() {
		return b.clearLocked(now, clearReasonObservations), true
	}
	return transition{}, false
}

// isViolation applies the boundary predicate, or truthiness without a boundary.
func (b *ThresholdBreaker) isViolation(c Value) bool {
	if b.hasBoundary {
		return b.operator.Apply(c, b.boundary)
	}
	return c.Truthy()
}

func (b *ThresholdBreaker) windowed() bool {
	return b.duration > 0
}
