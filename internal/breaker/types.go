package breaker

import (
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// State represents the threshold breaker state.
//
// The breaker is a strict two-state loop: Closed → Open → Closed.
type State int32

const (
	// StateClosed indicates normal operation.
	//
	// In this state:
	//   - Every observation is classified against the boundary
	//   - Violations are counted (sliding window or consecutive streak)
	//   - When violations reach Threshold, transitions to StateOpen
	//
	// This is the initial state when a breaker is created.
	StateClosed State = iota

	// StateOpen indicates the breaker has tripped.
	//
	// In this state:
	//   - With ClearAfter > 0, observations are ignored until the auto-clear timer fires
	//   - With ClearAfter == 0, Threshold consecutive non-violations close the breaker
	StateOpen
)

const (
	stateUnknownStr = "unknown"
)

// String returns "closed", "open", or "unknown" for invalid states.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	default:
		return stateUnknownStr
	}
}

// Settings configures a threshold breaker.
//
// Settings are fixed for the lifetime of the breaker. Pass Settings to New().
//
// Two Main Patterns:
//
//	A. Consecutive (Duration == 0):
//	   Settings{
//	       Name:      "disk-full",
//	       Threshold: 3, // 3 truthy observations in a row
//	   }
//
//	B. Windowed (Duration > 0):
//	   Settings{
//	       Name:       "latency",
//	       Threshold:  5,
//	       Duration:   10 * time.Second,
//	       ClearAfter: 30 * time.Second,
//	       Boundary:   ValuePtr(Number(250)),
//	       Operator:   OperatorGreaterThan,
//	       Property:   "latency_ms",
//	   }
//
// Defaults:
//   - Threshold: 1 if set to 0
//   - Clock: real wall clock
//   - Logger: zap.NewNop()
//
// Validation:
//
// New() returns a *ConfigurationError when Boundary is set without an Operator,
// or when Operator is not one of the defined operators. Nothing else is validated.
type Settings struct {
	// Name is an identifier for the breaker, used in logs and metrics.
	Name string

	// Threshold is the number of violations required to trip, and the number of
	// consecutive non-violations required to clear when ClearAfter is 0.
	//
	// Default: 1 if set to 0. Negative values are accepted and trip on the first
	// violation.
	Threshold int

	// Duration is the sliding window size.
	//
	// Zero (or negative) selects consecutive mode: violations are counted as an
	// unbroken streak and any non-violation resets it.
	Duration time.Duration

	// ClearAfter is the delay before the breaker clears itself once broken.
	//
	// Zero (or negative) selects observation-driven clearing: Threshold
	// consecutive non-violations clear the breaker.
	ClearAfter time.Duration

	// Boundary is the comparison operand. Nil means no boundary is configured and
	// any truthy comparand counts as a violation. A boundary is present whenever
	// it is supplied, even if it is falsy (Number(0), Bool(false), String("")).
	Boundary *Value

	// Operator compares the comparand against Boundary. Required iff Boundary is set.
	Operator Operator

	// Property is the default field extracted from record observations by Observe.
	// ObserveField overrides it per call.
	Property string

	// OnStateChange is called on every transition, before OnBreak/OnClear listeners.
	// It runs outside the breaker lock.
	OnStateChange func(name string, from State, to State)

	// Clock supplies timestamps for the sliding window and schedules the auto-clear
	// timer. Default: clockwork.NewRealClock().
	Clock clockwork.Clock

	// Logger receives transition and listener-panic logs. Default: zap.NewNop().
	Logger *zap.Logger
}

// ErrConfiguration is matched by every *ConfigurationError via errors.Is.
var ErrConfiguration = errors.New("tripwire: invalid configuration")

// ConfigurationError reports a construction-time misconfiguration.
type ConfigurationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("tripwire: invalid %s: %s", e.Field, e.Reason)
}

// Unwrap returns ErrConfiguration.
func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

func newConfigurationError(field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ValuePtr returns a pointer to the given Value.
// Helper function for constructing Settings.Boundary.
func ValuePtr(v Value) *Value {
	return &v
}
