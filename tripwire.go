// Package tripwire provides a threshold-triggered state tripper for Go.
//
// A ThresholdBreaker watches a stream of observed values, counts how many
// violate a configured boundary within a sliding window (or consecutively),
// and trips once a threshold is reached, notifying subscribers. It clears
// again after a fixed delay or after enough consecutive good observations.
//
// Basic usage:
//
//	b, err := tripwire.New(tripwire.Settings{
//	    Name:      "cpu-hot",
//	    Threshold: 3,
//	    Duration:  time.Minute,
//	    Boundary:  tripwire.ValuePtr(tripwire.Number(90)),
//	    Operator:  tripwire.OperatorGreaterThan,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	b.OnBreak(func(v tripwire.Value) { log.Printf("tripped by %s", v) })
//	b.OnClear(func() { log.Print("cleared") })
//
//	b.Observe(tripwire.Number(cpuPercent()))
package tripwire

import "github.com/1mb-dev/tripwire/internal/breaker"

// Re-export types
type (
	ThresholdBreaker   = breaker.ThresholdBreaker
	State              = breaker.State
	Settings           = breaker.Settings
	Value              = breaker.Value
	Kind               = breaker.Kind
	Operator           = breaker.Operator
	Counts             = breaker.Counts
	Metrics            = breaker.Metrics
	Diagnostics        = breaker.Diagnostics
	ConfigurationError = breaker.ConfigurationError
)

// Re-export constants
const (
	StateClosed = breaker.StateClosed
	StateOpen   = breaker.StateOpen

	OperatorNone        = breaker.OperatorNone
	OperatorEqual       = breaker.OperatorEqual
	OperatorLessThan    = breaker.OperatorLessThan
	OperatorGreaterThan = breaker.OperatorGreaterThan

	KindUndefined = breaker.KindUndefined
	KindBool      = breaker.KindBool
	KindNumber    = breaker.KindNumber
	KindString    = breaker.KindString
	KindRecord    = breaker.KindRecord
)

// Re-export errors
var (
	ErrConfiguration = breaker.ErrConfiguration
)

// Re-export functions
var (
	New           = breaker.New
	MustNew       = breaker.MustNew
	ParseOperator = breaker.ParseOperator
	ValuePtr      = breaker.ValuePtr

	Undefined = breaker.Undefined
	Bool      = breaker.Bool
	Number    = breaker.Number
	Int       = breaker.Int
	String    = breaker.String
	Record    = breaker.Record
	ValueOf   = breaker.ValueOf
)
