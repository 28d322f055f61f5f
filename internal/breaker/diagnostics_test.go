package breaker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticsConfiguration(t *testing.T) {
	b, _ := newTestBreaker(t, Settings{
		Name:       "diag",
		Threshold:  4,
		Duration:   time.Minute,
		ClearAfter: 30 * time.Second,
		Boundary:   ValuePtr(Int(80)),
		Operator:   OperatorGreaterThan,
		Property:   "cpu",
	})

	d := b.Diagnostics()
	assert.Equal(t, "diag", d.Name)
	assert.Equal(t, StateClosed, d.State)
	assert.Equal(t, 4, d.Threshold)
	assert.Equal(t, time.Minute, d.Duration)
	assert.Equal(t, 30*time.Second, d.ClearAfter)
	assert.Equal(t, OperatorGreaterThan, d.Operator)
	assert.True(t, d.HasBoundary)
	assert.Equal(t, Int(80), d.Boundary)
	assert.Equal(t, "cpu", d.Property)
	assert.True(t, d.Windowed)
}

func TestDiagnosticsWillTripNext(t *testing.T) {
	t.Run("consecutive", func(t *testing.T) {
		b, _ := newTestBreaker(t, Settings{Threshold: 3})
		observeN(b, Bool(true), 1)
		assert.False(t, b.Diagnostics().WillTripNext)
		observeN(b, Bool(true), 1)
		assert.True(t, b.Diagnostics().WillTripNext)
	})

	t.Run("windowed ignores entries about to age out", func(t *testing.T) {
		b, clk := newTestBreaker(t, Settings{Threshold: 3, Duration: 5 * time.Second})
		observeN(b, Bool(true), 2)
		assert.True(t, b.Diagnostics().WillTripNext)

		clk.Advance(6 * time.Second)
		assert.False(t, b.Diagnostics().WillTripNext)
		assert.Len(t, b.Window(), 2, "diagnostics must not prune")
	})

	t.Run("threshold one", func(t *testing.T) {
		b, _ := newTestBreaker(t, Settings{})
		assert.True(t, b.Diagnostics().WillTripNext)
	})

	t.Run("false while open", func(t *testing.T) {
		b, _ := newTestBreaker(t, Settings{Threshold: 1})
		b.Observe(Bool(true))
		assert.False(t, b.Diagnostics().WillTripNext)
	})
}

func TestDiagnosticsTimeUntilClear(t *testing.T) {
	b, clk := newTestBreaker(t, Settings{Threshold: 1, ClearAfter: 10 * time.Second})
	rec := record(b, clk)

	assert.Zero(t, b.Diagnostics().TimeUntilClear)

	b.Observe(Bool(true))
	clk.Advance(4 * time.Second)

	d := b.Diagnostics()
	assert.Equal(t, StateOpen, d.State)
	assert.Equal(t, 6*time.Second, d.TimeUntilClear)
	assert.Zero(t, d.ClearsUntilClose)

	clk.Advance(6 * time.Second)
	rec.waitClear(t, time.Second)
	assert.Zero(t, b.Diagnostics().TimeUntilClear)
}

func TestDiagnosticsClearsUntilClose(t *testing.T) {
	b, _ := newTestBreaker(t, Settings{Threshold: 3})
	observeN(b, Bool(true), 3)
	require.True(t, b.IsBroken())

	assert.Equal(t, 3, b.Diagnostics().ClearsUntilClose)
	b.Observe(Bool(false))
	assert.Equal(t, 2, b.Diagnostics().ClearsUntilClose)
	b.Observe(Bool(false))
	assert.Equal(t, 1, b.Diagnostics().ClearsUntilClose)
	assert.Zero(t, b.Diagnostics().TimeUntilClear)
}
