package breaker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperatorString(t *testing.T) {
	assert.Equal(t, "", OperatorNone.String())
	assert.Equal(t, "=", OperatorEqual.String())
	assert.Equal(t, "<", OperatorLessThan.String())
	assert.Equal(t, ">", OperatorGreaterThan.String())
	assert.Equal(t, "unknown", Operator(99).String())
}

func TestParseOperator(t *testing.T) {
	tests := map[string]Operator{
		"":        OperatorNone,
		"=":       OperatorEqual,
		"==":      OperatorEqual,
		"EQ":      OperatorEqual,
		"equal":   OperatorEqual,
		"<":       OperatorLessThan,
		" lt ":    OperatorLessThan,
		"less":    OperatorLessThan,
		">":       OperatorGreaterThan,
		"gt":      OperatorGreaterThan,
		"Greater": OperatorGreaterThan,
	}
	for in, want := range tests {
		got, err := ParseOperator(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}

	_, err := ParseOperator(">=")
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestOperatorApply(t *testing.T) {
	tests := []struct {
		name string
		op   Operator
		a, b Value
		want bool
	}{
		{"eq numbers", OperatorEqual, Int(10), Number(10), true},
		{"eq numbers differ", OperatorEqual, Int(9), Int(10), false},
		{"eq strings", OperatorEqual, String("down"), String("down"), true},
		{"eq bools", OperatorEqual, Bool(false), Bool(false), true},
		{"eq mixed kinds", OperatorEqual, String("10"), Int(10), false},
		{"eq undefined", OperatorEqual, Undefined(), Undefined(), false},
		{"eq records", OperatorEqual, Record(nil), Record(nil), false},
		{"lt numbers", OperatorLessThan, Int(9), Int(10), true},
		{"lt equal", OperatorLessThan, Int(10), Int(10), false},
		{"lt strings", OperatorLessThan, String("a"), String("b"), true},
		{"lt undefined", OperatorLessThan, Undefined(), Int(10), false},
		{"lt bools", OperatorLessThan, Bool(false), Bool(true), false},
		{"gt numbers", OperatorGreaterThan, Int(11), Int(10), true},
		{"gt equal", OperatorGreaterThan, Int(10), Int(10), false},
		{"gt strings", OperatorGreaterThan, String("b"), String("a"), true},
		{"gt mixed kinds", OperatorGreaterThan, String("11"), Int(10), false},
		{"none", OperatorNone, Int(1), Int(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.op.Apply(tt.a, tt.b))
		})
	}
}
