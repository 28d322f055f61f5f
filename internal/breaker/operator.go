package breaker

import "strings"

// Operator is the comparison applied between an observation and the boundary.
type Operator uint8

const (
	// OperatorNone means no operator was configured.
	OperatorNone Operator = iota

	// OperatorEqual: comparand == boundary.
	OperatorEqual

	// OperatorLessThan: comparand < boundary.
	OperatorLessThan

	// OperatorGreaterThan: comparand > boundary.
	OperatorGreaterThan
)

// String returns "=", "<", ">" or "" for OperatorNone.
func (o Operator) String() string {
	switch o {
	case OperatorNone:
		return ""
	case OperatorEqual:
		return "="
	case OperatorLessThan:
		return "<"
	case OperatorGreaterThan:
		return ">"
	default:
		return stateUnknownStr
	}
}

func (o Operator) valid() bool {
	return o <= OperatorGreaterThan
}

// ParseOperator parses an operator name. An empty string yields OperatorNone.
func ParseOperator(s string) (Operator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return OperatorNone, nil
	case "=", "==", "eq", "equal":
		return OperatorEqual, nil
	case "<", "lt", "less":
		return OperatorLessThan, nil
	case ">", "gt", "greater":
		return OperatorGreaterThan, nil
	default:
		return OperatorNone, newConfigurationError("operator", "unknown operator %q", s)
	}
}

// Apply reports whether a <op> b holds.
//
// Ordering is defined only between two numbers or two strings; every other
// pairing, including an undefined comparand, is false. Equality requires the
// same scalar kind; records are never equal.
func (o Operator) Apply(a, b Value) bool {
	switch o {
	case OperatorEqual:
		if a.kind != b.kind {
			return false
		}
		switch a.kind {
		case KindBool:
			return a.b == b.b
		case KindNumber:
			return a.n == b.n
		case KindString:
			return a.s == b.s
		default:
			return false
		}
	case OperatorLessThan:
		return compare(a, b) < 0
	case OperatorGreaterThan:
		return compare(a, b) > 0
	default:
		return false
	}
}

// compare returns -1, 0 or 1 for ordered pairs and 0 for unordered ones.
func compare(a, b Value) int {
	switch {
	case a.kind == KindNumber && b.kind == KindNumber:
		switch {
		case a.n < b.n:
			return -1
		case a.n > b.n:
			return 1
		}
	case a.kind == KindString && b.kind == KindString:
		return strings.Compare(a.s, b.s)
	}
	return 0
}
