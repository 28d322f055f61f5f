package breaker

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies which variant of Value is populated.
type Kind uint8

const (
	// KindUndefined is the zero Value: nothing was observed.
	KindUndefined Kind = iota
	KindBool
	KindNumber
	KindString
	KindRecord
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindRecord:
		return "record"
	default:
		return stateUnknownStr
	}
}

// Value is an observation: either a raw scalar or a record with named fields.
//
// The zero Value is undefined. Values are immutable once built; Record copies
// the field map it is given.
type Value struct {
	kind   Kind
	b      bool
	n      float64
	s      string
	fields map[string]Value
}

// Undefined returns the undefined Value.
func Undefined() Value { return Value{} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric Value.
func Number(f float64) Value { return Value{kind: KindNumber, n: f} }

// Int returns a numeric Value from an integer.
func Int(i int64) Value { return Value{kind: KindNumber, n: float64(i)} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Record returns a record Value with a copy of fields.
func Record(fields map[string]Value) Value {
	cp := make(map[string]Value, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	return Value{kind: KindRecord, fields: cp}
}

// ValueOf converts a plain Go value into a Value.
//
// Supported: nil, bool, all integer and float types, string, map[string]any,
// map[string]Value and Value. Anything else becomes Undefined.
func ValueOf(x any) Value {
	switch v := x.(type) {
	case nil:
		return Undefined()
	case Value:
		return v
	case *Value:
		if v == nil {
			return Undefined()
		}
		return *v
	case bool:
		return Bool(v)
	case int:
		return Int(int64(v))
	case int8:
		return Int(int64(v))
	case int16:
		return Int(int64(v))
	case int32:
		return Int(int64(v))
	case int64:
		return Int(v)
	case uint:
		return Number(float64(v))
	case uint8:
		return Number(float64(v))
	case uint16:
		return Number(float64(v))
	case uint32:
		return Number(float64(v))
	case uint64:
		return Number(float64(v))
	case float32:
		return Number(float64(v))
	case float64:
		return Number(v)
	case string:
		return String(v)
	case map[string]Value:
		return Record(v)
	case map[string]any:
		fields := make(map[string]Value, len(v))
		for k, fv := range v {
			fields[k] = ValueOf(fv)
		}
		return Value{kind: KindRecord, fields: fields}
	default:
		return Undefined()
	}
}

// Kind returns the variant of v.
func (v Value) Kind() Kind { return v.kind }

// IsDefined reports whether v holds anything.
func (v Value) IsDefined() bool { return v.kind != KindUndefined }

// Field returns the named field of a record. ok is false for non-records and
// missing keys.
func (v Value) Field(key string) (Value, bool) {
	if v.kind != KindRecord {
		return Value{}, false
	}
	f, ok := v.fields[key]
	return f, ok
}

// Truthy reports whether v counts as a violation when no boundary is configured.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n != 0 && !math.IsNaN(v.n)
	case KindString:
		return v.s != ""
	case KindRecord:
		return true
	default:
		return false
	}
}

// AsBool returns the boolean payload.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsNumber returns the numeric payload.
func (v Value) AsNumber() (float64, bool) { return v.n, v.kind == KindNumber }

// AsString returns the string payload.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// String renders v for logs.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return strconv.FormatFloat(v.n, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.s)
	case KindRecord:
		keys := make([]string, 0, len(v.fields))
		for k := range v.fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var sb strings.Builder
		sb.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(k)
			sb.WriteString(": ")
			sb.WriteString(v.fields[k].String())
		}
		sb.WriteByte('}')
		return sb.String()
	default:
		return "undefined"
	}
}

// comparand resolves the value compared against the boundary: the named field
// of a record when present, otherwise v itself.
func comparand(v Value, key string) Value {
	if key == "" {
		return v
	}
	if f, ok := v.Field(key); ok {
		return f
	}
	return v
}
