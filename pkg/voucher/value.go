package voucher

import (
	"fmt"
	"math"
	"strconv"
)

// Kind identifies the scalar type held by a Value.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindString
	KindNumber
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "empty"
	}
}

// Value is a tagged scalar stored in a voucher field.
// The zero Value is empty.
type Value struct {
	kind Kind
	s    string
	n    float64
	b    bool
}

func String(s string) Value { return Value{kind: KindString, s: s} }

// Number wraps n unchecked; voucher writes pass it through ValueOf, which
// rejects non-finite numbers.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

func Empty() Value { return Value{} }

// maxExactInt bounds the integers a float64 number holds without rounding.
const maxExactInt = 1 << 53

// ValueOf converts a Go scalar into a Value.
// Supported: nil, Value, string, bool, and every integer and float kind.
// Integers beyond ±2^53 and non-finite floats are rejected: numbers are
// stored as float64 and must read back exactly as written.
func ValueOf(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Empty(), nil
	case Value:
		if x.kind == KindNumber {
			return fromFloat(x.n)
		}
		return x, nil
	case string:
		return String(x), nil
	case bool:
		return Bool(x), nil
	case int:
		return fromInt(int64(x))
	case int8:
		return Number(float64(x)), nil
	case int16:
		return Number(float64(x)), nil
	case int32:
		return Number(float64(x)), nil
	case int64:
		return fromInt(x)
	case uint:
		return fromUint(uint64(x))
	case uint8:
		return Number(float64(x)), nil
	case uint16:
		return Number(float64(x)), nil
	case uint32:
		return Number(float64(x)), nil
	case uint64:
		return fromUint(x)
	case float32:
		return fromFloat(float64(x))
	case float64:
		return fromFloat(x)
	default:
		return Empty(), fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}

func fromInt(x int64) (Value, error) {
	if x > maxExactInt || x < -maxExactInt {
		return Empty(), fmt.Errorf("%w: integer %d exceeds float64 precision", ErrUnsupportedValue, x)
	}
	return Number(float64(x)), nil
}

func fromUint(x uint64) (Value, error) {
	if x > maxExactInt {
		return Empty(), fmt.Errorf("%w: integer %d exceeds float64 precision", ErrUnsupportedValue, x)
	}
	return Number(float64(x)), nil
}

func fromFloat(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Empty(), fmt.Errorf("%w: non-finite number %v", ErrUnsupportedValue, f)
	}
	return Number(f), nil
}

func (v Value) Kind() Kind { return v.kind }

// IsEmpty reports whether v carries no usable data: the empty kind or "".
func (v Value) IsEmpty() bool {
	return v.kind == KindEmpty || (v.kind == KindString && v.s == "")
}

// Equal compares kind and payload. All empty values are equal to each other.
func (v Value) Equal(other Value) bool {
	if v.IsEmpty() || other.IsEmpty() {
		return v.IsEmpty() && other.IsEmpty()
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.s == other.s
	case KindNumber:
		return v.n == other.n
	case KindBool:
		return v.b == other.b
	}
	return true
}

// String returns the canonical text form; empty values render as "".
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Any returns the native Go value: nil, string, float64 or bool.
func (v Value) Any() any {
	switch v.kind {
	case KindString:
		return v.s
	case KindNumber:
		return v.n
	case KindBool:
		return v.b
	default:
		return nil
	}
}

// Str returns the string payload and whether v holds a string.
func (v Value) Str() (string, bool) { return v.s, v.kind == KindString }

// Num returns the numeric payload and whether v holds a number.
func (v Value) Num() (float64, bool) { return v.n, v.kind == KindNumber }

// Truth returns the boolean payload and whether v holds a bool.
func (v Value) Truth() (bool, bool) { return v.b, v.kind == KindBool }
