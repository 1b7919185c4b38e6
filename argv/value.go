package argv

import (
	"fmt"
	"math"
	"strconv"
)

// ValueType represents the dynamic type held by a Value
type ValueType int

const (
	// TypeNull is the type of the zero Value.
	TypeNull ValueType = iota
	// TypeInt holds a signed 64-bit integer.
	TypeInt
	// TypeDouble holds a float64.
	TypeDouble
	// TypeString holds a string.
	TypeString
)

// String returns the lower-case name of the type
func (t ValueType) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeInt:
		return "int"
	case TypeDouble:
		return "double"
	case TypeString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is an immutable tagged union of Null, Int, Double and String.
// The zero Value is Null.
type Value struct {
	typ ValueType
	i   int64
	d   float64
	s   string
}

// NullValue returns the Null value
func NullValue() Value { return Value{} }

// IntValue wraps an integer
func IntValue(i int64) Value { return Value{typ: TypeInt, i: i} }

// DoubleValue wraps a float64
func DoubleValue(d float64) Value { return Value{typ: TypeDouble, d: d} }

// StringValue wraps a string
func StringValue(s string) Value { return Value{typ: TypeString, s: s} }

// Type returns the dynamic type of the value
func (v Value) Type() ValueType { return v.typ }

// IsNull reports whether v is the Null value
func (v Value) IsNull() bool { return v.typ == TypeNull }

// Int converts v to an integer. Doubles are truncated and fail outside the
// int64 range, strings are parsed as decimal or 0x-prefixed hex. Null
// converts to 0.
func (v Value) Int() (int64, bool) {
	switch v.typ {
	case TypeInt:
		return v.i, true
	case TypeDouble:
		// 2^63 itself does not fit, so the upper bound is exclusive
		if math.IsNaN(v.d) || v.d < math.MinInt64 || v.d >= math.MaxInt64 {
			return 0, false
		}
		return int64(v.d), true
	case TypeString:
		i, err := parseInt(v.s)
		return i, err == nil
	default:
		return 0, true
	}
}

// Double converts v to a float64. Null converts to 0.
func (v Value) Double() (float64, bool) {
	switch v.typ {
	case TypeInt:
		return float64(v.i), true
	case TypeDouble:
		return v.d, true
	case TypeString:
		d, err := strconv.ParseFloat(v.s, 64)
		return d, err == nil
	default:
		return 0, true
	}
}

// String returns the textual form of v. Null renders as the empty string.
// Doubles use the shortest representation that round-trips.
func (v Value) String() string {
	switch v.typ {
	case TypeInt:
		return strconv.FormatInt(v.i, 10)
	case TypeDouble:
		return strconv.FormatFloat(v.d, 'g', -1, 64)
	case TypeString:
		return v.s
	default:
		return ""
	}
}

// GoString implements fmt.GoStringer for readable test failures
func (v Value) GoString() string {
	if v.typ == TypeString {
		return fmt.Sprintf("%s(%q)", v.typ, v.s)
	}
	return fmt.Sprintf("%s(%s)", v.typ, v.String())
}

// Equal reports whether v and other hold the same type and payload.
// NaN equals NaN so that equality stays total.
func (v Value) Equal(other Value) bool {
	if v.typ != other.typ {
		return false
	}
	switch v.typ {
	case TypeInt:
		return v.i == other.i
	case TypeDouble:
		if math.IsNaN(v.d) && math.IsNaN(other.d) {
			return true
		}
		return v.d == other.d
	case TypeString:
		return v.s == other.s
	default:
		return true
	}
}

// FromString parses s into a Value of the requested type. TypeNull keeps
// the text verbatim as a String unless s is empty, which yields Null.
func FromString(s string, typ ValueType) (Value, error) {
	switch typ {
	case TypeInt:
		i, err := parseInt(s)
		if err != nil {
			return Value{}, fmt.Errorf("not an integer: %q", s)
		}
		return IntValue(i), nil
	case TypeDouble:
		d, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Value{}, fmt.Errorf("not a number: %q", s)
		}
		return DoubleValue(d), nil
	case TypeString:
		return StringValue(s), nil
	case TypeNull:
		if s == "" {
			return NullValue(), nil
		}
		return StringValue(s), nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %d", typ)
	}
}

// parseInt accepts decimal and 0x-prefixed hexadecimal integers. A leading
// zero does not switch to octal.
func parseInt(s string) (int64, error) {
	digits, neg := s, false
	if len(digits) > 0 && (digits[0] == '-' || digits[0] == '+') {
		neg = digits[0] == '-'
		digits = digits[1:]
	}
	if len(digits) > 2 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		u, err := strconv.ParseUint(digits[2:], 16, 64)
		if err != nil {
			return 0, err
		}
		if neg {
			if u > 1<<63 {
				return 0, strconv.ErrRange
			}
			return -int64(u), nil
		}
		if u > math.MaxInt64 {
			return 0, strconv.ErrRange
		}
		return int64(u), nil
	}
	return strconv.ParseInt(s, 10, 64)
}
