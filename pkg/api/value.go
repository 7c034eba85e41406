package api

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

type (
	// ValueKind identifies which variant a Value holds
	ValueKind uint8

	// Value is the scalar produced and consumed by blocks. The zero Value is
	// the empty string, which is numerically 0 and boolean false
	Value struct {
		str  string
		num  float64
		kind ValueKind
		b    bool
	}
)

const (
	KindString ValueKind = iota
	KindNumber
	KindBool
)

// Str creates a string Value
func Str(s string) Value {
	return Value{kind: KindString, str: s}
}

// Num creates a numeric Value
func Num(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Int creates a numeric Value from an integer
func Int(i int) Value {
	return Num(float64(i))
}

// Bool creates a boolean Value
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Kind returns the variant held by the Value
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsNumeric reports whether the Value takes part in numeric arithmetic and
// comparison. Strings qualify when they parse as a number
func (v Value) IsNumeric() bool {
	switch v.kind {
	case KindNumber, KindBool:
		return true
	default:
		_, ok := parseNumber(v.str)
		return ok
	}
}

// AsNumber coerces the Value to a float64. Unparsable strings and NaN
// become 0
func (v Value) AsNumber() float64 {
	switch v.kind {
	case KindNumber:
		if math.IsNaN(v.num) {
			return 0
		}
		return v.num
	case KindBool:
		if v.b {
			return 1
		}
		return 0
	default:
		if f, ok := parseNumber(v.str); ok {
			return f
		}
		return 0
	}
}

// AsInt truncates the numeric form of the Value toward zero
func (v Value) AsInt() int {
	f := v.AsNumber()
	if math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}

// AsString renders the Value the way it is displayed to a user
func (v Value) AsString() string {
	switch v.kind {
	case KindNumber:
		return formatNumber(v.num)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return v.str
	}
}

// AsBool coerces the Value to a boolean
func (v Value) AsBool() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.num != 0 && !math.IsNaN(v.num)
	default:
		switch strings.ToLower(v.str) {
		case "", "0", "false":
			return false
		}
		return true
	}
}

// Interface returns the Value as a plain Go value suitable for encoding.
// Non-finite numbers are rendered as strings
func (v Value) Interface() any {
	switch v.kind {
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return formatNumber(v.num)
		}
		return v.num
	case KindBool:
		return v.b
	default:
		return v.str
	}
}

// String implements fmt.Stringer
func (v Value) String() string {
	return v.AsString()
}

// Equal reports whether two Values compare as equal
func (v Value) Equal(o Value) bool {
	return Compare(v, o) == 0
}

// Add sums two numeric Values, or concatenates their string forms when
// either operand is not numeric
func (v Value) Add(o Value) Value {
	if v.IsNumeric() && o.IsNumeric() {
		return Num(v.AsNumber() + o.AsNumber())
	}
	return Str(v.AsString() + o.AsString())
}

// Subtract returns the numeric difference of two Values
func (v Value) Subtract(o Value) Value {
	return Num(v.AsNumber() - o.AsNumber())
}

// Multiply returns the numeric product of two Values
func (v Value) Multiply(o Value) Value {
	return Num(v.AsNumber() * o.AsNumber())
}

// Divide returns the numeric quotient of two Values
func (v Value) Divide(o Value) Value {
	return Num(v.AsNumber() / o.AsNumber())
}

// Mod returns the floored modulus, which takes the sign of the divisor
func (v Value) Mod(o Value) Value {
	x, y := v.AsNumber(), o.AsNumber()
	r := math.Mod(x, y)
	if r != 0 && (r < 0) != (y < 0) {
		r += y
	}
	return Num(r)
}

// Compare orders two Values, numerically when both are numeric and by
// case-insensitive string comparison otherwise
func Compare(a, b Value) int {
	if a.IsNumeric() && b.IsNumeric() {
		x, y := a.AsNumber(), b.AsNumber()
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(
		strings.ToLower(a.AsString()), strings.ToLower(b.AsString()),
	)
}

// ParseNumber parses a string the way numeric inputs are read
func ParseNumber(s string) (float64, bool) {
	return parseNumber(s)
}

func parseNumber(s string) (float64, bool) {
	t := strings.TrimSpace(s)
	switch t {
	case "":
		return 0, false
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}
	lower := strings.ToLower(t)
	if strings.Contains(lower, "inf") || strings.Contains(lower, "nan") ||
		strings.Contains(t, "_") {
		return 0, false
	}
	if base, ok := radixPrefix(lower); ok {
		n, err := strconv.ParseUint(lower[2:], base, 64)
		if err != nil {
			return 0, false
		}
		return float64(n), true
	}
	if strings.Contains(lower, "0x") {
		return 0, false
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

// radixPrefix recognizes unsigned 0x, 0o and 0b integer literals
func radixPrefix(s string) (int, bool) {
	if len(s) < 3 || s[0] != '0' {
		return 0, false
	}
	switch s[1] {
	case 'x':
		return 16, true
	case 'o':
		return 8, true
	case 'b':
		return 2, true
	default:
		return 0, false
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
