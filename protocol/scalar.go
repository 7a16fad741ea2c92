package protocol

import (
	"strconv"
	"strings"
)

// ScalarKind tags the concrete type held by a Scalar.
type ScalarKind int

const (
	// ScalarString holds an untyped string value.
	ScalarString ScalarKind = iota
	// ScalarInt holds a signed integer value.
	ScalarInt
	// ScalarFloat holds a floating point value.
	ScalarFloat
	// ScalarBool holds a boolean value.
	ScalarBool
)

// Scalar is one option value: a tagged union over the value types an
// Envy option can carry. The zero value is the empty string.
//
// Scalars are comparable with ==, which the state reducer and the
// adapter rely on for change detection.
type Scalar struct {
	kind ScalarKind
	str  string
	num  int64
	flt  float64
	flag bool
}

// String builds a string scalar.
func String(v string) Scalar { return Scalar{kind: ScalarString, str: v} }

// Int builds an integer scalar.
func Int(v int64) Scalar { return Scalar{kind: ScalarInt, num: v} }

// Float builds a float scalar.
func Float(v float64) Scalar { return Scalar{kind: ScalarFloat, flt: v} }

// Bool builds a boolean scalar.
func Bool(v bool) Scalar { return Scalar{kind: ScalarBool, flag: v} }

// Kind reports the concrete type of the scalar.
func (s Scalar) Kind() ScalarKind { return s.kind }

// StringValue returns the string payload; ok is false for other kinds.
func (s Scalar) StringValue() (string, bool) { return s.str, s.kind == ScalarString }

// IntValue returns the integer payload; ok is false for other kinds.
func (s Scalar) IntValue() (int64, bool) { return s.num, s.kind == ScalarInt }

// FloatValue returns the float payload; ok is false for other kinds.
func (s Scalar) FloatValue() (float64, bool) { return s.flt, s.kind == ScalarFloat }

// BoolValue returns the boolean payload; ok is false for other kinds.
func (s Scalar) BoolValue() (bool, bool) { return s.flag, s.kind == ScalarBool }

// Render returns the wire representation used when encoding commands.
// Booleans render as YES/NO, the form the device accepts and emits.
func (s Scalar) Render() string {
	switch s.kind {
	case ScalarInt:
		return strconv.FormatInt(s.num, 10)
	case ScalarFloat:
		return strconv.FormatFloat(s.flt, 'f', -1, 64)
	case ScalarBool:
		if s.flag {
			return "YES"
		}
		return "NO"
	default:
		return s.str
	}
}

// String implements fmt.Stringer; identical to Render.
func (s Scalar) String() string { return s.Render() }

// parseScalar decodes one value token according to the option type
// token that precedes it on the wire. Values that do not parse as the
// declared type fall back to the raw string rather than failing.
func parseScalar(optionType, token string) Scalar {
	raw := unquote(token)

	switch strings.ToUpper(optionType) {
	case "INTEGER", "INT":
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return Int(v)
		}
	case "FLOAT", "DOUBLE":
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return Float(v)
		}
	case "BOOLEAN", "BOOL":
		switch strings.ToUpper(raw) {
		case "YES", "TRUE", "ON":
			return Bool(true)
		case "NO", "FALSE", "OFF":
			return Bool(false)
		}
	}

	return String(raw)
}
