// Package value holds the runtime shapes a property value can take.
//
// A server.properties file only stores strings, but the editor treats each
// value as one of three shapes: a boolean, a whole number or free text.
// The shape is what the form engine classifies on; the semantic control
// kind (toggle, bounded number, enum choice, masked text) is derived from
// the shape together with the schema and is never stored here.
package value

import (
	"strconv"
	"strings"
)

// Shape identifies the runtime shape of a Value.
type Shape int

const (
	// ShapeText is free text. The zero Value is empty text.
	ShapeText Shape = iota
	ShapeBool
	ShapeInt
)

// String returns the shape name used in logs and warnings.
func (s Shape) String() string {
	switch s {
	case ShapeBool:
		return "boolean"
	case ShapeInt:
		return "integer"
	default:
		return "text"
	}
}

// Value is an immutable property value. Compare values with ==.
type Value struct {
	shape Shape
	b     bool
	n     int64
	s     string
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{shape: ShapeBool, b: b}
}

// Int returns an integer value.
func Int(n int64) Value {
	return Value{shape: ShapeInt, n: n}
}

// Text returns a text value.
func Text(s string) Value {
	return Value{shape: ShapeText, s: s}
}

// Parse infers the shape of a raw string the way server.properties values
// are read: "true"/"false" in any case become booleans, an optionally signed
// run of digits becomes an integer, anything else stays text. Digit runs
// that overflow int64 stay text.
func Parse(raw string) Value {
	switch strings.ToLower(raw) {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	if isInteger(raw) {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return Int(n)
		}
	}
	return Text(raw)
}

func isInteger(s string) bool {
	if strings.HasPrefix(s, "-") {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Shape returns the runtime shape.
func (v Value) Shape() Shape {
	return v.shape
}

// IsBool reports whether v holds a boolean.
func (v Value) IsBool() bool { return v.shape == ShapeBool }

// IsInt reports whether v holds an integer.
func (v Value) IsInt() bool { return v.shape == ShapeInt }

// IsText reports whether v holds text.
func (v Value) IsText() bool { return v.shape == ShapeText }

// AsBool returns the boolean and whether v is a boolean.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.shape == ShapeBool
}

// AsInt returns the integer and whether v is an integer.
func (v Value) AsInt() (int64, bool) {
	return v.n, v.shape == ShapeInt
}

// AsText returns the text and whether v is text.
func (v Value) AsText() (string, bool) {
	return v.s, v.shape == ShapeText
}

// String renders the value in its on-disk form. Booleans are lowercase.
func (v Value) String() string {
	switch v.shape {
	case ShapeBool:
		return strconv.FormatBool(v.b)
	case ShapeInt:
		return strconv.FormatInt(v.n, 10)
	default:
		return v.s
	}
}

// GoString makes test failure output readable.
func (v Value) GoString() string {
	switch v.shape {
	case ShapeBool:
		return "value.Bool(" + strconv.FormatBool(v.b) + ")"
	case ShapeInt:
		return "value.Int(" + strconv.FormatInt(v.n, 10) + ")"
	default:
		return "value.Text(" + strconv.Quote(v.s) + ")"
	}
}
