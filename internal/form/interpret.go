package form

import (
	"strconv"
	"strings"

	"github.com/billie-coop/propedit/internal/value"
)

// Interpret converts raw input for a control into the value to store.
// Exactly one conversion applies per kind:
//
//   - boolean: a parsed boolean, false when the input is not one
//   - bounded integer: the leading integer of the input, 0 when there is none
//   - enum: the option string as given
//   - text and masked text: the input unchanged
//
// Bounds are not enforced here; out-of-range numbers are stored as typed.
func Interpret(spec ControlSpec, raw string) value.Value {
	switch spec.Kind {
	case KindBoolean:
		return value.Bool(ParseToggle(raw))
	case KindInteger:
		return value.Int(ParseLeadingInt(raw))
	default:
		return value.Text(raw)
	}
}

// ParseToggle accepts the usual spellings of on and off. Anything else is off.
func ParseToggle(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "on", "yes", "y", "1":
		return true
	default:
		return false
	}
}

// ParseLeadingInt reads an optionally signed run of digits from the start of
// raw, after leading whitespace, ignoring whatever follows. Input without
// leading digits, or whose digits overflow int64, yields 0.
func ParseLeadingInt(raw string) int64 {
	s := strings.TrimLeft(raw, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return n
}
