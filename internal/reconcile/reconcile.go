// Package reconcile prepares a working-set snapshot for persistence.
//
// Every value is coerced to the type its key is expected to hold: selector
// keys hold one of their option strings, keys declared numeric or boolean
// hold numbers or booleans, keys declared as text hold text. A value that
// can not be coerced is kept exactly as entered and reported as a warning;
// reconciliation itself never fails. Integers outside their registered
// bounds are never clamped. They are persisted as entered and reported.
package reconcile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/billie-coop/propedit/internal/form"
	"github.com/billie-coop/propedit/internal/schema"
	"github.com/billie-coop/propedit/internal/value"
	"github.com/billie-coop/propedit/internal/workset"
)

// Problem classifies a coercion failure.
type Problem string

const (
	NotAnInteger Problem = "not_an_integer"
	NotABoolean  Problem = "not_a_boolean"
	NotAChoice   Problem = "not_a_choice"
	OutOfRange   Problem = "out_of_range"
)

// CoercionError is a non-fatal, per-key reconciliation warning.
type CoercionError struct {
	Key       string
	Attempted value.Value
	Problem   Problem
	Reason    string
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("%s: %s (value %q)", e.Key, e.Reason, e.Attempted.String())
}

// Result is the outcome of Reconcile.
type Result struct {
	// Entries is the full coerced value set in snapshot order.
	Entries []workset.Entry
	// Warnings lists the keys that could not be fully coerced, in snapshot order.
	Warnings []*CoercionError
}

// Clean reports whether reconciliation produced no warnings.
func (r Result) Clean() bool {
	return len(r.Warnings) == 0
}

// Warning returns the warning for key, if any.
func (r Result) Warning(key string) (*CoercionError, bool) {
	for _, w := range r.Warnings {
		if w.Key == key {
			return w, true
		}
	}
	return nil, false
}

// Reconcile coerces every entry of snap. Keys the registry knows nothing
// about pass through untouched.
func Reconcile(reg *schema.Registry, snap workset.Snapshot) Result {
	entries := snap.Entries()
	res := Result{Entries: make([]workset.Entry, 0, len(entries))}
	for _, e := range entries {
		v, warn := coerce(reg, e.Key, e.Value)
		res.Entries = append(res.Entries, workset.Entry{Key: e.Key, Value: v})
		if warn != nil {
			res.Warnings = append(res.Warnings, warn)
		}
	}
	return res
}

func coerce(reg *schema.Registry, key string, v value.Value) (value.Value, *CoercionError) {
	if form.Classify(reg, key, v) == form.KindEnum {
		return coerceChoice(reg, key, v)
	}

	orig := v
	if declared, ok := reg.Declared(key); ok {
		var warn *CoercionError
		switch declared {
		case value.ShapeInt:
			v, warn = coerceInt(key, v)
		case value.ShapeBool:
			v, warn = coerceBool(key, v)
		case value.ShapeText:
			v = value.Text(v.String())
		}
		if warn != nil {
			return v, warn
		}
	}

	if n, ok := v.AsInt(); ok {
		if b, bounded := reg.Bounds(key); bounded && !b.Contains(n) {
			return v, &CoercionError{
				Key:       key,
				Attempted: orig,
				Problem:   OutOfRange,
				Reason:    fmt.Sprintf("outside the allowed range %d..%d", b.Min, b.Max),
			}
		}
	}
	return v, nil
}

func coerceChoice(reg *schema.Registry, key string, v value.Value) (value.Value, *CoercionError) {
	out := value.Text(v.String())
	choices, _ := reg.Choices(key)
	allowed := make([]string, len(choices))
	for i, c := range choices {
		if c.Value == out.String() {
			return out, nil
		}
		allowed[i] = c.Value
	}
	return out, &CoercionError{
		Key:       key,
		Attempted: v,
		Problem:   NotAChoice,
		Reason:    "must be one of " + strings.Join(allowed, ", "),
	}
}

func coerceInt(key string, v value.Value) (value.Value, *CoercionError) {
	if v.IsInt() {
		return v, nil
	}
	if s, ok := v.AsText(); ok {
		if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			return value.Int(n), nil
		}
	}
	return v, &CoercionError{Key: key, Attempted: v, Problem: NotAnInteger, Reason: "not a whole number"}
}

func coerceBool(key string, v value.Value) (value.Value, *CoercionError) {
	if v.IsBool() {
		return v, nil
	}
	if s, ok := v.AsText(); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true":
			return value.Bool(true), nil
		case "false":
			return value.Bool(false), nil
		}
	}
	return v, &CoercionError{Key: key, Attempted: v, Problem: NotABoolean, Reason: "not true or false"}
}
