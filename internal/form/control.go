package form

import (
	"github.com/billie-coop/propedit/internal/schema"
	"github.com/billie-coop/propedit/internal/value"
)

// Option is one selectable value of an enum control.
type Option struct {
	Value  string
	Label  string
	Active bool
}

// ControlSpec is everything needed to draw one control and to turn an edit
// on it back into a value. It is rebuilt from the working set whenever it is
// needed and never cached.
type ControlSpec struct {
	Key         string
	Kind        Kind
	Label       string
	Placeholder string
	Value       value.Value

	// Integer constraints. Min and Max span all of int64 when Bounded is false.
	Min     int64
	Max     int64
	Bounded bool

	// Enum options in schema order. At most one is Active.
	Options []Option
}

// Derive builds the control for key holding v.
func Derive(reg *schema.Registry, key string, v value.Value) ControlSpec {
	spec := ControlSpec{
		Key:         key,
		Kind:        Classify(reg, key, v),
		Label:       reg.Label(key),
		Placeholder: reg.Placeholder(key),
		Value:       v,
		Min:         schema.Unbounded.Min,
		Max:         schema.Unbounded.Max,
	}

	switch spec.Kind {
	case KindInteger:
		b, ok := reg.Bounds(key)
		spec.Min, spec.Max, spec.Bounded = b.Min, b.Max, ok
	case KindEnum:
		choices, _ := reg.Choices(key)
		current := v.String()
		spec.Options = make([]Option, len(choices))
		for i, c := range choices {
			spec.Options[i] = Option{
				Value:  c.Value,
				Label:  c.Label,
				Active: c.Value == current,
			}
		}
	}

	return spec
}

// ActiveOption returns the selected enum option, if any.
func (c ControlSpec) ActiveOption() (Option, bool) {
	for _, o := range c.Options {
		if o.Active {
			return o, true
		}
	}
	return Option{}, false
}

// ActiveIndex returns the index of the selected option or -1.
func (c ControlSpec) ActiveIndex() int {
	for i, o := range c.Options {
		if o.Active {
			return i
		}
	}
	return -1
}

// InRange reports whether an integer control's value lies within its bounds.
// Non-integer controls are always in range.
func (c ControlSpec) InRange() bool {
	n, ok := c.Value.AsInt()
	if !ok || c.Kind != KindInteger {
		return true
	}
	return n >= c.Min && n <= c.Max
}
