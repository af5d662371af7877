package form

import (
	"github.com/billie-coop/propedit/internal/schema"
	"github.com/billie-coop/propedit/internal/value"
)

// Kind is the control kind of a key.
type Kind int

const (
	KindText Kind = iota
	KindBoolean
	KindInteger
	KindEnum
	KindMasked
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindInteger:
		return "bounded-integer"
	case KindEnum:
		return "enum-choice"
	case KindMasked:
		return "masked-text"
	default:
		return "plain-text"
	}
}

// Classify returns the control kind for key holding v. The first matching
// rule wins:
//
//  1. a registered selector is an enum, whatever v holds
//  2. a boolean value is a toggle
//  3. an integer value is a bounded integer
//  4. a sensitive key is masked text
//  5. anything else is plain text
//
// Enum goes first so a key can become a selector without its stored values
// changing shape.
func Classify(reg *schema.Registry, key string, v value.Value) Kind {
	switch {
	case reg.IsChoice(key):
		return KindEnum
	case v.IsBool():
		return KindBoolean
	case v.IsInt():
		return KindInteger
	case reg.IsSensitive(key):
		return KindMasked
	default:
		return KindText
	}
}
