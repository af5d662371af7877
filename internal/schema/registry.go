package schema

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/billie-coop/propedit/internal/value"
)

// GroupID names a display group.
type GroupID string

const (
	GroupGeneral  GroupID = "general"
	GroupWorld    GroupID = "world"
	GroupNetwork  GroupID = "network"
	GroupSecurity GroupID = "security"

	// GroupNone is returned for keys that belong to no group.
	GroupNone GroupID = ""
)

// GroupDef is one display group and its keys in display order.
type GroupDef struct {
	ID    GroupID
	Label string
	Keys  []string
}

// Choice is one option of a closed-set selector.
type Choice struct {
	Value string
	Label string
}

// Range is an inclusive numeric bound.
type Range struct {
	Min int64
	Max int64
}

// Unbounded is the range reported for numeric keys without registered bounds.
var Unbounded = Range{Min: math.MinInt64, Max: math.MaxInt64}

// Contains reports whether n lies inside the range.
func (r Range) Contains(n int64) bool {
	return n >= r.Min && n <= r.Max
}

// DefaultEntry is one entry of the default property set.
type DefaultEntry struct {
	Key   string
	Value value.Value
}

// Tables is the raw declarative data a Registry is built from.
type Tables struct {
	Groups       []GroupDef
	Labels       map[string]string
	Choices      map[string][]Choice
	Bounds       map[string]Range
	Placeholders map[string]string
	Sensitive    map[string]bool
	Defaults     []DefaultEntry
}

// Registry answers schema lookups. It is immutable once built and safe for
// concurrent use.
type Registry struct {
	tables   Tables
	groupOf  map[string]GroupID
	groupIdx map[GroupID]int
	declared map[string]value.Shape
}

// New builds a registry from tables. A key listed in more than one group,
// or a group listed twice, is an error. The tables are copied, so later
// changes to t do not reach the registry.
func New(t Tables) (*Registry, error) {
	t = t.clone()
	r := &Registry{
		tables:   t,
		groupOf:  make(map[string]GroupID),
		groupIdx: make(map[GroupID]int, len(t.Groups)),
		declared: make(map[string]value.Shape, len(t.Defaults)),
	}

	for i, g := range t.Groups {
		if g.ID == GroupNone {
			return nil, fmt.Errorf("group %d has an empty id", i)
		}
		if _, dup := r.groupIdx[g.ID]; dup {
			return nil, fmt.Errorf("group %q declared twice", g.ID)
		}
		r.groupIdx[g.ID] = i
		for _, key := range g.Keys {
			if other, dup := r.groupOf[key]; dup {
				return nil, fmt.Errorf("key %q is in groups %q and %q", key, other, g.ID)
			}
			r.groupOf[key] = g.ID
		}
	}

	for key, choices := range t.Choices {
		if len(choices) == 0 {
			return nil, fmt.Errorf("key %q has an empty choice table", key)
		}
	}

	for key, b := range t.Bounds {
		if b.Min > b.Max {
			return nil, fmt.Errorf("key %q has min %d above max %d", key, b.Min, b.Max)
		}
	}

	for _, d := range t.Defaults {
		r.declared[d.Key] = d.Value.Shape()
	}

	return r, nil
}

func (t Tables) clone() Tables {
	out := Tables{
		Groups:       make([]GroupDef, len(t.Groups)),
		Labels:       maps.Clone(t.Labels),
		Choices:      make(map[string][]Choice, len(t.Choices)),
		Bounds:       maps.Clone(t.Bounds),
		Placeholders: maps.Clone(t.Placeholders),
		Sensitive:    maps.Clone(t.Sensitive),
		Defaults:     slices.Clone(t.Defaults),
	}
	for i, g := range t.Groups {
		g.Keys = slices.Clone(g.Keys)
		out.Groups[i] = g
	}
	for key, choices := range t.Choices {
		out.Choices[key] = slices.Clone(choices)
	}
	return out
}

// MustNew is New for tables known to be valid at compile time.
func MustNew(t Tables) *Registry {
	r, err := New(t)
	if err != nil {
		panic(err)
	}
	return r
}

var defaultRegistry = MustNew(DefaultTables())

// Default returns the registry for vanilla server.properties.
func Default() *Registry {
	return defaultRegistry
}

// GroupOf returns the group a key is displayed in. The second result is
// false for keys that are not part of the form.
func (r *Registry) GroupOf(key string) (GroupID, bool) {
	g, ok := r.groupOf[key]
	return g, ok
}

// Groups returns the group ids in display order.
func (r *Registry) Groups() []GroupID {
	ids := make([]GroupID, len(r.tables.Groups))
	for i, g := range r.tables.Groups {
		ids[i] = g.ID
	}
	return ids
}

// Keys returns the keys of a group in display order. Unknown groups have no keys.
func (r *Registry) Keys(group GroupID) []string {
	i, ok := r.groupIdx[group]
	if !ok {
		return nil
	}
	keys := r.tables.Groups[i].Keys
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// GroupLabel returns the display title of a group, falling back to its id.
func (r *Registry) GroupLabel(group GroupID) string {
	if i, ok := r.groupIdx[group]; ok && r.tables.Groups[i].Label != "" {
		return r.tables.Groups[i].Label
	}
	return string(group)
}

// Label returns the human label of a key, falling back to the key itself.
func (r *Registry) Label(key string) string {
	if l, ok := r.tables.Labels[key]; ok && l != "" {
		return l
	}
	return key
}

// Choices returns the allowed values of a selector key in display order.
// The second result is false when the key is not a selector.
func (r *Registry) Choices(key string) ([]Choice, bool) {
	c, ok := r.tables.Choices[key]
	if !ok {
		return nil, false
	}
	out := make([]Choice, len(c))
	copy(out, c)
	return out, true
}

// IsChoice reports whether a key is a closed-set selector.
func (r *Registry) IsChoice(key string) bool {
	_, ok := r.tables.Choices[key]
	return ok
}

// Bounds returns the numeric range of a key. Keys without registered bounds
// get Unbounded and false.
func (r *Registry) Bounds(key string) (Range, bool) {
	if b, ok := r.tables.Bounds[key]; ok {
		return b, true
	}
	return Unbounded, false
}

// Placeholder returns hint text for a key, or "".
func (r *Registry) Placeholder(key string) string {
	return r.tables.Placeholders[key]
}

// IsSensitive reports whether a key holds a credential.
func (r *Registry) IsSensitive(key string) bool {
	return r.tables.Sensitive[key]
}

// Declared returns the shape of a key's default value. The second result is
// false for keys without a default.
func (r *Registry) Declared(key string) (value.Shape, bool) {
	s, ok := r.declared[key]
	return s, ok
}

// Defaults returns the default property set in file order.
func (r *Registry) Defaults() []DefaultEntry {
	out := make([]DefaultEntry, len(r.tables.Defaults))
	copy(out, r.tables.Defaults)
	return out
}
