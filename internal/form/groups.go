package form

import (
	"github.com/billie-coop/propedit/internal/schema"
	"github.com/billie-coop/propedit/internal/value"
)

// Values is read access to the working values.
type Values interface {
	Get(key string) (value.Value, bool)
}

// Group is one rendered display group.
type Group struct {
	ID       schema.GroupID
	Label    string
	Controls []ControlSpec
}

// GroupsInOrder derives every control of the form. Keys are included when
// they are both in a schema group and present in vals; groups keep schema
// order even when empty.
func GroupsInOrder(reg *schema.Registry, vals Values) []Group {
	ids := reg.Groups()
	groups := make([]Group, 0, len(ids))
	for _, id := range ids {
		g := Group{ID: id, Label: reg.GroupLabel(id)}
		for _, key := range reg.Keys(id) {
			v, ok := vals.Get(key)
			if !ok {
				continue
			}
			g.Controls = append(g.Controls, Derive(reg, key, v))
		}
		groups = append(groups, g)
	}
	return groups
}
