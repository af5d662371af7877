package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billie-coop/propedit/internal/value"
)

func TestDefault_EveryGroupedKeyHasOneGroup(t *testing.T) {
	r := Default()

	seen := make(map[string]GroupID)
	for _, g := range r.Groups() {
		for _, key := range r.Keys(g) {
			prev, dup := seen[key]
			require.False(t, dup, "key %q in %q and %q", key, prev, g)
			seen[key] = g

			got, ok := r.GroupOf(key)
			assert.True(t, ok)
			assert.Equal(t, g, got)
		}
	}
}

func TestDefault_GroupOrder(t *testing.T) {
	r := Default()
	assert.Equal(t, []GroupID{GroupGeneral, GroupWorld, GroupNetwork, GroupSecurity}, r.Groups())
	assert.Equal(t, "General", r.GroupLabel(GroupGeneral))
	assert.Equal(t, "mystery", r.GroupLabel("mystery"))
}

func TestDefault_GroupedKeysHaveDefaultsAndLabels(t *testing.T) {
	r := Default()
	for _, g := range r.Groups() {
		for _, key := range r.Keys(g) {
			_, ok := r.Declared(key)
			assert.True(t, ok, "no default for %q", key)
			assert.NotEqual(t, key, r.Label(key), "no label for %q", key)
		}
	}
}

func TestDefault_ChoiceDefaultsAreAllowed(t *testing.T) {
	r := Default()
	for _, d := range r.Defaults() {
		choices, ok := r.Choices(d.Key)
		if !ok {
			continue
		}
		found := false
		for _, c := range choices {
			if c.Value == d.Value.String() {
				found = true
			}
		}
		assert.True(t, found, "default %q for %q is not a choice", d.Value, d.Key)
	}
}

func TestDefault_BoundedDefaultsAreInRange(t *testing.T) {
	r := Default()
	for _, d := range r.Defaults() {
		b, ok := r.Bounds(d.Key)
		if !ok {
			continue
		}
		n, isInt := d.Value.AsInt()
		require.True(t, isInt, "bounded key %q has non-integer default", d.Key)
		assert.True(t, b.Contains(n), "default %d for %q outside %v", n, d.Key, b)
	}
}

func TestRegistry_Fallbacks(t *testing.T) {
	r := Default()

	assert.Equal(t, "nonexistent-key", r.Label("nonexistent-key"))

	g, ok := r.GroupOf("sync-chunk-writes")
	assert.False(t, ok)
	assert.Equal(t, GroupNone, g)

	b, ok := r.Bounds("motd")
	assert.False(t, ok)
	assert.Equal(t, Unbounded, b)

	_, ok = r.Choices("motd")
	assert.False(t, ok)

	assert.Empty(t, r.Placeholder("pvp"))
	assert.Nil(t, r.Keys("mystery"))
}

func TestRegistry_Lookups(t *testing.T) {
	r := Default()

	choices, ok := r.Choices("level-type")
	require.True(t, ok)
	require.Len(t, choices, 4)
	assert.Equal(t, "minecraft:normal", choices[0].Value)
	assert.Equal(t, "minecraft:amplified", choices[3].Value)

	b, ok := r.Bounds("max-players")
	assert.True(t, ok)
	assert.Equal(t, Range{Min: 1, Max: 1000}, b)

	assert.True(t, r.IsSensitive("rcon.password"))
	assert.False(t, r.IsSensitive("motd"))

	s, ok := r.Declared("max-players")
	assert.True(t, ok)
	assert.Equal(t, value.ShapeInt, s)
}

func TestRegistry_ReturnsCopies(t *testing.T) {
	r := Default()

	keys := r.Keys(GroupGeneral)
	keys[0] = "tampered"
	assert.Equal(t, "motd", r.Keys(GroupGeneral)[0])

	choices, _ := r.Choices("difficulty")
	choices[0].Value = "tampered"
	again, _ := r.Choices("difficulty")
	assert.Equal(t, "peaceful", again[0].Value)
}

func TestNew_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		tables Tables
	}{
		{
			name: "key_in_two_groups",
			tables: Tables{Groups: []GroupDef{
				{ID: "a", Keys: []string{"x"}},
				{ID: "b", Keys: []string{"x"}},
			}},
		},
		{
			name:   "duplicate_group",
			tables: Tables{Groups: []GroupDef{{ID: "a"}, {ID: "a"}}},
		},
		{
			name:   "empty_group_id",
			tables: Tables{Groups: []GroupDef{{ID: ""}}},
		},
		{
			name:   "empty_choices",
			tables: Tables{Choices: map[string][]Choice{"x": {}}},
		},
		{
			name:   "inverted_bounds",
			tables: Tables{Bounds: map[string]Range{"x": {Min: 5, Max: 1}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.tables)
			assert.Error(t, err)
		})
	}
}

func TestNew_DataOnlyExtension(t *testing.T) {
	tables := DefaultTables()
	tables.Groups[0].Keys = append(tables.Groups[0].Keys, "custom-key")
	tables.Labels["custom-key"] = "Custom"
	tables.Bounds["custom-key"] = Range{Min: 0, Max: 9}

	r, err := New(tables)
	require.NoError(t, err)

	g, ok := r.GroupOf("custom-key")
	assert.True(t, ok)
	assert.Equal(t, GroupGeneral, g)
	assert.Equal(t, "Custom", r.Label("custom-key"))

	// The shared default registry is untouched.
	_, ok = Default().GroupOf("custom-key")
	assert.False(t, ok)
}

func TestNew_CopiesTables(t *testing.T) {
	tables := DefaultTables()
	r, err := New(tables)
	require.NoError(t, err)

	tables.Labels["motd"] = "Changed"
	tables.Bounds["max-players"] = Range{Min: 0, Max: 1}
	tables.Choices["difficulty"][0] = Choice{Value: "changed", Label: "Changed"}
	tables.Groups[0].Keys[0] = "changed"
	tables.Sensitive["motd"] = true
	tables.Defaults[0].Key = "changed"

	assert.Equal(t, "Server description", r.Label("motd"))
	b, _ := r.Bounds("max-players")
	assert.Equal(t, Range{Min: 1, Max: 1000}, b)
	choices, _ := r.Choices("difficulty")
	assert.Equal(t, "peaceful", choices[0].Value)
	g, ok := r.GroupOf("motd")
	assert.True(t, ok)
	assert.Equal(t, GroupGeneral, g)
	assert.False(t, r.IsSensitive("motd"))
	assert.NotEqual(t, "changed", r.Defaults()[0].Key)
}
