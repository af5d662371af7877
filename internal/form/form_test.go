package form

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billie-coop/propedit/internal/schema"
	"github.com/billie-coop/propedit/internal/value"
)

type mapValues map[string]value.Value

func (m mapValues) Get(key string) (value.Value, bool) {
	v, ok := m[key]
	return v, ok
}

func TestClassify(t *testing.T) {
	reg := schema.Default()

	tests := []struct {
		name string
		key  string
		v    value.Value
		want Kind
	}{
		{name: "enum_text", key: "level-type", v: value.Text("minecraft:flat"), want: KindEnum},
		{name: "enum_holding_int", key: "difficulty", v: value.Int(2), want: KindEnum},
		{name: "enum_holding_bool", key: "gamemode", v: value.Bool(true), want: KindEnum},
		{name: "bool", key: "pvp", v: value.Bool(false), want: KindBoolean},
		{name: "int", key: "max-players", v: value.Int(20), want: KindInteger},
		{name: "unbounded_int", key: "rate-limit", v: value.Int(0), want: KindInteger},
		{name: "sensitive", key: "rcon.password", v: value.Text(""), want: KindMasked},
		{name: "sensitive_numeric_password", key: "rcon.password", v: value.Int(1234), want: KindInteger},
		{name: "text", key: "motd", v: value.Text("hi"), want: KindText},
		{name: "unknown_key", key: "nonexistent-key", v: value.Text("x"), want: KindText},
		{name: "int_fell_back_to_text", key: "max-players", v: value.Text("lots"), want: KindText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(reg, tt.key, tt.v))
		})
	}
}

func TestClassify_EnumAlwaysWins(t *testing.T) {
	reg := schema.Default()
	shapes := []value.Value{value.Text("x"), value.Int(0), value.Bool(true), value.Text("")}
	for _, id := range reg.Groups() {
		for _, key := range reg.Keys(id) {
			if !reg.IsChoice(key) {
				continue
			}
			for _, v := range shapes {
				assert.Equal(t, KindEnum, Classify(reg, key, v), "%s=%#v", key, v)
			}
		}
	}
}

func TestDerive_EnumMarksActive(t *testing.T) {
	spec := Derive(schema.Default(), "level-type", value.Text("minecraft:flat"))

	assert.Equal(t, KindEnum, spec.Kind)
	assert.Equal(t, "World type", spec.Label)
	require.Len(t, spec.Options, 4)

	var active []string
	for _, o := range spec.Options {
		if o.Active {
			active = append(active, o.Value)
		}
	}
	assert.Equal(t, []string{"minecraft:flat"}, active)
	assert.Equal(t, 1, spec.ActiveIndex())

	opt, ok := spec.ActiveOption()
	assert.True(t, ok)
	assert.Equal(t, "Flat", opt.Label)
}

func TestDerive_EnumWithUnknownValueHasNoActive(t *testing.T) {
	spec := Derive(schema.Default(), "difficulty", value.Text("nightmare"))

	require.Len(t, spec.Options, 4)
	for _, o := range spec.Options {
		assert.False(t, o.Active)
	}
	_, ok := spec.ActiveOption()
	assert.False(t, ok)
	assert.Equal(t, -1, spec.ActiveIndex())
}

func TestDerive_EnumHoldingNumber(t *testing.T) {
	tables := schema.DefaultTables()
	tables.Choices["view-distance"] = []schema.Choice{
		{Value: "8", Label: "Short"},
		{Value: "12", Label: "Far"},
	}
	reg := schema.MustNew(tables)

	spec := Derive(reg, "view-distance", value.Int(12))
	assert.Equal(t, KindEnum, spec.Kind)
	assert.Equal(t, 1, spec.ActiveIndex())
}

func TestDerive_Integer(t *testing.T) {
	reg := schema.Default()

	spec := Derive(reg, "max-players", value.Int(5000))
	assert.Equal(t, KindInteger, spec.Kind)
	assert.True(t, spec.Bounded)
	assert.EqualValues(t, 1, spec.Min)
	assert.EqualValues(t, 1000, spec.Max)
	assert.False(t, spec.InRange())

	spec = Derive(reg, "rate-limit", value.Int(3))
	assert.False(t, spec.Bounded)
	assert.Equal(t, int64(math.MinInt64), spec.Min)
	assert.Equal(t, int64(math.MaxInt64), spec.Max)
	assert.True(t, spec.InRange())
	assert.Equal(t, "rate-limit", spec.Label)
}

func TestDerive_Text(t *testing.T) {
	reg := schema.Default()

	spec := Derive(reg, "rcon.password", value.Text("secret1"))
	assert.Equal(t, KindMasked, spec.Kind)
	assert.Equal(t, "Password for RCON access", spec.Placeholder)
	assert.Equal(t, value.Text("secret1"), spec.Value)
	assert.Nil(t, spec.Options)

	spec = Derive(reg, "motd", value.Text("hello"))
	assert.Equal(t, KindText, spec.Kind)
	assert.True(t, spec.InRange())
}

func TestDerive_IsPure(t *testing.T) {
	reg := schema.Default()
	a := Derive(reg, "gamemode", value.Text("creative"))
	b := Derive(reg, "gamemode", value.Text("creative"))
	assert.Equal(t, a, b)
}

func TestGroupsInOrder(t *testing.T) {
	reg := schema.Default()
	vals := mapValues{
		"motd":              value.Text("hi"),
		"pvp":               value.Bool(true),
		"level-type":        value.Text("minecraft:normal"),
		"rcon.password":     value.Text(""),
		"sync-chunk-writes": value.Bool(true), // not in any group
		"unknown-mod-key":   value.Text("x"),
	}

	groups := GroupsInOrder(reg, vals)
	require.Len(t, groups, 4)

	assert.Equal(t, schema.GroupGeneral, groups[0].ID)
	assert.Equal(t, "General", groups[0].Label)
	require.Len(t, groups[0].Controls, 2)
	assert.Equal(t, "motd", groups[0].Controls[0].Key)
	assert.Equal(t, "pvp", groups[0].Controls[1].Key)

	require.Len(t, groups[1].Controls, 1)
	assert.Equal(t, "level-type", groups[1].Controls[0].Key)

	assert.Empty(t, groups[2].Controls)

	require.Len(t, groups[3].Controls, 1)
	assert.Equal(t, KindMasked, groups[3].Controls[0].Kind)

}

func TestGroupsInOrder_EachKeyOnce(t *testing.T) {
	reg := schema.Default()
	vals := mapValues{}
	for _, d := range reg.Defaults() {
		vals[d.Key] = d.Value
	}

	seen := make(map[string]int)
	for _, g := range GroupsInOrder(reg, vals) {
		for _, c := range g.Controls {
			seen[c.Key]++
		}
	}
	for key, n := range seen {
		assert.Equal(t, 1, n, key)
		_, grouped := reg.GroupOf(key)
		assert.True(t, grouped, key)
	}
	assert.NotContains(t, seen, "sync-chunk-writes")
}

func TestInterpret(t *testing.T) {
	reg := schema.Default()
	boolSpec := Derive(reg, "pvp", value.Bool(true))
	intSpec := Derive(reg, "max-players", value.Int(20))
	enumSpec := Derive(reg, "level-type", value.Text("minecraft:normal"))
	maskSpec := Derive(reg, "rcon.password", value.Text(""))
	textSpec := Derive(reg, "motd", value.Text(""))

	tests := []struct {
		name string
		spec ControlSpec
		raw  string
		want value.Value
	}{
		{name: "bool_true", spec: boolSpec, raw: "true", want: value.Bool(true)},
		{name: "bool_on", spec: boolSpec, raw: " ON ", want: value.Bool(true)},
		{name: "bool_garbage", spec: boolSpec, raw: "maybe", want: value.Bool(false)},
		{name: "int_plain", spec: intSpec, raw: "5000", want: value.Int(5000)},
		{name: "int_leading", spec: intSpec, raw: " 12abc", want: value.Int(12)},
		{name: "int_negative", spec: intSpec, raw: "-3", want: value.Int(-3)},
		{name: "int_garbage", spec: intSpec, raw: "abc", want: value.Int(0)},
		{name: "int_empty", spec: intSpec, raw: "", want: value.Int(0)},
		{name: "int_sign_only", spec: intSpec, raw: "-", want: value.Int(0)},
		{name: "int_overflow", spec: intSpec, raw: "99999999999999999999", want: value.Int(0)},
		{name: "enum", spec: enumSpec, raw: "minecraft:flat", want: value.Text("minecraft:flat")},
		{name: "masked", spec: maskSpec, raw: "secret1", want: value.Text("secret1")},
		{name: "text_keeps_spaces", spec: textSpec, raw: "  hi  ", want: value.Text("  hi  ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Interpret(tt.spec, tt.raw))
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "enum-choice", KindEnum.String())
	assert.Equal(t, "masked-text", KindMasked.String())
	assert.Equal(t, "plain-text", KindText.String())
	assert.Equal(t, "boolean", KindBoolean.String())
	assert.Equal(t, "bounded-integer", KindInteger.String())
}
