package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billie-coop/propedit/internal/schema"
	"github.com/billie-coop/propedit/internal/value"
	"github.com/billie-coop/propedit/internal/workset"
)

func defaultsSnapshot(reg *schema.Registry) workset.Snapshot {
	var entries []workset.Entry
	for _, d := range reg.Defaults() {
		entries = append(entries, workset.Entry{Key: d.Key, Value: d.Value})
	}
	return workset.NewSnapshot(entries)
}

func TestReconcile_WellTypedInputIsUnchanged(t *testing.T) {
	reg := schema.Default()
	snap := defaultsSnapshot(reg)

	res := Reconcile(reg, snap)

	assert.True(t, res.Clean())
	assert.Equal(t, snap.Entries(), res.Entries)

	// Reconciling the output again is a no-op.
	again := Reconcile(reg, workset.NewSnapshot(res.Entries))
	assert.Equal(t, res.Entries, again.Entries)
}

func TestReconcile_Coercions(t *testing.T) {
	reg := schema.Default()

	tests := []struct {
		name    string
		key     string
		in      value.Value
		want    value.Value
		problem Problem
	}{
		{name: "int_from_text", key: "max-players", in: value.Text(" 42 "), want: value.Int(42)},
		{name: "int_garbage_kept", key: "max-players", in: value.Text("lots"), want: value.Text("lots"), problem: NotAnInteger},
		{name: "int_from_bool_kept", key: "server-port", in: value.Bool(true), want: value.Bool(true), problem: NotAnInteger},
		{name: "bool_from_text", key: "pvp", in: value.Text("TRUE"), want: value.Bool(true)},
		{name: "bool_garbage_kept", key: "pvp", in: value.Text("sometimes"), want: value.Text("sometimes"), problem: NotABoolean},
		{name: "bool_from_int_kept", key: "hardcore", in: value.Int(1), want: value.Int(1), problem: NotABoolean},
		{name: "text_from_int", key: "level-seed", in: value.Int(12345), want: value.Text("12345")},
		{name: "text_from_bool", key: "motd", in: value.Bool(false), want: value.Text("false")},
		{name: "enum_from_int", key: "difficulty", in: value.Int(2), want: value.Text("2"), problem: NotAChoice},
		{name: "enum_unknown_kept", key: "level-type", in: value.Text("minecraft:void"), want: value.Text("minecraft:void"), problem: NotAChoice},
		{name: "enum_valid", key: "level-type", in: value.Text("minecraft:flat"), want: value.Text("minecraft:flat")},
		{name: "out_of_range_not_clamped", key: "max-players", in: value.Int(5000), want: value.Int(5000), problem: OutOfRange},
		{name: "below_range_not_clamped", key: "view-distance", in: value.Int(0), want: value.Int(0), problem: OutOfRange},
		{name: "parsed_then_out_of_range", key: "max-players", in: value.Text("5000"), want: value.Int(5000), problem: OutOfRange},
		{name: "unknown_key_passes", key: "some-mod-setting", in: value.Text("x"), want: value.Text("x")},
		{name: "unknown_key_int_passes", key: "some-mod-limit", in: value.Int(-9), want: value.Int(-9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := workset.NewSnapshot([]workset.Entry{{Key: tt.key, Value: tt.in}})

			res := Reconcile(reg, snap)

			require.Len(t, res.Entries, 1)
			assert.Equal(t, tt.want, res.Entries[0].Value)

			w, warned := res.Warning(tt.key)
			if tt.problem == "" {
				assert.False(t, warned, "unexpected warning %v", w)
				return
			}
			require.True(t, warned)
			assert.Equal(t, tt.problem, w.Problem)
			assert.Equal(t, tt.in, w.Attempted)
			assert.NotEmpty(t, w.Reason)
		})
	}
}

func TestReconcile_PartialSuccess(t *testing.T) {
	reg := schema.Default()
	snap := workset.NewSnapshot([]workset.Entry{
		{Key: "motd", Value: value.Text("hi")},
		{Key: "max-players", Value: value.Text("many")},
		{Key: "pvp", Value: value.Text("false")},
		{Key: "difficulty", Value: value.Text("nightmare")},
		{Key: "server-port", Value: value.Text("25566")},
	})

	res := Reconcile(reg, snap)

	assert.False(t, res.Clean())
	require.Len(t, res.Warnings, 2)
	assert.Equal(t, "max-players", res.Warnings[0].Key)
	assert.Equal(t, "difficulty", res.Warnings[1].Key)

	assert.Equal(t, []workset.Entry{
		{Key: "motd", Value: value.Text("hi")},
		{Key: "max-players", Value: value.Text("many")},
		{Key: "pvp", Value: value.Bool(false)},
		{Key: "difficulty", Value: value.Text("nightmare")},
		{Key: "server-port", Value: value.Int(25566)},
	}, res.Entries)
}

func TestCoercionError_Error(t *testing.T) {
	err := &CoercionError{Key: "max-players", Attempted: value.Int(5000), Problem: OutOfRange, Reason: "outside the allowed range 1..1000"}
	assert.Equal(t, `max-players: outside the allowed range 1..1000 (value "5000")`, err.Error())
}
