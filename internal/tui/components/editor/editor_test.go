package editor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billie-coop/propedit/internal/form"
	"github.com/billie-coop/propedit/internal/schema"
	"github.com/billie-coop/propedit/internal/value"
)

type values map[string]value.Value

func (v values) Get(key string) (value.Value, bool) {
	x, ok := v[key]
	return x, ok
}

func newEditor(t *testing.T, vals values) *Model {
	t.Helper()
	m := New()
	m.Focus()
	m.SetSize(100, 0)
	m.SetGroups(form.GroupsInOrder(schema.Default(), vals))
	return m
}

func keyPress(s string) tea.KeyPressMsg {
	switch s {
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case "end":
		return tea.KeyPressMsg{Code: tea.KeyEnd}
	}
	return tea.KeyPressMsg{Code: []rune(s)[0], Text: s}
}

func send(t *testing.T, m *Model, keys ...string) tea.Msg {
	t.Helper()
	var last tea.Cmd
	for _, k := range keys {
		last = m.Update(keyPress(k))
	}
	if last == nil {
		return nil
	}
	return last()
}

func TestEditor_NavigationFollowsGroupOrder(t *testing.T) {
	m := newEditor(t, values{
		"rcon.password": value.Text(""),
		"motd":          value.Text("hi"),
		"level-type":    value.Text("minecraft:normal"),
	})

	spec, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "motd", spec.Key)

	send(t, m, "down")
	spec, _ = m.Selected()
	assert.Equal(t, "level-type", spec.Key)

	send(t, m, "down", "down", "down")
	spec, _ = m.Selected()
	assert.Equal(t, "rcon.password", spec.Key)

	send(t, m, "up", "up", "up", "up")
	spec, _ = m.Selected()
	assert.Equal(t, "motd", spec.Key)
}

func TestEditor_ToggleBoolean(t *testing.T) {
	m := newEditor(t, values{"pvp": value.Bool(true)})

	msg := send(t, m, "space")
	assert.Equal(t, EditMsg{Key: "pvp", Raw: "false"}, msg)

	msg = send(t, m, "enter")
	assert.Equal(t, EditMsg{Key: "pvp", Raw: "false"}, msg)
}

func TestEditor_CycleEnum(t *testing.T) {
	m := newEditor(t, values{"difficulty": value.Text("hard")})

	assert.Equal(t, EditMsg{Key: "difficulty", Raw: "peaceful"}, send(t, m, "right"))
	assert.Equal(t, EditMsg{Key: "difficulty", Raw: "normal"}, send(t, m, "left"))

	m.SetGroups(form.GroupsInOrder(schema.Default(), values{"difficulty": value.Text("nightmare")}))
	assert.Equal(t, EditMsg{Key: "difficulty", Raw: "peaceful"}, send(t, m, "right"))
	assert.Equal(t, EditMsg{Key: "difficulty", Raw: "hard"}, send(t, m, "left"))
}

func TestEditor_InlineEdit(t *testing.T) {
	m := newEditor(t, values{"max-players": value.Int(20)})

	assert.Nil(t, send(t, m, "enter"))
	assert.True(t, m.Editing())

	msg := send(t, m, "backspace", "backspace", "5", "0", "0", "0", "enter")
	assert.Equal(t, EditMsg{Key: "max-players", Raw: "5000"}, msg)
	assert.False(t, m.Editing())
}

func TestEditor_CancelEdit(t *testing.T) {
	m := newEditor(t, values{"motd": value.Text("hi")})

	send(t, m, "enter", "x")
	assert.Nil(t, send(t, m, "esc"))
	assert.False(t, m.Editing())
}

func TestEditor_IgnoresKeysWhenBlurred(t *testing.T) {
	m := newEditor(t, values{"pvp": value.Bool(true)})
	m.Blur()

	assert.Nil(t, send(t, m, "space"))
}

func TestEditor_SetGroupsKeepsCursor(t *testing.T) {
	vals := values{"motd": value.Text("a"), "pvp": value.Bool(true)}
	m := newEditor(t, vals)
	send(t, m, "down")

	vals["pvp"] = value.Bool(false)
	m.SetGroups(form.GroupsInOrder(schema.Default(), vals))

	spec, _ := m.Selected()
	assert.Equal(t, "pvp", spec.Key)
	assert.Equal(t, value.Bool(false), spec.Value)
}

func TestEditor_View(t *testing.T) {
	m := newEditor(t, values{
		"motd":          value.Text("Hello"),
		"max-players":   value.Int(5000),
		"pvp":           value.Bool(false),
		"level-type":    value.Text("minecraft:flat"),
		"rcon.password": value.Text("secret1"),
	})

	out := ansi.Strip(m.View())
	assert.Contains(t, out, "General")
	assert.Contains(t, out, "Security")
	assert.Contains(t, out, "Hello")
	assert.Contains(t, out, "5000")
	assert.Contains(t, out, "(1–1000)")
	assert.Contains(t, out, "Flat")
	assert.Contains(t, out, "•••••••")
	assert.NotContains(t, out, "secret1")

	m.SetRevealSecrets(true)
	assert.Contains(t, ansi.Strip(m.View()), "secret1")
}

func TestEditor_EmptyView(t *testing.T) {
	m := New()
	assert.Contains(t, m.View(), "No properties")
}
