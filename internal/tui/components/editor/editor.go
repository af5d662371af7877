// Package editor renders the grouped property form and turns key presses
// into edit requests.
//
// The component never changes values itself. Toggles, option changes and
// committed text edits are emitted as EditMsg; the owner applies them to
// the session and hands back fresh groups with SetGroups.
package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/rivo/uniseg"

	"github.com/billie-coop/propedit/internal/form"
	"github.com/billie-coop/propedit/internal/tui/components/core"
	"github.com/billie-coop/propedit/internal/tui/components/input"
	"github.com/billie-coop/propedit/internal/tui/styles"
)

// EditMsg asks the owner to apply raw input to a key.
type EditMsg struct {
	Key string
	Raw string
}

type row struct {
	group int
	spec  form.ControlSpec
}

// Model is the property form.
type Model struct {
	core.FocusableBase
	core.SizeableBase

	groups []form.Group
	rows   []row
	cursor int
	offset int

	editing bool
	input   *input.Model
	reveal  bool

	keys KeyMap
}

// New creates an empty form.
func New() *Model {
	return &Model{
		input: input.New(),
		keys:  DefaultKeyMap(),
	}
}

// SetGroups replaces the rendered groups, keeping the cursor on the same
// key when it is still present.
func (m *Model) SetGroups(groups []form.Group) {
	var current string
	if spec, ok := m.Selected(); ok {
		current = spec.Key
	}

	m.groups = groups
	m.rows = m.rows[:0]
	for gi, g := range groups {
		for _, c := range g.Controls {
			m.rows = append(m.rows, row{group: gi, spec: c})
		}
	}

	m.cursor = 0
	for i, r := range m.rows {
		if r.spec.Key == current {
			m.cursor = i
			break
		}
	}
	m.clampOffset()
}

// SetRevealSecrets shows masked values in clear text.
func (m *Model) SetRevealSecrets(reveal bool) {
	m.reveal = reveal
}

// Selected returns the control under the cursor.
func (m *Model) Selected() (form.ControlSpec, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return form.ControlSpec{}, false
	}
	return m.rows[m.cursor].spec, true
}

// Editing reports whether a text field is open.
func (m *Model) Editing() bool {
	return m.editing
}

// Keys returns the active key bindings.
func (m *Model) Keys() KeyMap {
	return m.keys
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !m.IsFocused() {
		return nil
	}

	if m.editing {
		return m.updateEditing(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Down):
		m.move(1)
	case key.Matches(keyMsg, m.keys.Up):
		m.move(-1)
	case key.Matches(keyMsg, m.keys.PageDown):
		m.move(m.pageSize())
	case key.Matches(keyMsg, m.keys.PageUp):
		m.move(-m.pageSize())
	case key.Matches(keyMsg, m.keys.Home):
		m.move(-len(m.rows))
	case key.Matches(keyMsg, m.keys.End):
		m.move(len(m.rows))
	default:
		return m.activate(keyMsg)
	}
	return nil
}

// activate handles the value keys for the selected control.
func (m *Model) activate(msg tea.KeyPressMsg) tea.Cmd {
	spec, ok := m.Selected()
	if !ok {
		return nil
	}

	switch spec.Kind {
	case form.KindBoolean:
		if key.Matches(msg, m.keys.Toggle) {
			current, _ := spec.Value.AsBool()
			return edit(spec.Key, strconv.FormatBool(!current))
		}
	case form.KindEnum:
		switch {
		case key.Matches(msg, m.keys.Next), key.Matches(msg, m.keys.Toggle):
			return m.cycle(spec, 1)
		case key.Matches(msg, m.keys.Prev):
			return m.cycle(spec, -1)
		}
	default:
		if key.Matches(msg, m.keys.Edit) {
			m.startEditing(spec)
		}
	}
	return nil
}

func (m *Model) cycle(spec form.ControlSpec, step int) tea.Cmd {
	n := len(spec.Options)
	if n == 0 {
		return nil
	}
	i := spec.ActiveIndex()
	switch {
	case i < 0 && step > 0:
		i = 0
	case i < 0:
		i = n - 1
	default:
		i = (i + step + n) % n
	}
	return edit(spec.Key, spec.Options[i].Value)
}

func (m *Model) startEditing(spec form.ControlSpec) {
	m.editing = true
	m.input.SetValue(spec.Value.String())
	m.input.SetPlaceholder(spec.Placeholder)
	m.input.SetMasked(spec.Kind == form.KindMasked && !m.reveal)
	m.input.Focus()
}

func (m *Model) updateEditing(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Commit):
		m.stopEditing()
		spec, ok := m.Selected()
		if !ok {
			return nil
		}
		return edit(spec.Key, m.input.Value())
	case key.Matches(msg, m.keys.Cancel):
		m.stopEditing()
		return nil
	}
	return m.input.Update(msg)
}

func (m *Model) stopEditing() {
	m.editing = false
	m.input.Blur()
}

func edit(k, raw string) tea.Cmd {
	return func() tea.Msg { return EditMsg{Key: k, Raw: raw} }
}

func (m *Model) move(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursor = max(0, min(len(m.rows)-1, m.cursor+delta))
	m.clampOffset()
}

func (m *Model) pageSize() int {
	return max(1, m.Height/2)
}

// clampOffset keeps the cursor row visible. Offsets count rows, group
// headers take extra lines that render accounts for.
func (m *Model) clampOffset() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.Height > 0 {
		visible := max(1, m.Height-2*len(m.groups))
		if m.cursor >= m.offset+visible {
			m.offset = m.cursor - visible + 1
		}
	}
	m.offset = max(0, m.offset)
}

func (m *Model) View() string {
	theme := styles.CurrentTheme()
	s := theme.S()

	if len(m.rows) == 0 {
		return s.Muted.Render("No properties to show.")
	}

	labelWidth := 0
	for _, r := range m.rows {
		labelWidth = max(labelWidth, lipgloss.Width(r.spec.Label))
	}

	var lines []string
	lastGroup := -1
	for i := m.offset; i < len(m.rows); i++ {
		r := m.rows[i]
		if r.group != lastGroup {
			if lastGroup != -1 {
				lines = append(lines, "")
			}
			lines = append(lines, s.Group.UnsetMarginTop().Render(m.groups[r.group].Label))
			lastGroup = r.group
		}

		selected := i == m.cursor
		cursor := "  "
		label := s.Label.Width(labelWidth).Render(r.spec.Label)
		if selected && m.IsFocused() {
			cursor = styles.RenderThemeGradient(styles.CursorIcon, true) + " "
			label = s.LabelFocused.Width(labelWidth).Render(r.spec.Label)
		}
		lines = append(lines, cursor+label+"  "+m.renderValue(r.spec, selected))

		if m.Height > 0 && len(lines) >= m.Height {
			break
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderValue(spec form.ControlSpec, selected bool) string {
	s := styles.CurrentTheme().S()

	if selected && m.editing {
		return s.InputFocused.Padding(0, 1).BorderTop(false).BorderBottom(false).Render(m.input.View())
	}

	switch spec.Kind {
	case form.KindBoolean:
		if on, _ := spec.Value.AsBool(); on {
			return s.Success.Render(styles.ToggleOnIcon + " on")
		}
		return s.Muted.Render(styles.ToggleOffIcon + " off")

	case form.KindEnum:
		parts := make([]string, 0, len(spec.Options)+1)
		for _, o := range spec.Options {
			if o.Active {
				parts = append(parts, s.OptionActive.Render(o.Label))
			} else {
				parts = append(parts, s.Option.Render(o.Label))
			}
		}
		if spec.ActiveIndex() < 0 {
			parts = append(parts, s.Warning.Render(fmt.Sprintf("%s %q", styles.WarningIcon, spec.Value.String())))
		}
		return strings.Join(parts, " ")

	case form.KindInteger:
		out := s.Value.Render(spec.Value.String())
		if !spec.Bounded {
			return out
		}
		hint := fmt.Sprintf("(%d–%d)", spec.Min, spec.Max)
		if !spec.InRange() {
			return s.Warning.Render(spec.Value.String()+" "+styles.WarningIcon) + " " + s.Subtle.Render(hint)
		}
		return out + " " + s.Subtle.Render(hint)

	case form.KindMasked:
		v := spec.Value.String()
		if v == "" {
			return s.Subtle.Render(spec.Placeholder)
		}
		if m.reveal {
			return s.Value.Render(v)
		}
		return s.Value.Render(strings.Repeat(input.MaskChar, uniseg.GraphemeClusterCount(v)))

	default:
		v := spec.Value.String()
		if v == "" {
			return s.Subtle.Render(spec.Placeholder)
		}
		return s.Value.Render(v)
	}
}
