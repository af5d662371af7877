// Package input is a single-line text field used for inline edits.
package input

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/rivo/uniseg"

	"github.com/billie-coop/propedit/internal/tui/styles"
)

// MaskChar replaces every grapheme of a masked value.
const MaskChar = "•"

// Model is a basic text input. The cursor moves over grapheme clusters so
// multi-rune characters are edited as a unit.
type Model struct {
	clusters    []string
	cursor      int
	placeholder string
	focused     bool
	masked      bool
}

// New creates an empty input.
func New() *Model {
	return &Model{}
}

// Value returns the current value
func (t *Model) Value() string {
	return strings.Join(t.clusters, "")
}

// SetValue replaces the value and moves the cursor to the end.
func (t *Model) SetValue(value string) {
	t.clusters = split(value)
	t.cursor = len(t.clusters)
}

// SetPlaceholder sets the text shown while the value is empty.
func (t *Model) SetPlaceholder(placeholder string) {
	t.placeholder = placeholder
}

// SetMasked hides the value behind MaskChar.
func (t *Model) SetMasked(masked bool) {
	t.masked = masked
}

func (t *Model) Focus() {
	t.focused = true
}

func (t *Model) Blur() {
	t.focused = false
}

// Update handles editing keys. Enter and escape are left to the owner.
func (t *Model) Update(msg tea.Msg) tea.Cmd {
	if !t.focused {
		return nil
	}

	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "backspace":
			if t.cursor > 0 {
				t.clusters = append(t.clusters[:t.cursor-1], t.clusters[t.cursor:]...)
				t.cursor--
			}
		case "delete":
			if t.cursor < len(t.clusters) {
				t.clusters = append(t.clusters[:t.cursor], t.clusters[t.cursor+1:]...)
			}
		case "left":
			if t.cursor > 0 {
				t.cursor--
			}
		case "right":
			if t.cursor < len(t.clusters) {
				t.cursor++
			}
		case "home", "ctrl+a":
			t.cursor = 0
		case "end", "ctrl+e":
			t.cursor = len(t.clusters)
		case "ctrl+u":
			t.clusters = t.clusters[t.cursor:]
			t.cursor = 0
		default:
			if msg.Text != "" {
				t.insert(msg.Text)
			}
		}
	}

	return nil
}

func (t *Model) insert(text string) {
	add := split(text)
	if len(add) == 0 {
		return
	}
	out := make([]string, 0, len(t.clusters)+len(add))
	out = append(out, t.clusters[:t.cursor]...)
	out = append(out, add...)
	out = append(out, t.clusters[t.cursor:]...)
	t.clusters = out
	t.cursor += len(add)
}

// View renders the input
func (t *Model) View() string {
	theme := styles.CurrentTheme()
	style := theme.S().Text

	display := t.clusters
	if t.masked {
		display = make([]string, len(t.clusters))
		for i := range display {
			display[i] = MaskChar
		}
	}

	if !t.focused {
		if len(display) == 0 && t.placeholder != "" {
			return theme.S().Subtle.Render(t.placeholder)
		}
		return style.Render(strings.Join(display, ""))
	}

	cursorStyle := lipgloss.NewStyle().
		Background(theme.Primary).
		Foreground(theme.FgInverted)

	before := strings.Join(display[:t.cursor], "")
	if t.cursor < len(display) {
		after := strings.Join(display[t.cursor+1:], "")
		return style.Render(before) + cursorStyle.Render(display[t.cursor]) + style.Render(after)
	}
	if len(display) == 0 && t.placeholder != "" {
		return cursorStyle.Render(" ") + theme.S().Subtle.Render(t.placeholder)
	}
	return style.Render(before) + cursorStyle.Render(" ")
}

func split(s string) []string {
	clusters := make([]string, 0, len(s))
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	return clusters
}
