package dialog

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/billie-coop/propedit/internal/tui/styles"
)

// HelpSection is one titled table of key bindings.
type HelpSection struct {
	Title    string
	Bindings []key.Binding
}

// HelpDialog displays the key bindings as rendered markdown
type HelpDialog struct {
	*BaseDialog

	sections []HelpSection
}

// NewHelpDialog creates a new help dialog
func NewHelpDialog(sections ...HelpSection) *HelpDialog {
	return &HelpDialog{
		BaseDialog: NewBaseDialog("Help"),
		sections:   sections,
	}
}

// SetSections replaces the listed bindings.
func (d *HelpDialog) SetSections(sections ...HelpSection) {
	d.sections = sections
}

// Init initializes the dialog
func (d *HelpDialog) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (d *HelpDialog) Update(msg tea.Msg) tea.Cmd {
	if !d.isOpen {
		return nil
	}

	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "esc", "q", "?", "enter":
			return d.Close()
		}
	}
	return nil
}

// View renders the dialog
func (d *HelpDialog) View() string {
	if !d.isOpen {
		return ""
	}

	width := 60
	if d.Width > 0 {
		width = min(width, max(20, d.Width-8))
	}
	content := strings.TrimRight(styles.RenderMarkdown(d.Markdown(), width), "\n")
	return d.RenderDialog(content)
}

// Markdown returns the help text before rendering.
func (d *HelpDialog) Markdown() string {
	var b strings.Builder
	for i, section := range d.sections {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "## %s\n\n", section.Title)
		b.WriteString("| Key | Action |\n|---|---|\n")
		for _, binding := range section.Bindings {
			if !binding.Enabled() {
				continue
			}
			h := binding.Help()
			fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
		}
	}
	b.WriteString("\nInvalid values are kept as typed and reported when you save.\n")
	return b.String()
}
