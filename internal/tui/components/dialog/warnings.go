package dialog

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/billie-coop/propedit/internal/tui/events"
	"github.com/billie-coop/propedit/internal/tui/styles"
)

// WarningsDialog lists the values that were saved but did not fit their
// control.
type WarningsDialog struct {
	*BaseDialog

	location string
	warnings []events.Warning
	offset   int
}

// NewWarningsDialog creates an empty warnings dialog.
func NewWarningsDialog() *WarningsDialog {
	return &WarningsDialog{
		BaseDialog: NewBaseDialog("Saved with warnings"),
	}
}

// SetWarnings replaces the listed warnings.
func (d *WarningsDialog) SetWarnings(location string, warnings []events.Warning) {
	d.location = location
	d.warnings = warnings
	d.offset = 0
}

// Warnings returns the listed warnings.
func (d *WarningsDialog) Warnings() []events.Warning {
	return d.warnings
}

// Init initializes the dialog
func (d *WarningsDialog) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (d *WarningsDialog) Update(msg tea.Msg) tea.Cmd {
	if !d.isOpen {
		return nil
	}

	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "esc", "enter", "q":
			return d.Close()
		case "down", "j":
			if d.offset < len(d.warnings)-d.visible() {
				d.offset++
			}
		case "up", "k":
			if d.offset > 0 {
				d.offset--
			}
		}
	}
	return nil
}

func (d *WarningsDialog) visible() int {
	if d.Height == 0 {
		return len(d.warnings)
	}
	return max(1, d.Height-12)
}

// View renders the dialog
func (d *WarningsDialog) View() string {
	if !d.isOpen {
		return ""
	}

	s := styles.CurrentTheme().S()

	var lines []string
	count := len(d.warnings)
	noun := "values"
	if count == 1 {
		noun = "value"
	}
	lines = append(lines, s.Muted.Render(fmt.Sprintf("%d %s in %s kept as entered:", count, noun, d.location)), "")

	end := min(len(d.warnings), d.offset+d.visible())
	for _, w := range d.warnings[d.offset:end] {
		lines = append(lines, s.Warning.Render(styles.WarningIcon+" "+w.Key)+
			s.Text.Render(fmt.Sprintf(": %s", w.Reason))+
			s.Subtle.Render(fmt.Sprintf(" (%q)", w.Value)))
	}
	if end < len(d.warnings) {
		lines = append(lines, s.Subtle.Render(fmt.Sprintf("… %d more", len(d.warnings)-end)))
	}

	lines = append(lines, "", s.Subtle.Italic(true).Render("enter to continue"))
	return d.RenderDialog(strings.Join(lines, "\n"))
}
