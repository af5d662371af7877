package dialog

import (
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/billie-coop/propedit/internal/tui/styles"
)

// QuitDialog asks for confirmation before quitting with unsaved edits
type QuitDialog struct {
	*BaseDialog

	selectedNo bool
	unsaved    bool
}

// NewQuitDialog creates a new quit confirmation dialog
func NewQuitDialog() *QuitDialog {
	return &QuitDialog{
		BaseDialog: NewBaseDialog("Quit?"),
		selectedNo: true,
	}
}

// SetUnsaved changes the question to warn about unsaved edits.
func (d *QuitDialog) SetUnsaved(unsaved bool) {
	d.unsaved = unsaved
}

// Open resets the selection to "No".
func (d *QuitDialog) Open() tea.Cmd {
	d.selectedNo = true
	return d.BaseDialog.Open()
}

// Init initializes the dialog
func (d *QuitDialog) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (d *QuitDialog) Update(msg tea.Msg) tea.Cmd {
	if !d.isOpen {
		return nil
	}

	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "ctrl+c", "y", "Y":
			return d.confirm()
		case "esc", "n", "N":
			return d.Cancel()
		case "left", "right", "tab", "h", "l":
			d.selectedNo = !d.selectedNo
		case "enter", "space":
			if d.selectedNo {
				return d.Cancel()
			}
			return d.confirm()
		}
	}
	return nil
}

func (d *QuitDialog) confirm() tea.Cmd {
	d.SetResult(true)
	return tea.Batch(d.Close(), tea.Quit)
}

// View renders the dialog
func (d *QuitDialog) View() string {
	if !d.isOpen {
		return ""
	}

	theme := styles.CurrentTheme()
	s := theme.S()

	question := "Are you sure you want to quit?"
	if d.unsaved {
		question = "Discard unsaved changes and quit?"
	}
	q := s.Bold.Foreground(theme.Warning).Render(question)

	button := lipgloss.NewStyle().
		Padding(0, 3).
		Background(theme.BgSubtle).
		Foreground(theme.FgBase)
	selected := button.
		Background(theme.Primary).
		Foreground(theme.FgInverted).
		Bold(true)

	yesStyle, noStyle := button, button
	if d.selectedNo {
		noStyle = selected
	} else {
		yesStyle = selected
	}

	buttons := lipgloss.NewStyle().
		Width(lipgloss.Width(q)).
		Align(lipgloss.Right).
		Render(lipgloss.JoinHorizontal(lipgloss.Center, yesStyle.Render("Yes"), "  ", noStyle.Render("No")))

	help := s.Subtle.Italic(true).Render("ctrl+c again to quit • esc to cancel")

	return d.RenderDialog(lipgloss.JoinVertical(lipgloss.Center, q, "", buttons, "", help))
}
