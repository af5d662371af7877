package dialog

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/billie-coop/propedit/internal/tui/styles"
)

// ThemeSwitcherDialog allows the user to switch themes. Moving the cursor
// previews a theme; escape restores the one active when the dialog opened.
type ThemeSwitcherDialog struct {
	*BaseDialog
	themes        []string
	selectedIndex int
	original      string
}

// NewThemeSwitcher creates a new theme switcher dialog
func NewThemeSwitcher() *ThemeSwitcherDialog {
	return &ThemeSwitcherDialog{
		BaseDialog: NewBaseDialog("Theme"),
	}
}

// Open records the current theme so it can be restored.
func (d *ThemeSwitcherDialog) Open() tea.Cmd {
	manager := styles.DefaultManager()
	d.themes = manager.List()
	d.original = manager.Current().Name
	d.selectedIndex = 0
	for i, name := range d.themes {
		if name == d.original {
			d.selectedIndex = i
			break
		}
	}
	return d.BaseDialog.Open()
}

// Init initializes the dialog
func (d *ThemeSwitcherDialog) Init() tea.Cmd {
	return nil
}

// Update handles input
func (d *ThemeSwitcherDialog) Update(msg tea.Msg) tea.Cmd {
	if !d.isOpen {
		return nil
	}

	kp, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}

	switch kp.String() {
	case "up", "k":
		if d.selectedIndex > 0 {
			d.selectedIndex--
			d.preview()
		}
	case "down", "j":
		if d.selectedIndex < len(d.themes)-1 {
			d.selectedIndex++
			d.preview()
		}
	case "enter":
		d.SetResult(d.themes[d.selectedIndex])
		return d.Close()
	case "esc", "ctrl+c":
		_ = styles.DefaultManager().SetTheme(d.original)
		return d.Cancel()
	}
	return nil
}

func (d *ThemeSwitcherDialog) preview() {
	_ = styles.DefaultManager().SetTheme(d.themes[d.selectedIndex])
}

// View renders the dialog
func (d *ThemeSwitcherDialog) View() string {
	if !d.isOpen {
		return ""
	}

	theme := styles.CurrentTheme()
	s := theme.S()

	var lines []string
	lines = append(lines, s.Subtle.Render("↑/↓ to preview, enter to keep, esc to restore"), "")

	for i, name := range d.themes {
		if i == d.selectedIndex {
			lines = append(lines, styles.RenderThemeGradient(styles.CursorIcon+" "+name, true))
			continue
		}
		line := "  " + name
		style := s.Text
		if name == d.original {
			line += " (current)"
			style = s.Muted
		}
		lines = append(lines, style.Render(line))
	}

	lines = append(lines, "", fmt.Sprintf("  %s %s %s %s",
		s.Success.Render("Success"),
		s.Warning.Render("Warning"),
		s.Error.Render("Error"),
		s.Info.Render("Info"),
	))

	return d.RenderDialog(strings.Join(lines, "\n"))
}
