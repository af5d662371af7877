package tui

import (
	tea "github.com/charmbracelet/bubbletea/v2"
)

const (
	headerHeight = 2
	footerHeight = 1
	statusHeight = 1
)

// resizeComponents resizes all components based on current window size
func (m *Model) resizeComponents() tea.Cmd {
	bodyHeight := max(1, m.height-headerHeight-footerHeight-statusHeight)

	return tea.Batch(
		m.editor.SetSize(m.width-2, bodyHeight),
		m.statusBar.SetSize(m.width, statusHeight),
		m.dialogManager.SetSize(m.width, m.height),
	)
}
