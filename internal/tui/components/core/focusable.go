package core

import tea "github.com/charmbracelet/bubbletea/v2"

// FocusableBase provides basic focus management
type FocusableBase struct {
	focused bool
}

func (f *FocusableBase) IsFocused() bool {
	return f.focused
}

func (f *FocusableBase) Focus() tea.Cmd {
	f.focused = true
	return nil
}

func (f *FocusableBase) Blur() tea.Cmd {
	f.focused = false
	return nil
}
