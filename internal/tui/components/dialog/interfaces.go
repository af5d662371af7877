package dialog

import (
	tea "github.com/charmbracelet/bubbletea/v2"
)

// Dialog represents a modal dialog component
type Dialog interface {
	// Core component methods
	Init() tea.Cmd
	Update(tea.Msg) tea.Cmd
	View() string

	// Dialog-specific methods
	SetSize(width, height int) tea.Cmd
	IsOpen() bool
	Open() tea.Cmd
	Close() tea.Cmd
	Focus() tea.Cmd
	Blur() tea.Cmd
	IsFocused() bool

	// Result handling
	GetResult() any
	IsCancelled() bool
}

// ResultMsg is emitted by the Manager when the active dialog closes.
type ResultMsg struct {
	Type      DialogType
	Result    any
	Cancelled bool
}
