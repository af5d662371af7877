package dialog

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/billie-coop/propedit/internal/tui/events"
)

// DialogType identifies the type of dialog
type DialogType string

const (
	HelpDialogType          DialogType = "help"
	QuitDialogType          DialogType = "quit"
	WarningsDialogType      DialogType = "warnings"
	ThemeSwitcherDialogType DialogType = "theme_switcher"
)

// Manager manages all dialogs in the application
type Manager struct {
	dialogs      map[DialogType]Dialog
	activeDialog DialogType
	eventBroker  *events.Broker
	width        int
	height       int
}

// NewManager creates a new dialog manager. The broker may be nil.
func NewManager(eventBroker *events.Broker) *Manager {
	m := &Manager{
		dialogs:     make(map[DialogType]Dialog),
		eventBroker: eventBroker,
	}

	m.dialogs[HelpDialogType] = NewHelpDialog()
	m.dialogs[QuitDialogType] = NewQuitDialog()
	m.dialogs[WarningsDialogType] = NewWarningsDialog()
	m.dialogs[ThemeSwitcherDialogType] = NewThemeSwitcher()

	return m
}

// Init initializes all dialogs
func (m *Manager) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, dialog := range m.dialogs {
		cmds = append(cmds, dialog.Init())
	}
	return tea.Batch(cmds...)
}

// Update routes msg to the active dialog. When the dialog closes, a
// ResultMsg carrying its result is returned alongside the dialog's command.
func (m *Manager) Update(msg tea.Msg) tea.Cmd {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		return m.SetSize(wsm.Width, wsm.Height)
	}

	if m.activeDialog == "" {
		return nil
	}
	dialog, ok := m.dialogs[m.activeDialog]
	if !ok {
		return nil
	}

	cmd := dialog.Update(msg)
	if dialog.IsOpen() {
		return cmd
	}

	closed := m.activeDialog
	m.activeDialog = ""
	result := ResultMsg{
		Type:      closed,
		Result:    dialog.GetResult(),
		Cancelled: dialog.IsCancelled(),
	}
	m.publish(events.DialogCloseEvent, events.DialogPayload{
		DialogID: string(closed),
		Data:     result.Result,
	})

	return tea.Batch(cmd, func() tea.Msg { return result })
}

// View renders the active dialog
func (m *Manager) View() string {
	if m.activeDialog == "" {
		return ""
	}

	if dialog, ok := m.dialogs[m.activeDialog]; ok {
		return dialog.View()
	}

	return ""
}

// SetSize sets the size for all dialogs
func (m *Manager) SetSize(width, height int) tea.Cmd {
	m.width = width
	m.height = height

	var cmds []tea.Cmd
	for _, dialog := range m.dialogs {
		cmds = append(cmds, dialog.SetSize(width, height))
	}
	return tea.Batch(cmds...)
}

// OpenDialog opens a specific dialog, closing any other open one.
func (m *Manager) OpenDialog(dialogType DialogType) tea.Cmd {
	dialog, ok := m.dialogs[dialogType]
	if !ok {
		return nil
	}
	if m.activeDialog != "" && m.activeDialog != dialogType {
		m.CloseActiveDialog()
	}
	m.activeDialog = dialogType

	m.publish(events.DialogOpenEvent, events.DialogPayload{
		DialogID: string(dialogType),
	})

	return dialog.Open()
}

// CloseActiveDialog closes the currently active dialog without a result.
func (m *Manager) CloseActiveDialog() tea.Cmd {
	if m.activeDialog == "" {
		return nil
	}
	dialog, ok := m.dialogs[m.activeDialog]
	m.activeDialog = ""
	if !ok {
		return nil
	}
	return dialog.Close()
}

// IsDialogOpen returns whether any dialog is open
func (m *Manager) IsDialogOpen() bool {
	return m.activeDialog != ""
}

// GetActiveDialog returns the currently active dialog type
func (m *Manager) GetActiveDialog() DialogType {
	return m.activeDialog
}

// SetHelp replaces the sections shown by the help dialog.
func (m *Manager) SetHelp(sections ...HelpSection) {
	if dialog, ok := m.dialogs[HelpDialogType].(*HelpDialog); ok {
		dialog.SetSections(sections...)
	}
}

// SetUnsaved tells the quit dialog whether there are unsaved edits.
func (m *Manager) SetUnsaved(unsaved bool) {
	if dialog, ok := m.dialogs[QuitDialogType].(*QuitDialog); ok {
		dialog.SetUnsaved(unsaved)
	}
}

// SetWarnings fills the warnings dialog.
func (m *Manager) SetWarnings(location string, warnings []events.Warning) {
	if dialog, ok := m.dialogs[WarningsDialogType].(*WarningsDialog); ok {
		dialog.SetWarnings(location, warnings)
	}
}

func (m *Manager) publish(t events.EventType, payload events.DialogPayload) {
	if m.eventBroker == nil {
		return
	}
	m.eventBroker.PublishAsync(events.Event{Type: t, Payload: payload})
}
