package tui

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/billie-coop/propedit/internal/tui/events"
)

// listenForEvents waits for the next broker event
func (m *Model) listenForEvents() tea.Cmd {
	sub := m.eventSub
	return func() tea.Msg {
		event, ok := <-sub
		if !ok {
			return nil
		}
		return event
	}
}

// handleEvent processes events from the event broker
func (m *Model) handleEvent(event events.Event) tea.Cmd {
	switch event.Type {
	case events.StatusChangedEvent:
		m.syncStatus()

	case events.FileChangedEvent:
		if m.loadErr != nil || m.loading {
			return nil
		}
		if m.app.Session.Dirty() {
			return m.statusBar.ShowWarning("server.properties changed on disk; saving will overwrite it")
		}
		return m.statusBar.ShowWarning("server.properties changed on disk; ctrl+r to reload")

	case events.StatusMessageEvent:
		payload, ok := event.Payload.(events.StatusMessagePayload)
		if !ok {
			return nil
		}
		switch payload.Type {
		case "error":
			return m.statusBar.ShowError(payload.Message)
		case "warning":
			return m.statusBar.ShowWarning(payload.Message)
		case "success":
			return m.statusBar.ShowSuccess(payload.Message)
		default:
			return m.statusBar.ShowInfo(payload.Message)
		}
	}
	return nil
}
