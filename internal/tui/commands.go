package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/billie-coop/propedit/internal/session"
	"github.com/billie-coop/propedit/internal/tui/components/dialog"
	"github.com/billie-coop/propedit/internal/tui/components/editor"
)

// loadCmd reads the properties file off the update loop.
func (m *Model) loadCmd() tea.Cmd {
	m.loading = true
	sess := m.app.Session
	return tea.Batch(
		m.spinner.Start("loading"),
		func() tea.Msg {
			return loadDoneMsg{err: sess.Load(context.Background())}
		},
	)
}

// saveCmd snapshots, reconciles and persists off the update loop. Edits
// keep flowing while it runs; they are not part of this save.
func (m *Model) saveCmd() tea.Cmd {
	if m.loading {
		return m.statusBar.ShowWarning("still loading: save when the form is ready")
	}
	if m.app.Session.Saving() {
		return m.statusBar.ShowWarning(session.ErrSaveInProgress.Error())
	}
	sess := m.app.Session
	return tea.Batch(
		m.spinner.Start("saving"),
		func() tea.Msg {
			report, err := sess.RequestSave(context.Background())
			return saveDoneMsg{report: report, err: err}
		},
	)
}

func (m *Model) handleLoadDone(msg loadDoneMsg) tea.Cmd {
	m.loading = false
	m.spinner.Stop()
	if msg.err != nil {
		m.loadErr = msg.err
		m.editor.SetGroups(nil)
		m.syncStatus()
		return nil
	}
	m.loadErr = nil
	m.refreshForm()
	return m.statusBar.ShowInfo(fmt.Sprintf("loaded %s", m.app.Store.Path()))
}

func (m *Model) handleSaveDone(msg saveDoneMsg) tea.Cmd {
	// A refused save finished nothing; the running save owns the spinner.
	if errors.Is(msg.err, session.ErrSaveInProgress) {
		return m.statusBar.ShowWarning(msg.err.Error())
	}

	m.spinner.Stop()
	m.syncStatus()

	if msg.err != nil {
		return m.statusBar.ShowError(msg.err.Error())
	}

	report := msg.report
	m.refreshForm()

	if len(report.Warnings) > 0 {
		m.dialogManager.SetWarnings(m.app.Store.Path(), m.app.Session.DescribeWarnings(report.Warnings))
		return tea.Batch(
			m.statusBar.ShowWarning(fmt.Sprintf("saved with %d warning(s)", len(report.Warnings))),
			m.dialogManager.OpenDialog(dialog.WarningsDialogType),
		)
	}

	cmds := []tea.Cmd{m.statusBar.ShowSuccess("saved " + m.app.Store.Path())}
	if m.app.Config.CloseAfterSave && report.Clean {
		m.closing = true
		cmds = append(cmds, tea.Tick(m.app.Config.CloseDelayDuration(), func(time.Time) tea.Msg {
			return closeMsg{}
		}))
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleEdit(msg editor.EditMsg) tea.Cmd {
	m.closing = false
	err := m.app.Session.ApplyEdit(msg.Key, msg.Raw)
	m.refreshForm()
	if err != nil {
		return m.statusBar.ShowError(err.Error())
	}
	return nil
}

func (m *Model) handleReload() tea.Cmd {
	if m.app.Session.Dirty() {
		return m.statusBar.ShowWarning("unsaved changes: save or quit before reloading")
	}
	if m.app.Session.Saving() {
		return m.statusBar.ShowWarning(session.ErrSaveInProgress.Error())
	}
	return m.loadCmd()
}

func (m *Model) handleQuit() tea.Cmd {
	if m.app.Session.Dirty() || m.app.Session.Saving() {
		m.dialogManager.SetUnsaved(true)
		return m.dialogManager.OpenDialog(dialog.QuitDialogType)
	}
	return tea.Quit
}

func (m *Model) handleDialogResult(msg dialog.ResultMsg) tea.Cmd {
	switch msg.Type {
	case dialog.ThemeSwitcherDialogType:
		name, ok := msg.Result.(string)
		if msg.Cancelled || !ok || name == "" {
			return nil
		}
		if err := m.app.SavePreference("theme", name); err != nil {
			return m.statusBar.ShowError(err.Error())
		}
		return m.statusBar.ShowInfo("theme: " + name)
	}
	return nil
}

func (m *Model) toggleReveal() tea.Cmd {
	m.reveal = !m.reveal
	m.editor.SetRevealSecrets(m.reveal)
	if m.reveal {
		return m.statusBar.ShowInfo("secrets shown")
	}
	return m.statusBar.ShowInfo("secrets hidden")
}
