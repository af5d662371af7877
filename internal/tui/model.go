// Package tui is the terminal front end: the property form, a status bar,
// and dialogs for help, warnings, themes and quitting.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/billie-coop/propedit/internal/app"
	"github.com/billie-coop/propedit/internal/session"
	"github.com/billie-coop/propedit/internal/tui/components/anim"
	"github.com/billie-coop/propedit/internal/tui/components/dialog"
	"github.com/billie-coop/propedit/internal/tui/components/editor"
	"github.com/billie-coop/propedit/internal/tui/components/status"
	"github.com/billie-coop/propedit/internal/tui/events"
	"github.com/billie-coop/propedit/internal/tui/styles"
)

// Model is the root bubbletea model
type Model struct {
	width  int
	height int

	// Components
	editor        *editor.Model
	statusBar     *status.Component
	spinner       *anim.Spinner
	dialogManager *dialog.Manager

	// Event system
	eventBroker *events.Broker
	eventSub    <-chan events.Event

	// App holds all business logic
	app *app.App

	keys KeyMap

	// UI state only
	loading bool
	loadErr error
	reveal  bool
	closing bool
}

// New creates a new TUI model from an app instance
func New(appInstance *app.App) *Model {
	styles.SetDefaultManager(styles.NewManager(appInstance.Config.Theme))

	m := &Model{
		editor:        editor.New(),
		statusBar:     status.New(),
		spinner:       anim.NewSpinner(anim.SpinnerDots),
		dialogManager: dialog.NewManager(appInstance.EventBroker),
		eventBroker:   appInstance.EventBroker,
		app:           appInstance,
		keys:          DefaultKeyMap(),
		reveal:        appInstance.Config.RevealSecrets,
	}
	m.editor.SetRevealSecrets(m.reveal)
	m.editor.Focus()
	m.dialogManager.SetHelp(
		dialog.HelpSection{Title: "Form", Bindings: m.editor.Keys().FullHelp()},
		dialog.HelpSection{Title: "Editor", Bindings: m.keys.FullHelp()},
	)

	m.eventSub = m.eventBroker.Subscribe(
		events.StatusChangedEvent,
		events.FileChangedEvent,
		events.StatusMessageEvent,
	)
	return m
}

// Init loads the file and starts listening for events
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadCmd(),
		m.listenForEvents(),
		m.dialogManager.Init(),
	)
}

// Update handles all messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, m.resizeComponents()

	case events.Event:
		return m, tea.Batch(m.handleEvent(msg), m.listenForEvents())

	case loadDoneMsg:
		return m, m.handleLoadDone(msg)

	case saveDoneMsg:
		return m, m.handleSaveDone(msg)

	case editor.EditMsg:
		return m, m.handleEdit(msg)

	case dialog.ResultMsg:
		return m, m.handleDialogResult(msg)

	case closeMsg:
		if m.closing && !m.app.Session.Dirty() && !m.dialogManager.IsDialogOpen() {
			return m, tea.Quit
		}
		m.closing = false
		return m, nil
	}

	if m.dialogManager.IsDialogOpen() {
		cmd := m.dialogManager.Update(msg)
		if _, ok := msg.(tea.KeyPressMsg); ok {
			return m, cmd
		}
		cmds = append(cmds, cmd)
	}

	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		return m, m.handleKey(keyMsg)
	}

	cmds = append(cmds, m.spinner.Update(msg), m.statusBar.Update(msg))
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	// ctrl+c always reaches the quit path, even mid-edit.
	if msg.String() == "ctrl+c" {
		return m.handleQuit()
	}

	if m.loadErr != nil {
		if key.Matches(msg, m.keys.Quit) {
			return tea.Quit
		}
		if key.Matches(msg, m.keys.Reload) {
			return m.loadCmd()
		}
		return nil
	}

	if m.editor.Editing() {
		return m.editor.Update(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Save):
		return m.saveCmd()
	case key.Matches(msg, m.keys.Reload):
		return m.handleReload()
	case key.Matches(msg, m.keys.Reveal):
		return m.toggleReveal()
	case key.Matches(msg, m.keys.Theme):
		return m.dialogManager.OpenDialog(dialog.ThemeSwitcherDialogType)
	case key.Matches(msg, m.keys.Help):
		return m.dialogManager.OpenDialog(dialog.HelpDialogType)
	case key.Matches(msg, m.keys.Quit):
		return m.handleQuit()
	}

	if m.loading {
		return nil
	}
	return m.editor.Update(msg)
}

// refreshForm pulls fresh groups from the session. A failed load blocks
// the form; a session that is simply not loaded yet shows it empty.
func (m *Model) refreshForm() {
	groups, err := m.app.Session.GroupsInOrder()
	if err != nil {
		if session.IsLoadError(err) {
			m.loadErr = err
		}
		m.editor.SetGroups(nil)
	} else {
		m.editor.SetGroups(groups)
	}
	m.syncStatus()
}

func (m *Model) syncStatus() {
	sess := m.app.Session
	m.statusBar.SetSession(m.app.Store.Path(), sess.State().String(), sess.Dirty())
	m.dialogManager.SetUnsaved(sess.Dirty())
}

// View renders the entire TUI
func (m *Model) View() tea.View {
	return tea.NewView(m.render())
}

func (m *Model) render() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	if m.dialogManager.IsDialogOpen() {
		if view := m.dialogManager.View(); view != "" {
			return view
		}
	}

	theme := styles.CurrentTheme()
	s := theme.S()

	header := m.renderHeader()

	var body string
	switch {
	case m.loadErr != nil:
		body = m.renderLoadError()
	case m.loading:
		body = m.spinner.View()
	default:
		body = m.editor.View()
	}
	bodyHeight := max(1, m.height-headerHeight-footerHeight-statusHeight)
	body = lipgloss.NewStyle().
		Width(m.width).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		PaddingLeft(1).
		Render(body)

	footer := s.Subtle.Render(ansi.Truncate(m.renderFooter(), max(0, m.width-1), "…"))

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer, m.statusBar.View())
}

func (m *Model) renderHeader() string {
	s := styles.CurrentTheme().S()

	title := styles.RenderThemeGradient("server.properties", true)
	if m.app.Session.Dirty() {
		title += " " + s.Warning.Render(styles.DirtyIcon)
	}
	if m.spinner.Running() && !m.loading {
		title += "  " + m.spinner.View()
	}
	line := ansi.Truncate(" "+title, m.width, "…")
	return line + "\n"
}

func (m *Model) renderLoadError() string {
	s := styles.CurrentTheme().S()
	lines := []string{
		s.Error.Render(styles.ErrorIcon + " " + m.loadErr.Error()),
		"",
		s.Muted.Render("Nothing can be edited until the file loads."),
		s.Subtle.Render("ctrl+r to retry • q to quit"),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	var bindings []key.Binding
	if m.editor.Editing() {
		k := m.editor.Keys()
		bindings = []key.Binding{k.Commit, k.Cancel}
	} else {
		bindings = append(m.editor.Keys().ShortHelp(), m.keys.ShortHelp()...)
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return " " + strings.Join(parts, " • ")
}
