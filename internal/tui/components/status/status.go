package status

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/billie-coop/propedit/internal/tui/styles"
)

// MessageType represents the type of status message
type MessageType int

const (
	Info MessageType = iota
	Warning
	Error
	Success
)

// StatusMessage represents a status bar message
type StatusMessage struct {
	Content   string
	Type      MessageType
	Timestamp time.Time
}

// Component is the bottom bar: where the file lives and what the session
// is doing on the left, a temporary message on the right.
type Component struct {
	message  *StatusMessage
	width    int
	location string
	state    string
	dirty    bool

	clearAfter time.Duration
}

// New creates a new status bar component
func New() *Component {
	return &Component{
		clearAfter: 5 * time.Second,
	}
}

// SetMessage sets a status message with the given type
func (c *Component) SetMessage(content string, msgType MessageType) tea.Cmd {
	stamp := time.Now()
	c.message = &StatusMessage{
		Content:   content,
		Type:      msgType,
		Timestamp: stamp,
	}

	return tea.Tick(c.clearAfter, func(time.Time) tea.Msg {
		return clearMessageMsg{timestamp: stamp}
	})
}

func (c *Component) ShowInfo(message string) tea.Cmd {
	return c.SetMessage(message, Info)
}

func (c *Component) ShowWarning(message string) tea.Cmd {
	return c.SetMessage(message, Warning)
}

func (c *Component) ShowError(message string) tea.Cmd {
	return c.SetMessage(message, Error)
}

func (c *Component) ShowSuccess(message string) tea.Cmd {
	return c.SetMessage(message, Success)
}

// SetSession updates the left side of the bar.
func (c *Component) SetSession(location, state string, dirty bool) {
	c.location = location
	c.state = state
	c.dirty = dirty
}

// Message returns the current message, if any.
func (c *Component) Message() (StatusMessage, bool) {
	if c.message == nil {
		return StatusMessage{}, false
	}
	return *c.message, true
}

// SetSize implements the Sizeable interface
func (c *Component) SetSize(width, height int) tea.Cmd {
	c.width = width
	return nil
}

// clearMessageMsg is sent when a status message should be cleared
type clearMessageMsg struct {
	timestamp time.Time
}

func (c *Component) Init() tea.Cmd {
	return nil
}

func (c *Component) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(clearMessageMsg); ok {
		// Only clear if this is for the current message
		if c.message != nil && msg.timestamp.Equal(c.message.Timestamp) {
			c.message = nil
		}
	}
	return nil
}

func (c *Component) View() string {
	if c.width == 0 {
		return ""
	}

	theme := styles.CurrentTheme()
	statusStyle := lipgloss.NewStyle().
		Width(c.width).
		MaxHeight(1).
		Background(theme.BgSubtle).
		Foreground(theme.FgBase).
		Padding(0, 1)

	available := c.width - 2

	right := c.formatMessage()
	if lipgloss.Width(right) > available/2 {
		right = ansi.Truncate(right, max(0, available/2), "…")
	}

	left := c.formatSession()
	room := available - lipgloss.Width(right) - 1
	if lipgloss.Width(left) > room {
		left = ansi.Truncate(left, max(0, room), "…")
	}

	gap := max(1, available-lipgloss.Width(left)-lipgloss.Width(right))
	content := left
	if right != "" {
		content += strings.Repeat(" ", gap) + right
	}
	return statusStyle.Render(content)
}

func (c *Component) formatSession() string {
	if c.location == "" && c.state == "" {
		return ""
	}
	theme := styles.CurrentTheme()
	parts := []string{}
	if c.location != "" {
		parts = append(parts, styles.FolderIcon+" "+c.location)
	}
	if c.state != "" {
		state := c.state
		if c.dirty {
			state = styles.DirtyIcon + " " + state + ", unsaved"
		}
		parts = append(parts, theme.S().Muted.Render(state))
	}
	return strings.Join(parts, "  ")
}

func (c *Component) formatMessage() string {
	if c.message == nil {
		return ""
	}

	s := styles.CurrentTheme().S()
	switch c.message.Type {
	case Success:
		return s.Success.Render(styles.CheckIcon + " " + c.message.Content)
	case Warning:
		return s.Warning.Render(styles.WarningIcon + " " + c.message.Content)
	case Error:
		return s.Error.Render(styles.ErrorIcon + " " + c.message.Content)
	default:
		return s.Info.Render(c.message.Content)
	}
}
