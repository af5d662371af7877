// Package anim holds small animated indicators.
package anim

import (
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/billie-coop/propedit/internal/tui/styles"
)

// SpinnerType defines different spinner animations
type SpinnerType int

const (
	SpinnerDots SpinnerType = iota
	SpinnerLine
	SpinnerCircle
)

// Spinner is an animated busy indicator. It only ticks while running.
type Spinner struct {
	Type    SpinnerType
	Label   string
	frame   int
	speed   time.Duration
	running bool
	gen     int
}

// NewSpinner creates a new spinner
func NewSpinner(spinnerType SpinnerType) *Spinner {
	return &Spinner{
		Type:  spinnerType,
		speed: 80 * time.Millisecond,
	}
}

// Start begins animating. Calling Start on a running spinner only updates
// the label.
func (s *Spinner) Start(label string) tea.Cmd {
	s.Label = label
	if s.running {
		return nil
	}
	s.running = true
	s.gen++
	return s.tick()
}

// Stop halts the animation; pending ticks are ignored.
func (s *Spinner) Stop() {
	s.running = false
	s.gen++
}

// Running reports whether the spinner is animating.
func (s *Spinner) Running() bool {
	return s.running
}

// Init implements core.Component; the spinner starts idle.
func (s *Spinner) Init() tea.Cmd {
	return nil
}

// Update handles spinner animation
func (s *Spinner) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tickMsg); ok && msg.id == s && msg.gen == s.gen && s.running {
		s.frame++
		return s.tick()
	}
	return nil
}

// View renders the spinner
func (s *Spinner) View() string {
	if !s.running {
		return ""
	}
	frames := s.getFrames()
	current := styles.RenderThemeGradient(frames[s.frame%len(frames)], false)

	if s.Label != "" {
		return current + " " + styles.CurrentTheme().S().Subtle.Render(s.Label)
	}
	return current
}

// getFrames returns animation frames based on spinner type
func (s *Spinner) getFrames() []string {
	switch s.Type {
	case SpinnerLine:
		return []string{"-", "\\", "|", "/"}
	case SpinnerCircle:
		return []string{"◐", "◓", "◑", "◒"}
	default:
		return []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	}
}

// tick creates a command to advance the animation
func (s *Spinner) tick() tea.Cmd {
	gen := s.gen
	return tea.Tick(s.speed, func(time.Time) tea.Msg {
		return tickMsg{id: s, gen: gen}
	})
}

// tickMsg is sent to advance the animation
type tickMsg struct {
	id  *Spinner
	gen int
}
