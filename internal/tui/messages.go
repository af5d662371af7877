package tui

import (
	"github.com/billie-coop/propedit/internal/session"
)

// loadDoneMsg carries the result of a (re)load.
type loadDoneMsg struct {
	err error
}

// saveDoneMsg carries the result of a save.
type saveDoneMsg struct {
	report *session.SaveReport
	err    error
}

// closeMsg ends the program after a successful save when close-after-save
// is enabled.
type closeMsg struct{}
