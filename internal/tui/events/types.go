package events

// EventType identifies the type of event
type EventType string

const (
	// Session lifecycle events
	StatusChangedEvent EventType = "session.status"
	LoadFailedEvent    EventType = "session.load_failed"

	// Edit events
	EditAppliedEvent  EventType = "edit.applied"
	EditRejectedEvent EventType = "edit.rejected"

	// Save events
	SaveStartedEvent   EventType = "save.started"
	SaveWarningsEvent  EventType = "save.warnings"
	SaveCompletedEvent EventType = "save.completed"
	SaveFailedEvent    EventType = "save.failed"

	// File events
	FileChangedEvent EventType = "file.changed"

	// UI events
	StatusMessageEvent EventType = "ui.status"
	DialogOpenEvent    EventType = "ui.dialog.open"
	DialogCloseEvent   EventType = "ui.dialog.close"
)

// Event represents an event in the system
type Event struct {
	Type    EventType
	Payload any
}

// Event payload types

// StatusPayload carries a session status transition. Status is the
// session's own state name so this package stays free of domain imports.
type StatusPayload struct {
	From    string
	To      string
	Message string
}

type EditPayload struct {
	Key   string
	Value string
	Err   error
}

// Warning is a single per-key problem reported by a save.
type Warning struct {
	Key    string
	Value  string
	Reason string
}

type SaveWarningsPayload struct {
	Warnings []Warning
}

type SavePayload struct {
	Location string
	Err      error
}

type FileChangedPayload struct {
	Path string
}

type StatusMessagePayload struct {
	Message string
	Type    string // "info", "warning", "error", "success"
}

type DialogPayload struct {
	DialogID string
	Data     any
}
