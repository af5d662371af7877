package session

// State is the lifecycle position of a session.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateSaving
	StateSaved
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateSaving:
		return "saving"
	case StateSaved:
		return "saved"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}
