package session

import (
	"errors"
	"fmt"
)

var (
	// ErrSaveInProgress is returned when a save is requested while another
	// one has not finished.
	ErrSaveInProgress = errors.New("a save is already in progress")
	// ErrNotLoaded is returned by operations that need loaded values.
	ErrNotLoaded = errors.New("properties not loaded")
)

// LoadError reports that the initial values could not be obtained. The
// session can not render a form after it.
type LoadError struct {
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load properties: %s", e.Reason)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// PersistError reports a failed write. The working set is left as it was so
// the save can be retried.
type PersistError struct {
	Reason string
	Err    error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to save properties: %s", e.Reason)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
