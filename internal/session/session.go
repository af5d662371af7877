package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/billie-coop/propedit/internal/form"
	"github.com/billie-coop/propedit/internal/logger"
	"github.com/billie-coop/propedit/internal/reconcile"
	"github.com/billie-coop/propedit/internal/schema"
	"github.com/billie-coop/propedit/internal/tui/events"
	"github.com/billie-coop/propedit/internal/workset"
)

// InitialState is what a Backend hands over at load time.
type InitialState struct {
	// Entries are the stored values in file order.
	Entries []workset.Entry
	// Location is shown to the user, usually the server directory.
	Location string
}

// Backend reads and writes the stored property values.
type Backend interface {
	FetchInitialState(ctx context.Context) (InitialState, error)
	Persist(ctx context.Context, entries []workset.Entry) error
}

// SaveReport describes a successful save.
type SaveReport struct {
	Location string
	// Warnings are keys whose values were written as entered because they
	// could not be coerced to their expected type.
	Warnings []*reconcile.CoercionError
	// Clean is false when edits arrived while the save was running.
	Clean bool
}

// Option configures a Session.
type Option func(*Session)

// WithBroker publishes status and edit events on b.
func WithBroker(b *events.Broker) Option {
	return func(s *Session) { s.broker = b }
}

// WithLogger sets the session logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Session) { s.log = l }
}

// Session is a single editing session.
type Session struct {
	reg     *schema.Registry
	backend Backend
	store   *workset.Store
	broker  *events.Broker
	log     logger.Logger

	saving atomic.Bool

	mu       sync.RWMutex
	state    State
	loaded   bool
	location string
	loadErr  error
}

// New creates an idle session. Nothing is read until Load.
func New(reg *schema.Registry, backend Backend, opts ...Option) *Session {
	s := &Session{
		reg:     reg,
		backend: backend,
		store:   workset.New(),
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches the initial values. It may be called again to reload, which
// discards unsaved edits.
func (s *Session) Load(ctx context.Context) error {
	s.setState(StateLoading, "loading properties")

	initial, err := s.backend.FetchInitialState(ctx)
	if err != nil {
		loadErr := &LoadError{Reason: err.Error(), Err: err}
		s.mu.Lock()
		s.loadErr = loadErr
		s.loaded = false
		s.mu.Unlock()
		s.log.Error("load failed", "error", err)
		s.setState(StateError, loadErr.Error())
		s.publish(events.LoadFailedEvent, events.StatusMessagePayload{Message: loadErr.Error(), Type: "error"})
		return loadErr
	}

	s.store.Load(initial.Entries)
	s.mu.Lock()
	s.loadErr = nil
	s.loaded = true
	s.location = initial.Location
	s.mu.Unlock()

	s.log.Info("properties loaded", "location", initial.Location, "keys", s.store.Len())
	s.setState(StateReady, fmt.Sprintf("loaded %s", initial.Location))
	return nil
}

// GroupsInOrder returns the form groups for the current values. After a
// failed load it returns the *LoadError instead.
func (s *Session) GroupsInOrder() ([]form.Group, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return form.GroupsInOrder(s.reg, s.store), nil
}

// Control returns the control for a single key.
func (s *Session) Control(key string) (form.ControlSpec, bool) {
	if s.ready() != nil {
		return form.ControlSpec{}, false
	}
	v, ok := s.store.Get(key)
	if !ok {
		return form.ControlSpec{}, false
	}
	return form.Derive(s.reg, key, v), true
}

// ApplyEdit interprets raw input for key and stores the result. Writes to
// keys that were not loaded are dropped with *workset.UnknownKeyError.
func (s *Session) ApplyEdit(key, raw string) error {
	if err := s.ready(); err != nil {
		return err
	}

	current, ok := s.store.Get(key)
	if !ok {
		err := &workset.UnknownKeyError{Key: key}
		s.log.Warn("edit dropped", "key", key, "error", err)
		s.publish(events.EditRejectedEvent, events.EditPayload{Key: key, Value: raw, Err: err})
		return err
	}

	v := form.Interpret(form.Derive(s.reg, key, current), raw)
	if err := s.store.Set(key, v); err != nil {
		s.log.Warn("edit dropped", "key", key, "error", err)
		s.publish(events.EditRejectedEvent, events.EditPayload{Key: key, Value: raw, Err: err})
		return err
	}

	s.log.Debug("edit applied", "key", key, "value", s.logValue(key, v.String()))
	s.publish(events.EditAppliedEvent, events.EditPayload{Key: key, Value: v.String()})
	if st := s.State(); st == StateSaved || st == StateError {
		s.setState(StateReady, "unsaved changes")
	}
	return nil
}

// RequestSave reconciles a snapshot of the working set and persists it.
// Only one save runs at a time; a concurrent request gets ErrSaveInProgress.
func (s *Session) RequestSave(ctx context.Context) (*SaveReport, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if !s.saving.CompareAndSwap(false, true) {
		return nil, ErrSaveInProgress
	}
	defer s.saving.Store(false)

	location := s.Location()
	s.setState(StateSaving, "saving")
	s.publish(events.SaveStartedEvent, events.SavePayload{Location: location})

	snap := s.store.Snapshot()
	res := reconcile.Reconcile(s.reg, snap)

	if err := s.backend.Persist(ctx, res.Entries); err != nil {
		perr := &PersistError{Reason: err.Error(), Err: err}
		s.log.Error("save failed", "location", location, "error", err)
		s.setState(StateError, perr.Error())
		s.publish(events.SaveFailedEvent, events.SavePayload{Location: location, Err: perr})
		return nil, perr
	}

	report := &SaveReport{
		Location: location,
		Warnings: res.Warnings,
		Clean:    s.store.MarkCleanAt(snap),
	}

	if len(res.Warnings) > 0 {
		for _, w := range res.Warnings {
			s.log.Warn("value saved as entered", "key", w.Key, "reason", w.Reason)
		}
		s.publish(events.SaveWarningsEvent, events.SaveWarningsPayload{Warnings: s.DescribeWarnings(res.Warnings)})
	}

	s.log.Info("properties saved", "location", location, "warnings", len(res.Warnings))
	msg := "saved"
	if n := len(res.Warnings); n > 0 {
		msg = fmt.Sprintf("saved with %d warning(s)", n)
	}
	s.setState(StateSaved, msg)
	s.publish(events.SaveCompletedEvent, events.SavePayload{Location: location})
	return report, nil
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Location returns the display location reported at load time.
func (s *Session) Location() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.location
}

// Dirty reports whether there are unsaved edits.
func (s *Session) Dirty() bool {
	return s.store.Dirty()
}

// Saving reports whether a save is in flight.
func (s *Session) Saving() bool {
	return s.saving.Load()
}

// Err returns the load error, if the last load failed.
func (s *Session) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

func (s *Session) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.loadErr != nil {
		return s.loadErr
	}
	if !s.loaded {
		return ErrNotLoaded
	}
	return nil
}

func (s *Session) setState(to State, msg string) {
	s.mu.Lock()
	from := s.state
	s.state = to
	s.mu.Unlock()

	s.log.Debug("status changed", "from", from, "to", to)
	s.publish(events.StatusChangedEvent, events.StatusPayload{
		From:    from.String(),
		To:      to.String(),
		Message: msg,
	})
}

func (s *Session) publish(t events.EventType, payload any) {
	if s.broker == nil {
		return
	}
	s.broker.Publish(events.Event{Type: t, Payload: payload})
}

// DescribeWarnings converts reconciliation warnings for display, masking
// the values of sensitive keys.
func (s *Session) DescribeWarnings(ws []*reconcile.CoercionError) []events.Warning {
	out := make([]events.Warning, 0, len(ws))
	for _, w := range ws {
		out = append(out, events.Warning{
			Key:    w.Key,
			Value:  s.logValue(w.Key, w.Attempted.String()),
			Reason: w.Reason,
		})
	}
	return out
}

func (s *Session) logValue(key, v string) string {
	if s.reg.IsSensitive(key) && v != "" {
		return "********"
	}
	return v
}

// IsLoadError reports whether err came from a failed load.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}
