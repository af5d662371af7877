package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billie-coop/propedit/internal/form"
	"github.com/billie-coop/propedit/internal/reconcile"
	"github.com/billie-coop/propedit/internal/schema"
	"github.com/billie-coop/propedit/internal/tui/events"
	"github.com/billie-coop/propedit/internal/value"
	"github.com/billie-coop/propedit/internal/workset"
)

type fakeBackend struct {
	mu        sync.Mutex
	initial   InitialState
	fetchErr  error
	persistFn func(ctx context.Context, entries []workset.Entry) error
	persisted [][]workset.Entry
}

func (f *fakeBackend) FetchInitialState(context.Context) (InitialState, error) {
	if f.fetchErr != nil {
		return InitialState{}, f.fetchErr
	}
	return f.initial, nil
}

func (f *fakeBackend) Persist(ctx context.Context, entries []workset.Entry) error {
	if f.persistFn != nil {
		if err := f.persistFn(ctx, entries); err != nil {
			return err
		}
	}
	f.mu.Lock()
	f.persisted = append(f.persisted, entries)
	f.mu.Unlock()
	return nil
}

func (f *fakeBackend) last() []workset.Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.persisted) == 0 {
		return nil
	}
	return f.persisted[len(f.persisted)-1]
}

func defaultEntries() []workset.Entry {
	var entries []workset.Entry
	for _, d := range schema.Default().Defaults() {
		entries = append(entries, workset.Entry{Key: d.Key, Value: d.Value})
	}
	return entries
}

func newLoaded(t *testing.T, opts ...Option) (*Session, *fakeBackend) {
	t.Helper()
	backend := &fakeBackend{initial: InitialState{Entries: defaultEntries(), Location: "/srv/mc"}}
	s := New(schema.Default(), backend, opts...)
	require.NoError(t, s.Load(context.Background()))
	return s, backend
}

func valueOf(entries []workset.Entry, key string) (value.Value, bool) {
	for _, e := range entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return value.Value{}, false
}

func TestSession_NotLoaded(t *testing.T) {
	s := New(schema.Default(), &fakeBackend{})

	assert.Equal(t, StateIdle, s.State())

	_, err := s.GroupsInOrder()
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.ErrorIs(t, s.ApplyEdit("pvp", "false"), ErrNotLoaded)
	_, err = s.RequestSave(context.Background())
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestSession_LoadFailureBlocksRendering(t *testing.T) {
	cause := errors.New("permission denied")
	s := New(schema.Default(), &fakeBackend{fetchErr: cause})

	err := s.Load(context.Background())

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "permission denied", loadErr.Reason)
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsLoadError(err))
	assert.Equal(t, StateError, s.State())

	groups, err := s.GroupsInOrder()
	assert.Nil(t, groups)
	assert.ErrorAs(t, err, &loadErr)
}

func TestSession_GroupsInOrder(t *testing.T) {
	s, _ := newLoaded(t)

	groups, err := s.GroupsInOrder()
	require.NoError(t, err)

	ids := make([]schema.GroupID, len(groups))
	for i, g := range groups {
		ids[i] = g.ID
	}
	assert.Equal(t, []schema.GroupID{schema.GroupGeneral, schema.GroupWorld, schema.GroupNetwork, schema.GroupSecurity}, ids)
	assert.Equal(t, "/srv/mc", s.Location())
	assert.Equal(t, StateReady, s.State())
}

func TestSession_BooleanToggleVisibleInNextControl(t *testing.T) {
	s, _ := newLoaded(t)

	before, ok := s.Control("pvp")
	require.True(t, ok)
	require.Equal(t, form.KindBoolean, before.Kind)
	require.Equal(t, value.Bool(true), before.Value)

	require.NoError(t, s.ApplyEdit("pvp", "false"))

	after, ok := s.Control("pvp")
	require.True(t, ok)
	assert.Equal(t, value.Bool(false), after.Value)
	assert.True(t, s.Dirty())
}

func TestSession_ApplyEdit(t *testing.T) {
	tests := []struct {
		name string
		key  string
		raw  string
		want value.Value
	}{
		{name: "above_max_integer_stored", key: "max-players", raw: "5000", want: value.Int(5000)},
		{name: "masked_text", key: "rcon.password", raw: "secret1", want: value.Text("secret1")},
		{name: "enum_option", key: "level-type", raw: "minecraft:amplified", want: value.Text("minecraft:amplified")},
		{name: "integer_garbage_is_zero", key: "server-port", raw: "abc", want: value.Int(0)},
		{name: "text_keeps_digits_as_text", key: "level-seed", raw: "12345", want: value.Text("12345")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newLoaded(t)

			require.NoError(t, s.ApplyEdit(tt.key, tt.raw))

			spec, ok := s.Control(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, spec.Value)
		})
	}
}

func TestSession_ApplyEditUnknownKey(t *testing.T) {
	broker := events.NewBroker()
	rejected := broker.Subscribe(events.EditRejectedEvent)
	s, _ := newLoaded(t, WithBroker(broker))
	before, err := s.GroupsInOrder()
	require.NoError(t, err)

	err = s.ApplyEdit("nonexistent-key", "x")

	var unknown *workset.UnknownKeyError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "nonexistent-key", unknown.Key)
	assert.False(t, s.Dirty())

	after, err := s.GroupsInOrder()
	require.NoError(t, err)
	assert.Equal(t, before, after)

	require.Len(t, rejected, 1)
	ev := <-rejected
	assert.Equal(t, "nonexistent-key", ev.Payload.(events.EditPayload).Key)
}

func TestSession_SavePersistsEditsAndHiddenKeys(t *testing.T) {
	s, backend := newLoaded(t)
	require.NoError(t, s.ApplyEdit("rcon.password", "secret1"))
	require.NoError(t, s.ApplyEdit("difficulty", "hard"))

	report, err := s.RequestSave(context.Background())
	require.NoError(t, err)

	assert.Empty(t, report.Warnings)
	assert.True(t, report.Clean)
	assert.Equal(t, "/srv/mc", report.Location)
	assert.False(t, s.Dirty())
	assert.Equal(t, StateSaved, s.State())

	persisted := backend.last()
	require.Len(t, persisted, len(defaultEntries()))
	v, _ := valueOf(persisted, "rcon.password")
	assert.Equal(t, value.Text("secret1"), v)
	v, _ = valueOf(persisted, "difficulty")
	assert.Equal(t, value.Text("hard"), v)
	// Not shown in any group but still written back.
	v, ok := valueOf(persisted, "broadcast-rcon-to-ops")
	require.True(t, ok)
	assert.Equal(t, value.Bool(true), v)
}

func TestSession_SaveWarnsInsteadOfClamping(t *testing.T) {
	broker := events.NewBroker()
	warnings := broker.Subscribe(events.SaveWarningsEvent)
	s, backend := newLoaded(t, WithBroker(broker))
	require.NoError(t, s.ApplyEdit("max-players", "5000"))

	report, err := s.RequestSave(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Warnings, 1)
	assert.Equal(t, "max-players", report.Warnings[0].Key)
	assert.Equal(t, reconcile.OutOfRange, report.Warnings[0].Problem)

	v, _ := valueOf(backend.last(), "max-players")
	assert.Equal(t, value.Int(5000), v)

	require.Len(t, warnings, 1)
	payload := (<-warnings).Payload.(events.SaveWarningsPayload)
	assert.Equal(t, "max-players", payload.Warnings[0].Key)
}

func TestSession_PersistFailureKeepsWorkingSet(t *testing.T) {
	s, backend := newLoaded(t)
	backend.persistFn = func(context.Context, []workset.Entry) error {
		return errors.New("disk full")
	}
	require.NoError(t, s.ApplyEdit("motd", "hello"))

	report, err := s.RequestSave(context.Background())

	assert.Nil(t, report)
	var perr *PersistError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "disk full", perr.Reason)
	assert.Equal(t, StateError, s.State())
	assert.True(t, s.Dirty())

	spec, _ := s.Control("motd")
	assert.Equal(t, value.Text("hello"), spec.Value)

	// Retry succeeds once the backend recovers.
	backend.persistFn = nil
	_, err = s.RequestSave(context.Background())
	require.NoError(t, err)
	assert.False(t, s.Dirty())
}

func TestSession_ConcurrentSaveRejected(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	s, backend := newLoaded(t)
	backend.persistFn = func(context.Context, []workset.Entry) error {
		close(started)
		<-release
		return nil
	}

	done := make(chan error, 1)
	go func() {
		_, err := s.RequestSave(context.Background())
		done <- err
	}()
	<-started

	assert.True(t, s.Saving())
	_, err := s.RequestSave(context.Background())
	assert.ErrorIs(t, err, ErrSaveInProgress)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, s.Saving())
}

func TestSession_EditDuringSaveStaysDirty(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	s, backend := newLoaded(t)
	backend.persistFn = func(context.Context, []workset.Entry) error {
		close(started)
		<-release
		return nil
	}

	type result struct {
		report *SaveReport
		err    error
	}
	done := make(chan result, 1)
	go func() {
		r, err := s.RequestSave(context.Background())
		done <- result{r, err}
	}()
	<-started

	require.NoError(t, s.ApplyEdit("motd", "edited mid-save"))
	close(release)

	res := <-done
	require.NoError(t, res.err)
	assert.False(t, res.report.Clean)
	assert.True(t, s.Dirty())

	v, _ := valueOf(backend.last(), "motd")
	assert.Equal(t, value.Text("A Minecraft Server"), v)
}

func TestSession_StatusTransitions(t *testing.T) {
	broker := events.NewBroker()
	status := broker.Subscribe(events.StatusChangedEvent)
	s, _ := newLoaded(t, WithBroker(broker))

	_, err := s.RequestSave(context.Background())
	require.NoError(t, err)
	require.NoError(t, s.ApplyEdit("pvp", "off"))

	var seen []string
	for len(status) > 0 {
		seen = append(seen, (<-status).Payload.(events.StatusPayload).To)
	}
	assert.Equal(t, []string{"loading", "ready", "saving", "saved", "ready"}, seen)
}

func TestSession_ReloadDiscardsEdits(t *testing.T) {
	s, _ := newLoaded(t)
	require.NoError(t, s.ApplyEdit("motd", "changed"))

	require.NoError(t, s.Load(context.Background()))

	spec, _ := s.Control("motd")
	assert.Equal(t, value.Text("A Minecraft Server"), spec.Value)
	assert.False(t, s.Dirty())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "saving", StateSaving.String())
	assert.Equal(t, "unknown", State(99).String())
}

func TestSession_DescribeWarningsMasksSecrets(t *testing.T) {
	s, _ := newLoaded(t)

	got := s.DescribeWarnings([]*reconcile.CoercionError{
		{Key: "rcon.password", Attempted: value.Int(1234), Reason: "expected text"},
		{Key: "max-players", Attempted: value.Int(5000), Reason: "outside the allowed range 1..1000"},
	})

	assert.Equal(t, []events.Warning{
		{Key: "rcon.password", Value: "********", Reason: "expected text"},
		{Key: "max-players", Value: "5000", Reason: "outside the allowed range 1..1000"},
	}, got)
}
