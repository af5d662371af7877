// Package workset holds the values being edited in one session.
//
// The Store is the single source of truth while the form is open. It is
// filled once from the properties file, changed one key at a time by
// edits, and copied into an immutable Snapshot when a save starts. It never
// gains or loses keys after Load: hidden keys the form does not show are
// carried along untouched so they are written back as they were read.
package workset

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/billie-coop/propedit/internal/csync"
	"github.com/billie-coop/propedit/internal/value"
)

// ErrUnknownKey is wrapped by UnknownKeyError.
var ErrUnknownKey = errors.New("unknown property key")

// UnknownKeyError reports a write to a key that was not loaded.
type UnknownKeyError struct {
	Key string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownKey, e.Key)
}

func (e *UnknownKeyError) Unwrap() error {
	return ErrUnknownKey
}

// Entry is one key and its value.
type Entry = csync.Pair[string, value.Value]

// Store is the mutable key to value mapping of a session.
type Store struct {
	values *csync.Map[string, value.Value]
	dirty  atomic.Bool
	rev    atomic.Uint64
}

// New returns an empty store.
func New() *Store {
	return &Store{values: csync.NewMap[string, value.Value]()}
}

// Load replaces the whole store with entries, keeping their order, and
// marks it clean.
func (s *Store) Load(entries []Entry) {
	s.values.Replace(entries)
	s.rev.Add(1)
	s.dirty.Store(false)
}

// Get returns the value of key.
func (s *Store) Get(key string) (value.Value, bool) {
	return s.values.Get(key)
}

// Set overwrites the value of an existing key without validating it.
// Keys that were not loaded are rejected with *UnknownKeyError.
func (s *Store) Set(key string, v value.Value) error {
	if !s.values.Update(key, v) {
		return &UnknownKeyError{Key: key}
	}
	s.rev.Add(1)
	s.dirty.Store(true)
	return nil
}

// Keys returns the loaded keys in load order.
func (s *Store) Keys() []string {
	return s.values.Keys()
}

// Len returns the number of loaded keys.
func (s *Store) Len() int {
	return s.values.Len()
}

// Dirty reports whether anything was set since Load or the last MarkCleanAt.
func (s *Store) Dirty() bool {
	return s.dirty.Load()
}

// MarkCleanAt clears the dirty flag only if nothing changed since snap was
// taken. It reports whether the store is now clean.
func (s *Store) MarkCleanAt(snap Snapshot) bool {
	if s.rev.Load() != snap.rev {
		return false
	}
	s.dirty.Store(false)
	return true
}

// Snapshot returns an immutable copy of the current values.
func (s *Store) Snapshot() Snapshot {
	rev := s.rev.Load()
	entries := s.values.Pairs()
	index := make(map[string]int, len(entries))
	for i, e := range entries {
		index[e.Key] = i
	}
	return Snapshot{entries: entries, index: index, rev: rev}
}

// Snapshot is a read-only copy of a Store at one point in time.
type Snapshot struct {
	entries []Entry
	index   map[string]int
	rev     uint64
}

// NewSnapshot builds a snapshot directly from entries. A repeated key keeps
// its first position and its last value, the same as Store.Load.
func NewSnapshot(entries []Entry) Snapshot {
	s := Snapshot{index: make(map[string]int, len(entries))}
	for _, e := range entries {
		if i, dup := s.index[e.Key]; dup {
			s.entries[i].Value = e.Value
			continue
		}
		s.index[e.Key] = len(s.entries)
		s.entries = append(s.entries, e)
	}
	return s
}

// Get returns the value of key in the snapshot.
func (s Snapshot) Get(key string) (value.Value, bool) {
	i, ok := s.index[key]
	if !ok {
		return value.Value{}, false
	}
	return s.entries[i].Value, true
}

// Len returns the number of entries.
func (s Snapshot) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the entries in order.
func (s Snapshot) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
