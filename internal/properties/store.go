// Package properties reads and writes a server.properties file.
package properties

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"

	"github.com/billie-coop/propedit/internal/logger"
	"github.com/billie-coop/propedit/internal/schema"
	"github.com/billie-coop/propedit/internal/session"
	"github.com/billie-coop/propedit/internal/workset"
)

// defaultFileMode is the mode of a properties file created by the first save.
const defaultFileMode fs.FileMode = 0o644

// FileName is the name of the properties file inside a server directory.
const FileName = "server.properties"

const lockRetryDelay = 50 * time.Millisecond

// ErrLocked is returned when another process holds the write lock.
var ErrLocked = errors.New("properties file is locked by another process")

// Locker guards writes. *flock.Flock satisfies it.
type Locker interface {
	TryLockContext(ctx context.Context, retryDelay time.Duration) (bool, error)
	Unlock() error
}

// Info describes where a store reads and writes.
type Info struct {
	ServerPath     string
	PropertiesFile string
	Exists         bool
}

// Option configures a Store.
type Option func(*Store)

func WithLocker(l Locker) Option {
	return func(s *Store) { s.lock = l }
}

func WithLogger(l logger.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithRegistry sets the registry whose defaults are used when the file
// does not exist yet.
func WithRegistry(reg *schema.Registry) Option {
	return func(s *Store) { s.reg = reg }
}

// Store is the file-backed session.Backend.
type Store struct {
	fs   afero.Fs
	dir  string
	path string
	lock Locker
	log  logger.Logger
	reg  *schema.Registry

	mu      sync.Mutex
	known   bool
	exists  bool
	modTime time.Time
}

var _ session.Backend = (*Store)(nil)

// New returns a store for the server directory dir on fsys. Without
// WithLocker writes are not locked.
func New(fsys afero.Fs, dir string, opts ...Option) *Store {
	s := &Store{
		fs:   fsys,
		dir:  dir,
		path: filepath.Join(dir, FileName),
		lock: nopLocker{},
		log:  logger.Nop(),
		reg:  schema.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewOS returns a store on the real filesystem, locking writes with an
// advisory lock file next to the properties file.
func NewOS(dir string, opts ...Option) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve server path: %w", err)
	}
	opts = append([]Option{WithLocker(flock.New(filepath.Join(abs, FileName+".lock")))}, opts...)
	return New(afero.NewOsFs(), abs, opts...), nil
}

// Path returns the properties file path.
func (s *Store) Path() string {
	return s.path
}

// Info reports the server path, the properties file and whether it exists.
func (s *Store) Info() Info {
	_, err := s.fs.Stat(s.path)
	return Info{
		ServerPath:     s.dir,
		PropertiesFile: s.path,
		Exists:         err == nil,
	}
}

// FetchInitialState reads the file. A missing file yields the registry
// defaults; the file is created by the first save.
func (s *Store) FetchInitialState(ctx context.Context) (session.InitialState, error) {
	if err := ctx.Err(); err != nil {
		return session.InitialState{}, err
	}

	info, err := s.fs.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Info("properties file not found, using defaults", "path", s.path)
		s.record(false, time.Time{})
		return session.InitialState{Entries: s.defaults(), Location: s.dir}, nil
	}
	if err != nil {
		return session.InitialState{}, fmt.Errorf("failed to stat %s: %w", s.path, err)
	}
	if info.IsDir() {
		return session.InitialState{}, fmt.Errorf("%s is a directory", s.path)
	}

	f, err := s.fs.Open(s.path)
	if err != nil {
		return session.InitialState{}, fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer f.Close()

	entries, err := Parse(f)
	if err != nil {
		return session.InitialState{}, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	s.record(true, info.ModTime())
	s.log.Debug("properties read", "path", s.path, "keys", len(entries))
	return session.InitialState{Entries: entries, Location: s.dir}, nil
}

// Persist replaces the file with entries. The content is written to a
// temporary file in the same directory and renamed over the original while
// the lock is held.
func (s *Store) Persist(ctx context.Context, entries []workset.Entry) error {
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create server directory: %w", err)
	}

	ok, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("failed to lock %s: %w", s.path, err)
	}
	if !ok {
		return ErrLocked
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			s.log.Warn("failed to release lock", "path", s.path, "error", err)
		}
	}()

	tmp, err := afero.TempFile(s.fs, s.dir, "."+FileName+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = s.fs.Remove(tmpName) }

	if err := Format(tmp, entries); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write properties: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to write properties: %w", err)
	}
	mode := defaultFileMode
	if info, err := s.fs.Stat(s.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := s.fs.Chmod(tmpName, mode); err != nil {
		cleanup()
		return fmt.Errorf("failed to set mode on %s: %w", tmpName, err)
	}
	if err := s.fs.Rename(tmpName, s.path); err != nil {
		cleanup()
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}

	if info, err := s.fs.Stat(s.path); err == nil {
		s.record(true, info.ModTime())
	}
	s.log.Debug("properties written", "path", s.path, "keys", len(entries))
	return nil
}

// ChangedOnDisk reports whether the file was created, removed or modified
// since the last load or save through this store.
func (s *Store) ChangedOnDisk() (bool, error) {
	s.mu.Lock()
	known, exists, modTime := s.known, s.exists, s.modTime
	s.mu.Unlock()
	if !known {
		return false, nil
	}

	info, err := s.fs.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return exists, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", s.path, err)
	}
	return !exists || !info.ModTime().Equal(modTime), nil
}

func (s *Store) record(exists bool, modTime time.Time) {
	s.mu.Lock()
	s.known = true
	s.exists = exists
	s.modTime = modTime
	s.mu.Unlock()
}

func (s *Store) defaults() []workset.Entry {
	defs := s.reg.Defaults()
	entries := make([]workset.Entry, len(defs))
	for i, d := range defs {
		entries[i] = workset.Entry{Key: d.Key, Value: d.Value}
	}
	return entries
}

type nopLocker struct{}

func (nopLocker) TryLockContext(context.Context, time.Duration) (bool, error) { return true, nil }
func (nopLocker) Unlock() error                                              { return nil }
