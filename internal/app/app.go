// Package app wires the editor's services together: preferences, logging,
// the properties store, the editing session, the event broker and the
// file watcher.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/billie-coop/propedit/internal/config"
	"github.com/billie-coop/propedit/internal/logger"
	"github.com/billie-coop/propedit/internal/properties"
	"github.com/billie-coop/propedit/internal/schema"
	"github.com/billie-coop/propedit/internal/session"
	"github.com/billie-coop/propedit/internal/tui/events"
	"github.com/billie-coop/propedit/internal/watcher"
)

// ErrServerPath is returned when the server directory is missing or not a
// directory.
var ErrServerPath = errors.New("server path must be an existing directory")

// Options configure New.
type Options struct {
	// ServerDir is the Minecraft server directory holding server.properties.
	ServerDir string
	// Fs defaults to the OS filesystem, with writes guarded by a lock file.
	Fs afero.Fs
	// Prefs stores preference changes made from the UI. Optional.
	Prefs *config.Manager
	// Config holds the loaded preferences. Defaults apply when nil, or
	// Prefs.Get() when Prefs is set.
	Config *config.Config
	// Logger defaults to a no-op logger.
	Logger logger.Logger
	// Broker defaults to a new broker.
	Broker *events.Broker
}

// App holds all the core services
type App struct {
	Prefs       *config.Manager
	Config      *config.Config
	Log         logger.Logger
	Registry    *schema.Registry
	Store       *properties.Store
	Session     *session.Session
	EventBroker *events.Broker

	fs      afero.Fs
	watcher *watcher.FileWatcher
}

// New creates a new app with all services initialized. The server directory
// must exist.
func New(opts Options) (*App, error) {
	a := &App{
		Prefs:       opts.Prefs,
		Config:      opts.Config,
		Log:         opts.Logger,
		Registry:    schema.Default(),
		EventBroker: opts.Broker,
		fs:          opts.Fs,
	}
	if a.Config == nil && a.Prefs != nil {
		a.Config = a.Prefs.Get()
	}
	if a.Config == nil {
		a.Config = config.DefaultConfig()
	}
	if a.Log == nil {
		a.Log = logger.Nop()
	}
	if a.EventBroker == nil {
		a.EventBroker = events.NewBroker()
	}

	storeOpts := []properties.Option{
		properties.WithLogger(a.Log.With("component", "properties")),
		properties.WithRegistry(a.Registry),
	}

	var err error
	if a.fs == nil {
		a.fs = afero.NewOsFs()
		if err := checkDir(a.fs, opts.ServerDir); err != nil {
			return nil, err
		}
		a.Store, err = properties.NewOS(opts.ServerDir, storeOpts...)
		if err != nil {
			return nil, err
		}
	} else {
		if err := checkDir(a.fs, opts.ServerDir); err != nil {
			return nil, err
		}
		a.Store = properties.New(a.fs, filepath.Clean(opts.ServerDir), storeOpts...)
	}

	a.Session = session.New(a.Registry, a.Store,
		session.WithBroker(a.EventBroker),
		session.WithLogger(a.Log.With("component", "session")),
	)
	return a, nil
}

// Load reads the properties file into the session.
func (a *App) Load(ctx context.Context) error {
	return a.Session.Load(ctx)
}

// StartWatcher reports changes to server.properties as FileChangedEvent
// until ctx is done. Only the OS filesystem can be watched; on any other
// filesystem this is a no-op.
func (a *App) StartWatcher(ctx context.Context) error {
	if _, ok := a.fs.(*afero.OsFs); !ok {
		return nil
	}
	if a.watcher != nil {
		return nil
	}

	a.watcher = watcher.NewWatcher(watcher.DefaultDebounce, a.onFilesChanged, properties.FileName)
	a.watcher.SetLogger(a.Log.With("component", "watcher"))

	dir := a.Store.Info().ServerPath
	if err := a.watcher.Start(ctx, dir); err != nil {
		a.watcher = nil
		return err
	}
	return nil
}

func (a *App) onFilesChanged(paths []string) {
	changed, err := a.Store.ChangedOnDisk()
	if err != nil {
		a.Log.Warn("could not stat properties file", "error", err)
		return
	}
	if !changed {
		return
	}
	for _, p := range paths {
		a.Log.Info("properties changed on disk", "path", p)
		a.EventBroker.Publish(events.Event{
			Type:    events.FileChangedEvent,
			Payload: events.FileChangedPayload{Path: p},
		})
	}
}

// SavePreference stores a preference change. Without Prefs it does
// nothing.
func (a *App) SavePreference(key, value string) error {
	if a.Prefs == nil {
		return nil
	}
	if err := a.Prefs.Set(key, value); err != nil {
		return err
	}
	a.Config = a.Prefs.Get()
	return nil
}

// Close stops background work.
func (a *App) Close() {
	if a.watcher != nil {
		a.watcher.Stop()
	}
}

func checkDir(fsys afero.Fs, dir string) error {
	if dir == "" {
		return fmt.Errorf("%w: no path given", ErrServerPath)
	}
	info, err := fsys.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s does not exist", ErrServerPath, dir)
		}
		return fmt.Errorf("failed to stat server path: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrServerPath, dir)
	}
	return nil
}
