// Package cli defines the propedit command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/billie-coop/propedit/internal/app"
	"github.com/billie-coop/propedit/internal/config"
	"github.com/billie-coop/propedit/internal/logger"
	"github.com/billie-coop/propedit/internal/tui"
)

// LogFileName is the editor's log file inside the preferences directory.
const LogFileName = "propedit.log"

// Options replace the real environment in tests.
type Options struct {
	// Fs defaults to the OS filesystem.
	Fs afero.Fs
	// ConfigDir defaults to config.DefaultDir().
	ConfigDir string
	// RunTUI runs the interactive editor. Defaults to a full-screen
	// bubbletea program.
	RunTUI func(ctx context.Context, a *app.App) error
}

type runtime struct {
	opts     Options
	fs       afero.Fs
	prefs    *config.Manager
	log      logger.Logger
	logLevel string
	logJSON  bool
	closers  []io.Closer
}

// NewRootCommand builds the command tree.
func NewRootCommand(opts Options) *cobra.Command {
	rt := &runtime{opts: opts}
	var serverPath string

	root := &cobra.Command{
		Use:   "propedit --path DIR",
		Short: "Edit a Minecraft server.properties file",
		Long: `propedit shows the settings of a Minecraft server as a grouped form.
Values that do not fit their control are kept as entered and reported when
the file is saved.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: rt.setup,
		PersistentPostRun: func(*cobra.Command, []string) { rt.teardown() },
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.runEditor(cmd, serverPath)
		},
	}
	root.Flags().StringVarP(&serverPath, "path", "p", "", "Minecraft server directory")
	_ = root.MarkFlagRequired("path")

	root.PersistentFlags().StringVar(&rt.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&rt.logJSON, "log-json", false, "write logs as JSON")

	root.AddCommand(
		newShowCommand(rt),
		newSetCommand(rt),
		newConfigCommand(rt),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	cmd := NewRootCommand(Options{})
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// setup loads preferences and builds the headless logger.
func (rt *runtime) setup(cmd *cobra.Command, _ []string) error {
	rt.fs = rt.opts.Fs
	if rt.fs == nil {
		rt.fs = afero.NewOsFs()
	}

	dir := rt.opts.ConfigDir
	if dir == "" {
		var err error
		if dir, err = config.DefaultDir(); err != nil {
			return err
		}
	}
	rt.prefs = config.NewManager(rt.fs, dir)
	if err := rt.prefs.Load(); err != nil {
		return err
	}

	// Headless commands only report problems unless asked for more.
	level := logger.WarnLevel
	if cmd.Flags().Changed("log-level") {
		level = logger.ParseLevel(rt.logLevel)
	}
	rt.log = logger.NewLogger(&logger.Config{
		Level:      level,
		Output:     cmd.ErrOrStderr(),
		JSON:       rt.logJSON,
		TimeFormat: logger.DefaultConfig().TimeFormat,
	})
	cmd.SetContext(logger.ContextWithLogger(cmd.Context(), rt.log))
	return nil
}

func (rt *runtime) teardown() {
	for _, c := range rt.closers {
		_ = c.Close()
	}
	rt.closers = nil
}

// newApp wires the services for a server directory.
func (rt *runtime) newApp(dir string, log logger.Logger) (*app.App, error) {
	return app.New(app.Options{
		ServerDir: dir,
		Fs:        rt.opts.Fs,
		Prefs:     rt.prefs,
		Logger:    log,
	})
}

// fileLogger sends logs to a file because the terminal belongs to the UI.
func (rt *runtime) fileLogger(cmd *cobra.Command) (logger.Logger, error) {
	cfg := rt.prefs.Get()
	path := cfg.LogFile
	if path == "" {
		path = filepath.Join(rt.prefs.Dir(), LogFileName)
	}
	if err := rt.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := rt.fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	rt.closers = append(rt.closers, f)

	level := logger.ParseLevel(cfg.LogLevel)
	if cmd.Flags().Changed("log-level") {
		level = logger.ParseLevel(rt.logLevel)
	}
	return logger.NewLogger(&logger.Config{
		Level:      level,
		Output:     f,
		JSON:       rt.logJSON,
		TimeFormat: "2006-01-02 15:04:05",
	}), nil
}

func (rt *runtime) runEditor(cmd *cobra.Command, dir string) error {
	log, err := rt.fileLogger(cmd)
	if err != nil {
		return err
	}

	a, err := rt.newApp(dir, log)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if err := a.StartWatcher(ctx); err != nil {
		log.Warn("external changes will not be detected", "error", err)
	}

	log.Info("editor started", "path", a.Store.Path())
	run := rt.opts.RunTUI
	if run == nil {
		run = runProgram
	}
	return run(ctx, a)
}

func runProgram(_ context.Context, a *app.App) error {
	p := tea.NewProgram(tui.New(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
