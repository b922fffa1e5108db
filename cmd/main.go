package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tempo/internal/core/model"
	"tempo/internal/core/notes"
	"tempo/internal/logging"
	"tempo/internal/platform"
	"tempo/internal/storage"
	"tempo/internal/ui/preferences"
)

// cli holds flag values and the resources resolved from them.
type cli struct {
	configDir string
	dataDir   string
	backend   string
	verbose   bool

	logger   *zap.Logger
	platform platform.Service
	now      func() time.Time
	settings preferences.Settings
}

func newRootCmd(app *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "tempo",
		Short: "Countdown timer, stopwatch and calendar notes",
		Long: `Tempo is a small desktop widget with three tabs: a countdown timer that
plays an alarm, a stopwatch with laps, and a month calendar with notes.

Run without arguments to open the window. The notes and calendar
subcommands work on the same data without starting the GUI.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.prepare(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.logger != nil {
				_ = app.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runGUI(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&app.configDir, "config-dir", "", "settings directory (default <user config dir>/Tempo)")
	flags.StringVar(&app.dataDir, "data-dir", "", "notes directory (default: the settings directory)")
	flags.StringVar(&app.backend, "backend", "", "notes storage: file or sqlite (default from settings)")
	flags.BoolVarP(&app.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newNotesCmd(app), newCalendarCmd(app))
	return root
}

// prepare resolves directories, settings and the logger. The GUI also logs
// to a file since it usually has no terminal.
func (app *cli) prepare(cmd *cobra.Command) error {
	if app.configDir == "" {
		dir, err := app.platform.AppDir()
		if err != nil {
			return fmt.Errorf("resolve config directory: %w", err)
		}
		app.configDir = dir
	}
	if app.dataDir == "" {
		app.dataDir = app.configDir
	}

	options := logging.Options{Verbose: app.verbose}
	if cmd.Parent() == nil {
		options.File = logPath(app.configDir)
	}
	logger, err := logging.New(options)
	if err != nil {
		return err
	}
	app.logger = logger

	settings, err := storage.LoadSettings(app.configDir)
	if err != nil {
		app.logger.Warn("settings unreadable, using defaults", zap.Error(err))
	}
	app.settings = settings

	if app.backend == "" {
		app.backend = string(settings.Backend)
	}
	if !model.Backend(app.backend).Valid() {
		return fmt.Errorf("unknown backend %q: want %s or %s", app.backend, model.BackendFile, model.BackendSQLite)
	}
	app.logger.Debug("resolved paths",
		zap.String("config_dir", app.configDir),
		zap.String("data_dir", app.dataDir),
		zap.String("backend", app.backend),
	)
	return nil
}

// openStore opens the configured slots and loads the notes from them.
func (app *cli) openStore(ctx context.Context) (*notes.Store, storage.Slots, error) {
	slots, err := storage.OpenSlots(ctx, model.Backend(app.backend), app.dataDir)
	if err != nil {
		return nil, nil, err
	}
	store := notes.Open(ctx, slots, notes.Options{
		Now:    app.now,
		Logger: app.logger.Named("notes"),
	})
	return store, slots, nil
}

func main() {
	app := &cli{platform: platform.NewService(), now: time.Now}
	if err := newRootCmd(app).Execute(); err != nil {
		os.Exit(1)
	}
}
