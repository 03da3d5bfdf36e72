package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/HamzaEzziymy/timers/internal/clock"
	"github.com/HamzaEzziymy/timers/internal/config"
	"github.com/HamzaEzziymy/timers/internal/logging"
	"github.com/HamzaEzziymy/timers/internal/storage"
	"github.com/HamzaEzziymy/timers/internal/timers"
	"github.com/HamzaEzziymy/timers/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app is what every subcommand runs against; it is built in PersistentPreRunE
type app struct {
	configPath string
	backend    string
	debugMode  bool

	cfg      *config.Config
	logger   *zap.Logger
	storage  storage.Storage
	store    *timers.Store
	clock    clock.Clock
	interval time.Duration

	openStorage func(context.Context, storage.Options) (storage.Storage, error)
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	return newRootCommand(clock.RealClock{})
}

func newRootCommand(c clock.Clock) *cobra.Command {
	return newApp(c).rootCommand()
}

func newApp(c clock.Clock) *app {
	return &app{clock: c, openStorage: storage.Open}
}

func (a *app) rootCommand() *cobra.Command {

	rootCmd := &cobra.Command{
		Use:   "timers",
		Short: "Keep a list of countdown timers",
		Long: `timers is a TUI application for tracking several countdowns at once.

Each timer has a title, a start time and an end time. The list is saved
after every change and shown with a one-second refresh.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.teardown,
		RunE:              a.runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath(), "Path to the config file")
	rootCmd.PersistentFlags().StringVar(&a.backend, "storage", "", "Storage backend: duckdb, sqlite, redis or memory")
	rootCmd.PersistentFlags().BoolVar(&a.debugMode, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newAddCommand(a))
	rootCmd.AddCommand(newListCommand(a))
	rootCmd.AddCommand(newDeleteCommand(a))
	rootCmd.AddCommand(newClearCommand(a))
	rootCmd.AddCommand(newWatchCommand(a))
	rootCmd.AddCommand(newDebugCommand(a))
	rootCmd.AddCommand(newConfigCommand(a))

	// cobra skips PersistentPostRun when RunE fails
	for _, cmd := range append([]*cobra.Command{rootCmd}, rootCmd.Commands()...) {
		if cmd.RunE != nil {
			cmd.RunE = a.closeOnReturn(cmd.RunE)
		}
	}

	return rootCmd
}

func (a *app) closeOnReturn(run func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		defer a.teardown(cmd, args)
		return run(cmd, args)
	}
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.backend != "" {
		cfg.Storage.Backend = a.backend
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg

	if a.interval, err = cfg.TickInterval(); err != nil {
		return err
	}

	a.logger, err = logging.New(cfg.Logging.File, cfg.Logging.Level, a.debugMode)
	if err != nil {
		return err
	}

	// config does not need storage
	if cmd.Name() == "config" {
		return nil
	}

	ctx := commandContext(cmd)
	a.storage, err = a.openStorage(ctx, storage.Options{
		Backend:   cfg.Storage.Backend,
		Path:      cfg.Storage.Path,
		RedisAddr: cfg.Storage.RedisAddr,
		RedisDB:   cfg.Storage.RedisDB,
		Prefix:    cfg.Storage.Prefix,
	})
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Backend, err)
	}

	a.store = timers.NewStore(a.storage, cfg.Storage.Key, timers.WithLogger(a.logger))
	if _, err := a.store.Load(ctx); err != nil {
		a.storage.Close()
		a.storage = nil
		return err
	}

	a.logger.Debug("Started",
		zap.String("command", cmd.Name()),
		zap.String("storage", cfg.Storage.Backend),
		zap.Int("timers", a.store.Len()))
	return nil
}

// teardown releases storage and flushes the log. It is safe to call twice.
func (a *app) teardown(cmd *cobra.Command, args []string) {
	if a.storage != nil {
		if err := a.storage.Close(); err != nil {
			a.logger.Warn("Failed to close storage", zap.Error(err))
		}
		a.storage = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func (a *app) runTUI(cmd *cobra.Command, args []string) error {
	if err := tui.ShowTUI(commandContext(cmd), a.store, a.clock, a.interval); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
