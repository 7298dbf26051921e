package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/platform/migrations"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// newRootCommand creates the root cobra command with global flags and the
// serve and migrate subcommands.
func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "tasks-api",
		Short: "HTTP API for managing tasks",
		Long: `tasks-api serves a JSON API for creating, reading, updating and deleting tasks.

CONFIGURATION:
  Configuration follows this priority order: flags > environment variables > config file > defaults

  TASKS_SERVER_PORT                        Listen port (default: 8080)
  TASKS_SERVER_LOG_LEVEL                   debug, info, warn or error (default: info)
  TASKS_STORE_DRIVER                       postgres, sqlite or memory (default: postgres)
  TASKS_STORE_URL                          Connection URL or SQLite file path
  TASKS_STORE_AUTO_MIGRATE                 Apply migrations on startup (default: false)
  TASKS_API_LEGACY_STATUS_CODES            Answer every error with 400 (default: false)
  TASKS_TASKS_STRICT_UPDATE                Reject updates of unknown task IDs (default: false)`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addGlobalFlags(root.PersistentFlags())

	root.AddCommand(newServeCommand(), newMigrateCommand())
	return root
}

// addGlobalFlags adds the configuration overrides shared by all subcommands.
func addGlobalFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "Path to a config file (default: ./config.yaml if present)")
	flags.Int("port", 8080, "Listen port (overrides TASKS_SERVER_PORT)")
	flags.String("log-level", "info", "Log level (overrides TASKS_SERVER_LOG_LEVEL)")
	flags.String("store-driver", "postgres", "Store driver: postgres, sqlite or memory (overrides TASKS_STORE_DRIVER)")
	flags.String("store-url", "", "Store connection URL or file path (overrides TASKS_STORE_URL)")
	flags.Bool("auto-migrate", false, "Apply migrations on startup (overrides TASKS_STORE_AUTO_MIGRATE)")
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfigAndLogger(cmd.Flags())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runServer(ctx, cfg, log)
		},
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:       fmt.Sprintf("migrate <%s>", strings.Join(migrations.Commands, "|")),
		Short:     "Run schema migrations against the configured SQL store",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: migrations.Commands,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfigAndLogger(cmd.Flags())
			if err != nil {
				return err
			}
			return runMigrate(cmd.Context(), cfg, args[0], log)
		},
	}
}

// loadConfigAndLogger loads configuration, applying flags that were set,
// and installs the configured logger as the slog default.
func loadConfigAndLogger(flags *pflag.FlagSet) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(flags)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("store_driver", cfg.Store.Driver),
		slog.Bool("legacy_status_codes", cfg.API.LegacyStatusCodes),
		slog.Bool("strict_update", cfg.Tasks.StrictUpdate))
	return cfg, log, nil
}

// runServer opens the store, builds the application and serves until ctx is done.
func runServer(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.cleanup()

	return app.startHTTPServer(ctx, app.setupRouter())
}

// runMigrate executes a goose command against the configured SQL store.
func runMigrate(ctx context.Context, cfg *config.Config, command string, log *slog.Logger) error {
	if cfg.Store.Driver == driverMemory {
		return fmt.Errorf("migrations require a SQL store driver, got %q", cfg.Store.Driver)
	}

	db, err := openDatabase(ctx, cfg.Store, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", slog.String("error", err.Error()))
		}
	}()

	return migrations.Run(ctx, db, cfg.Store.Driver, command, log)
}
