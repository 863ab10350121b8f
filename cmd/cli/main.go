package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/seat-arranger/cmd/cli/commands"
	"github.com/jakechorley/seat-arranger/internal/config"
	"github.com/jakechorley/seat-arranger/pkg/core/services"
	"github.com/jakechorley/seat-arranger/pkg/db"
	"github.com/jakechorley/seat-arranger/pkg/postgres"
	"github.com/jakechorley/seat-arranger/pkg/s3store"
	"github.com/jakechorley/seat-arranger/pkg/sqlite"
	"github.com/jakechorley/seat-arranger/pkg/utils/logging"
)

var (
	env     string
	verbose bool
	app     = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "seat-arranger",
		Short: "Seat Arranger CLI - Split a class into balanced groups",
		Long: `A CLI tool for arranging a roster of individuals into groups, honouring locked seats,
gender policies and pairwise together/apart constraints.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Store != nil {
				if err := app.Store.Close(); err != nil {
					app.Logger.Warn("Failed to close snapshot store", zap.Error(err))
				}
			}
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logs on the console")
	rootCmd.MarkPersistentFlagRequired("env")

	commands.Register(rootCmd, app)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, snapshot store and workspace
func initApp() error {
	var err error
	app.Env = env
	app.Ctx = context.Background()

	app.Logger, err = logging.New(logging.Options{Env: env, Verbose: verbose})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Debug("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	app.Store, err = openStore(app.Ctx, app.Cfg, app.Logger)
	if err != nil {
		return fmt.Errorf("failed to open snapshot store: %w", err)
	}

	app.Workspace = services.NewWorkspace(app.Store, app.Logger, app.Cfg.Settings())
	return nil
}

// openStore connects to the snapshot store selected by the storage driver
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (db.SnapshotStore, error) {
	driver := cfg.StorageDriver()
	logger.Debug("Opening snapshot store", zap.String("driver", driver))

	switch driver {
	case config.DriverPostgres:
		store, err := postgres.NewStore(ctx, cfg.Storage.PostgresURL, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverS3:
		s3cfg := cfg.Storage.S3
		store, err := s3store.New(ctx, s3store.Config{
			Bucket:          s3cfg.Bucket,
			Region:          s3cfg.Region,
			Endpoint:        s3cfg.Endpoint,
			PathStyle:       s3cfg.PathStyle,
			Prefix:          s3cfg.Prefix,
			AccessKeyID:     os.Getenv("SEAT_ARRANGER_S3_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("SEAT_ARRANGER_S3_SECRET_ACCESS_KEY"),
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		store, err := sqlite.NewStore(cfg.SQLitePath())
		if err != nil {
			return nil, err
		}
		return store, nil
	}
}
