package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpin "logistics/internal/adapters/in/http"
	"logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/postgres/migrations"
	"logistics/internal/core/application/usecases/queries"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

var cfgFile string

// NewRootCommand builds the logistics CLI.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "logistics",
		Short:         "Delivery logistics backend",
		Long:          `logistics dispatches delivery orders to riders, tracks them, settles rider earnings and collects payments.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "optional config file (yaml, json or env)")

	root.AddCommand(newServeCommand(), newMigrateCommand(), newSeedCommand(), newQuoteCommand())
	return root
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	loggerCfg := zap.NewProductionConfig()
	loggerCfg.Level = lvl
	return loggerCfg.Build()
}

// bootstrap loads config, builds the logger and opens the database.
func bootstrap() (Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := LoadConfig(cfgFile)
	if err != nil {
		return Config{}, nil, nil, err
	}
	logger, err := NewLogger(cfg.LogLevel)
	if err != nil {
		return Config{}, nil, nil, fmt.Errorf("build logger: %w", err)
	}
	db, err := postgres.Open(cfg.Postgres(), logger)
	if err != nil {
		return Config{}, nil, nil, err
	}
	return cfg, logger, db, nil
}

func closeDB(db *gorm.DB, logger *zap.Logger) {
	sqlDB, err := db.DB()
	if err == nil {
		err = sqlDB.Close()
	}
	if err != nil {
		logger.Warn("close database", zap.Error(err))
	}
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and background jobs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck
			defer closeDB(db, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := NewCompositionRoot(ctx, cfg, db, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := app.Close(); err != nil {
					logger.Warn("close notification sink", zap.Error(err))
				}
			}()

			doc, err := httpin.LoadSpec(ctx)
			if err != nil {
				return fmt.Errorf("load openapi document: %w", err)
			}
			e, err := app.Server().NewEcho(doc)
			if err != nil {
				return err
			}

			if cfg.JobsEnabled {
				jm := app.JobManager()
				if err := jm.StartAll(); err != nil {
					return err
				}
				defer jm.StopAll()
			}

			serveErr := make(chan error, 1)
			go func() {
				logger.Info("http server listening", zap.String("port", cfg.HTTPPort))
				serveErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort))
			}()

			select {
			case err := <-serveErr:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		},
	}
}

func newMigrateCommand() *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	withDB := func(fn func(cmd *cobra.Command, db *gorm.DB) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			_, logger, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer closeDB(db, logger)
			return fn(cmd, db)
		}
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: withDB(func(cmd *cobra.Command, db *gorm.DB) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			if err := migrations.Up(sqlDB); err != nil {
				return err
			}
			cmd.Println("migrations applied")
			return nil
		}),
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: withDB(func(cmd *cobra.Command, db *gorm.DB) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			if err := migrations.Down(sqlDB, steps); err != nil {
				return err
			}
			cmd.Printf("rolled back %d step(s)\n", steps)
			return nil
		}),
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		RunE: withDB(func(cmd *cobra.Command, db *gorm.DB) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			v, dirty, err := migrations.Version(sqlDB)
			if err != nil {
				return err
			}
			cmd.Printf("version %d (dirty: %t)\n", v, dirty)
			return nil
		}),
	}

	migrate.AddCommand(up, down, version)
	return migrate
}

func newQuoteCommand() *cobra.Command {
	var km float64
	quote := &cobra.Command{
		Use:   "quote",
		Short: "Price a delivery by distance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			query, err := queries.NewQuoteDeliveryFeeByDistance(km)
			if err != nil {
				return err
			}
			q, err := queries.NewQuoteDeliveryFeeQueryHandler().Handle(query)
			if err != nil {
				return err
			}
			cmd.Printf("distance: %.2f km\nfee: NGN %s\nrider share: NGN %s\n",
				q.DistanceKm, q.Fee.StringFixed(2), q.RiderShare.StringFixed(2))
			return nil
		},
	}
	quote.Flags().Float64Var(&km, "km", 0, "trip distance in kilometres")
	_ = quote.MarkFlagRequired("km")
	return quote
}
