package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"bricks_backend/internal/model"
	"bricks_backend/internal/server"
	"bricks_backend/pkg/config"
	"bricks_backend/pkg/cron"
	"bricks_backend/pkg/database"
	"bricks_backend/pkg/logger"
	"bricks_backend/pkg/seed"
)

func openDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db, model.All()...); err != nil {
		return nil, err
	}
	return db, nil
}

func serve(cfg *config.Config) error {
	db, err := openDB(cfg)
	if err != nil {
		return err
	}

	audit, err := cron.InitLedgerAuditCron(db, cfg.Audit.Schedule)
	if err != nil {
		return err
	}
	defer audit.Stop()

	app := server.New(db, cfg.Server)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Log.Info("Shutting down server...")
		_ = app.Shutdown()
	}()

	logger.Log.Infof("Server is running on port %s", cfg.Server.Port)
	return app.Listen(":" + cfg.Server.Port)
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "bricks",
		Short:         "Real estate marketplace API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cfg)
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cfg)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := openDB(cfg); err != nil {
				return err
			}
			logger.Log.Info("Migration completed")
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Insert categories and demo accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			return seed.Run(db)
		},
	})

	return root
}

func main() {
	cfg := config.Load()
	logger.Init("bricks", cfg.Log.Level)

	if err := newRootCmd(cfg).Execute(); err != nil {
		logger.Log.Fatal(err)
	}
}
