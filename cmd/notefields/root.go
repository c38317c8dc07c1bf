package main

import (
	"fmt"
	"os"

	"github.com/chris/notefields/config"
	"github.com/chris/notefields/internal/db"
	"github.com/chris/notefields/internal/logger"
	"github.com/chris/notefields/internal/notefields"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dbPath   string
	log      *zap.Logger
	database *db.DB
)

var rootCmd = &cobra.Command{
	Use:           "notefields",
	Short:         "Inspect note and resource fields in a notes database",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if dbPath != "" {
			cfg.DatabasePath = dbPath
		}
		log = logger.New(cfg)

		var err error
		database, err = db.Open(cfg.DatabasePath)
		if err != nil {
			return err
		}
		log.Debug("database opened", zap.String(logger.FieldPath, cfg.DatabasePath))
		notefields.Install(database.Conn(), log)
		return nil
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	err := rootCmd.Execute()
	shutdown()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// shutdown retires the statements before the connection they were prepared
// on goes away.
func shutdown() {
	if database == nil {
		return
	}
	if err := notefields.Close(); err != nil {
		log.Warn("closing statements", zap.Error(err))
	}
	if err := database.Close(); err != nil {
		log.Warn("closing database", zap.Error(err))
	}
	_ = log.Sync()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (overrides DATABASE_PATH)")
}
