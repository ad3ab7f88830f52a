package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/onedrop-app/onedrop-api/internal/config"
	"github.com/onedrop-app/onedrop-api/internal/db"
	"github.com/onedrop-app/onedrop-api/internal/logger"
	"github.com/onedrop-app/onedrop-api/internal/repository/dao"
)

const (
	programName       = "onedrop"
	defaultConfigFile = "./cmd/app/config.yml"
)

var configFile string

// Start runs the CLI. Without a subcommand it serves the API.
func Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCommand().ExecuteContext(ctx)
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           programName,
		Short:         "Blood donation campaign API",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveRun(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", defaultConfigFile, "path to config file")

	rootCmd.AddCommand(serveCommand())
	rootCmd.AddCommand(migrateCommand())
	rootCmd.AddCommand(sweepCommand())
	rootCmd.AddCommand(tokenCommand())

	return rootCmd
}

// bootstrap loads the config and installs the global logger.
func bootstrap() (*config.AppConfig, error) {
	conf, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment, conf.Log.Level); err != nil {
		return nil, fmt.Errorf("failed to initialize logger -> %w", err)
	}

	return conf, nil
}

// openDatabase honours DATABASE_URL before the configured driver, then
// makes sure the schema is current.
func openDatabase(conf *config.AppConfig) (*gorm.DB, error) {
	var (
		gdb *gorm.DB
		err error
	)

	dbURL := os.Getenv("DATABASE_URL")
	switch {
	case dbURL != "":
		gdb, err = db.OpenPostgresWithURL(dbURL)
	case conf.Database.Driver == "sqlite":
		gdb, err = db.OpenSQLite(conf.SQLite.Path)
	default:
		gdb, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database -> %w", err)
	}

	if err = dao.InitTables(gdb); err != nil {
		return nil, fmt.Errorf("failed to migrate database -> %w", err)
	}

	return gdb, nil
}

func closeDatabase(gdb *gorm.DB) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return
	}
	if err = sqlDB.Close(); err != nil {
		zap.L().Warn("closing database", zap.Error(err))
	}
}
