package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/onedrop-app/onedrop-api/internal/api"
	"github.com/onedrop-app/onedrop-api/internal/config"
	"github.com/onedrop-app/onedrop-api/internal/logger"
	"github.com/onedrop-app/onedrop-api/internal/store"
	"github.com/onedrop-app/onedrop-api/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and run the expiry sweeper",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveRun(cmd.Context())
		},
	}
}

func serveRun(ctx context.Context) error {
	conf, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = zap.L().Sync() }()

	gdb, err := openDatabase(conf)
	if err != nil {
		return err
	}
	defer closeDatabase(gdb)

	var opts []api.Option
	if conf.Redis.Enabled() {
		client := store.NewRedisClient(conf.Redis)
		defer func() { _ = client.Close() }()

		if err = store.Ping(ctx, client); err != nil {
			return fmt.Errorf("failed to initialize redis -> %w", err)
		}
		opts = append(opts, api.WithCountCache(store.NewRedisKV(client)))
	}

	s := api.NewServer(conf, gdb, opts...)

	conf.Watch(func(next *config.AppConfig) {
		if err := logger.SetLevel(next.Log.Level); err != nil {
			zap.L().Warn("ignoring log level change", zap.Error(err))
		}
	})

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()

	sweeper := worker.NewSweeper(s.CampaignService, conf.Sweep.Interval, s.Metrics())
	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		sweeper.Run(sweepCtx)
	}()

	srv := &http.Server{
		Addr:              ":" + conf.API.Port,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		zap.L().Info(fmt.Sprintf("starting server at %v", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err = <-serveErr:
		if err != nil {
			return fmt.Errorf("failed to start the server -> %w", err)
		}
	case <-ctx.Done():
		zap.L().Info("shutting down")
	}

	stopSweep()
	<-sweepDone

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("srv.Shutdown -> %w", err)
	}

	return nil
}
