package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"skim/config"
	"skim/di"
	"skim/driver/skim_db"
	"skim/job"
	"skim/rest"
	"skim/utils/logger"
)

func main() {
	log := logger.InitLogger()
	log.Info("Starting skim backend")

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := skim_db.InitDBConnection(ctx, cfg.Database)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	container := di.NewApplicationComponents(pool, cfg)

	scheduler := job.NewJobScheduler()
	scheduler.Add(job.NewRefreshSweepJob(container.SyncFeedUsecase, cfg.Sync))
	scheduler.Start(ctx)

	// Sync endpoints write their report only after the whole run settles, so
	// the connection write timeout must outlive the sync run budget.
	writeTimeout := cfg.Server.WriteTimeout
	if writeTimeout < cfg.Sync.RunTimeout+time.Minute {
		writeTimeout = cfg.Sync.RunTimeout + time.Minute
	}

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = writeTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout
	rest.RegisterRoutes(e, container, cfg)

	go func() {
		<-ctx.Done()
		log.Info("Shutting down")
		if err := e.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down server", "error", err)
		}
	}()

	if err := e.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		log.Info("Server stopped", "reason", err)
	}

	scheduler.Shutdown()
}
