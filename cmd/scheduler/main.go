package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"vies_backend/internal/report"
	"vies_backend/internal/scheduler"
	"vies_backend/internal/vatcheck/repository"
	"vies_backend/platform/config"
	"vies_backend/platform/db"
	"vies_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env, "queue", cfg.AsynqQueue)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	repo := repository.New(pool)
	store := report.NewStore(cfg)

	worker, err := scheduler.NewWorker(cfg, store, repo, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	log.Info("scheduler running",
		"report_ttl", cfg.ReportTTL.String(),
		"history_retention", cfg.HistoryRetention.String(),
	)
	worker.Run(ctx)
	log.Info("scheduler stopped")
}
