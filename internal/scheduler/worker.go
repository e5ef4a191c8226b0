package scheduler

import (
	"context"
	"time"

	"vies_backend/internal/report"
	"vies_backend/internal/vatcheck/repository"
	"vies_backend/platform/config"
	"vies_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// Worker consumes the maintenance tasks and hosts the periodic scheduler that
// enqueues them.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux

	cfg   config.SchedulerConfig
	store *report.Store
	repo  repository.Repository
	log   *logger.Logger
}

// NewWorker builds the asynq server, mux and periodic registrations.
func NewWorker(cfg config.SchedulerConfig, store *report.Store, repo repository.Repository, log *logger.Logger) (*Worker, error) {
	opt, err := redisClientOpt(cfg.GetRedisURL())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	sched := asynq.NewScheduler(opt, nil)

	w := &Worker{
		server:    server,
		scheduler: sched,
		mux:       asynq.NewServeMux(),
		cfg:       cfg,
		store:     store,
		repo:      repo,
		log:       log,
	}

	w.mux.HandleFunc(TaskReportsCleanup, w.handleReportsCleanup)
	w.mux.HandleFunc(TaskHistoryPrune, w.handleHistoryPrune)

	cleanupTask, err := NewReportsCleanupTask()
	if err != nil {
		return nil, err
	}
	if _, err := sched.Register("@every 1h", cleanupTask, asynq.Queue(queue)); err != nil {
		return nil, err
	}

	pruneTask, err := NewHistoryPruneTask()
	if err != nil {
		return nil, err
	}
	if _, err := sched.Register("@every 24h", pruneTask, asynq.Queue(queue)); err != nil {
		return nil, err
	}

	return w, nil
}

// Run starts the periodic scheduler and the task server and blocks until the
// context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()
		w.scheduler.Shutdown()
		w.server.Shutdown()
	}()

	go func() {
		if err := w.scheduler.Run(); err != nil {
			w.log.Error("periodic scheduler stopped", "error", err)
		}
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleReportsCleanup(_ context.Context, _ *asynq.Task) error {
	if w.store == nil || !w.store.Enabled() {
		return nil
	}

	cutoff := time.Now().Add(-w.cfg.GetReportTTL())
	deleted, err := w.store.DeleteOlderThan(cutoff)
	if err != nil {
		w.log.Error("report cleanup failed", "error", err)
		return err
	}

	if deleted > 0 {
		w.log.Info("report copies cleaned up", "deleted", deleted)
	}
	return nil
}

func (w *Worker) handleHistoryPrune(ctx context.Context, _ *asynq.Task) error {
	if w.repo == nil {
		return nil
	}

	cutoff := time.Now().Add(-w.cfg.GetHistoryRetention())
	deleted, err := w.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		w.log.DatabaseError("prune vat checks", err)
		return err
	}

	if deleted > 0 {
		w.log.Info("check history pruned", "deleted", deleted)
	}
	return nil
}
