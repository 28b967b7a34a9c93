package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/gyeongjo/reminderhub/internal/api"
	"github.com/gyeongjo/reminderhub/internal/clock"
	"github.com/gyeongjo/reminderhub/internal/config"
	"github.com/gyeongjo/reminderhub/internal/db"
	"github.com/gyeongjo/reminderhub/internal/executor"
	"github.com/gyeongjo/reminderhub/internal/metrics"
	"github.com/gyeongjo/reminderhub/internal/push"
	"github.com/gyeongjo/reminderhub/internal/queue"
	"github.com/gyeongjo/reminderhub/internal/ratelimiter"
	"github.com/gyeongjo/reminderhub/internal/repository"
	"github.com/gyeongjo/reminderhub/internal/scheduler"
	"github.com/gyeongjo/reminderhub/internal/service"
	"github.com/gyeongjo/reminderhub/internal/taskqueue"
	"github.com/gyeongjo/reminderhub/internal/trigger"
	"github.com/gyeongjo/reminderhub/internal/worker"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync() //nolint:errcheck

	// ---- configuration ----
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	// ---- database ----
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}
	logger.Info("database migrations applied")

	// ---- core dependencies ----
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	clk := clock.System{}
	dq := queue.New()
	store := taskqueue.NewPgQueue(pool, clk)
	repo := repository.NewPgNotificationRepository(pool)
	events := repository.NewPgEventReader(pool)
	prefs := repository.NewPgPreferenceReader(pool)

	// FCM is best-effort: when credentials are missing or invalid the
	// service still runs, reminders land in the inbox, and every push
	// attempt is recorded as failed.
	var sender push.Sender
	fcm, err := push.NewFCMSender(ctx, cfg.FCMCredentialsFile, cfg.PushTimeout)
	if err != nil {
		logger.Warn("FCM init failed, push delivery disabled", zap.Error(err))
		sender = push.Unavailable{}
	} else {
		sender = fcm
	}

	limiter := ratelimiter.New(cfg.PushRateLimit)
	exec := executor.New(events, prefs, repo, store, sender, limiter, clk, cfg.RetentionDays, logger)

	calc := trigger.NewCalculator(trigger.Offsets{
		DaysBefore:  cfg.ReminderDaysBefore,
		HoursBefore: cfg.ReminderHoursBefore,
	}, clk)
	orch := scheduler.NewOrchestrator(calc, store, logger)
	inbox := service.NewInboxService(repo, logger)

	// ---- worker pool ----
	// Context for all background goroutines; cancelled on shutdown signal.
	workerCtx, cancelWorkers := context.WithCancel(ctx)
	defer cancelWorkers()

	workerPool := worker.NewPool(cfg.Workers, dq, store, exec, logger, worker.MetricHooks{
		OnResult: m.WorkerHooks(),
	})
	workerPool.Start(workerCtx)

	poller := worker.NewPoller(store, dq, cfg.PollInterval, logger)
	go poller.Run(workerCtx)

	reclaimer := worker.NewReclaimer(store, cfg.ReclaimInterval, cfg.ClaimTTL, logger)
	go reclaimer.Run(workerCtx)

	go observeQueueDepths(workerCtx, m, dq, store, cfg.PollInterval)

	// ---- HTTP server ----
	router := api.NewRouter(orch, inbox, dq, store, reg, logger)
	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start server in a goroutine so it does not block the shutdown listener.
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// ---- graceful shutdown ----
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutdown signal received")

	// 1. Stop accepting new HTTP requests.
	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	// 2. Signal the poller, reclaimer and workers to stop.
	cancelWorkers()

	// 3. Wait for in-flight tasks to finish. Anything still claimed when
	// the process dies is released by the reclaimer after restart.
	workerPool.Wait()

	logger.Info("server stopped cleanly")
}

// observeQueueDepths refreshes the queue depth gauges on the poll cadence.
func observeQueueDepths(ctx context.Context, m *metrics.Metrics, dq *queue.DispatchQueue, store taskqueue.DeferredQueue, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			reminders, cleanups := dq.Depths()
			m.RemindersDepth.Set(float64(reminders))
			m.CleanupsDepth.Set(float64(cleanups))
			if pending, err := store.PendingCount(ctx); err == nil {
				m.PendingTasks.Set(float64(pending))
			}
		}
	}
}
