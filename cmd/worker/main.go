package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/accounts"
	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/journals"
	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/ledger"
	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/reports"
	"github.com/aquafarm-erp/aquafarm-erp/internal/ap"
	"github.com/aquafarm-erp/aquafarm-erp/internal/app"
	"github.com/aquafarm-erp/aquafarm-erp/internal/ar"
	"github.com/aquafarm-erp/aquafarm-erp/internal/farm"
	"github.com/aquafarm-erp/aquafarm-erp/internal/inventory"
	"github.com/aquafarm-erp/aquafarm-erp/internal/payroll"
	"github.com/aquafarm-erp/aquafarm-erp/internal/platform/cache"
	"github.com/aquafarm-erp/aquafarm-erp/internal/platform/db"
	"github.com/aquafarm-erp/aquafarm-erp/internal/treasury"
	"github.com/aquafarm-erp/aquafarm-erp/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	accountRepo := accounts.NewRepository(pool)
	journalRepo := journals.NewRepository(pool)
	arRepo := ar.NewRepository(pool)
	apRepo := ap.NewRepository(pool)
	payrollRepo := payroll.NewRepository(pool)
	treasuryRepo := treasury.NewRepository(pool)
	inventoryRepo := inventory.NewRepository(pool)
	farmRepo := farm.NewRepository(pool)

	recon := ledger.NewReconstructor(treasuryRepo, apRepo, arRepo, journalRepo)
	aggregator := ledger.NewAggregator(accountRepo, recon)
	assembler := reports.NewAssembler(
		arRepo,
		apRepo,
		payrollRepo,
		inventoryRepo,
		accountRepo,
		aggregator,
		cfg.CapitalInvestmentAmount(),
	)

	warmupJob := jobs.NewReportsWarmupJob(assembler, farmRepo, redisClient, logger, cfg.SnapshotCacheTTL)
	integrityJob := jobs.NewGLIntegrityJob(assembler, logger)

	warmupTask, err := jobs.NewReportsWarmupTask(jobs.ReportsWarmupPayload{})
	if err != nil {
		logger.Error("build warmup task", slog.Any("error", err))
		os.Exit(1)
	}
	integrityTask, err := jobs.NewGLIntegrityTask(jobs.GLIntegrityPayload{})
	if err != nil {
		logger.Error("build integrity task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskReportsWarmup, Handler: warmupJob.Handle},
			{Type: jobs.TaskGLIntegrity, Handler: integrityJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "15 1 * * *", Task: warmupTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "45 1 * * *", Task: integrityTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
