package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting"
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
	"github.com/aquafarm-erp/aquafarm-erp/internal/platform/db"
	"github.com/aquafarm-erp/aquafarm-erp/internal/treasury"
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

	accountRepo := accounts.NewRepository(pool)
	accountService := accounts.NewService(accountRepo)
	journalRepo := journals.NewRepository(pool)
	journalService := journals.NewService(journalRepo, accountRepo)

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

	accountingHandler := accounting.NewHandler(logger, accountService, journalService, recon, aggregator, assembler)
	farmHandler := farm.NewHandler(logger, farmRepo)

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		AccountingHandler: accountingHandler,
		FarmHandler:       farmHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
