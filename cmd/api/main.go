package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/wealthfolio/internal/account"
	accountStore "github.com/MrJamesThe3rd/wealthfolio/internal/account/store"
	"github.com/MrJamesThe3rd/wealthfolio/internal/auth"
	"github.com/MrJamesThe3rd/wealthfolio/internal/budget"
	budgetStore "github.com/MrJamesThe3rd/wealthfolio/internal/budget/store"
	"github.com/MrJamesThe3rd/wealthfolio/internal/category"
	categoryStore "github.com/MrJamesThe3rd/wealthfolio/internal/category/store"
	"github.com/MrJamesThe3rd/wealthfolio/internal/config"
	"github.com/MrJamesThe3rd/wealthfolio/internal/dashboard"
	"github.com/MrJamesThe3rd/wealthfolio/internal/database"
	"github.com/MrJamesThe3rd/wealthfolio/internal/export"
	"github.com/MrJamesThe3rd/wealthfolio/internal/fx"
	"github.com/MrJamesThe3rd/wealthfolio/internal/goal"
	goalStore "github.com/MrJamesThe3rd/wealthfolio/internal/goal/store"
	wfHttp "github.com/MrJamesThe3rd/wealthfolio/internal/http"
	accountHandler "github.com/MrJamesThe3rd/wealthfolio/internal/http/account"
	budgetHandler "github.com/MrJamesThe3rd/wealthfolio/internal/http/budget"
	categoryHandler "github.com/MrJamesThe3rd/wealthfolio/internal/http/category"
	dashboardHandler "github.com/MrJamesThe3rd/wealthfolio/internal/http/dashboard"
	exportHandler "github.com/MrJamesThe3rd/wealthfolio/internal/http/export"
	goalHandler "github.com/MrJamesThe3rd/wealthfolio/internal/http/goal"
	importHandler "github.com/MrJamesThe3rd/wealthfolio/internal/http/importcsv"
	insuranceHandler "github.com/MrJamesThe3rd/wealthfolio/internal/http/insurance"
	ledgerHandler "github.com/MrJamesThe3rd/wealthfolio/internal/http/ledger"
	matchingHandler "github.com/MrJamesThe3rd/wealthfolio/internal/http/matching"
	networthHandler "github.com/MrJamesThe3rd/wealthfolio/internal/http/networth"
	portfolioHandler "github.com/MrJamesThe3rd/wealthfolio/internal/http/portfolio"
	savingsHandler "github.com/MrJamesThe3rd/wealthfolio/internal/http/savings"
	"github.com/MrJamesThe3rd/wealthfolio/internal/importer"
	"github.com/MrJamesThe3rd/wealthfolio/internal/insurance"
	insuranceStore "github.com/MrJamesThe3rd/wealthfolio/internal/insurance/store"
	"github.com/MrJamesThe3rd/wealthfolio/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/wealthfolio/internal/ledger/store"
	"github.com/MrJamesThe3rd/wealthfolio/internal/logger"
	"github.com/MrJamesThe3rd/wealthfolio/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/wealthfolio/internal/matching/store"
	"github.com/MrJamesThe3rd/wealthfolio/internal/networth"
	networthStore "github.com/MrJamesThe3rd/wealthfolio/internal/networth/store"
	"github.com/MrJamesThe3rd/wealthfolio/internal/portfolio"
	portfolioStore "github.com/MrJamesThe3rd/wealthfolio/internal/portfolio/store"
	"github.com/MrJamesThe3rd/wealthfolio/internal/savings"
	savingsStore "github.com/MrJamesThe3rd/wealthfolio/internal/savings/store"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Init(cfg.App.LogLevel)

	if cfg.Auth.Secret == "" {
		slog.Error("AUTH_JWT_SECRET is required")
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.DB.Migrate {
		if err := database.Migrate(db); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
	}

	rates := fx.NewClient(cfg.FX.URL, cfg.FX.Fallback, cfg.FX.CacheTTL)

	var (
		accountService   = account.NewService(accountStore.New(db))
		ledgerService    = ledger.NewService(ledgerStore.New(db))
		portfolioService = portfolio.NewService(portfolioStore.New(db), cfg.FX.Fallback)
		savingsService   = savings.NewService(savingsStore.New(db), cfg.FX.Fallback)
		insuranceService = insurance.NewService(insuranceStore.New(db))
		categoryService  = category.NewService(categoryStore.New(db))
		budgetService    = budget.NewService(budgetStore.New(db))
		goalService      = goal.NewService(goalStore.New(db))
		matchingService  = matching.NewService(matchingStore.New(db))
		importService    = importer.NewService(matchingService, ledgerService)
		exportService    = export.NewService(ledgerService)
	)

	dashboardService := dashboard.NewService(dashboard.Deps{
		Accounts: accountService,
		Stocks:   portfolioService,
		Deposits: savingsService,
		Policies: insuranceService,
		Entries:  ledgerService,
		Budgets:  budgetService,
		Rates:    rates,
	})

	networthService := networth.NewService(networthStore.New(db), dashboardService)

	handlers := wfHttp.Handlers{
		Accounts:   accountHandler.NewHandler(accountService),
		Ledger:     ledgerHandler.NewHandler(ledgerService),
		Import:     importHandler.NewHandler(importService, ledgerService),
		Stocks:     portfolioHandler.NewHandler(portfolioService, rates),
		Savings:    savingsHandler.NewHandler(savingsService),
		Insurance:  insuranceHandler.NewHandler(insuranceService),
		Categories: categoryHandler.NewHandler(categoryService),
		Budgets:    budgetHandler.NewHandler(budgetService, ledgerService),
		NetWorth:   networthHandler.NewHandler(networthService),
		Goals:      goalHandler.NewHandler(goalService),
		Dashboard:  dashboardHandler.NewHandler(dashboardService),
		Matching:   matchingHandler.NewHandler(matchingService),
		Export:     exportHandler.NewHandler(exportService),
	}

	router := wfHttp.New(wfHttp.Options{
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		RateLimit:      cfg.HTTP.RateLimit,
		RateBurst:      cfg.HTTP.RateBurst,
		Authenticate:   auth.NewVerifier(cfg.Auth.Secret, cfg.Auth.Issuer).Middleware,
	}, handlers)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("starting server", "addr", srv.Addr, "app", cfg.App.Name)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}

	slog.Info("server stopped")
}
