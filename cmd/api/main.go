package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/cofre/internal/auth"
	"github.com/MrJamesThe3rd/cofre/internal/category"
	categoryStore "github.com/MrJamesThe3rd/cofre/internal/category/store"
	"github.com/MrJamesThe3rd/cofre/internal/config"
	"github.com/MrJamesThe3rd/cofre/internal/database"
	cofreHttp "github.com/MrJamesThe3rd/cofre/internal/http"
	categoryHandler "github.com/MrJamesThe3rd/cofre/internal/http/category"
	draftHandler "github.com/MrJamesThe3rd/cofre/internal/http/draft"
	licenseHandler "github.com/MrJamesThe3rd/cofre/internal/http/license"
	txHandler "github.com/MrJamesThe3rd/cofre/internal/http/transaction"
	"github.com/MrJamesThe3rd/cofre/internal/installment"
	"github.com/MrJamesThe3rd/cofre/internal/license"
	licenseStore "github.com/MrJamesThe3rd/cofre/internal/license/store"
	"github.com/MrJamesThe3rd/cofre/internal/observability"
	"github.com/MrJamesThe3rd/cofre/internal/transaction"
	txStore "github.com/MrJamesThe3rd/cofre/internal/transaction/store"
)

func main() {
	var (
		hashKey  = flag.String("hash-admin-key", "", "print the bcrypt hash to use as ADMIN_KEY_HASH and exit")
		issueFor = flag.String("issue-token", "", "print a signed token for this user id and exit")
		tokenTTL = flag.Duration("token-ttl", 30*24*time.Hour, "lifetime of tokens printed by -issue-token")
		envFile  = flag.String("env", ".env", "dotenv file to load if present")
	)
	flag.Parse()

	// A missing .env is normal outside development.
	_ = godotenv.Load(*envFile)

	if *hashKey != "" {
		hash, err := auth.HashAdminKey(*hashKey)
		if err != nil {
			fmt.Fprintln(os.Stderr, "hashing admin key:", err)
			os.Exit(1)
		}

		fmt.Println(hash)

		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.App.LogLevel)
	defer func() { _ = logger.Sync() }()

	zap.ReplaceGlobals(logger)

	if cfg.Auth.JWTSecret == "" {
		logger.Fatal("JWT_SECRET is required")
	}

	tokens := auth.NewTokens(cfg.Auth.JWTSecret)

	if *issueFor != "" {
		token, err := tokens.Sign(*issueFor, *tokenTTL)
		if err != nil {
			logger.Fatal("failed to sign token", zap.Error(err))
		}

		fmt.Println(token)

		return
	}

	if err := run(cfg, tokens, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, tokens *auth.Tokens, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := observability.InitTracer(ctx, cfg.App.Name, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("initializing tracer: %w", err)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db); err != nil {
		return err
	}

	metrics := observability.NewMetrics()

	var (
		transactionService = transaction.NewService(txStore.New(db))
		categoryService    = category.NewService(categoryStore.New(db))
		installmentService = installment.NewService(categoryService, transactionService, metrics, logger)
		licenses           = licenseStore.New(db)
		licenseService     = license.NewService(licenses, metrics, logger)
		adminService       = license.NewAdminService(licenses, logger)
	)

	var (
		transactionH  = txHandler.NewHandler(transactionService, installmentService)
		draftH        = draftHandler.NewHandler()
		categoryH     = categoryHandler.NewHandler(categoryService)
		licenseH      = licenseHandler.NewHandler(licenseService)
		adminLicenseH = licenseHandler.NewAdminHandler(adminService)
	)

	router := cofreHttp.New(cofreHttp.Options{
		CORSOrigins:  cfg.Server.CORSOrigins,
		AdminKeyHash: cfg.Auth.AdminKeyHash,
		Tokens:       tokens,
		Metrics:      metrics,
		Logger:       logger,
	}, transactionH, draftH, categoryH, licenseH, adminLicenseH)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", zap.String("addr", srv.Addr))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down server: %w", err)
		}

		return shutdownTracer(shutdownCtx)
	})

	return g.Wait()
}
