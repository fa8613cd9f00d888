package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpAdapter "github.com/ledgerlite/ledgerlite/internal/adapter/http"
	"github.com/ledgerlite/ledgerlite/internal/adapter/http/handler"
	postgresRepo "github.com/ledgerlite/ledgerlite/internal/adapter/repository/postgres"
	redisRepo "github.com/ledgerlite/ledgerlite/internal/adapter/repository/redis"
	"github.com/ledgerlite/ledgerlite/internal/infrastructure/config"
	"github.com/ledgerlite/ledgerlite/internal/infrastructure/documents"
	"github.com/ledgerlite/ledgerlite/internal/infrastructure/logger"
	"github.com/ledgerlite/ledgerlite/internal/infrastructure/mailer"
	"github.com/ledgerlite/ledgerlite/internal/infrastructure/metrics"
	"github.com/ledgerlite/ledgerlite/internal/infrastructure/postgres"
	"github.com/ledgerlite/ledgerlite/internal/infrastructure/redis"
	"github.com/ledgerlite/ledgerlite/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	if cfg.MigrateOnStart {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	docStore, err := documents.NewFilesystemStore(cfg.ReportsDir, cfg.ReportsBaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare reports directory")
	}

	var notifier usecase.Notifier
	if cfg.SMTPHost != "" {
		notifier = mailer.NewSMTP(mailer.Config{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			From: cfg.SMTPFrom,
		})
	} else {
		log.Info().Msg("SMTP not configured, notifications will be logged")
		notifier = mailer.NewLogMailer(log)
	}

	m := metrics.New()

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	journalRepo := postgresRepo.NewJournalRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log)

	// Use cases
	accountUC := usecase.NewAccountUseCase(accountRepo, journalRepo, m)
	journalUC := usecase.NewJournalUseCase(txManager, accountRepo, journalRepo, userRepo, notifier, idGen, retrier, m, log)
	reportUC := usecase.NewReportUseCase(accountRepo, journalRepo, docStore, cache, cfg.RatioCacheTTL, m, log)

	// Handlers
	accountHandler := handler.NewAccountHandler(accountUC)
	journalHandler := handler.NewJournalHandler(journalUC)
	reportHandler := handler.NewReportHandler(reportUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler: accountHandler,
		JournalHandler: journalHandler,
		ReportHandler:  reportHandler,
		HealthHandler:  healthHandler,
		Logger:         log,
		ReportsDir:     docStore.Dir(),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
