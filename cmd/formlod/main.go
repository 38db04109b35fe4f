package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/formlo/formlo/internal/cache"
	"github.com/formlo/formlo/internal/common"
	"github.com/formlo/formlo/internal/export"
	"github.com/formlo/formlo/internal/extract"
	"github.com/formlo/formlo/internal/forms"
	"github.com/formlo/formlo/internal/llm"
	"github.com/formlo/formlo/internal/llm/chat"
	"github.com/formlo/formlo/internal/pipeline"
	"github.com/formlo/formlo/internal/repository"
	"github.com/formlo/formlo/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// MongoDB
	client, db, err := repository.Open(ctx, repository.DBConfig{
		URI:         cfg.Database.URI,
		Name:        cfg.Database.Name,
		DialTimeout: cfg.Database.DialTimeout,
	})
	if err != nil {
		logger.Error("mongo connect failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Warn("mongo disconnect error", "error", err)
		}
	}()
	logger.Info("mongo connected", "db", cfg.Database.Name)

	// Redis job cache (optional)
	var jobCache cache.JobCache = cache.Noop{}
	if cfg.Cache.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Cache.Addr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Error("redis ping failed", "addr", cfg.Cache.Addr, "error", err)
			os.Exit(1)
		}
		jobCache = cache.NewJobCache(rdb, cfg.Cache.JobTTL)
		logger.Info("redis connected", "addr", cfg.Cache.Addr)
	}

	// Repositories
	jobsRepo := repository.NewJobRepository(db, logger)
	formsRepo := repository.NewFormRepository(db, logger)
	usersRepo := repository.NewUserRepository(db, logger)

	// Pipeline components
	backend := chat.NewClient(chat.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)
	questions := llm.NewExtractor(backend, logger)

	formsClient := forms.NewClient(forms.ClientConfig{
		BaseURL: cfg.Forms.BaseURL,
		Token:   cfg.Forms.Token,
		Timeout: cfg.Forms.Timeout,
	}, logger)
	publisher := forms.NewProviderPublisher(formsClient, logger)

	processor := pipeline.NewProcessor(
		jobsRepo, formsRepo, jobCache,
		extract.NewExtractor(), questions, publisher,
		logger,
	)
	exporter := export.NewService(formsRepo, logger)

	handler := server.NewRouter(&server.Container{
		Processor:     processor,
		Jobs:          jobsRepo,
		Forms:         formsRepo,
		Users:         usersRepo,
		JobCache:      jobCache,
		Exporter:      exporter,
		MaxUploadSize: cfg.Server.MaxUploadSize,
		Logger:        logger,
	})

	srv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown error", "error", err)
	}
	logger.Info("stopped")
}
