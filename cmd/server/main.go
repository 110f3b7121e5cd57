package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/RichardoC/askbox/internal/api"
	"github.com/RichardoC/askbox/internal/config"
	"github.com/RichardoC/askbox/internal/db"
	"github.com/RichardoC/askbox/internal/llm"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	cfg := config.Load()

	zapConfig := zap.NewProductionConfig()
	if level, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		zapConfig.Level = zap.NewAtomicLevelAt(level)
	}
	logger, _ := zapConfig.Build()
	defer logger.Sync()

	database, err := db.New(cfg.DBPath)
	if err != nil {
		logger.Fatal("failed to initialize database",
			zap.Error(err),
			zap.String("dbPath", cfg.DBPath))
	}
	defer database.Close()

	llmService, err := llm.New(
		cfg.LLMBaseURL,
		cfg.LLMToken,
		cfg.LLMModel,
		database,
		logger,
	)
	if err != nil {
		logger.Fatal("failed to initialize LLM service", zap.Error(err))
	}

	handler := api.NewHandler(llmService, database, logger)
	router := api.NewRouter(handler, logger, api.RouterOptions{
		AllowedOrigins: cfg.AllowedOrigins,
		AskRate:        cfg.AskRatePerSec,
		AskBurst:       cfg.AskBurst,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shut down cleanly", zap.Error(err))
		}
	}()

	logger.Info("Starting server",
		zap.String("addr", srv.Addr),
		zap.String("model", cfg.LLMModel))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
