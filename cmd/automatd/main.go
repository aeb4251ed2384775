package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/juanfranbrv/automatservicios/internal/common"
	"github.com/juanfranbrv/automatservicios/internal/export"
	"github.com/juanfranbrv/automatservicios/internal/extract"
	"github.com/juanfranbrv/automatservicios/internal/llm"
	"github.com/juanfranbrv/automatservicios/internal/llm/ollama"
	"github.com/juanfranbrv/automatservicios/internal/llm/openai"
	"github.com/juanfranbrv/automatservicios/internal/pipeline"
	"github.com/juanfranbrv/automatservicios/internal/repository"
	"github.com/juanfranbrv/automatservicios/internal/results"
	"github.com/juanfranbrv/automatservicios/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// .env is optional; real deployments use plain env vars.
	if err := godotenv.Load(); err == nil {
		logger.Info("loaded .env file")
	}

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	db, err := repository.Open(ctx, logger)
	if err != nil {
		logger.Error("open results database", "error", err)
		os.Exit(1)
	}
	defer repository.Close(db, logger)

	resultsSvc := results.NewService(repository.NewResultRepository(db, logger), logger)
	exportSvc := export.NewService(resultsSvc, logger)

	textExtractor := extract.NewPDFExtractor(extract.Config{
		FirstThirdOnly: cfg.Extract.FirstThirdOnly,
	}, logger)

	completer := newCompleter(cfg, logger)
	fieldExtractor := llm.NewExtractor(completer, logger)

	processor := pipeline.NewProcessor(logger, textExtractor, fieldExtractor, resultsSvc)
	svc := server.NewService(logger, processor, resultsSvc, exportSvc, cfg.Server.MaxUploadMB)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: svc.Router(),
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.Addr, "provider", cfg.LLM.Provider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	logger.Info("stopped")
}

func newCompleter(cfg *common.Config, logger *slog.Logger) llm.Completer {
	if cfg.LLM.Provider == common.ProviderOllama {
		return ollama.NewClient(cfg.LLM.OllamaURL, cfg.LLM.OllamaModel, cfg.LLM.Timeout, logger)
	}
	return openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)
}
