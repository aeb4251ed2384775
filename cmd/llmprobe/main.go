package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/juanfranbrv/automatservicios/internal/common"
	"github.com/juanfranbrv/automatservicios/internal/llm"
	"github.com/juanfranbrv/automatservicios/internal/llm/ollama"
	"github.com/juanfranbrv/automatservicios/internal/llm/openai"
)

// llmprobe sends one fixed extraction request through the configured
// provider and prints the normalized fields. Handy when wiring credentials.
const sampleInvoice = `FACTURA DE LUZ
Periodo de facturación: 01.03.2024 - 31.03.2024
Total factura: 45,00€
`

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	_ = godotenv.Load()
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	var completer llm.Completer
	if cfg.LLM.Provider == common.ProviderOllama {
		completer = ollama.NewClient(cfg.LLM.OllamaURL, cfg.LLM.OllamaModel, cfg.LLM.Timeout, logger)
	} else {
		completer = openai.NewClient(openai.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		}, logger)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	extractor := llm.NewExtractor(completer, logger)
	fields, raw, err := extractor.ExtractFields(ctx, llm.ExtractRequest{
		InvoiceText:   sampleInvoice,
		CategoryLabel: "Luz",
	})
	if err != nil {
		logger.Error("probe failed", "error", err, "raw", raw)
		os.Exit(1)
	}

	fmt.Printf("amount=%s start_date=%s end_date=%s\n", fields.Amount, fields.StartDate, fields.EndDate)
}
