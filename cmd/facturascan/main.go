package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/juanfranbrv/automatservicios/constants"
	"github.com/juanfranbrv/automatservicios/internal/common"
	"github.com/juanfranbrv/automatservicios/internal/export"
	"github.com/juanfranbrv/automatservicios/internal/extract"
	"github.com/juanfranbrv/automatservicios/internal/llm"
	"github.com/juanfranbrv/automatservicios/internal/llm/ollama"
	"github.com/juanfranbrv/automatservicios/internal/llm/openai"
	"github.com/juanfranbrv/automatservicios/internal/pipeline"
	"github.com/juanfranbrv/automatservicios/internal/repository"
	"github.com/juanfranbrv/automatservicios/internal/results"
)

// facturascan processes local invoice PDFs for the four service categories
// and prints a summary table, optionally writing the XLSX report.
func main() {
	var (
		luzPath      = flag.String("luz", "", "electricity invoice PDF")
		aguaPath     = flag.String("agua", "", "water invoice PDF")
		internetPath = flag.String("internet", "", "internet invoice PDF")
		gasPath      = flag.String("gas", "", "gas invoice PDF")
		outPath      = flag.String("o", "", "write XLSX report to this path")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	_ = godotenv.Load()
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		color.Red("invalid configuration: %v", err)
		os.Exit(1)
	}

	paths := map[constants.Category]string{
		constants.Electricity: *luzPath,
		constants.Water:       *aguaPath,
		constants.Internet:    *internetPath,
		constants.Gas:         *gasPath,
	}

	uploads := make(map[constants.Category][]byte, 4)
	for cat, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			color.Red("read %s: %v", path, err)
			os.Exit(1)
		}
		uploads[cat] = data
	}
	if len(uploads) == 0 {
		color.Yellow("nothing to do: pass at least one of -luz, -agua, -internet, -gas")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := repository.Open(ctx, logger)
	if err != nil {
		color.Red("open results store: %v", err)
		os.Exit(1)
	}
	defer repository.Close(db, logger)

	resultsSvc := results.NewService(repository.NewResultRepository(db, logger), logger)
	textExtractor := extract.NewPDFExtractor(extract.Config{FirstThirdOnly: cfg.Extract.FirstThirdOnly}, logger)
	fieldExtractor := llm.NewExtractor(newCompleter(cfg, logger), logger)
	processor := pipeline.NewProcessor(logger, textExtractor, fieldExtractor, resultsSvc)

	sessionID := uuid.New()
	outcomes := processor.ProcessBatch(ctx, sessionID, uploads)

	bold := color.New(color.Bold)
	_, _ = bold.Printf("%-10s %-8s %-12s %-12s %s\n", "Servicio", "Estado", "Inicio", "Fin", "Importe")
	for _, oc := range outcomes {
		switch oc.Status {
		case constants.StatusOK:
			color.Green("%-10s %-8s %-12s %-12s %s", oc.Label, oc.Status, oc.Fields.StartDate, oc.Fields.EndDate, oc.Fields.Amount)
		case constants.StatusFailed:
			color.Red("%-10s %-8s %s: %s", oc.Label, oc.Status, oc.Code, oc.Message)
		default:
			color.Yellow("%-10s %-8s", oc.Label, oc.Status)
		}
	}

	total, err := resultsSvc.Total(ctx, sessionID)
	if err != nil {
		color.Red("total: %v", err)
		os.Exit(1)
	}
	_, _ = bold.Printf("%-10s %-8s %-12s %-12s %s\n", "TOTAL", "", "", "", total)

	if *outPath != "" {
		xlsx, err := export.NewService(resultsSvc, logger).ExportXLSX(ctx, sessionID)
		if err != nil {
			color.Red("export: %v", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*outPath, xlsx, 0o644); err != nil {
			color.Red("write %s: %v", *outPath, err)
			os.Exit(1)
		}
		fmt.Printf("report written to %s\n", *outPath)
	}
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
