package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/juanfranbrv/automatservicios/constants"
	"github.com/juanfranbrv/automatservicios/internal/common"
	"github.com/juanfranbrv/automatservicios/internal/extract"
	"github.com/juanfranbrv/automatservicios/internal/llm"
	"github.com/juanfranbrv/automatservicios/internal/results"
)

// CategoryOutcome is the per-category result of one processing run.
type CategoryOutcome struct {
	Category constants.Category       `json:"category"`
	Label    string                   `json:"label"`
	Status   constants.CategoryStatus `json:"status"`
	Code     string                   `json:"code,omitempty"`
	Message  string                   `json:"message,omitempty"`
	Fields   *llm.InvoiceFields       `json:"fields,omitempty"`
}

// Processor coordinates text extraction, field extraction and storage for
// the four invoice categories. Work is strictly sequential in the fixed
// category order; every per-category failure is isolated and never aborts
// processing of the remaining categories.
type Processor struct {
	Logger    *slog.Logger
	Extractor extract.TextExtractor
	Fields    llm.FieldExtractor
	Results   *results.Service
}

func NewProcessor(logger *slog.Logger, tx extract.TextExtractor, fe llm.FieldExtractor, res *results.Service) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, Extractor: tx, Fields: fe, Results: res}
}

// ProcessBatch handles one user-triggered "process" action: each uploaded
// category is run through the full pipeline, one at a time.
func (p *Processor) ProcessBatch(ctx context.Context, sessionID uuid.UUID, uploads map[constants.Category][]byte) []CategoryOutcome {
	outcomes := make([]CategoryOutcome, 0, len(constants.AllCategories()))
	for _, cat := range constants.AllCategories() {
		data, ok := uploads[cat]
		if !ok {
			outcomes = append(outcomes, CategoryOutcome{
				Category: cat,
				Label:    cat.Label(),
				Status:   constants.StatusSkipped,
			})
			continue
		}
		outcomes = append(outcomes, p.ProcessCategory(ctx, sessionID, cat, data))
	}
	return outcomes
}

// ProcessCategory runs extract -> prompt/complete -> normalize -> store for
// one category and classifies any failure.
func (p *Processor) ProcessCategory(ctx context.Context, sessionID uuid.UUID, cat constants.Category, data []byte) CategoryOutcome {
	outcome := CategoryOutcome{Category: cat, Label: cat.Label()}

	ext, err := p.Extractor.Extract(ctx, data)
	if err != nil {
		p.Logger.Error("pipeline.extract.failed", "session_id", sessionID, "category", cat, "err", err)
		return p.failed(outcome, err)
	}
	if ext.Text == "" {
		// unreadable but well-formed PDF: treat as "no data", not a crash
		p.Logger.Warn("pipeline.extract.empty", "session_id", sessionID, "category", cat, "pages", ext.Pages)
		return p.failed(outcome, fmt.Errorf("%w: extraction produced no text", common.ErrExtraction))
	}
	p.Logger.Info("pipeline.extract.ok",
		"session_id", sessionID, "category", cat,
		"pages", ext.Pages, "pages_read", ext.PagesRead, "text_len", len(ext.Text),
	)

	fields, _, err := p.Fields.ExtractFields(ctx, llm.ExtractRequest{
		InvoiceText:   ext.Text,
		CategoryLabel: cat.Label(),
	})
	if err != nil {
		p.Logger.Error("pipeline.parse.failed", "session_id", sessionID, "category", cat, "err", err)
		return p.failed(outcome, err)
	}

	if err := p.Results.Put(ctx, sessionID, cat, fields); err != nil {
		p.Logger.Error("pipeline.store.failed", "session_id", sessionID, "category", cat, "err", err)
		return p.failed(outcome, err)
	}

	p.Logger.Info("pipeline.category.ok",
		"session_id", sessionID, "category", cat,
		"amount", fields.Amount, "start_date", fields.StartDate, "end_date", fields.EndDate,
	)
	outcome.Status = constants.StatusOK
	outcome.Fields = &fields
	return outcome
}

func (p *Processor) failed(outcome CategoryOutcome, err error) CategoryOutcome {
	outcome.Status = constants.StatusFailed
	outcome.Code = common.ErrorCode(err)
	outcome.Message = err.Error()
	return outcome
}
