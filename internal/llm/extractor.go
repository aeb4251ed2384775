package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/juanfranbrv/automatservicios/internal/common"
)

// Extractor implements FieldExtractor on top of any Completer: it builds the
// prompts, sends them, and normalizes whatever text comes back.
type Extractor struct {
	completer Completer
	logger    *slog.Logger
}

func NewExtractor(completer Completer, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{completer: completer, logger: logger}
}

// ExtractFields sends one extraction request and returns the normalized
// fields plus the raw response for diagnostics. Failures are classified with
// the common sentinel errors so the caller can skip the category and move on.
func (e *Extractor) ExtractFields(ctx context.Context, req ExtractRequest) (InvoiceFields, string, error) {
	rid := uuid.New().String()
	start := time.Now()

	e.logger.Info("llm.extract.start",
		"req_id", rid,
		"category", req.CategoryLabel,
		"text_len", len(req.InvoiceText),
	)

	sys := BuildSystemPrompt()
	user := BuildUserPrompt(req)

	raw, err := e.completer.Complete(ctx, sys, user)
	if err != nil {
		e.logger.Error("llm.extract.provider_error",
			"req_id", rid, "category", req.CategoryLabel, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return InvoiceFields{}, "", fmt.Errorf("%w: %v", common.ErrProvider, err)
	}

	payload, err := ExtractJSONObject(raw)
	if err != nil {
		e.logger.Error("llm.extract.no_json",
			"req_id", rid, "category", req.CategoryLabel, "raw_len", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return InvoiceFields{}, raw, err
	}

	// Validate the payload shape before normalizing separators and currency.
	if err := ValidateJSONAgainstSchema(BuildInvoiceJSONSchema(), []byte(payload)); err != nil {
		e.logger.Warn("llm.extract.schema_mismatch",
			"req_id", rid, "category", req.CategoryLabel, "error", err,
		)
		// Fall through: ParseFields tolerates the same shapes the schema does
		// and fails closed on anything worse.
	}

	fields, err := ParseFields(payload)
	if err != nil {
		e.logger.Error("llm.extract.parse_failed",
			"req_id", rid, "category", req.CategoryLabel, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return InvoiceFields{}, raw, err
	}

	e.logger.Info("llm.extract.ok",
		"req_id", rid,
		"category", req.CategoryLabel,
		"amount", fields.Amount,
		"start_date", fields.StartDate,
		"end_date", fields.EndDate,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return fields, raw, nil
}
