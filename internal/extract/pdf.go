package extract

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/juanfranbrv/automatservicios/internal/common"
)

// Config for the PDF text extractor.
type Config struct {
	// FirstThirdOnly restricts extraction to the leading third of pages
	// (rounded down, minimum one). Billing summary fields appear early in
	// multi-page invoices, so skipping the tail saves tokens and latency.
	FirstThirdOnly bool
}

// PDFExtractor pulls plain text out of a PDF byte stream. No failure
// escapes: anything the PDF libraries throw is reported as a recoverable
// extraction error with empty text.
type PDFExtractor struct {
	cfg    Config
	logger *slog.Logger
}

func NewPDFExtractor(cfg Config, logger *slog.Logger) *PDFExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFExtractor{cfg: cfg, logger: logger}
}

// PageBudget returns how many leading pages to read out of total:
// the first third rounded down, never less than one page.
func PageBudget(total int) int {
	b := total / 3
	if b < 1 {
		b = 1
	}
	return b
}

// Extract implements TextExtractor.
func (e *PDFExtractor) Extract(ctx context.Context, data []byte) (res TextExtractionResult, err error) {
	start := time.Now()

	defer func() {
		// ledongthuc/pdf panics on some malformed inputs.
		if r := recover(); r != nil {
			e.logger.Error("extract.pdf.panic", "recovered", r)
			res = TextExtractionResult{Duration: time.Since(start)}
			err = fmt.Errorf("%w: %v", common.ErrExtraction, r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return TextExtractionResult{}, err
	}
	if len(data) == 0 {
		return TextExtractionResult{}, fmt.Errorf("%w: empty upload", common.ErrExtraction)
	}

	// Cheap sanity pass before handing the bytes to the text reader.
	pages, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		e.logger.Warn("extract.pdf.page_count_failed", "error", err)
		return TextExtractionResult{}, fmt.Errorf("%w: %v", common.ErrExtraction, err)
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return TextExtractionResult{Pages: pages}, fmt.Errorf("%w: %v", common.ErrExtraction, err)
	}

	budget := r.NumPage()
	if e.cfg.FirstThirdOnly {
		budget = PageBudget(r.NumPage())
	}

	var b strings.Builder
	var warns []string
	read := 0
	for i := 1; i <= r.NumPage() && i <= budget; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		txt, err := p.GetPlainText(nil)
		if err != nil {
			// a page yielding no extractable text contributes nothing
			warns = append(warns, fmt.Sprintf("page %d: %v", i, err))
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(txt)
		read++
	}

	res = TextExtractionResult{
		Text:      b.String(),
		Pages:     pages,
		PagesRead: read,
		Duration:  time.Since(start),
		Warnings:  warns,
	}
	e.logger.Info("extract.pdf.ok",
		"pages", pages,
		"pages_read", read,
		"text_len", len(res.Text),
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}
