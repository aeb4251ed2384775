package extract

import (
	"context"
	"time"
)

// TextExtractor is Stage 1: PDF bytes -> text.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text      string
	Pages     int // pages in the document
	PagesRead int // pages actually extracted (page budget applied)
	Duration  time.Duration
	Warnings  []string
}
