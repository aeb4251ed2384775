package results

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/google/uuid"

	"github.com/juanfranbrv/automatservicios/constants"
	"github.com/juanfranbrv/automatservicios/internal/llm"
	"github.com/juanfranbrv/automatservicios/internal/repository"
)

// TotalUncalculable is the sentinel the total falls back to when any stored
// amount cannot be coerced to a number. A single malformed amount must never
// break display or export.
const TotalUncalculable = "N/A"

// Service aggregates per-category invoice records for one session.
type Service struct {
	repo   repository.ResultRepository
	logger *slog.Logger
}

func NewService(repo repository.ResultRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Put stores fields for a category, replacing any earlier record.
func (s *Service) Put(ctx context.Context, sessionID uuid.UUID, category constants.Category, fields llm.InvoiceFields) error {
	return s.repo.Upsert(ctx, sessionID, category, fields)
}

// List returns the session's records in the fixed category order.
func (s *Service) List(ctx context.Context, sessionID uuid.UUID) ([]*repository.InvoiceRecord, error) {
	return s.repo.List(ctx, sessionID)
}

// Clear drops the session's records (session end).
func (s *Service) Clear(ctx context.Context, sessionID uuid.UUID) error {
	return s.repo.Clear(ctx, sessionID)
}

// Total returns the two-decimal arithmetic sum of all stored amounts, or
// TotalUncalculable when any amount fails to parse. Sums in integer cents so
// the result is exact.
func (s *Service) Total(ctx context.Context, sessionID uuid.UUID) (string, error) {
	recs, err := s.repo.List(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return SumAmounts(recs, s.logger), nil
}

// SumAmounts computes the total over a record slice. Exposed separately so
// the exporter can total the same list it renders.
func SumAmounts(recs []*repository.InvoiceRecord, logger *slog.Logger) string {
	if logger == nil {
		logger = slog.Default()
	}
	var cents int64
	for _, rec := range recs {
		f, err := strconv.ParseFloat(rec.Fields.Amount, 64)
		if err != nil {
			logger.Warn("results.total.uncalculable",
				"category", rec.Category, "amount", rec.Fields.Amount)
			return TotalUncalculable
		}
		cents += int64(math.Round(f * 100))
	}
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
