package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/juanfranbrv/automatservicios/constants"
	"github.com/juanfranbrv/automatservicios/internal/llm"
)

// InvoiceRecord is one normalized extraction result, keyed by
// (session, category).
type InvoiceRecord struct {
	SessionID uuid.UUID
	Category  constants.Category
	Fields    llm.InvoiceFields
	UpdatedAt time.Time
}

// ResultRepository owns the session-scoped result set. Insert-or-overwrite
// semantics: a later extraction for the same category replaces the earlier
// one within a session.
type ResultRepository interface {
	Upsert(ctx context.Context, sessionID uuid.UUID, category constants.Category, fields llm.InvoiceFields) error
	List(ctx context.Context, sessionID uuid.UUID) ([]*InvoiceRecord, error)
	Clear(ctx context.Context, sessionID uuid.UUID) error
}

type resultRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewResultRepository(db *sql.DB, logger *slog.Logger) ResultRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &resultRepository{db: db, logger: logger}
}

func (r *resultRepository) Upsert(ctx context.Context, sessionID uuid.UUID, category constants.Category, fields llm.InvoiceFields) error {
	const q = `
INSERT INTO invoice_results (session_id, category, amount, start_date, end_date, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (session_id, category) DO UPDATE SET
	amount     = excluded.amount,
	start_date = excluded.start_date,
	end_date   = excluded.end_date,
	updated_at = excluded.updated_at`

	_, err := r.db.ExecContext(ctx, q,
		sessionID.String(), string(category),
		fields.Amount, fields.StartDate, fields.EndDate,
		time.Now().UTC(),
	)
	if err != nil {
		r.logger.Error("failed to upsert invoice result",
			"session_id", sessionID, "category", category, "error", err)
		return err
	}
	return nil
}

// List returns the session's records in the fixed category order.
func (r *resultRepository) List(ctx context.Context, sessionID uuid.UUID) ([]*InvoiceRecord, error) {
	const q = `
SELECT category, amount, start_date, end_date, updated_at
FROM invoice_results
WHERE session_id = ?`

	rows, err := r.db.QueryContext(ctx, q, sessionID.String())
	if err != nil {
		r.logger.Error("failed to list invoice results", "session_id", sessionID, "error", err)
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			r.logger.Warn("rows close error", "error", cerr)
		}
	}()

	byCategory := make(map[constants.Category]*InvoiceRecord, 4)
	for rows.Next() {
		rec := &InvoiceRecord{SessionID: sessionID}
		var cat string
		if err := rows.Scan(&cat, &rec.Fields.Amount, &rec.Fields.StartDate, &rec.Fields.EndDate, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		rec.Category = constants.Category(cat)
		byCategory[rec.Category] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := make([]*InvoiceRecord, 0, len(byCategory))
	for _, cat := range constants.AllCategories() {
		if rec, ok := byCategory[cat]; ok {
			result = append(result, rec)
		}
	}
	return result, nil
}

func (r *resultRepository) Clear(ctx context.Context, sessionID uuid.UUID) error {
	const q = `DELETE FROM invoice_results WHERE session_id = ?`
	if _, err := r.db.ExecContext(ctx, q, sessionID.String()); err != nil {
		r.logger.Error("failed to clear invoice results", "session_id", sessionID, "error", err)
		return err
	}
	return nil
}
