package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanfranbrv/automatservicios/constants"
	"github.com/juanfranbrv/automatservicios/internal/llm"
)

func newTestRepo(t *testing.T) ResultRepository {
	t.Helper()
	db, err := Open(context.Background(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewResultRepository(db, nil)
}

func TestUpsertReplacesEarlierRecord(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	session := uuid.New()

	require.NoError(t, repo.Upsert(ctx, session, constants.Gas, llm.InvoiceFields{
		Amount: "50.00", StartDate: "01/01/2024", EndDate: "31/01/2024",
	}))
	require.NoError(t, repo.Upsert(ctx, session, constants.Gas, llm.InvoiceFields{
		Amount: "60.00", StartDate: "01/02/2024", EndDate: "29/02/2024",
	}))

	recs, err := repo.List(ctx, session)
	require.NoError(t, err)
	require.Len(t, recs, 1, "result set must never hold two records for the same category")
	assert.Equal(t, constants.Gas, recs[0].Category)
	assert.Equal(t, "60.00", recs[0].Fields.Amount)
	assert.Equal(t, "01/02/2024", recs[0].Fields.StartDate)
}

func TestListReturnsFixedCategoryOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	session := uuid.New()

	// insert out of order
	require.NoError(t, repo.Upsert(ctx, session, constants.Gas, llm.InvoiceFields{Amount: "1.00"}))
	require.NoError(t, repo.Upsert(ctx, session, constants.Electricity, llm.InvoiceFields{Amount: "2.00"}))
	require.NoError(t, repo.Upsert(ctx, session, constants.Water, llm.InvoiceFields{Amount: "3.00"}))

	recs, err := repo.List(ctx, session)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, constants.Electricity, recs[0].Category)
	assert.Equal(t, constants.Water, recs[1].Category)
	assert.Equal(t, constants.Gas, recs[2].Category)
}

func TestSessionsAreIsolated(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()

	require.NoError(t, repo.Upsert(ctx, a, constants.Water, llm.InvoiceFields{Amount: "45.00"}))

	recs, err := repo.List(ctx, b)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestClearRemovesSessionRecords(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	session := uuid.New()

	require.NoError(t, repo.Upsert(ctx, session, constants.Internet, llm.InvoiceFields{Amount: "30.00"}))
	require.NoError(t, repo.Clear(ctx, session))

	recs, err := repo.List(ctx, session)
	require.NoError(t, err)
	assert.Empty(t, recs)
}
