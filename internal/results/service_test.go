package results

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanfranbrv/automatservicios/constants"
	"github.com/juanfranbrv/automatservicios/internal/llm"
	"github.com/juanfranbrv/automatservicios/internal/repository"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := repository.Open(context.Background(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewService(repository.NewResultRepository(db, nil), nil)
}

func TestTotalSumsStoredAmounts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	session := uuid.New()

	require.NoError(t, svc.Put(ctx, session, constants.Electricity, llm.InvoiceFields{Amount: "100.00"}))
	require.NoError(t, svc.Put(ctx, session, constants.Gas, llm.InvoiceFields{Amount: "50.00"}))

	total, err := svc.Total(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, "150.00", total)
}

func TestTotalUpdatesOnReplacement(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	session := uuid.New()

	require.NoError(t, svc.Put(ctx, session, constants.Water, llm.InvoiceFields{Amount: "45.00"}))
	require.NoError(t, svc.Put(ctx, session, constants.Water, llm.InvoiceFields{Amount: "47.50"}))

	total, err := svc.Total(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, "47.50", total, "no stale contribution from the replaced record")
}

func TestTotalEmptySession(t *testing.T) {
	svc := newTestService(t)

	total, err := svc.Total(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "0.00", total)
}

func TestTotalExactCentsArithmetic(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	session := uuid.New()

	// 0.10 + 0.20 is the classic float trap; cents keep it exact.
	require.NoError(t, svc.Put(ctx, session, constants.Electricity, llm.InvoiceFields{Amount: "0.10"}))
	require.NoError(t, svc.Put(ctx, session, constants.Water, llm.InvoiceFields{Amount: "0.20"}))

	total, err := svc.Total(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, "0.30", total)
}

func TestTotalUncalculableOnMalformedAmount(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	session := uuid.New()

	require.NoError(t, svc.Put(ctx, session, constants.Electricity, llm.InvoiceFields{Amount: "100.00"}))
	// a record that slipped in with a non-numeric amount must not break the total
	require.NoError(t, svc.Put(ctx, session, constants.Gas, llm.InvoiceFields{Amount: "n/a"}))

	total, err := svc.Total(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, TotalUncalculable, total)
}
