package export

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/juanfranbrv/automatservicios/constants"
	"github.com/juanfranbrv/automatservicios/internal/llm"
	"github.com/juanfranbrv/automatservicios/internal/repository"
	"github.com/juanfranbrv/automatservicios/internal/results"
)

func newTestStack(t *testing.T) (*results.Service, *Service) {
	t.Helper()
	db, err := repository.Open(context.Background(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	res := results.NewService(repository.NewResultRepository(db, nil), nil)
	return res, NewService(res, nil)
}

func openSheet(t *testing.T, xlsx []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(xlsx))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestExportXLSXTotalRow(t *testing.T) {
	res, exp := newTestStack(t)
	ctx := context.Background()
	session := uuid.New()

	require.NoError(t, res.Put(ctx, session, constants.Electricity, llm.InvoiceFields{
		Amount: "100.00", StartDate: "01/03/2024", EndDate: "31/03/2024",
	}))
	require.NoError(t, res.Put(ctx, session, constants.Gas, llm.InvoiceFields{
		Amount: "50.00", StartDate: "01/03/2024", EndDate: "31/03/2024",
	}))

	xlsx, err := exp.ExportXLSX(ctx, session)
	require.NoError(t, err)

	f := openSheet(t, xlsx)

	// header
	v, _ := f.GetCellValue("Facturas", "A1")
	assert.Equal(t, "Servicio", v)
	v, _ = f.GetCellValue("Facturas", "D1")
	assert.Equal(t, "Importe", v)

	// category rows in fixed order: Electricity then Gas
	v, _ = f.GetCellValue("Facturas", "A2")
	assert.Equal(t, "Luz", v)
	v, _ = f.GetCellValue("Facturas", "D2")
	assert.Equal(t, "100.00", v)
	v, _ = f.GetCellValue("Facturas", "A3")
	assert.Equal(t, "Gas", v)
	v, _ = f.GetCellValue("Facturas", "D3")
	assert.Equal(t, "50.00", v)

	// total row
	v, _ = f.GetCellValue("Facturas", "A4")
	assert.Equal(t, "TOTAL", v)
	v, _ = f.GetCellValue("Facturas", "D4")
	assert.Equal(t, "150.00", v)
}

func TestExportXLSXSingleCategory(t *testing.T) {
	res, exp := newTestStack(t)
	ctx := context.Background()
	session := uuid.New()

	require.NoError(t, res.Put(ctx, session, constants.Water, llm.InvoiceFields{
		Amount: "45.00", StartDate: "01/03/2024", EndDate: "31/03/2024",
	}))

	xlsx, err := exp.ExportXLSX(ctx, session)
	require.NoError(t, err)

	f := openSheet(t, xlsx)
	v, _ := f.GetCellValue("Facturas", "A2")
	assert.Equal(t, "Agua", v)
	v, _ = f.GetCellValue("Facturas", "B2")
	assert.Equal(t, "01/03/2024", v)
	v, _ = f.GetCellValue("Facturas", "C2")
	assert.Equal(t, "31/03/2024", v)
	v, _ = f.GetCellValue("Facturas", "D3")
	assert.Equal(t, "45.00", v)
}

func TestExportXLSXUncalculableTotal(t *testing.T) {
	res, exp := newTestStack(t)
	ctx := context.Background()
	session := uuid.New()

	require.NoError(t, res.Put(ctx, session, constants.Internet, llm.InvoiceFields{Amount: "broken"}))

	xlsx, err := exp.ExportXLSX(ctx, session)
	require.NoError(t, err)

	f := openSheet(t, xlsx)
	v, _ := f.GetCellValue("Facturas", "D3")
	assert.Equal(t, results.TotalUncalculable, v)
}

func TestExportXLSXEmptySession(t *testing.T) {
	_, exp := newTestStack(t)

	xlsx, err := exp.ExportXLSX(context.Background(), uuid.New())
	require.NoError(t, err)

	f := openSheet(t, xlsx)
	v, _ := f.GetCellValue("Facturas", "A2")
	assert.Equal(t, "TOTAL", v)
	v, _ = f.GetCellValue("Facturas", "D2")
	assert.Equal(t, "0.00", v)
}
