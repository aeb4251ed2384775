package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/juanfranbrv/automatservicios/internal/results"
)

const sheet = "Facturas"

var headers = []string{"Servicio", "Inicio periodo", "Fin periodo", "Importe"}

// Service renders the session's result set into XLSX bytes: one row per
// category plus a TOTAL row. Generation is purely in-memory; the buffer is
// handed back for download and not retained.
type Service struct {
	results *results.Service
	logger  *slog.Logger
}

func NewService(res *results.Service, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{results: res, logger: logger}
}

// ExportXLSX returns an XLSX workbook (as bytes) for the given session.
func (s *Service) ExportXLSX(ctx context.Context, sessionID uuid.UUID) ([]byte, error) {
	start := time.Now()

	recs, err := s.results.List(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	total := results.SumAmounts(recs, s.logger)

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheet)

	accentStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	_ = f.SetCellStyle(sheet, "A1", "D1", accentStyle)

	row := 2
	for _, rec := range recs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, rec.Category.Label())
		write(2, rec.Fields.StartDate)
		write(3, rec.Fields.EndDate)
		write(4, rec.Fields.Amount)
		row++
	}

	// TOTAL row, styled like the header.
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "TOTAL")
	_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), total)
	_ = f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("D%d", row), accentStyle)

	_ = f.SetColWidth(sheet, "A", "A", 16) // service
	_ = f.SetColWidth(sheet, "B", "C", 16) // period bounds
	_ = f.SetColWidth(sheet, "D", "D", 14) // amount

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"session_id", sessionID.String(),
		"rows", len(recs),
		"total", total,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
