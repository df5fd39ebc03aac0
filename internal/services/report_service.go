package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"

	"stock-backend/internal/models"
	"stock-backend/internal/timeutil"
)

type ReportService struct {
	Stock   *StockService
	Entries *EntryService
}

func NewReportService(stock *StockService, entries *EntryService) *ReportService {
	return &ReportService{Stock: stock, Entries: entries}
}

// GenerateStockSummaryPDF renders the full summary with totals. Low stock
// rows are shaded red like the summary page.
func (s *ReportService) GenerateStockSummaryPDF(ctx context.Context) ([]byte, error) {
	rows, err := s.Stock.GetStockSummary(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := s.Stock.Dashboard(ctx)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Warehouse Stock Summary", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Overview", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(47, 8, fmt.Sprintf("Products: %d", stats.TotalProducts), "1", 0, "C", false, 0, "")
	pdf.CellFormat(48, 8, fmt.Sprintf("Total Stock: %d", stats.TotalStock), "1", 0, "C", false, 0, "")
	pdf.CellFormat(48, 8, fmt.Sprintf("Low Stock: %d", stats.LowStockItems), "1", 0, "C", false, 0, "")
	pdf.CellFormat(47, 8, fmt.Sprintf("Racks: %d", stats.Racks), "1", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Table header
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(12, 7, "#", "1", 0, "C", true, 0, "")
	pdf.CellFormat(63, 7, "Product", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, "Rack", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Opening", "1", 0, "C", true, 0, "")
	pdf.CellFormat(22, 7, "Inward", "1", 0, "C", true, 0, "")
	pdf.CellFormat(22, 7, "Outward", "1", 0, "C", true, 0, "")
	pdf.CellFormat(26, 7, "Current", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for i, row := range rows {
		switch {
		case row.LowStock:
			pdf.SetFillColor(255, 200, 200)
		case i%2 == 0:
			pdf.SetFillColor(255, 255, 255)
		default:
			pdf.SetFillColor(245, 245, 245)
		}

		name := row.ProductName
		if len(name) > 32 {
			name = name[:29] + "..."
		}

		pdf.CellFormat(12, 6, fmt.Sprintf("%d", i+1), "1", 0, "C", true, 0, "")
		pdf.CellFormat(63, 6, name, "1", 0, "L", true, 0, "")
		pdf.CellFormat(20, 6, row.Rack, "1", 0, "C", true, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", row.OpeningStock), "1", 0, "R", true, 0, "")
		pdf.CellFormat(22, 6, fmt.Sprintf("%d", row.InwardTotal), "1", 0, "R", true, 0, "")
		pdf.CellFormat(22, 6, fmt.Sprintf("%d", row.OutwardTotal), "1", 0, "R", true, 0, "")
		pdf.CellFormat(26, 6, fmt.Sprintf("%d", row.CurrentStock), "1", 1, "R", true, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateMovementsPDF lists inward and outward entries in a date range,
// landscape for the extra columns
func (s *ReportService) GenerateMovementsPDF(ctx context.Context, filter models.EntryFilter) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	period := "All dates"
	if filter.From != "" || filter.To != "" {
		period = fmt.Sprintf("%s to %s", orDash(filter.From), orDash(filter.To))
	}

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(277, 12, "Stock Movement Register", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(277, 8, period, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(277, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	for _, direction := range []models.Direction{models.DirectionInward, models.DirectionOutward} {
		views, err := s.Entries.ListEntryViews(ctx, direction, filter)
		if err != nil {
			return nil, err
		}

		title := "Inward"
		if direction == models.DirectionOutward {
			title = "Outward"
		}
		pdf.SetFillColor(240, 240, 240)
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(277, 8, fmt.Sprintf("%s (%d entries)", title, len(views)), "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(25, 7, "Date", "1", 0, "C", true, 0, "")
		pdf.CellFormat(70, 7, "Product", "1", 0, "C", true, 0, "")
		pdf.CellFormat(20, 7, "Qty", "1", 0, "C", true, 0, "")
		pdf.CellFormat(20, 7, "Rack", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, "Container", "1", 0, "C", true, 0, "")
		pdf.CellFormat(22, 7, "Cont. Qty", "1", 0, "C", true, 0, "")
		pdf.CellFormat(25, 7, "Gross (kg)", "1", 0, "C", true, 0, "")
		pdf.CellFormat(25, 7, "Net (kg)", "1", 0, "C", true, 0, "")
		pdf.CellFormat(40, 7, "Remark", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 9)
		for _, v := range views {
			name := v.ProductName
			if len(name) > 38 {
				name = name[:35] + "..."
			}
			remark := v.Remark1
			if len(remark) > 22 {
				remark = remark[:19] + "..."
			}
			pdf.CellFormat(25, 6, v.Date, "1", 0, "C", false, 0, "")
			pdf.CellFormat(70, 6, name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(20, 6, fmt.Sprintf("%d", v.Quantity), "1", 0, "R", false, 0, "")
			pdf.CellFormat(20, 6, v.RackNumber, "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 6, v.ContainerType, "1", 0, "C", false, 0, "")
			pdf.CellFormat(22, 6, fmt.Sprintf("%d", v.ContainerQuantity), "1", 0, "R", false, 0, "")
			pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", v.GrossWeight), "1", 0, "R", false, 0, "")
			pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", v.NetWeight), "1", 0, "R", false, 0, "")
			pdf.CellFormat(40, 6, remark, "1", 1, "L", false, 0, "")
		}
		pdf.Ln(5)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateStockSummaryCSV writes the summary as CSV
func (s *ReportService) GenerateStockSummaryCSV(ctx context.Context) ([]byte, error) {
	rows, err := s.Stock.GetStockSummary(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"Product ID", "Product", "Rack", "Opening Stock", "Inward", "Outward", "Current Stock", "Status"})
	for _, row := range rows {
		status := "OK"
		if row.LowStock {
			status = "LOW"
		}
		w.Write([]string{
			fmt.Sprintf("%d", row.ProductID),
			row.ProductName,
			row.Rack,
			fmt.Sprintf("%d", row.OpeningStock),
			fmt.Sprintf("%d", row.InwardTotal),
			fmt.Sprintf("%d", row.OutwardTotal),
			fmt.Sprintf("%d", row.CurrentStock),
			status,
		})
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
