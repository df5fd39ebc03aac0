package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"stock-backend/internal/models"
)

// workbook builds an xlsx with rows written from A1 downwards
func workbook(t *testing.T, rows ...[]any) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestImport_Products(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	data := workbook(t,
		[]any{"name", "rack", "openingStock", "weightPerPiece"},
		[]any{"Apples", "A1", 10, 0.2},
		[]any{"", "A1", 3},
		[]any{},
		[]any{"Pears", "B2", "7.0"},
		[]any{"Plums", "B2", "lots"},
	)

	result, err := f.imports.Import(ctx, models.EntityProduct, data)
	require.NoError(t, err)
	require.Equal(t, models.EntityProduct, result.Entity)
	require.Equal(t, 4, result.Total)
	require.Equal(t, 2, result.Imported)
	require.Len(t, result.Failed, 2)
	require.Equal(t, 3, result.Failed[0].Row)
	require.Equal(t, 6, result.Failed[1].Row)

	products, err := f.products.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Equal(t, "Apples", products[0].Name)
	require.Equal(t, 0.2, products[0].WeightPerPiece)
	require.Equal(t, 7, products[1].OpeningStock)
}

func TestImport_Entries(t *testing.T) {
	ctx := context.Background()
	f := newSeededFixture(t)

	data := workbook(t,
		[]any{"productId", "quantity", "date", "containerId", "containerQuantity", "grossWeight"},
		[]any{1, 4, "2025-05-03", 1, 2, 11},
		[]any{99, 1, "2025-05-03"},
	)

	result, err := f.imports.Import(ctx, models.EntityInward, data)
	require.NoError(t, err)
	require.Equal(t, 1, result.Imported)
	require.Len(t, result.Failed, 1)
	require.Equal(t, 3, result.Failed[0].Row)

	entries, err := f.entries.ListEntries(ctx, models.DirectionInward, models.EntryFilter{From: "2025-05-03"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, 10.0, entries[0].NetWeight)
	require.Equal(t, 17, summaryFor(t, f, "Laptop Dell XPS").CurrentStock)
}

func TestImport_Rejects(t *testing.T) {
	f := newFixture(t)

	_, err := f.imports.Import(context.Background(), "customer", workbook(t, []any{"name"}))
	require.ErrorIs(t, err, models.ErrValidation)

	_, err = f.imports.Import(context.Background(), models.EntityRack, bytes.NewBufferString("not a workbook"))
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestWriteTemplate(t *testing.T) {
	f := newFixture(t)

	var buf bytes.Buffer
	require.NoError(t, f.imports.WriteTemplate(&buf, models.EntityContainer))

	wb, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer wb.Close()

	require.Equal(t, []string{models.EntityContainer}, wb.GetSheetList())
	rows, err := wb.GetRows(models.EntityContainer)
	require.NoError(t, err)
	require.Equal(t, [][]string{{"type", "weight", "remark"}}, rows)

	// a filled-in template imports cleanly
	filled := workbook(t, []any{"type", "weight", "remark"}, []any{"Drum", 4.5, "steel"})
	result, err := f.imports.Import(context.Background(), models.EntityContainer, filled)
	require.NoError(t, err)
	require.Equal(t, 1, result.Imported)
	require.Empty(t, result.Failed)
}

func TestExportSummary(t *testing.T) {
	f := newSeededFixture(t)

	var buf bytes.Buffer
	require.NoError(t, f.imports.ExportSummary(context.Background(), &buf))

	wb, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows("Stock Summary")
	require.NoError(t, err)
	require.Len(t, rows, 6)
	require.Equal(t, "Product", rows[0][1])
	require.Equal(t, []string{"1", "Laptop Dell XPS", "A1", "10", "5", "2", "13"}, rows[1][:7])
}

func TestReports(t *testing.T) {
	ctx := context.Background()
	f := newSeededFixture(t)

	pdf, err := f.reports.GenerateStockSummaryPDF(ctx)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	pdf, err = f.reports.GenerateMovementsPDF(ctx, models.EntryFilter{From: "2025-04-26", To: "2025-04-29"})
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	csv, err := f.reports.GenerateStockSummaryCSV(ctx)
	require.NoError(t, err)
	require.Contains(t, string(csv), "Laptop Dell XPS,A1,10,5,2,13")
}
