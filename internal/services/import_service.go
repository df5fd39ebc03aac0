package services

import (
	"context"
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"stock-backend/internal/metrics"
	"stock-backend/internal/models"
)

// Template header rows. Column names match the JSON field names, so a
// spreadsheet exported from the UI can be re-imported as is.
var importTemplates = map[string][]string{
	models.EntityProduct:     {"name", "rack", "weightPerPiece", "measurement", "temp1", "temp2", "temp3", "remark", "openingStock"},
	models.EntityRack:        {"number", "temp1", "temp2", "remark"},
	models.EntityContainer:   {"type", "weight", "remark"},
	models.EntityMeasurement: {"type", "temp1", "temp2", "remark"},
	models.EntityInward:      entryTemplate,
	models.EntityOutward:     entryTemplate,
}

var entryTemplate = []string{
	"productId", "quantity", "date", "rackId", "containerId", "containerQuantity",
	"grossWeight", "netWeight", "remark1", "remark2", "remark3",
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ImportService moves catalog data and entries in and out of Excel workbooks
type ImportService struct {
	Products     *ProductService
	Racks        *RackService
	Containers   *ContainerService
	Measurements *MeasurementService
	Entries      *EntryService
	Stock        *StockService
}

func NewImportService(products *ProductService, racks *RackService, containers *ContainerService,
	measurements *MeasurementService, entries *EntryService, stock *StockService) *ImportService {
	return &ImportService{
		Products:     products,
		Racks:        racks,
		Containers:   containers,
		Measurements: measurements,
		Entries:      entries,
		Stock:        stock,
	}
}

// ContentType is the MIME type of every workbook this service writes
func (s *ImportService) ContentType() string { return xlsxContentType }

// TemplateHeaders returns the header row for entity
func TemplateHeaders(entity string) ([]string, error) {
	headers, ok := importTemplates[entity]
	if !ok {
		return nil, invalid("unknown import entity %q", entity)
	}
	return headers, nil
}

// WriteTemplate writes an empty workbook with one header row. The sheet is
// named after the entity.
func (s *ImportService) WriteTemplate(w io.Writer, entity string) error {
	headers, err := TemplateHeaders(entity)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", entity); err != nil {
		return err
	}
	if err := f.SetSheetRow(entity, "A1", &headers); err != nil {
		return err
	}
	return f.Write(w)
}

// Import reads the first sheet of an xlsx workbook and creates one record
// per data row. Rows that fail are reported and skipped; the rest of the
// batch continues. A workbook that cannot be read at all is an error.
func (s *ImportService) Import(ctx context.Context, entity string, r io.Reader) (*models.ImportResult, error) {
	if _, err := TemplateHeaders(entity); err != nil {
		return nil, err
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, invalid("read workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, invalid("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, invalid("read sheet %s: %v", sheets[0], err)
	}

	result := &models.ImportResult{Entity: entity, Failed: make([]models.ImportRowError, 0)}
	if len(rows) == 0 {
		return result, nil
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[strings.TrimSpace(name)] = i
	}

	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		result.Total++
		rowNumber := i + 2 // header is row 1

		rec := record{columns: columns, cells: row}
		if err := s.importRow(ctx, entity, rec); err != nil {
			result.Failed = append(result.Failed, models.ImportRowError{Row: rowNumber, Error: err.Error()})
			metrics.ImportedRows.WithLabelValues(entity, "failed").Inc()
			continue
		}
		result.Imported++
		metrics.ImportedRows.WithLabelValues(entity, "imported").Inc()
	}

	log.WithFields(log.Fields{
		"entity":   entity,
		"total":    result.Total,
		"imported": result.Imported,
		"failed":   len(result.Failed),
	}).Info("[Import] Workbook processed")

	if result.Imported > 0 && s.Stock != nil {
		s.Stock.Refresh(ctx)
	}
	return result, nil
}

func (s *ImportService) importRow(ctx context.Context, entity string, rec record) error {
	switch entity {
	case models.EntityProduct:
		req := &models.ProductRequest{
			Name:        rec.str("name"),
			Rack:        rec.str("rack"),
			Measurement: rec.str("measurement"),
			Temp1:       rec.str("temp1"),
			Temp2:       rec.str("temp2"),
			Temp3:       rec.str("temp3"),
			Remark:      rec.str("remark"),
		}
		var err error
		if req.WeightPerPiece, err = rec.number("weightPerPiece"); err != nil {
			return err
		}
		if req.OpeningStock, err = rec.integer("openingStock"); err != nil {
			return err
		}
		_, err = s.Products.CreateProduct(ctx, req)
		return err

	case models.EntityRack:
		_, err := s.Racks.CreateRack(ctx, &models.RackRequest{
			Number: rec.str("number"),
			Temp1:  rec.str("temp1"),
			Temp2:  rec.str("temp2"),
			Remark: rec.str("remark"),
		})
		return err

	case models.EntityContainer:
		weight, err := rec.number("weight")
		if err != nil {
			return err
		}
		_, err = s.Containers.CreateContainer(ctx, &models.ContainerRequest{
			Type:   rec.str("type"),
			Weight: weight,
			Remark: rec.str("remark"),
		})
		return err

	case models.EntityMeasurement:
		_, err := s.Measurements.CreateMeasurement(ctx, &models.MeasurementRequest{
			Type:   rec.str("type"),
			Temp1:  rec.str("temp1"),
			Temp2:  rec.str("temp2"),
			Remark: rec.str("remark"),
		})
		return err

	case models.EntityInward, models.EntityOutward:
		req, err := entryRequest(rec)
		if err != nil {
			return err
		}
		_, err = s.Entries.CreateEntry(ctx, models.Direction(entity), req)
		return err
	}
	return invalid("unknown import entity %q", entity)
}

func entryRequest(rec record) (*models.StockEntryRequest, error) {
	req := &models.StockEntryRequest{
		Date:    rec.str("date"),
		Remark1: rec.str("remark1"),
		Remark2: rec.str("remark2"),
		Remark3: rec.str("remark3"),
	}

	ints := []struct {
		column string
		dst    *int
	}{
		{"productId", &req.ProductID},
		{"quantity", &req.Quantity},
		{"rackId", &req.RackID},
		{"containerId", &req.ContainerID},
		{"containerQuantity", &req.ContainerQuantity},
	}
	for _, field := range ints {
		v, err := rec.integer(field.column)
		if err != nil {
			return nil, err
		}
		*field.dst = v
	}

	var err error
	if req.GrossWeight, err = rec.number("grossWeight"); err != nil {
		return nil, err
	}
	if rec.str("netWeight") != "" {
		net, err := rec.number("netWeight")
		if err != nil {
			return nil, err
		}
		req.NetWeight = &net
	}
	return req, nil
}

// ExportSummary writes the stock summary as a workbook
func (s *ImportService) ExportSummary(ctx context.Context, w io.Writer) error {
	rows, err := s.Stock.GetStockSummary(ctx)
	if err != nil {
		return err
	}

	const sheet = "Stock Summary"
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	headers := []any{"Product ID", "Product", "Rack", "Opening Stock", "Inward", "Outward", "Current Stock", "Low Stock"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{row.ProductID, row.ProductName, row.Rack, row.OpeningStock,
			row.InwardTotal, row.OutwardTotal, row.CurrentStock, row.LowStock}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return f.Write(w)
}

// record is one spreadsheet row addressed by header name
type record struct {
	columns map[string]int
	cells   []string
}

func (r record) str(column string) string {
	i, ok := r.columns[column]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

// integer parses a whole number. Blank cells read as zero; Excel sometimes
// stores integers as "5.0".
func (r record) integer(column string) (int, error) {
	v := r.str(column)
	if v == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f != float64(int(f)) {
		return 0, invalid("%s: %q is not a whole number", column, v)
	}
	return int(f), nil
}

func (r record) number(column string) (float64, error) {
	v := r.str(column)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, invalid("%s: %q is not a number", column, v)
	}
	return f, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

