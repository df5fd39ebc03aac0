package models

// Importable entity names, as used in template and import URLs
const (
	EntityProduct     = "product"
	EntityRack        = "rack"
	EntityContainer   = "container"
	EntityMeasurement = "measurement"
	EntityInward      = "inward"
	EntityOutward     = "outward"
)

// ImportRowError reports why one spreadsheet row was skipped. Row is 1-based
// and counts the header row, so it matches what the user sees in Excel.
type ImportRowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type ImportResult struct {
	Entity   string           `json:"entity"`
	Total    int              `json:"total"`
	Imported int              `json:"imported"`
	Failed   []ImportRowError `json:"failed"`
}
