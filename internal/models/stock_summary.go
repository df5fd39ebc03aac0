package models

// StockSummary is derived per product on every read; it is never persisted
type StockSummary struct {
	ProductID    int    `json:"productId"`
	ProductName  string `json:"productName"`
	Rack         string `json:"rack"`
	OpeningStock int    `json:"openingStock"`
	InwardTotal  int    `json:"inwardTotal"`
	OutwardTotal int    `json:"outwardTotal"`
	CurrentStock int    `json:"currentStock"` // not clamped, may be negative
	LowStock     bool   `json:"lowStock"`
}

// RackGroup holds summary rows sharing one rack label, in their original order
type RackGroup struct {
	Rack string         `json:"rack"`
	Rows []StockSummary `json:"rows"`
}

// StockSummaryPage is the result of a filtered, paginated summary query
type StockSummaryPage struct {
	Data           []StockSummary `json:"data"`
	TotalCount     int            `json:"totalCount"`
	TotalPages     int            `json:"totalPages"`
	Page           int            `json:"page"`
	PageSize       int            `json:"pageSize"`
	AvailableRacks []string       `json:"availableRacks"`
	Groups         []RackGroup    `json:"groups,omitempty"`
}

// DashboardStats backs the landing page counters
type DashboardStats struct {
	TotalProducts int `json:"totalProducts"`
	TotalStock    int `json:"totalStock"`
	LowStockItems int `json:"lowStockItems"`
	Racks         int `json:"racks"`
}
