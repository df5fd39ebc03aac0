// Package ledger derives current stock from opening stock and movement
// history, and answers filtered, paginated queries over the result.
package ledger

import "stock-backend/internal/models"

// Summarize returns one row per product, in product order. Entries are
// grouped in one pass each, so the cost is linear in products plus entries.
// Entries whose product is missing are ignored.
func Summarize(products []*models.Product, inward, outward []*models.StockEntry, lowStockThreshold int) []models.StockSummary {
	in := totals(inward)
	out := totals(outward)

	rows := make([]models.StockSummary, 0, len(products))
	for _, p := range products {
		current := p.OpeningStock + in[p.ID] - out[p.ID]
		rows = append(rows, models.StockSummary{
			ProductID:    p.ID,
			ProductName:  p.Name,
			Rack:         p.Rack,
			OpeningStock: p.OpeningStock,
			InwardTotal:  in[p.ID],
			OutwardTotal: out[p.ID],
			CurrentStock: current,
			LowStock:     current <= lowStockThreshold,
		})
	}
	return rows
}

func totals(entries []*models.StockEntry) map[int]int {
	sums := make(map[int]int, len(entries))
	for _, e := range entries {
		sums[e.ProductID] += e.Quantity
	}
	return sums
}

// Dashboard reduces a summary to the landing page counters
func Dashboard(rows []models.StockSummary, rackCount int) models.DashboardStats {
	stats := models.DashboardStats{TotalProducts: len(rows), Racks: rackCount}
	for _, r := range rows {
		stats.TotalStock += r.CurrentStock
		if r.LowStock {
			stats.LowStockItems++
		}
	}
	return stats
}
