package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stock-backend/internal/models"
)

func seedProducts() []*models.Product {
	return []*models.Product{
		{ID: 1, Name: "Laptop Dell XPS", Rack: "A1", OpeningStock: 10},
		{ID: 2, Name: "iPhone 15 Pro", Rack: "B2", OpeningStock: 15},
		{ID: 3, Name: `Samsung TV 55"`, Rack: "C3", OpeningStock: 5},
		{ID: 4, Name: "Wireless Keyboard", Rack: "A2", OpeningStock: 20},
		{ID: 5, Name: "Bluetooth Speaker", Rack: "B3", OpeningStock: 12},
	}
}

func entries(pairs ...[2]int) []*models.StockEntry {
	out := make([]*models.StockEntry, 0, len(pairs))
	for i, p := range pairs {
		out = append(out, &models.StockEntry{ID: i + 1, ProductID: p[0], Quantity: p[1]})
	}
	return out
}

func TestSummarize_SeedData(t *testing.T) {
	inward := entries([2]int{1, 5}, [2]int{2, 10}, [2]int{3, 3})
	outward := entries([2]int{1, 2}, [2]int{2, 5}, [2]int{4, 8})

	rows := Summarize(seedProducts(), inward, outward, 5)
	require.Len(t, rows, 5)

	want := map[int]int{1: 13, 2: 20, 3: 8, 4: 12, 5: 12}
	for _, r := range rows {
		require.Equal(t, want[r.ProductID], r.CurrentStock, r.ProductName)
		require.Equal(t, r.OpeningStock+r.InwardTotal-r.OutwardTotal, r.CurrentStock)
	}

	laptop := rows[0]
	require.Equal(t, "Laptop Dell XPS", laptop.ProductName)
	require.Equal(t, 5, laptop.InwardTotal)
	require.Equal(t, 2, laptop.OutwardTotal)
	require.Equal(t, 13, laptop.CurrentStock)
	require.False(t, laptop.LowStock)
}

func TestSummarize_NoEntriesKeepsOpeningStock(t *testing.T) {
	rows := Summarize(seedProducts(), nil, nil, 5)
	for i, p := range seedProducts() {
		require.Equal(t, p.OpeningStock, rows[i].CurrentStock)
		require.Zero(t, rows[i].InwardTotal)
		require.Zero(t, rows[i].OutwardTotal)
	}
}

func TestSummarize_OrderIndependent(t *testing.T) {
	inward := entries([2]int{1, 5}, [2]int{1, 7}, [2]int{2, 1}, [2]int{1, 3})
	outward := entries([2]int{1, 4}, [2]int{2, 2})

	reversed := make([]*models.StockEntry, len(inward))
	for i, e := range inward {
		reversed[len(inward)-1-i] = e
	}

	require.Equal(t,
		Summarize(seedProducts(), inward, outward, 5),
		Summarize(seedProducts(), reversed, outward, 5),
	)
}

func TestSummarize_NegativeAndLowStock(t *testing.T) {
	products := []*models.Product{{ID: 1, Name: "Bolt", OpeningStock: 2}, {ID: 2, Name: "Nut", OpeningStock: 6}}
	rows := Summarize(products, nil, entries([2]int{1, 5}), 5)

	require.Equal(t, -3, rows[0].CurrentStock)
	require.True(t, rows[0].LowStock)
	require.False(t, rows[1].LowStock)
}

func TestSummarize_IgnoresEntriesForMissingProducts(t *testing.T) {
	rows := Summarize(seedProducts(), entries([2]int{99, 100}), nil, 5)
	for i, p := range seedProducts() {
		require.Equal(t, p.OpeningStock, rows[i].CurrentStock)
	}
}

func TestDashboard(t *testing.T) {
	rows := []models.StockSummary{
		{ProductID: 1, CurrentStock: 13},
		{ProductID: 2, CurrentStock: 4, LowStock: true},
		{ProductID: 3, CurrentStock: -1, LowStock: true},
	}
	stats := Dashboard(rows, 7)
	require.Equal(t, models.DashboardStats{TotalProducts: 3, TotalStock: 16, LowStockItems: 2, Racks: 7}, stats)
}
