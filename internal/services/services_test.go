package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"stock-backend/internal/cache"
	"stock-backend/internal/ledger"
	"stock-backend/internal/models"
	"stock-backend/internal/repositories"
)

// fixture wires every service over a fresh memory store
type fixture struct {
	store        *repositories.Store
	products     *ProductService
	racks        *RackService
	containers   *ContainerService
	measurements *MeasurementService
	entries      *EntryService
	stock        *StockService
	seed         *SeedService
	imports      *ImportService
	reports      *ReportService
}

// newFixture runs with caching disabled; a nil cache is valid
func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithCache(t, nil)
}

func newFixtureWithCache(t *testing.T, c *cache.Cache) *fixture {
	t.Helper()

	store := repositories.NewMemoryStore()
	f := &fixture{store: store}
	f.products = NewProductService(store, c)
	f.racks = NewRackService(store, c)
	f.containers = NewContainerService(store)
	f.measurements = NewMeasurementService(store)
	f.entries = NewEntryService(store, c)
	f.stock = NewStockService(store, c, ledger.Engine{DefaultPageSize: 10, MaxPageSize: 500, GroupMode: ledger.GroupPage}, 5)
	f.seed = NewSeedService(store, nil, c)
	f.imports = NewImportService(f.products, f.racks, f.containers, f.measurements, f.entries, f.stock)
	f.reports = NewReportService(f.stock, f.entries)
	return f
}

func newSeededFixture(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t)
	require.NoError(t, f.seed.InitDatabase(context.Background()))
	return f
}

func summaryFor(t *testing.T, f *fixture, name string) models.StockSummary {
	t.Helper()
	rows, err := f.stock.GetStockSummary(context.Background())
	require.NoError(t, err)
	for _, r := range rows {
		if r.ProductName == name {
			return r
		}
	}
	t.Fatalf("no summary row for %q", name)
	return models.StockSummary{}
}

func TestInitDatabase_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := newSeededFixture(t)

	counts := func() []int {
		products, _ := f.store.Products.Count(ctx)
		racks, _ := f.store.Racks.Count(ctx)
		containers, _ := f.store.Containers.Count(ctx)
		measurements, _ := f.store.Measurements.Count(ctx)
		inward, _ := f.store.Inward.List(ctx, models.EntryFilter{})
		outward, _ := f.store.Outward.List(ctx, models.EntryFilter{})
		return []int{products, racks, containers, measurements, len(inward), len(outward)}
	}

	first := counts()
	require.Equal(t, []int{5, 5, 3, 3, 3, 3}, first)

	require.NoError(t, f.seed.InitDatabase(ctx))
	require.Equal(t, first, counts())
}

func TestInitDatabase_SkipsWhenCatalogHasData(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.racks.CreateRack(ctx, &models.RackRequest{Number: "Z9"})
	require.NoError(t, err)
	require.NoError(t, f.seed.InitDatabase(ctx))

	n, err := f.store.Products.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

type failingMigrator struct{ err error }

func (m failingMigrator) RunMigrations(context.Context) error { return m.err }

func TestInitDatabase_MigrationFailure(t *testing.T) {
	f := newFixture(t)
	f.seed.Migrator = failingMigrator{err: models.ErrStorage}
	require.ErrorIs(t, f.seed.InitDatabase(context.Background()), models.ErrStorage)
}

func TestStockSummary_SeedScenario(t *testing.T) {
	f := newSeededFixture(t)

	laptop := summaryFor(t, f, "Laptop Dell XPS")
	require.Equal(t, 10, laptop.OpeningStock)
	require.Equal(t, 5, laptop.InwardTotal)
	require.Equal(t, 2, laptop.OutwardTotal)
	require.Equal(t, 13, laptop.CurrentStock)

	keyboard := summaryFor(t, f, "Wireless Keyboard")
	require.Equal(t, 12, keyboard.CurrentStock)
}

func TestAvailableRacks_DerivedFromProducts(t *testing.T) {
	ctx := context.Background()
	f := newSeededFixture(t)

	_, err := f.racks.CreateRack(ctx, &models.RackRequest{Number: "Z9"})
	require.NoError(t, err)

	racks, err := f.stock.AvailableRacks(ctx)
	require.NoError(t, err)
	require.NotContains(t, racks, "Z9")

	_, err = f.products.CreateProduct(ctx, &models.ProductRequest{Name: "Cold Box", Rack: "Z9", OpeningStock: 1})
	require.NoError(t, err)

	racks, err = f.stock.AvailableRacks(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"A1", "B2", "C3", "A2", "B3", "Z9"}, racks)
}

func TestPaginatedSummary(t *testing.T) {
	ctx := context.Background()
	f := newSeededFixture(t)

	page, err := f.stock.GetPaginatedStockSummary(ctx, ledger.Query{Page: 1, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, 5, page.TotalCount)
	require.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Data, 2)
	require.Equal(t, "Laptop Dell XPS", page.Data[0].ProductName)
	require.Len(t, page.Groups, 2)

	page, err = f.stock.GetPaginatedStockSummary(ctx, ledger.Query{Page: 1, PageSize: 10, Search: "tv", Rack: "C3"})
	require.NoError(t, err)
	require.Equal(t, 1, page.TotalCount)
	require.Equal(t, `Samsung TV 55"`, page.Data[0].ProductName)

	page, err = f.stock.GetPaginatedStockSummary(ctx, ledger.Query{Page: 7, PageSize: 2})
	require.NoError(t, err)
	require.Empty(t, page.Data)
	require.Equal(t, 3, page.TotalPages)
}

func TestPaginatedSummary_PageSizeLimit(t *testing.T) {
	ctx := context.Background()
	f := newSeededFixture(t)

	tests := []struct {
		name     string
		pageSize int
		wantErr  error
		wantLen  int
	}{
		{name: "ok/default", pageSize: 0, wantLen: 5},
		{name: "ok/at maximum", pageSize: 500, wantLen: 5},
		{name: "err/over maximum", pageSize: 501, wantErr: models.ErrValidation},
		{name: "err/far over maximum", pageSize: 1000, wantErr: models.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := f.stock.GetPaginatedStockSummary(ctx, ledger.Query{Page: 1, PageSize: tt.pageSize})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, page)
				return
			}
			require.NoError(t, err)
			require.Len(t, page.Data, tt.wantLen)
		})
	}
}

func TestDeleteProduct_RestrictedByEntries(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p, err := f.products.CreateProduct(ctx, &models.ProductRequest{Name: "Widget", OpeningStock: 3})
	require.NoError(t, err)
	e, err := f.entries.CreateEntry(ctx, models.DirectionInward, &models.StockEntryRequest{
		ProductID: p.ID, Quantity: 4, Date: "2025-05-01",
	})
	require.NoError(t, err)

	err = f.products.DeleteProduct(ctx, p.ID)
	require.ErrorIs(t, err, models.ErrReferenced)

	// nothing was removed
	_, err = f.products.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	_, err = f.entries.GetEntry(ctx, models.DirectionInward, e.ID)
	require.NoError(t, err)
	require.Equal(t, 7, summaryFor(t, f, "Widget").CurrentStock)

	// once the entry is gone the product can go
	require.NoError(t, f.entries.DeleteEntry(ctx, models.DirectionInward, e.ID))
	require.NoError(t, f.products.DeleteProduct(ctx, p.ID))
	require.ErrorIs(t, f.products.DeleteProduct(ctx, p.ID), models.ErrNotFound)
}

func TestDeleteRack_Restricted(t *testing.T) {
	ctx := context.Background()
	f := newSeededFixture(t)

	racks, err := f.racks.ListRacks(ctx)
	require.NoError(t, err)

	// A1 holds a product and seeded entries
	require.ErrorIs(t, f.racks.DeleteRack(ctx, racks[0].ID), models.ErrReferenced)

	// a rack only named by a product label is also protected
	label, err := f.racks.CreateRack(ctx, &models.RackRequest{Number: "L1"})
	require.NoError(t, err)
	_, err = f.products.CreateProduct(ctx, &models.ProductRequest{Name: "Labelled", Rack: "L1"})
	require.NoError(t, err)
	require.ErrorIs(t, f.racks.DeleteRack(ctx, label.ID), models.ErrReferenced)

	free, err := f.racks.CreateRack(ctx, &models.RackRequest{Number: "Z9"})
	require.NoError(t, err)
	require.NoError(t, f.racks.DeleteRack(ctx, free.ID))
}

func TestDeleteContainerAndMeasurement_Restricted(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	bag, err := f.containers.CreateContainer(ctx, &models.ContainerRequest{Type: models.ContainerBag, Weight: 0.5})
	require.NoError(t, err)
	kgs, err := f.measurements.CreateMeasurement(ctx, &models.MeasurementRequest{Type: models.MeasurementKGS})
	require.NoError(t, err)
	p, err := f.products.CreateProduct(ctx, &models.ProductRequest{Name: "Rice", Measurement: models.MeasurementKGS})
	require.NoError(t, err)
	_, err = f.entries.CreateEntry(ctx, models.DirectionOutward, &models.StockEntryRequest{
		ProductID: p.ID, Quantity: 1, Date: "2025-05-02", ContainerID: bag.ID, ContainerQuantity: 2, GrossWeight: 50,
	})
	require.NoError(t, err)

	require.ErrorIs(t, f.containers.DeleteContainer(ctx, bag.ID), models.ErrReferenced)
	require.ErrorIs(t, f.measurements.DeleteMeasurement(ctx, kgs.ID), models.ErrReferenced)
	require.ErrorIs(t, f.containers.DeleteContainer(ctx, 999), models.ErrNotFound)
}

func TestCreateProduct_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	tests := []struct {
		name string
		req  models.ProductRequest
	}{
		{name: "validation/name required", req: models.ProductRequest{OpeningStock: 1}},
		{name: "validation/blank name", req: models.ProductRequest{Name: "   "}},
		{name: "validation/negative opening stock", req: models.ProductRequest{Name: "x", OpeningStock: -1}},
		{name: "validation/negative weight", req: models.ProductRequest{Name: "x", WeightPerPiece: -0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := f.products.CreateProduct(ctx, &tt.req)
			require.ErrorIs(t, err, models.ErrValidation)
			require.Nil(t, p)
		})
	}

	n, err := f.store.Products.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestCreateRack_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.racks.CreateRack(ctx, &models.RackRequest{Number: "A-1"})
	require.ErrorIs(t, err, models.ErrValidation)

	_, err = f.racks.CreateRack(ctx, &models.RackRequest{Number: "A1"})
	require.NoError(t, err)
	_, err = f.racks.CreateRack(ctx, &models.RackRequest{Number: "A1"})
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestUpdate_NotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.products.UpdateProduct(ctx, 41, &models.ProductRequest{Name: "ghost"})
	require.ErrorIs(t, err, models.ErrNotFound)
	_, err = f.measurements.UpdateMeasurement(ctx, 41, &models.MeasurementRequest{Type: "KGS"})
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestCreateEntry(t *testing.T) {
	ctx := context.Background()
	f := newSeededFixture(t)

	crate, err := f.containers.CreateContainer(ctx, &models.ContainerRequest{Type: "Big Crate", Weight: 2.25})
	require.NoError(t, err)
	net := 10.0

	tests := []struct {
		name    string
		req     models.StockEntryRequest
		wantErr error
		wantNet float64
	}{
		{
			name:    "ok/net weight derived from container",
			req:     models.StockEntryRequest{ProductID: 1, Quantity: 2, Date: "2025-05-01", ContainerID: crate.ID, ContainerQuantity: 4, GrossWeight: 100},
			wantNet: 91,
		},
		{
			name:    "ok/net weight as given",
			req:     models.StockEntryRequest{ProductID: 1, Quantity: 2, Date: "2025-05-01", ContainerID: crate.ID, ContainerQuantity: 4, GrossWeight: 100, NetWeight: &net},
			wantNet: 10,
		},
		{
			name:    "ok/no container keeps gross",
			req:     models.StockEntryRequest{ProductID: 1, Quantity: 2, Date: "01-05-2025", GrossWeight: 12.5},
			wantNet: 12.5,
		},
		{
			name:    "validation/unknown product",
			req:     models.StockEntryRequest{ProductID: 999, Quantity: 1, Date: "2025-05-01"},
			wantErr: models.ErrValidation,
		},
		{
			name:    "validation/unknown rack",
			req:     models.StockEntryRequest{ProductID: 1, Quantity: 1, Date: "2025-05-01", RackID: 999},
			wantErr: models.ErrValidation,
		},
		{
			name:    "validation/unknown container",
			req:     models.StockEntryRequest{ProductID: 1, Quantity: 1, Date: "2025-05-01", ContainerID: 999},
			wantErr: models.ErrValidation,
		},
		{
			name:    "validation/zero quantity",
			req:     models.StockEntryRequest{ProductID: 1, Quantity: 0, Date: "2025-05-01"},
			wantErr: models.ErrValidation,
		},
		{
			name:    "validation/bad date",
			req:     models.StockEntryRequest{ProductID: 1, Quantity: 1, Date: "yesterday"},
			wantErr: models.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := f.entries.CreateEntry(ctx, models.DirectionInward, &tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, e)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantNet, e.NetWeight)
			require.Equal(t, "2025-05-01", e.Date)
		})
	}
}

func TestCreateEntry_DefaultsDateToToday(t *testing.T) {
	f := newSeededFixture(t)
	e, err := f.entries.CreateEntry(context.Background(), models.DirectionOutward, &models.StockEntryRequest{ProductID: 2, Quantity: 1})
	require.NoError(t, err)
	require.Len(t, e.Date, len("2006-01-02"))
}

func TestListEntryViews_Fallbacks(t *testing.T) {
	ctx := context.Background()
	f := newSeededFixture(t)

	views, err := f.entries.ListEntryViews(ctx, models.DirectionInward, models.EntryFilter{ProductID: 1})
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "Laptop Dell XPS", views[0].ProductName)
	require.Equal(t, "A1", views[0].RackNumber)

	_, err = f.entries.ListEntryViews(ctx, models.DirectionInward, models.EntryFilter{From: "2025-05-01", To: "2025-04-01"})
	require.ErrorIs(t, err, models.ErrValidation)

	require.Equal(t, UnknownRack, f.racks.RackLabel(ctx, 0))
	require.Equal(t, UnknownRack, f.racks.RackLabel(ctx, 999))
	require.Equal(t, UnknownProduct, f.products.ProductName(ctx, 999))
	require.Equal(t, "iPhone 15 Pro", f.products.ProductName(ctx, 2))
}

func TestCalculateNetWeight(t *testing.T) {
	ctx := context.Background()
	f := newSeededFixture(t)

	// seeded Bag weighs 0.5
	net, err := f.stock.CalculateNetWeight(ctx, 20, 1, 3)
	require.NoError(t, err)
	require.Equal(t, 18.5, net)

	net, err = f.stock.CalculateNetWeight(ctx, 20, 999, 3)
	require.NoError(t, err)
	require.Equal(t, 20.0, net)

	net, err = f.stock.CalculateNetWeight(ctx, 1, 1, 4)
	require.NoError(t, err)
	require.Equal(t, -1.0, net)
}

func TestDashboard(t *testing.T) {
	f := newSeededFixture(t)
	stats, err := f.stock.Dashboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, &models.DashboardStats{TotalProducts: 5, TotalStock: 65, LowStockItems: 0, Racks: 5}, stats)
}
