package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"stock-backend/internal/handlers"
	"stock-backend/internal/health"
	apphttp "stock-backend/internal/http"
	"stock-backend/internal/ledger"
	"stock-backend/internal/models"
	"stock-backend/internal/repositories"
	"stock-backend/internal/services"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := repositories.NewMemoryStore()
	products := services.NewProductService(store, nil)
	racks := services.NewRackService(store, nil)
	containers := services.NewContainerService(store)
	measurements := services.NewMeasurementService(store)
	entries := services.NewEntryService(store, nil)
	stock := services.NewStockService(store, nil, ledger.Engine{DefaultPageSize: 10, MaxPageSize: 500}, 5)
	reports := services.NewReportService(stock, entries)
	imports := services.NewImportService(products, racks, containers, measurements, entries, stock)

	require.NoError(t, services.NewSeedService(store, nil, nil).InitDatabase(context.Background()))

	router := apphttp.NewRouter(apphttp.Handlers{
		Products:     handlers.NewProductHandler(products),
		Racks:        handlers.NewRackHandler(racks),
		Containers:   handlers.NewContainerHandler(containers),
		Measurements: handlers.NewMeasurementHandler(measurements),
		Inward:       handlers.NewEntryHandler(entries, models.DirectionInward),
		Outward:      handlers.NewEntryHandler(entries, models.DirectionOutward),
		Stock:        handlers.NewStockHandler(stock, reports),
		Import:       handlers.NewImportHandler(imports),
		Health:       handlers.NewHealthHandler(health.NewHealthChecker(store.Pinger, nil, "memory")),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestStatusCodes(t *testing.T) {
	srv := newServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{name: "list products", method: "GET", path: "/api/products", want: http.StatusOK},
		{name: "get product", method: "GET", path: "/api/products/1", want: http.StatusOK},
		{name: "missing product", method: "GET", path: "/api/products/999", want: http.StatusNotFound},
		{name: "create product", method: "POST", path: "/api/products", body: `{"name":"Fan","rack":"A1","openingStock":2}`, want: http.StatusCreated},
		{name: "create product without name", method: "POST", path: "/api/products", body: `{"rack":"A1"}`, want: http.StatusBadRequest},
		{name: "malformed body", method: "POST", path: "/api/racks", body: `{"number":`, want: http.StatusBadRequest},
		{name: "duplicate rack", method: "POST", path: "/api/racks", body: `{"number":"A1"}`, want: http.StatusBadRequest},
		{name: "delete referenced product", method: "DELETE", path: "/api/products/1", want: http.StatusConflict},
		{name: "delete referenced measurement", method: "DELETE", path: "/api/measurements/2", want: http.StatusConflict},
		{name: "delete unused product", method: "DELETE", path: "/api/products/5", want: http.StatusNoContent},
		{name: "inward unknown product", method: "POST", path: "/api/inward", body: `{"productId":999,"quantity":1,"date":"2025-05-01"}`, want: http.StatusBadRequest},
		{name: "outward ok", method: "POST", path: "/api/outward", body: `{"productId":2,"quantity":1,"date":"2025-05-01"}`, want: http.StatusCreated},
		{name: "entries bad range", method: "GET", path: "/api/inward?from=2025-05-01&to=2025-04-01", want: http.StatusBadRequest},
		{name: "unknown route", method: "GET", path: "/api/nothing", want: http.StatusNotFound},
		{name: "bad page", method: "GET", path: "/api/stock/summary/paginated?page=x", want: http.StatusBadRequest},
		{name: "page size over maximum", method: "GET", path: "/api/stock/summary/paginated?pageSize=1000", want: http.StatusBadRequest},
		{name: "page size at maximum", method: "GET", path: "/api/stock/summary/paginated?pageSize=500", want: http.StatusOK},
		{name: "page far past the end", method: "GET", path: "/api/stock/summary/paginated?page=4611686018427387905&pageSize=10", want: http.StatusOK},
		{name: "product label", method: "GET", path: "/api/products/3/label", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, srv, tt.method, tt.path, tt.body)
			require.Equal(t, tt.want, resp.StatusCode)
			if tt.want >= 400 {
				body := decode[map[string]string](t, resp)
				require.NotEmpty(t, body["error"])
			}
		})
	}
}

func TestPaginatedSummaryEndpoint(t *testing.T) {
	srv := newServer(t)

	resp := do(t, srv, "GET", "/api/stock/summary/paginated?page=2&pageSize=2", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	page := decode[models.StockSummaryPage](t, resp)
	require.Equal(t, 5, page.TotalCount)
	require.Equal(t, 3, page.TotalPages)
	require.Equal(t, 2, page.Page)
	require.Len(t, page.Data, 2)
	require.Equal(t, `Samsung TV 55"`, page.Data[0].ProductName)
	require.Equal(t, []string{"A1", "B2", "C3", "A2", "B3"}, page.AvailableRacks)

	resp = do(t, srv, "GET", "/api/stock/summary/paginated?search=SPEAKER&group=none", "")
	page = decode[models.StockSummaryPage](t, resp)
	require.Equal(t, 1, page.TotalCount)
	require.Equal(t, 12, page.Data[0].CurrentStock)
	require.Empty(t, page.Groups)

	resp = do(t, srv, "GET", "/api/stock/summary/paginated?rack=all", "")
	page = decode[models.StockSummaryPage](t, resp)
	require.Equal(t, 0, page.TotalCount)
	require.Empty(t, page.Data)

	resp = do(t, srv, "GET", "/api/stock/summary/paginated?page=4611686018427387905&pageSize=10", "")
	page = decode[models.StockSummaryPage](t, resp)
	require.Equal(t, 5, page.TotalCount)
	require.Equal(t, 1, page.TotalPages)
	require.Empty(t, page.Data)
}

func TestLabelEndpoints(t *testing.T) {
	srv := newServer(t)

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "product", path: "/api/products/3/label", want: `Samsung TV 55"`},
		{name: "missing product", path: "/api/products/999/label", want: "Unknown Product"},
		{name: "rack", path: "/api/racks/2/label", want: "A2"},
		{name: "missing rack", path: "/api/racks/999/label", want: "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, srv, "GET", tt.path, "")
			require.Equal(t, http.StatusOK, resp.StatusCode)
			require.Equal(t, map[string]string{"label": tt.want}, decode[map[string]string](t, resp))
		})
	}
}

func TestNetWeightEndpoint(t *testing.T) {
	srv := newServer(t)

	resp := do(t, srv, "GET", "/api/stock/net-weight?grossWeight=50&containerId=2&containerQuantity=3", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, map[string]float64{"netWeight": 44}, decode[map[string]float64](t, resp))

	resp = do(t, srv, "GET", "/api/stock/net-weight?grossWeight=50&containerId=77&containerQuantity=3", "")
	require.Equal(t, map[string]float64{"netWeight": 50}, decode[map[string]float64](t, resp))

	resp = do(t, srv, "GET", "/api/stock/net-weight?grossWeight=heavy", "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEntryLabelsView(t *testing.T) {
	srv := newServer(t)

	resp := do(t, srv, "GET", "/api/outward?view=labels&productId=4", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	views := decode[[]models.StockEntryView](t, resp)
	require.Len(t, views, 1)
	require.Equal(t, "Wireless Keyboard", views[0].ProductName)
	require.Equal(t, "A2", views[0].RackNumber)
	require.Equal(t, 8, views[0].Quantity)
}

func TestSpreadsheetEndpoints(t *testing.T) {
	srv := newServer(t)

	resp := do(t, srv, "GET", "/api/import/rack/template", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))
	require.Contains(t, resp.Header.Get("Content-Disposition"), "rack_template.xlsx")

	resp = do(t, srv, "GET", "/api/import/customer/template", "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// upload two racks, one of which already exists
	wb := excelize.NewFile()
	for i, row := range [][]any{{"number"}, {"D4"}, {"A1"}} {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, wb.SetSheetRow("Sheet1", cell, &row))
	}
	xlsx, err := wb.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, wb.Close())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "racks.xlsx")
	require.NoError(t, err)
	_, err = part.Write(xlsx.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest("POST", srv.URL+"/api/import/rack", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err = srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	result := decode[models.ImportResult](t, resp)
	require.Equal(t, 2, result.Total)
	require.Equal(t, 1, result.Imported)
	require.Len(t, result.Failed, 1)
	require.Equal(t, 3, result.Failed[0].Row)

	resp = do(t, srv, "GET", "/api/export/summary.csv", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
}

func TestHealthEndpoints(t *testing.T) {
	srv := newServer(t)

	resp := do(t, srv, "GET", "/health", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, map[string]string{"status": "ok"}, decode[map[string]string](t, resp))

	resp = do(t, srv, "GET", "/health/ready", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	status := decode[health.HealthStatus](t, resp)
	require.Equal(t, health.StatusHealthy, status.Status)
	require.Equal(t, "memory", status.Database.Driver)

	resp = do(t, srv, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
