package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stock-backend/internal/handlers"
	"stock-backend/internal/middleware"
	"stock-backend/pkg/utils"
)

// Handlers bundles everything the router mounts
type Handlers struct {
	Products     *handlers.ProductHandler
	Racks        *handlers.RackHandler
	Containers   *handlers.ContainerHandler
	Measurements *handlers.MeasurementHandler
	Inward       *handlers.EntryHandler
	Outward      *handlers.EntryHandler
	Stock        *handlers.StockHandler
	Import       *handlers.ImportHandler
	Health       *handlers.HealthHandler
}

func NewRouter(h Handlers) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)

	api := r.PathPrefix("/api").Subrouter()

	// Catalog
	api.HandleFunc("/products", h.Products.ListProducts).Methods("GET")
	api.HandleFunc("/products", h.Products.CreateProduct).Methods("POST")
	api.HandleFunc("/products/{id:[0-9]+}", h.Products.GetProduct).Methods("GET")
	api.HandleFunc("/products/{id:[0-9]+}", h.Products.UpdateProduct).Methods("PUT")
	api.HandleFunc("/products/{id:[0-9]+}", h.Products.DeleteProduct).Methods("DELETE")
	api.HandleFunc("/products/{id:[0-9]+}/label", h.Products.ProductLabel).Methods("GET")

	api.HandleFunc("/racks", h.Racks.ListRacks).Methods("GET")
	api.HandleFunc("/racks", h.Racks.CreateRack).Methods("POST")
	api.HandleFunc("/racks/{id:[0-9]+}", h.Racks.GetRack).Methods("GET")
	api.HandleFunc("/racks/{id:[0-9]+}", h.Racks.UpdateRack).Methods("PUT")
	api.HandleFunc("/racks/{id:[0-9]+}", h.Racks.DeleteRack).Methods("DELETE")
	api.HandleFunc("/racks/{id:[0-9]+}/label", h.Racks.RackLabel).Methods("GET")

	api.HandleFunc("/containers", h.Containers.ListContainers).Methods("GET")
	api.HandleFunc("/containers", h.Containers.CreateContainer).Methods("POST")
	api.HandleFunc("/containers/{id:[0-9]+}", h.Containers.GetContainer).Methods("GET")
	api.HandleFunc("/containers/{id:[0-9]+}", h.Containers.UpdateContainer).Methods("PUT")
	api.HandleFunc("/containers/{id:[0-9]+}", h.Containers.DeleteContainer).Methods("DELETE")

	api.HandleFunc("/measurements", h.Measurements.ListMeasurements).Methods("GET")
	api.HandleFunc("/measurements", h.Measurements.CreateMeasurement).Methods("POST")
	api.HandleFunc("/measurements/{id:[0-9]+}", h.Measurements.GetMeasurement).Methods("GET")
	api.HandleFunc("/measurements/{id:[0-9]+}", h.Measurements.UpdateMeasurement).Methods("PUT")
	api.HandleFunc("/measurements/{id:[0-9]+}", h.Measurements.DeleteMeasurement).Methods("DELETE")

	// Movements
	for prefix, eh := range map[string]*handlers.EntryHandler{"/inward": h.Inward, "/outward": h.Outward} {
		api.HandleFunc(prefix, eh.ListEntries).Methods("GET")
		api.HandleFunc(prefix, eh.CreateEntry).Methods("POST")
		api.HandleFunc(prefix+"/{id:[0-9]+}", eh.GetEntry).Methods("GET")
		api.HandleFunc(prefix+"/{id:[0-9]+}", eh.UpdateEntry).Methods("PUT")
		api.HandleFunc(prefix+"/{id:[0-9]+}", eh.DeleteEntry).Methods("DELETE")
	}

	// Derived stock views
	stockAPI := api.PathPrefix("/stock").Subrouter()
	stockAPI.HandleFunc("/summary", h.Stock.GetStockSummary).Methods("GET")
	stockAPI.HandleFunc("/summary/paginated", h.Stock.GetPaginatedStockSummary).Methods("GET")
	stockAPI.HandleFunc("/racks", h.Stock.GetAvailableRacks).Methods("GET")
	stockAPI.HandleFunc("/dashboard", h.Stock.GetDashboard).Methods("GET")
	stockAPI.HandleFunc("/net-weight", h.Stock.CalculateNetWeight).Methods("GET")
	stockAPI.HandleFunc("/report.pdf", h.Stock.DownloadSummaryPDF).Methods("GET")
	stockAPI.HandleFunc("/movements.pdf", h.Stock.DownloadMovementsPDF).Methods("GET")

	// Spreadsheets
	api.HandleFunc("/import/{entity}/template", h.Import.DownloadTemplate).Methods("GET")
	api.HandleFunc("/import/{entity}", h.Import.Import).Methods("POST")
	api.HandleFunc("/export/summary.xlsx", h.Import.ExportSummary).Methods("GET")
	api.HandleFunc("/export/summary.csv", h.Stock.DownloadSummaryCSV).Methods("GET")

	// Health check endpoints (no auth required - for K8s probes)
	r.HandleFunc("/health", h.Health.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", h.Health.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", h.Health.DetailedHealth).Methods("GET")

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		utils.Error(w, http.StatusNotFound, "not found")
	})

	return r
}
