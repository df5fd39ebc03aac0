package handlers

import (
	"net/http"
	"strconv"

	"stock-backend/internal/ledger"
	"stock-backend/internal/services"
	"stock-backend/internal/timeutil"
	"stock-backend/pkg/utils"
)

type StockHandler struct {
	Stock   *services.StockService
	Reports *services.ReportService
}

func NewStockHandler(stock *services.StockService, reports *services.ReportService) *StockHandler {
	return &StockHandler{Stock: stock, Reports: reports}
}

func (h *StockHandler) GetStockSummary(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Stock.GetStockSummary(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, rows)
}

// GetPaginatedStockSummary handles ?page&pageSize&search&rack&group
func (h *StockHandler) GetPaginatedStockSummary(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid page")
		return
	}
	pageSize, err := queryInt(r, "pageSize", 0)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid pageSize")
		return
	}

	q := r.URL.Query()
	query := ledger.Query{
		Page:     page,
		PageSize: pageSize,
		Search:   q.Get("search"),
		Rack:     q.Get("rack"),
		Group:    ledger.ParseGroupMode(q.Get("group"), ""),
	}

	result, err := h.Stock.GetPaginatedStockSummary(r.Context(), query)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, result)
}

func (h *StockHandler) GetAvailableRacks(w http.ResponseWriter, r *http.Request) {
	racks, err := h.Stock.AvailableRacks(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, racks)
}

func (h *StockHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Stock.Dashboard(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, stats)
}

// CalculateNetWeight handles ?grossWeight&containerId&containerQuantity
func (h *StockHandler) CalculateNetWeight(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	gross, err := strconv.ParseFloat(q.Get("grossWeight"), 64)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid grossWeight")
		return
	}
	containerID, err := queryInt(r, "containerId", 0)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid containerId")
		return
	}
	count, err := queryInt(r, "containerQuantity", 0)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid containerQuantity")
		return
	}

	net, err := h.Stock.CalculateNetWeight(r.Context(), gross, containerID, count)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]float64{"netWeight": net})
}

func (h *StockHandler) DownloadSummaryPDF(w http.ResponseWriter, r *http.Request) {
	data, err := h.Reports.GenerateStockSummaryPDF(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.Attachment(w, "application/pdf", "stock_summary_"+timeutil.Today()+".pdf", data)
}

// DownloadMovementsPDF accepts the same from/to/productId filters as the entry lists
func (h *StockHandler) DownloadMovementsPDF(w http.ResponseWriter, r *http.Request) {
	filter, ok := entryFilter(w, r)
	if !ok {
		return
	}
	data, err := h.Reports.GenerateMovementsPDF(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.Attachment(w, "application/pdf", "stock_movements_"+timeutil.Today()+".pdf", data)
}

func (h *StockHandler) DownloadSummaryCSV(w http.ResponseWriter, r *http.Request) {
	data, err := h.Reports.GenerateStockSummaryCSV(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.Attachment(w, "text/csv", "stock_summary_"+timeutil.Today()+".csv", data)
}
