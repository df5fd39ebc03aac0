package handlers

import (
	"net/http"

	"stock-backend/internal/models"
	"stock-backend/internal/services"
	"stock-backend/pkg/utils"
)

// EntryHandler serves one movement direction. The router mounts two of
// them, one under /api/inward and one under /api/outward.
type EntryHandler struct {
	Service   *services.EntryService
	Direction models.Direction
}

func NewEntryHandler(s *services.EntryService, direction models.Direction) *EntryHandler {
	return &EntryHandler{Service: s, Direction: direction}
}

func (h *EntryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req models.StockEntryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	entry, err := h.Service.CreateEntry(r.Context(), h.Direction, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusCreated, entry)
}

func (h *EntryHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	entry, err := h.Service.GetEntry(r.Context(), h.Direction, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, entry)
}

// ListEntries supports ?productId=&from=&to= and ?view=labels, which adds
// product, rack and container labels to each row
func (h *EntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	filter, ok := entryFilter(w, r)
	if !ok {
		return
	}

	if r.URL.Query().Get("view") == "labels" {
		views, err := h.Service.ListEntryViews(r.Context(), h.Direction, filter)
		if err != nil {
			writeError(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, views)
		return
	}

	entries, err := h.Service.ListEntries(r.Context(), h.Direction, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, entries)
}

func (h *EntryHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req models.StockEntryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	entry, err := h.Service.UpdateEntry(r.Context(), h.Direction, id, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, entry)
}

func (h *EntryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteEntry(r.Context(), h.Direction, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func entryFilter(w http.ResponseWriter, r *http.Request) (models.EntryFilter, bool) {
	productID, err := queryInt(r, "productId", 0)
	if err != nil || productID < 0 {
		utils.Error(w, http.StatusBadRequest, "Invalid productId")
		return models.EntryFilter{}, false
	}
	q := r.URL.Query()
	return models.EntryFilter{ProductID: productID, From: q.Get("from"), To: q.Get("to")}, true
}
