package handlers

import (
	"net/http"

	"stock-backend/internal/models"
	"stock-backend/internal/services"
	"stock-backend/pkg/utils"
)

type RackHandler struct {
	Service *services.RackService
}

func NewRackHandler(s *services.RackService) *RackHandler {
	return &RackHandler{Service: s}
}

func (h *RackHandler) CreateRack(w http.ResponseWriter, r *http.Request) {
	var req models.RackRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rack, err := h.Service.CreateRack(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusCreated, rack)
}

func (h *RackHandler) GetRack(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	rack, err := h.Service.GetRack(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, rack)
}

func (h *RackHandler) ListRacks(w http.ResponseWriter, r *http.Request) {
	racks, err := h.Service.ListRacks(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, racks)
}

func (h *RackHandler) UpdateRack(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req models.RackRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rack, err := h.Service.UpdateRack(r.Context(), id, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, rack)
}

func (h *RackHandler) DeleteRack(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteRack(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RackLabel returns the display label for a rack id, "Unknown" when missing
func (h *RackHandler) RackLabel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"label": h.Service.RackLabel(r.Context(), id)})
}
