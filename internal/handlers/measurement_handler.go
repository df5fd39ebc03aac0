package handlers

import (
	"net/http"

	"stock-backend/internal/models"
	"stock-backend/internal/services"
	"stock-backend/pkg/utils"
)

type MeasurementHandler struct {
	Service *services.MeasurementService
}

func NewMeasurementHandler(s *services.MeasurementService) *MeasurementHandler {
	return &MeasurementHandler{Service: s}
}

func (h *MeasurementHandler) CreateMeasurement(w http.ResponseWriter, r *http.Request) {
	var req models.MeasurementRequest
	if !decodeBody(w, r, &req) {
		return
	}

	measurement, err := h.Service.CreateMeasurement(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusCreated, measurement)
}

func (h *MeasurementHandler) GetMeasurement(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	measurement, err := h.Service.GetMeasurement(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, measurement)
}

func (h *MeasurementHandler) ListMeasurements(w http.ResponseWriter, r *http.Request) {
	measurements, err := h.Service.ListMeasurements(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, measurements)
}

func (h *MeasurementHandler) UpdateMeasurement(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req models.MeasurementRequest
	if !decodeBody(w, r, &req) {
		return
	}

	measurement, err := h.Service.UpdateMeasurement(r.Context(), id, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, measurement)
}

func (h *MeasurementHandler) DeleteMeasurement(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteMeasurement(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
