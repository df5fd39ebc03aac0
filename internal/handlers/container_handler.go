package handlers

import (
	"net/http"

	"stock-backend/internal/models"
	"stock-backend/internal/services"
	"stock-backend/pkg/utils"
)

type ContainerHandler struct {
	Service *services.ContainerService
}

func NewContainerHandler(s *services.ContainerService) *ContainerHandler {
	return &ContainerHandler{Service: s}
}

func (h *ContainerHandler) CreateContainer(w http.ResponseWriter, r *http.Request) {
	var req models.ContainerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	container, err := h.Service.CreateContainer(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusCreated, container)
}

func (h *ContainerHandler) GetContainer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	container, err := h.Service.GetContainer(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, container)
}

func (h *ContainerHandler) ListContainers(w http.ResponseWriter, r *http.Request) {
	containers, err := h.Service.ListContainers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, containers)
}

func (h *ContainerHandler) UpdateContainer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req models.ContainerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	container, err := h.Service.UpdateContainer(r.Context(), id, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, container)
}

func (h *ContainerHandler) DeleteContainer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteContainer(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
