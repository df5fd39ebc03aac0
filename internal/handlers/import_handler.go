package handlers

import (
	"bytes"
	"net/http"

	"github.com/gorilla/mux"

	"stock-backend/internal/services"
	"stock-backend/internal/timeutil"
	"stock-backend/pkg/utils"
)

// maxUploadSize bounds an uploaded workbook
const maxUploadSize = 10 << 20

type ImportHandler struct {
	Service *services.ImportService
}

func NewImportHandler(s *services.ImportService) *ImportHandler {
	return &ImportHandler{Service: s}
}

func (h *ImportHandler) DownloadTemplate(w http.ResponseWriter, r *http.Request) {
	entity := mux.Vars(r)["entity"]

	var buf bytes.Buffer
	if err := h.Service.WriteTemplate(&buf, entity); err != nil {
		writeError(w, r, err)
		return
	}
	utils.Attachment(w, h.Service.ContentType(), entity+"_template.xlsx", buf.Bytes())
}

// Import takes a multipart upload in the "file" field and reports per-row
// results. Failed rows do not fail the request.
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	entity := mux.Vars(r)["entity"]

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid upload: "+err.Error())
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	result, err := h.Service.Import(r.Context(), entity, file)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, result)
}

func (h *ImportHandler) ExportSummary(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.Service.ExportSummary(r.Context(), &buf); err != nil {
		writeError(w, r, err)
		return
	}
	utils.Attachment(w, h.Service.ContentType(), "stock_summary_"+timeutil.Today()+".xlsx", buf.Bytes())
}
