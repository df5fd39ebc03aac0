package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"stock-backend/internal/middleware"
	"stock-backend/internal/models"
	"stock-backend/pkg/utils"
)

// writeError maps the error kinds to status codes. Storage failures are
// logged with the request id and reported without driver detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		utils.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrValidation):
		utils.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrReferenced):
		utils.Error(w, http.StatusConflict, err.Error())
	default:
		log.WithFields(log.Fields{
			"request_id": middleware.RequestIDFrom(r.Context()),
			"path":       r.URL.Path,
		}).WithError(err).Error("[HTTP] internal error")
		utils.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}

// pathID reads the {id} route variable
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		utils.Error(w, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// queryInt parses an optional integer query parameter. Missing means fallback.
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}
