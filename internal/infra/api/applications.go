package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"juntell/careers-gateway/internal/application"
)

type submitResponse struct {
	Message string                   `json:"message"`
	Data    *application.Application `json:"data"`
}

// SubmitApplication handles POST /api/applications.
func (h *Handlers) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	var req application.SubmitRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	app, err := h.applications.Submit(r.Context(), req)
	if err != nil {
		var verr *application.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, errorBody{
				Error:   "required information is missing or invalid",
				Details: verr.Fields,
			})
			return
		}
		h.logger.Error("application submission failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save application")
		return
	}

	writeJSON(w, http.StatusCreated, submitResponse{
		Message: "application submitted",
		Data:    app,
	})
}

// ListApplications handles GET /admin/applications?limit=&offset=.
func (h *Handlers) ListApplications(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	apps, err := h.applications.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("list applications failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list applications")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": apps})
}

// GetApplication handles GET /admin/applications/{id}.
func (h *Handlers) GetApplication(w http.ResponseWriter, r *http.Request) {
	app, err := h.applications.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, application.ErrNotFound) {
		writeError(w, http.StatusNotFound, "application not found")
		return
	}
	if err != nil {
		h.logger.Error("get application failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load application")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": app})
}
