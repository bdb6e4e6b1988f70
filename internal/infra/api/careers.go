package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"juntell/careers-gateway/internal/careers"
)

// ListJobs handles GET /api/careers?q=&department=&location=&employmentType=&page=&limit=.
func (h *Handlers) ListJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit := careers.ParsePaging(q.Get("page"), q.Get("limit"))

	jobs, err := h.jobs.List(r.Context(), careers.Filter{
		Query:          q.Get("q"),
		Department:     q.Get("department"),
		Location:       q.Get("location"),
		EmploymentType: q.Get("employmentType"),
		Page:           page,
		Limit:          limit,
	})
	if err != nil {
		h.logger.Error("list job postings failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load job postings")
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

// GetJob handles GET /api/careers/{id}.
func (h *Handlers) GetJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobs.Get(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, careers.ErrInvalidID):
		writeError(w, http.StatusBadRequest, "invalid job posting id")
	case errors.Is(err, careers.ErrNotFound):
		writeError(w, http.StatusNotFound, "job posting not found")
	case err != nil:
		h.logger.Error("get job posting failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load job posting")
	default:
		writeJSON(w, http.StatusOK, job)
	}
}

// CreateJob handles POST /admin/jobs.
func (h *Handlers) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req careers.CreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	job, err := h.jobs.Create(r.Context(), req)
	if errors.Is(err, careers.ErrInvalidJob) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("create job posting failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create job posting")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"data": job})
}
