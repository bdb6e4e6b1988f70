package api

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"juntell/careers-gateway/internal/storage"
)

// UploadURL handles POST /api/upload-url.
func (h *Handlers) UploadURL(w http.ResponseWriter, r *http.Request) {
	if h.files == nil {
		writeError(w, http.StatusServiceUnavailable, "file storage is not configured")
		return
	}

	var req storage.UploadRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	out, err := h.files.UploadURL(r.Context(), req)
	switch {
	case errors.Is(err, storage.ErrFileTypeNotAllowed):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":        err.Error(),
			"allowedTypes": storage.AllowedFileTypes,
		})
	case errors.Is(err, storage.ErrFileTooLarge):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   err.Error(),
			"maxSize": storage.MaxFileSize,
		})
	case errors.Is(err, storage.ErrMissingFileInfo):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		h.logger.Error("presign upload failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create upload URL")
	default:
		writeJSON(w, http.StatusOK, out)
	}
}

// FileURL handles GET /api/file-url?key=.
func (h *Handlers) FileURL(w http.ResponseWriter, r *http.Request) {
	if h.files == nil {
		writeError(w, http.StatusServiceUnavailable, "file storage is not configured")
		return
	}

	key := r.URL.Query().Get("key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "key query parameter is required")
		return
	}

	out, err := h.files.DownloadURL(r.Context(), key)
	switch {
	case errors.Is(err, storage.ErrInvalidKey):
		writeError(w, http.StatusBadRequest, "invalid file path")
	case err != nil:
		h.logger.Error("presign download failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create file URL")
	default:
		writeJSON(w, http.StatusOK, out)
	}
}
