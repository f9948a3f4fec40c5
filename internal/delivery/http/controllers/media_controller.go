package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"shaadicircle/internal/delivery/http/helpers"
	"shaadicircle/internal/delivery/http/middleware"
	"shaadicircle/internal/domain"
)

// maxUploadBytes caps a single media upload at 50 MiB.
const maxUploadBytes = 50 << 20

type MediaController struct {
	Logger *slog.Logger
	Store  domain.MediaStore
}

func NewMediaController(logger *slog.Logger, store domain.MediaStore) *MediaController {
	return &MediaController{
		Logger: logger,
		Store:  store,
	}
}

// Upload godoc
// @Summary Upload a media file
// @Description Multipart upload. Fields: shaadi_id (text) and file. Returns the public URL and the storage key; attach the URL to a post via POST /posts.
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param shaadi_id formData string true "Shaadi ID"
// @Param file formData file true "Media file (image or video)"
// @Success 201 {object} helpers.APIResponse "data contains url and key"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /media/upload [post]
func (c *MediaController) Upload(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart form")
		return
	}
	shaadiID := strings.TrimSpace(r.FormValue("shaadi_id"))
	if shaadiID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "shaadi_id is required")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "file is required")
		return
	}
	defer file.Close()

	stored, err := c.Store.Store(r.Context(), shaadiID, header.Filename, file, header.Size)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, stored)
}

// Delete godoc
// @Summary Delete a stored media object
// @Description Removes the object by its storage key. Keys contain slashes (shaadis/{shaadiID}/{yyyy}/{mm}/{name}); the route wildcard spans all remaining segments.
// @Tags media
// @Security BearerAuth
// @Param key path string true "Storage key (slash-separated)"
// @Success 204 "no content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /media/{key} [delete]
func (c *MediaController) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	key := r.PathValue("key")
	if key == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing key")
		return
	}
	if err := c.Store.Delete(r.Context(), key); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
