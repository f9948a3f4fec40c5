package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"shaadicircle/internal/delivery/http/helpers"
	"shaadicircle/internal/delivery/http/middleware"
	"shaadicircle/internal/domain"
)

// CreatePostRequest is the request body for POST /posts
type CreatePostRequest struct {
	ShaadiID   string   `json:"shaadi_id"`
	MediaURLs  []string `json:"media_urls"`
	MediaTypes []string `json:"media_types"`
	Caption    string   `json:"caption"`
	Tags       []string `json:"tags"`
}

// Validate implements Validator.
func (c CreatePostRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.ShaadiID) == "" {
		errs = append(errs, "shaadi_id is required")
	}
	if len(c.MediaURLs) == 0 {
		errs = append(errs, "media_urls is required")
	}
	if len(c.MediaURLs) != len(c.MediaTypes) {
		errs = append(errs, "media_types must match media_urls")
	}
	for _, t := range c.MediaTypes {
		if t != domain.MediaTypeImage && t != domain.MediaTypeVideo {
			errs = append(errs, "media_types entries must be \"image\" or \"video\"")
			break
		}
	}
	return errs
}

// LikeRequest is the request body for POST /posts/{postID}/like
type LikeRequest struct {
	ShaadiID string `json:"shaadi_id"`
}

// Validate implements Validator.
func (l LikeRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(l.ShaadiID) == "" {
		errs = append(errs, "shaadi_id is required")
	}
	return errs
}

// UpdatePostRequest is the request body for PATCH /posts/{postID}
type UpdatePostRequest struct {
	Caption string   `json:"caption"`
	Tags    []string `json:"tags"`
}

// ListPostsResponse is the response body for GET /posts
type ListPostsResponse struct {
	Posts      []*domain.PostWithMeta `json:"posts"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

type PostController struct {
	Logger  *slog.Logger
	Service domain.PostService
}

func NewPostController(logger *slog.Logger, svc domain.PostService) *PostController {
	return &PostController{
		Logger:  logger,
		Service: svc,
	}
}

func (c *PostController) writePostError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "post not found")
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrMemberBlocked):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

// List godoc
// @Summary Paginated feed for a shaadi
// @Description Active members only. Posts newest first, each with comment count and author name.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param shaadiId query string true "Shaadi ID"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains posts and pagination"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /posts [get]
func (c *PostController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	shaadiID := r.URL.Query().Get("shaadiId")
	if shaadiID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing shaadiId")
		return
	}
	params := helpers.ParsePagination(r)
	posts, total, err := c.Service.ListPosts(r.Context(), shaadiID, userID, params)
	if err != nil {
		c.writePostError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListPostsResponse{
		Posts:      posts,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// Create godoc
// @Summary Create a post
// @Description Active members only. media_types is index-aligned with media_urls.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreatePostRequest true "Post data"
// @Success 201 {object} helpers.APIResponse "data contains the created post"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /posts [post]
func (c *PostController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req CreatePostRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	post, err := c.Service.CreatePost(r.Context(), strings.TrimSpace(req.ShaadiID), userID, domain.CreatePostInput{
		MediaURLs:  req.MediaURLs,
		MediaTypes: req.MediaTypes,
		Caption:    req.Caption,
		Tags:       req.Tags,
	})
	if err != nil {
		c.writePostError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, post)
}

// Like godoc
// @Summary Toggle a like on a post
// @Description Active members only. Adds the caller to the post's likes if absent, removes if present.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postID path string true "Post ID"
// @Param body body LikeRequest true "Shaadi context"
// @Success 200 {object} helpers.APIResponse "data contains the updated post"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /posts/{postID}/like [post]
func (c *PostController) Like(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	postID := r.PathValue("postID")
	if postID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing postID")
		return
	}
	var req LikeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	post, err := c.Service.LikeToggle(r.Context(), postID, strings.TrimSpace(req.ShaadiID), userID)
	if err != nil {
		c.writePostError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, post)
}

// Update godoc
// @Summary Update a post's caption and tags
// @Description Author only.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postID path string true "Post ID"
// @Param body body UpdatePostRequest true "New caption and tags"
// @Success 200 {object} helpers.APIResponse "data contains the updated post"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /posts/{postID} [patch]
func (c *PostController) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	postID := r.PathValue("postID")
	if postID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing postID")
		return
	}
	var req UpdatePostRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	post, err := c.Service.UpdatePost(r.Context(), postID, userID, req.Caption, req.Tags)
	if err != nil {
		c.writePostError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, post)
}

// Delete godoc
// @Summary Delete a post
// @Description Author only. Deletes the post and its comments.
// @Tags posts
// @Security BearerAuth
// @Param postID path string true "Post ID"
// @Success 204 "no content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /posts/{postID} [delete]
func (c *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	postID := r.PathValue("postID")
	if postID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing postID")
		return
	}
	if err := c.Service.DeletePost(r.Context(), postID, userID); err != nil {
		c.writePostError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
