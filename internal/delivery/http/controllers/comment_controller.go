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

// AddCommentRequest is the request body for POST /comments/post/{postID}
type AddCommentRequest struct {
	ShaadiID string `json:"shaadi_id"`
	Text     string `json:"text"`
}

// Validate implements Validator.
func (a AddCommentRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(a.ShaadiID) == "" {
		errs = append(errs, "shaadi_id is required")
	}
	if strings.TrimSpace(a.Text) == "" {
		errs = append(errs, "text is required")
	}
	return errs
}

type CommentController struct {
	Logger  *slog.Logger
	Service domain.CommentService
}

func NewCommentController(logger *slog.Logger, svc domain.CommentService) *CommentController {
	return &CommentController{
		Logger:  logger,
		Service: svc,
	}
}

func (c *CommentController) writeCommentError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrMemberBlocked):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

// ListByPost godoc
// @Summary List comments on a post
// @Description Active members of the post's shaadi only.
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param postID path string true "Post ID"
// @Success 200 {object} helpers.APIResponse "data contains the comment list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /comments/post/{postID} [get]
func (c *CommentController) ListByPost(w http.ResponseWriter, r *http.Request) {
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
	comments, err := c.Service.ListComments(r.Context(), postID, userID)
	if err != nil {
		c.writeCommentError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, comments)
}

// Add godoc
// @Summary Add a comment to a post
// @Description Active members of the post's shaadi only.
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postID path string true "Post ID"
// @Param body body AddCommentRequest true "Comment text and shaadi context"
// @Success 201 {object} helpers.APIResponse "data contains the created comment"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /comments/post/{postID} [post]
func (c *CommentController) Add(w http.ResponseWriter, r *http.Request) {
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
	var req AddCommentRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	comment, err := c.Service.AddComment(r.Context(), postID, strings.TrimSpace(req.ShaadiID), userID, strings.TrimSpace(req.Text))
	if err != nil {
		c.writeCommentError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, comment)
}

// Delete godoc
// @Summary Delete a comment
// @Description Author only.
// @Tags comments
// @Security BearerAuth
// @Param commentID path string true "Comment ID"
// @Success 204 "no content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /comments/{commentID} [delete]
func (c *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	commentID := r.PathValue("commentID")
	if commentID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing commentID")
		return
	}
	if err := c.Service.DeleteComment(r.Context(), commentID, userID); err != nil {
		c.writeCommentError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
