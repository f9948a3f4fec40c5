package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"shaadicircle/internal/delivery/http/helpers"
	"shaadicircle/internal/delivery/http/middleware"
	"shaadicircle/internal/domain"
)

// CreateShaadiRequest is the request body for POST /shaadi
type CreateShaadiRequest struct {
	Name      string    `json:"name"`
	BrideName string    `json:"bride_name"`
	GroomName string    `json:"groom_name"`
	Date      time.Time `json:"date"`
	Location  string    `json:"location"`
	Image     string    `json:"image"`
}

// Validate implements Validator.
func (c CreateShaadiRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(c.BrideName) == "" {
		errs = append(errs, "bride_name is required")
	}
	if strings.TrimSpace(c.GroomName) == "" {
		errs = append(errs, "groom_name is required")
	}
	if c.Date.IsZero() {
		errs = append(errs, "date is required")
	}
	return errs
}

// CreateShaadiResponse is the response body for POST /shaadi. The creator's
// join code is returned once, here.
type CreateShaadiResponse struct {
	Shaadi     *domain.Shaadi     `json:"shaadi"`
	Membership *domain.Membership `json:"membership"`
}

// SwitchShaadiRequest is the request body for POST /shaadi/switch
type SwitchShaadiRequest struct {
	Code string `json:"code"`
}

// Validate implements Validator.
func (s SwitchShaadiRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.Code) == "" {
		errs = append(errs, "code is required")
	}
	return errs
}

// SwitchShaadiResponse is the response body for POST /shaadi/switch
type SwitchShaadiResponse struct {
	Shaadi *domain.Shaadi `json:"shaadi"`
	Role   string         `json:"role"`
}

// SetBlockedRequest is the request body for PATCH /shaadi/{shaadiID}/members/{userID}/block
type SetBlockedRequest struct {
	Blocked bool `json:"blocked"`
}

// DeleteShaadiRequest is the optional request body for DELETE /shaadi/{shaadiID}
type DeleteShaadiRequest struct {
	Reason string `json:"reason"`
}

type ShaadiController struct {
	Logger  *slog.Logger
	Service domain.ShaadiService
}

func NewShaadiController(logger *slog.Logger, svc domain.ShaadiService) *ShaadiController {
	return &ShaadiController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Create a new shaadi
// @Description Creates the event and the caller's creator membership with a fresh 6-digit join code, in one transaction.
// @Tags shaadi
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateShaadiRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains shaadi and creator membership"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /shaadi [post]
func (c *ShaadiController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req CreateShaadiRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	shaadi, membership, err := c.Service.CreateShaadi(r.Context(), userID, domain.CreateShaadiInput{
		Name:      strings.TrimSpace(req.Name),
		BrideName: strings.TrimSpace(req.BrideName),
		GroomName: strings.TrimSpace(req.GroomName),
		Date:      req.Date,
		Location:  strings.TrimSpace(req.Location),
		Image:     req.Image,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, CreateShaadiResponse{Shaadi: shaadi, Membership: membership})
}

// ListForUser godoc
// @Summary List the caller's memberships
// @Description Returns every membership the caller holds, each paired with its shaadi.
// @Tags shaadi
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the membership list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /shaadi/user [get]
func (c *ShaadiController) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	list, err := c.Service.ListForUser(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, list)
}

// Switch godoc
// @Summary Switch the active shaadi by join code
// @Description Resolves the caller's membership by its 6-digit code. Unauthorized when the code is unknown, blocked, or belongs to another user. Mutates nothing.
// @Tags shaadi
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SwitchShaadiRequest true "6-digit membership code"
// @Success 200 {object} helpers.APIResponse "data contains shaadi and role"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /shaadi/switch [post]
func (c *ShaadiController) Switch(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req SwitchShaadiRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	shaadi, role, err := c.Service.Switch(r.Context(), userID, strings.TrimSpace(req.Code))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid code")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SwitchShaadiResponse{Shaadi: shaadi, Role: role})
}

// SetMemberBlocked godoc
// @Summary Block or unblock a member
// @Description Creator only. A blocked member keeps their token and membership but is rejected on every event-scoped operation.
// @Tags shaadi
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param shaadiID path string true "Shaadi ID"
// @Param userID path string true "Member's user ID"
// @Param body body SetBlockedRequest true "Blocked flag"
// @Success 204 "no content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /shaadi/{shaadiID}/members/{userID}/block [patch]
func (c *ShaadiController) SetMemberBlocked(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	shaadiID := r.PathValue("shaadiID")
	memberUserID := r.PathValue("userID")
	if shaadiID == "" || memberUserID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing shaadiID or userID")
		return
	}
	var req SetBlockedRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.SetMemberBlocked(r.Context(), shaadiID, callerID, memberUserID, req.Blocked); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "member not found")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeOptional decodes the body into dest, treating an empty body as valid.
func decodeOptional(r *http.Request, dest any) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Delete godoc
// @Summary Delete a shaadi
// @Description Creator only. Cascade-deletes the event and all its memberships, invites, posts, and comments in one transaction.
// @Tags shaadi
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param shaadiID path string true "Shaadi ID"
// @Success 204 "no content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /shaadi/{shaadiID} [delete]
func (c *ShaadiController) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	shaadiID := r.PathValue("shaadiID")
	if shaadiID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing shaadiID")
		return
	}
	// Reason is optional; an empty or absent body is fine.
	var req DeleteShaadiRequest
	_ = decodeOptional(r, &req)
	if err := c.Service.DeleteShaadi(r.Context(), shaadiID, callerID, strings.TrimSpace(req.Reason)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "shaadi not found")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
