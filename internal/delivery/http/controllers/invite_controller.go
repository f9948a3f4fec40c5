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

// CreateInviteRequest is the request body for POST /shaadi/{shaadiID}/invites
type CreateInviteRequest struct {
	GuestName    string `json:"guest_name"`
	GuestEmail   string `json:"guest_email"`
	GuestPhone   string `json:"guest_phone"`
	Relationship string `json:"relationship"`
	Side         string `json:"side"`
	Notes        string `json:"notes"`
}

// Validate implements Validator.
func (c CreateInviteRequest) Validate() []string {
	var errs []string
	email := strings.TrimSpace(c.GuestEmail)
	phone := strings.TrimSpace(c.GuestPhone)
	if email == "" && phone == "" {
		errs = append(errs, "guest_email or guest_phone is required")
	}
	if email != "" && !emailRegex.MatchString(strings.ToLower(email)) {
		errs = append(errs, "invalid guest_email format")
	}
	side := strings.TrimSpace(strings.ToLower(c.Side))
	if side != "" && side != domain.SideGroom && side != domain.SideBride {
		errs = append(errs, "side must be \"groom\" or \"bride\"")
	}
	return errs
}

type InviteController struct {
	Logger  *slog.Logger
	Service domain.InviteService
}

func NewInviteController(logger *slog.Logger, svc domain.InviteService) *InviteController {
	return &InviteController{
		Logger:  logger,
		Service: svc,
	}
}

// writeInviteError maps invite service errors to HTTP responses.
func (c *InviteController) writeInviteError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "invite not found")
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrMemberBlocked):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrInviteNotJoinable):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "invite is not open for joining")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

// Create godoc
// @Summary Create an invite
// @Description Creator only. Creates a pending invite with a unique 6-digit code and a join link. Guest email or phone is required; the full guest profile is deferred until the guest joins.
// @Tags invites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param shaadiID path string true "Shaadi ID"
// @Param body body CreateInviteRequest true "Guest contact"
// @Success 201 {object} helpers.APIResponse "data contains the created invite"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /shaadi/{shaadiID}/invites [post]
func (c *InviteController) Create(w http.ResponseWriter, r *http.Request) {
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
	var req CreateInviteRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	invite, err := c.Service.CreateInvite(r.Context(), shaadiID, callerID, domain.CreateInviteInput{
		GuestName:    strings.TrimSpace(req.GuestName),
		GuestEmail:   strings.TrimSpace(strings.ToLower(req.GuestEmail)),
		GuestPhone:   strings.TrimSpace(req.GuestPhone),
		Relationship: strings.TrimSpace(req.Relationship),
		Side:         strings.TrimSpace(strings.ToLower(req.Side)),
		Notes:        req.Notes,
	})
	if err != nil {
		c.writeInviteError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, invite)
}

// List godoc
// @Summary List invites for a shaadi
// @Description Creator only. Statuses reflect expiry: a pending or sent invite past its expires_at is reported as expired.
// @Tags invites
// @Produce json
// @Security BearerAuth
// @Param shaadiID path string true "Shaadi ID"
// @Success 200 {object} helpers.APIResponse "data contains the invite list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /shaadi/{shaadiID}/invites [get]
func (c *InviteController) List(w http.ResponseWriter, r *http.Request) {
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
	invites, err := c.Service.ListInvites(r.Context(), shaadiID, callerID)
	if err != nil {
		c.writeInviteError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, invites)
}

// Send godoc
// @Summary Send an invite
// @Description Creator only. Transitions a pending invite to sent and emails the guest. Requires the invite to have a guest email.
// @Tags invites
// @Produce json
// @Security BearerAuth
// @Param inviteID path string true "Invite ID"
// @Success 200 {object} helpers.APIResponse "data contains the updated invite"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /shaadi/invites/{inviteID}/send [post]
func (c *InviteController) Send(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	inviteID := r.PathValue("inviteID")
	if inviteID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing inviteID")
		return
	}
	invite, err := c.Service.SendInvite(r.Context(), inviteID, callerID)
	if err != nil {
		c.writeInviteError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, invite)
}

// Resend godoc
// @Summary Resend an invite
// @Description Creator only. Re-emails the guest and bumps the reminder counter; the invite status does not change.
// @Tags invites
// @Produce json
// @Security BearerAuth
// @Param inviteID path string true "Invite ID"
// @Success 200 {object} helpers.APIResponse "data contains the updated invite"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /shaadi/invites/{inviteID}/resend [post]
func (c *InviteController) Resend(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	inviteID := r.PathValue("inviteID")
	if inviteID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing inviteID")
		return
	}
	invite, err := c.Service.ResendInvite(r.Context(), inviteID, callerID)
	if err != nil {
		c.writeInviteError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, invite)
}

// Delete godoc
// @Summary Delete an invite
// @Description Creator only.
// @Tags invites
// @Security BearerAuth
// @Param inviteID path string true "Invite ID"
// @Success 204 "no content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /shaadi/invites/{inviteID} [delete]
func (c *InviteController) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	inviteID := r.PathValue("inviteID")
	if inviteID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing inviteID")
		return
	}
	if err := c.Service.DeleteInvite(r.Context(), inviteID, callerID); err != nil {
		c.writeInviteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Decline godoc
// @Summary Decline an invite
// @Description Code-gated, no auth. Marks a live invite declined; declining an already-declined invite is a no-op.
// @Tags invites
// @Produce json
// @Param code path string true "6-digit invite code"
// @Success 204 "no content"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invites/decline/{code} [post]
func (c *InviteController) Decline(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing code")
		return
	}
	if err := c.Service.DeclineInvite(r.Context(), code); err != nil {
		c.writeInviteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TrackOpen godoc
// @Summary Record an invite open
// @Description Best-effort tracking pixel endpoint. Always responds 204.
// @Tags invites
// @Param code path string true "6-digit invite code"
// @Success 204 "no content"
// @Router /invites/track/open/{code} [post]
func (c *InviteController) TrackOpen(w http.ResponseWriter, r *http.Request) {
	if code := r.PathValue("code"); code != "" {
		c.Service.TrackOpen(r.Context(), code)
	}
	w.WriteHeader(http.StatusNoContent)
}

// TrackClick godoc
// @Summary Record an invite link click
// @Description Best-effort tracking endpoint. Always responds 204.
// @Tags invites
// @Param code path string true "6-digit invite code"
// @Success 204 "no content"
// @Router /invites/track/click/{code} [post]
func (c *InviteController) TrackClick(w http.ResponseWriter, r *http.Request) {
	if code := r.PathValue("code"); code != "" {
		c.Service.TrackClick(r.Context(), code)
	}
	w.WriteHeader(http.StatusNoContent)
}

// GuestStats godoc
// @Summary Invite counts by status
// @Description Creator only. Counts reflect expiry at read time.
// @Tags invites
// @Produce json
// @Security BearerAuth
// @Param shaadiID path string true "Shaadi ID"
// @Success 200 {object} helpers.APIResponse "data contains the guest stats"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /shaadi/{shaadiID}/guest-stats [get]
func (c *InviteController) GuestStats(w http.ResponseWriter, r *http.Request) {
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
	stats, err := c.Service.GetGuestStats(r.Context(), shaadiID, callerID)
	if err != nil {
		c.writeInviteError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}

// Members godoc
// @Summary Contact directory for a shaadi
// @Description Any active member. Joined memberships enriched with profile and invite fields for client-side search and filtering.
// @Tags invites
// @Produce json
// @Security BearerAuth
// @Param shaadiID path string true "Shaadi ID"
// @Success 200 {object} helpers.APIResponse "data contains the member list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /shaadi/{shaadiID}/members [get]
func (c *InviteController) Members(w http.ResponseWriter, r *http.Request) {
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
	members, err := c.Service.GetShaadiMembers(r.Context(), shaadiID, callerID)
	if err != nil {
		c.writeInviteError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, members)
}
