package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"shaadicircle/internal/delivery/http/helpers"
	"shaadicircle/internal/delivery/http/middleware"
	"shaadicircle/internal/domain"
)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// codeRegex matches a 6-digit join or invite code.
var codeRegex = regexp.MustCompile(`^\d{6}$`)

// RegisterRequest is the request body for POST /users/register
type RegisterRequest struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	ProfilePicURL string `json:"profile_pic_url"`
}

// Validate implements Validator.
func (r RegisterRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Username) == "" {
		errs = append(errs, "username is required")
	}
	email := strings.TrimSpace(strings.ToLower(r.Email))
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegex.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	if r.Password == "" {
		errs = append(errs, "password is required")
	} else if len(r.Password) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}
	return errs
}

// LoginRequest is the request body for POST /users/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(l.Username) == "" {
		errs = append(errs, "username is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// LoginResponse is the response body for POST /users/login
type LoginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	User      *domain.User `json:"user"`
}

// CodeLoginRequest is the request body for POST /users/login-shaadi
type CodeLoginRequest struct {
	Code string `json:"code"`
}

// Validate implements Validator.
func (c CodeLoginRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Code) == "" {
		errs = append(errs, "code is required")
	} else if !codeRegex.MatchString(strings.TrimSpace(c.Code)) {
		errs = append(errs, "code must be 6 digits")
	}
	return errs
}

// JoinShaadiRequest is the request body for POST /users/join-shaadi
type JoinShaadiRequest struct {
	Code          string `json:"code"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	ProfilePicURL string `json:"profile_pic_url"`
}

// Validate implements Validator.
func (j JoinShaadiRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(j.Code) == "" {
		errs = append(errs, "code is required")
	} else if !codeRegex.MatchString(strings.TrimSpace(j.Code)) {
		errs = append(errs, "code must be 6 digits")
	}
	if strings.TrimSpace(j.Username) == "" {
		errs = append(errs, "username is required")
	}
	email := strings.TrimSpace(strings.ToLower(j.Email))
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegex.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	if j.Password == "" {
		errs = append(errs, "password is required")
	} else if len(j.Password) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}
	return errs
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

func NewAuthController(logger *slog.Logger, svc domain.UserService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Register a new user
// @Description Create an account with username, email, and password. Password is stored hashed.
// @Tags users
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} helpers.APIResponse "data contains the created user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/register [post]
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))
	user, err := c.Service.Register(r.Context(), strings.TrimSpace(req.Username), email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateUser) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "username or email already registered")
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
	helpers.WriteJSONSuccess(w, http.StatusCreated, user)
}

// Login godoc
// @Summary Log in with username and password
// @Description Authenticate with username and password. Returns a JWT and the user profile.
// @Tags users
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} helpers.APIResponse "data contains token, token_type, and user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	token, user, err := c.Service.Login(r.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid credentials")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, LoginResponse{Token: token, TokenType: "Bearer", User: user})
}

// LoginShaadi godoc
// @Summary Log in with a 6-digit event code
// @Description Resolves a membership join code or a live invite code. A membership code returns a token plus the event; an invite code returns the event with is_joined=false so the client shows the join form.
// @Tags users
// @Accept json
// @Produce json
// @Param body body CodeLoginRequest true "6-digit code"
// @Success 200 {object} helpers.APIResponse "data contains the code login result"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/login-shaadi [post]
func (c *AuthController) LoginShaadi(w http.ResponseWriter, r *http.Request) {
	var req CodeLoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.Service.LoginWithCode(r.Context(), strings.TrimSpace(req.Code))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid code")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// JoinShaadi godoc
// @Summary Complete an invite and join the event
// @Description Invite-code gated. Creates the account (or reuses an existing one by email), marks the invite joined, and creates the guest membership. Re-joining an already-joined code returns the existing membership.
// @Tags users
// @Accept json
// @Produce json
// @Param body body JoinShaadiRequest true "Guest profile and invite code"
// @Success 201 {object} helpers.APIResponse "data contains token, user, shaadi, and membership"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/join-shaadi [post]
func (c *AuthController) JoinShaadi(w http.ResponseWriter, r *http.Request) {
	var req JoinShaadiRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.Service.JoinShaadi(r.Context(), domain.JoinShaadiInput{
		Code:          strings.TrimSpace(req.Code),
		Username:      strings.TrimSpace(req.Username),
		Email:         strings.TrimSpace(strings.ToLower(req.Email)),
		Password:      req.Password,
		ProfilePicURL: req.ProfilePicURL,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInviteNotJoinable) || errors.Is(err, domain.ErrUnauthorized) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invite is not open for joining")
			return
		}
		if errors.Is(err, domain.ErrDuplicateUser) || errors.Is(err, domain.ErrConflict) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
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
	helpers.WriteJSONSuccess(w, http.StatusCreated, result)
}

// Me godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the user"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me [get]
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	user, err := c.Service.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "user not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}
