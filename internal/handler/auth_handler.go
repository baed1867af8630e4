package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "talenthub/internal/errors"
	"talenthub/internal/model"
	"talenthub/internal/service"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "th_session"

// AuthHandler handles registration, login and logout endpoints.
type AuthHandler struct {
	authService service.AuthService
	cookieTTL   time.Duration
}

// NewAuthHandler creates a new auth handler. cookieTTL should match the
// session TTL so the cookie and the server-side session expire together.
func NewAuthHandler(authService service.AuthService, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, cookieTTL: cookieTTL}
}

// RegisterBusinessRequest represents a business registration submission.
type RegisterBusinessRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Website1   string `json:"website1"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	Region     string `json:"region" validate:"required"`
	PostalCode string `json:"postalcode" validate:"required"`
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required,min=6"`
}

// RegisterTalentRequest represents a talent registration submission.
type RegisterTalentRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Website1   string `json:"website1"`
	Website2   string `json:"website2"`
	PostalCode string `json:"postalcode" validate:"required"`
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents a login submission.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the session token and the authenticated identity.
// The token is also set as a cookie for browser clients.
type LoginResponse struct {
	Token string         `json:"token"`
	User  model.Identity `json:"user"`
}

// RegisterBusiness godoc
// @Summary Register a business account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterBusinessRequest true "Registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/register_business [post]
func (h *AuthHandler) RegisterBusiness(c echo.Context) error {
	var req RegisterBusinessRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := service.NewUserInput{
		Username:    req.Username,
		Password:    req.Password,
		Name:        req.Name,
		Address:     fmt.Sprintf("%s, %s, %s %s", req.Address, req.City, req.Region, req.PostalCode),
		ContactInfo: model.ContactInfo{Email: req.Email, Website1: req.Website1},
		AccountType: model.AccountTypeBusiness,
	}
	return h.register(c, input)
}

// RegisterTalent godoc
// @Summary Register a talent account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterTalentRequest true "Registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/register_talent [post]
func (h *AuthHandler) RegisterTalent(c echo.Context) error {
	var req RegisterTalentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := service.NewUserInput{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Address:  req.PostalCode,
		ContactInfo: model.ContactInfo{
			Email:    req.Email,
			Website1: req.Website1,
			Website2: req.Website2,
		},
		AccountType: model.AccountTypeTalent,
	}
	return h.register(c, input)
}

func (h *AuthHandler) register(c echo.Context, input service.NewUserInput) error {
	user, err := h.authService.Register(c.Request().Context(), input)
	if err != nil {
		if errors.Is(err, apperrors.ErrUsernameTaken) {
			return echo.NewHTTPError(http.StatusConflict, apperrors.ErrorResponse{
				Error: err.Error(),
				Code:  "USERNAME_TAKEN",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error: "failed to register user",
			Code:  "REGISTRATION_FAILED",
		})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "user registered successfully",
		"user":    user.Identity(),
	})
}

// Login godoc
// @Summary Log in with username and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, identity, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	c.SetCookie(h.sessionCookie(token, h.cookieTTL))
	return c.JSON(http.StatusOK, LoginResponse{Token: token, User: identity})
}

// Logout godoc
// @Summary Log out and destroy the session
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /users/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		// Destroy is idempotent; an already-dead token is fine.
		_ = h.authService.Logout(c.Request().Context(), cookie.Value)
	}

	c.SetCookie(h.sessionCookie("", -time.Hour))
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) sessionCookie(value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
