package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "talenthub/internal/errors"
	"talenthub/internal/model"
	"talenthub/internal/service"
)

// identityContextKey is where the session middleware stores the resolved
// identity on the request context.
const identityContextKey = "identity"

// SetIdentity stores the resolved identity on the echo context.
func SetIdentity(c echo.Context, identity model.Identity) {
	c.Set(identityContextKey, identity)
}

// IdentityFromContext returns the identity placed by the session
// middleware, or false when the request is anonymous.
func IdentityFromContext(c echo.Context) (model.Identity, bool) {
	identity, ok := c.Get(identityContextKey).(model.Identity)
	return identity, ok
}

// DashboardView selects the dashboard variant for an account type. Pure
// function of the type; authorization has already happened by the time
// it is called.
func DashboardView(t model.AccountType) string {
	switch t {
	case model.AccountTypeBusiness:
		return "business"
	case model.AccountTypeTalent:
		return "talent"
	default:
		return "default"
	}
}

// DashboardResponse is the role-differentiated dashboard payload. The
// directory is present only for admins.
type DashboardResponse struct {
	View      string                 `json:"view"`
	User      model.Identity         `json:"user"`
	Directory []model.DirectoryEntry `json:"directory,omitempty"`
}

// UserHandler handles authenticated user endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me godoc
// @Summary Return the authenticated identity
// @Tags users
// @Produce json
// @Success 200 {object} model.Identity
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	identity, ok := IdentityFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return c.JSON(http.StatusOK, identity)
}

// Dashboard godoc
// @Summary Return the role-differentiated dashboard payload
// @Tags users
// @Produce json
// @Success 200 {object} DashboardResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/dashboard [get]
func (h *UserHandler) Dashboard(c echo.Context) error {
	identity, ok := IdentityFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	resp := DashboardResponse{
		View: DashboardView(identity.AccountType),
		User: identity,
	}

	if identity.Admin {
		directory, err := h.userService.Directory(c.Request().Context())
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
				Error: "failed to load directory",
				Code:  "DIRECTORY_FAILED",
			})
		}
		resp.Directory = directory
	}

	return c.JSON(http.StatusOK, resp)
}

// Directory godoc
// @Summary List all user records (restricted projection)
// @Tags admin
// @Produce json
// @Success 200 {array} model.DirectoryEntry
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *UserHandler) Directory(c echo.Context) error {
	directory, err := h.userService.Directory(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error: "failed to load directory",
			Code:  "DIRECTORY_FAILED",
		})
	}
	return c.JSON(http.StatusOK, directory)
}

// GetProfile godoc
// @Summary Return a user's public profile
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} model.Identity
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	profile, err := h.userService.GetProfile(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, apperrors.ErrorResponse{
				Error: err.Error(),
				Code:  "USER_NOT_FOUND",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error: "failed to load profile",
			Code:  "PROFILE_FAILED",
		})
	}
	return c.JSON(http.StatusOK, profile)
}
