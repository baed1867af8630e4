package router

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "talenthub/internal/errors"
	"talenthub/internal/handler"
	"talenthub/internal/model"
)

// SessionResolver maps a session token to a live identity.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (model.Identity, error)
}

// RequireSession resolves the request's session token and stores the
// identity on the context. An unresolvable token is answered with 401
// and the login redirect target: this is navigation, not a fault.
// Store failures are a 500; the gate never fails open.
func RequireSession(sessions SessionResolver, loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return rejectToLogin(loginPath)
			}

			identity, err := sessions.Resolve(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, apperrors.ErrInvalidSession) {
					return rejectToLogin(loginPath)
				}
				return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
					Error: "internal server error",
					Code:  "INTERNAL_ERROR",
				})
			}

			handler.SetIdentity(c, identity)
			return next(c)
		}
	}
}

// RequireAdmin gates privileged routes. It must run after
// RequireSession; a non-admin identity is a 403, distinct from the 401
// an anonymous request gets.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := handler.IdentityFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: "authentication required",
					Code:  "SESSION_INVALID",
				})
			}
			if !identity.Admin {
				return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
					Error: apperrors.ErrForbidden.Error(),
					Code:  "FORBIDDEN",
				})
			}
			return next(c)
		}
	}
}

func rejectToLogin(loginPath string) error {
	return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
		Error:    "authentication required",
		Code:     "SESSION_INVALID",
		Redirect: loginPath,
	})
}

// extractToken reads the session token from the cookie, falling back to
// a bearer Authorization header for non-browser clients.
func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(handler.SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
