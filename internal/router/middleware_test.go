package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "talenthub/internal/errors"
	"talenthub/internal/handler"
	"talenthub/internal/model"
)

const testLoginPath = "/users/login"

// stubResolver returns a fixed identity or error for any token.
type stubResolver struct {
	identity model.Identity
	err      error
}

func (s stubResolver) Resolve(ctx context.Context, token string) (model.Identity, error) {
	return s.identity, s.err
}

func newTestContext(t *testing.T, sessionToken string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users/dashboard", nil)
	if sessionToken != "" {
		req.AddCookie(&http.Cookie{Name: handler.SessionCookieName, Value: sessionToken})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestRequireSession_ValidToken(t *testing.T) {
	alice := model.Identity{ID: uuid.New(), Username: "alice"}
	mw := RequireSession(stubResolver{identity: alice}, testLoginPath)

	called := false
	err := mw(func(c echo.Context) error {
		called = true
		identity, ok := handler.IdentityFromContext(c)
		require.True(t, ok)
		assert.Equal(t, alice, identity)
		return nil
	})(newTestContext(t, "some-token"))

	require.NoError(t, err)
	assert.True(t, called)
}

func TestRequireSession_MissingToken(t *testing.T) {
	mw := RequireSession(stubResolver{}, testLoginPath)

	err := mw(okHandler)(newTestContext(t, ""))

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	resp, ok := httpErr.Message.(apperrors.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, testLoginPath, resp.Redirect)
}

func TestRequireSession_InvalidToken(t *testing.T) {
	mw := RequireSession(stubResolver{err: apperrors.ErrInvalidSession}, testLoginPath)

	err := mw(okHandler)(newTestContext(t, "stale-token"))

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	resp, ok := httpErr.Message.(apperrors.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, "SESSION_INVALID", resp.Code)
	assert.Equal(t, testLoginPath, resp.Redirect)
}

func TestRequireSession_StoreFailureDoesNotFailOpen(t *testing.T) {
	mw := RequireSession(stubResolver{err: apperrors.NewStoreError("get session", assert.AnError)}, testLoginPath)

	err := mw(okHandler)(newTestContext(t, "some-token"))

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
}

func TestRequireSession_BearerFallback(t *testing.T) {
	alice := model.Identity{ID: uuid.New(), Username: "alice"}
	mw := RequireSession(stubResolver{identity: alice}, testLoginPath)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer some-token")
	c := e.NewContext(req, httptest.NewRecorder())

	called := false
	err := mw(func(c echo.Context) error {
		called = true
		return nil
	})(c)

	require.NoError(t, err)
	assert.True(t, called)
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name         string
		identity     *model.Identity
		expectedCode int
	}{
		{
			name:         "anonymous request",
			identity:     nil,
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "authenticated non-admin",
			identity:     &model.Identity{ID: uuid.New(), Username: "alice", AccountType: model.AccountTypeTalent},
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "admin",
			identity:     &model.Identity{ID: uuid.New(), Username: "root", Admin: true},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContext(t, "")
			if tt.identity != nil {
				handler.SetIdentity(c, *tt.identity)
			}

			err := RequireAdmin()(okHandler)(c)

			if tt.expectedCode == http.StatusOK {
				assert.NoError(t, err)
				return
			}
			var httpErr *echo.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, tt.expectedCode, httpErr.Code)
		})
	}
}
