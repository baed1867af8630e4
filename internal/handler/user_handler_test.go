package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"talenthub/internal/model"
)

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetProfile(ctx context.Context, id uuid.UUID) (model.Identity, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Identity), args.Error(1)
}

func (m *MockUserService) Directory(ctx context.Context) ([]model.DirectoryEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DirectoryEntry), args.Error(1)
}

func TestDashboardView(t *testing.T) {
	assert.Equal(t, "business", DashboardView(model.AccountTypeBusiness))
	assert.Equal(t, "talent", DashboardView(model.AccountTypeTalent))
	assert.Equal(t, "default", DashboardView(model.AccountTypeNone))
}

func newDashboardContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users/dashboard", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUserHandler_Dashboard(t *testing.T) {
	t.Run("talent gets talent view, no directory", func(t *testing.T) {
		svc := new(MockUserService)
		h := NewUserHandler(svc)

		c, rec := newDashboardContext(t)
		SetIdentity(c, model.Identity{ID: uuid.New(), Username: "alice", AccountType: model.AccountTypeTalent})

		require.NoError(t, h.Dashboard(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp DashboardResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "talent", resp.View)
		assert.Empty(t, resp.Directory)
		svc.AssertNotCalled(t, "Directory", mock.Anything)
	})

	t.Run("admin gets directory without hashes", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("Directory", mock.Anything).Return([]model.DirectoryEntry{
			{Username: "alice", Name: "Alice", AccountType: model.AccountTypeTalent},
			{Username: "acme", Name: "Acme Inc", AccountType: model.AccountTypeBusiness},
		}, nil)
		h := NewUserHandler(svc)

		c, rec := newDashboardContext(t)
		SetIdentity(c, model.Identity{ID: uuid.New(), Username: "root", Admin: true})

		require.NoError(t, h.Dashboard(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp DashboardResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.Directory, 2)
		assert.NotContains(t, rec.Body.String(), "password")
		svc.AssertExpectations(t)
	})

	t.Run("anonymous is rejected", func(t *testing.T) {
		h := NewUserHandler(new(MockUserService))

		c, _ := newDashboardContext(t)
		err := h.Dashboard(c)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})
}

func TestUserHandler_Directory(t *testing.T) {
	svc := new(MockUserService)
	svc.On("Directory", mock.Anything).Return([]model.DirectoryEntry{
		{Username: "alice", Name: "Alice", Address: "12345", AccountType: model.AccountTypeTalent},
	}, nil)
	h := NewUserHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Directory(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "alice", entries[0]["username"])
	assert.NotContains(t, entries[0], "password")
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestUserHandler_Me(t *testing.T) {
	h := NewUserHandler(new(MockUserService))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	SetIdentity(c, model.Identity{ID: uuid.New(), Username: "alice"})

	require.NoError(t, h.Me(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)
}
