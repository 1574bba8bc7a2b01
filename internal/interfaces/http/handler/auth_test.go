package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/infrastructure/cms"
)

// MockAdminSessionClient is a mock implementation of AdminSessionClient
type MockAdminSessionClient struct {
	mock.Mock
}

func (m *MockAdminSessionClient) AdminLogin(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockAdminSessionClient) Me(ctx context.Context, token string) (*cms.AdminUser, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cms.AdminUser), args.Error(1)
}

func newAuthEngine(t *testing.T, client AdminSessionClient) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	handler := NewAuthHandler(client, AuthConfig{CookieName: "admin_token"}, nil)
	api := engine.Group("/api/v1")
	handler.RegisterRoutes(api)
	return engine
}

func findCookie(t *testing.T, resp *http.Response, name string) *http.Cookie {
	t.Helper()
	for _, cookie := range resp.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestAuthHandler_Login_SetsSessionCookie(t *testing.T) {
	client := new(MockAdminSessionClient)
	client.On("AdminLogin", mock.Anything, "admin@example.com", "secret").
		Return("cms-token", nil)

	engine := newAuthEngine(t, client)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"admin@example.com","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	cookie := findCookie(t, w.Result(), "admin_token")
	require.NotNil(t, cookie)
	assert.Equal(t, "cms-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, int((8 * 60 * 60)), cookie.MaxAge)
	client.AssertExpectations(t)
}

func TestAuthHandler_Login_ConfiguredCookieAttributes(t *testing.T) {
	client := new(MockAdminSessionClient)
	client.On("AdminLogin", mock.Anything, "admin@example.com", "secret").
		Return("cms-token", nil)

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	handler := NewAuthHandler(client, AuthConfig{
		CookieName: "admin_token",
		Domain:     "shop.example.com",
		Path:       "/api",
		MaxAge:     time.Hour,
	}, nil)
	handler.RegisterRoutes(engine.Group("/api/v1"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"admin@example.com","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	cookie := findCookie(t, w.Result(), "admin_token")
	require.NotNil(t, cookie)
	assert.Equal(t, "shop.example.com", cookie.Domain)
	assert.Equal(t, "/api", cookie.Path)
	assert.Equal(t, 3600, cookie.MaxAge)
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	client := new(MockAdminSessionClient)
	client.On("AdminLogin", mock.Anything, "admin@example.com", "wrong").
		Return("", &cms.StatusError{Status: http.StatusUnauthorized, Body: "bad credentials"})

	engine := newAuthEngine(t, client)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"admin@example.com","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, findCookie(t, w.Result(), "admin_token"))
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	engine := newAuthEngine(t, new(MockAdminSessionClient))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"admin@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	engine := newAuthEngine(t, new(MockAdminSessionClient))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	cookie := findCookie(t, w.Result(), "admin_token")
	require.NotNil(t, cookie)
	assert.Less(t, cookie.MaxAge, 0)
}

func TestAuthHandler_Me_ValidSession(t *testing.T) {
	client := new(MockAdminSessionClient)
	client.On("Me", mock.Anything, "cms-token").
		Return(&cms.AdminUser{ID: 1, Email: "admin@example.com"}, nil)

	engine := newAuthEngine(t, client)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "admin_token", Value: "cms-token"})
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin@example.com")
}

func TestAuthHandler_Me_InvalidSessionClearsCookie(t *testing.T) {
	client := new(MockAdminSessionClient)
	client.On("Me", mock.Anything, "stale").
		Return(nil, &cms.StatusError{Status: http.StatusUnauthorized, Body: "expired"})

	engine := newAuthEngine(t, client)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "admin_token", Value: "stale"})
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	cookie := findCookie(t, w.Result(), "admin_token")
	require.NotNil(t, cookie)
	assert.Less(t, cookie.MaxAge, 0)
}
