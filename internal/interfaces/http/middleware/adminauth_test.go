package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/infrastructure/cms"
)

// MockSessionValidator is a mock implementation of SessionValidator
type MockSessionValidator struct {
	mock.Mock
}

func (m *MockSessionValidator) Me(ctx context.Context, token string) (*cms.AdminUser, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cms.AdminUser), args.Error(1)
}

func newGuardedEngine(t *testing.T, validator SessionValidator) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	guard := AdminAuth(validator, AdminAuthConfig{CookieName: "admin_token"}, nil)
	engine.GET("/admin/ping", guard, func(c *gin.Context) {
		user := GetAdminUser(c)
		require.NotNil(t, user)
		c.JSON(http.StatusOK, gin.H{"email": user.Email})
	})
	return engine
}

func expiredCookie(t *testing.T, resp *http.Response) bool {
	t.Helper()
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "admin_token" && cookie.MaxAge < 0 {
			return true
		}
	}
	return false
}

func TestAdminAuth_MissingCookie(t *testing.T) {
	engine := newGuardedEngine(t, new(MockSessionValidator))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/ping", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuth_ValidSession(t *testing.T) {
	validator := new(MockSessionValidator)
	validator.On("Me", mock.Anything, "valid-token").
		Return(&cms.AdminUser{ID: 1, Email: "admin@example.com"}, nil)

	engine := newGuardedEngine(t, validator)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: "admin_token", Value: "valid-token"})
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin@example.com")
	validator.AssertExpectations(t)
}

func TestAdminAuth_RejectedSessionClearsCookie(t *testing.T) {
	validator := new(MockSessionValidator)
	validator.On("Me", mock.Anything, "stale-token").
		Return(nil, &cms.StatusError{Status: http.StatusUnauthorized, Body: "expired"})

	engine := newGuardedEngine(t, validator)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: "admin_token", Value: "stale-token"})
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, expiredCookie(t, w.Result()), "cookie should be cleared")
}

func TestAdminAuth_TransportErrorClearsCookie(t *testing.T) {
	validator := new(MockSessionValidator)
	validator.On("Me", mock.Anything, "any-token").
		Return(nil, cms.ErrUnavailable)

	engine := newGuardedEngine(t, validator)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: "admin_token", Value: "any-token"})
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, expiredCookie(t, w.Result()), "cookie should be cleared")
}

func TestRequestID_GeneratedWhenAbsent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestID_PropagatedWhenPresent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	engine.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}

func TestBodyLimit_RejectsOversizedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(BodyLimit(10))
	engine.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.ContentLength = 100
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
