package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/infrastructure/cms"
)

// AdminUserKey is the gin context key the validated admin identity is
// stored under
const AdminUserKey = "admin_user"

// SessionValidator introspects an administrator session token.
// Satisfied by *cms.Client.
type SessionValidator interface {
	Me(ctx context.Context, token string) (*cms.AdminUser, error)
}

// AdminAuthConfig holds the session cookie settings
type AdminAuthConfig struct {
	CookieName string
	Domain     string
	Path       string
	Secure     bool
}

// AdminAuth guards back-office routes. The session cookie carries a CMS
// admin token; every request is re-validated against the CMS, the service
// holds no session state of its own. Validation failures clear the cookie
// so the browser stops retrying a dead session.
func AdminAuth(validator SessionValidator, cfg AdminAuthConfig, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		token, err := c.Cookie(cfg.CookieName)
		if err != nil || token == "" {
			unauthorized(c, cfg, "Admin session required")
			return
		}

		user, err := validator.Me(c.Request.Context(), token)
		if err != nil {
			log.Info("admin session validation failed", zap.Error(err))
			unauthorized(c, cfg, "Admin session expired or invalid")
			return
		}

		c.Set(AdminUserKey, user)
		c.Next()
	}
}

// GetAdminUser returns the validated admin identity, if any
func GetAdminUser(c *gin.Context) *cms.AdminUser {
	if v, ok := c.Get(AdminUserKey); ok {
		if user, ok := v.(*cms.AdminUser); ok {
			return user
		}
	}
	return nil
}

func unauthorized(c *gin.Context, cfg AdminAuthConfig, message string) {
	ClearSessionCookie(c, cfg.CookieName, cfg.Path, cfg.Domain, cfg.Secure)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "ERR_UNAUTHORIZED",
			"message": message,
		},
	})
}

// ClearSessionCookie expires the admin session cookie. Shared with the
// logout handler so both paths clear it with the same attributes the login
// set it with.
func ClearSessionCookie(c *gin.Context, name, path, domain string, secure bool) {
	if path == "" {
		path = "/"
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(name, "", -1, path, domain, secure, true)
}
