package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/infrastructure/cms"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// defaultSessionMaxAge is the session cookie lifetime when none is
// configured. The CMS token itself may expire earlier; the guard
// re-validates on every request.
const defaultSessionMaxAge = 8 * time.Hour

// AdminSessionClient is the slice of the content-API client the auth
// handler needs. Satisfied by *cms.Client.
type AdminSessionClient interface {
	AdminLogin(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context, token string) (*cms.AdminUser, error)
}

// AuthConfig holds the session cookie settings for the auth handler
type AuthConfig struct {
	CookieName string
	Domain     string
	Path       string
	Secure     bool
	MaxAge     time.Duration
}

// AuthHandler proxies administrator login to the CMS and manages the
// session cookie. The service never mints its own tokens.
type AuthHandler struct {
	BaseHandler
	client AdminSessionClient
	cfg    AuthConfig
	log    *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(client AdminSessionClient, cfg AuthConfig, log *zap.Logger) *AuthHandler {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = defaultSessionMaxAge
	}
	if cfg.Path == "" {
		cfg.Path = "/"
	}
	return &AuthHandler{client: client, cfg: cfg, log: log}
}

// RegisterRoutes registers the auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", h.Me)
	}
}

// LoginRequest represents administrator credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=1"`
}

// Login exchanges credentials for a CMS session and sets the cookie
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Email and password are required")
		return
	}

	token, err := h.client.AdminLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.log.Info("admin login rejected", zap.String("email", req.Email), zap.Error(err))
		h.Unauthorized(c, "Invalid credentials")
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cfg.CookieName, token, int(h.cfg.MaxAge.Seconds()), h.cfg.Path, h.cfg.Domain, h.cfg.Secure, true)
	h.Success(c, gin.H{"loggedIn": true})
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c, h.cfg.CookieName, h.cfg.Path, h.cfg.Domain, h.cfg.Secure)
	h.Success(c, gin.H{"loggedIn": false})
}

// Me returns the identity behind the current session cookie
func (h *AuthHandler) Me(c *gin.Context) {
	token, err := c.Cookie(h.cfg.CookieName)
	if err != nil || token == "" {
		h.Unauthorized(c, "Admin session required")
		return
	}

	user, err := h.client.Me(c.Request.Context(), token)
	if err != nil {
		middleware.ClearSessionCookie(c, h.cfg.CookieName, h.cfg.Path, h.cfg.Domain, h.cfg.Secure)
		h.Unauthorized(c, "Admin session expired or invalid")
		return
	}
	h.Success(c, user)
}
