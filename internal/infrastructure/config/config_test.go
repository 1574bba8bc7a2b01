package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "storefront-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "http://localhost:1337", cfg.CMS.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.CMS.Timeout)
	assert.Equal(t, "/checkout/success", cfg.Site.SuccessPath)
	assert.Equal(t, 8*time.Hour, cfg.Cookie.MaxAge)
	assert.Equal(t, "/", cfg.Cookie.Path)
	assert.False(t, cfg.Cookie.Secure)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("STORE_CMS_BASE_URL", "https://cms.example.com")
	t.Setenv("STORE_APP_PORT", "9090")
	t.Setenv("STORE_MERCADOPAGO_ACCESS_TOKEN", "APP_USR-token")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://cms.example.com", cfg.CMS.BaseURL)
	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "APP_USR-token", cfg.MercadoPago.AccessToken)
}

func TestLoad_ProductionRequiresAccessToken(t *testing.T) {
	t.Setenv("STORE_APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access_token")
}

func TestLoad_ProductionForcesSecureCookie(t *testing.T) {
	t.Setenv("STORE_APP_ENV", "production")
	t.Setenv("STORE_MERCADOPAGO_ACCESS_TOKEN", "APP_USR-token")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Cookie.Secure)
	assert.Equal(t, "__Host-admin_token", cfg.AdminCookieName())
}

func TestLoad_ProductionRejectsCookieDomain(t *testing.T) {
	t.Setenv("STORE_APP_ENV", "production")
	t.Setenv("STORE_MERCADOPAGO_ACCESS_TOKEN", "APP_USR-token")
	t.Setenv("STORE_COOKIE_DOMAIN", "shop.example.com")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cookie.domain")
}

func TestAdminCookieName(t *testing.T) {
	cfg := &Config{App: AppConfig{Env: "development"}}
	assert.Equal(t, "admin_token", cfg.AdminCookieName())

	cfg.App.Env = "production"
	assert.Equal(t, "__Host-admin_token", cfg.AdminCookieName())
}

func TestWebhookNotificationURL(t *testing.T) {
	t.Run("explicit override wins", func(t *testing.T) {
		cfg := &Config{
			Site:        SiteConfig{URL: "http://localhost:3000"},
			MercadoPago: MercadoPagoConfig{WebhookURL: "https://tunnel.example.com/hook"},
		}
		assert.Equal(t, "https://tunnel.example.com/hook", cfg.WebhookNotificationURL())
	})

	t.Run("derived from https origin", func(t *testing.T) {
		cfg := &Config{Site: SiteConfig{URL: "https://shop.example.com/"}}
		assert.Equal(t, "https://shop.example.com/api/webhooks/mercadopago", cfg.WebhookNotificationURL())
	})

	t.Run("empty for plain http origin", func(t *testing.T) {
		cfg := &Config{Site: SiteConfig{URL: "http://localhost:3000"}}
		assert.Empty(t, cfg.WebhookNotificationURL())
	})
}

func TestValidate_RejectsBadSiteURL(t *testing.T) {
	t.Setenv("STORE_SITE_URL", "not a url")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "site.url")
}
