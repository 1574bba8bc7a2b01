package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App         AppConfig
	Log         LogConfig
	HTTP        HTTPConfig
	CMS         CMSConfig
	MercadoPago MercadoPagoConfig
	Site        SiteConfig
	Cookie      CookieConfig
	Redis       RedisConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxBodySize    int64
	TrustedProxies []string
}

// CMSConfig holds the headless content-API connection settings
type CMSConfig struct {
	BaseURL  string
	APIToken string
	Timeout  time.Duration
}

// MercadoPagoConfig holds payment-provider credentials
type MercadoPagoConfig struct {
	AccessToken   string
	PublicKey     string
	WebhookSecret string
	// Currency is the ISO 4217 code preference items are priced in
	Currency string
	// WebhookURL overrides the notification URL derived from the site origin.
	// When set, checkout always attaches it even over plain HTTP.
	WebhookURL string
}

// SiteConfig holds the public site origin and the checkout redirect pages
type SiteConfig struct {
	URL         string // public origin, e.g. https://shop.example.com
	SuccessPath string
	FailurePath string
	PendingPath string
}

// CookieConfig holds the admin session cookie settings
type CookieConfig struct {
	Domain string
	Path   string
	Secure bool
	MaxAge time.Duration
}

// RedisConfig holds Redis connection settings for the webhook idempotency store
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// Load loads configuration from a TOML file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with STORE_ prefix (e.g., STORE_CMS_API_TOKEN)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("STORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:    v.GetDuration("http.read_timeout"),
			WriteTimeout:   v.GetDuration("http.write_timeout"),
			IdleTimeout:    v.GetDuration("http.idle_timeout"),
			MaxBodySize:    v.GetInt64("http.max_body_size"),
			TrustedProxies: v.GetStringSlice("http.trusted_proxies"),
		},
		CMS: CMSConfig{
			BaseURL:  v.GetString("cms.base_url"),
			APIToken: v.GetString("cms.api_token"),
			Timeout:  v.GetDuration("cms.timeout"),
		},
		MercadoPago: MercadoPagoConfig{
			AccessToken:   v.GetString("mercadopago.access_token"),
			PublicKey:     v.GetString("mercadopago.public_key"),
			WebhookSecret: v.GetString("mercadopago.webhook_secret"),
			Currency:      v.GetString("mercadopago.currency"),
			WebhookURL:    v.GetString("mercadopago.webhook_url"),
		},
		Site: SiteConfig{
			URL:         v.GetString("site.url"),
			SuccessPath: v.GetString("site.success_path"),
			FailurePath: v.GetString("site.failure_path"),
			PendingPath: v.GetString("site.pending_path"),
		},
		Cookie: CookieConfig{
			Domain: v.GetString("cookie.domain"),
			Path:   v.GetString("cookie.path"),
			Secure: v.GetBool("cookie.secure"),
			MaxAge: v.GetDuration("cookie.max_age"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "storefront-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		if cfg.App.Env == "production" {
			cfg.Log.Format = "json"
		} else {
			cfg.Log.Format = "console"
		}
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 30 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 1 << 20 // 1 MiB
	}
	if cfg.CMS.BaseURL == "" {
		cfg.CMS.BaseURL = "http://localhost:1337"
	}
	if cfg.CMS.Timeout == 0 {
		cfg.CMS.Timeout = 30 * time.Second
	}
	if cfg.Site.URL == "" {
		cfg.Site.URL = "http://localhost:3000"
	}
	if cfg.Site.SuccessPath == "" {
		cfg.Site.SuccessPath = "/checkout/success"
	}
	if cfg.Site.FailurePath == "" {
		cfg.Site.FailurePath = "/checkout/failure"
	}
	if cfg.Site.PendingPath == "" {
		cfg.Site.PendingPath = "/checkout/pending"
	}
	if cfg.MercadoPago.Currency == "" {
		cfg.MercadoPago.Currency = "ARS"
	}
	if cfg.Cookie.Path == "" {
		cfg.Cookie.Path = "/"
	}
	if cfg.Cookie.MaxAge == 0 {
		cfg.Cookie.MaxAge = 8 * time.Hour
	}
	if cfg.App.Env == "production" {
		cfg.Cookie.Secure = true
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
}

// validate checks configuration consistency
func (c *Config) validate() error {
	if _, err := url.Parse(c.CMS.BaseURL); err != nil {
		return fmt.Errorf("invalid cms.base_url: %w", err)
	}
	siteURL, err := url.Parse(c.Site.URL)
	if err != nil {
		return fmt.Errorf("invalid site.url: %w", err)
	}
	if siteURL.Scheme != "http" && siteURL.Scheme != "https" {
		return fmt.Errorf("site.url must be an absolute http(s) URL, got %q", c.Site.URL)
	}
	if c.App.Env == "production" && c.MercadoPago.AccessToken == "" {
		return fmt.Errorf("mercadopago.access_token is required in production")
	}
	if c.App.Env == "production" {
		// The __Host- session cookie forbids a Domain attribute and
		// requires Path=/
		if c.Cookie.Domain != "" {
			return fmt.Errorf("cookie.domain must be empty in production")
		}
		if c.Cookie.Path != "/" {
			return fmt.Errorf("cookie.path must be / in production, got %q", c.Cookie.Path)
		}
	}
	return nil
}

// IsProduction reports whether the app runs in the production environment
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// SiteIsHTTPS reports whether the public site origin is served over HTTPS.
// The payment provider only receives a notification URL when this holds or
// an explicit webhook URL override is configured.
func (c *Config) SiteIsHTTPS() bool {
	return strings.HasPrefix(c.Site.URL, "https://")
}

// AdminCookieName returns the session cookie name for the current environment.
// The __Host- prefix requires Secure and Path=/ so it is only used in production.
func (c *Config) AdminCookieName() string {
	if c.IsProduction() {
		return "__Host-admin_token"
	}
	return "admin_token"
}

// WebhookNotificationURL returns the notification URL the provider should
// call, or empty when none may be attached
func (c *Config) WebhookNotificationURL() string {
	if c.MercadoPago.WebhookURL != "" {
		return c.MercadoPago.WebhookURL
	}
	if c.SiteIsHTTPS() {
		return strings.TrimSuffix(c.Site.URL, "/") + "/api/webhooks/mercadopago"
	}
	return ""
}
