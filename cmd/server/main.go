package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
	checkoutapp "github.com/storefront/backend/internal/application/checkout"
	webhookapp "github.com/storefront/backend/internal/application/webhook"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/cms"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/payment"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/storefront/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Content-API client, the sole datastore
	cmsClient, err := cms.NewClient(cms.Config{
		BaseURL:  cfg.CMS.BaseURL,
		APIToken: cfg.CMS.APIToken,
		Timeout:  cfg.CMS.Timeout,
	}, log)
	if err != nil {
		log.Fatal("Failed to create content-API client", zap.Error(err))
	}

	// Payment adapter, optional outside production
	var mpAdapter *payment.MercadoPagoAdapter
	if cfg.MercadoPago.AccessToken != "" {
		mpAdapter, err = payment.NewMercadoPagoAdapter(&payment.MercadoPagoConfig{
			AccessToken:   cfg.MercadoPago.AccessToken,
			PublicKey:     cfg.MercadoPago.PublicKey,
			WebhookSecret: cfg.MercadoPago.WebhookSecret,
		})
		if err != nil {
			log.Fatal("Failed to create payment adapter", zap.Error(err))
		}
	} else {
		log.Warn("No payment-provider access token configured, checkout is disabled")
	}

	// Webhook idempotency store
	idempotencyStore := cache.NewIdempotencyStore(cfg.Redis, log)
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// Application services
	productService := catalogapp.NewProductService(cmsClient, cmsClient)
	sizeService := catalogapp.NewSizeService(cmsClient)
	categoryService := catalogapp.NewCategoryService(cmsClient)
	orderService := checkoutapp.NewOrderService(cmsClient, log)
	posService := checkoutapp.NewPOSService(cmsClient, cmsClient, log)
	checkoutService := checkoutapp.NewCheckoutService(cmsClient, cmsClient, preferenceCreatorOrNil(mpAdapter), checkoutapp.Config{
		Currency:        cfg.MercadoPago.Currency,
		SiteURL:         cfg.Site.URL,
		SuccessPath:     cfg.Site.SuccessPath,
		FailurePath:     cfg.Site.FailurePath,
		PendingPath:     cfg.Site.PendingPath,
		NotificationURL: cfg.WebhookNotificationURL(),
	}, log)
	webhookService := webhookapp.NewService(gatewayOrNil(mpAdapter), orderService, idempotencyStore, log)

	// HTTP engine
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.Site.URL},
		AllowCredentials: true,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Handlers
	productHandler := handler.NewProductHandler(productService)
	sizeHandler := handler.NewSizeHandler(sizeService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	orderHandler := handler.NewOrderHandler(orderService)
	saleHandler := handler.NewSaleHandler(posService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	preferenceHandler := handler.NewPreferenceHandler(mpAdapter)
	authHandler := handler.NewAuthHandler(cmsClient, handler.AuthConfig{
		CookieName: cfg.AdminCookieName(),
		Domain:     cfg.Cookie.Domain,
		Path:       cfg.Cookie.Path,
		Secure:     cfg.Cookie.Secure,
		MaxAge:     cfg.Cookie.MaxAge,
	}, log)
	webhookHandler := handler.NewWebhookHandler(webhookService, log)

	adminGuard := middleware.AdminAuth(cmsClient, middleware.AdminAuthConfig{
		CookieName: cfg.AdminCookieName(),
		Domain:     cfg.Cookie.Domain,
		Path:       cfg.Cookie.Path,
		Secure:     cfg.Cookie.Secure,
	}, log)

	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithAdminGuard(adminGuard),
	)
	r.Register(productHandler).
		Register(sizeHandler).
		Register(categoryHandler).
		Register(checkoutHandler).
		Register(preferenceHandler).
		Register(authHandler)
	r.RegisterAdmin(productHandler).
		RegisterAdmin(sizeHandler).
		RegisterAdmin(categoryHandler).
		RegisterAdmin(orderHandler).
		RegisterAdmin(saleHandler)
	r.Setup()

	webhookHandler.RegisterRoutes(engine)

	// HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// gatewayOrNil avoids the typed-nil interface trap when no payment
// credentials are configured
func gatewayOrNil(adapter *payment.MercadoPagoAdapter) webhookapp.PaymentGateway {
	if adapter == nil {
		return nil
	}
	return adapter
}

func preferenceCreatorOrNil(adapter *payment.MercadoPagoAdapter) checkoutapp.PreferenceCreator {
	if adapter == nil {
		return nil
	}
	return adapter
}
