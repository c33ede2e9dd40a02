// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/keyward/keyward-backend/internal/config"
	"github.com/keyward/keyward-backend/internal/handlers"
	"github.com/keyward/keyward-backend/internal/middleware"
	"github.com/keyward/keyward-backend/internal/services"
	"github.com/keyward/keyward-backend/internal/store/postgres"
	"github.com/keyward/keyward-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize repositories
	stores := postgres.New(db)

	// Initialize services
	authService := services.NewAuthService(stores.Users, cfg)
	verificationService := services.NewVerificationService(stores.Licenses, stores.Products)
	licenseService := services.NewLicenseService(stores.Licenses, stores.Products, stores.Users)
	productService := services.NewProductService(stores.Products)
	userService := services.NewUserService(stores.Users)
	settingsService := services.NewSettingsService(stores.Settings)
	dashboardService := services.NewDashboardService(stores.Licenses, stores.Products, stores.Users)
	paymentService := services.NewPaymentService(stores.Settings, stores.Products, cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	verificationHandler := handlers.NewVerificationHandler(verificationService)
	licenseHandler := handlers.NewLicenseHandler(licenseService)
	productHandler := handlers.NewProductHandler(productService)
	userHandler := handlers.NewUserHandler(userService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	authRequired := middleware.AuthRequired(stores.Users)
	adminRequired := middleware.AdminRequired()

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", authRequired, authHandler.GetProfile)
		}

		// Public license verification: no authentication by design, it is
		// called by the licensed software itself
		v1.POST("/verify", middleware.VerifyRateLimit(), verificationHandler.Verify)

		// Product routes
		products := v1.Group("/products")
		products.Use(authRequired)
		{
			products.GET("", productHandler.GetProducts)
			products.POST("", adminRequired, productHandler.CreateProduct)
			products.PUT("/:id", adminRequired, productHandler.UpdateProduct)
			products.DELETE("/:id", adminRequired, productHandler.DeleteProduct)
		}

		// License routes: listing is ownership-scoped, writes are admin-only
		licenses := v1.Group("/licenses")
		licenses.Use(authRequired)
		{
			licenses.GET("", licenseHandler.GetLicenses)
			licenses.POST("", adminRequired, licenseHandler.CreateLicense)
			licenses.PUT("/:id", adminRequired, licenseHandler.UpdateLicense)
			licenses.DELETE("/:id", adminRequired, licenseHandler.DeleteLicense)
		}

		// User management
		users := v1.Group("/users")
		users.Use(authRequired, adminRequired)
		{
			users.GET("", userHandler.GetUsers)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		// Dashboard
		dashboard := v1.Group("/dashboard")
		dashboard.Use(authRequired, adminRequired)
		{
			dashboard.GET("/stats", dashboardHandler.GetStats)
		}

		// Settings
		settings := v1.Group("/settings")
		settings.Use(authRequired, adminRequired)
		{
			settings.GET("", settingsHandler.GetSettings)
			settings.PUT("", settingsHandler.UpdateSettings)
		}

		// Payments
		payments := v1.Group("/payments")
		{
			payments.POST("/preference", authRequired, paymentHandler.CreatePreference)
			payments.POST("/webhook", paymentHandler.Webhook)
		}
	}

	return r
}
