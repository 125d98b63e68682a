package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/medgear/medgear_api/internal/cache"
	"github.com/medgear/medgear_api/internal/config"
	"github.com/medgear/medgear_api/internal/database"
	"github.com/medgear/medgear_api/internal/handler"
	"github.com/medgear/medgear_api/internal/middleware"
	"github.com/medgear/medgear_api/internal/models"
	"github.com/medgear/medgear_api/internal/repository"
	"github.com/medgear/medgear_api/internal/service"
	"github.com/medgear/medgear_api/internal/utils"
)

// main is the application entrypoint for the MedGear API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting medgear api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	// 3c. Initialize stats cache
	statsCache := cache.NewStatsCache(redisClient, cfg.Analytics.StatsCacheTTL)

	// 4. Initialize repositories
	adminRepo := repository.NewAdminUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	galleryRepo := repository.NewGalleryRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	visitRepo := repository.NewVisitRepository(db)

	// 5. Initialize services
	adminAuthSvc := service.NewAdminAuthService(adminRepo, cfg.JWTSecret)
	customerAuthSvc := service.NewCustomerAuthService(customerRepo, cfg.JWTSecret)
	catalogSvc := service.NewCatalogService(productRepo, galleryRepo)
	orderSvc := service.NewOrderService(orderRepo, productRepo, adminAuthSvc, cfg.Orders.StrictTransitions)
	analyticsSvc := service.NewAnalyticsService(visitRepo, statsCache, cfg.Analytics.AdminPathPrefix)

	imageSvc, err := service.NewImageService(&cfg.S3)
	if err != nil {
		log.Warn().Err(err).Msg("image service initialization failed - uploads will be disabled")
	}

	// 6. Initialize handlers
	authRateLimiter := middleware.NewInvalidAuthRateLimiter()
	handlers := &Handlers{
		Health:            handler.NewHealthHandler(db, redisClient),
		Auth:              handler.NewAuthHandler(adminAuthSvc, authRateLimiter),
		AdminUser:         handler.NewAdminUserHandler(adminAuthSvc),
		Account:           handler.NewAccountHandler(customerAuthSvc, orderSvc, orderRepo),
		Product:           handler.NewProductHandler(productRepo, galleryRepo),
		ProductManagement: handler.NewProductManagementHandler(catalogSvc, productRepo, imageSvc),
		Gallery:           handler.NewGalleryHandler(catalogSvc, imageSvc),
		Quote:             handler.NewQuoteHandler(orderSvc),
		AdminOrder:        handler.NewAdminOrderHandler(orderSvc, orderRepo),
		Analytics:         handler.NewAnalyticsHandler(analyticsSvc, cfg.JWTSecret),
		Client:            handler.NewClientHandler(customerRepo),
	}

	// 7. Initialize middleware
	jwtMw := middleware.NewJWTMiddleware(cfg.JWTSecret)
	privMw := middleware.NewPrivilegeMiddleware(adminAuthSvc)

	// 8. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, jwtMw, privMw)

	// 9. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 10. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 11. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health            *handler.HealthHandler
	Auth              *handler.AuthHandler
	AdminUser         *handler.AdminUserHandler
	Account           *handler.AccountHandler
	Product           *handler.ProductHandler
	ProductManagement *handler.ProductManagementHandler
	Gallery           *handler.GalleryHandler
	Quote             *handler.QuoteHandler
	AdminOrder        *handler.AdminOrderHandler
	Analytics         *handler.AnalyticsHandler
	Client            *handler.ClientHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMw *middleware.JWTMiddleware, privMw *middleware.PrivilegeMiddleware) {
	router.GET("/v1/health", handlers.Health.GetHealth)

	// Public site
	router.GET("/v1/products", handlers.Product.ListProducts)
	router.GET("/v1/products/categories", handlers.Product.GetCategories)
	router.GET("/v1/products/:id", handlers.Product.GetProduct)
	router.GET("/v1/gallery", handlers.Product.ListGallery)
	router.GET("/v1/projects", handlers.Product.ListProjects)
	router.POST("/v1/quote-requests", handlers.Quote.SubmitQuoteRequest)
	router.POST("/v1/visits", handlers.Analytics.RecordVisit)

	// Customer accounts
	router.POST("/v1/account/register", handlers.Account.Register)
	router.POST("/v1/account/login", handlers.Account.Login)
	account := router.Group("/v1/account")
	account.Use(jwtMw.Handle(utils.RoleCustomer))
	{
		account.POST("/logout", handlers.Account.Logout)
		account.GET("/me", handlers.Account.Me)
		account.GET("/quote-requests", handlers.Account.ListMyRequests)
		account.POST("/quote-requests", handlers.Account.SubmitQuoteRequest)
	}

	// Back office
	admin := router.Group("/v1/admin")
	admin.POST("/auth/login", handlers.Auth.Login)
	admin.POST("/auth/register", handlers.Auth.Register)
	admin.Use(jwtMw.Handle(utils.RoleAdmin))
	{
		admin.GET("/auth/me", handlers.Auth.Me)

		// Admin account management (super admin only)
		admins := admin.Group("/admins", privMw.RequireSuperAdmin())
		admins.GET("", handlers.AdminUser.ListAdmins)
		admins.POST("/:id/approve", handlers.AdminUser.ApproveAdmin)
		admins.POST("/:id/reject", handlers.AdminUser.RejectAdmin)

		// Catalog management
		products := admin.Group("/products", privMw.Require(models.PrivilegeManageProducts))
		products.POST("", handlers.ProductManagement.CreateProduct)
		products.PUT("/:id", handlers.ProductManagement.UpdateProduct)
		products.DELETE("/:id", handlers.ProductManagement.DeleteProduct)
		products.POST("/:id/image", handlers.ProductManagement.UploadProductImage)

		gallery := admin.Group("/gallery", privMw.Require(models.PrivilegeManageProducts))
		gallery.POST("", handlers.Gallery.CreateGalleryItem)
		gallery.PUT("/:id", handlers.Gallery.UpdateGalleryItem)
		gallery.DELETE("/:id", handlers.Gallery.DeleteGalleryItem)
		gallery.POST("/upload", handlers.Gallery.UploadImage)

		projects := admin.Group("/projects", privMw.Require(models.PrivilegeManageProducts))
		projects.POST("", handlers.Gallery.CreateProject)
		projects.PUT("/:id", handlers.Gallery.UpdateProject)
		projects.DELETE("/:id", handlers.Gallery.DeleteProject)

		// Order processing
		orders := admin.Group("/orders", privMw.Require(models.PrivilegeProcessOrders))
		orders.GET("", handlers.AdminOrder.ListOrders)
		orders.GET("/stats", handlers.AdminOrder.GetStats)
		orders.GET("/:id", handlers.AdminOrder.GetOrder)
		orders.PUT("/:id/status", handlers.AdminOrder.UpdateStatus)
		orders.PUT("/:id/quote", handlers.AdminOrder.AttachQuote)

		// Clients view
		admin.GET("/clients", privMw.Require(models.PrivilegeAccessClients), handlers.Client.ListClients)

		// Visitor statistics
		admin.GET("/statistics", privMw.Require(models.PrivilegeViewStatistics), handlers.Analytics.GetStats)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	// Run migrations
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
