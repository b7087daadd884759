package main

import (
	"context"
	"log"

	"autoquote/internal/authz"
	"autoquote/internal/config"
	"autoquote/internal/database"
	"autoquote/internal/handler"
	"autoquote/internal/middleware"
	"autoquote/internal/repository"
	"autoquote/internal/service"
	"autoquote/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           AutoQuote API
// @version         1.0
// @description     Vehicle catalog, configurator pricing and quoting backend.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	directSaleRepo := repository.NewDirectSaleRepository(db)
	overrideRepo := repository.NewOverrideRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	resolver := authz.NewResolver(overrideRepo)

	userService := service.NewUserService(userRepo)
	catalogService := service.NewCatalogService(catalogRepo, auditRepo)
	vehicleService := service.NewVehicleService(vehicleRepo, auditRepo, wsHub)
	directSaleService := service.NewDirectSaleService(directSaleRepo, auditRepo)
	configuratorService := service.NewConfiguratorService(service.NewRepoCatalog(vehicleRepo, directSaleRepo))
	permissionService := service.NewPermissionService(overrideRepo, resolver, auditRepo)
	quoteService := service.NewQuoteService(quoteRepo, configuratorService, txManager, auditRepo)
	auditService := service.NewAuditService(auditRepo)

	if cfg.SeedDefaultAdmin {
		if err := service.EnsureDefaultAdmin(context.Background(), userRepo); err != nil {
			log.Println("WARNING: Failed to seed default administrator:", err)
		}
	}

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService, resolver)
	catalogHandler := handler.NewCatalogHandler(catalogService, resolver)
	vehicleHandler := handler.NewVehicleHandler(vehicleService, resolver)
	directSaleHandler := handler.NewDirectSaleHandler(directSaleService, resolver)
	configuratorHandler := handler.NewConfiguratorHandler(configuratorService, resolver)
	permissionHandler := handler.NewPermissionHandler(permissionService, resolver)
	quoteHandler := handler.NewQuoteHandler(quoteService, resolver)
	auditHandler := handler.NewAuditHandler(auditService, resolver)

	// Set up Gin Router
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint: pushes price_changed events to open configurators
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	userHandler.RegisterRoutes(router.Group(""))
	catalogHandler.RegisterRoutes(router.Group(""))
	vehicleHandler.RegisterRoutes(router.Group(""))
	directSaleHandler.RegisterRoutes(router.Group(""))
	configuratorHandler.RegisterRoutes(router.Group(""))
	permissionHandler.RegisterRoutes(router.Group(""))
	quoteHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))

	log.Printf("Server listening on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
