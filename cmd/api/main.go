package main

import (
	"context"
	"log"
	"os"
	"time"

	_ "reforma-backend/api/swagger" // swagger docs
	"reforma-backend/internal/client"
	"reforma-backend/internal/database"
	"reforma-backend/internal/handler"
	"reforma-backend/internal/middleware"
	"reforma-backend/internal/repository"
	"reforma-backend/internal/service"
	"reforma-backend/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Reforma Tributária Advisory API
// @version         1.0
// @description     Tax-reform impact calculator, credit simulator, lead capture and news feed.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "postgres"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Rule cache: Redis when configured, in-process otherwise
	var ruleCache repository.Cache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		ruleCache = repository.NewRedisCache(addr)
		log.Printf("Using Redis cache at %s", addr)
	} else {
		ruleCache = repository.NewMemoryCache()
		log.Println("REDIS_ADDR not set, using in-memory cache")
	}

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	userRepo := repository.NewUserRepository(db)
	ruleRepo := repository.NewActivityRuleRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	simRepo := repository.NewSimulationRepository(db)
	newsRepo := repository.NewNewsRepository(db)
	runRepo := repository.NewIngestionRunRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	txManager := repository.NewTransactionManager(db)

	rateService := service.NewRateService(ruleRepo, ruleCache)
	calculatorService := service.NewCalculatorService(rateService, simRepo)
	creditService := service.NewCreditService(simRepo)
	leadService := service.NewLeadService(leadRepo, auditRepo, txManager)
	newsService := service.NewNewsService(newsRepo, runRepo, leadRepo, simRepo)
	auditService := service.NewAuditService(auditRepo)
	authService := service.NewAuthService(userRepo, auditRepo)

	if err := authService.SeedAdmin(context.Background()); err != nil {
		log.Printf("Warning: admin seed failed: %v", err)
	}

	leadLimiter := middleware.NewRateLimiter(5, time.Minute)
	defer leadLimiter.Stop()

	// Initialize Handlers
	calculatorHandler := handler.NewCalculatorHandler(calculatorService, creditService)
	activityRuleHandler := handler.NewActivityRuleHandler(rateService)
	leadHandler := handler.NewLeadHandler(leadService, leadLimiter)
	newsHandler := handler.NewNewsHandler(newsService)
	auditHandler := handler.NewAuditHandler(auditService)
	authHandler := handler.NewAuthHandler(authService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"} // Frontend URL
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

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	calculatorHandler.RegisterRoutes(router.Group(""))
	activityRuleHandler.RegisterRoutes(router.Group(""))
	leadHandler.RegisterRoutes(router.Group(""))
	newsHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))
	authHandler.RegisterRoutes(router.Group(""))

	// News ingestion needs both external API keys; without them the
	// endpoint stays unregistered and the rest of the API works normally.
	serperKey := os.Getenv("SERPER_API_KEY")
	geminiKey := os.Getenv("GEMINI_API_KEY")
	if serperKey != "" && geminiKey != "" {
		summarizer, err := client.NewGeminiSummarizer(context.Background(), geminiKey)
		if err != nil {
			log.Fatalf("Gemini client setup failed: %v", err)
		}

		ingestionService := service.NewIngestionService(
			service.IngestionConfig{
				EconetUser: os.Getenv("OBJETIVA_USERNAME"),
				EconetPass: os.Getenv("OBJETIVA_PASSWORD"),
			},
			client.NewSerperClient(serperKey),
			summarizer,
			newsRepo,
			runRepo,
			auditRepo,
			wsHub,
		)
		ingestionHandler := handler.NewIngestionHandler(ingestionService)
		ingestionHandler.RegisterRoutes(router.Group(""))
	} else {
		log.Println("SERPER_API_KEY or GEMINI_API_KEY not set, news ingestion disabled")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
