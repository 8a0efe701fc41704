package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/jobdeck/jobdeck/internal/auth"
	"github.com/jobdeck/jobdeck/internal/config"
	"github.com/jobdeck/jobdeck/internal/currency"
	"github.com/jobdeck/jobdeck/internal/database"
	"github.com/jobdeck/jobdeck/internal/handlers"
	"github.com/jobdeck/jobdeck/internal/location"
	"github.com/jobdeck/jobdeck/internal/middleware"
	"github.com/jobdeck/jobdeck/internal/salary"
	"github.com/jobdeck/jobdeck/internal/search"
	"github.com/jobdeck/jobdeck/internal/services"
	"github.com/jobdeck/jobdeck/internal/tasks"
	"github.com/jobdeck/jobdeck/internal/validator"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}
	cfg := config.MustLoad()

	// 2. Database Connection
	db := database.Connect(cfg.DBConn)

	// 3. Initialize Core Services
	ctx := context.Background()
	llmService, err := services.NewLLMService(ctx, cfg)
	if err != nil {
		// Run degraded: AI endpoints answer 503 until the key is configured.
		log.Printf("⚠️  LLM disabled: %v", err)
		llmService = nil
	} else {
		log.Println("✅ LLM client connected.")
	}

	converter := currency.NewConverter(cfg.FXPrimaryURL, cfg.FXFallbackURL)
	resolver := location.NewResolver(nil)
	analyzer := salary.NewAnalyzer(resolver, converter)
	searchClient := search.NewClient(cfg.SearchAPIURL, cfg.SearchAPIKey)
	broker := tasks.NewBroker()

	var completer salary.Completer
	if llmService != nil {
		completer = llmService
	}
	calculator := salary.NewCalculator(completer, resolver)

	jobService := services.NewJobService(db)
	analysisService := services.NewAnalysisService(jobService, analyzer, calculator, searchClient, broker)
	intelligenceService := services.NewIntelligenceService(jobService, completer, searchClient, broker)

	// 4. Auth
	tokenService := auth.NewTokenService(cfg)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// 5. Handlers
	authHandler := handlers.NewAuthHandler(db, tokenService)
	jobHandler := handlers.NewJobHandler(llmService, jobService)
	salaryHandler := handlers.NewSalaryHandler(converter, analyzer, calculator, analysisService)
	intelligenceHandler := handlers.NewIntelligenceHandler(intelligenceService, broker)

	// 6. Router & CORS
	validator.Register()
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true // The browser extension posts from arbitrary origins
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// 7. Routes
	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)
		api.POST("/login", authHandler.Login)
	}

	authed := r.Group("/api/v1")
	authed.Use(authMiddleware.RequireAuth())
	{
		authed.POST("/jobs/extract", jobHandler.ParseJob)
		authed.POST("/jobs", jobHandler.CreateJob)
		authed.GET("/jobs", jobHandler.ListJobs)
		authed.GET("/jobs/:id", jobHandler.GetJob)

		authed.POST("/salary/convert", salaryHandler.Convert)
		authed.POST("/salary/analyze", salaryHandler.Analyze)
		authed.POST("/salary/net-income", salaryHandler.NetIncome)

		authed.GET("/jobs/:id/salary-analysis", salaryHandler.JobSalaryAnalysis)
		authed.POST("/jobs/:id/salary-analysis", salaryHandler.JobSalaryAnalysis)
		authed.POST("/jobs/:id/match-score", intelligenceHandler.MatchScore)
		authed.GET("/jobs/:id/company-research", intelligenceHandler.CompanyResearch)
		authed.GET("/jobs/:id/competitive-analysis", intelligenceHandler.CompetitiveAnalysis)
		authed.GET("/jobs/:id/requirements", intelligenceHandler.CategorizeRequirements)

		authed.GET("/tasks/:id/events", intelligenceHandler.TaskEvents)
	}

	log.Printf("🚀 Server starting on %s...", cfg.ServerPort)
	if err := r.Run(cfg.ServerPort); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
