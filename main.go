// main.go - Admin analytics API
package main

import (
	"log"

	"himadash/internal/config"
	"himadash/internal/database"
	"himadash/internal/handlers"
	"himadash/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Environment)

	// Initialize database connection
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	// Initialize services
	userService := services.NewUserService(db)
	retentionService := services.NewRetentionService(db)
	creatorService := services.NewCreatorService(db)
	payoutService := services.NewPayoutService(db)
	monitorService := services.NewMonitorService(db)
	reportService := services.NewReportService(db, cfg.WebhookURL)
	clientErrorLog := services.NewClientErrorLog(cfg.ClientErrorLog)
	defer clientErrorLog.Close()

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	retentionHandler := handlers.NewRetentionHandler(retentionService)
	creatorHandler := handlers.NewCreatorHandler(creatorService, userService)
	payoutHandler := handlers.NewPayoutHandler(payoutService, userService)
	monitorHandler := handlers.NewMonitorHandler(monitorService)
	reportHandler := handlers.NewReportHandler(reportService, clientErrorLog)

	// Setup router
	router := setupRouter(cfg)

	// Health check with pool stats
	router.GET("/health", func(c *gin.Context) {
		dbStats := database.Stats()

		c.JSON(200, gin.H{
			"status":   "healthy",
			"database": database.Health() == nil,
			"app":      "admin-analytics-api",
			"database_stats": gin.H{
				"open_connections": dbStats.OpenConnections,
				"in_use":           dbStats.InUse,
				"idle":             dbStats.Idle,
			},
		})
	})

	// Setup routes
	setupRoutes(router, userHandler, retentionHandler, creatorHandler,
		payoutHandler, monitorHandler, reportHandler)

	// Start server
	port := cfg.Port
	log.Printf("🚀 Admin analytics API starting on port %s", port)
	log.Printf("🌍 Environment: %s", cfg.Environment)
	log.Printf("💾 Database: %s", cfg.Database.Database)
	if cfg.WebhookURL != "" {
		log.Printf("📣 Daily report webhook configured")
	} else {
		log.Printf("📣 Daily report webhook NOT configured (SLACK_WEBHOOK_URL)")
	}
	log.Printf("📝 Client error log: %s", cfg.ClientErrorLog)

	log.Fatal(router.Run(":" + port))
}

func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	// GZIP compression: every response here is JSON
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// CORS for the dashboard frontend
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	return router
}

func setupRoutes(
	router *gin.Engine,
	userHandler *handlers.UserHandler,
	retentionHandler *handlers.RetentionHandler,
	creatorHandler *handlers.CreatorHandler,
	payoutHandler *handlers.PayoutHandler,
	monitorHandler *handlers.MonitorHandler,
	reportHandler *handlers.ReportHandler,
) {
	admin := router.Group("/api/admin")

	// ===============================
	// USERS & DASHBOARD
	// ===============================
	admin.GET("/users", userHandler.GetUsers)
	admin.GET("/dashboard-stats", userHandler.GetDashboardStats)

	// ===============================
	// PAYER RETENTION
	// ===============================
	admin.GET("/user-retention", retentionHandler.GetUserRetention)
	admin.GET("/retention-trends", retentionHandler.GetRetentionTrends)
	admin.GET("/daily-registrations-vs-payers", retentionHandler.GetRegistrationsVsPayers)
	admin.GET("/repeat-payers-by-time", retentionHandler.GetRepeatPayersByTime)
	admin.GET("/registrations-paid-by-language", retentionHandler.GetRegistrationsPaidByLanguage)
	admin.GET("/creator-income-retention", retentionHandler.GetCreatorIncomeRetention)

	// ===============================
	// CREATOR ANALYTICS
	// ===============================
	admin.GET("/creators-income", creatorHandler.GetCreatorsIncome)
	admin.GET("/creators-avg-call-time", creatorHandler.GetCreatorsAvgCallTime)
	admin.GET("/creators-ftu-calls", creatorHandler.GetCreatorsFTUCalls)
	admin.GET("/creators-weekly-avg", creatorHandler.GetCreatorsWeeklyAvg)
	admin.GET("/inactive-creators", creatorHandler.GetInactiveCreators)

	// ===============================
	// PAYOUTS
	// ===============================
	admin.GET("/creators-payouts", payoutHandler.GetCreatorsPayouts)
	admin.GET("/one-time-payout-creators", payoutHandler.GetOneTimePayoutCreators)

	// ===============================
	// MONITORING & REPORTS
	// ===============================
	admin.GET("/active-users-monitor", monitorHandler.GetActiveUsersMonitor)
	admin.POST("/send-daily-report", reportHandler.SendDailyReport)
	admin.POST("/client-error", reportHandler.ReportClientError)
}
