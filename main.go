package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tablebird/tablebird-console/config"
	"github.com/tablebird/tablebird-console/controllers"
	"github.com/tablebird/tablebird-console/middleware"
	"github.com/tablebird/tablebird-console/models"
	"github.com/tablebird/tablebird-console/services"
)

func main() {
	logrus.Info("Starting Tablebird back-office console...")

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	// Local state store for the notification marker and the staff session
	if err := config.ConnectDatabase(); err != nil {
		logrus.Fatalf("Failed to connect to state store: %v", err)
	}
	db := config.GetDB()
	if err := db.AutoMigrate(&models.StateEntry{}); err != nil {
		logrus.Fatalf("Failed to migrate state store: %v", err)
	}

	// Service wiring. The auth service doubles as the gateway's token source.
	state := services.InitStateService(db)
	auth := services.InitAuthService(state)
	gateway := services.InitGatewayService(cfg, auth)
	services.InitCacheService()
	services.InitAnalyticsService()
	services.InitStatusService(gateway, services.GetCacheService())
	services.InitBulkService(gateway, services.GetCacheService())

	watcher := services.InitWatcherService(
		gateway,
		state,
		services.LogNotifier{},
		services.TerminalBell{Out: os.Stdout},
		time.Duration(cfg.PollInterval)*time.Second,
	)

	if cfg.AWSS3Bucket != "" {
		s3Service, err := services.InitS3Service()
		if err != nil {
			logrus.Fatalf("Failed to initialize S3 service: %v", err)
		}
		services.InitMediaService(s3Service)
	} else {
		logrus.Warn("AWS_S3_BUCKET not set, image upload endpoints disabled")
	}

	// Run the new-order watcher until shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go watcher.Run(ctx)

	router := setupRouter(cfg)

	logrus.Infof("Console is running on http://localhost:%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the console's API surface
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	v1 := router.Group("/api/v1")

	// Public endpoints
	v1.GET("/health", healthCheck)
	v1.POST("/auth/login", controllers.Login)

	// Everything else requires a valid staff token
	protected := v1.Group("")
	if cfg.Auth0Domain != "" {
		protected.Use(middleware.EnsureValidToken(cfg))
		protected.Use(middleware.RequireRole("admin", "staff"))
	} else {
		logrus.Warn("AUTH0_DOMAIN not set, console API is unauthenticated")
	}

	protected.POST("/auth/logout", controllers.Logout)
	protected.GET("/auth/me", controllers.GetCurrentUser)

	protected.GET("/orders", controllers.ListOrders)
	protected.GET("/orders/active", controllers.ListActiveOrders)
	protected.PUT("/orders/:orderNumber/status", controllers.UpdateOrderStatus)
	protected.GET("/orders/stats", controllers.GetOrderStats)
	protected.GET("/orders/metrics/daily", controllers.GetDailyMetrics)

	protected.GET("/orders/bulk", controllers.ListBulkOrders)
	protected.GET("/orders/bulk/selection", controllers.GetBulkSelection)
	protected.POST("/orders/bulk/toggle", controllers.ToggleBulkOrder)
	protected.POST("/orders/bulk/toggle-all", controllers.ToggleAllBulkOrders)
	protected.PUT("/orders/bulk/target", controllers.SetBulkTargetStatus)
	protected.POST("/orders/bulk/apply", controllers.ApplyBulkUpdate)

	protected.GET("/analytics/top-products", controllers.GetTopProducts)
	protected.GET("/analytics/customers", controllers.GetCustomers)
	protected.GET("/analytics/sales-report", controllers.GetSalesReport)
	protected.GET("/analytics/status-distribution", controllers.GetStatusDistribution)
	protected.GET("/analytics/summary", controllers.GetDashboardSummary)

	protected.GET("/menu", controllers.ListMenuItems)
	protected.POST("/menu", controllers.CreateMenuItem)
	protected.PUT("/menu/:id", controllers.UpdateMenuItem)
	protected.DELETE("/menu/:id", controllers.DeleteMenuItem)
	protected.GET("/menu/categories", controllers.ListCategories)
	protected.POST("/menu/category", controllers.CreateCategory)
	protected.PUT("/menu/category/rename", controllers.RenameCategory)
	protected.DELETE("/menu/category", controllers.DeleteCategory)

	protected.GET("/notifications", controllers.GetNotifications)
	protected.POST("/notifications/read", controllers.MarkNotificationsRead)

	protected.POST("/upload", controllers.UploadImage)
	protected.DELETE("/upload", controllers.DeleteImage)

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Tablebird console is running",
	})
}
