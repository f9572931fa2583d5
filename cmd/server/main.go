package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/formteam/formtrack-backend/docs"
	"github.com/formteam/formtrack-backend/internal/database"
	"github.com/formteam/formtrack-backend/internal/database/repository"
	"github.com/formteam/formtrack-backend/internal/router"
	"github.com/formteam/formtrack-backend/internal/services"
	"github.com/formteam/formtrack-backend/internal/services/auth"
	"github.com/formteam/formtrack-backend/internal/utils"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// @title FormTrack Backend API
// @version 1.0
// @description Form builder and affiliate campaign tracking API with JWT authentication

// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter `Bearer ` followed by your JWT token (e.g. "Bearer <token>")

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	docs.SwaggerInfo.BasePath = getEnv("BASE_PATH", "/")

	// Configure logging
	configureLogging()

	// Initialize Sentry
	utils.InitSentry()
	defer sentry.Flush(2 * time.Second)

	// Initialize database connection
	db, err := database.InitDB()
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}

	// Click logging pipeline: publish to RabbitMQ when available, otherwise
	// write directly. Either way a broken pipeline never blocks redirects.
	clickRepo := repository.NewClickLogRepository(db)
	var clickLogger *services.ClickLogService

	rabbitMQService, err := services.NewRabbitMQService()
	if err != nil {
		logrus.Warnf("Failed to initialize RabbitMQ, click events will be written directly: %v", err)
		clickLogger = services.NewClickLogService(clickRepo, nil)
	} else {
		logrus.Info("RabbitMQ service initialized")
		defer rabbitMQService.Close()

		clickLogger = services.NewClickLogService(clickRepo, rabbitMQService)
		if err := clickLogger.StartConsumer(rabbitMQService); err != nil {
			logrus.Warnf("Failed to start click event consumer: %v", err)
		} else {
			logrus.Info("Click event consumer started")
			defer clickLogger.StopConsumer()
		}
	}

	// Create the superadmin account if not exists
	authService := auth.NewAuthService(db)
	if err := authService.CreateSuperAdmin(); err != nil {
		logrus.Warnf("Failed to create superadmin: %v", err)
	} else {
		logrus.Info("Superadmin check completed")
	}

	// Expired verification codes are purged periodically
	otpService := auth.NewOTPService(db, services.NewMailerService())
	otpCleanupService := auth.NewOTPCleanupService(otpService)
	otpCleanupService.Start()
	defer otpCleanupService.Stop()

	// Initialize router
	r := router.SetupRouter(db, clickLogger)

	// Configure HTTP server
	port := getEnv("PORT", "8080")
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		logrus.Infof("Server starting on port %s", port)
		logrus.Infof("API Health Check: http://localhost:%s/api/health", port)
		logrus.Infof("Swagger UI: http://localhost:%s/swagger/index.html", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited properly")
}

func configureLogging() {
	logLevel := getEnv("LOG_LEVEL", "info")
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
