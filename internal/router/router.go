package router

import (
	"os"
	"time"

	"github.com/formteam/formtrack-backend/internal/database/repository"
	"github.com/formteam/formtrack-backend/internal/handlers"
	"github.com/formteam/formtrack-backend/internal/middleware"
	"github.com/formteam/formtrack-backend/internal/services"
	"github.com/formteam/formtrack-backend/internal/services/auth"
	"github.com/formteam/formtrack-backend/internal/services/excel"
	"github.com/formteam/formtrack-backend/internal/tracking"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin router with all API routes
func SetupRouter(db *gorm.DB, clickLogger *services.ClickLogService) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Create repositories
	campaignRepo := repository.NewCampaignRepository(db)
	clickLogRepo := repository.NewClickLogRepository(db)
	formRepo := repository.NewFormRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)

	// Create services
	generator := tracking.NewGenerator()
	authService := auth.NewAuthService(db)
	otpService := auth.NewOTPService(db, services.NewMailerService())
	adminService := services.NewAdminService(db)
	campaignService := services.NewCampaignService(campaignRepo, clickLogRepo, generator, getEnv("TRACKING_BASE_URL", "http://localhost:8080"))
	formService := services.NewFormService(formRepo, submissionRepo, generator)
	resolver := tracking.NewResolver(campaignRepo)

	// Create middleware
	bearerTokenMiddleware := middleware.NewBearerTokenMiddleware(db)

	// Create handlers
	authHandler := handlers.NewAuthHandler(authService, otpService)
	adminHandler := handlers.NewAdminHandler(adminService)
	campaignHandler := handlers.NewCampaignHandler(campaignService)
	formHandler := handlers.NewFormHandler(formService, excel.NewExcelService())
	trackHandler := handlers.NewTrackHandler(resolver, clickLogger, getEnv("LANDING_URL", "http://localhost:3000"))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Visitor-facing redirect endpoint
	r.GET("/track/:code", trackHandler.Track)

	api := r.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
				"time":   time.Now().Format(time.RFC3339),
			})
		})

		// Auth routes (public)
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/send-otp", authHandler.SendOTP)
			authRoutes.POST("/verify-otp", authHandler.VerifyOTP)
		}

		// Public form routes for rendering and submitting
		api.GET("/forms/:id", formHandler.GetPublicForm)
		api.POST("/forms/:id/submit", formHandler.SubmitForm)

		// Protected routes
		protected := api.Group("")
		protected.Use(bearerTokenMiddleware.BearerTokenAuthMiddleware())
		{
			authProtected := protected.Group("/auth")
			{
				authProtected.GET("/profile", authHandler.GetProfile)
				authProtected.PUT("/update-profile", authHandler.UpdateProfile)
				authProtected.POST("/change-password", authHandler.ChangePassword)
			}

			forms := protected.Group("/forms")
			{
				forms.POST("", formHandler.CreateForm)
				forms.GET("", formHandler.GetForms)
				forms.GET("/:id/submissions", formHandler.GetSubmissions)
				forms.GET("/:id/export", formHandler.ExportSubmissions)
				forms.DELETE("/:id", formHandler.DeleteForm)
			}

			campaigns := protected.Group("/campaigns")
			{
				campaigns.POST("", campaignHandler.CreateCampaign)
				campaigns.GET("", campaignHandler.GetCampaigns)
				campaigns.GET("/:id", campaignHandler.GetCampaign)
				campaigns.PUT("/:id", campaignHandler.UpdateCampaign)
				campaigns.POST("/:id/regenerate-link", campaignHandler.RegenerateTrackingCode)
				campaigns.GET("/:id/clicks", campaignHandler.GetClicks)
				campaigns.DELETE("/:id", campaignHandler.DeleteCampaign)
			}

			// Superadmin routes
			admin := protected.Group("/admin")
			admin.Use(middleware.SuperAdminOnly())
			{
				admin.GET("/users", adminHandler.GetAllAdmins)
				admin.GET("/pending-users", adminHandler.GetPendingAdmins)
				admin.GET("/rejected-users", adminHandler.GetRejectedAdmins)
				admin.POST("/approve-user/:id", adminHandler.ApproveAdmin)
				admin.POST("/reject-user/:id", adminHandler.RejectAdmin)
				admin.POST("/approve-rejected-user/:id", adminHandler.ApproveRejectedAdmin)
				admin.POST("/reject-approved-user/:id", adminHandler.RejectApprovedAdmin)
				admin.POST("/create-user", adminHandler.CreateAdmin)
				admin.DELETE("/delete-user/:id", adminHandler.DeleteAdmin)
				admin.POST("/reset-password/:id", adminHandler.ResetAdminPassword)
			}
		}
	}

	return r
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
