// Package routing assembles the gin engine: common middleware, the public
// auth routes and the session-guarded profile routes.
package routing

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/cycle-nutrition/server/internal/auth"
	"github.com/cycle-nutrition/server/internal/config"
	"github.com/cycle-nutrition/server/internal/handlers"
	"github.com/cycle-nutrition/server/internal/managers"
	"github.com/cycle-nutrition/server/internal/middleware"
	"github.com/cycle-nutrition/server/internal/schemas"
	"github.com/cycle-nutrition/server/internal/store"
	"github.com/cycle-nutrition/server/internal/utils"
)

func InitRouter(databaseMgr managers.DatabaseMgr, engine *auth.Engine, profileStore store.ProfileStore, credentialStore store.CredentialStore, cfg *config.Config) *gin.Engine {
	router := gin.New()
	setupCommonMiddleware(router)
	setupRoutes(router, databaseMgr, engine, profileStore, credentialStore, cfg)

	return router
}

func setupCommonMiddleware(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.InjectTrace())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"http://localhost:5173", "http://localhost:19000"},
		AllowMethods:  []string{"GET", "PATCH", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Accept, Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length", "Content-Type", "X-Trace-Id"},
		MaxAge:        12 * time.Hour,
	}))
	router.Use(func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
	})
	router.Use(middleware.SanitizePath())
	router.Use(middleware.LogRequest())
}

func setupRoutes(router *gin.Engine, databaseMgr managers.DatabaseMgr, engine *auth.Engine, profileStore store.ProfileStore, credentialStore store.CredentialStore, cfg *config.Config) {
	// Set up version route
	router.GET("/", func(c *gin.Context) {
		apiVersion := os.Getenv("API_VERSION")
		if apiVersion == "" {
			apiVersion = "main:latest"
		}
		metadata := &schemas.MetadataDTO{
			ApiVersion: apiVersion,
			ApiName:    "Cycle Nutrition Assistant",
		}
		utils.WriteAndLogResponse(c, metadata, http.StatusOK)
	})

	// Set up health route. Only booleans leave this endpoint, never
	// configuration values.
	router.GET("/health", func(c *gin.Context) {
		health := &schemas.HealthDTO{
			Database:         databaseMgr.GetPool().Ping(c) == nil,
			SigningSecretSet: cfg.SecretPresent(),
			MailConfigured:   cfg.MailConfigured(),
		}

		status := http.StatusOK
		if !health.Database {
			status = http.StatusServiceUnavailable
		}
		utils.WriteAndLogResponse(c, health, status)
	})

	apiRouter := router.Group("/api")
	{
		userRouter := apiRouter.Group("/users")
		authHdl := handlers.NewAuthHandler(engine)
		userRoutes(userRouter, authHdl, engine)

		profileRouter := apiRouter.Group("/profile")
		profileRouter.Use(middleware.RequireSession(engine))
		profileHdl := handlers.NewProfileHandler(profileStore, credentialStore)
		profileRoutes(profileRouter, profileHdl)
	}
}

func userRoutes(userRouter *gin.RouterGroup, authHdl handlers.AuthHdl, engine *auth.Engine) {
	userRouter.POST("", middleware.ValidateAndSanitizeStruct(&schemas.RegistrationRequest{}), authHdl.Register)
	userRouter.POST("/login", middleware.ValidateAndSanitizeStruct(&schemas.LoginRequest{}), authHdl.Login)
	userRouter.POST("/session", middleware.ValidateAndSanitizeStruct(&schemas.VerifySessionRequest{}), authHdl.VerifySession)
	userRouter.POST("/verify", middleware.ValidateAndSanitizeStruct(&schemas.VerifyEmailRequest{}), authHdl.VerifyEmail)
	userRouter.POST("/resend", middleware.ValidateAndSanitizeStruct(&schemas.ResendVerificationRequest{}), authHdl.ResendVerification)
	userRouter.POST("/reset", middleware.ValidateAndSanitizeStruct(&schemas.PasswordResetRequest{}), authHdl.RequestPasswordReset)
	userRouter.GET("/reset/:token", authHdl.VerifyResetToken)
	userRouter.PATCH("/reset", middleware.ValidateAndSanitizeStruct(&schemas.ResetPasswordRequest{}), authHdl.ResetPassword)
	// The following routes require the user to be authenticated
	userRouter.Use(middleware.RequireSession(engine))
	userRouter.PATCH("/password", middleware.ValidateAndSanitizeStruct(&schemas.ChangePasswordRequest{}), authHdl.ChangePassword)
}

func profileRoutes(profileRouter *gin.RouterGroup, profileHdl handlers.ProfileHdl) {
	profileRouter.GET("", profileHdl.GetProfile)
	profileRouter.PUT("", middleware.ValidateAndSanitizeStruct(&schemas.UpdateProfileRequest{}), profileHdl.UpdateProfile)
	profileRouter.GET("/chat", profileHdl.GetChatHistory)
	profileRouter.POST("/chat", middleware.ValidateAndSanitizeStruct(&schemas.AppendChatRequest{}), profileHdl.AppendChat)
	profileRouter.DELETE("/chat", profileHdl.ClearChatHistory)
	profileRouter.GET("/export", profileHdl.ExportData)
	profileRouter.DELETE("", profileHdl.DeleteAccount)
}
