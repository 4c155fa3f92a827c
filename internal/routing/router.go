package routing

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"fitness-tracker/internal/config"
	"fitness-tracker/internal/handlers"
	"fitness-tracker/internal/managers"
	"fitness-tracker/internal/metrics"
	"fitness-tracker/internal/middleware"
	"fitness-tracker/internal/schemas"
)

// Limiters are the rate limiters of the router. A nil limiter disables the limit.
type Limiters struct {
	Global managers.RateLimitMgr
	Auth   managers.RateLimitMgr
}

func InitRouter(cfg *config.Config, databaseMgr managers.DatabaseMgr, mailMgr managers.MailMgr, jwtMgr managers.JWTMgr, limiters Limiters) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	setupCommonMiddleware(router, cfg, limiters.Global)
	setupRoutes(router, cfg, databaseMgr, mailMgr, jwtMgr, limiters.Auth)

	return router
}

func setupCommonMiddleware(router *gin.Engine, cfg *config.Config, limiter managers.RateLimitMgr) {
	router.Use(middleware.Recover(cfg.IsProduction()))
	router.Use(middleware.InjectTrace())
	router.Use(middleware.LogRequest())
	router.Use(metrics.Instrument())
	router.Use(middleware.SecureHeaders())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "Origin"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition", "Retry-After", "X-Trace-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.SanitizePath())
	if limiter != nil {
		router.Use(middleware.RateLimit(limiter))
	}
}

func setupRoutes(router *gin.Engine, cfg *config.Config, databaseMgr managers.DatabaseMgr, mailMgr managers.MailMgr, jwtMgr managers.JWTMgr, authLimiter managers.RateLimitMgr) {
	systemHdl := handlers.NewSystemHandler(databaseMgr)
	router.GET("/", systemHdl.GetMetadata)
	router.GET("/health", systemHdl.GetHealth)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.NoRoute(systemHdl.RouteNotFound)

	authenticate := middleware.Authenticate(jwtMgr, databaseMgr)

	apiRouter := router.Group("/api")
	{
		authRouter := apiRouter.Group("/auth")
		if authLimiter != nil {
			authRouter.Use(middleware.RateLimit(authLimiter))
		}
		authHdl := handlers.NewAuthHandler(databaseMgr, jwtMgr, mailMgr, cfg.ClientURL, cfg.VerifyEmailMX)
		profileHdl := handlers.NewProfileHandler(databaseMgr)
		authRoutes(authRouter, authHdl, profileHdl, authenticate)

		weightRouter := apiRouter.Group("/weights", authenticate)
		weightRoutes(weightRouter, handlers.NewWeightHandler(databaseMgr))

		activityRouter := apiRouter.Group("/activities", authenticate)
		activityRoutes(activityRouter, handlers.NewActivityHandler(databaseMgr))

		photoRouter := apiRouter.Group("/progress-photos", authenticate)
		photoRoutes(photoRouter, handlers.NewProgressPhotoHandler(databaseMgr))

		statsRouter := apiRouter.Group("/stats", authenticate)
		statsHdl := handlers.NewStatsHandler(databaseMgr)
		statsRouter.GET("/weights", statsHdl.GetWeightStats)
		statsRouter.GET("/activities", statsHdl.GetActivityStats)
	}
}

func authRoutes(authRouter *gin.RouterGroup, authHdl handlers.AuthHdl, profileHdl handlers.ProfileHdl, authenticate gin.HandlerFunc) {
	authRouter.POST("/register", middleware.ValidateAndSanitizeStruct(&schemas.RegistrationRequest{}), authHdl.RegisterUser)
	authRouter.POST("/login", middleware.ValidateAndSanitizeStruct(&schemas.LoginRequest{}), authHdl.LoginUser)
	authRouter.POST("/forgot-password", middleware.ValidateAndSanitizeStruct(&schemas.ForgotPasswordRequest{}), authHdl.ForgotPassword)
	authRouter.POST("/reset-password", middleware.ValidateAndSanitizeStruct(&schemas.ResetPasswordRequest{}), authHdl.ResetPassword)
	// The following routes require the user to be authenticated
	authRouter.GET("/me", authenticate, authHdl.GetCurrentUser)
	authRouter.GET("/profile", authenticate, profileHdl.GetProfile)
	authRouter.PUT("/profile", authenticate, middleware.ValidateAndSanitizeStruct(&schemas.UpdateProfileRequest{}), profileHdl.UpdateProfile)
}

// The export routes have to be registered next to the id routes so that gin resolves them statically.
func weightRoutes(weightRouter *gin.RouterGroup, weightHdl handlers.WeightHdl) {
	weightRouter.POST("", middleware.ValidateAndSanitizeStruct(&schemas.WeightRequest{}), weightHdl.CreateWeight)
	weightRouter.GET("", weightHdl.ListWeights)
	weightRouter.GET("/export", weightHdl.ExportWeights)
	weightRouter.GET("/:id", weightHdl.GetWeight)
	weightRouter.PUT("/:id", middleware.ValidateAndSanitizeStruct(&schemas.WeightUpdateRequest{}), weightHdl.UpdateWeight)
	weightRouter.DELETE("/:id", weightHdl.DeleteWeight)
}

func activityRoutes(activityRouter *gin.RouterGroup, activityHdl handlers.ActivityHdl) {
	activityRouter.POST("", middleware.ValidateAndSanitizeStruct(&schemas.ActivityRequest{}), activityHdl.CreateActivity)
	activityRouter.GET("", activityHdl.ListActivities)
	activityRouter.GET("/export", activityHdl.ExportActivities)
	activityRouter.GET("/:id", activityHdl.GetActivity)
	activityRouter.PUT("/:id", middleware.ValidateAndSanitizeStruct(&schemas.ActivityUpdateRequest{}), activityHdl.UpdateActivity)
	activityRouter.DELETE("/:id", activityHdl.DeleteActivity)
}

func photoRoutes(photoRouter *gin.RouterGroup, photoHdl handlers.ProgressPhotoHdl) {
	photoRouter.POST("", middleware.ValidateAndSanitizeStruct(&schemas.ProgressPhotoRequest{}), photoHdl.UploadPhoto)
	photoRouter.GET("", photoHdl.ListPhotos)
	photoRouter.GET("/:id", photoHdl.GetPhoto)
	photoRouter.DELETE("/:id", photoHdl.DeletePhoto)
}
