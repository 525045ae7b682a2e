package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/natblog/blogapi/config"
	"github.com/natblog/blogapi/controllers"
	"github.com/natblog/blogapi/middleware"
	"github.com/natblog/blogapi/repository"
	"github.com/natblog/blogapi/services"
	"github.com/natblog/blogapi/utils"
)

// Dependencies are the long lived collaborators owned by main.
type Dependencies struct {
	DB *gorm.DB
	// Redis may be nil; caching is skipped and revocations stay in memory.
	Redis *redis.Client
	// Registry receives the HTTP metrics. A fresh registry is used when nil.
	Registry *prometheus.Registry
}

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(cfg config.AppConfig, deps Dependencies) *gin.Engine {
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	reg := deps.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	r := gin.New()
	// Access log goes to its own rolling file; without one it shares the app logger
	accessLog := utils.Logger
	if cfg.GinPath != "" {
		if gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress); err == nil {
			accessLog = gl
		} else {
			utils.Sugar.Warnf("gin log file unavailable, using app logger: %v", err)
		}
	}
	r.Use(ginzap.Ginzap(accessLog, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(accessLog, false))
	r.Use(middleware.RequestMetrics(middleware.NewMetrics("blogapi", reg)))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		// credentialed requests need the concrete origin echoed back
		corsCfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	if strings.HasPrefix(cfg.UploadBaseURL, "/") {
		r.Static(cfg.UploadBaseURL, cfg.UploadDir)
	}

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	userRepo := repository.NewUserRepository(deps.DB)
	blogRepo := repository.NewBlogRepository(deps.DB)
	hasher := utils.NewBcryptHasher(0)
	issuer := utils.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	blacklist := utils.NewTokenBlacklist(deps.Redis)
	cookie := controllers.SessionCookie{MaxAge: issuer.TTL(), Secure: cfg.IsProduction}

	cache := utils.NewCache(deps.Redis)
	blogService := services.NewBlogService(blogRepo, cache)
	authController := controllers.NewAuthController(services.NewAuthService(userRepo, hasher, issuer), blacklist, cookie)
	userController := controllers.NewUserController(services.NewUserService(userRepo, hasher, cache), cookie)
	blogController := controllers.NewBlogController(blogService)
	uploadController := controllers.NewUploadController(services.NewUploadService(imageStore(cfg), cfg.UploadFolder, cfg.UploadMaxMB))
	statsController := controllers.NewStatsController(blogService)

	authRequired := middleware.AuthRequired(issuer, blacklist)

	api := r.Group("/api/v1")
	api.GET("/stats", statsController.GetStats)

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware(cfg.RateLimitPerMinute))
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.GET("/protected", authRequired, authController.Protected)
	authGroup.POST("/logout", authRequired, authController.Logout)

	userGroup := api.Group("/user")
	userGroup.Use(authRequired)
	userGroup.POST("", userController.Create)
	userGroup.GET("", userController.List)
	userGroup.GET("/:id", userController.Get)
	userGroup.PATCH("/:id", userController.Update)
	userGroup.DELETE("/:id", userController.Delete)

	blogGroup := api.Group("/blog")
	blogGroup.Use(authRequired)
	blogGroup.POST("", blogController.Create)
	blogGroup.GET("", blogController.List)
	blogGroup.GET("/search", blogController.Search)
	blogGroup.GET("/me", blogController.Mine)
	blogGroup.GET("/:id", blogController.Get)
	blogGroup.PATCH("/:id", blogController.Update)
	blogGroup.DELETE("/:id", blogController.Delete)
	blogGroup.POST("/like/:id", blogController.Like)
	blogGroup.POST("/rate/:id", blogController.Rate)
	blogGroup.GET("/comment/:id", blogController.Comments)
	blogGroup.POST("/comment/:id", blogController.Comment)
	blogGroup.PATCH("/comment/:id", blogController.EditComment)
	blogGroup.DELETE("/comment/:id", blogController.DeleteComment)

	uploadGroup := api.Group("/upload")
	uploadGroup.Use(authRequired, middleware.RateLimitMiddleware(cfg.RateLimitPerMinute))
	uploadGroup.POST("", uploadController.Upload)

	r.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		utils.Error(ctx, http.StatusNotFound, 40400, "not found")
	})

	return r
}

// imageStore prefers Cloudinary when configured and falls back to local disk.
func imageStore(cfg config.AppConfig) services.ImageStore {
	if cfg.CloudinaryEnabled() {
		store, err := services.NewCloudinaryImageStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err == nil {
			return store
		}
		utils.Sugar.Warnf("cloudinary unavailable, storing uploads locally: %v", err)
	}
	return services.LocalImageStore{Dir: cfg.UploadDir, BaseURL: cfg.UploadBaseURL}
}
