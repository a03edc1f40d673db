package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/cppla/aiblog/config"
	"github.com/cppla/aiblog/controllers"
	"github.com/cppla/aiblog/feed"
	"github.com/cppla/aiblog/middleware"
	"github.com/cppla/aiblog/services"
	"github.com/cppla/aiblog/timeline"
	"github.com/cppla/aiblog/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB, tl *timeline.Timeline) *gin.Engine {
	// Load config and set Gin mode from configuration
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Access log goes to its own rolling file, separate from the application log
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(ginzap.Ginzap(gl, time.RFC3339, true))
		r.Use(ginzap.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}
	r.Use(middleware.Metrics())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "X-Cache"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		// wildcard origins cannot be combined with credentials
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.Static("/media", cfg.MediaRoot)

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	svc := services.New(db)
	authController := controllers.NewAuthController(svc)
	feedController := controllers.NewFeedController(feed.NewAssembler(db), svc, tl, cfg.PageSize)
	postController := controllers.NewPostController(svc, cfg.MediaRoot)
	groupController := controllers.NewGroupController(svc)
	followController := controllers.NewFollowController(svc)
	adminController := controllers.NewAdminController(svc, tl)
	statsController := controllers.NewStatsController(svc)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)

	// Public reads; OptionalAuth only tells anonymous visitors apart from signed-in ones
	public := api.Group("")
	public.Use(middleware.OptionalAuth())
	public.GET("/posts", feedController.Index)
	public.GET("/posts/:id", postController.GetPost)
	public.GET("/groups", groupController.ListGroups)
	public.GET("/groups/:slug", feedController.GroupPosts)
	public.GET("/profiles/:username", feedController.Profile)
	public.GET("/stats", statsController.GetStats)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired())
	protected.POST("/posts", postController.CreatePost)
	protected.PUT("/posts/:id", postController.UpdatePost)
	protected.DELETE("/posts/:id", postController.DeletePost)
	protected.POST("/posts/:id/comments", postController.CreateComment)
	protected.DELETE("/comments/:id", postController.DeleteComment)
	protected.POST("/profiles/:username/follow", followController.Follow)
	protected.DELETE("/profiles/:username/follow", followController.Unfollow)
	protected.GET("/follow", feedController.FollowIndex)

	admin := api.Group("")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	admin.POST("/groups", groupController.CreateGroup)
	admin.DELETE("/groups/:slug", groupController.DeleteGroup)
	admin.DELETE("/admin/users/:username", adminController.DeleteUser)
	admin.POST("/admin/cache/clear", adminController.ClearCache)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
