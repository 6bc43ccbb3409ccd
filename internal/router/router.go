package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"community-api/internal/auth"
	"community-api/internal/domain"
	"community-api/internal/handler"
	"community-api/internal/metrics"
	"community-api/internal/middleware"
	"community-api/internal/realtime"
	"community-api/internal/repository"
	"community-api/internal/service"
)

// Config carries the dependencies the router wires together
type Config struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Logger         *zap.Logger
	Metrics        *metrics.Metrics
	JWTSecret      string
	JWTExpiresIn   time.Duration
	BasePath       string
	Mode           string
	AllowedOrigins []string
}

// Setup builds the gin engine with all routes and middleware wired
func Setup(cfg *Config) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Auth plumbing
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiresIn)
	var blacklist auth.TokenBlacklist = auth.NoopBlacklist{}
	if cfg.Redis != nil {
		blacklist = auth.NewRedisTokenBlacklist(cfg.Redis)
	}

	// Realtime hub doubles as the notifier for all services
	var recorder realtime.ConnectionRecorder
	if cfg.Metrics != nil {
		recorder = cfg.Metrics
	}
	hub := realtime.NewHub(cfg.Logger, recorder)

	// Repositories
	userRepo := repository.NewUserRepository(cfg.DB)
	threadRepo := repository.NewThreadRepository(cfg.DB)
	commentRepo := repository.NewCommentRepository(cfg.DB)
	likeRepo := repository.NewCommentLikeRepository(cfg.DB)
	pinRepo := repository.NewPinRepository(cfg.DB)
	communityRepo := repository.NewCommunityRepository(cfg.DB)
	courseRepo := repository.NewCourseRepository(cfg.DB)
	tutorialRepo := repository.NewTutorialRepository(cfg.DB)
	tagRepo := repository.NewTagRepository(cfg.DB)

	// Services
	authService := service.NewAuthService(userRepo, tokens, blacklist, cfg.Logger)
	threadService := service.NewThreadService(threadRepo, pinRepo, likeRepo, hub, cfg.Metrics, cfg.Logger)
	commentService := service.NewCommentService(commentRepo, likeRepo, threadRepo, userRepo, hub, cfg.Metrics, cfg.Logger)
	communityService := service.NewCommunityService(communityRepo, cfg.Logger)
	courseService := service.NewCourseService(courseRepo, cfg.Logger)
	tutorialService := service.NewTutorialService(tutorialRepo, cfg.Logger)
	tagService := service.NewTagService(tagRepo, cfg.Logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, cfg.Logger)
	announcementHandler := handler.NewThreadHandler(domain.ThreadKindAnnouncement, threadService, commentService, cfg.Logger)
	questionHandler := handler.NewThreadHandler(domain.ThreadKindQuestion, threadService, commentService, cfg.Logger)
	commentHandler := handler.NewCommentHandler(commentService, cfg.Logger)
	communityHandler := handler.NewCommunityHandler(communityService, cfg.Logger)
	courseHandler := handler.NewCourseHandler(courseService, cfg.Logger)
	tutorialHandler := handler.NewTutorialHandler(tutorialService, cfg.Logger)
	tagHandler := handler.NewTagHandler(tagService, cfg.Logger)
	healthHandler := handler.NewHealthHandler(cfg.DB)
	wsHandler := handler.NewWSHandler(hub, cfg.Logger)

	authRequired := middleware.Auth(tokens, blacklist)
	authOptional := middleware.OptionalAuth(tokens, blacklist)
	adminOnly := middleware.RequireAdmin()

	// Health and metrics (no auth)
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Realtime subscriptions
	r.GET("/ws", wsHandler.Subscribe)

	api := r.Group(cfg.BasePath)
	{
		api.GET("/health", healthHandler.Health)

		// Accounts and sessions
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authRequired, authHandler.Logout)
			authGroup.GET("/me", authRequired, authHandler.Me)
			authGroup.GET("/verify-email", authHandler.VerifyEmail)
			authGroup.POST("/request-password-reset", authHandler.RequestPasswordReset)
			authGroup.POST("/reset-password", authHandler.ResetPassword)
		}

		// User administration
		users := api.Group("/users", authRequired, adminOnly)
		{
			users.GET("", authHandler.ListUsers)
			users.PUT("/:id/role", authHandler.UpdateUserRole)
		}

		registerThreadRoutes(api.Group("/announcements"), announcementHandler, authRequired, authOptional, adminOnly)
		registerThreadRoutes(api.Group("/questions"), questionHandler, authRequired, authOptional, adminOnly)

		// Comment mutations and likes
		comments := api.Group("/comments", authRequired)
		{
			comments.PUT("/:id", commentHandler.Update)
			comments.DELETE("/:id", commentHandler.Delete)
			comments.POST("/:id/like", commentHandler.Like)
			comments.DELETE("/:id/like", commentHandler.Unlike)
			comments.POST("/:id/like/toggle", commentHandler.ToggleLike)
		}

		// Community listings
		communities := api.Group("/communities")
		{
			communities.GET("", communityHandler.List)
			communities.GET("/:id", communityHandler.Get)
			communities.POST("", authRequired, adminOnly, communityHandler.Create)
			communities.PUT("/:id", authRequired, adminOnly, communityHandler.Update)
			communities.DELETE("/:id", authRequired, adminOnly, communityHandler.Delete)
		}

		// Course listings
		courses := api.Group("/courses")
		{
			courses.GET("", courseHandler.List)
			courses.GET("/:id", courseHandler.Get)
			courses.POST("", authRequired, adminOnly, courseHandler.Create)
			courses.PUT("/:id", authRequired, adminOnly, courseHandler.Update)
			courses.DELETE("/:id", authRequired, adminOnly, courseHandler.Delete)
		}

		// Tutorials
		tutorials := api.Group("/tutorials")
		{
			tutorials.GET("", tutorialHandler.List)
			tutorials.GET("/slug/:slug", tutorialHandler.GetBySlug)
			tutorials.GET("/:id", tutorialHandler.Get)
			tutorials.POST("/:id/view", tutorialHandler.IncrementView)
			tutorials.POST("", authRequired, adminOnly, tutorialHandler.Create)
			tutorials.PUT("/:id", authRequired, adminOnly, tutorialHandler.Update)
			tutorials.DELETE("/:id", authRequired, adminOnly, tutorialHandler.Delete)
		}

		// Tags
		tags := api.Group("/tags")
		{
			tags.GET("", tagHandler.List)
			tags.GET("/:id", tagHandler.Get)
			tags.POST("", authRequired, adminOnly, tagHandler.Create)
			tags.PUT("/:id", authRequired, adminOnly, tagHandler.Update)
			tags.DELETE("/:id", authRequired, adminOnly, tagHandler.Delete)
		}
	}

	return r
}

// registerThreadRoutes wires one thread kind's routes onto a group. The same
// shape serves announcements and questions.
func registerThreadRoutes(
	group *gin.RouterGroup,
	h *handler.ThreadHandler,
	authRequired, authOptional, adminOnly gin.HandlerFunc,
) {
	group.GET("", authOptional, h.List)
	group.GET("/:id", authOptional, h.Get)
	group.POST("/:id/view", h.IncrementView)
	group.POST("", authRequired, adminOnly, h.Create)
	group.PUT("/:id", authRequired, adminOnly, h.Update)
	group.DELETE("/:id", authRequired, adminOnly, h.Delete)

	group.GET("/:id/comments", authOptional, h.ListComments)
	group.POST("/:id/comments", authRequired, h.CreateComment)

	group.POST("/:id/pin", authRequired, h.Pin)
	group.DELETE("/:id/pin", authRequired, h.Unpin)
	group.POST("/:id/pin/toggle", authRequired, h.TogglePin)
}
