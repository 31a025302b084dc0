package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bloodlink/donor-registry/internal/api/handler"
	"github.com/bloodlink/donor-registry/internal/api/middleware"
	"github.com/bloodlink/donor-registry/internal/core/domain"
	"github.com/bloodlink/donor-registry/internal/core/ports"
	"github.com/bloodlink/donor-registry/internal/core/service"
	mongostore "github.com/bloodlink/donor-registry/internal/infrastructure/db/mongo"
	redisstore "github.com/bloodlink/donor-registry/internal/infrastructure/db/redis"
)

// RouterConfig carries everything the router needs beyond its stores.
type RouterConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	provider ports.CredentialProvider,
	mailer ports.Mailer,
	dispatcher service.AlertDispatcher,
	cfg RouterConfig,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("donor_registry"))

	// --- Dependencies ---
	profileRepo := mongostore.NewProfileRepository(db)
	postRepo := mongostore.NewPostRepository(db)

	var throttle service.ResetThrottle
	if rdb != nil {
		throttle = redisstore.NewResetThrottle(rdb, 0)
	}

	authService := service.NewAuthService(provider, profileRepo, throttle, mailer, log)
	donorService := service.NewDonorService(profileRepo, postRepo, log)
	postService := service.NewPostService(postRepo, profileRepo, dispatcher, log)

	authHandler := handler.NewAuthHandler(authService, cfg.JWTSecret, cfg.TokenTTL)
	profileHandler := handler.NewProfileHandler(donorService)
	donorHandler := handler.NewDonorHandler(donorService)
	postHandler := handler.NewPostHandler(postService, donorService)

	authMiddleware := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/reset", authHandler.RequestPasswordReset)
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)

	// --- Profile routes ---
	profiles := e.Group("/profiles", authMiddleware)
	profiles.GET("/me", profileHandler.Me)
	profiles.PUT("/me", profileHandler.Update)
	profiles.POST("/me/donation", profileHandler.RecordDonation)

	// --- Donor directory (admin only) ---
	e.GET("/donors", donorHandler.List, authMiddleware, adminOnly)
	e.GET("/admin/stats", donorHandler.Stats, authMiddleware, adminOnly)

	// --- Donation request routes ---
	posts := e.Group("/posts", authMiddleware)
	posts.POST("", postHandler.Create)
	posts.GET("", postHandler.List)
	posts.GET("/mine", postHandler.Mine)
	posts.PUT("/:id/status", postHandler.UpdateStatus)
	posts.DELETE("/:id", postHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
