package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/shelfmark/book-tracker/docs"
	"github.com/shelfmark/book-tracker/internal/api/handler"
	"github.com/shelfmark/book-tracker/internal/api/middleware"
	"github.com/shelfmark/book-tracker/internal/core/ports"
	"github.com/shelfmark/book-tracker/internal/core/service"
	"github.com/shelfmark/book-tracker/internal/infrastructure/catalog"
	"github.com/shelfmark/book-tracker/internal/infrastructure/config"
	mongodb "github.com/shelfmark/book-tracker/internal/infrastructure/db/mongo"
	"github.com/shelfmark/book-tracker/internal/infrastructure/session"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The session strategy (stateless bearer tokens or Redis-backed cookie
// sessions) is chosen here, once, from configuration; handlers and the
// auth gate are strategy-agnostic.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, audit ports.AuditSink, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("booktracker"))

	// --- Session strategy ---
	var strategy ports.SessionStrategy
	switch cfg.SessionStrategy {
	case config.StrategySession:
		strategy = session.NewRedisStrategy(rdb, cfg.SessionTTL)
	default:
		strategy = session.NewJWTStrategy(cfg.JWTSecret, cfg.TokenTTL)
	}

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	bookRepo := mongodb.NewBookRepository(db)

	authService := service.NewAuthService(userRepo, strategy, audit, log)
	bookService := service.NewBookService(bookRepo, log)
	books := catalog.NewGoogleBooksClient(cfg.Catalog.URL, cfg.Catalog.APIKey, log)

	authHandler := handler.NewAuthHandler(authService, strategy.Kind())
	bookHandler := handler.NewBookHandler(bookService)
	searchHandler := handler.NewSearchHandler(books)
	healthHandler := handler.NewHealthHandler(db, rdb)

	// --- Auth routes ---
	e.POST("/api/users/register", authHandler.Register)
	e.POST("/api/users/login", authHandler.Login)
	e.POST("/api/users/logout", authHandler.Logout)
	e.GET("/api/users/me", authHandler.Me)

	// --- Protected book routes (single gate, no per-route checks) ---
	bookGroup := e.Group("/api/books", middleware.RequireUser(strategy))
	bookGroup.POST("", bookHandler.Create)
	bookGroup.GET("", bookHandler.List)
	bookGroup.DELETE("/:id", bookHandler.Delete)

	// --- Catalog search proxy (public, like the frontend that calls it) ---
	e.GET("/api/search", searchHandler.Search)

	// --- Operational endpoints ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
