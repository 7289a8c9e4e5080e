package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/notekeeper/notes-api/docs"
	"github.com/notekeeper/notes-api/internal/api/handler"
	"github.com/notekeeper/notes-api/internal/api/middleware"
	"github.com/notekeeper/notes-api/internal/core/service"
	"github.com/notekeeper/notes-api/internal/infrastructure/config"
	mongodb "github.com/notekeeper/notes-api/internal/infrastructure/db/mongo"
	redisdb "github.com/notekeeper/notes-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("notes_http"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	noteRepo := mongodb.NewNoteRepository(db)
	idemStore := redisdb.NewIdempotencyStore(rdb)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost)
	noteService := service.NewNoteService(noteRepo, idemStore, log)

	authHandler := handler.NewAuthHandler(authService)
	noteHandler := handler.NewNoteHandler(noteService)
	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/token", authHandler.MintToken)
	e.POST("/auth/change-password", authHandler.ChangePassword, authMiddleware)

	// --- Note routes (all behind the token check) ---
	notes := e.Group("/v1/notes", authMiddleware)
	notes.POST("", noteHandler.Create)
	notes.GET("", noteHandler.List)
	notes.GET("/:id", noteHandler.Get)
	notes.PUT("/:id", noteHandler.Update)
	notes.PATCH("/:id/archive", noteHandler.SetArchived)
	notes.PATCH("/:id/trash", noteHandler.SetTrashed)
	notes.DELETE("/:id", noteHandler.Delete)

	// --- Ops endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
