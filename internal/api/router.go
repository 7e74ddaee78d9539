// Package api wires the HTTP surface: routes, middleware, error
// handling and the page renderer.
package api

import (
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/boardly/boardly/docs"
	"github.com/boardly/boardly/internal/api/handler"
	"github.com/boardly/boardly/internal/api/middleware"
	"github.com/boardly/boardly/internal/api/render"
	"github.com/boardly/boardly/internal/core/ports"
	"github.com/boardly/boardly/internal/core/service"
	boardmongo "github.com/boardly/boardly/internal/infrastructure/db/mongo"
	boardredis "github.com/boardly/boardly/internal/infrastructure/db/redis"
	"github.com/boardly/boardly/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, files ports.FileStore, uploadDir string, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := render.New()
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("boardly"))

	// --- Dependencies ---
	userRepo := boardmongo.NewUserRepository(db)
	postRepo := boardmongo.NewPostRepository(db)
	sessionStore := boardredis.NewSessionStore(rdb)
	lockout := boardredis.NewLockoutCounter(rdb, cfg.LockoutWindow)

	authService := service.NewAuthService(userRepo, lockout, cfg.LockoutThreshold, log)
	sessionService := service.NewSessionService(sessionStore, cfg.SessionSecret, cfg.SessionTTL, log)
	boardService := service.NewBoardService(userRepo, postRepo, log)

	pageHandler := handler.NewPageHandler()
	authHandler := handler.NewAuthHandler(authService, sessionService, log)
	boardHandler := handler.NewBoardHandler(boardService, files, log)
	requireSession := middleware.RequireSession(sessionService)

	// --- Anonymous routes ---
	e.GET("/", pageHandler.Landing)
	e.GET("/login", pageHandler.LoginPage)
	e.GET("/register", pageHandler.RegisterPage)
	e.POST("/login", authHandler.Login)
	e.POST("/register", authHandler.Register)
	e.GET("/logout", authHandler.Logout)

	// --- Protected routes ---
	e.GET("/board", boardHandler.Board, requireSession)
	e.GET("/profile", boardHandler.Profile, requireSession)
	e.GET("/profile/:user", boardHandler.UserProfile, requireSession)
	e.GET("/edit", boardHandler.Edit, requireSession)
	e.GET("/upload", boardHandler.Upload, requireSession)
	e.POST("/update", authHandler.Update, requireSession)
	e.POST("/post", boardHandler.CreatePost, requireSession)
	e.POST("/save/:postid", boardHandler.SavePost, requireSession)

	// --- Uploaded images ---
	e.Static("/images/uploads", uploadDir)

	// --- Health probes, metrics, API docs ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, nil
}
