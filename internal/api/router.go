package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/schooladmin/school-api/docs"
	"github.com/schooladmin/school-api/internal/api/handler"
	"github.com/schooladmin/school-api/internal/api/middleware"
	"github.com/schooladmin/school-api/internal/core/domain"
	"github.com/schooladmin/school-api/internal/core/ports"
	"github.com/schooladmin/school-api/internal/core/service"
)

// RouterDeps carries the collaborators the router wires together. Users is
// the only required field; db and rdb feed the readiness probe and may be
// nil (tests run against the in-memory directory with neither).
type RouterDeps struct {
	Log        zerolog.Logger
	Users      ports.UserRepository
	LoginGuard middleware.LoginGuard
	BcryptCost int
	Mongo      *mongo.Database
	Redis      *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("school"))

	// --- Dependencies ---
	authService := service.NewAuthService(deps.Users)
	studentService := service.NewStudentService(deps.Users, deps.BcryptCost)
	authHandler := handler.NewAuthHandler()
	studentHandler := handler.NewStudentHandler(studentService)
	authenticate := middleware.Authenticate(authService, deps.LoginGuard)

	// --- API routes: resolver first, then the per-action policy gate ---
	g := e.Group("/api", authenticate)
	g.GET("/auth/me", authHandler.Me, middleware.Authorize(domain.ActionReadIdentity))
	g.GET("/students", studentHandler.List, middleware.Authorize(domain.ActionListStudents))
	g.GET("/students/me", studentHandler.Me, middleware.Authorize(domain.ActionReadOwnProfile))
	g.POST("/students", studentHandler.Create, middleware.Authorize(domain.ActionCreateStudent))

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
