package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskflow/taskflow-api/internal/api/handler"
	"github.com/taskflow/taskflow-api/internal/api/middleware"
	"github.com/taskflow/taskflow-api/internal/core/domain"
	"github.com/taskflow/taskflow-api/internal/core/ports"
	"github.com/taskflow/taskflow-api/internal/core/service"
	mongorepo "github.com/taskflow/taskflow-api/internal/infrastructure/db/mongo"
	"github.com/taskflow/taskflow-api/internal/infrastructure/http/handlers"
)

// Dependencies carries the externally constructed components the router wires
// into handlers. Notifications and Notifier are built in main so the
// dispatcher can be started and drained alongside the process lifecycle.
type Dependencies struct {
	DB            *mongo.Database
	Redis         *redis.Client // nil when sessions are kept in memory
	Sessions      ports.SessionStore
	Notifications ports.NotificationService
	Notifier      service.Notifier
	Log           zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("taskflow"))

	// --- Repositories ---
	userRepo := mongorepo.NewUserRepository(deps.DB)
	taskRepo := mongorepo.NewTaskRepository(deps.DB)
	requestRepo := mongorepo.NewRoleRequestRepository(deps.DB)

	// --- Services ---
	authService := service.NewAuthService(userRepo, deps.Sessions, deps.Log)
	taskService := service.NewTaskService(taskRepo, deps.Log)
	requestService := service.NewRoleRequestService(requestRepo, userRepo, deps.Notifier, deps.Log)
	userService := service.NewUserService(userRepo, requestRepo, taskRepo, deps.Log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService)
	requestHandler := handler.NewRoleRequestHandler(requestService)
	notificationHandler := handler.NewNotificationHandler(deps.Notifications)
	userHandler := handler.NewUserHandler(userService)

	auth := middleware.Auth(deps.Sessions)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	managerUp := middleware.RBAC(domain.RoleManager, domain.RoleAdmin)

	// --- Public routes ---
	api := e.Group("/api")
	api.POST("/init", authHandler.Init)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// --- Authenticated routes ---
	api.POST("/auth/logout", authHandler.Logout, auth)
	api.GET("/auth/me", authHandler.Me, auth)

	api.GET("/users", userHandler.List, auth, adminOnly)
	api.GET("/stats", userHandler.Stats, auth, adminOnly)

	api.GET("/tasks", taskHandler.List, auth)
	api.GET("/tasks/team", taskHandler.ListTeam, auth, managerUp)
	api.POST("/tasks", taskHandler.Create, auth)
	api.PUT("/tasks/:id", taskHandler.Update, auth)
	api.DELETE("/tasks/:id", taskHandler.Delete, auth)

	api.GET("/role-requests", requestHandler.List, auth)
	api.GET("/role-requests/pending", requestHandler.ListPending, auth, adminOnly)
	api.POST("/role-requests", requestHandler.Submit, auth)
	api.PUT("/role-requests/:id/approve", requestHandler.Approve, auth, adminOnly)
	api.PUT("/role-requests/:id/reject", requestHandler.Reject, auth, adminOnly)

	api.GET("/notifications", notificationHandler.List, auth)
	api.PUT("/notifications/:id/read", notificationHandler.MarkRead, auth)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
