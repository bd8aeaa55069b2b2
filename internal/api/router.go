package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/sweem/sweem-api/internal/api/handler"
	"github.com/sweem/sweem-api/internal/api/middleware"
	"github.com/sweem/sweem-api/internal/core/ports"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Clients  ports.ClientService
	Projects ports.ProjectService
	Users    ports.UserService
	// Keys enables Idempotency-Key handling on creates; nil disables it.
	Keys ports.IdempotencyStore
	// Ready lists the backends checked by /health/ready.
	Ready  []handler.Dependency
	Logger zerolog.Logger
	// Registry receives the HTTP request metrics and backs /metrics. The
	// default Prometheus registry is used when nil.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:                 "sweem",
		Subsystem:                 "http",
		Registerer:                registerer,
		DoNotUseRequestPathFor404: true,
	}))

	// --- Ambient endpoints ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Ready...)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Resources ---
	clients := handler.NewClientHandler(d.Clients, d.Keys, d.Logger)
	projects := handler.NewProjectHandler(d.Projects, d.Keys, d.Logger)
	users := handler.NewUserHandler(d.Users, d.Keys, d.Logger)

	registerCRUD(e.Group("/clients"), clients)
	registerCRUD(e.Group("/projects"), projects)
	registerCRUD(e.Group("/users"), users)

	return e
}

// crudHandler is the set of routes every collection exposes.
type crudHandler interface {
	List(c echo.Context) error
	Get(c echo.Context) error
	Create(c echo.Context) error
	Update(c echo.Context) error
	Delete(c echo.Context) error
}

func registerCRUD(g *echo.Group, h crudHandler) {
	g.GET("", h.List)
	g.POST("", h.Create, middleware.IdempotencyKey())
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
