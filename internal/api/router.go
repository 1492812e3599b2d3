package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/employee-service/docs"
	"github.com/99minutos/employee-service/internal/api/handler"
	"github.com/99minutos/employee-service/internal/api/middleware"
	"github.com/99minutos/employee-service/internal/core/domain"
	"github.com/99minutos/employee-service/internal/core/ports"
)

const (
	basePath         = "/api/v1/employees"
	defaultBodyLimit = "50M"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Identity  ports.IdentityService
	Directory ports.DirectoryService
	// Checks are the readiness probes, keyed by dependency name.
	Checks map[string]handler.Check
	Logger zerolog.Logger
	// BodyLimit caps request bodies, e.g. "50M".
	BodyLimit string
	// Registry receives the HTTP metrics and serves /metrics. Nil means the
	// default Prometheus registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	bodyLimit := deps.BodyLimit
	if bodyLimit == "" {
		bodyLimit = defaultBodyLimit
	}

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(deps.Logger))
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.BodyLimit(bodyLimit))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "employee_http",
		Registerer: registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Identity)
	employeeHandler := handler.NewEmployeeHandler(deps.Directory)
	authMiddleware := middleware.Auth(deps.Identity)

	// --- Employee routes ---
	g := e.Group(basePath)
	g.POST("/register", authHandler.Register)
	g.POST("/login", authHandler.Login)
	g.GET("/find", employeeHandler.List, authMiddleware)
	g.GET("/find/:id", employeeHandler.Get, authMiddleware)
	g.PUT("/update/:id", employeeHandler.Update, authMiddleware)
	g.DELETE("/delete/:id", employeeHandler.Delete, authMiddleware, middleware.RBAC(domain.RoleAdmin))

	// --- Operational routes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Checks)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
