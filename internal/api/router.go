package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/clinicflow/auth-service/docs"
	"github.com/clinicflow/auth-service/internal/api/handler"
	"github.com/clinicflow/auth-service/internal/api/middleware"
	"github.com/clinicflow/auth-service/internal/core/domain"
	"github.com/clinicflow/auth-service/internal/core/ports"
	"github.com/clinicflow/auth-service/internal/pkg/token"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	AuthService ports.AuthService
	UserService ports.UserService
	// Signers verify bearer tokens on protected routes: app and web secrets.
	Signers []*token.Signer
	// Readiness maps dependency names to their ping checks.
	Readiness map[string]handler.Pinger
	// Registry receives the HTTP metrics and backs /metrics. Nil uses the
	// default Prometheus registry.
	Registry *prometheus.Registry
	Logger   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "auth",
		Registerer: registerer,
	}))

	// --- Auth routes ---
	requireAccess := middleware.Auth(deps.Signers...)

	authHandler := handler.NewAuthHandler(deps.AuthService)
	auth := e.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/login-web", authHandler.LoginWeb)
	auth.POST("/register", authHandler.Register)
	auth.GET("/email-exists", authHandler.EmailExists)
	auth.POST("/refresh-token", authHandler.RefreshToken, requireAccess)

	// --- Profile routes (bearer token required) ---
	userHandler := handler.NewUserHandler(deps.UserService)
	users := e.Group("/users", requireAccess)
	users.GET("/me", userHandler.Me)
	users.PATCH("/me", userHandler.UpdateMe)
	users.PUT("/me/password", userHandler.ChangePassword)
	users.GET("", userHandler.List, middleware.RBAC(deps.UserService.Role, domain.RoleClientManager))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
