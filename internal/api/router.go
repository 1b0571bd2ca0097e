package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/emarabot/plaza-os/docs"
	"github.com/emarabot/plaza-os/internal/api/handler"
	"github.com/emarabot/plaza-os/internal/api/middleware"
	"github.com/emarabot/plaza-os/internal/core/domain"
	"github.com/emarabot/plaza-os/internal/core/ports"
	"github.com/emarabot/plaza-os/internal/core/service"
)

// Dependencies is everything the router wires into handlers.
type Dependencies struct {
	Sessions    *service.Sessions
	Credentials ports.CredentialSource
	// RedisPing is nil when the shared in-flight guard is disabled.
	RedisPing handler.Pinger
	JWTSecret string
	TokenTTL  time.Duration
	Log       zerolog.Logger
	// Registry receives HTTP metrics and backs /metrics. Nil selects the
	// default registry, which also carries the domain metrics.
	Registry *prometheus.Registry
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
	e.Use(echomiddleware.BodyLimit("10M"))
	e.Use(requestLogger(deps.Log))
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "plaza",
		Subsystem:  "http",
		Registerer: registerer,
	}))

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.RedisPing, deps.Credentials)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Sessions ---
	sessionHandler := handler.NewSessionHandler(deps.Sessions, deps.JWTSecret, deps.TokenTTL)
	e.POST("/v1/sessions", sessionHandler.Create)

	v1 := e.Group("/v1", middleware.Session(deps.JWTSecret, deps.Sessions))
	v1.GET("/session", sessionHandler.Get)
	v1.DELETE("/session", sessionHandler.Delete)
	v1.POST("/session/login", sessionHandler.Login)
	v1.POST("/session/logout", sessionHandler.Logout)
	v1.PUT("/session/tab", sessionHandler.SelectTab)

	// --- Resident panels ---
	residentOnly := middleware.RBAC(domain.RoleResident)

	servicesHandler := handler.NewServicesHandler()
	v1.GET("/services", servicesHandler.Catalogue, residentOnly)
	v1.POST("/guest-keys", servicesHandler.IssueGuestKey, residentOnly)

	conciergeHandler := handler.NewConciergeHandler()
	v1.GET("/concierge/messages", conciergeHandler.List, residentOnly)
	v1.POST("/concierge/messages", conciergeHandler.Send, residentOnly)

	lensHandler := handler.NewLensHandler()
	v1.GET("/lens", lensHandler.Get, residentOnly)
	v1.PUT("/lens/mode", lensHandler.SetMode, residentOnly)
	v1.PUT("/lens/image", lensHandler.UploadImage, residentOnly)
	v1.POST("/lens/process", lensHandler.Process, residentOnly)

	communityHandler := handler.NewCommunityHandler()
	v1.GET("/community/posts", communityHandler.List, residentOnly)
	v1.POST("/community/posts", communityHandler.Publish, residentOnly)
	v1.POST("/community/drafts", communityHandler.Draft, residentOnly)
	v1.POST("/community/posts/:id/like", communityHandler.Like, residentOnly)

	parkingHandler := handler.NewParkingHandler()
	v1.GET("/parking", parkingHandler.Get, middleware.RBAC(domain.RoleResident, domain.RoleGuest))

	// --- Manager ---
	dashboardHandler := handler.NewDashboardHandler()
	managerOnly := middleware.RBAC(domain.RoleManager)
	v1.GET("/dashboard", dashboardHandler.Overview, managerOnly)
	v1.POST("/dashboard/polish", dashboardHandler.Polish, managerOnly)

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
