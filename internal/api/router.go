package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"github.com/frontdesk/visitor-pass/internal/api/handler"
	"github.com/frontdesk/visitor-pass/internal/api/middleware"
	"github.com/frontdesk/visitor-pass/internal/core/domain"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

// Deps carries everything the HTTP layer needs. Services are built by the
// caller so the router stays free of storage concerns.
type Deps struct {
	Log        zerolog.Logger
	JWTSecret  string
	Authorizer ports.Authorizer

	Auth         ports.AuthService
	Users        ports.UserService
	Visitors     ports.VisitorService
	Appointments ports.AppointmentService
	Passes       ports.PassService
	CheckLogs    ports.CheckLogService
	Scans        ports.ScanService
	Reports      ports.ReportService

	HealthChecks map[string]handler.CheckFunc

	// UploadDir is served under /uploads. Empty disables static serving.
	UploadDir string
	// PublicRateLimit is requests per second per client IP on the
	// unauthenticated write routes. Zero disables limiting.
	PublicRateLimit float64

	// Metrics receives the HTTP request metrics and backs /metrics. Nil
	// selects the default Prometheus registry.
	Metrics *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.Validator = handler.NewValidator()
	e.JSONSerializer = jsonSerializer{}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	e.Use(requestLogger(d.Log))
	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if d.Metrics != nil {
		registerer, gatherer = d.Metrics, d.Metrics
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "visitorpass",
		Registerer: registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	userHandler := handler.NewUserHandler(d.Users)
	visitorHandler := handler.NewVisitorHandler(d.Visitors)
	appointmentHandler := handler.NewAppointmentHandler(d.Appointments)
	passHandler := handler.NewPassHandler(d.Passes)
	checkLogHandler := handler.NewCheckLogHandler(d.CheckLogs, d.Scans)
	reportHandler := handler.NewReportHandler(d.Reports)
	healthHandler := handler.NewHealthHandler(d.HealthChecks)

	authMiddleware := middleware.Auth(d.JWTSecret)
	limit := publicLimiter(d.PublicRateLimit)
	can := func(resource, action string) echo.MiddlewareFunc {
		return middleware.RBAC(d.Authorizer, resource, action)
	}

	api := e.Group("/api")

	// --- Auth routes ---
	api.POST("/auth/register", authHandler.Register, limit...)
	api.POST("/auth/login", authHandler.Login, limit...)
	api.GET("/auth/me", authHandler.Me, authMiddleware)

	// --- Users (admin only) ---
	users := api.Group("/users", authMiddleware, can(domain.ResourceUser, domain.ActionManage))
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Visitors ---
	api.POST("/visitors/pre-register", visitorHandler.PreRegister, limit...)
	visitors := api.Group("/visitors", authMiddleware)
	visitors.GET("", visitorHandler.List)
	visitors.GET("/:id", visitorHandler.Get)
	visitors.POST("", visitorHandler.Create)
	visitors.PUT("/:id", visitorHandler.Update)
	visitors.PATCH("/:id/status", visitorHandler.SetStatus)
	visitors.DELETE("/:id", visitorHandler.Delete)

	// --- Appointments ---
	appointments := api.Group("/appointments", authMiddleware)
	appointments.GET("", appointmentHandler.List)
	appointments.GET("/:id", appointmentHandler.Get)
	appointments.POST("", appointmentHandler.Schedule)
	appointments.PATCH("/:id/status", appointmentHandler.SetStatus)

	// --- Passes ---
	passes := api.Group("/passes", authMiddleware)
	passes.GET("", passHandler.List)
	passes.POST("", passHandler.Issue)
	passes.POST("/verify", passHandler.Verify)
	passes.POST("/expire-old", passHandler.ExpireOld)
	passes.GET("/:id", passHandler.Get)
	passes.PATCH("/:id/status", passHandler.SetStatus)

	// --- Checkpoint ---
	api.GET("/check-logs", checkLogHandler.List, authMiddleware)
	api.POST("/check-logs", checkLogHandler.Record, authMiddleware)
	api.POST("/scan", checkLogHandler.Scan, authMiddleware)

	// --- Reports ---
	api.GET("/reports/summary", reportHandler.Summary, authMiddleware)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // process up
	e.GET("/health/ready", healthHandler.Readiness) // mongo and redis reachable

	// --- Operational ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if d.UploadDir != "" {
		e.Static("/uploads", d.UploadDir)
	}

	return e
}

// requestLogger writes one zerolog entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}

// publicLimiter throttles unauthenticated write routes per client IP.
func publicLimiter(perSecond float64) []echo.MiddlewareFunc {
	if perSecond <= 0 {
		return nil
	}
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})
	return []echo.MiddlewareFunc{echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
		},
	})}
}
