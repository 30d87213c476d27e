package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/alexmorgan-dev/portfolio-api/internal/api/handler"
	"github.com/alexmorgan-dev/portfolio-api/internal/api/middleware"
	"github.com/alexmorgan-dev/portfolio-api/internal/core/domain"
	"github.com/alexmorgan-dev/portfolio-api/internal/core/ports"
)

const bodyLimit = "64K"

// Dependencies is everything NewRouter wires into handlers. Mongo and Redis
// may be nil when the process runs on in-memory fallbacks.
type Dependencies struct {
	Auth        ports.AuthService
	Projects    ports.ProjectService
	Submissions ports.SubmissionService

	Mongo *mongo.Database
	Redis *redis.Client

	Log            zerolog.Logger
	Cookie         handler.CookieConfig
	AllowedOrigins []string

	// MetricsRegistry replaces the default Prometheus registry; tests pass a
	// fresh one per router.
	MetricsRegistry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	e.Validator = handler.NewValidator()
	e.IPExtractor = echo.ExtractIPFromXFFHeader()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     deps.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(echomiddleware.BodyLimit(bodyLimit))

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.MetricsRegistry != nil {
		registerer, gatherer = deps.MetricsRegistry, deps.MetricsRegistry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "portfolio",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	health := handler.NewHealthHandler(deps.Mongo, deps.Redis)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)

	authMW := middleware.Auth(deps.Auth)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Cookie, deps.Log)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/verify", authHandler.Verify, authMW)
	e.POST("/auth/externaldb-token", authHandler.ExternalDBToken, authMW, adminOnly)

	// --- Public content ---
	projectHandler := handler.NewProjectHandler(deps.Projects)
	e.GET("/projects", projectHandler.List)

	submissionHandler := handler.NewSubmissionHandler(deps.Submissions)
	e.POST("/messages", submissionHandler.CreateMessage)
	e.POST("/bookings", submissionHandler.CreateBooking)

	// --- Admin inbox ---
	admin := e.Group("/admin", authMW, adminOnly)
	admin.GET("/submissions", submissionHandler.ListSubmissions)
	admin.GET("/messages", submissionHandler.ListMessages)
	admin.PATCH("/messages/:id", submissionHandler.UpdateMessage)
	admin.DELETE("/messages/:id", submissionHandler.DeleteMessage)
	admin.GET("/bookings", submissionHandler.ListBookings)
	admin.PATCH("/bookings/:id", submissionHandler.UpdateBooking)
	admin.DELETE("/bookings/:id", submissionHandler.DeleteBooking)

	return e
}

// requestLogger replaces echo's default logger with one structured line per
// request on the shared zerolog logger.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
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
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
