package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/olympicapp/country-comments/docs"
	"github.com/olympicapp/country-comments/internal/api/handler"
	"github.com/olympicapp/country-comments/internal/api/metrics"
	"github.com/olympicapp/country-comments/internal/api/middleware"
	"github.com/olympicapp/country-comments/internal/core/ports"
	"github.com/olympicapp/country-comments/internal/core/service"
	"github.com/olympicapp/country-comments/internal/pkg/config"
	"github.com/olympicapp/country-comments/internal/session"
)

// Dependencies are the backends the router wires into the services.
type Dependencies struct {
	Users    ports.UserRepository
	Comments ports.CommentRepository
	Sessions ports.SessionStore
	// Checks feed /health/ready, one per networked backend.
	Checks map[string]handler.Checker
	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, deps Dependencies, log zerolog.Logger) (*echo.Echo, error) {
	passwords, err := service.NewPasswordScheme(cfg.Auth.PasswordScheme)
	if err != nil {
		return nil, err
	}
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}
	if err := metrics.Register(deps.Registerer); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORS.Origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: deps.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Dependencies ---
	gate := service.NewAuthGate(deps.Users, cfg.Auth.RevalidateRole, log)
	authService := service.NewAuthService(deps.Users, gate, passwords, log)
	commentService := service.NewCommentService(deps.Comments, deps.Users, gate,
		service.CommentPolicy{AllowAnonymous: cfg.Comments.AllowAnonymous}, log)
	adminService := service.NewUserAdminService(deps.Users, gate, log)

	userHandler := handler.NewUserHandler(authService)
	commentHandler := handler.NewCommentHandler(commentService)
	adminHandler := handler.NewAdminHandler(adminService)

	sessionMiddleware := middleware.Session(middleware.SessionConfig{
		Store:      deps.Sessions,
		Codec:      session.NewCookieCodec(cfg.Session.Secret),
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL,
		Secure:     cfg.Session.CookieSecure,
		Log:        log,
	})

	api := e.Group("/api", sessionMiddleware)

	// --- Comment routes ---
	comments := api.Group("/comments")
	comments.GET("/:countryCode", commentHandler.List)
	comments.POST("/:countryCode", commentHandler.Create)
	comments.DELETE("/:id", commentHandler.Delete)

	// --- User routes ---
	users := api.Group("/users")
	users.POST("/register", userHandler.Register)
	users.POST("/login", userHandler.Login)
	users.GET("/profile", userHandler.Profile)
	users.POST("/logout", userHandler.Logout)

	// --- Admin routes ---
	admin := users.Group("/admin/users", middleware.RequireAdmin(gate))
	admin.GET("", adminHandler.ListUsers)
	admin.PUT("/:id", adminHandler.UpdateUser)
	admin.DELETE("/:id", adminHandler.DeleteUser)

	// --- Health probes (no session) ---
	healthHandler := handler.NewHealthHandler(deps.Checks)
	e.GET("/health", healthHandler.Liveness)         // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are backends up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
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
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= http.StatusInternalServerError {
				evt = log.Error().Err(v.Error)
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
