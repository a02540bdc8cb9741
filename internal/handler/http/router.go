package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/actor"
	"github.com/cmlabs-hris/hris-analytics-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	Metrics        http.Handler // serves /metrics when set
	RateLimiter    *middleware.RateLimiter
	RequestTimeout time.Duration
}

func NewRouter(JWTService jwt.Service, dashboardHandler DashboardHandler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.TraceIDHeader},
		ExposedHeaders:   []string{middleware.TraceIDHeader},
		MaxAge:           300,
	}))

	r.Use(middleware.TraceID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		if opts.RequestTimeout > 0 {
			r.Use(chiMiddleware.Timeout(opts.RequestTimeout))
		}

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)
			r.Use(middleware.ResolveActor)
			if opts.RateLimiter != nil {
				r.Use(opts.RateLimiter.Handler)
			}

			r.With(middleware.RequirePermission(actor.PermissionDashboardViewOwn)).
				Get("/dashboard", dashboardHandler.GetDashboard)

			r.Route("/analytics", func(r chi.Router) {
				r.With(middleware.RequirePermission(actor.PermissionAnalyticsView)).
					Get("/", dashboardHandler.GetAnalytics)
				r.With(middleware.RequirePermission(actor.PermissionDashboardViewOwn)).
					Get("/views/{view}", dashboardHandler.GetView)
			})

			r.With(middleware.RequirePermission(actor.PermissionDashboardViewOwn)).
				Get("/employees/{employeeID}/attendance", dashboardHandler.GetEmployeeAttendance)

			r.With(middleware.RequirePermission(actor.PermissionTeamMembersView)).
				Get("/team/members", dashboardHandler.GetTeamMembers)

			r.With(middleware.RequirePermission(actor.PermissionNoticesView)).
				Get("/notices/visible", dashboardHandler.GetVisibleNotices)
		})
	})
	return r
}
