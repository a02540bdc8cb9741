package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/config"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/actor"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/scope"
	"github.com/cmlabs-hris/hris-analytics-go/internal/fixtures"
	appHTTP "github.com/cmlabs-hris/hris-analytics-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-analytics-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/logging"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/observability"
	"github.com/cmlabs-hris/hris-analytics-go/internal/repository/memory"
	"github.com/cmlabs-hris/hris-analytics-go/internal/repository/postgresql"
	redisRepo "github.com/cmlabs-hris/hris-analytics-go/internal/repository/redis"
	analyticsService "github.com/cmlabs-hris/hris-analytics-go/internal/service/analytics"
	dashboardService "github.com/cmlabs-hris/hris-analytics-go/internal/service/dashboard"
	scopeService "github.com/cmlabs-hris/hris-analytics-go/internal/service/scope"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
)

var version = "dev"

type stores struct {
	scope     scope.Repository
	analytics analytics.Repository
	labels    analytics.LabelRepository
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	logger := logging.New(os.Stdout, logging.Options{
		App:     "hris-analytics",
		Version: version,
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
	})
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg)
	observer := observability.Multi(observability.NewLogObserver(logger), observability.NewMetricsObserver(metrics))

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	clk := clock.New(cfg.App.Timezone)

	st, err := openStores(ctx, cfg, metrics, jwtService, clk, logger)
	if err != nil {
		logger.Error("failed to open record store", slog.String("driver", cfg.Store.Driver), slog.Any("error", err))
		os.Exit(1)
	}
	defer st.close()

	labels := st.labels
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			// The cache degrades to pass-through on errors, so keep going.
			logger.Warn("redis unreachable, label cache will miss", slog.Any("error", err))
		}
		labels = redisRepo.NewLabelCache(st.labels, rdb, cfg.Redis.LabelTTL, logger)
	}

	resolver := scopeService.NewScopeResolver(st.scope, observer)
	engine := analyticsService.NewAnalyticsEngine(st.analytics, labels, observer, analyticsService.Options{
		Concurrency: cfg.Aggregation.Concurrency,
		Timeout:     cfg.Aggregation.Timeout,
	})
	dashboardSvc := dashboardService.NewDashboardService(
		resolver,
		engine,
		dashboardService.NewStrategies(cfg.Alerts),
		observer,
		dashboardService.DefaultRecentLimit,
	)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc, clk)

	router := appHTTP.NewRouter(jwtService, dashboardHandler, appHTTP.RouterOptions{
		Logger:         logger,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Metrics:        promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		RateLimiter:    middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		RequestTimeout: cfg.Aggregation.Timeout + 5*time.Second,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server running", slog.String("addr", srv.Addr), slog.String("store", cfg.Store.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
	}
}

func openStores(ctx context.Context, cfg *config.Config, metrics *observability.Metrics, jwtService jwt.Service, clk clock.Clock, logger *slog.Logger) (*stores, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		store := memory.NewStore()
		ids := fixtures.SeedDemo(store, clk.Now())
		logger.Info("seeded demo company", slog.String("company_id", ids.CompanyID))
		if !cfg.IsProduction() {
			logDemoTokens(jwtService, ids, logger)
		}
		return &stores{scope: store, analytics: store, labels: store, close: func() {}}, nil

	case config.StoreDriverPostgres:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		db, err := database.NewPostgreSQLDB(connectCtx, cfg.DatabaseURL(), database.PoolOptions{
			MaxConns: int32(cfg.Database.MaxConns),
			MinConns: int32(cfg.Database.MinConns),
		})
		if err != nil {
			return nil, err
		}
		guard := database.NewGuard(database.GuardConfig{
			Name:           "postgres",
			RetryAttempts:  cfg.Store.RetryAttempts,
			MaxFailures:    cfg.Store.BreakerFailures,
			OpenTimeout:    cfg.Store.BreakerTimeout,
			AttemptTimeout: cfg.Aggregation.Timeout,
			OnStateChange: func(name string, from, to gobreaker.State) {
				metrics.BreakerStateChanged(name, from, to)
				logger.Warn("record store breaker changed state",
					slog.String("breaker", name),
					slog.String("from", from.String()),
					slog.String("to", to.String()),
				)
			},
		})
		return &stores{
			scope:     postgresql.NewScopeRepository(db, guard),
			analytics: postgresql.NewAnalyticsRepository(db, guard),
			labels:    postgresql.NewLabelRepository(db, guard),
			close:     db.Close,
		}, nil
	}
	return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
}

// logDemoTokens prints one hour-long access token per seeded role so the demo
// store can be queried without the HRIS backend.
func logDemoTokens(jwtService jwt.Service, ids fixtures.DemoIDs, logger *slog.Logger) {
	actors := []actor.Actor{
		{ID: ids.AdminID, CompanyID: ids.CompanyID, Role: actor.RoleAdmin},
		{ID: ids.HRManagerID, CompanyID: ids.CompanyID, Role: actor.RoleHRManager},
		{ID: ids.LeaderID, CompanyID: ids.CompanyID, Role: actor.RoleTeamLeader},
		{ID: ids.EmployeeIDs[0], CompanyID: ids.CompanyID, Role: actor.RoleEmployee},
	}
	for _, a := range actors {
		token, _, err := jwtService.GenerateAccessToken(a, time.Hour)
		if err != nil {
			logger.Error("failed to sign demo token", slog.String("role", string(a.Role)), slog.Any("error", err))
			continue
		}
		logger.Info("demo token", slog.String("role", string(a.Role)), slog.String("employee_id", a.ID), slog.String("token", token))
	}
}
