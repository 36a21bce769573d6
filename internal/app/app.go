package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	captaincyhttp "github.com/leaguehub/server/internal/adapter/inbound/http/captaincy"
	invitecodehttp "github.com/leaguehub/server/internal/adapter/inbound/http/invitecode"
	joinrequesthttp "github.com/leaguehub/server/internal/adapter/inbound/http/joinrequest"
	"github.com/leaguehub/server/internal/domain/captaincy"
	"github.com/leaguehub/server/internal/domain/invitecode"
	"github.com/leaguehub/server/internal/domain/joinrequest"
	"github.com/leaguehub/server/internal/infra/events"
	"github.com/leaguehub/server/internal/infra/task"
	"github.com/leaguehub/server/internal/port/outbound"
	"github.com/leaguehub/server/internal/shared/auth"
	"github.com/leaguehub/server/internal/shared/config"
	"github.com/leaguehub/server/internal/utils/metrics"
	"github.com/leaguehub/server/internal/utils/middleware"
)

// sweepTimeout bounds one staleness sweep run.
const sweepTimeout = 5 * time.Minute

// Dependencies holds everything the application is assembled from.
type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger
	DB     *gorm.DB

	RateLimiter  outbound.RateLimiterPort
	Metrics      *metrics.Metrics
	EventBus     *events.Bus
	TokenManager *auth.TokenManager
	TaskManager  *task.Manager

	InviteCodeDomain  *invitecode.Domain
	JoinRequestDomain *joinrequest.Domain
	CaptaincyDomain   *captaincy.Domain

	InviteCodeHandler  *invitecodehttp.Handler
	JoinRequestHandler *joinrequesthttp.Handler
	CaptaincyHandler   *captaincyhttp.Handler
}

// App is the league membership server.
type App struct {
	deps    *Dependencies
	router  *gin.Engine
	cleanup func()
}

// New builds the application from configuration.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	deps, cleanup, err := InitializeDependencies(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("initialize dependencies: %w", err)
	}
	return NewWithDependencies(deps, cleanup), nil
}

// NewWithDependencies builds the application around already constructed dependencies.
func NewWithDependencies(deps *Dependencies, cleanup func()) *App {
	if cleanup == nil {
		cleanup = func() {}
	}
	a := &App{deps: deps, cleanup: cleanup}
	a.router = a.setupRouter()
	a.registerRoutes()
	return a
}

// Start launches background jobs.
func (a *App) Start(ctx context.Context) error {
	if a.deps.TaskManager == nil || a.deps.JoinRequestDomain == nil {
		return nil
	}

	cfg := a.deps.JoinRequestDomain.Config()
	if cfg.StaleAfter > 0 {
		err := a.deps.TaskManager.Register("join_request_sweep", cfg.SweepInterval, sweepTimeout, a.deps.JoinRequestDomain.SweepStale)
		if err != nil {
			return fmt.Errorf("register sweep: %w", err)
		}
	}

	a.deps.TaskManager.Start(ctx)
	return nil
}

// Router returns the HTTP handler.
func (a *App) Router() http.Handler {
	return a.router
}

// Stop stops background jobs and releases resources.
func (a *App) Stop() {
	if a.deps.TaskManager != nil {
		a.deps.TaskManager.Stop()
	}
	a.cleanup()
}

func (a *App) setupRouter() *gin.Engine {
	cfg := a.deps.Config
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()
	r.Use(middleware.Recovery(a.deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(a.deps.Logger))
	r.Use(middleware.Metrics(a.deps.Metrics))
	r.Use(middleware.CORS(&cfg.Server))

	r.GET("/health", a.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	return r
}

func (a *App) registerRoutes() {
	cfg := a.deps.Config
	v1 := a.router.Group("/api/v1")

	// Resolves the caller ahead of rate limiting so limits are keyed per user.
	v1.Use(middleware.OptionalAuth(a.deps.TokenManager))
	if cfg.RateLimit.Enabled {
		v1.Use(middleware.RateLimitByUser(a.deps.RateLimiter, middleware.RateLimitConfig{
			Limit:   cfg.RateLimit.APILimit,
			Window:  cfg.RateLimit.APIWindow,
			Metrics: a.deps.Metrics,
			Logger:  a.deps.Logger,
		}))
	}

	authMiddleware := middleware.RequireAuth(a.deps.TokenManager)
	a.deps.InviteCodeHandler.RegisterRoutes(v1, authMiddleware)
	a.deps.JoinRequestHandler.RegisterRoutes(v1, authMiddleware)
	a.deps.CaptaincyHandler.RegisterRoutes(v1, authMiddleware)
}

func (a *App) health(c *gin.Context) {
	status := gin.H{"status": "ok"}
	if a.deps.DB != nil {
		if sqlDB, err := a.deps.DB.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "unreachable"})
			return
		}
		status["database"] = "ok"
	}
	c.JSON(http.StatusOK, status)
}
