package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	// Domains
	"github.com/leaguehub/server/internal/domain/captaincy"
	"github.com/leaguehub/server/internal/domain/invitecode"
	"github.com/leaguehub/server/internal/domain/joinrequest"
	"github.com/leaguehub/server/internal/domain/membership"

	// Inbound adapters
	captaincyhttp "github.com/leaguehub/server/internal/adapter/inbound/http/captaincy"
	invitecodehttp "github.com/leaguehub/server/internal/adapter/inbound/http/invitecode"
	joinrequesthttp "github.com/leaguehub/server/internal/adapter/inbound/http/joinrequest"

	// Ports
	"github.com/leaguehub/server/internal/port/outbound"

	// Outbound adapters
	"github.com/leaguehub/server/internal/adapter/outbound/postgres"
	redisadapter "github.com/leaguehub/server/internal/adapter/outbound/redis"

	// Infrastructure
	"github.com/leaguehub/server/internal/infra/events"
	"github.com/leaguehub/server/internal/infra/httpclient"
	"github.com/leaguehub/server/internal/infra/notify"
	"github.com/leaguehub/server/internal/infra/task"
	"github.com/leaguehub/server/internal/shared/auth"
	"github.com/leaguehub/server/internal/shared/cache"
	"github.com/leaguehub/server/internal/shared/config"
	"github.com/leaguehub/server/internal/shared/database"
	sharedevents "github.com/leaguehub/server/internal/shared/events"

	// Utils
	"github.com/leaguehub/server/internal/utils/metrics"
	"github.com/leaguehub/server/internal/utils/requestctx"
)

// ===== Infrastructure Providers =====

// InfraSet provides infrastructure dependencies.
var InfraSet = wire.NewSet(
	ProvideDatabase,
	ProvideRedisClient,
	ProvideHTTPClient,
	ProvideRateLimiter,
	ProvideMetrics,
	ProvideEventBus,
	ProvideTokenManager,
	ProvideTaskManager,
	wire.Bind(new(outbound.EventPublisherPort), new(*events.Bus)),
)

// ProvideDatabase opens the database and, when enabled, applies pending migrations.
func ProvideDatabase(cfg *config.Config, logger *zap.Logger) (*gorm.DB, func(), error) {
	if cfg.Database.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.MigrateTimeout)
		defer cancel()
		if err := database.Migrate(ctx, cfg.Database.DSN(), logger); err != nil {
			return nil, nil, fmt.Errorf("migrate database: %w", err)
		}
	}

	db, err := database.New(context.Background(), &cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := database.Close(db); err != nil {
			logger.Warn("close database", zap.Error(err))
		}
	}
	return db, cleanup, nil
}

// ProvideRedisClient creates a Redis client.
// Redis is optional: without it HTTP rate limiting is disabled.
func ProvideRedisClient(cfg *config.Config, logger *zap.Logger) (goredis.UniversalClient, func()) {
	if cfg.Redis.Address == "" {
		return nil, func() {}
	}
	client, err := cache.NewRedisClient(context.Background(), &cfg.Redis)
	if err != nil {
		logger.Warn("Redis connection failed, continuing without rate limiting", zap.Error(err))
		return nil, func() {}
	}
	return client, func() { _ = cache.Close(client) }
}

// ProvideHTTPClient creates a shared HTTP client with connection pooling.
func ProvideHTTPClient(cfg *config.Config) *http.Client {
	return httpclient.New(&cfg.HTTPClient)
}

// ProvideRateLimiter creates a rate limiter.
func ProvideRateLimiter(client goredis.UniversalClient) outbound.RateLimiterPort {
	if client == nil {
		return nil
	}
	return redisadapter.NewRateLimiter(client)
}

// ProvideMetrics creates a metrics instance.
func ProvideMetrics() *metrics.Metrics {
	return metrics.New("leaguehub", nil)
}

// ProvideEventBus creates the event bus and registers the notification handlers.
func ProvideEventBus(cfg *config.Config, client *http.Client, m *metrics.Metrics, logger *zap.Logger) *events.Bus {
	bus := events.NewBus(logger)

	bus.Register(events.NewHandlerFunc(sharedevents.MembershipEventTypes(), func(ctx context.Context, evt sharedevents.Event) error {
		meta := evt.Meta()
		logger.With(requestctx.Fields(ctx)...).Info("membership event",
			zap.String("event_type", meta.Type),
			zap.String("aggregate_id", meta.AggregateID.String()),
			zap.String("recipient_id", meta.RecipientID.String()),
		)
		return nil
	}))

	if cfg.Notify.WebhookURL != "" {
		bus.Register(notify.NewWebhookHandler(&cfg.Notify, client, m, logger))
	}
	logger.Info("event bus ready",
		zap.Bool("webhook", cfg.Notify.WebhookURL != ""),
		zap.Int("subscribers", bus.Subscribers(sharedevents.JoinRequestApprovedType)),
	)
	return bus
}

// ProvideTokenManager creates the bearer token verifier.
func ProvideTokenManager(cfg *config.Config) *auth.TokenManager {
	return auth.NewTokenManager(&cfg.Auth)
}

// ProvideTaskManager creates the background job runner.
func ProvideTaskManager(logger *zap.Logger) *task.Manager {
	return task.NewManager(logger)
}

// ===== Repository Providers =====

// RepositorySet provides the postgres adapters bound to their ports.
var RepositorySet = wire.NewSet(
	postgres.NewTransactionAdapter,
	postgres.NewLeagueAdapter,
	postgres.NewSportAdapter,
	postgres.NewLeagueTeamAdapter,
	postgres.NewIdentityAdapter,
	postgres.NewPlayerAdapter,
	postgres.NewCaptainAdapter,
	postgres.NewLeagueMemberAdapter,
	postgres.NewTeamPlayerAdapter,
	postgres.NewTeamCaptainAdapter,
	postgres.NewInvitationCodeAdapter,
	postgres.NewJoinRequestAdapter,
	postgres.NewCaptainRequestAdapter,
	wire.Bind(new(outbound.TransactionPort), new(*postgres.TransactionAdapter)),
	wire.Bind(new(outbound.LeagueDatabasePort), new(*postgres.LeagueAdapter)),
	wire.Bind(new(outbound.SportDatabasePort), new(*postgres.SportAdapter)),
	wire.Bind(new(outbound.TeamDatabasePort), new(*postgres.LeagueTeamAdapter)),
	wire.Bind(new(outbound.IdentityPort), new(*postgres.IdentityAdapter)),
	wire.Bind(new(outbound.PlayerDatabasePort), new(*postgres.PlayerAdapter)),
	wire.Bind(new(outbound.CaptainDatabasePort), new(*postgres.CaptainAdapter)),
	wire.Bind(new(outbound.LeagueMemberDatabasePort), new(*postgres.LeagueMemberAdapter)),
	wire.Bind(new(outbound.TeamPlayerDatabasePort), new(*postgres.TeamPlayerAdapter)),
	wire.Bind(new(outbound.TeamCaptainDatabasePort), new(*postgres.TeamCaptainAdapter)),
	wire.Bind(new(outbound.InvitationCodeDatabasePort), new(*postgres.InvitationCodeAdapter)),
	wire.Bind(new(outbound.TeamJoinRequestDatabasePort), new(*postgres.JoinRequestAdapter)),
	wire.Bind(new(outbound.CaptainRequestDatabasePort), new(*postgres.CaptainRequestAdapter)),
)

// ===== Domain Providers =====

// DomainSet provides the membership workflows.
var DomainSet = wire.NewSet(
	membership.NewDomain,
	invitecode.NewDomain,
	joinrequest.NewDomain,
	captaincy.NewDomain,
	ProvideInviteCodeConfig,
	ProvideJoinRequestConfig,
	wire.Bind(new(invitecode.Ledger), new(*membership.Domain)),
	wire.Bind(new(joinrequest.Ledger), new(*membership.Domain)),
	wire.Bind(new(captaincy.Ledger), new(*membership.Domain)),
)

// ProvideInviteCodeConfig maps the invitation code section of the config.
func ProvideInviteCodeConfig(cfg *config.Config) *invitecode.Config {
	return &invitecode.Config{
		CodeLength:          cfg.InviteCode.CodeLength,
		MaxGenerateAttempts: cfg.InviteCode.MaxGenerateAttempts,
		MaxRedeemAttempts:   cfg.InviteCode.MaxRedeemAttempts,
		DefaultUsageLimit:   cfg.InviteCode.DefaultUsageLimit,
		MaxUsageLimit:       cfg.InviteCode.MaxUsageLimit,
	}
}

// ProvideJoinRequestConfig maps the join request section of the config.
func ProvideJoinRequestConfig(cfg *config.Config) *joinrequest.Config {
	return &joinrequest.Config{
		RateLimitCount:  cfg.JoinRequest.RateLimitCount,
		RateLimitWindow: cfg.JoinRequest.RateLimitWindow,
		StaleAfter:      cfg.JoinRequest.StaleAfter,
		SweepInterval:   cfg.JoinRequest.SweepInterval,
	}
}

// ===== Handler Providers =====

// HandlerSet provides the HTTP handlers.
var HandlerSet = wire.NewSet(
	invitecodehttp.NewHandler,
	joinrequesthttp.NewHandler,
	captaincyhttp.NewHandler,
	wire.Bind(new(invitecodehttp.Service), new(*invitecode.Domain)),
	wire.Bind(new(joinrequesthttp.Service), new(*joinrequest.Domain)),
	wire.Bind(new(captaincyhttp.Service), new(*captaincy.Domain)),
)

// AppSet is the complete provider set.
var AppSet = wire.NewSet(
	InfraSet,
	RepositorySet,
	DomainSet,
	HandlerSet,
)
