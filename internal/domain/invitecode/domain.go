// Package invitecode generates, validates and redeems shareable invitation codes.
package invitecode

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/leaguehub/server/internal/model"
	"github.com/leaguehub/server/internal/port/inbound"
	"github.com/leaguehub/server/internal/port/outbound"
	"github.com/leaguehub/server/internal/shared/events"
	"github.com/leaguehub/server/internal/shared/logger"
	"github.com/leaguehub/server/internal/shared/tracing"
	"github.com/leaguehub/server/internal/utils/metrics"
	"github.com/leaguehub/server/internal/utils/random"
)

var tracer = tracing.Tracer("domain/invitecode")

// Redemption outcomes reported to metrics.
const (
	outcomeSuccess         = "success"
	outcomeInvalidCode     = "invalid_code"
	outcomeExpired         = "expired"
	outcomeAlreadyUsed     = "already_used"
	outcomeLimitReached    = "limit_reached"
	outcomeAlreadyRedeemed = "already_redeemed"
	outcomeContention      = "contention"
)

// Ledger is the part of the membership ledger a redemption writes to.
type Ledger interface {
	JoinLeague(ctx context.Context, leagueID, userID uuid.UUID) (*model.Player, error)
	JoinTeam(ctx context.Context, team *model.Team, userID uuid.UUID) (*model.Player, error)
	IsUserOnTeam(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
	IsTeamCaptain(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
}

// Domain implements the invitation code engine.
type Domain struct {
	codeDB    outbound.InvitationCodeDatabasePort
	leagueDB  outbound.LeagueDatabasePort
	sportDB   outbound.SportDatabasePort
	teamDB    outbound.TeamDatabasePort
	ledger    Ledger
	identity  outbound.IdentityPort
	txPort    outbound.TransactionPort
	publisher outbound.EventPublisherPort
	metrics   *metrics.Metrics
	cfg       *Config
	logger    *zap.Logger
	now       func() time.Time
}

// NewDomain creates a new invitation code domain.
func NewDomain(
	codeDB outbound.InvitationCodeDatabasePort,
	leagueDB outbound.LeagueDatabasePort,
	sportDB outbound.SportDatabasePort,
	teamDB outbound.TeamDatabasePort,
	ledger Ledger,
	identity outbound.IdentityPort,
	txPort outbound.TransactionPort,
	publisher outbound.EventPublisherPort,
	m *metrics.Metrics,
	cfg *Config,
	logger *zap.Logger,
) *Domain {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		logger.Warn("invalid invitation code config, using defaults", zap.Error(err))
		cfg = DefaultConfig()
	}

	return &Domain{
		codeDB:    codeDB,
		leagueDB:  leagueDB,
		sportDB:   sportDB,
		teamDB:    teamDB,
		ledger:    ledger,
		identity:  identity,
		txPort:    txPort,
		publisher: publisher,
		metrics:   m,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// ========== Generation ==========

// Generate creates a code granting membership in the league and sport, and
// optionally a team of that league. League admins may create any code; team
// captains may create codes scoped to their own team.
func (d *Domain) Generate(ctx context.Context, creatorID, organizationID uuid.UUID, in *inbound.GenerateInvitationCodeInput) (out *inbound.InvitationCodeOutput, err error) {
	ctx, span := tracer.Start(ctx, "invitecode.Generate", trace.WithAttributes(
		attribute.String("organization_id", organizationID.String()),
	))
	defer func() { tracing.End(span, err) }()

	if in == nil {
		return nil, ErrInvalidRequest
	}

	now := d.now()
	usageLimit := in.UsageLimit
	if usageLimit == 0 {
		usageLimit = d.cfg.DefaultUsageLimit
	}
	if usageLimit < 1 || usageLimit > d.cfg.MaxUsageLimit {
		return nil, ErrInvalidUsageLimit
	}
	if in.ExpiresAt != nil && !in.ExpiresAt.After(now) {
		return nil, ErrInvalidExpiry
	}

	if _, err := d.leagueDB.FindByID(ctx, organizationID); err != nil {
		return nil, mapNotFound(err, ErrLeagueNotFound, "find league")
	}
	if _, err := d.sportDB.FindByID(ctx, in.SportID); err != nil {
		return nil, mapNotFound(err, ErrSportNotFound, "find sport")
	}
	if in.TeamID != nil {
		team, err := d.teamDB.FindByID(ctx, *in.TeamID)
		if err != nil {
			return nil, mapNotFound(err, ErrTeamNotFound, "find team")
		}
		if team.LeagueID != organizationID {
			return nil, ErrTeamNotInLeague
		}
	}
	if err := d.authorizeCreate(ctx, creatorID, in.TeamID); err != nil {
		return nil, err
	}

	code := &model.InvitationCode{
		OrganizationID: organizationID,
		SportID:        in.SportID,
		TeamID:         in.TeamID,
		CreatedBy:      creatorID,
		ExpiresAt:      in.ExpiresAt,
		UsageLimit:     usageLimit,
		CreatedAt:      now,
	}

	collisions := 0
	for attempt := 0; attempt < d.cfg.MaxGenerateAttempts; attempt++ {
		value, err := random.UpperHex(d.cfg.CodeLength)
		if err != nil {
			return nil, fmt.Errorf("generate code: %w", err)
		}
		code.ID = uuid.New()
		code.Code = value

		err = d.codeDB.Create(ctx, code)
		if err == nil {
			d.metrics.RecordCodeGenerated(collisions)
			logger.FromContext(ctx, d.logger).Info("invitation code generated",
				zap.String("code_id", code.ID.String()),
				zap.String("organization_id", organizationID.String()),
				zap.String("created_by", creatorID.String()),
				zap.Int("usage_limit", usageLimit),
				zap.Int("collisions", collisions),
			)
			return toCodeOutput(code, now, true), nil
		}
		if !outbound.IsDuplicateOn(err, outbound.ConstraintInvitationCode) {
			return nil, fmt.Errorf("create invitation code: %w", err)
		}
		collisions++
		logger.FromContext(ctx, d.logger).Warn("invitation code collision, regenerating", zap.Int("attempt", attempt+1))
	}

	d.metrics.RecordCodeGenerated(collisions)
	return nil, ErrCodeGenerationFailed
}

func (d *Domain) authorizeCreate(ctx context.Context, creatorID uuid.UUID, teamID *uuid.UUID) error {
	user, err := d.identity.ResolveUser(ctx, creatorID)
	if err != nil {
		return mapNotFound(err, ErrUserNotFound, "resolve user")
	}
	if user.IsAdmin() {
		return nil
	}
	if teamID == nil {
		return ErrNotAllowed
	}
	isCaptain, err := d.ledger.IsTeamCaptain(ctx, *teamID, creatorID)
	if err != nil {
		return err
	}
	if !isCaptain {
		return ErrNotAllowed
	}
	return nil
}

// ========== Redemption ==========

// Redeem consumes one use of the code for the user and grants the membership
// it carries. The usage counter is advanced with a single conditional update,
// so at most usage_limit redemptions ever succeed.
func (d *Domain) Redeem(ctx context.Context, userID uuid.UUID, value string) (out *inbound.RedeemInvitationCodeOutput, err error) {
	ctx, span := tracer.Start(ctx, "invitecode.Redeem", trace.WithAttributes(
		attribute.String("user_id", userID.String()),
	))
	defer func() { tracing.End(span, err) }()

	if _, err := d.identity.ResolveUser(ctx, userID); err != nil {
		return nil, mapNotFound(err, ErrUserNotFound, "resolve user")
	}

	value = Normalize(value)
	for attempt := 0; attempt < d.cfg.MaxRedeemAttempts; attempt++ {
		code, err := d.codeDB.FindByCode(ctx, value)
		if errors.Is(err, outbound.ErrRecordNotFound) {
			d.metrics.RecordRedemption(outcomeInvalidCode)
			return nil, ErrInvalidCode
		}
		if err != nil {
			return nil, fmt.Errorf("find invitation code: %w", err)
		}

		now := d.now()
		if err := checkRedeemable(code, userID, now); err != nil {
			d.metrics.RecordRedemption(outcomeFor(err))
			return nil, err
		}

		err = d.txPort.RunInTransaction(ctx, func(txCtx context.Context) error {
			return d.redeemTx(txCtx, code, userID, now)
		})
		if errors.Is(err, errUsageRace) {
			logger.FromContext(ctx, d.logger).Debug("invitation code usage race, retrying",
				zap.String("code_id", code.ID.String()),
				zap.Int("attempt", attempt+1),
			)
			continue
		}
		if err != nil {
			if errors.Is(err, ErrAlreadyRedeemed) {
				d.metrics.RecordRedemption(outcomeAlreadyRedeemed)
			}
			return nil, err
		}

		d.metrics.RecordRedemption(outcomeSuccess)
		logger.FromContext(ctx, d.logger).Info("invitation code redeemed",
			zap.String("code_id", code.ID.String()),
			zap.String("user_id", userID.String()),
			zap.String("organization_id", code.OrganizationID.String()),
			zap.Int("used_count", code.UsedCount+1),
			zap.Int("usage_limit", code.UsageLimit),
		)
		d.publisher.Publish(ctx, events.NewInvitationCodeRedeemedEvent(
			code.ID, code.CreatedBy, code.Code, userID, code.OrganizationID, code.SportID, code.TeamID,
		))

		return &inbound.RedeemInvitationCodeOutput{
			OrganizationID: code.OrganizationID,
			SportID:        code.SportID,
			TeamID:         code.TeamID,
		}, nil
	}

	d.metrics.RecordRedemption(outcomeContention)
	return nil, ErrRedeemContention
}

func (d *Domain) redeemTx(ctx context.Context, code *model.InvitationCode, userID uuid.UUID, now time.Time) error {
	consumed, err := d.codeDB.IncrementUsage(ctx, code.ID, now)
	if err != nil {
		return fmt.Errorf("increment usage: %w", err)
	}
	if !consumed {
		return errUsageRace
	}

	redemption := &model.InvitationCodeRedemption{
		ID:         uuid.New(),
		CodeID:     code.ID,
		UserID:     userID,
		RedeemedAt: now,
	}
	if err := d.codeDB.AddRedemption(ctx, redemption); err != nil {
		if outbound.IsDuplicateOn(err, outbound.ConstraintCodeRedeemer) {
			return ErrAlreadyRedeemed
		}
		return fmt.Errorf("add redemption: %w", err)
	}

	if _, err := d.ledger.JoinLeague(ctx, code.OrganizationID, userID); err != nil {
		return err
	}
	if code.TeamID != nil {
		if err := d.joinCodeTeam(ctx, *code.TeamID, userID); err != nil {
			return err
		}
	}

	if err := d.identity.SetCurrentOrganization(ctx, userID, code.OrganizationID); err != nil {
		return fmt.Errorf("set current organization: %w", err)
	}
	return nil
}

func (d *Domain) joinCodeTeam(ctx context.Context, teamID, userID uuid.UUID) error {
	onTeam, err := d.ledger.IsUserOnTeam(ctx, teamID, userID)
	if err != nil || onTeam {
		return err
	}
	team, err := d.teamDB.FindByID(ctx, teamID)
	if err != nil {
		return mapNotFound(err, ErrTeamNotFound, "find team")
	}
	_, err = d.ledger.JoinTeam(ctx, team, userID)
	return err
}

// checkRedeemable classifies why a code cannot be redeemed by the user at now.
func checkRedeemable(code *model.InvitationCode, userID uuid.UUID, now time.Time) error {
	switch {
	case code.IsExpiredAt(now):
		return ErrCodeExpired
	case code.IsExhausted() && code.UsageLimit == 1:
		return ErrAlreadyUsed
	case code.IsExhausted():
		return ErrLimitReached
	}
	for _, redeemer := range code.UsedBy() {
		if redeemer == userID {
			return ErrAlreadyRedeemed
		}
	}
	return nil
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, ErrCodeExpired):
		return outcomeExpired
	case errors.Is(err, ErrAlreadyUsed):
		return outcomeAlreadyUsed
	case errors.Is(err, ErrLimitReached):
		return outcomeLimitReached
	case errors.Is(err, ErrAlreadyRedeemed):
		return outcomeAlreadyRedeemed
	default:
		return outcomeInvalidCode
	}
}

// ========== Queries & Revocation ==========

// Get previews a code without redeeming it.
func (d *Domain) Get(ctx context.Context, value string) (*inbound.InvitationCodeOutput, error) {
	code, err := d.codeDB.FindByCode(ctx, Normalize(value))
	if err != nil {
		return nil, mapNotFound(err, ErrInvalidCode, "find invitation code")
	}
	return toCodeOutput(code, d.now(), false), nil
}

// List returns the codes of a league, newest first. Only league admins may list.
func (d *Domain) List(ctx context.Context, requesterID, organizationID uuid.UUID, limit, offset int) ([]*inbound.InvitationCodeOutput, error) {
	user, err := d.identity.ResolveUser(ctx, requesterID)
	if err != nil {
		return nil, mapNotFound(err, ErrUserNotFound, "resolve user")
	}
	if !user.IsAdmin() {
		return nil, ErrNotAllowed
	}
	if _, err := d.leagueDB.FindByID(ctx, organizationID); err != nil {
		return nil, mapNotFound(err, ErrLeagueNotFound, "find league")
	}

	codes, err := d.codeDB.ListByOrganization(ctx, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invitation codes: %w", err)
	}
	return toCodeOutputs(codes, d.now()), nil
}

// Revoke deletes a code. The creator and league admins may revoke.
func (d *Domain) Revoke(ctx context.Context, requesterID, codeID uuid.UUID) error {
	code, err := d.codeDB.FindByID(ctx, codeID)
	if err != nil {
		return mapNotFound(err, ErrCodeNotFound, "find invitation code")
	}

	if code.CreatedBy != requesterID {
		user, err := d.identity.ResolveUser(ctx, requesterID)
		if err != nil {
			return mapNotFound(err, ErrUserNotFound, "resolve user")
		}
		if !user.IsAdmin() {
			return ErrNotAllowed
		}
	}

	if err := d.codeDB.Delete(ctx, codeID); err != nil {
		return mapNotFound(err, ErrCodeNotFound, "delete invitation code")
	}

	logger.FromContext(ctx, d.logger).Info("invitation code revoked",
		zap.String("code_id", codeID.String()),
		zap.String("revoked_by", requesterID.String()),
		zap.Int("used_count", code.UsedCount),
	)
	return nil
}

// Normalize canonicalizes user-typed codes.
func Normalize(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

func mapNotFound(err, notFound error, op string) error {
	if errors.Is(err, outbound.ErrRecordNotFound) {
		return notFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
