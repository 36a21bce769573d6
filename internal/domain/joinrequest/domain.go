// Package joinrequest runs team discovery, join requests and their approval,
// the recruitment toggle and the staleness sweep.
package joinrequest

import (
	"context"
	"errors"
	"fmt"
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
)

const workflow = "join_request"

var tracer = tracing.Tracer("domain/joinrequest")

// Ledger is the part of the membership ledger the workflow needs.
type Ledger interface {
	JoinTeam(ctx context.Context, team *model.Team, userID uuid.UUID) (*model.Player, error)
	IsUserOnTeam(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
	IsTeamCaptain(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
	AuthorizeTeamManager(ctx context.Context, teamID, userID uuid.UUID) error
}

// Domain implements the join request workflow.
type Domain struct {
	requestDB outbound.TeamJoinRequestDatabasePort
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

// NewDomain creates a new join request domain.
func NewDomain(
	requestDB outbound.TeamJoinRequestDatabasePort,
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
		logger.Warn("invalid join request config, using defaults", zap.Error(err))
		cfg = DefaultConfig()
	}

	return &Domain{
		requestDB: requestDB,
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

// Config returns the active configuration.
func (d *Domain) Config() *Config {
	return d.cfg
}

// ========== Discovery ==========

// ListRecruitingTeams lists teams open for recruitment.
func (d *Domain) ListRecruitingTeams(ctx context.Context, filter outbound.TeamFilter, limit, offset int) ([]*inbound.RecruitingTeamOutput, error) {
	teams, err := d.teamDB.ListRecruiting(ctx, filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list recruiting teams: %w", err)
	}
	return toRecruitingTeamOutputs(teams), nil
}

// SetTeamRecruiting opens or closes a team for recruitment. Only captains of the team may do so.
func (d *Domain) SetTeamRecruiting(ctx context.Context, teamID uuid.UUID, looking bool, userID uuid.UUID) (*inbound.TeamRecruitingOutput, error) {
	team, err := d.findTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	isCaptain, err := d.ledger.IsTeamCaptain(ctx, teamID, userID)
	if err != nil {
		return nil, err
	}
	if !isCaptain {
		return nil, ErrNotTeamCaptain
	}

	if err := d.teamDB.SetLookingForPlayers(ctx, teamID, looking); err != nil {
		if errors.Is(err, outbound.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("update team: %w", err)
	}

	logger.FromContext(ctx, d.logger).Info("team recruitment updated",
		zap.String("team_id", teamID.String()),
		zap.String("user_id", userID.String()),
		zap.Bool("is_looking_for_players", looking),
	)

	return &inbound.TeamRecruitingOutput{
		TeamID:              team.ID,
		TeamName:            team.Name,
		IsLookingForPlayers: looking,
	}, nil
}

// ========== Requests ==========

// RequestJoin files a pending request for the user to join the team.
func (d *Domain) RequestJoin(ctx context.Context, userID, teamID uuid.UUID, in *inbound.RequestJoinInput) (out *inbound.JoinRequestOutput, err error) {
	ctx, span := tracer.Start(ctx, "joinrequest.RequestJoin", trace.WithAttributes(
		attribute.String("team_id", teamID.String()),
	))
	defer func() { tracing.End(span, err) }()

	user, err := d.identity.ResolveUser(ctx, userID)
	if err != nil {
		if errors.Is(err, outbound.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	team, err := d.findTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	onTeam, err := d.ledger.IsUserOnTeam(ctx, teamID, userID)
	if err != nil {
		return nil, err
	}
	if onTeam {
		return nil, ErrAlreadyMember
	}

	if _, err := d.requestDB.FindPending(ctx, userID, teamID); err == nil {
		return nil, ErrDuplicatePending
	} else if !errors.Is(err, outbound.ErrRecordNotFound) {
		return nil, fmt.Errorf("find pending request: %w", err)
	}

	now := d.now()
	count, err := d.requestDB.CountCreatedSince(ctx, userID, now.Add(-d.cfg.RateLimitWindow))
	if err != nil {
		return nil, fmt.Errorf("count recent requests: %w", err)
	}
	if count >= d.cfg.RateLimitCount {
		logger.FromContext(ctx, d.logger).Info("join request rate limited",
			zap.String("user_id", userID.String()),
			zap.Int("count", count),
		)
		return nil, NewRateLimitError(count, d.cfg.RateLimitCount, d.cfg.RateLimitWindow)
	}

	message := ""
	if in != nil {
		message = in.Message
	}
	request := &model.TeamJoinRequest{
		ID:          uuid.New(),
		UserID:      userID,
		TeamID:      teamID,
		Message:     message,
		Status:      model.JoinRequestStatusPending,
		RequestedAt: now,
	}
	if err := d.requestDB.Create(ctx, request); err != nil {
		if outbound.IsDuplicateOn(err, outbound.ConstraintPendingJoinRequest) {
			return nil, ErrDuplicatePending
		}
		return nil, fmt.Errorf("create join request: %w", err)
	}
	request.Team = team
	request.User = user

	d.metrics.RecordTransition(workflow, "created")
	logger.FromContext(ctx, d.logger).Info("join request created",
		zap.String("request_id", request.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("team_id", teamID.String()),
	)
	// Team managers are resolved downstream from team_id.
	d.publisher.Publish(ctx, events.NewJoinRequestEvent(
		events.JoinRequestCreatedType, request.ID, uuid.Nil, userID, teamID, team.Name,
	))

	return toJoinRequestOutput(request), nil
}

// ListPending lists the team's pending requests that are not yet stale, oldest first.
// Only team captains and league admins may list. The listing never changes state.
func (d *Domain) ListPending(ctx context.Context, teamID, actorID uuid.UUID) ([]*inbound.JoinRequestOutput, error) {
	if _, err := d.findTeam(ctx, teamID); err != nil {
		return nil, err
	}
	if err := d.ledger.AuthorizeTeamManager(ctx, teamID, actorID); err != nil {
		return nil, err
	}

	requests, err := d.requestDB.ListPendingByTeam(ctx, teamID, d.now().Add(-d.cfg.StaleAfter))
	if err != nil {
		return nil, fmt.Errorf("list pending requests: %w", err)
	}
	return toJoinRequestOutputs(requests), nil
}

// ListMine lists the user's own requests, newest first.
func (d *Domain) ListMine(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*inbound.JoinRequestOutput, error) {
	requests, err := d.requestDB.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list user requests: %w", err)
	}
	return toJoinRequestOutputs(requests), nil
}

// ========== Transitions ==========

// Approve accepts a pending request and puts the requester on the team.
// The request must belong to teamID.
func (d *Domain) Approve(ctx context.Context, requestID, teamID, approverID uuid.UUID) (out *inbound.ApproveJoinRequestOutput, err error) {
	ctx, span := tracer.Start(ctx, "joinrequest.Approve", trace.WithAttributes(
		attribute.String("request_id", requestID.String()),
	))
	defer func() { tracing.End(span, err) }()

	request, err := d.findRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.TeamID != teamID {
		return nil, ErrRequestNotFound
	}
	team, err := d.findTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if err := d.ledger.AuthorizeTeamManager(ctx, teamID, approverID); err != nil {
		return nil, err
	}

	now := d.now()
	if !request.IsPending() || request.IsStaleAt(now, d.cfg.StaleAfter) {
		return nil, ErrRequestNotPending
	}

	err = d.txPort.RunInTransaction(ctx, func(txCtx context.Context) error {
		ok, err := d.requestDB.Transition(txCtx, requestID, model.JoinRequestStatusApproved, now)
		if err != nil {
			return fmt.Errorf("approve request: %w", err)
		}
		if !ok {
			return ErrRequestNotPending
		}

		if _, err := d.ledger.JoinTeam(txCtx, team, request.UserID); err != nil {
			return err
		}

		if err := d.identity.SetCurrentOrganization(txCtx, request.UserID, team.LeagueID); err != nil {
			return fmt.Errorf("set current organization: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	d.metrics.RecordTransition(workflow, "approved")
	logger.FromContext(ctx, d.logger).Info("join request approved",
		zap.String("request_id", requestID.String()),
		zap.String("team_id", teamID.String()),
		zap.String("user_id", request.UserID.String()),
		zap.String("approved_by", approverID.String()),
	)
	d.publisher.Publish(ctx, events.NewJoinRequestEvent(
		events.JoinRequestApprovedType, requestID, request.UserID, request.UserID, teamID, team.Name,
	))

	return &inbound.ApproveJoinRequestOutput{
		TeamID:   teamID,
		LeagueID: team.LeagueID,
		UserID:   request.UserID,
	}, nil
}

// Decline rejects a pending request. Membership is not touched.
func (d *Domain) Decline(ctx context.Context, requestID, actorID uuid.UUID) (err error) {
	ctx, span := tracer.Start(ctx, "joinrequest.Decline", trace.WithAttributes(
		attribute.String("request_id", requestID.String()),
	))
	defer func() { tracing.End(span, err) }()

	request, err := d.findRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if err := d.ledger.AuthorizeTeamManager(ctx, request.TeamID, actorID); err != nil {
		return err
	}
	if !request.IsPending() {
		return ErrRequestNotPending
	}

	ok, err := d.requestDB.Transition(ctx, requestID, model.JoinRequestStatusDeclined, d.now())
	if err != nil {
		return fmt.Errorf("decline request: %w", err)
	}
	if !ok {
		return ErrRequestNotPending
	}

	d.metrics.RecordTransition(workflow, "declined")
	logger.FromContext(ctx, d.logger).Info("join request declined",
		zap.String("request_id", requestID.String()),
		zap.String("team_id", request.TeamID.String()),
		zap.String("declined_by", actorID.String()),
	)

	teamName := ""
	if request.Team != nil {
		teamName = request.Team.Name
	}
	d.publisher.Publish(ctx, events.NewJoinRequestEvent(
		events.JoinRequestDeclinedType, requestID, request.UserID, request.UserID, request.TeamID, teamName,
	))
	return nil
}

// SweepStale declines every request that has been pending longer than the
// configured window. Running it again right away declines nothing.
func (d *Domain) SweepStale(ctx context.Context) (declinedCount int, err error) {
	ctx, span := tracer.Start(ctx, "joinrequest.SweepStale")
	defer func() { tracing.End(span, err) }()

	start := time.Now()
	now := d.now()
	declined, err := d.requestDB.DeclineStale(ctx, now.Add(-d.cfg.StaleAfter), now)
	if err != nil {
		return 0, fmt.Errorf("decline stale requests: %w", err)
	}
	d.metrics.RecordSweep(len(declined), time.Since(start))

	for _, r := range declined {
		teamName := ""
		if r.Team != nil {
			teamName = r.Team.Name
		}
		evt := events.NewJoinRequestEvent(events.JoinRequestDeclinedType, r.ID, r.UserID, r.UserID, r.TeamID, teamName)
		evt.Reason = "stale"
		d.publisher.Publish(ctx, evt)
	}

	if len(declined) > 0 {
		logger.FromContext(ctx, d.logger).Info("stale join requests declined", zap.Int("count", len(declined)))
	}
	return len(declined), nil
}

func (d *Domain) findTeam(ctx context.Context, teamID uuid.UUID) (*model.Team, error) {
	team, err := d.teamDB.FindByID(ctx, teamID)
	if errors.Is(err, outbound.ErrRecordNotFound) {
		return nil, ErrTeamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find team: %w", err)
	}
	return team, nil
}

func (d *Domain) findRequest(ctx context.Context, requestID uuid.UUID) (*model.TeamJoinRequest, error) {
	request, err := d.requestDB.FindByID(ctx, requestID)
	if errors.Is(err, outbound.ErrRecordNotFound) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find join request: %w", err)
	}
	return request, nil
}
