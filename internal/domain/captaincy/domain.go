// Package captaincy runs the captain promotion workflow. Players ask to
// captain a team and admins approve, or admins invite a player who accepts.
// The captain record is the authority; the user's role is synced from it.
package captaincy

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

const workflow = "captain_request"

var tracer = tracing.Tracer("domain/captaincy")

// Ledger is the part of the membership ledger the workflow needs.
type Ledger interface {
	FindPlayerByUser(ctx context.Context, userID uuid.UUID) (*model.Player, error)
	IsCaptain(ctx context.Context, userID uuid.UUID) (bool, error)
	IsTeamCaptain(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
	PromoteToCaptain(ctx context.Context, teamID, userID uuid.UUID) (*model.Captain, error)
	SyncRole(ctx context.Context, userID uuid.UUID) error
}

// Domain implements the captain promotion workflow.
type Domain struct {
	requestDB outbound.CaptainRequestDatabasePort
	playerDB  outbound.PlayerDatabasePort
	leagueDB  outbound.LeagueDatabasePort
	teamDB    outbound.TeamDatabasePort
	ledger    Ledger
	identity  outbound.IdentityPort
	txPort    outbound.TransactionPort
	publisher outbound.EventPublisherPort
	metrics   *metrics.Metrics
	logger    *zap.Logger
	now       func() time.Time
}

// NewDomain creates a new captaincy domain.
func NewDomain(
	requestDB outbound.CaptainRequestDatabasePort,
	playerDB outbound.PlayerDatabasePort,
	leagueDB outbound.LeagueDatabasePort,
	teamDB outbound.TeamDatabasePort,
	ledger Ledger,
	identity outbound.IdentityPort,
	txPort outbound.TransactionPort,
	publisher outbound.EventPublisherPort,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Domain {
	return &Domain{
		requestDB: requestDB,
		playerDB:  playerDB,
		leagueDB:  leagueDB,
		teamDB:    teamDB,
		ledger:    ledger,
		identity:  identity,
		txPort:    txPort,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
		now:       time.Now,
	}
}

// ========== Opening requests ==========

// RequestToBeCaptain files a self-request to captain a team of the league.
// Without an explicit player the requester's own profile is used.
func (d *Domain) RequestToBeCaptain(ctx context.Context, requesterID, leagueID uuid.UUID, in *inbound.RequestCaptaincyInput) (out *inbound.CaptainRequestOutput, err error) {
	ctx, span := tracer.Start(ctx, "captaincy.RequestToBeCaptain", trace.WithAttributes(
		attribute.String("league_id", leagueID.String()),
	))
	defer func() { tracing.End(span, err) }()

	if in == nil {
		return nil, ErrInvalidRequest
	}
	player, err := d.requesterPlayer(ctx, requesterID, in.PlayerID)
	if err != nil {
		return nil, err
	}
	team, err := d.findTeamInLeague(ctx, leagueID, in.TeamID)
	if err != nil {
		return nil, err
	}

	isCaptain, err := d.ledger.IsCaptain(ctx, player.UserID)
	if err != nil {
		return nil, err
	}
	if isCaptain {
		return nil, ErrAlreadyCaptain
	}
	if err := d.ensureNoPending(ctx, player.ID, leagueID); err != nil {
		return nil, err
	}

	request := &model.CaptainRequest{
		ID:        uuid.New(),
		PlayerID:  player.ID,
		TeamID:    team.ID,
		LeagueID:  leagueID,
		Status:    model.CaptainRequestStatusPending,
		Source:    model.CaptainRequestSourcePlayer,
		Message:   in.Message,
		CreatedAt: d.now(),
	}
	if err := d.create(ctx, request); err != nil {
		return nil, err
	}
	request.Player = player

	// League admins are resolved downstream from league_id.
	d.publish(ctx, events.CaptainRequestCreatedType, request, uuid.Nil, "")
	return toRequestOutput(request), nil
}

// SendCaptainRequest invites a player to captain a team. Only league admins may
// send invitations; the admin is recorded as the approver up front.
func (d *Domain) SendCaptainRequest(ctx context.Context, adminID, leagueID uuid.UUID, in *inbound.SendCaptaincyInput) (out *inbound.CaptainRequestOutput, err error) {
	ctx, span := tracer.Start(ctx, "captaincy.SendCaptainRequest", trace.WithAttributes(
		attribute.String("league_id", leagueID.String()),
	))
	defer func() { tracing.End(span, err) }()

	if in == nil {
		return nil, ErrInvalidRequest
	}
	if err := d.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}

	player, err := d.playerDB.FindByID(ctx, in.PlayerID)
	if err != nil {
		return nil, mapNotFound(err, ErrPlayerNotFound, "find player")
	}
	team, err := d.findTeamInLeague(ctx, leagueID, in.TeamID)
	if err != nil {
		return nil, err
	}

	captainsTeam, err := d.ledger.IsTeamCaptain(ctx, team.ID, player.UserID)
	if err != nil {
		return nil, err
	}
	if captainsTeam {
		return nil, ErrAlreadyCaptain
	}
	if err := d.ensureNoPending(ctx, player.ID, leagueID); err != nil {
		return nil, err
	}

	request := &model.CaptainRequest{
		ID:         uuid.New(),
		PlayerID:   player.ID,
		TeamID:     team.ID,
		LeagueID:   leagueID,
		Status:     model.CaptainRequestStatusPending,
		Source:     model.CaptainRequestSourceAdmin,
		Message:    in.Message,
		ApprovedBy: &adminID,
		CreatedAt:  d.now(),
	}
	if err := d.create(ctx, request); err != nil {
		return nil, err
	}
	request.Player = player

	d.publish(ctx, events.CaptainRequestCreatedType, request, player.UserID, "")
	return toRequestOutput(request), nil
}

// ========== Resolving requests ==========

// Approve promotes the player. A self-request needs a league admin; an admin
// invitation is accepted by the invited player (or approved by an admin).
// Approving for a user who already captains elsewhere reuses their captain record.
func (d *Domain) Approve(ctx context.Context, requestID, approverID uuid.UUID) (out *inbound.CaptainRequestOutput, err error) {
	ctx, span := tracer.Start(ctx, "captaincy.Approve", trace.WithAttributes(
		attribute.String("request_id", requestID.String()),
	))
	defer func() { tracing.End(span, err) }()

	request, player, err := d.pendingRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := d.authorizeResponse(ctx, request, player, approverID); err != nil {
		return nil, err
	}

	transition := outbound.CaptainRequestTransition{
		Status: model.CaptainRequestStatusApproved,
		At:     d.now(),
	}
	if request.Source == model.CaptainRequestSourcePlayer {
		transition.ApprovedBy = &approverID
	}

	err = d.txPort.RunInTransaction(ctx, func(txCtx context.Context) error {
		ok, err := d.requestDB.Transition(txCtx, requestID, transition)
		if err != nil {
			return fmt.Errorf("approve captain request: %w", err)
		}
		if !ok {
			return ErrRequestNotPending
		}
		if _, err := d.ledger.PromoteToCaptain(txCtx, request.TeamID, player.UserID); err != nil {
			return err
		}
		return d.ledger.SyncRole(txCtx, player.UserID)
	})
	if err != nil {
		return nil, err
	}

	approved, err := d.findRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	d.metrics.RecordTransition(workflow, "approved")
	logger.FromContext(ctx, d.logger).Info("captain request approved",
		zap.String("request_id", requestID.String()),
		zap.String("team_id", request.TeamID.String()),
		zap.String("user_id", player.UserID.String()),
		zap.String("approved_by", approverID.String()),
		zap.String("source", string(request.Source)),
	)
	d.publish(ctx, events.CaptainRequestApprovedType, approved, d.counterparty(approved, player, approverID), "")
	return toRequestOutput(approved), nil
}

// Reject closes a pending request with an optional reason. The same parties
// that may approve a request may reject it.
func (d *Domain) Reject(ctx context.Context, requestID, actorID uuid.UUID, reason string) (out *inbound.CaptainRequestOutput, err error) {
	ctx, span := tracer.Start(ctx, "captaincy.Reject", trace.WithAttributes(
		attribute.String("request_id", requestID.String()),
	))
	defer func() { tracing.End(span, err) }()

	request, player, err := d.pendingRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := d.authorizeResponse(ctx, request, player, actorID); err != nil {
		return nil, err
	}

	ok, err := d.requestDB.Transition(ctx, requestID, outbound.CaptainRequestTransition{
		Status:          model.CaptainRequestStatusRejected,
		RejectionReason: reason,
		At:              d.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("reject captain request: %w", err)
	}
	if !ok {
		return nil, ErrRequestNotPending
	}

	rejected, err := d.findRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	d.metrics.RecordTransition(workflow, "rejected")
	logger.FromContext(ctx, d.logger).Info("captain request rejected",
		zap.String("request_id", requestID.String()),
		zap.String("rejected_by", actorID.String()),
	)
	d.publish(ctx, events.CaptainRequestRejectedType, rejected, d.counterparty(rejected, player, actorID), reason)
	return toRequestOutput(rejected), nil
}

// ListPendingByLeague returns the admin review queue of a league, oldest first.
func (d *Domain) ListPendingByLeague(ctx context.Context, actorID, leagueID uuid.UUID, limit, offset int) ([]*inbound.CaptainRequestOutput, error) {
	if err := d.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if _, err := d.leagueDB.FindByID(ctx, leagueID); err != nil {
		return nil, mapNotFound(err, ErrLeagueNotFound, "find league")
	}

	requests, err := d.requestDB.ListPendingByLeague(ctx, leagueID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list captain requests: %w", err)
	}
	return toRequestOutputs(requests), nil
}

// ========== Helpers ==========

func (d *Domain) requesterPlayer(ctx context.Context, requesterID uuid.UUID, playerID *uuid.UUID) (*model.Player, error) {
	if playerID == nil {
		player, err := d.ledger.FindPlayerByUser(ctx, requesterID)
		if err != nil {
			return nil, err
		}
		if player == nil {
			return nil, ErrPlayerNotFound
		}
		return player, nil
	}

	player, err := d.playerDB.FindByID(ctx, *playerID)
	if err != nil {
		return nil, mapNotFound(err, ErrPlayerNotFound, "find player")
	}
	if player.UserID != requesterID {
		return nil, ErrNotPlayerOwner
	}
	return player, nil
}

func (d *Domain) findTeamInLeague(ctx context.Context, leagueID, teamID uuid.UUID) (*model.Team, error) {
	if _, err := d.leagueDB.FindByID(ctx, leagueID); err != nil {
		return nil, mapNotFound(err, ErrLeagueNotFound, "find league")
	}
	team, err := d.teamDB.FindByID(ctx, teamID)
	if err != nil {
		return nil, mapNotFound(err, ErrTeamNotFound, "find team")
	}
	if team.LeagueID != leagueID {
		return nil, ErrTeamNotInLeague
	}
	return team, nil
}

func (d *Domain) ensureNoPending(ctx context.Context, playerID, leagueID uuid.UUID) error {
	_, err := d.requestDB.FindPending(ctx, playerID, leagueID)
	if err == nil {
		return ErrDuplicatePending
	}
	if !errors.Is(err, outbound.ErrRecordNotFound) {
		return fmt.Errorf("find pending captain request: %w", err)
	}
	return nil
}

func (d *Domain) create(ctx context.Context, request *model.CaptainRequest) error {
	if err := d.requestDB.Create(ctx, request); err != nil {
		if outbound.IsDuplicateOn(err, outbound.ConstraintPendingCaptainRequest) {
			return ErrDuplicatePending
		}
		return fmt.Errorf("create captain request: %w", err)
	}

	d.metrics.RecordTransition(workflow, "created")
	logger.FromContext(ctx, d.logger).Info("captain request created",
		zap.String("request_id", request.ID.String()),
		zap.String("player_id", request.PlayerID.String()),
		zap.String("team_id", request.TeamID.String()),
		zap.String("source", string(request.Source)),
	)
	return nil
}

func (d *Domain) findRequest(ctx context.Context, requestID uuid.UUID) (*model.CaptainRequest, error) {
	request, err := d.requestDB.FindByID(ctx, requestID)
	if err != nil {
		return nil, mapNotFound(err, ErrRequestNotFound, "find captain request")
	}
	return request, nil
}

// pendingRequest loads a pending request together with its player.
func (d *Domain) pendingRequest(ctx context.Context, requestID uuid.UUID) (*model.CaptainRequest, *model.Player, error) {
	request, err := d.findRequest(ctx, requestID)
	if err != nil {
		return nil, nil, err
	}
	if !request.IsPending() {
		return nil, nil, ErrRequestNotPending
	}

	player := request.Player
	if player == nil {
		player, err = d.playerDB.FindByID(ctx, request.PlayerID)
		if err != nil {
			return nil, nil, mapNotFound(err, ErrPlayerNotFound, "find player")
		}
	}
	return request, player, nil
}

// authorizeResponse lets admins answer any request and the invited player
// answer an admin invitation.
func (d *Domain) authorizeResponse(ctx context.Context, request *model.CaptainRequest, player *model.Player, actorID uuid.UUID) error {
	if request.Source == model.CaptainRequestSourceAdmin && player.UserID == actorID {
		return nil
	}
	isAdmin, err := d.isAdmin(ctx, actorID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return ErrNotAllowed
	}
	return nil
}

// counterparty is the user who should hear about a response by actorID.
func (d *Domain) counterparty(request *model.CaptainRequest, player *model.Player, actorID uuid.UUID) uuid.UUID {
	if actorID == player.UserID && request.ApprovedBy != nil {
		return *request.ApprovedBy
	}
	return player.UserID
}

func (d *Domain) requireAdmin(ctx context.Context, userID uuid.UUID) error {
	isAdmin, err := d.isAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return ErrAdminRequired
	}
	return nil
}

func (d *Domain) isAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := d.identity.ResolveUser(ctx, userID)
	if errors.Is(err, outbound.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("resolve user: %w", err)
	}
	return user.IsAdmin(), nil
}

func (d *Domain) publish(ctx context.Context, eventType string, r *model.CaptainRequest, recipient uuid.UUID, reason string) {
	evt := events.NewCaptainRequestEvent(eventType, r.ID, recipient, r.PlayerID, r.TeamID, r.LeagueID, string(r.Source))
	evt.Reason = reason
	d.publisher.Publish(ctx, evt)
}

func mapNotFound(err, notFound error, op string) error {
	if errors.Is(err, outbound.ErrRecordNotFound) {
		return notFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
