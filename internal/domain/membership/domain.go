// Package membership owns the ground truth of who is on what team.
// Every write here is expected to run inside the caller's transaction.
package membership

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/leaguehub/server/internal/model"
	"github.com/leaguehub/server/internal/port/outbound"
	"github.com/leaguehub/server/internal/shared/logger"
)

// Domain implements the membership ledger.
type Domain struct {
	playerDB       outbound.PlayerDatabasePort
	captainDB      outbound.CaptainDatabasePort
	leagueMemberDB outbound.LeagueMemberDatabasePort
	teamPlayerDB   outbound.TeamPlayerDatabasePort
	teamCaptainDB  outbound.TeamCaptainDatabasePort
	identity       outbound.IdentityPort
	logger         *zap.Logger
}

// NewDomain creates a new membership ledger.
func NewDomain(
	playerDB outbound.PlayerDatabasePort,
	captainDB outbound.CaptainDatabasePort,
	leagueMemberDB outbound.LeagueMemberDatabasePort,
	teamPlayerDB outbound.TeamPlayerDatabasePort,
	teamCaptainDB outbound.TeamCaptainDatabasePort,
	identity outbound.IdentityPort,
	logger *zap.Logger,
) *Domain {
	return &Domain{
		playerDB:       playerDB,
		captainDB:      captainDB,
		leagueMemberDB: leagueMemberDB,
		teamPlayerDB:   teamPlayerDB,
		teamCaptainDB:  teamCaptainDB,
		identity:       identity,
		logger:         logger,
	}
}

// EnsurePlayer returns the user's player profile, creating it on first use.
func (d *Domain) EnsurePlayer(ctx context.Context, userID uuid.UUID) (*model.Player, error) {
	player, err := d.playerDB.EnsureForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ensure player: %w", err)
	}
	return player, nil
}

// FindPlayerByUser returns the user's player profile, or nil if none exists.
func (d *Domain) FindPlayerByUser(ctx context.Context, userID uuid.UUID) (*model.Player, error) {
	player, err := d.playerDB.FindByUser(ctx, userID)
	if errors.Is(err, outbound.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find player: %w", err)
	}
	return player, nil
}

// IsUserOnTeam reports whether the user's player profile is on the team.
func (d *Domain) IsUserOnTeam(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	player, err := d.FindPlayerByUser(ctx, userID)
	if err != nil || player == nil {
		return false, err
	}
	onTeam, err := d.teamPlayerDB.Exists(ctx, teamID, player.ID)
	if err != nil {
		return false, fmt.Errorf("check team player: %w", err)
	}
	return onTeam, nil
}

// JoinLeague ensures the user has a player profile and belongs to the league.
func (d *Domain) JoinLeague(ctx context.Context, leagueID, userID uuid.UUID) (*model.Player, error) {
	player, err := d.EnsurePlayer(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := d.leagueMemberDB.Ensure(ctx, leagueID, userID); err != nil {
		return nil, fmt.Errorf("ensure league member: %w", err)
	}
	return player, nil
}

// JoinTeam puts the user on the team, creating the player profile and league
// membership as needed. A user already on the team gets ErrAlreadyMember.
func (d *Domain) JoinTeam(ctx context.Context, team *model.Team, userID uuid.UUID) (*model.Player, error) {
	player, err := d.JoinLeague(ctx, team.LeagueID, userID)
	if err != nil {
		return nil, err
	}

	link := &model.TeamPlayer{
		ID:       uuid.New(),
		TeamID:   team.ID,
		PlayerID: player.ID,
		JoinedAt: time.Now(),
	}
	if err := d.teamPlayerDB.Create(ctx, link); err != nil {
		if outbound.IsDuplicateOn(err, outbound.ConstraintTeamPlayer) {
			return nil, ErrAlreadyMember
		}
		return nil, fmt.Errorf("add team player: %w", err)
	}

	logger.FromContext(ctx, d.logger).Info("player joined team",
		zap.String("team_id", team.ID.String()),
		zap.String("player_id", player.ID.String()),
		zap.String("user_id", userID.String()),
	)
	return player, nil
}

// PromoteToCaptain makes the user a captain of the team.
// The captain record is shared across teams and never duplicated.
func (d *Domain) PromoteToCaptain(ctx context.Context, teamID, userID uuid.UUID) (*model.Captain, error) {
	captain, created, err := d.captainDB.EnsureForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ensure captain: %w", err)
	}
	if err := d.teamCaptainDB.Ensure(ctx, teamID, captain.ID); err != nil {
		return nil, fmt.Errorf("ensure team captain: %w", err)
	}

	logger.FromContext(ctx, d.logger).Info("captain promoted",
		zap.String("team_id", teamID.String()),
		zap.String("captain_id", captain.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Bool("new_captain", created),
	)
	return captain, nil
}

// IsCaptain reports whether the user holds a captain record.
func (d *Domain) IsCaptain(ctx context.Context, userID uuid.UUID) (bool, error) {
	_, err := d.captainDB.FindByUser(ctx, userID)
	if errors.Is(err, outbound.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find captain: %w", err)
	}
	return true, nil
}

// IsTeamCaptain reports whether the user is linked as a captain of the team.
func (d *Domain) IsTeamCaptain(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	ok, err := d.teamCaptainDB.ExistsForUser(ctx, teamID, userID)
	if err != nil {
		return false, fmt.Errorf("check team captain: %w", err)
	}
	return ok, nil
}

// SyncRole derives the cached identity role from the captain record.
// Admins keep their role.
func (d *Domain) SyncRole(ctx context.Context, userID uuid.UUID) error {
	user, err := d.identity.ResolveUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("resolve user: %w", err)
	}
	if user.IsAdmin() {
		return nil
	}

	isCaptain, err := d.IsCaptain(ctx, userID)
	if err != nil {
		return err
	}
	role := model.UserRolePlayer
	if isCaptain {
		role = model.UserRoleCaptain
	}
	if user.Role == role {
		return nil
	}
	if err := d.identity.SetRole(ctx, userID, role); err != nil {
		return fmt.Errorf("set role: %w", err)
	}
	return nil
}

// AuthorizeTeamManager allows team captains and league admins.
func (d *Domain) AuthorizeTeamManager(ctx context.Context, teamID, userID uuid.UUID) error {
	isCaptain, err := d.IsTeamCaptain(ctx, teamID, userID)
	if err != nil {
		return err
	}
	if isCaptain {
		return nil
	}

	user, err := d.identity.ResolveUser(ctx, userID)
	if errors.Is(err, outbound.ErrRecordNotFound) {
		return ErrNotTeamManager
	}
	if err != nil {
		return fmt.Errorf("resolve user: %w", err)
	}
	if !user.IsAdmin() {
		return ErrNotTeamManager
	}
	return nil
}
