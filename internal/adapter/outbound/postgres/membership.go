package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/leaguehub/server/internal/model"
)

// ========== Player Adapter ==========

// PlayerAdapter implements PlayerDatabasePort.
type PlayerAdapter struct {
	db *gorm.DB
}

// NewPlayerAdapter creates a new player adapter.
func NewPlayerAdapter(db *gorm.DB) *PlayerAdapter {
	return &PlayerAdapter{db: db}
}

func (a *PlayerAdapter) EnsureForUser(ctx context.Context, userID uuid.UUID) (*model.Player, error) {
	player := &model.Player{ID: uuid.New(), UserID: userID, CreatedAt: time.Now()}
	err := conn(ctx, a.db).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(player).Error
	if err != nil {
		return nil, translate(err)
	}
	return a.FindByUser(ctx, userID)
}

func (a *PlayerAdapter) FindByID(ctx context.Context, id uuid.UUID) (*model.Player, error) {
	var player model.Player
	if err := conn(ctx, a.db).Where("id = ?", id).First(&player).Error; err != nil {
		return nil, translate(err)
	}
	return &player, nil
}

func (a *PlayerAdapter) FindByUser(ctx context.Context, userID uuid.UUID) (*model.Player, error) {
	var player model.Player
	if err := conn(ctx, a.db).Where("user_id = ?", userID).First(&player).Error; err != nil {
		return nil, translate(err)
	}
	return &player, nil
}

// ========== Captain Adapter ==========

// CaptainAdapter implements CaptainDatabasePort.
type CaptainAdapter struct {
	db *gorm.DB
}

// NewCaptainAdapter creates a new captain adapter.
func NewCaptainAdapter(db *gorm.DB) *CaptainAdapter {
	return &CaptainAdapter{db: db}
}

func (a *CaptainAdapter) EnsureForUser(ctx context.Context, userID uuid.UUID) (*model.Captain, bool, error) {
	captain := &model.Captain{ID: uuid.New(), UserID: userID, CreatedAt: time.Now()}
	result := conn(ctx, a.db).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(captain)
	if result.Error != nil {
		return nil, false, translate(result.Error)
	}

	existing, err := a.FindByUser(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	return existing, result.RowsAffected == 1, nil
}

func (a *CaptainAdapter) FindByUser(ctx context.Context, userID uuid.UUID) (*model.Captain, error) {
	var captain model.Captain
	if err := conn(ctx, a.db).Where("user_id = ?", userID).First(&captain).Error; err != nil {
		return nil, translate(err)
	}
	return &captain, nil
}

// ========== League Member Adapter ==========

// LeagueMemberAdapter implements LeagueMemberDatabasePort.
type LeagueMemberAdapter struct {
	db *gorm.DB
}

// NewLeagueMemberAdapter creates a new league member adapter.
func NewLeagueMemberAdapter(db *gorm.DB) *LeagueMemberAdapter {
	return &LeagueMemberAdapter{db: db}
}

func (a *LeagueMemberAdapter) Ensure(ctx context.Context, leagueID, userID uuid.UUID) error {
	member := &model.LeagueMember{ID: uuid.New(), LeagueID: leagueID, UserID: userID, JoinedAt: time.Now()}
	err := conn(ctx, a.db).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "league_id"}, {Name: "user_id"}}, DoNothing: true}).
		Create(member).Error
	return translate(err)
}

func (a *LeagueMemberAdapter) Exists(ctx context.Context, leagueID, userID uuid.UUID) (bool, error) {
	var count int64
	err := conn(ctx, a.db).
		Model(&model.LeagueMember{}).
		Where("league_id = ? AND user_id = ?", leagueID, userID).
		Count(&count).Error
	return count > 0, err
}

// ========== Team Player Adapter ==========

// TeamPlayerAdapter implements TeamPlayerDatabasePort.
type TeamPlayerAdapter struct {
	db *gorm.DB
}

// NewTeamPlayerAdapter creates a new team roster adapter.
func NewTeamPlayerAdapter(db *gorm.DB) *TeamPlayerAdapter {
	return &TeamPlayerAdapter{db: db}
}

func (a *TeamPlayerAdapter) Create(ctx context.Context, link *model.TeamPlayer) error {
	return translate(conn(ctx, a.db).Create(link).Error)
}

func (a *TeamPlayerAdapter) Exists(ctx context.Context, teamID, playerID uuid.UUID) (bool, error) {
	var count int64
	err := conn(ctx, a.db).
		Model(&model.TeamPlayer{}).
		Where("team_id = ? AND player_id = ?", teamID, playerID).
		Count(&count).Error
	return count > 0, err
}

// ========== Team Captain Adapter ==========

// TeamCaptainAdapter implements TeamCaptainDatabasePort.
type TeamCaptainAdapter struct {
	db *gorm.DB
}

// NewTeamCaptainAdapter creates a new team leadership adapter.
func NewTeamCaptainAdapter(db *gorm.DB) *TeamCaptainAdapter {
	return &TeamCaptainAdapter{db: db}
}

func (a *TeamCaptainAdapter) Ensure(ctx context.Context, teamID, captainID uuid.UUID) error {
	link := &model.TeamCaptain{ID: uuid.New(), TeamID: teamID, CaptainID: captainID, CreatedAt: time.Now()}
	err := conn(ctx, a.db).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "team_id"}, {Name: "captain_id"}}, DoNothing: true}).
		Create(link).Error
	return translate(err)
}

func (a *TeamCaptainAdapter) ExistsForUser(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	var count int64
	err := conn(ctx, a.db).
		Model(&model.TeamCaptain{}).
		Joins("JOIN captains ON captains.id = team_captains.captain_id").
		Where("team_captains.team_id = ? AND captains.user_id = ?", teamID, userID).
		Count(&count).Error
	return count > 0, err
}
