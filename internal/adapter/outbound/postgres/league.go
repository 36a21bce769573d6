package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/leaguehub/server/internal/model"
	"github.com/leaguehub/server/internal/port/outbound"
)

// ========== League Adapter ==========

// LeagueAdapter implements LeagueDatabasePort.
type LeagueAdapter struct {
	db *gorm.DB
}

// NewLeagueAdapter creates a new league adapter.
func NewLeagueAdapter(db *gorm.DB) *LeagueAdapter {
	return &LeagueAdapter{db: db}
}

func (a *LeagueAdapter) FindByID(ctx context.Context, id uuid.UUID) (*model.League, error) {
	var league model.League
	if err := conn(ctx, a.db).Where("id = ?", id).First(&league).Error; err != nil {
		return nil, translate(err)
	}
	return &league, nil
}

// ========== Sport Adapter ==========

// SportAdapter implements SportDatabasePort.
type SportAdapter struct {
	db *gorm.DB
}

// NewSportAdapter creates a new sport adapter.
func NewSportAdapter(db *gorm.DB) *SportAdapter {
	return &SportAdapter{db: db}
}

func (a *SportAdapter) FindByID(ctx context.Context, id uuid.UUID) (*model.Sport, error) {
	var sport model.Sport
	if err := conn(ctx, a.db).Where("id = ?", id).First(&sport).Error; err != nil {
		return nil, translate(err)
	}
	return &sport, nil
}

// ========== Team Adapter ==========

// LeagueTeamAdapter implements TeamDatabasePort.
type LeagueTeamAdapter struct {
	db *gorm.DB
}

// NewLeagueTeamAdapter creates a new team adapter.
func NewLeagueTeamAdapter(db *gorm.DB) *LeagueTeamAdapter {
	return &LeagueTeamAdapter{db: db}
}

func (a *LeagueTeamAdapter) FindByID(ctx context.Context, id uuid.UUID) (*model.Team, error) {
	var team model.Team
	if err := conn(ctx, a.db).Where("id = ?", id).First(&team).Error; err != nil {
		return nil, translate(err)
	}
	return &team, nil
}

func (a *LeagueTeamAdapter) ListRecruiting(ctx context.Context, filter outbound.TeamFilter, limit, offset int) ([]*model.Team, error) {
	if limit <= 0 {
		limit = 20
	}

	query := conn(ctx, a.db).Where("is_looking_for_players = ?", true)
	if filter.LeagueID != nil {
		query = query.Where("league_id = ?", *filter.LeagueID)
	}
	if filter.SportID != nil {
		query = query.Where("sport_id = ?", *filter.SportID)
	}

	var teams []*model.Team
	err := query.
		Order("name ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

func (a *LeagueTeamAdapter) SetLookingForPlayers(ctx context.Context, id uuid.UUID, looking bool) error {
	result := conn(ctx, a.db).
		Model(&model.Team{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_looking_for_players": looking,
			"updated_at":             gorm.Expr("now()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return outbound.ErrRecordNotFound
	}
	return nil
}
