package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/leaguehub/server/internal/model"
	"github.com/leaguehub/server/internal/port/outbound"
)

// CaptainRequestAdapter implements CaptainRequestDatabasePort.
type CaptainRequestAdapter struct {
	db *gorm.DB
}

// NewCaptainRequestAdapter creates a new captain request adapter.
func NewCaptainRequestAdapter(db *gorm.DB) *CaptainRequestAdapter {
	return &CaptainRequestAdapter{db: db}
}

func (a *CaptainRequestAdapter) Create(ctx context.Context, request *model.CaptainRequest) error {
	return translate(conn(ctx, a.db).Omit(clause.Associations).Create(request).Error)
}

func (a *CaptainRequestAdapter) FindByID(ctx context.Context, id uuid.UUID) (*model.CaptainRequest, error) {
	var request model.CaptainRequest
	err := conn(ctx, a.db).Preload("Player").Where("id = ?", id).First(&request).Error
	if err != nil {
		return nil, translate(err)
	}
	return &request, nil
}

func (a *CaptainRequestAdapter) FindPending(ctx context.Context, playerID, leagueID uuid.UUID) (*model.CaptainRequest, error) {
	var request model.CaptainRequest
	err := conn(ctx, a.db).
		Preload("Player").
		Where("player_id = ? AND league_id = ? AND status = ?", playerID, leagueID, model.CaptainRequestStatusPending).
		First(&request).Error
	if err != nil {
		return nil, translate(err)
	}
	return &request, nil
}

func (a *CaptainRequestAdapter) ListPendingByLeague(ctx context.Context, leagueID uuid.UUID, limit, offset int) ([]*model.CaptainRequest, error) {
	if limit <= 0 {
		limit = 20
	}

	var requests []*model.CaptainRequest
	err := conn(ctx, a.db).
		Preload("Player").
		Where("league_id = ? AND status = ?", leagueID, model.CaptainRequestStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (a *CaptainRequestAdapter) Transition(ctx context.Context, id uuid.UUID, t outbound.CaptainRequestTransition) (bool, error) {
	fields := map[string]any{
		"status":       t.Status,
		"responded_at": t.At,
	}
	if t.ApprovedBy != nil {
		fields["approved_by"] = *t.ApprovedBy
	}
	if t.RejectionReason != "" {
		fields["rejection_reason"] = t.RejectionReason
	}

	result := conn(ctx, a.db).
		Model(&model.CaptainRequest{}).
		Where("id = ? AND status = ?", id, model.CaptainRequestStatusPending).
		Updates(fields)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// Compile-time interface checks
var (
	_ outbound.LeagueDatabasePort          = (*LeagueAdapter)(nil)
	_ outbound.SportDatabasePort           = (*SportAdapter)(nil)
	_ outbound.TeamDatabasePort            = (*LeagueTeamAdapter)(nil)
	_ outbound.IdentityPort                = (*IdentityAdapter)(nil)
	_ outbound.PlayerDatabasePort          = (*PlayerAdapter)(nil)
	_ outbound.CaptainDatabasePort         = (*CaptainAdapter)(nil)
	_ outbound.LeagueMemberDatabasePort    = (*LeagueMemberAdapter)(nil)
	_ outbound.TeamPlayerDatabasePort      = (*TeamPlayerAdapter)(nil)
	_ outbound.TeamCaptainDatabasePort     = (*TeamCaptainAdapter)(nil)
	_ outbound.InvitationCodeDatabasePort  = (*InvitationCodeAdapter)(nil)
	_ outbound.TeamJoinRequestDatabasePort = (*JoinRequestAdapter)(nil)
	_ outbound.CaptainRequestDatabasePort  = (*CaptainRequestAdapter)(nil)
)
