package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/leaguehub/server/internal/model"
)

// JoinRequestAdapter implements TeamJoinRequestDatabasePort.
type JoinRequestAdapter struct {
	db *gorm.DB
}

// NewJoinRequestAdapter creates a new join request adapter.
func NewJoinRequestAdapter(db *gorm.DB) *JoinRequestAdapter {
	return &JoinRequestAdapter{db: db}
}

func (a *JoinRequestAdapter) Create(ctx context.Context, request *model.TeamJoinRequest) error {
	return translate(conn(ctx, a.db).Omit(clause.Associations).Create(request).Error)
}

func (a *JoinRequestAdapter) FindByID(ctx context.Context, id uuid.UUID) (*model.TeamJoinRequest, error) {
	var request model.TeamJoinRequest
	err := a.withRelations(ctx).Where("id = ?", id).First(&request).Error
	if err != nil {
		return nil, translate(err)
	}
	return &request, nil
}

func (a *JoinRequestAdapter) FindPending(ctx context.Context, userID, teamID uuid.UUID) (*model.TeamJoinRequest, error) {
	var request model.TeamJoinRequest
	err := a.withRelations(ctx).
		Where("user_id = ? AND team_id = ? AND status = ?", userID, teamID, model.JoinRequestStatusPending).
		First(&request).Error
	if err != nil {
		return nil, translate(err)
	}
	return &request, nil
}

func (a *JoinRequestAdapter) CountCreatedSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	var count int64
	err := conn(ctx, a.db).
		Model(&model.TeamJoinRequest{}).
		Where("user_id = ? AND requested_at >= ?", userID, since).
		Count(&count).Error
	return int(count), err
}

func (a *JoinRequestAdapter) ListPendingByTeam(ctx context.Context, teamID uuid.UUID, notBefore time.Time) ([]*model.TeamJoinRequest, error) {
	var requests []*model.TeamJoinRequest
	err := a.withRelations(ctx).
		Where("team_id = ? AND status = ? AND requested_at >= ?", teamID, model.JoinRequestStatusPending, notBefore).
		Order("requested_at ASC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (a *JoinRequestAdapter) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.TeamJoinRequest, error) {
	if limit <= 0 {
		limit = 20
	}

	var requests []*model.TeamJoinRequest
	err := a.withRelations(ctx).
		Where("user_id = ?", userID).
		Order("requested_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// Transition only touches pending rows, so of two concurrent transitions at most one applies.
func (a *JoinRequestAdapter) Transition(ctx context.Context, id uuid.UUID, status model.JoinRequestStatus, at time.Time) (bool, error) {
	result := conn(ctx, a.db).
		Model(&model.TeamJoinRequest{}).
		Where("id = ? AND status = ?", id, model.JoinRequestStatusPending).
		Updates(map[string]any{"status": status, "responded_at": at})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (a *JoinRequestAdapter) DeclineStale(ctx context.Context, cutoff, at time.Time) ([]*model.TeamJoinRequest, error) {
	var declined []*model.TeamJoinRequest
	err := conn(ctx, a.db).
		Model(&declined).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "id"}}}).
		Where("status = ? AND requested_at < ?", model.JoinRequestStatusPending, cutoff).
		Updates(map[string]any{"status": model.JoinRequestStatusDeclined, "responded_at": at}).Error
	if err != nil {
		return nil, err
	}
	if len(declined) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(declined))
	for _, r := range declined {
		ids = append(ids, r.ID)
	}

	var requests []*model.TeamJoinRequest
	err = a.withRelations(ctx).
		Where("id IN ?", ids).
		Order("requested_at ASC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (a *JoinRequestAdapter) withRelations(ctx context.Context) *gorm.DB {
	return conn(ctx, a.db).Preload("Team").Preload("User")
}
