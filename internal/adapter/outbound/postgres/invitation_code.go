package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/leaguehub/server/internal/model"
	"github.com/leaguehub/server/internal/port/outbound"
)

// InvitationCodeAdapter implements InvitationCodeDatabasePort.
type InvitationCodeAdapter struct {
	db *gorm.DB
}

// NewInvitationCodeAdapter creates a new invitation code adapter.
func NewInvitationCodeAdapter(db *gorm.DB) *InvitationCodeAdapter {
	return &InvitationCodeAdapter{db: db}
}

func (a *InvitationCodeAdapter) Create(ctx context.Context, code *model.InvitationCode) error {
	return translate(conn(ctx, a.db).Omit("Redemptions").Create(code).Error)
}

func (a *InvitationCodeAdapter) FindByID(ctx context.Context, id uuid.UUID) (*model.InvitationCode, error) {
	var code model.InvitationCode
	err := conn(ctx, a.db).
		Preload("Redemptions", orderRedemptions).
		Where("id = ?", id).
		First(&code).Error
	if err != nil {
		return nil, translate(err)
	}
	return &code, nil
}

func (a *InvitationCodeAdapter) FindByCode(ctx context.Context, value string) (*model.InvitationCode, error) {
	var code model.InvitationCode
	err := conn(ctx, a.db).
		Preload("Redemptions", orderRedemptions).
		Where("code = ?", value).
		First(&code).Error
	if err != nil {
		return nil, translate(err)
	}
	return &code, nil
}

func (a *InvitationCodeAdapter) ListByOrganization(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*model.InvitationCode, error) {
	if limit <= 0 {
		limit = 20
	}

	var codes []*model.InvitationCode
	err := conn(ctx, a.db).
		Preload("Redemptions", orderRedemptions).
		Where("organization_id = ?", organizationID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&codes).Error
	if err != nil {
		return nil, err
	}
	return codes, nil
}

func (a *InvitationCodeAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, a.db).Where("id = ?", id).Delete(&model.InvitationCode{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return outbound.ErrRecordNotFound
	}
	return nil
}

// IncrementUsage consumes one use with a single conditional update, so
// concurrent redeemers never push used_count past usage_limit.
func (a *InvitationCodeAdapter) IncrementUsage(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	result := conn(ctx, a.db).
		Model(&model.InvitationCode{}).
		Where("id = ? AND used_count < usage_limit AND (expires_at IS NULL OR expires_at > ?)", id, now).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (a *InvitationCodeAdapter) AddRedemption(ctx context.Context, redemption *model.InvitationCodeRedemption) error {
	return translate(conn(ctx, a.db).Create(redemption).Error)
}

func orderRedemptions(db *gorm.DB) *gorm.DB {
	return db.Order("redeemed_at ASC")
}
