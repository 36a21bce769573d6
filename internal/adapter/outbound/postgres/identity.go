package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/leaguehub/server/internal/model"
	"github.com/leaguehub/server/internal/port/outbound"
)

// IdentityAdapter implements IdentityPort over the shared users table.
type IdentityAdapter struct {
	db *gorm.DB
}

// NewIdentityAdapter creates a new identity adapter.
func NewIdentityAdapter(db *gorm.DB) *IdentityAdapter {
	return &IdentityAdapter{db: db}
}

func (a *IdentityAdapter) ResolveUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	var u model.User
	if err := conn(ctx, a.db).Where("id = ?", userID).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (a *IdentityAdapter) SetCurrentOrganization(ctx context.Context, userID, organizationID uuid.UUID) error {
	return a.update(ctx, userID, map[string]any{"current_organization_id": organizationID})
}

func (a *IdentityAdapter) SetRole(ctx context.Context, userID uuid.UUID, role model.UserRole) error {
	return a.update(ctx, userID, map[string]any{"role": role})
}

func (a *IdentityAdapter) update(ctx context.Context, userID uuid.UUID, fields map[string]any) error {
	fields["updated_at"] = gorm.Expr("now()")
	result := conn(ctx, a.db).Model(&model.User{}).Where("id = ?", userID).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return outbound.ErrRecordNotFound
	}
	return nil
}
