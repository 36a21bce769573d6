package outbound

import (
	"context"

	"github.com/google/uuid"

	"github.com/leaguehub/server/internal/model"
)

// IdentityPort is the identity store owned by the surrounding application.
type IdentityPort interface {
	// ResolveUser retrieves a user profile.
	ResolveUser(ctx context.Context, userID uuid.UUID) (*model.User, error)

	// SetCurrentOrganization records the league the user is currently acting in.
	SetCurrentOrganization(ctx context.Context, userID, organizationID uuid.UUID) error

	// SetRole updates the cached role of a user.
	SetRole(ctx context.Context, userID uuid.UUID, role model.UserRole) error
}
