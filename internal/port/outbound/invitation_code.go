package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/leaguehub/server/internal/model"
)

// InvitationCodeDatabasePort defines invitation code persistence.
type InvitationCodeDatabasePort interface {
	// Create inserts a code. Returns a DuplicateError on a code collision.
	Create(ctx context.Context, code *model.InvitationCode) error

	// FindByID retrieves a code by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*model.InvitationCode, error)

	// FindByCode retrieves a code with its redemptions in redemption order.
	FindByCode(ctx context.Context, code string) (*model.InvitationCode, error)

	// ListByOrganization lists codes of an organization, newest first.
	ListByOrganization(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*model.InvitationCode, error)

	// Delete removes a code and its redemptions.
	Delete(ctx context.Context, id uuid.UUID) error

	// IncrementUsage atomically consumes one use if the code is unexpired
	// and below its limit at now. Returns false if no use was consumed.
	IncrementUsage(ctx context.Context, id uuid.UUID, now time.Time) (bool, error)

	// AddRedemption records a redemption. Returns a DuplicateError if the
	// user already redeemed the code.
	AddRedemption(ctx context.Context, redemption *model.InvitationCodeRedemption) error
}
