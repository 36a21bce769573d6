package inbound

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/leaguehub/server/internal/model"
)

// --- Request/Response Types ---

// GenerateInvitationCodeInput represents a request to generate a code for a league.
type GenerateInvitationCodeInput struct {
	SportID    uuid.UUID  `json:"sport_id" binding:"required"`
	TeamID     *uuid.UUID `json:"team_id"`
	ExpiresAt  *time.Time `json:"expires_at"`
	UsageLimit int        `json:"usage_limit" binding:"omitempty,min=1,max=1000"`
}

// InvitationCodeURI binds the code path parameter.
type InvitationCodeURI struct {
	Code string `uri:"code" binding:"required,invitecode"`
}

// InvitationCodeOutput represents an invitation code in API responses.
type InvitationCodeOutput struct {
	ID             uuid.UUID                  `json:"id"`
	Code           string                     `json:"code"`
	OrganizationID uuid.UUID                  `json:"organization_id"`
	SportID        uuid.UUID                  `json:"sport_id"`
	TeamID         *uuid.UUID                 `json:"team_id,omitempty"`
	CreatedBy      uuid.UUID                  `json:"created_by"`
	ExpiresAt      *time.Time                 `json:"expires_at,omitempty"`
	UsageLimit     int                        `json:"usage_limit"`
	UsedCount      int                        `json:"used_count"`
	RemainingUses  int                        `json:"remaining_uses"`
	IsUsed         bool                       `json:"is_used"`
	Status         model.InvitationCodeStatus `json:"status"`
	UsedBy         []uuid.UUID                `json:"used_by,omitempty"`
	CreatedAt      time.Time                  `json:"created_at"`
}

// RedeemInvitationCodeOutput is returned after a successful redemption.
type RedeemInvitationCodeOutput struct {
	OrganizationID uuid.UUID  `json:"organization_id"`
	SportID        uuid.UUID  `json:"sport_id"`
	TeamID         *uuid.UUID `json:"team_id,omitempty"`
}

// InvitationCodeHttpPort defines HTTP handler interface for invitation code operations.
type InvitationCodeHttpPort interface {
	// GenerateCode handles POST /leagues/:league_id/invitation-codes
	GenerateCode(c *gin.Context)

	// ListCodes handles GET /leagues/:league_id/invitation-codes
	ListCodes(c *gin.Context)

	// GetCode handles GET /invitation-codes/:code
	GetCode(c *gin.Context)

	// RedeemCode handles POST /invitation-codes/:code/redeem
	RedeemCode(c *gin.Context)

	// RevokeCode handles DELETE /invitation-codes/:id
	RevokeCode(c *gin.Context)
}
