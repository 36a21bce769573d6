package inbound

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/leaguehub/server/internal/model"
)

// --- Request/Response Types ---

// RequestCaptaincyInput represents a player's request to captain a team.
// PlayerID defaults to the caller's own player profile.
type RequestCaptaincyInput struct {
	PlayerID *uuid.UUID `json:"player_id"`
	TeamID   uuid.UUID  `json:"team_id" binding:"required"`
	Message  string     `json:"message" binding:"max=500"`
}

// SendCaptaincyInput represents an admin invitation to captain a team.
type SendCaptaincyInput struct {
	PlayerID uuid.UUID `json:"player_id" binding:"required"`
	TeamID   uuid.UUID `json:"team_id" binding:"required"`
	Message  string    `json:"message" binding:"max=500"`
}

// RejectCaptaincyInput carries an optional rejection reason.
type RejectCaptaincyInput struct {
	Reason string `json:"reason" binding:"max=500"`
}

// CaptainRequestOutput represents a captain request in API responses.
type CaptainRequestOutput struct {
	ID              uuid.UUID                  `json:"id"`
	PlayerID        uuid.UUID                  `json:"player_id"`
	UserID          *uuid.UUID                 `json:"user_id,omitempty"`
	TeamID          uuid.UUID                  `json:"team_id"`
	LeagueID        uuid.UUID                  `json:"league_id"`
	Status          model.CaptainRequestStatus `json:"status"`
	Source          model.CaptainRequestSource `json:"source"`
	Message         string                     `json:"message,omitempty"`
	RejectionReason string                     `json:"rejection_reason,omitempty"`
	ApprovedBy      *uuid.UUID                 `json:"approved_by,omitempty"`
	CreatedAt       time.Time                  `json:"created_at"`
	RespondedAt     *time.Time                 `json:"responded_at,omitempty"`
}

// CaptainRequestHttpPort defines HTTP handler interface for the captain promotion workflow.
type CaptainRequestHttpPort interface {
	// RequestCaptaincy handles POST /leagues/:league_id/captain-requests
	RequestCaptaincy(c *gin.Context)

	// SendCaptaincy handles POST /leagues/:league_id/captain-requests/invite
	SendCaptaincy(c *gin.Context)

	// ListPending handles GET /leagues/:league_id/captain-requests
	ListPending(c *gin.Context)

	// Approve handles POST /captain-requests/:id/approve
	Approve(c *gin.Context)

	// Reject handles POST /captain-requests/:id/reject
	Reject(c *gin.Context)
}
