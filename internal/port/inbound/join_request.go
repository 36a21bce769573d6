package inbound

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/leaguehub/server/internal/model"
)

// --- Request/Response Types ---

// RequestJoinInput represents a request to join a team.
type RequestJoinInput struct {
	Message string `json:"message" binding:"max=500"`
}

// SetRecruitingInput represents a recruitment flag update.
type SetRecruitingInput struct {
	IsLookingForPlayers *bool `json:"is_looking_for_players" binding:"required"`
}

// RecruitingTeamsQuery filters recruiting team discovery.
type RecruitingTeamsQuery struct {
	LeagueID string `form:"league_id" binding:"omitempty,uuid"`
	SportID  string `form:"sport_id" binding:"omitempty,uuid"`
}

// JoinRequestOutput represents a join request in API responses.
type JoinRequestOutput struct {
	ID          uuid.UUID               `json:"id"`
	UserID      uuid.UUID               `json:"user_id"`
	UserName    string                  `json:"user_name,omitempty"`
	UserEmail   string                  `json:"user_email,omitempty"`
	TeamID      uuid.UUID               `json:"team_id"`
	TeamName    string                  `json:"team_name,omitempty"`
	Message     string                  `json:"message,omitempty"`
	Status      model.JoinRequestStatus `json:"status"`
	RequestedAt time.Time               `json:"requested_at"`
	RespondedAt *time.Time              `json:"responded_at,omitempty"`
}

// ApproveJoinRequestOutput is returned after a join request is approved.
type ApproveJoinRequestOutput struct {
	TeamID   uuid.UUID `json:"team_id"`
	LeagueID uuid.UUID `json:"league_id"`
	UserID   uuid.UUID `json:"user_id"`
}

// TeamRecruitingOutput is returned after a recruitment flag update.
type TeamRecruitingOutput struct {
	TeamID              uuid.UUID `json:"team_id"`
	TeamName            string    `json:"team_name"`
	IsLookingForPlayers bool      `json:"is_looking_for_players"`
}

// RecruitingTeamOutput represents a team open for recruitment.
type RecruitingTeamOutput struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	SportID          uuid.UUID  `json:"sport_id"`
	LeagueID         uuid.UUID  `json:"league_id"`
	DivisionID       *uuid.UUID `json:"division_id,omitempty"`
	MinPlayersNeeded int        `json:"min_players_needed"`
}

// JoinRequestHttpPort defines HTTP handler interface for the join request workflow.
type JoinRequestHttpPort interface {
	// ListRecruitingTeams handles GET /teams/recruiting
	ListRecruitingTeams(c *gin.Context)

	// RequestJoin handles POST /teams/:team_id/join-requests
	RequestJoin(c *gin.Context)

	// ListPending handles GET /teams/:team_id/join-requests
	ListPending(c *gin.Context)

	// Approve handles POST /teams/:team_id/join-requests/:id/approve
	Approve(c *gin.Context)

	// Decline handles POST /join-requests/:id/decline
	Decline(c *gin.Context)

	// ListMine handles GET /me/join-requests
	ListMine(c *gin.Context)

	// SetRecruiting handles PUT /teams/:team_id/recruiting
	SetRecruiting(c *gin.Context)
}
