package joinrequesthttp

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/leaguehub/server/internal/port/inbound"
	"github.com/leaguehub/server/internal/port/outbound"
	"github.com/leaguehub/server/internal/shared/response"
	apperrors "github.com/leaguehub/server/internal/utils/errors"
	"github.com/leaguehub/server/internal/utils/middleware"
	"github.com/leaguehub/server/internal/utils/pagination"
)

// Service is the join request workflow as seen by the handler.
type Service interface {
	ListRecruitingTeams(ctx context.Context, filter outbound.TeamFilter, limit, offset int) ([]*inbound.RecruitingTeamOutput, error)
	SetTeamRecruiting(ctx context.Context, teamID uuid.UUID, looking bool, userID uuid.UUID) (*inbound.TeamRecruitingOutput, error)
	RequestJoin(ctx context.Context, userID, teamID uuid.UUID, in *inbound.RequestJoinInput) (*inbound.JoinRequestOutput, error)
	ListPending(ctx context.Context, teamID, actorID uuid.UUID) ([]*inbound.JoinRequestOutput, error)
	ListMine(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*inbound.JoinRequestOutput, error)
	Approve(ctx context.Context, requestID, teamID, approverID uuid.UUID) (*inbound.ApproveJoinRequestOutput, error)
	Decline(ctx context.Context, requestID, actorID uuid.UUID) error
}

// Handler handles join request and recruitment HTTP requests.
type Handler struct {
	svc Service
}

// NewHandler creates a new join request handler.
func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers join request routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	teams := r.Group("/teams")
	teams.Use(authMiddleware)
	{
		teams.GET("/recruiting", h.ListRecruitingTeams)
		teams.PUT("/:team_id/recruiting", h.SetRecruiting)
		teams.POST("/:team_id/join-requests", h.RequestJoin)
		teams.GET("/:team_id/join-requests", h.ListPending)
		teams.POST("/:team_id/join-requests/:id/approve", h.Approve)
	}

	r.POST("/join-requests/:id/decline", authMiddleware, h.Decline)
	r.GET("/me/join-requests", authMiddleware, h.ListMine)
}

// ListRecruitingTeams handles GET /teams/recruiting.
func (h *Handler) ListRecruitingTeams(c *gin.Context) {
	var query inbound.RecruitingTeamsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BindError(c, err)
		return
	}
	page, ok := bindPage(c)
	if !ok {
		return
	}

	filter := outbound.TeamFilter{LeagueID: optionalUUID(query.LeagueID), SportID: optionalUUID(query.SportID)}
	out, err := h.svc.ListRecruitingTeams(c.Request.Context(), filter, page.Limit, page.Offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"teams": out, "limit": page.Limit, "offset": page.Offset})
}

// SetRecruiting handles PUT /teams/:team_id/recruiting.
func (h *Handler) SetRecruiting(c *gin.Context) {
	userID, ok := requireAuth(c)
	if !ok {
		return
	}
	teamID, ok := uuidParam(c, "team_id")
	if !ok {
		return
	}

	var in inbound.SetRecruitingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BindError(c, err)
		return
	}

	out, err := h.svc.SetTeamRecruiting(c.Request.Context(), teamID, *in.IsLookingForPlayers, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// RequestJoin handles POST /teams/:team_id/join-requests.
func (h *Handler) RequestJoin(c *gin.Context) {
	userID, ok := requireAuth(c)
	if !ok {
		return
	}
	teamID, ok := uuidParam(c, "team_id")
	if !ok {
		return
	}

	// The body is optional.
	var in inbound.RequestJoinInput
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&in); err != nil {
			response.BindError(c, err)
			return
		}
	}

	out, err := h.svc.RequestJoin(c.Request.Context(), userID, teamID, &in)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// ListPending handles GET /teams/:team_id/join-requests.
func (h *Handler) ListPending(c *gin.Context) {
	userID, ok := requireAuth(c)
	if !ok {
		return
	}
	teamID, ok := uuidParam(c, "team_id")
	if !ok {
		return
	}

	out, err := h.svc.ListPending(c.Request.Context(), teamID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": out})
}

// Approve handles POST /teams/:team_id/join-requests/:id/approve.
func (h *Handler) Approve(c *gin.Context) {
	userID, ok := requireAuth(c)
	if !ok {
		return
	}
	teamID, ok := uuidParam(c, "team_id")
	if !ok {
		return
	}
	requestID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	out, err := h.svc.Approve(c.Request.Context(), requestID, teamID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Decline handles POST /join-requests/:id/decline.
func (h *Handler) Decline(c *gin.Context) {
	userID, ok := requireAuth(c)
	if !ok {
		return
	}
	requestID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Decline(c.Request.Context(), requestID, userID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListMine handles GET /me/join-requests.
func (h *Handler) ListMine(c *gin.Context) {
	userID, ok := requireAuth(c)
	if !ok {
		return
	}
	page, ok := bindPage(c)
	if !ok {
		return
	}

	out, err := h.svc.ListMine(c.Request.Context(), userID, page.Limit, page.Offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": out, "limit": page.Limit, "offset": page.Offset})
}

func requireAuth(c *gin.Context) (uuid.UUID, bool) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		response.Unauthorized(c, "")
		return uuid.Nil, false
	}
	return userID, true
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, apperrors.BadRequest("invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

// optionalUUID parses a value already checked by the uuid binding tag.
func optionalUUID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id := uuid.MustParse(s)
	return &id
}

func bindPage(c *gin.Context) (*pagination.Pagination, bool) {
	page := pagination.New()
	if err := c.ShouldBindQuery(page); err != nil {
		response.BindError(c, err)
		return nil, false
	}
	return page.Normalize(), true
}

// Compile-time check
var _ inbound.JoinRequestHttpPort = (*Handler)(nil)
