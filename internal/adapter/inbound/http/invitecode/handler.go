package invitecodehttp

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/leaguehub/server/internal/port/inbound"
	"github.com/leaguehub/server/internal/shared/response"
	apperrors "github.com/leaguehub/server/internal/utils/errors"
	"github.com/leaguehub/server/internal/utils/middleware"
	"github.com/leaguehub/server/internal/utils/pagination"
)

// Service is the invitation code engine as seen by the handler.
type Service interface {
	Generate(ctx context.Context, creatorID, organizationID uuid.UUID, in *inbound.GenerateInvitationCodeInput) (*inbound.InvitationCodeOutput, error)
	Redeem(ctx context.Context, userID uuid.UUID, value string) (*inbound.RedeemInvitationCodeOutput, error)
	Get(ctx context.Context, value string) (*inbound.InvitationCodeOutput, error)
	List(ctx context.Context, requesterID, organizationID uuid.UUID, limit, offset int) ([]*inbound.InvitationCodeOutput, error)
	Revoke(ctx context.Context, requesterID, codeID uuid.UUID) error
}

// Handler handles invitation code HTTP requests.
type Handler struct {
	svc Service
}

// NewHandler creates a new invitation code handler.
func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers invitation code routes.
// The single :code wildcard serves both the code value and, on DELETE, the code ID,
// since the router requires one wildcard name per path segment.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	leagues := r.Group("/leagues/:league_id/invitation-codes")
	leagues.Use(authMiddleware)
	{
		leagues.POST("", h.GenerateCode)
		leagues.GET("", h.ListCodes)
	}

	codes := r.Group("/invitation-codes")
	codes.Use(authMiddleware)
	{
		codes.GET("/:code", h.GetCode)
		codes.POST("/:code/redeem", h.RedeemCode)
		codes.DELETE("/:code", h.RevokeCode)
	}
}

// GenerateCode handles POST /leagues/:league_id/invitation-codes.
func (h *Handler) GenerateCode(c *gin.Context) {
	userID, ok := requireAuth(c)
	if !ok {
		return
	}
	leagueID, ok := uuidParam(c, "league_id")
	if !ok {
		return
	}

	var in inbound.GenerateInvitationCodeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BindError(c, err)
		return
	}

	out, err := h.svc.Generate(c.Request.Context(), userID, leagueID, &in)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// ListCodes handles GET /leagues/:league_id/invitation-codes.
func (h *Handler) ListCodes(c *gin.Context) {
	userID, ok := requireAuth(c)
	if !ok {
		return
	}
	leagueID, ok := uuidParam(c, "league_id")
	if !ok {
		return
	}

	page := pagination.New()
	if err := c.ShouldBindQuery(page); err != nil {
		response.BindError(c, err)
		return
	}
	page.Normalize()

	out, err := h.svc.List(c.Request.Context(), userID, leagueID, page.Limit, page.Offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"codes": out, "limit": page.Limit, "offset": page.Offset})
}

// GetCode handles GET /invitation-codes/:code.
func (h *Handler) GetCode(c *gin.Context) {
	if _, ok := requireAuth(c); !ok {
		return
	}

	var uri inbound.InvitationCodeURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	out, err := h.svc.Get(c.Request.Context(), uri.Code)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// RedeemCode handles POST /invitation-codes/:code/redeem.
func (h *Handler) RedeemCode(c *gin.Context) {
	userID, ok := requireAuth(c)
	if !ok {
		return
	}

	var uri inbound.InvitationCodeURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	out, err := h.svc.Redeem(c.Request.Context(), userID, uri.Code)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// RevokeCode handles DELETE /invitation-codes/:id.
func (h *Handler) RevokeCode(c *gin.Context) {
	userID, ok := requireAuth(c)
	if !ok {
		return
	}
	codeID, ok := uuidParam(c, "code")
	if !ok {
		return
	}

	if err := h.svc.Revoke(c.Request.Context(), userID, codeID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
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

// Compile-time check
var _ inbound.InvitationCodeHttpPort = (*Handler)(nil)
