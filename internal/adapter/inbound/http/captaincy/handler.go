package captaincyhttp

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

// Service is the captain promotion workflow as seen by the handler.
type Service interface {
	RequestToBeCaptain(ctx context.Context, requesterID, leagueID uuid.UUID, in *inbound.RequestCaptaincyInput) (*inbound.CaptainRequestOutput, error)
	SendCaptainRequest(ctx context.Context, adminID, leagueID uuid.UUID, in *inbound.SendCaptaincyInput) (*inbound.CaptainRequestOutput, error)
	Approve(ctx context.Context, requestID, approverID uuid.UUID) (*inbound.CaptainRequestOutput, error)
	Reject(ctx context.Context, requestID, actorID uuid.UUID, reason string) (*inbound.CaptainRequestOutput, error)
	ListPendingByLeague(ctx context.Context, actorID, leagueID uuid.UUID, limit, offset int) ([]*inbound.CaptainRequestOutput, error)
}

// Handler handles captain request HTTP requests.
type Handler struct {
	svc Service
}

// NewHandler creates a new captain request handler.
func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers captain request routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	leagues := r.Group("/leagues/:league_id/captain-requests")
	leagues.Use(authMiddleware)
	{
		leagues.POST("", h.RequestCaptaincy)
		leagues.POST("/invite", h.SendCaptaincy)
		leagues.GET("", h.ListPending)
	}

	requests := r.Group("/captain-requests")
	requests.Use(authMiddleware)
	{
		requests.POST("/:id/approve", h.Approve)
		requests.POST("/:id/reject", h.Reject)
	}
}

// RequestCaptaincy handles POST /leagues/:league_id/captain-requests.
func (h *Handler) RequestCaptaincy(c *gin.Context) {
	userID, leagueID, ok := actorAndLeague(c)
	if !ok {
		return
	}

	var in inbound.RequestCaptaincyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BindError(c, err)
		return
	}

	out, err := h.svc.RequestToBeCaptain(c.Request.Context(), userID, leagueID, &in)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// SendCaptaincy handles POST /leagues/:league_id/captain-requests/invite.
func (h *Handler) SendCaptaincy(c *gin.Context) {
	userID, leagueID, ok := actorAndLeague(c)
	if !ok {
		return
	}

	var in inbound.SendCaptaincyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BindError(c, err)
		return
	}

	out, err := h.svc.SendCaptainRequest(c.Request.Context(), userID, leagueID, &in)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// ListPending handles GET /leagues/:league_id/captain-requests.
func (h *Handler) ListPending(c *gin.Context) {
	userID, leagueID, ok := actorAndLeague(c)
	if !ok {
		return
	}

	page := pagination.New()
	if err := c.ShouldBindQuery(page); err != nil {
		response.BindError(c, err)
		return
	}
	page.Normalize()

	out, err := h.svc.ListPendingByLeague(c.Request.Context(), userID, leagueID, page.Limit, page.Offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": out, "limit": page.Limit, "offset": page.Offset})
}

// Approve handles POST /captain-requests/:id/approve.
func (h *Handler) Approve(c *gin.Context) {
	userID, requestID, ok := actorAndRequest(c)
	if !ok {
		return
	}

	out, err := h.svc.Approve(c.Request.Context(), requestID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Reject handles POST /captain-requests/:id/reject.
func (h *Handler) Reject(c *gin.Context) {
	userID, requestID, ok := actorAndRequest(c)
	if !ok {
		return
	}

	var in inbound.RejectCaptaincyInput
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&in); err != nil {
			response.BindError(c, err)
			return
		}
	}

	out, err := h.svc.Reject(c.Request.Context(), requestID, userID, in.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func actorAndLeague(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	return actorAndParam(c, "league_id")
}

func actorAndRequest(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	return actorAndParam(c, "id")
}

func actorAndParam(c *gin.Context, name string) (uuid.UUID, uuid.UUID, bool) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		response.Unauthorized(c, "")
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, apperrors.BadRequest("invalid "+name))
		return uuid.Nil, uuid.Nil, false
	}
	return userID, id, true
}

// Compile-time check
var _ inbound.CaptainRequestHttpPort = (*Handler)(nil)
