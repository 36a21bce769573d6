package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/leaguehub/server/internal/model"
	"github.com/leaguehub/server/internal/port/outbound"
)

// CaptainRequestStore implements outbound.CaptainRequestDatabasePort.
type CaptainRequestStore struct{ s *Store }

func (c *CaptainRequestStore) Create(ctx context.Context, request *model.CaptainRequest) error {
	defer c.s.lockWrite(ctx)()
	for _, r := range c.s.st.captainRequests {
		if r.PlayerID == request.PlayerID && r.LeagueID == request.LeagueID && r.IsPending() {
			return &outbound.DuplicateError{Constraint: outbound.ConstraintPendingCaptainRequest}
		}
	}
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	if request.CreatedAt.IsZero() {
		request.CreatedAt = nowUTC()
	}
	stored := *request
	stored.Player = nil
	c.s.st.captainRequests[request.ID] = stored
	return nil
}

func (c *CaptainRequestStore) FindByID(ctx context.Context, id uuid.UUID) (*model.CaptainRequest, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	r, ok := c.s.st.captainRequests[id]
	if !ok {
		return nil, outbound.ErrRecordNotFound
	}
	return c.withPlayerLocked(r), nil
}

func (c *CaptainRequestStore) FindPending(ctx context.Context, playerID, leagueID uuid.UUID) (*model.CaptainRequest, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	for _, r := range c.s.st.captainRequests {
		if r.PlayerID == playerID && r.LeagueID == leagueID && r.IsPending() {
			return c.withPlayerLocked(r), nil
		}
	}
	return nil, outbound.ErrRecordNotFound
}

func (c *CaptainRequestStore) ListPendingByLeague(ctx context.Context, leagueID uuid.UUID, limit, offset int) ([]*model.CaptainRequest, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	var out []*model.CaptainRequest
	for _, r := range c.s.st.captainRequests {
		if r.LeagueID == leagueID && r.IsPending() {
			out = append(out, c.withPlayerLocked(r))
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.Before(out[b].CreatedAt) })
	return page(out, limit, offset), nil
}

func (c *CaptainRequestStore) Transition(ctx context.Context, id uuid.UUID, t outbound.CaptainRequestTransition) (bool, error) {
	defer c.s.lockWrite(ctx)()
	r, ok := c.s.st.captainRequests[id]
	if !ok || !r.IsPending() {
		return false, nil
	}
	r.Status = t.Status
	r.RespondedAt = ptr(t.At)
	if t.ApprovedBy != nil {
		r.ApprovedBy = t.ApprovedBy
	}
	if t.RejectionReason != "" {
		r.RejectionReason = t.RejectionReason
	}
	c.s.st.captainRequests[id] = r
	return true, nil
}

func (c *CaptainRequestStore) withPlayerLocked(r model.CaptainRequest) *model.CaptainRequest {
	if player, ok := c.s.st.players[r.PlayerID]; ok {
		r.Player = &player
	}
	return &r
}
