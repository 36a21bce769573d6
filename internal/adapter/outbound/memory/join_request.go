package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/leaguehub/server/internal/model"
	"github.com/leaguehub/server/internal/port/outbound"
)

// JoinRequestStore implements outbound.TeamJoinRequestDatabasePort.
type JoinRequestStore struct{ s *Store }

func (j *JoinRequestStore) Create(ctx context.Context, request *model.TeamJoinRequest) error {
	defer j.s.lockWrite(ctx)()
	for _, r := range j.s.st.joinRequests {
		if r.UserID == request.UserID && r.TeamID == request.TeamID && r.IsPending() {
			return &outbound.DuplicateError{Constraint: outbound.ConstraintPendingJoinRequest}
		}
	}
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	stored := *request
	stored.Team, stored.User = nil, nil
	j.s.st.joinRequests[request.ID] = stored
	return nil
}

func (j *JoinRequestStore) FindByID(ctx context.Context, id uuid.UUID) (*model.TeamJoinRequest, error) {
	j.s.mu.Lock()
	defer j.s.mu.Unlock()
	r, ok := j.s.st.joinRequests[id]
	if !ok {
		return nil, outbound.ErrRecordNotFound
	}
	return j.withRelationsLocked(r), nil
}

func (j *JoinRequestStore) FindPending(ctx context.Context, userID, teamID uuid.UUID) (*model.TeamJoinRequest, error) {
	j.s.mu.Lock()
	defer j.s.mu.Unlock()
	for _, r := range j.s.st.joinRequests {
		if r.UserID == userID && r.TeamID == teamID && r.IsPending() {
			return j.withRelationsLocked(r), nil
		}
	}
	return nil, outbound.ErrRecordNotFound
}

func (j *JoinRequestStore) CountCreatedSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	j.s.mu.Lock()
	defer j.s.mu.Unlock()
	n := 0
	for _, r := range j.s.st.joinRequests {
		if r.UserID == userID && !r.RequestedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (j *JoinRequestStore) ListPendingByTeam(ctx context.Context, teamID uuid.UUID, notBefore time.Time) ([]*model.TeamJoinRequest, error) {
	j.s.mu.Lock()
	defer j.s.mu.Unlock()
	var out []*model.TeamJoinRequest
	for _, r := range j.s.st.joinRequests {
		if r.TeamID == teamID && r.IsPending() && !r.RequestedAt.Before(notBefore) {
			out = append(out, j.withRelationsLocked(r))
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].RequestedAt.Before(out[b].RequestedAt) })
	return out, nil
}

func (j *JoinRequestStore) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.TeamJoinRequest, error) {
	j.s.mu.Lock()
	defer j.s.mu.Unlock()
	var out []*model.TeamJoinRequest
	for _, r := range j.s.st.joinRequests {
		if r.UserID == userID {
			out = append(out, j.withRelationsLocked(r))
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].RequestedAt.After(out[b].RequestedAt) })
	return page(out, limit, offset), nil
}

func (j *JoinRequestStore) Transition(ctx context.Context, id uuid.UUID, status model.JoinRequestStatus, at time.Time) (bool, error) {
	defer j.s.lockWrite(ctx)()
	r, ok := j.s.st.joinRequests[id]
	if !ok || !r.IsPending() {
		return false, nil
	}
	r.Status = status
	r.RespondedAt = ptr(at)
	j.s.st.joinRequests[id] = r
	return true, nil
}

func (j *JoinRequestStore) DeclineStale(ctx context.Context, cutoff, at time.Time) ([]*model.TeamJoinRequest, error) {
	defer j.s.lockWrite(ctx)()
	var out []*model.TeamJoinRequest
	for id, r := range j.s.st.joinRequests {
		if !r.IsPending() || !r.RequestedAt.Before(cutoff) {
			continue
		}
		r.Status = model.JoinRequestStatusDeclined
		r.RespondedAt = ptr(at)
		j.s.st.joinRequests[id] = r
		out = append(out, j.withRelationsLocked(r))
	}
	sort.Slice(out, func(a, b int) bool { return out[a].RequestedAt.Before(out[b].RequestedAt) })
	return out, nil
}

func (j *JoinRequestStore) withRelationsLocked(r model.TeamJoinRequest) *model.TeamJoinRequest {
	if team, ok := j.s.st.teams[r.TeamID]; ok {
		r.Team = &team
	}
	if user, ok := j.s.st.users[r.UserID]; ok {
		r.User = &user
	}
	return &r
}
