package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/leaguehub/server/internal/model"
)

// TeamJoinRequestDatabasePort defines join request persistence.
type TeamJoinRequestDatabasePort interface {
	// Create inserts a request. Returns a DuplicateError if a pending one exists for the pair.
	Create(ctx context.Context, request *model.TeamJoinRequest) error

	// FindByID retrieves a request by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*model.TeamJoinRequest, error)

	// FindPending retrieves the pending request for a user and team.
	FindPending(ctx context.Context, userID, teamID uuid.UUID) (*model.TeamJoinRequest, error)

	// CountCreatedSince counts requests of any status the user created at or after since.
	CountCreatedSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)

	// ListPendingByTeam lists pending requests requested at or after notBefore, oldest first.
	ListPendingByTeam(ctx context.Context, teamID uuid.UUID, notBefore time.Time) ([]*model.TeamJoinRequest, error)

	// ListByUser lists a user's requests, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.TeamJoinRequest, error)

	// Transition moves a pending request to status. Returns false if it was not pending.
	Transition(ctx context.Context, id uuid.UUID, status model.JoinRequestStatus, at time.Time) (bool, error)

	// DeclineStale declines every pending request requested before cutoff
	// and returns the requests it declined.
	DeclineStale(ctx context.Context, cutoff, at time.Time) ([]*model.TeamJoinRequest, error)
}
