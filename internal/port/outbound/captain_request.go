package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/leaguehub/server/internal/model"
)

// CaptainRequestTransition describes a terminal transition of a captain request.
type CaptainRequestTransition struct {
	Status          model.CaptainRequestStatus
	ApprovedBy      *uuid.UUID
	RejectionReason string
	At              time.Time
}

// CaptainRequestDatabasePort defines captain request persistence.
type CaptainRequestDatabasePort interface {
	// Create inserts a request. Returns a DuplicateError if a pending one exists for the player and league.
	Create(ctx context.Context, request *model.CaptainRequest) error

	// FindByID retrieves a request by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*model.CaptainRequest, error)

	// FindPending retrieves the pending request of a player in a league.
	FindPending(ctx context.Context, playerID, leagueID uuid.UUID) (*model.CaptainRequest, error)

	// ListPendingByLeague lists pending requests of a league, oldest first.
	ListPendingByLeague(ctx context.Context, leagueID uuid.UUID, limit, offset int) ([]*model.CaptainRequest, error)

	// Transition applies t to a pending request. Returns false if it was not pending.
	Transition(ctx context.Context, id uuid.UUID, t CaptainRequestTransition) (bool, error)
}
