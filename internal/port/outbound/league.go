package outbound

import (
	"context"

	"github.com/google/uuid"

	"github.com/leaguehub/server/internal/model"
)

// LeagueDatabasePort defines league lookups.
type LeagueDatabasePort interface {
	// FindByID retrieves a league by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*model.League, error)
}

// SportDatabasePort defines sport lookups.
type SportDatabasePort interface {
	// FindByID retrieves a sport by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sport, error)
}

// TeamFilter narrows recruiting team discovery.
type TeamFilter struct {
	LeagueID *uuid.UUID
	SportID  *uuid.UUID
}

// TeamDatabasePort defines team persistence operations.
type TeamDatabasePort interface {
	// FindByID retrieves a team by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Team, error)

	// ListRecruiting lists teams that are looking for players.
	ListRecruiting(ctx context.Context, filter TeamFilter, limit, offset int) ([]*model.Team, error)

	// SetLookingForPlayers updates the recruitment flag.
	SetLookingForPlayers(ctx context.Context, id uuid.UUID, looking bool) error
}
