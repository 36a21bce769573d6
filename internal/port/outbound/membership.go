package outbound

import (
	"context"

	"github.com/google/uuid"

	"github.com/leaguehub/server/internal/model"
)

// PlayerDatabasePort defines player profile persistence.
type PlayerDatabasePort interface {
	// EnsureForUser returns the player profile of a user, creating it if absent.
	EnsureForUser(ctx context.Context, userID uuid.UUID) (*model.Player, error)

	// FindByID retrieves a player by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Player, error)

	// FindByUser retrieves the player profile of a user.
	FindByUser(ctx context.Context, userID uuid.UUID) (*model.Player, error)
}

// CaptainDatabasePort defines captain persistence.
type CaptainDatabasePort interface {
	// EnsureForUser returns the captain record of a user, creating it if absent.
	// created reports whether this call inserted the record.
	EnsureForUser(ctx context.Context, userID uuid.UUID) (captain *model.Captain, created bool, err error)

	// FindByUser retrieves the captain record of a user.
	FindByUser(ctx context.Context, userID uuid.UUID) (*model.Captain, error)
}

// LeagueMemberDatabasePort defines league membership persistence.
type LeagueMemberDatabasePort interface {
	// Ensure links the user to the league if not already linked.
	Ensure(ctx context.Context, leagueID, userID uuid.UUID) error

	// Exists checks whether the user belongs to the league.
	Exists(ctx context.Context, leagueID, userID uuid.UUID) (bool, error)
}

// TeamPlayerDatabasePort defines team roster persistence.
type TeamPlayerDatabasePort interface {
	// Create links a player to a team. Returns a DuplicateError if already linked.
	Create(ctx context.Context, link *model.TeamPlayer) error

	// Exists checks whether the player is on the team.
	Exists(ctx context.Context, teamID, playerID uuid.UUID) (bool, error)
}

// TeamCaptainDatabasePort defines team leadership persistence.
type TeamCaptainDatabasePort interface {
	// Ensure links a captain to a team if not already linked.
	Ensure(ctx context.Context, teamID, captainID uuid.UUID) error

	// ExistsForUser checks whether the user captains the team.
	ExistsForUser(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
}

// TransactionPort defines transaction support.
type TransactionPort interface {
	// RunInTransaction executes the given function within a transaction.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
