package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/leaguehub/server/internal/model"
	"github.com/leaguehub/server/internal/port/outbound"
)

// PlayerStore implements outbound.PlayerDatabasePort.
type PlayerStore struct{ s *Store }

func (p *PlayerStore) EnsureForUser(ctx context.Context, userID uuid.UUID) (*model.Player, error) {
	defer p.s.lockWrite(ctx)()
	for _, player := range p.s.st.players {
		if player.UserID == userID {
			return &player, nil
		}
	}
	player := model.Player{ID: uuid.New(), UserID: userID, CreatedAt: nowUTC()}
	p.s.st.players[player.ID] = player
	return &player, nil
}

func (p *PlayerStore) FindByID(ctx context.Context, id uuid.UUID) (*model.Player, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	player, ok := p.s.st.players[id]
	if !ok {
		return nil, outbound.ErrRecordNotFound
	}
	return &player, nil
}

func (p *PlayerStore) FindByUser(ctx context.Context, userID uuid.UUID) (*model.Player, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	for _, player := range p.s.st.players {
		if player.UserID == userID {
			return &player, nil
		}
	}
	return nil, outbound.ErrRecordNotFound
}

// CaptainStore implements outbound.CaptainDatabasePort.
type CaptainStore struct{ s *Store }

func (c *CaptainStore) EnsureForUser(ctx context.Context, userID uuid.UUID) (*model.Captain, bool, error) {
	defer c.s.lockWrite(ctx)()
	for _, captain := range c.s.st.captains {
		if captain.UserID == userID {
			return &captain, false, nil
		}
	}
	captain := model.Captain{ID: uuid.New(), UserID: userID, CreatedAt: nowUTC()}
	c.s.st.captains[captain.ID] = captain
	return &captain, true, nil
}

func (c *CaptainStore) FindByUser(ctx context.Context, userID uuid.UUID) (*model.Captain, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	for _, captain := range c.s.st.captains {
		if captain.UserID == userID {
			return &captain, nil
		}
	}
	return nil, outbound.ErrRecordNotFound
}

// LeagueMemberStore implements outbound.LeagueMemberDatabasePort.
type LeagueMemberStore struct{ s *Store }

func (l *LeagueMemberStore) Ensure(ctx context.Context, leagueID, userID uuid.UUID) error {
	defer l.s.lockWrite(ctx)()
	for _, m := range l.s.st.leagueMembers {
		if m.LeagueID == leagueID && m.UserID == userID {
			return nil
		}
	}
	l.s.st.leagueMembers = append(l.s.st.leagueMembers, model.LeagueMember{
		ID:       uuid.New(),
		LeagueID: leagueID,
		UserID:   userID,
		JoinedAt: nowUTC(),
	})
	return nil
}

func (l *LeagueMemberStore) Exists(ctx context.Context, leagueID, userID uuid.UUID) (bool, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	for _, m := range l.s.st.leagueMembers {
		if m.LeagueID == leagueID && m.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

// Count returns the number of league memberships of a user.
func (l *LeagueMemberStore) Count(userID uuid.UUID) int {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	n := 0
	for _, m := range l.s.st.leagueMembers {
		if m.UserID == userID {
			n++
		}
	}
	return n
}

// TeamPlayerStore implements outbound.TeamPlayerDatabasePort.
type TeamPlayerStore struct{ s *Store }

func (t *TeamPlayerStore) Create(ctx context.Context, link *model.TeamPlayer) error {
	defer t.s.lockWrite(ctx)()
	for _, tp := range t.s.st.teamPlayers {
		if tp.TeamID == link.TeamID && tp.PlayerID == link.PlayerID {
			return &outbound.DuplicateError{Constraint: outbound.ConstraintTeamPlayer}
		}
	}
	if link.ID == uuid.Nil {
		link.ID = uuid.New()
	}
	t.s.st.teamPlayers = append(t.s.st.teamPlayers, *link)
	return nil
}

func (t *TeamPlayerStore) Exists(ctx context.Context, teamID, playerID uuid.UUID) (bool, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, tp := range t.s.st.teamPlayers {
		if tp.TeamID == teamID && tp.PlayerID == playerID {
			return true, nil
		}
	}
	return false, nil
}

// Roster returns the player IDs on a team in join order.
func (t *TeamPlayerStore) Roster(teamID uuid.UUID) []uuid.UUID {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var ids []uuid.UUID
	for _, tp := range t.s.st.teamPlayers {
		if tp.TeamID == teamID {
			ids = append(ids, tp.PlayerID)
		}
	}
	return ids
}

// TeamCaptainStore implements outbound.TeamCaptainDatabasePort.
type TeamCaptainStore struct{ s *Store }

func (t *TeamCaptainStore) Ensure(ctx context.Context, teamID, captainID uuid.UUID) error {
	defer t.s.lockWrite(ctx)()
	for _, tc := range t.s.st.teamCaptains {
		if tc.TeamID == teamID && tc.CaptainID == captainID {
			return nil
		}
	}
	t.s.st.teamCaptains = append(t.s.st.teamCaptains, model.TeamCaptain{
		ID:        uuid.New(),
		TeamID:    teamID,
		CaptainID: captainID,
		CreatedAt: nowUTC(),
	})
	return nil
}

func (t *TeamCaptainStore) ExistsForUser(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, tc := range t.s.st.teamCaptains {
		if tc.TeamID != teamID {
			continue
		}
		if captain, ok := t.s.st.captains[tc.CaptainID]; ok && captain.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}
