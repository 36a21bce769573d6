package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/leaguehub/server/internal/model"
	"github.com/leaguehub/server/internal/port/outbound"
)

// LeagueStore implements outbound.LeagueDatabasePort.
type LeagueStore struct{ s *Store }

func (l *LeagueStore) FindByID(ctx context.Context, id uuid.UUID) (*model.League, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	league, ok := l.s.st.leagues[id]
	if !ok {
		return nil, outbound.ErrRecordNotFound
	}
	return &league, nil
}

// SportStore implements outbound.SportDatabasePort.
type SportStore struct{ s *Store }

func (sp *SportStore) FindByID(ctx context.Context, id uuid.UUID) (*model.Sport, error) {
	sp.s.mu.Lock()
	defer sp.s.mu.Unlock()
	sport, ok := sp.s.st.sports[id]
	if !ok {
		return nil, outbound.ErrRecordNotFound
	}
	return &sport, nil
}

// TeamStore implements outbound.TeamDatabasePort.
type TeamStore struct{ s *Store }

func (t *TeamStore) FindByID(ctx context.Context, id uuid.UUID) (*model.Team, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	team, ok := t.s.st.teams[id]
	if !ok {
		return nil, outbound.ErrRecordNotFound
	}
	return &team, nil
}

func (t *TeamStore) ListRecruiting(ctx context.Context, filter outbound.TeamFilter, limit, offset int) ([]*model.Team, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	var teams []*model.Team
	for _, team := range t.s.st.teams {
		if !team.IsLookingForPlayers {
			continue
		}
		if filter.LeagueID != nil && team.LeagueID != *filter.LeagueID {
			continue
		}
		if filter.SportID != nil && team.SportID != *filter.SportID {
			continue
		}
		teams = append(teams, &team)
	}
	sort.Slice(teams, func(i, j int) bool {
		if teams[i].Name != teams[j].Name {
			return teams[i].Name < teams[j].Name
		}
		return teams[i].ID.String() < teams[j].ID.String()
	})
	return page(teams, limit, offset), nil
}

func (t *TeamStore) SetLookingForPlayers(ctx context.Context, id uuid.UUID, looking bool) error {
	defer t.s.lockWrite(ctx)()
	team, ok := t.s.st.teams[id]
	if !ok {
		return outbound.ErrRecordNotFound
	}
	team.IsLookingForPlayers = looking
	team.UpdatedAt = nowUTC()
	t.s.st.teams[id] = team
	return nil
}
