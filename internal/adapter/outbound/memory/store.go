// Package memory is an in-process implementation of the outbound persistence
// ports. It enforces the same unique constraints and conditional updates as
// the postgres adapters and backs the domain tests and local runs without a database.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/leaguehub/server/internal/model"
	"github.com/leaguehub/server/internal/port/outbound"
)

type state struct {
	users           map[uuid.UUID]model.User
	leagues         map[uuid.UUID]model.League
	sports          map[uuid.UUID]model.Sport
	teams           map[uuid.UUID]model.Team
	players         map[uuid.UUID]model.Player
	captains        map[uuid.UUID]model.Captain
	leagueMembers   []model.LeagueMember
	teamPlayers     []model.TeamPlayer
	teamCaptains    []model.TeamCaptain
	codes           map[uuid.UUID]model.InvitationCode
	redemptions     []model.InvitationCodeRedemption
	joinRequests    map[uuid.UUID]model.TeamJoinRequest
	captainRequests map[uuid.UUID]model.CaptainRequest
}

func newState() *state {
	return &state{
		users:           make(map[uuid.UUID]model.User),
		leagues:         make(map[uuid.UUID]model.League),
		sports:          make(map[uuid.UUID]model.Sport),
		teams:           make(map[uuid.UUID]model.Team),
		players:         make(map[uuid.UUID]model.Player),
		captains:        make(map[uuid.UUID]model.Captain),
		codes:           make(map[uuid.UUID]model.InvitationCode),
		joinRequests:    make(map[uuid.UUID]model.TeamJoinRequest),
		captainRequests: make(map[uuid.UUID]model.CaptainRequest),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.leagues {
		c.leagues[k] = v
	}
	for k, v := range s.sports {
		c.sports[k] = v
	}
	for k, v := range s.teams {
		c.teams[k] = v
	}
	for k, v := range s.players {
		c.players[k] = v
	}
	for k, v := range s.captains {
		c.captains[k] = v
	}
	for k, v := range s.codes {
		c.codes[k] = v
	}
	for k, v := range s.joinRequests {
		c.joinRequests[k] = v
	}
	for k, v := range s.captainRequests {
		c.captainRequests[k] = v
	}
	c.leagueMembers = append([]model.LeagueMember(nil), s.leagueMembers...)
	c.teamPlayers = append([]model.TeamPlayer(nil), s.teamPlayers...)
	c.teamCaptains = append([]model.TeamCaptain(nil), s.teamCaptains...)
	c.redemptions = append([]model.InvitationCodeRedemption(nil), s.redemptions...)
	return c
}

// Store holds all records in memory.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex
	st   *state
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{st: newState()}
}

type txKey struct{}

func inTx(ctx context.Context) bool {
	return ctx.Value(txKey{}) != nil
}

// RunInTransaction serializes fn against other transactions and restores the
// previous state if fn fails. Writes outside a transaction wait for it to
// finish, so a rollback never discards them.
func (s *Store) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.st.clone()
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.st = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// lockWrite acquires the locks a write needs and returns the matching unlock.
// Inside a transaction the transaction already holds txMu.
func (s *Store) lockWrite(ctx context.Context) func() {
	if inTx(ctx) {
		s.mu.Lock()
		return s.mu.Unlock
	}
	s.txMu.Lock()
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		s.txMu.Unlock()
	}
}

// --- Seeding helpers ---

// AddUser stores a user.
func (s *Store) AddUser(u model.User) *model.User {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = model.UserRolePlayer
	}
	defer s.lockWrite(context.Background())()
	s.st.users[u.ID] = u
	return &u
}

// AddLeague stores a league.
func (s *Store) AddLeague(l model.League) *model.League {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	defer s.lockWrite(context.Background())()
	s.st.leagues[l.ID] = l
	return &l
}

// AddSport stores a sport.
func (s *Store) AddSport(sp model.Sport) *model.Sport {
	if sp.ID == uuid.Nil {
		sp.ID = uuid.New()
	}
	defer s.lockWrite(context.Background())()
	s.st.sports[sp.ID] = sp
	return &sp
}

// AddTeam stores a team.
func (s *Store) AddTeam(t model.Team) *model.Team {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	defer s.lockWrite(context.Background())()
	s.st.teams[t.ID] = t
	return &t
}

// --- Accessors returning port implementations ---

// Identity returns the identity store.
func (s *Store) Identity() *IdentityStore { return &IdentityStore{s: s} }

// Leagues returns the league port.
func (s *Store) Leagues() *LeagueStore { return &LeagueStore{s: s} }

// Sports returns the sport port.
func (s *Store) Sports() *SportStore { return &SportStore{s: s} }

// Teams returns the team port.
func (s *Store) Teams() *TeamStore { return &TeamStore{s: s} }

// Players returns the player port.
func (s *Store) Players() *PlayerStore { return &PlayerStore{s: s} }

// Captains returns the captain port.
func (s *Store) Captains() *CaptainStore { return &CaptainStore{s: s} }

// LeagueMembers returns the league membership port.
func (s *Store) LeagueMembers() *LeagueMemberStore { return &LeagueMemberStore{s: s} }

// TeamPlayers returns the team roster port.
func (s *Store) TeamPlayers() *TeamPlayerStore { return &TeamPlayerStore{s: s} }

// TeamCaptains returns the team leadership port.
func (s *Store) TeamCaptains() *TeamCaptainStore { return &TeamCaptainStore{s: s} }

// InvitationCodes returns the invitation code port.
func (s *Store) InvitationCodes() *InvitationCodeStore { return &InvitationCodeStore{s: s} }

// JoinRequests returns the join request port.
func (s *Store) JoinRequests() *JoinRequestStore { return &JoinRequestStore{s: s} }

// CaptainRequests returns the captain request port.
func (s *Store) CaptainRequests() *CaptainRequestStore { return &CaptainRequestStore{s: s} }

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func ptr[T any](v T) *T { return &v }

func nowUTC() time.Time { return time.Now().UTC() }

// Compile-time interface checks
var (
	_ outbound.TransactionPort             = (*Store)(nil)
	_ outbound.IdentityPort                = (*IdentityStore)(nil)
	_ outbound.LeagueDatabasePort          = (*LeagueStore)(nil)
	_ outbound.SportDatabasePort           = (*SportStore)(nil)
	_ outbound.TeamDatabasePort            = (*TeamStore)(nil)
	_ outbound.PlayerDatabasePort          = (*PlayerStore)(nil)
	_ outbound.CaptainDatabasePort         = (*CaptainStore)(nil)
	_ outbound.LeagueMemberDatabasePort    = (*LeagueMemberStore)(nil)
	_ outbound.TeamPlayerDatabasePort      = (*TeamPlayerStore)(nil)
	_ outbound.TeamCaptainDatabasePort     = (*TeamCaptainStore)(nil)
	_ outbound.InvitationCodeDatabasePort  = (*InvitationCodeStore)(nil)
	_ outbound.TeamJoinRequestDatabasePort = (*JoinRequestStore)(nil)
	_ outbound.CaptainRequestDatabasePort  = (*CaptainRequestStore)(nil)
)
