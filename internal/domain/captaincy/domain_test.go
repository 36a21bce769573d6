package captaincy

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/leaguehub/server/internal/adapter/outbound/memory"
	"github.com/leaguehub/server/internal/domain/membership"
	"github.com/leaguehub/server/internal/model"
	"github.com/leaguehub/server/internal/port/inbound"
	"github.com/leaguehub/server/internal/port/outbound"
	"github.com/leaguehub/server/internal/shared/events"
	apperrors "github.com/leaguehub/server/internal/utils/errors"
)

// --- Mock implementations ---

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event events.Event) {
	m.Called(ctx, event)
}

func (m *MockPublisher) events(eventType string) []*events.CaptainRequestEvent {
	var out []*events.CaptainRequestEvent
	for _, call := range m.Calls {
		if evt, ok := call.Arguments.Get(1).(*events.CaptainRequestEvent); ok && evt.Meta().Type == eventType {
			out = append(out, evt)
		}
	}
	return out
}

type MockCaptainRequestDB struct {
	mock.Mock
}

func (m *MockCaptainRequestDB) Create(ctx context.Context, request *model.CaptainRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockCaptainRequestDB) FindByID(ctx context.Context, id uuid.UUID) (*model.CaptainRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CaptainRequest), args.Error(1)
}

func (m *MockCaptainRequestDB) FindPending(ctx context.Context, playerID, leagueID uuid.UUID) (*model.CaptainRequest, error) {
	args := m.Called(ctx, playerID, leagueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CaptainRequest), args.Error(1)
}

func (m *MockCaptainRequestDB) ListPendingByLeague(ctx context.Context, leagueID uuid.UUID, limit, offset int) ([]*model.CaptainRequest, error) {
	args := m.Called(ctx, leagueID, limit, offset)
	return args.Get(0).([]*model.CaptainRequest), args.Error(1)
}

func (m *MockCaptainRequestDB) Transition(ctx context.Context, id uuid.UUID, t outbound.CaptainRequestTransition) (bool, error) {
	args := m.Called(ctx, id, t)
	return args.Bool(0), args.Error(1)
}

// --- Fixture ---

type fixture struct {
	store     *memory.Store
	ledger    *membership.Domain
	domain    *Domain
	publisher *MockPublisher
	admin     *model.User
	league    *model.League
	team      *model.Team
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s := memory.NewStore()
	publisher := new(MockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return()

	f := &fixture{
		store:     s,
		publisher: publisher,
		ledger:    membership.NewDomain(s.Players(), s.Captains(), s.LeagueMembers(), s.TeamPlayers(), s.TeamCaptains(), s.Identity(), zap.NewNop()),
		admin:     s.AddUser(model.User{Email: "admin@league.test", Role: model.UserRoleAdmin}),
		league:    s.AddLeague(model.League{Name: "Spring"}),
	}
	f.team = s.AddTeam(model.Team{Name: "Hawks", LeagueID: f.league.ID})
	f.domain = f.newDomain(s.CaptainRequests())
	return f
}

func (f *fixture) newDomain(requestDB outbound.CaptainRequestDatabasePort) *Domain {
	s := f.store
	return NewDomain(requestDB, s.Players(), s.Leagues(), s.Teams(), f.ledger, s.Identity(), s, f.publisher, nil, zap.NewNop())
}

// newPlayer creates a league member with a player profile.
func (f *fixture) newPlayer(t *testing.T) (*model.User, *model.Player) {
	t.Helper()
	user := f.store.AddUser(model.User{Email: uuid.NewString() + "@player.test"})
	player, err := f.ledger.JoinLeague(context.Background(), f.league.ID, user.ID)
	require.NoError(t, err)
	return user, player
}

func (f *fixture) role(t *testing.T, userID uuid.UUID) model.UserRole {
	t.Helper()
	user, err := f.store.Identity().ResolveUser(context.Background(), userID)
	require.NoError(t, err)
	return user.Role
}

// --- Tests ---

func TestRequestToBeCaptain(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to the requester's player profile", func(t *testing.T) {
		f := newFixture(t)
		user, player := f.newPlayer(t)

		out, err := f.domain.RequestToBeCaptain(ctx, user.ID, f.league.ID, &inbound.RequestCaptaincyInput{TeamID: f.team.ID, Message: "I run practice"})
		require.NoError(t, err)

		assert.Equal(t, player.ID, out.PlayerID)
		assert.Equal(t, model.CaptainRequestStatusPending, out.Status)
		assert.Equal(t, model.CaptainRequestSourcePlayer, out.Source)
		assert.Nil(t, out.ApprovedBy)
		require.NotNil(t, out.UserID)
		assert.Equal(t, user.ID, *out.UserID)

		created := f.publisher.events(events.CaptainRequestCreatedType)
		require.Len(t, created, 1)
		assert.Equal(t, uuid.Nil, created[0].Meta().RecipientID)
	})

	t.Run("explicit player must belong to the requester", func(t *testing.T) {
		f := newFixture(t)
		_, player := f.newPlayer(t)
		other, _ := f.newPlayer(t)

		_, err := f.domain.RequestToBeCaptain(ctx, other.ID, f.league.ID, &inbound.RequestCaptaincyInput{PlayerID: &player.ID, TeamID: f.team.ID})
		assert.ErrorIs(t, err, ErrNotPlayerOwner)
	})

	t.Run("nil input", func(t *testing.T) {
		f := newFixture(t)
		user, _ := f.newPlayer(t)

		_, err := f.domain.RequestToBeCaptain(ctx, user.ID, f.league.ID, nil)
		assert.ErrorIs(t, err, ErrInvalidRequest)
		assert.Empty(t, f.publisher.events(events.CaptainRequestCreatedType))
	})

	t.Run("requester without player profile", func(t *testing.T) {
		f := newFixture(t)
		user := f.store.AddUser(model.User{Email: "new@player.test"})

		_, err := f.domain.RequestToBeCaptain(ctx, user.ID, f.league.ID, &inbound.RequestCaptaincyInput{TeamID: f.team.ID})
		assert.ErrorIs(t, err, ErrPlayerNotFound)
	})

	t.Run("unknown league", func(t *testing.T) {
		f := newFixture(t)
		user, _ := f.newPlayer(t)

		_, err := f.domain.RequestToBeCaptain(ctx, user.ID, uuid.New(), &inbound.RequestCaptaincyInput{TeamID: f.team.ID})
		assert.ErrorIs(t, err, ErrLeagueNotFound)
	})

	t.Run("team of another league", func(t *testing.T) {
		f := newFixture(t)
		user, _ := f.newPlayer(t)
		otherLeague := f.store.AddLeague(model.League{Name: "Fall"})
		otherTeam := f.store.AddTeam(model.Team{Name: "Owls", LeagueID: otherLeague.ID})

		_, err := f.domain.RequestToBeCaptain(ctx, user.ID, f.league.ID, &inbound.RequestCaptaincyInput{TeamID: otherTeam.ID})
		assert.ErrorIs(t, err, ErrTeamNotInLeague)
	})

	t.Run("already a captain", func(t *testing.T) {
		f := newFixture(t)
		user, _ := f.newPlayer(t)
		otherTeam := f.store.AddTeam(model.Team{Name: "Owls", LeagueID: f.league.ID})
		_, err := f.ledger.PromoteToCaptain(ctx, otherTeam.ID, user.ID)
		require.NoError(t, err)

		_, err = f.domain.RequestToBeCaptain(ctx, user.ID, f.league.ID, &inbound.RequestCaptaincyInput{TeamID: f.team.ID})
		assert.ErrorIs(t, err, ErrAlreadyCaptain)
	})

	t.Run("second pending request in the league", func(t *testing.T) {
		f := newFixture(t)
		user, _ := f.newPlayer(t)
		otherTeam := f.store.AddTeam(model.Team{Name: "Owls", LeagueID: f.league.ID})

		_, err := f.domain.RequestToBeCaptain(ctx, user.ID, f.league.ID, &inbound.RequestCaptaincyInput{TeamID: f.team.ID})
		require.NoError(t, err)

		_, err = f.domain.RequestToBeCaptain(ctx, user.ID, f.league.ID, &inbound.RequestCaptaincyInput{TeamID: otherTeam.ID})
		assert.ErrorIs(t, err, ErrDuplicatePending)
		assert.True(t, apperrors.IsConflict(err))
	})

	t.Run("insert race maps to duplicate pending", func(t *testing.T) {
		f := newFixture(t)
		user, _ := f.newPlayer(t)

		requestDB := new(MockCaptainRequestDB)
		requestDB.On("FindPending", mock.Anything, mock.Anything, f.league.ID).Return(nil, outbound.ErrRecordNotFound)
		requestDB.On("Create", mock.Anything, mock.Anything).
			Return(&outbound.DuplicateError{Constraint: outbound.ConstraintPendingCaptainRequest})
		d := f.newDomain(requestDB)

		_, err := d.RequestToBeCaptain(ctx, user.ID, f.league.ID, &inbound.RequestCaptaincyInput{TeamID: f.team.ID})
		assert.ErrorIs(t, err, ErrDuplicatePending)
	})
}

func TestSendCaptainRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("admin invitation", func(t *testing.T) {
		f := newFixture(t)
		user, player := f.newPlayer(t)

		out, err := f.domain.SendCaptainRequest(ctx, f.admin.ID, f.league.ID, &inbound.SendCaptaincyInput{PlayerID: player.ID, TeamID: f.team.ID})
		require.NoError(t, err)

		assert.Equal(t, model.CaptainRequestSourceAdmin, out.Source)
		require.NotNil(t, out.ApprovedBy)
		assert.Equal(t, f.admin.ID, *out.ApprovedBy)

		created := f.publisher.events(events.CaptainRequestCreatedType)
		require.Len(t, created, 1)
		assert.Equal(t, user.ID, created[0].Meta().RecipientID)
	})

	t.Run("non-admin rejected", func(t *testing.T) {
		f := newFixture(t)
		user, player := f.newPlayer(t)

		_, err := f.domain.SendCaptainRequest(ctx, user.ID, f.league.ID, &inbound.SendCaptaincyInput{PlayerID: player.ID, TeamID: f.team.ID})
		assert.ErrorIs(t, err, ErrAdminRequired)
		assert.True(t, apperrors.IsForbidden(err))
	})

	t.Run("nil input", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.domain.SendCaptainRequest(ctx, f.admin.ID, f.league.ID, nil)
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("unknown player", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.domain.SendCaptainRequest(ctx, f.admin.ID, f.league.ID, &inbound.SendCaptaincyInput{PlayerID: uuid.New(), TeamID: f.team.ID})
		assert.ErrorIs(t, err, ErrPlayerNotFound)
	})

	t.Run("unknown team", func(t *testing.T) {
		f := newFixture(t)
		_, player := f.newPlayer(t)

		_, err := f.domain.SendCaptainRequest(ctx, f.admin.ID, f.league.ID, &inbound.SendCaptaincyInput{PlayerID: player.ID, TeamID: uuid.New()})
		assert.ErrorIs(t, err, ErrTeamNotFound)
	})

	t.Run("already captains the team", func(t *testing.T) {
		f := newFixture(t)
		user, player := f.newPlayer(t)
		_, err := f.ledger.PromoteToCaptain(ctx, f.team.ID, user.ID)
		require.NoError(t, err)

		_, err = f.domain.SendCaptainRequest(ctx, f.admin.ID, f.league.ID, &inbound.SendCaptaincyInput{PlayerID: player.ID, TeamID: f.team.ID})
		assert.ErrorIs(t, err, ErrAlreadyCaptain)
	})

	t.Run("captain of another team may be invited", func(t *testing.T) {
		f := newFixture(t)
		user, player := f.newPlayer(t)
		otherTeam := f.store.AddTeam(model.Team{Name: "Owls", LeagueID: f.league.ID})
		_, err := f.ledger.PromoteToCaptain(ctx, otherTeam.ID, user.ID)
		require.NoError(t, err)

		_, err = f.domain.SendCaptainRequest(ctx, f.admin.ID, f.league.ID, &inbound.SendCaptaincyInput{PlayerID: player.ID, TeamID: f.team.ID})
		assert.NoError(t, err)
	})

	t.Run("pending self-request blocks invitation", func(t *testing.T) {
		f := newFixture(t)
		user, player := f.newPlayer(t)
		_, err := f.domain.RequestToBeCaptain(ctx, user.ID, f.league.ID, &inbound.RequestCaptaincyInput{TeamID: f.team.ID})
		require.NoError(t, err)

		_, err = f.domain.SendCaptainRequest(ctx, f.admin.ID, f.league.ID, &inbound.SendCaptaincyInput{PlayerID: player.ID, TeamID: f.team.ID})
		assert.ErrorIs(t, err, ErrDuplicatePending)
	})
}

func TestApprove(t *testing.T) {
	ctx := context.Background()

	t.Run("admin approves self-request", func(t *testing.T) {
		f := newFixture(t)
		user, _ := f.newPlayer(t)
		req, err := f.domain.RequestToBeCaptain(ctx, user.ID, f.league.ID, &inbound.RequestCaptaincyInput{TeamID: f.team.ID})
		require.NoError(t, err)

		out, err := f.domain.Approve(ctx, req.ID, f.admin.ID)
		require.NoError(t, err)

		assert.Equal(t, model.CaptainRequestStatusApproved, out.Status)
		require.NotNil(t, out.ApprovedBy)
		assert.Equal(t, f.admin.ID, *out.ApprovedBy)
		assert.NotNil(t, out.RespondedAt)

		isCaptain, err := f.ledger.IsTeamCaptain(ctx, f.team.ID, user.ID)
		require.NoError(t, err)
		assert.True(t, isCaptain)
		assert.Equal(t, model.UserRoleCaptain, f.role(t, user.ID))

		approved := f.publisher.events(events.CaptainRequestApprovedType)
		require.Len(t, approved, 1)
		assert.Equal(t, user.ID, approved[0].Meta().RecipientID)
	})

	t.Run("player cannot approve own self-request", func(t *testing.T) {
		f := newFixture(t)
		user, _ := f.newPlayer(t)
		req, err := f.domain.RequestToBeCaptain(ctx, user.ID, f.league.ID, &inbound.RequestCaptaincyInput{TeamID: f.team.ID})
		require.NoError(t, err)

		_, err = f.domain.Approve(ctx, req.ID, user.ID)
		assert.ErrorIs(t, err, ErrNotAllowed)
		assert.Equal(t, model.UserRolePlayer, f.role(t, user.ID))
	})

	t.Run("player accepts admin invitation", func(t *testing.T) {
		f := newFixture(t)
		user, player := f.newPlayer(t)
		req, err := f.domain.SendCaptainRequest(ctx, f.admin.ID, f.league.ID, &inbound.SendCaptaincyInput{PlayerID: player.ID, TeamID: f.team.ID})
		require.NoError(t, err)

		out, err := f.domain.Approve(ctx, req.ID, user.ID)
		require.NoError(t, err)

		assert.Equal(t, model.CaptainRequestStatusApproved, out.Status)
		require.NotNil(t, out.ApprovedBy)
		assert.Equal(t, f.admin.ID, *out.ApprovedBy)

		approved := f.publisher.events(events.CaptainRequestApprovedType)
		require.Len(t, approved, 1)
		assert.Equal(t, f.admin.ID, approved[0].Meta().RecipientID)
	})

	t.Run("other player cannot accept invitation", func(t *testing.T) {
		f := newFixture(t)
		_, player := f.newPlayer(t)
		stranger, _ := f.newPlayer(t)
		req, err := f.domain.SendCaptainRequest(ctx, f.admin.ID, f.league.ID, &inbound.SendCaptaincyInput{PlayerID: player.ID, TeamID: f.team.ID})
		require.NoError(t, err)

		_, err = f.domain.Approve(ctx, req.ID, stranger.ID)
		assert.ErrorIs(t, err, ErrNotAllowed)
	})

	t.Run("second approval fails", func(t *testing.T) {
		f := newFixture(t)
		user, _ := f.newPlayer(t)
		req, err := f.domain.RequestToBeCaptain(ctx, user.ID, f.league.ID, &inbound.RequestCaptaincyInput{TeamID: f.team.ID})
		require.NoError(t, err)

		_, err = f.domain.Approve(ctx, req.ID, f.admin.ID)
		require.NoError(t, err)
		_, err = f.domain.Approve(ctx, req.ID, f.admin.ID)
		assert.ErrorIs(t, err, ErrRequestNotPending)
		assert.True(t, apperrors.IsInvalidState(err))
	})

	t.Run("unknown request", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.domain.Approve(ctx, uuid.New(), f.admin.ID)
		assert.ErrorIs(t, err, ErrRequestNotFound)
	})

	t.Run("captain record is reused across teams", func(t *testing.T) {
		f := newFixture(t)
		user, player := f.newPlayer(t)
		otherTeam := f.store.AddTeam(model.Team{Name: "Owls", LeagueID: f.league.ID})

		first, err := f.domain.SendCaptainRequest(ctx, f.admin.ID, f.league.ID, &inbound.SendCaptaincyInput{PlayerID: player.ID, TeamID: f.team.ID})
		require.NoError(t, err)
		_, err = f.domain.Approve(ctx, first.ID, user.ID)
		require.NoError(t, err)
		captain, err := f.store.Captains().FindByUser(ctx, user.ID)
		require.NoError(t, err)

		second, err := f.domain.SendCaptainRequest(ctx, f.admin.ID, f.league.ID, &inbound.SendCaptaincyInput{PlayerID: player.ID, TeamID: otherTeam.ID})
		require.NoError(t, err)
		_, err = f.domain.Approve(ctx, second.ID, user.ID)
		require.NoError(t, err)

		again, err := f.store.Captains().FindByUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, captain.ID, again.ID)

		for _, teamID := range []uuid.UUID{f.team.ID, otherTeam.ID} {
			ok, err := f.ledger.IsTeamCaptain(ctx, teamID, user.ID)
			require.NoError(t, err)
			assert.True(t, ok)
		}
	})

	t.Run("admin role is kept", func(t *testing.T) {
		f := newFixture(t)
		player, err := f.ledger.JoinLeague(ctx, f.league.ID, f.admin.ID)
		require.NoError(t, err)
		req, err := f.domain.SendCaptainRequest(ctx, f.admin.ID, f.league.ID, &inbound.SendCaptaincyInput{PlayerID: player.ID, TeamID: f.team.ID})
		require.NoError(t, err)

		_, err = f.domain.Approve(ctx, req.ID, f.admin.ID)
		require.NoError(t, err)
		assert.Equal(t, model.UserRoleAdmin, f.role(t, f.admin.ID))
	})

	t.Run("lost transition race", func(t *testing.T) {
		f := newFixture(t)
		_, player := f.newPlayer(t)
		pending := &model.CaptainRequest{
			ID:       uuid.New(),
			PlayerID: player.ID,
			TeamID:   f.team.ID,
			LeagueID: f.league.ID,
			Status:   model.CaptainRequestStatusPending,
			Source:   model.CaptainRequestSourcePlayer,
			Player:   player,
		}

		requestDB := new(MockCaptainRequestDB)
		requestDB.On("FindByID", mock.Anything, pending.ID).Return(pending, nil)
		requestDB.On("Transition", mock.Anything, pending.ID, mock.Anything).Return(false, nil)
		d := f.newDomain(requestDB)

		_, err := d.Approve(ctx, pending.ID, f.admin.ID)
		assert.ErrorIs(t, err, ErrRequestNotPending)

		isCaptain, err := f.ledger.IsCaptain(ctx, player.UserID)
		require.NoError(t, err)
		assert.False(t, isCaptain)
	})

	t.Run("store failure is not a business error", func(t *testing.T) {
		f := newFixture(t)
		requestDB := new(MockCaptainRequestDB)
		requestDB.On("FindByID", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))
		d := f.newDomain(requestDB)

		_, err := d.Approve(ctx, uuid.New(), f.admin.ID)
		require.Error(t, err)
		assert.False(t, apperrors.IsBusiness(err))
	})
}

func TestApprove_Concurrent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user, _ := f.newPlayer(t)
	req, err := f.domain.RequestToBeCaptain(ctx, user.ID, f.league.ID, &inbound.RequestCaptaincyInput{TeamID: f.team.ID})
	require.NoError(t, err)

	const approvers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < approvers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.domain.Approve(ctx, req.ID, f.admin.ID); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, ErrRequestNotPending)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Len(t, f.publisher.events(events.CaptainRequestApprovedType), 1)
}

func TestReject(t *testing.T) {
	ctx := context.Background()

	t.Run("admin rejects with reason", func(t *testing.T) {
		f := newFixture(t)
		user, _ := f.newPlayer(t)
		req, err := f.domain.RequestToBeCaptain(ctx, user.ID, f.league.ID, &inbound.RequestCaptaincyInput{TeamID: f.team.ID})
		require.NoError(t, err)

		out, err := f.domain.Reject(ctx, req.ID, f.admin.ID, "team already has two captains")
		require.NoError(t, err)

		assert.Equal(t, model.CaptainRequestStatusRejected, out.Status)
		assert.Equal(t, "team already has two captains", out.RejectionReason)
		assert.NotNil(t, out.RespondedAt)

		isCaptain, err := f.ledger.IsCaptain(ctx, user.ID)
		require.NoError(t, err)
		assert.False(t, isCaptain)

		rejected := f.publisher.events(events.CaptainRequestRejectedType)
		require.Len(t, rejected, 1)
		assert.Equal(t, user.ID, rejected[0].Meta().RecipientID)
		assert.Equal(t, "team already has two captains", rejected[0].Reason)
	})

	t.Run("player declines invitation", func(t *testing.T) {
		f := newFixture(t)
		user, player := f.newPlayer(t)
		req, err := f.domain.SendCaptainRequest(ctx, f.admin.ID, f.league.ID, &inbound.SendCaptaincyInput{PlayerID: player.ID, TeamID: f.team.ID})
		require.NoError(t, err)

		_, err = f.domain.Reject(ctx, req.ID, user.ID, "")
		require.NoError(t, err)

		rejected := f.publisher.events(events.CaptainRequestRejectedType)
		require.Len(t, rejected, 1)
		assert.Equal(t, f.admin.ID, rejected[0].Meta().RecipientID)
	})

	t.Run("rejected request allows a new one", func(t *testing.T) {
		f := newFixture(t)
		user, _ := f.newPlayer(t)
		req, err := f.domain.RequestToBeCaptain(ctx, user.ID, f.league.ID, &inbound.RequestCaptaincyInput{TeamID: f.team.ID})
		require.NoError(t, err)
		_, err = f.domain.Reject(ctx, req.ID, f.admin.ID, "")
		require.NoError(t, err)

		_, err = f.domain.RequestToBeCaptain(ctx, user.ID, f.league.ID, &inbound.RequestCaptaincyInput{TeamID: f.team.ID})
		assert.NoError(t, err)
	})

	t.Run("cannot reject twice", func(t *testing.T) {
		f := newFixture(t)
		user, _ := f.newPlayer(t)
		req, err := f.domain.RequestToBeCaptain(ctx, user.ID, f.league.ID, &inbound.RequestCaptaincyInput{TeamID: f.team.ID})
		require.NoError(t, err)
		_, err = f.domain.Approve(ctx, req.ID, f.admin.ID)
		require.NoError(t, err)

		_, err = f.domain.Reject(ctx, req.ID, f.admin.ID, "")
		assert.ErrorIs(t, err, ErrRequestNotPending)
	})
}

func TestListPendingByLeague(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	var users []*model.User
	for i := 0; i < 3; i++ {
		user, _ := f.newPlayer(t)
		users = append(users, user)
		_, err := f.domain.RequestToBeCaptain(ctx, user.ID, f.league.ID, &inbound.RequestCaptaincyInput{TeamID: f.team.ID})
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}

	pending, err := f.domain.ListPendingByLeague(ctx, f.admin.ID, f.league.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, pending, 3)
	for i, out := range pending {
		require.NotNil(t, out.UserID)
		assert.Equal(t, users[i].ID, *out.UserID)
	}

	_, err = f.domain.ListPendingByLeague(ctx, users[0].ID, f.league.ID, 10, 0)
	assert.ErrorIs(t, err, ErrAdminRequired)

	_, err = f.domain.ListPendingByLeague(ctx, f.admin.ID, uuid.New(), 10, 0)
	assert.ErrorIs(t, err, ErrLeagueNotFound)
}
