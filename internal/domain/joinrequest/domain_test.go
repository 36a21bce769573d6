package joinrequest

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

// --- Fixture ---

type fixture struct {
	store     *memory.Store
	ledger    *membership.Domain
	domain    *Domain
	publisher *MockPublisher
	now       time.Time
	admin     *model.User
	captain   *model.User
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
		now:       time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		ledger:    membership.NewDomain(s.Players(), s.Captains(), s.LeagueMembers(), s.TeamPlayers(), s.TeamCaptains(), s.Identity(), zap.NewNop()),
		admin:     s.AddUser(model.User{Email: "admin@league.test", Role: model.UserRoleAdmin}),
		captain:   s.AddUser(model.User{Email: "captain@league.test", Role: model.UserRoleCaptain}),
		league:    s.AddLeague(model.League{Name: "Spring"}),
	}
	f.team = s.AddTeam(model.Team{Name: "Hawks", LeagueID: f.league.ID, SportID: uuid.New(), IsLookingForPlayers: true})
	_, err := f.ledger.PromoteToCaptain(context.Background(), f.team.ID, f.captain.ID)
	require.NoError(t, err)

	f.domain = NewDomain(s.JoinRequests(), s.Teams(), f.ledger, s.Identity(), s, publisher, nil, nil, zap.NewNop())
	f.domain.now = func() time.Time { return f.now }
	return f
}

func (f *fixture) newUser() *model.User {
	return f.store.AddUser(model.User{Email: uuid.NewString() + "@player.test", Name: "Player"})
}

func (f *fixture) newTeam() *model.Team {
	return f.store.AddTeam(model.Team{Name: "Team " + uuid.NewString()[:8], LeagueID: f.league.ID})
}

func (f *fixture) seedRequest(t *testing.T, userID, teamID uuid.UUID, status model.JoinRequestStatus, requestedAt time.Time) *model.TeamJoinRequest {
	t.Helper()
	r := &model.TeamJoinRequest{UserID: userID, TeamID: teamID, Status: status, RequestedAt: requestedAt}
	require.NoError(t, f.store.JoinRequests().Create(context.Background(), r))
	return r
}

func (f *fixture) status(t *testing.T, id uuid.UUID) model.JoinRequestStatus {
	t.Helper()
	r, err := f.store.JoinRequests().FindByID(context.Background(), id)
	require.NoError(t, err)
	return r.Status
}

// --- Tests ---

func TestDomain_RequestJoin(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		user := f.newUser()

		out, err := f.domain.RequestJoin(ctx, user.ID, f.team.ID, &inbound.RequestJoinInput{Message: "I can play libero"})

		require.NoError(t, err)
		assert.Equal(t, model.JoinRequestStatusPending, out.Status)
		assert.Equal(t, "Hawks", out.TeamName)
		assert.Equal(t, f.now, out.RequestedAt)
		f.publisher.AssertCalled(t, "Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
			return e.Meta().Type == events.JoinRequestCreatedType && e.Meta().AggregateID == out.ID
		}))
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.domain.RequestJoin(ctx, uuid.New(), f.team.ID, nil)

		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("unknown team", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.domain.RequestJoin(ctx, f.newUser().ID, uuid.New(), nil)

		assert.ErrorIs(t, err, ErrTeamNotFound)
	})

	t.Run("already on team", func(t *testing.T) {
		f := newFixture(t)
		user := f.newUser()
		_, err := f.ledger.JoinTeam(ctx, f.team, user.ID)
		require.NoError(t, err)

		_, err = f.domain.RequestJoin(ctx, user.ID, f.team.ID, nil)

		assert.ErrorIs(t, err, ErrAlreadyMember)
		assert.True(t, apperrors.IsConflict(err))
	})

	t.Run("duplicate pending then re-request after decline", func(t *testing.T) {
		f := newFixture(t)
		user := f.newUser()

		first, err := f.domain.RequestJoin(ctx, user.ID, f.team.ID, nil)
		require.NoError(t, err)

		_, err = f.domain.RequestJoin(ctx, user.ID, f.team.ID, nil)
		assert.ErrorIs(t, err, ErrDuplicatePending)

		require.NoError(t, f.domain.Decline(ctx, first.ID, f.captain.ID))

		second, err := f.domain.RequestJoin(ctx, user.ID, f.team.ID, nil)
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)
	})
}

func TestDomain_RequestJoinRateLimit(t *testing.T) {
	ctx := context.Background()

	t.Run("sixth request in window rejected", func(t *testing.T) {
		f := newFixture(t)
		user := f.newUser()
		for i := 0; i < 5; i++ {
			f.seedRequest(t, user.ID, f.newTeam().ID, model.JoinRequestStatusDeclined, f.now.Add(-time.Duration(i+1)*time.Hour))
		}

		_, err := f.domain.RequestJoin(ctx, user.ID, f.team.ID, nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrRateLimited)
		assert.True(t, apperrors.IsRateLimited(err))

		var rle *RateLimitError
		require.True(t, errors.As(err, &rle))
		assert.Equal(t, 5, rle.Count)
		assert.Equal(t, 24*time.Hour, rle.Window)

		var appErr *apperrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, 5, appErr.Details["count"])
		assert.Equal(t, 429, apperrors.GetStatusCode(err))
	})

	t.Run("requests older than window do not count", func(t *testing.T) {
		f := newFixture(t)
		user := f.newUser()
		for i := 0; i < 5; i++ {
			f.seedRequest(t, user.ID, f.newTeam().ID, model.JoinRequestStatusDeclined, f.now.Add(-25*time.Hour))
		}

		_, err := f.domain.RequestJoin(ctx, user.ID, f.team.ID, nil)

		assert.NoError(t, err)
	})

	t.Run("four in window allowed", func(t *testing.T) {
		f := newFixture(t)
		user := f.newUser()
		for i := 0; i < 4; i++ {
			f.seedRequest(t, user.ID, f.newTeam().ID, model.JoinRequestStatusPending, f.now.Add(-time.Minute))
		}

		_, err := f.domain.RequestJoin(ctx, user.ID, f.team.ID, nil)

		assert.NoError(t, err)
	})
}

func TestDomain_ListPending(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	stale := f.seedRequest(t, f.newUser().ID, f.team.ID, model.JoinRequestStatusPending, f.now.Add(-31*24*time.Hour))
	fresh := f.seedRequest(t, f.newUser().ID, f.team.ID, model.JoinRequestStatusPending, f.now.Add(-time.Hour))
	f.seedRequest(t, f.newUser().ID, f.team.ID, model.JoinRequestStatusDeclined, f.now.Add(-time.Hour))

	out, err := f.domain.ListPending(ctx, f.team.ID, f.captain.ID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, fresh.ID, out[0].ID)

	// listing is read-only
	assert.Equal(t, model.JoinRequestStatusPending, f.status(t, stale.ID))

	_, err = f.domain.ListPending(ctx, f.team.ID, f.admin.ID)
	assert.NoError(t, err)

	_, err = f.domain.ListPending(ctx, f.team.ID, f.newUser().ID)
	assert.ErrorIs(t, err, ErrNotTeamManager)
}

func TestDomain_Approve(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		user := f.newUser()
		r := f.seedRequest(t, user.ID, f.team.ID, model.JoinRequestStatusPending, f.now.Add(-time.Hour))

		out, err := f.domain.Approve(ctx, r.ID, f.team.ID, f.captain.ID)

		require.NoError(t, err)
		assert.Equal(t, inbound.ApproveJoinRequestOutput{TeamID: f.team.ID, LeagueID: f.league.ID, UserID: user.ID}, *out)
		assert.Equal(t, model.JoinRequestStatusApproved, f.status(t, r.ID))

		onTeam, err := f.ledger.IsUserOnTeam(ctx, f.team.ID, user.ID)
		require.NoError(t, err)
		assert.True(t, onTeam)

		member, err := f.store.LeagueMembers().Exists(ctx, f.league.ID, user.ID)
		require.NoError(t, err)
		assert.True(t, member)

		refreshed, err := f.store.Identity().ResolveUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, f.league.ID, *refreshed.CurrentOrganizationID)
	})

	t.Run("second approval fails", func(t *testing.T) {
		f := newFixture(t)
		r := f.seedRequest(t, f.newUser().ID, f.team.ID, model.JoinRequestStatusPending, f.now)

		_, err := f.domain.Approve(ctx, r.ID, f.team.ID, f.captain.ID)
		require.NoError(t, err)

		_, err = f.domain.Approve(ctx, r.ID, f.team.ID, f.captain.ID)
		assert.ErrorIs(t, err, ErrRequestNotPending)
		assert.True(t, apperrors.IsInvalidState(err))
	})

	t.Run("request of another team", func(t *testing.T) {
		f := newFixture(t)
		r := f.seedRequest(t, f.newUser().ID, f.team.ID, model.JoinRequestStatusPending, f.now)

		_, err := f.domain.Approve(ctx, r.ID, f.newTeam().ID, f.captain.ID)

		assert.ErrorIs(t, err, ErrRequestNotFound)
	})

	t.Run("not a manager", func(t *testing.T) {
		f := newFixture(t)
		r := f.seedRequest(t, f.newUser().ID, f.team.ID, model.JoinRequestStatusPending, f.now)

		_, err := f.domain.Approve(ctx, r.ID, f.team.ID, f.newUser().ID)

		assert.ErrorIs(t, err, ErrNotTeamManager)
		assert.Equal(t, model.JoinRequestStatusPending, f.status(t, r.ID))
	})

	t.Run("stale request", func(t *testing.T) {
		f := newFixture(t)
		r := f.seedRequest(t, f.newUser().ID, f.team.ID, model.JoinRequestStatusPending, f.now.Add(-31*24*time.Hour))

		_, err := f.domain.Approve(ctx, r.ID, f.team.ID, f.captain.ID)

		assert.ErrorIs(t, err, ErrRequestNotPending)
	})

	t.Run("already on team rolls back", func(t *testing.T) {
		f := newFixture(t)
		user := f.newUser()
		r := f.seedRequest(t, user.ID, f.team.ID, model.JoinRequestStatusPending, f.now)
		_, err := f.ledger.JoinTeam(ctx, f.team, user.ID)
		require.NoError(t, err)

		_, err = f.domain.Approve(ctx, r.ID, f.team.ID, f.captain.ID)

		assert.ErrorIs(t, err, ErrAlreadyMember)
		assert.Equal(t, model.JoinRequestStatusPending, f.status(t, r.ID))
	})
}

func TestDomain_ApproveConcurrent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user := f.newUser()
	r := f.seedRequest(t, user.ID, f.team.ID, model.JoinRequestStatusPending, f.now)

	var wg sync.WaitGroup
	results := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.domain.Approve(ctx, r.ID, f.team.ID, f.captain.ID)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, apperrors.IsInvalidState(err) || apperrors.IsConflict(err), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)
	assert.Len(t, f.store.TeamPlayers().Roster(f.team.ID), 1)
}

func TestDomain_Decline(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user := f.newUser()
	r := f.seedRequest(t, user.ID, f.team.ID, model.JoinRequestStatusPending, f.now)

	require.NoError(t, f.domain.Decline(ctx, r.ID, f.captain.ID))
	assert.Equal(t, model.JoinRequestStatusDeclined, f.status(t, r.ID))

	onTeam, err := f.ledger.IsUserOnTeam(ctx, f.team.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, onTeam)

	assert.ErrorIs(t, f.domain.Decline(ctx, r.ID, f.captain.ID), ErrRequestNotPending)
	assert.ErrorIs(t, f.domain.Decline(ctx, uuid.New(), f.captain.ID), ErrRequestNotFound)

	f.publisher.AssertCalled(t, "Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		return e.Meta().Type == events.JoinRequestDeclinedType && e.Meta().RecipientID == user.ID
	}))
}

func TestDomain_SetTeamRecruiting(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	out, err := f.domain.SetTeamRecruiting(ctx, f.team.ID, false, f.captain.ID)
	require.NoError(t, err)
	assert.Equal(t, inbound.TeamRecruitingOutput{TeamID: f.team.ID, TeamName: "Hawks", IsLookingForPlayers: false}, *out)

	teams, err := f.domain.ListRecruitingTeams(ctx, outbound.TeamFilter{LeagueID: &f.league.ID}, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, teams)

	_, err = f.domain.SetTeamRecruiting(ctx, f.team.ID, true, f.captain.ID)
	require.NoError(t, err)

	teams, err = f.domain.ListRecruitingTeams(ctx, outbound.TeamFilter{LeagueID: &f.league.ID}, 10, 0)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, f.team.ID, teams[0].ID)

	_, err = f.domain.SetTeamRecruiting(ctx, f.team.ID, false, f.admin.ID)
	assert.ErrorIs(t, err, ErrNotTeamCaptain)
	assert.True(t, apperrors.IsForbidden(err))

	_, err = f.domain.SetTeamRecruiting(ctx, uuid.New(), true, f.captain.ID)
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestDomain_SweepStale(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	old1 := f.seedRequest(t, f.newUser().ID, f.team.ID, model.JoinRequestStatusPending, f.now.Add(-31*24*time.Hour))
	old2 := f.seedRequest(t, f.newUser().ID, f.team.ID, model.JoinRequestStatusPending, f.now.Add(-45*24*time.Hour))
	fresh := f.seedRequest(t, f.newUser().ID, f.team.ID, model.JoinRequestStatusPending, f.now.Add(-29*24*time.Hour))

	n, err := f.domain.SweepStale(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = f.domain.SweepStale(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	assert.Equal(t, model.JoinRequestStatusDeclined, f.status(t, old1.ID))
	assert.Equal(t, model.JoinRequestStatusDeclined, f.status(t, old2.ID))
	assert.Equal(t, model.JoinRequestStatusPending, f.status(t, fresh.ID))

	f.publisher.AssertCalled(t, "Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		evt, ok := e.(*events.JoinRequestEvent)
		return ok && evt.Reason == "stale" && evt.Meta().AggregateID == old1.ID
	}))
}

func TestDomain_ListMine(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user := f.newUser()
	older := f.seedRequest(t, user.ID, f.newTeam().ID, model.JoinRequestStatusDeclined, f.now.Add(-2*time.Hour))
	newer := f.seedRequest(t, user.ID, f.team.ID, model.JoinRequestStatusPending, f.now.Add(-time.Hour))
	f.seedRequest(t, f.newUser().ID, f.team.ID, model.JoinRequestStatusPending, f.now)

	out, err := f.domain.ListMine(ctx, user.ID, 20, 0)

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, newer.ID, out[0].ID)
	assert.Equal(t, older.ID, out[1].ID)
	assert.Equal(t, "Hawks", out[0].TeamName)
}
