package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leaguehub/server/internal/model"
	"github.com/leaguehub/server/internal/port/outbound"
)

func TestStore_RunInTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	user := s.AddUser(model.User{Email: "a@example.com"})
	league := s.AddLeague(model.League{Name: "Sunday"})

	err := s.RunInTransaction(ctx, func(ctx context.Context) error {
		require.NoError(t, s.LeagueMembers().Ensure(ctx, league.ID, user.ID))
		return errors.New("boom")
	})
	require.Error(t, err)

	ok, err := s.LeagueMembers().Exists(ctx, league.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_RollbackKeepsConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	requests := s.JoinRequests()

	entered := make(chan struct{})
	release := make(chan struct{})
	txDone := make(chan error, 1)
	go func() {
		txDone <- s.RunInTransaction(ctx, func(ctx context.Context) error {
			close(entered)
			<-release
			return errors.New("boom")
		})
	}()
	<-entered

	outside := &model.TeamJoinRequest{UserID: uuid.New(), TeamID: uuid.New(), Status: model.JoinRequestStatusPending, RequestedAt: time.Now()}
	created := make(chan error, 1)
	go func() { created <- requests.Create(ctx, outside) }()

	select {
	case <-created:
		t.Fatal("write completed while another transaction was open")
	case <-time.After(50 * time.Millisecond):
	}
	close(release)

	require.Error(t, <-txDone)
	require.NoError(t, <-created)

	got, err := requests.FindByID(ctx, outside.ID)
	require.NoError(t, err)
	assert.Equal(t, model.JoinRequestStatusPending, got.Status)
}

func TestStore_IncrementUsage(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	codes := s.InvitationCodes()
	now := time.Now()

	code := &model.InvitationCode{Code: "ABC", OrganizationID: uuid.New(), UsageLimit: 3}
	require.NoError(t, codes.Create(ctx, code))

	var wg sync.WaitGroup
	var consumed atomic.Int32
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := codes.IncrementUsage(ctx, code.ID, now)
			if err == nil && ok {
				consumed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(3), consumed.Load())
	got, err := codes.FindByID(ctx, code.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.UsedCount)
}

func TestStore_IncrementUsageExpired(t *testing.T) {
	ctx := context.Background()
	codes := NewStore().InvitationCodes()
	past := time.Now().Add(-time.Minute)

	code := &model.InvitationCode{Code: "OLD", UsageLimit: 1, ExpiresAt: &past}
	require.NoError(t, codes.Create(ctx, code))

	ok, err := codes.IncrementUsage(ctx, code.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_UniqueConstraints(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.InvitationCodes().Create(ctx, &model.InvitationCode{Code: "DUP"}))
	err := s.InvitationCodes().Create(ctx, &model.InvitationCode{Code: "DUP"})
	assert.True(t, outbound.IsDuplicateOn(err, outbound.ConstraintInvitationCode))

	userID, teamID := uuid.New(), uuid.New()
	require.NoError(t, s.JoinRequests().Create(ctx, &model.TeamJoinRequest{UserID: userID, TeamID: teamID, Status: model.JoinRequestStatusPending}))
	err = s.JoinRequests().Create(ctx, &model.TeamJoinRequest{UserID: userID, TeamID: teamID, Status: model.JoinRequestStatusPending})
	assert.True(t, outbound.IsDuplicateOn(err, outbound.ConstraintPendingJoinRequest))
}

func TestStore_DeclineStale(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	requests := s.JoinRequests()
	now := time.Now()

	old := &model.TeamJoinRequest{UserID: uuid.New(), TeamID: uuid.New(), Status: model.JoinRequestStatusPending, RequestedAt: now.Add(-40 * 24 * time.Hour)}
	fresh := &model.TeamJoinRequest{UserID: uuid.New(), TeamID: uuid.New(), Status: model.JoinRequestStatusPending, RequestedAt: now}
	require.NoError(t, requests.Create(ctx, old))
	require.NoError(t, requests.Create(ctx, fresh))

	declined, err := requests.DeclineStale(ctx, now.Add(-30*24*time.Hour), now)
	require.NoError(t, err)
	require.Len(t, declined, 1)
	assert.Equal(t, old.ID, declined[0].ID)
	assert.Equal(t, model.JoinRequestStatusDeclined, declined[0].Status)

	ok, err := requests.Transition(ctx, old.ID, model.JoinRequestStatusApproved, now)
	require.NoError(t, err)
	assert.False(t, ok)
}
