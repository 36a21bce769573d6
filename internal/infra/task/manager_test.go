package task

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestManager_RunsAtStartAndOnInterval(t *testing.T) {
	m := NewManager(zap.NewNop())

	var runs atomic.Int32
	require.NoError(t, m.Register("sweep", 10*time.Millisecond, 0, func(ctx context.Context) (int, error) {
		runs.Add(1)
		return 0, nil
	}))

	m.Start(context.Background())
	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
	m.Stop()

	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, runs.Load())
}

func TestManager_OneShot(t *testing.T) {
	m := NewManager(zap.NewNop())

	var runs atomic.Int32
	require.NoError(t, m.Register("once", 0, 0, func(ctx context.Context) (int, error) {
		runs.Add(1)
		return 1, nil
	}))

	m.Start(context.Background())
	assert.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	m.Stop()
	assert.Equal(t, int32(1), runs.Load())
}

func TestManager_SurvivesErrorsAndPanics(t *testing.T) {
	m := NewManager(zap.NewNop())

	var runs atomic.Int32
	require.NoError(t, m.Register("flaky", 5*time.Millisecond, 0, func(ctx context.Context) (int, error) {
		switch runs.Add(1) {
		case 1:
			return 0, errors.New("db down")
		case 2:
			panic("boom")
		}
		return 0, nil
	}))

	m.Start(context.Background())
	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
	m.Stop()
}

func TestManager_StopCancelsRunningJob(t *testing.T) {
	m := NewManager(zap.NewNop())

	started := make(chan struct{})
	require.NoError(t, m.Register("slow", time.Hour, 0, func(ctx context.Context) (int, error) {
		close(started)
		<-ctx.Done()
		return 0, ctx.Err()
	}))

	m.Start(context.Background())
	<-started

	done := make(chan struct{})
	go func() {
		m.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
}

func TestManager_RegisterAfterStart(t *testing.T) {
	m := NewManager(zap.NewNop())
	m.Start(context.Background())
	defer m.Stop()

	err := m.Register("late", time.Second, 0, func(ctx context.Context) (int, error) { return 0, nil })
	assert.Error(t, err)
}
