package latest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestTracker_BeginCancelsPrevious(t *testing.T) {
	var tr Tracker

	first, t1 := tr.Begin(context.Background())
	defer t1.Done()
	second, t2 := tr.Begin(context.Background())
	defer t2.Done()

	assert.ErrorIs(t, first.Err(), context.Canceled)
	assert.NoError(t, second.Err())
	assert.Greater(t, t2.Token, t1.Token)
	assert.Equal(t, t2.Token, tr.Current())
}

func TestTracker_CommitOnlyNewest(t *testing.T) {
	var tr Tracker
	_, t1 := tr.Begin(context.Background())
	defer t1.Done()
	_, t2 := tr.Begin(context.Background())
	defer t2.Done()

	applied := ""
	assert.False(t, tr.Commit(t1.Token, func() { applied = "old" }))
	assert.True(t, tr.Commit(t2.Token, func() { applied = "new" }))
	assert.Equal(t, "new", applied)
}

func TestRun_SupersededByNewerRequest(t *testing.T) {
	var tr Tracker
	started := make(chan struct{})
	result := make(chan error, 1)
	var applied []string

	go func() {
		_, err := Run(context.Background(), &tr, func(ctx context.Context, _ uint64) (string, error) {
			close(started)
			<-ctx.Done()
			return "", ctx.Err()
		}, func(v string) { applied = append(applied, v) })
		result <- err
	}()

	<-started
	v, err := Run(context.Background(), &tr, func(ctx context.Context, _ uint64) (string, error) {
		return "fresh", nil
	}, func(v string) { applied = append(applied, v) })
	require.NoError(t, err)
	assert.Equal(t, "fresh", v)

	assert.ErrorIs(t, <-result, ErrSuperseded)
	assert.Equal(t, []string{"fresh"}, applied)
}

func TestRun_StaleResultDiscarded(t *testing.T) {
	var tr Tracker
	applied := 0

	// The first request finishes without noticing cancellation, but a newer
	// request began before it committed.
	_, err := Run(context.Background(), &tr, func(ctx context.Context, _ uint64) (int, error) {
		_, ticket := tr.Begin(context.Background())
		ticket.Done()
		return 1, nil
	}, func(v int) { applied = v })

	assert.ErrorIs(t, err, ErrSuperseded)
	assert.Zero(t, applied)
}

func TestRun_PassesThroughErrors(t *testing.T) {
	var tr Tracker
	boom := errors.New("boom")
	_, err := Run(context.Background(), &tr, func(ctx context.Context, _ uint64) (int, error) {
		return 0, boom
	}, nil)
	assert.ErrorIs(t, err, boom)

	parent, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(parent, &tr, func(ctx context.Context, _ uint64) (int, error) {
		return 0, ctx.Err()
	}, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrSuperseded)
}

func TestRun_TokenIsTheRequestsOwn(t *testing.T) {
	var tr Tracker
	var seen uint64

	// A newer request starting mid-flight must not change the token this
	// request was handed.
	_, err := Run(context.Background(), &tr, func(ctx context.Context, token uint64) (int, error) {
		seen = token
		_, ticket := tr.Begin(context.Background())
		ticket.Done()
		return 0, nil
	}, nil)

	assert.ErrorIs(t, err, ErrSuperseded)
	assert.Equal(t, uint64(1), seen)
	assert.Equal(t, uint64(2), tr.Current())

	v, err := Run(context.Background(), &tr, func(ctx context.Context, token uint64) (uint64, error) {
		return token, nil
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), v)
}
