package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalSpacesCalls(t *testing.T) {
	l := Interval(30 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, l.Wait(ctx))

	start := time.Now()
	require.NoError(t, l.Wait(ctx))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestIntervalHonorsCancellation(t *testing.T) {
	l := Interval(time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	require.NoError(t, l.Wait(ctx))
	assert.Error(t, l.Wait(ctx))
}

func TestNoneNeverBlocks(t *testing.T) {
	l := None()
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		require.NoError(t, l.Wait(ctx))
	}

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, l.Wait(cancelled))
}
