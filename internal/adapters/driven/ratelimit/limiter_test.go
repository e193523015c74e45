package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWait_Unlimited(t *testing.T) {
	l := Unlimited()

	start := time.Now()
	for i := 0; i < 100; i++ {
		require.NoError(t, l.Wait(context.Background()))
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestWait_BurstThenThrottle(t *testing.T) {
	// 2 rps with burst 2: the third call has to wait.
	l := New(2, 2)

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, l.Wait(context.Background()))
	}
	assert.GreaterOrEqual(t, time.Since(start), 400*time.Millisecond)
}

func TestWait_ContextCancelled(t *testing.T) {
	l := New(1, 1)
	require.NoError(t, l.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := l.Wait(ctx)
	assert.Error(t, err)
}

func TestRecordFailure_GrowsCooldown(t *testing.T) {
	l := Unlimited()

	l.RecordFailure()
	first := l.Cooldown()
	assert.Greater(t, first, 500*time.Millisecond)
	assert.LessOrEqual(t, first, time.Second)

	l.RecordFailure()
	second := l.Cooldown()
	assert.Greater(t, second, first)
	assert.Equal(t, 2, l.Failures())
}

func TestRecordFailure_CooldownCapped(t *testing.T) {
	l := Unlimited()

	for i := 0; i < 20; i++ {
		l.RecordFailure()
	}

	assert.LessOrEqual(t, l.Cooldown(), 30*time.Second)
}

func TestRecordSuccess_ClearsCooldown(t *testing.T) {
	l := Unlimited()

	l.RecordFailure()
	l.RecordFailure()
	require.Greater(t, l.Cooldown(), time.Duration(0))

	l.RecordSuccess()

	assert.Equal(t, time.Duration(0), l.Cooldown())
	assert.Equal(t, 0, l.Failures())

	// No residual wait after recovery.
	start := time.Now()
	require.NoError(t, l.Wait(context.Background()))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestWait_CooldownBlocks(t *testing.T) {
	l := Unlimited()
	l.RecordFailure() // 1s cooldown

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := l.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
