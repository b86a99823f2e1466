package notify

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDispatcher_RunsTasks(t *testing.T) {
	d := NewDispatcher(4, time.Second, zap.NewNop().Sugar())
	var done atomic.Int32

	for i := 0; i < 4; i++ {
		require.True(t, d.Go("count", func(ctx context.Context) error {
			done.Add(1)
			return nil
		}))
	}
	d.Wait()

	assert.Equal(t, int32(4), done.Load())
}

func TestDispatcher_TaskContextHasDeadline(t *testing.T) {
	d := NewDispatcher(1, 50*time.Millisecond, zap.NewNop().Sugar())
	var expired atomic.Bool

	d.Go("slow", func(ctx context.Context) error {
		<-ctx.Done()
		expired.Store(errors.Is(ctx.Err(), context.DeadlineExceeded))
		return ctx.Err()
	})
	d.Wait()

	assert.True(t, expired.Load())
}

func TestDispatcher_DropsWhenSaturated(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	d := NewDispatcher(1, time.Second, zap.New(core).Sugar())
	release := make(chan struct{})

	require.True(t, d.Go("blocking", func(ctx context.Context) error {
		<-release
		return nil
	}))
	assert.False(t, d.Go("extra", func(ctx context.Context) error { return nil }))

	close(release)
	d.Wait()
	assert.Equal(t, 1, logs.FilterMessage("dispatcher saturated, task dropped").Len())
}

func TestDispatcher_LogsFailuresAndPanics(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	d := NewDispatcher(2, time.Second, zap.New(core).Sugar())

	d.Go("failing", func(ctx context.Context) error { return errors.New("smtp down") })
	d.Go("panicking", func(ctx context.Context) error { panic("boom") })
	d.Wait()

	assert.Equal(t, 1, logs.FilterMessage("background task failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("background task panicked").Len())
}

func TestDispatcher_RejectsAfterWait(t *testing.T) {
	d := NewDispatcher(0, 0, zap.NewNop().Sugar())
	d.Wait()

	assert.False(t, d.Go("late", func(ctx context.Context) error { return nil }))
}

func TestDispatcher_Shutdown(t *testing.T) {
	d := NewDispatcher(1, time.Minute, zap.NewNop().Sugar())
	release := make(chan struct{})
	d.Go("blocking", func(ctx context.Context) error {
		<-release
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Shutdown(ctx), context.DeadlineExceeded)

	close(release)
	assert.NoError(t, d.Shutdown(context.Background()))
}
