package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(attempts int) Config {
	return Config{MaxAttempts: attempts, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Multiplier: 2}
}

func TestDo(t *testing.T) {
	t.Run("recovers after transient failures", func(t *testing.T) {
		calls := 0
		err := Do(context.Background(), fastConfig(3), func() error {
			calls++
			if calls < 3 {
				return errors.New("connection refused")
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns the last error when attempts run out", func(t *testing.T) {
		calls := 0
		err := Do(context.Background(), fastConfig(2), func() error {
			calls++
			return errors.New("still down")
		})
		assert.EqualError(t, err, "still down")
		assert.Equal(t, 2, calls)
	})

	t.Run("permanent errors stop immediately", func(t *testing.T) {
		sentinel := errors.New("bad request")
		calls := 0
		err := Do(context.Background(), fastConfig(5), func() error {
			calls++
			return Permanent(sentinel)
		})
		assert.ErrorIs(t, err, sentinel)
		assert.Equal(t, 1, calls)
	})

	t.Run("non-matching errors are not retried", func(t *testing.T) {
		cfg := fastConfig(5)
		cfg.Retryable = Matching("status 503")
		calls := 0
		err := Do(context.Background(), cfg, func() error {
			calls++
			return errors.New("status 401")
		})
		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("zero attempts is rejected", func(t *testing.T) {
		err := Do(context.Background(), Config{}, func() error { return nil })
		assert.ErrorIs(t, err, errNoAttempts)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := Do(ctx, fastConfig(3), func() error {
			t.Fatal("must not be called")
			return nil
		})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("context ends while waiting", func(t *testing.T) {
		cfg := fastConfig(3)
		cfg.InitialDelay = time.Second
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		err := Do(ctx, cfg, func() error { return errors.New("timeout") })
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestDoWithResult_OnRetry(t *testing.T) {
	cfg := fastConfig(3)
	var seen []int
	cfg.OnRetry = func(attempt int, _ error, wait time.Duration) {
		seen = append(seen, attempt)
		assert.Positive(t, wait)
	}

	calls := 0
	got, err := DoWithResult(context.Background(), cfg, func() (string, error) {
		calls++
		if calls == 3 {
			return "commentary", nil
		}
		return "", errors.New("eof")
	})
	require.NoError(t, err)
	assert.Equal(t, "commentary", got)
	assert.Equal(t, []int{1, 2}, seen)
}

func TestNext(t *testing.T) {
	cfg := Config{Multiplier: 2, MaxDelay: 3 * time.Second}
	assert.Equal(t, 2*time.Second, next(time.Second, cfg))
	assert.Equal(t, 3*time.Second, next(2*time.Second, cfg))
}

func TestPresets(t *testing.T) {
	pg := PostgresConfig()
	assert.True(t, pg.Retryable(errors.New("FATAL: the database system is starting up")))
	assert.False(t, pg.Retryable(errors.New("password authentication failed")))

	http := HTTPConfig()
	assert.True(t, http.Retryable(errors.New("openrouter: status 503")))
	assert.False(t, http.Retryable(errors.New("openrouter: status 400")))
}
