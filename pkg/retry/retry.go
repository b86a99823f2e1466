// Package retry runs an operation again with exponential backoff until it
// succeeds, fails permanently, or the context ends.
package retry

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"
)

// Config describes a backoff schedule.
type Config struct {
	// MaxAttempts counts the first call.
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	// Retryable decides whether an error is worth another attempt.
	// Nil retries everything that is not marked Permanent.
	Retryable func(error) bool
	// OnRetry, if set, is called before each wait.
	OnRetry func(attempt int, err error, wait time.Duration)
}

var errNoAttempts = errors.New("retry: MaxAttempts must be greater than 0")

// Matching returns a Retryable predicate that accepts errors whose message
// contains one of the patterns, case-insensitively.
func Matching(patterns ...string) func(error) bool {
	lowered := make([]string, len(patterns))
	for i, p := range patterns {
		lowered[i] = strings.ToLower(p)
	}
	return func(err error) bool {
		msg := strings.ToLower(err.Error())
		for _, p := range lowered {
			if strings.Contains(msg, p) {
				return true
			}
		}
		return false
	}
}

// PostgresConfig waits for a database that is still starting up.
func PostgresConfig() Config {
	return Config{
		MaxAttempts:  5,
		InitialDelay: time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2,
		Retryable: Matching(
			"connection refused",
			"connection reset",
			"connection timed out",
			"i/o timeout",
			"dial tcp",
			"network is unreachable",
			"no connection could be made",
			"server closed the connection",
			"too many connections",
			"database system is starting up",
		),
	}
}

// HTTPConfig is a short schedule for calls to external APIs.
func HTTPConfig() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2,
		Retryable: Matching(
			"connection refused",
			"connection reset",
			"i/o timeout",
			"eof",
			"tls handshake timeout",
			"status 429",
			"status 500",
			"status 502",
			"status 503",
			"status 504",
		),
	}
}

// Do runs fn under cfg.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	_, err := DoWithResult(ctx, cfg, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// DoWithResult runs fn under cfg and returns its first successful result.
// The last error is returned once attempts run out.
func DoWithResult[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	var zero T
	if cfg.MaxAttempts <= 0 {
		return zero, errNoAttempts
	}

	wait := cfg.InitialDelay
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		if attempt == cfg.MaxAttempts || !ShouldRetry(err, cfg) {
			return zero, err
		}

		delay := jitter(wait)
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, err, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}

		wait = next(wait, cfg)
	}
}

// ShouldRetry reports whether err qualifies for another attempt under cfg.
func ShouldRetry(err error, cfg Config) bool {
	if err == nil {
		return false
	}
	var perm *permanentError
	if errors.As(err, &perm) {
		return false
	}
	if cfg.Retryable == nil {
		return true
	}
	return cfg.Retryable(err)
}

func next(wait time.Duration, cfg Config) time.Duration {
	grown := time.Duration(float64(wait) * cfg.Multiplier)
	if cfg.MaxDelay > 0 && grown > cfg.MaxDelay {
		return cfg.MaxDelay
	}
	return grown
}

// jitter spreads d by up to 10% either way.
func jitter(d time.Duration) time.Duration {
	//nolint:gosec // jitter has no security requirement
	return d + time.Duration(float64(d)*0.1*(rand.Float64()*2-1))
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }

func (e *permanentError) Unwrap() error { return e.err }

// Permanent wraps err so that Do and DoWithResult stop immediately.
// The wrapped error stays reachable through errors.Is and errors.As.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}
