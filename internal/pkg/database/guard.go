package database

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sony/gobreaker"
)

// transientClasses are the SQLSTATE classes another attempt can fix.
var transientClasses = map[string]bool{
	"08": true, // connection exception
	"40": true, // transaction rollback, e.g. serialization failure or deadlock
	"53": true, // insufficient resources
	"57": true, // operator intervention, e.g. statement timeout or shutdown
	"58": true, // system error
}

// Retryable reports whether err may succeed on a later attempt. A server error
// outside the transient classes is permanent: the same query fails the same
// way. Errors that never reached the server, like a dropped connection, are
// retried.
func Retryable(err error) bool {
	if err == nil || errors.Is(err, pgx.ErrNoRows) {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return len(pgErr.Code) >= 2 && transientClasses[pgErr.Code[:2]]
	}
	return true
}

type GuardConfig struct {
	Name           string
	RetryAttempts  uint
	MaxFailures    uint32        // consecutive failures before the breaker opens
	OpenTimeout    time.Duration // how long the breaker stays open
	AttemptTimeout time.Duration
	OnStateChange  func(name string, from, to gobreaker.State)
}

// Guard wraps record store calls with a circuit breaker and retry with
// backoff. Retries live here, in the storage client, and nowhere above it.
type Guard struct {
	cb             *gobreaker.CircuitBreaker
	attempts       uint
	attemptTimeout time.Duration
}

func NewGuard(cfg GuardConfig) *Guard {
	if cfg.Name == "" {
		cfg.Name = "record-store"
	}
	if cfg.RetryAttempts == 0 {
		cfg.RetryAttempts = 3
	}
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 5
	}
	if cfg.OpenTimeout == 0 {
		cfg.OpenTimeout = 30 * time.Second
	}

	maxFailures := cfg.MaxFailures
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 3,
		Interval:    5 * time.Second,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			// A cancelled request or a rejected query says nothing about store health
			return err == nil || errors.Is(err, context.Canceled) || !Retryable(err)
		},
		OnStateChange: cfg.OnStateChange,
	})

	return &Guard{
		cb:             cb,
		attempts:       cfg.RetryAttempts,
		attemptTimeout: cfg.AttemptTimeout,
	}
}

// Do runs fn through the breaker, retrying transient failures. A nil Guard
// runs fn directly.
func (g *Guard) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if g == nil {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := g.cb.Execute(func() (interface{}, error) {
		r := retry.New(
			retry.Context(ctx),
			retry.Attempts(g.attempts),
			retry.RetryIf(Retryable),
			retry.DelayType(func(n uint, err error, config retry.DelayContext) time.Duration {
				return retry.BackOffDelay(n, err, config)
			}),
		)

		return nil, r.Do(func() error {
			if g.attemptTimeout <= 0 {
				return fn(ctx)
			}
			aCtx, cancel := context.WithTimeout(ctx, g.attemptTimeout)
			defer cancel()
			return fn(aCtx)
		})
	})
	return err
}

// State exposes the breaker state.
func (g *Guard) State() gobreaker.State {
	if g == nil {
		return gobreaker.StateClosed
	}
	return g.cb.State()
}
