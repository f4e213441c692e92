// Package retry runs fallible operations with a bounded number of attempts
// and a fixed delay between them.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/memohai/agentcore/internal/logger"
)

// Defaults applied when no option overrides them.
const (
	DefaultMaxRetries = 3
	DefaultDelay      = time.Second
	DefaultLogErrors  = true
)

// ErrExhausted marks an error returned after every allowed retry failed. The
// last operation error is wrapped as well and can be matched with errors.Is.
var ErrExhausted = errors.New("retries exhausted")

// Policy configures a retry run. The delay is constant between attempts.
type Policy struct {
	MaxRetries int
	Delay      time.Duration
	LogErrors  bool
	Logger     *slog.Logger
}

// DefaultPolicy returns MaxRetries=3, Delay=1s, LogErrors=true.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries: DefaultMaxRetries,
		Delay:      DefaultDelay,
		LogErrors:  DefaultLogErrors,
	}
}

// Option adjusts a Policy.
type Option func(*Policy)

// WithMaxRetries sets how many retries follow the first attempt. Negative values mean zero.
func WithMaxRetries(n int) Option {
	return func(p *Policy) { p.MaxRetries = n }
}

// WithDelay sets the fixed wait between attempts.
func WithDelay(d time.Duration) Option {
	return func(p *Policy) { p.Delay = d }
}

// WithLogErrors toggles logging of each failed attempt.
func WithLogErrors(enabled bool) Option {
	return func(p *Policy) { p.LogErrors = enabled }
}

// WithLogger sets the logger for attempt failures.
func WithLogger(l *slog.Logger) Option {
	return func(p *Policy) { p.Logger = l }
}

// WithPolicy replaces the whole policy; later options still apply on top.
func WithPolicy(policy Policy) Option {
	return func(p *Policy) { *p = policy }
}

// Permanent wraps err so that Do returns it immediately without retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return backoff.Permanent(err)
}

// Do calls op until it succeeds or MaxRetries retries have failed, waiting
// Delay between attempts. Attempts never overlap. Cancelling ctx stops the
// wait and returns the context cause.
func Do[T any](ctx context.Context, op func(ctx context.Context) (T, error), opts ...Option) (T, error) {
	policy := DefaultPolicy()
	for _, opt := range opts {
		opt(&policy)
	}
	if policy.MaxRetries < 0 {
		policy.MaxRetries = 0
	}
	if policy.Delay < 0 {
		policy.Delay = 0
	}
	log := policy.Logger
	if log == nil {
		log = logger.FromContext(ctx)
	}

	attempts := 0
	var lastErr error
	operation := func() (T, error) {
		attempts++
		res, err := op(ctx)
		if err != nil {
			lastErr = err
			if policy.LogErrors {
				log.Error("retry attempt failed",
					slog.Int("attempt", attempts),
					slog.Int("max_retries", policy.MaxRetries),
					slog.Any("error", err))
			}
		}
		return res, err
	}

	res, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewConstantBackOff(policy.Delay)),
		backoff.WithMaxTries(uint(policy.MaxRetries)+1),
		backoff.WithMaxElapsedTime(0),
	)
	if err == nil {
		return res, nil
	}

	var zero T
	var permanent *backoff.PermanentError
	switch {
	case errors.As(lastErr, &permanent):
		return zero, permanent.Err
	case lastErr != nil && attempts > policy.MaxRetries:
		return zero, fmt.Errorf("%w after %d attempts: %w", ErrExhausted, attempts, lastErr)
	default:
		return zero, err
	}
}

// Run is Do for operations without a result.
func Run(ctx context.Context, op func(ctx context.Context) error, opts ...Option) error {
	_, err := Do(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	}, opts...)
	return err
}
