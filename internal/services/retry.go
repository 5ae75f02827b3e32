package services

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"inkpost/internal/apperr"
	"inkpost/internal/logger"
)

// RetryPolicy bounds the transparent retries of store calls that failed with
// apperr.ErrStoreUnavailable. Every other error is returned at once.
type RetryPolicy struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:      3,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     time.Second,
		MaxElapsedTime:  5 * time.Second,
	}
}

// NoRetry disables retries.
func NoRetry() RetryPolicy {
	return RetryPolicy{}
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	if p.MaxRetries <= 0 {
		return backoff.WithContext(&backoff.StopBackOff{}, ctx)
	}

	exp := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		exp.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		exp.MaxInterval = p.MaxInterval
	}
	exp.MaxElapsedTime = p.MaxElapsedTime
	exp.Reset()

	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(p.MaxRetries)), ctx)
}

// withRetry runs fn until it succeeds, fails with a non-transient error, or
// the policy gives up. attempts reports how many times fn ran.
func withRetry[T any](ctx context.Context, p RetryPolicy, op string, fn func() (T, error)) (out T, attempts int, err error) {
	err = backoff.RetryNotify(func() error {
		attempts++
		v, err := fn()
		if err != nil {
			if errors.Is(err, apperr.ErrStoreUnavailable) {
				return err
			}
			return backoff.Permanent(err)
		}
		out = v
		return nil
	}, p.backOff(ctx), func(err error, wait time.Duration) {
		logger.WithCtx(ctx).Warn("Store unavailable, retrying",
			zap.String("op", op),
			zap.Int("attempt", attempts),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	})
	return out, attempts, err
}
