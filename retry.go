package tpool

import (
	"context"
	"time"

	boff "github.com/Andrej220/go-utils/backoff"
	lg "github.com/Andrej220/go-utils/zlog"
)

const (
	defaultAttempts     = 3
	defaultInitialRetry = 200 * time.Millisecond
	defaultMaxRetry     = 5 * time.Second
)

// RetryPolicy bounds the retry loop of WithRetry.
type RetryPolicy struct {
	Attempts int
	Initial  time.Duration
	Max      time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Attempts: defaultAttempts,
		Initial:  defaultInitialRetry,
		Max:      defaultMaxRetry,
	}
}

func (p *RetryPolicy) fillDefaults() {
	if p.Attempts <= 0 {
		p.Attempts = defaultAttempts
	}
	if p.Initial <= 0 {
		p.Initial = defaultInitialRetry
	}
	if p.Max <= 0 {
		p.Max = defaultMaxRetry
	}
}

// WithRetry decorates fn with exponential-backoff retries so that a
// flaky operation can be enqueued as an ordinary task. The returned
// Func runs fn up to pol.Attempts times, backing off between attempts;
// cancelling ctx aborts the backoff sleep. Attempt outcomes go to the
// context logger.
func WithRetry(ctx context.Context, pol RetryPolicy, fn func() error) Func {
	pol.fillDefaults()
	if ctx == nil {
		ctx = context.Background()
	}
	return func() {
		logger := lg.FromContext(ctx)
		bo := boff.New(pol.Initial, pol.Max, time.Now().UnixNano())

		for attempt := 1; attempt <= pol.Attempts; attempt++ {
			err := fn()
			if err == nil {
				return
			}
			if attempt == pol.Attempts {
				logger.Error("task failed", lg.Int("attempt", attempt), lg.Any("error", err))
				return
			}

			delay := bo.Next()
			logger.Warn("task attempt failed; backing off",
				lg.Int("attempt", attempt),
				lg.String("sleep", delay.String()),
				lg.Any("error", err),
			)
			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				if !timer.Stop() {
					<-timer.C // drain if timer is fired
				}
				logger.Info("task canceled", lg.Any("reason", ctx.Err()))
				return
			}
		}
	}
}
