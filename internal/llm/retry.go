package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider retries transient failures with exponential backoff and
// jitter. A schema mismatch is retried only once.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps p with retry logic.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var err error
	schemaRetried := false

	for attempt := 0; ; attempt++ {
		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		switch {
		case err == nil:
			return resp, nil
		case !Retryable(err), attempt+1 >= r.config.MaxAttempts:
			return nil, err
		}

		var inv *ErrInvalidResponse
		if errors.As(err, &inv) {
			if schemaRetried {
				return nil, err
			}
			schemaRetried = true
		}

		if waitErr := sleep(ctx, r.backoff(attempt, err)); waitErr != nil {
			if errors.Is(waitErr, errDeadlineTooSoon) {
				return nil, err
			}
			return nil, waitErr
		}
	}
}

var errDeadlineTooSoon = errors.New("deadline before next attempt")

// sleep waits for d unless ctx ends first. It refuses to start a wait the
// deadline would cut short.
func sleep(ctx context.Context, d time.Duration) error {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < d {
		return errDeadlineTooSoon
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// backoff is RetryAfter when the provider sent one, otherwise
// InitialWait*Multiplier^attempt capped at MaxWait, with ±20% jitter.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	if d := RetryAfter(err); d > 0 {
		return d
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	wait = math.Min(wait, float64(r.config.MaxWait))
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(math.Max(wait, 0))
}
