package retry

import (
	"context"
	"time"

	"github.com/tagus/ontograph/pkg/logging"
)

// Executor runs operations under a backoff policy. The guarded query
// gateway never retries; this executor serves trusted paths such as the
// bootstrap readiness wait.
type Executor struct {
	policy *Policy
	logger logging.Logger
}

// NewExecutor creates a new retry executor with the given policy
func NewExecutor(policy *Policy) *Executor {
	return &Executor{
		policy: policy,
		logger: logging.New(),
	}
}

// Execute runs the operation until it succeeds, the attempt budget is
// exhausted or the context is cancelled. The last error is returned.
func (e *Executor) Execute(ctx context.Context, operation func() error) error {
	var lastErr error
	interval := e.policy.InitialInterval

	for attempt := int32(1); attempt <= e.policy.MaximumAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := operation(); err == nil {
			return nil
		} else {
			lastErr = err
		}

		if attempt == e.policy.MaximumAttempts {
			break
		}

		e.logger.Debug(ctx, "Operation failed, scheduling retry", map[string]interface{}{
			"attempt":      attempt,
			"max_attempts": e.policy.MaximumAttempts,
			"error":        lastErr.Error(),
			"interval":     interval.String(),
		})

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}

		interval = time.Duration(float64(interval) * e.policy.BackoffCoefficient)
		if interval > e.policy.MaximumInterval {
			interval = e.policy.MaximumInterval
		}
	}

	return lastErr
}
