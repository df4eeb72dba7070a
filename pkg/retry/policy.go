package retry

import "time"

// Policy describes the backoff schedule for retried operations
type Policy struct {
	// InitialInterval is the delay before the first retry
	InitialInterval time.Duration

	// BackoffCoefficient multiplies the interval after each attempt
	BackoffCoefficient float64

	// MaximumInterval caps the delay between attempts
	MaximumInterval time.Duration

	// MaximumAttempts bounds the total number of attempts
	MaximumAttempts int32
}

// Option represents an option for configuring the policy
type Option func(*Policy)

// WithInitialInterval sets the delay before the first retry
func WithInitialInterval(interval time.Duration) Option {
	return func(p *Policy) {
		p.InitialInterval = interval
	}
}

// WithBackoffCoefficient sets the backoff multiplier
func WithBackoffCoefficient(coefficient float64) Option {
	return func(p *Policy) {
		p.BackoffCoefficient = coefficient
	}
}

// WithMaximumInterval caps the delay between attempts
func WithMaximumInterval(interval time.Duration) Option {
	return func(p *Policy) {
		p.MaximumInterval = interval
	}
}

// WithMaximumAttempts bounds the total number of attempts
func WithMaximumAttempts(attempts int32) Option {
	return func(p *Policy) {
		p.MaximumAttempts = attempts
	}
}

// NewPolicy creates a policy with exponential backoff defaults
func NewPolicy(options ...Option) *Policy {
	policy := &Policy{
		InitialInterval:    time.Second,
		BackoffCoefficient: 2.0,
		MaximumInterval:    30 * time.Second,
		MaximumAttempts:    5,
	}

	for _, option := range options {
		option(policy)
	}

	return policy
}
