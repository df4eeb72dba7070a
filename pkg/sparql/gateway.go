package sparql

import (
	"context"

	"github.com/tagus/ontograph/pkg/logging"
)

// Gateway runs the guarded pipeline for caller-supplied query text:
// normalize, validate, execute, normalize result. It is stateless and safe
// for concurrent use; the store round trip is the only suspension point.
type Gateway struct {
	client     *Client
	normalizer *Normalizer
	validator  *Validator
	logger     logging.Logger
}

// GatewayOption represents an option for configuring the gateway
type GatewayOption func(*Gateway)

// WithNormalizer sets the query normalizer
func WithNormalizer(normalizer *Normalizer) GatewayOption {
	return func(g *Gateway) {
		g.normalizer = normalizer
	}
}

// WithValidator sets the query validator
func WithValidator(validator *Validator) GatewayOption {
	return func(g *Gateway) {
		g.validator = validator
	}
}

// WithGatewayLogger sets the logger for the gateway
func WithGatewayLogger(logger logging.Logger) GatewayOption {
	return func(g *Gateway) {
		g.logger = logger
	}
}

// NewGateway creates a gateway over the given store client. The default
// validator accepts SELECT only, matching the caller-facing contract.
func NewGateway(client *Client, options ...GatewayOption) *Gateway {
	gateway := &Gateway{
		client:     client,
		normalizer: NewNormalizer(),
		validator:  NewValidator(WithAllowedKinds(OpSelect)),
		logger:     logging.New(),
	}

	for _, option := range options {
		option(gateway)
	}

	return gateway
}

// Outcome is the gateway's caller-facing result: the text that actually ran,
// the limit that bounded it and the size-bounded raw result.
type Outcome struct {
	// Query is the executed query text, post-normalization
	Query string `json:"sparql"`

	// Limit is the effective row cap that was applied
	Limit int `json:"limit"`

	// Results is the raw store result with rows truncated to Limit
	Results *Results `json:"results"`
}

// Query runs the full pipeline on caller text and returns the truncated raw
// result.
func (g *Gateway) Query(ctx context.Context, raw string, limit int) (*Outcome, error) {
	effective := g.normalizer.EffectiveLimit(limit)

	executable, err := g.normalizer.Normalize(raw, limit)
	if err != nil {
		return nil, err
	}

	kind, err := g.validator.Validate(executable)
	if err != nil {
		return nil, err
	}

	g.logger.Debug(ctx, "Executing guarded query", map[string]interface{}{
		"kind":  string(kind),
		"limit": effective,
	})

	results, err := g.client.Select(ctx, executable)
	if err != nil {
		return nil, err
	}
	results.Truncate(effective)

	return &Outcome{Query: executable, Limit: effective, Results: results}, nil
}

// QueryRecords runs the pipeline and flattens the rows into native-typed
// records, enforcing any required projected fields.
func (g *Gateway) QueryRecords(ctx context.Context, raw string, limit int, required ...string) ([]Record, *Outcome, error) {
	outcome, err := g.Query(ctx, raw, limit)
	if err != nil {
		return nil, nil, err
	}

	records, err := outcome.Results.Flatten(required...)
	if err != nil {
		return nil, nil, err
	}

	return records, outcome, nil
}
